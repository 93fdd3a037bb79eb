package employee

import (
	"time"
)

type Employee struct {
	ID          string
	Name        string
	Lastname    string
	TypeService string
	StartDate   time.Time
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}
