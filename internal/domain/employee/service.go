package employee

import (
	"context"
)

// EmployeeService answers identity and eligibility questions about employees.
type EmployeeService interface {
	// GetEmployee returns the employee or ErrEmployeeNotFound.
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// ListActiveEmployees returns employees whose status is active.
	ListActiveEmployees(ctx context.Context) ([]EmployeeResponse, error)

	// FindOne is the lookup used by other services; it returns the entity itself.
	FindOne(ctx context.Context, id string) (Employee, error)
}
