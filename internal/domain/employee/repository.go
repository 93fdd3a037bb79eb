package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetAllActive(ctx context.Context) ([]Employee, error)
	Upsert(ctx context.Context, emp Employee) error
}
