package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/house-services-backend/internal/domain/employee"
	"github.com/cmlabs-hris/house-services-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `id, name, lastname, type_service, start_date, status, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.Name, &emp.Lastname, &emp.TypeService,
		&emp.StartDate, &emp.Status, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, err
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}
	return emp, nil
}

// GetAllActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetAllActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE status = $1 ORDER BY name, id`

	rows, err := q.Query(ctx, query, employee.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	employees := []employee.Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

// Upsert implements employee.EmployeeRepository. Used by the seeding command.
func (e *employeeRepositoryImpl) Upsert(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (id, name, lastname, type_service, start_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			lastname = EXCLUDED.lastname,
			type_service = EXCLUDED.type_service,
			start_date = EXCLUDED.start_date,
			status = EXCLUDED.status,
			updated_at = NOW()
	`

	_, err := q.Exec(ctx, query, emp.ID, emp.Name, emp.Lastname, emp.TypeService, emp.StartDate, emp.Status)
	if err != nil {
		return fmt.Errorf("failed to upsert employee %s: %w", emp.ID, err)
	}
	return nil
}
