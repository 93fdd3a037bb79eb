package employee

import (
	"context"
	"strings"

	"github.com/cmlabs-hris/house-services-backend/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
	}
}

// FindOne implements employee.EmployeeService
func (s *EmployeeServiceImpl) FindOne(ctx context.Context, id string) (employee.Employee, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return s.employeeRepo.GetByID(ctx, id)
}

// GetEmployee implements employee.EmployeeService
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.FindOne(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(emp), nil
}

// ListActiveEmployees implements employee.EmployeeService
func (s *EmployeeServiceImpl) ListActiveEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.GetAllActive(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		result = append(result, employee.NewEmployeeResponse(emp))
	}
	return result, nil
}
