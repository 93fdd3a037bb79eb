package employee

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/house-services-backend/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetAllActive(ctx context.Context) ([]employee.Employee, error) {
	var result []employee.Employee
	for _, id := range []string{"12345", "67890", "99999"} {
		if emp, ok := f.employees[id]; ok && emp.IsActive() {
			result = append(result, emp)
		}
	}
	return result, nil
}

func (f *fakeEmployeeRepo) Upsert(ctx context.Context, emp employee.Employee) error {
	f.employees[emp.ID] = emp
	return nil
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"12345": {ID: "12345", Name: "Yanet", TypeService: "kidsCare", StartDate: time.Date(2018, 3, 3, 0, 0, 0, 0, time.UTC), Status: employee.StatusActive},
		"67890": {ID: "67890", Name: "Antonia", TypeService: "cleanning", StartDate: time.Date(2016, 3, 3, 0, 0, 0, 0, time.UTC), Status: employee.StatusActive},
		"99999": {ID: "99999", Name: "Rosa", TypeService: "cooking", StartDate: time.Date(2015, 1, 10, 0, 0, 0, 0, time.UTC), Status: employee.StatusInactive},
	}}
}

func TestEmployeeService_GetEmployee_Success(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo())

	got, err := svc.GetEmployee(context.Background(), "12345")

	require.NoError(t, err)
	assert.Equal(t, "Yanet", got.Name)
	assert.Equal(t, "2018-03-03", got.StartDate)
	assert.Equal(t, "active", got.Status)
}

func TestEmployeeService_GetEmployee_NotFound(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo())

	_, err := svc.GetEmployee(context.Background(), "")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.GetEmployee(context.Background(), "00000")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeService_ListActiveEmployees(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo())

	got, err := svc.ListActiveEmployees(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, emp := range got {
		assert.Equal(t, "active", emp.Status)
		assert.NotEqual(t, "99999", emp.ID)
	}
}

func TestEmployeeService_FindOne_ReturnsEntity(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo())

	emp, err := svc.FindOne(context.Background(), " 67890 ")

	require.NoError(t, err)
	assert.Equal(t, "Antonia", emp.Name)
	assert.Equal(t, 2016, emp.StartDate.Year())
}
