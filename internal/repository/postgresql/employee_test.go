package postgresql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/cmlabs-hris/house-services-backend/internal/domain/employee"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var employeeRowColumns = []string{"id", "name", "lastname", "type_service", "start_date", "status", "created_at", "updated_at"}

func TestEmployeeRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepository(db)
	start := time.Date(2018, time.March, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM employees WHERE id = $1")).
		WithArgs("12345").
		WillReturnRows(pgxmock.NewRows(employeeRowColumns).
			AddRow("12345", "Yanet", "", "kidsCare", start, employee.StatusActive, testTimestamp, testTimestamp))

	emp, err := repo.GetByID(context.Background(), "12345")

	require.NoError(t, err)
	assert.Equal(t, "Yanet", emp.Name)
	assert.Equal(t, start, emp.StartDate)
	assert.True(t, emp.IsActive())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM employees WHERE id = $1")).
		WithArgs("99999").
		WillReturnRows(pgxmock.NewRows(employeeRowColumns))

	_, err := repo.GetByID(context.Background(), "99999")

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_GetAllActive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1 ORDER BY name")).
		WithArgs(employee.StatusActive).
		WillReturnRows(pgxmock.NewRows(employeeRowColumns).
			AddRow("67890", "Antonia", "", "cleanning", time.Date(2016, 3, 3, 0, 0, 0, 0, time.UTC), employee.StatusActive, testTimestamp, testTimestamp).
			AddRow("12345", "Yanet", "", "kidsCare", time.Date(2018, 3, 3, 0, 0, 0, 0, time.UTC), employee.StatusActive, testTimestamp, testTimestamp))

	employees, err := repo.GetAllActive(context.Background())

	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, "Antonia", employees[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepository(db)
	start := time.Date(2016, time.March, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (id) DO UPDATE")).
		WithArgs("67890", "Antonia", "", "cleanning", start, employee.StatusActive).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Upsert(context.Background(), employee.Employee{
		ID:          "67890",
		Name:        "Antonia",
		TypeService: "cleanning",
		StartDate:   start,
		Status:      employee.StatusActive,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
