package main

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/house-services-backend/internal/domain/employee"
	"github.com/cmlabs-hris/house-services-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmployees_BundledFile(t *testing.T) {
	f, err := os.Open("../../assets/employees.yaml")
	require.NoError(t, err)
	defer f.Close()

	employees, err := loadEmployees(f)
	require.NoError(t, err)
	require.Len(t, employees, 2)

	assert.Equal(t, "12345", employees[0].ID)
	assert.Equal(t, "Yanet", employees[0].Name)
	assert.Equal(t, "kidsCare", employees[0].TypeService)
	assert.Equal(t, time.Date(2018, time.March, 3, 0, 0, 0, 0, time.UTC), employees[0].StartDate)
	assert.Equal(t, employee.StatusActive, employees[0].Status)

	assert.Equal(t, "67890", employees[1].ID)
	assert.Equal(t, "cleanning", employees[1].TypeService)
}

func TestLoadEmployees_Invalid(t *testing.T) {
	input := `
employees:
  - id: "1"
    name: Ana
    typeService: cooking
    startDate: 03/03/2018
  - id: "1"
    name: ""
    typeService: cooking
    startDate: 2019-01-01
    status: retired
`
	_, err := loadEmployees(strings.NewReader(input))
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	details := errs.ToMap()
	assert.Contains(t, details, "employees[0].startDate")
	assert.Contains(t, details, "employees[1].id")
	assert.Contains(t, details, "employees[1].name")
	assert.Contains(t, details, "employees[1].status")
}

func TestLoadEmployees_Malformed(t *testing.T) {
	_, err := loadEmployees(strings.NewReader("employees: [this is: not valid"))
	assert.Error(t, err)
}
