package postgresql_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/house-services-backend/internal/domain/employee"
	"github.com/cmlabs-hris/house-services-backend/internal/domain/invoice"
	"github.com/cmlabs-hris/house-services-backend/internal/repository/postgresql"
	employeeService "github.com/cmlabs-hris/house-services-backend/internal/service/employee"
	invoiceService "github.com/cmlabs-hris/house-services-backend/internal/service/invoice"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntegrationService(t *testing.T) *invoiceService.InvoiceServiceImpl {
	setup := NewTestDatabase(t)
	ctx := context.Background()

	employeeRepo := postgresql.NewEmployeeRepository(setup.DB)
	require.NoError(t, employeeRepo.Upsert(ctx, employee.Employee{
		ID:          "12345",
		Name:        "Yanet",
		TypeService: "kidsCare",
		StartDate:   time.Date(2018, time.March, 3, 0, 0, 0, 0, time.UTC),
		Status:      employee.StatusActive,
	}))

	return invoiceService.NewInvoiceService(
		postgresql.NewTxManager(setup.DB),
		postgresql.NewInvoiceRepository(setup.DB),
		postgresql.NewAdditionalRepository(setup.DB),
		employeeService.NewEmployeeService(employeeRepo),
		invoiceService.NewCalculator(func() time.Time { return time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC) }),
		invoice.DefaultPageLimit,
	)
}

func monthRequest(month int) invoice.MonthInvoiceRequest {
	return invoice.MonthInvoiceRequest{
		EmployeeID:         "12345",
		Month:              month,
		Year:               2026,
		CostPerRegularHour: decimal.NewFromInt(2000),
		RegularHoursMonth:  decimal.NewFromInt(40),
		Additionals: []invoice.AdditionalConceptRequest{
			{Concept: "Bonus", Amount: decimal.NewFromInt(3000)},
		},
	}
}

func TestInvoiceLifecycle_Postgres(t *testing.T) {
	svc := newIntegrationService(t)
	ctx := context.Background()

	created, err := svc.CreateMonthInvoice(ctx, monthRequest(5))
	require.NoError(t, err)
	require.Len(t, created.Additionals, 1)

	fetched, err := svc.GetInvoice(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, fetched.CostPerRegularHour.Equal(decimal.NewFromInt(2000)))
	require.Len(t, fetched.Additionals, 1)

	updated, err := svc.UpdateInvoice(ctx, invoice.UpdateInvoiceRequest{
		ID:          created.ID,
		EmployeeID:  "12345",
		Month:       4,
		Year:        2026,
		Additionals: []invoice.AdditionalConceptRequest{{Concept: "Transport", Amount: decimal.NewFromInt(2000)}},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Month)
	require.Len(t, updated.Additionals, 1)
	assert.Equal(t, "Transport", updated.Additionals[0].Concept)

	year := 2026
	page, err := svc.ListInvoicesByYear(ctx, invoice.ListInvoicesRequest{EmployeeID: "12345", Year: &year})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Data[0].Additionals, 1)
	assert.Equal(t, "Transport", page.Data[0].Additionals[0].Concept)
}

func TestCreateMonthInvoice_ConcurrentDuplicates_Postgres(t *testing.T) {
	svc := newIntegrationService(t)
	ctx := context.Background()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateMonthInvoice(ctx, monthRequest(6))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, invoice.ErrInvoiceAlreadyExists):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
}
