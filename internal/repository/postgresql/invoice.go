package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/house-services-backend/internal/domain/employee"
	"github.com/cmlabs-hris/house-services-backend/internal/domain/invoice"
	"github.com/cmlabs-hris/house-services-backend/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const invoiceColumns = `id, employee_id, month, year, cost_per_regular_hour, regular_hours_month,
	cost_per_extra_hour, extra_hours, status, created_at, updated_at`

type invoiceRepositoryImpl struct {
	db *database.DB
}

func NewInvoiceRepository(db *database.DB) invoice.InvoiceRepository {
	return &invoiceRepositoryImpl{db: db}
}

func scanInvoice(row pgx.Row) (invoice.Invoice, error) {
	var inv invoice.Invoice
	err := row.Scan(
		&inv.ID, &inv.EmployeeID, &inv.Month, &inv.Year,
		&inv.CostPerRegularHour, &inv.RegularHoursMonth,
		&inv.CostPerExtraHour, &inv.ExtraHours,
		&inv.Status, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invoice.Invoice{}, invoice.ErrInvoiceNotFound
		}
		return invoice.Invoice{}, err
	}
	return inv, nil
}

// translateInvoiceError maps constraint violations raised by writes on invoices.
func translateInvoiceError(err error) error {
	pgErr, ok := asPgError(err)
	if !ok {
		return err
	}
	switch pgErr.Code {
	case uniqueViolationCode:
		if pgErr.ConstraintName == invoicePeriodConstraint {
			return invoice.ErrInvoiceAlreadyExists
		}
		return &invoice.ConstraintViolationError{Constraint: pgErr.ConstraintName, Detail: pgErr.Detail}
	case foreignKeyViolationCode:
		if pgErr.ConstraintName == invoiceEmployeeConstraint {
			return employee.ErrEmployeeNotFound
		}
		return &invoice.ConstraintViolationError{Constraint: pgErr.ConstraintName, Detail: pgErr.Detail}
	}
	return err
}

// Create implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) Create(ctx context.Context, inv invoice.Invoice) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	if inv.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return invoice.Invoice{}, fmt.Errorf("failed to generate invoice id: %w", err)
		}
		inv.ID = id.String()
	}
	if inv.Status == "" {
		inv.Status = invoice.StatusActive
	}

	query := `
		INSERT INTO invoices (
			id, employee_id, month, year, cost_per_regular_hour, regular_hours_month,
			cost_per_extra_hour, extra_hours, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + invoiceColumns

	created, err := scanInvoice(q.QueryRow(ctx, query,
		inv.ID, inv.EmployeeID, inv.Month, inv.Year,
		inv.CostPerRegularHour, inv.RegularHoursMonth,
		inv.CostPerExtraHour, inv.ExtraHours, inv.Status,
	))
	if err != nil {
		if translated := translateInvoiceError(err); translated != err {
			return invoice.Invoice{}, translated
		}
		return invoice.Invoice{}, fmt.Errorf("failed to create invoice: %w", err)
	}

	return created, nil
}

// GetByID implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) GetByID(ctx context.Context, id string) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 AND status = $2`

	inv, err := scanInvoice(q.QueryRow(ctx, query, id, invoice.StatusActive))
	if err != nil {
		if errors.Is(err, invoice.ErrInvoiceNotFound) {
			return invoice.Invoice{}, err
		}
		return invoice.Invoice{}, fmt.Errorf("failed to get invoice with id %s: %w", id, err)
	}
	return inv, nil
}

// GetActiveByPeriod implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) GetActiveByPeriod(ctx context.Context, employeeID string, month, year int) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE employee_id = $1 AND month = $2 AND year = $3 AND status = $4
		LIMIT 1
	`

	inv, err := scanInvoice(q.QueryRow(ctx, query, employeeID, month, year, invoice.StatusActive))
	if err != nil {
		if errors.Is(err, invoice.ErrInvoiceNotFound) {
			return invoice.Invoice{}, err
		}
		return invoice.Invoice{}, fmt.Errorf("failed to get invoice for employee %s on %d/%d: %w", employeeID, month, year, err)
	}
	return inv, nil
}

// List implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) List(ctx context.Context, filter invoice.ListInvoicesRequest) ([]invoice.Invoice, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"employee_id = $1", "status = $2"}
	args := []interface{}{filter.EmployeeID, invoice.StatusActive}

	if filter.Year != nil {
		args = append(args, *filter.Year)
		conditions = append(conditions, fmt.Sprintf("year = $%d", len(args)))
	}

	whereClause := "WHERE " + strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM invoices ` + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM invoices
		%s
		ORDER BY year DESC, month DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, invoiceColumns, whereClause, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	invoices := []invoice.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate invoices: %w", err)
	}

	return invoices, total, nil
}

// Update implements invoice.InvoiceRepository. Only active invoices can be updated.
func (r *invoiceRepositoryImpl) Update(ctx context.Context, inv invoice.Invoice) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE invoices SET
			employee_id = $2,
			month = $3,
			year = $4,
			cost_per_regular_hour = $5,
			regular_hours_month = $6,
			cost_per_extra_hour = $7,
			extra_hours = $8,
			updated_at = NOW()
		WHERE id = $1 AND status = $9
		RETURNING ` + invoiceColumns

	updated, err := scanInvoice(q.QueryRow(ctx, query,
		inv.ID, inv.EmployeeID, inv.Month, inv.Year,
		inv.CostPerRegularHour, inv.RegularHoursMonth,
		inv.CostPerExtraHour, inv.ExtraHours, invoice.StatusActive,
	))
	if err != nil {
		if errors.Is(err, invoice.ErrInvoiceNotFound) {
			return invoice.Invoice{}, err
		}
		if translated := translateInvoiceError(err); translated != err {
			return invoice.Invoice{}, translated
		}
		return invoice.Invoice{}, fmt.Errorf("failed to update invoice %s: %w", inv.ID, err)
	}

	return updated, nil
}
