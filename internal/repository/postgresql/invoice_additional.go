package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/house-services-backend/internal/domain/invoice"
	"github.com/cmlabs-hris/house-services-backend/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const additionalColumns = `id, invoice_id, concept, amount, status, created_at`

type additionalRepositoryImpl struct {
	db *database.DB
}

func NewAdditionalRepository(db *database.DB) invoice.AdditionalRepository {
	return &additionalRepositoryImpl{db: db}
}

func scanAdditional(row pgx.Row) (invoice.InvoiceAdditional, error) {
	var a invoice.InvoiceAdditional
	err := row.Scan(&a.ID, &a.InvoiceID, &a.Concept, &a.Amount, &a.Status, &a.CreatedAt)
	return a, err
}

// CreateBatch implements invoice.AdditionalRepository. Rows are inserted in order.
func (r *additionalRepositoryImpl) CreateBatch(ctx context.Context, adds []invoice.InvoiceAdditional) ([]invoice.InvoiceAdditional, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO invoice_additionals (id, invoice_id, concept, amount, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + additionalColumns

	created := make([]invoice.InvoiceAdditional, 0, len(adds))
	for _, a := range adds {
		if a.ID == "" {
			id, err := uuid.NewV7()
			if err != nil {
				return nil, fmt.Errorf("failed to generate additional id: %w", err)
			}
			a.ID = id.String()
		}
		if a.Status == "" {
			a.Status = invoice.StatusActive
		}

		row, err := scanAdditional(q.QueryRow(ctx, query, a.ID, a.InvoiceID, a.Concept, a.Amount, a.Status))
		if err != nil {
			return nil, fmt.Errorf("failed to create additional %q for invoice %s: %w", a.Concept, a.InvoiceID, err)
		}
		created = append(created, row)
	}

	return created, nil
}

// GetActiveByInvoiceIDs implements invoice.AdditionalRepository.
func (r *additionalRepositoryImpl) GetActiveByInvoiceIDs(ctx context.Context, invoiceIDs []string) (map[string][]invoice.InvoiceAdditional, error) {
	result := make(map[string][]invoice.InvoiceAdditional, len(invoiceIDs))
	if len(invoiceIDs) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + additionalColumns + `
		FROM invoice_additionals
		WHERE invoice_id = ANY($1::uuid[]) AND status = $2
		ORDER BY created_at, id
	`

	rows, err := q.Query(ctx, query, invoiceIDs, invoice.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice additionals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanAdditional(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice additional: %w", err)
		}
		result[a.InvoiceID] = append(result[a.InvoiceID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoice additionals: %w", err)
	}

	return result, nil
}

// DeprecateByInvoiceID implements invoice.AdditionalRepository.
func (r *additionalRepositoryImpl) DeprecateByInvoiceID(ctx context.Context, invoiceID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE invoice_additionals SET status = $1 WHERE invoice_id = $2 AND status = $3`

	tag, err := q.Exec(ctx, query, invoice.StatusDeprecated, invoiceID, invoice.StatusActive)
	if err != nil {
		return 0, fmt.Errorf("failed to deprecate additionals of invoice %s: %w", invoiceID, err)
	}
	return tag.RowsAffected(), nil
}
