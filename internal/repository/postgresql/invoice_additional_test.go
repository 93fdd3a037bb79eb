package postgresql

import (
	"context"
	"regexp"
	"testing"

	"github.com/cmlabs-hris/house-services-backend/internal/domain/invoice"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var additionalRowColumns = []string{"id", "invoice_id", "concept", "amount", "status", "created_at"}

func TestAdditionalRepository_CreateBatch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdditionalRepository(db)

	insert := regexp.QuoteMeta("INSERT INTO invoice_additionals")
	mock.ExpectQuery(insert).
		WithArgs(pgxmock.AnyArg(), testInvoiceID, "Bonus", pgxmock.AnyArg(), invoice.StatusActive).
		WillReturnRows(pgxmock.NewRows(additionalRowColumns).
			AddRow("a1", testInvoiceID, "Bonus", dec("3000"), invoice.StatusActive, testTimestamp))
	mock.ExpectQuery(insert).
		WithArgs(pgxmock.AnyArg(), testInvoiceID, "Transport", pgxmock.AnyArg(), invoice.StatusActive).
		WillReturnRows(pgxmock.NewRows(additionalRowColumns).
			AddRow("a2", testInvoiceID, "Transport", dec("2000"), invoice.StatusActive, testTimestamp))

	created, err := repo.CreateBatch(context.Background(), invoice.NewAdditionals(testInvoiceID, []invoice.AdditionalConceptRequest{
		{Concept: "Bonus", Amount: dec("3000")},
		{Concept: "Transport", Amount: dec("2000")},
	}))

	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "Bonus", created[0].Concept)
	assert.Equal(t, "Transport", created[1].Concept)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdditionalRepository_GetActiveByInvoiceIDs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdditionalRepository(db)
	other := "01923f5e-7b1a-7c3d-8e4f-000000000002"

	mock.ExpectQuery(regexp.QuoteMeta("WHERE invoice_id = ANY($1::uuid[]) AND status = $2")).
		WithArgs([]string{testInvoiceID, other}, invoice.StatusActive).
		WillReturnRows(pgxmock.NewRows(additionalRowColumns).
			AddRow("a1", testInvoiceID, "Bonus", dec("3000"), invoice.StatusActive, testTimestamp).
			AddRow("a2", testInvoiceID, "Transport", dec("2000"), invoice.StatusActive, testTimestamp))

	byInvoice, err := repo.GetActiveByInvoiceIDs(context.Background(), []string{testInvoiceID, other})

	require.NoError(t, err)
	assert.Len(t, byInvoice[testInvoiceID], 2)
	assert.Empty(t, byInvoice[other])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdditionalRepository_GetActiveByInvoiceIDs_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdditionalRepository(db)

	byInvoice, err := repo.GetActiveByInvoiceIDs(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, byInvoice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdditionalRepository_DeprecateByInvoiceID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdditionalRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE invoice_additionals SET status = $1")).
		WithArgs(invoice.StatusDeprecated, testInvoiceID, invoice.StatusActive).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	n, err := repo.DeprecateByInvoiceID(context.Background(), testInvoiceID)

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
