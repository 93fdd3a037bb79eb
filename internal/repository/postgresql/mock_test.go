package postgresql

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/house-services-backend/internal/pkg/database"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testTimestamp = time.Date(2026, time.May, 31, 10, 0, 0, 0, time.UTC)

func newMockDB(t *testing.T) (*database.DB, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return database.NewWithPool(mock), mock
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
