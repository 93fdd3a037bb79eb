package invoice

import "context"

// InvoiceRepository persists invoice rows. Reads only ever return active invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, inv Invoice) (Invoice, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	GetActiveByPeriod(ctx context.Context, employeeID string, month, year int) (Invoice, error)
	List(ctx context.Context, filter ListInvoicesRequest) ([]Invoice, int64, error)
	Update(ctx context.Context, inv Invoice) (Invoice, error)
}

// AdditionalRepository persists invoice_additionals rows.
type AdditionalRepository interface {
	CreateBatch(ctx context.Context, adds []InvoiceAdditional) ([]InvoiceAdditional, error)
	GetActiveByInvoiceIDs(ctx context.Context, invoiceIDs []string) (map[string][]InvoiceAdditional, error)
	DeprecateByInvoiceID(ctx context.Context, invoiceID string) (int64, error)
}
