package invoice

import "context"

// InvoiceService drives the invoice lifecycle: preview, creation, lookup and update.
type InvoiceService interface {
	CalculateMonthInvoice(ctx context.Context, req MonthInvoiceRequest) (InvoicePreviewResponse, error)
	CreateMonthInvoice(ctx context.Context, req MonthInvoiceRequest) (InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (InvoiceResponse, error)
	ListInvoicesByYear(ctx context.Context, req ListInvoicesRequest) (InvoicePage, error)
	UpdateInvoice(ctx context.Context, req UpdateInvoiceRequest) (InvoiceResponse, error)
}
