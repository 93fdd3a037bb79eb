package invoice

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the soft lifecycle flag shared by invoices and their additionals.
type Status string

const (
	StatusActive     Status = "active"
	StatusDeprecated Status = "deprecated"
)

// Invoice - one employee's payroll record for a month/year
type Invoice struct {
	ID                 string
	EmployeeID         string
	Month              int
	Year               int
	CostPerRegularHour decimal.Decimal
	RegularHoursMonth  decimal.Decimal
	CostPerExtraHour   *decimal.Decimal
	ExtraHours         *decimal.Decimal
	Status             Status
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Loaded separately, active rows only
	Additionals []InvoiceAdditional
}

// InvoiceAdditional - extra named line item owned by an invoice
type InvoiceAdditional struct {
	ID        string
	InvoiceID string
	Concept   string
	Amount    decimal.Decimal
	Status    Status
	CreatedAt time.Time
}

// Period identifies the slot an active invoice occupies.
type Period struct {
	EmployeeID string
	Month      int
	Year       int
}

func (i Invoice) Period() Period {
	return Period{EmployeeID: i.EmployeeID, Month: i.Month, Year: i.Year}
}

func (i Invoice) IsActive() bool {
	return i.Status == StatusActive
}

// ApplyPatch returns a copy of i with the patch fields written over it.
// Additionals are not touched; they are replaced through the additionals repository.
func (i Invoice) ApplyPatch(p UpdateInvoiceRequest) Invoice {
	out := i
	out.Additionals = slices.Clone(i.Additionals)

	out.EmployeeID = p.EmployeeID
	out.Month = p.Month
	out.Year = p.Year
	if p.CostPerRegularHour != nil {
		out.CostPerRegularHour = *p.CostPerRegularHour
	}
	if p.RegularHoursMonth != nil {
		out.RegularHoursMonth = *p.RegularHoursMonth
	}
	if p.CostPerExtraHour != nil {
		v := *p.CostPerExtraHour
		out.CostPerExtraHour = &v
	}
	if p.ExtraHours != nil {
		v := *p.ExtraHours
		out.ExtraHours = &v
	}
	return out
}

// NewAdditionals builds active line items for invoiceID from request concepts.
func NewAdditionals(invoiceID string, concepts []AdditionalConceptRequest) []InvoiceAdditional {
	adds := make([]InvoiceAdditional, 0, len(concepts))
	for _, c := range concepts {
		adds = append(adds, InvoiceAdditional{
			InvoiceID: invoiceID,
			Concept:   c.Concept,
			Amount:    c.Amount,
			Status:    StatusActive,
		})
	}
	return adds
}
