package invoice

import (
	"fmt"
	"math"

	"github.com/cmlabs-hris/house-services-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100

	// Column shapes: money is NUMERIC(14,2), hours are NUMERIC(10,2), year is INTEGER.
	amountScale        = 2
	moneyIntegerPlaces = 12
	hoursIntegerPlaces = 8
	MaxYear            = math.MaxInt32
)

// ========== REQUEST DTOs ==========

type AdditionalConceptRequest struct {
	Concept string          `json:"concept"`
	Amount  decimal.Decimal `json:"amount"`
}

type MonthInvoiceRequest struct {
	EmployeeID         string                     `json:"employeeId"`
	Month              int                        `json:"month"`
	Year               int                        `json:"year"`
	CostPerRegularHour decimal.Decimal            `json:"costPerRegularHour"`
	RegularHoursMonth  decimal.Decimal            `json:"regularHoursMonth"`
	CostPerExtraHour   *decimal.Decimal           `json:"costPerExtraHour,omitempty"`
	ExtraHours         *decimal.Decimal           `json:"extraHours,omitempty"`
	Additionals        []AdditionalConceptRequest `json:"additionals,omitempty"`
}

func (r *MonthInvoiceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employeeId", Message: "is required"})
	}
	errs = append(errs, validatePeriod(r.Month, r.Year)...)
	errs = append(errs, validatePositive("costPerRegularHour", r.CostPerRegularHour, moneyIntegerPlaces)...)
	errs = append(errs, validatePositive("regularHoursMonth", r.RegularHoursMonth, hoursIntegerPlaces)...)
	errs = append(errs, validateOptionalPositive("costPerExtraHour", r.CostPerExtraHour, moneyIntegerPlaces)...)
	errs = append(errs, validateOptionalPositive("extraHours", r.ExtraHours, hoursIntegerPlaces)...)
	errs = append(errs, validateConcepts(r.Additionals)...)

	return errs.OrNil()
}

// UpdateInvoiceRequest - employeeId, month and year are mandatory, the rest is a partial patch.
// A nil Additionals leaves line items alone; an empty non-nil slice clears them.
type UpdateInvoiceRequest struct {
	ID                 string                     `json:"-"`
	EmployeeID         string                     `json:"employeeId"`
	Month              int                        `json:"month"`
	Year               int                        `json:"year"`
	CostPerRegularHour *decimal.Decimal           `json:"costPerRegularHour,omitempty"`
	RegularHoursMonth  *decimal.Decimal           `json:"regularHoursMonth,omitempty"`
	CostPerExtraHour   *decimal.Decimal           `json:"costPerExtraHour,omitempty"`
	ExtraHours         *decimal.Decimal           `json:"extraHours,omitempty"`
	Additionals        []AdditionalConceptRequest `json:"additionals,omitempty"`
}

func (r *UpdateInvoiceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employeeId", Message: "is required"})
	}
	errs = append(errs, validatePeriod(r.Month, r.Year)...)
	errs = append(errs, validateOptionalPositive("costPerRegularHour", r.CostPerRegularHour, moneyIntegerPlaces)...)
	errs = append(errs, validateOptionalPositive("regularHoursMonth", r.RegularHoursMonth, hoursIntegerPlaces)...)
	errs = append(errs, validateOptionalPositive("costPerExtraHour", r.CostPerExtraHour, moneyIntegerPlaces)...)
	errs = append(errs, validateOptionalPositive("extraHours", r.ExtraHours, hoursIntegerPlaces)...)
	errs = append(errs, validateConcepts(r.Additionals)...)

	return errs.OrNil()
}

// HasAdditionals reports whether the patch replaces the line items.
func (r *UpdateInvoiceRequest) HasAdditionals() bool {
	return r.Additionals != nil
}

type ListInvoicesRequest struct {
	EmployeeID string
	Year       *int
	Limit      int
	Offset     int
}

// Normalize fills in paging defaults.
func (r *ListInvoicesRequest) Normalize(defaultLimit int) {
	if defaultLimit <= 0 {
		defaultLimit = DefaultPageLimit
	}
	if r.Limit == 0 {
		r.Limit = defaultLimit
	}
}

func (r *ListInvoicesRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employeeId", Message: "is required"})
	}
	if r.Year != nil {
		errs = append(errs, validateYear(*r.Year)...)
	}
	if r.Limit <= 0 || r.Limit > MaxPageLimit {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", MaxPageLimit)})
	}
	if r.Offset < 0 {
		errs = append(errs, validator.ValidationError{Field: "offset", Message: "must be zero or greater"})
	}

	return errs.OrNil()
}

func validatePeriod(month, year int) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if !validator.IsValidMonth(month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	errs = append(errs, validateYear(year)...)
	return errs
}

func validateYear(year int) validator.ValidationErrors {
	if year <= 0 || year > MaxYear {
		return validator.ValidationErrors{{Field: "year", Message: fmt.Sprintf("must be between 1 and %d", MaxYear)}}
	}
	return nil
}

func validatePositive(field string, v decimal.Decimal, integerPlaces int32) validator.ValidationErrors {
	if !v.IsPositive() {
		return validator.ValidationErrors{{Field: field, Message: "must be a positive number"}}
	}
	return validateStorable(field, v, integerPlaces)
}

func validateOptionalPositive(field string, v *decimal.Decimal, integerPlaces int32) validator.ValidationErrors {
	if v == nil {
		return nil
	}
	return validatePositive(field, *v, integerPlaces)
}

// validateStorable rejects values the NUMERIC column would round or overflow.
func validateStorable(field string, v decimal.Decimal, integerPlaces int32) validator.ValidationErrors {
	if !v.Truncate(amountScale).Equal(v) {
		return validator.ValidationErrors{{Field: field, Message: fmt.Sprintf("must have at most %d decimal places", amountScale)}}
	}
	if v.Abs().GreaterThanOrEqual(decimal.New(1, integerPlaces)) {
		return validator.ValidationErrors{{Field: field, Message: fmt.Sprintf("must be less than %s", decimal.New(1, integerPlaces).String())}}
	}
	return nil
}

func validateConcepts(concepts []AdditionalConceptRequest) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for i, c := range concepts {
		if validator.IsEmpty(c.Concept) {
			errs = append(errs, validator.ValidationError{Field: fmt.Sprintf("additionals[%d].concept", i), Message: "is required"})
		}
		errs = append(errs, validateStorable(fmt.Sprintf("additionals[%d].amount", i), c.Amount, moneyIntegerPlaces)...)
	}
	return errs
}

// ========== RESPONSE DTOs ==========

type InvoiceAdditionalResponse struct {
	ID      string          `json:"id"`
	Concept string          `json:"concept"`
	Amount  decimal.Decimal `json:"amount"`
	Status  string          `json:"status"`
}

type InvoiceResponse struct {
	ID                 string                      `json:"id"`
	EmployeeID         string                      `json:"employeeId"`
	Month              int                         `json:"month"`
	Year               int                         `json:"year"`
	CostPerRegularHour decimal.Decimal             `json:"costPerRegularHour"`
	RegularHoursMonth  decimal.Decimal             `json:"regularHoursMonth"`
	CostPerExtraHour   *decimal.Decimal            `json:"costPerExtraHour"`
	ExtraHours         *decimal.Decimal            `json:"extraHours"`
	Status             string                      `json:"status"`
	Additionals        []InvoiceAdditionalResponse `json:"additionals"`
}

func NewInvoiceResponse(inv Invoice) InvoiceResponse {
	adds := make([]InvoiceAdditionalResponse, 0, len(inv.Additionals))
	for _, a := range inv.Additionals {
		adds = append(adds, InvoiceAdditionalResponse{
			ID:      a.ID,
			Concept: a.Concept,
			Amount:  a.Amount,
			Status:  string(a.Status),
		})
	}

	return InvoiceResponse{
		ID:                 inv.ID,
		EmployeeID:         inv.EmployeeID,
		Month:              inv.Month,
		Year:               inv.Year,
		CostPerRegularHour: inv.CostPerRegularHour,
		RegularHoursMonth:  inv.RegularHoursMonth,
		CostPerExtraHour:   inv.CostPerExtraHour,
		ExtraHours:         inv.ExtraHours,
		Status:             string(inv.Status),
		Additionals:        adds,
	}
}

type InvoicePage struct {
	Data       []InvoiceResponse `json:"data"`
	Total      int64             `json:"total"`
	TotalPages int               `json:"totalPages"`
}

// TotalPages is ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

// InvoicePreviewResponse - computed figures for an invoice that is not persisted
type InvoicePreviewResponse struct {
	EmployeeID       string          `json:"employeeId"`
	EmployeeName     string          `json:"employeeName"`
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	BasicSalary      decimal.Decimal `json:"basicSalary"`
	SeniorityAmount  decimal.Decimal `json:"seniorityAmount"`
	ExtraHoursAmount decimal.Decimal `json:"extraHoursAmount"`
	Additionals      decimal.Decimal `json:"additionals"`
	Total            decimal.Decimal `json:"total"`
}
