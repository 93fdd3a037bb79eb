package invoice

import (
	"errors"
	"fmt"
)

var (
	ErrInvoiceNotFound         = errors.New("invoice not found")
	ErrInvoiceAlreadyExists    = errors.New("an invoice exists for required employee on the month and year specified")
	ErrInvalidInvoiceDate      = errors.New("invoice month and year must not be in the future")
	ErrInvalidBasicSalary      = errors.New("basic salary must not be negative")
	ErrInvalidServiceStartDate = errors.New("employee service start date is in the future")
)

// ConstraintViolationError is a unique violation the repository could not map to a
// domain error. Its detail is safe to return to the caller.
type ConstraintViolationError struct {
	Constraint string
	Detail     string
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("constraint %s violated: %s", e.Constraint, e.Detail)
}
