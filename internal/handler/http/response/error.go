package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/house-services-backend/internal/domain/employee"
	"github.com/cmlabs-hris/house-services-backend/internal/domain/invoice"
	"github.com/cmlabs-hris/house-services-backend/internal/pkg/jwt"
	"github.com/cmlabs-hris/house-services-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Unmapped unique violation, its detail is safe to surface
	var constraintErr *invoice.ConstraintViolationError
	if errors.As(err, &constraintErr) {
		BadRequest(w, constraintErr.Detail, map[string]string{"constraint": constraintErr.Constraint})
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Invoice domain errors
	case errors.Is(err, invoice.ErrInvoiceNotFound):
		NotFound(w, "Invoice not found")
	case errors.Is(err, invoice.ErrInvoiceAlreadyExists):
		DuplicateInvoice(w, "An invoice exists for required employee on the month and year specified")
	case errors.Is(err, invoice.ErrInvalidInvoiceDate):
		BadRequest(w, "Invalid date supplied", nil)
	case errors.Is(err, invoice.ErrInvalidBasicSalary):
		BadRequest(w, "Basic salary must not be negative", nil)
	case errors.Is(err, invoice.ErrInvalidServiceStartDate):
		BadRequest(w, "Employee service start date is in the future", nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
