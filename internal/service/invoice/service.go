package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/house-services-backend/internal/domain/employee"
	"github.com/cmlabs-hris/house-services-backend/internal/domain/invoice"
	"github.com/cmlabs-hris/house-services-backend/internal/pkg/database"
	"github.com/cmlabs-hris/house-services-backend/internal/pkg/validator"
)

type InvoiceServiceImpl struct {
	tx              database.Transactor
	invoiceRepo     invoice.InvoiceRepository
	additionalRepo  invoice.AdditionalRepository
	employeeService employee.EmployeeService
	calculator      *Calculator
	defaultLimit    int
}

func NewInvoiceService(
	tx database.Transactor,
	invoiceRepo invoice.InvoiceRepository,
	additionalRepo invoice.AdditionalRepository,
	employeeService employee.EmployeeService,
	calculator *Calculator,
	defaultLimit int,
) *InvoiceServiceImpl {
	if calculator == nil {
		calculator = NewCalculator(nil)
	}
	return &InvoiceServiceImpl{
		tx:              tx,
		invoiceRepo:     invoiceRepo,
		additionalRepo:  additionalRepo,
		employeeService: employeeService,
		calculator:      calculator,
		defaultLimit:    defaultLimit,
	}
}

var _ invoice.InvoiceService = (*InvoiceServiceImpl)(nil)

// CalculateMonthInvoice previews the figures of an invoice without persisting anything.
func (s *InvoiceServiceImpl) CalculateMonthInvoice(ctx context.Context, req invoice.MonthInvoiceRequest) (invoice.InvoicePreviewResponse, error) {
	if err := req.Validate(); err != nil {
		return invoice.InvoicePreviewResponse{}, err
	}

	// 1. Validate date
	if !s.calculator.ValidateInvoiceDate(req.Month, req.Year) {
		return invoice.InvoicePreviewResponse{}, invoice.ErrInvalidInvoiceDate
	}

	// 2. Find employee
	emp, err := s.employeeService.FindOne(ctx, req.EmployeeID)
	if err != nil {
		return invoice.InvoicePreviewResponse{}, err
	}

	// 3. Basic salary and seniority
	basicSalary, err := s.calculator.CalculateBasicSalary(req.RegularHoursMonth, req.CostPerRegularHour)
	if err != nil {
		return invoice.InvoicePreviewResponse{}, err
	}

	seniority, err := s.calculator.CalculateSeniorityAmount(basicSalary, emp.StartDate)
	if err != nil {
		return invoice.InvoicePreviewResponse{}, err
	}

	// 4. Extra hours and additional concepts
	extra := s.calculator.CalculateExtraHoursAmount(req.ExtraHours, req.CostPerExtraHour)
	additionals := s.calculator.CalculateAdditionalConceptsAmount(req.Additionals)

	return invoice.InvoicePreviewResponse{
		EmployeeID:       emp.ID,
		EmployeeName:     emp.Name,
		Month:            req.Month,
		Year:             req.Year,
		BasicSalary:      basicSalary,
		SeniorityAmount:  seniority,
		ExtraHoursAmount: extra,
		Additionals:      additionals,
		Total:            basicSalary.Add(seniority).Add(extra).Add(additionals),
	}, nil
}

func (s *InvoiceServiceImpl) CreateMonthInvoice(ctx context.Context, req invoice.MonthInvoiceRequest) (invoice.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	// 1. Validate date
	if !s.calculator.ValidateInvoiceDate(req.Month, req.Year) {
		return invoice.InvoiceResponse{}, invoice.ErrInvalidInvoiceDate
	}

	// 2. Employee must exist
	if _, err := s.employeeService.FindOne(ctx, req.EmployeeID); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	var created invoice.Invoice
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		// 3. One active invoice per employee, month and year.
		// The partial unique index on invoices is what actually enforces it.
		exists, err := s.HasInvoiceForEmployeeInMonthAndYear(txCtx, req.EmployeeID, req.Month, req.Year)
		if err != nil {
			return err
		}
		if exists {
			return invoice.ErrInvoiceAlreadyExists
		}

		// 4. Persist invoice and its additionals
		created, err = s.invoiceRepo.Create(txCtx, invoice.Invoice{
			EmployeeID:         req.EmployeeID,
			Month:              req.Month,
			Year:               req.Year,
			CostPerRegularHour: req.CostPerRegularHour,
			RegularHoursMonth:  req.RegularHoursMonth,
			CostPerExtraHour:   req.CostPerExtraHour,
			ExtraHours:         req.ExtraHours,
			Status:             invoice.StatusActive,
		})
		if err != nil {
			return err
		}

		created.Additionals = []invoice.InvoiceAdditional{}
		if len(req.Additionals) > 0 {
			adds, err := s.additionalRepo.CreateBatch(txCtx, invoice.NewAdditionals(created.ID, req.Additionals))
			if err != nil {
				return err
			}
			created.Additionals = adds
		}
		return nil
	})
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}

	slog.InfoContext(ctx, "invoice created",
		"invoice_id", created.ID,
		"employee_id", created.EmployeeID,
		"month", created.Month,
		"year", created.Year,
	)

	return invoice.NewInvoiceResponse(created), nil
}

// HasInvoiceForEmployeeInMonthAndYear reports whether an active invoice occupies the period.
func (s *InvoiceServiceImpl) HasInvoiceForEmployeeInMonthAndYear(ctx context.Context, employeeID string, month, year int) (bool, error) {
	_, err := s.invoiceRepo.GetActiveByPeriod(ctx, employeeID, month, year)
	if err != nil {
		if errors.Is(err, invoice.ErrInvoiceNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *InvoiceServiceImpl) GetInvoice(ctx context.Context, id string) (invoice.InvoiceResponse, error) {
	inv, err := s.getActiveInvoice(ctx, id)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}

	if err := s.loadAdditionals(ctx, []*invoice.Invoice{&inv}); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	return invoice.NewInvoiceResponse(inv), nil
}

func (s *InvoiceServiceImpl) ListInvoicesByYear(ctx context.Context, req invoice.ListInvoicesRequest) (invoice.InvoicePage, error) {
	req.Normalize(s.defaultLimit)
	if err := req.Validate(); err != nil {
		return invoice.InvoicePage{}, err
	}

	invoices, total, err := s.invoiceRepo.List(ctx, req)
	if err != nil {
		return invoice.InvoicePage{}, err
	}

	ptrs := make([]*invoice.Invoice, len(invoices))
	for i := range invoices {
		ptrs[i] = &invoices[i]
	}
	if err := s.loadAdditionals(ctx, ptrs); err != nil {
		return invoice.InvoicePage{}, err
	}

	data := make([]invoice.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		data = append(data, invoice.NewInvoiceResponse(inv))
	}

	return invoice.InvoicePage{
		Data:       data,
		Total:      total,
		TotalPages: invoice.TotalPages(total, req.Limit),
	}, nil
}

func (s *InvoiceServiceImpl) UpdateInvoice(ctx context.Context, req invoice.UpdateInvoiceRequest) (invoice.InvoiceResponse, error) {
	// 1. Stored invoice, a missing one wins over a malformed patch
	stored, err := s.getActiveInvoice(ctx, req.ID)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	// 2. Date and period checks, reported together
	if err := s.validateUpdate(ctx, req, stored); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	var updated invoice.Invoice
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		// 3. Replace additionals: deprecate every active one, then insert the new set
		var adds []invoice.InvoiceAdditional
		if req.HasAdditionals() {
			if _, err := s.additionalRepo.DeprecateByInvoiceID(txCtx, stored.ID); err != nil {
				return err
			}
			adds = []invoice.InvoiceAdditional{}
			if len(req.Additionals) > 0 {
				adds, err = s.additionalRepo.CreateBatch(txCtx, invoice.NewAdditionals(stored.ID, req.Additionals))
				if err != nil {
					return err
				}
			}
		}

		// 4. Persist the patched invoice
		updated, err = s.invoiceRepo.Update(txCtx, stored.ApplyPatch(req))
		if err != nil {
			return err
		}

		if adds != nil {
			updated.Additionals = adds
			return nil
		}
		return s.loadAdditionals(txCtx, []*invoice.Invoice{&updated})
	})
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}

	slog.InfoContext(ctx, "invoice updated",
		"invoice_id", updated.ID,
		"additionals_replaced", req.HasAdditionals(),
	)

	return invoice.NewInvoiceResponse(updated), nil
}

func (s *InvoiceServiceImpl) validateUpdate(ctx context.Context, req invoice.UpdateInvoiceRequest, stored invoice.Invoice) error {
	var errs validator.ValidationErrors

	if !s.calculator.ValidateInvoiceDate(req.Month, req.Year) {
		errs = append(errs, validator.ValidationError{Field: "invalid_date", Message: "Invalid date supplied"})
	}

	target := invoice.Period{EmployeeID: req.EmployeeID, Month: req.Month, Year: req.Year}
	if target != stored.Period() {
		occupied, err := s.invoiceRepo.GetActiveByPeriod(ctx, target.EmployeeID, target.Month, target.Year)
		switch {
		case err == nil && occupied.ID != stored.ID:
			errs = append(errs, validator.ValidationError{Field: "invoice_exists_in_days", Message: "Invoice exists in specified date"})
		case err != nil && !errors.Is(err, invoice.ErrInvoiceNotFound):
			return err
		}
	}

	return errs.OrNil()
}

func (s *InvoiceServiceImpl) getActiveInvoice(ctx context.Context, id string) (invoice.Invoice, error) {
	if !validator.IsValidUUID(id) {
		return invoice.Invoice{}, invoice.ErrInvoiceNotFound
	}
	return s.invoiceRepo.GetByID(ctx, id)
}

func (s *InvoiceServiceImpl) loadAdditionals(ctx context.Context, invoices []*invoice.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}

	ids := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		ids = append(ids, inv.ID)
	}

	byInvoice, err := s.additionalRepo.GetActiveByInvoiceIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load invoice additionals: %w", err)
	}

	for _, inv := range invoices {
		inv.Additionals = byInvoice[inv.ID]
		if inv.Additionals == nil {
			inv.Additionals = []invoice.InvoiceAdditional{}
		}
	}
	return nil
}
