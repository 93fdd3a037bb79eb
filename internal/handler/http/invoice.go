package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/house-services-backend/internal/domain/invoice"
	"github.com/cmlabs-hris/house-services-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

type InvoiceHandler interface {
	ListInvoices(w http.ResponseWriter, r *http.Request)
	GetInvoice(w http.ResponseWriter, r *http.Request)
	CreateInvoice(w http.ResponseWriter, r *http.Request)
	UpdateInvoice(w http.ResponseWriter, r *http.Request)
	CalculateInvoice(w http.ResponseWriter, r *http.Request)
}

type invoiceHandlerImpl struct {
	invoiceService invoice.InvoiceService
}

func NewInvoiceHandler(invoiceService invoice.InvoiceService) InvoiceHandler {
	return &invoiceHandlerImpl{invoiceService: invoiceService}
}

// ListInvoices implements InvoiceHandler - GET /house-services?employeeId=&year=&limit=&offset=
func (h *invoiceHandlerImpl) ListInvoices(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	details := map[string]string{}

	req := invoice.ListInvoicesRequest{EmployeeID: query.Get("employeeId")}

	if y := query.Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			details["year"] = "must be an integer"
		} else {
			req.Year = &year
		}
	}
	if l := query.Get("limit"); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil {
			details["limit"] = "must be an integer"
		} else {
			req.Limit = limit
		}
	}
	if o := query.Get("offset"); o != "" {
		offset, err := strconv.Atoi(o)
		if err != nil {
			details["offset"] = "must be an integer"
		} else {
			req.Offset = offset
		}
	}

	if len(details) > 0 {
		response.BadRequest(w, "Invalid query parameters", details)
		return
	}

	result, err := h.invoiceService.ListInvoicesByYear(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetInvoice implements InvoiceHandler
func (h *invoiceHandlerImpl) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.invoiceService.GetInvoice(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateInvoice implements InvoiceHandler
func (h *invoiceHandlerImpl) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req invoice.MonthInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.invoiceService.CreateMonthInvoice(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Invoice created", result)
}

// UpdateInvoice implements InvoiceHandler
func (h *invoiceHandlerImpl) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req invoice.UpdateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.invoiceService.UpdateInvoice(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invoice updated", result)
}

// CalculateInvoice implements InvoiceHandler - preview without persisting
func (h *invoiceHandlerImpl) CalculateInvoice(w http.ResponseWriter, r *http.Request) {
	var req invoice.MonthInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.invoiceService.CalculateMonthInvoice(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
