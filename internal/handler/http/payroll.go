package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/peopleops/hrms-backend-go/internal/domain/payroll"
	"github.com/peopleops/hrms-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Process(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Payslip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.Service
}

func NewPayrollHandler(payrollService payroll.Service) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// Process implements PayrollHandler.
func (h *payrollHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	var req payroll.ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.Process(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll processed", result)
}

// UpdateStatus implements PayrollHandler.
func (h *payrollHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.payrollService.UpdateStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll status updated", result)
}

// Get implements PayrollHandler.
func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements PayrollHandler.
func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	month, _ := strconv.Atoi(q.Get("month"))
	year, _ := strconv.Atoi(q.Get("year"))

	filter := payroll.Filter{
		EmployeeID: q.Get("employee_id"),
		Month:      month,
		Year:       year,
		Status:     q.Get("status"),
		Page:       page,
		Limit:      limit,
	}

	result, err := h.payrollService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages(result.TotalCount, result.Limit),
	})
}

// Summary implements PayrollHandler.
func (h *payrollHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	month, _ := strconv.Atoi(q.Get("month"))
	year, _ := strconv.Atoi(q.Get("year"))

	filter := payroll.SummaryFilter{
		Month:      month,
		Year:       year,
		Department: q.Get("department"),
	}

	result, err := h.payrollService.Summary(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Payslip implements PayrollHandler.
func (h *payrollHandlerImpl) Payslip(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.Payslip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
