package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/peopleops/hrms-backend-go/internal/domain/leave"
	"github.com/peopleops/hrms-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.Service
}

func NewLeaveHandler(leaveService leave.Service) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

// Apply implements LeaveHandler.
func (h *leaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req leave.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.leaveService.Apply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave application submitted", result)
}

// Decide implements LeaveHandler.
func (h *leaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req leave.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.LeaveID = chi.URLParam(r, "id")

	result, err := h.leaveService.Decide(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave application decided", result)
}

// Cancel implements LeaveHandler.
func (h *leaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave application cancelled", result)
}

// Balance implements LeaveHandler.
func (h *leaveHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	year, _ := strconv.Atoi(q.Get("year"))
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	result, err := h.leaveService.Balance(r.Context(), q.Get("employee_id"), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements LeaveHandler.
func (h *leaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements LeaveHandler.
func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	filter := leave.Filter{
		EmployeeID: q.Get("employee_id"),
		Status:     q.Get("status"),
		LeaveType:  q.Get("leave_type"),
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
		Page:       page,
		Limit:      limit,
	}

	result, err := h.leaveService.List(r.Context(), filter)
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
