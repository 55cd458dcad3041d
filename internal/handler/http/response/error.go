package response

import (
	"errors"
	"net/http"

	"github.com/peopleops/hrms-backend-go/internal/domain/attendance"
	"github.com/peopleops/hrms-backend-go/internal/domain/auth"
	"github.com/peopleops/hrms-backend-go/internal/domain/employee"
	"github.com/peopleops/hrms-backend-go/internal/domain/leave"
	"github.com/peopleops/hrms-backend-go/internal/domain/payroll"
	"github.com/peopleops/hrms-backend-go/internal/domain/user"
	"github.com/peopleops/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrMissingIdentity):
		Unauthorized(w, "Missing caller identity")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserDeactivated):
		Forbidden(w, "Account is deactivated")
	case errors.Is(err, user.ErrInsufficientRole):
		Forbidden(w, "Insufficient role for this operation")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrNoEmployeeRecord):
		NotFound(w, "No employee record linked to this account")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in")
	case errors.Is(err, attendance.ErrNoOpenClockIn):
		BadRequest(w, "No open clock-in session", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrClockOutBeforeIn):
		BadRequest(w, "Clock-out must not precede clock-in", nil)
	case errors.Is(err, attendance.ErrInvalidPeriod):
		BadRequest(w, "Invalid month or year", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave application not found")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "An overlapping leave application already exists")
	case errors.Is(err, leave.ErrLeaveAlreadyDecided):
		Conflict(w, "Leave application is no longer pending")
	case errors.Is(err, leave.ErrNotLeaveOwner):
		Forbidden(w, "Only the applicant may cancel this application")
	case errors.Is(err, leave.ErrRejectionReasonRequired):
		BadRequest(w, "Rejection reason is required", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollAlreadyExists):
		Conflict(w, "Payroll already processed for this period")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid month or year", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
