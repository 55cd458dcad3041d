package attendance

import (
	"github.com/peopleops/hrms-backend-go/internal/pkg/validator"
)

type ClockInRequest struct {
	// EmployeeID may be supplied by admins clocking in on behalf of someone;
	// otherwise the service resolves it from the caller's token.
	EmployeeID *string   `json:"employee_id,omitempty"`
	Location   *Location `json:"location,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != nil && validator.IsEmpty(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must not be blank when provided"})
	}
	if r.Location != nil && validator.IsEmpty(r.Location.Type) {
		errs = append(errs, validator.ValidationError{Field: "location.type", Message: "is required when location is provided"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClockOutRequest struct {
	EmployeeID   *string `json:"employee_id,omitempty"`
	BreakMinutes int     `json:"break_minutes"`
	Notes        *string `json:"notes,omitempty"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "break_minutes", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateRequest is the admin edit path for fixing wrong records. Recomputed
// hours replace the clock-out derived values.
type UpdateRequest struct {
	ID           string  `json:"-"`
	ClockIn      *string `json:"clock_in,omitempty"`  // RFC3339
	ClockOut     *string `json:"clock_out,omitempty"` // RFC3339
	BreakMinutes *int    `json:"break_minutes,omitempty"`
	Status       *string `json:"status,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if r.ClockIn != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockIn); !ok {
			errs = append(errs, validator.ValidationError{Field: "clock_in", Message: "must be an RFC3339 timestamp"})
		}
	}
	if r.ClockOut != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockOut); !ok {
			errs = append(errs, validator.ValidationError{Field: "clock_out", Message: "must be an RFC3339 timestamp"})
		}
	}
	if r.BreakMinutes != nil && *r.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "break_minutes", Message: "must be non-negative"})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, ValidStatuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "is not a valid attendance status"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Filter selects attendance rows for listing. StartDate/EndDate are
// "YYYY-MM-DD"; when both are empty the service defaults to the current month.
type Filter struct {
	EmployeeID string
	StartDate  string
	EndDate    string
	Page       int
	Limit      int
}

type AttendanceResponse struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employee_id"`
	Date          string    `json:"date"`
	ClockIn       string    `json:"clock_in"`
	ClockOut      *string   `json:"clock_out,omitempty"`
	BreakMinutes  int       `json:"break_minutes"`
	TotalHours    float64   `json:"total_hours"`
	OvertimeHours float64   `json:"overtime_hours"`
	Status        string    `json:"status"`
	Location      *Location `json:"location,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
}

// MonthlySummary aggregates one employee month.
type MonthlySummary struct {
	TotalDays     int     `json:"total_days"`
	PresentDays   int     `json:"present_days"`
	TotalHours    float64 `json:"total_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
}

type ListResponse struct {
	Data       []AttendanceResponse `json:"data"`
	Summary    MonthlySummary       `json:"summary"`
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
}
