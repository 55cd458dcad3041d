package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent      Status = "PRESENT"
	StatusAbsent       Status = "ABSENT"
	StatusHalfDay      Status = "HALF_DAY"
	StatusWorkFromHome Status = "WORK_FROM_HOME"
	StatusOnLeave      Status = "ON_LEAVE"
)

// LocationTypeRemote marks a clock-in from outside the office; it flips the
// record status to WORK_FROM_HOME.
const LocationTypeRemote = "REMOTE"

// Location is where a clock event was recorded.
type Location struct {
	Type    string  `json:"type"`
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
}

// Attendance is one employee work day. At most one row exists per
// (employee_id, date); the row opens on clock-in and closes on clock-out.
type Attendance struct {
	ID            string
	EmployeeID    string
	Date          time.Time // day granularity, UTC midnight
	ClockIn       time.Time
	ClockOut      *time.Time // nil while the session is open
	BreakMinutes  int
	TotalHours    float64
	OvertimeHours float64
	Status        Status
	Location      *Location
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsOpen reports whether the session has no clock-out yet.
func (a Attendance) IsOpen() bool {
	return a.ClockOut == nil
}

// ValidStatuses is used by DTO validation and the admin update path.
var ValidStatuses = []string{
	string(StatusPresent),
	string(StatusAbsent),
	string(StatusHalfDay),
	string(StatusWorkFromHome),
	string(StatusOnLeave),
}
