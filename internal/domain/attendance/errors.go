package attendance

import "errors"

var (
	ErrAlreadyClockedIn   = errors.New("already clocked in today")
	ErrNoOpenClockIn      = errors.New("no active clock-in found for today")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidPeriod      = errors.New("invalid month/year period")
	ErrClockOutBeforeIn   = errors.New("clock-out must not precede clock-in")
)
