package user

import (
	"time"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleHR       Role = "HR"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

// CanDecideLeave reports whether the role may approve or reject leave.
func (r Role) CanDecideLeave() bool {
	return r == RoleAdmin || r == RoleHR || r == RoleManager
}

// CanProcessPayroll reports whether the role may create payroll records.
func (r Role) CanProcessPayroll() bool {
	return r == RoleAdmin || r == RoleHR
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	EmployeeID   *string // business key of the linked employee record
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
