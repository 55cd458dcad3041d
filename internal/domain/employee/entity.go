package employee

import (
	"time"
)

// PersonalInfo is the personal sub-record of an employee, stored as typed columns.
type PersonalInfo struct {
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
	Gender      *string
	Phone       *string
	Address     *string
}

// ProfessionalInfo holds employment details used by payroll and reporting.
type ProfessionalInfo struct {
	Department  string
	Designation string
	HireDate    time.Time
	WorkEmail   *string
}

// BankDetails is read only by the payslip view.
type BankDetails struct {
	BankName      *string
	AccountNumber *string
	IFSCCode      *string
}

type Employee struct {
	ID           string
	EmployeeID   string // business key, e.g. "EMP-0042"
	UserID       *string
	Email        string
	Personal     PersonalInfo
	Professional ProfessionalInfo
	Bank         BankDetails
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName returns the display name used in notifications.
func (e Employee) FullName() string {
	return e.Personal.FirstName + " " + e.Personal.LastName
}
