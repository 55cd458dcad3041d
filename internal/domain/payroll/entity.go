package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusProcessed Status = "PROCESSED"
	StatusPaid      Status = "PAID"
	StatusOnHold    Status = "ON_HOLD"
)

// PayPeriod identifies one payroll cycle.
type PayPeriod struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Bounds returns the inclusive first and last day of the period in UTC.
func (p PayPeriod) Bounds() (time.Time, time.Time) {
	start := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// Days returns the number of calendar days in the period's month.
func (p PayPeriod) Days() int {
	_, end := p.Bounds()
	return end.Day()
}

// Overtime is the overtime slice of one payroll record.
type Overtime struct {
	Hours  float64         `json:"hours"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// PayrollRecord is the single payroll result for one employee and period.
// Exactly one row exists per (employee_id, month, year); after creation only
// status and payment fields mutate.
type PayrollRecord struct {
	ID         string
	EmployeeID string
	PayPeriod  PayPeriod

	BasicSalary decimal.Decimal
	Allowances  map[string]decimal.Decimal
	Deductions  map[string]decimal.Decimal
	Overtime    Overtime
	Bonus       decimal.Decimal
	Incentives  decimal.Decimal

	WorkingDays       int
	ActualWorkingDays int
	LeaveDays         float64

	GrossSalary decimal.Decimal
	NetSalary   decimal.Decimal

	Status           Status
	PaymentDate      *time.Time
	PaymentMethod    *string
	PaymentReference *string

	ProcessedBy   string
	ProcessedDate time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SumComponents adds up a named component map.
func SumComponents(components map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range components {
		total = total.Add(v)
	}
	return total
}

// ComputeTotals fills GrossSalary and NetSalary from the compensation inputs.
// gross = basic + allowances + bonus + incentives + overtime amount;
// net = gross - deductions.
func (r *PayrollRecord) ComputeTotals() {
	r.GrossSalary = r.BasicSalary.
		Add(SumComponents(r.Allowances)).
		Add(r.Bonus).
		Add(r.Incentives).
		Add(r.Overtime.Amount)
	r.NetSalary = r.GrossSalary.Sub(SumComponents(r.Deductions))
}

// ValidStatuses is used by DTO validation.
var ValidStatuses = []string{
	string(StatusDraft),
	string(StatusProcessed),
	string(StatusPaid),
	string(StatusOnHold),
}
