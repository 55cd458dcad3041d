package payroll

import "errors"

var (
	ErrPayrollNotFound      = errors.New("payroll record not found")
	ErrPayrollAlreadyExists = errors.New("payroll already processed for this period")
	ErrInvalidPeriod        = errors.New("invalid payroll period")
)
