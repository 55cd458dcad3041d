package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestPayPeriodBounds(t *testing.T) {
	start, end := PayPeriod{Month: 2, Year: 2024}.Bounds()
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), end)
}

func TestPayPeriodDays(t *testing.T) {
	assert.Equal(t, 29, PayPeriod{Month: 2, Year: 2024}.Days())
	assert.Equal(t, 28, PayPeriod{Month: 2, Year: 2025}.Days())
	assert.Equal(t, 31, PayPeriod{Month: 12, Year: 2025}.Days())
	assert.Equal(t, 30, PayPeriod{Month: 4, Year: 2025}.Days())
}

func TestSumComponents(t *testing.T) {
	assert.True(t, SumComponents(nil).IsZero())
	assert.True(t, SumComponents(map[string]decimal.Decimal{}).IsZero())

	total := SumComponents(map[string]decimal.Decimal{
		"hra":       d("5000"),
		"transport": d("1200.50"),
	})
	assert.True(t, d("6200.50").Equal(total))
}

func TestComputeTotals(t *testing.T) {
	record := PayrollRecord{
		BasicSalary: d("50000"),
		Allowances: map[string]decimal.Decimal{
			"hra":     d("10000"),
			"medical": d("2000"),
		},
		Deductions: map[string]decimal.Decimal{
			"tax": d("8000"),
			"pf":  d("3000"),
		},
		Overtime: Overtime{
			Hours:  5,
			Rate:   d("200"),
			Amount: d("1000"),
		},
		Bonus:      d("4000"),
		Incentives: d("1500"),
	}

	record.ComputeTotals()

	assert.True(t, d("68500").Equal(record.GrossSalary), "gross = %s", record.GrossSalary)
	assert.True(t, d("57500").Equal(record.NetSalary), "net = %s", record.NetSalary)
}

func TestComputeTotalsNoComponents(t *testing.T) {
	record := PayrollRecord{BasicSalary: d("30000")}
	record.ComputeTotals()

	assert.True(t, d("30000").Equal(record.GrossSalary))
	assert.True(t, d("30000").Equal(record.NetSalary))
}
