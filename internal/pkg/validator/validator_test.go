package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2025-03-10")
	assert.True(t, ok)

	_, ok = IsValidDate("10-03-2025")
	assert.False(t, ok)

	_, ok = IsValidDate("2025-03-10T09:00:00Z")
	assert.False(t, ok)
}

func TestIsValidDateTime(t *testing.T) {
	_, ok := IsValidDateTime("2025-03-10T09:00:00Z")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2025-03-10T09:00:00+07:00")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2025-03-10")
	assert.False(t, ok)
}

func TestIsValidEmployeeID(t *testing.T) {
	assert.True(t, IsValidEmployeeID("EMP-0042"))
	assert.True(t, IsValidEmployeeID("EMP-123456"))
	assert.False(t, IsValidEmployeeID("EMP-42"))
	assert.False(t, IsValidEmployeeID("emp-0042"))
	assert.False(t, IsValidEmployeeID("0042"))
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "must be a valid email address"},
		{Field: "password", Message: "is required"},
	}

	assert.Equal(t, map[string]string{
		"email":    "must be a valid email address",
		"password": "is required",
	}, errs.ToMap())
	assert.Contains(t, errs.Error(), "email: must be a valid email address")
}
