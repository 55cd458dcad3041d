package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrNoEmployeeRecord = errors.New("no employee record linked to this user")
)
