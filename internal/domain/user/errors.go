package user

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
	ErrUserDeactivated  = errors.New("user account is deactivated")
)
