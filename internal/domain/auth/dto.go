package auth

import (
	"github.com/peopleops/hrms-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	ExpiresAt   int64   `json:"expires_at"`
	UserID      string  `json:"user_id"`
	EmployeeID  *string `json:"employee_id,omitempty"`
	Role        string  `json:"role"`
}
