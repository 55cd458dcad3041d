package identity

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

// Identity is the caller resolved from verified JWT claims.
type Identity struct {
	UserID     string
	Email      string
	EmployeeID *string
	Role       string
}

// FromContext extracts the caller identity placed in the request context by
// the jwtauth verifier.
func FromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	id := Identity{UserID: userID}
	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		id.Role = role
	}
	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		id.EmployeeID = &employeeID
	}

	return id, nil
}
