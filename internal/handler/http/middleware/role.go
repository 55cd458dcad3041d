package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/peopleops/hrms-backend-go/internal/domain/user"
	"github.com/peopleops/hrms-backend-go/internal/handler/http/response"
)

func roleFromRequest(r *http.Request) (user.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", false
	}
	return user.Role(roleStr), true
}

// RequireLeaveApprover gates the leave decision endpoints.
func RequireLeaveApprover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromRequest(r)
		if !ok || !role.CanDecideLeave() {
			response.HandleError(w, user.ErrInsufficientRole)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequirePayrollProcessor gates payroll creation and status changes.
func RequirePayrollProcessor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromRequest(r)
		if !ok || !role.CanProcessPayroll() {
			response.HandleError(w, user.ErrInsufficientRole)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin gates the record correction endpoints.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromRequest(r)
		if !ok || (role != user.RoleAdmin && role != user.RoleHR) {
			response.HandleError(w, user.ErrInsufficientRole)
			return
		}

		next.ServeHTTP(w, r)
	})
}
