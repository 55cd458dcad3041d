package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/peopleops/hrms-backend-go/internal/domain/audit"
	"github.com/peopleops/hrms-backend-go/internal/domain/auth"
	"github.com/peopleops/hrms-backend-go/internal/domain/user"
	"github.com/peopleops/hrms-backend-go/internal/pkg/jwt"
)

type fakeUserRepo struct {
	byEmail map[string]user.User
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) TouchLastLogin(_ context.Context, _ string) error { return nil }

type noopAuditRepo struct{}

func (noopAuditRepo) Record(_ context.Context, _ audit.Entry) error { return nil }

func newTestService(t *testing.T) auth.Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	employeeID := "EMP-0001"
	repo := &fakeUserRepo{byEmail: map[string]user.User{
		"ada@example.com": {
			ID:           "u1",
			Email:        "ada@example.com",
			PasswordHash: string(hash),
			Role:         user.RoleEmployee,
			EmployeeID:   &employeeID,
			IsActive:     true,
		},
		"ghost@example.com": {
			ID:           "u2",
			Email:        "ghost@example.com",
			PasswordHash: string(hash),
			Role:         user.RoleEmployee,
			IsActive:     false,
		},
	}}

	jwtService := jwt.NewJWTService("test-secret-key", "1h")
	return NewAuthService(repo, noopAuditRepo{}, jwtService)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a token for valid credentials", func(t *testing.T) {
		svc := newTestService(t)

		resp, err := svc.Login(ctx, auth.LoginRequest{Email: "ada@example.com", Password: "password123"})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "u1", resp.UserID)
		assert.Equal(t, string(user.RoleEmployee), resp.Role)
		require.NotNil(t, resp.EmployeeID)
		assert.Equal(t, "EMP-0001", *resp.EmployeeID)
		assert.Greater(t, resp.ExpiresAt, int64(0))
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "ada@example.com", Password: "nope12345"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "nobody@example.com", Password: "password123"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "ghost@example.com", Password: "password123"})
		assert.ErrorIs(t, err, user.ErrUserDeactivated)
	})

	t.Run("invalid email format", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "not-an-email", Password: "password123"})
		assert.Error(t, err)
	})
}
