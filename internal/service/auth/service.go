package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/peopleops/hrms-backend-go/internal/domain/audit"
	"github.com/peopleops/hrms-backend-go/internal/domain/auth"
	"github.com/peopleops/hrms-backend-go/internal/domain/user"
	"github.com/peopleops/hrms-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	userRepo   user.Repository
	auditRepo  audit.Repository
	jwtService jwt.Service
}

func NewAuthService(userRepo user.Repository, auditRepo audit.Repository, jwtService jwt.Service) auth.Service {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		auditRepo:  auditRepo,
		jwtService: jwtService,
	}
}

// Login implements auth.Service. Unknown emails and wrong passwords collapse
// into the same credential error.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if !u.IsActive {
		return auth.LoginResponse{}, user.ErrUserDeactivated
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.EmployeeID, string(u.Role))
	if err != nil {
		return auth.LoginResponse{}, err
	}

	if err := s.userRepo.TouchLastLogin(ctx, u.ID); err != nil {
		slog.Warn("failed to update last login", "user_id", u.ID, "error", err)
	}

	s.recordLogin(u.ID)

	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		UserID:      u.ID,
		EmployeeID:  u.EmployeeID,
		Role:        string(u.Role),
	}, nil
}

func (s *AuthServiceImpl) recordLogin(userID string) {
	entry := audit.Entry{
		ActorID:  userID,
		Action:   audit.ActionLogin,
		Resource: "user",
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.auditRepo.Record(ctx, entry); err != nil {
			slog.Error("failed to record audit entry", "action", audit.ActionLogin, "error", err)
		}
	}()
}
