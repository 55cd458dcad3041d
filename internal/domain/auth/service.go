package auth

import "context"

type Service interface {
	// Login verifies credentials and issues a bearer access token.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
