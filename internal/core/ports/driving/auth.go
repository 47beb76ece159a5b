package driving

import (
	"context"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
)

// AuthService authenticates callers and validates session tokens.
type AuthService interface {
	// Login checks credentials and mints a session token.
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)

	// ValidateToken parses a token into the caller context it grants.
	ValidateToken(ctx context.Context, token string) (domain.CallerContext, error)
}
