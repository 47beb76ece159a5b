package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
	"github.com/ThePadawan/beevenue-core/internal/core/ports/driven"
	"github.com/ThePadawan/beevenue-core/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// tokenLifetime is how long minted session tokens stay valid.
const tokenLifetime = 24 * time.Hour

// authService authenticates users and turns session tokens into
// caller contexts.
type authService struct {
	users  driven.UserStore
	auth   driven.AuthAdapter
	logger *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users driven.UserStore, auth driven.AuthAdapter, logger *slog.Logger) driving.AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{users: users, auth: auth, logger: logger}
}

// Login verifies the credentials and mints a session token carrying
// the user's role and SFW preference.
func (s *authService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !s.auth.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	token, err := s.auth.GenerateToken(&domain.TokenClaims{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		SFW:       user.SFWDefault,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(tokenLifetime).Unix(),
	})
	if err != nil {
		return nil, err
	}

	caller := domain.CallerContext{Role: user.Role, SFW: user.SFWDefault}
	s.logger.Info("user logged in", "username", user.Username, "role", user.Role)
	return &domain.LoginResponse{Token: token, User: user, Ctx: caller}, nil
}

// ValidateToken parses a session token into the caller context it
// grants.
func (s *authService) ValidateToken(ctx context.Context, token string) (domain.CallerContext, error) {
	claims, err := s.auth.ParseToken(token)
	if err != nil {
		return domain.CallerContext{}, err
	}
	return domain.CallerContext{Role: claims.Role, SFW: claims.SFW}, nil
}
