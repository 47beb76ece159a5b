package driven

import (
	"context"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
)

// UserStore handles user account persistence (PostgreSQL).
type UserStore interface {
	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// Create inserts a new user and sets its ID
	Create(ctx context.Context, user *domain.User) error

	// Count returns the total user count
	Count(ctx context.Context) (int, error)
}

// AuthAdapter handles password hashing and session token operations.
type AuthAdapter interface {
	// HashPassword generates a hash from a plaintext password
	HashPassword(password string) (string, error)

	// VerifyPassword checks a password against a stored hash
	VerifyPassword(password, hash string) bool

	// GenerateToken creates a signed token from claims
	GenerateToken(claims *domain.TokenClaims) (string, error)

	// ParseToken validates a token and extracts its claims
	ParseToken(token string) (*domain.TokenClaims, error)
}
