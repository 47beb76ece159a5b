package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
	"github.com/ThePadawan/beevenue-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.UserStore = (*UserStore)(nil)

// UserStore implements driven.UserStore using PostgreSQL
type UserStore struct {
	db *DB
}

// NewUserStore creates a new UserStore
func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

// GetByUsername retrieves a user by username
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role, sfw_default FROM users WHERE username = $1`,
		username).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.SFWDefault)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// Create inserts a new user and sets its ID
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password_hash, role, sfw_default)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		user.Username, user.PasswordHash, user.Role, user.SFWDefault).
		Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Count returns the total user count
func (s *UserStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
