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
var _ driven.MediumStore = (*MediumStore)(nil)

// MediumStore implements driven.MediumStore using PostgreSQL
type MediumStore struct {
	db *DB
}

// NewMediumStore creates a new MediumStore
func NewMediumStore(db *DB) *MediumStore {
	return &MediumStore{db: db}
}

// Get retrieves a medium by ID
func (s *MediumStore) Get(ctx context.Context, id int64) (*domain.Medium, error) {
	var medium domain.Medium
	err := s.db.QueryRowContext(ctx,
		`SELECT id, hash, mime_type, rating, aspect_ratio, tiny_thumbnail
		 FROM media WHERE id = $1`, id).
		Scan(&medium.ID, &medium.Hash, &medium.MimeType, &medium.Rating,
			&medium.AspectRatio, &medium.TinyThumbnail)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get medium: %w", err)
	}
	return &medium, nil
}

// GetTagIDs returns the IDs of the tags directly assigned to a medium
func (s *MediumStore) GetTagIDs(ctx context.Context, id int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tag_id FROM medium_tags WHERE medium_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query medium tags: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var tagID int64
		if err := rows.Scan(&tagID); err != nil {
			return nil, fmt.Errorf("failed to scan tag id: %w", err)
		}
		ids = append(ids, tagID)
	}
	return ids, rows.Err()
}

// ListAll returns every canonical medium
func (s *MediumStore) ListAll(ctx context.Context) ([]*domain.Medium, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, hash, mime_type, rating, aspect_ratio, tiny_thumbnail FROM media`)
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	defer rows.Close()

	var media []*domain.Medium
	for rows.Next() {
		var medium domain.Medium
		if err := rows.Scan(&medium.ID, &medium.Hash, &medium.MimeType,
			&medium.Rating, &medium.AspectRatio, &medium.TinyThumbnail); err != nil {
			return nil, fmt.Errorf("failed to scan medium: %w", err)
		}
		media = append(media, &medium)
	}
	return media, rows.Err()
}

// Count returns the total medium count
func (s *MediumStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM media`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count media: %w", err)
	}
	return count, nil
}
