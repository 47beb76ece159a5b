package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
	"github.com/ThePadawan/beevenue-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.TagStore = (*TagStore)(nil)

// TagStore implements driven.TagStore using PostgreSQL
type TagStore struct {
	db *DB
}

// NewTagStore creates a new TagStore
func NewTagStore(db *DB) *TagStore {
	return &TagStore{db: db}
}

// Get retrieves a tag by ID, with aliases and edges populated
func (s *TagStore) Get(ctx context.Context, id int64) (*domain.Tag, error) {
	return s.queryOne(ctx, `SELECT id, name, rating FROM tags WHERE id = $1`, id)
}

// GetByName retrieves a tag by its canonical name
func (s *TagStore) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	return s.queryOne(ctx, `SELECT id, name, rating FROM tags WHERE name = $1`, name)
}

// FindByNames retrieves all tags whose canonical name is in names
func (s *TagStore) FindByNames(ctx context.Context, names []string) ([]*domain.Tag, error) {
	return s.queryMany(ctx, `SELECT id, name, rating FROM tags WHERE name = ANY($1)`, pq.Array(names))
}

// FindByIDs retrieves tags by ID, skipping missing ones
func (s *TagStore) FindByIDs(ctx context.Context, ids []int64) ([]*domain.Tag, error) {
	return s.queryMany(ctx, `SELECT id, name, rating FROM tags WHERE id = ANY($1)`, pq.Array(ids))
}

// FindAliasesByNames retrieves aliases whose name is in names
func (s *TagStore) FindAliasesByNames(ctx context.Context, names []string) ([]*domain.Alias, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, tag_id FROM tag_aliases WHERE name = ANY($1)`, pq.Array(names))
	if err != nil {
		return nil, fmt.Errorf("failed to query aliases: %w", err)
	}
	defer rows.Close()

	var aliases []*domain.Alias
	for rows.Next() {
		var alias domain.Alias
		if err := rows.Scan(&alias.Name, &alias.TagID); err != nil {
			return nil, fmt.Errorf("failed to scan alias: %w", err)
		}
		aliases = append(aliases, &alias)
	}
	return aliases, rows.Err()
}

// Rename changes a tag's canonical name
func (s *TagStore) Rename(ctx context.Context, id int64, newName string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE tags SET name = $2 WHERE id = $1`, id, newName)
	if err != nil {
		return fmt.Errorf("failed to rename tag: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a tag; aliases, edges and associations cascade
func (s *TagStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}

// CountMedia returns the number of media directly tagged with the tag
func (s *TagStore) CountMedia(ctx context.Context, id int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM medium_tags WHERE tag_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count media: %w", err)
	}
	return count, nil
}

// CreateAlias attaches an alias name to a tag
func (s *TagStore) CreateAlias(ctx context.Context, tagID int64, name string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tag_aliases (name, tag_id) VALUES ($1, $2)`, name, tagID)
	if err != nil {
		return fmt.Errorf("failed to create alias: %w", err)
	}
	return nil
}

// DeleteAlias removes an alias by name
func (s *TagStore) DeleteAlias(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tag_aliases WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to delete alias: %w", err)
	}
	return nil
}

// HasImplication reports whether the edge implying->implied exists
func (s *TagStore) HasImplication(ctx context.Context, implyingID, impliedID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM tag_implications WHERE implying_id = $1 AND implied_id = $2)`,
		implyingID, impliedID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check implication: %w", err)
	}
	return exists, nil
}

// CreateImplication inserts the edge implying->implied
func (s *TagStore) CreateImplication(ctx context.Context, implyingID, impliedID int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tag_implications (implying_id, implied_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`, implyingID, impliedID)
	if err != nil {
		return fmt.Errorf("failed to create implication: %w", err)
	}
	return nil
}

// DeleteImplication removes the edge implying->implied
func (s *TagStore) DeleteImplication(ctx context.Context, implyingID, impliedID int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM tag_implications WHERE implying_id = $1 AND implied_id = $2`,
		implyingID, impliedID)
	if err != nil {
		return fmt.Errorf("failed to delete implication: %w", err)
	}
	return nil
}

// ListImplications returns every implication edge
func (s *TagStore) ListImplications(ctx context.Context) ([]domain.ImplicationEdge, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT implying_id, implied_id FROM tag_implications`)
	if err != nil {
		return nil, fmt.Errorf("failed to list implications: %w", err)
	}
	defer rows.Close()

	var edges []domain.ImplicationEdge
	for rows.Next() {
		var edge domain.ImplicationEdge
		if err := rows.Scan(&edge.ImplyingID, &edge.ImpliedID); err != nil {
			return nil, fmt.Errorf("failed to scan implication: %w", err)
		}
		edges = append(edges, edge)
	}
	return edges, rows.Err()
}

// queryOne loads a single tag row and decorates it
func (s *TagStore) queryOne(ctx context.Context, query string, arg any) (*domain.Tag, error) {
	var tag domain.Tag
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&tag.ID, &tag.Name, &tag.Rating)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	if err := s.decorate(ctx, []*domain.Tag{&tag}); err != nil {
		return nil, err
	}
	return &tag, nil
}

// queryMany loads multiple tag rows and decorates them
func (s *TagStore) queryMany(ctx context.Context, query string, arg any) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Rating); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.decorate(ctx, tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// decorate fills in alias names and both implication edge sets for the
// given tags in two batched queries
func (s *TagStore) decorate(ctx context.Context, tags []*domain.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	byID := make(map[int64]*domain.Tag, len(tags))
	ids := make([]int64, 0, len(tags))
	for _, tag := range tags {
		byID[tag.ID] = tag
		ids = append(ids, tag.ID)
	}

	aliasRows, err := s.db.QueryContext(ctx,
		`SELECT name, tag_id FROM tag_aliases WHERE tag_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load tag aliases: %w", err)
	}
	defer aliasRows.Close()
	for aliasRows.Next() {
		var name string
		var tagID int64
		if err := aliasRows.Scan(&name, &tagID); err != nil {
			return fmt.Errorf("failed to scan tag alias: %w", err)
		}
		byID[tagID].Aliases = append(byID[tagID].Aliases, name)
	}
	if err := aliasRows.Err(); err != nil {
		return err
	}

	edgeRows, err := s.db.QueryContext(ctx,
		`SELECT implying_id, implied_id FROM tag_implications
		 WHERE implying_id = ANY($1) OR implied_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load tag edges: %w", err)
	}
	defer edgeRows.Close()
	for edgeRows.Next() {
		var implying, implied int64
		if err := edgeRows.Scan(&implying, &implied); err != nil {
			return fmt.Errorf("failed to scan tag edge: %w", err)
		}
		if tag, ok := byID[implying]; ok {
			tag.Implying = append(tag.Implying, implied)
		}
		if tag, ok := byID[implied]; ok {
			tag.ImpliedBy = append(tag.ImpliedBy, implying)
		}
	}
	return edgeRows.Err()
}
