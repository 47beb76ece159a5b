package driven

import (
	"context"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
)

// TagStore handles tag, alias and implication-edge persistence
// (PostgreSQL). Tags returned by lookup methods carry their aliases
// and both edge sets.
type TagStore interface {
	// Get retrieves a tag by ID
	Get(ctx context.Context, id int64) (*domain.Tag, error)

	// GetByName retrieves a tag by its canonical name
	GetByName(ctx context.Context, name string) (*domain.Tag, error)

	// FindByNames retrieves tags whose canonical name is in names
	FindByNames(ctx context.Context, names []string) ([]*domain.Tag, error)

	// FindByIDs retrieves tags by ID, skipping missing ones
	FindByIDs(ctx context.Context, ids []int64) ([]*domain.Tag, error)

	// FindAliasesByNames retrieves aliases whose name is in names
	FindAliasesByNames(ctx context.Context, names []string) ([]*domain.Alias, error)

	// Rename changes a tag's canonical name
	Rename(ctx context.Context, id int64, newName string) error

	// Delete removes a tag and its remaining associations
	Delete(ctx context.Context, id int64) error

	// CountMedia returns the number of media directly tagged with the tag
	CountMedia(ctx context.Context, id int64) (int, error)

	// CreateAlias attaches an alias name to a tag
	CreateAlias(ctx context.Context, tagID int64, name string) error

	// DeleteAlias removes an alias by name
	DeleteAlias(ctx context.Context, name string) error

	// HasImplication reports whether the edge implying->implied exists
	HasImplication(ctx context.Context, implyingID, impliedID int64) (bool, error)

	// CreateImplication inserts the edge implying->implied
	CreateImplication(ctx context.Context, implyingID, impliedID int64) error

	// DeleteImplication removes the edge implying->implied
	DeleteImplication(ctx context.Context, implyingID, impliedID int64) error

	// ListImplications returns every implication edge
	ListImplications(ctx context.Context) ([]domain.ImplicationEdge, error)
}
