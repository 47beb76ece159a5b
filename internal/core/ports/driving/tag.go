package driving

import "context"

// TagService mutates tags, aliases and the implication graph. Every
// successful mutation publishes the matching index event.
type TagService interface {
	// AddImplication inserts the edge implying->implied. Fails with
	// ErrNotFound when either name does not resolve and with
	// ErrCycleDetected when the edge would close a cycle; succeeds
	// without effect when the edge already exists.
	AddImplication(ctx context.Context, implying, implied string) error

	// RemoveImplication deletes the edge and cleans up orphaned tags.
	// Absent edges are a no-op.
	RemoveImplication(ctx context.Context, implying, implied string) error

	// ListImplications returns every edge as (implying, implied) name pairs.
	ListImplications(ctx context.Context) (map[string][]string, error)

	// Rename changes a tag's canonical name.
	Rename(ctx context.Context, oldName, newName string) error

	// AddAlias attaches an alias to a tag.
	AddAlias(ctx context.Context, tagName, alias string) error

	// RemoveAlias detaches an alias.
	RemoveAlias(ctx context.Context, alias string) error
}
