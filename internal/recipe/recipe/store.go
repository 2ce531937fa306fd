package recipe

import "context"

type Repository interface {
	// List returns the owner's recipes newest-first, tags included, with the
	// total count.
	List(context context.Context, ownerID string, limit, offset int) ([]*Recipe, int, error)

	// GetByID returns the recipe with its tags only when it belongs to ownerID.
	GetByID(context context.Context, ownerID, id string) (*Recipe, error)

	// Create persists the recipe and its tag links in one transaction.
	Create(context context.Context, r *Recipe) error

	// Update persists the recipe's scalar fields, owner-filtered. When
	// replaceTags is true the tag links are wiped and rewritten from r.Tags
	// in the same transaction; otherwise they are left untouched.
	Update(context context.Context, r *Recipe, replaceTags bool) error

	// Delete removes the recipe and its tag links, owner-filtered.
	Delete(context context.Context, ownerID, id string) error
}
