package tag

import "context"

type Repository interface {
	// List returns the owner's tags in alphabetical order, with the total count.
	List(context context.Context, ownerID string, limit, offset int) ([]*Tag, int, error)

	// GetByID returns the tag only when it belongs to ownerID.
	GetByID(context context.Context, ownerID, id string) (*Tag, error)

	// GetOrCreate resolves a name to the owner's existing tag, creating it
	// atomically when absent.
	GetOrCreate(context context.Context, ownerID, name string) (*Tag, error)

	// Update renames the tag, owner-filtered.
	Update(context context.Context, t *Tag) error

	// Delete removes the tag and its recipe associations, owner-filtered.
	Delete(context context.Context, ownerID, id string) error
}
