package ingredient

import "context"

type Repository interface {
	// List returns the owner's ingredients in alphabetical order, with the total count.
	List(context context.Context, ownerID string, limit, offset int) ([]*Ingredient, int, error)

	// GetByID returns the ingredient only when it belongs to ownerID.
	GetByID(context context.Context, ownerID, id string) (*Ingredient, error)

	// Create persists a new ingredient for the owner.
	Create(context context.Context, i *Ingredient) error

	// Update renames the ingredient, owner-filtered.
	Update(context context.Context, i *Ingredient) error

	// Delete removes the ingredient, owner-filtered.
	Delete(context context.Context, ownerID, id string) error
}
