package tag

import "time"

// Tag is an owner-scoped label applied to recipes (e.g. "Vegan", "Dessert").
//
// Names are unique per owner; two users can each have their own "Vegan" tag.
type Tag struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
}
