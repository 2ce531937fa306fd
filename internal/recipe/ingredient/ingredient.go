package ingredient

import "time"

// Ingredient is an owner-scoped pantry item (e.g. "Salt", "Chickpeas").
//
// Names are unique per owner. Ingredients live independently of recipes.
type Ingredient struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
}
