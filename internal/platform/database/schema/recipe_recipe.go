package schema

// RecipeTable represents the 'recipe.recipe' table
type RecipeTable struct {
	Table       string
	ID          string
	OwnerID     string
	Title       string
	TimeMinutes string
	Price       string
	Description string
	Link        string
	CreatedAt   string
	UpdatedAt   string
}

// Recipe is the schema definition for recipe.recipe
var Recipe = RecipeTable{
	Table:       "recipe.recipe",
	ID:          "id",
	OwnerID:     "ownerid",
	Title:       "title",
	TimeMinutes: "timeminutes",
	Price:       "price",
	Description: "description",
	Link:        "link",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t RecipeTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.Title, t.TimeMinutes, t.Price, t.Description, t.Link, t.CreatedAt, t.UpdatedAt,
	}
}
