package schema

// IngredientTable represents the 'recipe.ingredient' table
type IngredientTable struct {
	Table     string
	ID        string
	OwnerID   string
	Name      string
	CreatedAt string
}

// Ingredient is the schema definition for recipe.ingredient
var Ingredient = IngredientTable{
	Table:     "recipe.ingredient",
	ID:        "id",
	OwnerID:   "ownerid",
	Name:      "name",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t IngredientTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.Name, t.CreatedAt,
	}
}
