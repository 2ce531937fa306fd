package schema

// TagTable represents the 'recipe.tag' table
type TagTable struct {
	Table     string
	ID        string
	OwnerID   string
	Name      string
	CreatedAt string
}

// Tag is the schema definition for recipe.tag
var Tag = TagTable{
	Table:     "recipe.tag",
	ID:        "id",
	OwnerID:   "ownerid",
	Name:      "name",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t TagTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.Name, t.CreatedAt,
	}
}
