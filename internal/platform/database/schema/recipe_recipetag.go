package schema

// RecipeTagTable represents the 'recipe.recipetag' table
type RecipeTagTable struct {
	Table    string
	RecipeID string
	TagID    string
}

// RecipeTag is the schema definition for recipe.recipetag
var RecipeTag = RecipeTagTable{
	Table:    "recipe.recipetag",
	RecipeID: "recipeid",
	TagID:    "tagid",
}
