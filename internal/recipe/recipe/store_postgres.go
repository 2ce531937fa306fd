package recipe

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/savora/savora/internal/platform/database/schema"
	"github.com/savora/savora/internal/platform/dberr"
	"github.com/savora/savora/internal/recipe/tag"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) List(context context.Context, ownerID string, limit, offset int) ([]*Recipe, int, error) {
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`, schema.Recipe.Table, schema.Recipe.OwnerID)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, ownerID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_recipes")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.Recipe.ID, schema.Recipe.OwnerID, schema.Recipe.Title, schema.Recipe.TimeMinutes,
		schema.Recipe.Price, schema.Recipe.Description, schema.Recipe.Link,
		schema.Recipe.CreatedAt, schema.Recipe.UpdatedAt,
		schema.Recipe.Table, schema.Recipe.OwnerID, schema.Recipe.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_recipes")
	}
	defer rows.Close()

	var recipes []*Recipe
	for rows.Next() {
		r := &Recipe{}
		if err := rows.Scan(
			&r.ID, &r.OwnerID, &r.Title, &r.TimeMinutes,
			&r.Price, &r.Description, &r.Link,
			&r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_recipe")
		}
		recipes = append(recipes, r)
	}

	if err := repository.attachTags(context, recipes); err != nil {
		return nil, 0, err
	}

	return recipes, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, ownerID, id string) (*Recipe, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		schema.Recipe.ID, schema.Recipe.OwnerID, schema.Recipe.Title, schema.Recipe.TimeMinutes,
		schema.Recipe.Price, schema.Recipe.Description, schema.Recipe.Link,
		schema.Recipe.CreatedAt, schema.Recipe.UpdatedAt,
		schema.Recipe.Table, schema.Recipe.ID, schema.Recipe.OwnerID,
	)

	r := &Recipe{}
	err := repository.pool.QueryRow(context, query, id, ownerID).Scan(
		&r.ID, &r.OwnerID, &r.Title, &r.TimeMinutes,
		&r.Price, &r.Description, &r.Link,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_recipe")
	}

	if err := repository.attachTags(context, []*Recipe{r}); err != nil {
		return nil, err
	}

	return r, nil
}

// Create inserts the recipe row and its tag links in a single transaction so
// a junction failure never leaves an orphaned recipe behind.
func (repository *PostgresRepository) Create(context context.Context, r *Recipe) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.Recipe.Table,
		schema.Recipe.ID, schema.Recipe.OwnerID, schema.Recipe.Title, schema.Recipe.TimeMinutes,
		schema.Recipe.Price, schema.Recipe.Description, schema.Recipe.Link,
		schema.Recipe.CreatedAt, schema.Recipe.UpdatedAt,
		schema.Recipe.CreatedAt, schema.Recipe.UpdatedAt,
	)

	err = transaction.QueryRow(context, query,
		r.ID, r.OwnerID, r.Title, r.TimeMinutes,
		r.Price, r.Description, r.Link,
	).Scan(&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_recipe")
	}

	if err := repository.replaceTagLinks(context, transaction, r.ID, r.Tags); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit create transaction: %w", err)
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, r *Recipe, replaceTags bool) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = NOW()
		WHERE %s = $1 AND %s = $2
		RETURNING %s
	`,
		schema.Recipe.Table,
		schema.Recipe.Title, schema.Recipe.TimeMinutes, schema.Recipe.Price,
		schema.Recipe.Description, schema.Recipe.Link, schema.Recipe.UpdatedAt,
		schema.Recipe.ID, schema.Recipe.OwnerID,
		schema.Recipe.UpdatedAt,
	)

	err = transaction.QueryRow(context, query,
		r.ID, r.OwnerID,
		r.Title, r.TimeMinutes, r.Price, r.Description, r.Link,
	).Scan(&r.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_recipe")
	}

	if replaceTags {
		if err := repository.replaceTagLinks(context, transaction, r.ID, r.Tags); err != nil {
			return err
		}
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit update transaction: %w", err)
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, ownerID, id string) error {
	// recipe.recipetag rows go with it via ON DELETE CASCADE.
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.Recipe.Table, schema.Recipe.ID, schema.Recipe.OwnerID,
	)

	cmd, err := repository.pool.Exec(context, query, id, ownerID)
	if err != nil {
		return dberr.Wrap(err, "delete_recipe")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// replaceTagLinks implements a clear-and-insert sync of the recipe/tag
// junction rows inside the caller's transaction.
func (repository *PostgresRepository) replaceTagLinks(context context.Context, transaction pgx.Tx, recipeID string, tags []tag.Tag) error {
	delQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.RecipeTag.Table, schema.RecipeTag.RecipeID,
	)
	if _, err := transaction.Exec(context, delQuery, recipeID); err != nil {
		return fmt.Errorf("postgres: failed to clear %s: %w", schema.RecipeTag.Table, err)
	}

	if len(tags) == 0 {
		return nil
	}

	insQuery := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.RecipeTag.Table, schema.RecipeTag.RecipeID, schema.RecipeTag.TagID,
	)
	batch := &pgx.Batch{}
	for _, t := range tags {
		batch.Queue(insQuery, recipeID, t.ID)
	}

	response := transaction.SendBatch(context, batch)
	if err := response.Close(); err != nil {
		return fmt.Errorf("postgres: failed to batch insert into %s: %w", schema.RecipeTag.Table, err)
	}

	return nil
}

// attachTags loads the tags for a page of recipes in one query and
// distributes them to their parents, alphabetical per recipe.
func (repository *PostgresRepository) attachTags(context context.Context, recipes []*Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	index := make(map[string]*Recipe, len(recipes))
	ids := make([]string, 0, len(recipes))
	for _, r := range recipes {
		r.Tags = []tag.Tag{}
		index[r.ID] = r
		ids = append(ids, r.ID)
	}

	query := fmt.Sprintf(`
		SELECT rt.%s, t.%s, t.%s, t.%s, t.%s
		FROM %s rt
		JOIN %s t ON t.%s = rt.%s
		WHERE rt.%s = ANY($1)
		ORDER BY t.%s ASC
	`,
		schema.RecipeTag.RecipeID, schema.Tag.ID, schema.Tag.OwnerID, schema.Tag.Name, schema.Tag.CreatedAt,
		schema.RecipeTag.Table,
		schema.Tag.Table, schema.Tag.ID, schema.RecipeTag.TagID,
		schema.RecipeTag.RecipeID,
		schema.Tag.Name,
	)

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "load_recipe_tags")
	}
	defer rows.Close()

	for rows.Next() {
		var recipeID string
		t := tag.Tag{}
		if err := rows.Scan(&recipeID, &t.ID, &t.OwnerID, &t.Name, &t.CreatedAt); err != nil {
			return dberr.Wrap(err, "scan_recipe_tag")
		}
		if parent, ok := index[recipeID]; ok {
			parent.Tags = append(parent.Tags, t)
		}
	}

	return nil
}
