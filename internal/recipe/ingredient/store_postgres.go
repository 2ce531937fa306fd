package ingredient

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/savora/savora/internal/platform/database/schema"
	"github.com/savora/savora/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context, ownerID string, limit, offset int) ([]*Ingredient, int, error) {
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`, schema.Ingredient.Table, schema.Ingredient.OwnerID)

	var total int
	if err := repository.db.QueryRow(context, countQuery, ownerID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_ingredients")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
		LIMIT $2 OFFSET $3
	`,
		schema.Ingredient.ID, schema.Ingredient.OwnerID, schema.Ingredient.Name, schema.Ingredient.CreatedAt,
		schema.Ingredient.Table, schema.Ingredient.OwnerID, schema.Ingredient.Name,
	)

	rows, err := repository.db.Query(context, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_ingredients")
	}
	defer rows.Close()

	var ingredients []*Ingredient
	for rows.Next() {
		i := &Ingredient{}
		if err := rows.Scan(&i.ID, &i.OwnerID, &i.Name, &i.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_ingredient")
		}
		ingredients = append(ingredients, i)
	}

	return ingredients, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, ownerID, id string) (*Ingredient, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		schema.Ingredient.ID, schema.Ingredient.OwnerID, schema.Ingredient.Name, schema.Ingredient.CreatedAt,
		schema.Ingredient.Table, schema.Ingredient.ID, schema.Ingredient.OwnerID,
	)
	i := &Ingredient{}

	err := repository.db.QueryRow(context, query, id, ownerID).Scan(&i.ID, &i.OwnerID, &i.Name, &i.CreatedAt)

	return i, dberr.Wrap(err, "get_ingredient")
}

func (repository *PostgresRepository) Create(context context.Context, i *Ingredient) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
		RETURNING %s
	`,
		schema.Ingredient.Table, schema.Ingredient.ID, schema.Ingredient.OwnerID, schema.Ingredient.Name, schema.Ingredient.CreatedAt,
		schema.Ingredient.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, i.ID, i.OwnerID, i.Name).Scan(&i.CreatedAt)
	return dberr.Wrap(err, "create_ingredient")
}

func (repository *PostgresRepository) Update(context context.Context, i *Ingredient) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3
		WHERE %s = $1 AND %s = $2
	`,
		schema.Ingredient.Table, schema.Ingredient.Name,
		schema.Ingredient.ID, schema.Ingredient.OwnerID,
	)

	cmd, err := repository.db.Exec(context, query, i.ID, i.OwnerID, i.Name)
	if err != nil {
		return dberr.Wrap(err, "update_ingredient")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, ownerID, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.Ingredient.Table, schema.Ingredient.ID, schema.Ingredient.OwnerID,
	)

	cmd, err := repository.db.Exec(context, query, id, ownerID)
	if err != nil {
		return dberr.Wrap(err, "delete_ingredient")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
