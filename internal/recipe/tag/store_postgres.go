package tag

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/savora/savora/internal/platform/database/schema"
	"github.com/savora/savora/internal/platform/dberr"
	"github.com/savora/savora/pkg/uuid"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context, ownerID string, limit, offset int) ([]*Tag, int, error) {
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`, schema.Tag.Table, schema.Tag.OwnerID)

	var total int
	if err := repository.db.QueryRow(context, countQuery, ownerID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_tags")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
		LIMIT $2 OFFSET $3
	`,
		schema.Tag.ID, schema.Tag.OwnerID, schema.Tag.Name, schema.Tag.CreatedAt,
		schema.Tag.Table, schema.Tag.OwnerID, schema.Tag.Name,
	)

	rows, err := repository.db.Query(context, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_tags")
	}
	defer rows.Close()

	var tags []*Tag
	for rows.Next() {
		t := &Tag{}
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Name, &t.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_tag")
		}
		tags = append(tags, t)
	}

	return tags, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, ownerID, id string) (*Tag, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		schema.Tag.ID, schema.Tag.OwnerID, schema.Tag.Name, schema.Tag.CreatedAt,
		schema.Tag.Table, schema.Tag.ID, schema.Tag.OwnerID,
	)
	t := &Tag{}

	err := repository.db.QueryRow(context, query, id, ownerID).Scan(&t.ID, &t.OwnerID, &t.Name, &t.CreatedAt)

	return t, dberr.Wrap(err, "get_tag")
}

func (repository *PostgresRepository) GetOrCreate(context context.Context, ownerID, name string) (*Tag, error) {
	// The no-op DO UPDATE makes RETURNING yield the existing row on conflict,
	// so concurrent callers converge on one tag without a race.
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s
		RETURNING %s, %s, %s, %s
	`,
		schema.Tag.Table, schema.Tag.ID, schema.Tag.OwnerID, schema.Tag.Name, schema.Tag.CreatedAt,
		schema.Tag.OwnerID, schema.Tag.Name, schema.Tag.Name, schema.Tag.Name,
		schema.Tag.ID, schema.Tag.OwnerID, schema.Tag.Name, schema.Tag.CreatedAt,
	)

	t := &Tag{}
	err := repository.db.QueryRow(context, query, uuid.New(), ownerID, name).Scan(
		&t.ID, &t.OwnerID, &t.Name, &t.CreatedAt,
	)

	return t, dberr.Wrap(err, "get_or_create_tag")
}

func (repository *PostgresRepository) Update(context context.Context, t *Tag) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3
		WHERE %s = $1 AND %s = $2
	`,
		schema.Tag.Table, schema.Tag.Name,
		schema.Tag.ID, schema.Tag.OwnerID,
	)

	cmd, err := repository.db.Exec(context, query, t.ID, t.OwnerID, t.Name)
	if err != nil {
		return dberr.Wrap(err, "update_tag")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, ownerID, id string) error {
	// recipe.recipetag rows go with it via ON DELETE CASCADE.
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.Tag.Table, schema.Tag.ID, schema.Tag.OwnerID,
	)

	cmd, err := repository.db.Exec(context, query, id, ownerID)
	if err != nil {
		return dberr.Wrap(err, "delete_tag")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
