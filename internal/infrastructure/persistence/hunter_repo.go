package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"inn_ledger/internal/domain"
	"inn_ledger/internal/domain/entity"
	"inn_ledger/internal/domain/value"
	"inn_ledger/pkg/errcodes"
)

type hunterRepo repositories

func (r hunterRepo) Create(ctx context.Context, hunter entity.Hunter) error {
	query := `
		INSERT INTO hunters (id, name, race, location)
		VALUES (:id, :name, :race, :location)`

	if _, err := sqlx.NamedExecContext(ctx, r.db, query, fromHunter(hunter)); err != nil {
		return wrapError(err, "failed to create hunter")
	}

	return nil
}

func (r hunterRepo) Get(ctx context.Context, id value.ID) (entity.Hunter, error) {
	query := `
		SELECT id, name, race, location
		FROM hunters
		WHERE id = $1`

	var schema hunterSchema
	if err := sqlx.GetContext(ctx, r.db, &schema, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Hunter{}, domain.NewError(errcodes.NotFound, fmt.Sprintf("hunter %s not found", id))
		}

		return entity.Hunter{}, wrapError(err, "failed to get hunter")
	}

	return schema.toDomain(), nil
}

func (r hunterRepo) FindByName(ctx context.Context, name string) ([]entity.Hunter, error) {
	query := `
		SELECT id, name, race, location
		FROM hunters
		WHERE $1 = '' OR name = $1
		ORDER BY name, id`

	var schemas []hunterSchema
	if err := sqlx.SelectContext(ctx, r.db, &schemas, query, name); err != nil {
		return nil, wrapError(err, "failed to find hunters")
	}

	hunters := make([]entity.Hunter, len(schemas))
	for i, s := range schemas {
		hunters[i] = s.toDomain()
	}

	return hunters, nil
}

func (r hunterRepo) Update(ctx context.Context, hunter entity.Hunter) error {
	query := `
		UPDATE hunters
		SET name = :name, race = :race, location = :location
		WHERE id = :id`

	result, err := sqlx.NamedExecContext(ctx, r.db, query, fromHunter(hunter))
	if err != nil {
		return wrapError(err, "failed to update hunter")
	}

	return expectRow(result, fmt.Sprintf("hunter %s not found", hunter.ID))
}

func (r hunterRepo) Delete(ctx context.Context, id value.ID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM hunters WHERE id = $1`, id.String())
	if err != nil {
		return wrapError(err, "failed to delete hunter")
	}

	return expectRow(result, fmt.Sprintf("hunter %s not found", id))
}
