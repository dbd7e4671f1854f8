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

type traderRepo repositories

func (r traderRepo) Create(ctx context.Context, trader entity.Trader) error {
	query := `
		INSERT INTO traders (id, name, type, location)
		VALUES (:id, :name, :type, :location)`

	if _, err := sqlx.NamedExecContext(ctx, r.db, query, fromTrader(trader)); err != nil {
		return wrapError(err, "failed to create trader")
	}

	return nil
}

func (r traderRepo) Get(ctx context.Context, id value.ID) (entity.Trader, error) {
	query := `
		SELECT id, name, type, location
		FROM traders
		WHERE id = $1`

	var schema traderSchema
	if err := sqlx.GetContext(ctx, r.db, &schema, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Trader{}, domain.NewError(errcodes.NotFound, fmt.Sprintf("trader %s not found", id))
		}

		return entity.Trader{}, wrapError(err, "failed to get trader")
	}

	return schema.toDomain(), nil
}

func (r traderRepo) FindByName(ctx context.Context, name string) ([]entity.Trader, error) {
	query := `
		SELECT id, name, type, location
		FROM traders
		WHERE $1 = '' OR name = $1
		ORDER BY name, id`

	var schemas []traderSchema
	if err := sqlx.SelectContext(ctx, r.db, &schemas, query, name); err != nil {
		return nil, wrapError(err, "failed to find traders")
	}

	traders := make([]entity.Trader, len(schemas))
	for i, s := range schemas {
		traders[i] = s.toDomain()
	}

	return traders, nil
}

func (r traderRepo) Update(ctx context.Context, trader entity.Trader) error {
	query := `
		UPDATE traders
		SET name = :name, type = :type, location = :location
		WHERE id = :id`

	result, err := sqlx.NamedExecContext(ctx, r.db, query, fromTrader(trader))
	if err != nil {
		return wrapError(err, "failed to update trader")
	}

	return expectRow(result, fmt.Sprintf("trader %s not found", trader.ID))
}

func (r traderRepo) Delete(ctx context.Context, id value.ID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM traders WHERE id = $1`, id.String())
	if err != nil {
		return wrapError(err, "failed to delete trader")
	}

	return expectRow(result, fmt.Sprintf("trader %s not found", id))
}

// expectRow fails with errcodes.NotFound when no row was affected.
func expectRow(result sql.Result, message string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return wrapError(err, "failed to get affected rows")
	}

	if rows == 0 {
		return domain.NewError(errcodes.NotFound, message)
	}

	return nil
}
