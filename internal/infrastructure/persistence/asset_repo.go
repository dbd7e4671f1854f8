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
	"inn_ledger/internal/port"
	"inn_ledger/pkg/errcodes"
)

type assetRepo repositories

const assetColumns = `id, name, description, material, weight, crown_value, type, amount`

func (r assetRepo) Create(ctx context.Context, asset entity.Asset) error {
	query := `
		INSERT INTO assets (` + assetColumns + `)
		VALUES (:id, :name, :description, :material, :weight, :crown_value, :type, :amount)`

	if _, err := sqlx.NamedExecContext(ctx, r.db, query, fromAsset(asset)); err != nil {
		return wrapError(err, "failed to create asset")
	}

	return nil
}

func (r assetRepo) Get(ctx context.Context, id value.ID) (entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1`

	var schema assetSchema
	if err := sqlx.GetContext(ctx, r.db, &schema, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Asset{}, domain.NewError(errcodes.NotFound, fmt.Sprintf("asset %s not found", id))
		}

		return entity.Asset{}, wrapError(err, "failed to get asset")
	}

	return schema.toDomain(), nil
}

func (r assetRepo) Find(ctx context.Context, filter port.AssetFilter) ([]entity.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM assets
		WHERE ($1 = '' OR name = $1)
		  AND ($2 = '' OR material = $2)
		  AND ($3 = '' OR type = $3)
		ORDER BY name, id`

	var schemas []assetSchema
	if err := sqlx.SelectContext(ctx, r.db, &schemas, query, filter.Name, filter.Material, filter.Type.String()); err != nil {
		return nil, wrapError(err, "failed to find assets")
	}

	return toAssets(schemas), nil
}

func (r assetRepo) Update(ctx context.Context, asset entity.Asset) error {
	query := `
		UPDATE assets
		SET name = :name, description = :description, material = :material, weight = :weight,
		    crown_value = :crown_value, type = :type, amount = :amount
		WHERE id = :id`

	result, err := sqlx.NamedExecContext(ctx, r.db, query, fromAsset(asset))
	if err != nil {
		return wrapError(err, "failed to update asset")
	}

	return expectRow(result, fmt.Sprintf("asset %s not found", asset.ID))
}

func (r assetRepo) Delete(ctx context.Context, id value.ID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE id = $1`, id.String())
	if err != nil {
		return wrapError(err, "failed to delete asset")
	}

	return expectRow(result, fmt.Sprintf("asset %s not found", id))
}

func (r assetRepo) LockByIDs(ctx context.Context, ids []value.ID) (map[value.ID]entity.Asset, error) {
	if len(ids) == 0 {
		return map[value.ID]entity.Asset{}, nil
	}

	args := make([]string, len(ids))
	for i, id := range ids {
		args[i] = id.String()
	}

	query, params, err := sqlx.In(`
		SELECT `+assetColumns+`
		FROM assets
		WHERE id IN (?)
		ORDER BY id
		FOR UPDATE`, args)
	if err != nil {
		return nil, wrapError(err, "failed to build query")
	}

	var schemas []assetSchema
	if err := sqlx.SelectContext(ctx, r.db, &schemas, r.db.Rebind(query), params...); err != nil {
		return nil, wrapError(err, "failed to lock assets")
	}

	locked := make(map[value.ID]entity.Asset, len(schemas))
	for _, s := range schemas {
		locked[value.ID(s.ID)] = s.toDomain()
	}

	return locked, nil
}

// AdjustAmount never lets the stock go negative: the update only matches
// while amount + delta >= 0.
func (r assetRepo) AdjustAmount(ctx context.Context, id value.ID, delta int64) (int64, error) {
	query := `
		UPDATE assets
		SET amount = amount + $2
		WHERE id = $1 AND amount + $2 >= 0
		RETURNING amount`

	var amount int64

	err := sqlx.GetContext(ctx, r.db, &amount, query, id.String(), delta)
	if err == nil {
		return amount, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return 0, wrapError(err, "failed to adjust asset amount")
	}

	var exists bool
	if err = sqlx.GetContext(ctx, r.db, &exists, `SELECT EXISTS (SELECT 1 FROM assets WHERE id = $1)`, id.String()); err != nil {
		return 0, wrapError(err, "failed to check asset")
	}

	if !exists {
		return 0, domain.NewError(errcodes.NotFound, fmt.Sprintf("asset %s not found", id))
	}

	return 0, domain.NewError(errcodes.InsufficientStock, fmt.Sprintf("not enough stock of asset %s", id))
}

func toAssets(schemas []assetSchema) []entity.Asset {
	assets := make([]entity.Asset, len(schemas))
	for i, s := range schemas {
		assets[i] = s.toDomain()
	}

	return assets
}
