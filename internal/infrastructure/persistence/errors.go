package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"git.appkode.ru/pub/go/failure"
	"github.com/jackc/pgx/v5/pgconn"

	"inn_ledger/internal/domain"
	"inn_ledger/pkg/errcodes"
)

// Constraint names declared in migrations/0001_init.sql.
const (
	constraintTraderName  = "traders_name_key"
	constraintAssetName   = "assets_name_key"
	constraintAssetAmount = "assets_amount_check"
	constraintItemAsset   = "transaction_items_asset_id_fkey"
)

// wrapError turns driver errors into domain errors. Only the constraints the
// ledger relies on keep a meaning, any other violation is internal. Nothing
// is retried.
func wrapError(err error, message string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if code, reason := constraintCode(pgErr); code != "" {
			return domain.WrapError(err, code, fmt.Sprintf("%s: %s", message, reason))
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return domain.WrapError(err, errcodes.TimeoutExceeded, message)
	}

	return domain.WrapError(err, errcodes.InternalServerError, message)
}

func constraintCode(pgErr *pgconn.PgError) (failure.ErrorCode, string) {
	switch pgErr.ConstraintName {
	case constraintTraderName, constraintAssetName:
		return errcodes.NameAlreadyInUse, "name already in use"
	case constraintAssetAmount:
		return errcodes.InsufficientStock, "stock cannot go below zero"
	case constraintItemAsset:
		// Deleting a referenced asset reports the referenced table first.
		if strings.HasPrefix(pgErr.Message, "update or delete on table") {
			return errcodes.AssetInUse, "asset is referenced by a transaction"
		}

		return errcodes.AssetNotFound, "line item references a missing asset"
	}

	return "", ""
}
