// Package persistence stores the ledger in PostgreSQL.
package persistence

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"inn_ledger/internal/domain"
	"inn_ledger/internal/port"
	"inn_ledger/pkg/errcodes"
)

// repositories binds every repository to one executor, the pool or a
// transaction.
type repositories struct {
	db sqlx.ExtContext
}

func (r repositories) Traders() port.TraderRepository           { return traderRepo(r) }
func (r repositories) Hunters() port.HunterRepository           { return hunterRepo(r) }
func (r repositories) Assets() port.AssetRepository             { return assetRepo(r) }
func (r repositories) Transactions() port.TransactionRepository { return transactionRepo(r) }

type Store struct {
	repositories
	db *sqlx.DB
}

var _ port.UnitOfWork = (*Store)(nil)

func NewStore(db *sqlx.DB) *Store {
	return &Store{
		repositories: repositories{db: db},
		db:           db,
	}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos port.Repositories) error) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		return fn(ctx, repositories{db: tx})
	})
}

// withTx commits when fn succeeds and rolls back on error or panic.
func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrapError(err, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr), //nolint:errorlint
				errcodes.InternalServerError,
				"transaction failed",
			)
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return wrapError(err, "failed to commit")
	}

	return nil
}
