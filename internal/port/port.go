// Package port declares the storage boundaries the domain services depend
// on. Lookups that miss return an error coded errcodes.NotFound, except
// transactions which use errcodes.TransactionNotFound.
package port

import (
	"context"
	"time"

	"inn_ledger/internal/domain/entity"
	"inn_ledger/internal/domain/value"
)

type TraderRepository interface {
	Create(ctx context.Context, trader entity.Trader) error
	Get(ctx context.Context, id value.ID) (entity.Trader, error)
	// FindByName returns every trader with exactly this name, ordered by name.
	// An empty name lists all traders.
	FindByName(ctx context.Context, name string) ([]entity.Trader, error)
	Update(ctx context.Context, trader entity.Trader) error
	Delete(ctx context.Context, id value.ID) error
}

type HunterRepository interface {
	Create(ctx context.Context, hunter entity.Hunter) error
	Get(ctx context.Context, id value.ID) (entity.Hunter, error)
	FindByName(ctx context.Context, name string) ([]entity.Hunter, error)
	Update(ctx context.Context, hunter entity.Hunter) error
	Delete(ctx context.Context, id value.ID) error
}

type AssetFilter struct {
	Name     string
	Material string
	Type     value.AssetType
}

type AssetRepository interface {
	Create(ctx context.Context, asset entity.Asset) error
	Get(ctx context.Context, id value.ID) (entity.Asset, error)
	Find(ctx context.Context, filter AssetFilter) ([]entity.Asset, error)
	Update(ctx context.Context, asset entity.Asset) error
	Delete(ctx context.Context, id value.ID) error

	// LockByIDs loads the assets for update. Missing ids are absent from the
	// result. Locks are taken in ascending id order.
	LockByIDs(ctx context.Context, ids []value.ID) (map[value.ID]entity.Asset, error)
	// AdjustAmount adds delta to the stock of an asset and returns the new
	// amount. It fails with errcodes.InsufficientStock instead of going below
	// zero.
	AdjustAmount(ctx context.Context, id value.ID, delta int64) (int64, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, transaction entity.Transaction) error
	Get(ctx context.Context, id value.ID) (entity.Transaction, error)
	// FindByCounterparties lists transactions of any of the counterparties,
	// ordered by date.
	FindByCounterparties(ctx context.Context, ids []value.ID) ([]entity.Transaction, error)
	// FindByDateRange lists transactions with from <= date <= to, ordered by date.
	FindByDateRange(ctx context.Context, from, to time.Time) ([]entity.Transaction, error)
	Update(ctx context.Context, transaction entity.Transaction) error
	Delete(ctx context.Context, id value.ID) error
}

type Repositories interface {
	Traders() TraderRepository
	Hunters() HunterRepository
	Assets() AssetRepository
	Transactions() TransactionRepository
}

// UnitOfWork runs fn against repositories sharing one storage transaction.
// Returning an error from fn rolls back every change made through repos.
type UnitOfWork interface {
	Repositories
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// IdempotencyStore remembers request keys for a while.
type IdempotencyStore interface {
	// Reserve returns false when key is already reserved.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
