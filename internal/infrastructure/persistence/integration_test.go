package persistence_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"inn_ledger/internal/domain"
	"inn_ledger/internal/domain/entity"
	"inn_ledger/internal/domain/service/transaction"
	"inn_ledger/internal/domain/value"
	"inn_ledger/internal/infrastructure/persistence"
	"inn_ledger/pkg/application/connectors"
	"inn_ledger/pkg/dbtest"
	"inn_ledger/pkg/errcodes"
)

func newPostgres(t *testing.T) *persistence.Store {
	t.Helper()

	dsn := os.Getenv("PG_TEST_DSN")
	if dsn == "" {
		t.Skip("PG_TEST_DSN is not set")
	}

	rq := require.New(t)
	ctx := context.Background()

	pg := &connectors.Postgres{DSN: dsn, MaxOpenConns: 10, MaxIdleConns: 10}
	t.Cleanup(func() { pg.Close(ctx) })

	rq.NoError(pg.Migrate(ctx, "../../../migrations/0001_init.sql"))
	rq.NoError(dbtest.Truncate(ctx, pg.Client(ctx), "transaction_items", "transactions", "assets", "hunters", "traders"))

	return persistence.NewStore(pg.Client(ctx))
}

func TestPostgresConcurrentSales(t *testing.T) {
	store := newPostgres(t)
	rq := require.New(t)
	ctx := context.Background()

	hunter := entity.Hunter{ID: value.NewID(), Name: "Geralt", Race: value.RaceWitch, Location: "Kaer Morhen"}
	sword := entity.Asset{
		ID: value.NewID(), Name: "Silver sword", Description: "For monsters", Material: "silver",
		Weight: 3, CrownValue: decimal.NewFromInt(150), Type: value.AssetTypeWeapon, Amount: 10,
	}

	rq.NoError(store.Hunters().Create(ctx, hunter))
	rq.NoError(store.Assets().Create(ctx, sword))

	service := transaction.NewService(store, nil)

	const sales = 8

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		rejected []error
	)

	for range sales {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := service.Create(ctx, transaction.CreateInput{
				CounterpartyID: hunter.ID,
				Items:          []entity.LineItem{{AssetID: sword.ID, Amount: 3}},
			})

			mu.Lock()
			defer mu.Unlock()

			if err == nil {
				accepted++
				return
			}

			rejected = append(rejected, err)
		}()
	}

	wg.Wait()

	rq.Equal(3, accepted)

	for _, err := range rejected {
		rq.True(domain.HasCode(err, errcodes.InsufficientStock), err)
	}

	stored, err := store.Assets().Get(ctx, sword.ID)
	rq.NoError(err)
	rq.Equal(int64(1), stored.Amount)

	found, err := store.Transactions().FindByCounterparties(ctx, []value.ID{hunter.ID})
	rq.NoError(err)
	rq.Len(found, accepted)
}

func TestPostgresAssetInUse(t *testing.T) {
	store := newPostgres(t)
	rq := require.New(t)
	ctx := context.Background()

	trader := entity.Trader{ID: value.NewID(), Name: "Hattori", Type: value.TraderTypeBlacksmith, Location: "Novigrad"}
	sword := entity.Asset{
		ID: value.NewID(), Name: "Silver sword", Description: "For monsters", Material: "silver",
		Weight: 3, CrownValue: decimal.NewFromInt(150), Type: value.AssetTypeWeapon,
	}

	rq.NoError(store.Traders().Create(ctx, trader))
	rq.NoError(store.Assets().Create(ctx, sword))

	_, err := transaction.NewService(store, nil).Create(ctx, transaction.CreateInput{
		CounterpartyID: trader.ID,
		Items:          []entity.LineItem{{AssetID: sword.ID, Amount: 2}},
		InnBuying:      true,
	})
	rq.NoError(err)

	err = store.Assets().Delete(ctx, sword.ID)
	rq.True(domain.HasCode(err, errcodes.AssetInUse), err)

	err = store.Traders().Create(ctx, entity.Trader{ID: value.NewID(), Name: "Hattori", Type: value.TraderTypeArmorer, Location: "Vizima"})
	rq.True(domain.HasCode(err, errcodes.NameAlreadyInUse), err)
}
