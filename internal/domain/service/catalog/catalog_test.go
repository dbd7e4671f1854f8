package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"inn_ledger/internal/domain"
	"inn_ledger/internal/domain/entity"
	"inn_ledger/internal/domain/service/catalog"
	"inn_ledger/internal/domain/service/transaction"
	"inn_ledger/internal/domain/value"
	"inn_ledger/internal/port"
	"inn_ledger/internal/port/porttest"
	"inn_ledger/pkg/errcodes"
)

func newSword(amount int64) entity.Asset {
	return entity.Asset{
		Name:        "Silver sword",
		Description: "For monsters",
		Material:    "silver",
		Weight:      3,
		CrownValue:  decimal.NewFromInt(150),
		Type:        value.AssetTypeWeapon,
		Amount:      amount,
	}
}

func TestTraders(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	svc := catalog.NewService(porttest.NewStore())

	trader, err := svc.CreateTrader(ctx, entity.Trader{Name: "Hattori", Type: value.TraderTypeBlacksmith, Location: "Novigrad"})
	rq.NoError(err)
	rq.NotEmpty(trader.ID)

	_, err = svc.CreateTrader(ctx, entity.Trader{Name: "Hattori", Type: value.TraderTypeArmorer, Location: "Oxenfurt"})
	rq.True(domain.HasCode(err, errcodes.NameAlreadyInUse))

	_, err = svc.CreateTrader(ctx, entity.Trader{Name: "fergus", Type: value.TraderTypeArmorer, Location: "Oxenfurt"})
	rq.True(domain.HasCode(err, errcodes.ValidationError))

	location := "Beauclair"

	updated, err := svc.UpdateTrader(ctx, trader.ID, catalog.TraderPatch{Location: &location})
	rq.NoError(err)
	rq.Equal("Beauclair", updated.Location)
	rq.Equal("Hattori", updated.Name)

	lower := "hattori"

	_, err = svc.UpdateTrader(ctx, trader.ID, catalog.TraderPatch{Name: &lower})
	rq.True(domain.HasCode(err, errcodes.ValidationError))

	found, err := svc.ListTraders(ctx, "Hattori")
	rq.NoError(err)
	rq.Len(found, 1)

	_, err = svc.DeleteTrader(ctx, trader.ID)
	rq.NoError(err)

	_, err = svc.GetTrader(ctx, trader.ID)
	rq.True(domain.HasCode(err, errcodes.NotFound))
}

func TestHunters(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	svc := catalog.NewService(porttest.NewStore())

	hunter, err := svc.CreateHunter(ctx, entity.Hunter{Name: "Geralt", Race: value.RaceWitch, Location: "Kaer Morhen"})
	rq.NoError(err)

	race := value.RaceMercenary

	updated, err := svc.UpdateHunter(ctx, hunter.ID, catalog.HunterPatch{Race: &race})
	rq.NoError(err)
	rq.Equal(value.RaceMercenary, updated.Race)

	all, err := svc.ListHunters(ctx, "")
	rq.NoError(err)
	rq.Len(all, 1)

	deleted, err := svc.DeleteHunter(ctx, hunter.ID)
	rq.NoError(err)
	rq.Equal(hunter.ID, deleted.ID)

	_, err = svc.DeleteHunter(ctx, hunter.ID)
	rq.True(domain.HasCode(err, errcodes.NotFound))
}

func TestCreateAssetMergesByName(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	svc := catalog.NewService(porttest.NewStore())

	created, merged, err := svc.CreateAsset(ctx, newSword(2))
	rq.NoError(err)
	rq.False(merged)

	again, merged, err := svc.CreateAsset(ctx, newSword(3))
	rq.NoError(err)
	rq.True(merged)
	rq.Equal(created.ID, again.ID)
	rq.Equal(int64(5), again.Amount)

	stored, err := svc.GetAsset(ctx, created.ID)
	rq.NoError(err)
	rq.Equal(int64(5), stored.Amount)

	weapons, err := svc.ListAssets(ctx, port.AssetFilter{Type: value.AssetTypeWeapon})
	rq.NoError(err)
	rq.Len(weapons, 1)

	potions, err := svc.ListAssets(ctx, port.AssetFilter{Type: value.AssetTypePotion})
	rq.NoError(err)
	rq.Empty(potions)
}

func TestUpdateAsset(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	svc := catalog.NewService(porttest.NewStore())

	asset, _, err := svc.CreateAsset(ctx, newSword(2))
	rq.NoError(err)

	price := decimal.RequireFromString("175.5")

	updated, err := svc.UpdateAsset(ctx, asset.ID, catalog.AssetPatch{CrownValue: &price})
	rq.NoError(err)
	rq.True(price.Equal(updated.CrownValue))

	negative := int64(-1)

	_, err = svc.UpdateAsset(ctx, asset.ID, catalog.AssetPatch{Amount: &negative})
	rq.True(domain.HasCode(err, errcodes.ValidationError))

	_, err = svc.UpdateAsset(ctx, value.NewID(), catalog.AssetPatch{})
	rq.True(domain.HasCode(err, errcodes.NotFound))
}

func TestDeleteAssetInUse(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	store := porttest.NewStore()
	svc := catalog.NewService(store)

	asset, _, err := svc.CreateAsset(ctx, newSword(2))
	rq.NoError(err)

	hunter, err := svc.CreateHunter(ctx, entity.Hunter{Name: "Geralt", Race: value.RaceWitch, Location: "Kaer Morhen"})
	rq.NoError(err)

	tx, err := transaction.NewService(store, nil).Create(ctx, transaction.CreateInput{
		CounterpartyID: hunter.ID,
		Items:          []entity.LineItem{{AssetID: asset.ID, Amount: 1}},
	})
	rq.NoError(err)

	_, err = svc.DeleteAsset(ctx, asset.ID)
	rq.True(domain.HasCode(err, errcodes.AssetInUse))

	_, err = transaction.NewService(store, nil).Delete(ctx, tx.ID)
	rq.NoError(err)

	_, err = svc.DeleteAsset(ctx, asset.ID)
	rq.NoError(err)
}
