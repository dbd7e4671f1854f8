package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"inn_ledger/internal/domain/entity"
	"inn_ledger/internal/domain/value"
	"inn_ledger/internal/port"
)

type AssetPatch struct {
	Name        *string
	Description *string
	Material    *string
	Weight      *float64
	CrownValue  *decimal.Decimal
	Type        *value.AssetType
	Amount      *int64
}

// CreateAsset stores a new asset, or adds the amount to the stock of the
// asset with the same name. merged reports the latter.
func (s *Service) CreateAsset(ctx context.Context, asset entity.Asset) (_ entity.Asset, merged bool, _ error) {
	if err := asset.Validate(); err != nil {
		return entity.Asset{}, false, err
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		existing, err := repos.Assets().Find(ctx, port.AssetFilter{Name: asset.Name})
		if err != nil {
			return fmt.Errorf("assets.Find: %w", err)
		}

		if len(existing) == 0 {
			asset.ID = value.NewID()

			if err = repos.Assets().Create(ctx, asset); err != nil {
				return fmt.Errorf("assets.Create: %w", err)
			}

			return nil
		}

		merged = true
		stored := existing[0]

		if _, err = repos.Assets().LockByIDs(ctx, []value.ID{stored.ID}); err != nil {
			return fmt.Errorf("assets.LockByIDs: %w", err)
		}

		if stored.Amount, err = repos.Assets().AdjustAmount(ctx, stored.ID, asset.Amount); err != nil {
			return fmt.Errorf("assets.AdjustAmount: %w", err)
		}

		asset = stored

		return nil
	})
	if err != nil {
		return entity.Asset{}, false, err
	}

	if merged {
		logged(ctx, "asset stock merged", "asset", asset.ID.String())
	} else {
		logged(ctx, "record created", "asset", asset.ID.String())
	}

	return asset, merged, nil
}

func (s *Service) GetAsset(ctx context.Context, id value.ID) (entity.Asset, error) {
	asset, err := s.uow.Assets().Get(ctx, id)
	if err != nil {
		return entity.Asset{}, fmt.Errorf("assets.Get: %w", err)
	}

	return asset, nil
}

func (s *Service) ListAssets(ctx context.Context, filter port.AssetFilter) ([]entity.Asset, error) {
	assets, err := s.uow.Assets().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("assets.Find: %w", err)
	}

	return assets, nil
}

func (s *Service) UpdateAsset(ctx context.Context, id value.ID, patch AssetPatch) (entity.Asset, error) {
	var asset entity.Asset

	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		locked, err := repos.Assets().LockByIDs(ctx, []value.ID{id})
		if err != nil {
			return fmt.Errorf("assets.LockByIDs: %w", err)
		}

		var ok bool
		if asset, ok = locked[id]; !ok {
			if _, err = repos.Assets().Get(ctx, id); err != nil {
				return fmt.Errorf("assets.Get: %w", err)
			}
		}

		setIf(&asset.Name, patch.Name)
		setIf(&asset.Description, patch.Description)
		setIf(&asset.Material, patch.Material)
		setIf(&asset.Weight, patch.Weight)
		setIf(&asset.CrownValue, patch.CrownValue)
		setIf(&asset.Type, patch.Type)
		setIf(&asset.Amount, patch.Amount)

		if err = asset.Validate(); err != nil {
			return err
		}

		if err = repos.Assets().Update(ctx, asset); err != nil {
			return fmt.Errorf("assets.Update: %w", err)
		}

		return nil
	})
	if err != nil {
		return entity.Asset{}, err
	}

	return asset, nil
}

// DeleteAsset fails with errcodes.AssetInUse while a transaction refers to
// the asset.
func (s *Service) DeleteAsset(ctx context.Context, id value.ID) (entity.Asset, error) {
	var asset entity.Asset

	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		var err error

		if asset, err = repos.Assets().Get(ctx, id); err != nil {
			return fmt.Errorf("assets.Get: %w", err)
		}

		if err = repos.Assets().Delete(ctx, id); err != nil {
			return fmt.Errorf("assets.Delete: %w", err)
		}

		return nil
	})
	if err != nil {
		return entity.Asset{}, err
	}

	logged(ctx, "record deleted", "asset", id.String())

	return asset, nil
}
