package catalog

import (
	"context"
	"fmt"

	"inn_ledger/internal/domain/entity"
	"inn_ledger/internal/domain/value"
	"inn_ledger/internal/port"
)

type TraderPatch struct {
	Name     *string
	Type     *value.TraderType
	Location *string
}

func (s *Service) CreateTrader(ctx context.Context, trader entity.Trader) (entity.Trader, error) {
	trader.ID = value.NewID()

	if err := trader.Validate(); err != nil {
		return entity.Trader{}, err
	}

	if err := s.uow.Traders().Create(ctx, trader); err != nil {
		return entity.Trader{}, fmt.Errorf("traders.Create: %w", err)
	}

	logged(ctx, "record created", "trader", trader.ID.String())

	return trader, nil
}

func (s *Service) GetTrader(ctx context.Context, id value.ID) (entity.Trader, error) {
	trader, err := s.uow.Traders().Get(ctx, id)
	if err != nil {
		return entity.Trader{}, fmt.Errorf("traders.Get: %w", err)
	}

	return trader, nil
}

func (s *Service) ListTraders(ctx context.Context, name string) ([]entity.Trader, error) {
	traders, err := s.uow.Traders().FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("traders.FindByName: %w", err)
	}

	return traders, nil
}

func (s *Service) UpdateTrader(ctx context.Context, id value.ID, patch TraderPatch) (entity.Trader, error) {
	var trader entity.Trader

	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		var err error

		if trader, err = repos.Traders().Get(ctx, id); err != nil {
			return fmt.Errorf("traders.Get: %w", err)
		}

		setIf(&trader.Name, patch.Name)
		setIf(&trader.Type, patch.Type)
		setIf(&trader.Location, patch.Location)

		if err = trader.Validate(); err != nil {
			return err
		}

		if err = repos.Traders().Update(ctx, trader); err != nil {
			return fmt.Errorf("traders.Update: %w", err)
		}

		return nil
	})
	if err != nil {
		return entity.Trader{}, err
	}

	return trader, nil
}

// DeleteTrader removes the trader and returns it. Transactions keep their
// reference and fail validation on the next edit.
func (s *Service) DeleteTrader(ctx context.Context, id value.ID) (entity.Trader, error) {
	var trader entity.Trader

	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		var err error

		if trader, err = repos.Traders().Get(ctx, id); err != nil {
			return fmt.Errorf("traders.Get: %w", err)
		}

		if err = repos.Traders().Delete(ctx, id); err != nil {
			return fmt.Errorf("traders.Delete: %w", err)
		}

		return nil
	})
	if err != nil {
		return entity.Trader{}, err
	}

	logged(ctx, "record deleted", "trader", id.String())

	return trader, nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
