package catalog

import (
	"context"
	"fmt"

	"inn_ledger/internal/domain/entity"
	"inn_ledger/internal/domain/value"
	"inn_ledger/internal/port"
)

type HunterPatch struct {
	Name     *string
	Race     *value.Race
	Location *string
}

func (s *Service) CreateHunter(ctx context.Context, hunter entity.Hunter) (entity.Hunter, error) {
	hunter.ID = value.NewID()

	if err := hunter.Validate(); err != nil {
		return entity.Hunter{}, err
	}

	if err := s.uow.Hunters().Create(ctx, hunter); err != nil {
		return entity.Hunter{}, fmt.Errorf("hunters.Create: %w", err)
	}

	logged(ctx, "record created", "hunter", hunter.ID.String())

	return hunter, nil
}

func (s *Service) GetHunter(ctx context.Context, id value.ID) (entity.Hunter, error) {
	hunter, err := s.uow.Hunters().Get(ctx, id)
	if err != nil {
		return entity.Hunter{}, fmt.Errorf("hunters.Get: %w", err)
	}

	return hunter, nil
}

func (s *Service) ListHunters(ctx context.Context, name string) ([]entity.Hunter, error) {
	hunters, err := s.uow.Hunters().FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("hunters.FindByName: %w", err)
	}

	return hunters, nil
}

func (s *Service) UpdateHunter(ctx context.Context, id value.ID, patch HunterPatch) (entity.Hunter, error) {
	var hunter entity.Hunter

	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		var err error

		if hunter, err = repos.Hunters().Get(ctx, id); err != nil {
			return fmt.Errorf("hunters.Get: %w", err)
		}

		setIf(&hunter.Name, patch.Name)
		setIf(&hunter.Race, patch.Race)
		setIf(&hunter.Location, patch.Location)

		if err = hunter.Validate(); err != nil {
			return err
		}

		if err = repos.Hunters().Update(ctx, hunter); err != nil {
			return fmt.Errorf("hunters.Update: %w", err)
		}

		return nil
	})
	if err != nil {
		return entity.Hunter{}, err
	}

	return hunter, nil
}

func (s *Service) DeleteHunter(ctx context.Context, id value.ID) (entity.Hunter, error) {
	var hunter entity.Hunter

	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		var err error

		if hunter, err = repos.Hunters().Get(ctx, id); err != nil {
			return fmt.Errorf("hunters.Get: %w", err)
		}

		if err = repos.Hunters().Delete(ctx, id); err != nil {
			return fmt.Errorf("hunters.Delete: %w", err)
		}

		return nil
	})
	if err != nil {
		return entity.Hunter{}, err
	}

	logged(ctx, "record deleted", "hunter", id.String())

	return hunter, nil
}
