package transaction

import (
	"context"
	"fmt"
	"time"

	"inn_ledger/internal/domain"
	"inn_ledger/internal/domain/entity"
	"inn_ledger/internal/domain/value"
	"inn_ledger/pkg/errcodes"
)

// Query selects transactions either by counterparty name or by a closed
// date range. Name wins when both are set.
type Query struct {
	Name     string
	FirstDay time.Time
	LastDay  time.Time
}

func (s *Service) List(ctx context.Context, q Query) ([]entity.Transaction, error) {
	var out []entity.Transaction

	err := s.run(ctx, "list", func(ctx context.Context) error {
		var err error

		if q.Name != "" {
			out, err = s.listByName(ctx, q.Name)
			return err
		}

		if q.FirstDay.After(q.LastDay) {
			return domain.NewError(errcodes.InvalidDateRange, "The first day must not be after the last day")
		}

		if out, err = s.uow.Transactions().FindByDateRange(ctx, q.FirstDay, q.LastDay); err != nil {
			return fmt.Errorf("transactions.FindByDateRange: %w", err)
		}

		return nil
	})

	return out, err
}

// listByName matches traders first and then hunters. Transactions of every
// counterparty carrying the name are returned.
func (s *Service) listByName(ctx context.Context, name string) ([]entity.Transaction, error) {
	traders, err := s.uow.Traders().FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("traders.FindByName: %w", err)
	}

	hunters, err := s.uow.Hunters().FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("hunters.FindByName: %w", err)
	}

	ids := make([]value.ID, 0, len(traders)+len(hunters))

	for _, t := range traders {
		ids = append(ids, t.ID)
	}

	for _, h := range hunters {
		ids = append(ids, h.ID)
	}

	if len(ids) == 0 {
		return nil, domain.NewError(errcodes.CounterpartyNameNotFound, fmt.Sprintf("Trader with name %s not found", name))
	}

	txs, err := s.uow.Transactions().FindByCounterparties(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("transactions.FindByCounterparties: %w", err)
	}

	return txs, nil
}
