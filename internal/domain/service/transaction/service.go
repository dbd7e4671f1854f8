// Package transaction drives the create, edit and delete workflows of inn
// transactions. Every workflow validates, persists and reconciles stock in
// one unit of work.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"inn_ledger/internal/domain"
	"inn_ledger/internal/domain/entity"
	"inn_ledger/internal/domain/service/stock"
	"inn_ledger/internal/domain/value"
	"inn_ledger/internal/metrics"
	"inn_ledger/internal/port"
	"inn_ledger/pkg/contextx"
	"inn_ledger/pkg/errcodes"
	"inn_ledger/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	defaultTimeout        = 5 * time.Second
	defaultIdempotencyTTL = 24 * time.Hour
)

// State is a step of a workflow, logged on every transition.
type State string

const (
	StateReceived    State = "received"
	StateValidating  State = "validating"
	StatePersisting  State = "persisting"
	StateReconciling State = "reconciling"
	StateCommitted   State = "committed"
	StateRejected    State = "rejected"
)

type Service struct {
	uow            port.UnitOfWork
	metrics        *metrics.Ledger
	idempotency    port.IdempotencyStore
	idempotencyTTL time.Duration
	timeout        time.Duration
	now            func() time.Time
}

func NewService(uow port.UnitOfWork, ledgerMetrics *metrics.Ledger) *Service {
	return &Service{
		uow:            uow,
		metrics:        ledgerMetrics,
		idempotencyTTL: defaultIdempotencyTTL,
		timeout:        defaultTimeout,
		now:            time.Now,
	}
}

func (s *Service) WithTimeout(timeout time.Duration) *Service {
	s.timeout = timeout
	return s
}

func (s *Service) WithIdempotency(store port.IdempotencyStore, ttl time.Duration) *Service {
	s.idempotency = store
	s.idempotencyTTL = ttl

	return s
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type CreateInput struct {
	CounterpartyID value.ID
	Items          []entity.LineItem
	InnBuying      bool
	// Date defaults to now.
	Date *time.Time
	// CrownValue defaults to the appraised value of the items.
	CrownValue *decimal.Decimal
	// IdempotencyKey rejects replays of the same request when set.
	IdempotencyKey string
}

// Patch holds the fields an edit replaces. Nil fields are kept.
type Patch struct {
	CounterpartyID *value.ID
	Items          []entity.LineItem
	InnBuying      *bool
	Date           *time.Time
	CrownValue     *decimal.Decimal
}

func (s *Service) Create(ctx context.Context, in CreateInput) (entity.Transaction, error) {
	if err := s.reserve(ctx, in.IdempotencyKey); err != nil {
		return entity.Transaction{}, err
	}

	tx := entity.Transaction{
		ID:             value.NewID(),
		CounterpartyID: in.CounterpartyID,
		Items:          in.Items,
		InnBuying:      in.InnBuying,
		Date:           s.now().UTC(),
	}

	if in.Date != nil {
		tx.Date = *in.Date
	}

	ctx = contextx.WithLogger(ctx, logger(ctx).With(slog.String(logx.FieldTransactionID, tx.ID.String())))

	var report stock.Report

	err := s.run(ctx, "create", func(ctx context.Context) error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
			rec := stock.NewReconciler(repos, s.now)

			transition(ctx, StateValidating)

			res, err := rec.Validate(ctx, tx)
			if err != nil {
				return fmt.Errorf("validate: %w", err)
			}

			ctx = withCounterparty(ctx, res.Counterparty)
			tx.CounterpartyKind = res.Counterparty.Kind
			tx.CrownValue = res.Appraise(tx.Items)

			if in.CrownValue != nil {
				tx.CrownValue = *in.CrownValue
			}

			transition(ctx, StatePersisting)

			if err = repos.Transactions().Create(ctx, tx); err != nil {
				return fmt.Errorf("transactions.Create: %w", err)
			}

			transition(ctx, StateReconciling)

			if report, err = rec.ApplyStockDelta(ctx, tx, false); err != nil {
				return fmt.Errorf("apply stock: %w", err)
			}

			return nil
		})
	})
	if err != nil {
		s.release(ctx, in.IdempotencyKey)

		return entity.Transaction{}, err
	}

	s.committed(ctx, report)

	return tx, nil
}

func (s *Service) Get(ctx context.Context, id value.ID) (entity.Transaction, error) {
	var tx entity.Transaction

	err := s.run(ctx, "get", func(ctx context.Context) error {
		var err error

		tx, err = s.uow.Transactions().Get(ctx, id)

		return err
	})

	return tx, err
}

func (s *Service) Update(ctx context.Context, id value.ID, patch Patch) (entity.Transaction, error) {
	ctx = contextx.WithLogger(ctx, logger(ctx).With(slog.String(logx.FieldTransactionID, id.String())))

	var (
		updated entity.Transaction
		report  stock.Report
	)

	err := s.run(ctx, "update", func(ctx context.Context) error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
			old, err := repos.Transactions().Get(ctx, id)
			if err != nil {
				return fmt.Errorf("transactions.Get: %w", err)
			}

			updated = patch.apply(old)
			rec := stock.NewReconciler(repos, s.now)

			transition(ctx, StateValidating)

			res, err := rec.ValidateChanges(ctx, updated)
			if err != nil {
				return fmt.Errorf("validate changes: %w", err)
			}

			ctx = withCounterparty(ctx, res.Counterparty)
			updated.CounterpartyKind = res.Counterparty.Kind

			transition(ctx, StateReconciling)

			if report, err = rec.Apply(ctx, stock.Differential(old, updated)); err != nil {
				return fmt.Errorf("apply differential: %w", err)
			}

			transition(ctx, StatePersisting)

			if err = repos.Transactions().Update(ctx, updated); err != nil {
				return fmt.Errorf("transactions.Update: %w", err)
			}

			return nil
		})
	})
	if err != nil {
		return entity.Transaction{}, err
	}

	s.committed(ctx, report)

	return updated, nil
}

// Delete undoes the stock effect of a transaction and removes it. The
// removed record is returned.
func (s *Service) Delete(ctx context.Context, id value.ID) (entity.Transaction, error) {
	ctx = contextx.WithLogger(ctx, logger(ctx).With(slog.String(logx.FieldTransactionID, id.String())))

	var (
		deleted entity.Transaction
		report  stock.Report
	)

	err := s.run(ctx, "delete", func(ctx context.Context) error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
			var err error

			if deleted, err = repos.Transactions().Get(ctx, id); err != nil {
				return fmt.Errorf("transactions.Get: %w", err)
			}

			transition(ctx, StateReconciling)

			if report, err = stock.NewReconciler(repos, s.now).ApplyStockDelta(ctx, deleted, true); err != nil {
				return fmt.Errorf("reverse stock: %w", err)
			}

			transition(ctx, StatePersisting)

			if err = repos.Transactions().Delete(ctx, id); err != nil {
				return fmt.Errorf("transactions.Delete: %w", err)
			}

			return nil
		})
	})
	if err != nil {
		return entity.Transaction{}, err
	}

	s.committed(ctx, report)

	return deleted, nil
}

func (p Patch) apply(tx entity.Transaction) entity.Transaction {
	tx = tx.Clone()

	if p.CounterpartyID != nil {
		tx.CounterpartyID = *p.CounterpartyID
	}

	if p.Items != nil {
		tx.Items = append([]entity.LineItem(nil), p.Items...)
	}

	if p.InnBuying != nil {
		tx.InnBuying = *p.InnBuying
	}

	if p.Date != nil {
		tx.Date = *p.Date
	}

	if p.CrownValue != nil {
		tx.CrownValue = *p.CrownValue
	}

	return tx
}

// run bounds fn by the workflow timeout and records its outcome.
func (s *Service) run(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	transition(ctx, StateReceived)

	err := fn(ctx)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = domain.WrapError(err, errcodes.TimeoutExceeded, fmt.Sprintf("The %s operation timed out", operation))
	}

	s.metrics.Observe(operation, start, err)

	if err != nil {
		logger(ctx).Info("workflow rejected", slog.String(logx.FieldState, string(StateRejected)), logx.Error(err))

		return err
	}

	return nil
}

func (s *Service) committed(ctx context.Context, report stock.Report) {
	deltas := make([]int64, 0, len(report.Outcomes))

	for _, o := range report.Outcomes {
		deltas = append(deltas, o.Delta.Amount)
	}

	s.metrics.StockMoved(deltas...)

	logger(ctx).Info(
		"workflow committed",
		slog.String(logx.FieldState, string(StateCommitted)),
		slog.Int(logx.FieldLineItems, report.Applied()),
	)
}

func withCounterparty(ctx context.Context, c entity.Counterparty) context.Context {
	return contextx.WithLogger(ctx, logger(ctx).With(
		slog.String(logx.FieldCounterpartyID, c.ID().String()),
		slog.String(logx.FieldCounterpartyName, c.Name()),
	))
}

func transition(ctx context.Context, state State) {
	logger(ctx).Debug("workflow transition", slog.String(logx.FieldState, string(state)))
}
