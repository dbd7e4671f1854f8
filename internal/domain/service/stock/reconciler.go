// Package stock validates transactions against the inventory and moves
// asset stock for them.
package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"inn_ledger/internal/domain"
	"inn_ledger/internal/domain/entity"
	"inn_ledger/internal/domain/value"
	"inn_ledger/internal/port"
	"inn_ledger/pkg/contextx"
	"inn_ledger/pkg/errcodes"
	"inn_ledger/pkg/lox"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Reconciler works on the repositories of one unit of work. It must not be
// shared between units of work.
type Reconciler struct {
	repos port.Repositories
	now   func() time.Time
}

func NewReconciler(repos port.Repositories, now func() time.Time) *Reconciler {
	if now == nil {
		now = time.Now
	}

	return &Reconciler{
		repos: repos,
		now:   now,
	}
}

// Resolution holds the records a valid transaction refers to. Assets follow
// line item order.
type Resolution struct {
	Counterparty entity.Counterparty
	Assets       []entity.Asset
}

// Appraise prices the line items the resolution was built for at the crown
// value of their assets.
func (res Resolution) Appraise(items []entity.LineItem) decimal.Decimal {
	total := decimal.Zero

	for i, item := range items {
		total = total.Add(res.Assets[i].CrownValue.Mul(decimal.NewFromInt(item.Amount)))
	}

	return total
}

// Validate checks a transaction about to be created. The first failing check
// is returned.
func (r *Reconciler) Validate(ctx context.Context, candidate entity.Transaction) (Resolution, error) {
	res, err := r.ValidateChanges(ctx, candidate)
	if err != nil {
		return Resolution{}, err
	}

	if candidate.InnBuying {
		return res, nil
	}

	for i, item := range candidate.Items {
		if asset := res.Assets[i]; asset.Amount < item.Amount {
			return Resolution{}, domain.NewError(
				errcodes.InsufficientStock,
				fmt.Sprintf("Not enough %s in stock: %d available, %d requested", asset.Name, asset.Amount, item.Amount),
			)
		}
	}

	return res, nil
}

// ValidateChanges runs every check of Validate except stock sufficiency.
// Edits rely on the guarded apply instead.
func (r *Reconciler) ValidateChanges(ctx context.Context, candidate entity.Transaction) (Resolution, error) {
	if err := r.checkShape(candidate); err != nil {
		return Resolution{}, err
	}

	counterparty, err := r.resolveCounterparty(ctx, candidate.CounterpartyID, candidate.InnBuying)
	if err != nil {
		return Resolution{}, err
	}

	assets := make([]entity.Asset, len(candidate.Items))

	for i, item := range candidate.Items {
		if assets[i], err = r.resolveAsset(ctx, item.AssetID); err != nil {
			return Resolution{}, err
		}
	}

	if dup, ok := lox.FirstDuplicate(candidate.Items, func(item entity.LineItem) value.ID { return item.AssetID }); ok {
		return Resolution{}, domain.NewError(
			errcodes.DuplicateAsset,
			fmt.Sprintf("Asset %s appears more than once", dup.AssetID),
		)
	}

	return Resolution{Counterparty: counterparty, Assets: assets}, nil
}


func (r *Reconciler) checkShape(candidate entity.Transaction) error {
	if candidate.CounterpartyID == "" || len(candidate.Items) == 0 {
		return domain.NewError(errcodes.MissingField, "Error: a body must be specified")
	}

	for _, item := range candidate.Items {
		if item.AssetID == "" {
			return domain.NewError(errcodes.MissingField, "Every line item must reference an asset")
		}

		if item.Amount <= 0 {
			return domain.NewError(
				errcodes.InvalidLineItem,
				fmt.Sprintf("Amount of asset %s must be positive, got %d", item.AssetID, item.Amount),
			)
		}
	}

	if candidate.Date.After(r.now()) {
		return domain.NewError(errcodes.FutureDate, "A transaction can't have a future date")
	}

	return nil
}

// resolveCounterparty looks the reference up among traders when the inn is
// buying and among hunters otherwise. The flag decides, a hunter id posted
// with innBuying=true is not registered.
func (r *Reconciler) resolveCounterparty(ctx context.Context, id value.ID, innBuying bool) (entity.Counterparty, error) {
	kind := entity.CounterpartyKindFor(innBuying)

	var (
		counterparty entity.Counterparty
		err          error
	)

	switch kind {
	case entity.CounterpartyTrader:
		var t entity.Trader
		if t, err = r.repos.Traders().Get(ctx, id); err == nil {
			counterparty = entity.TraderCounterparty(t)
		}
	case entity.CounterpartyHunter:
		var h entity.Hunter
		if h, err = r.repos.Hunters().Get(ctx, id); err == nil {
			counterparty = entity.HunterCounterparty(h)
		}
	}

	switch {
	case err == nil:
		return counterparty, nil
	case domain.HasCode(err, errcodes.NotFound):
		return entity.Counterparty{}, domain.WrapError(
			err,
			errcodes.CounterpartyNotRegistered,
			fmt.Sprintf("The %s %s is not registered", kind, id),
		)
	default:
		return entity.Counterparty{}, fmt.Errorf("resolve %s: %w", kind, err)
	}
}

func (r *Reconciler) resolveAsset(ctx context.Context, id value.ID) (entity.Asset, error) {
	asset, err := r.repos.Assets().Get(ctx, id)

	switch {
	case err == nil:
		return asset, nil
	case domain.HasCode(err, errcodes.NotFound):
		return entity.Asset{}, domain.WrapError(err, errcodes.AssetNotFound, fmt.Sprintf("Asset %s not found", id))
	default:
		return entity.Asset{}, fmt.Errorf("assets.Get: %w", err)
	}
}
