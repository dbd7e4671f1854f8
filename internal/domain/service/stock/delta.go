package stock

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/samber/lo"

	"inn_ledger/internal/domain"
	"inn_ledger/internal/domain/entity"
	"inn_ledger/internal/domain/value"
	"inn_ledger/pkg/errcodes"
	"inn_ledger/pkg/logx"
)

// Delta is a signed stock change of one asset.
type Delta struct {
	AssetID value.ID
	Amount  int64
}

// Deltas returns the stock changes that post a transaction, or undo it when
// reverse is set. The inn buying adds stock, selling removes it.
func Deltas(tx entity.Transaction, reverse bool) []Delta {
	adding := tx.InnBuying
	if reverse {
		adding = !adding
	}

	deltas := make([]Delta, len(tx.Items))

	for i, item := range tx.Items {
		amount := item.Amount
		if !adding {
			amount = -amount
		}

		deltas[i] = Delta{AssetID: item.AssetID, Amount: amount}
	}

	return deltas
}

// Differential returns the net change turning the stock effect of old into
// the stock effect of updated. Assets only old referenced are given back.
// Assets of updated come first in their order, then dropped assets of old.
// Zero deltas are omitted.
func Differential(old, updated entity.Transaction) []Delta {
	net := make(map[value.ID]int64, len(old.Items)+len(updated.Items))
	order := make([]value.ID, 0, len(old.Items)+len(updated.Items))

	add := func(deltas []Delta) {
		for _, d := range deltas {
			if _, seen := net[d.AssetID]; !seen {
				order = append(order, d.AssetID)
			}

			net[d.AssetID] += d.Amount
		}
	}

	add(Deltas(updated, false))
	add(Deltas(old, true))

	out := make([]Delta, 0, len(order))

	for _, id := range order {
		if net[id] != 0 {
			out = append(out, Delta{AssetID: id, Amount: net[id]})
		}
	}

	return out
}

// ApplyStockDelta posts tx, or undoes it when reverse is set.
func (r *Reconciler) ApplyStockDelta(ctx context.Context, tx entity.Transaction, reverse bool) (Report, error) {
	return r.Apply(ctx, Deltas(tx, reverse))
}

// Apply locks the referenced assets and then moves their stock one delta at
// a time in input order. It stops at the first failure. Changes already
// made are only undone by rolling back the enclosing unit of work.
func (r *Reconciler) Apply(ctx context.Context, deltas []Delta) (Report, error) {
	var report Report

	if len(deltas) == 0 {
		return report, nil
	}

	ids := lo.Uniq(lo.Map(deltas, func(d Delta, _ int) value.ID { return d.AssetID }))
	slices.Sort(ids)

	locked, err := r.repos.Assets().LockByIDs(ctx, ids)
	if err != nil {
		return report, fmt.Errorf("assets.LockByIDs: %w", err)
	}

	for _, d := range deltas {
		asset, ok := locked[d.AssetID]
		if !ok {
			err = domain.NewError(errcodes.AssetNotFound, fmt.Sprintf("Asset %s not found", d.AssetID))
			report.add(Outcome{Delta: d, Err: err})

			return report, err
		}

		after, adjErr := r.repos.Assets().AdjustAmount(ctx, d.AssetID, d.Amount)
		if adjErr != nil {
			err = r.adjustError(asset, d, adjErr)
			report.add(Outcome{Delta: d, Err: err})

			return report, err
		}

		logger(ctx).Debug(
			"stock adjusted",
			slog.String(logx.FieldAssetID, d.AssetID.String()),
			slog.Int64(logx.FieldStockDelta, d.Amount),
			slog.Int64(logx.FieldStockAfter, after),
		)

		report.add(Outcome{Delta: d, StockAfter: after})
	}

	return report, nil
}

func (r *Reconciler) adjustError(asset entity.Asset, d Delta, err error) error {
	switch {
	case domain.HasCode(err, errcodes.InsufficientStock):
		return domain.WrapError(
			err,
			errcodes.InsufficientStock,
			fmt.Sprintf("Not enough %s in stock: %d available, %d requested", asset.Name, asset.Amount, -d.Amount),
		)
	case domain.HasCode(err, errcodes.NotFound):
		return domain.WrapError(err, errcodes.AssetNotFound, fmt.Sprintf("Asset %s not found", d.AssetID))
	default:
		return fmt.Errorf("assets.AdjustAmount: %w", err)
	}
}
