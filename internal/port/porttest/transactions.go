package porttest

import (
	"cmp"
	"context"
	"slices"
	"time"

	"inn_ledger/internal/domain"
	"inn_ledger/internal/domain/entity"
	"inn_ledger/internal/domain/value"
	"inn_ledger/pkg/errcodes"
)

type transactions struct{ repos }

func (r transactions) Create(_ context.Context, t entity.Transaction) error {
	return r.with(func(st *state) error {
		if err := checkReferences(st, t); err != nil {
			return err
		}

		st.transactions[t.ID] = t.Clone()

		return nil
	})
}

func (r transactions) Get(_ context.Context, id value.ID) (entity.Transaction, error) {
	var t entity.Transaction

	err := r.with(func(st *state) error {
		stored, ok := st.transactions[id]
		if !ok {
			return transactionNotFound(id)
		}

		t = stored.Clone()

		return nil
	})

	return t, err
}

func (r transactions) FindByCounterparties(_ context.Context, ids []value.ID) ([]entity.Transaction, error) {
	return r.find(func(t entity.Transaction) bool {
		return slices.Contains(ids, t.CounterpartyID)
	})
}

func (r transactions) FindByDateRange(_ context.Context, from, to time.Time) ([]entity.Transaction, error) {
	return r.find(func(t entity.Transaction) bool {
		return !t.Date.Before(from) && !t.Date.After(to)
	})
}

func (r transactions) Update(_ context.Context, t entity.Transaction) error {
	return r.with(func(st *state) error {
		if _, ok := st.transactions[t.ID]; !ok {
			return transactionNotFound(t.ID)
		}

		if err := checkReferences(st, t); err != nil {
			return err
		}

		st.transactions[t.ID] = t.Clone()

		return nil
	})
}

func (r transactions) Delete(_ context.Context, id value.ID) error {
	return r.with(func(st *state) error {
		if _, ok := st.transactions[id]; !ok {
			return transactionNotFound(id)
		}

		delete(st.transactions, id)

		return nil
	})
}

func (r transactions) find(keep func(entity.Transaction) bool) ([]entity.Transaction, error) {
	var out []entity.Transaction

	err := r.with(func(st *state) error {
		out = sortedValues(st.transactions, keep, func(a, b entity.Transaction) int {
			return cmp.Or(a.Date.Compare(b.Date), cmp.Compare(a.ID, b.ID))
		})

		for i := range out {
			out[i] = out[i].Clone()
		}

		return nil
	})

	return out, err
}

// checkReferences mirrors the foreign keys of transaction_items.
func checkReferences(st *state, t entity.Transaction) error {
	for _, item := range t.Items {
		if _, ok := st.assets[item.AssetID]; !ok {
			return notFound("asset", item.AssetID)
		}
	}

	return nil
}

func transactionNotFound(id value.ID) error {
	return domain.NewError(errcodes.TransactionNotFound, "Transaction with id "+id.String()+" not found")
}
