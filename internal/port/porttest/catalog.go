package porttest

import (
	"context"

	"inn_ledger/internal/domain"
	"inn_ledger/internal/domain/entity"
	"inn_ledger/internal/domain/value"
	"inn_ledger/internal/port"
	"inn_ledger/pkg/errcodes"
)

type traders struct{ repos }

func (r traders) Create(_ context.Context, t entity.Trader) error {
	return r.with(func(st *state) error {
		for _, other := range st.traders {
			if other.Name == t.Name {
				return nameInUse("trader", t.Name)
			}
		}

		st.traders[t.ID] = t

		return nil
	})
}

func (r traders) Get(_ context.Context, id value.ID) (entity.Trader, error) {
	var t entity.Trader

	err := r.with(func(st *state) error {
		var ok bool
		if t, ok = st.traders[id]; !ok {
			return notFound("trader", id)
		}

		return nil
	})

	return t, err
}

func (r traders) FindByName(_ context.Context, name string) ([]entity.Trader, error) {
	var out []entity.Trader

	err := r.with(func(st *state) error {
		out = sortedValues(st.traders,
			func(t entity.Trader) bool { return name == "" || t.Name == name },
			byName(func(t entity.Trader) string { return t.Name }, func(t entity.Trader) value.ID { return t.ID }),
		)

		return nil
	})

	return out, err
}

func (r traders) Update(_ context.Context, t entity.Trader) error {
	return r.with(func(st *state) error {
		if _, ok := st.traders[t.ID]; !ok {
			return notFound("trader", t.ID)
		}

		for _, other := range st.traders {
			if other.ID != t.ID && other.Name == t.Name {
				return nameInUse("trader", t.Name)
			}
		}

		st.traders[t.ID] = t

		return nil
	})
}

func (r traders) Delete(_ context.Context, id value.ID) error {
	return r.with(func(st *state) error {
		if _, ok := st.traders[id]; !ok {
			return notFound("trader", id)
		}

		delete(st.traders, id)

		return nil
	})
}

type hunters struct{ repos }

func (r hunters) Create(_ context.Context, h entity.Hunter) error {
	return r.with(func(st *state) error {
		st.hunters[h.ID] = h

		return nil
	})
}

func (r hunters) Get(_ context.Context, id value.ID) (entity.Hunter, error) {
	var h entity.Hunter

	err := r.with(func(st *state) error {
		var ok bool
		if h, ok = st.hunters[id]; !ok {
			return notFound("hunter", id)
		}

		return nil
	})

	return h, err
}

func (r hunters) FindByName(_ context.Context, name string) ([]entity.Hunter, error) {
	var out []entity.Hunter

	err := r.with(func(st *state) error {
		out = sortedValues(st.hunters,
			func(h entity.Hunter) bool { return name == "" || h.Name == name },
			byName(func(h entity.Hunter) string { return h.Name }, func(h entity.Hunter) value.ID { return h.ID }),
		)

		return nil
	})

	return out, err
}

func (r hunters) Update(_ context.Context, h entity.Hunter) error {
	return r.with(func(st *state) error {
		if _, ok := st.hunters[h.ID]; !ok {
			return notFound("hunter", h.ID)
		}

		st.hunters[h.ID] = h

		return nil
	})
}

func (r hunters) Delete(_ context.Context, id value.ID) error {
	return r.with(func(st *state) error {
		if _, ok := st.hunters[id]; !ok {
			return notFound("hunter", id)
		}

		delete(st.hunters, id)

		return nil
	})
}

type assets struct{ repos }

func (r assets) Create(_ context.Context, a entity.Asset) error {
	return r.with(func(st *state) error {
		for _, other := range st.assets {
			if other.Name == a.Name {
				return nameInUse("asset", a.Name)
			}
		}

		st.assets[a.ID] = a

		return nil
	})
}

func (r assets) Get(_ context.Context, id value.ID) (entity.Asset, error) {
	var a entity.Asset

	err := r.with(func(st *state) error {
		var ok bool
		if a, ok = st.assets[id]; !ok {
			return notFound("asset", id)
		}

		return nil
	})

	return a, err
}

func (r assets) Find(_ context.Context, f port.AssetFilter) ([]entity.Asset, error) {
	var out []entity.Asset

	err := r.with(func(st *state) error {
		out = sortedValues(st.assets,
			func(a entity.Asset) bool {
				return (f.Name == "" || a.Name == f.Name) &&
					(f.Material == "" || a.Material == f.Material) &&
					(f.Type == "" || a.Type == f.Type)
			},
			byName(func(a entity.Asset) string { return a.Name }, func(a entity.Asset) value.ID { return a.ID }),
		)

		return nil
	})

	return out, err
}

func (r assets) Update(_ context.Context, a entity.Asset) error {
	return r.with(func(st *state) error {
		if _, ok := st.assets[a.ID]; !ok {
			return notFound("asset", a.ID)
		}

		for _, other := range st.assets {
			if other.ID != a.ID && other.Name == a.Name {
				return nameInUse("asset", a.Name)
			}
		}

		if a.Amount < 0 {
			return domain.NewError(errcodes.InsufficientStock, "asset amount cannot be negative")
		}

		st.assets[a.ID] = a

		return nil
	})
}

func (r assets) Delete(_ context.Context, id value.ID) error {
	return r.with(func(st *state) error {
		if _, ok := st.assets[id]; !ok {
			return notFound("asset", id)
		}

		for _, tx := range st.transactions {
			for _, item := range tx.Items {
				if item.AssetID == id {
					return domain.NewError(errcodes.AssetInUse, "asset is referenced by transaction "+tx.ID.String())
				}
			}
		}

		delete(st.assets, id)

		return nil
	})
}

func (r assets) LockByIDs(_ context.Context, ids []value.ID) (map[value.ID]entity.Asset, error) {
	out := make(map[value.ID]entity.Asset, len(ids))

	err := r.with(func(st *state) error {
		for _, id := range ids {
			if a, ok := st.assets[id]; ok {
				out[id] = a
			}
		}

		return nil
	})

	return out, err
}

func (r assets) AdjustAmount(_ context.Context, id value.ID, delta int64) (int64, error) {
	var amount int64

	err := r.with(func(st *state) error {
		a, ok := st.assets[id]
		if !ok {
			return notFound("asset", id)
		}

		if a.Amount+delta < 0 {
			return domain.NewError(errcodes.InsufficientStock, "not enough stock of asset "+id.String())
		}

		a.Amount += delta
		st.assets[id] = a
		amount = a.Amount

		return nil
	})

	return amount, err
}
