// Package porttest provides an in-memory port.UnitOfWork for service and
// handler tests. A unit of work runs on a copy of the state that replaces
// the live state only when fn succeeds.
package porttest

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"inn_ledger/internal/domain"
	"inn_ledger/internal/domain/entity"
	"inn_ledger/internal/domain/value"
	"inn_ledger/internal/port"
	"inn_ledger/pkg/errcodes"
)

type state struct {
	traders      map[value.ID]entity.Trader
	hunters      map[value.ID]entity.Hunter
	assets       map[value.ID]entity.Asset
	transactions map[value.ID]entity.Transaction
}

func newState() *state {
	return &state{
		traders:      map[value.ID]entity.Trader{},
		hunters:      map[value.ID]entity.Hunter{},
		assets:       map[value.ID]entity.Asset{},
		transactions: map[value.ID]entity.Transaction{},
	}
}

func (s *state) clone() *state {
	c := &state{
		traders:      make(map[value.ID]entity.Trader, len(s.traders)),
		hunters:      make(map[value.ID]entity.Hunter, len(s.hunters)),
		assets:       make(map[value.ID]entity.Asset, len(s.assets)),
		transactions: make(map[value.ID]entity.Transaction, len(s.transactions)),
	}

	for k, v := range s.traders {
		c.traders[k] = v
	}

	for k, v := range s.hunters {
		c.hunters[k] = v
	}

	for k, v := range s.assets {
		c.assets[k] = v
	}

	for k, v := range s.transactions {
		c.transactions[k] = v.Clone()
	}

	return c
}

type Store struct {
	mu    sync.Mutex
	state *state
	// Latency delays every unit of work, used to exercise timeouts.
	Latency time.Duration
}

func NewStore() *Store {
	return &Store{state: newState()}
}

var _ port.UnitOfWork = (*Store)(nil)

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos port.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Latency > 0 {
		select {
		case <-time.After(s.Latency):
		case <-ctx.Done():
			return ctx.Err() //nolint:wrapcheck
		}
	}

	draft := s.state.clone()

	if err := fn(ctx, repos{st: draft}); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	s.state = draft

	return nil
}

func (s *Store) Traders() port.TraderRepository           { return traders{s.live()} }
func (s *Store) Hunters() port.HunterRepository           { return hunters{s.live()} }
func (s *Store) Assets() port.AssetRepository             { return assets{s.live()} }
func (s *Store) Transactions() port.TransactionRepository { return transactions{s.live()} }

// Amount returns the stock of an asset, or -1 when it does not exist.
func (s *Store) Amount(id value.ID) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.state.assets[id]
	if !ok {
		return -1
	}

	return a.Amount
}

// TransactionCount returns the number of stored transactions.
func (s *Store) TransactionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.state.transactions)
}

func (s *Store) live() repos {
	return repos{store: s}
}

// repos either works on a draft inside a unit of work or locks the store for
// every call.
type repos struct {
	store *Store
	st    *state
}

func (r repos) Traders() port.TraderRepository           { return traders{r} }
func (r repos) Hunters() port.HunterRepository           { return hunters{r} }
func (r repos) Assets() port.AssetRepository             { return assets{r} }
func (r repos) Transactions() port.TransactionRepository { return transactions{r} }

func (r repos) with(fn func(st *state) error) error {
	if r.st != nil {
		return fn(r.st)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return fn(r.store.state)
}

func notFound(kind string, id value.ID) error {
	return domain.NewError(errcodes.NotFound, fmt.Sprintf("%s %s not found", kind, id))
}

func nameInUse(kind, name string) error {
	return domain.NewError(errcodes.NameAlreadyInUse, fmt.Sprintf("%s name %q already in use", kind, name))
}

func sortedValues[K comparable, V any](m map[K]V, keep func(V) bool, cmpFn func(a, b V) int) []V {
	out := make([]V, 0, len(m))

	for _, v := range m {
		if keep(v) {
			out = append(out, v)
		}
	}

	slices.SortFunc(out, cmpFn)

	return out
}

func byName[T any](name func(T) string, id func(T) value.ID) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Or(cmp.Compare(name(a), name(b)), cmp.Compare(id(a), id(b)))
	}
}
