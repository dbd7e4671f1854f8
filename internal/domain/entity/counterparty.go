package entity

import "inn_ledger/internal/domain/value"

type CounterpartyKind string

const (
	CounterpartyTrader CounterpartyKind = "trader"
	CounterpartyHunter CounterpartyKind = "hunter"
)

// CounterpartyKindFor returns the kind a transaction's counterparty must
// resolve as. The inn buys from traders and sells to hunters.
func CounterpartyKindFor(innBuying bool) CounterpartyKind {
	if innBuying {
		return CounterpartyTrader
	}

	return CounterpartyHunter
}

func (k CounterpartyKind) String() string { return string(k) }

// Counterparty is the resolved other side of a transaction. Exactly one of
// Trader and Hunter is set, matching Kind.
type Counterparty struct {
	Kind   CounterpartyKind
	Trader *Trader
	Hunter *Hunter
}

func TraderCounterparty(t Trader) Counterparty {
	return Counterparty{Kind: CounterpartyTrader, Trader: &t}
}

func HunterCounterparty(h Hunter) Counterparty {
	return Counterparty{Kind: CounterpartyHunter, Hunter: &h}
}

func (c Counterparty) ID() value.ID {
	switch c.Kind {
	case CounterpartyTrader:
		return c.Trader.ID
	case CounterpartyHunter:
		return c.Hunter.ID
	}

	return ""
}

func (c Counterparty) Name() string {
	switch c.Kind {
	case CounterpartyTrader:
		return c.Trader.Name
	case CounterpartyHunter:
		return c.Hunter.Name
	}

	return ""
}
