package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"inn_ledger/internal/domain/value"
)

// LineItem is one asset and the quantity traded. Amount is always positive,
// the direction comes from Transaction.InnBuying.
type LineItem struct {
	AssetID value.ID
	Amount  int64
}

type Transaction struct {
	ID             value.ID
	CounterpartyID value.ID
	// CounterpartyKind is derived from InnBuying on every write.
	CounterpartyKind CounterpartyKind
	Items            []LineItem
	Date             time.Time
	CrownValue       decimal.Decimal
	InnBuying        bool
}

func (t Transaction) Clone() Transaction {
	t.Items = append([]LineItem(nil), t.Items...)

	return t
}
