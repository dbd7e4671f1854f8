package persistence

import (
	"time"

	"github.com/shopspring/decimal"

	"inn_ledger/internal/domain/entity"
	"inn_ledger/internal/domain/value"
)

// traderSchema maps a row of traders.
type traderSchema struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Type     string `db:"type"`
	Location string `db:"location"`
}

func fromTrader(t entity.Trader) traderSchema {
	return traderSchema{
		ID:       t.ID.String(),
		Name:     t.Name,
		Type:     t.Type.String(),
		Location: t.Location,
	}
}

func (s traderSchema) toDomain() entity.Trader {
	return entity.Trader{
		ID:       value.ID(s.ID),
		Name:     s.Name,
		Type:     value.TraderType(s.Type),
		Location: s.Location,
	}
}

// hunterSchema maps a row of hunters.
type hunterSchema struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Race     string `db:"race"`
	Location string `db:"location"`
}

func fromHunter(h entity.Hunter) hunterSchema {
	return hunterSchema{
		ID:       h.ID.String(),
		Name:     h.Name,
		Race:     h.Race.String(),
		Location: h.Location,
	}
}

func (s hunterSchema) toDomain() entity.Hunter {
	return entity.Hunter{
		ID:       value.ID(s.ID),
		Name:     s.Name,
		Race:     value.Race(s.Race),
		Location: s.Location,
	}
}

// assetSchema maps a row of assets.
type assetSchema struct {
	ID          string          `db:"id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Material    string          `db:"material"`
	Weight      float64         `db:"weight"`
	CrownValue  decimal.Decimal `db:"crown_value"`
	Type        string          `db:"type"`
	Amount      int64           `db:"amount"`
}

func fromAsset(a entity.Asset) assetSchema {
	return assetSchema{
		ID:          a.ID.String(),
		Name:        a.Name,
		Description: a.Description,
		Material:    a.Material,
		Weight:      a.Weight,
		CrownValue:  a.CrownValue,
		Type:        a.Type.String(),
		Amount:      a.Amount,
	}
}

func (s assetSchema) toDomain() entity.Asset {
	return entity.Asset{
		ID:          value.ID(s.ID),
		Name:        s.Name,
		Description: s.Description,
		Material:    s.Material,
		Weight:      s.Weight,
		CrownValue:  s.CrownValue,
		Type:        value.AssetType(s.Type),
		Amount:      s.Amount,
	}
}

// transactionSchema maps a row of transactions. Line items live in
// transaction_items.
type transactionSchema struct {
	ID               string          `db:"id"`
	CounterpartyKind string          `db:"counterparty_kind"`
	CounterpartyID   string          `db:"counterparty_id"`
	Date             time.Time       `db:"date"`
	CrownValue       decimal.Decimal `db:"crown_value"`
	InnBuying        bool            `db:"inn_buying"`
}

type lineItemSchema struct {
	TransactionID string `db:"transaction_id"`
	Position      int    `db:"position"`
	AssetID       string `db:"asset_id"`
	Amount        int64  `db:"amount"`
}

func fromTransaction(t entity.Transaction) (transactionSchema, []lineItemSchema) {
	items := make([]lineItemSchema, len(t.Items))

	for i, item := range t.Items {
		items[i] = lineItemSchema{
			TransactionID: t.ID.String(),
			Position:      i,
			AssetID:       item.AssetID.String(),
			Amount:        item.Amount,
		}
	}

	return transactionSchema{
		ID:               t.ID.String(),
		CounterpartyKind: entity.CounterpartyKindFor(t.InnBuying).String(),
		CounterpartyID:   t.CounterpartyID.String(),
		Date:             t.Date,
		CrownValue:       t.CrownValue,
		InnBuying:        t.InnBuying,
	}, items
}

// toDomain expects items ordered by position.
func (s transactionSchema) toDomain(items []lineItemSchema) entity.Transaction {
	t := entity.Transaction{
		ID:               value.ID(s.ID),
		CounterpartyID:   value.ID(s.CounterpartyID),
		CounterpartyKind: entity.CounterpartyKind(s.CounterpartyKind),
		Items:            make([]entity.LineItem, len(items)),
		Date:             s.Date,
		CrownValue:       s.CrownValue,
		InnBuying:        s.InnBuying,
	}

	for i, item := range items {
		t.Items[i] = entity.LineItem{AssetID: value.ID(item.AssetID), Amount: item.Amount}
	}

	return t
}
