package server

import (
	"fmt"
	"time"

	"inn_ledger/internal/domain"
	"inn_ledger/internal/domain/entity"
	"inn_ledger/internal/domain/service/catalog"
	"inn_ledger/internal/domain/service/transaction"
	"inn_ledger/internal/domain/value"
	"inn_ledger/pkg/errcodes"
	"inn_ledger/pkg/lox"
	"inn_ledger/pkg/rest"
)

const dateLayout = time.DateOnly

func newRESTTransaction(t entity.Transaction) rest.Transaction {
	return rest.Transaction{
		ID:               t.ID.String(),
		Mercader:         t.CounterpartyID.String(),
		CounterpartyKind: t.CounterpartyKind.String(),
		Bienes: lox.Map(t.Items, func(item entity.LineItem) rest.LineItem {
			return rest.LineItem{Asset: item.AssetID.String(), Amount: item.Amount}
		}),
		Date:       t.Date,
		CrownValue: t.CrownValue,
		InnBuying:  t.InnBuying,
	}
}

// newDomainLineItems keeps references as they are. Unknown references are
// reported by the reconciliation as missing assets.
func newDomainLineItems(items []rest.LineItem) []entity.LineItem {
	if items == nil {
		return nil
	}

	return lox.Map(items, func(item rest.LineItem) entity.LineItem {
		return entity.LineItem{AssetID: value.ID(item.Asset), Amount: item.Amount}
	})
}

func newCreateInput(body rest.TransactionCreate, idempotencyKey string) (transaction.CreateInput, error) {
	if body.Mercader == "" || body.Bienes == nil {
		return transaction.CreateInput{}, domain.NewError(errcodes.MissingField, "Error: a body must be specified")
	}

	if body.InnBuying == nil {
		return transaction.CreateInput{}, domain.NewError(errcodes.ValidationError, "innBuying must be provided")
	}

	return transaction.CreateInput{
		CounterpartyID: value.ID(body.Mercader),
		Items:          newDomainLineItems(body.Bienes),
		InnBuying:      *body.InnBuying,
		Date:           body.Date,
		CrownValue:     body.CrownValue,
		IdempotencyKey: idempotencyKey,
	}, nil
}

func newPatch(body rest.TransactionPatch) transaction.Patch {
	patch := transaction.Patch{
		Items:      newDomainLineItems(body.Bienes),
		InnBuying:  body.InnBuying,
		Date:       body.Date,
		CrownValue: body.CrownValue,
	}

	if body.Mercader != nil {
		id := value.ID(*body.Mercader)
		patch.CounterpartyID = &id
	}

	return patch
}

func newQuery(name, firstDay, lastDay string) (transaction.Query, error) {
	if name != "" {
		return transaction.Query{Name: name}, nil
	}

	if firstDay == "" {
		return transaction.Query{}, domain.NewError(errcodes.InvalidQuery, "A trader Name or a date must be provided")
	}

	if lastDay == "" {
		return transaction.Query{}, domain.NewError(errcodes.InvalidDateRange, "A maximun date must be provided")
	}

	from, _, err := parseDay(firstDay)
	if err != nil {
		return transaction.Query{}, err
	}

	to, dateOnly, err := parseDay(lastDay)
	if err != nil {
		return transaction.Query{}, err
	}

	// A bare date covers the whole day.
	if dateOnly {
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	return transaction.Query{FirstDay: from, LastDay: to}, nil
}

func parseDay(s string) (time.Time, bool, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false, domain.WrapError(err, errcodes.InvalidDateRange, fmt.Sprintf("Invalid date %q", s))
	}

	return t, false, nil
}

func newRESTTrader(t entity.Trader) rest.Trader {
	return rest.Trader{ID: t.ID.String(), Name: t.Name, Type: t.Type.String(), Location: t.Location}
}

func newDomainTrader(t rest.TraderCreate) entity.Trader {
	return entity.Trader{Name: t.Name, Type: value.TraderType(t.Type), Location: t.Location}
}

func newTraderPatch(p rest.TraderPatch) catalog.TraderPatch {
	patch := catalog.TraderPatch{Name: p.Name, Location: p.Location}

	if p.Type != nil {
		traderType := value.TraderType(*p.Type)
		patch.Type = &traderType
	}

	return patch
}

func newRESTHunter(h entity.Hunter) rest.Hunter {
	return rest.Hunter{ID: h.ID.String(), Name: h.Name, Race: h.Race.String(), Location: h.Location}
}

func newDomainHunter(h rest.HunterCreate) entity.Hunter {
	return entity.Hunter{Name: h.Name, Race: value.Race(h.Race), Location: h.Location}
}

func newHunterPatch(p rest.HunterPatch) catalog.HunterPatch {
	patch := catalog.HunterPatch{Name: p.Name, Location: p.Location}

	if p.Race != nil {
		race := value.Race(*p.Race)
		patch.Race = &race
	}

	return patch
}

func newRESTAsset(a entity.Asset) rest.Asset {
	return rest.Asset{
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

func newDomainAsset(a rest.AssetCreate) entity.Asset {
	return entity.Asset{
		Name:        a.Name,
		Description: a.Description,
		Material:    a.Material,
		Weight:      a.Weight,
		CrownValue:  a.CrownValue,
		Type:        value.AssetType(a.Type),
		Amount:      a.Amount,
	}
}

func newAssetPatch(p rest.AssetPatch) catalog.AssetPatch {
	patch := catalog.AssetPatch{
		Name:        p.Name,
		Description: p.Description,
		Material:    p.Material,
		Weight:      p.Weight,
		CrownValue:  p.CrownValue,
		Amount:      p.Amount,
	}

	if p.Type != nil {
		assetType := value.AssetType(*p.Type)
		patch.Type = &assetType
	}

	return patch
}
