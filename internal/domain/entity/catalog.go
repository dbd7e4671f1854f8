package entity

import (
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"inn_ledger/internal/domain"
	"inn_ledger/internal/domain/value"
	"inn_ledger/pkg/errcodes"
)

type Trader struct {
	ID       value.ID
	Name     string
	Type     value.TraderType
	Location string
}

func (t Trader) Validate() error {
	if !isCapitalized(t.Name) {
		return domain.NewError(errcodes.ValidationError, "trader name must start with a capital letter")
	}

	if _, err := value.ParseTraderType(t.Type.String()); err != nil {
		return err
	}

	if t.Location == "" {
		return domain.NewError(errcodes.ValidationError, "trader location is required")
	}

	return nil
}

type Hunter struct {
	ID       value.ID
	Name     string
	Race     value.Race
	Location string
}

func (h Hunter) Validate() error {
	if h.Name == "" {
		return domain.NewError(errcodes.ValidationError, "hunter name is required")
	}

	if _, err := value.ParseRace(h.Race.String()); err != nil {
		return err
	}

	if h.Location == "" {
		return domain.NewError(errcodes.ValidationError, "hunter location is required")
	}

	return nil
}

type Asset struct {
	ID          value.ID
	Name        string
	Description string
	Material    string
	Weight      float64
	CrownValue  decimal.Decimal
	Type        value.AssetType
	Amount      int64
}

func (a Asset) Validate() error {
	switch {
	case !isCapitalized(a.Name):
		return domain.NewError(errcodes.ValidationError, "asset name must start with a capital letter")
	case a.Description == "" || a.Material == "":
		return domain.NewError(errcodes.ValidationError, "asset description and material are required")
	case a.Weight <= 0:
		return domain.NewError(errcodes.ValidationError, "asset weight must be positive")
	case !a.CrownValue.IsPositive():
		return domain.NewError(errcodes.ValidationError, "asset crown value must be positive")
	case a.Amount < 0:
		return domain.NewError(errcodes.ValidationError, "asset amount cannot be negative")
	}

	_, err := value.ParseAssetType(a.Type.String())

	return err
}

func isCapitalized(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)

	return unicode.IsUpper(r)
}
