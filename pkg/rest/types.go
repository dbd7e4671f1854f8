// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

import (
	"time"

	"github.com/shopspring/decimal"
)

type Trader struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Location string `json:"location"`
}

type TraderCreate struct {
	Name     string `json:"name" validate:"required,capitalized"`
	Type     string `json:"type" validate:"required,oneof=blacksmith alchemist generaltrader herbalist armorer"`
	Location string `json:"location" validate:"required"`
}

type TraderPatch struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,capitalized"`
	Type     *string `json:"type,omitempty" validate:"omitempty,oneof=blacksmith alchemist generaltrader herbalist armorer"`
	Location *string `json:"location,omitempty" validate:"omitempty,min=1"`
}

type Hunter struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Race     string `json:"race"`
	Location string `json:"location"`
}

type HunterCreate struct {
	Name     string `json:"name" validate:"required"`
	Race     string `json:"race" validate:"required,oneof=WITCH KNIGHT NOBLE BANDIT MERCENARY VILLAGER"`
	Location string `json:"location" validate:"required"`
}

type HunterPatch struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Race     *string `json:"race,omitempty" validate:"omitempty,oneof=WITCH KNIGHT NOBLE BANDIT MERCENARY VILLAGER"`
	Location *string `json:"location,omitempty" validate:"omitempty,min=1"`
}

type Asset struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Material    string          `json:"material"`
	Weight      float64         `json:"weight"`
	CrownValue  decimal.Decimal `json:"crown_value"`
	Type        string          `json:"type"`
	Amount      int64           `json:"amount"`
}

type AssetCreate struct {
	Name        string          `json:"name" validate:"required,capitalized"`
	Description string          `json:"description" validate:"required"`
	Material    string          `json:"material" validate:"required"`
	Weight      float64         `json:"weight" validate:"gt=0"`
	CrownValue  decimal.Decimal `json:"crown_value"`
	Type        string          `json:"type" validate:"required,oneof=product armor weapon potion book unknown"`
	Amount      int64           `json:"amount" validate:"gte=0"`
}

type AssetPatch struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,capitalized"`
	Description *string          `json:"description,omitempty" validate:"omitempty,min=1"`
	Material    *string          `json:"material,omitempty" validate:"omitempty,min=1"`
	Weight      *float64         `json:"weight,omitempty" validate:"omitempty,gt=0"`
	CrownValue  *decimal.Decimal `json:"crown_value,omitempty"`
	Type        *string          `json:"type,omitempty" validate:"omitempty,oneof=product armor weapon potion book unknown"`
	Amount      *int64           `json:"amount,omitempty" validate:"omitempty,gte=0"`
}

// LineItem is a "bien": one asset and the quantity traded.
type LineItem struct {
	Asset  string `json:"asset"`
	Amount int64  `json:"amount"`
}

type Transaction struct {
	ID               string          `json:"id"`
	Mercader         string          `json:"mercader"`
	CounterpartyKind string          `json:"counterpartyKind"`
	Bienes           []LineItem      `json:"bienes"`
	Date             time.Time       `json:"date"`
	CrownValue       decimal.Decimal `json:"crownValue"`
	InnBuying        bool            `json:"innBuying"`
}

type TransactionCreate struct {
	Mercader   string           `json:"mercader"`
	Bienes     []LineItem       `json:"bienes"`
	InnBuying  *bool            `json:"innBuying"`
	Date       *time.Time       `json:"date,omitempty"`
	CrownValue *decimal.Decimal `json:"crownValue,omitempty"`
}

type TransactionPatch struct {
	Mercader   *string          `json:"mercader,omitempty" validate:"omitempty,min=1"`
	Bienes     []LineItem       `json:"bienes,omitempty" validate:"omitempty,min=1"`
	InnBuying  *bool            `json:"innBuying,omitempty"`
	Date       *time.Time       `json:"date,omitempty"`
	CrownValue *decimal.Decimal `json:"crownValue,omitempty"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`

	// SupportID идентификатор запроса для обращения в поддержку
	SupportID string `json:"supportId"`
}

// ErrorCode Код ошибки
type ErrorCode string
