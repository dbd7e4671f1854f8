package value

import (
	"fmt"
	"slices"

	"inn_ledger/internal/domain"
	"inn_ledger/pkg/errcodes"
)

type TraderType string

const (
	TraderTypeBlacksmith    TraderType = "blacksmith"
	TraderTypeAlchemist     TraderType = "alchemist"
	TraderTypeGeneralTrader TraderType = "generaltrader"
	TraderTypeHerbalist     TraderType = "herbalist"
	TraderTypeArmorer       TraderType = "armorer"
)

var traderTypes = []TraderType{ //nolint:gochecknoglobals
	TraderTypeBlacksmith,
	TraderTypeAlchemist,
	TraderTypeGeneralTrader,
	TraderTypeHerbalist,
	TraderTypeArmorer,
}

func ParseTraderType(s string) (TraderType, error) {
	return parseEnum(s, traderTypes, "trader type")
}

func (t TraderType) String() string { return string(t) }

type Race string

const (
	RaceWitch     Race = "WITCH"
	RaceKnight    Race = "KNIGHT"
	RaceNoble     Race = "NOBLE"
	RaceBandit    Race = "BANDIT"
	RaceMercenary Race = "MERCENARY"
	RaceVillager  Race = "VILLAGER"
)

var races = []Race{ //nolint:gochecknoglobals
	RaceWitch,
	RaceKnight,
	RaceNoble,
	RaceBandit,
	RaceMercenary,
	RaceVillager,
}

func ParseRace(s string) (Race, error) {
	return parseEnum(s, races, "race")
}

func (r Race) String() string { return string(r) }

type AssetType string

const (
	AssetTypeProduct AssetType = "product"
	AssetTypeArmor   AssetType = "armor"
	AssetTypeWeapon  AssetType = "weapon"
	AssetTypePotion  AssetType = "potion"
	AssetTypeBook    AssetType = "book"
	AssetTypeUnknown AssetType = "unknown"
)

var assetTypes = []AssetType{ //nolint:gochecknoglobals
	AssetTypeProduct,
	AssetTypeArmor,
	AssetTypeWeapon,
	AssetTypePotion,
	AssetTypeBook,
	AssetTypeUnknown,
}

func ParseAssetType(s string) (AssetType, error) {
	return parseEnum(s, assetTypes, "asset type")
}

func (t AssetType) String() string { return string(t) }

func parseEnum[T ~string](s string, allowed []T, what string) (T, error) {
	if !slices.Contains(allowed, T(s)) {
		return "", domain.NewError(errcodes.ValidationError, fmt.Sprintf("unknown %s %q", what, s))
	}

	return T(s), nil
}
