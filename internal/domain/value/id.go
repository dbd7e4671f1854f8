package value

import (
	"fmt"

	"github.com/rs/xid"

	"inn_ledger/internal/domain"
	"inn_ledger/pkg/errcodes"
)

// ID identifies every stored record. It is an xid rendered as 20 base32 chars.
type ID string

func NewID() ID {
	return ID(xid.New().String())
}

func ParseID(s string) (ID, error) {
	if _, err := xid.FromString(s); err != nil {
		return "", domain.WrapError(err, errcodes.InvalidID, fmt.Sprintf("invalid id %q", s))
	}

	return ID(s), nil
}

func (id ID) String() string {
	return string(id)
}
