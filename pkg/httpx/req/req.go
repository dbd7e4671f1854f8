package req

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"

	"inn_ledger/pkg/errcodes"
	"inn_ledger/pkg/validatex"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const MessageEmptyBody = "Error: a body must be specified"

// Read decodes the JSON body into dest and runs struct validation. Unknown
// fields are rejected so PATCH bodies cannot touch attributes outside dest.
func Read(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return failure.NewInvalidArgumentError(
				"empty body",
				failure.WithCode(errcodes.MissingField),
				failure.WithDescription(MessageEmptyBody),
			)
		}

		return failure.NewInvalidArgumentError(
			fmt.Errorf("json.Decode: %w", err).Error(),
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("Invalid JSON: "+err.Error()),
		)
	}

	if err := validatex.Struct(r.Context(), dest); err != nil {
		return failure.NewInvalidArgumentError(
			"validation error",
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription(err.Error()),
		)
	}

	return nil
}
