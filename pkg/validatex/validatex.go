// Package validatex wraps go-playground/validator with the custom tags the
// ledger records rely on.
package validatex

import (
	"context"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = New() //nolint:gochecknoglobals // skip

func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	lo.Must0(v.RegisterValidation("capitalized", capitalized))

	return v
}

func Struct(ctx context.Context, s any) error {
	return validate.StructCtx(ctx, s) //nolint:wrapcheck
}

// capitalized reports whether the string starts with an upper case letter.
func capitalized(fl validator.FieldLevel) bool {
	r, _ := utf8.DecodeRuneInString(fl.Field().String())

	return unicode.IsUpper(r)
}
