package req_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"git.appkode.ru/pub/go/failure"
	"github.com/stretchr/testify/require"

	"inn_ledger/pkg/errcodes"
	"inn_ledger/pkg/httpx/req"
)

type traderBody struct {
	Name     string `json:"name" validate:"required,capitalized"`
	Location string `json:"location" validate:"required"`
}

func TestRead(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name string
		body string
		code failure.ErrorCode
	}{
		{name: "Valid", body: `{"name":"Hattori","location":"Novigrad"}`},
		{name: "Empty body", body: ``, code: errcodes.MissingField},
		{name: "Broken JSON", body: `{"name":`, code: errcodes.ValidationError},
		{name: "Unknown field", body: `{"name":"Hattori","location":"Novigrad","gold":1}`, code: errcodes.ValidationError},
		{name: "Lower case name", body: `{"name":"hattori","location":"Novigrad"}`, code: errcodes.ValidationError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/traders", strings.NewReader(tc.body))

			var dest traderBody

			err := req.Read(r, &dest)
			if tc.code == "" {
				rq.NoError(err)
				rq.Equal("Hattori", dest.Name)

				return
			}

			rq.True(failure.IsInvalidArgumentError(err))
			rq.Equal(tc.code, failure.Code(err))
		})
	}
}
