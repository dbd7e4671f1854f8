package reply_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"inn_ledger/pkg/contextx"
	"inn_ledger/pkg/errcodes"
	"inn_ledger/pkg/httpx/reply"
	"inn_ledger/pkg/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

func TestError(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name       string
		err        error
		statusCode int
		code       rest.ErrorCode
	}{
		{
			name: "Invalid argument",
			err: failure.NewInvalidArgumentError(
				"bad",
				failure.WithCode(errcodes.MissingField),
				failure.WithDescription("Error: a body must be specified"),
			),
			statusCode: http.StatusBadRequest,
			code:       rest.ErrorCode(errcodes.MissingField),
		},
		{
			name:       "Plain error",
			err:        errors.New("boom"),
			statusCode: http.StatusInternalServerError,
			code:       rest.ErrorCode(errcodes.InternalServerError),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			ctx := contextx.WithTraceID(t.Context(), "trace-7")
			rec := httptest.NewRecorder()

			reply.Error(ctx, rec, tc.err)

			rq.Equal(tc.statusCode, rec.Code)

			var body rest.Error

			rq.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
			rq.Equal(tc.code, body.Code)
			rq.Equal("trace-7", body.SupportID)
		})
	}
}

func TestStatus(t *testing.T) {
	rq := require.New(t)
	rec := httptest.NewRecorder()

	reply.Status(t.Context(), rec, http.StatusUnprocessableEntity, errcodes.InsufficientStock, "not enough", errors.New("x"))

	rq.Equal(http.StatusUnprocessableEntity, rec.Code)
	rq.JSONEq(`{"code":"InsufficientStock","message":"not enough","supportId":"unsupported"}`, rec.Body.String())
}
