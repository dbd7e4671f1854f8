package middlewarex

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"inn_ledger/pkg/errcodes"
	"inn_ledger/pkg/httpx/reply"
	"inn_ledger/pkg/logx"
)

// Recovery turns a handler panic into the regular error body so the caller
// still gets a supportId to report.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			if rec == http.ErrAbortHandler { //nolint:errorlint,goerr113
				panic(rec)
			}

			logger(ctx).Error(
				"panic in handler",
				slog.Any(logx.FieldError, rec),
				slog.String(logx.FieldStack, string(debug.Stack())),
			)

			reply.Status(ctx, w, http.StatusInternalServerError, errcodes.InternalServerError,
				"Internal server error", fmt.Errorf("panic: %v", rec)) //nolint:goerr113
		}()

		next.ServeHTTP(w, r)
	})
}
