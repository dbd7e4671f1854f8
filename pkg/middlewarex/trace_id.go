package middlewarex

import (
	"net/http"

	"inn_ledger/pkg/contextx"
)

const HeaderNameTraceID = "X-Trace-Id"

func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := contextx.TraceID(r.Header.Get(HeaderNameTraceID))

		if traceID == "" {
			traceID = contextx.NewTraceID()
		}

		ctx := contextx.WithTraceID(r.Context(), traceID)

		w.Header().Set(HeaderNameTraceID, traceID.String())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
