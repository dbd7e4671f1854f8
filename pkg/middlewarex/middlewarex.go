// Package middlewarex holds the HTTP middlewares shared by every server of
// the ledger: tracing, request scoped logging, request/response dumps and
// panic recovery.
package middlewarex

import "inn_ledger/pkg/contextx"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
