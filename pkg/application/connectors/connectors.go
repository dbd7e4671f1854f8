// Package connectors lazily opens the clients of external stores and closes
// them on shutdown.
package connectors

import "inn_ledger/pkg/contextx"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
