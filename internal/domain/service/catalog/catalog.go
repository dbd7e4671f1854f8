// Package catalog manages the records transactions refer to: traders,
// hunters and assets.
package catalog

import (
	"context"
	"log/slog"

	"inn_ledger/internal/port"
	"inn_ledger/pkg/contextx"
	"inn_ledger/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Service struct {
	uow port.UnitOfWork
}

func NewService(uow port.UnitOfWork) *Service {
	return &Service{uow: uow}
}

func logged(ctx context.Context, msg, kind, id string) {
	logger(ctx).Info(msg, slog.String(logx.FieldRecordKind, kind), slog.String(logx.FieldRecordID, id))
}
