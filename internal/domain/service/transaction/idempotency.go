package transaction

import (
	"context"
	"fmt"

	"inn_ledger/internal/domain"
	"inn_ledger/pkg/errcodes"
	"inn_ledger/pkg/logx"
)

func (s *Service) reserve(ctx context.Context, key string) error {
	if key == "" || s.idempotency == nil {
		return nil
	}

	reserved, err := s.idempotency.Reserve(ctx, key, s.idempotencyTTL)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to reserve idempotency key")
	}

	if !reserved {
		return domain.NewError(errcodes.DuplicateRequest, fmt.Sprintf("Request with key %s was already processed", key))
	}

	return nil
}

// release frees the key of a failed request so that it can be retried.
func (s *Service) release(ctx context.Context, key string) {
	if key == "" || s.idempotency == nil {
		return
	}

	if err := s.idempotency.Release(ctx, key); err != nil {
		logger(ctx).Error("idempotency.Release", logx.Error(err))
	}
}
