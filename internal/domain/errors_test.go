package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"inn_ledger/internal/domain"
	"inn_ledger/pkg/errcodes"
)

func TestAppError(t *testing.T) {
	rq := require.New(t)

	cause := errors.New("connection reset")
	err := fmt.Errorf("repo.Get: %w", domain.WrapError(cause, errcodes.InternalServerError, "failed to get asset"))

	rq.ErrorIs(err, cause)
	rq.True(domain.HasCode(err, errcodes.InternalServerError))
	rq.False(domain.HasCode(err, errcodes.NotFound))
	rq.Equal("repo.Get: failed to get asset: connection reset", err.Error())

	appErr, ok := domain.AsAppError(err)
	rq.True(ok)
	rq.Equal("failed to get asset", appErr.Message)

	_, ok = domain.GetCode(cause)
	rq.False(ok)
}
