package reply

import (
	"context"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"

	"inn_ledger/pkg/contextx"
	"inn_ledger/pkg/errcodes"
	"inn_ledger/pkg/logx"
	"inn_ledger/pkg/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

func OK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

func JSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger(ctx).Error("json.Encode", logx.Error(err))
	}
}

// Error renders errors built with the failure package.
func Error(ctx context.Context, w http.ResponseWriter, err error) {
	code := failure.Code(err)
	message := failure.Description(err)

	switch {
	case failure.IsInvalidArgumentError(err):
		Status(ctx, w, http.StatusBadRequest, withDefault(code, errcodes.ValidationError), message, err)
	case failure.IsNotFoundError(err):
		Status(ctx, w, http.StatusNotFound, withDefault(code, errcodes.NotFound), message, err)
	case failure.IsUnauthorizedError(err):
		Status(ctx, w, http.StatusUnauthorized, code, message, err)
	case failure.IsForbiddenError(err):
		Status(ctx, w, http.StatusForbidden, code, message, err)
	case failure.IsConflictError(err):
		Status(ctx, w, http.StatusConflict, code, message, err)
	case failure.IsUnprocessableEntityError(err):
		Status(ctx, w, http.StatusUnprocessableEntity, code, message, err)
	default:
		Status(ctx, w, http.StatusInternalServerError, withDefault(code, errcodes.InternalServerError), message, err)
	}
}

// Status renders an error whose status code was already decided by the caller.
func Status(
	ctx context.Context,
	w http.ResponseWriter,
	statusCode int,
	code failure.ErrorCode,
	message string,
	err error,
) {
	if statusCode >= http.StatusInternalServerError {
		logger(ctx).Error("request failed", logx.Error(err))
	} else {
		logger(ctx).Warn("request rejected", logx.Error(err))
	}

	JSON(ctx, w, statusCode, rest.Error{
		Code:      rest.ErrorCode(code.String()),
		Message:   message,
		SupportID: supportID(ctx),
	})
}

func withDefault(code, def failure.ErrorCode) failure.ErrorCode {
	if code == "" {
		return def
	}

	return code
}

func supportID(ctx context.Context) string {
	traceID, err := contextx.TraceIDFromContext(ctx)
	if err != nil {
		return "unsupported"
	}

	return traceID.String()
}
