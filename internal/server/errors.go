package server

import (
	"net/http"

	"git.appkode.ru/pub/go/failure"

	"inn_ledger/pkg/errcodes"
)

//nolint:gochecknoglobals
var statusByCode = map[failure.ErrorCode]int{
	errcodes.MissingField:     http.StatusBadRequest,
	errcodes.ValidationError:  http.StatusBadRequest,
	errcodes.InvalidID:        http.StatusBadRequest,
	errcodes.InvalidQuery:     http.StatusBadRequest,
	errcodes.InvalidDateRange: http.StatusBadRequest,

	errcodes.NotFound:                 http.StatusNotFound,
	errcodes.TransactionNotFound:      http.StatusNotFound,
	errcodes.CounterpartyNameNotFound: http.StatusNotFound,

	errcodes.NameAlreadyInUse: http.StatusConflict,
	errcodes.AssetInUse:       http.StatusConflict,
	errcodes.DuplicateRequest: http.StatusConflict,

	errcodes.CounterpartyNotRegistered: http.StatusUnprocessableEntity,
	errcodes.AssetNotFound:             http.StatusUnprocessableEntity,
	errcodes.DuplicateAsset:            http.StatusUnprocessableEntity,
	errcodes.InsufficientStock:         http.StatusUnprocessableEntity,
	errcodes.InvalidLineItem:           http.StatusUnprocessableEntity,
	errcodes.FutureDate:                http.StatusUnprocessableEntity,

	errcodes.TimeoutExceeded: http.StatusGatewayTimeout,
}

func statusFor(code failure.ErrorCode) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}

	return http.StatusInternalServerError
}
