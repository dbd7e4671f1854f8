package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	DuplicateRequest    failure.ErrorCode = "DuplicateRequest"

	// Request shape.
	MissingField     failure.ErrorCode = "MissingField"     // mercader or bienes absent
	InvalidID        failure.ErrorCode = "InvalidID"        // path id is not an xid
	InvalidQuery     failure.ErrorCode = "InvalidQuery"     // neither name nor date range given
	InvalidDateRange failure.ErrorCode = "InvalidDateRange" // firstDay without lastDay, unparsable dates

	// Catalog.
	NameAlreadyInUse failure.ErrorCode = "NameAlreadyInUse"
	AssetInUse       failure.ErrorCode = "AssetInUse"

	// Transactions.
	TransactionNotFound       failure.ErrorCode = "TransactionNotFound"
	CounterpartyNameNotFound  failure.ErrorCode = "CounterpartyNameNotFound"
	CounterpartyNotRegistered failure.ErrorCode = "CounterpartyNotRegistered"
	AssetNotFound             failure.ErrorCode = "AssetNotFound"
	DuplicateAsset            failure.ErrorCode = "DuplicateAsset"
	InsufficientStock         failure.ErrorCode = "InsufficientStock"
	InvalidLineItem           failure.ErrorCode = "InvalidLineItem"
	FutureDate                failure.ErrorCode = "FutureDate"
)
