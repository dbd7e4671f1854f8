package logx

const (
	FieldAppName          = "app-name"
	FieldAppVersion       = "app-version"
	FieldAssetID          = "asset-id"
	FieldCounterpartyID   = "counterparty-id"
	FieldCounterpartyName = "counterparty-name"
	FieldDurationMs       = "duration-ms"
	FieldError            = "error"
	FieldHTTPMethod       = "http-method"
	FieldHTTPRequest      = "http-request"
	FieldHTTPResponse     = "http-response"
	FieldInnBuying        = "inn-buying"
	FieldIP               = "ip"
	FieldLineItems        = "line-items"
	FieldRecordID         = "record-id"
	FieldRecordKind       = "record-kind"
	FieldRequestBody      = "request-body"
	FieldRequestID        = "request-id"
	FieldResponseBody     = "response-body"
	FieldResponseHeaders  = "response-headers"
	FieldResponseStatus   = "response-status"
	FieldStack            = "stack"
	FieldState            = "state"
	FieldStockAfter       = "stock-after"
	FieldStockDelta       = "stock-delta"
	FieldTraceID          = "trace-id"
	FieldTransactionID    = "transaction-id"
	FieldURL              = "url"
)
