package handler

// Client-facing error bodies. Internal error text is never echoed back.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgStoreUnreachable      = "account store unreachable"
)

const MsgDailyResetCompleted = "Daily reset completed"

// Handler log messages
const (
	LogMsgDecodeFailed      = "Failed to decode request body"
	LogMsgValidationFailed  = "Request body failed validation"
	LogMsgMissingQueryParam = "Missing query parameter"
	LogMsgServiceRejected   = "Request rejected"
	LogMsgServiceFailed     = "Request failed"
	LogMsgReadinessFailed   = "Readiness check failed"
)

// Health statuses
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
)
