package handler

// Client facing messages. Internal error details are logged, never returned.
const (
	ErrMsgDatabaseUnavailable = "database connection failed"
	ErrMsgMissingChannelID    = "Missing channel id"
	ErrMsgNotFound            = "Resource not found"
)

// Log messages
const (
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
	LogMsgReadinessFailed = "Readiness check failed"
)

// Health statuses
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)
