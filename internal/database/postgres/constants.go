package postgres

// Error Messages - Channel Operations
const (
	ErrMsgFailedToGetChannel   = "failed to get channel"
	ErrMsgFailedToListChannels = "failed to list channels"
	ErrMsgFailedToSaveChannel  = "failed to save channel"
	ErrMsgFailedToDecodeConfig = "failed to decode channel config"
	ErrMsgFailedToEncodeConfig = "failed to encode channel config"
)

// Error Messages - Player Operations
const (
	ErrMsgFailedToGetPlayer    = "failed to get player"
	ErrMsgFailedToSavePlayer   = "failed to save player"
	ErrMsgFailedToGiveback     = "failed to give weapons back"
	ErrMsgFailedToEncodePlayer = "failed to encode player maps"
	ErrMsgFailedToDecodePlayer = "failed to decode player maps"
)
