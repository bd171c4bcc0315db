package snapshot

const (
	schemaURL = "duckhunt://snapshot/entry.schema.json"

	zstdSuffix = ".zst"
	filePerm   = 0o644
)

// Log messages
const (
	LogMsgSnapshotMissing       = "No duck snapshot found, starting empty"
	LogMsgSnapshotSaved         = "Duck snapshot saved"
	LogMsgSnapshotRestored      = "Duck snapshot restored"
	LogMsgEntryDropped          = "Dropped invalid snapshot entry"
	LogMsgChannelDropped        = "Dropped snapshot ducks of unavailable channel"
	LogMsgChannelLookupFailed   = "Failed to look up snapshot channel"
	LogMsgDuplicateEntryDropped = "Dropped duplicate snapshot entry"
)
