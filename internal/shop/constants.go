package shop

// Log messages
const (
	LogMsgPurchase         = "Shop purchase"
	LogMsgReminderFailed   = "Failed to send powerup reminder"
	LogMsgDecoyLanded      = "Decoy duck landed"
	LogMsgDecoySkipped     = "Decoy channel no longer enabled"
	LogMsgDecoySpawnFailed = "Failed to spawn decoy"
)
