package spawning

import "time"

// Loop defaults
const (
	DefaultMaxSpawnsPerTick = 20
	DefaultMaxLeavesPerTick = 25
	DefaultDriftWarn        = 5 * time.Second
	DefaultDriftResync      = 30 * time.Second
	DefaultWorldEventOdds   = 12

	secondsPerHour = 3600
	leaveHolder    = "ttl"
)

// Loop states
const (
	StateStopped = "stopped"
	StateRunning = "running"
)

// Log messages
const (
	LogMsgLoopStarting       = "Spawn loop starting"
	LogMsgLoopStopped        = "Spawn loop stopped"
	LogMsgLoopDriftWarn      = "Spawn loop is running behind"
	LogMsgLoopResync         = "Spawn loop drifted too far, resynchronizing to wall clock"
	LogMsgPlanified          = "Spawn budgets planned"
	LogMsgFreetime           = "Freetime: daily budgets and giveback"
	LogMsgGivebackFailed     = "Giveback failed"
	LogMsgListChannelsFailed = "Failed to list enabled channels"
	LogMsgChannelFailed      = "Channel tick failed"
	LogMsgChannelPanic       = "Channel tick panicked"
	LogMsgChannelDisabled    = "Channel unavailable, disabled"
	LogMsgDisableFailed      = "Failed to disable unavailable channel"
	LogMsgSpawnCapReached    = "Spawn cap reached for this tick"
	LogMsgLeaveCapReached    = "Leave cap reached for this tick"
	LogMsgWorldEventRolled   = "World event rolled"
	LogMsgWorldEventLoaded   = "World event resumed"
	LogMsgWorldEventSaveFail = "Failed to save world event"
	LogMsgWorldEventLoadFail = "Failed to load world event"
	LogMsgSnapshotFailed     = "Failed to save duck snapshot"
	LogMsgRestoreFailed      = "Failed to restore duck snapshot"
	LogMsgStatusFailed       = "Failed to report status"
	LogMsgOutboxDropped      = "Delivery queue full, message dropped"
)

// Failure phases
const (
	PhaseSpawn = "spawn"
	PhaseLeave = "leave"
)
