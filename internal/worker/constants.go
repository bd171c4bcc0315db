package worker

// Log messages for keyed task operations
const (
	LogMsgTaskScheduled        = "Task scheduled"
	LogMsgTaskSuperseded       = "Task superseded, cancelled previous"
	LogMsgTaskCancelled        = "Task cancelled"
	LogMsgTaskPanicked         = "Task panicked"
	LogMsgTasksShuttingDown    = "Shutting down scheduled tasks"
	LogMsgTasksShutdownDone    = "Scheduled tasks shutdown complete"
	LogMsgTasksShutdownTimeout = "Scheduled tasks shutdown timeout"
)

// ErrMsgTasksClosed is returned when scheduling after shutdown
const ErrMsgTasksClosed = "task registry is shut down"

// Log messages for the delivery pool
const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
	LogMsgPoolStopping      = "Stopping worker pool"
	LogMsgPoolStopTimeout   = "Worker pool stop timeout, abandoning queued jobs"
)

// ErrMsgPoolStopped is returned when stopping a pool twice
const ErrMsgPoolStopped = "worker pool is stopped"
