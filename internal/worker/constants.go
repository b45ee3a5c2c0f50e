package worker

// ============================================================================
// Error Messages
// ============================================================================

const ErrMsgPoolStopped = "worker pool stopped"

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgPoolDraining    = "Worker pool draining queued jobs"
	LogMsgPoolStopped     = "Worker pool stopped"
)
