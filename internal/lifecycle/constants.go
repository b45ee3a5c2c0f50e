package lifecycle

import "time"

// Session defaults
const (
	// DefaultInterval is the wait before every capture attempt
	DefaultInterval = time.Second

	// DefaultMaxAttempts ends a session that never resolves every slot
	DefaultMaxAttempts = 10

	// ControlBuffer is the capacity of the control channel
	ControlBuffer = 100
)

// Session end reasons, used as metric labels
const (
	ReasonComplete  = "complete"
	ReasonExhausted = "exhausted"
	ReasonCancelled = "cancelled"
	ReasonRestarted = "restarted"
	ReasonShutdown  = "shutdown"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgControlFull = "control channel full"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgSessionStarted  = "Capture session started"
	LogMsgSessionFinished = "Capture session finished"
	LogMsgCaptureFailed   = "Frame capture failed"
	LogMsgRecognizeFailed = "Slot recognition failed"
	LogMsgSlotResolved    = "Slot resolved"
	LogMsgPriceFailed     = "Slot price unavailable"
	LogMsgSnapshotDropped = "Output channel full, snapshot dropped"
	LogMsgAttemptFinished = "Capture attempt finished"
	LogMsgCancelWhileIdle = "Cancel received while idle"
)
