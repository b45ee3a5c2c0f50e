package engine

// DefaultSquadSize is assumed until the game log announces the player count
const DefaultSquadSize = 4

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgCreateCachePath = "failed to create cache path"
	ErrMsgOCRUnavailable  = "ocr backend unavailable"
	ErrMsgCatalogFetch    = "failed to load catalog"
	ErrMsgWindowNotFound  = "game window not found"
	ErrMsgCaptureBackend  = "capture backend failed"
	ErrMsgLogUnavailable  = "game log unavailable"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgEngineReady     = "Engine ready"
	LogMsgEngineRunning   = "Watching game log for reward screens"
	LogMsgEngineStopped   = "Engine stopped"
	LogMsgLogClosed       = "Game log source closed"
	LogMsgSquadSize       = "Squad size updated"
	LogMsgRewardsReady    = "Reward screen opened"
	LogMsgRewardsReceived = "Reward chosen"
	LogMsgControlRejected = "Capture lifecycle rejected command"
)
