package capture

// Backend names
const (
	BackendScreen  = "screen"
	BackendDisplay = "display"
	BackendReplay  = "replay"
)

// DefaultWindowTitle is the title of the game window
const DefaultWindowTitle = "Warframe"

// Frame file extensions read by the replay backend
var frameExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgWindowNotFound   = "window not found"
	ErrMsgCaptureFailed    = "frame capture failed"
	ErrMsgUnknownBackend   = "unknown capture backend"
	ErrMsgNoActiveDisplay  = "no active display"
	ErrMsgEnumerateWindows = "failed to list windows"
	ErrMsgNoEnumerator     = "window lookup is not supported on this platform"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgWindowFound     = "Capture target found"
	LogMsgDebugSaveFailed = "Failed to save debug frame"
	LogMsgReplayLoaded    = "Replay frames loaded"
)
