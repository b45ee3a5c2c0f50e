package cache

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgFileCreateFailed    = "failed to create cache file"
	ErrMsgSerializationFailed = "failed to serialize cache value"
	ErrMsgInnerFailed         = "failed to produce cache value"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgCacheHit         = "Cache hit"
	LogMsgCacheMiss        = "Cache miss, producing value"
	LogMsgCacheUnreadable  = "Cache file unreadable, producing value"
	LogMsgCacheWritten     = "Cache file written"
	LogMsgCacheFileRemoved = "Cache file removed"
)

// FilePerm is the mode cache files are created with
const FilePerm = 0o644
