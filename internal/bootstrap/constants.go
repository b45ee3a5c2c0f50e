package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0o755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0o644
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept next to the new one
	LogFileRetentionCount = 9
)

// =============================================================================
// Shutdown
// =============================================================================

const (
	// ShutdownTimeout bounds the whole graceful shutdown
	ShutdownTimeout = 10 * time.Second
)

// =============================================================================
// Error Messages
// =============================================================================

const (
	ErrMsgCreateLogDir   = "failed to create logs directory"
	ErrMsgOpenLogFile    = "failed to open log file"
	ErrMsgUnknownSink    = "unknown sink"
	ErrMsgConnectSink    = "failed to connect sink"
	ErrMsgMigrateSchema  = "failed to migrate snapshot schema"
	ErrMsgCloseComponent = "Component close failed"
)

// =============================================================================
// Log Messages
// =============================================================================

const (
	LogMsgLoggingInitialized = "Logging initialized"
	LogMsgStarting           = "Starting RelicWatch"
	LogMsgConfigLoaded       = "Configuration loaded"
	LogMsgOldLogRemoveFailed = "Failed to delete old log file"
	LogMsgSinkReady          = "Sink ready"
	LogMsgShuttingDown       = "Shutting down"
	LogMsgServerForcedStop   = "Status server forced to shutdown"
	LogMsgStopped            = "Stopped"
)
