package logwatch

import "time"

// Kind is the system and level of a log entry
type Kind string

const (
	KindSysInfo     Kind = "SysInfo"
	KindSysWarning  Kind = "SysWarning"
	KindSysError    Kind = "SysError"
	KindNetInfo     Kind = "NetInfo"
	KindNetError    Kind = "NetError"
	KindPhysInfo    Kind = "PhysInfo"
	KindPhysWarning Kind = "PhysWarning"
	KindPhysError   Kind = "PhysError"
	KindSndInfo     Kind = "SndInfo"
	KindGfxInfo     Kind = "GfxInfo"
	KindInputInfo   Kind = "InputInfo"
	KindAIInfo      Kind = "AIInfo"
	KindGameInfo    Kind = "GameInfo"
	KindGameWarning Kind = "GameWarning"
	KindAnimInfo    Kind = "AnimInfo"
	KindScriptInfo  Kind = "ScriptInfo"
)

// Script events driving reward capture
const (
	ScriptRewardChoice     = "ProjectionRewardChoice"
	ContentRewardsReady    = "Relic rewards initialized"
	ContentRewardsReceived = "Got rewards"
)

// Tailer defaults
const (
	// EntryBuffer is the capacity of the entry channel
	EntryBuffer = 100

	// PollInterval is how often the file is checked when no change event arrives
	PollInterval = 100 * time.Millisecond
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgUnparsable  = "unparsable log line"
	ErrMsgUnknownKind = "unknown log system and level"
	ErrMsgOpenFailed  = "failed to open game log"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgTailing       = "Tailing game log"
	LogMsgLineSkipped   = "Skipping log line"
	LogMsgTruncated     = "Game log truncated, reading from start"
	LogMsgWatchFallback = "File notifications unavailable, polling game log"
	LogMsgWatchError    = "File watch error"
	LogMsgReadFailed    = "Failed to read game log"
	LogMsgTailerStopped = "Game log tailer stopped"
)
