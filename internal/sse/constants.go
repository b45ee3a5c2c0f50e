package sse

import "time"

// ClientEventBuffer is the buffer size for each client's event channel
const ClientEventBuffer = 16

// Connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// WriteTimeout is the timeout for writing to client connections
	WriteTimeout = 10 * time.Second

	// PongWait is how long a websocket client may stay silent before it is dropped
	PongWait = 2 * KeepaliveInterval
)

// Event types
const (
	// EventTypeSnapshot carries an intermediate reward snapshot
	EventTypeSnapshot = "rewards.snapshot"

	// EventTypeFinal carries the last snapshot of a capture session
	EventTypeFinal = "rewards.final"

	// EventTypeConnected is the first event every client receives
	EventTypeConnected = "connected"
)

// Log messages
const (
	LogMsgClientConnected    = "Overlay client connected"
	LogMsgClientDisconnected = "Overlay client disconnected"
	LogMsgEventDropped       = "Overlay client buffer full, event dropped"
	LogMsgWriteError         = "Failed to write overlay event"
	LogMsgUpgradeFailed      = "Websocket upgrade failed"
)

// Error messages
const (
	ErrMsgEncodeEvent = "failed to encode overlay event"
)

// keepaliveFrame is an SSE comment line; EventSource clients ignore it
const keepaliveFrame = ": keepalive\n\n"
