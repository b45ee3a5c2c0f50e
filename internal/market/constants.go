package market

import "time"

// ============================================================================
// Client Defaults
// ============================================================================

const (
	// DefaultBaseURL is the public market API host
	DefaultBaseURL = "https://api.warframe.market"

	// DefaultPermits is the number of requests allowed in flight at once
	DefaultPermits = 10

	// DefaultRequestTimeout bounds a single HTTP round trip
	DefaultRequestTimeout = 30 * time.Second

	// DefaultInitialBackoff is the first delay after a throttled response
	DefaultInitialBackoff = 100 * time.Millisecond

	// MaxBackoff caps the delay between throttled retries
	MaxBackoff = 5 * time.Second

	// BackoffMultiplier grows the delay after every throttled response
	BackoffMultiplier = 2.0
)

// ============================================================================
// API Paths
// ============================================================================

const (
	PathItems      = "/v1/items"
	PathItemFormat = "/v1/items/%s"
	PathOrdersFmt  = "/v1/items/%s/orders"
)

// Endpoint labels used in metrics
const (
	EndpointItems  = "items"
	EndpointItem   = "item"
	EndpointOrders = "orders"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgSerializationFailed = "failed to decode market response"
	ErrMsgTransportFailed     = "market request failed"
	ErrMsgMiddlewareFailed    = "market request could not be sent"
	ErrMsgUnexpectedStatus    = "unexpected status code"
	ErrMsgBodyNotReplayable   = "request body cannot be replayed"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgThrottled       = "Market API throttled request, backing off"
	LogMsgRequestFailed   = "Market API request failed"
	LogMsgFetchingDetail  = "Fetching item detail"
	LogMsgFetchingOrders  = "Fetching item orders"
	LogMsgIdentifiersRead = "Fetched item identifiers"
)
