package pricing

import "github.com/osse101/RelicWatch_Go/internal/domain"

// Order filtering
const (
	// OnlineThreshold is the number of reachable sellers above which offline orders are ignored
	OnlineThreshold = 3

	// Region orders must be placed in
	Region = "en"

	// Platform orders must be placed on
	Platform = domain.PlatformPC

	// Side of the book that is priced
	Side = domain.OrderBuy
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgPriced      = "Item priced"
	LogMsgPriceFailed = "Failed to price item"
)
