package server

import "time"

// Routes
const (
	RouteHealthz        = "/healthz"
	RouteReadyz         = "/readyz"
	RouteMetrics        = "/metrics"
	RouteAPI            = "/api/v1"
	RouteSnapshot       = "/snapshot"
	RouteCatalog        = "/catalog"
	RouteOverlayEvents  = "/overlay/events"
	RouteOverlaySocket  = "/overlay/ws"
	MaxRequestBodyBytes = 1 << 20
	ReadHeaderTimeout   = 5 * time.Second
)

// Response status values
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
	MsgCatalogLoading = "catalog not loaded yet"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Status server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgEncodeFailed     = "Failed to encode JSON response"
)

// HTTP header names
const (
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderReferrerPolicy = "Referrer-Policy"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueSameOrigin           = "SAMEORIGIN"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
)

// QuietPaths are served without request logging
var QuietPaths = []string{
	RouteHealthz,
	RouteReadyz,
	RouteMetrics,
}
