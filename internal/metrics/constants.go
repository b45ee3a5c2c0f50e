package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Status server metric names
const (
	MetricNameHTTPRequestsTotal    = "relicwatch_http_requests_total"
	MetricNameHTTPRequestDuration  = "relicwatch_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "relicwatch_http_requests_in_flight"
)

// Market API metric names
const (
	MetricNameMarketRequestsTotal   = "relicwatch_market_requests_total"
	MetricNameMarketThrottledTotal  = "relicwatch_market_throttled_total"
	MetricNameMarketRequestDuration = "relicwatch_market_request_duration_seconds"
	MetricNameMarketPermitsInUse    = "relicwatch_market_permits_in_use"
)

// OCR metric names
const (
	MetricNameOCRCallsTotal   = "relicwatch_ocr_calls_total"
	MetricNameOCRCallDuration = "relicwatch_ocr_call_duration_seconds"
)

// Capture lifecycle metric names
const (
	MetricNameSessionsStarted   = "relicwatch_sessions_started_total"
	MetricNameSessionsFinished  = "relicwatch_sessions_finished_total"
	MetricNameCaptureAttempts   = "relicwatch_capture_attempts_total"
	MetricNameSlotsResolved     = "relicwatch_slots_resolved_total"
	MetricNamePriceLookups      = "relicwatch_price_lookups_total"
	MetricNameSnapshotsEmitted  = "relicwatch_snapshots_emitted_total"
	MetricNameSnapshotsDropped  = "relicwatch_snapshots_dropped_total"
	MetricNameSinkDeliveries    = "relicwatch_sink_deliveries_total"
	MetricNameCatalogEntries    = "relicwatch_catalog_entries"
	MetricNameLogEntriesTotal   = "relicwatch_log_entries_total"
	MetricNameMatchCacheLookups = "relicwatch_match_cache_lookups_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of status server HTTP requests"
	HelpTextHTTPRequestDuration  = "Status server HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of status server HTTP requests being served"

	HelpTextMarketRequestsTotal   = "Total number of market API requests by endpoint and status"
	HelpTextMarketThrottledTotal  = "Total number of throttled market API responses that were retried"
	HelpTextMarketRequestDuration = "Market API request latency in seconds, including throttle retries"
	HelpTextMarketPermitsInUse    = "Number of market API permits currently held"

	HelpTextOCRCallsTotal   = "Total number of OCR invocations by backend and result"
	HelpTextOCRCallDuration = "OCR invocation latency in seconds"

	HelpTextSessionsStarted   = "Total number of capture sessions started"
	HelpTextSessionsFinished  = "Total number of capture sessions finished by reason"
	HelpTextCaptureAttempts   = "Total number of frame capture attempts by result"
	HelpTextSlotsResolved     = "Total number of reward slots resolved to a catalog item"
	HelpTextPriceLookups      = "Total number of price lookups by result"
	HelpTextSnapshotsEmitted  = "Total number of reward snapshots delivered to the output channel"
	HelpTextSnapshotsDropped  = "Total number of reward snapshots dropped because the output channel was full"
	HelpTextSinkDeliveries    = "Total number of sink deliveries by sink and result"
	HelpTextCatalogEntries    = "Number of catalog entries by kind"
	HelpTextLogEntriesTotal   = "Total number of game log lines by parse result"
	HelpTextMatchCacheLookups = "Total number of item match memo lookups by result"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelEndpoint = "endpoint"
	LabelBackend  = "backend"
	LabelResult   = "result"
	LabelReason   = "reason"
	LabelSink     = "sink"
	LabelKind     = "kind"
)

// ============================================================================
// Label Values
// ============================================================================

const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultEmpty   = "empty"
	ResultHit     = "hit"
	ResultMiss    = "miss"
	ResultSkipped = "skipped"
	ResultParsed  = "parsed"
	ResultIgnored = "ignored"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets ranges from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// MarketLatencyBuckets extends to 60s because throttle retries are unbounded
var MarketLatencyBuckets = []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60}

// OCRLatencyBuckets covers an in-process call up to a cold tesseract process start
var OCRLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5}
