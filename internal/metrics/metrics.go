package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Status server metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Market API metrics
var (
	MarketRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMarketRequestsTotal,
			Help: HelpTextMarketRequestsTotal,
		},
		[]string{LabelEndpoint, LabelStatus},
	)

	MarketThrottledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMarketThrottledTotal,
			Help: HelpTextMarketThrottledTotal,
		},
		[]string{LabelEndpoint},
	)

	MarketRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameMarketRequestDuration,
			Help:    HelpTextMarketRequestDuration,
			Buckets: MarketLatencyBuckets,
		},
		[]string{LabelEndpoint},
	)

	MarketPermitsInUse = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameMarketPermitsInUse,
			Help: HelpTextMarketPermitsInUse,
		},
	)
)

// OCR metrics
var (
	OCRCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOCRCallsTotal,
			Help: HelpTextOCRCallsTotal,
		},
		[]string{LabelBackend, LabelResult},
	)

	OCRCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameOCRCallDuration,
			Help:    HelpTextOCRCallDuration,
			Buckets: OCRLatencyBuckets,
		},
		[]string{LabelBackend},
	)
)

// Capture lifecycle metrics
var (
	SessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSessionsStarted,
			Help: HelpTextSessionsStarted,
		},
	)

	SessionsFinished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSessionsFinished,
			Help: HelpTextSessionsFinished,
		},
		[]string{LabelReason},
	)

	CaptureAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCaptureAttempts,
			Help: HelpTextCaptureAttempts,
		},
		[]string{LabelResult},
	)

	SlotsResolved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSlotsResolved,
			Help: HelpTextSlotsResolved,
		},
	)

	PriceLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePriceLookups,
			Help: HelpTextPriceLookups,
		},
		[]string{LabelResult},
	)

	SnapshotsEmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSnapshotsEmitted,
			Help: HelpTextSnapshotsEmitted,
		},
	)

	SnapshotsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSnapshotsDropped,
			Help: HelpTextSnapshotsDropped,
		},
	)
)

// Delivery, catalog and input metrics
var (
	SinkDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSinkDeliveries,
			Help: HelpTextSinkDeliveries,
		},
		[]string{LabelSink, LabelResult},
	)

	CatalogEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameCatalogEntries,
			Help: HelpTextCatalogEntries,
		},
		[]string{LabelKind},
	)

	LogEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLogEntriesTotal,
			Help: HelpTextLogEntriesTotal,
		},
		[]string{LabelResult},
	)

	MatchCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMatchCacheLookups,
			Help: HelpTextMatchCacheLookups,
		},
		[]string{LabelResult},
	)
)
