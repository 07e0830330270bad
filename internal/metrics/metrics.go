package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
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

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)
)

// Economy Metrics
var (
	PointsCredited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePointsCredited,
			Help: HelpTextPointsCredited,
		},
		[]string{LabelSource},
	)

	PointsDebited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePointsDebited,
			Help: HelpTextPointsDebited,
		},
		[]string{LabelSource},
	)

	WagersResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWagersResolved,
			Help: HelpTextWagersResolved,
		},
		[]string{LabelGame, LabelOutcome},
	)

	WagerPayout = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWagerPayout,
			Help: HelpTextWagerPayout,
		},
		[]string{LabelGame},
	)

	CheckIns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCheckIns,
			Help: HelpTextCheckIns,
		},
	)

	CouponsRedeemed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCouponsRedeemed,
			Help: HelpTextCouponsRedeemed,
		},
		[]string{LabelCode},
	)

	ItemsPurchased = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsPurchased,
			Help: HelpTextItemsPurchased,
		},
		[]string{LabelItem},
	)

	DailyResetRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDailyResetRuns,
			Help: HelpTextDailyResetRuns,
		},
	)

	DailyResetFailedAccounts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDailyResetFailed,
			Help: HelpTextDailyResetFailed,
		},
	)

	RejectedCommands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRejectedCommands,
			Help: HelpTextRejectedCommands,
		},
		[]string{LabelReason},
	)
)
