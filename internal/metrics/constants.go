package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished = "events_published_total"
)

// Economy metric names
const (
	MetricNamePointsCredited   = "guildpoints_points_credited_total"
	MetricNamePointsDebited    = "guildpoints_points_debited_total"
	MetricNameWagersResolved   = "guildpoints_wagers_resolved_total"
	MetricNameWagerPayout      = "guildpoints_wager_payout_total"
	MetricNameCheckIns         = "guildpoints_check_ins_total"
	MetricNameCouponsRedeemed  = "guildpoints_coupons_redeemed_total"
	MetricNameItemsPurchased   = "guildpoints_items_purchased_total"
	MetricNameDailyResetRuns   = "guildpoints_daily_reset_runs_total"
	MetricNameDailyResetFailed = "guildpoints_daily_reset_failed_accounts_total"
	MetricNameRejectedCommands = "guildpoints_rejected_commands_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished = "Total number of events published"
)

// Economy metric help text
const (
	HelpTextPointsCredited   = "Total points credited to accounts by source"
	HelpTextPointsDebited    = "Total points debited from accounts by source"
	HelpTextWagersResolved   = "Total wagers resolved by game and outcome"
	HelpTextWagerPayout      = "Total gross points paid out by game"
	HelpTextCheckIns         = "Total successful check-ins"
	HelpTextCouponsRedeemed  = "Total coupons redeemed by code"
	HelpTextItemsPurchased   = "Total catalog purchases by item"
	HelpTextDailyResetRuns   = "Total daily reset runs"
	HelpTextDailyResetFailed = "Total accounts the daily reset failed to update"
	HelpTextRejectedCommands = "Total commands rejected with an expected business error"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelItem    = "item"
	LabelSource  = "source"
	LabelGame    = "game"
	LabelOutcome = "outcome"
	LabelCode    = "code"
	LabelReason  = "reason"
)

// Wager outcome label values
const (
	OutcomeWin  = "win"
	OutcomeLoss = "loss"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Event payload has unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
