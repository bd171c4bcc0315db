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

// Duck lifecycle metric names
const (
	MetricNameDucksSpawned    = "duckhunt_ducks_spawned_total"
	MetricNameDucksLeft       = "duckhunt_ducks_left_total"
	MetricNameDucksResolved   = "duckhunt_ducks_resolved_total"
	MetricNameShots           = "duckhunt_shots_total"
	MetricNameDucksAlive      = "duckhunt_ducks_alive"
	MetricNameSpawnBudget     = "duckhunt_spawn_budget_remaining"
	MetricNameLoopDrift       = "duckhunt_loop_drift_seconds"
	MetricNameLoopResyncs     = "duckhunt_loop_resyncs_total"
	MetricNameTickDuration    = "duckhunt_tick_duration_seconds"
	MetricNameChannelFailures = "duckhunt_channel_failures_total"
	MetricNameOutboxDropped   = "duckhunt_outbox_dropped_total"
	MetricNamePurchases       = "duckhunt_purchases_total"
	MetricNameCommands        = "duckhunt_commands_total"
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

// Duck lifecycle metric help text
const (
	HelpTextDucksSpawned    = "Ducks spawned, by category and origin"
	HelpTextDucksLeft       = "Ducks that timed out and left, by category"
	HelpTextDucksResolved   = "Ducks removed by a hunter action, by category and outcome"
	HelpTextShots           = "Hunter actions, by outcome"
	HelpTextDucksAlive      = "Ducks currently registered across all channels"
	HelpTextSpawnBudget     = "Natural spawns left today, summed over enabled channels"
	HelpTextLoopDrift       = "Seconds the spawn loop runs behind its target iteration"
	HelpTextLoopResyncs     = "Times the spawn loop resynchronized to wall clock"
	HelpTextTickDuration    = "Spawn loop tick processing time in seconds"
	HelpTextChannelFailures = "Per channel tick failures, by phase"
	HelpTextOutboxDropped   = "Channel messages dropped because the delivery queue was full"
	HelpTextPurchases       = "Shop purchases, by item"
	HelpTextCommands        = "Slash commands received, by command"
)

// ============================================================================
// Metric Labels
// ============================================================================

// Label names
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelCategory = "category"
	LabelOrigin   = "origin"
	LabelOutcome  = "outcome"
	LabelPhase    = "phase"
	LabelItem     = "item"
	LabelCommand  = "command"
)

// Spawn origins
const (
	OriginNatural = "natural"
	OriginManual  = "manual"
	OriginDecoy   = "decoy"
	OriginChild   = "child"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines latency buckets for HTTP requests
var HTTPLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}

// TickBuckets covers a tick from a no-op to a stalled second
var TickBuckets = []float64{.0005, .001, .005, .01, .05, .1, .25, .5, 1}
