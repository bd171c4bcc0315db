// Package metrics exposes Prometheus collectors for the game and its HTTP API.
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

// Duck Metrics
var (
	DucksSpawned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDucksSpawned,
			Help: HelpTextDucksSpawned,
		},
		[]string{LabelCategory, LabelOrigin},
	)

	DucksLeft = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDucksLeft,
			Help: HelpTextDucksLeft,
		},
		[]string{LabelCategory},
	)

	DucksResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDucksResolved,
			Help: HelpTextDucksResolved,
		},
		[]string{LabelCategory, LabelOutcome},
	)

	Shots = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameShots,
			Help: HelpTextShots,
		},
		[]string{LabelOutcome},
	)

	DucksAlive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameDucksAlive,
			Help: HelpTextDucksAlive,
		},
	)

	SpawnBudget = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSpawnBudget,
			Help: HelpTextSpawnBudget,
		},
	)
)

// Loop Metrics
var (
	LoopDrift = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameLoopDrift,
			Help: HelpTextLoopDrift,
		},
	)

	LoopResyncs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLoopResyncs,
			Help: HelpTextLoopResyncs,
		},
	)

	TickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameTickDuration,
			Help:    HelpTextTickDuration,
			Buckets: TickBuckets,
		},
	)

	ChannelFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameChannelFailures,
			Help: HelpTextChannelFailures,
		},
		[]string{LabelPhase},
	)

	OutboxDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameOutboxDropped,
			Help: HelpTextOutboxDropped,
		},
	)
)

// Business Metrics
var (
	Purchases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePurchases,
			Help: HelpTextPurchases,
		},
		[]string{LabelItem},
	)

	Commands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCommands,
			Help: HelpTextCommands,
		},
		[]string{LabelCommand},
	)
)
