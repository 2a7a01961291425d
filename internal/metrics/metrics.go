// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AutomationCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "automation_calls_total",
			Help: "Automation calls by stage and outcome",
		},
		[]string{"stage", "outcome"},
	)

	AutomationCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "automation_call_duration_seconds",
			Help:    "End-to-end duration of one automation call",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
		[]string{"stage"},
	)

	LaneConfirmationTimeouts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lane_confirmation_timeouts_total",
			Help: "Lane saves whose confirmation card never appeared in time",
		},
	)

	LanesSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lanes_submitted_total",
			Help: "Lane entries written to the portal",
		},
		[]string{"race"},
	)
)
