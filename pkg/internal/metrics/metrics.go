// Package metrics exposes Prometheus counters for the meeting coordinator.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// startRequestsTotal counts start attempts.
	// Labels:
	//   - mode: "start" or "force"
	//   - outcome: "opened", "soft_error", "deferred" or "failed"
	startRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meeting_start_requests_total",
			Help: "Total number of meeting start requests",
		},
		[]string{"mode", "outcome"},
	)

	scheduleRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meeting_schedule_requests_total",
			Help: "Total number of meeting schedule requests",
		},
		[]string{"outcome"},
	)

	// pushEventsTotal counts push events by name and whether they were acted on.
	pushEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meeting_push_events_total",
			Help: "Total number of push events received",
		},
		[]string{"event", "handled"},
	)
)

func init() {
	prometheus.MustRegister(startRequestsTotal)
	prometheus.MustRegister(scheduleRequestsTotal)
	prometheus.MustRegister(pushEventsTotal)
}

func RecordStart(mode, outcome string) {
	startRequestsTotal.WithLabelValues(mode, outcome).Inc()
}

func RecordSchedule(outcome string) {
	scheduleRequestsTotal.WithLabelValues(outcome).Inc()
}

func RecordPushEvent(event string, handled bool) {
	label := "false"
	if handled {
		label = "true"
	}
	pushEventsTotal.WithLabelValues(event, label).Inc()
}
