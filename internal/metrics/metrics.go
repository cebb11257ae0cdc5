package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gilesshaxted/karma/internal/logging"
)

var (
	MessagesScanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "karma_automod_messages_scanned_total",
		Help: "Messages run through the infraction detector.",
	})

	InfractionsDetected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "karma_automod_infractions_total",
		Help: "Infractions detected, by filter.",
	}, []string{"filter"})

	EnforcementFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "karma_automod_enforcement_failures_total",
		Help: "Enforcement steps that failed, by step.",
	}, []string{"step"})

	TimeoutsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "karma_automod_timeouts_total",
		Help: "Tier-2 timeouts successfully applied.",
	})

	SuspensionsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "karma_automod_suspensions_total",
		Help: "Tier-3 extended suspensions successfully applied.",
	})

	QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "karma_automod_queue_depth",
		Help: "Enforcement jobs waiting in the queue.",
	})
)

// Serve exposes /metrics on addr. No-op when addr is empty.
func Serve(addr string) {
	if addr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logging.Error("Metrics server failed: %v", err)
		}
	}()
	logging.Info("Metrics listening on %s", addr)
}
