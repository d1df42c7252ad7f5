package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	providerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "journey_provider_requests_total",
		Help: "Outbound provider calls by backend, operation and outcome.",
	}, []string{"provider", "operation", "outcome"})

	plansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "journey_plans_total",
		Help: "Planning runs by outcome.",
	}, []string{"outcome"})

	planDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "journey_plan_duration_seconds",
		Help:    "End-to-end planning run duration.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	})
)

// ObserveProviderCall records one outbound provider request.
func ObserveProviderCall(provider, operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	providerRequests.WithLabelValues(provider, operation, outcome).Inc()
}

// ObservePlan records the outcome and duration of a planning run.
func ObservePlan(seconds float64, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	plansTotal.WithLabelValues(outcome).Inc()
	planDuration.Observe(seconds)
}
