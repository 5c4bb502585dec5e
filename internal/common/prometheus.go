package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	EventClaimTotal            = "event_claim_total"
	RewardReconcileTotal       = "reward_reconcile_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"path", "status_code"}),
		EventClaimTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: EventClaimTotal,
			Help: "Count of all event reward claims by result",
		}, []string{"result"}),
		RewardReconcileTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: RewardReconcileTotal,
			Help: "Count of reconciled claim histories by result",
		}, []string{"result"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"path", "status_code"}),
	}
)
