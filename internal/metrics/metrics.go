package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatgate_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chatgate_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	MessagesValidatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatgate_messages_validated_total",
			Help: "Total number of messages run through the content filter.",
		},
		[]string{"outcome"},
	)

	ValidationIssuesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatgate_validation_issues_total",
			Help: "Content filter issues detected, by kind.",
		},
		[]string{"issue"},
	)

	QuotaDenialsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chatgate_quota_denials_total",
			Help: "Total number of submissions rejected for exhausted daily quota.",
		},
	)

	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatgate_search_requests_total",
			Help: "Total number of downstream search requests.",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		MessagesValidatedTotal,
		ValidationIssuesTotal,
		QuotaDenialsTotal,
		SearchRequestsTotal,
	)
}
