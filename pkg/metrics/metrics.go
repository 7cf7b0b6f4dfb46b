// Package metrics holds the Prometheus collectors exported by the service.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Changelog sources.
const (
	SourceFetched  = "fetched"
	SourceProvided = "provided"
	SourceNone     = "none"
)

// WeCom call outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeAPIError = "api_error"
	OutcomeFailure  = "failure"
)

var (
	ChangelogsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "socialkit",
		Name:      "edition_changelogs_created_total",
		Help:      "Edition changelog rows written, by snapshot source.",
	}, []string{"source"})

	ChangelogFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "socialkit",
		Name:      "edition_changelog_failures_total",
		Help:      "Edition changelog creations that returned an error, by reason.",
	}, []string{"reason"})

	WeComRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "socialkit",
		Name:      "wecom_requests_total",
		Help:      "Calls made to the WeCom service API, by api and outcome.",
	}, []string{"api", "outcome"})

	WeComLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "socialkit",
		Name:      "wecom_request_duration_seconds",
		Help:      "Latency of WeCom service API calls.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{"api"})

	TenantCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "socialkit",
		Name:      "tenant_cache_lookups_total",
		Help:      "Social tenant cache lookups, by result (hit or miss).",
	}, []string{"result"})
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		ChangelogsCreated,
		ChangelogFailures,
		WeComRequests,
		WeComLatency,
		TenantCacheLookups,
	}
}

// Register registers every collector on reg (the default registerer when nil).
// Collectors that are already registered are skipped.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				return err
			}
		}
	}
	return nil
}

// Handler exposes the metrics gathered by g (the default gatherer when nil).
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
