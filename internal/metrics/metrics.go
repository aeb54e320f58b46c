// Package metrics holds the Prometheus collectors of the dev server and
// the build.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes recorded for version switches.
const (
	OutcomeNavigated = "navigated"
	OutcomeStayed    = "stayed"
)

// Recorder owns a private registry so tests can create as many as they
// like without colliding on the default one.
type Recorder struct {
	registry        *prometheus.Registry
	versionSwitches *prometheus.CounterVec
	catalogRequests *prometheus.CounterVec
	rebuilds        *prometheus.CounterVec
	buildDuration   prometheus.Histogram
}

// New registers all collectors on a fresh registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		versionSwitches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "exsite",
			Name:      "version_switch_total",
			Help:      "Version switch requests by target version and outcome.",
		}, []string{"target", "outcome"}),
		catalogRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "exsite",
			Name:      "catalog_requests_total",
			Help:      "Catalog API requests by selected tag.",
		}, []string{"tag"}),
		rebuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "exsite",
			Name:      "rebuilds_total",
			Help:      "Site builds by status.",
		}, []string{"status"}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "exsite",
			Name:      "build_duration_seconds",
			Help:      "Duration of full site builds.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
	}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		r.versionSwitches,
		r.catalogRequests,
		r.rebuilds,
		r.buildDuration,
	)
	return r
}

// UnknownTarget is the label for switch requests naming no configured
// version, so request input cannot grow the label set.
const UnknownTarget = "unknown"

// VersionSwitch counts one switch request.
func (r *Recorder) VersionSwitch(target, outcome string) {
	r.versionSwitches.WithLabelValues(target, outcome).Inc()
}

// CatalogRequest counts one catalog request; the empty tag is "all".
func (r *Recorder) CatalogRequest(tag string) {
	if tag == "" {
		tag = "all"
	}
	r.catalogRequests.WithLabelValues(tag).Inc()
}

// Build records a finished build.
func (r *Recorder) Build(d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "failed"
	}
	r.rebuilds.WithLabelValues(status).Inc()
	r.buildDuration.Observe(d.Seconds())
}

// Registry exposes the registry for tests.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
