// Package metrics holds the Prometheus collectors the HTTP collaborator
// exposes for solver telemetry and cache behaviour.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campusforge/timetable/internal/csp"
)

// Recorder encapsulates the Prometheus instrumentation for the
// cmd/timetable-api collaborator: HTTP request timing, cache hit ratio,
// and the Search Engine's own telemetry (backtracks, assignments tried,
// generation time) plus the Post-hoc Evaluator's violation counts.
type Recorder struct {
	registry *prometheus.Registry
	handler  http.Handler

	httpRequestDuration *prometheus.HistogramVec
	httpRequestTotal    *prometheus.CounterVec

	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	cacheHitRatio prometheus.Gauge
	cacheHitCount uint64
	cacheMissCount uint64

	backtracksTotal       prometheus.Counter
	assignmentsTriedTotal prometheus.Counter
	attemptsTotal         prometheus.Counter
	solveDuration         prometheus.Histogram
	hardViolations        prometheus.Gauge
	softViolations        prometheus.Gauge
}

// NewRecorder registers the collectors against a fresh registry.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	httpRequestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	httpRequestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solve_cache_hits_total",
		Help: "Total solved-timetable cache hits",
	})
	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solve_cache_misses_total",
		Help: "Total solved-timetable cache misses",
	})
	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solve_cache_hit_ratio",
		Help: "Ratio of solve cache hits to total lookups",
	})

	backtracksTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "backtracks_total",
		Help: "Total backtrack steps across all solves",
	})
	assignmentsTriedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assignments_tried_total",
		Help: "Total candidate assignments tried across all solves",
	})
	attemptsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solve_attempts_total",
		Help: "Total restart attempts across all solves",
	})
	solveDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "solve_duration_seconds",
		Help:    "Wall time of the solve operation",
		Buckets: prometheus.DefBuckets,
	})
	hardViolations := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hard_violations",
		Help: "Hard violations found by the last Post-hoc Evaluator pass",
	})
	softViolations := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "soft_violations",
		Help: "Soft violations found by the last Post-hoc Evaluator pass",
	})

	registry.MustRegister(httpRequestDuration, httpRequestTotal, cacheHits, cacheMisses, cacheHitRatio,
		backtracksTotal, assignmentsTriedTotal, attemptsTotal, solveDuration, hardViolations, softViolations)

	return &Recorder{
		registry:              registry,
		handler:               promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		httpRequestDuration:   httpRequestDuration,
		httpRequestTotal:      httpRequestTotal,
		cacheHits:             cacheHits,
		cacheMisses:           cacheMisses,
		cacheHitRatio:         cacheHitRatio,
		backtracksTotal:       backtracksTotal,
		assignmentsTriedTotal: assignmentsTriedTotal,
		attemptsTotal:         attemptsTotal,
		solveDuration:         solveDuration,
		hardViolations:        hardViolations,
		softViolations:        softViolations,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return r.handler
}

// ObserveHTTPRequest records one completed HTTP request.
func (r *Recorder) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	r.httpRequestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	r.httpRequestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordCacheLookup records a solve-cache hit or miss and refreshes the
// hit-ratio gauge.
func (r *Recorder) RecordCacheLookup(hit bool) {
	if r == nil {
		return
	}
	if hit {
		r.cacheHits.Inc()
		r.cacheHitCount++
	} else {
		r.cacheMisses.Inc()
		r.cacheMissCount++
	}
	total := r.cacheHitCount + r.cacheMissCount
	if total > 0 {
		r.cacheHitRatio.Set(float64(r.cacheHitCount) / float64(total))
	}
}

// ObserveSolve records one Search Engine run's telemetry and the
// Post-hoc Evaluator's violation counts.
func (r *Recorder) ObserveSolve(t csp.Telemetry, report csp.Report) {
	if r == nil {
		return
	}
	r.backtracksTotal.Add(float64(t.Backtracks))
	r.assignmentsTriedTotal.Add(float64(t.AssignmentsTried))
	r.attemptsTotal.Add(float64(t.Attempts))
	r.solveDuration.Observe(t.GenerationTime.Seconds())
	r.hardViolations.Set(float64(report.HardViolations))
	r.softViolations.Set(float64(report.SoftViolations))
}
