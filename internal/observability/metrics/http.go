package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	classificationsTotal    *prometheus.CounterVec
	classificationDuration  *prometheus.HistogramVec
	classifierFailuresTotal *prometheus.CounterVec
	fallbackTotal           *prometheus.CounterVec
	suggestionsTotal        *prometheus.CounterVec
	rateLimitedTotal        *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fbi",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fbi",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "fbi",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	classificationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fbi",
			Subsystem: "sentiment",
			Name:      "classifications_total",
			Help:      "Total sentiment classifications by resolved method and label.",
		},
		[]string{"service", "method", "label"},
	)
	classificationDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fbi",
			Subsystem: "sentiment",
			Name:      "classification_duration_seconds",
			Help:      "End-to-end sentiment analysis duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	classifierFailuresTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fbi",
			Subsystem: "sentiment",
			Name:      "classifier_failures_total",
			Help:      "Total transformer classifier calls that produced no signal.",
		},
		[]string{"service"},
	)
	fallbackTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fbi",
			Subsystem: "sentiment",
			Name:      "fallback_activations_total",
			Help:      "Total classifications resolved by the polarity fallback.",
		},
		[]string{"service"},
	)
	suggestionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fbi",
			Subsystem: "suggestion",
			Name:      "generated_total",
			Help:      "Total improvement suggestions by outcome.",
		},
		[]string{"service", "outcome"},
	)
	rateLimitedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fbi",
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Total requests rejected by the rate limiter.",
		},
		[]string{"service", "path"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		classificationsTotal,
		classificationDuration,
		classifierFailuresTotal,
		fallbackTotal,
		suggestionsTotal,
		rateLimitedTotal,
	)

	return &HTTPServerMetrics{
		registry:                registry,
		requestTotal:            requestTotal,
		requestDuration:         requestDuration,
		requestInFlight:         requestInFlight,
		classificationsTotal:    classificationsTotal,
		classificationDuration:  classificationDuration,
		classifierFailuresTotal: classifierFailuresTotal,
		fallbackTotal:           fallbackTotal,
		suggestionsTotal:        suggestionsTotal,
		rateLimitedTotal:        rateLimitedTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/feedback/"):
		return "/api/feedback/{id}"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordClassification(service, method, label string, duration time.Duration) {
	if method == "" {
		method = "unknown"
	}
	if label == "" {
		label = "unknown"
	}
	m.classificationsTotal.WithLabelValues(service, method, label).Inc()
	m.classificationDuration.WithLabelValues(service).Observe(duration.Seconds())
}

func (m *HTTPServerMetrics) RecordClassifierFailure(service string) {
	m.classifierFailuresTotal.WithLabelValues(service).Inc()
}

func (m *HTTPServerMetrics) RecordFallbackActivation(service string) {
	m.fallbackTotal.WithLabelValues(service).Inc()
}

func (m *HTTPServerMetrics) RecordSuggestion(service, outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	m.suggestionsTotal.WithLabelValues(service, outcome).Inc()
}

func (m *HTTPServerMetrics) RecordRateLimited(service, path string) {
	m.rateLimitedTotal.WithLabelValues(service, normalizePath(path)).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
