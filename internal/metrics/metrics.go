// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the view of the collector used by services and middleware.
type Recorder interface {
	RecordRequest(method, route string, status int, duration time.Duration)
	RecordAuthEvent(event string)
	RecordUpload(kind string, bytes int64)
}

// Auth events
const (
	EventSignup       = "signup"
	EventLogin        = "login"
	EventLoginFailure = "login_failure"
	EventLogout       = "logout"
	EventRefresh      = "refresh"
	EventVerifyEmail  = "verify_email"
)

// Collector is the Prometheus implementation of Recorder.
type Collector struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	authEvents   *prometheus.CounterVec
	uploadBytes  *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cannaconnect_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cannaconnect_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		authEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cannaconnect_auth_events_total",
			Help: "Authentication events by type",
		}, []string{"event"}),
		uploadBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cannaconnect_upload_bytes_total",
			Help: "Bytes accepted by upload kind",
		}, []string{"kind"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.authEvents,
		c.uploadBytes,
	)

	return c
}

func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	c.httpRequests.WithLabelValues(method, route, code).Inc()
	c.httpDuration.WithLabelValues(method, route, code).Observe(duration.Seconds())
}

func (c *Collector) RecordAuthEvent(event string) {
	c.authEvents.WithLabelValues(event).Inc()
}

func (c *Collector) RecordUpload(kind string, bytes int64) {
	c.uploadBytes.WithLabelValues(kind).Add(float64(bytes))
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards every measurement.
type Nop struct{}

func (Nop) RecordRequest(string, string, int, time.Duration) {}
func (Nop) RecordAuthEvent(string) {}
func (Nop) RecordUpload(string, int64) {}
