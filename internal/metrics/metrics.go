// Package metrics collects Prometheus metrics for the reservation service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the subset of metrics the services report.
type Recorder interface {
	RecordSignup()
	RecordLogin(success bool)
	RecordReservationSubmitted()
	RecordStatusChange(status string)
}

// Collector is the Prometheus implementation of Recorder plus HTTP metrics.
type Collector struct {
	signups      prometheus.Counter
	logins       *prometheus.CounterVec
	submitted    prometheus.Counter
	transitions  *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		signups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "restaurant_signups_total",
			Help: "Number of successful signups.",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "restaurant_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "restaurant_reservations_submitted_total",
			Help: "Number of reservations submitted.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "restaurant_reservation_status_changes_total",
			Help: "Reservation status updates by target status.",
		}, []string{"status"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "restaurant_http_requests_total",
			Help: "HTTP responses by method, route and status code.",
		}, []string{"method", "route", "status_code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "restaurant_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		c.signups,
		c.logins,
		c.submitted,
		c.transitions,
		c.httpRequests,
		c.httpLatency,
	)
	return c
}

func (c *Collector) RecordSignup() { c.signups.Inc() }

func (c *Collector) RecordLogin(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	c.logins.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordReservationSubmitted() { c.submitted.Inc() }

func (c *Collector) RecordStatusChange(status string) {
	c.transitions.WithLabelValues(status).Inc()
}

// RecordHTTP records one served request.
func (c *Collector) RecordHTTP(method, route string, status int, d time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards every metric.
type Nop struct{}

func (Nop) RecordSignup()               {}
func (Nop) RecordLogin(bool)            {}
func (Nop) RecordReservationSubmitted() {}
func (Nop) RecordStatusChange(string)   {}
