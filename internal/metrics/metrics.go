// Package metrics collects and exposes Prometheus metrics for the API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector aggregates request and domain counters for the service.
type Collector struct {
	httpRequests    *prometheus.CounterVec
	requestDuration prometheus.Histogram
	signIns         *prometheus.CounterVec
	listingActions  *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg. A nil
// registerer falls back to the default one.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bitsbay_http_requests_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bitsbay_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		signIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bitsbay_sign_ins_total",
			Help: "Successful Google sign-ins by outcome.",
		}, []string{"outcome"}),
		listingActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bitsbay_listing_actions_total",
			Help: "Listing mutations by action.",
		}, []string{"action"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.requestDuration,
		c.signIns,
		c.listingActions,
	)

	return c
}

// RecordRequest records one served HTTP request.
func (c *Collector) RecordRequest(statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(strconv.Itoa(statusCode)).Inc()
	c.requestDuration.Observe(duration.Seconds())
}

// RecordSignIn records a successful sign-in; created marks first sign-ins.
func (c *Collector) RecordSignIn(created bool) {
	outcome := "returning"
	if created {
		outcome = "new_user"
	}
	c.signIns.WithLabelValues(outcome).Inc()
}

// RecordListingAction records a listing create, update, or delete.
func (c *Collector) RecordListingAction(action string) {
	c.listingActions.WithLabelValues(action).Inc()
}
