// Package metrics exposes Prometheus metrics for mint/transfer operations and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements usecase.OperationRecorder and the HTTP request recorder.
type Collector struct {
	operations       *prometheus.CounterVec
	operationLatency *prometheus.HistogramVec
	rejectedTransfer *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nftminter_operations_total",
			Help: "Mint and transfer operations by kind and final status.",
		}, []string{"kind", "status"}),
		operationLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nftminter_operation_duration_seconds",
			Help:    "End-to-end operation latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		rejectedTransfer: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nftminter_transfer_rejected_total",
			Help: "Transfers refused by the program, by reason.",
		}, []string{"reason"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nftminter_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "status_code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nftminter_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	reg.MustRegister(
		c.operations,
		c.operationLatency,
		c.rejectedTransfer,
		c.httpRequests,
		c.httpLatency,
	)
	return c
}

func (c *Collector) ObserveOperation(kind, status string, elapsed time.Duration) {
	c.operations.WithLabelValues(kind, status).Inc()
	c.operationLatency.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (c *Collector) ObserveRejectedTransfer(reason string) {
	c.rejectedTransfer.WithLabelValues(reason).Inc()
}

func (c *Collector) ObserveHTTP(route string, statusCode int, elapsed time.Duration) {
	c.httpRequests.WithLabelValues(route, strconv.Itoa(statusCode)).Inc()
	c.httpLatency.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Handler serves the scrape endpoint.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
