package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "simplepay"

// Prometheus exposes the collected metrics on its own registry.
type Prometheus struct {
	registry *prometheus.Registry

	operationDuration *prometheus.HistogramVec
	operationResults  *prometheus.CounterVec
	errors            *prometheus.CounterVec

	transfersTotal        *prometheus.CounterVec
	transferAmount        *prometheus.CounterVec
	authorizationDuration *prometheus.HistogramVec

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewPrometheus registers every metric on a fresh registry together with
// the Go runtime and process collectors.
func NewPrometheus() *Prometheus {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Prometheus{
		registry: reg,
		operationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "service",
			Name:      "operation_duration_seconds",
			Help:      "Duration of service operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		operationResults: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "service",
			Name:      "operation_results_total",
			Help:      "Service operations by result",
		}, []string{"operation", "result"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "service",
			Name:      "errors_total",
			Help:      "Service errors by operation and type",
		}, []string{"operation", "type"}),
		transfersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transfers",
			Name:      "total",
			Help:      "Finished transfers by final status",
		}, []string{"status"}),
		transferAmount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transfers",
			Name:      "amount_total",
			Help:      "Sum of transfer amounts by final status",
		}, []string{"status"}),
		authorizationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "authorizer",
			Name:      "request_duration_seconds",
			Help:      "Latency of authorizer calls by result",
			Buckets:   prometheus.DefBuckets,
		}, []string{"result"}),
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (p *Prometheus) RecordOperationDuration(operation string, duration time.Duration) {
	p.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (p *Prometheus) RecordOperationResult(operation, result string) {
	p.operationResults.WithLabelValues(operation, result).Inc()
}

func (p *Prometheus) RecordError(operation, errType string) {
	p.errors.WithLabelValues(operation, errType).Inc()
}

func (p *Prometheus) RecordTransfer(status string, amount decimal.Decimal) {
	p.transfersTotal.WithLabelValues(status).Inc()
	p.transferAmount.WithLabelValues(status).Add(amount.InexactFloat64())
}

func (p *Prometheus) RecordAuthorization(result string, duration time.Duration) {
	p.authorizationDuration.WithLabelValues(result).Observe(duration.Seconds())
}

func (p *Prometheus) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	p.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Gatherer returns the registry backing this collector.
func (p *Prometheus) Gatherer() prometheus.Gatherer {
	return p.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
