// Package metrics records transfer and HTTP metrics.
package metrics

import (
	"time"

	"github.com/shopspring/decimal"
)

// Collector is implemented by the Prometheus collector and by Noop.
type Collector interface {
	// Operation metrics
	RecordOperationDuration(operation string, duration time.Duration)
	RecordOperationResult(operation, result string)

	// Error metrics
	RecordError(operation, errType string)

	// Transfer metrics
	RecordTransfer(status string, amount decimal.Decimal)
	RecordAuthorization(result string, duration time.Duration)

	// HTTP metrics
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
}

// Noop is a Collector that drops everything.
type Noop struct{}

func (Noop) RecordOperationDuration(string, time.Duration)        {}
func (Noop) RecordOperationResult(string, string)                 {}
func (Noop) RecordError(string, string)                           {}
func (Noop) RecordTransfer(string, decimal.Decimal)               {}
func (Noop) RecordAuthorization(string, time.Duration)            {}
func (Noop) RecordHTTPRequest(string, string, int, time.Duration) {}
