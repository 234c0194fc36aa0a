// Package events publishes transfer outcomes to downstream consumers.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Routing keys, one per terminal transfer status.
const (
	TransferCompleted    = "transfer.completed"
	TransferUnauthorized = "transfer.unauthorized"
	TransferFailed       = "transfer.failed"
)

// TransferEvent is the message body published for every finished transfer.
type TransferEvent struct {
	Type       string          `json:"type"`
	TransferID uint            `json:"transfer_id"`
	PayerID    uint            `json:"payer_id"`
	PayeeID    uint            `json:"payee_id"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event TransferEvent) error
	Close() error
}
