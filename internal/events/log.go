package events

import (
	"context"

	"go.uber.org/zap"
)

// LogPublisher writes events to the application log. It is used when no
// broker is configured.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, event TransferEvent) error {
	p.log.Info("transfer event",
		zap.String("type", event.Type),
		zap.Uint("transfer_id", event.TransferID),
		zap.Uint("payer_id", event.PayerID),
		zap.Uint("payee_id", event.PayeeID),
		zap.String("amount", event.Amount.StringFixed(2)),
		zap.String("status", event.Status),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
