package wallet

import (
	"context"

	"github.com/shopspring/decimal"
)

// Service defines the main wallet service interface
type Service interface {
	// ValidateBalance checks, without locking, that the user's wallet can
	// cover amount.
	ValidateBalance(ctx context.Context, userID uint, amount decimal.Decimal) error

	// Move debits fromUserID and credits toUserID atomically.
	Move(ctx context.Context, fromUserID, toUserID uint, amount decimal.Decimal) error
}
