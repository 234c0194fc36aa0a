package transfer

import (
	"context"

	"simplepay/internal/models"

	"github.com/shopspring/decimal"
)

// WalletService defines the wallet operations used by the transfer service.
type WalletService interface {
	ValidateBalance(ctx context.Context, userID uint, amount decimal.Decimal) error
	Move(ctx context.Context, fromUserID, toUserID uint, amount decimal.Decimal) error
}

// NotificationService is used to notify payees about transfers.
type NotificationService interface {
	SendTransferNotification(ctx context.Context, transfer *models.Transfer) error
}

// Request describes a transfer to perform.
type Request struct {
	PayerID uint
	PayeeID uint
	Amount  decimal.Decimal
}

// Service handles P2P money transfers between users.
type Service interface {
	Transfer(ctx context.Context, req Request) (*models.Transfer, error)
	GetTransfer(ctx context.Context, id uint) (*models.Transfer, error)
}
