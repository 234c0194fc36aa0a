package repositories

import (
	"context"
	"errors"

	"simplepay/internal/models"

	"github.com/shopspring/decimal"
)

var ErrInsufficientBalance = errors.New("insufficient wallet balance")

// WalletRepository defines the interface for wallet-related database operations
type WalletRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Wallet, error)

	// LockByUserIDs loads the wallets of the given users with a row lock,
	// always in ascending wallet id order so that concurrent transfers
	// between the same pair of users cannot deadlock.
	LockByUserIDs(ctx context.Context, userIDs ...uint) ([]models.Wallet, error)

	// Increment adds amount to the wallet balance in a single statement.
	Increment(ctx context.Context, walletID uint, amount decimal.Decimal) error

	// Decrement subtracts amount from the balance and returns
	// ErrInsufficientBalance when the balance would go negative.
	Decrement(ctx context.Context, walletID uint, amount decimal.Decimal) error

	// ExecuteInTransaction runs fn with a repository bound to one database
	// transaction, committing when fn returns nil.
	ExecuteInTransaction(ctx context.Context, fn func(WalletRepository) error) error
}
