package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "simplepay/internal/errors"
	"simplepay/internal/metrics"
	"simplepay/internal/models"
	"simplepay/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type service struct {
	repo    repositories.WalletRepository
	metrics metrics.Collector
	log     *zap.Logger
}

// NewService creates a new wallet service
func NewService(repo repositories.WalletRepository, collector metrics.Collector, log *zap.Logger) Service {
	if repo == nil {
		panic("repo is required")
	}

	// Metrics is optional, create no-op collector if nil
	if collector == nil {
		collector = metrics.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &service{
		repo:    repo,
		metrics: collector,
		log:     log,
	}
}

func (s *service) getWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	wallet, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, apperrors.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return wallet, nil
}

func (s *service) ValidateBalance(ctx context.Context, userID uint, amount decimal.Decimal) error {
	wallet, err := s.getWallet(ctx, userID)
	if err != nil {
		return err
	}
	if !wallet.HasFunds(amount) {
		s.metrics.RecordError("validate_balance", "insufficient_funds")
		return apperrors.ErrInsufficientFunds
	}
	return nil
}

func (s *service) Move(ctx context.Context, fromUserID, toUserID uint, amount decimal.Decimal) error {
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration("wallet_move", time.Since(start))
	}()

	err := s.repo.ExecuteInTransaction(ctx, func(tx repositories.WalletRepository) error {
		wallets, err := tx.LockByUserIDs(ctx, fromUserID, toUserID)
		if err != nil {
			return err
		}

		var from, to *models.Wallet
		for i := range wallets {
			switch wallets[i].UserID {
			case fromUserID:
				from = &wallets[i]
			case toUserID:
				to = &wallets[i]
			}
		}
		if from == nil || to == nil {
			return apperrors.ErrWalletNotFound
		}

		// The balance checked before authorization may be stale by now.
		if !from.HasFunds(amount) {
			return apperrors.ErrInsufficientFunds
		}

		if err := tx.Decrement(ctx, from.ID, amount); err != nil {
			if errors.Is(err, repositories.ErrInsufficientBalance) {
				return apperrors.ErrInsufficientFunds
			}
			return err
		}
		return tx.Increment(ctx, to.ID, amount)
	})
	if err != nil {
		s.metrics.RecordOperationResult("wallet_move", "failure")
		s.metrics.RecordError("wallet_move", errorType(err))
		return fmt.Errorf("move funds from user %d to user %d: %w", fromUserID, toUserID, err)
	}

	s.metrics.RecordOperationResult("wallet_move", "success")
	s.log.Debug("funds moved",
		zap.Uint("from_user_id", fromUserID),
		zap.Uint("to_user_id", toUserID),
		zap.String("amount", amount.StringFixed(2)),
	)
	return nil
}

func errorType(err error) string {
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return "internal"
}
