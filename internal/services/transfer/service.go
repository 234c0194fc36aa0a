package transfer

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "simplepay/internal/errors"
	"simplepay/internal/events"
	"simplepay/internal/logger"
	"simplepay/internal/metrics"
	"simplepay/internal/models"
	"simplepay/internal/repositories"
	"simplepay/internal/services/authorizer"
	"simplepay/internal/validation"

	"go.uber.org/zap"
)

// Deps groups the collaborators of the transfer service.
type Deps struct {
	Users      repositories.UserRepository
	Transfers  repositories.TransferRepository
	Wallets    WalletService
	Authorizer authorizer.Authorizer
	Notifier   NotificationService
	Publisher  events.Publisher
	Metrics    metrics.Collector
	Log        *zap.Logger
}

// service implements the transfer Service interface.
type service struct {
	users      repositories.UserRepository
	transfers  repositories.TransferRepository
	wallets    WalletService
	authorizer authorizer.Authorizer
	notifier   NotificationService
	publisher  events.Publisher
	metrics    metrics.Collector
	log        *zap.Logger
	now        func() time.Time
}

// NewService creates a new transfer service instance.
func NewService(d Deps) Service {
	if d.Metrics == nil {
		d.Metrics = metrics.Noop{}
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Publisher == nil {
		d.Publisher = events.NewLogPublisher(d.Log)
	}
	return &service{
		users:      d.Users,
		transfers:  d.Transfers,
		wallets:    d.Wallets,
		authorizer: d.Authorizer,
		notifier:   d.Notifier,
		publisher:  d.Publisher,
		metrics:    d.Metrics,
		log:        d.Log,
		now:        time.Now,
	}
}

// Transfer validates the request, records a PENDING transfer, asks the
// authorizer and, when approved, moves the funds. A created transfer leaves
// PENDING unless the status write itself fails; that case is logged for
// reconciliation.
func (s *service) Transfer(ctx context.Context, req Request) (*models.Transfer, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration("transfer", time.Since(start))
	}()

	if err := s.validate(ctx, req); err != nil {
		s.metrics.RecordOperationResult("transfer", "rejected")
		return nil, err
	}

	transfer := &models.Transfer{
		PayerID:          req.PayerID,
		PayeeID:          req.PayeeID,
		Amount:           req.Amount,
		TransferStatusID: models.TransferStatusPending,
	}
	if err := s.transfers.Create(ctx, transfer); err != nil {
		return nil, fmt.Errorf("create pending transfer: %w", err)
	}

	log := s.log.With(
		zap.Uint("transfer_id", transfer.ID),
		zap.Uint("payer_id", transfer.PayerID),
		zap.Uint("payee_id", transfer.PayeeID),
		zap.String("amount", transfer.Amount.StringFixed(2)),
	)

	authStart := time.Now()
	result, err := s.authorizer.Authorize(ctx, authorizer.Request{
		TransferID: transfer.ID,
		PayerID:    transfer.PayerID,
		PayeeID:    transfer.PayeeID,
		Amount:     transfer.Amount,
	})
	if err != nil {
		s.metrics.RecordAuthorization("error", time.Since(authStart))
		log.Error("authorization request failed", logger.ErrorFields(err)...)
		s.finish(ctx, log, transfer, models.TransferStatusError, nil)
		return nil, fmt.Errorf("%w: %w", apperrors.ErrTransferFailed, err)
	}

	if err := s.transfers.SaveAuthorizationResponse(ctx, transfer.ID, result.Response); err != nil {
		log.Error("failed to store authorization response", logger.ErrorFields(err)...)
		s.finish(ctx, log, transfer, models.TransferStatusError, nil)
		return nil, fmt.Errorf("%w: %w", apperrors.ErrTransferFailed, err)
	}
	transfer.AuthorizationResponse = result.Response

	if !result.Authorized {
		s.metrics.RecordAuthorization("denied", time.Since(authStart))
		log.Info("transfer denied by authorizer", zap.Int("status_code", result.StatusCode))
		s.finish(ctx, log, transfer, models.TransferStatusUnauthorized, nil)
		return nil, apperrors.ErrUnauthorizedTransfer
	}
	s.metrics.RecordAuthorization("approved", time.Since(authStart))

	if err := s.wallets.Move(ctx, transfer.PayerID, transfer.PayeeID, transfer.Amount); err != nil {
		log.Error("transfer failed while moving funds", logger.ErrorFields(err)...)
		s.finish(ctx, log, transfer, models.TransferStatusError, nil)
		return nil, err
	}

	authorizedAt := s.now()
	if err := s.finish(ctx, log, transfer, models.TransferStatusCompleted, &authorizedAt); err != nil {
		log.Error("funds moved but transfer is still PENDING, needs reconciliation",
			append(logger.ErrorFields(err), zap.Bool("reconcile", true))...)
		return nil, fmt.Errorf("%w: %w", apperrors.ErrTransferFailed, err)
	}

	if s.notifier != nil {
		notified := *transfer
		go s.notify(context.WithoutCancel(ctx), log, &notified)
	}

	completed, err := s.transfers.GetByID(ctx, transfer.ID)
	if err != nil {
		log.Warn("failed to reload transfer", zap.Error(err))
		return transfer, nil
	}
	return completed, nil
}

func (s *service) GetTransfer(ctx context.Context, id uint) (*models.Transfer, error) {
	transfer, err := s.transfers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound.WithMessage("Transfer not found")
		}
		return nil, err
	}
	return transfer, nil
}

func (s *service) validate(ctx context.Context, req Request) error {
	v := validation.New()
	v.Check(req.Amount.GreaterThanOrEqual(validation.MinTransferAmount), "amount",
		"The amount must be at least "+validation.MinTransferAmount.StringFixed(validation.MoneyDecimalPlaces)+".")
	v.Check(validation.IsMoney(req.Amount), "amount", "The amount may not have more than 2 decimal places.")
	v.Check(req.PayerID != req.PayeeID, "payee_id", "The payee id and payer id must be different.")
	if err := v.Err(); err != nil {
		return err
	}

	payer, err := s.users.GetByID(ctx, req.PayerID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return apperrors.ErrPayerNotFound
		}
		return fmt.Errorf("load payer: %w", err)
	}
	if payer.IsShopkeeper() {
		return apperrors.ErrInvalidPayer
	}

	if _, err := s.users.GetByID(ctx, req.PayeeID); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return apperrors.ErrPayeeNotFound
		}
		return fmt.Errorf("load payee: %w", err)
	}

	return s.wallets.ValidateBalance(ctx, req.PayerID, req.Amount)
}

// finish moves the transfer to a terminal status and emits the matching
// event and metrics. It keeps going when the request context is already
// cancelled so a transfer is never left PENDING.
func (s *service) finish(ctx context.Context, log *zap.Logger, transfer *models.Transfer, status models.TransferStatusID, authorizedAt *time.Time) error {
	ctx = context.WithoutCancel(ctx)

	if err := s.transfers.Finish(ctx, transfer.ID, status, authorizedAt); err != nil {
		log.Error("failed to update transfer status",
			append(logger.ErrorFields(err), zap.Stringer("status", status))...)
		return err
	}
	transfer.TransferStatusID = status
	transfer.AuthorizedAt = authorizedAt

	s.metrics.RecordTransfer(status.String(), transfer.Amount)
	s.metrics.RecordOperationResult("transfer", status.String())

	event := events.TransferEvent{
		Type:       eventType(status),
		TransferID: transfer.ID,
		PayerID:    transfer.PayerID,
		PayeeID:    transfer.PayeeID,
		Amount:     transfer.Amount,
		Status:     status.String(),
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Warn("failed to publish transfer event", zap.String("type", event.Type), zap.Error(err))
	}
	return nil
}

// notify runs off the request path. The notifier's own timeout bounds it.
func (s *service) notify(ctx context.Context, log *zap.Logger, transfer *models.Transfer) {
	if err := s.notifier.SendTransferNotification(ctx, transfer); err != nil {
		log.Warn("payee notification failed", zap.Error(err))
	}
}

func eventType(status models.TransferStatusID) string {
	switch status {
	case models.TransferStatusCompleted:
		return events.TransferCompleted
	case models.TransferStatusUnauthorized:
		return events.TransferUnauthorized
	default:
		return events.TransferFailed
	}
}
