package repositories

import (
	"context"
	"errors"
	"time"

	"simplepay/internal/models"
)

// ErrInvalidTransition is returned when a transfer is no longer PENDING.
var ErrInvalidTransition = errors.New("transfer is not pending")

// TransferRepository persists transfers and their status transitions.
type TransferRepository interface {
	Create(ctx context.Context, transfer *models.Transfer) error
	GetByID(ctx context.Context, id uint) (*models.Transfer, error)

	// SaveAuthorizationResponse stores the raw authorizer answer for audit.
	SaveAuthorizationResponse(ctx context.Context, id uint, response models.JSON) error

	// Finish moves a PENDING transfer to a terminal status. authorizedAt is
	// only set for completed transfers.
	Finish(ctx context.Context, id uint, status models.TransferStatusID, authorizedAt *time.Time) error
}
