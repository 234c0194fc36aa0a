package repositories

import (
	"context"
	"fmt"
	"time"

	"simplepay/internal/models"

	"gorm.io/gorm"
)

type transferRepository struct {
	db *gorm.DB
}

func NewTransferRepository(db *gorm.DB) TransferRepository {
	return &transferRepository{db: db}
}

func (r *transferRepository) Create(ctx context.Context, transfer *models.Transfer) error {
	if transfer.TransferStatusID == 0 {
		transfer.TransferStatusID = models.TransferStatusPending
	}
	if err := r.db.WithContext(ctx).Omit("Payer", "Payee", "TransferStatus").Create(transfer).Error; err != nil {
		return fmt.Errorf("create transfer: %w", translate(err))
	}
	return nil
}

func (r *transferRepository) GetByID(ctx context.Context, id uint) (*models.Transfer, error) {
	var transfer models.Transfer
	if err := r.db.WithContext(ctx).Preload("TransferStatus").First(&transfer, id).Error; err != nil {
		return nil, translate(err)
	}
	return &transfer, nil
}

func (r *transferRepository) SaveAuthorizationResponse(ctx context.Context, id uint, response models.JSON) error {
	err := r.db.WithContext(ctx).
		Model(&models.Transfer{}).
		Where("id = ?", id).
		Update("authorization_response", response).Error
	if err != nil {
		return fmt.Errorf("save authorization response: %w", err)
	}
	return nil
}

func (r *transferRepository) Finish(ctx context.Context, id uint, status models.TransferStatusID, authorizedAt *time.Time) error {
	if !status.IsTerminal() {
		return fmt.Errorf("%w: %s is not a terminal status", ErrInvalidTransition, status)
	}

	updates := map[string]interface{}{"transfer_status_id": status}
	if authorizedAt != nil {
		updates["authorized_at"] = *authorizedAt
	}

	result := r.db.WithContext(ctx).
		Model(&models.Transfer{}).
		Where("id = ? AND transfer_status_id = ?", id, models.TransferStatusPending).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("finish transfer %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrInvalidTransition
	}
	return nil
}
