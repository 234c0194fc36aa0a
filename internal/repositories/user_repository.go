package repositories

import (
	"context"

	"simplepay/internal/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	// Create inserts the user together with its wallet in one transaction.
	Create(ctx context.Context, user *models.User, wallet *models.Wallet) error

	// GetByID retrieves a bare user row, served from the cache when possible.
	// Cached rows carry no password hash.
	GetByID(ctx context.Context, id uint) (*models.User, error)

	// GetWithRelations retrieves a user with wallet, user type and document type.
	GetWithRelations(ctx context.Context, id uint) (*models.User, error)

	// GetByEmail retrieves a user by their email address
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// EmailTaken and DocumentTaken check uniqueness, ignoring exceptID.
	EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error)
	DocumentTaken(ctx context.Context, document string, exceptID uint) (bool, error)

	// Update persists changed columns of an existing user.
	Update(ctx context.Context, user *models.User) error

	// Delete soft-deletes a user. The row stays in storage.
	Delete(ctx context.Context, id uint) error

	// IncrementTokenVersion revokes every token issued to the user.
	IncrementTokenVersion(ctx context.Context, userID uint) error

	// List retrieves users with pagination
	List(ctx context.Context, offset, limit int) ([]models.User, int64, error)

	// CountByUserType and CountByDocumentType report how many users,
	// soft-deleted ones included, reference a lookup row.
	CountByUserType(ctx context.Context, userTypeID uint) (int64, error)
	CountByDocumentType(ctx context.Context, documentTypeID uint) (int64, error)
}
