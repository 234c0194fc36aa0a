package repositories

import (
	"context"
	"fmt"

	"simplepay/internal/models"
	"simplepay/internal/repositories/cache"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type userRepository struct {
	db    *gorm.DB
	cache cache.UserCache
	log   *zap.Logger
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB, userCache cache.UserCache, log *zap.Logger) UserRepository {
	if userCache == nil {
		userCache = cache.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &userRepository{
		db:    db,
		cache: userCache,
		log:   log,
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User, wallet *models.Wallet) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Wallet", "UserType", "DocumentType").Create(user).Error; err != nil {
			return fmt.Errorf("create user: %w", translate(err))
		}
		wallet.UserID = user.ID
		if err := tx.Create(wallet).Error; err != nil {
			return fmt.Errorf("create wallet: %w", translate(err))
		}
		user.Wallet = wallet
		return nil
	})
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if user, found, err := r.cache.GetUser(ctx, id); err != nil {
		r.log.Warn("user cache lookup failed", zap.Uint("user_id", id), zap.Error(err))
	} else if found {
		return user, nil
	}

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}

	if err := r.cache.CacheUser(ctx, &user); err != nil {
		r.log.Warn("failed to cache user", zap.Uint("user_id", id), zap.Error(err))
	}
	return &user, nil
}

func (r *userRepository) GetWithRelations(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Wallet").
		Preload("UserType").
		Preload("DocumentType").
		First(&user, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	return r.exists(ctx, "email = ?", email, exceptID)
}

func (r *userRepository) DocumentTaken(ctx context.Context, document string, exceptID uint) (bool, error) {
	return r.exists(ctx, "document_number = ?", document, exceptID)
}

// exists looks at soft-deleted rows too, since the unique index still holds them.
func (r *userRepository) exists(ctx context.Context, cond string, value string, exceptID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Unscoped().Model(&models.User{}).Where(cond, value)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).
		Model(user).
		Select("Name", "Email", "Password", "UserTypeID", "DocumentTypeID", "DocumentNumber").
		Updates(user).Error
	if err != nil {
		return translate(err)
	}
	r.invalidate(ctx, user.ID)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *userRepository) IncrementTokenVersion(ctx context.Context, userID uint) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("token_version", gorm.Expr("token_version + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	r.invalidate(ctx, userID)
	return nil
}

func (r *userRepository) List(ctx context.Context, offset, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Wallet").
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) CountByUserType(ctx context.Context, userTypeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&models.User{}).Where("user_type_id = ?", userTypeID).Count(&count).Error
	return count, err
}

func (r *userRepository) CountByDocumentType(ctx context.Context, documentTypeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&models.User{}).Where("document_type_id = ?", documentTypeID).Count(&count).Error
	return count, err
}

func (r *userRepository) invalidate(ctx context.Context, id uint) {
	if err := r.cache.InvalidateUser(ctx, id); err != nil {
		r.log.Warn("failed to invalidate user cache", zap.Uint("user_id", id), zap.Error(err))
	}
}
