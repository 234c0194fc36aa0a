package repositories

import (
	"context"
	"fmt"

	"simplepay/internal/models"

	"gorm.io/gorm"
)

// LookupRepository stores small named reference rows such as user types
// and document types.
type LookupRepository[T any] interface {
	Create(ctx context.Context, row *T) error
	GetByID(ctx context.Context, id uint) (*T, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, row *T) error
	Delete(ctx context.Context, id uint) error
	NameTaken(ctx context.Context, name string, exceptID uint) (bool, error)
}

type UserTypeRepository = LookupRepository[models.UserType]
type DocumentTypeRepository = LookupRepository[models.DocumentType]

type lookupRepository[T any] struct {
	db *gorm.DB
}

func NewUserTypeRepository(db *gorm.DB) UserTypeRepository {
	return &lookupRepository[models.UserType]{db: db}
}

func NewDocumentTypeRepository(db *gorm.DB) DocumentTypeRepository {
	return &lookupRepository[models.DocumentType]{db: db}
}

func (r *lookupRepository[T]) Create(ctx context.Context, row *T) error {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("create lookup row: %w", translate(err))
	}
	return nil
}

func (r *lookupRepository[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var row T
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

func (r *lookupRepository[T]) List(ctx context.Context) ([]T, error) {
	var rows []T
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *lookupRepository[T]) Update(ctx context.Context, row *T) error {
	if err := r.db.WithContext(ctx).Model(row).Select("Name", "Description").Updates(row).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *lookupRepository[T]) Delete(ctx context.Context, id uint) error {
	var row T
	result := r.db.WithContext(ctx).Delete(&row, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *lookupRepository[T]) NameTaken(ctx context.Context, name string, exceptID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(new(T)).Where("name = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
