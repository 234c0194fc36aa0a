// Package lookup manages the reference rows users point at: user types and
// document types.
package lookup

import (
	"context"
	"errors"

	apperrors "simplepay/internal/errors"
	"simplepay/internal/models"
	"simplepay/internal/repositories"
	"simplepay/internal/validation"
)

// UsageCounter reports how many users reference a lookup row.
type UsageCounter func(ctx context.Context, id uint) (int64, error)

type Service[T any] interface {
	Create(ctx context.Context, name, description string) (*T, error)
	Get(ctx context.Context, id uint) (*T, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, id uint, name, description *string) (*T, error)
	Delete(ctx context.Context, id uint) error
}

type service[T any, PT interface {
	*T
	models.Lookup
}] struct {
	repo     repositories.LookupRepository[T]
	inUse    UsageCounter
	notFound *apperrors.DomainError
}

func NewUserTypeService(repo repositories.UserTypeRepository, users repositories.UserRepository) Service[models.UserType] {
	return &service[models.UserType, *models.UserType]{
		repo:     repo,
		inUse:    users.CountByUserType,
		notFound: apperrors.ErrNotFound.WithMessage("User type not found"),
	}
}

func NewDocumentTypeService(repo repositories.DocumentTypeRepository, users repositories.UserRepository) Service[models.DocumentType] {
	return &service[models.DocumentType, *models.DocumentType]{
		repo:     repo,
		inUse:    users.CountByDocumentType,
		notFound: apperrors.ErrNotFound.WithMessage("Document type not found"),
	}
}

func (s *service[T, PT]) Create(ctx context.Context, name, description string) (*T, error) {
	if err := s.checkName(ctx, name, 0); err != nil {
		return nil, err
	}

	row := new(T)
	PT(row).SetFields(name, description)
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, s.translate(err)
	}
	return row, nil
}

func (s *service[T, PT]) Get(ctx context.Context, id uint) (*T, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.translate(err)
	}
	return row, nil
}

func (s *service[T, PT]) List(ctx context.Context) ([]T, error) {
	return s.repo.List(ctx)
}

func (s *service[T, PT]) Update(ctx context.Context, id uint, name, description *string) (*T, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	newName, newDescription := PT(row).Fields()
	if name != nil {
		newName = *name
	}
	if description != nil {
		newDescription = *description
	}
	if err := s.checkName(ctx, newName, id); err != nil {
		return nil, err
	}

	PT(row).SetFields(newName, newDescription)
	if err := s.repo.Update(ctx, row); err != nil {
		return nil, s.translate(err)
	}
	return row, nil
}

func (s *service[T, PT]) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.inUse(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.ErrInUse
	}
	return s.translate(s.repo.Delete(ctx, id))
}

func (s *service[T, PT]) checkName(ctx context.Context, name string, exceptID uint) error {
	taken, err := s.repo.NameTaken(ctx, name, exceptID)
	if err != nil {
		return err
	}
	v := validation.New()
	v.Unique("name", taken)
	return v.Err()
}

func (s *service[T, PT]) translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrRecordNotFound):
		return s.notFound
	case errors.Is(err, repositories.ErrDuplicate):
		v := validation.New()
		v.Unique("name", true)
		return v.Err()
	default:
		return err
	}
}
