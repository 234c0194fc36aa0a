package user

import (
	"context"
	"errors"
	"fmt"

	apperrors "simplepay/internal/errors"
	"simplepay/internal/models"
	"simplepay/internal/repositories"
	"simplepay/internal/validation"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// CreateInput holds the fields of a new user. Balance seeds the wallet.
type CreateInput struct {
	Name           string
	Email          string
	Password       string
	UserTypeID     uint
	DocumentTypeID uint
	DocumentNumber string
	Balance        decimal.Decimal
}

// UpdateInput holds the fields to change; nil fields are left untouched.
type UpdateInput struct {
	Name           *string
	Email          *string
	Password       *string
	UserTypeID     *uint
	DocumentTypeID *uint
	DocumentNumber *string
}

type Service interface {
	Create(ctx context.Context, in CreateInput) (*models.User, error)
	Get(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context, offset, limit int) ([]models.User, int64, error)
	Update(ctx context.Context, id uint, in UpdateInput) (*models.User, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	userRepo         repositories.UserRepository
	userTypeRepo     repositories.UserTypeRepository
	documentTypeRepo repositories.DocumentTypeRepository
	log              *zap.Logger
}

func NewService(
	userRepo repositories.UserRepository,
	userTypeRepo repositories.UserTypeRepository,
	documentTypeRepo repositories.DocumentTypeRepository,
	log *zap.Logger,
) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		userRepo:         userRepo,
		userTypeRepo:     userTypeRepo,
		documentTypeRepo: documentTypeRepo,
		log:              log,
	}
}

func (s *service) Create(ctx context.Context, in CreateInput) (*models.User, error) {
	v := validation.New()
	if err := s.checkReferences(ctx, v, in.UserTypeID, in.DocumentTypeID); err != nil {
		return nil, err
	}
	v.Document("document_number", in.DocumentTypeID, in.DocumentNumber)
	if err := s.checkUnique(ctx, v, in.Email, in.DocumentNumber, 0); err != nil {
		return nil, err
	}
	v.Check(!in.Balance.IsNegative(), "balance", "The balance must be at least 0.")
	v.Check(validation.IsMoney(in.Balance), "balance", "The balance may not have more than 2 decimal places.")
	if err := v.Err(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:           in.Name,
		Email:          in.Email,
		Password:       string(hash),
		UserTypeID:     in.UserTypeID,
		DocumentTypeID: in.DocumentTypeID,
		DocumentNumber: in.DocumentNumber,
		TokenVersion:   1,
	}
	wallet := &models.Wallet{Balance: in.Balance}

	if err := s.userRepo.Create(ctx, user, wallet); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// Lost a race with a concurrent create.
			v.AddError("email", "The email or document number has already been taken.")
			return nil, v.Err()
		}
		return nil, err
	}

	s.log.Info("user created", zap.Uint("user_id", user.ID), zap.Uint("user_type_id", user.UserTypeID))
	return s.Get(ctx, user.ID)
}

func (s *service) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *service) List(ctx context.Context, offset, limit int) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, offset, limit)
}

func (s *service) Update(ctx context.Context, id uint, in UpdateInput) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.UserTypeID != nil {
		user.UserTypeID = *in.UserTypeID
	}
	if in.DocumentTypeID != nil {
		user.DocumentTypeID = *in.DocumentTypeID
	}
	if in.DocumentNumber != nil {
		user.DocumentNumber = *in.DocumentNumber
	}

	v := validation.New()
	if err := s.checkReferences(ctx, v, user.UserTypeID, user.DocumentTypeID); err != nil {
		return nil, err
	}
	if in.DocumentNumber != nil || in.DocumentTypeID != nil {
		v.Document("document_number", user.DocumentTypeID, user.DocumentNumber)
	}
	if err := s.checkUnique(ctx, v, user.Email, user.DocumentNumber, user.ID); err != nil {
		return nil, err
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.Password = string(hash)
	}

	// Drop the preloaded relations so they reflect the new ids on reload.
	user.UserType = nil
	user.DocumentType = nil
	user.Wallet = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return err
	}
	s.log.Info("user deleted", zap.Uint("user_id", id))
	return nil
}

func (s *service) checkReferences(ctx context.Context, v *validation.Validator, userTypeID, documentTypeID uint) error {
	if _, err := s.userTypeRepo.GetByID(ctx, userTypeID); err != nil {
		if !errors.Is(err, repositories.ErrRecordNotFound) {
			return err
		}
		v.Exists("user_type_id", false)
	}
	if _, err := s.documentTypeRepo.GetByID(ctx, documentTypeID); err != nil {
		if !errors.Is(err, repositories.ErrRecordNotFound) {
			return err
		}
		v.Exists("document_type_id", false)
	}
	return nil
}

func (s *service) checkUnique(ctx context.Context, v *validation.Validator, email, document string, exceptID uint) error {
	taken, err := s.userRepo.EmailTaken(ctx, email, exceptID)
	if err != nil {
		return err
	}
	v.Unique("email", taken)

	taken, err = s.userRepo.DocumentTaken(ctx, document, exceptID)
	if err != nil {
		return err
	}
	v.Unique("document_number", taken)
	return nil
}
