package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"simplepay/internal/config"
	apperrors "simplepay/internal/errors"
	"simplepay/internal/models"
	"simplepay/internal/repositories"
	"simplepay/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresIn int64        `json:"expires_in"`
	User      *models.User `json:"user"`
}

type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Me(ctx context.Context, userID uint) (*models.User, error)
	Logout(ctx context.Context, userID uint) error

	// Authenticate validates a bearer token and checks that it has not been
	// revoked by a logout.
	Authenticate(ctx context.Context, token string) (*models.UserClaims, error)
}

type service struct {
	userRepo repositories.UserRepository
	jwt      config.JWTConfig
	log      *zap.Logger
}

func NewService(userRepo repositories.UserRepository, jwtCfg config.JWTConfig, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		userRepo: userRepo,
		jwt:      jwtCfg,
		log:      log,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			s.log.Info("login failed: unknown email")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.log.Info("login failed: incorrect password", zap.Uint("user_id", user.ID))
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := utils.GenerateToken(s.jwt, user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	full, err := s.userRepo.GetWithRelations(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load user relations: %w", err)
	}

	return &LoginResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(time.Until(expiresAt).Seconds()),
		User:      full,
	}, nil
}

func (s *service) Me(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetWithRelations(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *service) Logout(ctx context.Context, userID uint) error {
	if err := s.userRepo.IncrementTokenVersion(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return apperrors.ErrUnauthenticated
		}
		return err
	}
	return nil
}

func (s *service) Authenticate(ctx context.Context, token string) (*models.UserClaims, error) {
	claims, err := utils.ParseToken(s.jwt, token)
	if err != nil {
		s.log.Debug("token rejected", zap.Error(err))
		return nil, apperrors.ErrUnauthenticated
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, fmt.Errorf("load token user: %w", err)
	}

	if user.TokenVersion != claims.TokenVersion {
		s.log.Debug("token version mismatch",
			zap.Uint("user_id", user.ID),
			zap.Int("token_version", claims.TokenVersion),
			zap.Int("current_version", user.TokenVersion),
		)
		return nil, apperrors.ErrUnauthenticated
	}
	return claims, nil
}
