package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"simplepay/internal/models"

	"github.com/redis/go-redis/v9"
)

// UserCache is the cache-aside store used by the user repository.
type UserCache interface {
	GetUser(ctx context.Context, id uint) (*models.User, bool, error)
	CacheUser(ctx context.Context, user *models.User) error
	InvalidateUser(ctx context.Context, id uint) error
}

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// cachedUser holds what token checks and transfer rules read. The
// password hash never leaves the database.
type cachedUser struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	UserTypeID     uint      `json:"user_type_id"`
	DocumentTypeID uint      `json:"document_type_id"`
	DocumentNumber string    `json:"document_number"`
	TokenVersion   int       `json:"token_version"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// User caching
func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}
	return s.Set(ctx, s.GenerateKey("user", "id", user.ID), cachedUser{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		UserTypeID:     user.UserTypeID,
		DocumentTypeID: user.DocumentTypeID,
		DocumentNumber: user.DocumentNumber,
		TokenVersion:   user.TokenVersion,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	})
}

func (s *CacheService) GetUser(ctx context.Context, id uint) (*models.User, bool, error) {
	var cu cachedUser
	found, err := s.Get(ctx, s.GenerateKey("user", "id", id), &cu)
	if err != nil || !found {
		return nil, false, err
	}
	return &models.User{
		ID:             cu.ID,
		Name:           cu.Name,
		Email:          cu.Email,
		UserTypeID:     cu.UserTypeID,
		DocumentTypeID: cu.DocumentTypeID,
		DocumentNumber: cu.DocumentNumber,
		TokenVersion:   cu.TokenVersion,
		CreatedAt:      cu.CreatedAt,
		UpdatedAt:      cu.UpdatedAt,
	}, true, nil
}

func (s *CacheService) InvalidateUser(ctx context.Context, id uint) error {
	return s.Delete(ctx, s.GenerateKey("user", "id", id))
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}

// Noop is a UserCache that never stores anything. It is used when redis is
// disabled and in tests.
type Noop struct{}

func (Noop) GetUser(context.Context, uint) (*models.User, bool, error) { return nil, false, nil }
func (Noop) CacheUser(context.Context, *models.User) error              { return nil }
func (Noop) InvalidateUser(context.Context, uint) error                 { return nil }
