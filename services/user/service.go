package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	userRepo "osmeet/database/repository/user"
	"osmeet/models"
	"osmeet/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 72 * time.Hour

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// DefaultUserService is the production implementation. Sessions are JWTs
// whose SHA-256 hash is registered in the auth cache; deleting the hash
// revokes the token before expiry.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	AuthCache *redis.Client
	Logger    *zap.Logger
}

func (s *DefaultUserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, userRepo.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         in.Name,
		PasswordHash: string(hash),
		Community:    in.Community,
		CreatedAt:    time.Now(),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (string, *models.User, error) {
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(u.ID, u.Email, sessionTTL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	if err := s.AuthCache.Set(ctx, utils.HashToken(token), u.ID, sessionTTL).Err(); err != nil {
		return "", nil, fmt.Errorf("failed to register session: %w", err)
	}
	return token, u, nil
}

func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultUserService) GetMany(ctx context.Context, ids []string) ([]models.User, error) {
	return s.Repo.GetMany(ctx, ids)
}

func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, id, token string) error {
	return s.Repo.UpdateFCMToken(ctx, id, token)
}

func (s *DefaultUserService) IsSessionActive(ctx context.Context, token string) bool {
	n, err := s.AuthCache.Exists(ctx, utils.HashToken(token)).Result()
	if err != nil {
		s.Logger.Warn("session lookup failed", zap.Error(err))
		return false
	}
	return n > 0
}

func (s *DefaultUserService) RevokeToken(ctx context.Context, token string) error {
	return s.AuthCache.Del(ctx, utils.HashToken(token)).Err()
}
