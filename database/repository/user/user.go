package userRepo

import (
	"context"
	"errors"

	"osmeet/models"
)

var ErrNotFound = errors.New("user not found")

// UserRepository is the persistence gateway for portal accounts.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetMany(ctx context.Context, ids []string) ([]models.User, error)
	UpdateFCMToken(ctx context.Context, id, token string) error
}
