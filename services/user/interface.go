package user

import (
	"context"

	"osmeet/models"
)

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Password  string `json:"password"`
	Community string `json:"community"`
}

// UserService manages portal accounts and sessions.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	// Authenticate verifies credentials and returns a session token.
	Authenticate(ctx context.Context, email, password string) (string, *models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetMany(ctx context.Context, ids []string) ([]models.User, error)
	UpdateFCMToken(ctx context.Context, id, token string) error
	// IsSessionActive reports whether the token hash is still registered,
	// which is how revocation works.
	IsSessionActive(ctx context.Context, token string) bool
	RevokeToken(ctx context.Context, token string) error
}
