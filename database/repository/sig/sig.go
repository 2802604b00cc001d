package sigRepo

import (
	"context"
	"errors"

	"osmeet/models"
)

var ErrNotFound = errors.New("sig not found")

// SIGRepository is the persistence gateway for special-interest groups.
type SIGRepository interface {
	Create(ctx context.Context, s *models.SIG) error
	GetByID(ctx context.Context, id string) (*models.SIG, error)
	ListByCommunity(ctx context.Context, community string) ([]models.SIG, error)
	Update(ctx context.Context, s *models.SIG) error
	Delete(ctx context.Context, id string) error
}
