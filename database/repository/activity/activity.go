package activityRepo

import (
	"context"
	"errors"

	"osmeet/models"
)

var ErrNotFound = errors.New("activity not found")

// ActivityRepository is the persistence gateway for community events.
type ActivityRepository interface {
	Create(ctx context.Context, a *models.Activity) error
	GetByID(ctx context.Context, id string) (*models.Activity, error)
	ListByStatus(ctx context.Context, community string, status models.ActivityStatus) ([]models.Activity, error)
	// SetStatus moves an activity between lifecycle states; from guards the
	// transition so publish/cancel races resolve via ErrNotFound.
	SetStatus(ctx context.Context, id string, from, to models.ActivityStatus) error
}
