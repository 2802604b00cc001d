package collectRepo

import (
	"context"
	"errors"

	"osmeet/models"
)

var ErrNotFound = errors.New("collect not found")

// CollectRepository tracks user favorites on meetings and activities.
type CollectRepository interface {
	Add(ctx context.Context, c *models.Collect) error
	Remove(ctx context.Context, userID, targetType, targetID string) error
	ListByUser(ctx context.Context, userID string) ([]models.Collect, error)
	// ListCollectors returns the ids of users who favorited the target.
	ListCollectors(ctx context.Context, targetType, targetID string) ([]string, error)
	// RemoveByTarget deletes all collects referencing a cancelled target.
	RemoveByTarget(ctx context.Context, targetType, targetID string) error
}
