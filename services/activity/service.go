package activity

import (
	"context"
	"errors"
	"time"

	activityRepo "osmeet/database/repository/activity"
	collectRepo "osmeet/database/repository/collect"
	"osmeet/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotFound  = errors.New("activity not found")
	ErrForbidden = errors.New("not allowed")
)

// ActivityService drives the draft -> published -> cancelled lifecycle of
// community events.
type ActivityService interface {
	CreateDraft(ctx context.Context, a *models.Activity) (*models.Activity, error)
	Publish(ctx context.Context, id string, actor models.Actor) error
	Cancel(ctx context.Context, id string, actor models.Actor) error
	Get(ctx context.Context, id string) (*models.Activity, error)
	ListPublished(ctx context.Context, community string) ([]models.Activity, error)
	ListDrafts(ctx context.Context, community string, actor models.Actor) ([]models.Activity, error)
}

type DefaultActivityService struct {
	Repo     activityRepo.ActivityRepository
	Collects collectRepo.CollectRepository
	Logger   *zap.Logger
}

func (s *DefaultActivityService) CreateDraft(ctx context.Context, a *models.Activity) (*models.Activity, error) {
	a.ID = uuid.New().String()
	a.Status = models.ActivityDraft
	a.CreatedAt = time.Now()
	if err := s.Repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *DefaultActivityService) Publish(ctx context.Context, id string, actor models.Actor) error {
	a, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Admin && actor.UserID != a.SponsorID {
		return ErrForbidden
	}
	if err := s.Repo.SetStatus(ctx, id, models.ActivityDraft, models.ActivityPublished); err != nil {
		if errors.Is(err, activityRepo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *DefaultActivityService) Cancel(ctx context.Context, id string, actor models.Actor) error {
	a, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Admin && actor.UserID != a.SponsorID {
		return ErrForbidden
	}
	if err := s.Repo.SetStatus(ctx, id, models.ActivityPublished, models.ActivityCancelled); err != nil {
		if errors.Is(err, activityRepo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.Collects.RemoveByTarget(ctx, models.CollectActivity, id); err != nil {
		s.Logger.Warn("failed to remove collects of cancelled activity",
			zap.String("activityID", id), zap.Error(err))
	}
	return nil
}

func (s *DefaultActivityService) Get(ctx context.Context, id string) (*models.Activity, error) {
	return s.load(ctx, id)
}

func (s *DefaultActivityService) ListPublished(ctx context.Context, community string) ([]models.Activity, error) {
	return s.Repo.ListByStatus(ctx, community, models.ActivityPublished)
}

func (s *DefaultActivityService) ListDrafts(ctx context.Context, community string, actor models.Actor) ([]models.Activity, error) {
	drafts, err := s.Repo.ListByStatus(ctx, community, models.ActivityDraft)
	if err != nil {
		return nil, err
	}
	if actor.Admin {
		return drafts, nil
	}
	own := drafts[:0:0]
	for _, d := range drafts {
		if d.SponsorID == actor.UserID {
			own = append(own, d)
		}
	}
	return own, nil
}

func (s *DefaultActivityService) load(ctx context.Context, id string) (*models.Activity, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, activityRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}
