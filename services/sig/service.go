package sig

import (
	"context"
	"fmt"
	"time"

	sigRepo "osmeet/database/repository/sig"
	"osmeet/models"

	"github.com/google/uuid"
)

// SIGService manages special-interest groups. Creation and deletion are
// admin operations; maintainers may update their own group.
type SIGService interface {
	Create(ctx context.Context, s *models.SIG, actor models.Actor) (*models.SIG, error)
	Get(ctx context.Context, id string) (*models.SIG, error)
	ListByCommunity(ctx context.Context, community string) ([]models.SIG, error)
	Update(ctx context.Context, s *models.SIG, actor models.Actor) error
	Delete(ctx context.Context, id string, actor models.Actor) error
}

var ErrForbidden = fmt.Errorf("not allowed")

type DefaultSIGService struct {
	Repo sigRepo.SIGRepository
}

func (svc *DefaultSIGService) Create(ctx context.Context, s *models.SIG, actor models.Actor) (*models.SIG, error) {
	if !actor.Admin {
		return nil, ErrForbidden
	}
	s.ID = uuid.New().String()
	s.CreatedAt = time.Now()
	if err := svc.Repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (svc *DefaultSIGService) Get(ctx context.Context, id string) (*models.SIG, error) {
	return svc.Repo.GetByID(ctx, id)
}

func (svc *DefaultSIGService) ListByCommunity(ctx context.Context, community string) ([]models.SIG, error) {
	return svc.Repo.ListByCommunity(ctx, community)
}

func (svc *DefaultSIGService) Update(ctx context.Context, s *models.SIG, actor models.Actor) error {
	if !actor.Admin && !isMaintainer(s, actor.UserID) {
		return ErrForbidden
	}
	return svc.Repo.Update(ctx, s)
}

func (svc *DefaultSIGService) Delete(ctx context.Context, id string, actor models.Actor) error {
	if !actor.Admin {
		return ErrForbidden
	}
	return svc.Repo.Delete(ctx, id)
}

func isMaintainer(s *models.SIG, userID string) bool {
	for _, id := range s.Maintainers {
		if id == userID {
			return true
		}
	}
	return false
}
