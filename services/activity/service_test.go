package activity

import (
	"context"
	"testing"

	activityRepo "osmeet/database/repository/activity"
	"osmeet/models"

	"go.uber.org/zap"
)

type fakeActivityRepo struct {
	activities map[string]*models.Activity
}

func (r *fakeActivityRepo) Create(_ context.Context, a *models.Activity) error {
	cp := *a
	r.activities[a.ID] = &cp
	return nil
}

func (r *fakeActivityRepo) GetByID(_ context.Context, id string) (*models.Activity, error) {
	if a, ok := r.activities[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, activityRepo.ErrNotFound
}

func (r *fakeActivityRepo) ListByStatus(_ context.Context, community string, status models.ActivityStatus) ([]models.Activity, error) {
	var out []models.Activity
	for _, a := range r.activities {
		if a.Status != status {
			continue
		}
		if community != "" && a.Community != community {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeActivityRepo) SetStatus(_ context.Context, id string, from, to models.ActivityStatus) error {
	a, ok := r.activities[id]
	if !ok || a.Status != from {
		return activityRepo.ErrNotFound
	}
	a.Status = to
	return nil
}

type nopCollects struct {
	removed []string
}

func (c *nopCollects) Add(_ context.Context, _ *models.Collect) error       { return nil }
func (c *nopCollects) Remove(_ context.Context, _, _, _ string) error       { return nil }
func (c *nopCollects) ListByUser(_ context.Context, _ string) ([]models.Collect, error) {
	return nil, nil
}
func (c *nopCollects) ListCollectors(_ context.Context, _, _ string) ([]string, error) {
	return nil, nil
}
func (c *nopCollects) RemoveByTarget(_ context.Context, targetType, targetID string) error {
	c.removed = append(c.removed, targetType+"/"+targetID)
	return nil
}

func newTestService() (*DefaultActivityService, *fakeActivityRepo, *nopCollects) {
	repo := &fakeActivityRepo{activities: make(map[string]*models.Activity)}
	collects := &nopCollects{}
	return &DefaultActivityService{Repo: repo, Collects: collects, Logger: zap.NewNop()}, repo, collects
}

func TestLifecycle(t *testing.T) {
	svc, _, collects := newTestService()
	ctx := context.Background()
	sponsor := models.Actor{UserID: "u1"}

	a, err := svc.CreateDraft(ctx, &models.Activity{
		Community: "openeuler", Title: "Summit", Date: "2026-05-01", SponsorID: "u1",
	})
	if err != nil {
		t.Fatalf("CreateDraft returned error: %v", err)
	}
	if a.Status != models.ActivityDraft {
		t.Errorf("Status = %s, want draft", a.Status)
	}

	// Cancel is only valid from published; from draft it resolves NotFound.
	if err := svc.Cancel(ctx, a.ID, sponsor); err != ErrNotFound {
		t.Errorf("Cancel on draft = %v, want ErrNotFound", err)
	}

	if err := svc.Publish(ctx, a.ID, sponsor); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	got, _ := svc.Get(ctx, a.ID)
	if got.Status != models.ActivityPublished {
		t.Errorf("Status = %s, want published", got.Status)
	}

	// Double publish resolves NotFound via the guarded transition.
	if err := svc.Publish(ctx, a.ID, sponsor); err != ErrNotFound {
		t.Errorf("second Publish = %v, want ErrNotFound", err)
	}

	if err := svc.Cancel(ctx, a.ID, sponsor); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	got, _ = svc.Get(ctx, a.ID)
	if got.Status != models.ActivityCancelled {
		t.Errorf("Status = %s, want cancelled", got.Status)
	}
	if len(collects.removed) != 1 {
		t.Errorf("collect cleanup calls = %d, want 1", len(collects.removed))
	}
}

func TestPublishForbidden(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	a, _ := svc.CreateDraft(ctx, &models.Activity{
		Community: "openeuler", Title: "Summit", Date: "2026-05-01", SponsorID: "u1",
	})

	if err := svc.Publish(ctx, a.ID, models.Actor{UserID: "stranger"}); err != ErrForbidden {
		t.Errorf("Publish by stranger = %v, want ErrForbidden", err)
	}
	if err := svc.Publish(ctx, a.ID, models.Actor{UserID: "stranger", Admin: true}); err != nil {
		t.Errorf("Publish by admin returned error: %v", err)
	}
}

func TestListDraftsScopedToSponsor(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	svc.CreateDraft(ctx, &models.Activity{Community: "openeuler", Title: "A", Date: "2026-05-01", SponsorID: "u1"})
	svc.CreateDraft(ctx, &models.Activity{Community: "openeuler", Title: "B", Date: "2026-05-02", SponsorID: "u2"})

	mine, err := svc.ListDrafts(ctx, "openeuler", models.Actor{UserID: "u1"})
	if err != nil {
		t.Fatalf("ListDrafts returned error: %v", err)
	}
	if len(mine) != 1 || mine[0].SponsorID != "u1" {
		t.Errorf("non-admin sees %v, want only own drafts", mine)
	}

	all, err := svc.ListDrafts(ctx, "openeuler", models.Actor{UserID: "admin", Admin: true})
	if err != nil {
		t.Fatalf("ListDrafts returned error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("admin sees %d drafts, want 2", len(all))
	}
}
