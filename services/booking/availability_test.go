package booking

import (
	"context"
	"testing"

	"osmeet/config"
	"osmeet/models"
	"osmeet/services/platform"
)

func TestResolveHostSkipsOccupied(t *testing.T) {
	env := newTestEnv()
	env.repo.add(activeMeeting("m1", "h1", "2026-03-10", 9*60, 10*60))

	w := models.Window{Date: "2026-03-10", Start: 9*60 + 15, End: 9*60 + 45}
	for i := 0; i < 10; i++ {
		h, err := env.engine.Availability.ResolveHost(context.Background(), platform.Zoom, w)
		if err != nil {
			t.Fatalf("ResolveHost returned error: %v", err)
		}
		if h.ID != "h2" {
			t.Fatalf("ResolveHost picked occupied host %s", h.ID)
		}
	}
}

func TestResolveHostAllBusy(t *testing.T) {
	env := newTestEnv()
	env.repo.add(activeMeeting("m1", "h1", "2026-03-10", 9*60, 10*60))
	env.repo.add(activeMeeting("m2", "h2", "2026-03-10", 9*60, 10*60))

	w := models.Window{Date: "2026-03-10", Start: 9*60 + 15, End: 9*60 + 45}
	_, err := env.engine.Availability.ResolveHost(context.Background(), platform.Zoom, w)
	if !IsCode(err, CodeNoHostAvailable) {
		t.Errorf("ResolveHost error = %v, want code %s", err, CodeNoHostAvailable)
	}
}

func TestResolveHostIgnoresOtherDaysAndCancelled(t *testing.T) {
	env := newTestEnv(config.HostAccount{ID: "h1", Platform: platform.Zoom, Credential: "c"})
	env.repo.add(activeMeeting("m1", "h1", "2026-03-11", 9*60, 10*60)) // other day
	cancelled := activeMeeting("m2", "h1", "2026-03-10", 9*60, 10*60)
	cancelled.Status = models.MeetingCancelled
	env.repo.add(cancelled)

	w := models.Window{Date: "2026-03-10", Start: 9*60 + 15, End: 9*60 + 45}
	h, err := env.engine.Availability.ResolveHost(context.Background(), platform.Zoom, w)
	if err != nil {
		t.Fatalf("ResolveHost returned error: %v", err)
	}
	if h.ID != "h1" {
		t.Errorf("ResolveHost = %s, want h1", h.ID)
	}
}

func TestResolveHostUnknownPlatform(t *testing.T) {
	env := newTestEnv()
	w := models.Window{Date: "2026-03-10", Start: 9 * 60, End: 10 * 60}
	_, err := env.engine.Availability.ResolveHost(context.Background(), "facetime", w)
	if !IsCode(err, CodeUnknownPlatform) {
		t.Errorf("ResolveHost error = %v, want code %s", err, CodeUnknownPlatform)
	}
}

func TestResolveHostSpreadsAcrossPool(t *testing.T) {
	env := newTestEnv()
	w := models.Window{Date: "2026-03-10", Start: 9 * 60, End: 10 * 60}

	seen := map[string]bool{}
	for i := 0; i < 200 && len(seen) < 2; i++ {
		h, err := env.engine.Availability.ResolveHost(context.Background(), platform.Zoom, w)
		if err != nil {
			t.Fatalf("ResolveHost returned error: %v", err)
		}
		seen[h.ID] = true
	}
	if !seen["h1"] || !seen["h2"] {
		t.Errorf("selection never left one host: seen = %v", seen)
	}
}
