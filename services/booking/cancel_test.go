package booking

import (
	"context"
	"errors"
	"testing"

	"osmeet/models"
)

func seedCancellable(env *testEnv) models.Meeting {
	// Starts 2026-03-10 09:00, well past the 60 minute guard at the test clock.
	m := activeMeeting("m1", "h1", "2026-03-10", 9*60, 10*60)
	env.repo.add(m)
	return m
}

func TestCancelHappyPath(t *testing.T) {
	env := newTestEnv()
	m := seedCancellable(env)
	env.collects.Add(context.Background(), &models.Collect{
		UserID: "fan-1", TargetType: models.CollectMeeting, TargetID: m.ID,
	})
	env.collects.Add(context.Background(), &models.Collect{
		UserID: "fan-2", TargetType: models.CollectMeeting, TargetID: m.ID,
	})

	actor := models.Actor{UserID: m.SponsorID}
	if err := env.engine.Cancel(context.Background(), m.ID, actor); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}

	got, err := env.repo.GetByID(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("GetByID after cancel: %v", err)
	}
	if got.Status != models.MeetingCancelled {
		t.Errorf("Status = %s, want cancelled", got.Status)
	}

	if _, cancelled := env.client.counts(); cancelled != 1 {
		t.Errorf("remote cancel calls = %d, want 1", cancelled)
	}

	// Collect rows referencing the meeting are gone.
	left, _ := env.collects.ListCollectors(context.Background(), models.CollectMeeting, m.ID)
	if len(left) != 0 {
		t.Errorf("collects left after cancel = %v, want none", left)
	}

	// Sponsor and both collectors are notified once each.
	if len(env.notifier.cancelled) != 1 {
		t.Fatalf("queued %d cancellation notifications, want 1", len(env.notifier.cancelled))
	}
	recipients := env.notifier.cancelled[0]
	want := map[string]bool{"user-1": true, "fan-1": true, "fan-2": true}
	if len(recipients) != len(want) {
		t.Fatalf("recipients = %v, want sponsor plus collectors", recipients)
	}
	for _, id := range recipients {
		if !want[id] {
			t.Errorf("unexpected recipient %q in %v", id, recipients)
		}
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	env := newTestEnv()
	m := seedCancellable(env)
	actor := models.Actor{UserID: m.SponsorID}

	if err := env.engine.Cancel(context.Background(), m.ID, actor); err != nil {
		t.Fatalf("first Cancel returned error: %v", err)
	}
	err := env.engine.Cancel(context.Background(), m.ID, actor)
	if !IsCode(err, CodeNotFound) {
		t.Errorf("second Cancel error = %v, want code %s", err, CodeNotFound)
	}
	if _, cancelled := env.client.counts(); cancelled != 1 {
		t.Errorf("remote cancel calls = %d, want 1 (no second remote call)", cancelled)
	}
}

func TestCancelUnknownMeeting(t *testing.T) {
	env := newTestEnv()
	err := env.engine.Cancel(context.Background(), "nope", models.Actor{UserID: "user-1"})
	if !IsCode(err, CodeNotFound) {
		t.Errorf("Cancel error = %v, want code %s", err, CodeNotFound)
	}
}

func TestCancelForbiddenForStrangers(t *testing.T) {
	env := newTestEnv()
	m := seedCancellable(env)

	err := env.engine.Cancel(context.Background(), m.ID, models.Actor{UserID: "someone-else"})
	if !IsCode(err, CodeForbidden) {
		t.Fatalf("Cancel error = %v, want code %s", err, CodeForbidden)
	}
	if _, cancelled := env.client.counts(); cancelled != 0 {
		t.Errorf("forbidden cancel reached the platform, calls = %d", cancelled)
	}

	// An admin who is not the sponsor may cancel.
	if err := env.engine.Cancel(context.Background(), m.ID, models.Actor{UserID: "someone-else", Admin: true}); err != nil {
		t.Errorf("admin Cancel returned error: %v", err)
	}
}

func TestCancelGuardWindow(t *testing.T) {
	env := newTestEnv()
	// Starts 30 minutes after the test clock, inside the 60 minute guard.
	m := activeMeeting("m1", "h1", "2026-03-01", 8*60+30, 9*60+30)
	env.repo.add(m)

	err := env.engine.Cancel(context.Background(), m.ID, models.Actor{UserID: m.SponsorID})
	if !IsCode(err, CodeTooLateToCancel) {
		t.Fatalf("Cancel error = %v, want code %s", err, CodeTooLateToCancel)
	}
	if _, cancelled := env.client.counts(); cancelled != 0 {
		t.Errorf("guarded cancel reached the platform, calls = %d", cancelled)
	}

	got, _ := env.repo.GetByID(context.Background(), m.ID)
	if got.Status != models.MeetingActive {
		t.Errorf("Status = %s, want still active", got.Status)
	}
}

func TestCancelRefreshesListings(t *testing.T) {
	env := newTestEnv()
	m := seedCancellable(env)
	ctx := context.Background()

	// Warm the cache with the meeting still listed.
	before, err := env.query.ListUpcoming(ctx, "openeuler", 30)
	if err != nil {
		t.Fatalf("ListUpcoming returned error: %v", err)
	}
	if len(before["2026-03-10"]) != 1 {
		t.Fatalf("listing before cancel has %d meetings, want 1", len(before["2026-03-10"]))
	}

	if err := env.engine.Cancel(ctx, m.ID, models.Actor{UserID: m.SponsorID}); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}

	after, err := env.query.ListUpcoming(ctx, "openeuler", 30)
	if err != nil {
		t.Fatalf("ListUpcoming returned error: %v", err)
	}
	if len(after["2026-03-10"]) != 0 {
		t.Errorf("cancelled meeting still listed: %v", after["2026-03-10"])
	}
}

func TestSetReplayURL(t *testing.T) {
	env := newTestEnv()
	m := seedCancellable(env)

	err := env.engine.SetReplayURL(context.Background(), m.ID, "https://example.com/replay/1", models.Actor{UserID: "u1"})
	if !IsCode(err, CodeForbidden) {
		t.Errorf("non-admin SetReplayURL error = %v, want code %s", err, CodeForbidden)
	}

	admin := models.Actor{UserID: "admin", Admin: true}
	if err := env.engine.SetReplayURL(context.Background(), m.ID, "https://example.com/replay/1", admin); err != nil {
		t.Fatalf("SetReplayURL returned error: %v", err)
	}
	got, _ := env.repo.GetByID(context.Background(), m.ID)
	if got.ReplayURL != "https://example.com/replay/1" {
		t.Errorf("ReplayURL = %q, want the recorded link", got.ReplayURL)
	}

	err = env.engine.SetReplayURL(context.Background(), "nope", "https://example.com/replay/2", admin)
	if !IsCode(err, CodeNotFound) {
		t.Errorf("SetReplayURL on unknown meeting error = %v, want code %s", err, CodeNotFound)
	}
}

func TestCancelRemoteFailureKeepsMeetingActive(t *testing.T) {
	env := newTestEnv()
	m := seedCancellable(env)
	env.client.cancelErr = errors.New("platform down")

	err := env.engine.Cancel(context.Background(), m.ID, models.Actor{UserID: m.SponsorID})
	if !IsCode(err, CodeRemoteCancelFailed) {
		t.Fatalf("Cancel error = %v, want code %s", err, CodeRemoteCancelFailed)
	}

	got, _ := env.repo.GetByID(context.Background(), m.ID)
	if got.Status != models.MeetingActive {
		t.Errorf("Status = %s, want active (retryable)", got.Status)
	}
	if len(env.notifier.cancelled) != 0 {
		t.Errorf("queued %d notifications for a failed cancel, want 0", len(env.notifier.cancelled))
	}

	// Retry succeeds once the platform recovers.
	env.client.cancelErr = nil
	if err := env.engine.Cancel(context.Background(), m.ID, models.Actor{UserID: m.SponsorID}); err != nil {
		t.Errorf("retry Cancel returned error: %v", err)
	}
}
