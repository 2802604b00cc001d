package booking

import (
	"context"
	"errors"
	"time"

	meetingRepo "osmeet/database/repository/meeting"
	"osmeet/models"

	"go.uber.org/zap"
)

// Cancel reverses a booking. The remote platform is cancelled first; only on
// remote success is the local row soft-deleted, so a failed remote cancel
// leaves the meeting active and the caller retries. Collect references are
// removed afterwards and the users who favorited the meeting are notified.
func (s *DefaultSchedulingEngine) Cancel(ctx context.Context, meetingID string, actor models.Actor) error {
	m, err := s.Repo.GetByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, meetingRepo.ErrNotFound) {
			return NewError(CodeNotFound, "meeting not found")
		}
		return NewError(CodeInternal, "failed to load meeting")
	}
	if m.Status != models.MeetingActive {
		// Already cancelled; idempotent, and no second remote call.
		return NewError(CodeNotFound, "meeting not found")
	}

	if !actor.Admin && actor.UserID != m.SponsorID {
		return NewError(CodeForbidden, "only the sponsor or an admin may cancel a meeting")
	}

	guard := time.Duration(s.CancelGuard) * time.Minute
	if m.Window().StartTime().Sub(s.Now()) < guard {
		return NewError(CodeTooLateToCancel, "too close to the meeting start to cancel")
	}

	host, err := s.Pool.Lookup(m.Platform, m.HostID)
	if err != nil {
		s.Logger.Error("cancel: host missing from pool",
			zap.String("platform", m.Platform), zap.String("hostID", m.HostID))
		return NewError(CodeInternal, "meeting host is no longer configured")
	}
	client, err := s.Platforms.For(m.Platform)
	if err != nil {
		return NewError(CodeInternal, "meeting platform is no longer configured")
	}

	if err := client.CancelMeeting(ctx, m.MID, host.Credential); err != nil {
		s.Logger.Warn("remote meeting cancel failed",
			zap.String("platform", m.Platform),
			zap.String("mid", m.MID),
			zap.Error(err))
		return NewError(CodeRemoteCancelFailed, "meeting platform refused the cancellation, please retry")
	}

	if err := s.Repo.CancelMeeting(ctx, m.ID); err != nil {
		if errors.Is(err, meetingRepo.ErrNotFound) {
			// A concurrent cancel won; the remote meeting is gone either way.
			return NewError(CodeNotFound, "meeting not found")
		}
		s.Logger.Error("remote meeting cancelled but local soft delete failed",
			zap.String("meetingID", m.ID),
			zap.String("mid", m.MID),
			zap.Error(err))
		return NewError(CodeInternal, "failed to record the cancellation")
	}

	s.invalidateLists(ctx, m.Community)

	collectors, err := s.CollectRepo.ListCollectors(ctx, models.CollectMeeting, m.ID)
	if err != nil {
		s.Logger.Warn("failed to list collectors of cancelled meeting",
			zap.String("meetingID", m.ID), zap.Error(err))
	}
	if err := s.CollectRepo.RemoveByTarget(ctx, models.CollectMeeting, m.ID); err != nil {
		s.Logger.Warn("failed to remove collects of cancelled meeting",
			zap.String("meetingID", m.ID), zap.Error(err))
	}

	recipients := append([]string{m.SponsorID}, collectors...)
	if err := s.Notifier.NotifyMeetingCancelled(ctx, m, dedup(recipients)); err != nil {
		s.Logger.Warn("failed to queue cancellation notification",
			zap.String("meetingID", m.ID), zap.Error(err))
	}

	return nil
}

// SetReplayURL attaches the recording replay link to a finished meeting.
func (s *DefaultSchedulingEngine) SetReplayURL(ctx context.Context, meetingID, url string, actor models.Actor) error {
	if !actor.Admin {
		return NewError(CodeForbidden, "only an admin may set the replay link")
	}
	if err := s.Repo.SetReplayURL(ctx, meetingID, url); err != nil {
		if errors.Is(err, meetingRepo.ErrNotFound) {
			return NewError(CodeNotFound, "meeting not found")
		}
		return NewError(CodeInternal, "failed to record the replay link")
	}
	return nil
}

func dedup(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if id != "" && !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}
	return out
}
