package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"osmeet/config"
	collectRepo "osmeet/database/repository/collect"
	meetingRepo "osmeet/database/repository/meeting"
	sigRepo "osmeet/database/repository/sig"
	"osmeet/models"
	"osmeet/services/notification"
	"osmeet/services/platform"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultSchedulingEngine is the production scheduler. One engine serves all
// communities; per-community behavior (allowed platforms, topic prefix)
// comes from the Communities map rather than separate code paths.
type DefaultSchedulingEngine struct {
	Repo         meetingRepo.MeetingRepository
	CollectRepo  collectRepo.CollectRepository
	SigRepo      sigRepo.SIGRepository
	Pool         *HostPool
	Availability *AvailabilityResolver
	Platforms    platform.Registry
	Notifier     notification.Dispatcher
	Lists        ListInvalidator
	Communities  map[string]config.Community
	Horizon      int // max days ahead a meeting may start
	Buffer       int // conflict buffer in minutes
	CancelGuard  int // minutes before start after which cancel is refused
	Logger       *zap.Logger
	Now          func() time.Time // injectable clock
}

func NewDefaultSchedulingEngine(
	repo meetingRepo.MeetingRepository,
	collects collectRepo.CollectRepository,
	sigs sigRepo.SIGRepository,
	pool *HostPool,
	platforms platform.Registry,
	notifier notification.Dispatcher,
	lists ListInvalidator,
	cfg *config.Config,
	logger *zap.Logger,
) *DefaultSchedulingEngine {
	communities := make(map[string]config.Community, len(cfg.Communities))
	for _, c := range cfg.Communities {
		communities[c.Name] = c
	}
	return &DefaultSchedulingEngine{
		Repo:        repo,
		CollectRepo: collects,
		SigRepo:     sigs,
		Pool:        pool,
		Availability: &AvailabilityResolver{
			Pool:   pool,
			Repo:   repo,
			Buffer: cfg.ConflictBufferMinutes,
		},
		Platforms:   platforms,
		Notifier:    notifier,
		Lists:       lists,
		Communities: communities,
		Horizon:     cfg.BookingHorizonDays,
		Buffer:      cfg.ConflictBufferMinutes,
		CancelGuard: cfg.CancelGuardMinutes,
		Logger:      logger,
		Now:         time.Now,
	}
}

// Book runs the booking state machine: validate, reserve a host, create the
// remote meeting, persist. Validation failures and NoHostAvailable leave no
// side effects; a failed remote create persists nothing, so the host stays
// free for the next request.
func (s *DefaultSchedulingEngine) Book(ctx context.Context, req BookRequest) (*models.Meeting, error) {
	w, err := models.NewWindow(req.Date, req.Start, req.End)
	if err != nil {
		return nil, NewError(CodeInvalidWindow, err.Error())
	}
	if w.Start >= w.End {
		return nil, NewError(CodeInvalidWindow, "meeting must end after it starts")
	}

	now := s.Now()
	startAt := w.StartTime()
	if startAt.Before(now) {
		return nil, NewError(CodeInvalidWindow, "meeting starts in the past")
	}
	if startAt.After(now.AddDate(0, 0, s.Horizon)) {
		return nil, NewError(CodeInvalidWindow,
			fmt.Sprintf("meeting starts more than %d days ahead", s.Horizon))
	}

	community, ok := s.Communities[req.Community]
	if !ok {
		return nil, NewError(CodeUnknownCommunity,
			fmt.Sprintf("community %s is not configured", req.Community))
	}
	if !platformAllowed(community, req.Platform) {
		return nil, NewError(CodeUnknownPlatform,
			fmt.Sprintf("platform %s is not enabled for community %s", req.Platform, req.Community))
	}
	topic := community.TopicPrefix + req.Topic

	host, err := s.Availability.ResolveHost(ctx, req.Platform, w)
	if err != nil {
		return nil, err
	}

	client, err := s.Platforms.For(req.Platform)
	if err != nil {
		return nil, NewError(CodeUnknownPlatform, err.Error())
	}

	remote, err := client.CreateMeeting(ctx, platform.CreateRequest{
		Topic:          topic,
		Date:           w.Date,
		Start:          models.FormatClock(w.Start),
		End:            models.FormatClock(w.End),
		HostCredential: host.Credential,
		Record:         req.Record,
	})
	if err != nil {
		s.Logger.Warn("remote meeting create failed",
			zap.String("platform", req.Platform),
			zap.String("hostID", host.ID),
			zap.Error(err))
		return nil, NewError(CodeRemoteCreateFailed, "meeting platform refused the booking")
	}

	m := &models.Meeting{
		ID:        uuid.New().String(),
		MID:       remote.MeetingID,
		Community: req.Community,
		SigID:     req.SigID,
		Platform:  req.Platform,
		HostID:    host.ID,
		Topic:     topic,
		Agenda:    req.Agenda,
		Date:      w.Date,
		Start:     w.Start,
		End:       w.End,
		JoinURL:   remote.JoinURL,
		SponsorID: req.SponsorID,
		Record:    req.Record,
		Status:    models.MeetingActive,
		CreatedAt: now,
	}

	if err := s.Repo.CreateMeetingChecked(ctx, m, s.Buffer); err != nil {
		if errors.Is(err, meetingRepo.ErrHostConflict) {
			// Lost the race for this host. Undo the remote meeting and let
			// the caller retry; availability is derived from persisted rows,
			// so nothing else needs releasing.
			s.cancelRemote(m, host.Credential)
			return nil, NewError(CodeNoHostAvailable, "host was taken by a concurrent booking, please retry")
		}
		// The remote meeting exists but the local row does not. Log enough
		// for manual reconciliation before surfacing the fault.
		s.Logger.Error("meeting persisted remotely but local write failed",
			zap.String("platform", m.Platform),
			zap.String("mid", m.MID),
			zap.String("hostID", m.HostID),
			zap.String("date", m.Date),
			zap.Int("start", m.Start),
			zap.Int("end", m.End),
			zap.Error(err))
		return nil, NewError(CodeInternal, "failed to record the meeting")
	}

	s.invalidateLists(ctx, m.Community)

	if err := s.Notifier.NotifyMeetingCreated(ctx, m, s.notifyAudience(ctx, m)); err != nil {
		s.Logger.Warn("failed to queue creation notification",
			zap.String("meetingID", m.ID), zap.Error(err))
	}

	return m, nil
}

// invalidateLists drops cached listing snapshots after a write. A failed
// invalidation only delays visibility until the cache TTL, so it is logged
// and not surfaced.
func (s *DefaultSchedulingEngine) invalidateLists(ctx context.Context, community string) {
	if s.Lists == nil {
		return
	}
	if err := s.Lists.InvalidateCommunity(ctx, community); err != nil {
		s.Logger.Warn("failed to invalidate meeting listings",
			zap.String("community", community), zap.Error(err))
	}
}

// cancelRemote best-effort cancels a remote meeting that lost the persistence
// race. Uses its own deadline since the request context may already be done.
func (s *DefaultSchedulingEngine) cancelRemote(m *models.Meeting, credential string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := s.Platforms.For(m.Platform)
	if err != nil {
		s.Logger.Error("cannot undo remote meeting, platform client missing",
			zap.String("platform", m.Platform), zap.String("mid", m.MID))
		return
	}
	if err := client.CancelMeeting(ctx, m.MID, credential); err != nil {
		s.Logger.Error("failed to undo remote meeting after lost booking race",
			zap.String("platform", m.Platform),
			zap.String("mid", m.MID),
			zap.Error(err))
	}
}

// notifyAudience is the sponsor plus the SIG maintainers watching the group.
func (s *DefaultSchedulingEngine) notifyAudience(ctx context.Context, m *models.Meeting) []string {
	recipients := []string{m.SponsorID}
	if m.SigID == "" || s.SigRepo == nil {
		return recipients
	}
	sig, err := s.SigRepo.GetByID(ctx, m.SigID)
	if err != nil {
		s.Logger.Warn("could not resolve sig for notification audience",
			zap.String("sigID", m.SigID), zap.Error(err))
		return recipients
	}
	seen := map[string]bool{m.SponsorID: true}
	for _, id := range sig.Maintainers {
		if !seen[id] {
			recipients = append(recipients, id)
			seen[id] = true
		}
	}
	return recipients
}

func platformAllowed(c config.Community, platform string) bool {
	for _, p := range c.Platforms {
		if p == platform {
			return true
		}
	}
	return false
}
