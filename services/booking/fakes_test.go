package booking

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"osmeet/config"
	"osmeet/models"
	"osmeet/services/platform"

	meetingRepo "osmeet/database/repository/meeting"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// fakeMeetingRepo is an in-memory MeetingRepository with the same conflict
// and soft-delete semantics as the Mongo implementation.
type fakeMeetingRepo struct {
	mu       sync.Mutex
	meetings []*models.Meeting

	failCreate error // forced CreateMeetingChecked error, if set
}

func (r *fakeMeetingRepo) FindConflicts(_ context.Context, platform string, w models.Window, buffer int) (map[string]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	occupied := make(map[string]struct{})
	for _, m := range r.meetings {
		if m.Status != models.MeetingActive || m.Platform != platform {
			continue
		}
		if m.Window().Overlaps(w, buffer) {
			occupied[m.HostID] = struct{}{}
		}
	}
	return occupied, nil
}

func (r *fakeMeetingRepo) CreateMeetingChecked(_ context.Context, m *models.Meeting, buffer int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	for _, existing := range r.meetings {
		if existing.Status != models.MeetingActive ||
			existing.Platform != m.Platform || existing.HostID != m.HostID {
			continue
		}
		if existing.Window().Overlaps(m.Window(), buffer) {
			return meetingRepo.ErrHostConflict
		}
	}
	cp := *m
	r.meetings = append(r.meetings, &cp)
	return nil
}

func (r *fakeMeetingRepo) GetByID(_ context.Context, id string) (*models.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.meetings {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, meetingRepo.ErrNotFound
}

func (r *fakeMeetingRepo) ListByDateRange(_ context.Context, community, from, to string) ([]models.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Meeting
	for _, m := range r.meetings {
		if m.Status != models.MeetingActive {
			continue
		}
		if community != "" && m.Community != community {
			continue
		}
		if m.Date < from || m.Date > to {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (r *fakeMeetingRepo) CancelMeeting(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.meetings {
		if m.ID == id && m.Status == models.MeetingActive {
			m.Status = models.MeetingCancelled
			return nil
		}
	}
	return meetingRepo.ErrNotFound
}

func (r *fakeMeetingRepo) SetReplayURL(_ context.Context, id, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.meetings {
		if m.ID == id {
			m.ReplayURL = url
			return nil
		}
	}
	return meetingRepo.ErrNotFound
}

func (r *fakeMeetingRepo) add(m models.Meeting) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := m
	r.meetings = append(r.meetings, &cp)
}

func (r *fakeMeetingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.meetings)
}

// fakePlatformClient counts calls and can be told to fail.
type fakePlatformClient struct {
	mu          sync.Mutex
	createErr   error
	cancelErr   error
	createCalls int
	cancelCalls int
}

func (c *fakePlatformClient) CreateMeeting(_ context.Context, req platform.CreateRequest) (*platform.CreateResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.createCalls++
	if c.createErr != nil {
		return nil, c.createErr
	}
	return &platform.CreateResult{
		MeetingID: "remote-123",
		JoinURL:   "https://example.com/j/remote-123",
	}, nil
}

func (c *fakePlatformClient) CancelMeeting(_ context.Context, meetingID, _ string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelCalls++
	return c.cancelErr
}

func (c *fakePlatformClient) counts() (created, cancelled int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.createCalls, c.cancelCalls
}

// fakeDispatcher records queued notifications.
type fakeDispatcher struct {
	mu        sync.Mutex
	created   [][]string
	cancelled [][]string
	err       error
}

func (d *fakeDispatcher) NotifyMeetingCreated(_ context.Context, _ *models.Meeting, recipients []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.created = append(d.created, recipients)
	return d.err
}

func (d *fakeDispatcher) NotifyMeetingCancelled(_ context.Context, _ *models.Meeting, recipients []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelled = append(d.cancelled, recipients)
	return d.err
}

// fakeCollectRepo tracks favorites keyed by target.
type fakeCollectRepo struct {
	mu         sync.Mutex
	collectors map[string][]string // targetType/targetID -> user ids
	removed    []string
}

func newFakeCollectRepo() *fakeCollectRepo {
	return &fakeCollectRepo{collectors: make(map[string][]string)}
}

func (r *fakeCollectRepo) Add(_ context.Context, c *models.Collect) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := c.TargetType + "/" + c.TargetID
	r.collectors[key] = append(r.collectors[key], c.UserID)
	return nil
}

func (r *fakeCollectRepo) Remove(_ context.Context, _, _, _ string) error { return nil }

func (r *fakeCollectRepo) ListByUser(_ context.Context, _ string) ([]models.Collect, error) {
	return nil, nil
}

func (r *fakeCollectRepo) ListCollectors(_ context.Context, targetType, targetID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collectors[targetType+"/"+targetID], nil
}

func (r *fakeCollectRepo) RemoveByTarget(_ context.Context, targetType, targetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := targetType + "/" + targetID
	delete(r.collectors, key)
	r.removed = append(r.removed, key)
	return nil
}

// fakeListCache is an in-memory ListCache built on the go-redis result
// constructors, so the cached listing path runs without a server.
type fakeListCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeListCache() *fakeListCache {
	return &fakeListCache{data: make(map[string]string)}
}

func (c *fakeListCache) Get(_ context.Context, key string) *redis.StringCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (c *fakeListCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(v)
	case string:
		c.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (c *fakeListCache) Incr(_ context.Context, key string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(c.data[key], 10, 64)
	n++
	c.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

// fakeSIGRepo serves canned SIG records.
type fakeSIGRepo struct {
	sigs map[string]*models.SIG
}

func (r *fakeSIGRepo) Create(_ context.Context, _ *models.SIG) error { return nil }

func (r *fakeSIGRepo) GetByID(_ context.Context, id string) (*models.SIG, error) {
	if s, ok := r.sigs[id]; ok {
		return s, nil
	}
	return nil, errors.New("sig not found")
}

func (r *fakeSIGRepo) ListByCommunity(_ context.Context, _ string) ([]models.SIG, error) {
	return nil, nil
}
func (r *fakeSIGRepo) Update(_ context.Context, _ *models.SIG) error { return nil }
func (r *fakeSIGRepo) Delete(_ context.Context, _ string) error      { return nil }

// testClock is a fixed point well before the fixtures' meeting dates.
var testClock = time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local)

type testEnv struct {
	engine   *DefaultSchedulingEngine
	query    *MeetingQueryService
	repo     *fakeMeetingRepo
	client   *fakePlatformClient
	notifier *fakeDispatcher
	collects *fakeCollectRepo
	sigs     *fakeSIGRepo
	cache    *fakeListCache
}

func newTestEnv(hosts ...config.HostAccount) *testEnv {
	if len(hosts) == 0 {
		hosts = []config.HostAccount{
			{ID: "h1", Platform: platform.Zoom, Credential: "cred-1"},
			{ID: "h2", Platform: platform.Zoom, Credential: "cred-2"},
		}
	}
	repo := &fakeMeetingRepo{}
	client := &fakePlatformClient{}
	notifier := &fakeDispatcher{}
	collects := newFakeCollectRepo()
	sigs := &fakeSIGRepo{sigs: make(map[string]*models.SIG)}

	cfg := &config.Config{
		BookingHorizonDays:    60,
		ConflictBufferMinutes: 30,
		CancelGuardMinutes:    60,
		Hosts:                 hosts,
		Communities: []config.Community{
			{Name: "openeuler", Platforms: []string{platform.Zoom, platform.WeLink}, TopicPrefix: "[openEuler] "},
		},
	}
	pool := NewHostPool(hosts)
	registry := platform.Registry{platform.Zoom: client, platform.WeLink: client}

	cache := newFakeListCache()
	query := NewMeetingQueryService(repo, cache, zap.NewNop())
	query.Now = func() time.Time { return testClock }

	engine := NewDefaultSchedulingEngine(
		repo, collects, sigs, pool, registry, notifier, query, cfg, zap.NewNop())
	engine.Now = func() time.Time { return testClock }

	return &testEnv{
		engine:   engine,
		query:    query,
		repo:     repo,
		client:   client,
		notifier: notifier,
		collects: collects,
		sigs:     sigs,
		cache:    cache,
	}
}

func validRequest() BookRequest {
	return BookRequest{
		Community: "openeuler",
		SigID:     "",
		Platform:  platform.Zoom,
		Date:      "2026-03-10",
		Start:     "09:15",
		End:       "09:45",
		Topic:     "Kernel SIG weekly",
		SponsorID: "user-1",
	}
}

func activeMeeting(id, hostID, date string, start, end int) models.Meeting {
	return models.Meeting{
		ID:        id,
		MID:       "remote-" + id,
		Community: "openeuler",
		Platform:  platform.Zoom,
		HostID:    hostID,
		Topic:     "existing",
		Date:      date,
		Start:     start,
		End:       end,
		SponsorID: "user-1",
		Status:    models.MeetingActive,
		CreatedAt: testClock,
	}
}
