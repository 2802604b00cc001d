package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	meetingRepo "osmeet/database/repository/meeting"
	"osmeet/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const listCacheTTL = 5 * time.Minute

// ListCache is the subset of redis operations the listing cache needs.
// *redis.Client satisfies it.
type ListCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// ListInvalidator lets the write path drop cached listing snapshots after a
// booking or cancellation.
type ListInvalidator interface {
	InvalidateCommunity(ctx context.Context, community string) error
}

// MeetingQueryService serves the read-only meeting surface. Listings are
// lock-free snapshots of persisted state, cached briefly in Redis and
// invalidated whenever a meeting is booked or cancelled.
type MeetingQueryService struct {
	Repo   meetingRepo.MeetingRepository
	Cache  ListCache
	Logger *zap.Logger
	Now    func() time.Time
}

func NewMeetingQueryService(repo meetingRepo.MeetingRepository, cache ListCache, logger *zap.Logger) *MeetingQueryService {
	return &MeetingQueryService{Repo: repo, Cache: cache, Logger: logger, Now: time.Now}
}

// GetMeeting fetches a single meeting, cancelled ones included (history).
func (s *MeetingQueryService) GetMeeting(ctx context.Context, id string) (*models.Meeting, error) {
	m, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, meetingRepo.ErrNotFound) {
			return nil, NewError(CodeNotFound, "meeting not found")
		}
		return nil, NewError(CodeInternal, "failed to load meeting")
	}
	return m, nil
}

// ListUpcoming returns active meetings from today through today+days,
// grouped by date in ascending order.
func (s *MeetingQueryService) ListUpcoming(ctx context.Context, community string, days int) (map[string][]models.Meeting, error) {
	var key string
	if s.Cache != nil {
		key = s.listKey(ctx, community, days)
		if cached, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var grouped map[string][]models.Meeting
			if err := json.Unmarshal([]byte(cached), &grouped); err == nil {
				return grouped, nil
			}
		}
	}

	now := s.Now()
	from := now.Format("2006-01-02")
	to := now.AddDate(0, 0, days).Format("2006-01-02")
	meetings, err := s.Repo.ListByDateRange(ctx, community, from, to)
	if err != nil {
		return nil, NewError(CodeInternal, "failed to list meetings")
	}

	grouped := make(map[string][]models.Meeting)
	for _, m := range meetings {
		grouped[m.Date] = append(grouped[m.Date], m)
	}
	for _, day := range grouped {
		sort.Slice(day, func(i, j int) bool { return day[i].Start < day[j].Start })
	}

	if s.Cache != nil {
		if data, err := json.Marshal(grouped); err == nil {
			if err := s.Cache.Set(ctx, key, data, listCacheTTL).Err(); err != nil {
				s.Logger.Debug("failed to cache meeting list", zap.Error(err))
			}
		}
	}
	return grouped, nil
}

// InvalidateCommunity bumps the listing cache version for a community so
// snapshots written before a book/cancel are never served again. Superseded
// keys simply expire with their TTL.
func (s *MeetingQueryService) InvalidateCommunity(ctx context.Context, community string) error {
	if s.Cache == nil {
		return nil
	}
	if err := s.Cache.Incr(ctx, versionKey(community)).Err(); err != nil {
		return err
	}
	if community != "" {
		// The all-communities listing snapshots this community too.
		return s.Cache.Incr(ctx, versionKey("")).Err()
	}
	return nil
}

// listKey builds the versioned cache key. A missing version counter reads
// as version zero.
func (s *MeetingQueryService) listKey(ctx context.Context, community string, days int) string {
	ver, err := s.Cache.Get(ctx, versionKey(community)).Int()
	if err != nil {
		ver = 0
	}
	return fmt.Sprintf("meetings:%s:%d:%d", community, ver, days)
}

func versionKey(community string) string {
	return "meetings:ver:" + community
}
