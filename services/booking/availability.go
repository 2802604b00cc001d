package booking

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	meetingRepo "osmeet/database/repository/meeting"
	"osmeet/models"
)

// AvailabilityResolver subtracts the occupied hosts from the platform pool
// and picks one of the remaining hosts uniformly at random. Random selection
// spreads load across the pool; a first-match policy would starve hosts late
// in the list.
type AvailabilityResolver struct {
	Pool   *HostPool
	Repo   meetingRepo.MeetingRepository
	Buffer int // conflict buffer in minutes
}

// ResolveHost finds a free host for the window, or returns NoHostAvailable
// when every host in the pool conflicts. NoHostAvailable is a retriable
// condition for the caller, not a fault.
func (r *AvailabilityResolver) ResolveHost(ctx context.Context, platform string, w models.Window) (models.Host, error) {
	hosts, err := r.Pool.ListHosts(platform)
	if err != nil {
		return models.Host{}, err
	}

	occupied, err := r.Repo.FindConflicts(ctx, platform, w, r.Buffer)
	if err != nil {
		return models.Host{}, NewError(CodeInternal, fmt.Sprintf("conflict lookup failed: %v", err))
	}

	available := hosts[:0:0]
	for _, h := range hosts {
		if _, taken := occupied[h.ID]; !taken {
			available = append(available, h)
		}
	}
	if len(available) == 0 {
		return models.Host{}, NewError(CodeNoHostAvailable, "no host available for the requested window")
	}

	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(available))))
	if err != nil {
		return models.Host{}, NewError(CodeInternal, fmt.Sprintf("random selection failed: %v", err))
	}
	return available[idx.Int64()], nil
}
