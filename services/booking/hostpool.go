package booking

import (
	"osmeet/config"
	"osmeet/models"
)

// HostPool is the static per-platform registry of shared host accounts.
// It is built once at startup from configuration and never mutated.
type HostPool struct {
	byPlatform map[string][]models.Host
}

func NewHostPool(accounts []config.HostAccount) *HostPool {
	pool := &HostPool{byPlatform: make(map[string][]models.Host)}
	for _, a := range accounts {
		pool.byPlatform[a.Platform] = append(pool.byPlatform[a.Platform], models.Host{
			ID:         a.ID,
			Platform:   a.Platform,
			Credential: a.Credential,
		})
	}
	return pool
}

// ListHosts returns all configured hosts for a platform.
func (p *HostPool) ListHosts(platform string) ([]models.Host, error) {
	hosts, ok := p.byPlatform[platform]
	if !ok || len(hosts) == 0 {
		return nil, NewError(CodeUnknownPlatform, "platform "+platform+" is not configured")
	}
	return hosts, nil
}

// Lookup returns the host with the given id on a platform, for credential
// resolution during cancellation.
func (p *HostPool) Lookup(platform, hostID string) (models.Host, error) {
	hosts, err := p.ListHosts(platform)
	if err != nil {
		return models.Host{}, err
	}
	for _, h := range hosts {
		if h.ID == hostID {
			return h, nil
		}
	}
	return models.Host{}, NewError(CodeUnknownPlatform, "host "+hostID+" is not configured on "+platform)
}
