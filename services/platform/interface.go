package platform

import (
	"context"
	"fmt"
)

// Supported platform keys.
const (
	Zoom    = "zoom"
	Tencent = "tencent"
	WeLink  = "welink"
)

// CreateRequest carries everything a platform needs to create a remote
// meeting on behalf of a shared host account.
type CreateRequest struct {
	Topic          string
	Date           string // "2006-01-02"
	Start          string // "15:04"
	End            string // "15:04"
	HostCredential string
	Record         bool
}

// CreateResult is the remote platform's answer to a successful create.
type CreateResult struct {
	MeetingID string
	JoinURL   string
}

// Client is the opaque collaborator wrapping one meeting platform's API.
// Implementations must honor the context deadline; the scheduler treats any
// error (including timeout) as a failed remote create.
type Client interface {
	CreateMeeting(ctx context.Context, req CreateRequest) (*CreateResult, error)
	CancelMeeting(ctx context.Context, meetingID, hostCredential string) error
}

// Registry maps platform keys to their clients.
type Registry map[string]Client

// For returns the client for a platform key.
func (r Registry) For(name string) (Client, error) {
	c, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("no client registered for platform %q", name)
	}
	return c, nil
}
