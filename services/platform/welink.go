package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WeLinkClient talks to the Huawei WeLink open API.
type WeLinkClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewWeLinkClient(baseURL string) *WeLinkClient {
	return &WeLinkClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *WeLinkClient) CreateMeeting(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	body := map[string]interface{}{
		"subject":        req.Topic,
		"startTime":      fmt.Sprintf("%s %s", req.Date, req.Start),
		"endTime":        fmt.Sprintf("%s %s", req.Date, req.End),
		"isAutoRecord":   boolToInt(req.Record),
		"recordAuthType": 2,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("welink: marshal create request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/meetings", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("welink: build create request: %w", err)
	}
	httpReq.Header.Set("X-Access-Token", req.HostCredential)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("welink: create meeting request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("welink: create meeting returned status %d", resp.StatusCode)
	}

	var out struct {
		ConferenceID string `json:"conferenceId"`
		GuestJoinURL string `json:"guestJoinUri"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("welink: decode create response: %w", err)
	}
	return &CreateResult{
		MeetingID: out.ConferenceID,
		JoinURL:   out.GuestJoinURL,
	}, nil
}

func (c *WeLinkClient) CancelMeeting(ctx context.Context, meetingID, hostCredential string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.BaseURL+"/v1/meetings/"+meetingID, nil)
	if err != nil {
		return fmt.Errorf("welink: build cancel request: %w", err)
	}
	httpReq.Header.Set("X-Access-Token", hostCredential)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("welink: cancel meeting request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("welink: cancel meeting returned status %d", resp.StatusCode)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
