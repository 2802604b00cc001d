package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ZoomClient talks to the Zoom REST API using a per-host JWT credential.
type ZoomClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewZoomClient(baseURL string) *ZoomClient {
	return &ZoomClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *ZoomClient) CreateMeeting(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	body := map[string]interface{}{
		"topic":      req.Topic,
		"type":       2, // scheduled meeting
		"start_time": fmt.Sprintf("%sT%s:00", req.Date, req.Start),
		"settings": map[string]interface{}{
			"auto_recording": recordingMode(req.Record),
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("zoom: marshal create request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/users/me/meetings", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("zoom: build create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+req.HostCredential)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("zoom: create meeting request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("zoom: create meeting returned status %d", resp.StatusCode)
	}

	var out struct {
		ID      int64  `json:"id"`
		JoinURL string `json:"join_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("zoom: decode create response: %w", err)
	}
	return &CreateResult{
		MeetingID: fmt.Sprintf("%d", out.ID),
		JoinURL:   out.JoinURL,
	}, nil
}

func (c *ZoomClient) CancelMeeting(ctx context.Context, meetingID, hostCredential string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.BaseURL+"/meetings/"+meetingID, nil)
	if err != nil {
		return fmt.Errorf("zoom: build cancel request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+hostCredential)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("zoom: cancel meeting request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("zoom: cancel meeting returned status %d", resp.StatusCode)
	}
	return nil
}

func recordingMode(record bool) string {
	if record {
		return "cloud"
	}
	return "none"
}
