package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// TencentClient talks to the Tencent Meeting REST API.
type TencentClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewTencentClient(baseURL string) *TencentClient {
	return &TencentClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *TencentClient) CreateMeeting(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	body := map[string]interface{}{
		"subject":          req.Topic,
		"type":             0, // reserved meeting
		"start_time":       fmt.Sprintf("%s %s:00", req.Date, req.Start),
		"end_time":         fmt.Sprintf("%s %s:00", req.Date, req.End),
		"enable_recording": req.Record,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("tencent: marshal create request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/meetings", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("tencent: build create request: %w", err)
	}
	httpReq.Header.Set("X-TC-Key", req.HostCredential)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("tencent: create meeting request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tencent: create meeting returned status %d", resp.StatusCode)
	}

	var out struct {
		MeetingInfoList []struct {
			MeetingID string `json:"meeting_id"`
			JoinURL   string `json:"join_url"`
		} `json:"meeting_info_list"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("tencent: decode create response: %w", err)
	}
	if len(out.MeetingInfoList) == 0 {
		return nil, fmt.Errorf("tencent: create response carried no meeting info")
	}
	return &CreateResult{
		MeetingID: out.MeetingInfoList[0].MeetingID,
		JoinURL:   out.MeetingInfoList[0].JoinURL,
	}, nil
}

func (c *TencentClient) CancelMeeting(ctx context.Context, meetingID, hostCredential string) error {
	payload, err := json.Marshal(map[string]interface{}{"reason_code": 1})
	if err != nil {
		return fmt.Errorf("tencent: marshal cancel request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/meetings/"+meetingID+"/cancel", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("tencent: build cancel request: %w", err)
	}
	httpReq.Header.Set("X-TC-Key", hostCredential)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("tencent: cancel meeting request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tencent: cancel meeting returned status %d", resp.StatusCode)
	}
	return nil
}
