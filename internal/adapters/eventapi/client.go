// Package eventapi calls the event-lookup service consumed by the welcome page.
package eventapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"meetinggate/internal/domain"
)

// maxBodySize bounds how much of a response is read.
const maxBodySize = 1 << 20

// TokenSource returns the bearer token to send with authenticated calls, or "".
type TokenSource func(ctx context.Context) string

// Client implements domain.EventLookup, domain.Authenticator and
// domain.MeetingDetailFetcher over HTTP. Every call is single-shot.
type Client struct {
	baseURL string
	client  *http.Client
	token   TokenSource
}

// Option configures a Client.
type Option func(*Client)

// WithTokenSource attaches a bearer token to the meeting-detail request.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.token = ts }
}

// NewClient returns a client for the service at baseURL.
func NewClient(baseURL string, client *http.Client, opts ...Option) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LookupEvent issues GET /api/event/details/{roomId}.
func (c *Client) LookupEvent(ctx context.Context, roomID string) (*domain.EventRecord, error) {
	endpoint := fmt.Sprintf("%s/api/event/details/%s", c.baseURL, url.PathEscape(roomID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", domain.ErrLookupFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	body, status, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLookupFailed, err)
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("%w: event api returned status: %d", domain.ErrLookupFailed, status)
	}
	if isEmptyBody(body) {
		return nil, domain.ErrNoData
	}

	var data eventDetailsResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: failed to decode event details: %w", domain.ErrLookupFailed, err)
	}
	if data.ID == "" {
		return nil, domain.ErrNoData
	}
	return &domain.EventRecord{
		ID:          string(data.ID),
		RoomID:      data.RoomID,
		Name:        data.Name,
		Description: data.Description,
		StartTime:   data.EventStartTime.Time,
		EndTime:     data.EventEndTime.Time,
	}, nil
}

// Login issues POST /api/auth/login. Rejections carry the server message
// when the service supplies one.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.UserSession, error) {
	payload, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %w", domain.ErrAuthFailed, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", domain.ErrAuthFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	body, status, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthFailed, err)
	}

	var data loginResponse
	decodeErr := json.Unmarshal(body, &data)
	if status < 200 || status > 299 {
		if decodeErr == nil && data.Message != "" {
			return nil, &domain.ServerMessageError{Err: domain.ErrAuthFailed, Message: data.Message}
		}
		return nil, fmt.Errorf("%w: auth api returned status: %d", domain.ErrAuthFailed, status)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: failed to decode login response: %w", domain.ErrAuthFailed, decodeErr)
	}
	if !strings.EqualFold(data.Status, "success") || data.Data == nil || data.Data.ID == "" {
		return nil, &domain.ServerMessageError{Err: domain.ErrAuthFailed, Message: data.Message}
	}
	return &domain.UserSession{
		ID:       string(data.Data.ID),
		Username: data.Data.Username,
		Name:     data.Data.Name,
		Email:    data.Data.Email,
		Token:    data.Data.Token,
	}, nil
}

// FetchMeetingDetails issues GET /api/event/meta?userId=&eventId=. A 401 means
// the bearer token is no longer accepted and yields ErrSessionRejected.
func (c *Client) FetchMeetingDetails(ctx context.Context, userID, eventID string) (*domain.MeetingDetails, error) {
	q := url.Values{}
	q.Set("userId", userID)
	q.Set("eventId", eventID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/event/meta?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", domain.ErrMeetingDetailFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != nil {
		if token := c.token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	body, status, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMeetingDetailFailed, err)
	}
	if status == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: meta api returned status: %d", domain.ErrSessionRejected, status)
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("%w: meta api returned status: %d", domain.ErrMeetingDetailFailed, status)
	}
	details := &domain.MeetingDetails{}
	if isEmptyBody(body) {
		return details, nil
	}
	var data metaResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: failed to decode meta response: %w", domain.ErrMeetingDetailFailed, err)
	}
	if data.MeetingUniqueID != nil {
		details.MeetingUniqueID = *data.MeetingUniqueID
	}
	return details, nil
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response body: %w", err)
	}
	return body, resp.StatusCode, nil
}

func isEmptyBody(b []byte) bool {
	s := bytes.TrimSpace(b)
	return len(s) == 0 || bytes.Equal(s, []byte("null")) || bytes.Equal(s, []byte("{}"))
}
