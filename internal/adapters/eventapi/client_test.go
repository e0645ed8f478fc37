package eventapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"meetinggate/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_LookupEvent(t *testing.T) {
	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  int
		body    string
		want    *domain.EventRecord
		wantErr error
	}{
		{
			name:   "rfc3339 times",
			status: http.StatusOK,
			body:   `{"id":"e1","roomId":"team-standup","eventStartTime":"2026-03-10T14:00:00Z","eventEndTime":"2026-03-10T15:00:00Z","extra":true}`,
			want:   &domain.EventRecord{ID: "e1", RoomID: "team-standup", StartTime: start, EndTime: start.Add(time.Hour)},
		},
		{
			name:   "numeric id and epoch millis",
			status: http.StatusOK,
			body:   `{"id":42,"eventStartTime":1773151200000,"eventEndTime":"2026-03-10 15:00:00"}`,
			want:   &domain.EventRecord{ID: "42", StartTime: start, EndTime: start.Add(time.Hour)},
		},
		{name: "null body", status: http.StatusOK, body: "null", wantErr: domain.ErrNoData},
		{name: "empty body", status: http.StatusOK, body: "", wantErr: domain.ErrNoData},
		{name: "empty object", status: http.StatusOK, body: "{}", wantErr: domain.ErrNoData},
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, wantErr: domain.ErrLookupFailed},
		{name: "not found status", status: http.StatusNotFound, body: "", wantErr: domain.ErrLookupFailed},
		{name: "malformed json", status: http.StatusOK, body: `{"id":`, wantErr: domain.ErrLookupFailed},
		{name: "bad time", status: http.StatusOK, body: `{"id":"e1","eventStartTime":"tomorrow"}`, wantErr: domain.ErrLookupFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.EscapedPath()
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := NewClient(srv.URL+"/", srv.Client()).LookupEvent(context.Background(), "team-standup")

			assert.Equal(t, "/api/event/details/team-standup", gotPath)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.ID, got.ID)
			assert.Equal(t, tt.want.RoomID, got.RoomID)
			assert.True(t, tt.want.StartTime.Equal(got.StartTime), "start %s", got.StartTime)
			assert.True(t, tt.want.EndTime.Equal(got.EndTime), "end %s", got.EndTime)
		})
	}
}

func TestClient_LookupEvent_EscapesRoom(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte("null"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client()).LookupEvent(context.Background(), "weekly sync")

	require.ErrorIs(t, err, domain.ErrNoData)
	assert.Equal(t, "/api/event/details/weekly%20sync", gotPath)
}

func TestClient_LookupEvent_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, nil).LookupEvent(context.Background(), "room")

	require.ErrorIs(t, err, domain.ErrLookupFailed)
}

func TestClient_LookupEvent_Cancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(srv.URL, srv.Client()).LookupEvent(ctx, "room")

	require.ErrorIs(t, err, domain.ErrLookupFailed)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClient_Login(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		want        *domain.UserSession
		wantMessage string
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   `{"status":"success","data":{"id":"u1","username":"alice","name":"Alice","token":"jwt"}}`,
			want:   &domain.UserSession{ID: "u1", Username: "alice", Name: "Alice", Token: "jwt"},
		},
		{
			name:   "numeric id",
			status: http.StatusOK,
			body:   `{"status":"success","data":{"id":7}}`,
			want:   &domain.UserSession{ID: "7"},
		},
		{
			name:        "status error with message",
			status:      http.StatusOK,
			body:        `{"status":"error","message":"Invalid username or password"}`,
			wantMessage: "Invalid username or password",
		},
		{
			name:        "401 with message",
			status:      http.StatusUnauthorized,
			body:        `{"status":"error","message":"Account disabled"}`,
			wantMessage: "Account disabled",
		},
		{name: "500 without body", status: http.StatusInternalServerError},
		{name: "success without id", status: http.StatusOK, body: `{"status":"success","data":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got loginRequest
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/auth/login", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			session, err := NewClient(srv.URL, srv.Client()).Login(context.Background(), "alice", "secret")

			assert.Equal(t, loginRequest{Username: "alice", Password: "secret"}, got)
			if tt.want != nil {
				require.NoError(t, err)
				assert.Equal(t, tt.want, session)
				return
			}
			require.ErrorIs(t, err, domain.ErrAuthFailed)
			_, literal := domain.MessageFor(err)
			assert.Equal(t, tt.wantMessage, literal)
		})
	}
}

func TestClient_FetchMeetingDetails(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		token   string
		want    string
		wantErr error
	}{
		{name: "with id", status: http.StatusOK, body: `{"meetingUniqueId":"m-123"}`, want: "m-123"},
		{name: "with token", status: http.StatusOK, body: `{"meetingUniqueId":"m-9"}`, token: "jwt", want: "m-9"},
		{name: "missing id", status: http.StatusOK, body: `{}`, want: ""},
		{name: "null id", status: http.StatusOK, body: `{"meetingUniqueId":null}`, want: ""},
		{name: "server error", status: http.StatusBadGateway, wantErr: domain.ErrMeetingDetailFailed},
		{name: "malformed", status: http.StatusOK, body: `[`, wantErr: domain.ErrMeetingDetailFailed},
		{name: "expired token", status: http.StatusUnauthorized, body: `{"data":null,"error":{"code":"unauthorized"}}`, token: "old", wantErr: domain.ErrSessionRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/event/meta", r.URL.Path)
				assert.Equal(t, "u 1", r.URL.Query().Get("userId"))
				assert.Equal(t, "e1", r.URL.Query().Get("eventId"))
				if tt.token != "" {
					assert.Equal(t, "Bearer "+tt.token, r.Header.Get("Authorization"))
				} else {
					assert.Empty(t, r.Header.Get("Authorization"))
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			token := tt.token
			c := NewClient(srv.URL, srv.Client(), WithTokenSource(func(context.Context) string { return token }))
			details, err := c.FetchMeetingDetails(context.Background(), "u 1", "e1")

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, details)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, details.MeetingUniqueID)
		})
	}
}
