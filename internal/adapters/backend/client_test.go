package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bnema/alexis-agent/internal/domain"
	"github.com/bnema/alexis-agent/internal/ports"
	"github.com/bnema/alexis-agent/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const tokenKey = "alexis/backend/access_token"

func newTestClient(t *testing.T, handler http.HandlerFunc, secrets ports.SecretStore) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &Client{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
		Secrets:    secrets,
		TokenKey:   tokenKey,
	}
}

func TestListEmailsSendsLabelAndBearerToken(t *testing.T) {
	t.Parallel()

	secrets := mocks.NewMockSecretStore(t)
	secrets.EXPECT().Get(mock.Anything, tokenKey).Return("ya29.token\n", nil).Once()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "work & travel", r.URL.Query().Get("label"))
		assert.Equal(t, "Bearer ya29.token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"emails":[{"email_id":"m-1","subject":"Set up meeting"}],"count":1}`))
	}, secrets)

	output, err := client.ListEmails(context.Background(), "work & travel")
	require.NoError(t, err)
	assert.JSONEq(t, `{"emails":[{"email_id":"m-1","subject":"Set up meeting"}],"count":1}`, string(output))
}

func TestRequestsWithoutTokenAreUnauthenticated(t *testing.T) {
	t.Parallel()

	secrets := mocks.NewMockSecretStore(t)
	secrets.EXPECT().Get(mock.Anything, tokenKey).Return("", fmt.Errorf("file: %w", ports.ErrSecretNotFound)).Twice()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}, secrets)

	for range 2 {
		output, err := client.TodayEvents(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "[]", string(output))
	}
}

func TestSecretStoreFailureAbortsRequest(t *testing.T) {
	t.Parallel()

	secrets := mocks.NewMockSecretStore(t)
	secrets.EXPECT().Get(mock.Anything, tokenKey).Return("", errors.New("gpg: decryption failed")).Once()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	}, secrets)

	_, err := client.TodayEvents(context.Background())
	require.ErrorContains(t, err, "load backend access token")
}

func TestReplyToEmailPostsJSON(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails/reply", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"message_id":"m-1","to":"jane@example.com","body":"On it."}`, string(body))
		_, _ = w.Write([]byte(`{"status":"sent"}`))
	}, nil)

	output, err := client.ReplyToEmail(context.Background(), domain.EmailReply{MessageID: "m-1", To: "jane@example.com", Body: "On it."})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"sent"}`, string(output))
}

func TestCreateEventUsesCalendarTimeZoneAndAttendeeObjects(t *testing.T) {
	t.Parallel()

	zone := time.FixedZone("MYT", 8*60*60)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/calendar/events", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"summary": "Design review",
			"start": {"dateTime": "2025-09-22T09:00:00+08:00", "timeZone": "Asia/Kuala_Lumpur"},
			"end": {"dateTime": "2025-09-22T10:00:00+08:00", "timeZone": "Asia/Kuala_Lumpur"},
			"location": "Level 3",
			"attendees": [{"email": "jane@example.com"}, {"email": "li@example.com"}]
		}`, string(body))
		_, _ = w.Write([]byte(`{"id":"evt-1"}`))
	}, nil)

	_, err := client.CreateEvent(context.Background(), domain.CalendarEvent{
		Summary:   "Design review",
		Start:     time.Date(2025, 9, 22, 9, 0, 0, 0, zone),
		End:       time.Date(2025, 9, 22, 10, 0, 0, 0, zone),
		Location:  "Level 3",
		Attendees: []string{"jane@example.com", "li@example.com"},
	})
	require.NoError(t, err)
}

func TestUpdateEventPutsToEscapedID(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/calendar/events/evt%2F1", r.URL.EscapedPath())

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Moved", body["summary"])
		assert.Equal(t, map[string]any{"dateTime": "2025-09-22T11:00:00Z", "timeZone": "Europe/Paris"}, body["start"])
		assert.NotContains(t, body, "attendees")
		_, _ = w.Write([]byte(`{"id":"evt/1"}`))
	}, nil)
	client.TimeZone = "Europe/Paris"

	_, err := client.UpdateEvent(context.Background(), domain.CalendarEvent{
		ID:      "evt/1",
		Summary: "Moved",
		Start:   time.Date(2025, 9, 22, 11, 0, 0, 0, time.UTC),
		End:     time.Date(2025, 9, 22, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
}

func TestUpdateEventRequiresID(t *testing.T) {
	t.Parallel()

	_, err := (&Client{BaseURL: "http://localhost:1"}).UpdateEvent(context.Background(), domain.CalendarEvent{})
	require.ErrorContains(t, err, "event id is required")
}

func TestNonSuccessStatusIncludesBodySnippet(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"token expired"}`))
	}, nil)

	_, err := client.ListEmails(context.Background(), "inbox")
	require.Error(t, err)
	assert.ErrorContains(t, err, "GET /emails?label=inbox: status 401")
	assert.ErrorContains(t, err, "token expired")
}

func TestInvalidJSONResponseIsRejected(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}, nil)

	_, err := client.TodayEvents(context.Background())
	require.ErrorContains(t, err, "not valid JSON")
}

func TestEmptyResponseBodyIsNil(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, nil)

	output, err := client.ReplyToEmail(context.Background(), domain.EmailReply{MessageID: "m-1"})
	require.NoError(t, err)
	assert.Nil(t, output)
}

func TestRequestTimesOutWithoutCallerDeadline(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, nil)
	t.Cleanup(func() { close(release) })
	client.RequestTimeout = 20 * time.Millisecond

	_, err := client.TodayEvents(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestBuildAPIURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		base    string
		path    string
		want    string
		wantErr string
	}{
		{name: "plain host", base: "https://api.example.com", path: "/calendar/events", want: "https://api.example.com/calendar/events"},
		{name: "keeps prefix", base: "https://api.example.com/v1/", path: "/emails?label=a", want: "https://api.example.com/v1/emails?label=a"},
		{name: "empty", base: " ", path: "/x", wantErr: "base url is required"},
		{name: "bad scheme", base: "ftp://api.example.com", path: "/x", wantErr: "must use http or https"},
		{name: "no host", base: "http://", path: "/x", wantErr: "host is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildAPIURL(tt.base, tt.path)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrorSnippetTruncates(t *testing.T) {
	t.Parallel()

	snippet := errorSnippet([]byte(strings.Repeat("a", maxErrorSnippetBytes+10)))
	assert.True(t, strings.HasSuffix(snippet, "..."))
	assert.Len(t, snippet, maxErrorSnippetBytes+5)
}
