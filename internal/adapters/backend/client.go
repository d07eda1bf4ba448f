// Package backend talks to the email and calendar service the assistant tools
// front. Responses are handed back to the voice model unchanged.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bnema/alexis-agent/internal/domain"
	"github.com/bnema/alexis-agent/internal/ports"
)

const (
	maxResponseBytes      = 1 << 20
	maxErrorSnippetBytes  = 512
	defaultRequestTimeout = 30 * time.Second
)

// Client implements ports.Workspace over HTTP. The bearer token is read from
// Secrets under TokenKey on every request; when it is absent requests are
// sent without credentials.
type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	TimeZone       string
	Secrets        ports.SecretStore
	TokenKey       string
	Logger         *slog.Logger

	warnOnce sync.Once
}

var _ ports.Workspace = (*Client)(nil)

type calendarTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type attendee struct {
	Email string `json:"email"`
}

type calendarEventBody struct {
	Summary     string       `json:"summary"`
	Start       calendarTime `json:"start"`
	End         calendarTime `json:"end"`
	Location    string       `json:"location,omitempty"`
	Description string       `json:"description,omitempty"`
	Attendees   []attendee   `json:"attendees,omitempty"`
}

type replyBody struct {
	MessageID string `json:"message_id"`
	To        string `json:"to"`
	Body      string `json:"body"`
}

func (c *Client) ListEmails(ctx context.Context, label string) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("label", label)
	return c.do(ctx, http.MethodGet, "/emails?"+query.Encode(), nil)
}

func (c *Client) ReplyToEmail(ctx context.Context, reply domain.EmailReply) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/emails/reply", replyBody{
		MessageID: reply.MessageID,
		To:        reply.To,
		Body:      reply.Body,
	})
}

func (c *Client) TodayEvents(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/calendar/events", nil)
}

func (c *Client) CreateEvent(ctx context.Context, event domain.CalendarEvent) (json.RawMessage, error) {
	body := c.eventBody(event)
	body.Location = event.Location
	body.Description = event.Description
	for _, email := range event.Attendees {
		body.Attendees = append(body.Attendees, attendee{Email: email})
	}
	return c.do(ctx, http.MethodPost, "/calendar/events", body)
}

func (c *Client) UpdateEvent(ctx context.Context, event domain.CalendarEvent) (json.RawMessage, error) {
	if strings.TrimSpace(event.ID) == "" {
		return nil, errors.New("event id is required")
	}
	return c.do(ctx, http.MethodPut, "/calendar/events/"+url.PathEscape(event.ID), c.eventBody(event))
}

func (c *Client) eventBody(event domain.CalendarEvent) calendarEventBody {
	zone := c.timeZone()
	return calendarEventBody{
		Summary: event.Summary,
		Start:   calendarTime{DateTime: event.Start.Format(time.RFC3339), TimeZone: zone},
		End:     calendarTime{DateTime: event.End.Format(time.RFC3339), TimeZone: zone},
	}
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	endpoint, err := buildAPIURL(c.BaseURL, path)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		body = bytes.NewReader(encoded)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%s %s: status %d%s", method, path, resp.StatusCode, errorSnippet(data))
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%s %s: response is not valid JSON", method, path)
	}

	return json.RawMessage(data), nil
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	if c.Secrets == nil || c.TokenKey == "" {
		return "", nil
	}

	token, err := c.Secrets.Get(ctx, c.TokenKey)
	if err != nil {
		if errors.Is(err, ports.ErrSecretNotFound) {
			c.warnOnce.Do(func() {
				c.logger().Warn("backend access token not set, sending requests without credentials", "key", c.TokenKey)
			})
			return "", nil
		}
		return "", fmt.Errorf("load backend access token: %w", err)
	}

	return strings.TrimSpace(token), nil
}

func (c *Client) timeZone() string {
	if zone := strings.TrimSpace(c.TimeZone); zone != "" {
		return zone
	}
	return domain.DefaultCalendarTimeZone
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	timeout := c.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return context.WithTimeout(ctx, timeout)
}

func errorSnippet(data []byte) string {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return ""
	}
	if len(text) > maxErrorSnippetBytes {
		text = text[:maxErrorSnippetBytes] + "..."
	}
	return ": " + text
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if strings.TrimSpace(baseURL) == "" {
		return "", errors.New("backend base url is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse backend base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("backend base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("backend base url host is required")
	}

	// Keep any path prefix on the base URL; endpoint paths are relative to it.
	parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	endpoint, err := url.Parse(parsed.String() + path)
	if err != nil {
		return "", fmt.Errorf("parse backend path: %w", err)
	}
	return endpoint.String(), nil
}
