// Package store is the message store adapter: an HTTP client against
// the platform's chat-messages REST API that maps wire records to the
// internal message shape. Fetch failures degrade to empty results so
// the widget never crashes on transport trouble.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Tanjamul-Azad/Complete-Legal-Aid/internal/chat"
	"github.com/Tanjamul-Azad/Complete-Legal-Aid/internal/logging"
)

const defaultTimeout = 10 * time.Second

// Client talks to the remote message store.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     zerolog.Logger
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger overrides the adapter's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a store client rooted at baseURL (the API root, without a
// trailing slash). token is sent on every request when non-empty.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("base URL required")
	}
	c := &Client{
		baseURL: trimmed,
		token:   strings.TrimSpace(token),
		http:    &http.Client{Timeout: defaultTimeout},
		log:     logging.Component("store"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchMessages lists every message visible to the current user. A
// transport or decode failure returns an empty slice after logging; the
// caller keeps whatever collection it already had.
func (c *Client) FetchMessages(ctx context.Context) []chat.Message {
	body, err := c.do(ctx, http.MethodGet, "/chat-messages/", nil)
	if err != nil {
		c.log.Warn().Str("error", logging.RedactError(err)).Msg("fetch messages failed")
		return nil
	}
	wire, err := decodeMessageList(body)
	if err != nil {
		c.log.Warn().Err(err).Msg("decode messages failed")
		return nil
	}
	out := make([]chat.Message, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toMessage())
	}
	return out
}

// SendMessage persists a new message and returns the stored record with
// its server-assigned ID and timestamp, or nil on failure.
func (c *Client) SendMessage(ctx context.Context, receiverID, text, caseID, attachmentID string) *chat.Message {
	payload := sendPayload{
		Text:       text,
		Receiver:   receiverID,
		Case:       caseID,
		Attachment: attachmentID,
	}
	body, err := c.do(ctx, http.MethodPost, "/chat-messages/", payload)
	if err != nil {
		c.log.Warn().Str("error", logging.RedactError(err)).Str("receiver", receiverID).Msg("send message failed")
		return nil
	}
	var w wireMessage
	if err := json.Unmarshal(body, &w); err != nil {
		c.log.Warn().Err(err).Msg("decode sent message failed")
		return nil
	}
	msg := w.toMessage()
	return &msg
}

// MarkRead flips is_read on the given message IDs, best effort per ID.
// The first failure is returned after all IDs were attempted.
func (c *Client) MarkRead(ctx context.Context, ids []string) error {
	var firstErr error
	for _, id := range ids {
		path := fmt.Sprintf("/chat-messages/%s/", id)
		if _, err := c.do(ctx, http.MethodPatch, path, readPayload{IsRead: true}); err != nil {
			c.log.Warn().Str("error", logging.RedactError(err)).Str("message_id", id).Msg("mark read failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// FetchUsers loads the user directory.
func (c *Client) FetchUsers(ctx context.Context) ([]chat.User, error) {
	body, err := c.do(ctx, http.MethodGet, "/users/", nil)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	var wire []wireUser
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	out := make([]chat.User, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toUser())
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	return body, nil
}
