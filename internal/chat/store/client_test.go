package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := New(srv.URL, "tkn")
	require.NoError(t, err)
	return client, srv
}

func TestFetchMessages_MapsWireFields(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/chat-messages/", r.URL.Path)
		require.Equal(t, "Token tkn", r.Header.Get("Authorization"))
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))
		io.WriteString(w, `[
			{"message_id": 42, "sender": "A", "receiver": "B", "message_text": "hi",
			 "sent_at": "2026-03-10T08:30:00Z", "is_read": false, "case": "case-9"},
			{"message_id": 43, "sender": "B", "message_text": "orphan",
			 "sent_at": "2026-03-10T08:31:00.250Z", "is_read": true}
		]`)
	}))

	msgs := client.FetchMessages(context.Background())
	require.Len(t, msgs, 2)

	require.Equal(t, "42", msgs[0].ID)
	require.Equal(t, "A", msgs[0].SenderID)
	require.Equal(t, "B", msgs[0].ReceiverID)
	require.Equal(t, "hi", msgs[0].Text)
	require.Equal(t, "case-9", msgs[0].CaseID)
	require.False(t, msgs[0].Read)
	want := time.Date(2026, time.March, 10, 8, 30, 0, 0, time.UTC).UnixMilli()
	require.Equal(t, want, msgs[0].Timestamp)

	// Absent receiver maps to empty ID.
	require.Equal(t, "", msgs[1].ReceiverID)
	require.True(t, msgs[1].Read)
	require.Equal(t, int64(250), msgs[1].Timestamp%1000)
}

func TestFetchMessages_PaginatedEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"results": [{"message_id": 1, "sender": "A", "receiver": "B",
			"message_text": "x", "sent_at": "2026-03-10T08:30:00Z", "is_read": false}]}`)
	}))

	msgs := client.FetchMessages(context.Background())
	require.Len(t, msgs, 1)
	require.Equal(t, "1", msgs[0].ID)
}

func TestFetchMessages_FailureReturnsEmpty(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	require.Empty(t, client.FetchMessages(context.Background()))

	down, err := New("http://127.0.0.1:1", "")
	require.NoError(t, err)
	require.Empty(t, down.FetchMessages(context.Background()))
}

func TestSendMessage_PostsPayloadAndMapsResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat-messages/", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "hello", payload["message_text"])
		require.Equal(t, "B", payload["receiver"])
		require.Equal(t, "case-9", payload["case"])
		_, hasAttachment := payload["attachment"]
		require.False(t, hasAttachment)

		io.WriteString(w, `{"message_id": 77, "sender": "A", "receiver": "B",
			"message_text": "hello", "sent_at": "2026-03-10T09:00:00Z", "is_read": false, "case": "case-9"}`)
	}))

	msg := client.SendMessage(context.Background(), "B", "hello", "case-9", "")
	require.NotNil(t, msg)
	require.Equal(t, "77", msg.ID)
	require.Equal(t, "case-9", msg.CaseID)
}

func TestSendMessage_FailureReturnsNil(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	require.Nil(t, client.SendMessage(context.Background(), "B", "hello", "", ""))
}

func TestMarkRead_PatchesEachID(t *testing.T) {
	var paths []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		paths = append(paths, r.URL.Path)

		var payload map[string]bool
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.True(t, payload["is_read"])
		io.WriteString(w, `{}`)
	}))

	require.NoError(t, client.MarkRead(context.Background(), []string{"1", "2"}))
	require.Equal(t, []string{"/chat-messages/1/", "/chat-messages/2/"}, paths)
}

func TestMarkRead_ReportsFirstFailureAfterAttemptingAll(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path == "/chat-messages/1/" {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		io.WriteString(w, `{}`)
	}))

	require.Error(t, client.MarkRead(context.Background(), []string{"1", "2"}))
	require.Equal(t, 2, calls)
}

func TestFetchUsers(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/", r.URL.Path)
		io.WriteString(w, `[{"id": "A", "name": "Alice Rahman", "avatar": "https://cdn/a.png"}]`)
	}))

	users, err := client.FetchUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "Alice Rahman", users[0].Name)
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New("   ", "")
	require.Error(t, err)
}
