package stubserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Tanjamul-Azad/Complete-Legal-Aid/internal/chat/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *MessageStore) {
	t.Helper()
	ms := NewMessageStore()
	srv := httptest.NewServer(New(ms).Handler())
	t.Cleanup(srv.Close)
	return srv, ms
}

func TestListMessages_EnvelopeShape(t *testing.T) {
	srv, ms := newTestServer(t)
	ms.Seed(nil, []Record{
		{Sender: "a", Receiver: ptr("b"), Text: "hi"},
	})

	resp, err := http.Get(srv.URL + "/api/chat-messages/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page struct {
		Results []Record `json:"results"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	require.Len(t, page.Results, 1)
	require.Equal(t, int64(1), page.Results[0].MessageID)
	require.Equal(t, "hi", page.Results[0].Text)
	require.NotEmpty(t, page.Results[0].SentAt)
}

func TestCreateMessage_RequiresAuthAndFields(t *testing.T) {
	srv, _ := newTestServer(t)

	post := func(token string, payload string) *http.Response {
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/chat-messages/", bytes.NewReader([]byte(payload)))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Token "+token)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	resp := post("", `{"message_text":"hi","receiver":"b"}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = post("a", `{"message_text":"  ","receiver":"b"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = post("a", `{"message_text":"hi","receiver":""}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = post("a", `{"message_text":"hi","receiver":"b","case":"case-1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var rec Record
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	resp.Body.Close()
	require.Equal(t, "a", rec.Sender)
	require.Equal(t, "b", *rec.Receiver)
	require.Equal(t, "case-1", *rec.Case)
	require.False(t, rec.IsRead)
}

func TestPatchMessage_FlipsReadFlag(t *testing.T) {
	srv, ms := newTestServer(t)
	ms.Seed(nil, []Record{
		{Sender: "a", Receiver: ptr("b"), Text: "hi"},
	})

	req, err := http.NewRequest(http.MethodPatch, srv.URL+"/api/chat-messages/1/", bytes.NewReader([]byte(`{"is_read":true}`)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.True(t, ms.List()[0].IsRead)
}

func TestPatchMessage_UnknownID(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodPatch, srv.URL+"/api/chat-messages/99/", bytes.NewReader([]byte(`{"is_read":true}`)))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// The store client and the stub speak the same dialect end to end.
func TestRoundTripWithStoreClient(t *testing.T) {
	srv, ms := newTestServer(t)
	SeedDemo(ms)

	client, err := store.New(srv.URL+"/api", "client-7")
	require.NoError(t, err)
	ctx := context.Background()

	users, err := client.FetchUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	msgs := client.FetchMessages(ctx)
	require.Len(t, msgs, 4)
	require.Equal(t, "lawyer-3", msgs[2].SenderID)
	require.False(t, msgs[2].Read)

	sent := client.SendMessage(ctx, "lawyer-3", "Tomorrow works.", "case-1042", "")
	require.NotNil(t, sent)
	require.Equal(t, "client-7", sent.SenderID)
	require.Equal(t, "lawyer-3", sent.ReceiverID)
	require.NotZero(t, sent.Timestamp)

	require.NoError(t, client.MarkRead(ctx, []string{msgs[2].ID, msgs[3].ID}))
	after := client.FetchMessages(ctx)
	require.Len(t, after, 5)
	require.True(t, after[2].Read)
	require.True(t, after[3].Read)
}
