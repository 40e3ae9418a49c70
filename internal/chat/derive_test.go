package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	alice = User{ID: "A", Name: "Alice Rahman"}
	bob   = User{ID: "B", Name: "Bob Karim"}
	carol = User{ID: "C", Name: "Carol Das"}
)

func msg(id, from, to string, ts int64, read bool) Message {
	return Message{ID: id, SenderID: from, ReceiverID: to, Text: "m-" + id, Timestamp: ts, Read: read}
}

func TestDeriveConversations_Empty(t *testing.T) {
	require.Empty(t, DeriveConversations(nil, bob, NewDirectory(alice), nil))
}

func TestDeriveConversations_SingleUnread(t *testing.T) {
	msgs := []Message{{ID: "1", SenderID: "A", ReceiverID: "B", Text: "hi", Timestamp: 100}}

	convs := DeriveConversations(msgs, bob, NewDirectory(alice, bob), nil)
	require.Len(t, convs, 1)
	require.Equal(t, "A", convs[0].Peer.ID)
	require.Equal(t, 1, convs[0].Unread)
	require.Equal(t, "hi", convs[0].LastMessage.Text)
}

func TestDeriveConversations_NewestFirstPreviewAllUnreadCounted(t *testing.T) {
	msgs := []Message{
		msg("1", "A", "B", 100, false),
		msg("2", "A", "B", 300, false),
		msg("3", "B", "A", 200, true),
	}

	convs := DeriveConversations(msgs, bob, NewDirectory(alice, bob), nil)
	require.Len(t, convs, 1)
	// Preview is the most recent message regardless of direction and
	// read state; the unread counter scans the whole history.
	require.Equal(t, "2", convs[0].LastMessage.ID)
	require.Equal(t, 2, convs[0].Unread)
}

func TestDeriveConversations_OrderedByLastActivityDescending(t *testing.T) {
	msgs := []Message{
		msg("1", "A", "B", 100, true),
		msg("2", "C", "B", 500, true),
		msg("3", "B", "A", 200, true),
	}

	convs := DeriveConversations(msgs, bob, NewDirectory(alice, bob, carol), nil)
	require.Len(t, convs, 2)
	require.Equal(t, "C", convs[0].Peer.ID)
	require.Equal(t, "A", convs[1].Peer.ID)
	require.GreaterOrEqual(t, convs[0].LastMessage.Timestamp, convs[1].LastMessage.Timestamp)
}

func TestDeriveConversations_TiesKeepInputOrder(t *testing.T) {
	msgs := []Message{
		msg("1", "A", "B", 100, true),
		msg("2", "C", "B", 100, true),
	}

	convs := DeriveConversations(msgs, bob, NewDirectory(alice, bob, carol), nil)
	require.Len(t, convs, 2)
	require.Equal(t, "A", convs[0].Peer.ID)
	require.Equal(t, "C", convs[1].Peer.ID)
}

func TestDeriveConversations_NeverYieldsSelfPeer(t *testing.T) {
	msgs := []Message{
		msg("1", "B", "B", 100, false),
		msg("2", "A", "B", 200, false),
	}

	convs := DeriveConversations(msgs, bob, NewDirectory(alice, bob), nil)
	for _, conv := range convs {
		require.NotEqual(t, bob.ID, conv.Peer.ID)
	}
	require.Len(t, convs, 1)
}

func TestDeriveConversations_IgnoresForeignMessages(t *testing.T) {
	msgs := []Message{
		msg("1", "A", "C", 300, false),
		msg("2", "A", "B", 200, false),
	}

	convs := DeriveConversations(msgs, bob, NewDirectory(alice, bob, carol), nil)
	require.Len(t, convs, 1)
	require.Equal(t, "A", convs[0].Peer.ID)
	require.Equal(t, 1, convs[0].Unread)
}

func TestDeriveConversations_UnresolvedPeerSkipped(t *testing.T) {
	msgs := []Message{
		msg("1", "ghost", "B", 100, false),
		msg("2", "A", "B", 200, false),
	}

	convs := DeriveConversations(msgs, bob, NewDirectory(alice, bob), nil)
	require.Len(t, convs, 1)
	require.Equal(t, "A", convs[0].Peer.ID)
}

func TestDeriveConversations_HintResolvesMissingPeer(t *testing.T) {
	hint := User{ID: "ghost", Name: "New Lawyer"}
	msgs := []Message{msg("1", "ghost", "B", 100, false)}

	convs := DeriveConversations(msgs, bob, NewDirectory(alice, bob), &hint)
	require.Len(t, convs, 1)
	require.Equal(t, "New Lawyer", convs[0].Peer.Name)
	require.Equal(t, 1, convs[0].Unread)
}

func TestDeriveConversations_UnreadAccountingConservative(t *testing.T) {
	msgs := []Message{
		msg("1", "A", "B", 100, false),
		msg("2", "A", "B", 200, false),
		msg("3", "C", "B", 300, false),
		msg("4", "B", "A", 400, false), // outbound, never unread for B
		msg("5", "A", "B", 500, true),
	}

	dir := NewDirectory(alice, bob, carol)
	convs := DeriveConversations(msgs, bob, dir, nil)

	want := 0
	for _, m := range msgs {
		if _, ok := dir.Lookup(m.SenderID); ok && m.ReceiverID == "B" && !m.Read {
			want++
		}
	}
	got := 0
	for _, conv := range convs {
		got += conv.Unread
	}
	require.Equal(t, want, got)
}

func TestDeriveConversations_DeterministicAcrossPasses(t *testing.T) {
	msgs := []Message{
		msg("1", "A", "B", 100, false),
		msg("2", "C", "B", 300, false),
		msg("3", "B", "A", 200, true),
	}
	dir := NewDirectory(alice, bob, carol)

	first := DeriveConversations(msgs, bob, dir, nil)
	second := DeriveConversations(msgs, bob, dir, nil)
	require.Equal(t, first, second)
}

func TestEnsurePeer_PrependsEmptyConversation(t *testing.T) {
	convs := DeriveConversations(nil, bob, NewDirectory(), nil)
	convs = EnsurePeer(convs, carol)

	require.Len(t, convs, 1)
	require.Equal(t, "C", convs[0].Peer.ID)
	require.Equal(t, 0, convs[0].Unread)
	require.False(t, convs[0].HasMessages())
}

func TestEnsurePeer_NoDuplicateWhenHistoryExists(t *testing.T) {
	msgs := []Message{msg("1", "C", "B", 100, true)}
	convs := DeriveConversations(msgs, bob, NewDirectory(bob, carol), nil)
	convs = EnsurePeer(convs, carol)

	require.Len(t, convs, 1)
	require.True(t, convs[0].HasMessages())
}

func TestDirectory_DuplicateIDFirstWins(t *testing.T) {
	dir := NewDirectory(User{ID: "A", Name: "first"}, User{ID: "A", Name: "second"})
	got, ok := dir.Lookup("A")
	require.True(t, ok)
	require.Equal(t, "first", got.Name)
	require.Equal(t, 1, dir.Len())
}
