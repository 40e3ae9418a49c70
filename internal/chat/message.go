// Package chat implements the conversation aggregation and read-state
// engine behind the secure messaging widget: deriving per-peer
// conversations from a flat message collection, unread accounting, and
// transcript ordering. Everything in this package is pure; persistence
// lives in the store subpackage.
package chat

import "time"

// User is a directory identity referenced by messages.
type User struct {
	ID     string
	Name   string
	Avatar string
}

// Message is an immutable fact once persisted. The only permitted
// mutation is the read flag, and only false -> true; mutating helpers
// here return fresh slices instead of touching their input.
type Message struct {
	ID         string
	SenderID   string
	ReceiverID string
	Text       string
	// Timestamp is epoch milliseconds of the server-side sent_at.
	Timestamp int64
	Read      bool
	CaseID    string
}

// Time converts the epoch-millisecond timestamp into the given location.
func (m Message) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(m.Timestamp).In(loc)
}

// PeerID returns the other participant's ID relative to currentID.
func (m Message) PeerID(currentID string) string {
	if m.SenderID == currentID {
		return m.ReceiverID
	}
	return m.SenderID
}

// unreadFor reports whether the message counts against currentID's
// unread total.
func (m Message) unreadFor(currentID string) bool {
	return m.ReceiverID == currentID && !m.Read
}

// Conversation is a derived view: one peer, the most recent message
// exchanged with them, and how many of their messages are still unread.
// Conversations are recomputed from the message collection, never
// mutated in place.
type Conversation struct {
	Peer        User
	LastMessage Message
	Unread      int
}

// HasMessages reports whether the conversation carries any history.
// A conversation seeded by EnsurePeer for a just-selected user does not.
func (c Conversation) HasMessages() bool {
	return c.LastMessage.ID != "" || c.LastMessage.Timestamp != 0
}
