// Package stubserver is a development stand-in for the platform's chat
// API: an in-memory message store behind the same REST surface the real
// deployment exposes, so the TUI can run against localhost.
package stubserver

import (
	"sync"
	"time"
)

// User is a directory entry as the /users/ endpoint ships it.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Record is a stored chat message in the platform's wire shape.
type Record struct {
	MessageID  int64   `json:"message_id"`
	Case       *string `json:"case,omitempty"`
	Sender     string  `json:"sender"`
	Receiver   *string `json:"receiver,omitempty"`
	Text       string  `json:"message_text"`
	Attachment *string `json:"attachment,omitempty"`
	SentAt     string  `json:"sent_at"`
	IsRead     bool    `json:"is_read"`
}

// MessageStore holds messages and the user directory in memory.
type MessageStore struct {
	mu       sync.RWMutex
	messages []Record
	users    []User
	nextID   int64
	now      func() time.Time
}

// NewMessageStore creates an empty store.
func NewMessageStore() *MessageStore {
	return &MessageStore{nextID: 1, now: time.Now}
}

// Seed replaces the directory and preloads messages. Seeded messages
// get IDs assigned in order.
func (s *MessageStore) Seed(users []User, messages []Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]User(nil), users...)
	s.messages = nil
	for _, r := range messages {
		r.MessageID = s.nextID
		s.nextID++
		if r.SentAt == "" {
			r.SentAt = s.now().UTC().Format(time.RFC3339)
		}
		s.messages = append(s.messages, r)
	}
}

// List returns a copy of every stored message.
func (s *MessageStore) List() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.messages))
	copy(out, s.messages)
	return out
}

// Add stores a new message and returns the persisted record.
func (s *MessageStore) Add(sender, receiver, text, caseID, attachment string) Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := Record{
		MessageID: s.nextID,
		Sender:    sender,
		Text:      text,
		SentAt:    s.now().UTC().Format(time.RFC3339),
	}
	s.nextID++
	if receiver != "" {
		r.Receiver = &receiver
	}
	if caseID != "" {
		r.Case = &caseID
	}
	if attachment != "" {
		r.Attachment = &attachment
	}
	s.messages = append(s.messages, r)
	return r
}

// MarkRead flips is_read on one message. The second return reports
// whether the ID exists.
func (s *MessageStore) MarkRead(id int64, read bool) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].MessageID == id {
			s.messages[i].IsRead = read
			return s.messages[i], true
		}
	}
	return Record{}, false
}

// Users returns a copy of the directory.
func (s *MessageStore) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, len(s.users))
	copy(out, s.users)
	return out
}
