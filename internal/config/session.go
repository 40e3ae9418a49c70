package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Session remembers where the user left off so the widget reopens the
// same conversation on the next launch.
type Session struct {
	// UserID is the identity the session belongs to.
	UserID string `yaml:"user,omitempty"`
	// PeerID is the last active conversation partner.
	PeerID string `yaml:"peer,omitempty"`
	// PeerName is the partner's display name (for display before the
	// directory loads).
	PeerName string `yaml:"peer_name,omitempty"`
	// UpdatedAt is when the session was last modified.
	UpdatedAt time.Time `yaml:"updated_at,omitempty"`
}

// IsEmpty returns true if no session is recorded.
func (s *Session) IsEmpty() bool {
	return s.PeerID == ""
}

// BelongsTo reports whether the session was recorded for userID. A
// session saved under another identity must not leak its conversation.
func (s *Session) BelongsTo(userID string) bool {
	return s.UserID == userID
}

// SetPeer records the active conversation partner.
func (s *Session) SetPeer(userID, peerID, peerName string) {
	s.UserID = userID
	s.PeerID = peerID
	s.PeerName = peerName
	s.UpdatedAt = time.Now()
}

// Clear removes the recorded conversation.
func (s *Session) Clear() {
	s.UserID = ""
	s.PeerID = ""
	s.PeerName = ""
	s.UpdatedAt = time.Now()
}

// SessionStore manages loading and saving the session file.
type SessionStore struct {
	path string
	mu   sync.RWMutex
}

// NewSessionStore creates a session store.
// If path is empty, uses the default path (~/.config/legalaid/session.yaml).
func NewSessionStore(path string) *SessionStore {
	if path == "" {
		homeDir, _ := os.UserHomeDir()
		path = filepath.Join(homeDir, ".config", "legalaid", "session.yaml")
	}
	return &SessionStore{path: path}
}

// DefaultSessionStore returns a session store using the default path.
func DefaultSessionStore() *SessionStore {
	return NewSessionStore("")
}

// Path returns the session file path.
func (s *SessionStore) Path() string {
	return s.path
}

// Load reads the session from disk.
// Returns an empty session if the file doesn't exist.
func (s *SessionStore) Load() (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess := &Session{}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return sess, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	if err := yaml.Unmarshal(data, sess); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	return sess, nil
}

// Save writes the session to disk.
func (s *SessionStore) Save(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := yaml.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Clear removes the session file.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
