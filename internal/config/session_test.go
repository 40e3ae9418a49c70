package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSession_IsEmpty(t *testing.T) {
	tests := []struct {
		name string
		sess Session
		want bool
	}{
		{
			name: "empty session",
			sess: Session{},
			want: true,
		},
		{
			name: "with peer",
			sess: Session{UserID: "client-7", PeerID: "lawyer-3"},
			want: false,
		},
		{
			name: "user without peer",
			sess: Session{UserID: "client-7"},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.sess.IsEmpty())
		})
	}
}

func TestSession_BelongsTo(t *testing.T) {
	sess := Session{UserID: "client-7", PeerID: "lawyer-3"}
	require.True(t, sess.BelongsTo("client-7"))
	require.False(t, sess.BelongsTo("client-8"))
}

func TestSession_SetPeerAndClear(t *testing.T) {
	var sess Session
	sess.SetPeer("client-7", "lawyer-3", "Adv. Farhan Chowdhury")
	require.Equal(t, "lawyer-3", sess.PeerID)
	require.Equal(t, "Adv. Farhan Chowdhury", sess.PeerName)
	require.False(t, sess.UpdatedAt.IsZero())

	sess.Clear()
	require.True(t, sess.IsEmpty())
	require.Empty(t, sess.UserID)
}

func TestSessionStore_LoadMissingFile(t *testing.T) {
	store := NewSessionStore(filepath.Join(t.TempDir(), "session.yaml"))
	sess, err := store.Load()
	require.NoError(t, err)
	require.True(t, sess.IsEmpty())
}

func TestSessionStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.yaml")
	store := NewSessionStore(path)

	var sess Session
	sess.SetPeer("client-7", "lawyer-3", "Adv. Farhan Chowdhury")
	require.NoError(t, store.Save(&sess))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "client-7", loaded.UserID)
	require.Equal(t, "lawyer-3", loaded.PeerID)
	require.Equal(t, "Adv. Farhan Chowdhury", loaded.PeerName)
}

func TestSessionStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	store := NewSessionStore(path)

	require.NoError(t, store.Save(&Session{UserID: "client-7", PeerID: "lawyer-3"}))
	require.NoError(t, store.Clear())
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))

	// Clearing an already-missing file is not an error.
	require.NoError(t, store.Clear())
}

func TestSessionStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml: ["), 0600))

	_, err := NewSessionStore(path).Load()
	require.Error(t, err)
}
