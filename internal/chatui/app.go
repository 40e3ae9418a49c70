// Package chatui is the secure messaging widget: a bubbletea program
// that orchestrates conversation selection, input composition, and
// send/mark-read side effects over the pure engine in internal/chat.
package chatui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/Tanjamul-Azad/Complete-Legal-Aid/internal/chat"
	"github.com/Tanjamul-Azad/Complete-Legal-Aid/internal/chatui/styles"
	"github.com/Tanjamul-Azad/Complete-Legal-Aid/internal/logging"
)

const (
	defaultPollInterval = 5 * time.Second
	requestTimeout      = 10 * time.Second
	noticeTTL           = 4 * time.Second
)

// Store is the message store adapter the widget writes through.
// FetchMessages returns nil on transport failure and a non-nil empty
// slice for a genuinely empty mailbox; the widget keeps its previous
// collection in the former case.
type Store interface {
	FetchMessages(ctx context.Context) []chat.Message
	SendMessage(ctx context.Context, receiverID, text, caseID, attachmentID string) *chat.Message
	MarkRead(ctx context.Context, ids []string) error
	FetchUsers(ctx context.Context) ([]chat.User, error)
}

type focusArea int

const (
	focusList focusArea = iota
	focusInput
)

// Config configures the widget.
type Config struct {
	// UserID is the current user's directory identity.
	UserID string

	// Peer optionally deep-links the widget into a conversation with
	// this user; it always wins over any prior selection and doubles
	// as the identity fallback when the directory has no entry yet.
	Peer *chat.User

	// CaseID associates sent messages with a legal case when set.
	CaseID string

	PollInterval   time.Duration
	Theme          string
	ShowTimestamps bool
}

func (c Config) normalize() (Config, error) {
	c.UserID = strings.TrimSpace(c.UserID)
	if c.UserID == "" {
		return Config{}, fmt.Errorf("user id required")
	}
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if strings.TrimSpace(c.Theme) == "" {
		c.Theme = "default"
	}
	if _, ok := styles.Themes[c.Theme]; !ok {
		return Config{}, fmt.Errorf("invalid theme %q", c.Theme)
	}
	return c, nil
}

// Model is the widget controller. All derivation runs synchronously
// inside Update; the only suspension points are store calls issued as
// tea.Cmds, whose results land back here as typed messages.
type Model struct {
	cfg   Config
	store Store
	log   zerolog.Logger

	me   chat.User
	dir  chat.Directory
	hint *chat.User

	// msgs is the owned message collection; replaced wholesale on
	// every change, never mutated through aliases.
	msgs  []chat.Message
	convs []chat.Conversation

	selected string // active peer ID, "" = no selection
	cursor   int    // list cursor, independent of selection
	input    string
	focus    focusArea

	notice string
	loaded bool // first successful fetch seen

	theme  styles.Theme
	width  int
	height int

	closing bool
}

type messagesFetchedMsg struct {
	msgs []chat.Message
}

type directoryMsg struct {
	users []chat.User
	err   error
}

type sentMsg struct {
	msg *chat.Message
}

type markPersistedMsg struct {
	peerID string
	err    error
}

type pollTickMsg struct{}

type noticeExpireMsg struct{}

// NewModel creates the widget controller.
func NewModel(cfg Config, store Store) (*Model, error) {
	normalized, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("store required")
	}

	m := &Model{
		cfg:   normalized,
		store: store,
		log:   logging.Component("chatui"),
		me:    chat.User{ID: normalized.UserID},
		hint:  normalized.Peer,
		theme: styles.Named(normalized.Theme),
		focus: focusList,
	}
	return m, nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.openCmd(), m.pollCmd())
}

// openCmd is the widget-open sequence: load the directory and the
// message collection, and honor an externally chosen peer, which
// always wins over any prior selection.
func (m *Model) openCmd() tea.Cmd {
	cmds := []tea.Cmd{
		m.fetchDirectoryCmd(),
		m.fetchMessagesCmd(),
	}
	if m.hint != nil {
		if cmd := m.Select(m.hint.ID); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		return m, nil

	case directoryMsg:
		if m.closing {
			return m, nil
		}
		if typed.err != nil {
			m.log.Warn().Err(typed.err).Msg("directory load failed")
			return m, m.setNotice("Could not load the user directory")
		}
		m.dir = chat.NewDirectory(typed.users...)
		if me, ok := m.dir.Lookup(m.cfg.UserID); ok {
			m.me = me
		}
		return m, m.rederive()

	case messagesFetchedMsg:
		if m.closing {
			return m, nil
		}
		// A nil fetch means transport failure: keep the current
		// collection; the next pass picks up the superset.
		if typed.msgs == nil {
			return m, nil
		}
		first := !m.loaded
		m.loaded = true
		m.msgs = typed.msgs
		var cmds []tea.Cmd
		// A peer activated before the collection arrived (deep link on
		// open) still gets its one read-marking pass, now that the
		// messages visible at activation time are actually here.
		if first && m.selected != "" {
			if cmd := m.markConversationRead(m.selected); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		if cmd := m.rederive(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case sentMsg:
		if m.closing {
			return m, nil
		}
		if typed.msg == nil {
			return m, m.setNotice("Message could not be sent")
		}
		// The persisted record flows into the collection; no optimistic
		// entry existed before this point. A fresh fetch then converges
		// on whatever else landed server-side meanwhile.
		m.msgs = append(append([]chat.Message(nil), m.msgs...), *typed.msg)
		return m, tea.Batch(m.rederive(), m.fetchMessagesCmd())

	case markPersistedMsg:
		if m.closing {
			return m, nil
		}
		if typed.err != nil {
			m.log.Warn().Err(typed.err).Str("peer_id", typed.peerID).Msg("mark read persist failed")
			return m, m.setNotice("Read receipts could not be saved")
		}
		return m, m.fetchMessagesCmd()

	case pollTickMsg:
		if m.closing {
			return m, nil
		}
		return m, tea.Batch(m.fetchMessagesCmd(), m.pollCmd())

	case noticeExpireMsg:
		m.notice = ""
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(typed)
	}

	return m, nil
}

// Select activates the conversation with peerID, firing the read-marking
// side effect exactly once per activation. Re-selecting the active peer
// is a no-op.
func (m *Model) Select(peerID string) tea.Cmd {
	peerID = strings.TrimSpace(peerID)
	if peerID == "" || peerID == m.selected {
		return nil
	}
	m.selected = peerID
	m.syncCursor()
	peerLog := logging.WithPeer(peerID)
	peerLog.Debug().Msg("conversation activated")
	return tea.Batch(m.markConversationRead(peerID), m.rederive())
}

// Send persists the compose buffer to the active peer. Blank text or a
// missing selection is rejected as a silent no-op; the buffer is
// cleared unconditionally on invocation.
func (m *Model) Send() tea.Cmd {
	text := strings.TrimSpace(m.input)
	if text == "" || m.selected == "" {
		return nil
	}
	m.input = ""
	receiver := m.selected
	caseID := m.cfg.CaseID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return sentMsg{msg: m.store.SendMessage(ctx, receiver, text, caseID, "")}
	}
}

// Close tears the widget down; results of in-flight calls arriving
// afterwards are discarded rather than applied.
func (m *Model) Close() tea.Cmd {
	m.closing = true
	return tea.Quit
}

// markConversationRead flips the read flag locally so a re-derivation
// immediately shows zero unread, then persists the flipped IDs.
// Messages arriving afterwards are unaffected.
func (m *Model) markConversationRead(peerID string) tea.Cmd {
	out, changed := chat.MarkConversationRead(m.msgs, m.cfg.UserID, peerID)
	if len(changed) == 0 {
		return nil
	}
	m.msgs = out
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return markPersistedMsg{peerID: peerID, err: m.store.MarkRead(ctx, changed)}
	}
}

// markAllRead clears unread state across every conversation and
// persists the flipped IDs.
func (m *Model) markAllRead() tea.Cmd {
	out, changed := chat.MarkAllRead(m.msgs, m.cfg.UserID)
	if len(changed) == 0 {
		return nil
	}
	m.msgs = out
	return tea.Batch(
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			return markPersistedMsg{err: m.store.MarkRead(ctx, changed)}
		},
		m.rederive(),
	)
}

// rederive recomputes the conversation list from the owned collection
// and reconciles selection state with it.
func (m *Model) rederive() tea.Cmd {
	m.convs = chat.DeriveConversations(m.msgs, m.me, m.dir, m.hint)
	if m.hint != nil {
		m.convs = chat.EnsurePeer(m.convs, *m.hint)
	}

	if m.selected != "" && !m.peerKnown(m.selected) {
		m.selected = ""
	}

	// Auto-select the most recent conversation, but never override an
	// existing explicit choice.
	if m.selected == "" && len(m.convs) > 0 {
		return m.Select(m.convs[0].Peer.ID)
	}

	m.syncCursor()
	return nil
}

func (m *Model) peerKnown(peerID string) bool {
	for _, conv := range m.convs {
		if conv.Peer.ID == peerID {
			return true
		}
	}
	return false
}

func (m *Model) syncCursor() {
	for i, conv := range m.convs {
		if conv.Peer.ID == m.selected {
			m.cursor = i
			return
		}
	}
	if m.cursor >= len(m.convs) {
		m.cursor = maxInt(0, len(m.convs)-1)
	}
}

// UnreadTotal is the header badge: distinct conversations with unread
// activity, not a message count.
func (m *Model) UnreadTotal() int {
	return chat.UnreadConversations(m.convs)
}

// Conversations exposes the derived list, newest-first.
func (m *Model) Conversations() []chat.Conversation {
	return m.convs
}

// ActiveTranscript is the active conversation's messages, oldest first.
func (m *Model) ActiveTranscript() []chat.Message {
	return chat.Transcript(m.msgs, m.cfg.UserID, m.selected)
}

// Selected returns the active peer ID, or "" when nothing is selected.
func (m *Model) Selected() string {
	return m.selected
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return m.Close()
	case "tab":
		if m.focus == focusList {
			m.focus = focusInput
		} else {
			m.focus = focusList
		}
		return nil
	}

	if m.focus == focusInput {
		return m.handleComposeKey(msg)
	}
	return m.handleListKey(msg)
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc":
		return m.Close()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return nil
	case "down", "j":
		if m.cursor < len(m.convs)-1 {
			m.cursor++
		}
		return nil
	case "R":
		return m.markAllRead()
	case "enter":
		if m.cursor < len(m.convs) {
			m.focus = focusInput
			return m.Select(m.convs[m.cursor].Peer.ID)
		}
		return nil
	}
	return nil
}

func (m *Model) handleComposeKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		return m.Send()
	case tea.KeyEsc:
		m.focus = focusList
		return nil
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
		return nil
	case tea.KeySpace:
		m.input += " "
		return nil
	case tea.KeyRunes:
		m.input += string(msg.Runes)
		return nil
	}
	return nil
}

func (m *Model) setNotice(text string) tea.Cmd {
	m.notice = text
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return noticeExpireMsg{} })
}

func (m *Model) fetchMessagesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return messagesFetchedMsg{msgs: m.store.FetchMessages(ctx)}
	}
}

func (m *Model) fetchDirectoryCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		users, err := m.store.FetchUsers(ctx)
		return directoryMsg{users: users, err: err}
	}
}

func (m *Model) pollCmd() tea.Cmd {
	return tea.Tick(m.cfg.PollInterval, func(time.Time) tea.Msg { return pollTickMsg{} })
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
