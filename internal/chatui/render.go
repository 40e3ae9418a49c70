package chatui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Tanjamul-Azad/Complete-Legal-Aid/internal/chat"
)

const minSplitWidth = 70

func (m *Model) View() string {
	if m.width <= 0 {
		return "loading..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	if m.width < minSplitWidth {
		// Narrow terminals: one pane at a time, like the mobile layout.
		if m.selected == "" {
			body = m.renderList(m.width, bodyHeight)
		} else {
			body = m.renderChatPane(m.width, bodyHeight)
		}
	} else {
		listWidth := clampInt(m.width*35/100, 24, 44)
		chatWidth := m.width - listWidth - 1
		left := m.renderList(listWidth, bodyHeight)
		divider := m.theme.SeparatorStyle().Render(strings.TrimRight(strings.Repeat("│\n", bodyHeight), "\n"))
		right := m.renderChatPane(chatWidth, bodyHeight)
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, divider, right)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) renderHeader() string {
	left := "Secure Messages"
	right := ""
	if unread := m.UnreadTotal(); unread > 0 {
		right = m.theme.UnreadBadgeStyle().Render(fmt.Sprintf("%d unread", unread))
	}
	if m.notice != "" {
		right = m.theme.NoticeStyle().Render(m.notice)
	}

	space := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if space < 1 {
		space = 1
	}
	line := left + strings.Repeat(" ", space) + right
	return m.theme.HeaderStyle().Width(maxInt(0, m.width)).Render(line)
}

func (m *Model) renderFooter() string {
	base := "tab focus  enter select/send  R read all  esc back  q quit"
	if m.focus == focusInput {
		base = "enter send  esc back to list  tab focus"
	}
	return m.theme.FooterStyle().Width(maxInt(0, m.width)).Render(truncate(base, maxInt(0, m.width-2)))
}

func (m *Model) renderList(width, height int) string {
	if len(m.convs) == 0 {
		return m.theme.MutedStyle().Width(width).Render("No conversations yet")
	}

	lines := make([]string, 0, height)
	for i, conv := range m.convs {
		if len(lines) >= height {
			break
		}
		lines = append(lines, m.renderRow(conv, i == m.cursor, conv.Peer.ID == m.selected, width))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderRow(conv chat.Conversation, cursored, active bool, width int) string {
	marker := "  "
	if cursored {
		marker = "> "
	}

	name := conv.Peer.Name
	if name == "" {
		name = conv.Peer.ID
	}

	stamp := ""
	if m.cfg.ShowTimestamps && conv.HasMessages() {
		stamp = conv.LastMessage.Time(time.Local).Format("15:04")
	}

	badge := ""
	if conv.Unread > 0 {
		badge = m.theme.UnreadBadgeStyle().Render(fmt.Sprintf(" (%d)", conv.Unread))
	}

	preview := conv.LastMessage.Text
	if !conv.HasMessages() {
		preview = "start the conversation"
	}

	head := truncate(marker+name, maxInt(4, width-lipgloss.Width(stamp)-lipgloss.Width(badge)-1))
	top := head + badge
	if stamp != "" {
		gap := width - lipgloss.Width(top) - lipgloss.Width(stamp)
		if gap < 1 {
			gap = 1
		}
		top += strings.Repeat(" ", gap) + m.theme.MutedStyle().Render(stamp)
	}
	bottom := m.theme.MutedStyle().Render(truncate("  "+preview, maxInt(4, width)))

	if active {
		top = m.theme.SelectedRowStyle().Render(stripANSI(top))
	}
	return top + "\n" + bottom
}

func (m *Model) renderChatPane(width, height int) string {
	if m.selected == "" {
		placeholder := "Select a conversation\n\nChoose a person from the list to start chatting\nor view your message history."
		return m.theme.MutedStyle().Width(width).Height(height).Align(lipgloss.Center, lipgloss.Center).Render(placeholder)
	}

	compose := m.renderCompose(width)
	transcriptHeight := height - lipgloss.Height(compose) - 1
	if transcriptHeight < 1 {
		transcriptHeight = 1
	}
	transcript := m.renderTranscript(width, transcriptHeight)
	return lipgloss.JoinVertical(lipgloss.Left, transcript, compose)
}

func (m *Model) renderTranscript(width, height int) string {
	segments := chat.Segments(m.ActiveTranscript(), time.Now(), time.Local)
	if len(segments) == 0 {
		return m.theme.MutedStyle().Width(width).Height(height).Render("No messages yet")
	}

	var lines []string
	for _, segment := range segments {
		lines = append(lines, m.renderDaySeparator(segment.Label, width))
		for _, msg := range segment.Messages {
			lines = append(lines, m.renderBubble(msg, width))
		}
	}

	// Pin to the bottom: the newest message is always in view.
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	return lipgloss.NewStyle().Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderDaySeparator(label string, width int) string {
	text := "── " + strings.ToUpper(label) + " ──"
	return m.theme.SeparatorStyle().Width(width).Align(lipgloss.Center).Render(text)
}

func (m *Model) renderBubble(msg chat.Message, width int) string {
	own := msg.SenderID == m.cfg.UserID

	body := truncate(msg.Text, maxInt(8, width*3/4))
	meta := ""
	if m.cfg.ShowTimestamps {
		meta = msg.Time(time.Local).Format("15:04")
	}
	if own {
		// Double-state tick: accent once the peer has read it.
		tick := m.theme.MutedStyle().Render("✓")
		if msg.Read {
			tick = m.theme.AccentStyle().Render("✓✓")
		}
		meta = strings.TrimSpace(meta + " " + tick)
	}

	if own {
		line := m.theme.OwnBubbleStyle().Render(body)
		if meta != "" {
			line += " " + meta
		}
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(line)
	}
	line := m.theme.OtherBubbleStyle().Render(body)
	if meta != "" {
		line += " " + m.theme.MutedStyle().Render(meta)
	}
	return line
}

func (m *Model) renderCompose(width int) string {
	prompt := "> "
	text := m.input
	if text == "" && m.focus != focusInput {
		text = m.theme.MutedStyle().Render("Type your message...")
	}

	border := m.theme.Borders.InactivePane
	if m.focus == focusInput {
		border = m.theme.Borders.ActivePane
	}
	boxStyle := lipgloss.NewStyle().
		Border(m.theme.Border()).
		BorderForeground(lipgloss.Color(border)).
		Width(maxInt(4, width-2))
	return boxStyle.Render(truncate(prompt+text, maxInt(4, width-4)))
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// stripANSI drops styling before re-styling a whole row as selected.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == 0x1b:
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
