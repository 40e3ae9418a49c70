// Package styles defines the lipgloss themes for the chat widget.
package styles

import "github.com/charmbracelet/lipgloss"

// BaseColors defines global UI colors.
type BaseColors struct {
	Background string
	Foreground string
	Muted      string
	Accent     string
	Border     string
}

// MessageColors defines bubble colors by direction.
type MessageColors struct {
	Own   string
	Other string
}

// BadgeColors defines unread badge and read-tick colors.
type BadgeColors struct {
	Unread   string
	ReadTick string
	SentTick string
}

// ChromeColors defines non-content UI colors.
type ChromeColors struct {
	Header      string
	Footer      string
	SelectedRow string
	Separator   string
	Notice      string
}

// BorderColors defines border colors for pane state.
type BorderColors struct {
	ActivePane   string
	InactivePane string
	Divider      string
}

// Theme defines the chat widget style tokens.
type Theme struct {
	Name        string
	BorderStyle string // "rounded", "sharp", "hidden"

	Base    BaseColors
	Message MessageColors
	Badge   BadgeColors
	Chrome  ChromeColors
	Borders BorderColors
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	"default":       DefaultTheme,
	"high-contrast": HighContrastTheme,
}

// Named resolves a theme name, falling back to the default palette.
func Named(name string) Theme {
	if theme, ok := Themes[name]; ok {
		return theme
	}
	return DefaultTheme
}

func (t Theme) MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Base.Muted))
}

func (t Theme) AccentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Base.Accent))
}

func (t Theme) HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Base.Foreground)).
		Background(lipgloss.Color(t.Chrome.Header)).
		Bold(true).
		Padding(0, 1)
}

func (t Theme) FooterStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Base.Foreground)).
		Background(lipgloss.Color(t.Chrome.Footer)).
		Padding(0, 1)
}

func (t Theme) SelectedRowStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Chrome.SelectedRow)).
		Bold(true)
}

func (t Theme) UnreadBadgeStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Badge.Unread)).Bold(true)
}

func (t Theme) SeparatorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Chrome.Separator))
}

func (t Theme) NoticeStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Chrome.Notice)).Bold(true)
}

func (t Theme) OwnBubbleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Message.Own))
}

func (t Theme) OtherBubbleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Message.Other))
}

// Border returns the lipgloss border for the theme's border style.
func (t Theme) Border() lipgloss.Border {
	switch t.BorderStyle {
	case "sharp":
		return lipgloss.NormalBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}
