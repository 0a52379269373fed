// Package theme defines the visual style model for the form.
//
// Widgets carry a Style name; the Theme turns names into Lip Gloss
// styles at render time. StyleFor is the only mapping from an entry's
// error flag to its presentation.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Style names a presentation variant.
type Style string

const (
	Primary Style = "primary"
	Danger  Style = "danger"
	Success Style = "success"
)

// StyleFor returns the entry style for an error flag.
func StyleFor(invalid bool) Style {
	if invalid {
		return Danger
	}
	return Primary
}

// Theme holds the colors used for rendering.
type Theme struct {
	Primary lipgloss.Color
	Danger  lipgloss.Color
	Success lipgloss.Color
	Text    lipgloss.Color
	Dim     lipgloss.Color

	EntryWidth int
	LabelWidth int
}

// Default returns the default theme: blue entries, red errors, green
// save button.
func Default() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#4582ec"),
		Danger:     lipgloss.Color("#d9534f"),
		Success:    lipgloss.Color("#02b875"),
		Text:       lipgloss.Color("#f8f8f2"),
		Dim:        lipgloss.Color("#7f8c8d"),
		EntryWidth: 20,
		LabelWidth: 10,
	}
}

// Color returns the accent color for a style. Unknown styles use
// Primary.
func (t *Theme) Color(s Style) lipgloss.Color {
	switch s {
	case Danger:
		return t.Danger
	case Success:
		return t.Success
	}
	return t.Primary
}

// Entry returns the style of a text entry. The focused entry gets a
// thick border.
func (t *Theme) Entry(s Style, focused bool) lipgloss.Style {
	border := lipgloss.NormalBorder()
	if focused {
		border = lipgloss.ThickBorder()
	}
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(t.Color(s)).
		Width(t.EntryWidth).
		Padding(0, 1)
}

// Label returns the inverse style used for field labels.
func (t *Theme) Label() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Primary).
		Width(t.LabelWidth).
		Align(lipgloss.Center).
		MarginTop(1)
}

// Button returns the style of a button.
func (t *Theme) Button(s Style, focused bool) lipgloss.Style {
	st := lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Color(s)).
		Padding(0, 3).
		Margin(0, 1)
	if focused {
		st = st.Bold(true).Underline(true)
	}
	return st
}

// Key returns the style of an on-screen keyboard key.
func (t *Theme) Key(selected, active bool) lipgloss.Style {
	st := lipgloss.NewStyle().Padding(0, 1).Foreground(t.Dim)
	if active {
		st = st.Foreground(t.Text)
	}
	if selected && active {
		st = st.Background(t.Primary).Bold(true)
	}
	return st
}

// Notice returns the style of the message line.
func (t *Theme) Notice() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Danger).
		Padding(0, 1).
		MarginTop(1)
}

// Hint returns the style of help text.
func (t *Theme) Hint() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Dim).MarginTop(1)
}

// named maps color names accepted in configuration to hex values.
var named = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#d9534f",
	"green":   "#02b875",
	"blue":    "#4582ec",
	"cyan":    "#5bc0de",
	"magenta": "#d63384",
	"yellow":  "#f0ad4e",
	"grey":    "#7f8c8d",
	"gray":    "#7f8c8d",
}

// ParseColor parses a color string. Supports:
//   - Named colors: "black", "white", "red", etc.
//   - Hex: "#RRGGBB", "#RGB" or "0xRRGGBB"
//   - ANSI palette indexes: "0" to "255"
//
// It returns false for anything else.
func ParseColor(s string) (lipgloss.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := named[s]; ok {
		return lipgloss.Color(hex), true
	}
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		s = "#" + rest
	}
	if rest, ok := strings.CutPrefix(s, "#"); ok {
		if (len(rest) != 6 && len(rest) != 3) || strings.Trim(rest, "0123456789abcdef") != "" {
			return "", false
		}
		return lipgloss.Color(s), true
	}
	if s == "" || len(s) > 3 || strings.Trim(s, "0123456789") != "" {
		return "", false
	}
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	if n > 255 {
		return "", false
	}
	return lipgloss.Color(s), true
}
