// Package render implements the terminal backend for the form. It
// draws a view tree with lipgloss and turns Bubble Tea key messages
// into protocol actions.
package render

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/elizafairlady/creditform/ui/proto"
	"github.com/elizafairlady/creditform/ui/theme"
	"github.com/elizafairlady/creditform/ui/view"
)

// Renderer draws view trees.
type Renderer struct {
	Theme *theme.Theme
}

// New creates a renderer. A nil theme selects theme.Default.
func New(t *theme.Theme) *Renderer {
	if t == nil {
		t = theme.Default()
	}
	return &Renderer{Theme: t}
}

// Paint draws the tree rooted at root.
func (r *Renderer) Paint(root *view.Node) string {
	if root == nil {
		return ""
	}
	return r.paintNode(root)
}

func (r *Renderer) paintNode(n *view.Node) string {
	switch n.Type {
	case view.TypeText:
		return r.Theme.Label().Render(n.Props["text"])
	case view.TypeTextBox:
		return r.paintTextbox(n)
	case view.TypeButton:
		return r.Theme.Button(theme.Style(n.Props["style"]), n.Bool("focused")).Render(n.Props["text"])
	case view.TypeKey:
		return r.Theme.Key(n.Bool("selected"), n.Bool("active")).Render(n.Props["text"])
	}
	return r.paintContainer(n)
}

func (r *Renderer) paintContainer(n *view.Node) string {
	parts := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		parts = append(parts, r.paintNode(c))
	}
	var s string
	if n.Type == view.TypeHBox {
		s = lipgloss.JoinHorizontal(lipgloss.Bottom, parts...)
	} else {
		s = lipgloss.JoinVertical(lipgloss.Left, parts...)
	}
	// Focus ring for focusable containers such as the keyboard.
	if n.Bool("focusable") {
		border := lipgloss.HiddenBorder()
		if n.Bool("focused") {
			border = lipgloss.RoundedBorder()
		}
		s = lipgloss.NewStyle().Border(border).BorderForeground(r.Theme.Primary).Render(s)
	}
	return s
}

func (r *Renderer) paintTextbox(n *view.Node) string {
	focused := n.Bool("focused")
	text := n.Props["text"]
	if focused {
		text = withCursor(text, n.Int("cursor", 0))
	}
	return r.Theme.Entry(theme.Style(n.Props["style"]), focused).Render(text)
}

// withCursor shows the insertion point at rune offset at in reverse
// video.
func withCursor(s string, at int) string {
	rs := []rune(s)
	at = max(0, min(at, len(rs)))
	under := " "
	rest := ""
	if at < len(rs) {
		under = string(rs[at])
		rest = string(rs[at+1:])
	}
	return string(rs[:at]) + lipgloss.NewStyle().Reverse(true).Render(under) + rest
}

// --- Action generation ---

// KeyAction generates the action for a key message given the tree and
// the focused node. It returns nil for keys with no meaning there.
func KeyAction(root *view.Node, focusID string, msg tea.KeyMsg) *proto.Action {
	switch msg.Type {
	case tea.KeyTab:
		return proto.NewAction("next")
	case tea.KeyShiftTab:
		return proto.NewAction("prev")
	case tea.KeyEsc:
		return ClickAction("close")
	}

	n := view.Find(root, focusID)
	if n == nil {
		return nil
	}
	switch n.Type {
	case view.TypeTextBox:
		return textboxAction(focusID, msg)
	case view.TypeButton:
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeySpace {
			return ClickAction(focusID)
		}
	default:
		if n.Bool("focusable") {
			return keyboardAction(msg)
		}
	}
	return nil
}

func textboxAction(id string, msg tea.KeyMsg) *proto.Action {
	switch msg.Type {
	case tea.KeyRunes:
		return proto.NewAction("type", "id", id, "text", string(msg.Runes))
	case tea.KeySpace:
		return proto.NewAction("type", "id", id, "text", " ")
	case tea.KeyBackspace:
		return proto.NewAction("backspace", "id", id)
	case tea.KeyLeft:
		return proto.NewAction("cursor", "id", id, "delta", "-1")
	case tea.KeyRight:
		return proto.NewAction("cursor", "id", id, "delta", "1")
	case tea.KeyHome, tea.KeyCtrlA:
		return proto.NewAction("cursor", "id", id, "to", "0")
	case tea.KeyEnd, tea.KeyCtrlE:
		return proto.NewAction("cursor", "id", id, "to", "end")
	case tea.KeyEnter:
		return proto.NewAction("next")
	}
	return nil
}

func keyboardAction(msg tea.KeyMsg) *proto.Action {
	switch msg.Type {
	case tea.KeyLeft:
		return proto.NewAction("kbmove", "dx", "-1")
	case tea.KeyRight:
		return proto.NewAction("kbmove", "dx", "1")
	case tea.KeyUp:
		return proto.NewAction("kbmove", "dy", "-1")
	case tea.KeyDown:
		return proto.NewAction("kbmove", "dy", "1")
	case tea.KeyEnter, tea.KeySpace:
		return proto.NewAction("press")
	}
	return nil
}

// ClickAction generates a click on a button.
func ClickAction(id string) *proto.Action {
	return proto.NewAction("click", "id", id)
}
