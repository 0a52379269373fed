// Package ui provides the top-level API for running the form in a
// terminal.
//
// Example usage:
//
//	err := ui.Run(ctx, "New User Data", c, ui.Options{})
//	if err != nil {
//		log.Fatal(err)
//	}
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/elizafairlady/creditform/ui/control"
	"github.com/elizafairlady/creditform/ui/proto"
	"github.com/elizafairlady/creditform/ui/render"
	"github.com/elizafairlady/creditform/ui/theme"
)

// Options configure Run.
type Options struct {
	AltScreen bool
	Theme     *theme.Theme
	Logger    *slog.Logger

	// Input and Output override the terminal; mainly for tests.
	Input  io.Reader
	Output io.Writer
}

// Run shows the form hosted by c until it is closed, the user quits
// or ctx is canceled.
func Run(ctx context.Context, title string, c *control.Control, opts Options) error {
	m := newModel(ctx, title, c, opts)

	popts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		popts = append(popts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		popts = append(popts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		popts = append(popts, tea.WithOutput(opts.Output))
	}

	if _, err := tea.NewProgram(m, popts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

const hint = "tab/shift+tab focus • enter select • esc close • ctrl+c quit"

// model adapts a Control to Bubble Tea. All state lives in the
// control; the model only translates keys and draws.
type model struct {
	ctx   context.Context
	title string
	c     *control.Control
	r     *render.Renderer
	log   *slog.Logger
}

func newModel(ctx context.Context, title string, c *control.Control, opts Options) *model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &model{
		ctx:   ctx,
		title: title,
		c:     c,
		r:     render.New(opts.Theme),
		log:   logger,
	}
}

func (m *model) Init() tea.Cmd {
	return tea.SetWindowTitle(m.title)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	var a *proto.Action
	if _, pending := m.c.Inbox().Pending(); pending {
		// A notice is modal: the next key only dismisses it.
		a = proto.NewAction("dismiss")
	} else {
		a = render.KeyAction(m.c.Tree(), m.c.Focus(), key)
	}
	if a == nil {
		return m, nil
	}
	if err := m.c.HandleAction(m.ctx, a); err != nil {
		m.log.Warn("action failed", "action", proto.SerializeAction(a), "error", err)
	}
	if m.c.Closed() {
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) View() string {
	if m.c.Closed() {
		return ""
	}
	th := m.r.Theme
	parts := []string{
		lipgloss.NewStyle().Bold(true).Foreground(th.Primary).Render(m.title),
		m.r.Paint(m.c.Tree()),
	}
	if n, ok := m.c.Inbox().Pending(); ok {
		parts = append(parts, th.Notice().Render(n.Title+": "+n.Message+"  (press any key)"))
	}
	parts = append(parts, th.Hint().Render(hint))
	return lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
}
