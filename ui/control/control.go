// Package control is the runtime between a UI front end and the
// entry form.
//
// It owns keyboard focus, turns front end actions into validation
// events for the form's entries, commits accepted keystrokes and
// reports rejected ones back to the entry. Every input, whether from
// a terminal, the on-screen keyboard or a replayed script, arrives as
// a proto.Action and takes the same path.
//
// Action kinds:
//
//	key id= proposed= current= char= index= action=
//	focusin id=
//	focusout id=
//	focus id=
//	next
//	prev
//	type [id=] text=
//	backspace [id=]
//	cursor [id=] (delta=<n> | to=<n|end>)
//	set id= text=
//	press [key=]
//	kbmove [dx=] [dy=]
//	click id=save|close
//	dismiss
//
// An omitted id means the focused entry.
package control

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/elizafairlady/creditform/ui/form"
	"github.com/elizafairlady/creditform/ui/proto"
	"github.com/elizafairlady/creditform/ui/validate"
	"github.com/elizafairlady/creditform/ui/view"
)

// Control hosts one entry form.
type Control struct {
	mu    sync.Mutex
	form  *form.EntryForm
	inbox *Inbox
	log   *slog.Logger
	focus string
	order []string

	// Notify is called after every handled action, outside the lock.
	// The front end should redraw.
	Notify func()

	// ActionLog records processed actions in protocol form.
	// Set to non-nil to enable logging.
	ActionLog []string
}

// New returns a control for f with focus on the first focusable
// node. inbox must be the notifier f was built with; logger may be
// nil.
func New(f *form.EntryForm, inbox *Inbox, logger *slog.Logger) *Control {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if inbox == nil {
		inbox = &Inbox{}
	}
	c := &Control{
		form:  f,
		inbox: inbox,
		log:   logger,
		order: view.Focusable(f.Node()),
	}
	if len(c.order) > 0 {
		c.setFocus(c.order[0])
	}
	return c
}

// Form returns the hosted form.
func (c *Control) Form() *form.EntryForm { return c.form }

// Inbox returns the notice inbox.
func (c *Control) Inbox() *Inbox { return c.inbox }

// FocusOrder returns the focusable node ids in tab order.
func (c *Control) FocusOrder() []string {
	return append([]string(nil), c.order...)
}

// Focus returns the id of the focused node.
func (c *Control) Focus() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focus
}

// Closed reports whether the form has been closed.
func (c *Control) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form.Closed()
}

// Tree returns the widget tree with the focused node marked
// focused=1.
func (c *Control) Tree() *view.Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	root := c.form.Node()
	if n := view.Find(root, c.focus); n != nil {
		n.Prop("focused", "1")
	}
	return root
}

// ProcessAction parses and handles one action line.
func (c *Control) ProcessAction(ctx context.Context, line string) error {
	a, err := proto.ParseAction(line)
	if err != nil {
		return err
	}
	return c.HandleAction(ctx, a)
}

// HandleAction handles a semantic action. Rejected input is not an
// error; errors are reserved for malformed or misdirected actions.
func (c *Control) HandleAction(ctx context.Context, a *proto.Action) error {
	c.mu.Lock()
	line := proto.SerializeAction(a)
	if c.ActionLog != nil {
		c.ActionLog = append(c.ActionLog, line)
	}
	c.log.Debug("action", "line", line)
	err := c.handle(ctx, a)
	notify := c.Notify
	c.mu.Unlock()

	if notify != nil {
		notify()
	}
	return err
}

// Replay handles a script of action lines. Blank lines and lines
// starting with '#' are skipped. Replay stops at the first error or
// once the form is closed.
func (c *Control) Replay(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.Closed() {
			c.log.Warn("form closed, ignoring rest of script", "line", n)
			return nil
		}
		if err := c.ProcessAction(ctx, line); err != nil {
			return fmt.Errorf("control: line %d: %w", n, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("control: read script: %w", err)
	}
	return nil
}

func (c *Control) handle(ctx context.Context, a *proto.Action) error {
	if c.form.Closed() {
		return form.ErrClosed
	}
	switch a.Kind {
	case proto.KindKey, proto.KindFocusIn, proto.KindFocusOut:
		ev, err := proto.ActionEvent(a)
		if err != nil {
			return err
		}
		return c.dispatchRaw(ev)

	case "focus":
		return c.setFocus(a.KVs["id"])

	case "next", "prev":
		return c.setFocus(c.neighbor(a.Kind == "next"))

	case "type":
		e, err := c.entry(a)
		if err != nil {
			return err
		}
		for _, r := range a.KVs["text"] {
			c.dispatch(e, e.InsertEvent(e.Cursor(), string(r)))
		}
		return nil

	case "backspace":
		e, err := c.entry(a)
		if err != nil {
			return err
		}
		if at := e.Cursor(); at > 0 {
			c.dispatch(e, e.DeleteEvent(at-1, 1))
		}
		return nil

	case "cursor":
		e, err := c.entry(a)
		if err != nil {
			return err
		}
		return moveCursor(e, a)

	case "set":
		e, err := c.entry(a)
		if err != nil {
			return err
		}
		c.dispatch(e, e.SetEvent(a.KVs["text"]))
		return nil

	case "press":
		return c.press(a.KVs["key"])

	case "kbmove":
		dx, err := intKV(a, "dx")
		if err != nil {
			return err
		}
		dy, err := intKV(a, "dy")
		if err != nil {
			return err
		}
		c.form.Keyboard.Move(dx, dy)
		return nil

	case "click":
		return c.click(ctx, a.KVs["id"])

	case "dismiss":
		c.inbox.Dismiss()
		return nil
	}
	return fmt.Errorf("control: unknown action %q", a.Kind)
}

// entry resolves the id of an action, defaulting to the focused node.
func (c *Control) entry(a *proto.Action) (*validate.Entry, error) {
	id := a.KVs["id"]
	if id == "" {
		id = c.focus
	}
	e := c.form.Entry(id)
	if e == nil {
		return nil, fmt.Errorf("control: %s: %q is not an entry", a.Kind, id)
	}
	return e, nil
}

// dispatchRaw dispatches an event received from outside. Key events
// must have been built against the entry's current value and propose
// exactly the result of their edit.
func (c *Control) dispatchRaw(ev proto.Event) error {
	e := c.form.Entry(ev.Target())
	if e == nil {
		return fmt.Errorf("control: %q is not an entry", ev.Target())
	}
	if k, ok := ev.(proto.KeyInput); ok && k.Action != proto.ActionSet {
		if k.Current != e.Value() {
			return fmt.Errorf("control: stale key event for %s: current %q, entry has %q", k.ID, k.Current, e.Value())
		}
		// The rules judge char at index; proposed must be that edit.
		p, err := proto.Apply(k.Current, k.Action, k.Index, k.Char)
		if err != nil {
			return fmt.Errorf("control: inconsistent key event for %s: %w", k.ID, err)
		}
		if p != k.Proposed {
			return fmt.Errorf("control: inconsistent key event for %s: proposed %q, edit gives %q", k.ID, k.Proposed, p)
		}
	}
	c.dispatch(e, ev)
	return nil
}

// dispatch validates ev on e and applies the outcome: an accepted key
// is committed, anything rejected is handed back to Invalid.
func (c *Control) dispatch(e *validate.Entry, ev proto.Event) bool {
	if !e.Validate(ev) {
		e.Invalid(ev)
		c.log.Info("rejected", "event", proto.SerializeEvent(ev))
		return false
	}
	if k, ok := ev.(proto.KeyInput); ok {
		e.Commit(k)
	}
	return true
}

// setFocus moves focus to id. The entry losing focus is validated
// first; a rejection marks it invalid but does not keep the focus.
func (c *Control) setFocus(id string) error {
	if !c.focusable(id) {
		return fmt.Errorf("control: cannot focus %q", id)
	}
	if id == c.focus {
		return nil
	}
	if prev := c.form.Entry(c.focus); prev != nil {
		c.dispatch(prev, proto.FocusLoss{ID: prev.ID()})
	}
	c.focus = id
	if next := c.form.Entry(id); next != nil {
		c.dispatch(next, proto.FocusGain{ID: id})
	}
	return nil
}

func (c *Control) focusable(id string) bool {
	for _, f := range c.order {
		if f == id {
			return true
		}
	}
	return false
}

// neighbor returns the next or previous id in tab order, wrapping.
func (c *Control) neighbor(forward bool) string {
	n := len(c.order)
	i := 0
	for j, id := range c.order {
		if id == c.focus {
			i = j
			break
		}
	}
	if forward {
		return c.order[(i+1)%n]
	}
	return c.order[(i+n-1)%n]
}

// press presses a key of the on-screen keyboard into its target.
// An empty label presses the selected key.
func (c *Control) press(label string) error {
	kbd := c.form.Keyboard
	if label == "" {
		label = kbd.Selected()
	} else if !kbd.Select(label) {
		return fmt.Errorf("control: press: no key %q", label)
	}
	ev, ok := kbd.Press(label)
	if !ok {
		return nil
	}
	e := c.form.Entry(ev.ID)
	if e == nil {
		return fmt.Errorf("control: press: keyboard target %q is not an entry", ev.ID)
	}
	c.dispatch(e, ev)
	return nil
}

func (c *Control) click(ctx context.Context, id string) error {
	switch id {
	case form.IDSave:
		name, credit := c.form.Name.Entry.Value(), c.form.Credit.Entry.Value()
		if err := c.form.Save(ctx); err != nil {
			c.log.Info("save refused", "error", err)
			return nil
		}
		c.log.Info("user created", "name", name, "credit", credit)
		c.form.Reset()
		// The cleared entry that had focus is not checked on the way out.
		c.focus = ""
		return c.setFocus(form.IDName)
	case form.IDClose:
		c.log.Info("form closed")
		c.form.Close()
		return nil
	}
	return fmt.Errorf("control: click: unknown button %q", id)
}

func moveCursor(e *validate.Entry, a *proto.Action) error {
	if to, ok := a.KVs["to"]; ok {
		if to == "end" {
			e.SetCursor(len([]rune(e.Value())))
			return nil
		}
		n, err := strconv.Atoi(to)
		if err != nil {
			return fmt.Errorf("control: cursor: bad to: %v", err)
		}
		e.SetCursor(n)
		return nil
	}
	d, err := intKV(a, "delta")
	if err != nil {
		return err
	}
	e.MoveCursor(d)
	return nil
}

// intKV returns an integer value, 0 when absent.
func intKV(a *proto.Action, k string) (int, error) {
	v, ok := a.KVs[k]
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("control: %s: bad %s: %v", a.Kind, k, err)
	}
	return n, nil
}
