package validate

import (
	"fmt"

	"github.com/elizafairlady/creditform/ui/keyboard"
	"github.com/elizafairlady/creditform/ui/proto"
	"github.com/elizafairlady/creditform/ui/theme"
)

// Entry is a single-line text input with validation.
type Entry struct {
	id     string
	rules  Rules
	kbd    *keyboard.Keyboard
	value  string
	cursor int // rune offset of the insertion point
	err    bool
}

var _ keyboard.Target = (*Entry)(nil)

// New returns an empty entry. rules may be nil for an entry that
// accepts everything; kbd may be nil when no on-screen keyboard is
// attached.
func New(id string, rules Rules, kbd *keyboard.Keyboard) *Entry {
	if rules == nil {
		rules = BaseRules{}
	}
	return &Entry{id: id, rules: rules, kbd: kbd}
}

func (e *Entry) ID() string    { return e.id }
func (e *Entry) Value() string { return e.value }
func (e *Entry) Cursor() int   { return e.cursor }

// Err reports whether the entry is marked invalid.
func (e *Entry) Err() bool { return e.err }

// Style returns the entry's presentation for its error flag.
func (e *Entry) Style() theme.Style { return theme.StyleFor(e.err) }

// Validate runs the entry's rules for ev and reports whether ev is
// accepted. The error flag is cleared first. A FocusGain makes the
// entry the keyboard's target and is always accepted.
func (e *Entry) Validate(ev proto.Event) bool {
	e.err = false

	switch ev := ev.(type) {
	case proto.FocusLoss:
		return e.rules.FocusOutRule(e.value)
	case proto.KeyInput:
		return e.rules.KeyRule(ev)
	case proto.FocusGain:
		if e.kbd != nil {
			e.kbd.ChangeTarget(e)
		}
		return true
	}
	panic(fmt.Sprintf("validate: unknown event %T", ev))
}

// Invalid handles an event that Validate rejected. A rejected
// FocusLoss marks the entry invalid; a rejected KeyInput is passed to
// the rules.
func (e *Entry) Invalid(ev proto.Event) {
	switch ev := ev.(type) {
	case proto.FocusLoss:
		e.err = true
	case proto.KeyInput:
		e.rules.KeyInvalid(ev)
	case proto.FocusGain:
	default:
		panic(fmt.Sprintf("validate: unknown event %T", ev))
	}
}

// Commit stores the result of an accepted key event and moves the
// cursor past the edit.
func (e *Entry) Commit(ev proto.KeyInput) {
	e.value = ev.Proposed
	switch ev.Action {
	case proto.ActionInsert:
		e.cursor = ev.Index + len([]rune(ev.Char))
	case proto.ActionDelete:
		e.cursor = ev.Index
	default:
		e.cursor = len([]rune(e.value))
	}
}

// MoveCursor moves the insertion point by delta runes, clamped to
// the value.
func (e *Entry) MoveCursor(delta int) {
	e.SetCursor(e.cursor + delta)
}

// SetCursor places the insertion point at rune offset at, clamped to
// the value.
func (e *Entry) SetCursor(at int) {
	n := len([]rune(e.value))
	switch {
	case at < 0:
		at = 0
	case at > n:
		at = n
	}
	e.cursor = at
}

// InsertEvent returns the key event for inserting text at rune
// offset index. Out of range offsets are clamped.
func (e *Entry) InsertEvent(index int, text string) proto.KeyInput {
	r := []rune(e.value)
	index = max(0, min(index, len(r)))
	return proto.KeyInput{
		ID:       e.id,
		Proposed: string(r[:index]) + text + string(r[index:]),
		Current:  e.value,
		Char:     text,
		Index:    index,
		Action:   proto.ActionInsert,
	}
}

// DeleteEvent returns the key event for deleting n runes starting at
// rune offset index. The range is clamped to the value.
func (e *Entry) DeleteEvent(index, n int) proto.KeyInput {
	r := []rune(e.value)
	index = max(0, min(index, len(r)))
	end := max(index, min(index+n, len(r)))
	return proto.KeyInput{
		ID:       e.id,
		Proposed: string(r[:index]) + string(r[end:]),
		Current:  e.value,
		Char:     string(r[index:end]),
		Index:    index,
		Action:   proto.ActionDelete,
	}
}

// SetEvent returns the programmatic key event replacing the value
// with text.
func (e *Entry) SetEvent(text string) proto.KeyInput {
	return proto.KeyInput{
		ID:       e.id,
		Proposed: text,
		Current:  e.value,
		Char:     text,
		Index:    -1,
		Action:   proto.ActionSet,
	}
}

// Set replaces the value programmatically. The change goes through
// Validate like any other key event and reports whether it was
// committed.
func (e *Entry) Set(text string) bool {
	ev := e.SetEvent(text)
	if !e.Validate(ev) {
		e.Invalid(ev)
		return false
	}
	e.Commit(ev)
	return true
}
