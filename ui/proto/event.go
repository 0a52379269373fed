package proto

import (
	"fmt"
	"strconv"
)

// EditAction is the kind of edit a key event proposes. The numeric
// values match the Tk %d substitution so recorded scripts stay
// readable next to Tk traces.
type EditAction int

const (
	ActionSet    EditAction = -1 // programmatic change, not a keystroke
	ActionDelete EditAction = 0
	ActionInsert EditAction = 1
)

func (a EditAction) String() string {
	switch a {
	case ActionSet:
		return "set"
	case ActionDelete:
		return "delete"
	case ActionInsert:
		return "insert"
	}
	return "EditAction(" + strconv.Itoa(int(a)) + ")"
}

// ParseEditAction accepts either the numeric code or the name.
func ParseEditAction(s string) (EditAction, error) {
	switch s {
	case "-1", "set":
		return ActionSet, nil
	case "0", "delete":
		return ActionDelete, nil
	case "1", "insert":
		return ActionInsert, nil
	}
	return 0, fmt.Errorf("proto: bad edit action %q", s)
}

// Event is a validation trigger delivered to one entry. The set of
// implementations is closed: KeyInput, FocusLoss and FocusGain.
type Event interface {
	// Target is the id of the entry the event is for.
	Target() string
	isEvent()
}

// KeyInput describes an edit that has not been committed yet.
type KeyInput struct {
	ID       string
	Proposed string // value after the edit
	Current  string // value before the edit
	Char     string // inserted or deleted text
	Index    int    // rune index of the edit, -1 for ActionSet
	Action   EditAction
}

// FocusLoss is sent when an entry loses keyboard focus.
type FocusLoss struct{ ID string }

// FocusGain is sent when an entry gains keyboard focus.
type FocusGain struct{ ID string }

func (e KeyInput) Target() string  { return e.ID }
func (e FocusLoss) Target() string { return e.ID }
func (e FocusGain) Target() string { return e.ID }

func (KeyInput) isEvent()  {}
func (FocusLoss) isEvent() {}
func (FocusGain) isEvent() {}

// Action kinds carrying validation events.
const (
	KindKey      = "key"
	KindFocusIn  = "focusin"
	KindFocusOut = "focusout"
)

// EventAction converts an event to its action line form.
func EventAction(ev Event) *Action {
	switch e := ev.(type) {
	case KeyInput:
		return NewAction(KindKey,
			"id", e.ID,
			"proposed", e.Proposed,
			"current", e.Current,
			"char", e.Char,
			"index", strconv.Itoa(e.Index),
			"action", strconv.Itoa(int(e.Action)),
		)
	case FocusLoss:
		return NewAction(KindFocusOut, "id", e.ID)
	case FocusGain:
		return NewAction(KindFocusIn, "id", e.ID)
	}
	panic(fmt.Sprintf("proto: unknown event %T", ev))
}

// ActionEvent converts a key, focusin or focusout action to an event.
// For key actions a missing proposed value is computed from current,
// char, index and action.
func ActionEvent(a *Action) (Event, error) {
	id := a.KVs["id"]
	if id == "" {
		return nil, fmt.Errorf("proto: %s: missing id", a.Kind)
	}
	switch a.Kind {
	case KindFocusIn:
		return FocusGain{ID: id}, nil
	case KindFocusOut:
		return FocusLoss{ID: id}, nil
	case KindKey:
	default:
		return nil, fmt.Errorf("proto: %s is not an event action", a.Kind)
	}

	ev := KeyInput{
		ID:      id,
		Current: a.KVs["current"],
		Char:    a.KVs["char"],
		Action:  ActionInsert,
	}
	if s, ok := a.KVs["action"]; ok {
		act, err := ParseEditAction(s)
		if err != nil {
			return nil, err
		}
		ev.Action = act
	}
	switch s, ok := a.KVs["index"]; {
	case ok:
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("proto: key: bad index: %v", err)
		}
		ev.Index = n
	case ev.Action == ActionSet:
		ev.Index = -1
	default:
		ev.Index = len([]rune(ev.Current))
	}
	if p, ok := a.KVs["proposed"]; ok {
		ev.Proposed = p
		return ev, nil
	}
	p, err := Apply(ev.Current, ev.Action, ev.Index, ev.Char)
	if err != nil {
		return nil, err
	}
	ev.Proposed = p
	return ev, nil
}

// Apply returns the value that results from performing an edit on
// current. For ActionSet the result is text itself.
func Apply(current string, act EditAction, index int, text string) (string, error) {
	if act == ActionSet {
		return text, nil
	}
	r := []rune(current)
	switch act {
	case ActionInsert:
		if index < 0 || index > len(r) {
			return "", fmt.Errorf("proto: insert index %d out of range [0,%d]", index, len(r))
		}
		return string(r[:index]) + text + string(r[index:]), nil
	case ActionDelete:
		n := len([]rune(text))
		if index < 0 || index+n > len(r) {
			return "", fmt.Errorf("proto: delete %d at %d out of range [0,%d]", n, index, len(r))
		}
		if string(r[index:index+n]) != text {
			return "", fmt.Errorf("proto: delete %q at %d does not match %q", text, index, string(r[index:index+n]))
		}
		return string(r[:index]) + string(r[index+n:]), nil
	}
	return "", fmt.Errorf("proto: bad edit action %v", act)
}

// ParseEvent decodes an event from an action line.
func ParseEvent(line string) (Event, error) {
	a, err := ParseAction(line)
	if err != nil {
		return nil, err
	}
	return ActionEvent(a)
}

// SerializeEvent encodes an event as an action line.
func SerializeEvent(ev Event) string {
	return SerializeAction(EventAction(ev))
}
