// Package validate implements validated text entries.
//
// An Entry holds the text of one input widget and decides, for every
// UI event, whether the event is accepted. The decision itself is
// delegated to a Rules value; Entry.Validate is the dispatch routine
// shared by every kind of entry and is never specialized.
//
// The host runtime calls Validate before committing a keystroke, and
// calls Invalid whenever Validate returned false for a KeyInput or a
// FocusLoss. Validate clears the entry's error flag before asking the
// rules, so a field previously marked invalid shows its normal style
// as soon as an event passes.
package validate

import (
	"github.com/elizafairlady/creditform/ui/proto"
)

// Rules decide whether an entry accepts an event. Implementations
// must not change the entry's value: acceptance is only communicated
// through the return value.
type Rules interface {
	// KeyRule reports whether the proposed edit may be committed.
	KeyRule(ev proto.KeyInput) bool
	// FocusOutRule reports whether value is acceptable when the
	// entry loses focus.
	FocusOutRule(value string) bool
	// KeyInvalid is called after KeyRule rejected ev.
	KeyInvalid(ev proto.KeyInput)
}

// BaseRules accepts everything and ignores rejected keys.
type BaseRules struct{}

func (BaseRules) KeyRule(proto.KeyInput) bool { return true }
func (BaseRules) FocusOutRule(string) bool    { return true }
func (BaseRules) KeyInvalid(proto.KeyInput)   {}

// Notifier shows a message to the user.
type Notifier interface {
	Notify(title, message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(title, message string)

func (f NotifierFunc) Notify(title, message string) { f(title, message) }

// notify sends to n if it is set.
func notify(n Notifier, message string) {
	if n != nil {
		n.Notify("Error", message)
	}
}
