// Package form implements the new-user entry form: a name field, a
// credit field, Save and Close actions and the on-screen keyboard
// shared by both fields.
package form

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/elizafairlady/creditform/ui/keyboard"
	"github.com/elizafairlady/creditform/ui/theme"
	"github.com/elizafairlady/creditform/ui/validate"
	"github.com/elizafairlady/creditform/ui/view"
)

// Messages shown when Save is refused.
const (
	MsgNameNeeded   = "Name needed!"
	MsgCreditNeeded = "Credit needed!"
)

// Node ids.
const (
	IDName     = "name"
	IDCredit   = "credit"
	IDSave     = "save"
	IDClose    = "close"
	IDKeyboard = "keyboard"
)

var (
	ErrNameRequired   = errors.New("form: name required")
	ErrCreditRequired = errors.New("form: credit required")
	ErrClosed         = errors.New("form: closed")
)

// Creator creates the user record for a validated form.
type Creator interface {
	Create(ctx context.Context, name string, credit decimal.Decimal) error
}

// CreatorFunc adapts a function to the Creator interface.
type CreatorFunc func(ctx context.Context, name string, credit decimal.Decimal) error

func (f CreatorFunc) Create(ctx context.Context, name string, credit decimal.Decimal) error {
	return f(ctx, name, credit)
}

// EntryForm is the new-user form.
type EntryForm struct {
	Name     LabeledField
	Credit   LabeledField
	Keyboard *keyboard.Keyboard

	creator  Creator
	notifier validate.Notifier
	closed   bool
}

// New returns an empty form. Both entries report to n and share kbd.
func New(creator Creator, n validate.Notifier, kbd *keyboard.Keyboard) *EntryForm {
	if kbd == nil {
		kbd = keyboard.New(nil)
	}
	return &EntryForm{
		Name: LabeledField{
			Label: "Name",
			Entry: validate.New(IDName, validate.TextRules{Notifier: n}, kbd),
		},
		Credit: LabeledField{
			Label: "Credit",
			Entry: validate.New(IDCredit, validate.NumericRules{Notifier: n}, kbd),
		},
		Keyboard: kbd,
		creator:  creator,
		notifier: n,
	}
}

// Entry returns the entry with the given id, or nil.
func (f *EntryForm) Entry(id string) *validate.Entry {
	switch id {
	case IDName:
		return f.Name.Entry
	case IDCredit:
		return f.Credit.Entry
	}
	return nil
}

// Entries returns the form's entries in tab order.
func (f *EntryForm) Entries() []*validate.Entry {
	return []*validate.Entry{f.Name.Entry, f.Credit.Entry}
}

// Save checks both fields and hands the values to the creator. The
// check does not rely on earlier per-key validation: a field that
// never received an event is still empty here. Nothing is created
// unless both fields are valid.
func (f *EntryForm) Save(ctx context.Context) error {
	if f.closed {
		return ErrClosed
	}
	name := f.Name.Entry.Value()
	if name == "" {
		f.notify(MsgNameNeeded)
		return ErrNameRequired
	}
	credit, err := decimal.NewFromString(f.Credit.Entry.Value())
	if err != nil {
		f.notify(MsgCreditNeeded)
		return fmt.Errorf("%w: %v", ErrCreditRequired, err)
	}
	if err := f.creator.Create(ctx, name, credit); err != nil {
		f.notify(err.Error())
		return fmt.Errorf("form: create %q: %w", name, err)
	}
	return nil
}

// Reset clears both fields with programmatic sets.
func (f *EntryForm) Reset() {
	for _, e := range f.Entries() {
		e.Set("")
	}
}

// Close closes the form. Unsaved values are discarded.
func (f *EntryForm) Close() {
	f.closed = true
	f.Reset()
}

// Closed reports whether Close was called.
func (f *EntryForm) Closed() bool {
	return f.closed
}

func (f *EntryForm) notify(msg string) {
	if f.notifier != nil {
		f.notifier.Notify("Error", msg)
	}
}

// Node builds the widget tree: the two fields, the buttons and the
// keyboard. The keyboard keys are dimmed unless the keyboard has a
// target.
func (f *EntryForm) Node() *view.Node {
	kbd := view.VBox(IDKeyboard).Prop("focusable", "1")
	active := f.Keyboard.Target() != nil
	if active {
		kbd.Prop("target", f.Keyboard.Target().ID())
	}
	selRow, selCol := f.Keyboard.Cursor()
	for r, row := range f.Keyboard.Rows() {
		hb := view.HBox("keyrow" + strconv.Itoa(r))
		for c, label := range row {
			hb.Child(view.Key("key/"+strconv.Itoa(r)+"/"+strconv.Itoa(c), label).
				PropBool("selected", r == selRow && c == selCol).
				PropBool("active", active))
		}
		kbd.Child(hb)
	}

	return view.VBox("form",
		f.Name.Node(),
		f.Credit.Node(),
		view.HBox("buttons",
			view.Button(IDSave, "Save").Prop("style", string(theme.Success)),
			view.Button(IDClose, "Close").Prop("style", string(theme.Danger)),
		),
		kbd,
	)
}
