// Package keyboard implements the on-screen keyboard shared by the
// entries of a form.
//
// The keyboard does not own any text. It follows whichever entry last
// gained focus and turns key presses into key events for that entry;
// the caller dispatches those events through the entry's validation
// like any physical keystroke.
package keyboard

import (
	"strings"

	"github.com/elizafairlady/creditform/ui/proto"
)

// Labels of the keys that do not insert themselves.
const (
	Backspace = "⌫"
	Space     = "␣"
)

// DefaultRows is the key layout used when none is configured.
var DefaultRows = [][]string{
	strings.Fields("1 2 3 4 5 6 7 8 9 0"),
	strings.Fields("q w e r t y u i o p"),
	strings.Fields("a s d f g h j k l -"),
	strings.Fields("z x c v b n m . " + Backspace),
	{Space},
}

// Target is an entry the keyboard can type into.
type Target interface {
	ID() string
	Value() string
	Cursor() int
	InsertEvent(index int, text string) proto.KeyInput
	DeleteEvent(index, n int) proto.KeyInput
}

// Keyboard is an on-screen keyboard. It is used from the UI goroutine
// only; the entry dispatch is its single writer of the target.
type Keyboard struct {
	rows   [][]string
	target Target
	row    int
	col    int
}

// New returns a keyboard with the given layout. Empty rows are
// dropped; a nil or empty layout selects DefaultRows.
func New(rows [][]string) *Keyboard {
	var kept [][]string
	for _, r := range rows {
		if len(r) > 0 {
			kept = append(kept, append([]string(nil), r...))
		}
	}
	if len(kept) == 0 {
		kept = DefaultRows
	}
	return &Keyboard{rows: kept}
}

// ChangeTarget makes t the entry that receives key presses.
func (k *Keyboard) ChangeTarget(t Target) {
	k.target = t
}

// Target returns the current target, or nil.
func (k *Keyboard) Target() Target {
	return k.target
}

// Rows returns the key layout.
func (k *Keyboard) Rows() [][]string {
	return k.rows
}

// Cursor returns the row and column of the selected key.
func (k *Keyboard) Cursor() (row, col int) {
	return k.row, k.col
}

// Selected returns the label of the selected key.
func (k *Keyboard) Selected() string {
	return k.rows[k.row][k.col]
}

// Move moves the selection by dx keys and dy rows. Columns wrap
// within a row; rows wrap top to bottom. Moving onto a shorter row
// clamps the column.
func (k *Keyboard) Move(dx, dy int) {
	if dy != 0 {
		k.row = wrap(k.row+dy, len(k.rows))
		if k.col >= len(k.rows[k.row]) {
			k.col = len(k.rows[k.row]) - 1
		}
	}
	if dx != 0 {
		k.col = wrap(k.col+dx, len(k.rows[k.row]))
	}
}

// Select moves the selection to the key with the given label.
func (k *Keyboard) Select(label string) bool {
	for r, row := range k.rows {
		for c, l := range row {
			if l == label {
				k.row, k.col = r, c
				return true
			}
		}
	}
	return false
}

// Press returns the key event that pressing label produces for the
// current target. Text is inserted at the target's cursor; Backspace
// deletes the rune before it. It returns false when there is no
// target or nothing to delete.
func (k *Keyboard) Press(label string) (proto.KeyInput, bool) {
	t := k.target
	if t == nil {
		return proto.KeyInput{}, false
	}
	at := t.Cursor()
	switch label {
	case Backspace:
		if at == 0 {
			return proto.KeyInput{}, false
		}
		return t.DeleteEvent(at-1, 1), true
	case Space:
		return t.InsertEvent(at, " "), true
	}
	return t.InsertEvent(at, label), true
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
