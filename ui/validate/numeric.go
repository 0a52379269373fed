package validate

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/elizafairlady/creditform/ui/proto"
)

// MsgOnlyNumbers is shown when a numeric entry refuses a character.
const MsgOnlyNumbers = "Only numbers allowed!"

// Precision is the number of fractional digits a numeric entry
// accepts.
const Precision = 2

// NumericRules accept signed decimal numbers with at most Precision
// fractional digits. The integer part is unbounded.
type NumericRules struct {
	Notifier Notifier
}

// KeyRule accepts programmatic sets and deletions unconditionally.
// Inserted characters must be digits, a leading '-' or a single '.'.
// The partial values "-", "." and "-." are accepted so a sign or point
// can be typed before the digits; anything else must parse as a
// decimal with no more than Precision fractional digits. A keystroke
// that would exceed the precision is refused, never rounded.
func (n NumericRules) KeyRule(ev proto.KeyInput) bool {
	if ev.Action != proto.ActionInsert {
		return true
	}
	if badNumericKey(ev) {
		return false
	}
	switch ev.Proposed {
	case "", "-", ".", "-.":
		return true
	}
	d, err := decimal.NewFromString(ev.Proposed)
	if err != nil {
		return false
	}
	return d.Exponent() >= -Precision
}

// FocusOutRule requires a parseable decimal.
func (n NumericRules) FocusOutRule(value string) bool {
	_, err := decimal.NewFromString(value)
	return err == nil
}

// KeyInvalid notifies only for refused characters; a keystroke
// refused for precision is dropped silently.
func (n NumericRules) KeyInvalid(ev proto.KeyInput) {
	if badNumericKey(ev) {
		notify(n.Notifier, MsgOnlyNumbers)
	}
}

// badNumericKey reports whether an inserted text is structurally
// invalid regardless of the rest of the value.
func badNumericKey(ev proto.KeyInput) bool {
	for i, c := range ev.Char {
		switch {
		case c >= '0' && c <= '9':
		case c == '-':
			if ev.Index+i != 0 {
				return true
			}
		case c == '.':
			if strings.ContainsRune(ev.Current, '.') || strings.Count(ev.Char, ".") > 1 {
				return true
			}
		default:
			return true
		}
	}
	return false
}
