package validate

import (
	"unicode"

	"github.com/elizafairlady/creditform/ui/proto"
)

// MsgOnlyCharacters is shown when a text entry refuses a character.
const MsgOnlyCharacters = "Only characters allowed!"

// TextRules accept letters and whitespace and require a non-empty
// value on focus out.
type TextRules struct {
	Notifier Notifier
}

func (t TextRules) KeyRule(ev proto.KeyInput) bool {
	if ev.Action != proto.ActionInsert {
		return true
	}
	for _, c := range ev.Char {
		if !unicode.IsLetter(c) && !unicode.IsSpace(c) {
			return false
		}
	}
	return true
}

func (t TextRules) FocusOutRule(value string) bool {
	return value != ""
}

func (t TextRules) KeyInvalid(proto.KeyInput) {
	notify(t.Notifier, MsgOnlyCharacters)
}
