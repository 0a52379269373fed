package proto

import (
	"testing"
)

func TestEventRoundtrip(t *testing.T) {
	events := []Event{
		KeyInput{ID: "credit", Proposed: "1.5", Current: "1.", Char: "5", Index: 2, Action: ActionInsert},
		KeyInput{ID: "credit", Proposed: "1", Current: "1.", Char: ".", Index: 1, Action: ActionDelete},
		KeyInput{ID: "name", Proposed: "", Current: "Jane Doe", Char: "", Index: -1, Action: ActionSet},
		KeyInput{ID: "name", Proposed: "Jane ", Current: "Jane", Char: " ", Index: 4, Action: ActionInsert},
		FocusLoss{ID: "name"},
		FocusGain{ID: "credit"},
	}
	for _, ev := range events {
		line := SerializeEvent(ev)
		got, err := ParseEvent(line)
		if err != nil {
			t.Fatalf("ParseEvent(%q): %v", line, err)
		}
		if got != ev {
			t.Errorf("roundtrip %q = %#v, want %#v", line, got, ev)
		}
	}
}

func TestParseEventComputesProposed(t *testing.T) {
	tests := []struct {
		line string
		want KeyInput
	}{
		{
			`key id=credit current=12 char=.`,
			KeyInput{ID: "credit", Current: "12", Char: ".", Index: 2, Proposed: "12.", Action: ActionInsert},
		},
		{
			`key id=credit current=12 char=- index=0`,
			KeyInput{ID: "credit", Current: "12", Char: "-", Index: 0, Proposed: "-12", Action: ActionInsert},
		},
		{
			`key id=credit current=1.5 char=. index=1 action=delete`,
			KeyInput{ID: "credit", Current: "1.5", Char: ".", Index: 1, Proposed: "15", Action: ActionDelete},
		},
		{
			`key id=name char="Jane" action=set`,
			KeyInput{ID: "name", Char: "Jane", Index: -1, Proposed: "Jane", Action: ActionSet},
		},
	}
	for _, tt := range tests {
		got, err := ParseEvent(tt.line)
		if err != nil {
			t.Fatalf("ParseEvent(%q): %v", tt.line, err)
		}
		if got != tt.want {
			t.Errorf("ParseEvent(%q) = %#v, want %#v", tt.line, got, tt.want)
		}
	}
}

func TestParseEventErrors(t *testing.T) {
	for _, line := range []string{
		"focusin",
		"click id=save",
		"key id=credit index=x",
		"key id=credit action=paste",
		"key id=credit current=1 char=2 index=5",
		"key id=credit current=12 char=9 index=0 action=0",
	} {
		if ev, err := ParseEvent(line); err == nil {
			t.Errorf("ParseEvent(%q) = %#v, want error", line, ev)
		}
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		current string
		act     EditAction
		index   int
		text    string
		want    string
	}{
		{"", ActionInsert, 0, "-", "-"},
		{"-5", ActionInsert, 1, ".", "-.5"},
		{"Zoë", ActionInsert, 3, "!", "Zoë!"},
		{"Zoë", ActionDelete, 2, "ë", "Zo"},
		{"12.50", ActionDelete, 2, ".5", "120"},
		{"anything", ActionSet, -1, "new", "new"},
	}
	for _, tt := range tests {
		got, err := Apply(tt.current, tt.act, tt.index, tt.text)
		if err != nil {
			t.Fatalf("Apply(%q, %v, %d, %q): %v", tt.current, tt.act, tt.index, tt.text, err)
		}
		if got != tt.want {
			t.Errorf("Apply(%q, %v, %d, %q) = %q, want %q", tt.current, tt.act, tt.index, tt.text, got, tt.want)
		}
	}
}

func TestEditActionString(t *testing.T) {
	for act, want := range map[EditAction]string{
		ActionSet:     "set",
		ActionDelete:  "delete",
		ActionInsert:  "insert",
		EditAction(7): "EditAction(7)",
	} {
		if got := act.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(act), got, want)
		}
	}
}
