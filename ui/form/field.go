package form

import (
	"github.com/elizafairlady/creditform/ui/validate"
	"github.com/elizafairlady/creditform/ui/view"
)

// LabeledField is a label next to one validated entry.
type LabeledField struct {
	Label string
	Entry *validate.Entry
}

// Node lays the field out as a row: label, then entry.
func (f LabeledField) Node() *view.Node {
	e := f.Entry
	return view.HBox(e.ID()+"-row",
		view.TextNode(e.ID()+"-label", f.Label),
		view.TextBox(e.ID(), e.Value(), e.Cursor()).Prop("style", string(e.Style())),
	)
}
