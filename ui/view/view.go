// Package view provides the declarative widget tree the form is
// drawn from.
//
// A tree is rebuilt from the form state on every redraw; nodes carry
// only display properties. Behavior lives in the form and its entries,
// never in the tree.
package view

import (
	"strconv"
)

// Node types.
const (
	TypeVBox    = "vbox"
	TypeHBox    = "hbox"
	TypeText    = "text"
	TypeTextBox = "textbox"
	TypeButton  = "button"
	TypeKey     = "key"
)

// Node is a UI view tree node with an ID, type, props, and children.
type Node struct {
	ID       string
	Type     string
	Props    map[string]string
	Children []*Node
}

// N creates a new node with the given id and type.
func N(id, typ string) *Node {
	return &Node{
		ID:    id,
		Type:  typ,
		Props: make(map[string]string),
	}
}

// Prop sets a property on the node and returns it for chaining.
func (n *Node) Prop(k, v string) *Node {
	n.Props[k] = v
	return n
}

// PropInt sets an integer property.
func (n *Node) PropInt(k string, v int) *Node {
	return n.Prop(k, strconv.Itoa(v))
}

// PropBool sets a boolean property as "1" or "0".
func (n *Node) PropBool(k string, v bool) *Node {
	if v {
		return n.Prop(k, "1")
	}
	return n.Prop(k, "0")
}

// Int returns an integer property, or def if unset or malformed.
func (n *Node) Int(k string, def int) int {
	v, err := strconv.Atoi(n.Props[k])
	if err != nil {
		return def
	}
	return v
}

// Bool reports whether a property is "1" or "true".
func (n *Node) Bool(k string) bool {
	v := n.Props[k]
	return v == "1" || v == "true"
}

// Child appends child nodes and returns the parent for chaining.
func (n *Node) Child(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// VBox creates a vertical box layout node.
func VBox(id string, children ...*Node) *Node {
	return N(id, TypeVBox).Child(children...)
}

// HBox creates a horizontal box layout node.
func HBox(id string, children ...*Node) *Node {
	return N(id, TypeHBox).Child(children...)
}

// TextNode creates a text display node.
func TextNode(id, text string) *Node {
	return N(id, TypeText).Prop("text", text)
}

// TextBox creates a text input node showing value with the insertion
// point at rune offset cursor.
func TextBox(id, value string, cursor int) *Node {
	return N(id, TypeTextBox).
		Prop("text", value).
		PropInt("cursor", cursor).
		Prop("focusable", "1")
}

// Button creates a button node.
func Button(id, text string) *Node {
	return N(id, TypeButton).Prop("text", text).Prop("focusable", "1")
}

// Key creates an on-screen keyboard key.
func Key(id, label string) *Node {
	return N(id, TypeKey).Prop("text", label)
}

// Walk calls fn for n and its descendants in depth-first order. It
// stops descending below a node when fn returns false.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Find returns the node with the given id, or nil.
func Find(root *Node, id string) *Node {
	var found *Node
	Walk(root, func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Focusable returns the ids of the focusable nodes in tree order.
func Focusable(root *Node) []string {
	var ids []string
	Walk(root, func(n *Node) bool {
		if n.Bool("focusable") {
			ids = append(ids, n.ID)
		}
		return true
	})
	return ids
}
