package ui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Node is a single UI element: panel, label, etc. It has optional class and id for CSS matching,
// bounds (position and size), and optional text for labels.
type Node struct {
	Type   string // "panel", "label"
	Class  string // e.g. "inspector" for .inspector
	ID     string // e.g. "link" for #link
	Bounds rl.Rectangle
	Text   string
	// Fill, when non-transparent, replaces the stylesheet background (e.g. a color swatch).
	Fill color.RGBA
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{Type: typ, Class: class, ID: id, Text: text}
}

// Matches reports whether a simple selector (".class" or "#id") applies to n.
func (n *Node) Matches(selector string) bool {
	if len(selector) < 2 {
		return false
	}
	switch selector[0] {
	case '.':
		return n.Class == selector[1:]
	case '#':
		return n.ID == selector[1:]
	}
	return false
}
