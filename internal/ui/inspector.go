package ui

import (
	"fmt"
	"image/color"
)

// Inspector is a right-side panel that shows the selected robot link: its scene node, world position and the
// collision spheres drawn for it with their overlay color. It owns its nodes and updates their text when AppendNodes
// is called with visible true.
type Inspector struct {
	panel    *Node
	title    *Node
	link     *Node
	node     *Node
	position *Node
	spheres  *Node
	color    *Node
	swatch   *Node
}

// NewInspector creates an Inspector with nodes styled by the .inspector, .inspector-title and .inspector-row rules.
func NewInspector() *Inspector {
	return &Inspector{
		panel:    NewNode("panel", "inspector", "", ""),
		title:    NewNode("label", "inspector-title", "", "Link"),
		link:     NewNode("label", "inspector-row", "inspector-link", ""),
		node:     NewNode("label", "inspector-row", "inspector-node", ""),
		position: NewNode("label", "inspector-row", "inspector-position", ""),
		spheres:  NewNode("label", "inspector-row", "inspector-spheres", ""),
		color:    NewNode("label", "inspector-row", "inspector-color", ""),
		swatch:   NewNode("panel", "", "inspector-swatch", ""),
	}
}

// Selection holds the data shown in the inspector. The caller fills it from the scene and collision overlay;
// ui does not depend on either.
type Selection struct {
	Link     string
	Node     string // resolved scene node; empty when the link fell back to the model root
	Position [3]float32
	Spheres  int
	Color    color.RGBA
	Hex      string
}

// AppendNodes appends inspector nodes to dst when visible is true, after updating labels from sel.
// When visible is false, dst is returned unchanged. Call every frame so visibility and content stay in sync.
func (in *Inspector) AppendNodes(dst []*Node, visible bool, sel Selection) []*Node {
	if !visible {
		return dst
	}
	in.link.Text = "Link: " + sel.Link
	if sel.Node != "" {
		in.node.Text = "Node: " + sel.Node
	} else {
		in.node.Text = "Node: (model root)"
	}
	in.position.Text = fmt.Sprintf("Position: %.3f, %.3f, %.3f", sel.Position[0], sel.Position[1], sel.Position[2])
	in.spheres.Text = fmt.Sprintf("Spheres: %d", sel.Spheres)
	in.color.Text = "Color: " + sel.Hex
	in.swatch.Fill = sel.Color
	in.swatch.Fill.A = 255
	return append(dst, in.panel, in.title, in.link, in.node, in.position, in.spheres, in.color, in.swatch)
}
