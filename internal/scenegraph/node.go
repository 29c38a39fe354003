package scenegraph

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Node is one element of the scene tree. A node has a transform relative to its parent,
// optional geometry and material (nodes without geometry are pure transform groups, e.g. a robot link),
// and flags that control drawing and pointer queries.
type Node struct {
	Name     string
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3

	// Visible hides this node and its whole subtree when false.
	Visible bool
	// Pickable = false excludes the node from Pick (it never steals clicks from the model).
	Pickable      bool
	CastShadow    bool
	ReceiveShadow bool

	Geometry Geometry  // nil for group nodes
	Material *Material // may be shared between nodes

	parent   *Node
	children []*Node
}

// NewNode returns a visible, pickable node at the origin with identity rotation and unit scale.
func NewNode(name string) *Node {
	return &Node{
		Name:          name,
		Rotation:      mgl32.QuatIdent(),
		Scale:         mgl32.Vec3{1, 1, 1},
		Visible:       true,
		Pickable:      true,
		CastShadow:    true,
		ReceiveShadow: true,
	}
}

// Parent returns the node this one is attached to, or nil for a root or detached node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the child list in attachment order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Add attaches child as the last child of n. A child that already has a parent is detached first.
// Adding nil or n itself is ignored.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n. Returns false if child was not a direct child of n.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c != child {
			continue
		}
		copy(n.children[i:], n.children[i+1:])
		n.children[len(n.children)-1] = nil
		n.children = n.children[:len(n.children)-1]
		child.parent = nil
		return true
	}
	return false
}

// RemoveFromParent detaches n from its parent, if any.
func (n *Node) RemoveFromParent() {
	if n.parent != nil {
		n.parent.Remove(n)
	}
}

// Walk visits n and every descendant once, depth-first, parent before children, children in
// attachment order. Returning false from fn stops the walk. Walk reports whether it ran to completion.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	// explicit stack so deep link chains don't grow the goroutine stack
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur) {
			return false
		}
		for i := len(cur.children) - 1; i >= 0; i-- {
			stack = append(stack, cur.children[i])
		}
	}
	return true
}

// Find returns the first node in Walk order for which match returns true, or nil.
func (n *Node) Find(match func(*Node) bool) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if match(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindByName returns the first node in Walk order with the given name.
func (n *Node) FindByName(name string) *Node {
	return n.Find(func(c *Node) bool { return c.Name == name })
}

// LocalMatrix returns translate * rotate * scale for this node.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	r := n.Rotation.Normalize().Mat4()
	s := mgl32.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix returns the product of all local matrices from the root down to n.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// WorldPosition returns the node origin in world space.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.WorldMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
}

// VisibleInTree reports whether n and every ancestor are visible.
func (n *Node) VisibleInTree() bool {
	for c := n; c != nil; c = c.parent {
		if !c.Visible {
			return false
		}
	}
	return true
}
