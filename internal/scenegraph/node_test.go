package scenegraph

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tree builds root -> (a -> (a1, a2), b -> b1).
func tree() (root, a, a1, a2, b, b1 *Node) {
	root, a, a1, a2, b, b1 = NewNode("root"), NewNode("a"), NewNode("a1"), NewNode("a2"), NewNode("b"), NewNode("b1")
	root.Add(a)
	root.Add(b)
	a.Add(a1)
	a.Add(a2)
	b.Add(b1)
	return
}

func TestWalkPreOrder(t *testing.T) {
	root, _, _, _, _, _ := tree()
	var names []string
	done := root.Walk(func(n *Node) bool {
		names = append(names, n.Name)
		return true
	})
	assert.True(t, done)
	assert.Equal(t, []string{"root", "a", "a1", "a2", "b", "b1"}, names)
}

func TestWalkStops(t *testing.T) {
	root, _, _, _, _, _ := tree()
	visited := 0
	done := root.Walk(func(n *Node) bool {
		visited++
		return n.Name != "a1"
	})
	assert.False(t, done)
	assert.Equal(t, 3, visited)
}

func TestFindReturnsFirstInWalkOrder(t *testing.T) {
	root, _, a1, _, b, _ := tree()
	b.Name = "dup"
	a1.Name = "dup"
	assert.Same(t, a1, root.FindByName("dup"))
	assert.Nil(t, root.FindByName("missing"))
}

func TestAddReparents(t *testing.T) {
	root, a, a1, _, b, _ := tree()
	b.Add(a1)
	assert.Same(t, b, a1.Parent())
	assert.Equal(t, 1, a.NumChildren())
	assert.Equal(t, 2, b.NumChildren())
	root.Add(nil)
	root.Add(root)
	assert.Equal(t, 2, root.NumChildren())
}

func TestRemove(t *testing.T) {
	root, a, a1, a2, b, _ := tree()
	require.True(t, a.Remove(a1))
	assert.Nil(t, a1.Parent())
	assert.Equal(t, []*Node{a2}, a.Children())
	assert.False(t, a.Remove(a1))

	b.RemoveFromParent()
	assert.Equal(t, []*Node{a}, root.Children())
	b.RemoveFromParent()
	assert.Nil(t, b.Parent())
}

func TestChildrenIsCopy(t *testing.T) {
	_, a, _, _, _, _ := tree()
	kids := a.Children()
	kids[0] = nil
	assert.NotNil(t, a.Children()[0])
}

func TestWorldPosition(t *testing.T) {
	root, a, a1, _, _, _ := tree()
	root.Position = mgl32.Vec3{1, 0, 0}
	a.Position = mgl32.Vec3{0, 2, 0}
	a.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1})
	a1.Position = mgl32.Vec3{1, 0, 0}

	got := a1.WorldPosition()
	assert.InDelta(t, 1, got.X(), 1e-5)
	assert.InDelta(t, 3, got.Y(), 1e-5)
	assert.InDelta(t, 0, got.Z(), 1e-5)
}

func TestVisibleInTree(t *testing.T) {
	root, a, a1, _, b, _ := tree()
	assert.True(t, a1.VisibleInTree())
	a.Visible = false
	assert.False(t, a1.VisibleInTree())
	assert.True(t, b.VisibleInTree())
	root.Visible = false
	assert.False(t, b.VisibleInTree())
}

func TestEffectiveColor(t *testing.T) {
	m := NewMaterial(colorRGBA(10, 20, 30))
	assert.Equal(t, uint8(255), m.EffectiveColor().A)
	m.Transparent = true
	m.Opacity = 0.45
	assert.Equal(t, uint8(115), m.EffectiveColor().A)
	m.Opacity = 3
	assert.Equal(t, uint8(255), m.EffectiveColor().A)
}
