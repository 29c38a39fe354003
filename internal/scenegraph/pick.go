package scenegraph

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half-line used for pointer queries. Dir need not be normalized.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// Hit is the result of a successful Pick.
type Hit struct {
	Node     *Node
	Distance float32 // along the normalized ray direction
	Point    mgl32.Vec3
}

// Pick returns the nearest node under root whose bounding sphere the ray hits.
// Nodes without geometry, nodes with Pickable == false, and nodes hidden by themselves or an ancestor are skipped.
func Pick(root *Node, ray Ray) (Hit, bool) {
	var best Hit
	found := false
	if root == nil || ray.Dir.Len() == 0 {
		return best, false
	}
	dir := ray.Dir.Normalize()
	root.Walk(func(n *Node) bool {
		if n.Geometry == nil || !n.Pickable || !n.VisibleInTree() {
			return true
		}
		world := n.WorldMatrix()
		center := world.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
		radius := n.Geometry.BoundingRadius() * maxAxisScale(world)
		d, ok := raySphere(ray.Origin, dir, center, radius)
		if !ok {
			return true
		}
		if !found || d < best.Distance {
			best = Hit{Node: n, Distance: d, Point: ray.Origin.Add(dir.Mul(d))}
			found = true
		}
		return true
	})
	return best, found
}

// maxAxisScale returns the largest length of the matrix's three basis columns.
func maxAxisScale(m mgl32.Mat4) float32 {
	sx := m.Col(0).Vec3().Len()
	sy := m.Col(1).Vec3().Len()
	sz := m.Col(2).Vec3().Len()
	return math32.Max(sx, math32.Max(sy, sz))
}

// raySphere returns the distance to the first intersection in front of the origin.
// An origin inside the sphere hits at distance 0.
func raySphere(origin, dir, center mgl32.Vec3, radius float32) (float32, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	if c <= 0 {
		return 0, true
	}
	if b > 0 {
		return 0, false
	}
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	return -b - math32.Sqrt(disc), true
}
