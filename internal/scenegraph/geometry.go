package scenegraph

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind names a geometry shape. The renderer keeps one cached mesh per kind (and tessellation).
type Kind string

const (
	KindSphere   Kind = "sphere"
	KindBox      Kind = "cube"
	KindCylinder Kind = "cylinder"
	KindPlane    Kind = "plane"
)

// Geometry is the shape attached to a node. Shapes are centered on the node origin.
type Geometry interface {
	Kind() Kind
	// BoundingRadius is the radius of a sphere around the origin enclosing the shape (before node scale).
	BoundingRadius() float32
}

// SphereGeometry is a UV sphere. Segment counts only affect smoothness.
type SphereGeometry struct {
	Radius         float32
	WidthSegments  int // around the equator
	HeightSegments int // pole to pole
}

func (g SphereGeometry) Kind() Kind              { return KindSphere }
func (g SphereGeometry) BoundingRadius() float32 { return g.Radius }

// BoxGeometry is an axis-aligned box with the given full extents.
type BoxGeometry struct {
	Size mgl32.Vec3
}

func (g BoxGeometry) Kind() Kind { return KindBox }
func (g BoxGeometry) BoundingRadius() float32 {
	return g.Size.Mul(0.5).Len()
}

// CylinderGeometry is a Y-up cylinder centered on the origin.
type CylinderGeometry struct {
	Radius   float32
	Height   float32
	Segments int
}

func (g CylinderGeometry) Kind() Kind { return KindCylinder }
func (g CylinderGeometry) BoundingRadius() float32 {
	return mgl32.Vec2{g.Radius, g.Height * 0.5}.Len()
}

// PlaneGeometry is a quad on the XZ plane.
type PlaneGeometry struct {
	Width float32
	Depth float32
}

func (g PlaneGeometry) Kind() Kind { return KindPlane }
func (g PlaneGeometry) BoundingRadius() float32 {
	return mgl32.Vec2{g.Width * 0.5, g.Depth * 0.5}.Len()
}

// Shading selects the lighting model used for a material.
type Shading int

const (
	ShadingPhong Shading = iota
	ShadingUnlit
)

// Side selects which faces are drawn.
type Side int

const (
	SideFront Side = iota
	SideDouble
)

// Material is the render state of a node's surface. A single *Material can be shared by many nodes;
// changing it changes all of them.
type Material struct {
	Color       color.RGBA
	Opacity     float32 // 0..1, only used when Transparent
	Transparent bool
	DepthTest   bool
	DepthWrite  bool
	Shading     Shading
	Side        Side
}

// NewMaterial returns an opaque, depth-tested Phong material of the given color.
func NewMaterial(c color.RGBA) *Material {
	return &Material{
		Color:      c,
		Opacity:    1,
		DepthTest:  true,
		DepthWrite: true,
		Shading:    ShadingPhong,
		Side:       SideFront,
	}
}

// EffectiveColor returns Color with alpha taken from Opacity for transparent materials.
func (m *Material) EffectiveColor() color.RGBA {
	c := m.Color
	if m.Transparent {
		a := m.Opacity
		if a < 0 {
			a = 0
		}
		if a > 1 {
			a = 1
		}
		c.A = uint8(a*255 + 0.5)
	}
	return c
}
