// Package collision draws collision spheres on top of a loaded robot model.
//
// The Overlay attaches one translucent sphere per collision sphere to the scene node of its link, colors
// every link deterministically from its name, and owns the show/hide/clear lifecycle of those spheres.
// Everything the overlay adds is unpickable and casts no shadows, so it never interferes with the model.
package collision

import (
	"math"
	"strings"

	"robot-viewer/internal/logger"
	"robot-viewer/internal/scenegraph"
	"robot-viewer/internal/spheres"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultOpacity is the alpha of a newly created link material.
	DefaultOpacity = 0.45

	sphereWidthSegments  = 16
	sphereHeightSegments = 12

	// primitiveNamePrefix contains the dataset key separator, which link names never do,
	// so overlay spheres can't be mistaken for link nodes.
	primitiveNamePrefix = "collision" + spheres.LinkSeparator
)

// linkNamePrefixes are tried in order when matching a link name against scene node names.
var linkNamePrefixes = []string{"", "link_", "body_"}

// Model is anything that exposes the root scene node of a loaded model. A nil root means the model isn't ready.
type Model interface {
	RootNode() *scenegraph.Node
}

// Primitive is one sphere the overlay put into the scene.
type Primitive struct {
	LinkName string
	Node     *scenegraph.Node
}

// Overlay is the collision sphere visualization. It is not safe for concurrent use; call it from the render thread.
type Overlay struct {
	sceneRoot  *scenegraph.Node
	log        *logger.Logger
	primitives []Primitive
	visible    bool
	opacity    float32
	materials  map[string]*scenegraph.Material
}

// New returns an empty, visible overlay. sceneRoot is the last-resort parent for spheres whose link can't be
// found; log may be nil.
func New(sceneRoot *scenegraph.Node, log *logger.Logger) *Overlay {
	return &Overlay{
		sceneRoot: sceneRoot,
		log:       log,
		visible:   true,
		opacity:   DefaultOpacity,
		materials: make(map[string]*scenegraph.Material),
	}
}

// ShowFromParsed replaces the current spheres with the given sets. Each set is attached to the node of its link
// (see FindLinkNode), or to the model root if the link isn't in the scene. Does nothing when m is nil, m has no
// root node yet, or sets is nil; an empty non-nil sets just clears.
// New spheres take the current visibility, so a hidden overlay stays hidden.
func (o *Overlay) ShowFromParsed(m Model, sets []spheres.LinkSpheres) {
	if m == nil || sets == nil {
		return
	}
	root := m.RootNode()
	if root == nil {
		return
	}

	o.Clear()

	created := 0
	unresolved := make(map[string]bool)
	for _, set := range sets {
		parent := o.attachmentNode(root, set.Link, unresolved)
		if parent == nil {
			continue
		}
		mat := o.MaterialForLink(set.Link)
		for _, s := range set.Spheres {
			node := newSphereNode(set.Link, s, mat)
			parent.Add(node)
			o.primitives = append(o.primitives, Primitive{LinkName: set.Link, Node: node})
			created++
		}
	}

	for _, p := range o.primitives {
		p.Node.Visible = o.visible
	}
	o.log.Logf("collision: showing %d spheres on %d links", created, len(sets))
}

func newSphereNode(link string, s spheres.Sphere, mat *scenegraph.Material) *scenegraph.Node {
	r := s.Radius
	if r <= 0 || math.IsNaN(r) {
		r = spheres.DefaultRadius
	}
	n := scenegraph.NewNode(primitiveNamePrefix + link)
	n.Geometry = scenegraph.SphereGeometry{
		Radius:         float32(r),
		WidthSegments:  sphereWidthSegments,
		HeightSegments: sphereHeightSegments,
	}
	n.Position = mgl32.Vec3{float32(s.Origin[0]), float32(s.Origin[1]), float32(s.Origin[2])}
	n.Material = mat
	n.Pickable = false
	n.CastShadow = false
	n.ReceiveShadow = false
	return n
}

// attachmentNode resolves the parent for a link's spheres: the link node, else the model root, else the
// overlay's own scene root. A link falling back to the model root is logged once; unresolved records it.
func (o *Overlay) attachmentNode(root *scenegraph.Node, link string, unresolved map[string]bool) *scenegraph.Node {
	if n := FindLinkNode(root, link); n != nil {
		return n
	}
	if root != nil {
		if !unresolved[link] {
			unresolved[link] = true
			o.log.Logf("collision: link %q not found, attaching to %q", link, root.Name)
		}
		return root
	}
	return o.sceneRoot
}

// FindLinkNode returns the first node under root, in depth-first pre-order, named link, "link_"+link or
// "body_"+link. Returns nil if there is none.
func FindLinkNode(root *scenegraph.Node, link string) *scenegraph.Node {
	if root == nil {
		return nil
	}
	return root.Find(func(n *scenegraph.Node) bool {
		for _, prefix := range linkNamePrefixes {
			if n.Name == prefix+link {
				return true
			}
		}
		return false
	})
}

// SetVisible shows or hides every sphere. Spheres created later follow the same setting.
func (o *Overlay) SetVisible(v bool) {
	o.visible = v
	for _, p := range o.primitives {
		p.Node.Visible = v
	}
}

// Visible reports the current visibility setting.
func (o *Overlay) Visible() bool {
	return o.visible
}

// Clear detaches every sphere from the scene. Link colors and materials are kept.
func (o *Overlay) Clear() {
	for _, p := range o.primitives {
		p.Node.RemoveFromParent()
	}
	o.primitives = nil
}

// Len returns the number of spheres currently in the scene.
func (o *Overlay) Len() int {
	return len(o.primitives)
}

// LinkCount returns the number of distinct links that currently have spheres.
func (o *Overlay) LinkCount() int {
	seen := make(map[string]struct{})
	for _, p := range o.primitives {
		seen[p.LinkName] = struct{}{}
	}
	return len(seen)
}

// CountForLink returns how many spheres link currently has.
func (o *Overlay) CountForLink(link string) int {
	n := 0
	for _, p := range o.primitives {
		if p.LinkName == link {
			n++
		}
	}
	return n
}

// LinkForNode maps a model node back to its link name by stripping a "link_" or "body_" prefix.
// It is the inverse of FindLinkNode for names that carry one of those prefixes.
func LinkForNode(n *scenegraph.Node) string {
	if n == nil {
		return ""
	}
	for _, prefix := range linkNamePrefixes {
		if prefix != "" && strings.HasPrefix(n.Name, prefix) {
			return strings.TrimPrefix(n.Name, prefix)
		}
	}
	return n.Name
}

// Primitives returns a copy of the active sphere list.
func (o *Overlay) Primitives() []Primitive {
	out := make([]Primitive, len(o.primitives))
	copy(out, o.primitives)
	return out
}

// MaterialForLink returns the material shared by all spheres of link, creating it on first use.
func (o *Overlay) MaterialForLink(link string) *scenegraph.Material {
	if mat, ok := o.materials[link]; ok {
		return mat
	}
	mat := scenegraph.NewMaterial(ColorForLink(link).AsRGBA())
	mat.Transparent = true
	mat.Opacity = o.opacity
	mat.DepthTest = true
	mat.DepthWrite = false
	o.materials[link] = mat
	return mat
}

// SetOpacity changes the alpha of every link material, current and future. Values are clamped to [0,1].
func (o *Overlay) SetOpacity(alpha float32) {
	alpha = float32(clamp01(float64(alpha)))
	o.opacity = alpha
	for _, mat := range o.materials {
		mat.Opacity = alpha
	}
}

// Opacity returns the alpha used for link materials.
func (o *Overlay) Opacity() float32 {
	return o.opacity
}
