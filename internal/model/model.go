// Package model loads robot models described as a YAML tree of links into the scene graph.
package model

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"robot-viewer/internal/hexcolor"
	"robot-viewer/internal/scenegraph"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// File is the on-disk model description (e.g. assets/models/rover.yaml).
type File struct {
	Name  string    `yaml:"name"`
	Links []LinkDef `yaml:"links"`
}

// LinkDef is one rigid link. Position is relative to the parent link; Rotation is XYZ Euler angles in degrees.
type LinkDef struct {
	Name     string     `yaml:"name"`
	Position []float32  `yaml:"position,omitempty"`
	Rotation []float32  `yaml:"rotation,omitempty"`
	Visual   *VisualDef `yaml:"visual,omitempty"`
	Children []LinkDef  `yaml:"children,omitempty"`
}

// VisualDef is the primitive drawn for a link: type is cube, sphere, cylinder or plane.
// Size is the full extent on each axis (missing or 0 means 1); sphere and cylinder use Size[0] as diameter.
type VisualDef struct {
	Type  string    `yaml:"type"`
	Size  []float32 `yaml:"size,omitempty"`
	Color string    `yaml:"color,omitempty"`
}

// Model is a loaded robot: a root node with one child node per link, nested like the kinematic tree.
type Model struct {
	Name string
	Root *scenegraph.Node
}

// RootNode returns the model's root scene node.
func (m *Model) RootNode() *scenegraph.Node {
	if m == nil {
		return nil
	}
	return m.Root
}

// LinkNames returns the names of all link nodes in depth-first order.
func (m *Model) LinkNames() []string {
	var names []string
	if m == nil || m.Root == nil {
		return names
	}
	m.Root.Walk(func(n *scenegraph.Node) bool {
		if n != m.Root && n.Geometry == nil {
			names = append(names, n.Name)
		}
		return true
	})
	return names
}

// LinkNode returns the link node that owns n: n itself for a link node, its parent for a link's visual.
// Nodes outside a model link (nil, or a visual without parent) give nil.
func LinkNode(n *scenegraph.Node) *scenegraph.Node {
	if n == nil {
		return nil
	}
	if strings.HasSuffix(n.Name, visualSuffix) {
		return n.Parent()
	}
	return n
}

// defaultColor is the tint for visuals without a color.
var defaultColor = "#808080"

const visualSuffix = "/visual"

// Load reads a model file from path.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model: load %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("model: load %s: %w", path, err)
	}
	return m, nil
}

// Parse builds a Model from YAML.
func Parse(data []byte) (*Model, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("model: parse: %w", err)
	}
	return Build(f)
}

// Build turns a model description into scene nodes. Links need non-empty names.
func Build(f File) (*Model, error) {
	name := f.Name
	if name == "" {
		name = "model"
	}
	root := scenegraph.NewNode(name)
	for _, l := range f.Links {
		n, err := buildLink(l)
		if err != nil {
			return nil, err
		}
		root.Add(n)
	}
	return &Model{Name: name, Root: root}, nil
}

func buildLink(l LinkDef) (*scenegraph.Node, error) {
	if l.Name == "" {
		return nil, errors.New("model: link without a name")
	}
	n := scenegraph.NewNode(l.Name)
	n.Position = vec3(l.Position)
	rot := vec3(l.Rotation)
	n.Rotation = mgl32.AnglesToQuat(
		mgl32.DegToRad(rot[0]),
		mgl32.DegToRad(rot[1]),
		mgl32.DegToRad(rot[2]),
		mgl32.XYZ,
	)
	if l.Visual != nil {
		v, err := buildVisual(l.Name, *l.Visual)
		if err != nil {
			return nil, err
		}
		n.Add(v)
	}
	for _, c := range l.Children {
		child, err := buildLink(c)
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

func buildVisual(link string, v VisualDef) (*scenegraph.Node, error) {
	size := vec3(v.Size)
	for i := range size {
		if size[i] == 0 {
			size[i] = 1
		}
	}
	var g scenegraph.Geometry
	switch scenegraph.Kind(v.Type) {
	case scenegraph.KindBox:
		g = scenegraph.BoxGeometry{Size: size}
	case scenegraph.KindSphere:
		g = scenegraph.SphereGeometry{Radius: size[0] / 2, WidthSegments: 16, HeightSegments: 16}
	case scenegraph.KindCylinder:
		g = scenegraph.CylinderGeometry{Radius: size[0] / 2, Height: size[1], Segments: 16}
	case scenegraph.KindPlane:
		g = scenegraph.PlaneGeometry{Width: size[0], Depth: size[2]}
	default:
		return nil, fmt.Errorf("model: link %q: unknown visual type %q", link, v.Type)
	}
	hex := v.Color
	if hex == "" {
		hex = defaultColor
	}
	c, err := hexcolor.Parse(hex)
	if err != nil {
		return nil, fmt.Errorf("model: link %q: %w", link, err)
	}
	n := scenegraph.NewNode(link + visualSuffix)
	n.Geometry = g
	n.Material = scenegraph.NewMaterial(c)
	if c.A < 255 {
		n.Material.Transparent = true
		n.Material.Opacity = float32(c.A) / 255
		n.Material.Color.A = 255
	}
	return n, nil
}

// vec3 takes up to three components from s; missing ones are 0.
func vec3(s []float32) mgl32.Vec3 {
	var v mgl32.Vec3
	copy(v[:], s)
	return v
}
