package spheres

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrNotMapping is returned when the top level of a dataset is not a key/value mapping.
var ErrNotMapping = errors.New("spheres: dataset top level is not a mapping")

// Load reads and parses the dataset at path (JSON or YAML).
func Load(path string) (Hierarchy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("spheres: load %s: %w", path, err)
	}
	h, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("spheres: load %s: %w", path, err)
	}
	return h, nil
}

// Parse decodes a dataset. JSON is read through the YAML decoder so that key order is kept.
// Malformed inner entries are tolerated: unusable levels become empty, subdivisions without a
// "spheres" list are marked invalid, and bad sphere fields take their defaults.
// An empty document parses to an empty Hierarchy.
func Parse(data []byte) (Hierarchy, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("spheres: parse: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return Hierarchy{}, nil
	}
	top := resolve(doc.Content[0])
	if top.Kind != yaml.MappingNode {
		return nil, ErrNotMapping
	}
	h := make(Hierarchy, 0, len(top.Content)/2)
	eachValue(top, func(key string, v *yaml.Node) {
		entry := LinkEntry{Key: key}
		eachValue(v, func(id string, lv *yaml.Node) {
			level := Level{ID: id}
			eachValue(lv, func(subID string, sv *yaml.Node) {
				if isSphereList(lv, subID, sv) {
					// the level holds its spheres directly: it is its own single subdivision
					level.Subdivisions = append(level.Subdivisions, parseSubdivision(id, lv))
					return
				}
				level.Subdivisions = append(level.Subdivisions, parseSubdivision(subID, sv))
			})
			entry.Levels = append(entry.Levels, level)
		})
		h = append(h, entry)
	})
	return h, nil
}

// resolve follows aliases and unwraps documents.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.AliasNode:
			n = n.Alias
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		default:
			return n
		}
	}
	return nil
}

// eachValue calls fn for every value of a mapping (with its key) or every item of a sequence
// (with its index as key). Scalars and nulls have no values.
func eachValue(n *yaml.Node, fn func(key string, v *yaml.Node)) {
	n = resolve(n)
	if n == nil {
		return
	}
	switch n.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			fn(n.Content[i].Value, n.Content[i+1])
		}
	case yaml.SequenceNode:
		for i, item := range n.Content {
			fn(strconv.Itoa(i), item)
		}
	}
}

// isSphereList reports whether key/v is a "spheres" sequence sitting directly in the mapping parent.
func isSphereList(parent *yaml.Node, key string, v *yaml.Node) bool {
	parent, v = resolve(parent), resolve(v)
	return key == "spheres" && parent != nil && parent.Kind == yaml.MappingNode && v != nil && v.Kind == yaml.SequenceNode
}

// field returns the value for key in a mapping node, or nil.
func field(n *yaml.Node, key string) *yaml.Node {
	n = resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return resolve(n.Content[i+1])
		}
	}
	return nil
}

func parseSubdivision(id string, n *yaml.Node) Subdivision {
	sub := Subdivision{ID: id}
	list := field(n, "spheres")
	if list == nil || list.Kind != yaml.SequenceNode {
		return sub
	}
	sub.Valid = true
	sub.Spheres = make([]Sphere, 0, len(list.Content))
	for _, item := range list.Content {
		sub.Spheres = append(sub.Spheres, parseSphere(item))
	}
	return sub
}

func parseSphere(n *yaml.Node) Sphere {
	s := Sphere{Radius: DefaultRadius}
	if r, ok := number(field(n, "radius")); ok && r >= 0 {
		s.Radius = r
	}
	if origin := field(n, "origin"); origin != nil && origin.Kind == yaml.SequenceNode {
		for i := 0; i < 3 && i < len(origin.Content); i++ {
			if v, ok := number(origin.Content[i]); ok {
				s.Origin[i] = v
			}
		}
	}
	return s
}

// number returns the value of a finite int or float scalar. Quoted numbers and booleans don't count.
func number(n *yaml.Node) (float64, bool) {
	n = resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return 0, false
	}
	switch n.ShortTag() {
	case "!!int", "!!float":
	default:
		return 0, false
	}
	var v float64
	if err := n.Decode(&v); err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
