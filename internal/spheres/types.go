// Package spheres reads hierarchical collision-sphere datasets and reduces them to one sphere set per link.
//
// A dataset maps "<link>::<suffix>" keys to levels, each level to subdivisions, and each subdivision to a
// list of spheres. The same link is usually decomposed several times at increasing detail; Reduce keeps
// the subdivision with the most spheres.
package spheres

// DefaultRadius replaces a missing, non-numeric, negative or NaN radius.
const DefaultRadius = 0.01

// LinkSeparator splits a dataset key into link name and an ignored suffix.
const LinkSeparator = "::"

// Sphere is one collision sphere in the local frame of its link.
type Sphere struct {
	Origin [3]float64 `json:"origin" yaml:"origin"`
	Radius float64    `json:"radius" yaml:"radius"`
}

// LinkSpheres is the reduced sphere set of a single link.
type LinkSpheres struct {
	Link    string   `json:"link" yaml:"link"`
	Spheres []Sphere `json:"spheres" yaml:"spheres"`
}

// Hierarchy is a parsed dataset. Every level of nesting keeps the order of the source document.
type Hierarchy []LinkEntry

// LinkEntry is one top-level dataset key, e.g. "wheel_fl::8".
type LinkEntry struct {
	Key    string
	Levels []Level
}

// Level is one resolution level of a link.
type Level struct {
	ID           string
	Subdivisions []Subdivision
}

// Subdivision is one candidate decomposition. Valid is false when the source had no "spheres" list;
// such a subdivision never wins a reduction, not even against an empty one.
type Subdivision struct {
	ID      string
	Spheres []Sphere
	Valid   bool
}

// Count returns the total number of spheres over all sets.
func Count(sets []LinkSpheres) int {
	n := 0
	for _, s := range sets {
		n += len(s.Spheres)
	}
	return n
}
