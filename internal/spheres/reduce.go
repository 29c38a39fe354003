package spheres

import (
	"strings"

	"github.com/jinzhu/copier"
)

// LinkName returns the part of a dataset key before the first "::", or the whole key.
func LinkName(key string) string {
	name, _, _ := strings.Cut(key, LinkSeparator)
	return name
}

// Reduce returns one LinkSpheres per entry of h, in the same order. For each entry the longest valid
// subdivision across all levels is kept; on equal length the first one in document order wins.
// An entry without any valid subdivision yields an empty sphere list. The result shares no memory with h.
func Reduce(h Hierarchy) []LinkSpheres {
	picked := make([]LinkSpheres, 0, len(h))
	for _, entry := range h {
		picked = append(picked, LinkSpheres{
			Link:    LinkName(entry.Key),
			Spheres: finest(entry),
		})
	}
	return cloneSets(picked)
}

// finest picks the longest valid subdivision of entry, or nil when there is none.
func finest(entry LinkEntry) []Sphere {
	var best []Sphere
	bestCount := -1
	for _, level := range entry.Levels {
		for _, sub := range level.Subdivisions {
			if !sub.Valid {
				continue
			}
			if len(sub.Spheres) > bestCount {
				bestCount = len(sub.Spheres)
				best = sub.Spheres
			}
		}
	}
	return best
}

// cloneSets deep-copies src, so no sphere list of the result shares a backing array with src.
// Every Spheres of the result is non-nil.
func cloneSets(src []LinkSpheres) []LinkSpheres {
	dst := make([]LinkSpheres, 0, len(src))
	if err := copier.CopyWithOption(&dst, src, copier.Option{DeepCopy: true}); err != nil {
		dst = dst[:0]
		for _, set := range src {
			dst = append(dst, LinkSpheres{Link: set.Link, Spheres: append([]Sphere(nil), set.Spheres...)})
		}
	}
	for i := range dst {
		if dst[i].Spheres == nil {
			dst[i].Spheres = []Sphere{}
		}
	}
	return dst
}
