package topo

import (
	"github.com/akmonengine/geoindex/predicate"
	"github.com/akmonengine/geoindex/vertex"
)

// Face is a planar boundary loop: an ordered cycle of segments, all lying
// on Plane, together with the set of polygons currently realized by it.
// Mesh membership lives on the polygon, not the face: a face may be
// referenced by polygons belonging to more than one mesh simultaneously
// (the shared-boundary case two CSG operands produce at a cut), so Face
// itself carries no Mesh field.
type Face struct {
	Plane    predicate.Plane
	Segments []Seg
	Polygons map[PolygonID]bool
	AABB     vertex.AABB
}

// NewFace constructs a face from its boundary and plane. AABB must be
// filled in by the caller once vertex positions are resolved (Face itself
// has no access to a Store).
func NewFace(plane predicate.Plane, boundary []Seg, aabb vertex.AABB) *Face {
	return &Face{
		Plane:    plane,
		Segments: append([]Seg(nil), boundary...),
		Polygons: make(map[PolygonID]bool),
		AABB:     aabb,
	}
}

// Ribs returns the rib ids referenced by the face's boundary, in order.
func (f *Face) Ribs() []RibID {
	out := make([]RibID, len(f.Segments))
	for i, s := range f.Segments {
		out[i] = s.Rib
	}
	return out
}

// HasRib reports whether rib appears anywhere in the face's boundary.
func (f *Face) HasRib(rib RibID) bool {
	for _, s := range f.Segments {
		if s.Rib == rib {
			return true
		}
	}
	return false
}

// IsOppositeFace reports whether a and b describe the same boundary loop
// traversed in opposite directions on coplanar-but-flipped planes — the
// condition the merge engine treats as "these two input polygons cancel
// each other out" during duplicate-face detection.
func IsOppositeFace(a, b *Face, ribs *RibTable) bool {
	if !a.Plane.IsCoplanar(b.Plane) || len(a.Segments) != len(b.Segments) {
		return false
	}
	want := make(map[RibID]SegDir, len(a.Segments))
	for _, s := range a.Segments {
		want[s.Rib] = s.Dir
	}
	for _, s := range b.Segments {
		dir, ok := want[s.Rib]
		if !ok || dir == s.Dir {
			return false
		}
	}
	return true
}

// IsSameFace reports whether a and b describe the same boundary loop with
// the same winding — an exact duplicate input polygon.
func IsSameFace(a, b *Face) bool {
	if !a.Plane.IsCoplanar(b.Plane) || len(a.Segments) != len(b.Segments) {
		return false
	}
	want := make(map[RibID]SegDir, len(a.Segments))
	for _, s := range a.Segments {
		want[s.Rib] = s.Dir
	}
	for _, s := range b.Segments {
		dir, ok := want[s.Rib]
		if !ok || dir != s.Dir {
			return false
		}
	}
	return true
}
