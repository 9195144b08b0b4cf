package vertex

import (
	"github.com/akmonengine/geoindex/predicate"
	"github.com/go-gl/mathgl/mgl64"
)

// dedupRadius is the search radius used to find an existing vertex
// coincident with a newly inserted point. It is deliberately larger than a
// single ULP: two CSG operands that describe "the same" vertex will rarely
// produce bit-identical floats, only values equal after StabilityRounding.
const dedupRadius = 1e-6

// Store holds the set of distinct vertices in an Index, deduplicating by
// position so that two polygons sharing an edge end up sharing vertex ids
// rather than each allocating their own.
type Store struct {
	tree   *Octree
	points []mgl64.Vec3
}

// NewStore builds an empty vertex store bounded by bounds. Any point
// inserted outside these bounds is a programmer error (see Octree.Insert).
func NewStore(bounds AABB) *Store {
	return &Store{tree: NewOctree(bounds)}
}

// Insert returns the id of the vertex at point, creating one if none
// exists within dedup tolerance.
func (s *Store) Insert(point mgl64.Vec3) ID {
	point = predicate.RoundVec3(point)
	var buf [8]ID
	candidates := s.tree.QueryWithinRadius(buf[:0], point, dedupRadius)
	for _, id := range candidates {
		if predicate.PointsEqual(s.points[id], point) {
			return id
		}
	}
	id := ID(len(s.points))
	s.points = append(s.points, point)
	s.tree.Insert(id, point)
	return id
}

// Get returns the position of vertex id.
func (s *Store) Get(id ID) mgl64.Vec3 {
	return s.points[id]
}

// Len returns the number of distinct vertices stored.
func (s *Store) Len() int {
	return len(s.points)
}

// All returns every stored vertex in id order, for callers such as Scad
// that need to dump the whole point list.
func (s *Store) All() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(s.points))
	copy(out, s.points)
	return out
}
