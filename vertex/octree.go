package vertex

import "github.com/go-gl/mathgl/mgl64"

// maxNodes is the number of points a leaf carries before it splits into
// eight children; matches the reference octree's own constant.
const maxNodes = 3

// ID identifies a vertex stored in a Store. It is a dense, arena-style
// index, not a pointer — ids are never reused once assigned.
type ID int

type node struct {
	id    ID
	point mgl64.Vec3
}

// Octree is a bounded spatial index over points, used by Store to find an
// existing vertex within stability tolerance of a newly inserted point
// without scanning every vertex in the mesh.
type Octree struct {
	bounds   AABB
	children [8]*Octree // nil until this node has split
	leaves   []node     // nil once split
}

// NewOctree builds an empty octree over the given bounds. The bounds are
// fixed for the tree's lifetime — there is no insert path that grows them,
// matching the reference implementation, which requires the caller to size
// the root AABB up front.
func NewOctree(bounds AABB) *Octree {
	return &Octree{bounds: bounds}
}

// Insert adds (id, point) to the tree. It panics if point lies outside the
// tree's bounds, the same contract violation the reference octree panics
// on — a point outside the configured bounds means the caller mis-sized
// the index, not a recoverable runtime condition.
func (t *Octree) Insert(id ID, point mgl64.Vec3) {
	if !t.bounds.ContainsPoint(point) {
		panic("vertex: point outside octree bounds")
	}
	t.insert(id, point)
}

func (t *Octree) insert(id ID, point mgl64.Vec3) {
	if t.children[0] != nil {
		t.children[t.octantFor(point)].insert(id, point)
		return
	}
	t.leaves = append(t.leaves, node{id: id, point: point})
	if len(t.leaves) > maxNodes {
		t.split()
	}
}

func (t *Octree) octantFor(p mgl64.Vec3) int {
	mid := t.bounds.Mid()
	idx := 0
	if p.X() > mid.X() {
		idx |= 1 << 2
	}
	if p.Y() > mid.Y() {
		idx |= 1 << 1
	}
	if p.Z() > mid.Z() {
		idx |= 1
	}
	return idx
}

func (t *Octree) split() {
	leaves := t.leaves
	t.leaves = nil
	for i := range t.children {
		t.children[i] = NewOctree(t.bounds.Octant(i))
	}
	for _, n := range leaves {
		t.children[t.octantFor(n.point)].insert(n.id, n.point)
	}
}

// QueryWithinRadius appends the id of every stored point within radius of
// center to dst and returns the extended slice, descending only into
// children whose bounds could contain such a point.
func (t *Octree) QueryWithinRadius(dst []ID, center mgl64.Vec3, radius float64) []ID {
	if !sphereIntersectsAABB(center, radius, t.bounds) {
		return dst
	}
	if t.children[0] != nil {
		for _, c := range t.children {
			dst = c.QueryWithinRadius(dst, center, radius)
		}
		return dst
	}
	for _, n := range t.leaves {
		if n.point.Sub(center).Len() <= radius {
			dst = append(dst, n.id)
		}
	}
	return dst
}

func sphereIntersectsAABB(center mgl64.Vec3, radius float64, b AABB) bool {
	closest := mgl64.Vec3{
		clampF(center.X(), b.Min.X(), b.Max.X()),
		clampF(center.Y(), b.Min.Y(), b.Max.Y()),
		clampF(center.Z(), b.Min.Z(), b.Max.Z()),
	}
	return closest.Sub(center).Len() <= radius
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
