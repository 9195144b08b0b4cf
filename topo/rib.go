package topo

// Rib is an undirected edge between two vertices, stored with its lower
// vertex id first (Build canonicalizes this) so that the two polygons
// sharing an edge resolve to the same rib regardless of the winding order
// either one recorded it in.
type Rib struct {
	A, B VertexID
}

// Build returns the canonical Rib between a and b: the pair ordered so A <=
// B. This mirrors the reference implementation's Rib::build, which exists
// precisely so edge direction never leaks into rib identity.
func Build(a, b VertexID) Rib {
	if a <= b {
		return Rib{A: a, B: b}
	}
	return Rib{A: b, B: a}
}

// Other returns the endpoint of r that is not v.
func (r Rib) Other(v VertexID) VertexID {
	if r.A == v {
		return r.B
	}
	return r.A
}

// SegDir is the direction a Seg traverses its rib.
type SegDir bool

const (
	// Fwd traverses a rib from A to B.
	Fwd SegDir = false
	// Rev traverses a rib from B to A.
	Rev SegDir = true
)

// Flip returns the opposite direction.
func (d SegDir) Flip() SegDir {
	return !d
}

// Seg is a directed reference to a rib: one edge of a face boundary loop,
// traversed in a specific direction.
type Seg struct {
	Rib RibID
	Dir SegDir
}

// Flip returns the same rib traversed in the opposite direction — the
// segment as seen from the face on the other side of the rib.
func (s Seg) Flip() Seg {
	return Seg{Rib: s.Rib, Dir: s.Dir.Flip()}
}

// Endpoints resolves a Seg to its actual from/to vertices given the rib's
// stored endpoints.
func (s Seg) Endpoints(r Rib) (from, to VertexID) {
	if s.Dir == Fwd {
		return r.A, r.B
	}
	return r.B, r.A
}

// RibTable stores the deduplicated set of ribs in an Index, along with the
// bookkeeping needed to resolve a rib that has since been split into two
// shorter ribs (rib_parent in the invariant the spec names).
type RibTable struct {
	ribs      []Rib
	index     map[Rib]RibID
	faces     map[RibID]map[FaceID]bool
	ribParent map[RibID]RibID
}

// NewRibTable returns an empty rib table.
func NewRibTable() *RibTable {
	return &RibTable{
		index:     make(map[Rib]RibID),
		faces:     make(map[RibID]map[FaceID]bool),
		ribParent: make(map[RibID]RibID),
	}
}

// Insert returns the id of the canonical rib between a and b, creating one
// if it doesn't already exist. The second return value reports whether the
// rib was newly created.
func (t *RibTable) Insert(a, b VertexID) (RibID, bool) {
	r := Build(a, b)
	if id, ok := t.index[r]; ok {
		return id, false
	}
	id := RibID(len(t.ribs))
	t.ribs = append(t.ribs, r)
	t.index[r] = id
	t.faces[id] = make(map[FaceID]bool)
	return id, true
}

// Get returns the rib stored under id.
func (t *RibTable) Get(id RibID) Rib {
	return t.ribs[id]
}

// Lookup returns the id of the rib between a and b if one has already been
// inserted.
func (t *RibTable) Lookup(a, b VertexID) (RibID, bool) {
	id, ok := t.index[Build(a, b)]
	return id, ok
}

// AttachFace records that face uses rib.
func (t *RibTable) AttachFace(rib RibID, face FaceID) {
	t.faces[rib][face] = true
}

// DetachFace removes the record that face uses rib.
func (t *RibTable) DetachFace(rib RibID, face FaceID) {
	delete(t.faces[rib], face)
}

// Faces returns the ids of every face currently using rib.
func (t *RibTable) Faces(rib RibID) []FaceID {
	out := make([]FaceID, 0, len(t.faces[rib]))
	for f := range t.faces[rib] {
		out = append(out, f)
	}
	return out
}

// SetParent records that child replaces parent after a rib split (e.g. when
// a rib is cut by an intersecting face into two shorter ribs sharing one of
// its original endpoints).
func (t *RibTable) SetParent(child, parent RibID) {
	t.ribParent[child] = parent
}

// RootParent walks the rib_parent chain from id to its oldest recorded
// ancestor. An id with no recorded parent is its own root.
func (t *RibTable) RootParent(id RibID) RibID {
	for {
		parent, ok := t.ribParent[id]
		if !ok {
			return id
		}
		id = parent
	}
}

// Remove deletes a rib's bookkeeping entirely. Used when a face is removed
// and no other face references the rib any longer.
func (t *RibTable) Remove(id RibID) {
	delete(t.faces, id)
	if cur, ok := t.index[t.ribs[id]]; ok && cur == id {
		delete(t.index, t.ribs[id])
	}
}
