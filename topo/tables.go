package topo

// FaceTable owns every live face in an Index, plus the face_splits history
// that lets a caller holding a stale FaceID resolve it down to the faces
// that replaced it. Removed faces are not kept; only their ids survive in
// face_splits. Mesh
// membership is tracked per-polygon (see PolygonTable), not here.
type FaceTable struct {
	faces      map[FaceID]*Face
	nextID     FaceID
	faceSplits map[FaceID][]FaceID
}

// NewFaceTable returns an empty face table.
func NewFaceTable() *FaceTable {
	return &FaceTable{
		faces:      make(map[FaceID]*Face),
		faceSplits: make(map[FaceID][]FaceID),
	}
}

// Insert stores face, returning its new id.
func (t *FaceTable) Insert(face *Face) FaceID {
	id := t.nextID
	t.nextID++
	t.faces[id] = face
	return id
}

// Get returns the face stored under id, or nil if it has been removed.
func (t *FaceTable) Get(id FaceID) *Face {
	return t.faces[id]
}

// Remove deletes face id's storage, but leaves any face_splits entry
// referencing it intact so history can still be walked.
func (t *FaceTable) Remove(id FaceID) {
	delete(t.faces, id)
}

// RecordSplit marks parent as replaced by children — invariant 8 in the
// spec's at-rest bookkeeping.
func (t *FaceTable) RecordSplit(parent FaceID, children []FaceID) {
	t.faceSplits[parent] = append([]FaceID(nil), children...)
}

// SplitChildren returns the direct children a face split produced, or nil
// if the face was never split.
func (t *FaceTable) SplitChildren(id FaceID) []FaceID {
	return t.faceSplits[id]
}

// AllSplits returns the full face_splits history, parent id to direct
// children, for callers that need to walk it in either direction.
func (t *FaceTable) AllSplits() map[FaceID][]FaceID {
	return t.faceSplits
}

// RootParentFaces resolves a possibly-stale face id down to the set of live
// descendant faces that replaced it, by walking face_splits breadth-first.
// A face id that was never split and still exists resolves to itself; one
// that was removed without a recorded split resolves to no faces.
func (t *FaceTable) RootParentFaces(id FaceID) []FaceID {
	if _, ok := t.faces[id]; ok {
		return []FaceID{id}
	}
	children, ok := t.faceSplits[id]
	if !ok {
		return nil
	}
	var out []FaceID
	for _, c := range children {
		out = append(out, t.RootParentFaces(c)...)
	}
	return out
}

// AllFaces returns the id of every currently live face.
func (t *FaceTable) AllFaces() []FaceID {
	out := make([]FaceID, 0, len(t.faces))
	for id := range t.faces {
		out = append(out, id)
	}
	return out
}
