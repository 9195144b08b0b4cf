// Package spatial provides the broad-phase spatial index over face
// bounding boxes that the merge engine consults before running any
// per-face geometric predicate, so that inserting one polygon never walks
// every face already in the index.
package spatial

import (
	"github.com/akmonengine/geoindex/topo"
	"github.com/akmonengine/geoindex/vertex"
	"github.com/dhconnelly/rtreego"
)

const (
	minChildren = 2
	maxChildren = 8
	dimensions  = 3
)

// entry adapts a topo.FaceID and its AABB to rtreego's Spatial interface.
type entry struct {
	id   topo.FaceID
	rect *rtreego.Rect
}

func (e *entry) Bounds() *rtreego.Rect { return e.rect }

// FaceIndex is an R*-tree keyed on face AABBs.
type FaceIndex struct {
	tree    *rtreego.Rtree
	entries map[topo.FaceID]*entry
}

// NewFaceIndex returns an empty spatial index.
func NewFaceIndex() *FaceIndex {
	return &FaceIndex{
		tree:    rtreego.NewTree(dimensions, minChildren, maxChildren),
		entries: make(map[topo.FaceID]*entry),
	}
}

func toRect(b vertex.AABB) *rtreego.Rect {
	lengths := []float64{
		b.Max.X() - b.Min.X(),
		b.Max.Y() - b.Min.Y(),
		b.Max.Z() - b.Min.Z(),
	}
	for i, l := range lengths {
		if l <= 0 {
			lengths[i] = 1e-9
		}
	}
	rect, err := rtreego.NewRect(rtreego.Point{b.Min.X(), b.Min.Y(), b.Min.Z()}, lengths)
	if err != nil {
		panic("spatial: degenerate face AABB: " + err.Error())
	}
	return rect
}

// Insert adds face id with bounding box aabb to the index.
func (fi *FaceIndex) Insert(id topo.FaceID, aabb vertex.AABB) {
	e := &entry{id: id, rect: toRect(aabb)}
	fi.entries[id] = e
	fi.tree.Insert(e)
}

// Remove deletes face id from the index.
func (fi *FaceIndex) Remove(id topo.FaceID) {
	e, ok := fi.entries[id]
	if !ok {
		return
	}
	fi.tree.Delete(e)
	delete(fi.entries, id)
}

// QueryOverlapping returns every face id currently indexed whose AABB
// overlaps aabb. A face indexed under the queried box is included too;
// callers skip their own id.
func (fi *FaceIndex) QueryOverlapping(aabb vertex.AABB) []topo.FaceID {
	hits := fi.tree.SearchIntersect(toRect(aabb))
	out := make([]topo.FaceID, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(*entry).id)
	}
	return out
}

// Len returns the number of faces currently indexed.
func (fi *FaceIndex) Len() int {
	return len(fi.entries)
}
