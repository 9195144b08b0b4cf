// Package geoindex implements GeoIndex: a boundary-representation
// geometric kernel for polyhedral meshes. An Index owns a single
// topological database of vertices, ribs, faces, polygons and meshes, and
// exposes the mutation API CSG operations (union, difference, intersection,
// slicing) are built from by inserting and classifying polygons against
// it.
//
// An Index is not safe for concurrent use: exactly one goroutine may call
// its mutating methods at a time, the same single-writer discipline the
// teacher's World applies to one physics step.
package geoindex

import (
	"github.com/akmonengine/geoindex/spatial"
	"github.com/akmonengine/geoindex/topo"
	"github.com/akmonengine/geoindex/vertex"
	"github.com/go-gl/mathgl/mgl64"
)

// Index is the geometric kernel: the topological database plus the
// spatial and vertex indices that make incremental polygon insertion
// practical at scale.
type Index struct {
	cfg config

	verts    *vertex.Store
	ribs     *topo.RibTable
	faces    *topo.FaceTable
	polys    *topo.PolygonTable
	faceTree *spatial.FaceIndex

	nextMesh topo.MeshID

	// pending is partially_split_faces: ribs that have been created to cut
	// across a face but not yet folded into its boundary loop, drained to a
	// fixed point by drainPendingSplits once a polygon insertion's common-rib
	// cascade settles (§4.5 step 7, §9).
	pending map[topo.FaceID]map[topo.RibID]bool
}

// NewIndex returns an empty Index bounded by bounds. Every vertex ever
// inserted into this Index, across every polygon and every mesh, must lie
// within bounds — see vertex.Store.
func NewIndex(bounds vertex.AABB, opts ...Option) *Index {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Index{
		cfg:      cfg,
		verts:    vertex.NewStore(bounds),
		ribs:     topo.NewRibTable(),
		faces:    topo.NewFaceTable(),
		polys:    topo.NewPolygonTable(),
		faceTree: spatial.NewFaceIndex(),
		pending:  make(map[topo.FaceID]map[topo.RibID]bool),
	}
}

// NewMesh allocates a fresh, empty mesh id. Meshes come into existence
// lazily from the caller's point of view — the id returned here owns no
// faces until AddPolygonToMesh is called against it — but the id itself is
// reserved immediately so two concurrent logical meshes never collide.
func (ix *Index) NewMesh() topo.MeshID {
	id := ix.nextMesh
	ix.nextMesh++
	return id
}

// Meshes returns the id of every mesh that currently owns at least one
// polygon.
func (ix *Index) Meshes() []topo.MeshID {
	return ix.polys.Meshes()
}

// facesOfMesh returns the distinct live faces currently realizing at least
// one of mesh's polygons. Faces are scanned rather than looked up through a
// reverse pointer because a single polygon's original boundary can
// fragment across more than one face as later insertions cut across it.
func (ix *Index) facesOfMesh(mesh topo.MeshID) []topo.FaceID {
	want := make(map[topo.PolygonID]bool)
	for _, p := range ix.polys.MeshOf(mesh) {
		want[p] = true
	}
	var out []topo.FaceID
	for _, id := range ix.faces.AllFaces() {
		f := ix.faces.Get(id)
		for p := range f.Polygons {
			if want[p] {
				out = append(out, id)
				break
			}
		}
	}
	return out
}

// VertexPosition returns the realized position of vertex id.
func (ix *Index) VertexPosition(id vertex.ID) mgl64.Vec3 {
	return ix.verts.Get(id)
}

// Face returns the live face stored under id, or nil if no such face
// exists (it may never have existed, or may have been split or removed;
// use GetFaceWithRootParent to resolve a stale id).
func (ix *Index) Face(id topo.FaceID) *topo.Face {
	return ix.faces.Get(id)
}

// GetFaceWithRootParent resolves a possibly-stale face id to the set of
// live faces that descend from it through face_splits history. A face id
// that is still live and was never split resolves to itself.
func (ix *Index) GetFaceWithRootParent(id topo.FaceID) []topo.FaceID {
	return ix.faces.RootParentFaces(id)
}

// FindSplitFaceParent walks face_splits in the opposite direction: given a
// live face id, it returns the chain of ancestor face ids whose split
// eventually produced it, oldest first. A face that was never produced by
// a split returns an empty slice.
func (ix *Index) FindSplitFaceParent(id topo.FaceID) []topo.FaceID {
	var chain []topo.FaceID
	for parent, children := range ix.faces.AllSplits() {
		for _, c := range children {
			if c == id {
				chain = append(ix.FindSplitFaceParent(parent), parent)
				return chain
			}
		}
	}
	return chain
}
