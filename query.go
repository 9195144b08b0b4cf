package geoindex

import (
	"fmt"

	"github.com/akmonengine/geoindex/classify"
	"github.com/akmonengine/geoindex/topo"
)

// RemovePolygon detaches polygon from every face currently realizing it. A
// face left with no remaining polygon contributions — from any mesh — is
// removed outright via RemoveFace; a face still backed by at least one
// other polygon (the duplicate-face fold case, or a face shared by two
// meshes) simply loses this polygon's membership. Faces are scanned rather
// than looked up by a reverse pointer because a single polygon's original
// boundary can fragment across more than one face as later insertions cut
// across it.
func (ix *Index) RemovePolygon(polygon topo.PolygonID) error {
	if _, ok := ix.polys.Get(polygon); !ok {
		return fmt.Errorf("%w: polygon %d is not live", ErrFaceNotFound, polygon)
	}
	for _, id := range ix.faces.AllFaces() {
		f := ix.faces.Get(id)
		if f == nil || !f.Polygons[polygon] {
			continue
		}
		delete(f.Polygons, polygon)
		if len(f.Polygons) == 0 {
			ix.RemoveFace(id)
		}
	}
	ix.polys.Remove(polygon)
	return nil
}

// RemoveFace deletes face id and every rib association it held. Ribs left
// referencing no face at all are pruned from the rib table.
func (ix *Index) RemoveFace(id topo.FaceID) error {
	face := ix.faces.Get(id)
	if face == nil {
		return fmt.Errorf("%w: %d", ErrFaceNotFound, id)
	}
	for _, s := range face.Segments {
		ix.ribs.DetachFace(s.Rib, id)
		if len(ix.ribs.Faces(s.Rib)) == 0 {
			ix.ribs.Remove(s.Rib)
		}
	}
	ix.faceTree.Remove(id)
	ix.faces.Remove(id)
	return nil
}

// FlipPolygon reverses face id's winding in place: its plane normal is
// negated and its boundary segments are reversed and individually flipped,
// so the face continues to describe the same boundary loop but now faces
// the opposite direction. Used to invert one CSG operand before a
// difference operation.
func (ix *Index) FlipPolygon(id topo.FaceID) error {
	face := ix.faces.Get(id)
	if face == nil {
		return fmt.Errorf("%w: %d", ErrFaceNotFound, id)
	}
	reversed := make([]topo.Seg, len(face.Segments))
	for i, s := range face.Segments {
		reversed[len(face.Segments)-1-i] = s.Flip()
	}
	face.Segments = reversed
	face.Plane = face.Plane.Flip()
	return nil
}

// MoveAllPolygons reassigns every polygon realized by a face reachable from
// seed through shared ribs to targetMesh, the bulk mesh-reassignment
// operation a caller uses once it has classified a connected patch of faces
// as belonging together.
func (ix *Index) MoveAllPolygons(seed topo.FaceID, targetMesh topo.MeshID) ([]topo.FaceID, error) {
	if ix.faces.Get(seed) == nil {
		return nil, fmt.Errorf("%w: %d", ErrFaceNotFound, seed)
	}
	faces := classify.SpreadVisitedAround(faceGeometry{ix}, seed)
	for _, id := range faces {
		f := ix.faces.Get(id)
		if f == nil {
			continue
		}
		for p := range f.Polygons {
			ix.polys.Move(p, targetMesh)
		}
	}
	return faces, nil
}

// SelectPolygons implements select_polygons(of_mesh, by_mesh, filter): it
// classifies every face of ofMesh against byMesh's surface and returns
// those matching keep. See classify.Select for the two-mesh dihedral
// classifier this delegates to.
func (ix *Index) SelectPolygons(ofMesh, byMesh topo.MeshID, keep classify.Filter) ([]topo.FaceID, error) {
	faces, err := classify.Select(faceGeometry{ix}, ofMesh, byMesh, keep)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return faces, nil
}
