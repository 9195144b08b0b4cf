package geoindex

import (
	"github.com/akmonengine/geoindex/classify"
	"github.com/akmonengine/geoindex/predicate"
	"github.com/akmonengine/geoindex/topo"
	"github.com/go-gl/mathgl/mgl64"
)

// faceGeometry adapts an Index's topological and vertex storage to the
// read-only view classify.Select needs, so the classifier never has to
// import vertex or reach into the Index's tables directly.
type faceGeometry struct {
	ix *Index
}

func (g faceGeometry) Boundary(id topo.FaceID) []mgl64.Vec3 {
	f := g.ix.faces.Get(id)
	if f == nil {
		return nil
	}
	out := make([]mgl64.Vec3, 0, len(f.Segments))
	for _, s := range f.Segments {
		rib := g.ix.ribs.Get(s.Rib)
		from, _ := s.Endpoints(rib)
		out = append(out, g.ix.verts.Get(from))
	}
	return out
}

func (g faceGeometry) Plane(id topo.FaceID) predicate.Plane {
	return g.ix.faces.Get(id).Plane
}

func (g faceGeometry) Ribs(id topo.FaceID) []topo.RibID {
	return g.ix.faces.Get(id).Ribs()
}

func (g faceGeometry) FacesOnRib(rib topo.RibID) []topo.FaceID {
	return g.ix.ribs.Faces(rib)
}

func (g faceGeometry) RibEndpoints(rib topo.RibID) (mgl64.Vec3, mgl64.Vec3) {
	r := g.ix.ribs.Get(rib)
	return g.ix.verts.Get(r.A), g.ix.verts.Get(r.B)
}

// FacesOfMesh returns the distinct live faces currently realizing at least
// one of mesh's polygons.
func (g faceGeometry) FacesOfMesh(mesh topo.MeshID) []topo.FaceID {
	return g.ix.facesOfMesh(mesh)
}

// MeshesOfFace returns every mesh id with a live polygon currently
// realized by id.
func (g faceGeometry) MeshesOfFace(id topo.FaceID) []topo.MeshID {
	f := g.ix.faces.Get(id)
	if f == nil {
		return nil
	}
	seen := make(map[topo.MeshID]bool)
	var out []topo.MeshID
	for p := range f.Polygons {
		poly, ok := g.ix.polys.Get(p)
		if !ok || seen[poly.Mesh] {
			continue
		}
		seen[poly.Mesh] = true
		out = append(out, poly.Mesh)
	}
	return out
}

var _ classify.FaceGeometry = faceGeometry{}
