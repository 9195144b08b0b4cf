package geoindex

import (
	"fmt"
	"strings"

	"github.com/akmonengine/geoindex/predicate"
	"github.com/akmonengine/geoindex/topo"
	"github.com/go-gl/mathgl/mgl64"
)

// Scad renders every live face belonging to mesh as an OpenSCAD
// polyhedron() literal: the full vertex list the mesh's faces reference,
// followed by one face index list per face, each in reverse cyclic order
// (OpenSCAD's winding convention, the opposite of this package's internal
// one). Points are rounded to the configured points precision rather than
// StabilityRounding, since this output is for inspection, not equality
// testing.
func (ix *Index) Scad(mesh topo.MeshID) string {
	faceIDs := ix.facesOfMesh(mesh)

	localID := make(map[vertexKey]int)
	var points []string
	var faceLines []string

	for _, fid := range faceIDs {
		face := ix.faces.Get(fid)
		if face == nil {
			continue
		}
		indices := make([]string, len(face.Segments))
		for i, s := range face.Segments {
			rib := ix.ribs.Get(s.Rib)
			from, _ := s.Endpoints(rib)
			p := roundToPrecision(ix.verts.Get(from), ix.cfg.pointsPrecision)
			key := vertexKey{p[0], p[1], p[2]}
			id, ok := localID[key]
			if !ok {
				id = len(points)
				localID[key] = id
				points = append(points, fmt.Sprintf("[%s,%s,%s]", fmtF(p[0]), fmtF(p[1]), fmtF(p[2])))
			}
			// reverse cyclic order for OpenSCAD's outward-normal convention
			indices[len(face.Segments)-1-i] = fmt.Sprintf("%d", id)
		}
		faceLines = append(faceLines, "["+strings.Join(indices, ",")+"]")
	}

	var b strings.Builder
	b.WriteString("polyhedron(\n  points=[")
	b.WriteString(strings.Join(points, ","))
	b.WriteString("],\n  faces=[")
	b.WriteString(strings.Join(faceLines, ","))
	b.WriteString("]\n);\n")
	return b.String()
}

type vertexKey [3]float64

func roundToPrecision(v mgl64.Vec3, dp int32) mgl64.Vec3 {
	return mgl64.Vec3{
		predicate.NewScalar(v[0]).Round(dp).Float64(),
		predicate.NewScalar(v[1]).Round(dp).Float64(),
		predicate.NewScalar(v[2]).Round(dp).Float64(),
	}
}

func fmtF(v float64) string {
	return fmt.Sprintf("%g", v)
}
