package topo

import (
	"testing"

	"github.com/akmonengine/geoindex/predicate"
	"github.com/akmonengine/geoindex/vertex"
	"github.com/go-gl/mathgl/mgl64"
)

func square(rt *RibTable, z float64, flip bool) []Seg {
	pts := [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	verts := make([]VertexID, len(pts))
	for i, p := range pts {
		verts[i] = VertexID(i)
		_ = p
	}
	if flip {
		for i, j := 0, len(verts)-1; i < j; i, j = i+1, j-1 {
			verts[i], verts[j] = verts[j], verts[i]
		}
	}
	segs := make([]Seg, len(verts))
	for i := range verts {
		a, b := verts[i], verts[(i+1)%len(verts)]
		id, _ := rt.Insert(a, b)
		canon := rt.Get(id)
		dir := Fwd
		if canon.A != a {
			dir = Rev
		}
		segs[i] = Seg{Rib: id, Dir: dir}
	}
	return segs
}

func TestIsSameFaceAndOppositeFace(t *testing.T) {
	rt := NewRibTable()
	plane := predicate.Plane{Normal: mgl64.Vec3{0, 0, 1}, D: 0}
	flipped := predicate.Plane{Normal: mgl64.Vec3{0, 0, -1}, D: 0}

	a := NewFace(plane, square(rt, 0, false), vertex.AABB{})
	b := NewFace(plane, square(rt, 0, false), vertex.AABB{})
	if !IsSameFace(a, b) {
		t.Fatal("expected identical boundary loops to be the same face")
	}

	c := NewFace(flipped, square(rt, 0, true), vertex.AABB{})
	if !IsOppositeFace(a, c, rt) {
		t.Fatal("expected reversed-winding coplanar loop to be the opposite face")
	}
	if IsSameFace(a, c) {
		t.Fatal("opposite-winding faces must not be reported as the same face")
	}
}
