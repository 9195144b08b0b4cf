package spatial

import (
	"testing"

	"github.com/akmonengine/geoindex/topo"
	"github.com/akmonengine/geoindex/vertex"
	"github.com/go-gl/mathgl/mgl64"
)

func box(min, max mgl64.Vec3) vertex.AABB {
	return vertex.AABB{Min: min, Max: max}
}

func TestFaceIndexQueryOverlapping(t *testing.T) {
	fi := NewFaceIndex()
	fi.Insert(1, box(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}))
	fi.Insert(2, box(mgl64.Vec3{5, 5, 5}, mgl64.Vec3{6, 6, 6}))

	hits := fi.QueryOverlapping(box(mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{2, 2, 2}))
	if len(hits) != 1 || hits[0] != topo.FaceID(1) {
		t.Fatalf("expected only face 1 to overlap, got %v", hits)
	}
}

func TestFaceIndexRemove(t *testing.T) {
	fi := NewFaceIndex()
	fi.Insert(1, box(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}))
	fi.Remove(1)
	if fi.Len() != 0 {
		t.Fatalf("expected empty index after remove, got %d entries", fi.Len())
	}
	hits := fi.QueryOverlapping(box(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}))
	if len(hits) != 0 {
		t.Fatalf("expected no hits after remove, got %v", hits)
	}
}
