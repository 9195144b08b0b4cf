package vertex

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func testBounds() AABB {
	return AABB{Min: mgl64.Vec3{-100, -100, -100}, Max: mgl64.Vec3{100, 100, 100}}
}

func TestStoreDedupesCoincidentPoints(t *testing.T) {
	s := NewStore(testBounds())
	a := s.Insert(mgl64.Vec3{1, 2, 3})
	b := s.Insert(mgl64.Vec3{1, 2, 3})
	if a != b {
		t.Fatalf("expected coincident points to dedupe to one id, got %d and %d", a, b)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 stored vertex, got %d", s.Len())
	}
}

func TestStoreDistinguishesDistinctPoints(t *testing.T) {
	s := NewStore(testBounds())
	a := s.Insert(mgl64.Vec3{0, 0, 0})
	b := s.Insert(mgl64.Vec3{1, 1, 1})
	if a == b {
		t.Fatal("expected distinct points to get distinct ids")
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 stored vertices, got %d", s.Len())
	}
}

func TestStoreManyPointsForceSplit(t *testing.T) {
	s := NewStore(testBounds())
	ids := make(map[ID]bool)
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			id := s.Insert(mgl64.Vec3{float64(x), float64(y), 0})
			ids[id] = true
		}
	}
	if len(ids) != 25 {
		t.Fatalf("expected 25 distinct vertices after octree splits, got %d", len(ids))
	}
}

func TestInsertOutsideBoundsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic inserting a point outside store bounds")
		}
	}()
	s := NewStore(testBounds())
	s.Insert(mgl64.Vec3{1000, 0, 0})
}
