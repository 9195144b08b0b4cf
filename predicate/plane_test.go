package predicate

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewPlaneFromPoints(t *testing.T) {
	plane, ok := NewPlaneFromPoints(
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{1, 0, 0},
		mgl64.Vec3{0, 1, 0},
	)
	if !ok {
		t.Fatal("expected a valid plane")
	}
	if !plane.Contains(mgl64.Vec3{5, 5, 0}) {
		t.Fatal("expected coplanar point to be contained")
	}
	if plane.Contains(mgl64.Vec3{0, 0, 1}) {
		t.Fatal("expected off-plane point to not be contained")
	}
}

func TestNewPlaneFromCollinearPoints(t *testing.T) {
	_, ok := NewPlaneFromPoints(
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{1, 0, 0},
		mgl64.Vec3{2, 0, 0},
	)
	if ok {
		t.Fatal("expected collinear points to fail to fit a plane")
	}
}

func TestPlaneCoplanarAndFlip(t *testing.T) {
	a, _ := NewPlaneFromPoints(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0})
	b, _ := NewPlaneFromPoints(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 0})
	if !a.IsCoplanar(b.Flip()) {
		t.Fatal("expected flipped reversed-winding plane to be coplanar with original")
	}
}
