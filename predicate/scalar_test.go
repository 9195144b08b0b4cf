package predicate

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestScalarRoundingStability(t *testing.T) {
	a := NewScalar(0.1 + 0.2)
	b := NewScalar(0.3)
	if !a.Equal(b) {
		t.Fatalf("expected rounded scalars to compare equal, got %s vs %s", a, b)
	}
}

func TestScalarDivByZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic dividing by zero scalar")
		}
	}()
	NewScalar(1).Div(NewScalar(0))
}

func TestScalarSqrt(t *testing.T) {
	got := NewScalar(4).Sqrt().Float64()
	if got < 1.999 || got > 2.001 {
		t.Fatalf("sqrt(4) = %v, want ~2", got)
	}
}

func TestPointsEqualWithinTolerance(t *testing.T) {
	a := mgl64.Vec3{1, 2, 3}
	b := mgl64.Vec3{1.0000000000001, 2, 3}
	if !PointsEqual(a, b) {
		t.Fatal("expected near-identical points to compare equal")
	}
	c := mgl64.Vec3{1.1, 2, 3}
	if PointsEqual(a, c) {
		t.Fatal("expected clearly distinct points to compare unequal")
	}
}
