package predicate

import "github.com/go-gl/mathgl/mgl64"

// Plane is the Hessian form of an oriented plane: all points p on the
// plane satisfy Normal.Dot(p) == D, with Normal a unit vector.
type Plane struct {
	Normal mgl64.Vec3
	D      float64
}

// NewPlaneFromPoints fits a plane through three non-collinear points, with
// the normal oriented by the right-hand rule of (b-a) x (c-a) — the same
// winding convention the teacher's EPA face builder uses for outward
// normals.
func NewPlaneFromPoints(a, b, c mgl64.Vec3) (Plane, bool) {
	n := b.Sub(a).Cross(c.Sub(a))
	length := n.Len()
	if length < EPS {
		return Plane{}, false
	}
	n = n.Mul(1 / length)
	return Plane{Normal: n, D: RoundDot(n.Dot(a))}, true
}

// SignedDistance returns the rounded signed distance from p to the plane;
// positive values lie on the normal's side.
func (p Plane) SignedDistance(v mgl64.Vec3) float64 {
	return RoundDot(p.Normal.Dot(v) - p.D)
}

// Contains reports whether v lies on the plane within NormalDotRounding
// tolerance (the rounding SignedDistance applies).
func (p Plane) Contains(v mgl64.Vec3) bool {
	return p.SignedDistance(v) == 0
}

// IsParallel reports whether two planes share (or exactly oppose) a normal,
// within NormalDotRounding tolerance.
func (p Plane) IsParallel(o Plane) bool {
	dot := RoundDot(p.Normal.Dot(o.Normal))
	return dot == 1 || dot == -1
}

// IsCoplanar reports whether two planes are parallel and pass through the
// same offset — i.e. describe the same plane, allowing opposite winding.
func (p Plane) IsCoplanar(o Plane) bool {
	if !p.IsParallel(o) {
		return false
	}
	dot := RoundDot(p.Normal.Dot(o.Normal))
	if dot == 1 {
		return RoundDot(p.D-o.D) == 0
	}
	return RoundDot(p.D+o.D) == 0
}

// Flip returns the plane with reversed orientation.
func (p Plane) Flip() Plane {
	return Plane{Normal: p.Normal.Mul(-1), D: -p.D}
}
