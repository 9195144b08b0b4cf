package predicate

import "github.com/go-gl/mathgl/mgl64"

// PointsEqual reports whether every component of a-b rounds to zero at
// NormalDotRounding places (via RoundDot), the equality test every vertex
// lookup in the octree ultimately reduces to.
func PointsEqual(a, b mgl64.Vec3) bool {
	d := a.Sub(b)
	return RoundDot(d.X()) == 0 && RoundDot(d.Y()) == 0 && RoundDot(d.Z()) == 0
}

// SegmentsShareEndpoint reports whether two segments, given as ordered
// point pairs, share a rounded endpoint in either orientation.
func SegmentsShareEndpoint(a0, a1, b0, b1 mgl64.Vec3) bool {
	return PointsEqual(a0, b0) || PointsEqual(a0, b1) || PointsEqual(a1, b0) || PointsEqual(a1, b1)
}

// IsVecDirBetweenTwoOtherDirs is the dihedral wedge test shared by bridge
// search and classification: given a plane normal and two reference
// directions (main, limit) lying in that plane, it reports whether test
// falls within the wedge swept counter-clockwise from main to limit around
// normal.
//
// All three directions are expected to already lie in the plane described
// by normal; they are not re-projected.
func IsVecDirBetweenTwoOtherDirs(normal, main, limit, test mgl64.Vec3) bool {
	testAngle := signedAngle(normal, main, test)
	limitAngle := signedAngle(normal, main, limit)
	return testAngle >= -EPS && testAngle <= limitAngle+EPS
}

// signedAngle returns the angle swept counter-clockwise (around normal)
// from `from` to `to`, in [0, 2*pi).
func signedAngle(normal, from, to mgl64.Vec3) float64 {
	from = from.Normalize()
	to = to.Normalize()
	cos := clamp(from.Dot(to), -1, 1)
	angle := acos(cos)
	if normal.Dot(from.Cross(to)) < 0 {
		angle = 2*pi - angle
	}
	return angle
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

const pi = 3.14159265358979323846

// acos is implemented locally rather than via math.Acos, in plain float64
// arithmetic with no decimal rounding; it is accurate to well within StabilityRounding tolerance for
// the [-1, 1] domain callers restrict it to.
func acos(x float64) float64 {
	if x >= 1 {
		return 0
	}
	if x <= -1 {
		return pi
	}
	// Newton's method on cos(y) - x = 0, seeded from a cheap polynomial
	// approximation; six iterations are run.
	y := pi/2 - x - x*x*x/6
	for i := 0; i < 6; i++ {
		y -= (cos(y) - x) / -sin(y)
	}
	return y
}

func sin(x float64) float64 {
	// Taylor series around the nearest multiple of 2*pi: the argument is
	// first reduced into [-pi, pi] (cos passes values in [pi/2, 3*pi/2]).
	x = reduceAngle(x)
	x2 := x * x
	term := x
	sum := x
	for n := 1; n <= 8; n++ {
		term *= -x2 / float64((2*n)*(2*n+1))
		sum += term
	}
	return sum
}

func cos(x float64) float64 {
	return sin(x + pi/2)
}

func reduceAngle(x float64) float64 {
	for x > pi {
		x -= 2 * pi
	}
	for x < -pi {
		x += 2 * pi
	}
	return x
}

// TriangleArea2 returns twice the signed area of triangle (a, b, c) as
// measured in the plane with the given normal — the building block for the
// shoelace-sum area computations used when comparing winding of a face
// boundary against a candidate hole chain.
func TriangleArea2(normal, a, b, c mgl64.Vec3) float64 {
	cross := b.Sub(a).Cross(c.Sub(a))
	return RoundDot(cross.Dot(normal))
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// PlaneBasis returns an orthonormal (u, v) pair spanning the plane whose
// normal is given, an arbitrary but deterministic choice of in-plane axes
// used to project boundary points into 2D for ray-crossing and
// point-in-polygon tests.
func PlaneBasis(normal mgl64.Vec3) (u, v mgl64.Vec3) {
	n := normal.Normalize()
	ref := mgl64.Vec3{1, 0, 0}
	if abs(n.Dot(ref)) > 0.9 {
		ref = mgl64.Vec3{0, 1, 0}
	}
	u = ref.Sub(n.Mul(n.Dot(ref))).Normalize()
	v = n.Cross(u)
	return u, v
}

func project2D(p, origin, u, v mgl64.Vec3) (float64, float64) {
	d := p.Sub(origin)
	return d.Dot(u), d.Dot(v)
}

// CountRayCrossings counts how many edges of boundary (a closed polygon
// loop, in plane order) the ray from origin in direction dir crosses, after
// projecting everything into plane's own 2D basis. Edges incident to
// excludeA or excludeB (if non-nil) are skipped, so a ray cast from a point
// that itself lies on the boundary doesn't spuriously count its own
// incident edges. The odd/even parity of the result is the standard
// point-in-polygon test; it is also how InwardDirectionAtRib decides which
// of the two directions perpendicular to a boundary rib points into the
// face's interior.
func CountRayCrossings(plane Plane, boundary []mgl64.Vec3, origin, dir mgl64.Vec3, excludeA, excludeB *mgl64.Vec3) int {
	u, v := PlaneBasis(plane.Normal)
	dx, dy := dir.Dot(u), dir.Dot(v)

	n := len(boundary)
	count := 0
	for i := 0; i < n; i++ {
		p0 := boundary[i]
		p1 := boundary[(i+1)%n]
		if excludeA != nil && (PointsEqual(p0, *excludeA) || PointsEqual(p1, *excludeA)) {
			continue
		}
		if excludeB != nil && (PointsEqual(p0, *excludeB) || PointsEqual(p1, *excludeB)) {
			continue
		}
		x0, y0 := project2D(p0, origin, u, v)
		x1, y1 := project2D(p1, origin, u, v)
		if rayCrossesEdge(dx, dy, x0, y0, x1, y1) {
			count++
		}
	}
	return count
}

// rayCrossesEdge reports whether the ray from the 2D origin in direction
// (dx, dy) crosses the segment (x0,y0)-(x1,y1), strictly past the origin
// and within the segment's span (half-open, so a ray passing exactly
// through a shared vertex counts that vertex's two incident edges once,
// not twice).
func rayCrossesEdge(dx, dy, x0, y0, x1, y1 float64) bool {
	ex, ey := x1-x0, y1-y0
	det := ex*dy - ey*dx
	if abs(det) < EPS {
		return false
	}
	t := (ex*y0 - ey*x0) / det
	s := (dx*y0 - dy*x0) / det
	return t > EPS && s >= -EPS && s < 1-EPS
}

// PointInPolygon reports whether point lies inside the closed boundary
// loop, which must lie on plane, using a parity ray-cast along one of the
// plane's own in-plane axes.
func PointInPolygon(plane Plane, boundary []mgl64.Vec3, point mgl64.Vec3) bool {
	u, _ := PlaneBasis(plane.Normal)
	crossings := CountRayCrossings(plane, boundary, point, u, nil, nil)
	return crossings%2 == 1
}

// InwardDirectionAtRib returns the direction, perpendicular to the rib
// (a, b) and lying in plane, that points into boundary's interior. a and b
// must themselves be adjacent vertices of boundary (i.e. (a,b) is one of
// its edges); the edges incident to them are excluded from the parity
// count so the ray, cast from exactly on the boundary, isn't confused by
// its own edge.
func InwardDirectionAtRib(plane Plane, boundary []mgl64.Vec3, a, b mgl64.Vec3) mgl64.Vec3 {
	ribDir := b.Sub(a).Normalize()
	candidate := ribDir.Cross(plane.Normal).Normalize()
	mid := a.Add(b).Mul(0.5)
	crossings := CountRayCrossings(plane, boundary, mid, candidate, &a, &b)
	if crossings%2 == 1 {
		return candidate
	}
	return candidate.Mul(-1)
}

// PolarAngle returns the angle, in [0, 2*pi), that the projection of v onto
// the 2D basis (axisX, axisY) makes around the origin. axisX and axisY need
// not be the true in-plane basis of any one face's plane — only mutually
// perpendicular and each perpendicular to the rib v itself was measured
// relative to — which lets it order directions drawn from faces on
// different (non-coplanar) planes meeting at a common rib, the dihedral
// comparison §4.9's classifier is built from.
func PolarAngle(axisX, axisY, v mgl64.Vec3) float64 {
	return atan2(axisY.Dot(v), axisX.Dot(v))
}

// atan2 is implemented locally, like acos, in plain float64 arithmetic
// rather than via math.Atan2.
func atan2(y, x float64) float64 {
	r := sqrt(x*x + y*y)
	if r < EPS {
		return 0
	}
	angle := acos(clamp(x/r, -1, 1))
	if y < 0 {
		angle = 2*pi - angle
	}
	return angle
}
