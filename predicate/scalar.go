// Package predicate implements the rounded-decimal scalar substrate and the
// geometric predicates (plane, line, point, face) that the merge engine and
// classifier build on. Point equality, plane distances and normal dot
// products are compared after rounding to one of a small set of fixed
// precisions, so that coincident geometry produced by independent CSG
// operands compares equal. The ray-crossing and angle tests
// (CountRayCrossings, IsVecDirBetweenTwoOtherDirs, PolarAngle) compare raw
// float64 values against EPS instead.
package predicate

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/shopspring/decimal"
)

// Rounding precisions used throughout the kernel. Names and values follow
// the reference decimal scalar this package was ported from: stability
// rounding collapses floating noise from repeated vector ops before any
// equality test, normal-dot rounding is coarse enough that two faces whose
// normals differ only in the last few bits of a dot product are still
// judged parallel, and display rounding is cosmetic only (no code in this
// module reads it; Scad rounds to the Index's configured points precision,
// whose default is the same 9 places).
const (
	StabilityRounding int32 = 14
	NormalDotRounding int32 = 4
	DisplayRounding   int32 = 9
)

// EPS is the default tolerance used where a caller needs a raw float
// comparison rather than a rounded-decimal one (e.g. degenerate-length and
// ray-crossing checks).
const EPS = 1e-8

// Scalar is a fixed-precision decimal value. It exists so that repeated
// arithmetic across many polygon insertions does not accumulate the kind of
// binary-floating-point drift that would otherwise make coincident
// geometry compare unequal.
type Scalar struct {
	d decimal.Decimal
}

// NewScalar builds a Scalar from a float64, rounding immediately to
// StabilityRounding digits so that values entering the system are already
// stable.
func NewScalar(v float64) Scalar {
	return Scalar{decimal.NewFromFloat(v)}.Round(StabilityRounding)
}

// Round returns s rounded to dp decimal places.
func (s Scalar) Round(dp int32) Scalar {
	return Scalar{s.d.Round(dp)}
}

func (s Scalar) Add(o Scalar) Scalar { return Scalar{s.d.Add(o.d)}.Round(StabilityRounding) }
func (s Scalar) Sub(o Scalar) Scalar { return Scalar{s.d.Sub(o.d)}.Round(StabilityRounding) }
func (s Scalar) Mul(o Scalar) Scalar { return Scalar{s.d.Mul(o.d)}.Round(StabilityRounding) }

// Div panics on division by zero, matching the reference scalar: a
// degenerate division here means a programmer-level invariant (a
// non-degenerate rib length, a non-zero normal) was already violated
// upstream.
func (s Scalar) Div(o Scalar) Scalar {
	if o.d.IsZero() {
		panic("predicate: division by zero scalar")
	}
	return Scalar{s.d.Div(o.d)}.Round(StabilityRounding)
}

func (s Scalar) Neg() Scalar { return Scalar{s.d.Neg()} }

func (s Scalar) Sqrt() Scalar {
	f, _ := s.d.Float64()
	if f < 0 {
		panic("predicate: sqrt of negative scalar")
	}
	return NewScalar(sqrt(f))
}

func (s Scalar) Float64() float64 {
	f, _ := s.d.Float64()
	return f
}

func (s Scalar) IsZero() bool { return s.d.IsZero() }

func (s Scalar) Cmp(o Scalar) int { return s.d.Cmp(o.d) }

func (s Scalar) Equal(o Scalar) bool {
	return s.Round(StabilityRounding).d.Equal(o.Round(StabilityRounding).d)
}

func (s Scalar) String() string { return s.d.String() }

func sqrt(f float64) float64 {
	if f == 0 {
		return 0
	}
	x := f
	for i := 0; i < 40; i++ {
		x = 0.5 * (x + f/x)
	}
	return x
}

// RoundVec3 rounds every component of v to StabilityRounding decimal places,
// the normal form vertices and ribs are stored in.
func RoundVec3(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		NewScalar(v[0]).Float64(),
		NewScalar(v[1]).Float64(),
		NewScalar(v[2]).Float64(),
	}
}

// RoundDot rounds a dot product of two (assumed unit) vectors to
// NormalDotRounding places before it is compared against +/-1 or 0; this is
// the tolerance that decides whether two faces are judged coplanar,
// parallel, or perpendicular.
func RoundDot(v float64) float64 {
	return NewScalar(v).Round(NormalDotRounding).Float64()
}
