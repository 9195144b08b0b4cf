package geoindex

import (
	"github.com/akmonengine/geoindex/predicate"
	"github.com/akmonengine/geoindex/topo"
	"github.com/akmonengine/geoindex/vertex"
	"github.com/go-gl/mathgl/mgl64"
)

// ribUnifyTolerance bounds both the perpendicular distance a rib's
// endpoint may sit off another rib's line and the slack allowed at
// interval boundaries when deciding whether two collinear ribs already
// share an endpoint or genuinely overlap. Matches the coarse linear
// tolerance the reference kernel calls vertex_pulling elsewhere in this
// port.
const ribUnifyTolerance = 1e-4

// cos1Degree is the minimum direction dot product two ribs must clear to
// be treated as collinear.
const cos1Degree = 0.9998476951563913

// unifyFacesRibs folds any existing rib that is merely collinear with and
// overlapping one of faceID's own ribs into a literal shared sub-rib, by
// splitting each rib of the pair at whichever ends of their overlap fall
// strictly inside it. Because vertex ids are deduplicated by position, splitting
// both ribs at the same points makes their overlapping middle portion
// resolve to the same rib id automatically (topo.RibTable.Insert's
// canonicalization). Runs to a fixed point: each split can expose a new
// collinear pair, so it keeps scanning until a full pass over faceID's
// boundary makes no further change.
func (ix *Index) unifyFacesRibs(faceID topo.FaceID) {
	for {
		face := ix.faces.Get(faceID)
		if face == nil {
			return
		}
		changed := false
		for _, rib := range face.Ribs() {
			if ix.unifyRibOnce(rib) {
				changed = true
				break
			}
		}
		if !changed {
			return
		}
	}
}

// unifyRibOnce looks for one other rib, on any face whose AABB overlaps
// rib's own, that is collinear with and overlaps rib, unifies that one
// pair, and reports whether it made a change.
func (ix *Index) unifyRibOnce(rib topo.RibID) bool {
	r := ix.ribs.Get(rib)
	a, b := ix.verts.Get(r.A), ix.verts.Get(r.B)
	box := vertex.AABB{Min: minVec(a, b), Max: maxVec(a, b)}

	candidates := make(map[topo.RibID]bool)
	for _, faceID := range ix.faceTree.QueryOverlapping(box) {
		face := ix.faces.Get(faceID)
		if face == nil {
			continue
		}
		for _, other := range face.Ribs() {
			if other != rib {
				candidates[other] = true
			}
		}
	}

	for other := range candidates {
		if ix.tryUnifyPair(rib, other) {
			return true
		}
	}
	return false
}

// tryUnifyPair checks whether rib and other are collinear and genuinely
// overlapping (not merely touching at a shared endpoint, and not already
// describing the identical span), and if so splits each at the other's
// interior endpoints so their overlapping middle portion becomes one rib.
func (ix *Index) tryUnifyPair(rib, other topo.RibID) bool {
	r1 := ix.ribs.Get(rib)
	r2 := ix.ribs.Get(other)
	a0, a1 := ix.verts.Get(r1.A), ix.verts.Get(r1.B)
	b0, b1 := ix.verts.Get(r2.A), ix.verts.Get(r2.B)
	if !ribsCollinear(a0, a1, b0, b1) {
		return false
	}

	dir := a1.Sub(a0)
	length := dir.Len()
	if length < predicate.EPS {
		return false
	}
	dir = dir.Mul(1 / length)
	paramOf := func(p mgl64.Vec3) float64 { return p.Sub(a0).Dot(dir) }

	ta0, ta1 := 0.0, length
	tb0, tb1 := paramOf(b0), paramOf(b1)
	if tb0 > tb1 {
		tb0, tb1 = tb1, tb0
	}

	lo := max3(ta0, tb0)
	hi := min3(ta1, tb1)
	if hi-lo < ribUnifyTolerance {
		return false
	}
	if lo <= ta0+ribUnifyTolerance && hi >= ta1-ribUnifyTolerance &&
		lo <= tb0+ribUnifyTolerance && hi >= tb1-ribUnifyTolerance {
		return false
	}

	var ribPoints, otherPoints []mgl64.Vec3
	if lo > ta0+ribUnifyTolerance && lo < ta1-ribUnifyTolerance {
		ribPoints = append(ribPoints, a0.Add(dir.Mul(lo)))
	}
	if hi > ta0+ribUnifyTolerance && hi < ta1-ribUnifyTolerance {
		ribPoints = append(ribPoints, a0.Add(dir.Mul(hi)))
	}
	if lo > tb0+ribUnifyTolerance && lo < tb1-ribUnifyTolerance {
		otherPoints = append(otherPoints, a0.Add(dir.Mul(lo)))
	}
	if hi > tb0+ribUnifyTolerance && hi < tb1-ribUnifyTolerance {
		otherPoints = append(otherPoints, a0.Add(dir.Mul(hi)))
	}

	changed := false
	if len(ribPoints) > 0 && ix.splitRibAtPoints(rib, ribPoints) {
		changed = true
	}
	if len(otherPoints) > 0 && ix.splitRibAtPoints(other, otherPoints) {
		changed = true
	}
	return changed
}

// ribsCollinear reports whether the lines through (a0,a1) and (b0,b1) run
// parallel (within cos1Degree) and pass within ribUnifyTolerance of one
// another.
func ribsCollinear(a0, a1, b0, b1 mgl64.Vec3) bool {
	da := a1.Sub(a0)
	db := b1.Sub(b0)
	lenA, lenB := da.Len(), db.Len()
	if lenA < predicate.EPS || lenB < predicate.EPS {
		return false
	}
	da = da.Mul(1 / lenA)
	db = db.Mul(1 / lenB)
	dot := da.Dot(db)
	if dot < 0 {
		db = db.Mul(-1)
		dot = -dot
	}
	if dot < cos1Degree {
		return false
	}
	off := b0.Sub(a0)
	perp := off.Sub(da.Mul(off.Dot(da)))
	return perp.Len() < ribUnifyTolerance
}
