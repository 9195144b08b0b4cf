package geoindex

import (
	"sort"

	"github.com/akmonengine/geoindex/predicate"
	"github.com/akmonengine/geoindex/topo"
	"github.com/akmonengine/geoindex/vertex"
	"github.com/go-gl/mathgl/mgl64"
)

// bridgePoint names one end of a bridge rib connecting a hole chain to the
// outer boundary it sits inside: chainVertex is the chain's own vertex,
// faceVertex is the outer boundary vertex it bridges to.
type bridgePoint struct {
	chainVertex vertex.ID
	faceVertex  vertex.ID
}

// splitFaceByClosedChain splits faceID by a closed chain lying entirely in
// its interior — a hole, most commonly produced when another polygon's
// boundary is coplanar with and fully contained by faceID. It produces
// exactly three children: two that each combine one arc of the hole with
// one arc of the outer boundary via a pair of bridge ribs (the material
// between the hole and the outside), and a third that is the hole's own
// boundary reversed (the material the hole describes, standing on its own
// so it can later fold against whatever face actually carved the hole).
// Ported from the reference split_face_by_closed_chain.
func (ix *Index) splitFaceByClosedChain(faceID topo.FaceID, chainSegs []topo.Seg) []topo.FaceID {
	face := ix.faces.Get(faceID)
	if face == nil || len(chainSegs) < 3 {
		return nil
	}

	chainVerts := segLoopVertices(ix.ribs, chainSegs)
	if sameWinding(ix, face, chainVerts) {
		chainSegs = reverseSegLoop(chainSegs)
		chainVerts = segLoopVertices(ix.ribs, chainSegs)
	}

	first, ok := ix.findFirstBridge(faceID, chainSegs)
	if !ok {
		return nil
	}
	opposite, ok := ix.findOpposingBridge(faceID, chainSegs, first)
	if !ok {
		return nil
	}

	chainFront, chainBack, ok := splitSegLoopAt(chainSegs, chainVerts, first.chainVertex, opposite.chainVertex)
	if !ok {
		return nil
	}
	faceVerts := segLoopVertices(ix.ribs, face.Segments)
	polyFront, polyBack, ok := splitSegLoopAt(face.Segments, faceVerts, opposite.faceVertex, first.faceVertex)
	if !ok {
		return nil
	}

	ribFirst, _ := ix.ribs.Insert(first.chainVertex, first.faceVertex)
	ribOpposite, _ := ix.ribs.Insert(opposite.chainVertex, opposite.faceVertex)

	segFirst := segFor(ix.ribs, ribFirst, first.chainVertex)
	segFirstRev := segFor(ix.ribs, ribFirst, first.faceVertex)
	segOpposite := segFor(ix.ribs, ribOpposite, opposite.chainVertex)
	segOppositeRev := segFor(ix.ribs, ribOpposite, opposite.faceVertex)

	one := concatSegs(chainFront, []topo.Seg{segOpposite}, polyFront, []topo.Seg{segFirstRev})
	two := concatSegs(chainBack, []topo.Seg{segFirst}, polyBack, []topo.Seg{segOppositeRev})
	three := reverseSegLoop(concatSegs(chainFront, chainBack))

	plane := face.Plane
	faceOne := topo.NewFace(plane, one, ix.aabbOfSegs(one))
	faceTwo := topo.NewFace(plane, two, ix.aabbOfSegs(two))
	faceThree := topo.NewFace(plane, three, ix.aabbOfSegs(three))

	idOne := ix.faces.Insert(faceOne)
	idTwo := ix.faces.Insert(faceTwo)
	idThree := ix.faces.Insert(faceThree)
	for id, f := range map[topo.FaceID]*topo.Face{idOne: faceOne, idTwo: faceTwo, idThree: faceThree} {
		for _, s := range f.Segments {
			ix.ribs.AttachFace(s.Rib, id)
		}
		ix.faceTree.Insert(id, f.AABB)
	}

	for p := range face.Polygons {
		faceOne.Polygons[p] = true
		faceTwo.Polygons[p] = true
		faceThree.Polygons[p] = true
	}

	children := []topo.FaceID{idOne, idTwo, idThree}
	ix.faces.RecordSplit(faceID, children)
	ix.removeFaceInternal(faceID)

	for _, c := range children {
		ix.unifyFacesRibs(c)
		ix.createCommonRibsForIntersectingFaces(c)
		ix.createCommonRibsForAdjacentFaces(c)
	}
	return children
}

// sameWinding reports whether a hole chain winds the same way as face's
// own boundary — the configuration that must be flipped before bridging,
// since a hole has to run opposite the outer loop it sits inside.
func sameWinding(ix *Index, face *topo.Face, chainVerts []vertex.ID) bool {
	facePts := pointsOf(ix, segLoopVertices(ix.ribs, face.Segments))
	chainPts := pointsOf(ix, chainVerts)
	return (loopAreaSign(face.Plane.Normal, facePts) > 0) == (loopAreaSign(face.Plane.Normal, chainPts) > 0)
}

func pointsOf(ix *Index, ids []vertex.ID) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(ids))
	for i, id := range ids {
		out[i] = ix.verts.Get(id)
	}
	return out
}

func loopAreaSign(normal mgl64.Vec3, pts []mgl64.Vec3) float64 {
	if len(pts) < 3 {
		return 0
	}
	sum := 0.0
	for i := 1; i+1 < len(pts); i++ {
		sum += predicate.TriangleArea2(normal, pts[0], pts[i], pts[i+1])
	}
	return sum
}

// findFirstBridge ports find_first_bridge_point: for each chain vertex in
// turn (as the bridge's chain-side endpoint), every face boundary vertex is
// tried as the far end, keeping only candidates that both fall within the
// wedge swept by the chain's own two edges at that vertex and form a
// genuine bridge — a segment crossing neither the chain nor the face
// boundary. The first chain vertex with any valid candidate wins, picking
// among its candidates the one most aligned with the outward direction
// from the chain's own centroid.
func (ix *Index) findFirstBridge(faceID topo.FaceID, chainSegs []topo.Seg) (bridgePoint, bool) {
	face := ix.faces.Get(faceID)
	chainVerts := segLoopVertices(ix.ribs, chainSegs)
	faceVerts := segLoopVertices(ix.ribs, face.Segments)
	center := centroidOf(ix, chainVerts)
	allSegs := concatSegs(chainSegs, face.Segments)
	n := len(chainVerts)

	for i := 0; i < n; i++ {
		bp, ok := ix.bestBridgeFrom(face, chainVerts, faceVerts, i, center, allSegs)
		if ok {
			return bp, true
		}
	}
	return bridgePoint{}, false
}

// findOpposingBridge ports find_opposing_bridge_point: the same search as
// findFirstBridge, but chain vertices are tried in order of how closely
// their own outward direction opposes first's (least aligned first),
// excluding first's own chain vertex, so the two bridges land on roughly
// opposite sides of the chain.
func (ix *Index) findOpposingBridge(faceID topo.FaceID, chainSegs []topo.Seg, first bridgePoint) (bridgePoint, bool) {
	face := ix.faces.Get(faceID)
	chainVerts := segLoopVertices(ix.ribs, chainSegs)
	faceVerts := segLoopVertices(ix.ribs, face.Segments)
	center := centroidOf(ix, chainVerts)
	allSegs := concatSegs(chainSegs, face.Segments)
	n := len(chainVerts)

	firstDir := ix.verts.Get(first.chainVertex).Sub(center).Normalize()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(x, y int) bool {
		dx := ix.verts.Get(chainVerts[order[x]]).Sub(center).Normalize().Dot(firstDir)
		dy := ix.verts.Get(chainVerts[order[y]]).Sub(center).Normalize().Dot(firstDir)
		return dx < dy
	})

	for _, i := range order {
		if chainVerts[i] == first.chainVertex {
			continue
		}
		bp, ok := ix.bestBridgeFrom(face, chainVerts, faceVerts, i, center, allSegs)
		if ok {
			return bp, true
		}
	}
	return bridgePoint{}, false
}

// bestBridgeFrom finds the best face-boundary bridge target from chain
// vertex index i, or ok=false if none of the face's vertices qualify.
func (ix *Index) bestBridgeFrom(face *topo.Face, chainVerts, faceVerts []vertex.ID, i int, center mgl64.Vec3, allSegs []topo.Seg) (bridgePoint, bool) {
	n := len(chainVerts)
	origin := ix.verts.Get(chainVerts[i])
	mainDir := ix.verts.Get(chainVerts[(i+1)%n]).Sub(origin).Normalize()
	limitDir := ix.verts.Get(chainVerts[(i+n-1)%n]).Sub(origin).Normalize()
	outward := origin.Sub(center).Normalize()

	var bestP vertex.ID
	bestScore := -1.0
	found := false
	for _, p := range faceVerts {
		test := ix.verts.Get(p)
		testVec := test.Sub(origin)
		testLen := testVec.Len()
		if testLen < predicate.EPS {
			continue
		}
		if !predicate.IsVecDirBetweenTwoOtherDirs(face.Plane.Normal, mainDir, limitDir, testVec) {
			continue
		}
		if !ix.isBridge(allSegs, chainVerts[i], p, face.Plane.Normal) {
			continue
		}
		score := testVec.Mul(1 / testLen).Dot(outward)
		if !found || score > bestScore {
			bestScore = score
			bestP = p
			found = true
		}
	}
	if !found {
		return bridgePoint{}, false
	}
	return bridgePoint{chainVertex: chainVerts[i], faceVertex: bestP}, true
}

func centroidOf(ix *Index, ids []vertex.ID) mgl64.Vec3 {
	var sum mgl64.Vec3
	for _, id := range ids {
		sum = sum.Add(ix.verts.Get(id))
	}
	return sum.Mul(1 / float64(len(ids)))
}

// isBridge ports is_bridge: the prospective bridge segment (from, to) must
// not properly cross any other segment in segs, excluding those already
// incident to from or to (which necessarily only touch it at a shared
// endpoint).
func (ix *Index) isBridge(segs []topo.Seg, from, to vertex.ID, planeNormal mgl64.Vec3) bool {
	p0, p1 := ix.verts.Get(from), ix.verts.Get(to)
	for _, s := range segs {
		r := ix.ribs.Get(s.Rib)
		a, b := s.Endpoints(r)
		if a == from || b == from || a == to || b == to {
			continue
		}
		q0, q1 := ix.verts.Get(a), ix.verts.Get(b)
		if segmentsProperlyCross(p0, p1, q0, q1, planeNormal) {
			return false
		}
	}
	return true
}

// segmentsProperlyCross tests two coplanar segments (sharing planeNormal)
// for a strict interior crossing, via the standard orientation-sign test
// after projecting into the plane's own 2D basis.
func segmentsProperlyCross(p0, p1, q0, q1, planeNormal mgl64.Vec3) bool {
	u, v := predicate.PlaneBasis(planeNormal)
	px0, py0 := p0.Dot(u), p0.Dot(v)
	px1, py1 := p1.Dot(u), p1.Dot(v)
	qx0, qy0 := q0.Dot(u), q0.Dot(v)
	qx1, qy1 := q1.Dot(u), q1.Dot(v)

	d1 := cross2(qx1-qx0, qy1-qy0, px0-qx0, py0-qy0)
	d2 := cross2(qx1-qx0, qy1-qy0, px1-qx0, py1-qy0)
	d3 := cross2(px1-px0, py1-py0, qx0-px0, qy0-py0)
	d4 := cross2(px1-px0, py1-py0, qx1-px0, qy1-py0)

	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func cross2(ax, ay, bx, by float64) float64 {
	return ax*by - ay*bx
}
