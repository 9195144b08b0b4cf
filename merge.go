package geoindex

import (
	"fmt"
	"sort"

	"github.com/akmonengine/geoindex/predicate"
	"github.com/akmonengine/geoindex/topo"
	"github.com/akmonengine/geoindex/vertex"
	"github.com/go-gl/mathgl/mgl64"
)

// AddPolygonToMesh is the merge engine's entry point: it inserts a single
// closed, planar polygon into mesh, deduplicating vertices and ribs against
// whatever is already in the Index, then runs the incremental cascade that
// keeps the topological database consistent:
//
//  1. build the face and attach it to the rib/spatial indices;
//  2. unify_faces_ribs — fold any existing rib that is merely collinear
//     with and overlapping one of the new face's ribs into a shared
//     sub-rib, so coincident geometry from independent operands resolves
//     to the very same rib id;
//  3. fold the polygon into a pre-existing duplicate face if one exists;
//  4. otherwise, compute the common ribs the new face needs against every
//     intersecting or adjacent existing face, queuing the actual boundary
//     split rather than performing it eagerly;
//  5. drain that queue to a fixed point, splitting faces (including
//     hole-producing closed chains) in deterministic, lowest-id-first
//     order.
func (ix *Index) AddPolygonToMesh(mesh topo.MeshID, points []mgl64.Vec3) (topo.FaceID, topo.PolygonID, error) {
	points = dedupConsecutive(points)
	if len(points) < 3 {
		return 0, 0, fmt.Errorf("%w: fewer than 3 distinct vertices", ErrDegeneratePolygon)
	}

	plane, ok := fitPlane(points)
	if !ok {
		return 0, 0, fmt.Errorf("%w: collinear points", ErrDegeneratePolygon)
	}

	vids := make([]vertex.ID, len(points))
	for i, p := range points {
		vids[i] = ix.verts.Insert(p)
	}

	segs := make([]topo.Seg, len(vids))
	for i := range vids {
		a, b := vids[i], vids[(i+1)%len(vids)]
		if ix.verts.Get(a).Sub(ix.verts.Get(b)).Len() < ix.cfg.minRibLength {
			return 0, 0, fmt.Errorf("%w: edge shorter than configured minimum", ErrDegenerateRib)
		}
		rib, _ := ix.ribs.Insert(a, b)
		segs[i] = segFor(ix.ribs, rib, a)
	}

	face := topo.NewFace(plane, segs, ix.boundsOf(vids))
	faceID := ix.faces.Insert(face)
	for _, s := range segs {
		ix.ribs.AttachFace(s.Rib, faceID)
	}
	ix.faceTree.Insert(faceID, face.AABB)

	ix.unifyFacesRibs(faceID)

	survivor := ix.detectDuplicateFace(faceID)
	polyID := ix.polys.Insert(mesh, vids)
	if sf := ix.faces.Get(survivor); sf != nil {
		sf.Polygons[polyID] = true
	}
	if survivor != faceID {
		return survivor, polyID, nil
	}

	ix.createCommonRibsForIntersectingFaces(faceID)
	ix.createCommonRibsForAdjacentFaces(faceID)
	ix.drainPendingSplits()

	return faceID, polyID, nil
}

func dedupConsecutive(points []mgl64.Vec3) []mgl64.Vec3 {
	out := points[:0:0]
	for i, p := range points {
		if i == 0 || !predicate.PointsEqual(p, points[i-1]) {
			out = append(out, p)
		}
	}
	if len(out) > 1 && predicate.PointsEqual(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

func fitPlane(points []mgl64.Vec3) (predicate.Plane, bool) {
	for i := 1; i+1 < len(points); i++ {
		if plane, ok := predicate.NewPlaneFromPoints(points[0], points[i], points[i+1]); ok {
			return plane, true
		}
	}
	return predicate.Plane{}, false
}

func (ix *Index) boundsOf(vids []vertex.ID) vertex.AABB {
	min := ix.verts.Get(vids[0])
	max := min
	for _, id := range vids[1:] {
		p := ix.verts.Get(id)
		for i := 0; i < 3; i++ {
			if p[i] < min[i] {
				min[i] = p[i]
			}
			if p[i] > max[i] {
				max[i] = p[i]
			}
		}
	}
	return vertex.AABB{Min: min, Max: max}
}

// detectDuplicateFace looks for a pre-existing face describing the same
// boundary loop as faceID (same winding, or opposite winding — the two
// input polygons "cancel out" in a symmetric-difference sense). When one
// is found, faceID is removed and the id that survives the fold is
// returned; otherwise faceID itself is returned. Matching is purely
// geometric: the same face may already carry polygons from any number of
// other meshes, since mesh membership lives on the polygon, not the face.
func (ix *Index) detectDuplicateFace(faceID topo.FaceID) topo.FaceID {
	face := ix.faces.Get(faceID)
	if face == nil {
		return faceID
	}
	for _, other := range ix.faceTree.QueryOverlapping(face.AABB) {
		if other == faceID {
			continue
		}
		of := ix.faces.Get(other)
		if of == nil {
			continue
		}
		if topo.IsSameFace(face, of) || topo.IsOppositeFace(face, of, ix.ribs) {
			ix.removeFaceInternal(faceID)
			return other
		}
	}
	return faceID
}

// createCommonRibsForIntersectingFaces finds existing faces whose plane
// genuinely crosses faceID's plane (not parallel) and whose AABBs overlap,
// computes the real chord where the two planes and both face boundaries
// agree (intersectionSegment), inserts that chord's endpoints onto both
// boundaries, and queues the resulting rib as a pending cut on each face —
// the actual splitting is deferred to drainPendingSplits, where chords
// against one face that join into one chain are applied in a single split
// and disjoint chains are applied one per split (§4.5 step 7).
func (ix *Index) createCommonRibsForIntersectingFaces(faceID topo.FaceID) {
	face := ix.faces.Get(faceID)
	if face == nil {
		return
	}
	for _, other := range ix.faceTree.QueryOverlapping(face.AABB) {
		if other == faceID {
			continue
		}
		of := ix.faces.Get(other)
		if of == nil || face.Plane.IsParallel(of.Plane) {
			continue
		}
		a, b, ok := ix.intersectionSegment(face, of)
		if !ok {
			continue
		}
		ix.queueChordSplit(faceID, a, b)
		ix.queueChordSplit(other, a, b)
	}
}

// queueChordSplit ensures chord endpoints a, b exist as vertices on
// faceID's own boundary, then queues the rib between them as a pending cut
// rather than splitting the face immediately.
func (ix *Index) queueChordSplit(faceID topo.FaceID, a, b mgl64.Vec3) {
	va, ok := ix.insertPointOnBoundary(faceID, a)
	if !ok {
		return
	}
	vb, ok := ix.insertPointOnBoundary(faceID, b)
	if !ok || va == vb {
		return
	}
	rib, _ := ix.ribs.Insert(va, vb)
	ix.queuePendingRib(faceID, rib)
}

// intersectionSegment computes the real chord where two non-parallel face
// planes meet: each face's own boundary is walked edge by edge for sign
// changes against the other face's plane (the genuine per-edge
// plane-intersection hit points, not an AABB diagonal), giving a parameter
// interval along the planes' shared line for each face; the chord returned
// is the overlap of the two intervals, i.e. the portion of the shared line
// that both faces actually cover.
func (ix *Index) intersectionSegment(a, b *topo.Face) (mgl64.Vec3, mgl64.Vec3, bool) {
	dir := a.Plane.Normal.Cross(b.Plane.Normal)
	if dir.Len() < predicate.EPS {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	dir = dir.Normalize()

	n1, n2 := a.Plane.Normal, b.Plane.Normal
	d1, d2 := a.Plane.D, b.Plane.D
	det := n1.Dot(n1)*n2.Dot(n2) - n1.Dot(n2)*n1.Dot(n2)
	if absF(det) < predicate.EPS {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	c1 := (d1*n2.Dot(n2) - d2*n1.Dot(n2)) / det
	c2 := (d2*n1.Dot(n1) - d1*n1.Dot(n2)) / det
	origin := n1.Mul(c1).Add(n2.Mul(c2))

	lo1, hi1, ok1 := ix.boundaryPlaneInterval(a, origin, dir, b.Plane)
	if !ok1 {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	lo2, hi2, ok2 := ix.boundaryPlaneInterval(b, origin, dir, a.Plane)
	if !ok2 {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}

	lo := max3(lo1, lo2)
	hi := min3(hi1, hi2)
	if hi-lo < predicate.EPS {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	return origin.Add(dir.Mul(lo)), origin.Add(dir.Mul(hi)), true
}

// boundaryPlaneInterval walks face's boundary edges looking for sign
// changes of signed distance to other, the real per-edge crossing test:
// each crossing projects onto the (origin, dir) line as a parameter, and
// the interval returned spans every crossing found. A face with fewer than
// two crossings doesn't actually meet other's plane within its own
// boundary.
func (ix *Index) boundaryPlaneInterval(face *topo.Face, origin, dir mgl64.Vec3, other predicate.Plane) (lo, hi float64, ok bool) {
	var ts []float64
	for _, s := range face.Segments {
		rib := ix.ribs.Get(s.Rib)
		from, to := s.Endpoints(rib)
		p0, p1 := ix.verts.Get(from), ix.verts.Get(to)
		d0 := other.SignedDistance(p0)
		d1 := other.SignedDistance(p1)
		if d0 == 0 {
			ts = append(ts, p0.Sub(origin).Dot(dir))
			continue
		}
		if (d0 > 0) == (d1 > 0) {
			continue
		}
		t := d0 / (d0 - d1)
		hit := p0.Add(p1.Sub(p0).Mul(t))
		ts = append(ts, hit.Sub(origin).Dot(dir))
	}
	if len(ts) < 2 {
		return 0, 0, false
	}
	sort.Float64s(ts)
	return ts[0], ts[len(ts)-1], true
}

// createCommonRibsForAdjacentFaces finds coplanar, overlapping existing
// faces and checks whether either boundary has a rib the other lacks that
// genuinely cuts into the other's interior — the real edge-against-face
// test (both endpoints strictly inside, via predicate.PointInPolygon), not
// an AABB-diagonal approximation. Any such rib is queued as a pending cut
// on the face whose interior it crosses.
func (ix *Index) createCommonRibsForAdjacentFaces(faceID topo.FaceID) {
	face := ix.faces.Get(faceID)
	if face == nil {
		return
	}
	for _, other := range ix.faceTree.QueryOverlapping(face.AABB) {
		if other == faceID {
			continue
		}
		of := ix.faces.Get(other)
		if of == nil || !face.Plane.IsCoplanar(of.Plane) {
			continue
		}

		toolRibs := ribSet(face.Ribs())
		srcRibs := ribSet(of.Ribs())

		for _, r := range ribDifference(srcRibs, toolRibs) {
			if ix.ribCutsFaceInterior(r, faceID) {
				ix.queuePendingRib(faceID, r)
			}
		}
		for _, r := range ribDifference(toolRibs, srcRibs) {
			if ix.ribCutsFaceInterior(r, other) {
				ix.queuePendingRib(other, r)
			}
		}
	}
}

// ribCutsFaceInterior reports whether rib is not already part of faceID's
// own boundary but both its endpoints fall strictly inside it.
func (ix *Index) ribCutsFaceInterior(rib topo.RibID, faceID topo.FaceID) bool {
	face := ix.faces.Get(faceID)
	if face == nil || face.HasRib(rib) {
		return false
	}
	r := ix.ribs.Get(rib)
	a, b := ix.verts.Get(r.A), ix.verts.Get(r.B)
	boundary := ix.faceBoundaryPoints(faceID)
	return predicate.PointInPolygon(face.Plane, boundary, a) && predicate.PointInPolygon(face.Plane, boundary, b)
}

func (ix *Index) faceBoundaryPoints(faceID topo.FaceID) []mgl64.Vec3 {
	face := ix.faces.Get(faceID)
	out := make([]mgl64.Vec3, 0, len(face.Segments))
	for _, s := range face.Segments {
		rib := ix.ribs.Get(s.Rib)
		from, _ := s.Endpoints(rib)
		out = append(out, ix.verts.Get(from))
	}
	return out
}

func ribSet(ribs []topo.RibID) map[topo.RibID]bool {
	out := make(map[topo.RibID]bool, len(ribs))
	for _, r := range ribs {
		out[r] = true
	}
	return out
}

func ribDifference(a, b map[topo.RibID]bool) []topo.RibID {
	var out []topo.RibID
	for r := range a {
		if !b[r] {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func max3(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func min3(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func minVec(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{min3(a.X(), b.X()), min3(a.Y(), b.Y()), min3(a.Z(), b.Z())}
}

func maxVec(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{max3(a.X(), b.X()), max3(a.Y(), b.Y()), max3(a.Z(), b.Z())}
}

// removeFaceInternal detaches a face from every rib and the spatial index
// without touching face_splits history, the shared tail of RemoveFace and
// detectDuplicateFace's fold path.
func (ix *Index) removeFaceInternal(id topo.FaceID) {
	f := ix.faces.Get(id)
	if f == nil {
		return
	}
	for _, s := range f.Segments {
		ix.ribs.DetachFace(s.Rib, id)
	}
	ix.faceTree.Remove(id)
	ix.faces.Remove(id)
}
