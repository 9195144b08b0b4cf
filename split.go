package geoindex

import (
	"sort"

	"github.com/akmonengine/geoindex/predicate"
	"github.com/akmonengine/geoindex/topo"
	"github.com/akmonengine/geoindex/vertex"
	"github.com/go-gl/mathgl/mgl64"
)

// segFor builds the Seg that traverses ribID starting from vertex from,
// resolving which of the rib's two canonical endpoints from is so the
// direction comes out right regardless of how the rib was originally
// inserted.
func segFor(ribs *topo.RibTable, ribID topo.RibID, from vertex.ID) topo.Seg {
	canon := ribs.Get(ribID)
	dir := topo.Fwd
	if canon.A != from {
		dir = topo.Rev
	}
	return topo.Seg{Rib: ribID, Dir: dir}
}

// insertPointOnBoundary ensures point has a vertex id lying exactly on
// faceID's boundary loop, splitting whichever boundary edge currently
// contains it into two shorter edges if point isn't already one of its
// vertices. Returns false if point lies on neither an existing vertex nor
// edge of the face.
func (ix *Index) insertPointOnBoundary(faceID topo.FaceID, point mgl64.Vec3) (vertex.ID, bool) {
	face := ix.faces.Get(faceID)
	if face == nil {
		return 0, false
	}
	point = predicate.RoundVec3(point)

	for _, s := range face.Segments {
		rib := ix.ribs.Get(s.Rib)
		from, to := s.Endpoints(rib)
		if predicate.PointsEqual(ix.verts.Get(from), point) {
			return from, true
		}
		if predicate.PointsEqual(ix.verts.Get(to), point) {
			return to, true
		}
	}

	for i, s := range face.Segments {
		rib := ix.ribs.Get(s.Rib)
		from, to := s.Endpoints(rib)
		p0, p1 := ix.verts.Get(from), ix.verts.Get(to)
		if !isPointOnSegment(p0, p1, point) {
			continue
		}
		newV := ix.verts.Insert(point)

		ribA, _ := ix.ribs.Insert(from, newV)
		ribB, _ := ix.ribs.Insert(newV, to)
		ix.ribs.SetParent(ribA, s.Rib)
		ix.ribs.SetParent(ribB, s.Rib)

		newSegs := make([]topo.Seg, 0, len(face.Segments)+1)
		newSegs = append(newSegs, face.Segments[:i]...)
		newSegs = append(newSegs, segFor(ix.ribs, ribA, from), segFor(ix.ribs, ribB, newV))
		newSegs = append(newSegs, face.Segments[i+1:]...)

		ix.ribs.DetachFace(s.Rib, faceID)
		ix.ribs.AttachFace(ribA, faceID)
		ix.ribs.AttachFace(ribB, faceID)
		face.Segments = newSegs

		return newV, true
	}
	return 0, false
}

func isPointOnSegment(p0, p1, p mgl64.Vec3) bool {
	edge := p1.Sub(p0)
	length := edge.Len()
	if length < predicate.EPS {
		return false
	}
	t := p.Sub(p0).Dot(edge) / (length * length)
	if t <= predicate.EPS || t >= 1-predicate.EPS {
		return false
	}
	closest := p0.Add(edge.Mul(t))
	return predicate.PointsEqual(closest, p)
}

// splitRibAtPoint splits rib into two sub-ribs at point, which must lie
// strictly between its endpoints, updating every face currently attached
// to rib to reference the two new sub-ribs in its place instead. Returns
// the new vertex id and the two child rib ids — the one nearer rib's
// original A endpoint, then the one nearer B — or ok=false if point isn't
// strictly interior to rib.
func (ix *Index) splitRibAtPoint(rib topo.RibID, point mgl64.Vec3) (newV vertex.ID, towardA, towardB topo.RibID, ok bool) {
	r := ix.ribs.Get(rib)
	p0, p1 := ix.verts.Get(r.A), ix.verts.Get(r.B)
	point = predicate.RoundVec3(point)
	if !isPointOnSegment(p0, p1, point) {
		return 0, 0, 0, false
	}
	newV = ix.verts.Insert(point)
	if newV == r.A || newV == r.B {
		return 0, 0, 0, false
	}
	towardA, _ = ix.ribs.Insert(r.A, newV)
	towardB, _ = ix.ribs.Insert(newV, r.B)
	ix.ribs.SetParent(towardA, rib)
	ix.ribs.SetParent(towardB, rib)

	for _, faceID := range ix.ribs.Faces(rib) {
		face := ix.faces.Get(faceID)
		if face == nil {
			continue
		}
		for i, s := range face.Segments {
			if s.Rib != rib {
				continue
			}
			from, _ := s.Endpoints(r)
			var newSegs []topo.Seg
			if from == r.A {
				newSegs = []topo.Seg{segFor(ix.ribs, towardA, r.A), segFor(ix.ribs, towardB, newV)}
			} else {
				newSegs = []topo.Seg{segFor(ix.ribs, towardB, r.B), segFor(ix.ribs, towardA, newV)}
			}
			rest := make([]topo.Seg, 0, len(face.Segments)+1)
			rest = append(rest, face.Segments[:i]...)
			rest = append(rest, newSegs...)
			rest = append(rest, face.Segments[i+1:]...)
			face.Segments = rest
			ix.ribs.AttachFace(towardA, faceID)
			ix.ribs.AttachFace(towardB, faceID)
			ix.ribs.DetachFace(rib, faceID)
			break
		}
	}
	return newV, towardA, towardB, true
}

// splitRibAtPoints splits rib at every point in points that lies strictly
// between its endpoints, applying them in order along the rib so each
// split targets the correct remaining sub-rib. Reports whether any split
// actually happened.
func (ix *Index) splitRibAtPoints(rib topo.RibID, points []mgl64.Vec3) bool {
	r := ix.ribs.Get(rib)
	origin := ix.verts.Get(r.A)
	dir := ix.verts.Get(r.B).Sub(origin)
	length := dir.Len()
	if length < predicate.EPS {
		return false
	}
	dir = dir.Mul(1 / length)

	ordered := append([]mgl64.Vec3(nil), points...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Sub(origin).Dot(dir) < ordered[j].Sub(origin).Dot(dir)
	})

	cur := rib
	changed := false
	for _, p := range ordered {
		_, _, next, ok := ix.splitRibAtPoint(cur, p)
		if !ok {
			continue
		}
		changed = true
		cur = next
	}
	return changed
}

// splitFaceByChain splits faceID into two child faces along the boundary
// positions of from and to, both of which must already be vertices of
// faceID's boundary loop. Each child keeps the original face's plane and
// one of the two boundary arcs between from and to, closed off by a new
// rib directly connecting them. Ported from the reference
// split_face_by_chain: the same face_splits bookkeeping, common-rib
// re-indexing, and recursive re-running of the adjacency cascade on each
// child.
func (ix *Index) splitFaceByChain(faceID topo.FaceID, from, to vertex.ID) []topo.FaceID {
	face := ix.faces.Get(faceID)
	if face == nil {
		return nil
	}

	fromIdx, toIdx := -1, -1
	for i, s := range face.Segments {
		rib := ix.ribs.Get(s.Rib)
		start, _ := s.Endpoints(rib)
		if start == from {
			fromIdx = i
		}
		if start == to {
			toIdx = i
		}
	}
	if fromIdx < 0 || toIdx < 0 || fromIdx == toIdx {
		return nil
	}

	arcA := arcBetween(face.Segments, fromIdx, toIdx)
	arcB := arcBetween(face.Segments, toIdx, fromIdx)
	if len(arcA) < 1 || len(arcB) < 1 {
		return nil
	}

	bridgeRib, _ := ix.ribs.Insert(to, from)
	bridgeFwd := segFor(ix.ribs, bridgeRib, to)
	bridgeRev := bridgeFwd.Flip()

	faceAsegs := append(append([]topo.Seg(nil), arcA...), bridgeFwd)
	faceBsegs := append(append([]topo.Seg(nil), arcB...), bridgeRev)

	if len(faceAsegs) < 3 || len(faceBsegs) < 3 {
		return nil
	}

	faceA := topo.NewFace(face.Plane, faceAsegs, ix.aabbOfSegs(faceAsegs))
	faceB := topo.NewFace(face.Plane, faceBsegs, ix.aabbOfSegs(faceBsegs))
	for p := range face.Polygons {
		faceA.Polygons[p] = true
		faceB.Polygons[p] = true
	}

	idA := ix.faces.Insert(faceA)
	idB := ix.faces.Insert(faceB)
	for _, s := range faceAsegs {
		ix.ribs.AttachFace(s.Rib, idA)
	}
	for _, s := range faceBsegs {
		ix.ribs.AttachFace(s.Rib, idB)
	}
	ix.faceTree.Insert(idA, faceA.AABB)
	ix.faceTree.Insert(idB, faceB.AABB)

	ix.faces.RecordSplit(faceID, []topo.FaceID{idA, idB})
	ix.removeFaceInternal(faceID)

	ix.unifyFacesRibs(idA)
	ix.unifyFacesRibs(idB)
	ix.createCommonRibsForIntersectingFaces(idA)
	ix.createCommonRibsForAdjacentFaces(idA)
	ix.createCommonRibsForIntersectingFaces(idB)
	ix.createCommonRibsForAdjacentFaces(idB)

	return []topo.FaceID{idA, idB}
}

// arcBetween returns the segments of segs starting at index from up to but
// not including index to, wrapping around the end of the slice.
func arcBetween(segs []topo.Seg, from, to int) []topo.Seg {
	var out []topo.Seg
	for i := from; i != to; i = (i + 1) % len(segs) {
		out = append(out, segs[i])
	}
	return out
}

// splitSegLoopAt partitions a closed, ordered boundary (segs, with verts
// giving each segment's leading vertex in the same order) into the two
// arcs running from one named vertex to the other.
func splitSegLoopAt(segs []topo.Seg, verts []vertex.ID, from, to vertex.ID) ([]topo.Seg, []topo.Seg, bool) {
	fromIdx, toIdx := -1, -1
	for i, v := range verts {
		if v == from {
			fromIdx = i
		}
		if v == to {
			toIdx = i
		}
	}
	if fromIdx < 0 || toIdx < 0 || fromIdx == toIdx {
		return nil, nil, false
	}
	return arcBetween(segs, fromIdx, toIdx), arcBetween(segs, toIdx, fromIdx), true
}

func segLoopVertices(ribs *topo.RibTable, segs []topo.Seg) []vertex.ID {
	out := make([]vertex.ID, len(segs))
	for i, s := range segs {
		r := ribs.Get(s.Rib)
		from, _ := s.Endpoints(r)
		out[i] = from
	}
	return out
}

func concatSegs(parts ...[]topo.Seg) []topo.Seg {
	var out []topo.Seg
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func reverseSegLoop(segs []topo.Seg) []topo.Seg {
	out := make([]topo.Seg, len(segs))
	for i, s := range segs {
		out[len(segs)-1-i] = s.Flip()
	}
	return out
}

func (ix *Index) aabbOfSegs(segs []topo.Seg) vertex.AABB {
	first := true
	var box vertex.AABB
	for _, s := range segs {
		rib := ix.ribs.Get(s.Rib)
		from, _ := s.Endpoints(rib)
		p := ix.verts.Get(from)
		if first {
			box = vertex.AABB{Min: p, Max: p}
			first = false
			continue
		}
		for i := 0; i < 3; i++ {
			if p[i] < box.Min[i] {
				box.Min[i] = p[i]
			}
			if p[i] > box.Max[i] {
				box.Max[i] = p[i]
			}
		}
	}
	return box
}
