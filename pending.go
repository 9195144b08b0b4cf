package geoindex

import (
	"sort"

	"github.com/akmonengine/geoindex/topo"
	"github.com/akmonengine/geoindex/vertex"
)

// ribChain is a maximal simple path collectRibChains assembled from a set
// of ribs sharing endpoints: segs is the path in traversal order, closed
// reports whether it came back around to its own start (a hole loop)
// rather than ending at two distinct vertices (a bridging cut).
type ribChain struct {
	segs   []topo.Seg
	closed bool
}

// queuePendingRib records rib as a cut still waiting to be folded into
// face's boundary — split_faces_by_orphan_ribs' partially_split_faces.
func (ix *Index) queuePendingRib(face topo.FaceID, rib topo.RibID) {
	if ix.pending[face] == nil {
		ix.pending[face] = make(map[topo.RibID]bool)
	}
	ix.pending[face][rib] = true
}

// lowestPendingFace returns the lowest-id face with at least one pending
// rib, the deterministic tie-break the drain loop uses.
func (ix *Index) lowestPendingFace() (topo.FaceID, bool) {
	best := topo.FaceID(0)
	found := false
	for f, set := range ix.pending {
		if len(set) == 0 {
			continue
		}
		if !found || f < best {
			best = f
			found = true
		}
	}
	return best, found
}

// drainPendingSplits repeatedly takes the lowest-id face with pending ribs
// and folds them into its boundary, splitting the face (by an open chain
// or, when the ribs close into a loop, by splitFaceByClosedChain), until
// no face has pending ribs left — split_faces_by_orphan_ribs' fixed point.
// A face with more than one disjoint pending chain only has its first
// (lowest-rib-id) chain applied per split; any others are requeued onto
// the resulting children, since splitting invalidates the face's original
// boundary indices.
func (ix *Index) drainPendingSplits() {
	for {
		faceID, ok := ix.lowestPendingFace()
		if !ok {
			return
		}
		ribIDs := make([]topo.RibID, 0, len(ix.pending[faceID]))
		for r := range ix.pending[faceID] {
			ribIDs = append(ribIDs, r)
		}
		delete(ix.pending, faceID)
		if len(ribIDs) == 0 {
			continue
		}
		sort.Slice(ribIDs, func(i, j int) bool { return ribIDs[i] < ribIDs[j] })

		chains := ix.collectRibChains(ribIDs)
		if len(chains) == 0 {
			continue
		}

		primary := chains[0]
		leftover := chains[1:]

		var children []topo.FaceID
		switch {
		case primary.closed && len(primary.segs) >= 3:
			children = ix.splitFaceByClosedChain(faceID, primary.segs)
		default:
			from, to, ok := chainEndpoints(ix, primary.segs)
			if ok {
				children = ix.splitFaceByChain(faceID, from, to)
			}
		}

		for _, chain := range leftover {
			for _, s := range chain.segs {
				for _, c := range children {
					ix.queuePendingRib(c, s.Rib)
				}
			}
		}
	}
}

// chainEndpoints returns the leading vertex of an open chain's first
// segment and the trailing vertex of its last segment.
func chainEndpoints(ix *Index, segs []topo.Seg) (from, to vertex.ID, ok bool) {
	if len(segs) == 0 {
		return 0, 0, false
	}
	from = segLoopVertices(ix.ribs, segs)[0]
	last := segs[len(segs)-1]
	_, to = last.Endpoints(ix.ribs.Get(last.Rib))
	return from, to, from != to
}

// collectRibChains groups an unordered set of rib ids into maximal simple
// paths by shared endpoints, each returned as an ordered, directed ribChain
// — the collect_seg_chains step the reference orphan-rib drain and
// adjacent-face common-rib search both rely on.
func (ix *Index) collectRibChains(ribIDs []topo.RibID) []ribChain {
	remaining := append([]topo.RibID(nil), ribIDs...)
	var chains []ribChain

	for len(remaining) > 0 {
		r0 := remaining[0]
		remaining = remaining[1:]
		segs := []topo.Seg{{Rib: r0, Dir: topo.Fwd}}

		for {
			verts := segLoopVertices(ix.ribs, segs)
			head := verts[0]
			lastSeg := segs[len(segs)-1]
			_, tail := lastSeg.Endpoints(ix.ribs.Get(lastSeg.Rib))

			if head == tail {
				break
			}

			extended := false
			for i, r := range remaining {
				rib := ix.ribs.Get(r)
				switch {
				case rib.A == tail:
					segs = append(segs, topo.Seg{Rib: r, Dir: topo.Fwd})
				case rib.B == tail:
					segs = append(segs, topo.Seg{Rib: r, Dir: topo.Rev})
				case rib.B == head:
					segs = append([]topo.Seg{{Rib: r, Dir: topo.Fwd}}, segs...)
				case rib.A == head:
					segs = append([]topo.Seg{{Rib: r, Dir: topo.Rev}}, segs...)
				default:
					continue
				}
				remaining = append(remaining[:i], remaining[i+1:]...)
				extended = true
				break
			}
			if !extended {
				break
			}
		}

		verts := segLoopVertices(ix.ribs, segs)
		lastSeg := segs[len(segs)-1]
		_, tail := lastSeg.Endpoints(ix.ribs.Get(lastSeg.Rib))
		chains = append(chains, ribChain{segs: segs, closed: verts[0] == tail})
	}
	return chains
}
