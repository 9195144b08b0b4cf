// Package classify implements the face classifier: given two meshes that
// share a boundary (the common ribs the merge engine created where they
// intersect), decide, for each face of one mesh, which side of the other
// mesh's surface it falls on. This is the predicate CSG boolean operations
// are built from — union, difference and intersection all reduce to "keep
// the of_mesh faces in front of (or behind, or coincident with) by_mesh".
package classify

import (
	"errors"
	"sort"

	"github.com/akmonengine/geoindex/predicate"
	"github.com/akmonengine/geoindex/topo"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrAmbiguousWedge is returned when a shared rib carries more than one
// candidate reference face from by_mesh, so the dihedral test has no
// unique face to measure against.
var ErrAmbiguousWedge = errors.New("classify: more than two faces share a rib")

// Filter selects which side of by_mesh's surface an of_mesh face should be
// kept on.
type Filter int

const (
	Front Filter = iota
	Back
	Shared
	SharedInverted
)

// FaceGeometry is the minimal read access the classifier needs into the
// realized topology, decoupled from topo.FaceTable/PolygonTable so this
// package never needs to import the vertex store directly.
type FaceGeometry interface {
	Boundary(id topo.FaceID) []mgl64.Vec3 // realized boundary points, in order
	Plane(id topo.FaceID) predicate.Plane
	Ribs(id topo.FaceID) []topo.RibID
	FacesOnRib(rib topo.RibID) []topo.FaceID
	RibEndpoints(rib topo.RibID) (mgl64.Vec3, mgl64.Vec3)
	FacesOfMesh(mesh topo.MeshID) []topo.FaceID
	MeshesOfFace(id topo.FaceID) []topo.MeshID
}

// PolyBetweenFronts is the in-plane polar-angle wedge test §4.9 step 3
// classifies dihedral ordering with: axisX and axisY are the 2D basis
// anchored at one face's own inward direction and plane normal (both
// perpendicular to the shared rib), and it reports whether test's angle
// around that basis falls strictly before limit's.
func PolyBetweenFronts(axisX, axisY, limit, test mgl64.Vec3) bool {
	limitAngle := predicate.PolarAngle(axisX, axisY, limit)
	testAngle := predicate.PolarAngle(axisX, axisY, test)
	return testAngle < limitAngle
}

// classifyAcrossRib labels candidate relative to reference, the two faces
// meeting at rib: Shared/SharedInverted if their planes coincide, otherwise
// Front if candidate's own inward direction falls within the half-turn
// wedge swept from reference's inward direction toward its own outward
// side, Back otherwise.
func classifyAcrossRib(geom FaceGeometry, rib topo.RibID, candidate, reference topo.FaceID) Filter {
	refPlane := geom.Plane(reference)
	candPlane := geom.Plane(candidate)
	if refPlane.IsCoplanar(candPlane) {
		if predicate.RoundDot(refPlane.Normal.Dot(candPlane.Normal)) > 0 {
			return Shared
		}
		return SharedInverted
	}

	a, b := geom.RibEndpoints(rib)
	refDir := predicate.InwardDirectionAtRib(refPlane, geom.Boundary(reference), a, b)
	candDir := predicate.InwardDirectionAtRib(candPlane, geom.Boundary(candidate), a, b)

	axisX, axisY := refDir, refPlane.Normal
	if PolyBetweenFronts(axisX, axisY, refDir.Mul(-1), candDir) {
		return Front
	}
	return Back
}

// Select implements select_polygons(of_mesh, by_mesh, filter): it classifies
// every face of ofMesh against byMesh and returns those matching keep.
//
//  1. Collect of_mesh's and by_mesh's faces.
//  2. Collect the ribs shared between them — ribs touched by at least one
//     face of each mesh (these exist because common-rib creation already
//     cut both meshes' boundaries along their intersection).
//  3. For each shared rib, classify the of_mesh face(s) on it against the
//     single by_mesh face on it via the dihedral wedge test.
//  4. Propagate each of_mesh face's label to its same-mesh neighbors across
//     ribs that are not themselves shared with by_mesh, so faces that never
//     touch the shared boundary still inherit a label from their connected
//     component.
//  5. Return the of_mesh faces whose label equals keep.
func Select(geom FaceGeometry, ofMesh, byMesh topo.MeshID, keep Filter) ([]topo.FaceID, error) {
	ofFaces := geom.FacesOfMesh(ofMesh)
	if len(ofFaces) == 0 {
		return nil, nil
	}
	sort.Slice(ofFaces, func(i, j int) bool { return ofFaces[i] < ofFaces[j] })
	byFaces := geom.FacesOfMesh(byMesh)

	ofSet := make(map[topo.FaceID]bool, len(ofFaces))
	for _, f := range ofFaces {
		ofSet[f] = true
	}

	ribOf := make(map[topo.RibID][]topo.FaceID)
	for _, f := range ofFaces {
		for _, r := range geom.Ribs(f) {
			ribOf[r] = append(ribOf[r], f)
		}
	}
	ribBy := make(map[topo.RibID][]topo.FaceID)
	for _, f := range byFaces {
		for _, r := range geom.Ribs(f) {
			ribBy[r] = append(ribBy[r], f)
		}
	}

	sharedRibs := make([]topo.RibID, 0, len(ribOf))
	for r := range ribOf {
		if len(ribBy[r]) > 0 {
			sharedRibs = append(sharedRibs, r)
		}
	}
	sort.Slice(sharedRibs, func(i, j int) bool { return sharedRibs[i] < sharedRibs[j] })

	label := make(map[topo.FaceID]Filter)
	var queue []topo.FaceID

	for _, rib := range sharedRibs {
		byOn := ribBy[rib]
		if len(byOn) > 1 {
			return nil, ErrAmbiguousWedge
		}
		ref := byOn[0]

		onFaces := append([]topo.FaceID(nil), ribOf[rib]...)
		sort.Slice(onFaces, func(i, j int) bool { return onFaces[i] < onFaces[j] })
		for _, fa := range onFaces {
			if _, done := label[fa]; done {
				continue
			}
			label[fa] = classifyAcrossRib(geom, rib, fa, ref)
			queue = append(queue, fa)
		}
	}

	isShared := make(map[topo.RibID]bool, len(sharedRibs))
	for _, r := range sharedRibs {
		isShared[r] = true
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, r := range geom.Ribs(cur) {
			if isShared[r] {
				continue
			}
			neighbors := append([]topo.FaceID(nil), ribOf[r]...)
			sort.Slice(neighbors, func(i, j int) bool { return neighbors[i] < neighbors[j] })
			for _, n := range neighbors {
				if n == cur || !ofSet[n] {
					continue
				}
				if _, done := label[n]; done {
					continue
				}
				label[n] = label[cur]
				queue = append(queue, n)
			}
		}
	}

	var kept []topo.FaceID
	for _, f := range ofFaces {
		if l, ok := label[f]; ok && l == keep {
			kept = append(kept, f)
		}
	}
	return kept, nil
}

// SpreadVisitedAround flood-fills out from seed across every face reachable
// through shared ribs — used by mesh-membership queries (move_all_polygons)
// where every face connected to the seed should move together regardless
// of classification.
func SpreadVisitedAround(geom FaceGeometry, seed topo.FaceID) []topo.FaceID {
	visited := map[topo.FaceID]bool{seed: true}
	queue := []topo.FaceID{seed}
	out := []topo.FaceID{seed}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, rib := range geom.Ribs(cur) {
			for _, n := range geom.FacesOnRib(rib) {
				if n == cur || visited[n] {
					continue
				}
				visited[n] = true
				out = append(out, n)
				queue = append(queue, n)
			}
		}
	}
	return out
}
