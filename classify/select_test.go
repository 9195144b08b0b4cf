package classify

import (
	"testing"

	"github.com/akmonengine/geoindex/predicate"
	"github.com/akmonengine/geoindex/topo"
	"github.com/go-gl/mathgl/mgl64"
)

// fakeGeometry is a tiny hand-built adjacency graph used to test the flood
// fill and classification logic without involving the full Index.
type fakeGeometry struct {
	planes      map[topo.FaceID]predicate.Plane
	boundary    map[topo.FaceID][]mgl64.Vec3
	ribs        map[topo.FaceID][]topo.RibID
	onRib       map[topo.RibID][]topo.FaceID
	ribEnds     map[topo.RibID][2]mgl64.Vec3
	facesOfMesh map[topo.MeshID][]topo.FaceID
	meshesOf    map[topo.FaceID][]topo.MeshID
}

func (g fakeGeometry) Boundary(id topo.FaceID) []mgl64.Vec3    { return g.boundary[id] }
func (g fakeGeometry) Plane(id topo.FaceID) predicate.Plane    { return g.planes[id] }
func (g fakeGeometry) Ribs(id topo.FaceID) []topo.RibID        { return g.ribs[id] }
func (g fakeGeometry) FacesOnRib(rib topo.RibID) []topo.FaceID { return g.onRib[rib] }
func (g fakeGeometry) RibEndpoints(rib topo.RibID) (mgl64.Vec3, mgl64.Vec3) {
	e := g.ribEnds[rib]
	return e[0], e[1]
}
func (g fakeGeometry) FacesOfMesh(mesh topo.MeshID) []topo.FaceID { return g.facesOfMesh[mesh] }
func (g fakeGeometry) MeshesOfFace(id topo.FaceID) []topo.MeshID  { return g.meshesOf[id] }

func flatPlane() predicate.Plane {
	return predicate.Plane{Normal: mgl64.Vec3{0, 0, 1}, D: 0}
}

func TestSpreadVisitedAroundVisitsConnectedComponent(t *testing.T) {
	g := fakeGeometry{
		planes: map[topo.FaceID]predicate.Plane{1: flatPlane(), 2: flatPlane(), 3: flatPlane()},
		ribs: map[topo.FaceID][]topo.RibID{
			1: {100},
			2: {100, 101},
			3: {101},
		},
		onRib: map[topo.RibID][]topo.FaceID{
			100: {1, 2},
			101: {2, 3},
		},
	}
	visited := SpreadVisitedAround(g, 1)
	if len(visited) != 3 {
		t.Fatalf("expected to visit all 3 connected faces, got %v", visited)
	}
}

func TestSelectStopsAtAmbiguousWedge(t *testing.T) {
	g := fakeGeometry{
		planes: map[topo.FaceID]predicate.Plane{1: flatPlane(), 2: flatPlane(), 3: flatPlane(), 4: flatPlane()},
		ribs: map[topo.FaceID][]topo.RibID{
			1: {100},
		},
		onRib: map[topo.RibID][]topo.FaceID{
			100: {1, 2, 3, 4},
		},
		facesOfMesh: map[topo.MeshID][]topo.FaceID{
			0: {1},
			1: {2, 3, 4},
		},
	}
	_, err := Select(g, 0, 1, Front)
	if err != ErrAmbiguousWedge {
		t.Fatalf("expected ErrAmbiguousWedge, got %v", err)
	}
}

// TestSelectSharedAcrossCoplanarTouchingSquares grounds §8 scenario 4: two
// coplanar unit squares sharing a single boundary edge must classify as
// Shared on that edge.
func TestSelectSharedAcrossCoplanarTouchingSquares(t *testing.T) {
	plane := flatPlane()
	ribEnd := [2]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}}
	g := fakeGeometry{
		planes: map[topo.FaceID]predicate.Plane{1: plane, 2: plane},
		boundary: map[topo.FaceID][]mgl64.Vec3{
			1: {{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
			2: {{1, 0, 0}, {0, 0, 0}, {0, -1, 0}, {1, -1, 0}},
		},
		ribs: map[topo.FaceID][]topo.RibID{
			1: {500},
			2: {500},
		},
		onRib:   map[topo.RibID][]topo.FaceID{500: {1, 2}},
		ribEnds: map[topo.RibID][2]mgl64.Vec3{500: ribEnd},
		facesOfMesh: map[topo.MeshID][]topo.FaceID{
			0: {1},
			1: {2},
		},
	}
	kept, err := Select(g, 0, 1, Shared)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kept) != 1 || kept[0] != 1 {
		t.Fatalf("expected face 1 to classify as Shared, got %v", kept)
	}
}

func TestClassifyAcrossRibFrontAndBack(t *testing.T) {
	g := fakeGeometry{
		planes: map[topo.FaceID]predicate.Plane{
			10: {Normal: mgl64.Vec3{1, 0, 0}, D: 0},
			20: {Normal: mgl64.Vec3{0, 0, 1}, D: 0},
			30: {Normal: mgl64.Vec3{0, 0, -1}, D: 0},
		},
		boundary: map[topo.FaceID][]mgl64.Vec3{
			10: {{0, 0, 0}, {0, 1, 0}, {0, 1, 1}, {0, 0, 1}},
			20: {{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
			30: {{0, 0, 0}, {0, 1, 0}, {-1, 1, 0}, {-1, 0, 0}},
		},
		ribEnds: map[topo.RibID][2]mgl64.Vec3{1: {{0, 0, 0}, {0, 1, 0}}},
	}
	front := classifyAcrossRib(g, 1, 20, 10)
	back := classifyAcrossRib(g, 1, 30, 10)
	if front == back {
		t.Fatalf("expected the two candidates on opposite sides of the reference to classify differently, got %v and %v", front, back)
	}
}
