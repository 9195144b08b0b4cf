package geoindex

import (
	"errors"
	"testing"

	"github.com/akmonengine/geoindex/classify"
	"github.com/go-gl/mathgl/mgl64"
)

// These tests exercise the concrete end-to-end scenarios seeded for this
// kernel: two polygons touching at a single edge, two cubes classified
// against one another, a cube cut by a plane, two partially-overlapping
// coplanar squares, a polygon with a hole, and degenerate input rejection.

func v(x, y, z float64) mgl64.Vec3 { return mgl64.Vec3{x, y, z} }

// TestTwoSquaresShareOneEdge grounds the scenario where two unit squares in
// the same plane touch along a single edge: once both are inserted, the
// touching edge is one rib shared by both faces, so classifying one mesh
// against the other along that edge reports Shared.
func TestTwoSquaresShareOneEdge(t *testing.T) {
	ix := testIndex()
	meshA := ix.NewMesh()
	meshB := ix.NewMesh()

	squareA := []mgl64.Vec3{v(-0.5, -0.5, 0), v(0.5, -0.5, 0), v(0.5, 0.5, 0), v(-0.5, 0.5, 0)}
	squareB := []mgl64.Vec3{v(0.5, -0.5, 0), v(1.5, -0.5, 0), v(1.5, 0.5, 0), v(0.5, 0.5, 0)}

	if _, _, err := ix.AddPolygonToMesh(meshA, squareA); err != nil {
		t.Fatalf("unexpected error inserting square A: %v", err)
	}
	if _, _, err := ix.AddPolygonToMesh(meshB, squareB); err != nil {
		t.Fatalf("unexpected error inserting square B: %v", err)
	}

	kept, err := ix.SelectPolygons(meshA, meshB, classify.Shared)
	if err != nil {
		t.Fatalf("unexpected error selecting polygons: %v", err)
	}
	if len(kept) == 0 {
		t.Fatal("expected the touching edge to classify A's face as Shared against B")
	}
}

// TestTwoCubesClassifyFrontAndBack grounds the scenario of a small cube
// offset inside a larger one: select_polygons(B, A, Front) must find the
// faces of B protruding outside A, and select_polygons(A, B, Back) must find
// the portion of A's surface lying inside B.
func TestTwoCubesClassifyFrontAndBack(t *testing.T) {
	ix := testIndex()
	meshA := ix.NewMesh()
	meshB := ix.NewMesh()

	cube := func(cx, cy, cz, half float64) [][]mgl64.Vec3 {
		lo := func(c float64) float64 { return c - half }
		hi := func(c float64) float64 { return c + half }
		x0, x1 := lo(cx), hi(cx)
		y0, y1 := lo(cy), hi(cy)
		z0, z1 := lo(cz), hi(cz)
		return [][]mgl64.Vec3{
			{v(x0, y0, z0), v(x0, y1, z0), v(x1, y1, z0), v(x1, y0, z0)}, // -Z
			{v(x0, y0, z1), v(x1, y0, z1), v(x1, y1, z1), v(x0, y1, z1)}, // +Z
			{v(x0, y0, z0), v(x1, y0, z0), v(x1, y0, z1), v(x0, y0, z1)}, // -Y
			{v(x0, y1, z0), v(x0, y1, z1), v(x1, y1, z1), v(x1, y1, z0)}, // +Y
			{v(x0, y0, z0), v(x0, y0, z1), v(x0, y1, z1), v(x0, y1, z0)}, // -X
			{v(x1, y0, z0), v(x1, y1, z0), v(x1, y1, z1), v(x1, y0, z1)}, // +X
		}
	}

	for _, face := range cube(0, 0, 0, 1) {
		if _, _, err := ix.AddPolygonToMesh(meshA, face); err != nil {
			t.Fatalf("unexpected error building cube A: %v", err)
		}
	}
	for _, face := range cube(1, 0, 0, 0.5) {
		if _, _, err := ix.AddPolygonToMesh(meshB, face); err != nil {
			t.Fatalf("unexpected error building cube B: %v", err)
		}
	}

	front, err := ix.SelectPolygons(meshB, meshA, classify.Front)
	if err != nil {
		t.Fatalf("unexpected error selecting B's protruding faces: %v", err)
	}
	if len(front) == 0 {
		t.Fatal("expected at least one face of B to classify as Front (protruding outside A)")
	}

	back, err := ix.SelectPolygons(meshA, meshB, classify.Back)
	if err != nil {
		t.Fatalf("unexpected error selecting A's faces inside B: %v", err)
	}
	if len(back) == 0 {
		t.Fatal("expected at least one face of A to classify as Back (inside B)")
	}
}

// TestCubeCutByPlaneSplitsSideFaces grounds the scenario of a cube cut by a
// plane through its interior: the plane crosses the cube's four side faces,
// so both the cube's boundary and the plane's own face end up subdivided
// along the resulting chords.
func TestCubeCutByPlaneSplitsSideFaces(t *testing.T) {
	ix := testIndex()
	cubeMesh := ix.NewMesh()
	planeMesh := ix.NewMesh()

	for _, face := range cubeFaces() {
		if _, _, err := ix.AddPolygonToMesh(cubeMesh, face); err != nil {
			t.Fatalf("unexpected error building cube: %v", err)
		}
	}

	cutPlane := []mgl64.Vec3{v(-4, -4, 0.9), v(5, -4, 0.9), v(5, 5, 0.9), v(-4, 5, 0.9)}
	if _, _, err := ix.AddPolygonToMesh(planeMesh, cutPlane); err != nil {
		t.Fatalf("unexpected error inserting cut plane: %v", err)
	}

	if got := len(ix.facesOfMesh(cubeMesh)); got <= 6 {
		t.Fatalf("expected the cube's side faces to be subdivided by the cut, got %d faces", got)
	}
	if got := len(ix.facesOfMesh(planeMesh)); got <= 1 {
		t.Fatalf("expected the cutting plane itself to be subdivided along the same chords, got %d faces", got)
	}
}

// TestOverlappingCoplanarSquaresShareRegion grounds the scenario of two
// coplanar unit squares offset enough to partially overlap: the classifier
// must report the overlapping rectangle as Shared once both are inserted.
func TestOverlappingCoplanarSquaresShareRegion(t *testing.T) {
	ix := testIndex()
	meshA := ix.NewMesh()
	meshB := ix.NewMesh()

	squareA := []mgl64.Vec3{v(0, 0, 0), v(1, 0, 0), v(1, 1, 0), v(0, 1, 0)}
	squareB := []mgl64.Vec3{v(0, 0.5, 0), v(1, 0.5, 0), v(1, 1.5, 0), v(0, 1.5, 0)}

	if _, _, err := ix.AddPolygonToMesh(meshA, squareA); err != nil {
		t.Fatalf("unexpected error inserting square A: %v", err)
	}
	if _, _, err := ix.AddPolygonToMesh(meshB, squareB); err != nil {
		t.Fatalf("unexpected error inserting square B: %v", err)
	}

	if got := len(ix.facesOfMesh(meshA)); got < 2 {
		t.Fatalf("expected square A to be subdivided by the overlap, got %d faces", got)
	}

	shared, err := ix.SelectPolygons(meshA, meshB, classify.Shared)
	if err != nil {
		t.Fatalf("unexpected error selecting the shared region: %v", err)
	}
	if len(shared) == 0 {
		t.Fatal("expected the overlapping rectangle to classify as Shared")
	}
}

// TestPolygonWithHoleSplitsIntoThreeChildren grounds the scenario of a
// polygon with a hole: inserting a smaller, oppositely-wound rectangle fully
// inside an existing face's boundary must carve that face apart via the
// closed-chain split path rather than leave it untouched.
func TestPolygonWithHoleSplitsIntoThreeChildren(t *testing.T) {
	ix := testIndex()
	mesh := ix.NewMesh()

	outer := []mgl64.Vec3{v(0, 0, 0), v(4, 0, 0), v(4, 4, 0), v(0, 4, 0)}
	hole := []mgl64.Vec3{v(1, 1, 0), v(1, 3, 0), v(3, 3, 0), v(3, 1, 0)} // opposite winding

	outerID, _, err := ix.AddPolygonToMesh(mesh, outer)
	if err != nil {
		t.Fatalf("unexpected error inserting outer rectangle: %v", err)
	}
	if _, _, err := ix.AddPolygonToMesh(mesh, hole); err != nil {
		t.Fatalf("unexpected error inserting hole rectangle: %v", err)
	}

	if ix.Face(outerID) != nil {
		t.Fatal("expected the outer face to be replaced by the closed-chain split")
	}
	if got := len(ix.facesOfMesh(mesh)); got < 3 {
		t.Fatalf("expected the hole to carve the outer face into several children, got %d faces", got)
	}
}

// TestAddPolygonToMeshRejectsCoincidentVertices grounds the degenerate-input
// scenario: a triangle with two vertices closer together than the
// configured precision is rejected and leaves no trace in the index.
func TestAddPolygonToMeshRejectsCoincidentVertices(t *testing.T) {
	ix := testIndex()
	mesh := ix.NewMesh()

	_, _, err := ix.AddPolygonToMesh(mesh, []mgl64.Vec3{
		v(0, 0, 0), v(0, 0, 0), v(1, 1, 0),
	})
	if !errors.Is(err, ErrDegeneratePolygon) {
		t.Fatalf("expected ErrDegeneratePolygon, got %v", err)
	}
	if got := len(ix.facesOfMesh(mesh)); got != 0 {
		t.Fatalf("expected no faces to be created by a rejected insert, got %d", got)
	}
}
