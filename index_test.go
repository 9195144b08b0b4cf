package geoindex

import (
	"strings"
	"testing"

	"github.com/akmonengine/geoindex/topo"
	"github.com/akmonengine/geoindex/vertex"
	"github.com/go-gl/mathgl/mgl64"
)

func testIndex() *Index {
	bounds := vertex.AABB{Min: mgl64.Vec3{-100, -100, -100}, Max: mgl64.Vec3{100, 100, 100}}
	return NewIndex(bounds)
}

// cubeFaces returns the six quad faces of a unit cube, each wound
// counter-clockwise when viewed from outside.
func cubeFaces() [][]mgl64.Vec3 {
	v := func(x, y, z float64) mgl64.Vec3 { return mgl64.Vec3{x, y, z} }
	return [][]mgl64.Vec3{
		{v(0, 0, 0), v(0, 1, 0), v(1, 1, 0), v(1, 0, 0)}, // -Z
		{v(0, 0, 1), v(1, 0, 1), v(1, 1, 1), v(0, 1, 1)}, // +Z
		{v(0, 0, 0), v(1, 0, 0), v(1, 0, 1), v(0, 0, 1)}, // -Y
		{v(0, 1, 0), v(0, 1, 1), v(1, 1, 1), v(1, 1, 0)}, // +Y
		{v(0, 0, 0), v(0, 0, 1), v(0, 1, 1), v(0, 1, 0)}, // -X
		{v(1, 0, 0), v(1, 1, 0), v(1, 1, 1), v(1, 0, 1)}, // +X
	}
}

func TestAddPolygonToMeshBuildsCube(t *testing.T) {
	ix := testIndex()
	mesh := ix.NewMesh()

	for _, face := range cubeFaces() {
		if _, _, err := ix.AddPolygonToMesh(mesh, face); err != nil {
			t.Fatalf("unexpected error adding cube face: %v", err)
		}
	}

	meshes := ix.Meshes()
	if len(meshes) != 1 || meshes[0] != mesh {
		t.Fatalf("expected exactly one mesh with faces, got %v", meshes)
	}
	if got := len(ix.facesOfMesh(mesh)); got != 6 {
		t.Fatalf("expected 6 live faces, got %d", got)
	}
}

func TestAddPolygonToMeshRejectsDegenerate(t *testing.T) {
	ix := testIndex()
	mesh := ix.NewMesh()
	_, _, err := ix.AddPolygonToMesh(mesh, []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}})
	if err == nil {
		t.Fatal("expected an error inserting a 2-point polygon")
	}
}

func TestAddPolygonToMeshRejectsCollinear(t *testing.T) {
	ix := testIndex()
	mesh := ix.NewMesh()
	_, _, err := ix.AddPolygonToMesh(mesh, []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}})
	if err == nil {
		t.Fatal("expected an error inserting collinear points")
	}
}

func TestAddPolygonToMeshFoldsExactDuplicate(t *testing.T) {
	ix := testIndex()
	mesh := ix.NewMesh()
	face := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}

	id1, _, err := ix.AddPolygonToMesh(mesh, face)
	if err != nil {
		t.Fatalf("unexpected error on first insert: %v", err)
	}
	id2, _, err := ix.AddPolygonToMesh(mesh, face)
	if err != nil {
		t.Fatalf("unexpected error on duplicate insert: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("expected duplicate polygon to fold into the same face, got %d and %d", id1, id2)
	}
	if got := len(ix.facesOfMesh(mesh)); got != 1 {
		t.Fatalf("expected exactly 1 live face after folding a duplicate, got %d", got)
	}
}

func TestRemoveFace(t *testing.T) {
	ix := testIndex()
	mesh := ix.NewMesh()
	id, _, err := ix.AddPolygonToMesh(mesh, []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ix.RemoveFace(id); err != nil {
		t.Fatalf("unexpected error removing face: %v", err)
	}
	if ix.Face(id) != nil {
		t.Fatal("expected face to be gone after RemoveFace")
	}
	if err := ix.RemoveFace(id); err == nil {
		t.Fatal("expected an error removing an already-removed face")
	}
}

func TestFlipPolygonReversesWinding(t *testing.T) {
	ix := testIndex()
	mesh := ix.NewMesh()
	id, _, err := ix.AddPolygonToMesh(mesh, []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := ix.Face(id).Plane.Normal
	if err := ix.FlipPolygon(id); err != nil {
		t.Fatalf("unexpected error flipping: %v", err)
	}
	after := ix.Face(id).Plane.Normal
	// Two exactly opposite unit vectors sum to ~0.
	if before.Add(after).Len() > 1e-9 {
		t.Fatalf("expected normal to be negated by FlipPolygon, got %v and %v", before, after)
	}
}

func TestScadProducesPolyhedronLiteral(t *testing.T) {
	ix := testIndex()
	mesh := ix.NewMesh()
	for _, face := range cubeFaces() {
		if _, _, err := ix.AddPolygonToMesh(mesh, face); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	out := ix.Scad(mesh)
	if !strings.HasPrefix(out, "polyhedron(") {
		t.Fatalf("expected a polyhedron() literal, got: %s", out)
	}
	if !strings.Contains(out, "faces=[") {
		t.Fatalf("expected a faces=[] section, got: %s", out)
	}
}

func TestMoveAllPolygonsFloodsConnectedMesh(t *testing.T) {
	ix := testIndex()
	mesh := ix.NewMesh()
	other := ix.NewMesh()
	var seed topo.FaceID
	for i, face := range cubeFaces() {
		id, _, err := ix.AddPolygonToMesh(mesh, face)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if i == 0 {
			seed = id
		}
	}
	faces, err := ix.MoveAllPolygons(seed, other)
	if err != nil {
		t.Fatalf("unexpected error moving polygons: %v", err)
	}
	if len(faces) != 6 {
		t.Fatalf("expected all 6 connected faces to move, got %d", len(faces))
	}
	if got := len(ix.facesOfMesh(other)); got != 6 {
		t.Fatalf("expected 6 faces now in the target mesh, got %d", got)
	}
	if got := len(ix.facesOfMesh(mesh)); got != 0 {
		t.Fatalf("expected the source mesh to be left empty, got %d", got)
	}
}
