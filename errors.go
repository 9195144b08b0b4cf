package geoindex

import (
	"errors"

	"github.com/akmonengine/geoindex/classify"
)

var (
	// ErrMeshNotFound names the unknown-mesh condition. No operation in
	// this package returns it: mesh ids are not validated, and
	// AddPolygonToMesh accepts any id.
	ErrMeshNotFound = errors.New("geoindex: mesh not found")

	// ErrDegeneratePolygon is returned by AddPolygonToMesh when the input
	// loop has fewer than three distinct vertices, or its points are
	// collinear and so admit no plane.
	ErrDegeneratePolygon = errors.New("geoindex: degenerate polygon")

	// ErrDegenerateRib is returned when an input edge is shorter than the
	// configured minimum rib length.
	ErrDegenerateRib = errors.New("geoindex: degenerate rib")

	// ErrFaceNotFound is returned when an operation names a face id that
	// is not live (stale ids are not resolved through face_splits
	// history), and by RemovePolygon for a polygon id that is not live.
	ErrFaceNotFound = errors.New("geoindex: face not found")
)

// ErrAmbiguousWedge is returned (wrapped) by SelectPolygons when more than
// two faces share a rib, a configuration the dihedral wedge test used for
// classification cannot order. It is classify.ErrAmbiguousWedge re-exported
// so callers don't need to import the classify package just to compare
// against it with errors.Is.
var ErrAmbiguousWedge = classify.ErrAmbiguousWedge
