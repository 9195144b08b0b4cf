// Package topo holds the topological database of an Index: ribs (edges),
// segments (directed rib references), faces (planar boundaries built from
// segments), polygons (the caller's original input), and the tables that
// relate them. Nothing in this package performs geometric construction —
// that is the merge engine's job in the root package — it only stores and
// queries the graph those operations build.
package topo

import "github.com/akmonengine/geoindex/vertex"

// RibID identifies a rib (an undirected edge between two vertices).
type RibID int

// FaceID identifies a face: a planar boundary loop of segments.
type FaceID int

// PolygonID identifies one of the caller's original input polygons.
type PolygonID int

// MeshID identifies a connected collection of faces.
type MeshID int

// VertexID is an alias into the vertex package, kept local so callers of
// topo don't need to import vertex just to read a rib's endpoints.
type VertexID = vertex.ID
