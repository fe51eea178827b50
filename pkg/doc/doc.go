// Package doc defines the canonical document tree exchanged by scenedoc.
//
// The canonical tree is the host-independent, serializable description of a
// scene graph: geometry, paint, typography, auto-layout and vector geometry.
// It is produced by the exporter (pkg/convert) from a live host tree, or by any
// external producer that decodes a document file, and it is consumed without
// mutation by the creator.
//
// # Structure
//
// A [Node] carries a name, a [NodeType] tag, a position and a set of optional
// property groups, each a pointer to a cohesive sub-struct:
//
//   - [Paint]: fills, strokes and stroke geometry
//   - [Corners]: uniform or per-corner radii and smoothing
//   - [Typography]: text content and styling (TEXT only)
//   - [AutoLayout]: container auto-layout configuration
//   - [LayoutChild]: layout participation inside an auto-layout parent
//   - [Constraints]: resize constraints and min/max sizes
//   - [Visual]: opacity, blend mode, mask flag and effects
//   - [FrameExtras]: guides and layout grids
//   - [ShapeExtras]: arcs, points, boolean operations and vector geometry
//
// The groups are embedded, so on the wire every field sits flat on the node
// object. A nil group means every field in it equals its default.
//
// # Defaults
//
// Absence is meaningful: an absent field equals its documented default and the
// mapping is part of the wire contract. [Elide] removes default-equal fields
// from a node; it is what the exporter's output already looks like, and it is
// idempotent:
//
//	n = doc.Elide(n)
//	doc.Elide(n) // equal to n
//
// # Paint order
//
// Children are ordered bottom to top: index 0 is painted first. Reordering
// children is a content change.
//
// # Serialization
//
// [Document] is the file envelope. JSON and YAML are supported:
//
//	d, err := doc.ReadFile("scene.json")
//	err = doc.WriteFile(d, "scene.yaml")
//
// # Concurrency
//
// Canonical values are plain data and safe for concurrent reads.
package doc
