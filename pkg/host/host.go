// Package host defines the contract between scenedoc and a live scene graph.
//
// A host is a mutable tree of typed nodes maintained by an external runtime.
// scenedoc never depends on a concrete host: it reads and writes node state
// through the capability interfaces in this package and discovers them with a
// type assertion, so a node only exposes the property groups it really has:
//
//	if g, ok := n.(host.GeometryNode); ok {
//	    fills := g.Fills()
//	}
//
// # Factory and Workspace
//
// Construction needs three host services: node allocation, font loading and
// boolean combination. They form [Factory]. The page, selection and viewport
// form [Workspace], which is kept separate so that per-node conversion code can
// be given a Factory without gaining access to global state.
//
// # Mixed values
//
// Properties that may hold heterogeneous sub-values are reported as [Value],
// which distinguishes absent, mixed and present.
//
// # Reference host
//
// Package memhost is an in-memory implementation of every interface here.
package host

import "context"

// Node types a host may report in addition to the canonical ones.
const (
	TypePage     = "PAGE"
	TypeDocument = "DOCUMENT"
)

// =============================================================================
// Core Nodes
// =============================================================================

// SceneNode is the base capability every host node has.
type SceneNode interface {
	ID() string
	// Type returns the host-reported type tag. It is not necessarily one of
	// the canonical tags.
	Type() string

	Name() string
	SetName(name string)

	X() float64
	Y() float64
	SetPosition(x, y float64)
	Width() float64
	Height() float64
	Resize(w, h float64) error

	// Rotation is in degrees, counter-clockwise.
	Rotation() float64
	SetRotation(deg float64)
	RelativeTransform() Transform

	Visible() bool
	SetVisible(v bool)
	Locked() bool
	SetLocked(v bool)

	// Parent returns nil for detached nodes.
	Parent() ChildrenNode
	// Remove detaches the node from its parent and destroys it.
	Remove()
}

// ChildrenNode is a node that holds an ordered child list, index 0 painted
// first.
type ChildrenNode interface {
	SceneNode
	Children() []SceneNode
	// AppendChild moves child to the end of the child list. A host with
	// auto-layout recomputes the child's layout participation at this point.
	AppendChild(child SceneNode) error
}

// =============================================================================
// Paint and Visual Capabilities
// =============================================================================

// GeometryNode has fills, strokes and stroke geometry.
type GeometryNode interface {
	SceneNode
	Fills() Value[[]Paint]
	SetFills(fills []Paint) error
	Strokes() []Paint
	SetStrokes(strokes []Paint) error
	StrokeWeight() Value[float64]
	SetStrokeWeight(w float64) error
	StrokeAlign() string
	SetStrokeAlign(a string) error
	StrokeCap() Value[string]
	SetStrokeCap(c string) error
	StrokeJoin() Value[string]
	SetStrokeJoin(j string) error
	StrokeMiterLimit() float64
	SetStrokeMiterLimit(l float64) error
	DashPattern() []float64
	SetDashPattern(p []float64) error
}

// IndividualStrokesNode has per-side stroke weights.
type IndividualStrokesNode interface {
	SceneNode
	StrokeSides() StrokeSides
	SetStrokeSides(s StrokeSides) error
}

// BlendNode has opacity, blend mode, mask flag and effects.
type BlendNode interface {
	SceneNode
	Opacity() float64
	SetOpacity(o float64) error
	BlendMode() string
	SetBlendMode(m string) error
	IsMask() bool
	SetIsMask(m bool) error
	Effects() []Effect
	SetEffects(e []Effect) error
	EffectStyleID() string
}

// CornerNode has a corner radius and smoothing. The radius is Mixed when the
// corners differ.
type CornerNode interface {
	SceneNode
	CornerRadius() Value[float64]
	SetCornerRadius(r float64) error
	CornerSmoothing() float64
	SetCornerSmoothing(s float64) error
}

// RectangleCornerNode has independent corner radii.
type RectangleCornerNode interface {
	CornerNode
	CornerRadii() CornerRadii
	SetCornerRadii(r CornerRadii) error
}

// ConstraintNode has resize constraints.
type ConstraintNode interface {
	SceneNode
	Constraints() Constraints
	SetConstraints(c Constraints) error
}

// SizeConstraintNode has min/max sizes.
type SizeConstraintNode interface {
	SceneNode
	SizeConstraints() SizeConstraints
	SetSizeConstraints(c SizeConstraints) error
}

// =============================================================================
// Layout Capabilities
// =============================================================================

// AutoLayoutNode is a container that may lay out its children.
type AutoLayoutNode interface {
	ChildrenNode
	AutoLayout() AutoLayout
	SetAutoLayout(a AutoLayout) error
}

// LayoutChildNode may participate in a parent's auto-layout. Setting
// participation fails when the node has no auto-layout parent.
type LayoutChildNode interface {
	SceneNode
	LayoutChild() LayoutChild
	SetLayoutChild(l LayoutChild) error
}

// FrameNode has guides and layout grids.
type FrameNode interface {
	ChildrenNode
	Guides() []Guide
	SetGuides(g []Guide) error
	LayoutGrids() []LayoutGrid
	SetLayoutGrids(g []LayoutGrid) error
	GridStyleID() string
}

// =============================================================================
// Type-specific Capabilities
// =============================================================================

// TextNode is a text node. Writing characters or typography requires the
// node's font to be loaded first.
type TextNode interface {
	SceneNode
	Characters() string
	SetCharacters(s string) error
	FontName() Value[FontName]
	SetFontName(f FontName) error
	TextStyle() TextStyle
	SetTextStyle(s TextStyle) error
}

// EllipseNode has arc data.
type EllipseNode interface {
	SceneNode
	ArcData() ArcData
	SetArcData(a ArcData) error
}

// PolygonNode has a point count.
type PolygonNode interface {
	SceneNode
	PointCount() int
	SetPointCount(n int) error
}

// StarNode has a point count and an inner radius.
type StarNode interface {
	PolygonNode
	InnerRadius() float64
	SetInnerRadius(r float64) error
}

// BooleanOperationNode combines its children with a boolean operator.
type BooleanOperationNode interface {
	ChildrenNode
	BooleanOperation() string
	SetBooleanOperation(op string) error
}

// VectorNode has path or network geometry.
type VectorNode interface {
	SceneNode
	VectorPaths() []VectorPath
	SetVectorPaths(p []VectorPath) error
	VectorNetwork() VectorNetwork
	SetVectorNetwork(n VectorNetwork) error
}

// =============================================================================
// Services
// =============================================================================

// Factory allocates nodes and loads fonts. It is all the construction code
// may use.
type Factory interface {
	// CreateNode allocates a detached node of the given type. Hosts return an
	// error for types they cannot create directly.
	CreateNode(typ string) (SceneNode, error)
	// LoadFont loads a font so that text using it can be edited.
	LoadFont(ctx context.Context, f FontName) error
	// Combine replaces nodes with a boolean operation node under parent.
	Combine(op string, nodes []SceneNode, parent ChildrenNode) (BooleanOperationNode, error)
}

// Workspace is the host's global state: the current page, its selection and
// the viewport.
type Workspace interface {
	CurrentPage() ChildrenNode
	Selection() []SceneNode
	SetSelection(nodes []SceneNode)
	ScrollAndZoomIntoView(nodes []SceneNode)
	NodeByID(id string) (SceneNode, bool)
}

// Host is a complete host: factory and workspace.
type Host interface {
	Factory
	Workspace
}
