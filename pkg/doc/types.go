package doc

// NodeType is the canonical node type tag.
type NodeType string

// Container-like node types.
const (
	TypeFrame            NodeType = "FRAME"
	TypeGroup            NodeType = "GROUP"
	TypeComponent        NodeType = "COMPONENT"
	TypeComponentSet     NodeType = "COMPONENT_SET"
	TypeInstance         NodeType = "INSTANCE"
	TypeSection          NodeType = "SECTION"
	TypeBooleanOperation NodeType = "BOOLEAN_OPERATION"
)

// Shape-like node types.
const (
	TypeRectangle NodeType = "RECTANGLE"
	TypeEllipse   NodeType = "ELLIPSE"
	TypePolygon   NodeType = "POLYGON"
	TypeStar      NodeType = "STAR"
	TypeLine      NodeType = "LINE"
	TypeVector    NodeType = "VECTOR"
)

// Text and slice node types.
const (
	TypeText  NodeType = "TEXT"
	TypeSlice NodeType = "SLICE"
)

// Other node types. They are exported with the generic extractors and
// rebuilt through the fallback construction path.
const (
	TypeSticky        NodeType = "STICKY"
	TypeShapeWithText NodeType = "SHAPE_WITH_TEXT"
	TypeConnector     NodeType = "CONNECTOR"
	TypeCodeBlock     NodeType = "CODE_BLOCK"
	TypeStamp         NodeType = "STAMP"
	TypeWidget        NodeType = "WIDGET"
	TypeEmbed         NodeType = "EMBED"
	TypeLinkUnfurl    NodeType = "LINK_UNFURL"
	TypeMedia         NodeType = "MEDIA"
	TypeHighlight     NodeType = "HIGHLIGHT"
	TypeWashiTape     NodeType = "WASHI_TAPE"
	TypeTable         NodeType = "TABLE"
)

// DefaultType is the tag unrecognized input normalizes to.
const DefaultType = TypeFrame

var allTypes = []NodeType{
	TypeFrame, TypeGroup, TypeComponent, TypeComponentSet, TypeInstance, TypeSection, TypeBooleanOperation,
	TypeRectangle, TypeEllipse, TypePolygon, TypeStar, TypeLine, TypeVector,
	TypeText, TypeSlice,
	TypeSticky, TypeShapeWithText, TypeConnector, TypeCodeBlock, TypeStamp, TypeWidget,
	TypeEmbed, TypeLinkUnfurl, TypeMedia, TypeHighlight, TypeWashiTape, TypeTable,
}

var knownTypes = func() map[NodeType]bool {
	m := make(map[NodeType]bool, len(allTypes))
	for _, t := range allTypes {
		m[t] = true
	}
	return m
}()

// AllTypes returns every recognized node type in declaration order.
func AllTypes() []NodeType {
	out := make([]NodeType, len(allTypes))
	copy(out, allTypes)
	return out
}

// Known reports whether t is one of the recognized tags.
func (t NodeType) Known() bool { return knownTypes[t] }

// IsContainer reports whether t is a container-like type.
func (t NodeType) IsContainer() bool {
	switch t {
	case TypeFrame, TypeGroup, TypeComponent, TypeComponentSet, TypeInstance, TypeSection, TypeBooleanOperation:
		return true
	}
	return false
}

// IsFrameLike reports whether t behaves like a frame: it may carry
// auto-layout, corners and frame extras.
func (t NodeType) IsFrameLike() bool {
	switch t {
	case TypeFrame, TypeComponent, TypeComponentSet, TypeInstance:
		return true
	}
	return false
}

// IsShape reports whether t is a shape-like type.
func (t NodeType) IsShape() bool {
	switch t {
	case TypeRectangle, TypeEllipse, TypePolygon, TypeStar, TypeLine, TypeVector:
		return true
	}
	return false
}

// IsText reports whether t is the text type.
func (t NodeType) IsText() bool { return t == TypeText }

func (t NodeType) String() string { return string(t) }
