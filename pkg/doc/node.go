package doc

// =============================================================================
// Node - Canonical Tree Unit
// =============================================================================

// Node is one element of the canonical tree.
//
// Name, Type, X and Y are always present. Every other field is optional and
// equals its documented default when absent (see [Elide]). The property groups
// are embedded pointers: encoding/json flattens them onto the node object and a
// nil group is encoded as nothing at all.
type Node struct {
	Name string   `json:"name"`
	Type NodeType `json:"type"`
	X    float64  `json:"x"`
	Y    float64  `json:"y"`

	Width             *float64   `json:"width,omitempty"`
	Height            *float64   `json:"height,omitempty"`
	Rotation          float64    `json:"rotation,omitempty"`
	RelativeTransform *Transform `json:"relative_transform,omitempty"`
	Visible           *bool      `json:"visible,omitempty"`
	Locked            bool       `json:"locked,omitempty"`

	*Paint
	*Corners
	*Typography
	*AutoLayout
	*LayoutChild
	*Constraints
	*Visual
	*FrameExtras
	*ShapeExtras

	Children []Node `json:"children,omitempty"`
}

// HasChildren reports whether the node has at least one child.
func (n *Node) HasChildren() bool { return len(n.Children) > 0 }

// IsVisible returns the effective visibility (absent means visible).
func (n *Node) IsVisible() bool { return n.Visible == nil || *n.Visible }

// Size returns the declared dimensions; hasW and hasH report which were
// present.
func (n *Node) Size() (w, h float64, hasW, hasH bool) {
	if n.Width != nil {
		w, hasW = *n.Width, true
	}
	if n.Height != nil {
		h, hasH = *n.Height, true
	}
	return w, h, hasW, hasH
}

// Walk calls fn for n and every descendant in depth-first paint order.
// The path is the slash-joined list of names from n down to the visited node.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(path string, n *Node) bool) {
	n.walk(n.Name, fn)
}

func (n *Node) walk(path string, fn func(string, *Node) bool) {
	if !fn(path, n) {
		return
	}
	for i := range n.Children {
		c := &n.Children[i]
		c.walk(path+"/"+c.Name, fn)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	total := 0
	n.Walk(func(string, *Node) bool { total++; return true })
	return total
}

// =============================================================================
// Property Groups
// =============================================================================

// Paint holds fills, strokes and stroke geometry.
type Paint struct {
	Fills            []Fill       `json:"fills,omitempty"`
	Strokes          []Fill       `json:"strokes,omitempty"`
	StrokeWeight     *float64     `json:"stroke_weight,omitempty"`
	StrokeAlign      string       `json:"stroke_align,omitempty"`
	StrokeCap        string       `json:"stroke_cap,omitempty"`
	StrokeJoin       string       `json:"stroke_join,omitempty"`
	StrokeMiterLimit *float64     `json:"stroke_miter_limit,omitempty"`
	DashPattern      []float64    `json:"dash_pattern,omitempty"`
	StrokeSides      *StrokeSides `json:"individual_strokes,omitempty"`
}

// StrokeSides are per-side stroke weights. They are only recorded when at
// least one side differs from the uniform stroke weight.
type StrokeSides struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Corners holds a uniform or per-corner radius and corner smoothing.
// Any per-corner radius takes precedence over CornerRadius on creation.
type Corners struct {
	CornerRadius      float64  `json:"corner_radius,omitempty"`
	TopLeftRadius     *float64 `json:"top_left_radius,omitempty"`
	TopRightRadius    *float64 `json:"top_right_radius,omitempty"`
	BottomLeftRadius  *float64 `json:"bottom_left_radius,omitempty"`
	BottomRightRadius *float64 `json:"bottom_right_radius,omitempty"`
	CornerSmoothing   float64  `json:"corner_smoothing,omitempty"`
}

// HasPerCorner reports whether any of the four corner radii is set.
func (c *Corners) HasPerCorner() bool {
	return c.TopLeftRadius != nil || c.TopRightRadius != nil ||
		c.BottomLeftRadius != nil || c.BottomRightRadius != nil
}

// Typography holds text content and styling. Only meaningful on TEXT nodes.
type Typography struct {
	Characters          string         `json:"characters,omitempty"`
	FontName            *FontName      `json:"font_name,omitempty"`
	FontSize            float64        `json:"font_size,omitempty"`
	TextAlignHorizontal string         `json:"text_align_horizontal,omitempty"`
	TextAlignVertical   string         `json:"text_align_vertical,omitempty"`
	LineHeight          *LineHeight    `json:"line_height,omitempty"`
	LetterSpacing       *LetterSpacing `json:"letter_spacing,omitempty"`
	TextCase            string         `json:"text_case,omitempty"`
	TextDecoration      string         `json:"text_decoration,omitempty"`
	TextAutoResize      string         `json:"text_auto_resize,omitempty"`
	ParagraphIndent     float64        `json:"paragraph_indent,omitempty"`
	ParagraphSpacing    float64        `json:"paragraph_spacing,omitempty"`
	ListSpacing         float64        `json:"list_spacing,omitempty"`
	HangingPunctuation  bool           `json:"hanging_punctuation,omitempty"`
	HangingList         bool           `json:"hanging_list,omitempty"`
	LeadingTrim         string         `json:"leading_trim,omitempty"`
	TextTruncation      string         `json:"text_truncation,omitempty"`
	MaxLines            *int           `json:"max_lines,omitempty"`
	Hyperlink           *Hyperlink     `json:"hyperlink,omitempty"`
	TextStyleID         string         `json:"text_style_id,omitempty"`
}

// AutoLayout is the auto-layout configuration of a container. The group is
// absent when the layout mode is NONE.
type AutoLayout struct {
	LayoutMode              string  `json:"layout_mode,omitempty"`
	PrimaryAxisSizingMode   string  `json:"primary_axis_sizing_mode,omitempty"`
	CounterAxisSizingMode   string  `json:"counter_axis_sizing_mode,omitempty"`
	PrimaryAxisAlignItems   string  `json:"primary_axis_align_items,omitempty"`
	CounterAxisAlignItems   string  `json:"counter_axis_align_items,omitempty"`
	ItemSpacing             float64 `json:"item_spacing,omitempty"`
	CounterAxisSpacing      float64 `json:"counter_axis_spacing,omitempty"`
	PaddingLeft             float64 `json:"padding_left,omitempty"`
	PaddingRight            float64 `json:"padding_right,omitempty"`
	PaddingTop              float64 `json:"padding_top,omitempty"`
	PaddingBottom           float64 `json:"padding_bottom,omitempty"`
	LayoutWrap              string  `json:"layout_wrap,omitempty"`
	CounterAxisAlignContent string  `json:"counter_axis_align_content,omitempty"`
	ItemReverseZIndex       bool    `json:"item_reverse_z_index,omitempty"`
	StrokesIncludedInLayout bool    `json:"strokes_included_in_layout,omitempty"`
}

// IsAutoLayout reports whether a is an active auto-layout configuration.
func (a *AutoLayout) IsAutoLayout() bool {
	return a != nil && a.LayoutMode != "" && a.LayoutMode != LayoutModeNone
}

// LayoutChild is a node's participation inside an auto-layout parent. It is
// applied only after the node has been appended.
type LayoutChild struct {
	LayoutAlign            string  `json:"layout_align,omitempty"`
	LayoutGrow             float64 `json:"layout_grow,omitempty"`
	LayoutPositioning      string  `json:"layout_positioning,omitempty"`
	LayoutSizingHorizontal string  `json:"layout_sizing_horizontal,omitempty"`
	LayoutSizingVertical   string  `json:"layout_sizing_vertical,omitempty"`
}

// Constraints holds resize constraints and min/max sizes.
type Constraints struct {
	Horizontal string   `json:"constraint_horizontal,omitempty"`
	Vertical   string   `json:"constraint_vertical,omitempty"`
	MinWidth   *float64 `json:"min_width,omitempty"`
	MaxWidth   *float64 `json:"max_width,omitempty"`
	MinHeight  *float64 `json:"min_height,omitempty"`
	MaxHeight  *float64 `json:"max_height,omitempty"`
}

// HasSizeConstraints reports whether any min/max size is set.
func (c *Constraints) HasSizeConstraints() bool {
	return c.MinWidth != nil || c.MaxWidth != nil || c.MinHeight != nil || c.MaxHeight != nil
}

// Visual holds opacity, blending, masking and effects.
type Visual struct {
	Opacity       *float64 `json:"opacity,omitempty"`
	BlendMode     string   `json:"blend_mode,omitempty"`
	IsMask        bool     `json:"is_mask,omitempty"`
	Effects       []Effect `json:"effects,omitempty"`
	EffectStyleID string   `json:"effect_style_id,omitempty"`
}

// FrameExtras holds frame guides and layout grids.
type FrameExtras struct {
	Guides      []Guide      `json:"guides,omitempty"`
	LayoutGrids []LayoutGrid `json:"layout_grids,omitempty"`
	GridStyleID string       `json:"grid_style_id,omitempty"`
}

// ShapeExtras holds type-specific geometry: arcs for ellipses, points for
// polygons and stars, the boolean operator and vector data.
type ShapeExtras struct {
	ArcData          *ArcData       `json:"arc_data,omitempty"`
	PointCount       int            `json:"point_count,omitempty"`
	InnerRadius      *float64       `json:"inner_radius,omitempty"`
	BooleanOperation string         `json:"boolean_operation,omitempty"`
	VectorPaths      []VectorPath   `json:"vector_paths,omitempty"`
	VectorNetwork    *VectorNetwork `json:"vector_network,omitempty"`
}
