package doc

import (
	"math"
	"slices"
)

// =============================================================================
// Default Values - Single Source of Truth
// =============================================================================

// Stroke geometry.
const (
	StrokeAlignInside  = "INSIDE"
	StrokeAlignCenter  = "CENTER"
	StrokeAlignOutside = "OUTSIDE"
	StrokeCapNone      = "NONE"
	StrokeJoinMiter    = "MITER"

	DefaultStrokeWeight     = 1.0
	DefaultStrokeMiterLimit = 4.0
)

// Auto-layout container values.
const (
	LayoutModeNone       = "NONE"
	LayoutModeHorizontal = "HORIZONTAL"
	LayoutModeVertical   = "VERTICAL"

	AxisSizingFixed  = "FIXED"
	AxisSizingAuto   = "AUTO"
	AxisAlignMin     = "MIN"
	WrapNone         = "NO_WRAP"
	WrapWrap         = "WRAP"
	AlignContentAuto = "AUTO"
)

// Auto-layout child values.
const (
	LayoutAlignInherit = "INHERIT"
	LayoutAlignStretch = "STRETCH"

	PositioningAuto     = "AUTO"
	PositioningAbsolute = "ABSOLUTE"

	LayoutSizingFixed = "FIXED"
	LayoutSizingHug   = "HUG"
	LayoutSizingFill  = "FILL"
)

// Constraint, blend and paint values.
const (
	ConstraintMin = "MIN"

	BlendPassThrough = "PASS_THROUGH"
	BlendNormal      = "NORMAL"

	DefaultOpacity = 1.0
)

// Typography values.
const (
	DefaultFontSize = 12.0

	TextAlignLeft      = "LEFT"
	TextAlignTop       = "TOP"
	TextCaseOriginal   = "ORIGINAL"
	TextDecorationNone = "NONE"
	LeadingTrimNone    = "NONE"
	TruncationDisabled = "DISABLED"

	AutoResizeNone           = "NONE"
	AutoResizeHeight         = "HEIGHT"
	AutoResizeWidthAndHeight = "WIDTH_AND_HEIGHT"
	AutoResizeTruncate       = "TRUNCATE"
)

// Shape values.
const (
	DefaultPolygonPoints = 3
	DefaultStarPoints    = 5
	DefaultInnerRadius   = 0.382
	FullArc              = 2 * math.Pi

	BooleanUnion     = "UNION"
	BooleanSubtract  = "SUBTRACT"
	BooleanIntersect = "INTERSECT"
	BooleanExclude   = "EXCLUDE"
)

// Shadow and layout grid values.
var (
	DefaultShadowColor  = RGBA{A: 0.25}
	DefaultShadowOffset = Vector{Y: 4}
	DefaultGridColor    = RGBA{R: 1, A: 0.1}
)

// DefaultGridAlignment is the alignment of row and column grids.
const DefaultGridAlignment = "STRETCH"

// Size used by the creator when a node declares no dimensions.
const (
	DefaultSize = 100.0
	MinSize     = 1.0
)

const arcEpsilon = 1e-4

// =============================================================================
// Helpers
// =============================================================================

// Or returns v unless it is the zero value, in which case it returns def.
func Or[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

// Deref returns *p, or def when p is nil.
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }

// Round4 rounds v to four decimal places.
func Round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// DefaultPointCount returns the point count a polygon or star gets when the
// field is absent. Other types return 0.
func DefaultPointCount(t NodeType) int {
	switch t {
	case TypePolygon:
		return DefaultPolygonPoints
	case TypeStar:
		return DefaultStarPoints
	}
	return 0
}

// IsFullArc reports whether a describes a plain, unbroken ellipse.
func IsFullArc(a ArcData) bool {
	return math.Abs(a.StartingAngle) < arcEpsilon &&
		math.Abs(a.EndingAngle-FullArc) < arcEpsilon &&
		a.InnerRadius == 0
}

// =============================================================================
// Elide - Default Table
// =============================================================================

// Elide returns a copy of n, recursively, with every field that equals its
// documented default removed. Property groups that end up empty become nil.
// The input is not modified and Elide(Elide(n)) equals Elide(n).
func Elide(n Node) Node {
	out := n
	if out.RelativeTransform != nil && out.RelativeTransform.IsIdentityLinear() {
		out.RelativeTransform = nil
	}
	if out.Visible != nil && *out.Visible {
		out.Visible = nil
	}
	out.Paint = elidePaint(n.Paint)
	out.Corners = elideCorners(n.Corners)
	out.Typography = elideTypography(n.Typography)
	out.AutoLayout = elideAutoLayout(n.AutoLayout)
	out.LayoutChild = elideLayoutChild(n.LayoutChild)
	out.Constraints = elideConstraints(n.Constraints)
	out.Visual = elideVisual(n.Visual)
	out.FrameExtras = elideFrameExtras(n.FrameExtras)
	out.ShapeExtras = elideShapeExtras(n.Type, n.ShapeExtras)

	out.Children = nil
	for _, c := range n.Children {
		out.Children = append(out.Children, Elide(c))
	}
	return out
}

// ElideFill removes default-equal shared fields from a fill.
func ElideFill(f Fill) Fill {
	if f.Visible != nil && *f.Visible {
		f.Visible = nil
	}
	if f.Opacity != nil && *f.Opacity == DefaultOpacity {
		f.Opacity = nil
	}
	if f.BlendMode == BlendNormal {
		f.BlendMode = ""
	}
	f.Stops = slices.Clone(f.Stops)
	return f
}

// ElideEffect removes default-equal fields from an effect.
func ElideEffect(e Effect) Effect {
	if e.Visible != nil && *e.Visible {
		e.Visible = nil
	}
	if e.BlendMode == BlendNormal {
		e.BlendMode = ""
	}
	if e.Color != nil && *e.Color == DefaultShadowColor {
		e.Color = nil
	}
	if e.Offset != nil && *e.Offset == DefaultShadowOffset {
		e.Offset = nil
	}
	return e
}

// ElideLayoutGrid removes grid fields equal to their defaults.
func ElideLayoutGrid(g LayoutGrid) LayoutGrid {
	if g.Visible != nil && *g.Visible {
		g.Visible = nil
	}
	if g.Color != nil && *g.Color == DefaultGridColor {
		g.Color = nil
	}
	if g.Alignment == DefaultGridAlignment {
		g.Alignment = ""
	}
	return g
}

func elideFills(fills []Fill) []Fill {
	if len(fills) == 0 {
		return nil
	}
	out := make([]Fill, len(fills))
	for i, f := range fills {
		out[i] = ElideFill(f)
	}
	return out
}

func elidePaint(p *Paint) *Paint {
	if p == nil {
		return nil
	}
	out := *p
	out.Fills = elideFills(p.Fills)
	out.Strokes = elideFills(p.Strokes)
	if out.StrokeWeight != nil && *out.StrokeWeight == DefaultStrokeWeight {
		out.StrokeWeight = nil
	}
	if out.StrokeAlign == StrokeAlignInside {
		out.StrokeAlign = ""
	}
	if out.StrokeCap == StrokeCapNone {
		out.StrokeCap = ""
	}
	if out.StrokeJoin == StrokeJoinMiter {
		out.StrokeJoin = ""
	}
	if out.StrokeMiterLimit != nil && *out.StrokeMiterLimit == DefaultStrokeMiterLimit {
		out.StrokeMiterLimit = nil
	}
	if len(out.DashPattern) == 0 {
		out.DashPattern = nil
	} else {
		out.DashPattern = slices.Clone(out.DashPattern)
	}
	if s := out.StrokeSides; s != nil {
		w := Deref(out.StrokeWeight, DefaultStrokeWeight)
		if s.Top == w && s.Right == w && s.Bottom == w && s.Left == w {
			out.StrokeSides = nil
		}
	}
	if out.Fills == nil && out.Strokes == nil && out.StrokeWeight == nil &&
		out.StrokeAlign == "" && out.StrokeCap == "" && out.StrokeJoin == "" &&
		out.StrokeMiterLimit == nil && out.DashPattern == nil && out.StrokeSides == nil {
		return nil
	}
	return &out
}

func elideCorners(c *Corners) *Corners {
	if c == nil {
		return nil
	}
	out := *c
	if out == (Corners{}) {
		return nil
	}
	return &out
}

func elideTypography(t *Typography) *Typography {
	if t == nil {
		return nil
	}
	out := *t
	if out.FontSize == DefaultFontSize {
		out.FontSize = 0
	}
	if out.TextAlignHorizontal == TextAlignLeft {
		out.TextAlignHorizontal = ""
	}
	if out.TextAlignVertical == TextAlignTop {
		out.TextAlignVertical = ""
	}
	if out.LineHeight != nil && out.LineHeight.Unit == UnitAuto {
		out.LineHeight = nil
	}
	if out.LetterSpacing != nil && out.LetterSpacing.Value == 0 {
		out.LetterSpacing = nil
	}
	if out.TextCase == TextCaseOriginal {
		out.TextCase = ""
	}
	if out.TextDecoration == TextDecorationNone {
		out.TextDecoration = ""
	}
	if out.LeadingTrim == LeadingTrimNone {
		out.LeadingTrim = ""
	}
	if out.TextTruncation == TruncationDisabled {
		out.TextTruncation = ""
	}
	if out == (Typography{}) {
		return nil
	}
	return &out
}

func elideAutoLayout(a *AutoLayout) *AutoLayout {
	if !a.IsAutoLayout() {
		return nil
	}
	out := *a
	if out.PrimaryAxisSizingMode == AxisSizingFixed {
		out.PrimaryAxisSizingMode = ""
	}
	if out.CounterAxisSizingMode == AxisSizingFixed {
		out.CounterAxisSizingMode = ""
	}
	if out.PrimaryAxisAlignItems == AxisAlignMin {
		out.PrimaryAxisAlignItems = ""
	}
	if out.CounterAxisAlignItems == AxisAlignMin {
		out.CounterAxisAlignItems = ""
	}
	if out.LayoutWrap == WrapNone {
		out.LayoutWrap = ""
	}
	if out.CounterAxisAlignContent == AlignContentAuto {
		out.CounterAxisAlignContent = ""
	}
	return &out
}

func elideLayoutChild(l *LayoutChild) *LayoutChild {
	if l == nil {
		return nil
	}
	out := *l
	if out.LayoutAlign == LayoutAlignInherit {
		out.LayoutAlign = ""
	}
	if out.LayoutPositioning == PositioningAuto {
		out.LayoutPositioning = ""
	}
	if out.LayoutSizingHorizontal == LayoutSizingFixed {
		out.LayoutSizingHorizontal = ""
	}
	if out.LayoutSizingVertical == LayoutSizingFixed {
		out.LayoutSizingVertical = ""
	}
	if out == (LayoutChild{}) {
		return nil
	}
	return &out
}

func elideConstraints(c *Constraints) *Constraints {
	if c == nil {
		return nil
	}
	out := *c
	if Or(out.Horizontal, ConstraintMin) == ConstraintMin && Or(out.Vertical, ConstraintMin) == ConstraintMin {
		out.Horizontal, out.Vertical = "", ""
	}
	if out == (Constraints{}) {
		return nil
	}
	return &out
}

func elideVisual(v *Visual) *Visual {
	if v == nil {
		return nil
	}
	out := *v
	if out.Opacity != nil && *out.Opacity == DefaultOpacity {
		out.Opacity = nil
	}
	if out.BlendMode == BlendPassThrough || out.BlendMode == BlendNormal {
		out.BlendMode = ""
	}
	out.Effects = nil
	for _, e := range v.Effects {
		out.Effects = append(out.Effects, ElideEffect(e))
	}
	if out.Opacity == nil && out.BlendMode == "" && !out.IsMask &&
		out.Effects == nil && out.EffectStyleID == "" {
		return nil
	}
	return &out
}

func elideFrameExtras(f *FrameExtras) *FrameExtras {
	if f == nil {
		return nil
	}
	out := *f
	out.Guides = nil
	if len(f.Guides) > 0 {
		out.Guides = slices.Clone(f.Guides)
	}
	out.LayoutGrids = nil
	for _, g := range f.LayoutGrids {
		out.LayoutGrids = append(out.LayoutGrids, ElideLayoutGrid(g))
	}
	if out.Guides == nil && out.LayoutGrids == nil && out.GridStyleID == "" {
		return nil
	}
	return &out
}

func elideShapeExtras(t NodeType, s *ShapeExtras) *ShapeExtras {
	if s == nil {
		return nil
	}
	out := *s
	if out.ArcData != nil && IsFullArc(*out.ArcData) {
		out.ArcData = nil
	}
	if out.PointCount != 0 && out.PointCount == DefaultPointCount(t) {
		out.PointCount = 0
	}
	if out.InnerRadius != nil && *out.InnerRadius == DefaultInnerRadius {
		out.InnerRadius = nil
	}
	if out.BooleanOperation == BooleanUnion {
		out.BooleanOperation = ""
	}
	if len(out.VectorPaths) == 0 {
		out.VectorPaths = nil
	}
	if out.VectorNetwork != nil && len(out.VectorNetwork.Vertices) == 0 {
		out.VectorNetwork = nil
	}
	if out.VectorNetwork != nil && len(out.VectorNetwork.Regions) > 0 {
		n := *out.VectorNetwork
		n.Regions = make([]VectorRegion, len(n.Regions))
		for i, r := range out.VectorNetwork.Regions {
			if r.WindingRule == WindingNonZero {
				r.WindingRule = ""
			}
			n.Regions[i] = r
		}
		out.VectorNetwork = &n
	}
	if out.ArcData == nil && out.PointCount == 0 && out.InnerRadius == nil &&
		out.BooleanOperation == "" && out.VectorPaths == nil && out.VectorNetwork == nil {
		return nil
	}
	return &out
}
