package host

// =============================================================================
// Host Representations
// =============================================================================

// RGB is a host color. Hosts may report channels outside [0,1].
type RGB struct{ R, G, B float64 }

// RGBA is a host color with alpha.
type RGBA struct{ R, G, B, A float64 }

// Transform is a 2x3 affine matrix, row-major.
type Transform [2][3]float64

// Identity is the identity transform.
var Identity = Transform{{1, 0, 0}, {0, 1, 0}}

// Vector is a 2D offset.
type Vector struct{ X, Y float64 }

// Host paint kinds. Hosts may report kinds outside this set.
const (
	PaintSolid           = "SOLID"
	PaintGradientLinear  = "GRADIENT_LINEAR"
	PaintGradientRadial  = "GRADIENT_RADIAL"
	PaintGradientAngular = "GRADIENT_ANGULAR"
	PaintGradientDiamond = "GRADIENT_DIAMOND"
	PaintImage           = "IMAGE"
	PaintVideo           = "VIDEO"
)

// Paint is a host fill or stroke paint.
type Paint struct {
	Type      string
	Visible   bool
	Opacity   float64
	BlendMode string

	Color             RGB
	GradientStops     []ColorStop
	GradientTransform Transform
	ImageHash         string
	VideoHash         string
	ScaleMode         string
	ImageTransform    *Transform
	Filters           *ImageFilters
}

// ColorStop is a host gradient stop.
type ColorStop struct {
	Position float64
	Color    RGBA
}

// ImageFilters are host image adjustments.
type ImageFilters struct {
	Exposure, Contrast, Saturation, Temperature, Tint, Highlights, Shadows float64
}

// Host effect kinds.
const (
	EffectDropShadow     = "DROP_SHADOW"
	EffectInnerShadow    = "INNER_SHADOW"
	EffectLayerBlur      = "LAYER_BLUR"
	EffectBackgroundBlur = "BACKGROUND_BLUR"
)

// Effect is a host effect.
type Effect struct {
	Type                 string
	Visible              bool
	Radius               float64
	Color                RGBA
	Offset               Vector
	Spread               float64
	BlendMode            string
	ShowShadowBehindNode bool
}

// StrokeSides are per-side stroke weights.
type StrokeSides struct{ Top, Right, Bottom, Left float64 }

// CornerRadii are per-corner radii.
type CornerRadii struct{ TopLeft, TopRight, BottomLeft, BottomRight float64 }

// Constraints are resize constraints.
type Constraints struct{ Horizontal, Vertical string }

// SizeConstraints are min/max sizes; nil means unset.
type SizeConstraints struct {
	MinWidth, MaxWidth, MinHeight, MaxHeight *float64
}

// AutoLayout is a container's auto-layout configuration.
type AutoLayout struct {
	LayoutMode              string
	PrimaryAxisSizingMode   string
	CounterAxisSizingMode   string
	PrimaryAxisAlignItems   string
	CounterAxisAlignItems   string
	ItemSpacing             float64
	CounterAxisSpacing      float64
	PaddingLeft             float64
	PaddingRight            float64
	PaddingTop              float64
	PaddingBottom           float64
	LayoutWrap              string
	CounterAxisAlignContent string
	ItemReverseZIndex       bool
	StrokesIncludedInLayout bool
}

// LayoutChild is a node's participation in its parent's auto-layout.
type LayoutChild struct {
	LayoutAlign            string
	LayoutGrow             float64
	LayoutPositioning      string
	LayoutSizingHorizontal string
	LayoutSizingVertical   string
}

// Guide is a host ruler guide.
type Guide struct {
	Axis   string
	Offset float64
}

// LayoutGrid is a host layout grid.
type LayoutGrid struct {
	Pattern     string
	Visible     bool
	Color       RGBA
	SectionSize float64
	Alignment   string
	GutterSize  float64
	Count       int
	Offset      float64
}

// FontName is a (family, style) pair.
type FontName struct{ Family, Style string }

func (f FontName) String() string { return f.Family + " " + f.Style }

// LineHeight is a host line height; AUTO carries no value.
type LineHeight struct {
	Unit  string
	Value float64
}

// LetterSpacing is a host letter spacing.
type LetterSpacing struct {
	Unit  string
	Value float64
}

// Hyperlink is a host hyperlink target.
type Hyperlink struct{ Type, Value string }

// TextStyle is the typography of a text node. On read, heterogeneous runs
// report Mixed. On write, absent values and empty strings leave the current
// setting unchanged.
type TextStyle struct {
	FontSize            Value[float64]
	TextAlignHorizontal string
	TextAlignVertical   string
	LineHeight          Value[LineHeight]
	LetterSpacing       Value[LetterSpacing]
	TextCase            Value[string]
	TextDecoration      Value[string]
	TextAutoResize      string
	ParagraphIndent     float64
	ParagraphSpacing    float64
	ListSpacing         float64
	HangingPunctuation  bool
	HangingList         bool
	LeadingTrim         string
	TextTruncation      string
	MaxLines            *int
	Hyperlink           Value[Hyperlink]
	TextStyleID         string
}

// ArcData is a host ellipse arc.
type ArcData struct {
	StartingAngle, EndingAngle, InnerRadius float64
}

// VectorPath is a host vector path.
type VectorPath struct {
	WindingRule string
	Data        string
}

// VectorNetwork is a host vector network.
type VectorNetwork struct {
	Vertices []VectorVertex
	Segments []VectorSegment
	Regions  []VectorRegion
}

// VectorVertex is a host network vertex.
type VectorVertex struct {
	X, Y         float64
	StrokeCap    string
	StrokeJoin   string
	CornerRadius float64
}

// VectorSegment is a host network segment.
type VectorSegment struct {
	Start, End               int
	TangentStart, TangentEnd Vector
}

// VectorRegion is a host network region.
type VectorRegion struct {
	WindingRule string
	Loops       [][]int
	Fills       []Paint
}
