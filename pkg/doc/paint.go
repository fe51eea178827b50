package doc

// =============================================================================
// Colors and Transforms
// =============================================================================

// RGB is an opaque color with channels in [0,1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// RGBA is a color with alpha, channels in [0,1].
type RGBA struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Transform is a 2x3 affine matrix in row-major order:
//
//	[[a, c, tx],
//	 [b, d, ty]]
type Transform [2][3]float64

// IdentityTransform is the identity affine transform.
var IdentityTransform = Transform{{1, 0, 0}, {0, 1, 0}}

// IsIdentityLinear reports whether the linear part (everything but the
// translation column) is the identity.
func (t Transform) IsIdentityLinear() bool {
	return t[0][0] == 1 && t[0][1] == 0 && t[1][0] == 0 && t[1][1] == 1
}

// Vector is a 2D offset.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// =============================================================================
// Fill - Discriminated Paint Union
// =============================================================================

// FillType discriminates [Fill] variants.
type FillType string

// Supported fill variants.
const (
	FillSolid           FillType = "SOLID"
	FillGradientLinear  FillType = "GRADIENT_LINEAR"
	FillGradientRadial  FillType = "GRADIENT_RADIAL"
	FillGradientAngular FillType = "GRADIENT_ANGULAR"
	FillGradientDiamond FillType = "GRADIENT_DIAMOND"
	FillImage           FillType = "IMAGE"
	FillVideo           FillType = "VIDEO"
)

// Fill is a canonical paint. Check Type to know which fields are populated:
//
//	SOLID:       Color
//	GRADIENT_*:  Stops, Transform
//	IMAGE:       Hash, ScaleMode, Transform, Filters
//	VIDEO:       Hash, ScaleMode
//
// Visible, Opacity and BlendMode are shared by all variants.
type Fill struct {
	Type      FillType `json:"type"`
	Visible   *bool    `json:"visible,omitempty"`
	Opacity   *float64 `json:"opacity,omitempty"`
	BlendMode string   `json:"blend_mode,omitempty"`

	Color     *RGB          `json:"color,omitempty"`
	Stops     []ColorStop   `json:"stops,omitempty"`
	Transform *Transform    `json:"transform,omitempty"`
	Hash      string        `json:"hash,omitempty"`
	ScaleMode string        `json:"scale_mode,omitempty"`
	Filters   *ImageFilters `json:"filters,omitempty"`
}

// IsGradient reports whether the fill is one of the gradient variants.
func (f *Fill) IsGradient() bool {
	switch f.Type {
	case FillGradientLinear, FillGradientRadial, FillGradientAngular, FillGradientDiamond:
		return true
	}
	return false
}

// ColorStop is a gradient stop.
type ColorStop struct {
	Position float64 `json:"position"`
	Color    RGBA    `json:"color"`
}

// ImageFilters are the image adjustment values of an IMAGE fill.
type ImageFilters struct {
	Exposure    float64 `json:"exposure,omitempty"`
	Contrast    float64 `json:"contrast,omitempty"`
	Saturation  float64 `json:"saturation,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	Tint        float64 `json:"tint,omitempty"`
	Highlights  float64 `json:"highlights,omitempty"`
	Shadows     float64 `json:"shadows,omitempty"`
}

// =============================================================================
// Effect - Discriminated Effect Union
// =============================================================================

// EffectType discriminates [Effect] variants.
type EffectType string

// Supported effect variants.
const (
	EffectDropShadow     EffectType = "DROP_SHADOW"
	EffectInnerShadow    EffectType = "INNER_SHADOW"
	EffectLayerBlur      EffectType = "LAYER_BLUR"
	EffectBackgroundBlur EffectType = "BACKGROUND_BLUR"
)

// Effect is a canonical effect. Shadows use every field, blurs only Radius.
// ShowBehind is meaningful for drop shadows only.
type Effect struct {
	Type       EffectType `json:"type"`
	Visible    *bool      `json:"visible,omitempty"`
	Radius     float64    `json:"radius"`
	Color      *RGBA      `json:"color,omitempty"`
	Offset     *Vector    `json:"offset,omitempty"`
	Spread     float64    `json:"spread,omitempty"`
	BlendMode  string     `json:"blend_mode,omitempty"`
	ShowBehind bool       `json:"show_behind,omitempty"`
}

// IsShadow reports whether the effect is a drop or inner shadow.
func (e *Effect) IsShadow() bool {
	return e.Type == EffectDropShadow || e.Type == EffectInnerShadow
}

// =============================================================================
// Typography Values
// =============================================================================

// FontName identifies a font by family and style.
type FontName struct {
	Family string `json:"family"`
	Style  string `json:"style"`
}

func (f FontName) String() string { return f.Family + " " + f.Style }

// LineHeight units.
const (
	UnitAuto    = "AUTO"
	UnitPixels  = "PIXELS"
	UnitPercent = "PERCENT"
)

// LineHeight is a line height; Unit AUTO carries no value.
type LineHeight struct {
	Unit  string  `json:"unit"`
	Value float64 `json:"value,omitempty"`
}

// LetterSpacing is a letter spacing in PIXELS or PERCENT.
type LetterSpacing struct {
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
}

// Hyperlink targets a URL or another node.
type Hyperlink struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// =============================================================================
// Frame Extras Values
// =============================================================================

// Guide is a ruler guide on a frame.
type Guide struct {
	Axis   string  `json:"axis"`
	Offset float64 `json:"offset"`
}

// Layout grid patterns.
const (
	GridRows    = "ROWS"
	GridColumns = "COLUMNS"
	GridPixels  = "GRID"
)

// LayoutGrid is a frame layout grid. Row and column grids use Alignment,
// GutterSize, Count, SectionSize and Offset; pixel grids use SectionSize only.
type LayoutGrid struct {
	Pattern     string  `json:"pattern"`
	Visible     *bool   `json:"visible,omitempty"`
	Color       *RGBA   `json:"color,omitempty"`
	SectionSize float64 `json:"section_size,omitempty"`
	Alignment   string  `json:"alignment,omitempty"`
	GutterSize  float64 `json:"gutter_size,omitempty"`
	Count       int     `json:"count,omitempty"`
	Offset      float64 `json:"offset,omitempty"`
}

// =============================================================================
// Shape Values
// =============================================================================

// ArcData describes a partial ellipse or ring.
type ArcData struct {
	StartingAngle float64 `json:"starting_angle"`
	EndingAngle   float64 `json:"ending_angle"`
	InnerRadius   float64 `json:"inner_radius"`
}

// Winding rules recognized for vector paths.
const (
	WindingNonZero = "NONZERO"
	WindingEvenOdd = "EVENODD"
)

// VectorPath is one SVG-style path of a vector node.
type VectorPath struct {
	WindingRule string `json:"winding_rule"`
	Data        string `json:"data"`
}

// VectorNetwork is the vertex/segment/region representation of vector
// geometry.
type VectorNetwork struct {
	Vertices []VectorVertex  `json:"vertices"`
	Segments []VectorSegment `json:"segments"`
	Regions  []VectorRegion  `json:"regions,omitempty"`
}

// VectorVertex is a point in a vector network.
type VectorVertex struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	StrokeCap    string  `json:"stroke_cap,omitempty"`
	StrokeJoin   string  `json:"stroke_join,omitempty"`
	CornerRadius float64 `json:"corner_radius,omitempty"`
}

// VectorSegment connects two vertices by index, with optional tangents.
type VectorSegment struct {
	Start        int     `json:"start"`
	End          int     `json:"end"`
	TangentStart *Vector `json:"tangent_start,omitempty"`
	TangentEnd   *Vector `json:"tangent_end,omitempty"`
}

// VectorRegion is a closed area made of segment loops with its own fills.
type VectorRegion struct {
	WindingRule string  `json:"winding_rule,omitempty"`
	Loops       [][]int `json:"loops"`
	Fills       []Fill  `json:"fills,omitempty"`
}
