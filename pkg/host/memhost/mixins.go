package memhost

import (
	"fmt"
	"slices"

	"github.com/matzehuels/scenedoc/pkg/doc"
	"github.com/matzehuels/scenedoc/pkg/host"
)

// Each mixin exposes one capability interface over the shared node state.
// Getters take the read lock, setters the write lock.

// =============================================================================
// Geometry
// =============================================================================

type geometryMixin struct{ n *node }

func (m geometryMixin) Fills() host.Value[[]host.Paint] {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	if m.n.mixed[PropFills] {
		return host.Mixed[[]host.Paint]()
	}
	return host.Some(slices.Clone(m.n.fills))
}

func (m geometryMixin) SetFills(fills []host.Paint) error {
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	for _, p := range fills {
		if err := validatePaint(p); err != nil {
			return err
		}
	}
	m.n.fills = slices.Clone(fills)
	delete(m.n.mixed, PropFills)
	return nil
}

func (m geometryMixin) Strokes() []host.Paint {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	return slices.Clone(m.n.strokes)
}

func (m geometryMixin) SetStrokes(strokes []host.Paint) error {
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	for _, p := range strokes {
		if err := validatePaint(p); err != nil {
			return err
		}
	}
	m.n.strokes = slices.Clone(strokes)
	return nil
}

func (m geometryMixin) StrokeWeight() host.Value[float64] {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	if m.n.mixed[PropStrokeWeight] || m.n.sidesDiffer() {
		return host.Mixed[float64]()
	}
	return host.Some(m.n.strokeWeight)
}

func (m geometryMixin) SetStrokeWeight(w float64) error {
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	if w < 0 {
		return fmt.Errorf("stroke weight %g must not be negative", w)
	}
	m.n.strokeWeight = w
	m.n.sides = nil
	delete(m.n.mixed, PropStrokeWeight)
	return nil
}

func (m geometryMixin) StrokeAlign() string {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	return m.n.strokeAlign
}

func (m geometryMixin) SetStrokeAlign(a string) error {
	return m.n.setEnum(&m.n.strokeAlign, a, "stroke align", doc.StrokeAlignInside, doc.StrokeAlignCenter, doc.StrokeAlignOutside)
}

func (m geometryMixin) StrokeCap() host.Value[string] {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	if m.n.mixed[PropStrokeCap] {
		return host.Mixed[string]()
	}
	return host.Some(m.n.strokeCap)
}

func (m geometryMixin) SetStrokeCap(c string) error {
	return m.n.setEnum(&m.n.strokeCap, c, "stroke cap",
		doc.StrokeCapNone, "ROUND", "SQUARE", "ARROW_LINES", "ARROW_EQUILATERAL")
}

func (m geometryMixin) StrokeJoin() host.Value[string] {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	if m.n.mixed[PropStrokeJoin] {
		return host.Mixed[string]()
	}
	return host.Some(m.n.strokeJoin)
}

func (m geometryMixin) SetStrokeJoin(j string) error {
	return m.n.setEnum(&m.n.strokeJoin, j, "stroke join", doc.StrokeJoinMiter, "BEVEL", "ROUND")
}

func (m geometryMixin) StrokeMiterLimit() float64 {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	return m.n.miterLimit
}

func (m geometryMixin) SetStrokeMiterLimit(l float64) error {
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	if l < 1 {
		return fmt.Errorf("miter limit %g must be at least 1", l)
	}
	m.n.miterLimit = l
	return nil
}

func (m geometryMixin) DashPattern() []float64 {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	return slices.Clone(m.n.dash)
}

func (m geometryMixin) SetDashPattern(p []float64) error {
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	m.n.dash = slices.Clone(p)
	return nil
}

func validatePaint(p host.Paint) error {
	switch p.Type {
	case host.PaintSolid, host.PaintGradientLinear, host.PaintGradientRadial,
		host.PaintGradientAngular, host.PaintGradientDiamond, host.PaintImage, host.PaintVideo:
	default:
		return fmt.Errorf("unknown paint type %q", p.Type)
	}
	c := p.Color
	if c.R < 0 || c.R > 1 || c.G < 0 || c.G > 1 || c.B < 0 || c.B > 1 {
		return fmt.Errorf("color channel out of range: %+v", c)
	}
	for _, s := range p.GradientStops {
		if s.Color.R < 0 || s.Color.R > 1 || s.Color.G < 0 || s.Color.G > 1 ||
			s.Color.B < 0 || s.Color.B > 1 || s.Color.A < 0 || s.Color.A > 1 {
			return fmt.Errorf("gradient stop color out of range: %+v", s.Color)
		}
	}
	if p.Opacity < 0 || p.Opacity > 1 {
		return fmt.Errorf("paint opacity %g out of range", p.Opacity)
	}
	return nil
}

// =============================================================================
// Individual Strokes
// =============================================================================

type sidesMixin struct{ n *node }

func (m sidesMixin) StrokeSides() host.StrokeSides {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	if m.n.sides == nil {
		w := m.n.strokeWeight
		return host.StrokeSides{Top: w, Right: w, Bottom: w, Left: w}
	}
	return *m.n.sides
}

func (m sidesMixin) SetStrokeSides(s host.StrokeSides) error {
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	if s.Top < 0 || s.Right < 0 || s.Bottom < 0 || s.Left < 0 {
		return fmt.Errorf("stroke sides must not be negative: %+v", s)
	}
	m.n.sides = &s
	return nil
}

func (n *node) sidesDiffer() bool {
	if n.sides == nil {
		return false
	}
	s := *n.sides
	return s.Top != s.Right || s.Top != s.Bottom || s.Top != s.Left
}

// =============================================================================
// Blend
// =============================================================================

type blendMixin struct{ n *node }

func (m blendMixin) Opacity() float64 {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	return m.n.opacity
}

func (m blendMixin) SetOpacity(o float64) error {
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	if o < 0 || o > 1 {
		return fmt.Errorf("opacity %g out of range", o)
	}
	m.n.opacity = o
	return nil
}

func (m blendMixin) BlendMode() string {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	return m.n.blendMode
}

func (m blendMixin) SetBlendMode(mode string) error {
	if mode == "" {
		return fmt.Errorf("blend mode must not be empty")
	}
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	m.n.blendMode = mode
	return nil
}

func (m blendMixin) IsMask() bool {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	return m.n.isMask
}

func (m blendMixin) SetIsMask(v bool) error {
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	m.n.isMask = v
	return nil
}

func (m blendMixin) Effects() []host.Effect {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	return slices.Clone(m.n.effects)
}

func (m blendMixin) SetEffects(e []host.Effect) error {
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	for _, fx := range e {
		if fx.Radius < 0 {
			return fmt.Errorf("effect radius %g must not be negative", fx.Radius)
		}
	}
	m.n.effects = slices.Clone(e)
	return nil
}

func (m blendMixin) EffectStyleID() string {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	return m.n.effectStyleID
}

// SetEffectStyleID links the node to a shared effect style.
func (m blendMixin) SetEffectStyleID(id string) {
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	m.n.effectStyleID = id
}

// =============================================================================
// Corners
// =============================================================================

type cornerMixin struct{ n *node }

func (m cornerMixin) CornerRadius() host.Value[float64] {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	r := m.n.radii
	if r.TopLeft != r.TopRight || r.TopLeft != r.BottomLeft || r.TopLeft != r.BottomRight {
		return host.Mixed[float64]()
	}
	return host.Some(r.TopLeft)
}

func (m cornerMixin) SetCornerRadius(r float64) error {
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	if r < 0 {
		return fmt.Errorf("corner radius %g must not be negative", r)
	}
	m.n.radii = host.CornerRadii{TopLeft: r, TopRight: r, BottomLeft: r, BottomRight: r}
	return nil
}

func (m cornerMixin) CornerSmoothing() float64 {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	return m.n.smoothing
}

func (m cornerMixin) SetCornerSmoothing(s float64) error {
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	if s < 0 || s > 1 {
		return fmt.Errorf("corner smoothing %g out of range", s)
	}
	m.n.smoothing = s
	return nil
}

type rectCornerMixin struct {
	cornerMixin
}

func (m rectCornerMixin) CornerRadii() host.CornerRadii {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	return m.n.radii
}

func (m rectCornerMixin) SetCornerRadii(r host.CornerRadii) error {
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	if r.TopLeft < 0 || r.TopRight < 0 || r.BottomLeft < 0 || r.BottomRight < 0 {
		return fmt.Errorf("corner radii must not be negative: %+v", r)
	}
	m.n.radii = r
	return nil
}

// =============================================================================
// Constraints
// =============================================================================

type constraintMixin struct{ n *node }

var validConstraints = map[string]bool{
	"MIN": true, "CENTER": true, "MAX": true, "STRETCH": true, "SCALE": true,
}

func (m constraintMixin) Constraints() host.Constraints {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	return m.n.constraints
}

func (m constraintMixin) SetConstraints(c host.Constraints) error {
	if !validConstraints[c.Horizontal] || !validConstraints[c.Vertical] {
		return fmt.Errorf("invalid constraints %+v", c)
	}
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	m.n.constraints = c
	return nil
}

type sizeConstraintMixin struct{ n *node }

func (m sizeConstraintMixin) SizeConstraints() host.SizeConstraints {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	return m.n.sizes
}

func (m sizeConstraintMixin) SetSizeConstraints(c host.SizeConstraints) error {
	if c.MinWidth != nil && c.MaxWidth != nil && *c.MinWidth > *c.MaxWidth {
		return fmt.Errorf("min width %g exceeds max width %g", *c.MinWidth, *c.MaxWidth)
	}
	if c.MinHeight != nil && c.MaxHeight != nil && *c.MinHeight > *c.MaxHeight {
		return fmt.Errorf("min height %g exceeds max height %g", *c.MinHeight, *c.MaxHeight)
	}
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	m.n.sizes = c
	return nil
}

// =============================================================================
// Auto-layout
// =============================================================================

type autoLayoutMixin struct{ n *node }

func (m autoLayoutMixin) AutoLayout() host.AutoLayout {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	return m.n.layout
}

func (m autoLayoutMixin) SetAutoLayout(a host.AutoLayout) error {
	switch a.LayoutMode {
	case doc.LayoutModeNone, doc.LayoutModeHorizontal, doc.LayoutModeVertical:
	default:
		return fmt.Errorf("invalid layout mode %q", a.LayoutMode)
	}
	if a.LayoutWrap == doc.WrapWrap && a.LayoutMode != doc.LayoutModeHorizontal {
		return fmt.Errorf("wrap requires horizontal layout")
	}
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	m.n.layout = a
	return nil
}

type layoutChildMixin struct{ n *node }

func (m layoutChildMixin) LayoutChild() host.LayoutChild {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	return m.n.child
}

// SetLayoutChild sets layout participation. Anything but the defaults needs
// an auto-layout parent. Stretching fills the parent's counter axis.
func (m layoutChildMixin) SetLayoutChild(l host.LayoutChild) error {
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	n := m.n
	if l == defaultLayoutChild() {
		n.child = l
		return nil
	}
	p := n.parent
	if !p.hasAutoLayout() {
		return fmt.Errorf("layout participation on %s requires an auto-layout parent", n.id)
	}
	n.child = l

	if l.LayoutAlign == doc.LayoutAlignStretch && l.LayoutPositioning != doc.PositioningAbsolute {
		switch p.layout.LayoutMode {
		case doc.LayoutModeVertical:
			n.width = max(p.width-p.layout.PaddingLeft-p.layout.PaddingRight, minDimension)
		case doc.LayoutModeHorizontal:
			if n.typ != string(doc.TypeLine) {
				n.height = max(p.height-p.layout.PaddingTop-p.layout.PaddingBottom, minDimension)
			}
		}
	}
	return nil
}

// =============================================================================
// Frame Extras
// =============================================================================

type frameMixin struct{ n *node }

func (m frameMixin) Guides() []host.Guide {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	return slices.Clone(m.n.guides)
}

func (m frameMixin) SetGuides(g []host.Guide) error {
	for _, gd := range g {
		if gd.Axis != "X" && gd.Axis != "Y" {
			return fmt.Errorf("invalid guide axis %q", gd.Axis)
		}
	}
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	m.n.guides = slices.Clone(g)
	return nil
}

func (m frameMixin) LayoutGrids() []host.LayoutGrid {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	return slices.Clone(m.n.grids)
}

func (m frameMixin) SetLayoutGrids(g []host.LayoutGrid) error {
	for _, lg := range g {
		switch lg.Pattern {
		case doc.GridRows, doc.GridColumns, doc.GridPixels:
		default:
			return fmt.Errorf("invalid grid pattern %q", lg.Pattern)
		}
	}
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	m.n.grids = slices.Clone(g)
	return nil
}

func (m frameMixin) GridStyleID() string {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	return m.n.gridStyleID
}

// =============================================================================
// Helpers
// =============================================================================

func (n *node) setEnum(dst *string, v, what string, allowed ...string) error {
	if !slices.Contains(allowed, v) {
		return fmt.Errorf("invalid %s %q", what, v)
	}
	n.h.mu.Lock()
	defer n.h.mu.Unlock()
	*dst = v
	return nil
}
