package convert

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scenedoc/pkg/codec"
	"github.com/matzehuels/scenedoc/pkg/doc"
	errs "github.com/matzehuels/scenedoc/pkg/errors"
	"github.com/matzehuels/scenedoc/pkg/host"
	"github.com/matzehuels/scenedoc/pkg/observability"
)

// Creator builds host trees from canonical nodes. It only allocates through
// the factory and never touches the workspace. Construction is sequential, so
// a Creator must not be used by several goroutines at once.
type Creator struct {
	factory host.Factory
	cfg     Config
	logger  *log.Logger
}

// NewCreator creates a creator. Zero config fields get their defaults and a
// nil logger uses log.Default().
func NewCreator(f host.Factory, cfg Config, logger *log.Logger) *Creator {
	cfg.SetDefaults()
	if logger == nil {
		logger = log.Default()
	}
	return &Creator{factory: f, cfg: cfg, logger: logger}
}

// Create builds n and its subtree, appends it to parent and applies its layout
// participation. A nil parent leaves the node detached at n's position.
//
// Failed descendants are replaced by fallbacks and reported as issues. The
// returned node is nil only when n could not be built in any form.
func (c *Creator) Create(ctx context.Context, n doc.Node, parent host.ChildrenNode) (host.SceneNode, []Issue) {
	r := &createRun{Creator: c, ctx: ctx, fonts: map[doc.FontName]error{}}
	return r.create("", n, parent), r.issues
}

type createRun struct {
	*Creator
	ctx    context.Context
	fonts  map[doc.FontName]error
	issues []Issue
}

// create builds n, positions it, appends it to parent and only then applies
// its layout participation.
func (r *createRun) create(parentPath string, n doc.Node, parent host.ChildrenNode) host.SceneNode {
	path := childPath(parentPath, n.Name)
	node := r.buildNode(path, n, parent)
	if node == nil {
		return nil
	}
	node.SetPosition(n.X, n.Y)
	if parent == nil {
		return node
	}
	if err := parent.AppendChild(node); err != nil {
		node.Remove()
		r.issue(path, codec.NormalizeType(string(n.Type)), errs.Wrap(errs.ErrCodeCreationFailure, err, "append %s", path))
		return nil
	}
	r.participate(path, n, node, parent)
	return node
}

// buildNode runs the strategy for n. On failure the partial node is removed and
// replaced: font exhaustion drops the node, anything else becomes a
// placeholder.
func (r *createRun) buildNode(path string, n doc.Node, parent host.ChildrenNode) host.SceneNode {
	if !codec.IsKnownType(string(n.Type)) {
		r.logger.Debug("unrecognized node type", "path", path, "type", n.Type, "as", codec.NormalizeType(string(n.Type)))
	}
	b := &build{createRun: r, path: path, n: &n, typ: codec.NormalizeType(string(n.Type)), parent: parent}
	node, err := b.run()
	if err == nil {
		return node
	}
	if b.node != nil {
		b.node.Remove()
	}

	var coded *errs.Error
	if errors.As(err, &coded) && coded.Code == errs.ErrCodeFontLoadFailure {
		r.issue(path, b.typ, coded)
		return nil
	}
	r.issue(path, b.typ, errs.Wrap(errs.ErrCodeCreationFailure, err, "build %s", path))
	return b.placeholder()
}

func (r *createRun) issue(path string, typ doc.NodeType, err *errs.Error) {
	r.logger.Warn("node degraded", "path", path, "type", typ, "code", err.Code, "err", err)
	observability.Convert().OnFallback(r.ctx, path, string(typ), string(err.Code))
	r.issues = append(r.issues, Issue{Path: path, Type: typ, Err: err})
}

// =============================================================================
// Layout Participation
// =============================================================================

var defaultLayoutChild = host.LayoutChild{
	LayoutAlign:            doc.LayoutAlignInherit,
	LayoutPositioning:      doc.PositioningAuto,
	LayoutSizingHorizontal: doc.LayoutSizingFixed,
	LayoutSizingVertical:   doc.LayoutSizingFixed,
}

func (r *createRun) participate(path string, n doc.Node, node host.SceneNode, parent host.ChildrenNode) {
	lc, ok := node.(host.LayoutChildNode)
	if !ok {
		return
	}
	mode := layoutMode(parent)
	want := layoutChildFor(n, mode)
	if want == defaultLayoutChild {
		return
	}
	if mode == doc.LayoutModeNone {
		r.logger.Debug("layout participation ignored outside auto-layout", "path", path)
		return
	}
	if err := lc.SetLayoutChild(want); err != nil {
		r.logger.Warn("layout participation not applied", "path", path, "err", err)
	}
}

// layoutMode returns the auto-layout mode of p, NONE for anything that cannot
// lay out children.
func layoutMode(p host.ChildrenNode) string {
	if a, ok := p.(host.AutoLayoutNode); ok {
		return doc.Or(a.AutoLayout().LayoutMode, doc.LayoutModeNone)
	}
	return doc.LayoutModeNone
}

// layoutChildFor returns the participation n asks for under a parent with the
// given mode. A flow child without an explicit alignment that leaves its
// counter-axis size open stretches across the parent.
func layoutChildFor(n doc.Node, mode string) host.LayoutChild {
	l := defaultLayoutChild
	c := n.LayoutChild
	if c != nil {
		l.LayoutAlign = doc.Or(c.LayoutAlign, l.LayoutAlign)
		l.LayoutGrow = c.LayoutGrow
		l.LayoutPositioning = doc.Or(c.LayoutPositioning, l.LayoutPositioning)
		l.LayoutSizingHorizontal = doc.Or(c.LayoutSizingHorizontal, l.LayoutSizingHorizontal)
		l.LayoutSizingVertical = doc.Or(c.LayoutSizingVertical, l.LayoutSizingVertical)
	}
	if (c != nil && c.LayoutAlign != "") || l.LayoutPositioning == doc.PositioningAbsolute {
		return l
	}
	switch mode {
	case doc.LayoutModeVertical:
		if n.Width == nil {
			l.LayoutAlign = doc.LayoutAlignStretch
		}
	case doc.LayoutModeHorizontal:
		if n.Height == nil {
			l.LayoutAlign = doc.LayoutAlignStretch
		}
	}
	return l
}

// =============================================================================
// Build
// =============================================================================

// build is the construction state of one node.
type build struct {
	*createRun
	path   string
	n      *doc.Node
	typ    doc.NodeType
	parent host.ChildrenNode

	// node is the allocated host node, removed again if the build fails.
	node host.SceneNode
}

func (b *build) run() (node host.SceneNode, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			node, err = nil, errs.PanicError(errs.ErrCodeInternal, rec, "construct %s", b.typ)
		}
	}()
	return lookup(b.typ).construct(b)
}

func (b *build) alloc(typ doc.NodeType) (host.SceneNode, error) {
	node, err := b.factory.CreateNode(string(typ))
	if err != nil {
		return nil, err
	}
	b.node = node
	node.SetName(b.n.Name)
	return node, nil
}

func (b *build) fallback(err *errs.Error) {
	b.issue(b.path, b.typ, err)
}

// placeholder stands in for a node that failed to build: a rectangle of the
// canonical bounds that keeps the host's default fill.
func (b *build) placeholder() host.SceneNode {
	b.node = nil
	node, err := b.alloc(doc.TypeRectangle)
	if err == nil {
		err = b.resize(node)
	}
	if err != nil {
		b.logger.Error("placeholder failed", "path", b.path, "err", err)
		if node != nil {
			node.Remove()
		}
		return nil
	}
	return node
}

// size returns the canonical dimensions for a node of type typ with the
// default size and floor applied. Lines always have zero height.
func (b *build) size(typ doc.NodeType) (w, h float64) {
	w, h, hasW, hasH := b.n.Size()
	if !hasW || math.IsNaN(w) {
		w = b.cfg.DefaultSize
	}
	if !hasH || math.IsNaN(h) {
		h = b.cfg.DefaultSize
	}
	w, h = max(w, b.cfg.MinSize), max(h, b.cfg.MinSize)
	if typ == doc.TypeLine {
		h = 0
	}
	return w, h
}

func (b *build) resize(node host.SceneNode) error {
	w, h := b.size(codec.NormalizeType(node.Type()))
	if err := node.Resize(w, h); err != nil {
		return fmt.Errorf("resize: %w", err)
	}
	return nil
}

// finish applies everything after the intrinsic shape data, in the order the
// host requires.
func (b *build) finish(node host.SceneNode, keepDefaultFill bool) error {
	if err := b.paint(node, keepDefaultFill); err != nil {
		return err
	}
	if err := b.corners(node); err != nil {
		return err
	}
	if err := b.frameExtras(node); err != nil {
		return err
	}
	if err := b.autoLayout(node); err != nil {
		return err
	}
	b.children(node)
	return b.common(node)
}

// =============================================================================
// Strategies
// =============================================================================

// constructNode builds the types the host allocates directly. A type the host
// refuses is built through constructStandIn.
func constructNode(b *build) (host.SceneNode, error) {
	node, err := b.alloc(b.typ)
	if err != nil {
		b.logger.Debug("host cannot create type", "path", b.path, "type", b.typ, "err", err)
		return constructStandIn(b)
	}
	if err := b.resize(node); err != nil {
		return nil, err
	}
	if err := b.shapeData(node); err != nil {
		return nil, err
	}
	return node, b.finish(node, false)
}

// constructStandIn builds a type the host cannot create: a frame when the node
// has children, otherwise a rectangle that keeps the host's default fill.
func constructStandIn(b *build) (host.SceneNode, error) {
	typ, keepDefaultFill := doc.TypeRectangle, true
	if b.n.HasChildren() {
		typ, keepDefaultFill = doc.TypeFrame, false
	}
	node, err := b.alloc(typ)
	if err != nil {
		return nil, err
	}
	b.fallback(errs.New(errs.ErrCodeStructuralFallback, "%s built as %s", b.typ, typ))
	if err := b.resize(node); err != nil {
		return nil, err
	}
	return node, b.finish(node, keepDefaultFill)
}

// constructBoolean builds the operands detached and combines them under the
// parent. With fewer than two operands, or no parent to combine into, the
// operands are kept in a frame carrying the node's fills.
func constructBoolean(b *build) (host.SceneNode, error) {
	var operands []host.SceneNode
	for _, c := range b.n.Children {
		if o := b.create(b.path, c, nil); o != nil {
			operands = append(operands, o)
		}
	}
	op := doc.BooleanUnion
	if se := b.n.ShapeExtras; se != nil && se.BooleanOperation != "" {
		op = se.BooleanOperation
	}

	reason := fmt.Sprintf("%d operand(s) built", len(operands))
	if len(operands) >= 2 {
		reason = "no parent to combine into"
		if b.parent != nil {
			bo, err := b.factory.Combine(op, operands, b.parent)
			if err == nil {
				b.node = bo
				bo.SetName(b.n.Name)
				if err := b.paint(bo, false); err != nil {
					return nil, err
				}
				if err := b.corners(bo); err != nil {
					return nil, err
				}
				return bo, b.common(bo)
			}
			reason = err.Error()
		}
	}
	return b.booleanFallback(operands, reason)
}

func (b *build) booleanFallback(operands []host.SceneNode, reason string) (host.SceneNode, error) {
	fail := func(err error) (host.SceneNode, error) {
		for _, o := range operands {
			if o.Parent() == nil {
				o.Remove()
			}
		}
		return nil, err
	}
	node, err := b.alloc(doc.TypeFrame)
	if err != nil {
		return fail(err)
	}
	frame, ok := node.(host.ChildrenNode)
	if !ok {
		return fail(fmt.Errorf("host frame %s cannot hold children", node.Type()))
	}
	b.fallback(errs.New(errs.ErrCodeStructuralFallback, "boolean operation built as frame: %s", reason))
	if err := b.resize(frame); err != nil {
		return fail(err)
	}
	if err := b.paint(frame, false); err != nil {
		return fail(err)
	}
	for _, o := range operands {
		if err := frame.AppendChild(o); err != nil {
			b.logger.Warn("operand dropped", "path", b.path, "operand", o.Name(), "err", err)
			o.Remove()
		}
	}
	return frame, b.common(frame)
}

// constructVector applies paths, then the network. Geometry the host rejects
// leaves an empty vector of the canonical bounds.
func constructVector(b *build) (host.SceneNode, error) {
	node, err := b.alloc(doc.TypeVector)
	if err != nil {
		return constructStandIn(b)
	}
	if err := b.resize(node); err != nil {
		return nil, err
	}
	if v, ok := node.(host.VectorNode); ok {
		b.vectorGeometry(v)
	}
	return node, b.finish(node, false)
}

func (b *build) vectorGeometry(v host.VectorNode) {
	se := b.n.ShapeExtras
	if se == nil || (len(se.VectorPaths) == 0 && se.VectorNetwork == nil) {
		return
	}
	if len(se.VectorPaths) > 0 {
		err := v.SetVectorPaths(codec.VectorPathsToHost(se.VectorPaths))
		if err == nil {
			return
		}
		b.logger.Debug("vector paths rejected", "path", b.path, "err", err)
	}
	if se.VectorNetwork != nil {
		err := v.SetVectorNetwork(codec.VectorNetworkToHost(*se.VectorNetwork))
		if err == nil {
			return
		}
		b.logger.Debug("vector network rejected", "path", b.path, "err", err)
	}
	b.fallback(errs.New(errs.ErrCodeStructuralFallback, "vector geometry rejected, built as empty placeholder"))
}

// constructText loads a font before touching any text property. Font
// exhaustion fails the node.
func constructText(b *build) (host.SceneNode, error) {
	node, err := b.alloc(doc.TypeText)
	if err != nil {
		return nil, err
	}
	t, ok := node.(host.TextNode)
	if !ok {
		return nil, fmt.Errorf("host node %s has no text capability", node.Type())
	}
	typo := doc.Deref(b.n.Typography, doc.Typography{})

	font, err := b.resolveFont(b.path, typo.FontName)
	if err != nil {
		return nil, err
	}
	if err := t.SetFontName(codec.FontNameToHost(font)); err != nil {
		return nil, fmt.Errorf("font name: %w", err)
	}
	resize := b.autoResize()
	if err := t.SetTextStyle(textStyleToHost(typo, resize)); err != nil {
		return nil, fmt.Errorf("text style: %w", err)
	}
	if typo.TextStyleID != "" {
		b.logger.Debug("style reference not applied", "path", b.path, "text_style_id", typo.TextStyleID)
	}
	if err := t.SetCharacters(typo.Characters); err != nil {
		return nil, fmt.Errorf("characters: %w", err)
	}
	if err := b.textSize(node, resize); err != nil {
		return nil, err
	}
	if err := b.paint(node, false); err != nil {
		return nil, err
	}
	return node, b.common(node)
}

// autoResize returns the text's resize mode. When the node does not set one,
// it is derived from the known dimensions and whether the parent lays out
// its children.
func (b *build) autoResize() string {
	if t := b.n.Typography; t != nil && t.TextAutoResize != "" {
		return t.TextAutoResize
	}
	_, _, hasW, hasH := b.n.Size()
	if layoutMode(b.parent) != doc.LayoutModeNone {
		if hasW {
			return doc.AutoResizeHeight
		}
		return doc.AutoResizeWidthAndHeight
	}
	switch {
	case hasW && hasH:
		return doc.AutoResizeNone
	case hasW:
		return doc.AutoResizeHeight
	}
	return doc.AutoResizeWidthAndHeight
}

func (b *build) textSize(node host.SceneNode, resize string) error {
	w, h := b.size(doc.TypeText)
	switch resize {
	case doc.AutoResizeNone, doc.AutoResizeTruncate:
	case doc.AutoResizeHeight:
		h = max(node.Height(), b.cfg.MinSize)
	default:
		return nil
	}
	if err := node.Resize(w, h); err != nil {
		return fmt.Errorf("resize: %w", err)
	}
	return nil
}

func textStyleToHost(t doc.Typography, resize string) host.TextStyle {
	s := host.TextStyle{
		TextAlignHorizontal: t.TextAlignHorizontal,
		TextAlignVertical:   t.TextAlignVertical,
		TextAutoResize:      resize,
		ParagraphIndent:     t.ParagraphIndent,
		ParagraphSpacing:    t.ParagraphSpacing,
		ListSpacing:         t.ListSpacing,
		HangingPunctuation:  t.HangingPunctuation,
		HangingList:         t.HangingList,
		LeadingTrim:         t.LeadingTrim,
		TextTruncation:      t.TextTruncation,
	}
	if t.FontSize > 0 {
		s.FontSize = host.Some(t.FontSize)
	}
	if t.LineHeight != nil {
		s.LineHeight = host.Some(codec.LineHeightToHost(*t.LineHeight))
	}
	if t.LetterSpacing != nil {
		s.LetterSpacing = host.Some(codec.LetterSpacingToHost(*t.LetterSpacing))
	}
	if t.TextCase != "" {
		s.TextCase = host.Some(t.TextCase)
	}
	if t.TextDecoration != "" {
		s.TextDecoration = host.Some(t.TextDecoration)
	}
	if t.Hyperlink != nil {
		s.Hyperlink = host.Some(codec.HyperlinkToHost(*t.Hyperlink))
	}
	if t.MaxLines != nil {
		s.MaxLines = doc.Ptr(*t.MaxLines)
	}
	return s
}

// =============================================================================
// Property Steps
// =============================================================================

func (b *build) shapeData(node host.SceneNode) error {
	se := b.n.ShapeExtras
	if se == nil {
		return nil
	}
	if e, ok := node.(host.EllipseNode); ok && se.ArcData != nil {
		a := se.ArcData
		err := e.SetArcData(host.ArcData{StartingAngle: a.StartingAngle, EndingAngle: a.EndingAngle, InnerRadius: a.InnerRadius})
		if err != nil {
			return fmt.Errorf("arc data: %w", err)
		}
	}
	if p, ok := node.(host.PolygonNode); ok && se.PointCount > 0 {
		if err := p.SetPointCount(se.PointCount); err != nil {
			return fmt.Errorf("point count: %w", err)
		}
	}
	if s, ok := node.(host.StarNode); ok && se.InnerRadius != nil {
		if err := s.SetInnerRadius(*se.InnerRadius); err != nil {
			return fmt.Errorf("inner radius: %w", err)
		}
	}
	return nil
}

// paint applies fills, strokes and stroke geometry. Absent fills clear the
// host's default fill unless keepDefaultFill is set.
func (b *build) paint(node host.SceneNode, keepDefaultFill bool) error {
	g, ok := node.(host.GeometryNode)
	if !ok {
		return nil
	}
	p := doc.Deref(b.n.Paint, doc.Paint{})

	if len(p.Fills) > 0 || !keepDefaultFill {
		if err := g.SetFills(b.paints("fills", p.Fills)); err != nil {
			return fmt.Errorf("fills: %w", err)
		}
	}
	if err := g.SetStrokes(b.paints("strokes", p.Strokes)); err != nil {
		return fmt.Errorf("strokes: %w", err)
	}
	if p.StrokeWeight != nil {
		if err := g.SetStrokeWeight(*p.StrokeWeight); err != nil {
			return fmt.Errorf("stroke weight: %w", err)
		}
	}
	if p.StrokeAlign != "" {
		if err := g.SetStrokeAlign(p.StrokeAlign); err != nil {
			return fmt.Errorf("stroke align: %w", err)
		}
	}
	if p.StrokeCap != "" {
		if err := g.SetStrokeCap(p.StrokeCap); err != nil {
			return fmt.Errorf("stroke cap: %w", err)
		}
	}
	if p.StrokeJoin != "" {
		if err := g.SetStrokeJoin(p.StrokeJoin); err != nil {
			return fmt.Errorf("stroke join: %w", err)
		}
	}
	if p.StrokeMiterLimit != nil {
		if err := g.SetStrokeMiterLimit(*p.StrokeMiterLimit); err != nil {
			return fmt.Errorf("stroke miter limit: %w", err)
		}
	}
	if len(p.DashPattern) > 0 {
		if err := g.SetDashPattern(p.DashPattern); err != nil {
			return fmt.Errorf("dash pattern: %w", err)
		}
	}
	if s, ok := node.(host.IndividualStrokesNode); ok && p.StrokeSides != nil {
		sides := host.StrokeSides{
			Top:    p.StrokeSides.Top,
			Right:  p.StrokeSides.Right,
			Bottom: p.StrokeSides.Bottom,
			Left:   p.StrokeSides.Left,
		}
		if err := s.SetStrokeSides(sides); err != nil {
			return fmt.Errorf("stroke sides: %w", err)
		}
	}
	return nil
}

func (b *build) paints(prop string, fills []doc.Fill) []host.Paint {
	out, dropped := codec.FillsToHost(fills)
	if dropped > 0 {
		b.logger.Debug("unsupported fills dropped", "code", errs.ErrCodeUnsupportedVariant, "path", b.path, "property", prop, "count", dropped)
	}
	return out
}

// corners applies radii; any per-corner radius wins over the uniform one.
func (b *build) corners(node host.SceneNode) error {
	c := b.n.Corners
	cn, ok := node.(host.CornerNode)
	if c == nil || !ok {
		return nil
	}
	if rc, ok := node.(host.RectangleCornerNode); ok && c.HasPerCorner() {
		err := rc.SetCornerRadii(host.CornerRadii{
			TopLeft:     doc.Deref(c.TopLeftRadius, c.CornerRadius),
			TopRight:    doc.Deref(c.TopRightRadius, c.CornerRadius),
			BottomLeft:  doc.Deref(c.BottomLeftRadius, c.CornerRadius),
			BottomRight: doc.Deref(c.BottomRightRadius, c.CornerRadius),
		})
		if err != nil {
			return fmt.Errorf("corner radii: %w", err)
		}
	} else if c.CornerRadius != 0 {
		if err := cn.SetCornerRadius(c.CornerRadius); err != nil {
			return fmt.Errorf("corner radius: %w", err)
		}
	}
	if c.CornerSmoothing != 0 {
		if err := cn.SetCornerSmoothing(c.CornerSmoothing); err != nil {
			return fmt.Errorf("corner smoothing: %w", err)
		}
	}
	return nil
}

func (b *build) frameExtras(node host.SceneNode) error {
	fe := b.n.FrameExtras
	f, ok := node.(host.FrameNode)
	if fe == nil || !ok {
		return nil
	}
	if len(fe.Guides) > 0 {
		if err := f.SetGuides(codec.GuidesToHost(fe.Guides)); err != nil {
			return fmt.Errorf("guides: %w", err)
		}
	}
	if len(fe.LayoutGrids) > 0 {
		if err := f.SetLayoutGrids(codec.LayoutGridsToHost(fe.LayoutGrids)); err != nil {
			return fmt.Errorf("layout grids: %w", err)
		}
	}
	if fe.GridStyleID != "" {
		b.logger.Debug("style reference not applied", "path", b.path, "grid_style_id", fe.GridStyleID)
	}
	return nil
}

// autoLayout configures the container. It runs before any child is appended
// because the host derives participation at append time.
func (b *build) autoLayout(node host.SceneNode) error {
	al := b.n.AutoLayout
	a, ok := node.(host.AutoLayoutNode)
	if !ok || !al.IsAutoLayout() {
		return nil
	}
	err := a.SetAutoLayout(host.AutoLayout{
		LayoutMode:              al.LayoutMode,
		PrimaryAxisSizingMode:   doc.Or(al.PrimaryAxisSizingMode, doc.AxisSizingFixed),
		CounterAxisSizingMode:   doc.Or(al.CounterAxisSizingMode, doc.AxisSizingFixed),
		PrimaryAxisAlignItems:   doc.Or(al.PrimaryAxisAlignItems, doc.AxisAlignMin),
		CounterAxisAlignItems:   doc.Or(al.CounterAxisAlignItems, doc.AxisAlignMin),
		ItemSpacing:             al.ItemSpacing,
		CounterAxisSpacing:      al.CounterAxisSpacing,
		PaddingLeft:             al.PaddingLeft,
		PaddingRight:            al.PaddingRight,
		PaddingTop:              al.PaddingTop,
		PaddingBottom:           al.PaddingBottom,
		LayoutWrap:              doc.Or(al.LayoutWrap, doc.WrapNone),
		CounterAxisAlignContent: doc.Or(al.CounterAxisAlignContent, doc.AlignContentAuto),
		ItemReverseZIndex:       al.ItemReverseZIndex,
		StrokesIncludedInLayout: al.StrokesIncludedInLayout,
	})
	if err != nil {
		return fmt.Errorf("auto-layout: %w", err)
	}
	return nil
}

// children builds each child in order, one at a time.
func (b *build) children(node host.SceneNode) {
	if !b.n.HasChildren() {
		return
	}
	cn, ok := node.(host.ChildrenNode)
	if !ok {
		b.logger.Warn("children ignored on leaf node", "path", b.path, "type", b.typ, "children", len(b.n.Children))
		return
	}
	for _, c := range b.n.Children {
		b.create(b.path, c, cn)
	}
}

// common applies the cross-cutting properties last so no earlier step can
// overwrite them.
func (b *build) common(node host.SceneNode) error {
	v := b.n.Visual
	bn, blend := node.(host.BlendNode)
	blend = blend && v != nil

	if blend && v.Opacity != nil {
		if err := bn.SetOpacity(codec.Opacity(v.Opacity)); err != nil {
			return fmt.Errorf("opacity: %w", err)
		}
	}
	if blend && v.BlendMode != "" {
		if err := bn.SetBlendMode(v.BlendMode); err != nil {
			return fmt.Errorf("blend mode: %w", err)
		}
	}
	node.SetVisible(b.n.IsVisible())
	node.SetLocked(b.n.Locked)
	if b.n.Rotation != 0 {
		node.SetRotation(b.n.Rotation)
	}
	if blend && v.IsMask {
		if err := bn.SetIsMask(true); err != nil {
			return fmt.Errorf("mask: %w", err)
		}
	}
	if blend && len(v.Effects) > 0 {
		effects, dropped := codec.EffectsToHost(v.Effects)
		if dropped > 0 {
			b.logger.Debug("unsupported effects dropped", "code", errs.ErrCodeUnsupportedVariant, "path", b.path, "count", dropped)
		}
		if err := bn.SetEffects(effects); err != nil {
			return fmt.Errorf("effects: %w", err)
		}
	}
	if blend && v.EffectStyleID != "" {
		b.logger.Debug("style reference not applied", "path", b.path, "effect_style_id", v.EffectStyleID)
	}

	c := b.n.Constraints
	if c == nil {
		return nil
	}
	if s, ok := node.(host.SizeConstraintNode); ok && c.HasSizeConstraints() {
		err := s.SetSizeConstraints(host.SizeConstraints{
			MinWidth:  c.MinWidth,
			MaxWidth:  c.MaxWidth,
			MinHeight: c.MinHeight,
			MaxHeight: c.MaxHeight,
		})
		if err != nil {
			return fmt.Errorf("size constraints: %w", err)
		}
	}
	if cn, ok := node.(host.ConstraintNode); ok && (c.Horizontal != "" || c.Vertical != "") {
		err := cn.SetConstraints(host.Constraints{
			Horizontal: doc.Or(c.Horizontal, doc.ConstraintMin),
			Vertical:   doc.Or(c.Vertical, doc.ConstraintMin),
		})
		if err != nil {
			return fmt.Errorf("constraints: %w", err)
		}
	}
	return nil
}
