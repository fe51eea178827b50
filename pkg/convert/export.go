package convert

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scenedoc/pkg/codec"
	"github.com/matzehuels/scenedoc/pkg/doc"
	errs "github.com/matzehuels/scenedoc/pkg/errors"
	"github.com/matzehuels/scenedoc/pkg/host"
	"github.com/matzehuels/scenedoc/pkg/observability"
)

// Exporter converts host nodes to canonical form. It only reads host state
// and is safe for concurrent use.
type Exporter struct {
	logger *log.Logger
}

// NewExporter creates an exporter. A nil logger uses log.Default().
func NewExporter(logger *log.Logger) *Exporter {
	if logger == nil {
		logger = log.Default()
	}
	return &Exporter{logger: logger}
}

// Export converts n and its subtree. It returns nil when n itself could not be
// exported; failed descendants are omitted and reported as issues.
func (e *Exporter) Export(ctx context.Context, n host.SceneNode) (*doc.Node, []Issue) {
	r := &exportRun{ctx: ctx, logger: e.logger}
	return r.node("", n), r.issues
}

type exportRun struct {
	ctx    context.Context
	logger *log.Logger
	issues []Issue
}

func (r *exportRun) node(parentPath string, n host.SceneNode) (out *doc.Node) {
	path := parentPath
	typ := doc.DefaultType
	defer func() {
		if rec := recover(); rec != nil {
			r.skip(path, typ, errs.PanicError(errs.ErrCodeExportSkipped, rec, "export %s", path))
			out = nil
		}
	}()

	path = childPath(parentPath, n.Name())
	if raw := n.Type(); !codec.IsKnownType(raw) {
		r.logger.Debug("unrecognized node type", "path", path, "type", raw, "as", doc.DefaultType)
	}
	typ = codec.NormalizeType(n.Type())

	node := doc.Node{
		Name:     n.Name(),
		Type:     typ,
		X:        doc.Round4(n.X()),
		Y:        doc.Round4(n.Y()),
		Width:    doc.Ptr(doc.Round4(n.Width())),
		Height:   doc.Ptr(doc.Round4(n.Height())),
		Rotation: doc.Round4(n.Rotation()),
		Locked:   n.Locked(),
	}
	if t := codec.TransformFromHost(n.RelativeTransform()); !t.IsIdentityLinear() {
		node.RelativeTransform = &t
	}
	if !n.Visible() {
		node.Visible = doc.Ptr(false)
	}
	for _, extract := range lookup(typ).extract {
		extract(r, path, n, &node)
	}

	out = doc.Ptr(doc.Elide(node))
	if cn, ok := n.(host.ChildrenNode); ok {
		out.Children = r.children(path, cn)
	}
	return out
}

func (r *exportRun) children(path string, n host.ChildrenNode) []doc.Node {
	kids := n.Children()
	var out []doc.Node
	for _, c := range kids {
		if cn := r.node(path, c); cn != nil {
			out = append(out, *cn)
		}
	}
	if len(kids) > 0 && len(out) == 0 {
		r.logger.Warn("all children failed to export", "path", path, "children", len(kids))
	}
	return out
}

func (r *exportRun) skip(path string, typ doc.NodeType, err *errs.Error) {
	r.logger.Warn("node skipped", "path", path, "type", typ, "err", err)
	observability.Convert().OnNodeSkipped(r.ctx, path, string(typ), err)
	r.issues = append(r.issues, Issue{Path: path, Type: typ, Err: err})
}

// =============================================================================
// Extractors
// =============================================================================

func extractGeometry(r *exportRun, path string, n host.SceneNode, out *doc.Node) {
	g, ok := n.(host.GeometryNode)
	if !ok {
		return
	}
	p := &doc.Paint{
		StrokeAlign:      g.StrokeAlign(),
		StrokeMiterLimit: doc.Ptr(doc.Round4(g.StrokeMiterLimit())),
		DashPattern:      slices.Clone(g.DashPattern()),
	}
	if fills, ok := present(r.logger, path, "fills", g.Fills()); ok {
		p.Fills = r.fills(path, "fills", fills)
	}
	p.Strokes = r.fills(path, "strokes", g.Strokes())

	weight, hasWeight := present(r.logger, path, "stroke_weight", g.StrokeWeight())
	if hasWeight {
		p.StrokeWeight = doc.Ptr(doc.Round4(weight))
	}
	p.StrokeCap, _ = present(r.logger, path, "stroke_cap", g.StrokeCap())
	p.StrokeJoin, _ = present(r.logger, path, "stroke_join", g.StrokeJoin())

	if s, ok := n.(host.IndividualStrokesNode); ok {
		sides := s.StrokeSides()
		w := doc.Deref(p.StrokeWeight, doc.DefaultStrokeWeight)
		if sides.Top != w || sides.Right != w || sides.Bottom != w || sides.Left != w {
			p.StrokeSides = &doc.StrokeSides{
				Top:    doc.Round4(sides.Top),
				Right:  doc.Round4(sides.Right),
				Bottom: doc.Round4(sides.Bottom),
				Left:   doc.Round4(sides.Left),
			}
		}
	}
	out.Paint = p
}

func (r *exportRun) fills(path, prop string, paints []host.Paint) []doc.Fill {
	fills, dropped := codec.FillsFromHost(paints)
	if dropped > 0 {
		r.logger.Debug("unsupported paints dropped", "code", errs.ErrCodeUnsupportedVariant, "path", path, "property", prop, "count", dropped)
	}
	return fills
}

func extractBlend(r *exportRun, path string, n host.SceneNode, out *doc.Node) {
	b, ok := n.(host.BlendNode)
	if !ok {
		return
	}
	effects, dropped := codec.EffectsFromHost(b.Effects())
	if dropped > 0 {
		r.logger.Debug("unsupported effects dropped", "code", errs.ErrCodeUnsupportedVariant, "path", path, "count", dropped)
	}
	out.Visual = &doc.Visual{
		Opacity:       doc.Ptr(doc.Round4(b.Opacity())),
		BlendMode:     b.BlendMode(),
		IsMask:        b.IsMask(),
		Effects:       effects,
		EffectStyleID: b.EffectStyleID(),
	}
}

func extractCorners(r *exportRun, path string, n host.SceneNode, out *doc.Node) {
	c, ok := n.(host.CornerNode)
	if !ok {
		return
	}
	corners := &doc.Corners{CornerSmoothing: doc.Round4(c.CornerSmoothing())}
	radius := c.CornerRadius()
	if v, ok := radius.Get(); ok {
		corners.CornerRadius = doc.Round4(v)
	} else if rc, ok := n.(host.RectangleCornerNode); ok && radius.IsMixed() {
		radii := rc.CornerRadii()
		corners.TopLeftRadius = doc.Ptr(doc.Round4(radii.TopLeft))
		corners.TopRightRadius = doc.Ptr(doc.Round4(radii.TopRight))
		corners.BottomLeftRadius = doc.Ptr(doc.Round4(radii.BottomLeft))
		corners.BottomRightRadius = doc.Ptr(doc.Round4(radii.BottomRight))
	} else {
		present(r.logger, path, "corner_radius", radius)
	}
	out.Corners = corners
}

func extractConstraints(_ *exportRun, _ string, n host.SceneNode, out *doc.Node) {
	c, ok := n.(host.ConstraintNode)
	if !ok {
		return
	}
	hc := c.Constraints()
	cons := &doc.Constraints{Horizontal: hc.Horizontal, Vertical: hc.Vertical}
	if s, ok := n.(host.SizeConstraintNode); ok {
		sc := s.SizeConstraints()
		cons.MinWidth = round4Ptr(sc.MinWidth)
		cons.MaxWidth = round4Ptr(sc.MaxWidth)
		cons.MinHeight = round4Ptr(sc.MinHeight)
		cons.MaxHeight = round4Ptr(sc.MaxHeight)
	}
	out.Constraints = cons
}

func extractAutoLayout(_ *exportRun, _ string, n host.SceneNode, out *doc.Node) {
	a, ok := n.(host.AutoLayoutNode)
	if !ok {
		return
	}
	al := a.AutoLayout()
	if al.LayoutMode == doc.LayoutModeNone {
		return
	}
	out.AutoLayout = &doc.AutoLayout{
		LayoutMode:              al.LayoutMode,
		PrimaryAxisSizingMode:   al.PrimaryAxisSizingMode,
		CounterAxisSizingMode:   al.CounterAxisSizingMode,
		PrimaryAxisAlignItems:   al.PrimaryAxisAlignItems,
		CounterAxisAlignItems:   al.CounterAxisAlignItems,
		ItemSpacing:             doc.Round4(al.ItemSpacing),
		CounterAxisSpacing:      doc.Round4(al.CounterAxisSpacing),
		PaddingLeft:             doc.Round4(al.PaddingLeft),
		PaddingRight:            doc.Round4(al.PaddingRight),
		PaddingTop:              doc.Round4(al.PaddingTop),
		PaddingBottom:           doc.Round4(al.PaddingBottom),
		LayoutWrap:              al.LayoutWrap,
		CounterAxisAlignContent: al.CounterAxisAlignContent,
		ItemReverseZIndex:       al.ItemReverseZIndex,
		StrokesIncludedInLayout: al.StrokesIncludedInLayout,
	}
}

func extractLayoutChild(_ *exportRun, _ string, n host.SceneNode, out *doc.Node) {
	l, ok := n.(host.LayoutChildNode)
	if !ok {
		return
	}
	lc := l.LayoutChild()
	out.LayoutChild = &doc.LayoutChild{
		LayoutAlign:            lc.LayoutAlign,
		LayoutGrow:             doc.Round4(lc.LayoutGrow),
		LayoutPositioning:      lc.LayoutPositioning,
		LayoutSizingHorizontal: lc.LayoutSizingHorizontal,
		LayoutSizingVertical:   lc.LayoutSizingVertical,
	}
}

func extractFrameExtras(_ *exportRun, _ string, n host.SceneNode, out *doc.Node) {
	f, ok := n.(host.FrameNode)
	if !ok {
		return
	}
	out.FrameExtras = &doc.FrameExtras{
		Guides:      codec.GuidesFromHost(f.Guides()),
		LayoutGrids: codec.LayoutGridsFromHost(f.LayoutGrids()),
		GridStyleID: f.GridStyleID(),
	}
}

func extractText(r *exportRun, path string, n host.SceneNode, out *doc.Node) {
	t, ok := n.(host.TextNode)
	if !ok {
		return
	}
	s := t.TextStyle()
	typo := &doc.Typography{
		Characters:          t.Characters(),
		TextAlignHorizontal: s.TextAlignHorizontal,
		TextAlignVertical:   s.TextAlignVertical,
		TextAutoResize:      s.TextAutoResize,
		ParagraphIndent:     doc.Round4(s.ParagraphIndent),
		ParagraphSpacing:    doc.Round4(s.ParagraphSpacing),
		ListSpacing:         doc.Round4(s.ListSpacing),
		HangingPunctuation:  s.HangingPunctuation,
		HangingList:         s.HangingList,
		LeadingTrim:         s.LeadingTrim,
		TextTruncation:      s.TextTruncation,
		TextStyleID:         s.TextStyleID,
	}
	if f, ok := present(r.logger, path, "font_name", t.FontName()); ok {
		typo.FontName = doc.Ptr(codec.FontNameFromHost(f))
	}
	if v, ok := present(r.logger, path, "font_size", s.FontSize); ok {
		typo.FontSize = doc.Round4(v)
	}
	if v, ok := present(r.logger, path, "line_height", s.LineHeight); ok {
		typo.LineHeight = codec.LineHeightFromHost(v)
	}
	if v, ok := present(r.logger, path, "letter_spacing", s.LetterSpacing); ok {
		typo.LetterSpacing = codec.LetterSpacingFromHost(v)
	}
	typo.TextCase, _ = present(r.logger, path, "text_case", s.TextCase)
	typo.TextDecoration, _ = present(r.logger, path, "text_decoration", s.TextDecoration)
	if v, ok := present(r.logger, path, "hyperlink", s.Hyperlink); ok {
		typo.Hyperlink = codec.HyperlinkFromHost(v)
	}
	if s.MaxLines != nil {
		typo.MaxLines = doc.Ptr(*s.MaxLines)
	}
	out.Typography = typo
}

func extractShapeExtras(_ *exportRun, _ string, n host.SceneNode, out *doc.Node) {
	se := &doc.ShapeExtras{}
	if e, ok := n.(host.EllipseNode); ok {
		a := e.ArcData()
		se.ArcData = &doc.ArcData{
			StartingAngle: doc.Round4(a.StartingAngle),
			EndingAngle:   doc.Round4(a.EndingAngle),
			InnerRadius:   doc.Round4(a.InnerRadius),
		}
	}
	if s, ok := n.(host.StarNode); ok {
		se.PointCount = s.PointCount()
		se.InnerRadius = doc.Ptr(doc.Round4(s.InnerRadius()))
	} else if p, ok := n.(host.PolygonNode); ok {
		se.PointCount = p.PointCount()
	}
	if b, ok := n.(host.BooleanOperationNode); ok {
		se.BooleanOperation = b.BooleanOperation()
	}
	if v, ok := n.(host.VectorNode); ok {
		se.VectorPaths = codec.VectorPathsFromHost(v.VectorPaths())
		se.VectorNetwork = codec.VectorNetworkFromHost(v.VectorNetwork())
	}
	out.ShapeExtras = se
}
