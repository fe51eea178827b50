// Package memhost is an in-memory reference implementation of the host
// contract.
//
// It models the host behaviour that makes construction order-sensitive:
//
//   - New frames carry a white fill and new shapes a grey one
//   - Text cannot be edited until its font has been loaded
//   - Layout participation is reset whenever a node is appended, and can
//     only be set under an auto-layout parent
//   - Vector paths and networks are validated when assigned
//   - Boolean operations are created by combining existing nodes
//
// Every node kind exposes only the capability interfaces of its type, so the
// same type assertions that work against a real host work here.
//
// # Usage
//
//	h := memhost.New(memhost.WithFonts(host.FontName{Family: "Inter", Style: "Bold"}))
//	rect, _ := h.CreateNode("RECTANGLE")
//	_ = h.CurrentPage().AppendChild(rect)
//
// State is guarded by a single mutex, so reads may run concurrently. Structural
// edits are expected to come from a single writer.
package memhost

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/scenedoc/pkg/doc"
	"github.com/matzehuels/scenedoc/pkg/host"
)

// Property names a node property that can be reported as mixed.
type Property string

// Properties that can be marked mixed with SetMixed.
const (
	PropFills          Property = "fills"
	PropStrokeWeight   Property = "strokeWeight"
	PropStrokeCap      Property = "strokeCap"
	PropStrokeJoin     Property = "strokeJoin"
	PropFontName       Property = "fontName"
	PropFontSize       Property = "fontSize"
	PropLineHeight     Property = "lineHeight"
	PropLetterSpacing  Property = "letterSpacing"
	PropTextCase       Property = "textCase"
	PropTextDecoration Property = "textDecoration"
	PropHyperlink      Property = "hyperlink"
)

// DefaultFonts are the fonts a new host has available.
var DefaultFonts = []host.FontName{
	{Family: "Inter", Style: "Regular"},
	{Family: "Inter", Style: "Medium"},
	{Family: "Inter", Style: "Semi Bold"},
	{Family: "Inter", Style: "Bold"},
	{Family: "Roboto", Style: "Regular"},
	{Family: "Roboto", Style: "Bold"},
}

// Default paints applied by CreateNode.
var (
	defaultFrameFill = host.Paint{Type: host.PaintSolid, Visible: true, Opacity: 1, BlendMode: doc.BlendNormal, Color: host.RGB{R: 1, G: 1, B: 1}}
	defaultShapeFill = host.Paint{Type: host.PaintSolid, Visible: true, Opacity: 1, BlendMode: doc.BlendNormal, Color: host.RGB{R: 0.851, G: 0.851, B: 0.851}}
	defaultTextFill  = host.Paint{Type: host.PaintSolid, Visible: true, Opacity: 1, BlendMode: doc.BlendNormal, Color: host.RGB{}}
)

// Host is an in-memory scene graph.
type Host struct {
	mu sync.RWMutex

	page  *Page
	nodes map[string]*node

	fonts   map[host.FontName]bool
	failing map[host.FontName]bool
	loaded  map[host.FontName]bool
	loads   []host.FontName

	selection []*node
	viewport  []string
}

var (
	_ host.Host = (*Host)(nil)

	_ host.AutoLayoutNode        = (*Frame)(nil)
	_ host.FrameNode             = (*Frame)(nil)
	_ host.RectangleCornerNode   = (*Frame)(nil)
	_ host.IndividualStrokesNode = (*Rectangle)(nil)
	_ host.TextNode              = (*Text)(nil)
	_ host.StarNode              = (*Star)(nil)
	_ host.EllipseNode           = (*Ellipse)(nil)
	_ host.BooleanOperationNode  = (*BooleanOperation)(nil)
	_ host.VectorNode            = (*Vector)(nil)
	_ host.ChildrenNode          = (*Page)(nil)
)

// Option configures a Host.
type Option func(*Host)

// WithFonts makes additional fonts available.
func WithFonts(fonts ...host.FontName) Option {
	return func(h *Host) {
		for _, f := range fonts {
			h.fonts[f] = true
		}
	}
}

// WithFailingFonts makes loading the given fonts fail even if available.
func WithFailingFonts(fonts ...host.FontName) Option {
	return func(h *Host) {
		for _, f := range fonts {
			h.failing[f] = true
		}
	}
}

// WithoutDefaultFonts starts the host with no fonts at all.
func WithoutDefaultFonts() Option {
	return func(h *Host) {
		clear(h.fonts)
	}
}

// New creates an empty host with a single page.
func New(opts ...Option) *Host {
	h := &Host{
		nodes:   map[string]*node{},
		fonts:   map[host.FontName]bool{},
		failing: map[host.FontName]bool{},
		loaded:  map[host.FontName]bool{},
	}
	for _, f := range DefaultFonts {
		h.fonts[f] = true
	}
	for _, opt := range opts {
		opt(h)
	}

	n := newNode(h, uuid.NewString(), host.TypePage)
	n.name = "Page 1"
	h.page = &Page{node: n, childrenMixin: childrenMixin{n}}
	n.self = h.page
	h.nodes[n.id] = n
	return h
}

// =============================================================================
// Factory
// =============================================================================

// creatable lists the types CreateNode accepts. Boolean operations only come
// from Combine, and whiteboard kinds are host-owned.
var creatable = map[string]bool{
	string(doc.TypeFrame):        true,
	string(doc.TypeGroup):        true,
	string(doc.TypeComponent):    true,
	string(doc.TypeComponentSet): true,
	string(doc.TypeInstance):     true,
	string(doc.TypeSection):      true,
	string(doc.TypeRectangle):    true,
	string(doc.TypeEllipse):      true,
	string(doc.TypePolygon):      true,
	string(doc.TypeStar):         true,
	string(doc.TypeLine):         true,
	string(doc.TypeVector):       true,
	string(doc.TypeText):         true,
	string(doc.TypeSlice):        true,
}

// CreateNode allocates a detached node with the host's default state.
func (h *Host) CreateNode(typ string) (host.SceneNode, error) {
	if !creatable[typ] {
		return nil, fmt.Errorf("create %q: not supported by this host", typ)
	}
	return h.Seed(typ), nil
}

// Seed allocates a detached node of any type, including those CreateNode
// refuses. It stands in for content the host runtime itself produced.
func (h *Host) Seed(typ string) host.SceneNode {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := newNode(h, uuid.NewString(), typ)
	switch doc.NodeType(typ) {
	case doc.TypeFrame, doc.TypeComponent, doc.TypeComponentSet, doc.TypeInstance, doc.TypeSection:
		n.fills = []host.Paint{defaultFrameFill}
	case doc.TypeRectangle, doc.TypeEllipse, doc.TypePolygon, doc.TypeStar, doc.TypeVector:
		n.fills = []host.Paint{defaultShapeFill}
	case doc.TypeLine:
		n.height = 0
		n.strokes = []host.Paint{defaultTextFill}
	case doc.TypeText:
		n.fills = []host.Paint{defaultTextFill}
		n.font = DefaultFonts[0]
		n.width, n.height = 0, 0
		n.text = textState{
			fontSize:      doc.DefaultFontSize,
			alignH:        doc.TextAlignLeft,
			alignV:        doc.TextAlignTop,
			lineHeight:    host.LineHeight{Unit: doc.UnitAuto},
			letterSpacing: host.LetterSpacing{Unit: doc.UnitPercent},
			textCase:      doc.TextCaseOriginal,
			decoration:    doc.TextDecorationNone,
			autoResize:    doc.AutoResizeWidthAndHeight,
			leadingTrim:   doc.LeadingTrimNone,
			truncation:    doc.TruncationDisabled,
		}
	}
	switch doc.NodeType(typ) {
	case doc.TypePolygon:
		n.points = doc.DefaultPolygonPoints
	case doc.TypeStar:
		n.points = doc.DefaultStarPoints
	}

	n.self = wrap(n)
	h.nodes[n.id] = n
	return n.self
}

// LoadFont loads a font. It fails for fonts the host does not have and for
// fonts configured to fail.
func (h *Host) LoadFont(ctx context.Context, f host.FontName) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loads = append(h.loads, f)
	if !h.fonts[f] {
		return fmt.Errorf("font %q is not available", f)
	}
	if h.failing[f] {
		return fmt.Errorf("font %q failed to load", f)
	}
	h.loaded[f] = true
	return nil
}

// FontLoads returns every font load attempt in order.
func (h *Host) FontLoads() []host.FontName {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.loads)
}

// Combine groups nodes under a new boolean operation node appended to parent.
// The operands keep their absolute position and the new node takes their
// joint bounds.
func (h *Host) Combine(op string, nodes []host.SceneNode, parent host.ChildrenNode) (host.BooleanOperationNode, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("combine: no nodes")
	}
	if !validBooleanOps[op] {
		return nil, fmt.Errorf("combine: unknown operation %q", op)
	}
	p, err := h.unwrap(parent)
	if err != nil {
		return nil, err
	}
	operands := make([]*node, len(nodes))
	for i, sn := range nodes {
		if operands[i], err = h.unwrap(sn); err != nil {
			return nil, err
		}
	}

	bo := h.Seed(string(doc.TypeBooleanOperation)).(*BooleanOperation)

	h.mu.Lock()
	defer h.mu.Unlock()

	b := bo.node
	b.booleanOp = op
	b.fills = slices.Clone(operands[0].fills)

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, o := range operands {
		minX, minY = math.Min(minX, o.x), math.Min(minY, o.y)
		maxX, maxY = math.Max(maxX, o.x+o.width), math.Max(maxY, o.y+o.height)
	}
	b.x, b.y = minX, minY
	b.width, b.height = math.Max(maxX-minX, minDimension), math.Max(maxY-minY, minDimension)

	if err := p.appendChild(b); err != nil {
		return nil, err
	}
	for _, o := range operands {
		if err := b.appendChild(o); err != nil {
			return nil, err
		}
		o.x -= minX
		o.y -= minY
	}
	return bo, nil
}

var validBooleanOps = map[string]bool{
	doc.BooleanUnion:     true,
	doc.BooleanSubtract:  true,
	doc.BooleanIntersect: true,
	doc.BooleanExclude:   true,
}

// =============================================================================
// Workspace
// =============================================================================

// CurrentPage returns the host's only page.
func (h *Host) CurrentPage() host.ChildrenNode { return h.page }

// Selection returns the selected nodes that still exist.
func (h *Host) Selection() []host.SceneNode {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var out []host.SceneNode
	for _, n := range h.selection {
		if !n.removed {
			out = append(out, n.self)
		}
	}
	return out
}

// SetSelection replaces the selection. Nodes from other hosts are ignored.
func (h *Host) SetSelection(nodes []host.SceneNode) {
	sel := h.resolve(nodes)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.selection = sel
}

// ScrollAndZoomIntoView records the nodes the viewport was fitted to.
func (h *Host) ScrollAndZoomIntoView(nodes []host.SceneNode) {
	sel := h.resolve(nodes)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.viewport = h.viewport[:0]
	for _, n := range sel {
		h.viewport = append(h.viewport, n.id)
	}
}

// Viewport returns the IDs of the nodes the viewport was last fitted to.
func (h *Host) Viewport() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.viewport)
}

// NodeByID finds a live node.
func (h *Host) NodeByID(id string) (host.SceneNode, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n, ok := h.nodes[id]
	if !ok {
		return nil, false
	}
	return n.self, true
}

// Len returns the number of live nodes, the page included.
func (h *Host) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.nodes)
}

func (h *Host) resolve(nodes []host.SceneNode) []*node {
	var out []*node
	for _, sn := range nodes {
		if n, err := h.unwrap(sn); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// unwrap returns the internal node behind a host node owned by h.
func (h *Host) unwrap(sn host.SceneNode) (*node, error) {
	if sn == nil {
		return nil, fmt.Errorf("nil node")
	}
	w, ok := sn.(interface{ base() *node })
	if !ok {
		return nil, fmt.Errorf("node %s does not belong to this host", sn.ID())
	}
	n := w.base()
	if n.h != h {
		return nil, fmt.Errorf("node %s does not belong to this host", sn.ID())
	}
	return n, nil
}

func (n *node) base() *node { return n }
