package memhost

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/srwiley/rasterx"

	"github.com/matzehuels/scenedoc/pkg/doc"
	"github.com/matzehuels/scenedoc/pkg/host"
)

// node holds the complete state of one host node. Kind wrappers (Frame,
// Rectangle, Text, ...) embed it and add only the capability mixins that
// apply to their type, so type assertions against the host interfaces behave
// like a real host.
type node struct {
	h    *Host
	self host.SceneNode

	id      string
	typ     string
	name    string
	x, y    float64
	width   float64
	height  float64
	rot     float64
	visible bool
	locked  bool
	parent  *node
	kids    []*node
	removed bool

	mixed map[Property]bool

	fills        []host.Paint
	strokes      []host.Paint
	strokeWeight float64
	strokeAlign  string
	strokeCap    string
	strokeJoin   string
	miterLimit   float64
	dash         []float64
	sides        *host.StrokeSides

	opacity       float64
	blendMode     string
	isMask        bool
	effects       []host.Effect
	effectStyleID string

	radii     host.CornerRadii
	smoothing float64

	constraints host.Constraints
	sizes       host.SizeConstraints
	layout      host.AutoLayout
	child       host.LayoutChild

	guides      []host.Guide
	grids       []host.LayoutGrid
	gridStyleID string

	characters string
	font       host.FontName
	text       textState

	arc         host.ArcData
	points      int
	innerRadius float64
	booleanOp   string
	paths       []host.VectorPath
	network     host.VectorNetwork
}

// textState is the stored typography of a text node.
type textState struct {
	fontSize         float64
	alignH, alignV   string
	lineHeight       host.LineHeight
	letterSpacing    host.LetterSpacing
	textCase         string
	decoration       string
	autoResize       string
	paragraphIndent  float64
	paragraphSpacing float64
	listSpacing      float64
	hangingPunct     bool
	hangingList      bool
	leadingTrim      string
	truncation       string
	maxLines         *int
	hyperlink        *host.Hyperlink
	styleID          string
}

func newNode(h *Host, id, typ string) *node {
	return &node{
		h:            h,
		id:           id,
		typ:          typ,
		name:         typeTitle(typ),
		width:        doc.DefaultSize,
		height:       doc.DefaultSize,
		visible:      true,
		mixed:        map[Property]bool{},
		strokeWeight: doc.DefaultStrokeWeight,
		strokeAlign:  doc.StrokeAlignInside,
		strokeCap:    doc.StrokeCapNone,
		strokeJoin:   doc.StrokeJoinMiter,
		miterLimit:   doc.DefaultStrokeMiterLimit,
		opacity:      doc.DefaultOpacity,
		blendMode:    doc.BlendPassThrough,
		constraints:  host.Constraints{Horizontal: doc.ConstraintMin, Vertical: doc.ConstraintMin},
		layout: host.AutoLayout{
			LayoutMode:              doc.LayoutModeNone,
			PrimaryAxisSizingMode:   doc.AxisSizingFixed,
			CounterAxisSizingMode:   doc.AxisSizingFixed,
			PrimaryAxisAlignItems:   doc.AxisAlignMin,
			CounterAxisAlignItems:   doc.AxisAlignMin,
			LayoutWrap:              doc.WrapNone,
			CounterAxisAlignContent: doc.AlignContentAuto,
		},
		child:       defaultLayoutChild(),
		arc:         host.ArcData{EndingAngle: doc.FullArc},
		innerRadius: doc.DefaultInnerRadius,
		booleanOp:   doc.BooleanUnion,
	}
}

func defaultLayoutChild() host.LayoutChild {
	return host.LayoutChild{
		LayoutAlign:            doc.LayoutAlignInherit,
		LayoutPositioning:      doc.PositioningAuto,
		LayoutSizingHorizontal: doc.LayoutSizingFixed,
		LayoutSizingVertical:   doc.LayoutSizingFixed,
	}
}

func typeTitle(typ string) string {
	if typ == "" {
		return "Node"
	}
	return typ[:1] + strings.ReplaceAll(strings.ToLower(typ[1:]), "_", " ")
}

// =============================================================================
// SceneNode
// =============================================================================

func (n *node) ID() string   { return n.id }
func (n *node) Type() string { return n.typ }

func (n *node) Name() string {
	n.h.mu.RLock()
	defer n.h.mu.RUnlock()
	return n.name
}

func (n *node) SetName(name string) {
	n.h.mu.Lock()
	defer n.h.mu.Unlock()
	n.name = name
}

func (n *node) X() float64 {
	n.h.mu.RLock()
	defer n.h.mu.RUnlock()
	return n.x
}

func (n *node) Y() float64 {
	n.h.mu.RLock()
	defer n.h.mu.RUnlock()
	return n.y
}

func (n *node) SetPosition(x, y float64) {
	n.h.mu.Lock()
	defer n.h.mu.Unlock()
	n.x, n.y = x, y
}

func (n *node) Width() float64 {
	n.h.mu.RLock()
	defer n.h.mu.RUnlock()
	return n.width
}

func (n *node) Height() float64 {
	n.h.mu.RLock()
	defer n.h.mu.RUnlock()
	return n.height
}

// minDimension is the smallest size the host accepts. Lines are the only
// nodes allowed a zero height.
const minDimension = 0.01

func (n *node) Resize(w, h float64) error {
	n.h.mu.Lock()
	defer n.h.mu.Unlock()
	if err := n.alive(); err != nil {
		return err
	}
	if math.IsNaN(w) || math.IsNaN(h) || w < minDimension {
		return fmt.Errorf("resize %s: invalid size %gx%g", n.typ, w, h)
	}
	if n.typ == string(doc.TypeLine) {
		if h != 0 {
			return fmt.Errorf("resize %s: line height must be 0", n.typ)
		}
	} else if h < minDimension {
		return fmt.Errorf("resize %s: invalid size %gx%g", n.typ, w, h)
	}
	n.width, n.height = w, h
	return nil
}

func (n *node) Rotation() float64 {
	n.h.mu.RLock()
	defer n.h.mu.RUnlock()
	return n.rot
}

func (n *node) SetRotation(deg float64) {
	n.h.mu.Lock()
	defer n.h.mu.Unlock()
	n.rot = deg
}

// RelativeTransform composes the translation with the counter-clockwise
// rotation around the node origin.
func (n *node) RelativeTransform() host.Transform {
	n.h.mu.RLock()
	defer n.h.mu.RUnlock()
	m := rasterx.Identity.Translate(n.x, n.y).Rotate(-n.rot * math.Pi / 180)
	return host.Transform{{m.A, m.C, m.E}, {m.B, m.D, m.F}}
}

func (n *node) Visible() bool {
	n.h.mu.RLock()
	defer n.h.mu.RUnlock()
	return n.visible
}

func (n *node) SetVisible(v bool) {
	n.h.mu.Lock()
	defer n.h.mu.Unlock()
	n.visible = v
}

func (n *node) Locked() bool {
	n.h.mu.RLock()
	defer n.h.mu.RUnlock()
	return n.locked
}

func (n *node) SetLocked(v bool) {
	n.h.mu.Lock()
	defer n.h.mu.Unlock()
	n.locked = v
}

func (n *node) Parent() host.ChildrenNode {
	n.h.mu.RLock()
	defer n.h.mu.RUnlock()
	if n.parent == nil {
		return nil
	}
	p, _ := n.parent.self.(host.ChildrenNode)
	return p
}

func (n *node) Remove() {
	n.h.mu.Lock()
	defer n.h.mu.Unlock()
	n.detach()
	n.destroy()
}

// Removed reports whether the node has been removed from the host.
func (n *node) Removed() bool {
	n.h.mu.RLock()
	defer n.h.mu.RUnlock()
	return n.removed
}

// SetMixed marks properties as holding heterogeneous sub-values, the way a
// host reports a text run with several fonts or a vector with per-vertex
// stroke caps.
func (n *node) SetMixed(props ...Property) {
	n.h.mu.Lock()
	defer n.h.mu.Unlock()
	for _, p := range props {
		n.mixed[p] = true
	}
}

// =============================================================================
// Tree Helpers (caller holds the lock)
// =============================================================================

func (n *node) alive() error {
	if n.removed {
		return fmt.Errorf("node %s has been removed", n.id)
	}
	return nil
}

func (n *node) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	p.kids = slices.DeleteFunc(p.kids, func(c *node) bool { return c == n })
	n.parent = nil
}

func (n *node) destroy() {
	n.removed = true
	delete(n.h.nodes, n.id)
	for _, c := range n.kids {
		c.parent = nil
		c.destroy()
	}
	n.kids = nil
}

func (n *node) isAncestorOf(c *node) bool {
	for p := c; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// =============================================================================
// Children Mixin
// =============================================================================

type childrenMixin struct{ n *node }

func (m childrenMixin) Children() []host.SceneNode {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	out := make([]host.SceneNode, len(m.n.kids))
	for i, c := range m.n.kids {
		out[i] = c.self
	}
	return out
}

func (m childrenMixin) AppendChild(child host.SceneNode) error {
	c, err := m.n.h.unwrap(child)
	if err != nil {
		return err
	}
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	return m.n.appendChild(c)
}

func (n *node) appendChild(c *node) error {
	if err := n.alive(); err != nil {
		return err
	}
	if err := c.alive(); err != nil {
		return err
	}
	if c.isAncestorOf(n) {
		return fmt.Errorf("append %s into %s: would create a cycle", c.id, n.id)
	}
	c.detach()
	c.parent = n
	n.kids = append(n.kids, c)

	// Participation is recomputed from the parent's configuration at the
	// moment of appending.
	c.child = defaultLayoutChild()
	return nil
}

func (n *node) hasAutoLayout() bool {
	return n != nil && n.layout.LayoutMode != doc.LayoutModeNone
}
