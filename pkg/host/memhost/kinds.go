package memhost

import (
	"fmt"

	"github.com/matzehuels/scenedoc/pkg/doc"
	"github.com/matzehuels/scenedoc/pkg/host"
)

// =============================================================================
// Node Kinds
// =============================================================================

// Page is the root container of the host.
type Page struct {
	*node
	childrenMixin
}

// Frame backs FRAME, COMPONENT, COMPONENT_SET and INSTANCE nodes.
type Frame struct {
	*node
	childrenMixin
	geometryMixin
	sidesMixin
	blendMixin
	rectCornerMixin
	constraintMixin
	sizeConstraintMixin
	autoLayoutMixin
	layoutChildMixin
	frameMixin
}

// Section is a canvas section.
type Section struct {
	*node
	childrenMixin
	geometryMixin
}

// Group is a plain grouping container.
type Group struct {
	*node
	childrenMixin
	blendMixin
	layoutChildMixin
}

// BooleanOperation combines its children.
type BooleanOperation struct {
	*node
	childrenMixin
	geometryMixin
	blendMixin
	cornerMixin
	constraintMixin
	layoutChildMixin
	booleanMixin
}

// Rectangle is a rectangle.
type Rectangle struct {
	*node
	geometryMixin
	sidesMixin
	blendMixin
	rectCornerMixin
	constraintMixin
	sizeConstraintMixin
	layoutChildMixin
}

// Ellipse is an ellipse or arc.
type Ellipse struct {
	*node
	geometryMixin
	blendMixin
	constraintMixin
	sizeConstraintMixin
	layoutChildMixin
	ellipseMixin
}

// Polygon is a regular polygon.
type Polygon struct {
	*node
	geometryMixin
	blendMixin
	cornerMixin
	constraintMixin
	sizeConstraintMixin
	layoutChildMixin
	polygonMixin
}

// Star is a star.
type Star struct {
	*node
	geometryMixin
	blendMixin
	cornerMixin
	constraintMixin
	sizeConstraintMixin
	layoutChildMixin
	starMixin
}

// Line is a straight line.
type Line struct {
	*node
	geometryMixin
	blendMixin
	constraintMixin
	layoutChildMixin
}

// Vector is a free-form vector.
type Vector struct {
	*node
	geometryMixin
	blendMixin
	cornerMixin
	constraintMixin
	sizeConstraintMixin
	layoutChildMixin
	vectorMixin
}

// Text is a text node.
type Text struct {
	*node
	geometryMixin
	blendMixin
	constraintMixin
	sizeConstraintMixin
	layoutChildMixin
	textMixin
}

// Slice is an export region.
type Slice struct {
	*node
	constraintMixin
}

// Other backs host-owned kinds such as stickies and connectors.
type Other struct {
	*node
	geometryMixin
	blendMixin
}

func wrap(n *node) host.SceneNode {
	switch doc.NodeType(n.typ) {
	case doc.TypeFrame, doc.TypeComponent, doc.TypeComponentSet, doc.TypeInstance:
		return &Frame{
			node: n, childrenMixin: childrenMixin{n}, geometryMixin: geometryMixin{n},
			sidesMixin: sidesMixin{n}, blendMixin: blendMixin{n},
			rectCornerMixin: rectCornerMixin{cornerMixin{n}}, constraintMixin: constraintMixin{n},
			sizeConstraintMixin: sizeConstraintMixin{n}, autoLayoutMixin: autoLayoutMixin{n},
			layoutChildMixin: layoutChildMixin{n}, frameMixin: frameMixin{n},
		}
	case doc.TypeSection:
		return &Section{node: n, childrenMixin: childrenMixin{n}, geometryMixin: geometryMixin{n}}
	case doc.TypeGroup:
		return &Group{node: n, childrenMixin: childrenMixin{n}, blendMixin: blendMixin{n}, layoutChildMixin: layoutChildMixin{n}}
	case doc.TypeBooleanOperation:
		return &BooleanOperation{
			node: n, childrenMixin: childrenMixin{n}, geometryMixin: geometryMixin{n},
			blendMixin: blendMixin{n}, cornerMixin: cornerMixin{n}, constraintMixin: constraintMixin{n},
			layoutChildMixin: layoutChildMixin{n}, booleanMixin: booleanMixin{n},
		}
	case doc.TypeRectangle:
		return &Rectangle{
			node: n, geometryMixin: geometryMixin{n}, sidesMixin: sidesMixin{n},
			blendMixin: blendMixin{n}, rectCornerMixin: rectCornerMixin{cornerMixin{n}},
			constraintMixin: constraintMixin{n}, sizeConstraintMixin: sizeConstraintMixin{n},
			layoutChildMixin: layoutChildMixin{n},
		}
	case doc.TypeEllipse:
		return &Ellipse{
			node: n, geometryMixin: geometryMixin{n}, blendMixin: blendMixin{n},
			constraintMixin: constraintMixin{n}, sizeConstraintMixin: sizeConstraintMixin{n},
			layoutChildMixin: layoutChildMixin{n}, ellipseMixin: ellipseMixin{n},
		}
	case doc.TypePolygon:
		return &Polygon{
			node: n, geometryMixin: geometryMixin{n}, blendMixin: blendMixin{n},
			cornerMixin: cornerMixin{n}, constraintMixin: constraintMixin{n},
			sizeConstraintMixin: sizeConstraintMixin{n}, layoutChildMixin: layoutChildMixin{n},
			polygonMixin: polygonMixin{n},
		}
	case doc.TypeStar:
		return &Star{
			node: n, geometryMixin: geometryMixin{n}, blendMixin: blendMixin{n},
			cornerMixin: cornerMixin{n}, constraintMixin: constraintMixin{n},
			sizeConstraintMixin: sizeConstraintMixin{n}, layoutChildMixin: layoutChildMixin{n},
			starMixin: starMixin{polygonMixin{n}},
		}
	case doc.TypeLine:
		return &Line{
			node: n, geometryMixin: geometryMixin{n}, blendMixin: blendMixin{n},
			constraintMixin: constraintMixin{n}, layoutChildMixin: layoutChildMixin{n},
		}
	case doc.TypeVector:
		return &Vector{
			node: n, geometryMixin: geometryMixin{n}, blendMixin: blendMixin{n},
			cornerMixin: cornerMixin{n}, constraintMixin: constraintMixin{n},
			sizeConstraintMixin: sizeConstraintMixin{n}, layoutChildMixin: layoutChildMixin{n},
			vectorMixin: vectorMixin{n},
		}
	case doc.TypeText:
		return &Text{
			node: n, geometryMixin: geometryMixin{n}, blendMixin: blendMixin{n},
			constraintMixin: constraintMixin{n}, sizeConstraintMixin: sizeConstraintMixin{n},
			layoutChildMixin: layoutChildMixin{n}, textMixin: textMixin{n},
		}
	case doc.TypeSlice:
		return &Slice{node: n, constraintMixin: constraintMixin{n}}
	}
	if n.typ == host.TypePage {
		return &Page{node: n, childrenMixin: childrenMixin{n}}
	}
	return &Other{node: n, geometryMixin: geometryMixin{n}, blendMixin: blendMixin{n}}
}

// =============================================================================
// Type-specific Mixins
// =============================================================================

type booleanMixin struct{ n *node }

func (m booleanMixin) BooleanOperation() string {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	return m.n.booleanOp
}

func (m booleanMixin) SetBooleanOperation(op string) error {
	if !validBooleanOps[op] {
		return fmt.Errorf("unknown boolean operation %q", op)
	}
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	m.n.booleanOp = op
	return nil
}

type ellipseMixin struct{ n *node }

func (m ellipseMixin) ArcData() host.ArcData {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	return m.n.arc
}

func (m ellipseMixin) SetArcData(a host.ArcData) error {
	if a.InnerRadius < 0 || a.InnerRadius > 1 {
		return fmt.Errorf("arc inner radius %g out of range", a.InnerRadius)
	}
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	m.n.arc = a
	return nil
}

type polygonMixin struct{ n *node }

func (m polygonMixin) PointCount() int {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	return m.n.points
}

func (m polygonMixin) SetPointCount(count int) error {
	if count < 3 {
		return fmt.Errorf("point count %d must be at least 3", count)
	}
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	m.n.points = count
	return nil
}

type starMixin struct {
	polygonMixin
}

func (m starMixin) InnerRadius() float64 {
	m.n.h.mu.RLock()
	defer m.n.h.mu.RUnlock()
	return m.n.innerRadius
}

func (m starMixin) SetInnerRadius(r float64) error {
	if r < 0 || r > 1 {
		return fmt.Errorf("inner radius %g out of range", r)
	}
	m.n.h.mu.Lock()
	defer m.n.h.mu.Unlock()
	m.n.innerRadius = r
	return nil
}
