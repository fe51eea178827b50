package convert

import (
	"github.com/matzehuels/scenedoc/pkg/doc"
	"github.com/matzehuels/scenedoc/pkg/host"
)

// extractor fills one property group of out from a host node. It does nothing
// when the node lacks the capability.
type extractor func(r *exportRun, path string, n host.SceneNode, out *doc.Node)

// constructor builds the detached host node for b.
type constructor func(b *build) (host.SceneNode, error)

// strategy is the export and construction behaviour of one node type.
type strategy struct {
	extract   []extractor
	construct constructor
}

// Extractor sets shared by several types.
var (
	frameExtractors = []extractor{
		extractGeometry, extractBlend, extractCorners, extractConstraints,
		extractAutoLayout, extractLayoutChild, extractFrameExtras,
	}
	shapeExtractors = []extractor{
		extractGeometry, extractBlend, extractCorners, extractConstraints,
		extractLayoutChild, extractShapeExtras,
	}
	hostOwnedExtractors = []extractor{extractGeometry, extractBlend}
)

var registry map[doc.NodeType]strategy

func init() {
	registry = map[doc.NodeType]strategy{
		doc.TypeFrame:            {frameExtractors, constructNode},
		doc.TypeComponent:        {frameExtractors, constructNode},
		doc.TypeComponentSet:     {frameExtractors, constructNode},
		doc.TypeInstance:         {frameExtractors, constructNode},
		doc.TypeSection:          {[]extractor{extractGeometry}, constructNode},
		doc.TypeGroup:            {[]extractor{extractBlend, extractLayoutChild}, constructNode},
		doc.TypeBooleanOperation: {shapeExtractors, constructBoolean},

		doc.TypeRectangle: {shapeExtractors, constructNode},
		doc.TypeEllipse:   {shapeExtractors, constructNode},
		doc.TypePolygon:   {shapeExtractors, constructNode},
		doc.TypeStar:      {shapeExtractors, constructNode},
		doc.TypeLine:      {shapeExtractors, constructNode},
		doc.TypeVector:    {shapeExtractors, constructVector},

		doc.TypeText: {[]extractor{
			extractGeometry, extractBlend, extractConstraints, extractLayoutChild, extractText,
		}, constructText},
		doc.TypeSlice: {[]extractor{extractConstraints}, constructNode},
	}

	// Whiteboard kinds are owned by the host runtime and cannot be created.
	for _, t := range []doc.NodeType{
		doc.TypeSticky, doc.TypeShapeWithText, doc.TypeConnector, doc.TypeCodeBlock,
		doc.TypeStamp, doc.TypeWidget, doc.TypeEmbed, doc.TypeLinkUnfurl,
		doc.TypeMedia, doc.TypeHighlight, doc.TypeWashiTape, doc.TypeTable,
	} {
		registry[t] = strategy{hostOwnedExtractors, constructStandIn}
	}
}

// lookup returns the strategy for a normalized type.
func lookup(t doc.NodeType) strategy {
	if s, ok := registry[t]; ok {
		return s
	}
	return registry[doc.DefaultType]
}
