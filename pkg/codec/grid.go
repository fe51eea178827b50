package codec

import (
	"github.com/matzehuels/scenedoc/pkg/doc"
	"github.com/matzehuels/scenedoc/pkg/host"
)

// GuidesToHost converts canonical guides.
func GuidesToHost(guides []doc.Guide) []host.Guide {
	out := make([]host.Guide, len(guides))
	for i, g := range guides {
		out[i] = host.Guide{Axis: g.Axis, Offset: g.Offset}
	}
	return out
}

// GuidesFromHost converts host guides. An empty result is nil.
func GuidesFromHost(guides []host.Guide) []doc.Guide {
	var out []doc.Guide
	for _, g := range guides {
		out = append(out, doc.Guide{Axis: g.Axis, Offset: doc.Round4(g.Offset)})
	}
	return out
}

// LayoutGridToHost converts a canonical layout grid. It returns nil for
// unknown patterns. Pixel grids carry only their section size.
func LayoutGridToHost(g doc.LayoutGrid) *host.LayoutGrid {
	out := host.LayoutGrid{
		Pattern:     g.Pattern,
		Visible:     doc.Deref(g.Visible, true),
		Color:       RGBAToHost(doc.Deref(g.Color, doc.DefaultGridColor)),
		SectionSize: g.SectionSize,
	}
	switch g.Pattern {
	case doc.GridPixels:
	case doc.GridRows, doc.GridColumns:
		out.Alignment = doc.Or(g.Alignment, doc.DefaultGridAlignment)
		out.GutterSize = g.GutterSize
		out.Count = g.Count
		out.Offset = g.Offset
	default:
		return nil
	}
	return &out
}

// LayoutGridFromHost converts a host layout grid. It returns nil for unknown
// patterns.
func LayoutGridFromHost(g host.LayoutGrid) *doc.LayoutGrid {
	out := doc.LayoutGrid{
		Pattern:     g.Pattern,
		Visible:     visibleFromHost(g.Visible),
		SectionSize: doc.Round4(g.SectionSize),
	}
	if c := RGBAFromHost(g.Color); c != doc.DefaultGridColor {
		out.Color = &c
	}
	switch g.Pattern {
	case doc.GridPixels:
	case doc.GridRows, doc.GridColumns:
		if g.Alignment != doc.DefaultGridAlignment {
			out.Alignment = g.Alignment
		}
		out.GutterSize = doc.Round4(g.GutterSize)
		out.Count = g.Count
		out.Offset = doc.Round4(g.Offset)
	default:
		return nil
	}
	return &out
}

// LayoutGridsToHost converts a grid list, dropping unknown patterns.
func LayoutGridsToHost(grids []doc.LayoutGrid) []host.LayoutGrid {
	out := make([]host.LayoutGrid, 0, len(grids))
	for _, g := range grids {
		if hg := LayoutGridToHost(g); hg != nil {
			out = append(out, *hg)
		}
	}
	return out
}

// LayoutGridsFromHost converts a host grid list, dropping unknown patterns.
// An empty result is nil.
func LayoutGridsFromHost(grids []host.LayoutGrid) []doc.LayoutGrid {
	var out []doc.LayoutGrid
	for _, g := range grids {
		if dg := LayoutGridFromHost(g); dg != nil {
			out = append(out, *dg)
		}
	}
	return out
}
