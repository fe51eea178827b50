package codec

import (
	"github.com/matzehuels/scenedoc/pkg/doc"
	"github.com/matzehuels/scenedoc/pkg/host"
)

// ScaleModeFill is the default image scale mode.
const ScaleModeFill = "FILL"

// FillToHost converts a canonical fill. It returns nil for unknown variants,
// solids without a color, gradients without stops, and images or videos
// without a hash.
func FillToHost(f doc.Fill) *host.Paint {
	p := host.Paint{
		Type:      string(f.Type),
		Visible:   doc.Deref(f.Visible, true),
		Opacity:   Opacity(f.Opacity),
		BlendMode: doc.Or(f.BlendMode, doc.BlendNormal),
	}

	switch f.Type {
	case doc.FillSolid:
		if f.Color == nil {
			return nil
		}
		p.Color = ColorToHost(*f.Color)

	case doc.FillGradientLinear, doc.FillGradientRadial, doc.FillGradientAngular, doc.FillGradientDiamond:
		if len(f.Stops) == 0 {
			return nil
		}
		p.GradientStops = make([]host.ColorStop, len(f.Stops))
		for i, s := range f.Stops {
			p.GradientStops[i] = host.ColorStop{Position: Clamp01(s.Position), Color: RGBAToHost(s.Color)}
		}
		p.GradientTransform = host.Identity
		if f.Transform != nil {
			p.GradientTransform = TransformToHost(*f.Transform)
		}

	case doc.FillImage:
		if f.Hash == "" {
			return nil
		}
		p.ImageHash = f.Hash
		p.ScaleMode = doc.Or(f.ScaleMode, ScaleModeFill)
		if f.Transform != nil {
			t := TransformToHost(*f.Transform)
			p.ImageTransform = &t
		}
		if f.Filters != nil {
			p.Filters = &host.ImageFilters{
				Exposure: f.Filters.Exposure, Contrast: f.Filters.Contrast,
				Saturation: f.Filters.Saturation, Temperature: f.Filters.Temperature,
				Tint: f.Filters.Tint, Highlights: f.Filters.Highlights, Shadows: f.Filters.Shadows,
			}
		}

	case doc.FillVideo:
		if f.Hash == "" {
			return nil
		}
		p.VideoHash = f.Hash
		p.ScaleMode = doc.Or(f.ScaleMode, ScaleModeFill)

	default:
		return nil
	}
	return &p
}

// FillFromHost converts a host paint into its elided canonical form. It
// returns nil for unknown kinds and underspecified paints.
func FillFromHost(p host.Paint) *doc.Fill {
	f := doc.Fill{
		Type:    doc.FillType(p.Type),
		Visible: visibleFromHost(p.Visible),
		Opacity: opacityFromHost(p.Opacity),
	}
	if p.BlendMode != doc.BlendNormal {
		f.BlendMode = p.BlendMode
	}

	switch f.Type {
	case doc.FillSolid:
		c := ColorFromHost(p.Color)
		f.Color = &c

	case doc.FillGradientLinear, doc.FillGradientRadial, doc.FillGradientAngular, doc.FillGradientDiamond:
		if len(p.GradientStops) == 0 {
			return nil
		}
		f.Stops = make([]doc.ColorStop, len(p.GradientStops))
		for i, s := range p.GradientStops {
			f.Stops[i] = doc.ColorStop{Position: doc.Round4(Clamp01(s.Position)), Color: RGBAFromHost(s.Color)}
		}
		if t := TransformFromHost(p.GradientTransform); t != doc.IdentityTransform {
			f.Transform = &t
		}

	case doc.FillImage:
		if p.ImageHash == "" {
			return nil
		}
		f.Hash = p.ImageHash
		if p.ScaleMode != ScaleModeFill {
			f.ScaleMode = p.ScaleMode
		}
		if p.ImageTransform != nil {
			t := TransformFromHost(*p.ImageTransform)
			f.Transform = &t
		}
		if p.Filters != nil && *p.Filters != (host.ImageFilters{}) {
			x := p.Filters
			f.Filters = &doc.ImageFilters{
				Exposure: x.Exposure, Contrast: x.Contrast, Saturation: x.Saturation,
				Temperature: x.Temperature, Tint: x.Tint, Highlights: x.Highlights, Shadows: x.Shadows,
			}
		}

	case doc.FillVideo:
		if p.VideoHash == "" {
			return nil
		}
		f.Hash = p.VideoHash
		if p.ScaleMode != ScaleModeFill {
			f.ScaleMode = p.ScaleMode
		}

	default:
		return nil
	}
	return &f
}

// FillsToHost converts a fill list, dropping unsupported entries. It returns
// the number of dropped fills.
func FillsToHost(fills []doc.Fill) ([]host.Paint, int) {
	out := make([]host.Paint, 0, len(fills))
	for _, f := range fills {
		if p := FillToHost(f); p != nil {
			out = append(out, *p)
		}
	}
	return out, len(fills) - len(out)
}

// FillsFromHost converts a host paint list, dropping unsupported entries. An
// empty result is nil. It returns the number of dropped paints.
func FillsFromHost(paints []host.Paint) ([]doc.Fill, int) {
	var out []doc.Fill
	for _, p := range paints {
		if f := FillFromHost(p); f != nil {
			out = append(out, *f)
		}
	}
	return out, len(paints) - len(out)
}
