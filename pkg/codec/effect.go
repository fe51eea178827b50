package codec

import (
	"math"

	"github.com/matzehuels/scenedoc/pkg/doc"
	"github.com/matzehuels/scenedoc/pkg/host"
)

// EffectToHost converts a canonical effect. It returns nil for unknown
// variants.
func EffectToHost(e doc.Effect) *host.Effect {
	fx := host.Effect{
		Type:    string(e.Type),
		Visible: doc.Deref(e.Visible, true),
		Radius:  nonNegative(e.Radius),
	}
	switch e.Type {
	case doc.EffectDropShadow, doc.EffectInnerShadow:
		fx.Color = RGBAToHost(doc.Deref(e.Color, doc.DefaultShadowColor))
		o := doc.Deref(e.Offset, doc.DefaultShadowOffset)
		fx.Offset = host.Vector{X: o.X, Y: o.Y}
		fx.Spread = e.Spread
		fx.BlendMode = doc.Or(e.BlendMode, doc.BlendNormal)
		fx.ShowShadowBehindNode = e.Type == doc.EffectDropShadow && e.ShowBehind
	case doc.EffectLayerBlur, doc.EffectBackgroundBlur:
	default:
		return nil
	}
	return &fx
}

// EffectFromHost converts a host effect into its elided canonical form. It
// returns nil for kinds outside the four supported ones.
func EffectFromHost(fx host.Effect) *doc.Effect {
	e := doc.Effect{
		Type:    doc.EffectType(fx.Type),
		Visible: visibleFromHost(fx.Visible),
		Radius:  doc.Round4(nonNegative(fx.Radius)),
	}
	switch e.Type {
	case doc.EffectDropShadow, doc.EffectInnerShadow:
		if c := RGBAFromHost(fx.Color); c != doc.DefaultShadowColor {
			e.Color = &c
		}
		if o := (doc.Vector{X: doc.Round4(fx.Offset.X), Y: doc.Round4(fx.Offset.Y)}); o != doc.DefaultShadowOffset {
			e.Offset = &o
		}
		e.Spread = doc.Round4(fx.Spread)
		if fx.BlendMode != doc.BlendNormal {
			e.BlendMode = fx.BlendMode
		}
		e.ShowBehind = e.Type == doc.EffectDropShadow && fx.ShowShadowBehindNode
	case doc.EffectLayerBlur, doc.EffectBackgroundBlur:
	default:
		return nil
	}
	return &e
}

// EffectsToHost converts an effect list, dropping unsupported entries. It
// returns the number of dropped effects.
func EffectsToHost(effects []doc.Effect) ([]host.Effect, int) {
	out := make([]host.Effect, 0, len(effects))
	for _, e := range effects {
		if fx := EffectToHost(e); fx != nil {
			out = append(out, *fx)
		}
	}
	return out, len(effects) - len(out)
}

// EffectsFromHost converts a host effect list, dropping unsupported entries.
// An empty result is nil. It returns the number of dropped effects.
func EffectsFromHost(effects []host.Effect) ([]doc.Effect, int) {
	var out []doc.Effect
	for _, fx := range effects {
		if e := EffectFromHost(fx); e != nil {
			out = append(out, *e)
		}
	}
	return out, len(effects) - len(out)
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
