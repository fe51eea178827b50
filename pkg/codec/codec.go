// Package codec converts between host and canonical value representations.
//
// Every converter is a pure function. Converting toward the host returns a
// host value; converting toward the canonical form returns a pointer that is
// nil when the input is unsupported or underspecified:
//
//	if f := codec.FillFromHost(p); f != nil {
//	    fills = append(fills, *f)
//	}
//
// A nil result is a normal skip, not an error. The plural helpers
// ([FillsFromHost], [EffectsToHost], ...) drop nil results and report how many
// inputs were dropped so callers can log them.
//
// # Colors
//
// Color channels are clamped to [0,1] in both directions. Values headed for
// the canonical form are also rounded to 4 decimals, which keeps exported
// documents stable across hosts with different float behaviour.
package codec

import (
	"math"

	"github.com/matzehuels/scenedoc/pkg/doc"
	"github.com/matzehuels/scenedoc/pkg/host"
)

// =============================================================================
// Scalars
// =============================================================================

// Clamp01 clamps v to [0,1]. NaN becomes 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Opacity resolves an optional opacity: absent or NaN is 1, anything else is
// clamped to [0,1].
func Opacity(o *float64) float64 {
	if o == nil || math.IsNaN(*o) {
		return doc.DefaultOpacity
	}
	return Clamp01(*o)
}

// opacityFromHost returns nil for the default opacity.
func opacityFromHost(o float64) *float64 {
	if math.IsNaN(o) {
		return nil
	}
	v := doc.Round4(Clamp01(o))
	if v == doc.DefaultOpacity {
		return nil
	}
	return &v
}

func visibleFromHost(v bool) *bool {
	if v {
		return nil
	}
	return doc.Ptr(false)
}

// =============================================================================
// Colors
// =============================================================================

// ColorToHost clamps a canonical color.
func ColorToHost(c doc.RGB) host.RGB {
	return host.RGB{R: Clamp01(c.R), G: Clamp01(c.G), B: Clamp01(c.B)}
}

// ColorFromHost clamps and rounds a host color.
func ColorFromHost(c host.RGB) doc.RGB {
	return doc.RGB{R: channel(c.R), G: channel(c.G), B: channel(c.B)}
}

// RGBAToHost clamps a canonical color with alpha.
func RGBAToHost(c doc.RGBA) host.RGBA {
	return host.RGBA{R: Clamp01(c.R), G: Clamp01(c.G), B: Clamp01(c.B), A: Clamp01(c.A)}
}

// RGBAFromHost clamps and rounds a host color with alpha.
func RGBAFromHost(c host.RGBA) doc.RGBA {
	return doc.RGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: channel(c.A)}
}

func channel(v float64) float64 { return doc.Round4(Clamp01(v)) }

// =============================================================================
// Transforms
// =============================================================================

// TransformToHost copies a canonical transform.
func TransformToHost(t doc.Transform) host.Transform { return host.Transform(t) }

// TransformFromHost rounds every entry of a host transform to 4 decimals.
func TransformFromHost(t host.Transform) doc.Transform {
	var out doc.Transform
	for i := range t {
		for j := range t[i] {
			out[i][j] = doc.Round4(t[i][j])
		}
	}
	return out
}
