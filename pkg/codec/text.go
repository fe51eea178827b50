package codec

import (
	"github.com/matzehuels/scenedoc/pkg/doc"
	"github.com/matzehuels/scenedoc/pkg/host"
)

// =============================================================================
// Typography
// =============================================================================

// FontNameToHost converts a canonical font name.
func FontNameToHost(f doc.FontName) host.FontName {
	return host.FontName{Family: f.Family, Style: f.Style}
}

// FontNameFromHost converts a host font name.
func FontNameFromHost(f host.FontName) doc.FontName {
	return doc.FontName{Family: f.Family, Style: f.Style}
}

// LineHeightToHost converts a canonical line height. AUTO drops the value.
func LineHeightToHost(l doc.LineHeight) host.LineHeight {
	if l.Unit == doc.UnitAuto {
		return host.LineHeight{Unit: doc.UnitAuto}
	}
	return host.LineHeight{Unit: l.Unit, Value: l.Value}
}

// LineHeightFromHost converts a host line height. It returns nil for unknown
// units.
func LineHeightFromHost(l host.LineHeight) *doc.LineHeight {
	switch l.Unit {
	case doc.UnitAuto:
		return &doc.LineHeight{Unit: doc.UnitAuto}
	case doc.UnitPixels, doc.UnitPercent:
		return &doc.LineHeight{Unit: l.Unit, Value: doc.Round4(l.Value)}
	}
	return nil
}

// LetterSpacingToHost converts a canonical letter spacing.
func LetterSpacingToHost(l doc.LetterSpacing) host.LetterSpacing {
	return host.LetterSpacing{Unit: doc.Or(l.Unit, doc.UnitPercent), Value: l.Value}
}

// LetterSpacingFromHost converts a host letter spacing. It returns nil for
// unknown units.
func LetterSpacingFromHost(l host.LetterSpacing) *doc.LetterSpacing {
	switch l.Unit {
	case doc.UnitPixels, doc.UnitPercent:
		return &doc.LetterSpacing{Unit: l.Unit, Value: doc.Round4(l.Value)}
	}
	return nil
}

// HyperlinkToHost converts a canonical hyperlink.
func HyperlinkToHost(h doc.Hyperlink) host.Hyperlink {
	return host.Hyperlink{Type: h.Type, Value: h.Value}
}

// HyperlinkFromHost converts a host hyperlink. A link without a target is nil.
func HyperlinkFromHost(h host.Hyperlink) *doc.Hyperlink {
	if h.Value == "" {
		return nil
	}
	return &doc.Hyperlink{Type: h.Type, Value: h.Value}
}
