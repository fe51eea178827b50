package convert

import (
	"errors"
	"testing"

	"github.com/matzehuels/scenedoc/pkg/doc"
	errs "github.com/matzehuels/scenedoc/pkg/errors"
	"github.com/matzehuels/scenedoc/pkg/host"
)

func TestRegistryCoversAllTypes(t *testing.T) {
	for _, typ := range doc.AllTypes() {
		s, ok := registry[typ]
		if !ok {
			t.Errorf("no strategy for %s", typ)
			continue
		}
		if s.construct == nil {
			t.Errorf("strategy for %s has no constructor", typ)
		}
		if len(s.extract) == 0 {
			t.Errorf("strategy for %s has no extractors", typ)
		}
	}
	if len(registry) != len(doc.AllTypes()) {
		t.Errorf("registry has %d entries, want %d", len(registry), len(doc.AllTypes()))
	}
}

func TestLookupFallsBackToDefaultType(t *testing.T) {
	got := lookup("HOLOGRAM")
	want := registry[doc.DefaultType]
	if len(got.extract) != len(want.extract) {
		t.Errorf("lookup(HOLOGRAM) has %d extractors, want %d", len(got.extract), len(want.extract))
	}
}

func TestFontChain(t *testing.T) {
	inter := doc.FontName{Family: "Inter", Style: "Regular"}
	roboto := doc.FontName{Family: "Roboto", Style: "Regular"}
	custom := doc.FontName{Family: "Brand", Style: "Bold"}
	fail := errors.New("unavailable")

	tests := []struct {
		name      string
		requested *doc.FontName
		results   map[doc.FontName]error
		wantState fontState
		wantFont  doc.FontName
		wantTried int
	}{
		{"requested loads", &custom, nil, fontLoaded, custom, 1},
		{"first default", &custom, map[doc.FontName]error{custom: fail}, fontLoaded, inter, 2},
		{"second default", &custom, map[doc.FontName]error{custom: fail, inter: fail}, fontLoaded, roboto, 3},
		{"exhausted", &custom, map[doc.FontName]error{custom: fail, inter: fail, roboto: fail}, fontExhausted, doc.FontName{}, 3},
		{"no request", nil, nil, fontLoaded, inter, 1},
		{"duplicate request", &roboto, map[doc.FontName]error{roboto: fail, inter: fail}, fontExhausted, doc.FontName{}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newFontChain(tt.requested, []doc.FontName{inter, roboto})
			tried := 0
			for c.state == fontTrying {
				tried++
				c.advance(tt.results[c.current()])
			}
			if c.state != tt.wantState {
				t.Fatalf("state = %v, want %v", c.state, tt.wantState)
			}
			if tried != tt.wantTried {
				t.Errorf("tried %d fonts, want %d", tried, tt.wantTried)
			}
			if c.state == fontLoaded && c.current() != tt.wantFont {
				t.Errorf("loaded %v, want %v", c.current(), tt.wantFont)
			}
			if c.state == fontExhausted && len(c.failures) != tt.wantTried {
				t.Errorf("recorded %d failures, want %d", len(c.failures), tt.wantTried)
			}
		})
	}
}

func TestFontChainEmpty(t *testing.T) {
	c := newFontChain(nil, nil)
	if c.state != fontExhausted {
		t.Errorf("empty chain state = %v, want exhausted", c.state)
	}
	c.advance(nil)
	if c.state != fontExhausted {
		t.Error("advance should not leave the exhausted state")
	}
}

func TestLayoutChildFor(t *testing.T) {
	w := doc.Ptr(50.0)
	tests := []struct {
		name string
		n    doc.Node
		mode string
		want string
	}{
		{"vertical open width", doc.Node{}, doc.LayoutModeVertical, doc.LayoutAlignStretch},
		{"vertical fixed width", doc.Node{Width: w}, doc.LayoutModeVertical, doc.LayoutAlignInherit},
		{"vertical fixed height only", doc.Node{Height: w}, doc.LayoutModeVertical, doc.LayoutAlignStretch},
		{"horizontal open height", doc.Node{Width: w}, doc.LayoutModeHorizontal, doc.LayoutAlignStretch},
		{"horizontal fixed height", doc.Node{Height: w}, doc.LayoutModeHorizontal, doc.LayoutAlignInherit},
		{"explicit align", doc.Node{LayoutChild: &doc.LayoutChild{LayoutAlign: doc.LayoutAlignInherit}}, doc.LayoutModeVertical, doc.LayoutAlignInherit},
		{"absolute", doc.Node{LayoutChild: &doc.LayoutChild{LayoutPositioning: doc.PositioningAbsolute}}, doc.LayoutModeVertical, doc.LayoutAlignInherit},
		{"no layout", doc.Node{}, doc.LayoutModeNone, doc.LayoutAlignInherit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := layoutChildFor(tt.n, tt.mode)
			if got.LayoutAlign != tt.want {
				t.Errorf("LayoutAlign = %q, want %q", got.LayoutAlign, tt.want)
			}
		})
	}
}

func TestLayoutChildForKeepsFlags(t *testing.T) {
	n := doc.Node{LayoutChild: &doc.LayoutChild{LayoutGrow: 1, LayoutSizingHorizontal: doc.LayoutSizingFill}}
	got := layoutChildFor(n, doc.LayoutModeHorizontal)
	want := host.LayoutChild{
		LayoutAlign:            doc.LayoutAlignStretch,
		LayoutGrow:             1,
		LayoutPositioning:      doc.PositioningAuto,
		LayoutSizingHorizontal: doc.LayoutSizingFill,
		LayoutSizingVertical:   doc.LayoutSizingFixed,
	}
	if got != want {
		t.Errorf("layoutChildFor() = %+v, want %+v", got, want)
	}
}

func TestConfig(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	if len(cfg.DefaultFonts) != 2 || cfg.DefaultSize != doc.DefaultSize || cfg.MinSize != doc.MinSize {
		t.Errorf("SetDefaults() = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	bad := Config{DefaultFonts: []doc.FontName{{Family: "", Style: "Regular"}}}
	bad.SetDefaults()
	if err := bad.Validate(); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("Validate() with empty family = %v, want INVALID_INPUT", err)
	}

	small := Config{DefaultSize: 1, MinSize: 10}
	if err := small.Validate(); err == nil {
		t.Error("Validate() should reject a min size above the default size")
	}
}

func TestIssueString(t *testing.T) {
	i := Issue{Path: "Page/Icon", Type: doc.TypeVector, Err: errs.New(errs.ErrCodeStructuralFallback, "empty placeholder")}
	if got, want := i.String(), "Page/Icon [VECTOR] STRUCTURAL_FALLBACK: empty placeholder"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	counts := CountCodes([]Issue{i, i})
	if counts[errs.ErrCodeStructuralFallback] != 2 {
		t.Errorf("CountCodes() = %v", counts)
	}
}
