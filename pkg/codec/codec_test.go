package codec

import (
	"reflect"
	"testing"

	"github.com/matzehuels/scenedoc/pkg/doc"
	"github.com/matzehuels/scenedoc/pkg/host"
)

func TestEffectToHost(t *testing.T) {
	tests := []struct {
		name    string
		effect  doc.Effect
		wantNil bool
		want    host.Effect
	}{
		{
			name:   "drop shadow defaults",
			effect: doc.Effect{Type: doc.EffectDropShadow, Radius: 4, ShowBehind: true},
			want: host.Effect{
				Type: host.EffectDropShadow, Visible: true, Radius: 4,
				Color: host.RGBA{A: 0.25}, Offset: host.Vector{Y: 4},
				BlendMode: doc.BlendNormal, ShowShadowBehindNode: true,
			},
		},
		{
			name:   "inner shadow ignores show behind",
			effect: doc.Effect{Type: doc.EffectInnerShadow, Color: &doc.RGBA{R: 2, A: 1}, Offset: &doc.Vector{X: 1}, ShowBehind: true},
			want: host.Effect{
				Type: host.EffectInnerShadow, Visible: true,
				Color: host.RGBA{R: 1, A: 1}, Offset: host.Vector{X: 1}, BlendMode: doc.BlendNormal,
			},
		},
		{
			name:   "blur clamps radius",
			effect: doc.Effect{Type: doc.EffectLayerBlur, Radius: -3, Visible: doc.Ptr(false)},
			want:   host.Effect{Type: host.EffectLayerBlur},
		},
		{
			name:    "unknown",
			effect:  doc.Effect{Type: "GLOW"},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectToHost(tt.effect)
			if (got == nil) != tt.wantNil {
				t.Fatalf("EffectToHost() = %v, wantNil %v", got, tt.wantNil)
			}
			if got != nil && *got != tt.want {
				t.Errorf("EffectToHost() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestEffectRoundTrip(t *testing.T) {
	effects := []doc.Effect{
		{Type: doc.EffectDropShadow, Radius: 8, Color: &doc.RGBA{A: 0.5}, Offset: &doc.Vector{X: 2, Y: 3}, Spread: 1, BlendMode: "MULTIPLY", ShowBehind: true},
		{Type: doc.EffectInnerShadow, Radius: 2, Color: &doc.RGBA{R: 1, A: 1}, Offset: &doc.Vector{}},
		{Type: doc.EffectBackgroundBlur, Radius: 12, Visible: doc.Ptr(false)},
	}
	for _, e := range effects {
		t.Run(string(e.Type), func(t *testing.T) {
			fx := EffectToHost(e)
			got := EffectFromHost(*fx)
			if !reflect.DeepEqual(*got, e) {
				t.Errorf("round trip = %+v, want %+v", *got, e)
			}
		})
	}

	if _, dropped := EffectsFromHost([]host.Effect{{Type: "GLOW"}, {Type: host.EffectLayerBlur, Visible: true}}); dropped != 1 {
		t.Errorf("EffectsFromHost() dropped = %d, want 1", dropped)
	}
}

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		in   string
		want doc.NodeType
	}{
		{"RECTANGLE", doc.TypeRectangle},
		{" text ", doc.TypeText},
		{"boolean_operation", doc.TypeBooleanOperation},
		{"WIDGET", doc.TypeWidget},
		{"PAGE", doc.DefaultType},
		{"banana", doc.DefaultType},
		{"", doc.DefaultType},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeType(tt.in); got != tt.want {
				t.Errorf("NormalizeType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
	if IsKnownType("text") {
		t.Error("IsKnownType() should not normalize")
	}
}

func TestTypographyCodecs(t *testing.T) {
	if got := LineHeightToHost(doc.LineHeight{Unit: doc.UnitAuto, Value: 20}); got.Value != 0 {
		t.Errorf("AUTO line height kept value %v", got.Value)
	}
	if got := LineHeightFromHost(host.LineHeight{Unit: "EM", Value: 2}); got != nil {
		t.Errorf("unknown unit = %+v, want nil", got)
	}
	lh := LineHeightFromHost(host.LineHeight{Unit: doc.UnitPercent, Value: 150.00004})
	if lh == nil || lh.Value != 150 {
		t.Errorf("LineHeightFromHost() = %+v, want 150%%", lh)
	}
	if got := LetterSpacingToHost(doc.LetterSpacing{Value: 2}); got.Unit != doc.UnitPercent {
		t.Errorf("LetterSpacingToHost() unit = %q, want PERCENT", got.Unit)
	}
	if got := HyperlinkFromHost(host.Hyperlink{Type: "URL"}); got != nil {
		t.Errorf("empty hyperlink = %+v, want nil", got)
	}
	f := doc.FontName{Family: "Inter", Style: "Bold"}
	if got := FontNameFromHost(FontNameToHost(f)); got != f {
		t.Errorf("font round trip = %v, want %v", got, f)
	}
}

func TestLayoutGrids(t *testing.T) {
	grids := []doc.LayoutGrid{
		{Pattern: doc.GridPixels, SectionSize: 8, Color: &doc.RGBA{R: 1, A: 0.1}, Alignment: "MIN", Count: 3},
		{Pattern: doc.GridColumns, SectionSize: 64, Alignment: "CENTER", GutterSize: 16, Count: 12, Offset: 4, Color: &doc.RGBA{B: 1, A: 0.2}, Visible: doc.Ptr(false)},
		{Pattern: "HEX"},
	}
	hg := LayoutGridsToHost(grids)
	if len(hg) != 2 {
		t.Fatalf("LayoutGridsToHost() = %d grids, want 2", len(hg))
	}
	if hg[0].Alignment != "" || hg[0].Count != 0 {
		t.Errorf("pixel grid carried row fields: %+v", hg[0])
	}

	back := LayoutGridsFromHost(hg)
	want := []doc.LayoutGrid{
		{Pattern: doc.GridPixels, SectionSize: 8},
		grids[1],
	}
	if !reflect.DeepEqual(back, want) {
		t.Errorf("LayoutGridsFromHost() = %+v, want %+v", back, want)
	}

	if got := GuidesFromHost(nil); got != nil {
		t.Errorf("GuidesFromHost(nil) = %v, want nil", got)
	}
}

func TestVectorCodecs(t *testing.T) {
	paths := VectorPathsFromHost([]host.VectorPath{
		{WindingRule: doc.WindingEvenOdd, Data: "M 0 0 Z"},
		{WindingRule: "NONE", Data: "M 1 1 Z"},
	})
	if len(paths) != 1 || paths[0].WindingRule != doc.WindingEvenOdd {
		t.Errorf("VectorPathsFromHost() = %+v", paths)
	}

	net := doc.VectorNetwork{
		Vertices: []doc.VectorVertex{{X: 0, Y: 0}, {X: 10, Y: 0, StrokeCap: "ROUND"}},
		Segments: []doc.VectorSegment{{Start: 0, End: 1, TangentStart: &doc.Vector{X: 2}}},
		Regions: []doc.VectorRegion{{
			WindingRule: doc.WindingNonZero,
			Loops:       [][]int{{0}},
			Fills:       []doc.Fill{{Type: doc.FillSolid, Color: &doc.RGB{R: 1}}, {Type: "NOISE"}},
		}},
	}
	got := VectorNetworkFromHost(VectorNetworkToHost(net))
	want := net
	want.Regions = []doc.VectorRegion{{
		Loops: [][]int{{0}},
		Fills: []doc.Fill{{Type: doc.FillSolid, Color: &doc.RGB{R: 1}}},
	}}
	if !reflect.DeepEqual(*got, want) {
		t.Errorf("network round trip = %+v, want %+v", *got, want)
	}
	if VectorNetworkFromHost(host.VectorNetwork{}) != nil {
		t.Error("empty network should be nil")
	}

	net.Regions[0].WindingRule = doc.WindingEvenOdd
	if got := VectorNetworkFromHost(VectorNetworkToHost(net)); got.Regions[0].WindingRule != doc.WindingEvenOdd {
		t.Errorf("EVENODD region winding = %q, want kept", got.Regions[0].WindingRule)
	}
}

func TestFromHostElidesDefaults(t *testing.T) {
	shadow := EffectFromHost(*EffectToHost(doc.Effect{Type: doc.EffectDropShadow, Radius: 4}))
	if shadow.Color != nil || shadow.Offset != nil {
		t.Errorf("default shadow = color %v offset %v, want both nil", shadow.Color, shadow.Offset)
	}

	grid := LayoutGridFromHost(*LayoutGridToHost(doc.LayoutGrid{Pattern: doc.GridRows, Count: 2, SectionSize: 10}))
	want := doc.LayoutGrid{Pattern: doc.GridRows, Count: 2, SectionSize: 10}
	if !reflect.DeepEqual(*grid, want) {
		t.Errorf("default grid = %+v, want %+v", *grid, want)
	}
}
