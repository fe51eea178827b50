package convert_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/matzehuels/scenedoc/pkg/convert"
	"github.com/matzehuels/scenedoc/pkg/doc"
	errs "github.com/matzehuels/scenedoc/pkg/errors"
	"github.com/matzehuels/scenedoc/pkg/host"
	"github.com/matzehuels/scenedoc/pkg/host/memhost"
	"github.com/matzehuels/scenedoc/pkg/observability"
)

func childNames(n host.SceneNode) []string {
	cn, ok := n.(host.ChildrenNode)
	if !ok {
		return nil
	}
	var names []string
	for _, c := range cn.Children() {
		names = append(names, c.Name())
	}
	return names
}

func TestCreateIsolatesFailures(t *testing.T) {
	h := memhost.New()
	row := doc.Node{
		Name: "Row", Type: doc.TypeFrame,
		Children: []doc.Node{
			{Name: "A", Type: doc.TypeRectangle},
			{Name: "Bad", Type: doc.TypeVector, ShapeExtras: &doc.ShapeExtras{
				VectorPaths: []doc.VectorPath{{WindingRule: doc.WindingNonZero, Data: "X 1 2"}},
			}},
			{Name: "C", Type: doc.TypeRectangle},
		},
	}

	built, issues := newCreator(h).Create(context.Background(), row, h.CurrentPage())
	if got, want := childNames(built), []string{"A", "Bad", "C"}; !slices.Equal(got, want) {
		t.Errorf("children = %v, want %v", got, want)
	}
	if len(issues) != 1 {
		t.Fatalf("issues = %v, want exactly one", issues)
	}
	if issues[0].Path != "Row/Bad" || issues[0].Code() != errs.ErrCodeStructuralFallback {
		t.Errorf("issue = %s, want STRUCTURAL_FALLBACK at Row/Bad", issues[0])
	}
}

func TestCreateUnknownTypeBuildsFrame(t *testing.T) {
	h := memhost.New()
	built, issues := newCreator(h).Create(context.Background(), doc.Node{Name: "Odd", Type: "HOLOGRAM"}, h.CurrentPage())
	if len(issues) != 0 {
		t.Errorf("issues = %v, want none", issues)
	}
	if built.Type() != string(doc.TypeFrame) {
		t.Errorf("Type() = %s, want FRAME", built.Type())
	}
}

func TestCreateClampsOpacity(t *testing.T) {
	h := memhost.New()
	n := doc.Node{Name: "Loud", Type: doc.TypeRectangle, Visual: &doc.Visual{Opacity: doc.Ptr(1.5)}}
	built, issues := newCreator(h).Create(context.Background(), n, h.CurrentPage())
	if len(issues) != 0 {
		t.Fatalf("issues = %v", issues)
	}
	if got := built.(host.BlendNode).Opacity(); got != 1 {
		t.Errorf("Opacity() = %g, want 1", got)
	}
}

func TestCreateStretchesInAutoLayout(t *testing.T) {
	h := memhost.New()
	col := doc.Node{
		Name: "Column", Type: doc.TypeFrame,
		Width: doc.Ptr(200.0), Height: doc.Ptr(300.0),
		AutoLayout: &doc.AutoLayout{
			LayoutMode:  doc.LayoutModeVertical,
			PaddingLeft: 10, PaddingRight: 10,
		},
		Children: []doc.Node{
			{Name: "Bar", Type: doc.TypeRectangle, Height: doc.Ptr(20.0)},
			{Name: "Caption", Type: doc.TypeText, Typography: &doc.Typography{Characters: "Hi"}},
			{Name: "Fixed", Type: doc.TypeRectangle, Width: doc.Ptr(40.0)},
		},
	}

	built, issues := newCreator(h).Create(context.Background(), col, h.CurrentPage())
	if len(issues) != 0 {
		t.Fatalf("issues = %v", issues)
	}
	want := map[string]float64{"Bar": 180, "Caption": 180, "Fixed": 40}
	stretched := map[string]bool{"Bar": true, "Caption": true, "Fixed": false}
	for _, c := range built.(host.ChildrenNode).Children() {
		if got := c.Width(); got != want[c.Name()] {
			t.Errorf("%s width = %g, want %g", c.Name(), got, want[c.Name()])
		}
		align := c.(host.LayoutChildNode).LayoutChild().LayoutAlign
		if got := align == doc.LayoutAlignStretch; got != stretched[c.Name()] {
			t.Errorf("%s layout align = %q, stretched = %v, want %v", c.Name(), align, got, stretched[c.Name()])
		}
	}
}

func TestCreateExportClampsColor(t *testing.T) {
	ctx := context.Background()
	h := memhost.New()
	n := doc.Node{
		Name: "Hot", Type: doc.TypeRectangle,
		Paint: &doc.Paint{Fills: []doc.Fill{solid(1.5, -0.2, 0.5)}},
	}
	built, issues := newCreator(h).Create(ctx, n, h.CurrentPage())
	if len(issues) != 0 {
		t.Fatalf("Create() issues: %v", issues)
	}

	got, _ := convert.NewExporter(quietLogger()).Export(ctx, built)
	if got.Paint == nil || len(got.Paint.Fills) != 1 {
		t.Fatalf("Paint = %+v, want one fill", got.Paint)
	}
	if c := *got.Paint.Fills[0].Color; c != (doc.RGB{R: 1, G: 0, B: 0.5}) {
		t.Errorf("fill color = %+v, want {R:1 G:0 B:0.5}", c)
	}
}

func TestCreateTextAutoResize(t *testing.T) {
	w, ht := doc.Ptr(120.0), doc.Ptr(30.0)
	tests := []struct {
		name     string
		width    *float64
		height   *float64
		explicit string
		inLayout bool
		want     string
	}{
		{"fixed box", w, ht, "", false, doc.AutoResizeNone},
		{"fixed width", w, nil, "", false, doc.AutoResizeHeight},
		{"open", nil, nil, "", false, doc.AutoResizeWidthAndHeight},
		{"layout with width", w, ht, "", true, doc.AutoResizeHeight},
		{"layout open", nil, ht, "", true, doc.AutoResizeWidthAndHeight},
		{"explicit", nil, nil, doc.AutoResizeTruncate, false, doc.AutoResizeTruncate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			h := memhost.New()
			c := newCreator(h)

			var parent host.ChildrenNode = h.CurrentPage()
			if tt.inLayout {
				frame, _ := c.Create(ctx, doc.Node{
					Name: "Stack", Type: doc.TypeFrame,
					AutoLayout: &doc.AutoLayout{LayoutMode: doc.LayoutModeVertical},
				}, parent)
				parent = frame.(host.ChildrenNode)
			}
			n := doc.Node{
				Name: "Label", Type: doc.TypeText, Width: tt.width, Height: tt.height,
				Typography: &doc.Typography{Characters: "Hello", TextAutoResize: tt.explicit},
			}
			built, issues := c.Create(ctx, n, parent)
			if len(issues) != 0 {
				t.Fatalf("issues = %v", issues)
			}
			if got := built.(host.TextNode).TextStyle().TextAutoResize; got != tt.want {
				t.Errorf("TextAutoResize = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCreateFontExhaustionDropsNode(t *testing.T) {
	h := memhost.New(memhost.WithFailingFonts(
		host.FontName{Family: "Inter", Style: "Regular"},
		host.FontName{Family: "Roboto", Style: "Regular"},
	))
	row := doc.Node{
		Name: "Row", Type: doc.TypeFrame,
		Children: []doc.Node{
			{Name: "Label", Type: doc.TypeText, Typography: &doc.Typography{
				Characters: "Hi",
				FontName:   &doc.FontName{Family: "Nope", Style: "Regular"},
			}},
			{Name: "Box", Type: doc.TypeRectangle},
		},
	}

	built, issues := newCreator(h).Create(context.Background(), row, h.CurrentPage())
	if got, want := childNames(built), []string{"Box"}; !slices.Equal(got, want) {
		t.Errorf("children = %v, want %v", got, want)
	}
	if len(issues) != 1 || issues[0].Code() != errs.ErrCodeFontLoadFailure || issues[0].Path != "Row/Label" {
		t.Fatalf("issues = %v, want FONT_LOAD_FAILURE at Row/Label", issues)
	}
	if n := h.Len(); n != 3 {
		t.Errorf("host holds %d nodes, want page, row and box", n)
	}
}

func TestCreateFontFallback(t *testing.T) {
	h := memhost.New()
	nope := &doc.FontName{Family: "Nope", Style: "Bold"}
	stack := doc.Node{
		Name: "Stack", Type: doc.TypeFrame,
		Children: []doc.Node{
			{Name: "One", Type: doc.TypeText, Typography: &doc.Typography{Characters: "1", FontName: nope}},
			{Name: "Two", Type: doc.TypeText, Typography: &doc.Typography{Characters: "2", FontName: nope}},
		},
	}

	built, issues := newCreator(h).Create(context.Background(), stack, h.CurrentPage())
	if len(issues) != 0 {
		t.Fatalf("issues = %v, want none", issues)
	}
	for _, c := range built.(host.ChildrenNode).Children() {
		f, _ := c.(host.TextNode).FontName().Get()
		if f != (host.FontName{Family: "Inter", Style: "Regular"}) {
			t.Errorf("%s font = %v, want Inter Regular", c.Name(), f)
		}
		if c.(host.TextNode).Characters() == "" {
			t.Errorf("%s has no characters", c.Name())
		}
	}

	attempts := 0
	for _, f := range h.FontLoads() {
		if f.Family == "Nope" {
			attempts++
		}
	}
	if attempts != 1 {
		t.Errorf("Nope Bold loaded %d times, want once per run", attempts)
	}
}

func TestCreateInvalidPropertyBuildsPlaceholder(t *testing.T) {
	h := memhost.New()
	n := doc.Node{
		Name: "Ring", Type: doc.TypeEllipse, Width: doc.Ptr(30.0), Height: doc.Ptr(20.0),
		Paint: &doc.Paint{StrokeWeight: doc.Ptr(-1.0)},
	}
	built, issues := newCreator(h).Create(context.Background(), n, h.CurrentPage())
	if len(issues) != 1 || issues[0].Code() != errs.ErrCodeCreationFailure {
		t.Fatalf("issues = %v, want one CREATION_FAILURE", issues)
	}
	if built.Type() != string(doc.TypeRectangle) {
		t.Errorf("placeholder type = %s, want RECTANGLE", built.Type())
	}
	if built.Name() != "Ring" || built.Width() != 30 || built.Height() != 20 {
		t.Errorf("placeholder = %s %gx%g, want Ring 30x20", built.Name(), built.Width(), built.Height())
	}
	fills, _ := built.(host.GeometryNode).Fills().Get()
	if len(fills) != 1 {
		t.Errorf("placeholder fills = %d, want the host default", len(fills))
	}
	if got := len(childNames(h.CurrentPage())); got != 1 {
		t.Errorf("page holds %d nodes, want only the placeholder", got)
	}
}

func TestCreateHostOwnedTypes(t *testing.T) {
	tests := []struct {
		name     string
		n        doc.Node
		wantType doc.NodeType
	}{
		{"leaf", doc.Node{Name: "Note", Type: doc.TypeSticky}, doc.TypeRectangle},
		{"container", doc.Node{Name: "Board", Type: doc.TypeTable, Children: []doc.Node{{Name: "Cell", Type: doc.TypeRectangle}}}, doc.TypeFrame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := memhost.New()
			built, issues := newCreator(h).Create(context.Background(), tt.n, h.CurrentPage())
			if built.Type() != string(tt.wantType) {
				t.Errorf("Type() = %s, want %s", built.Type(), tt.wantType)
			}
			if len(issues) != 1 || issues[0].Code() != errs.ErrCodeStructuralFallback {
				t.Errorf("issues = %v, want one STRUCTURAL_FALLBACK", issues)
			}
			if issues[0].Type != tt.n.Type {
				t.Errorf("issue type = %s, want %s", issues[0].Type, tt.n.Type)
			}
		})
	}
}

type recordingHooks struct {
	observability.NoopConvertHooks
	fallbacks []string
	loads     map[string]bool
}

func (r *recordingHooks) OnFallback(_ context.Context, path, _, code string) {
	r.fallbacks = append(r.fallbacks, path+" "+code)
}

func (r *recordingHooks) OnFontLoad(_ context.Context, font string, err error) {
	r.loads[font] = err == nil
}

func TestCreateReportsToHooks(t *testing.T) {
	rec := &recordingHooks{loads: map[string]bool{}}
	observability.SetConvertHooks(rec)
	t.Cleanup(observability.Reset)

	h := memhost.New()
	board := doc.Node{
		Name: "Board", Type: doc.TypeFrame,
		Children: []doc.Node{
			{Name: "Note", Type: doc.TypeSticky},
			{Name: "Label", Type: doc.TypeText, Typography: &doc.Typography{
				Characters: "x",
				FontName:   &doc.FontName{Family: "Nope", Style: "Regular"},
			}},
		},
	}
	newCreator(h).Create(context.Background(), board, h.CurrentPage())

	if want := []string{"Board/Note STRUCTURAL_FALLBACK"}; !slices.Equal(rec.fallbacks, want) {
		t.Errorf("fallbacks = %v, want %v", rec.fallbacks, want)
	}
	if ok, seen := rec.loads["Nope Regular"]; !seen || ok {
		t.Errorf("Nope Regular load = %v (seen %v), want a failed attempt", ok, seen)
	}
	if !rec.loads["Inter Regular"] {
		t.Error("Inter Regular should have loaded")
	}
}

func TestNewCreatorDefaults(t *testing.T) {
	h := memhost.New(memhost.WithoutDefaultFonts(), memhost.WithFonts(host.FontName{Family: "Brand", Style: "Regular"}))
	cfg := convert.Config{DefaultFonts: []doc.FontName{{Family: "Brand", Style: "Regular"}}, DefaultSize: 50}
	c := convert.NewCreator(h, cfg, nil)

	built, issues := c.Create(context.Background(), doc.Node{
		Name: "Group", Type: doc.TypeFrame,
		Children: []doc.Node{{Name: "T", Type: doc.TypeText, Typography: &doc.Typography{Characters: "b"}}},
	}, h.CurrentPage())
	if len(issues) != 0 {
		t.Fatalf("issues = %v", issues)
	}
	if built.Width() != 50 || built.Height() != 50 {
		t.Errorf("size = %gx%g, want the configured default 50x50", built.Width(), built.Height())
	}
	if got := len(childNames(built)); got != 1 {
		t.Errorf("text built with configured font: %d children, want 1", got)
	}
}

func TestCreateCancelledContextStillIsolates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := memhost.New()
	n := doc.Node{
		Name: "Row", Type: doc.TypeFrame,
		Children: []doc.Node{
			{Name: "Label", Type: doc.TypeText, Typography: &doc.Typography{Characters: "x"}},
			{Name: "Box", Type: doc.TypeRectangle},
		},
	}
	built, issues := newCreator(h).Create(ctx, n, h.CurrentPage())
	if got, want := childNames(built), []string{"Box"}; !slices.Equal(got, want) {
		t.Errorf("children = %v, want %v", got, want)
	}
	if len(issues) != 1 || !errors.Is(issues[0].Err, context.Canceled) {
		t.Errorf("issues = %v, want one wrapping context.Canceled", issues)
	}
}
