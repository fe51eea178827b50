package convert_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scenedoc/pkg/convert"
	"github.com/matzehuels/scenedoc/pkg/doc"
	errs "github.com/matzehuels/scenedoc/pkg/errors"
	"github.com/matzehuels/scenedoc/pkg/host"
	"github.com/matzehuels/scenedoc/pkg/host/memhost"
)

// exploding fails every size read, like a node whose host object went stale
// mid-export.
type exploding struct{ host.SceneNode }

func (exploding) Width() float64 { panic("stale node") }

// staticParent reports a fixed child list.
type staticParent struct {
	host.SceneNode
	kids []host.SceneNode
}

func (p staticParent) Children() []host.SceneNode     { return p.kids }
func (staticParent) AppendChild(host.SceneNode) error { return errors.New("read-only") }

func mustNode(t *testing.T, h *memhost.Host, typ, name string) host.SceneNode {
	t.Helper()
	n, err := h.CreateNode(typ)
	if err != nil {
		t.Fatalf("CreateNode(%s) error: %v", typ, err)
	}
	n.SetName(name)
	return n
}

func TestExportIsolatesPanics(t *testing.T) {
	h := memhost.New()
	row := mustNode(t, h, "FRAME", "Row")
	a := mustNode(t, h, "RECTANGLE", "A")
	b := mustNode(t, h, "RECTANGLE", "B")
	c := mustNode(t, h, "RECTANGLE", "C")

	parent := staticParent{SceneNode: row, kids: []host.SceneNode{a, exploding{b}, c}}
	got, issues := convert.NewExporter(quietLogger()).Export(context.Background(), parent)
	if got == nil {
		t.Fatal("Export() returned nil for the parent")
	}
	if len(got.Children) != 2 || got.Children[0].Name != "A" || got.Children[1].Name != "C" {
		t.Errorf("children = %+v, want A and C", got.Children)
	}
	if len(issues) != 1 {
		t.Fatalf("issues = %v, want one", issues)
	}
	if issues[0].Path != "Row/B" || issues[0].Code() != errs.ErrCodeExportSkipped || issues[0].Type != doc.TypeRectangle {
		t.Errorf("issue = %s, want EXPORT_SKIPPED for RECTANGLE at Row/B", issues[0])
	}
}

func TestExportAllChildrenFail(t *testing.T) {
	h := memhost.New()
	row := mustNode(t, h, "FRAME", "Row")
	parent := staticParent{SceneNode: row, kids: []host.SceneNode{
		exploding{mustNode(t, h, "ELLIPSE", "X")},
		exploding{mustNode(t, h, "ELLIPSE", "Y")},
	}}

	got, issues := convert.NewExporter(quietLogger()).Export(context.Background(), parent)
	if got == nil || got.Children != nil {
		t.Errorf("Export() = %+v, want a childless node", got)
	}
	if len(issues) != 2 {
		t.Errorf("issues = %v, want two", issues)
	}
}

func TestExportRootFailure(t *testing.T) {
	h := memhost.New()
	got, issues := convert.NewExporter(quietLogger()).Export(context.Background(), exploding{mustNode(t, h, "RECTANGLE", "Solo")})
	if got != nil {
		t.Errorf("Export() = %+v, want nil", got)
	}
	if len(issues) != 1 || issues[0].Path != "Solo" {
		t.Errorf("issues = %v, want one at Solo", issues)
	}
}

func TestExportUnknownType(t *testing.T) {
	h := memhost.New()
	n := h.Seed("HOLOGRAM")
	n.SetName("Odd")

	got, issues := convert.NewExporter(quietLogger()).Export(context.Background(), n)
	if len(issues) != 0 {
		t.Fatalf("issues = %v", issues)
	}
	if got.Type != doc.TypeFrame {
		t.Errorf("Type = %s, want FRAME", got.Type)
	}
}

func TestExportHostOwnedType(t *testing.T) {
	h := memhost.New()
	n := h.Seed(string(doc.TypeSticky))
	n.SetName("Note")

	got, _ := convert.NewExporter(quietLogger()).Export(context.Background(), n)
	if got.Type != doc.TypeSticky {
		t.Errorf("Type = %s, want STICKY", got.Type)
	}
	if got.Width == nil || *got.Width != doc.DefaultSize {
		t.Errorf("Width = %v, want %g", got.Width, doc.DefaultSize)
	}
}

func TestExportMixedValues(t *testing.T) {
	h := memhost.New()
	exp := convert.NewExporter(quietLogger())
	ctx := context.Background()

	rect := mustNode(t, h, "RECTANGLE", "Mixed")
	rect.(*memhost.Rectangle).SetMixed(memhost.PropFills, memhost.PropStrokeWeight)
	got, _ := exp.Export(ctx, rect)
	if got.Paint != nil {
		t.Errorf("Paint = %+v, want mixed fills and weight exported as absent", got.Paint)
	}

	text := mustNode(t, h, "TEXT", "Runs")
	text.(*memhost.Text).SetMixed(memhost.PropFontName, memhost.PropFontSize)
	got, _ = exp.Export(ctx, text)
	if got.Typography == nil {
		t.Fatal("Typography = nil")
	}
	if got.Typography.FontName != nil || got.Typography.FontSize != 0 {
		t.Errorf("font = %v size %g, want both absent", got.Typography.FontName, got.Typography.FontSize)
	}
	if got.Typography.TextAutoResize != doc.AutoResizeWidthAndHeight {
		t.Errorf("TextAutoResize = %q, want the host value", got.Typography.TextAutoResize)
	}
}

func TestExportStrokeSides(t *testing.T) {
	h := memhost.New()
	rect := mustNode(t, h, "RECTANGLE", "Edge")
	if err := rect.(host.IndividualStrokesNode).SetStrokeSides(host.StrokeSides{Top: 1, Right: 2, Bottom: 1, Left: 2}); err != nil {
		t.Fatal(err)
	}

	got, _ := convert.NewExporter(quietLogger()).Export(context.Background(), rect)
	want := doc.StrokeSides{Top: 1, Right: 2, Bottom: 1, Left: 2}
	if got.Paint == nil || got.Paint.StrokeSides == nil || *got.Paint.StrokeSides != want {
		t.Fatalf("StrokeSides = %+v, want %+v", got.Paint, want)
	}
	if got.Paint.StrokeWeight != nil {
		t.Errorf("StrokeWeight = %v, want absent for differing sides", *got.Paint.StrokeWeight)
	}
}

func TestExportBaseFields(t *testing.T) {
	h := memhost.New()
	n := mustNode(t, h, "RECTANGLE", "Tilted")
	n.SetPosition(1.23456, 2)
	n.SetRotation(90)
	n.SetVisible(false)
	n.SetLocked(true)

	got, _ := convert.NewExporter(quietLogger()).Export(context.Background(), n)
	if got.X != 1.2346 {
		t.Errorf("X = %g, want 1.2346", got.X)
	}
	if got.Rotation != 90 || got.RelativeTransform == nil {
		t.Errorf("Rotation = %g, RelativeTransform = %v; want 90 with a transform", got.Rotation, got.RelativeTransform)
	}
	if got.IsVisible() || !got.Locked {
		t.Errorf("visible = %v, locked = %v; want hidden and locked", got.IsVisible(), got.Locked)
	}
}

func TestExportElidesDefaults(t *testing.T) {
	h := memhost.New()
	frame := mustNode(t, h, "FRAME", "Plain")

	got, _ := convert.NewExporter(quietLogger()).Export(context.Background(), frame)
	if got.Corners != nil || got.AutoLayout != nil || got.LayoutChild != nil ||
		got.Constraints != nil || got.Visual != nil || got.FrameExtras != nil {
		t.Errorf("Export() kept default groups: %+v", got)
	}
	if got.Paint == nil || len(got.Paint.Fills) != 1 {
		t.Fatalf("Paint = %+v, want the white default fill", got.Paint)
	}
	if *got.Paint.Fills[0].Color != (doc.RGB{R: 1, G: 1, B: 1}) {
		t.Errorf("fill = %+v, want white", got.Paint.Fills[0])
	}
}

func TestExportElidesEffectAndGridDefaults(t *testing.T) {
	ctx := context.Background()
	h := memhost.New()
	in := doc.Node{
		Name: "Panel", Type: doc.TypeFrame,
		Visual: &doc.Visual{Effects: []doc.Effect{{Type: doc.EffectDropShadow, Radius: 4}}},
		FrameExtras: &doc.FrameExtras{LayoutGrids: []doc.LayoutGrid{
			{Pattern: doc.GridColumns, Count: 3, SectionSize: 10},
		}},
	}
	built, issues := newCreator(h).Create(ctx, in, h.CurrentPage())
	if len(issues) != 0 {
		t.Fatalf("Create() issues: %v", issues)
	}

	got, _ := convert.NewExporter(quietLogger()).Export(ctx, built)
	if got.Visual == nil || len(got.Visual.Effects) != 1 {
		t.Fatalf("Visual = %+v, want one effect", got.Visual)
	}
	if fx := got.Visual.Effects[0]; fx.Color != nil || fx.Offset != nil {
		t.Errorf("effect = %+v, want default color and offset omitted", fx)
	}
	if got.FrameExtras == nil || len(got.FrameExtras.LayoutGrids) != 1 {
		t.Fatalf("FrameExtras = %+v, want one grid", got.FrameExtras)
	}
	if g := got.FrameExtras.LayoutGrids[0]; g.Color != nil || g.Alignment != "" {
		t.Errorf("grid = %+v, want default color and alignment omitted", g)
	}
	if a, b := mustJSON(t, *got), mustJSON(t, doc.Elide(*got)); a != b {
		t.Errorf("exported node is not elided\nexport: %s\nelided: %s", a, b)
	}
}

func TestUnsupportedVariantsLogCode(t *testing.T) {
	ctx := context.Background()
	debugLogger := func(buf *bytes.Buffer) *log.Logger {
		return log.NewWithOptions(buf, log.Options{Level: log.DebugLevel})
	}

	t.Run("export", func(t *testing.T) {
		h := memhost.New()
		n := mustNode(t, h, "RECTANGLE", "Glowing")
		if err := n.(host.BlendNode).SetEffects([]host.Effect{{Type: "GLOW", Visible: true}}); err != nil {
			t.Fatalf("SetEffects() error: %v", err)
		}

		var buf bytes.Buffer
		got, issues := convert.NewExporter(debugLogger(&buf)).Export(ctx, n)
		if len(issues) != 0 || got == nil {
			t.Fatalf("Export() = %v, %v; want a node and no issues", got, issues)
		}
		if got.Visual != nil && len(got.Visual.Effects) != 0 {
			t.Errorf("Effects = %+v, want the glow dropped", got.Visual.Effects)
		}
		if out := buf.String(); !strings.Contains(out, string(errs.ErrCodeUnsupportedVariant)) {
			t.Errorf("log = %q, want code %s", out, errs.ErrCodeUnsupportedVariant)
		}
	})

	t.Run("create", func(t *testing.T) {
		h := memhost.New()
		n := doc.Node{
			Name: "Noisy", Type: doc.TypeRectangle,
			Paint: &doc.Paint{Fills: []doc.Fill{{Type: "NOISE"}}},
		}

		var buf bytes.Buffer
		c := convert.NewCreator(h, convert.Config{}, debugLogger(&buf))
		if _, issues := c.Create(ctx, n, h.CurrentPage()); len(issues) != 0 {
			t.Fatalf("Create() issues: %v", issues)
		}
		if out := buf.String(); !strings.Contains(out, string(errs.ErrCodeUnsupportedVariant)) {
			t.Errorf("log = %q, want code %s", out, errs.ErrCodeUnsupportedVariant)
		}
	})
}
