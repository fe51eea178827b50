package outline

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/scenedoc/pkg/doc"
	errs "github.com/matzehuels/scenedoc/pkg/errors"
)

// Graph directions.
const (
	TopToBottom = "TB"
	LeftToRight = "LR"
)

// Output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// Options configures the outline.
type Options struct {
	// Direction is TB (default) or LR.
	Direction string

	// MaxDepth limits how many levels below each root are drawn. Zero draws
	// everything.
	MaxDepth int

	// Detailed adds the size and child count to each label.
	Detailed bool
}

// Validate checks the direction.
func (o Options) Validate() error {
	switch strings.ToUpper(o.Direction) {
	case "", TopToBottom, LeftToRight:
	default:
		return errs.New(errs.ErrCodeInvalidInput, "direction must be TB or LR, got %q", o.Direction)
	}
	if o.MaxDepth < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "max depth must not be negative")
	}
	return nil
}

// ToDOT converts a document to Graphviz DOT source.
func ToDOT(d doc.Document, opts Options) string {
	dir := strings.ToUpper(opts.Direction)
	if dir == "" {
		dir = TopToBottom
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", dir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")

	for i := range d.Nodes {
		buf.WriteString("\n")
		writeNode(&buf, &d.Nodes[i], "n"+strconv.Itoa(i), 0, opts)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeNode(buf *bytes.Buffer, n *doc.Node, id string, depth int, opts Options) {
	fmt.Fprintf(buf, "  %q [%s];\n", id, strings.Join(fmtAttrs(n, opts.Detailed), ", "))
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return
	}
	for i := range n.Children {
		cid := id + "_" + strconv.Itoa(i)
		writeNode(buf, &n.Children[i], cid, depth+1, opts)
		fmt.Fprintf(buf, "  %q -> %q;\n", id, cid)
	}
}

func fmtLabel(n *doc.Node, detailed bool) string {
	typ := n.Type
	if typ == "" {
		typ = doc.DefaultType
	}
	label := n.Name + "\n" + string(typ)
	if !detailed {
		return label
	}
	var parts []string
	if w, h, hasW, hasH := n.Size(); hasW || hasH {
		parts = append(parts, fmt.Sprintf("%s x %s", dim(w, hasW), dim(h, hasH)))
	}
	if len(n.Children) > 0 {
		parts = append(parts, fmt.Sprintf("%d children", len(n.Children)))
	}
	if n.Typography != nil && n.Typography.Characters != "" {
		parts = append(parts, strconv.Quote(elide(n.Typography.Characters, 24)))
	}
	if len(parts) == 0 {
		return label
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *doc.Node, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	if c, ok := FillColor(*n); ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", c.Hex()), fmt.Sprintf("fontcolor=%q", TextColor(c)))
	}
	if !n.IsVisible() {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	return attrs
}

func dim(v float64, ok bool) string {
	if !ok {
		return "auto"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func elide(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// FillColor returns the first visible solid fill of n.
func FillColor(n doc.Node) (colorful.Color, bool) {
	if n.Paint == nil {
		return colorful.Color{}, false
	}
	for _, f := range n.Paint.Fills {
		if f.Type != doc.FillSolid || f.Color == nil || (f.Visible != nil && !*f.Visible) {
			continue
		}
		return colorful.Color{R: f.Color.R, G: f.Color.G, B: f.Color.B}.Clamped(), true
	}
	return colorful.Color{}, false
}

// TextColor picks black or white for legible text on c.
func TextColor(c colorful.Color) string {
	l, _, _ := c.Lab()
	if l < 0.55 {
		return "#ffffff"
	}
	return "#000000"
}

// RenderSVG renders DOT source to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// Render produces the outline in the given format.
func Render(ctx context.Context, d doc.Document, format string, opts Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	dot := ToDOT(d, opts)
	switch strings.ToLower(format) {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG, "":
		return RenderSVG(ctx, dot)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown outline format %q", format)
	}
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// unitless one whose size matches the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
