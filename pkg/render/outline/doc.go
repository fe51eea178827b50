// Package outline renders a canonical document as a tree diagram.
//
// Each node becomes a Graphviz box labelled with its name and type and filled
// with its first visible solid fill; edges run from parent to child in paint
// order. Hidden nodes are drawn dashed.
//
//	dot := outline.ToDOT(d, outline.Options{Direction: outline.LeftToRight})
//	svg, err := outline.RenderSVG(ctx, dot)
//
// [ToDOT] output is deterministic for a given document and options, so it can
// be cached by content hash. [RenderSVG] runs Graphviz in-process through
// [github.com/goccy/go-graphviz].
package outline
