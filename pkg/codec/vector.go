package codec

import (
	"github.com/matzehuels/scenedoc/pkg/doc"
	"github.com/matzehuels/scenedoc/pkg/host"
)

// =============================================================================
// Vector Geometry
// =============================================================================

// IsWindingRule reports whether r is a recognized path winding rule.
func IsWindingRule(r string) bool {
	return r == doc.WindingNonZero || r == doc.WindingEvenOdd
}

// VectorPathsToHost converts canonical paths.
func VectorPathsToHost(paths []doc.VectorPath) []host.VectorPath {
	out := make([]host.VectorPath, len(paths))
	for i, p := range paths {
		out[i] = host.VectorPath{WindingRule: p.WindingRule, Data: p.Data}
	}
	return out
}

// VectorPathsFromHost converts host paths, keeping only those with a
// recognized winding rule. An empty result is nil.
func VectorPathsFromHost(paths []host.VectorPath) []doc.VectorPath {
	var out []doc.VectorPath
	for _, p := range paths {
		if IsWindingRule(p.WindingRule) {
			out = append(out, doc.VectorPath{WindingRule: p.WindingRule, Data: p.Data})
		}
	}
	return out
}

// VectorNetworkToHost converts a canonical network. Region fills go through
// [FillsToHost].
func VectorNetworkToHost(n doc.VectorNetwork) host.VectorNetwork {
	out := host.VectorNetwork{
		Vertices: make([]host.VectorVertex, len(n.Vertices)),
		Segments: make([]host.VectorSegment, len(n.Segments)),
	}
	for i, v := range n.Vertices {
		out.Vertices[i] = host.VectorVertex{
			X:            v.X,
			Y:            v.Y,
			StrokeCap:    doc.Or(v.StrokeCap, doc.StrokeCapNone),
			StrokeJoin:   doc.Or(v.StrokeJoin, doc.StrokeJoinMiter),
			CornerRadius: v.CornerRadius,
		}
	}
	for i, s := range n.Segments {
		seg := host.VectorSegment{Start: s.Start, End: s.End}
		if s.TangentStart != nil {
			seg.TangentStart = host.Vector{X: s.TangentStart.X, Y: s.TangentStart.Y}
		}
		if s.TangentEnd != nil {
			seg.TangentEnd = host.Vector{X: s.TangentEnd.X, Y: s.TangentEnd.Y}
		}
		out.Segments[i] = seg
	}
	for _, r := range n.Regions {
		fills, _ := FillsToHost(r.Fills)
		out.Regions = append(out.Regions, host.VectorRegion{
			WindingRule: doc.Or(r.WindingRule, doc.WindingNonZero),
			Loops:       r.Loops,
			Fills:       fills,
		})
	}
	return out
}

// VectorNetworkFromHost converts a host network. It returns nil for a network
// without vertices.
func VectorNetworkFromHost(n host.VectorNetwork) *doc.VectorNetwork {
	if len(n.Vertices) == 0 {
		return nil
	}
	out := &doc.VectorNetwork{
		Vertices: make([]doc.VectorVertex, len(n.Vertices)),
		Segments: make([]doc.VectorSegment, len(n.Segments)),
	}
	for i, v := range n.Vertices {
		vv := doc.VectorVertex{X: doc.Round4(v.X), Y: doc.Round4(v.Y), CornerRadius: doc.Round4(v.CornerRadius)}
		if v.StrokeCap != doc.StrokeCapNone {
			vv.StrokeCap = v.StrokeCap
		}
		if v.StrokeJoin != doc.StrokeJoinMiter {
			vv.StrokeJoin = v.StrokeJoin
		}
		out.Vertices[i] = vv
	}
	for i, s := range n.Segments {
		seg := doc.VectorSegment{Start: s.Start, End: s.End}
		if s.TangentStart != (host.Vector{}) {
			seg.TangentStart = &doc.Vector{X: doc.Round4(s.TangentStart.X), Y: doc.Round4(s.TangentStart.Y)}
		}
		if s.TangentEnd != (host.Vector{}) {
			seg.TangentEnd = &doc.Vector{X: doc.Round4(s.TangentEnd.X), Y: doc.Round4(s.TangentEnd.Y)}
		}
		out.Segments[i] = seg
	}
	for _, r := range n.Regions {
		if !IsWindingRule(r.WindingRule) {
			continue
		}
		fills, _ := FillsFromHost(r.Fills)
		region := doc.VectorRegion{Loops: r.Loops, Fills: fills}
		if r.WindingRule != doc.WindingNonZero {
			region.WindingRule = r.WindingRule
		}
		out.Regions = append(out.Regions, region)
	}
	return out
}
