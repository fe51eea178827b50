// Package pkg provides the core libraries for scenedoc scene graph conversion.
//
// # Overview
//
// scenedoc converts the live scene graph of a design host into a canonical,
// serializable document and rebuilds an equivalent scene graph from one. The
// pkg directory is organized into four areas:
//
//  1. [doc] and [host] - the two data models (canonical tree, host contract)
//  2. [codec] and [convert] - conversion between them
//  3. [pipeline] - orchestration, caching and workspace effects
//  4. [cache], [render/outline], [errors], [observability] - supporting infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	host scene graph ──[convert.Exporter]──► doc.Node ──► JSON / YAML
//	JSON / YAML ──► doc.Node ──[convert.Creator]──► host scene graph
//
// The exporter reads through the capability interfaces in [host]; the creator
// writes through them. Neither holds host state between calls, so the same
// code drives a real host adapter or the in-memory [host/memhost].
//
// # Quick Start
//
// Build a document in the reference host and export it back:
//
//	import (
//	    "github.com/matzehuels/scenedoc/pkg/doc"
//	    "github.com/matzehuels/scenedoc/pkg/host/memhost"
//	    "github.com/matzehuels/scenedoc/pkg/pipeline"
//	)
//
//	d, _ := doc.ReadFile("scene.json")
//	r := pipeline.NewRunner(nil, nil, logger)
//	h := memhost.New()
//
//	created, _ := r.Create(ctx, h, d, pipeline.Options{})
//	exported, _ := r.ExportAll(ctx, h, pipeline.Options{})
//
// [pipeline.Runner.Normalize] does both in a scratch host and caches the
// canonical result.
//
// # Main Packages
//
// [doc] - The canonical tree: node types, property groups, defaults and
// elision, plus JSON and YAML encoding.
//
// [host] - Capability interfaces a host implements, and the host-side value
// types ([host.Value] carries the mixed marker).
//
// [host/memhost] - In-memory reference host that reproduces host ordering
// rules (font loading, layout participation, validated vector data).
//
// [codec] - Pure converters for fills, effects, grids, text units and vector
// data, in both directions.
//
// [convert] - Per-node-type strategies for export and creation, font fallback
// and structural fallbacks. Failures are isolated per subtree and reported
// as [convert.Issue] values.
//
// [pipeline] - Export and create runs with options, statistics, selection
// and viewport effects, and cached normalization.
//
// [render/outline] - Graphviz diagrams of a document's node tree.
//
// [cache] - Content-addressed result cache with file and null backends.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/convert/...    # Specific package
//	go test -run Example ./...   # Examples only
//
// [doc]: https://pkg.go.dev/github.com/matzehuels/scenedoc/pkg/doc
// [host]: https://pkg.go.dev/github.com/matzehuels/scenedoc/pkg/host
// [host/memhost]: https://pkg.go.dev/github.com/matzehuels/scenedoc/pkg/host/memhost
// [codec]: https://pkg.go.dev/github.com/matzehuels/scenedoc/pkg/codec
// [convert]: https://pkg.go.dev/github.com/matzehuels/scenedoc/pkg/convert
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/scenedoc/pkg/pipeline
// [render/outline]: https://pkg.go.dev/github.com/matzehuels/scenedoc/pkg/render/outline
// [cache]: https://pkg.go.dev/github.com/matzehuels/scenedoc/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/scenedoc/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/scenedoc/pkg/observability
package pkg
