// Package pipeline provides the top-level scenedoc entry points.
//
// A [Runner] sequences the exporter and creator from pkg/convert and is the
// only code that reads or writes host-global state: the current page, the
// selection and the viewport. Per-node conversion never sees the workspace;
// the Runner resolves its inputs from it before a run and writes selection
// and viewport exactly once after every top-level tree has been built.
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//
//	// host tree -> canonical document
//	res, err := runner.ExportSelection(ctx, h, pipeline.Options{})
//
//	// canonical document -> host tree, then select and focus the result
//	created, err := runner.Create(ctx, h, res.Document, pipeline.Options{})
//
//	// create + export in a fresh reference host, cached by input hash
//	norm, err := runner.Normalize(ctx, d, pipeline.Options{Format: doc.FormatYAML})
//
// # Failure containment
//
// Individual nodes never fail a call: they are skipped or degraded and
// reported in the result's Issues. A call fails with NOTHING_PRODUCED only
// when no top-level node came out of it.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scenedoc/pkg/cache"
	"github.com/matzehuels/scenedoc/pkg/convert"
	"github.com/matzehuels/scenedoc/pkg/doc"
	errs "github.com/matzehuels/scenedoc/pkg/errors"
	"github.com/matzehuels/scenedoc/pkg/host"
	"github.com/matzehuels/scenedoc/pkg/render/outline"
)

// DefaultFormat is the wire format used when none is set.
const DefaultFormat = doc.FormatJSON

// =============================================================================
// Options
// =============================================================================

// Options configures a Runner call.
type Options struct {
	// Creation defaults
	DefaultFonts []doc.FontName `json:"default_fonts,omitempty"`
	DefaultSize  float64        `json:"default_size,omitempty"`
	MinSize      float64        `json:"min_size,omitempty"`

	// Reference host fonts (Normalize only). Fonts lists extra installed
	// fonts; AllFonts installs every font the document names.
	Fonts    []doc.FontName `json:"fonts,omitempty"`
	AllFonts bool           `json:"all_fonts,omitempty"`

	// Format is the encoding of Normalize output.
	Format doc.Format `json:"format,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Logger overrides the runner's logger.
	Logger *log.Logger `json:"-"`
}

// SetDefaults fills zero values.
func (o *Options) SetDefaults() {
	cfg := o.convertConfig()
	cfg.SetDefaults()
	o.DefaultFonts, o.DefaultSize, o.MinSize = cfg.DefaultFonts, cfg.DefaultSize, cfg.MinSize
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the options. Call SetDefaults first.
func (o *Options) Validate() error {
	if !doc.ValidFormats[o.Format] {
		return errs.New(errs.ErrCodeInvalidFormat, "unknown format %q (must be json or yaml)", o.Format)
	}
	for _, f := range o.Fonts {
		if err := errs.ValidateFontName(f.Family, f.Style); err != nil {
			return err
		}
	}
	cfg := o.convertConfig()
	return cfg.Validate()
}

// ValidateAndSetDefaults applies defaults, then validates.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}

func (o *Options) convertConfig() convert.Config {
	return convert.Config{
		DefaultFonts: o.DefaultFonts,
		DefaultSize:  o.DefaultSize,
		MinSize:      o.MinSize,
	}
}

// DocumentKeyOpts returns the cache key options of a Normalize call.
func (o *Options) DocumentKeyOpts() cache.DocumentKeyOpts {
	return cache.DocumentKeyOpts{
		Format:       string(o.Format),
		DefaultFonts: fontStrings(o.DefaultFonts),
		Fonts:        fontStrings(o.Fonts),
		AllFonts:     o.AllFonts,
		DefaultSize:  o.DefaultSize,
		MinSize:      o.MinSize,
	}
}

func fontStrings(fonts []doc.FontName) []string {
	if len(fonts) == 0 {
		return nil
	}
	out := make([]string, len(fonts))
	for i, f := range fonts {
		out[i] = f.String()
	}
	return out
}

// =============================================================================
// Results
// =============================================================================

// Result is the outcome of an export or a normalization.
type Result struct {
	// Document holds one tree per exported root, in root order.
	Document doc.Document

	// Output is Document encoded in Options.Format (Normalize only).
	Output []byte

	// Issues lists every skipped or degraded node.
	Issues []convert.Issue

	Stats     Stats
	CacheInfo CacheInfo
}

// CreateResult is the outcome of building canonical trees into a host.
type CreateResult struct {
	// Nodes are the built top-level nodes; they are also the new selection.
	Nodes []host.SceneNode

	Issues []convert.Issue
	Stats  Stats
}

// Stats contains call statistics.
type Stats struct {
	Roots     int // top-level trees requested
	Produced  int // top-level trees produced
	NodeCount int // nodes in the produced trees
	Skipped   int // nodes left out
	Degraded  int // nodes built as a fallback or placeholder
	Duration  time.Duration
}

// CacheInfo reports cache use of a Normalize call.
type CacheInfo struct {
	Key string
	Hit bool
}

func tally(s *Stats, issues []convert.Issue) {
	for code, n := range convert.CountCodes(issues) {
		if code.Dropped() {
			s.Skipped += n
		} else {
			s.Degraded += n
		}
	}
}

// =============================================================================
// Outline
// =============================================================================

// OutlineOptions configures an outline render.
type OutlineOptions struct {
	outline.Options

	// Format is dot or svg (default).
	Format string

	Refresh bool
}

// KeyOpts returns the cache key options of the render.
func (o OutlineOptions) KeyOpts() cache.OutlineKeyOpts {
	format := o.Format
	if format == "" {
		format = outline.FormatSVG
	}
	return cache.OutlineKeyOpts{
		Format:    format,
		Direction: o.Direction,
		MaxDepth:  o.MaxDepth,
		Detailed:  o.Detailed,
	}
}
