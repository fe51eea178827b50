// Package convert maps host scene trees to canonical documents and back.
//
// An [Exporter] walks a host tree and produces a [doc.Node] with every default
// elided. A [Creator] walks a canonical tree and builds a new host tree through
// a [host.Factory], applying properties in the order the host requires:
//
//	exp := convert.NewExporter(logger)
//	n, issues := exp.Export(ctx, frame)
//
//	cr := convert.NewCreator(factory, convert.Config{}, logger)
//	built, issues := cr.Create(ctx, *n, page)
//
// # Failure containment
//
// Neither direction fails as a whole. A node whose export fails is left out of
// its parent; a node whose construction fails is replaced by a fallback. Each
// degradation is reported as an [Issue] and logged, and siblings continue.
//
// # Dispatch
//
// Both directions dispatch through one registry keyed by [doc.NodeType]. Every
// recognized type has an entry; unrecognized host or canonical tags normalize
// to [doc.DefaultType] first.
package convert

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scenedoc/pkg/doc"
	errs "github.com/matzehuels/scenedoc/pkg/errors"
	"github.com/matzehuels/scenedoc/pkg/host"
)

// =============================================================================
// Issues
// =============================================================================

// Issue describes a node that was skipped or built in a degraded form.
type Issue struct {
	Path string       // slash-joined names from the root
	Type doc.NodeType // normalized node type
	Err  *errs.Error  // coded cause
}

// Code returns the issue's error code.
func (i Issue) Code() errs.Code { return i.Err.Code }

func (i Issue) String() string {
	return fmt.Sprintf("%s [%s] %s: %s", i.Path, i.Type, i.Err.Code, errs.UserMessage(i.Err))
}

// CountCodes tallies issues by code.
func CountCodes(issues []Issue) map[errs.Code]int {
	out := make(map[errs.Code]int)
	for _, i := range issues {
		out[i.Code()]++
	}
	return out
}

// =============================================================================
// Configuration
// =============================================================================

// DefaultFonts is the fallback chain tried after a text node's own font.
var DefaultFonts = []doc.FontName{
	{Family: "Inter", Style: "Regular"},
	{Family: "Roboto", Style: "Regular"},
}

// Config controls construction defaults.
type Config struct {
	// DefaultFonts are tried in order when a text node's font fails to load.
	DefaultFonts []doc.FontName

	// DefaultSize is used for each missing dimension.
	DefaultSize float64

	// MinSize is the floor applied to every dimension.
	MinSize float64
}

// SetDefaults fills zero values.
func (c *Config) SetDefaults() {
	if len(c.DefaultFonts) == 0 {
		c.DefaultFonts = DefaultFonts
	}
	if c.DefaultSize <= 0 {
		c.DefaultSize = doc.DefaultSize
	}
	if c.MinSize <= 0 {
		c.MinSize = doc.MinSize
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	for _, f := range c.DefaultFonts {
		if err := errs.ValidateFontName(f.Family, f.Style); err != nil {
			return err
		}
	}
	if c.MinSize > c.DefaultSize {
		return errs.New(errs.ErrCodeInvalidInput, "min size %g exceeds default size %g", c.MinSize, c.DefaultSize)
	}
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

// present reads a possibly-mixed host value. Mixed is treated exactly like
// absent; every extractor goes through here.
func present[T any](logger *log.Logger, path, prop string, v host.Value[T]) (T, bool) {
	if v.IsMixed() {
		logger.Debug("mixed value exported as absent", "path", path, "property", prop)
	}
	return v.Get()
}

func childPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

func round4Ptr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	return doc.Ptr(doc.Round4(*p))
}
