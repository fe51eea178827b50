package convert

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/scenedoc/pkg/codec"
	"github.com/matzehuels/scenedoc/pkg/doc"
	errs "github.com/matzehuels/scenedoc/pkg/errors"
	"github.com/matzehuels/scenedoc/pkg/observability"
)

// =============================================================================
// Font Fallback Chain
// =============================================================================

type fontState uint8

const (
	fontTrying fontState = iota
	fontLoaded
	fontExhausted
)

// fontChain walks an ordered list of candidate fonts:
//
//	Trying(i) -> Loaded | Trying(i+1) | Exhausted
type fontChain struct {
	candidates []doc.FontName
	i          int
	state      fontState
	failures   []error
}

// newFontChain puts the requested font before the defaults and drops
// duplicates. A chain without candidates starts exhausted.
func newFontChain(requested *doc.FontName, defaults []doc.FontName) *fontChain {
	var candidates []doc.FontName
	if requested != nil {
		candidates = append(candidates, *requested)
	}
	for _, f := range defaults {
		if !slices.Contains(candidates, f) {
			candidates = append(candidates, f)
		}
	}
	c := &fontChain{candidates: candidates}
	if len(candidates) == 0 {
		c.state = fontExhausted
	}
	return c
}

// current returns the font being tried.
func (c *fontChain) current() doc.FontName { return c.candidates[c.i] }

// advance records the outcome of loading the current font.
func (c *fontChain) advance(err error) {
	if c.state != fontTrying {
		return
	}
	if err == nil {
		c.state = fontLoaded
		return
	}
	c.failures = append(c.failures, err)
	c.i++
	if c.i == len(c.candidates) {
		c.state = fontExhausted
	}
}

// fallback reports whether the loaded font is not the first candidate.
func (c *fontChain) fallback() bool { return c.state == fontLoaded && c.i > 0 }

func (c *fontChain) String() string {
	names := make([]string, len(c.candidates))
	for i, f := range c.candidates {
		names[i] = f.String()
	}
	return strings.Join(names, ", ")
}

// resolveFont loads the first available font of the chain for a text node.
func (r *createRun) resolveFont(path string, requested *doc.FontName) (doc.FontName, error) {
	chain := newFontChain(requested, r.cfg.DefaultFonts)
	for chain.state == fontTrying {
		chain.advance(r.loadFont(chain.current()))
	}
	if chain.state == fontExhausted {
		return doc.FontName{}, errs.Wrap(errs.ErrCodeFontLoadFailure, errors.Join(chain.failures...),
			"no font could be loaded (tried %s)", chain)
	}
	f := chain.current()
	if chain.fallback() {
		r.logger.Warn("font fallback", "path", path, "requested", chain.candidates[0], "using", f)
	}
	return f, nil
}

// loadFont loads f once per run and remembers the outcome.
func (r *createRun) loadFont(f doc.FontName) error {
	if err, ok := r.fonts[f]; ok {
		return err
	}
	err := errs.ValidateFontName(f.Family, f.Style)
	if err == nil {
		if lerr := r.factory.LoadFont(r.ctx, codec.FontNameToHost(f)); lerr != nil {
			err = fmt.Errorf("load %s: %w", f, lerr)
		}
	}
	observability.Convert().OnFontLoad(r.ctx, f.String(), err)
	if err != nil {
		r.logger.Debug("font load failed", "font", f, "err", err)
	}
	r.fonts[f] = err
	return err
}
