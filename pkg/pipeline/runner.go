package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scenedoc/pkg/cache"
	"github.com/matzehuels/scenedoc/pkg/codec"
	"github.com/matzehuels/scenedoc/pkg/convert"
	"github.com/matzehuels/scenedoc/pkg/doc"
	errs "github.com/matzehuels/scenedoc/pkg/errors"
	"github.com/matzehuels/scenedoc/pkg/host"
	"github.com/matzehuels/scenedoc/pkg/host/memhost"
	"github.com/matzehuels/scenedoc/pkg/observability"
	"github.com/matzehuels/scenedoc/pkg/render/outline"
)

// Runner runs conversions against a host, with caching for the pure
// document-to-document operations.
//
// A Runner holds no per-call state; one Runner may serve many calls. The
// host passed to a call must not be edited concurrently with it.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// cache.DefaultKeyer and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// =============================================================================
// Export
// =============================================================================

// ExportSelection exports every selected node as a separate tree.
func (r *Runner) ExportSelection(ctx context.Context, ws host.Workspace, opts Options) (*Result, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, err
	}
	roots := ws.Selection()
	if len(roots) == 0 {
		return nil, errs.New(errs.ErrCodeNothingProduced, "nothing is selected")
	}
	return r.export(ctx, roots, opts)
}

// ExportAll exports every top-level node of the current page.
func (r *Runner) ExportAll(ctx context.Context, ws host.Workspace, opts Options) (*Result, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, err
	}
	roots := ws.CurrentPage().Children()
	if len(roots) == 0 {
		return nil, errs.New(errs.ErrCodeNothingProduced, "the current page is empty")
	}
	return r.export(ctx, roots, opts)
}

func (r *Runner) export(ctx context.Context, roots []host.SceneNode, opts Options) (res *Result, err error) {
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnExportStart(ctx, len(roots))
	res = &Result{Document: doc.NewDocument()}
	defer func() {
		res.Stats.Duration = time.Since(start)
		hooks.OnExportComplete(ctx, res.Stats.NodeCount, res.Stats.Duration, err)
	}()

	exp := convert.NewExporter(opts.Logger)
	res.Stats.Roots = len(roots)
	for _, root := range roots {
		n, issues := exp.Export(ctx, root)
		res.Issues = append(res.Issues, issues...)
		if n == nil {
			continue
		}
		res.Document.Nodes = append(res.Document.Nodes, *n)
	}
	res.Stats.Produced = len(res.Document.Nodes)
	res.Stats.NodeCount = res.Document.Count()
	tally(&res.Stats, res.Issues)

	if res.Stats.Produced == 0 {
		return res, errs.New(errs.ErrCodeNothingProduced, "none of %d nodes could be exported", len(roots))
	}
	opts.Logger.Info("exported",
		"roots", res.Stats.Produced,
		"nodes", res.Stats.NodeCount,
		"issues", len(res.Issues),
		"duration", time.Since(start))
	return res, nil
}

// =============================================================================
// Create
// =============================================================================

// Create builds every tree of d on the current page, then selects the built
// roots and scrolls them into view. Selection and viewport are written once,
// after all trees are built, and only if at least one was.
func (r *Runner) Create(ctx context.Context, h host.Host, d doc.Document, opts Options) (res *CreateResult, err error) {
	if err := r.prepare(&opts); err != nil {
		return nil, err
	}
	if len(d.Nodes) == 0 {
		return nil, errs.New(errs.ErrCodeNothingProduced, "the document has no nodes")
	}

	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnCreateStart(ctx, len(d.Nodes))
	res = &CreateResult{}
	defer func() {
		res.Stats.Duration = time.Since(start)
		hooks.OnCreateComplete(ctx, res.Stats.NodeCount, res.Stats.Duration, err)
	}()

	cr := convert.NewCreator(h, opts.convertConfig(), opts.Logger)
	page := h.CurrentPage()
	res.Stats.Roots = len(d.Nodes)
	for _, n := range d.Nodes {
		built, issues := cr.Create(ctx, n, page)
		res.Issues = append(res.Issues, issues...)
		if built == nil {
			continue
		}
		res.Nodes = append(res.Nodes, built)
		res.Stats.NodeCount += countNodes(built)
	}
	res.Stats.Produced = len(res.Nodes)
	tally(&res.Stats, res.Issues)

	if len(res.Nodes) == 0 {
		return res, errs.New(errs.ErrCodeNothingProduced, "none of %d trees could be built", len(d.Nodes))
	}

	h.SetSelection(res.Nodes)
	h.ScrollAndZoomIntoView(res.Nodes)

	opts.Logger.Info("created",
		"roots", res.Stats.Produced,
		"nodes", res.Stats.NodeCount,
		"issues", len(res.Issues),
		"duration", time.Since(start))
	return res, nil
}

func countNodes(n host.SceneNode) int {
	total := 1
	if p, ok := n.(host.ChildrenNode); ok {
		for _, c := range p.Children() {
			total += countNodes(c)
		}
	}
	return total
}

// =============================================================================
// Selection and viewport
// =============================================================================

// Select replaces the selection with the nodes of the given IDs. Unknown IDs
// are logged and ignored; if none resolve, the selection is left unchanged.
func (r *Runner) Select(ctx context.Context, ws host.Workspace, ids ...string) ([]host.SceneNode, error) {
	nodes, err := r.resolve(ws, ids)
	if err != nil {
		return nil, err
	}
	ws.SetSelection(nodes)
	return nodes, nil
}

// Focus scrolls and zooms the viewport to the nodes of the given IDs. With no
// IDs it focuses the current selection.
func (r *Runner) Focus(ctx context.Context, ws host.Workspace, ids ...string) ([]host.SceneNode, error) {
	var nodes []host.SceneNode
	if len(ids) == 0 {
		nodes = ws.Selection()
		if len(nodes) == 0 {
			return nil, errs.New(errs.ErrCodeNotFound, "nothing is selected")
		}
	} else {
		var err error
		if nodes, err = r.resolve(ws, ids); err != nil {
			return nil, err
		}
	}
	ws.ScrollAndZoomIntoView(nodes)
	return nodes, nil
}

func (r *Runner) resolve(ws host.Workspace, ids []string) ([]host.SceneNode, error) {
	nodes := make([]host.SceneNode, 0, len(ids))
	for _, id := range ids {
		n, ok := ws.NodeByID(id)
		if !ok {
			r.Logger.Warn("node not found", "id", id)
			continue
		}
		nodes = append(nodes, n)
	}
	if len(nodes) == 0 {
		return nil, errs.New(errs.ErrCodeNotFound, "none of %d node ids exist", len(ids))
	}
	return nodes, nil
}

// =============================================================================
// Normalize
// =============================================================================

// Normalize builds d in a fresh reference host and exports it back. The
// result is d in canonical form: defaults elided, unknown types and
// unsupported variants dropped, values clamped and rounded, and anything the
// host could not build replaced the way Create replaces it.
//
// Results are cached by the hash of d's JSON encoding and the options that
// affect the output.
func (r *Runner) Normalize(ctx context.Context, d doc.Document, opts Options) (*Result, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, err
	}
	start := time.Now()

	input, err := doc.Marshal(d, doc.FormatJSON)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "encode input")
	}
	key := r.Keyer.DocumentKey(cache.Hash(input), opts.DocumentKeyOpts())

	if !opts.Refresh {
		if res, ok := r.cachedNormalize(ctx, key, opts.Format); ok {
			res.Stats.Duration = time.Since(start)
			opts.Logger.Debug("normalized document from cache", "key", key)
			return res, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, cache.KeyTypeDocument)

	h := memhost.New(memhost.WithFonts(referenceFonts(d, opts)...))
	created, err := r.Create(ctx, h, d, opts)
	if err != nil {
		return nil, err
	}
	res, err := r.ExportAll(ctx, h, opts)
	if err != nil {
		return nil, err
	}
	res.Issues = append(created.Issues, res.Issues...)
	res.Stats.Roots = created.Stats.Roots
	res.Stats.Skipped += created.Stats.Skipped
	res.Stats.Degraded += created.Stats.Degraded
	res.CacheInfo.Key = key

	if res.Output, err = doc.Marshal(res.Document, opts.Format); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "encode normalized document")
	}
	r.storeNormalize(ctx, key, res)
	res.Stats.Duration = time.Since(start)
	return res, nil
}

// referenceFonts lists the fonts the scratch host has besides its own.
func referenceFonts(d doc.Document, opts Options) []host.FontName {
	var fonts []host.FontName
	for _, f := range append(append([]doc.FontName{}, opts.DefaultFonts...), opts.Fonts...) {
		fonts = append(fonts, codec.FontNameToHost(f))
	}
	if !opts.AllFonts {
		return fonts
	}
	for i := range d.Nodes {
		d.Nodes[i].Walk(func(_ string, n *doc.Node) bool {
			if n.Typography != nil && n.Typography.FontName != nil {
				fonts = append(fonts, codec.FontNameToHost(*n.Typography.FontName))
			}
			return true
		})
	}
	return fonts
}

// cachedRun is the cache representation of a Normalize result.
type cachedRun struct {
	Document doc.Document  `json:"document"`
	Issues   []cachedIssue `json:"issues,omitempty"`
	Stats    Stats         `json:"stats"`
}

type cachedIssue struct {
	Path    string       `json:"path"`
	Type    doc.NodeType `json:"type"`
	Code    errs.Code    `json:"code"`
	Message string       `json:"message"`
	Cause   string       `json:"cause,omitempty"`
}

func (r *Runner) cachedNormalize(ctx context.Context, key string, format doc.Format) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		return nil, false
	}
	var run cachedRun
	if err := json.Unmarshal(data, &run); err != nil {
		r.Logger.Debug("discarding unreadable cache entry", "key", key, "err", err)
		return nil, false
	}
	out, err := doc.Marshal(run.Document, format)
	if err != nil {
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cache.KeyTypeDocument)

	res := &Result{
		Document:  run.Document,
		Output:    out,
		Stats:     run.Stats,
		CacheInfo: CacheInfo{Key: key, Hit: true},
	}
	for _, i := range run.Issues {
		e := errs.New(i.Code, "%s", i.Message)
		if i.Cause != "" {
			e.Cause = errors.New(i.Cause)
		}
		res.Issues = append(res.Issues, convert.Issue{Path: i.Path, Type: i.Type, Err: e})
	}
	return res, true
}

func (r *Runner) storeNormalize(ctx context.Context, key string, res *Result) {
	run := cachedRun{Document: res.Document, Stats: res.Stats}
	for _, i := range res.Issues {
		ci := cachedIssue{Path: i.Path, Type: i.Type, Code: i.Code(), Message: i.Err.Message}
		if i.Err.Cause != nil {
			ci.Cause = i.Err.Cause.Error()
		}
		run.Issues = append(run.Issues, ci)
	}
	data, err := json.Marshal(run)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLDocument); err != nil {
		r.Logger.Debug("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cache.KeyTypeDocument, len(data))
}

// =============================================================================
// Outline
// =============================================================================

// Outline renders d as a tree diagram, cached by the document hash.
func (r *Runner) Outline(ctx context.Context, d doc.Document, opts OutlineOptions) ([]byte, bool, error) {
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	data, err := doc.Marshal(d, doc.FormatJSON)
	if err != nil {
		return nil, false, errs.Wrap(errs.ErrCodeInvalidInput, err, "encode document")
	}
	key := r.Keyer.OutlineKey(cache.Hash(data), opts.KeyOpts())

	if !opts.Refresh {
		if out, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, cache.KeyTypeOutline)
			return out, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, cache.KeyTypeOutline)

	out, err := outline.Render(ctx, d, opts.Format, opts.Options)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, out, cache.TTLOutline); err == nil {
		observability.Cache().OnCacheSet(ctx, cache.KeyTypeOutline, len(out))
	}
	return out, false, nil
}

// =============================================================================
// Lifecycle
// =============================================================================

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// prepare applies the runner's logger, then defaults and validation.
func (r *Runner) prepare(opts *Options) error {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	return opts.ValidateAndSetDefaults()
}
