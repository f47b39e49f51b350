package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowdiagram/pkg/cache"
	"github.com/matzehuels/flowdiagram/pkg/flow"
	"github.com/matzehuels/flowdiagram/pkg/flow/layout"
	flowio "github.com/matzehuels/flowdiagram/pkg/io"
	"github.com/matzehuels/flowdiagram/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration // lifetime of cache entries; zero keeps them forever
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    DefaultTTL,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, doc *flowio.Document, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Parse
	parseStart := time.Now()
	p, err := r.Parse(ctx, doc)
	if err != nil {
		return nil, err
	}
	result.Parsed = p
	result.DefinitionHash = DefinitionHash(p)
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount = p.NodeCount()
	result.Stats.ForkDepth = p.ForkDepth()

	r.Logger.Debug("parsed definition",
		"document", doc.Name,
		"nodes", result.Stats.NodeCount,
		"fork_depth", result.Stats.ForkDepth,
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	tree, layoutHit, err := r.LayoutWithCacheInfo(ctx, p, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Tree = tree
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Debug("computed layout",
		"width", tree.Width,
		"height", tree.Height,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, p, tree, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Parse normalizes doc's graph, reporting to the pipeline hooks.
func (r *Runner) Parse(ctx context.Context, doc *flowio.Document) (*flow.Parsed, error) {
	name := ""
	if doc != nil {
		name = doc.Name
	}
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, name)
	start := time.Now()

	p, err := Parse(doc)

	nodes := 0
	if p != nil {
		nodes = p.NodeCount()
	}
	hooks.OnParseComplete(ctx, name, nodes, time.Since(start), err)
	return p, err
}

// LayoutWithCacheInfo computes the tree for p, reading and writing the
// cache, and reports whether the tree came from the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, p *flow.Parsed, opts Options) (*layout.Tree, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.LayoutKey(DefinitionHash(p), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, ok := r.cacheGet(ctx, keyTypeLayout, cacheKey); ok {
			if tree, err := unmarshalLayout(data); err == nil {
				return tree, true, nil
			}
			r.Logger.Warn("discarding unreadable cached layout", "key", cacheKey)
		}
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.VizType, p.NodeCount())
	start := time.Now()
	tree := GenerateLayout(p, opts)
	hooks.OnLayoutComplete(ctx, opts.VizType, time.Since(start), nil)

	if data, err := marshalLayout(tree); err == nil {
		r.cacheSet(ctx, keyTypeLayout, cacheKey, data)
	}
	return tree, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, p *flow.Parsed, opts Options) (*layout.Tree, error) {
	tree, _, err := r.LayoutWithCacheInfo(ctx, p, opts)
	return tree, err
}

// RenderWithCacheInfo renders every requested format, serving them from
// the cache when all are present. The boolean reports a full cache hit.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc *flowio.Document, p *flow.Parsed, tree *layout.Tree, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := marshalLayout(tree)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)
	title := titleFor(doc, opts)
	docHash := ""
	if doc != nil {
		docHash = DocumentHash(doc)
	}
	keyFor := func(format string) string {
		return r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format, title, docHash))
	}

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, ok := r.cacheGet(ctx, keyTypeArtifact, keyFor(format))
			if !ok {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, doc, p, tree, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		r.cacheSet(ctx, keyTypeArtifact, keyFor(format), data)
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, doc *flowio.Document, p *flow.Parsed, tree *layout.Tree, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, p, tree, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// cacheGet reads key, treating backend errors as misses.
func (r *Runner) cacheGet(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
	}
	if err != nil || !ok {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

// cacheSet writes key; a failed write only costs a later recomputation.
func (r *Runner) cacheSet(ctx context.Context, keyType, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
