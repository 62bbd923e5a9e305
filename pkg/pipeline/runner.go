package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/moneyflow/pkg/cache"
	"github.com/matzehuels/moneyflow/pkg/flow"
	"github.com/matzehuels/moneyflow/pkg/graph"
	"github.com/matzehuels/moneyflow/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	result := &Result{}

	parseStart := time.Now()
	wire, g, err := r.Parse(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.LinkCount = len(g.Links())
	if opts.Currency == "" {
		opts.Currency = wire.Currency
	}

	r.Logger.Info("parsed graph",
		"nodes", result.Stats.NodeCount,
		"links", result.Stats.LinkCount,
		"duration", result.Stats.ParseTime)

	layoutStart := time.Now()
	gl, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = gl
	result.GraphHash = graphHash(g)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.MaxColumn = gl.MaxColumn
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"columns", gl.MaxColumn+1,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, gl, &g, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Parse runs the parse stage and reports it to the pipeline hooks.
func (r *Runner) Parse(ctx context.Context, opts Options) (graph.Graph, flow.Graph, error) {
	source := opts.InputPath
	if opts.InputData != nil || source == "" {
		source = "request"
	}

	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, source)
	start := time.Now()

	wire, g, err := Parse(opts)
	hooks.OnParseComplete(ctx, source, g.NodeCount(), len(g.Links()), time.Since(start), err)
	return wire, g, err
}

// GenerateLayoutWithCacheInfo generates a layout with caching and returns cache hit info.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, g flow.Graph, opts Options) (graph.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, false, err
	}
	opts.SetRenderDefaults()

	cacheKey := r.Keyer.LayoutKey(graphHash(g), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit := r.lookup(ctx, keyTypeLayout, cacheKey); hit {
			cached, err := graph.UnmarshalLayout(data)
			if err == nil {
				return cached, true, nil
			}
			opts.Logger.Debug("discarding unreadable cached layout", "err", err)
		}
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.VizType, g.NodeCount())
	start := time.Now()
	gl, err := GenerateLayout(g, opts)
	hooks.OnLayoutComplete(ctx, opts.VizType, time.Since(start), err)
	if err != nil {
		return graph.Layout{}, false, err
	}

	if data, err := graph.MarshalLayout(gl); err == nil {
		r.store(ctx, keyTypeLayout, cacheKey, data, cache.TTLLayout)
	}
	return gl, false, nil
}

// GenerateLayout is GenerateLayoutWithCacheInfo without the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, g flow.Graph, opts Options) (graph.Layout, error) {
	gl, _, err := r.GenerateLayoutWithCacheInfo(ctx, g, opts)
	return gl, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. The hit flag is true only when every requested format was cached.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, gl graph.Layout, g *flow.Graph, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	opts = applyLayoutMetadata(opts, gl)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := graph.MarshalLayout(gl)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)
	if opts.IsNodelink() && !gl.IsNodelink() {
		// The DOT source is derived from the graph, not the sankey layout.
		layoutHash = cache.Hash([]byte(layoutHash + graph.VizTypeNodelink))
	}

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, hit := r.lookup(ctx, keyTypeArtifact, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)))
			if !hit {
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
	rendered, err := RenderFromLayout(ctx, gl, g, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		r.store(ctx, keyTypeArtifact, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)), data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Render is RenderWithCacheInfo without the cache hit info.
func (r *Runner) Render(ctx context.Context, gl graph.Layout, g *flow.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, gl, g, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// lookup reads key from the cache. Backend failures count as misses.
func (r *Runner) lookup(ctx context.Context, keyType, key string) ([]byte, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "type", keyType, "err", err)
		hooks.OnCacheError(ctx, keyType, err)
		return nil, false
	}
	if !hit {
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}
	hooks.OnCacheHit(ctx, keyType)
	return data, true
}

// store writes to the cache, retrying transient backend failures. Errors
// are logged and otherwise ignored.
func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	err := cache.RetryWithBackoff(ctx, func() error {
		return r.Cache.Set(ctx, key, data, ttl)
	})
	if err != nil {
		r.Logger.Debug("cache write failed", "type", keyType, "err", err)
		observability.Cache().OnCacheError(ctx, keyType, err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// graphHash hashes the canonical wire encoding of g, so equal graphs from
// JSON and YAML inputs share cache entries.
func graphHash(g flow.Graph) string {
	data, err := graph.MarshalGraph(graph.FromFlow(g))
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}
