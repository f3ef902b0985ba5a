package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/refugeeflow/pkg/cache"
	"github.com/matzehuels/refugeeflow/pkg/geo"
	"github.com/matzehuels/refugeeflow/pkg/observability"
)

// Runner encapsulates pipeline execution with artifact caching.
// Both CLI and server use it to avoid duplicating caching logic.
//
// The Runner keeps no per-run state. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// Geometry replaces the built-in centroid table when set.
	Geometry *geo.Geometry
	// TTL is the artifact lifetime. Zero means cache.DefaultTTL.
	TTL time.Duration
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
	}
}

// Execute runs load → layout → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result := &Result{}

	// Stage 1: Load
	ds := opts.Dataset
	if ds == nil {
		loadStart := time.Now()
		var err error
		if ds, err = Load(ctx, opts.Source); err != nil {
			return nil, fmt.Errorf("load dataset: %w", err)
		}
		result.Stats.LoadTime = time.Since(loadStart)
		r.Logger.Info("loaded dataset",
			"source", opts.Source,
			"records", ds.Len(),
			"duration", result.Stats.LoadTime)
	}
	result.Stats.Records = ds.Len()
	result.DatasetHash = ds.Hash()

	// Stage 2: Layout
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Kind, ds.Len())
	layoutStart := time.Now()
	layout := GenerateLayout(ds, r.Geometry, opts)
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	hooks.OnLayoutComplete(ctx, opts.Kind, result.Stats.LayoutTime, nil)

	if missing := layout.Missing(); len(missing) > 0 {
		r.Logger.Warn("countries without map position skipped", "countries", missing)
	}
	if layout.Empty() {
		r.Logger.Info("nothing selected; rendering empty output", "kind", opts.Kind)
	}
	r.Logger.Info("computed layout",
		"kind", opts.Kind,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, hash, hit, err := r.RenderWithCacheInfo(ctx, layout, result.DatasetHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.LayoutHash = hash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// RenderWithCacheInfo renders every format, serving artifacts from the
// cache when all of them are present. It returns the layout hash used as
// the cache key and whether the cache satisfied the request.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout Layout, datasetHash string, opts Options) (map[string][]byte, string, bool, error) {
	r.applyLogger(&opts)
	hash, err := cache.LayoutHash(layout)
	if err != nil {
		return nil, "", false, err
	}

	hooks := observability.Cache()
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				r.Logger.Debug("cache read failed", "format", format, "err", err)
			}
			if err != nil || !hit {
				hooks.OnCacheMiss(ctx, "artifact")
				break
			}
			hooks.OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, hash, true, nil
		}
	}

	pipelineHooks := observability.Pipeline()
	pipelineHooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, err := Render(ctx, layout, datasetHash, opts)
	pipelineHooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}

	ttl := r.TTL
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
			r.Logger.Debug("cache write failed", "format", format, "err", err)
			continue
		}
		hooks.OnCacheSet(ctx, "artifact", len(data))
	}
	return artifacts, hash, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
