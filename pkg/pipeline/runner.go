package pipeline

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/stageside/bracketeer/pkg/bracket"
	"github.com/stageside/bracketeer/pkg/cache"
	"github.com/stageside/bracketeer/pkg/errors"
	"github.com/stageside/bracketeer/pkg/layout"
	"github.com/stageside/bracketeer/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner holds two cache layers: a process-local memo for the pure
// layout computations and a byte cache for serialized layouts and
// rendered artifacts. It stores no pipeline results itself; multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Memo   *cache.Memo
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (byte caching disabled).
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
		Memo:   cache.NewMemo(),
		Logger: logger,
	}
}

// Execute runs the complete validate → organize → layout → render pipeline
// with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Validate
	validateStart := time.Now()
	matches, validation, err := r.Validate(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Matches = matches
	result.Validation = validation
	result.Stats.ValidateTime = time.Since(validateStart)
	result.Stats.MatchCount = len(matches)

	r.Logger.Info("validated matches",
		"total", len(opts.Matches),
		"usable", len(matches),
		"errors", len(validation.Errors),
		"warnings", len(validation.Warnings),
		"duration", result.Stats.ValidateTime)

	// Stage 2: Organize
	rounds := bracket.OrganizeIntoRounds(matches, r.Memo)
	result.Rounds = rounds
	result.Stats.RoundCount = len(rounds)

	result.EdgeCases = layout.EdgeCases(rounds, opts.Container())
	if !result.EdgeCases.Valid {
		r.Logger.Warn("nothing to lay out", "warnings", result.EdgeCases.Warnings)
		return result, nil
	}

	// Stage 3: Layout
	layoutStart := time.Now()
	lay, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, rounds, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "layout")
	}
	result.Layout = lay
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	if data, err := layout.MarshalLayout(lay); err == nil {
		result.LayoutHash = cache.Hash(data)
	}

	r.Logger.Info("computed layout",
		"positions", len(lay.Positions),
		"connections", len(lay.Connections),
		"scale", lay.Scaling.ScaleFactor,
		"duration", result.Stats.LayoutTime)

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, rounds, lay, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Validate checks the raw matches and returns the usable ones in bracket
// order, plus the aggregated diagnostics. Records that fail validation
// are dropped, not repaired; the diagnostics say why.
func (r *Runner) Validate(ctx context.Context, opts Options) ([]bracket.Match, bracket.ValidationResult, error) {
	if err := opts.ValidateForInput(); err != nil {
		return nil, bracket.ValidationResult{}, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Pipeline().OnValidateStart(ctx, opts.Source, len(opts.Matches))

	validation := bracket.ValidateMatches(opts.Matches)
	matches := bracket.FixStructure(opts.Matches)

	observability.Pipeline().OnValidateComplete(ctx, opts.Source,
		len(validation.Errors), len(validation.Warnings), time.Since(start), nil)

	return matches, validation, nil
}

// GenerateLayoutWithCacheInfo generates a layout with byte caching and
// returns cache hit info.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, rounds [][]bracket.Match, opts Options) (layout.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.layoutCacheKey(rounds, opts)

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, cacheKey)
		if err != nil {
			r.logCacheError("get", "layout", err)
		} else if hit {
			cached, err := layout.UnmarshalLayout(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	lay := r.GenerateLayout(ctx, rounds, opts)

	if data, err := layout.MarshalLayout(lay); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			r.logCacheError("set", "layout", err)
		}
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return lay, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, rounds [][]bracket.Match, lay layout.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := layout.MarshalLayout(lay)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil {
				r.logCacheError("get", "artifact", err)
			}
			if err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := Render(rounds, lay, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err != nil {
			r.logCacheError("set", "artifact", err)
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, rounds [][]bracket.Match, lay layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, rounds, lay, opts)
	return artifacts, err
}

// layoutCacheKey builds the byte-cache key for a layout: a content hash
// of the round structure plus every layout-affecting option.
func (r *Runner) layoutCacheKey(rounds [][]bracket.Match, opts Options) string {
	ids := make([][]string, len(rounds))
	for i, round := range rounds {
		ids[i] = make([]string, len(round))
		for j, m := range round {
			ids[i][j] = m.ID
		}
	}
	data, _ := json.Marshal(ids)
	return r.Keyer.LayoutKey(cache.Hash(data), opts.LayoutKeyOpts())
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	r.Memo.Clear()
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// logCacheError records a cache backend failure without failing the
// pipeline; the cache is an accelerator, never a dependency. Backend
// outages log at warn, anything else at debug.
func (r *Runner) logCacheError(op, kind string, err error) {
	if stderrors.Is(err, cache.ErrNetwork) {
		r.Logger.Warn("cache unavailable", "op", op, "kind", kind, "error", err)
		return
	}
	r.Logger.Debug("cache error", "op", op, "kind", kind, "error", err)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
