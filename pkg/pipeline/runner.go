package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/cache"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/errors"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/observability"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/report"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/seating"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner holds no pipeline results. Multiple goroutines can use the same
// Runner; allocation state lives in the [seating.Session] passed to Execute.
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
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute seats one room from sess and renders its report.
//
// Options are validated before any student is consumed, so a rejected run
// leaves the session untouched.
func (r *Runner) Execute(ctx context.Context, sess *seating.Session, opts Options) (*Result, error) {
	if sess == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no seating session")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Allocate
	allocStart := time.Now()
	alloc, err := sess.Allocate(ctx, opts.Plan())
	if err != nil {
		return nil, fmt.Errorf("allocate: %w", err)
	}
	result.Allocation = alloc
	result.Stats.AllocateTime = time.Since(allocStart)
	result.Stats.Placed = alloc.Stats.Placed

	if alloc.Underfilled() {
		r.Logger.Warn("room not filled",
			"room", opts.Room,
			"placed", alloc.Stats.Placed,
			"capacity", alloc.Plan.Capacity())
	}

	// Stage 2: Render
	result.Report = report.New(opts.Room, opts.Exam, alloc)
	renderStart := time.Now()
	artifacts, hash, renderHit, err := r.renderWithHash(ctx, result.Report, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.ReportHash = hash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"room", opts.Room,
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders rep with caching and returns cache hit info.
// Artifacts are keyed by the report's content, so two rooms seated
// identically share cache entries.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, rep report.Report, opts Options) (map[string][]byte, bool, error) {
	artifacts, _, hit, err := r.renderWithHash(ctx, rep, opts)
	return artifacts, hit, err
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, rep report.Report, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, rep, opts)
	return artifacts, err
}

func (r *Runner) renderWithHash(ctx context.Context, rep report.Report, opts Options) (map[string][]byte, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, "", false, err
	}
	if err := rep.Validate(); err != nil {
		return nil, "", false, err
	}

	reportData, err := report.RenderJSON(rep)
	if err != nil {
		return nil, "", false, fmt.Errorf("serialize report for cache key: %w", err)
	}
	reportHash := cache.Hash(reportData)
	cacheHooks := observability.Cache()

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(reportHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			cacheHooks.OnCacheHit(ctx, "artifact")
			return artifacts, reportHash, true, nil
		}
		cacheHooks.OnCacheMiss(ctx, "artifact")
	}

	rendered, err := Render(ctx, rep, opts)
	if err != nil {
		return nil, "", false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(reportHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache artifact", "format", format, "error", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, reportHash, false, nil
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
