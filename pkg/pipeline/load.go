package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/cache"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/errors"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/observability"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/roster"
)

// rosterDocument is the cached form of a roster. It uses the JSON roster
// layout so a cache entry can be read back with [roster.Read].
type rosterDocument struct {
	Sections []roster.Section `json:"sections"`
}

// LoadRosterFileWithCacheInfo reads the roster file at path, consulting the
// cache first. The cache key is derived from the file content, so editing
// the file invalidates the entry.
func (r *Runner) LoadRosterFileWithCacheInfo(ctx context.Context, path string, refresh bool) (*roster.Roster, bool, error) {
	format, err := roster.FormatFromPath(path)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, errors.Wrap(errors.ErrCodeFileNotFound, err, "roster %s", path)
		}
		return nil, false, errors.Wrap(errors.ErrCodeInvalidInput, err, "read roster %s", path)
	}
	return r.LoadRosterWithCacheInfo(ctx, path, data, format, refresh)
}

// LoadRosterFile is a convenience wrapper that discards the cache hit info.
func (r *Runner) LoadRosterFile(ctx context.Context, path string, refresh bool) (*roster.Roster, error) {
	ros, _, err := r.LoadRosterFileWithCacheInfo(ctx, path, refresh)
	return ros, err
}

// LoadRosterWithCacheInfo decodes roster data in the given format with caching.
// source names the data in logs and hooks (a path or an upload name).
func (r *Runner) LoadRosterWithCacheInfo(ctx context.Context, source string, data []byte, format string, refresh bool) (*roster.Roster, bool, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()

	ros, hit, err := r.loadRoster(ctx, data, format, refresh)

	var sections, students int
	if ros != nil {
		sections, students = ros.Len(), ros.StudentCount()
	}
	hooks.OnLoadComplete(ctx, source, sections, students, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	r.Logger.Info("loaded roster",
		"source", source,
		"sections", sections,
		"students", students,
		"cached", hit)
	return ros, hit, nil
}

func (r *Runner) loadRoster(ctx context.Context, data []byte, format string, refresh bool) (*roster.Roster, bool, error) {
	cacheKey := r.Keyer.RosterKey(cache.Hash(data), format)
	cacheHooks := observability.Cache()

	if !refresh {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			ros, err := roster.Read(bytes.NewReader(cached), roster.FormatJSON)
			if err == nil {
				cacheHooks.OnCacheHit(ctx, "roster")
				return ros, true, nil
			}
			r.Logger.Warn("discarding unreadable cached roster", "error", err)
		}
		cacheHooks.OnCacheMiss(ctx, "roster")
	}

	ros, err := roster.Read(bytes.NewReader(data), format)
	if err != nil {
		return nil, false, err
	}

	if encoded, err := json.Marshal(rosterDocument{Sections: ros.Sections()}); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, encoded, cache.TTLRoster); err != nil {
			r.Logger.Warn("cache roster", "error", err)
		} else {
			cacheHooks.OnCacheSet(ctx, "roster", len(encoded))
		}
	}

	return ros, false, nil
}
