// Package cli implements the seatplan command-line interface.
//
// # Commands
//
//   - generate: seat one or more rooms from a roster and write the reports
//   - sections: list the sections of a roster with their sizes
//   - serve: run the HTTP API
//   - cache: inspect or clear the local cache
//   - completion: shell completion scripts
//
// All commands accept --verbose (-v) for debug logging, which includes one
// line per pipeline, cache and HTTP event. The logger travels
// through the command context; see [withLogger].
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/buildinfo"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/cache"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/config"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/observability"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/pipeline"
)

// appName names the cache directory and the binary.
const appName = "seatplan"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI that logs to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Seatplan builds exam seating plans from class rosters",
		Long:         `Seatplan seats students of one or more class sections into exam rooms so that neighbours never share a section, and prints a report per room for invigilators.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			observability.Register(observability.NewLogHooks(c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.sectionsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheOptions selects and locates the cache backend.
type cacheOptions struct {
	Backend  string // file (default), redis or none
	RedisURL string
	Dir      string // file cache directory; empty means cacheDir()
}

// newRunner creates a pipeline runner on the selected cache backend.
func (c *CLI) newRunner(ctx context.Context, opts cacheOptions, keyer cache.Keyer) (*pipeline.Runner, error) {
	ch, err := newCache(ctx, opts)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

// newCache opens a cache backend. If no cache directory can be determined,
// caching is disabled.
func newCache(ctx context.Context, opts cacheOptions) (cache.Cache, error) {
	switch opts.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, opts.RedisURL)
		if err != nil {
			return nil, err
		}
		return rc, nil
	}

	dir := opts.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory following XDG (~/.cache/seatplan/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// splitList parses a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
