// Package config loads seatplan project files.
//
// A project file is TOML and describes one exam sitting: the exam header,
// how to seat students, the rooms to fill in order, where to write reports
// and which cache backend to use.
//
//	[exam]
//	name  = "Mid Term"
//	date  = "2025-03-14"
//	start = "10:00"
//	end   = "11:30"
//
//	[seating]
//	mode  = "multi"
//	start = ["CSE-A", "CSE-B"]
//
//	[[rooms]]
//	id   = "LAB-1"
//	rows = 4
//	cols = 4
//
//	[output]
//	formats = ["pdf"]
//	dir     = "out"
//
// Relative paths (logo, output dir, cache dir) are resolved against the
// directory containing the file.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/errors"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/report"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/seating"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// ValidBackends is the set of supported cache backends.
var ValidBackends = map[string]bool{
	BackendFile:  true,
	BackendRedis: true,
	BackendNone:  true,
}

// Config is a parsed project file.
type Config struct {
	Exam    report.Exam `toml:"exam"`
	Seating Seating     `toml:"seating"`
	Rooms   []Room      `toml:"rooms"`
	Output  Output      `toml:"output"`
	Cache   Cache       `toml:"cache"`

	// dir is the directory relative paths are resolved against.
	dir string
}

// Seating selects the allocation strategy shared by every room.
type Seating struct {
	Mode          string   `toml:"mode"`
	Section       string   `toml:"section"`
	Start         []string `toml:"start"`
	SectionColors bool     `toml:"section_colors"`
}

// Room is one room to fill, in the order listed.
type Room struct {
	ID   string `toml:"id"`
	Rows int    `toml:"rows"`
	Cols int    `toml:"cols"`
}

// Output controls what is written and where.
type Output struct {
	Formats []string `toml:"formats"`
	Logo    string   `toml:"logo"`
	Dir     string   `toml:"dir"`
}

// Cache selects the cache backend.
type Cache struct {
	Backend  string `toml:"backend"`
	RedisURL string `toml:"redis_url"`
	Dir      string `toml:"dir"`
}

// Load reads and validates the project file at path.
// Unknown keys are rejected so typos surface instead of being ignored.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve config dir")
	}
	cfg.dir = abs
	return cfg, nil
}

// Parse decodes and validates TOML project data. Relative paths in the
// result resolve against the working directory.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every section of the file. Values that are left empty are
// filled in later by the pipeline defaults and are not errors here.
func (c *Config) Validate() error {
	if c.Seating.Mode != "" {
		mode, err := seating.ParseMode(c.Seating.Mode)
		if err != nil {
			return err
		}
		c.Seating.Mode = string(mode)
	}
	if c.Seating.Section != "" {
		if err := errors.ValidateSectionName(c.Seating.Section); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "seating.section")
		}
	}
	for _, s := range c.Seating.Start {
		if err := errors.ValidateSectionName(s); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "seating.start")
		}
	}

	if c.Exam.Start != "" && c.Exam.End != "" {
		if err := c.Exam.Validate(); err != nil {
			return err
		}
	}

	seen := make(map[string]bool, len(c.Rooms))
	for i, r := range c.Rooms {
		if err := errors.ValidateRoomID(r.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "rooms[%d]", i)
		}
		if seen[r.ID] {
			return errors.New(errors.ErrCodeInvalidConfig, "room %q listed twice", r.ID)
		}
		seen[r.ID] = true
		if r.Rows < 0 || r.Cols < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "room %q: rows and cols must be positive", r.ID)
		}
	}

	if err := report.ValidateFormats(c.Output.Formats); err != nil {
		return err
	}

	if c.Cache.Backend != "" && !ValidBackends[c.Cache.Backend] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid cache backend: %q (must be one of: %s)",
			c.Cache.Backend, strings.Join(backendNames(), ", "))
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisURL == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache backend redis needs redis_url")
	}
	return nil
}

// Mode returns the configured allocation mode, or "" if unset.
func (c *Config) Mode() seating.Mode {
	return seating.Mode(c.Seating.Mode)
}

// Resolve returns p relative to the config file's directory. Absolute and
// empty paths are returned unchanged.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

// LogoPath returns the resolved logo path, or "" if none is configured.
func (c *Config) LogoPath() string { return c.Resolve(c.Output.Logo) }

// OutputDir returns the resolved output directory, or "" if none is configured.
func (c *Config) OutputDir() string { return c.Resolve(c.Output.Dir) }

func backendNames() []string {
	names := make([]string, 0, len(ValidBackends))
	for b := range ValidBackends {
		names = append(names, b)
	}
	slices.Sort(names)
	return names
}
