// Package pipeline runs the load → allocate → render flow shared by the CLI
// and the HTTP API.
//
// # Architecture
//
// The pipeline has three stages:
//
//  1. Load: read a roster file (xlsx, yaml, json) into a [roster.Roster]
//  2. Allocate: seat one room from a [seating.Session]
//  3. Render: produce the report in one or more formats (svg, pdf, png, json, dot, plan)
//
// Loading and rendering are cached; allocation never is, because every run
// consumes students from the session's queues.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	r, err := runner.LoadRosterFile(ctx, "exam.xlsx", false)
//	sess, err := seating.NewSession(r, logger)
//	res, err := runner.Execute(ctx, sess, pipeline.Options{
//	    Rows: 4, Cols: 4,
//	    Mode: seating.ModeSingle, Section: "CSE-A",
//	    Room: "LAB-1",
//	    Formats: []string{"pdf"},
//	})
//	pdf := res.Artifacts["pdf"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/cache"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/errors"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/report"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/seating"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API and config files
// =============================================================================

const (
	// DefaultRows and DefaultCols size a room when nothing else is given.
	DefaultRows = 4
	DefaultCols = 4

	// DefaultRoom is the room printed when none is given.
	DefaultRoom = "LAB-1"

	// DefaultStart and DefaultEnd are the default exam times.
	DefaultStart = "10:00"
	DefaultEnd   = "11:30"

	// DefaultMode is the allocation strategy used when none is given.
	DefaultMode = seating.ModeSingle

	// DefaultFormat is the output format used when none is given.
	DefaultFormat = report.FormatSVG
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one allocate → render run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Allocation options
	Rows    int          `json:"rows,omitempty"`
	Cols    int          `json:"cols,omitempty"`
	Mode    seating.Mode `json:"mode,omitempty"`
	Section string       `json:"section,omitempty"`
	Start   []string     `json:"start,omitempty"`

	// Report options
	Room string      `json:"room,omitempty"`
	Exam report.Exam `json:"exam"`

	// Render options
	Formats       []string `json:"formats,omitempty"`
	SectionColors bool     `json:"section_colors,omitempty"`
	Refresh       bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logo   []byte      `json:"-"`
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of one pipeline run.
type Result struct {
	// Allocation is the seating result, including leftover counts.
	Allocation *seating.Result

	// Report is the rendered report model.
	Report report.Report

	// ReportHash is the content hash of the report, used for artifact caching.
	ReportHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Placed       int
	AllocateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RosterHit bool `json:"roster"` // Whether the roster came from cache
	RenderHit bool `json:"render"` // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for the full
// pipeline. Calling it more than once has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForAllocate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetAllocateDefaults fills in grid size and mode.
func (o *Options) SetAllocateDefaults() {
	if o.Rows == 0 {
		o.Rows = DefaultRows
	}
	if o.Cols == 0 {
		o.Cols = DefaultCols
	}
	if o.Mode == "" {
		o.Mode = DefaultMode
		if o.Section == "" && len(o.Start) > 0 {
			o.Mode = seating.ModeMulti
		}
	}
	o.setLoggerDefault()
}

// ValidateForAllocate applies allocation defaults and checks the mode and
// grid size. Section names are checked against the roster at allocation time.
func (o *Options) ValidateForAllocate() error {
	o.SetAllocateDefaults()
	if !seating.ValidModes[o.Mode] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid mode: %q (must be one of: single, multi)", o.Mode)
	}
	return errors.ValidateDimensions(o.Rows, o.Cols)
}

// SetRenderDefaults fills in room, exam times and formats.
func (o *Options) SetRenderDefaults() {
	if o.Room == "" {
		o.Room = DefaultRoom
	}
	if o.Exam.Start == "" {
		o.Exam.Start = DefaultStart
	}
	if o.Exam.End == "" {
		o.Exam.End = DefaultEnd
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	o.setLoggerDefault()
}

// ValidateForRender applies render defaults and checks room, exam and formats.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := errors.ValidateRoomID(o.Room); err != nil {
		return err
	}
	if err := o.Exam.Validate(); err != nil {
		return err
	}
	return report.ValidateFormats(o.Formats)
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Plan returns the allocation plan described by the options.
func (o *Options) Plan() seating.Plan {
	return seating.Plan{
		Rows:    o.Rows,
		Cols:    o.Cols,
		Mode:    o.Mode,
		Section: o.Section,
		Start:   o.Start,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, SectionColors: o.SectionColors}
	if len(o.Logo) > 0 {
		opts.LogoHash = cache.Hash(o.Logo)
	}
	return opts
}
