package cli

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/config"
	seaterrors "github.com/vardhan31/Exam-Seating-Plan/pkg/errors"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/pipeline"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/report"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/roster"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/seating"
)

// errPickerCancelled wraps context.Canceled so quitting the picker exits
// like an interrupt.
var errPickerCancelled = fmt.Errorf("section selection cancelled: %w", context.Canceled)

// generateFlags holds the raw command-line flags of the generate command.
type generateFlags struct {
	config      string
	rows        int
	cols        int
	room        string
	mode        string
	section     string
	start       string
	exam        string
	date        string
	startTime   string
	endTime     string
	formats     string
	output      string
	logo        string
	colors      bool
	noCache     bool
	refresh     bool
	interactive bool
	quiet       bool
}

// generateJob is a fully resolved generate run: flags merged over the
// project file.
type generateJob struct {
	base        pipeline.Options
	rooms       []config.Room
	outDir      string
	cache       cacheOptions
	interactive bool
	quiet       bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate <roster>",
		Short: "Seat students into rooms and write the seating reports",
		Long: `Generate reads a roster (.xlsx with one sheet per section, .yaml or .json),
seats students room by room and writes one report per room.

Rooms come from --config ([[rooms]] entries, filled in order from one shared
set of queues) or from --room/--rows/--cols. Any room flag replaces the
configured rooms with that single room.`,
		Example: `  seatplan generate exam.xlsx --section CSE-A --rows 5 --cols 6 -f pdf
  seatplan generate exam.xlsx --start CSE-A,CSE-B --room "Hall 2"
  seatplan generate exam.xlsx --config seatplan.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := resolveGenerateJob(cmd, flags)
			if err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), args[0], job)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.config, "config", "", "project file (TOML)")
	f.IntVar(&flags.rows, "rows", pipeline.DefaultRows, "rows of seats")
	f.IntVar(&flags.cols, "cols", pipeline.DefaultCols, "columns of seats")
	f.StringVar(&flags.room, "room", pipeline.DefaultRoom, "room number printed on the report")
	f.StringVarP(&flags.mode, "mode", "m", "", "seating mode: single (one section, every other column) or multi (rotating pairs)")
	f.StringVarP(&flags.section, "section", "s", "", "section to seat in single mode")
	f.StringVar(&flags.start, "start", "", "two starting sections for multi mode (comma-separated)")
	f.StringVar(&flags.exam, "exam", "", "exam name")
	f.StringVar(&flags.date, "date", "", "exam date (YYYY-MM-DD)")
	f.StringVar(&flags.startTime, "start-time", pipeline.DefaultStart, "exam start time (HH:MM)")
	f.StringVar(&flags.endTime, "end-time", pipeline.DefaultEnd, "exam end time (HH:MM)")
	f.StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), pdf, png, json, dot, plan (comma-separated)")
	f.StringVarP(&flags.output, "output", "o", "", "output directory (default: current directory)")
	f.StringVar(&flags.logo, "logo", "", "image to print in the report header")
	f.BoolVar(&flags.colors, "colors", false, "tint seats by section")
	f.BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	f.BoolVar(&flags.refresh, "refresh", false, "ignore cached rosters and reports")
	f.BoolVarP(&flags.interactive, "interactive", "i", false, "pick sections interactively")
	f.BoolVarP(&flags.quiet, "quiet", "q", false, "do not print the seating preview")

	return cmd
}

// resolveGenerateJob merges flags over the project file. Flags the user did
// not set leave the file's values alone.
func resolveGenerateJob(cmd *cobra.Command, flags generateFlags) (generateJob, error) {
	cfg := &config.Config{}
	if flags.config != "" {
		loaded, err := config.Load(flags.config)
		if err != nil {
			return generateJob{}, err
		}
		cfg = loaded
	}

	job := generateJob{
		base: pipeline.Options{
			Mode:          cfg.Mode(),
			Section:       cfg.Seating.Section,
			Start:         cfg.Seating.Start,
			Exam:          cfg.Exam,
			Formats:       cfg.Output.Formats,
			SectionColors: cfg.Seating.SectionColors,
		},
		rooms:       cfg.Rooms,
		outDir:      cfg.OutputDir(),
		cache: cacheOptions{
			Backend:  cfg.Cache.Backend,
			RedisURL: cfg.Cache.RedisURL,
			Dir:      cfg.Resolve(cfg.Cache.Dir),
		},
		interactive: flags.interactive,
		quiet:       flags.quiet,
	}
	logoPath := cfg.LogoPath()

	changed := cmd.Flags().Changed
	if changed("mode") {
		mode, err := seating.ParseMode(flags.mode)
		if err != nil {
			return generateJob{}, err
		}
		job.base.Mode = mode
	}
	if changed("section") {
		job.base.Section = flags.section
	}
	if changed("start") {
		job.base.Start = splitList(flags.start)
	}
	if changed("exam") {
		job.base.Exam.Name = flags.exam
	}
	if changed("date") {
		job.base.Exam.Date = flags.date
	}
	if changed("start-time") || job.base.Exam.Start == "" {
		job.base.Exam.Start = flags.startTime
	}
	if changed("end-time") || job.base.Exam.End == "" {
		job.base.Exam.End = flags.endTime
	}
	if changed("format") {
		job.base.Formats = splitList(flags.formats)
	}
	if changed("colors") {
		job.base.SectionColors = flags.colors
	}
	if changed("output") {
		job.outDir = flags.output
	}
	if changed("logo") {
		logoPath = flags.logo
	}
	job.base.Refresh = flags.refresh
	if flags.noCache {
		job.cache.Backend = config.BackendNone
	}

	if changed("rows") || changed("cols") {
		if err := seaterrors.ValidateDimensions(flags.rows, flags.cols); err != nil {
			return generateJob{}, err
		}
	}
	if len(job.rooms) == 0 || changed("room") || changed("rows") || changed("cols") {
		job.rooms = []config.Room{{ID: flags.room, Rows: flags.rows, Cols: flags.cols}}
	}
	if job.outDir == "" {
		job.outDir = "."
	}

	if logoPath != "" {
		logo, err := os.ReadFile(logoPath)
		if err != nil {
			return generateJob{}, seaterrors.Wrap(seaterrors.ErrCodeFileNotFound, err, "logo %s", logoPath)
		}
		job.base.Logo = logo
	}

	// Check everything except the section names before touching the roster.
	probe := job.base
	if err := probe.ValidateForRender(); err != nil {
		return generateJob{}, err
	}
	for _, r := range job.rooms {
		room := job.base
		room.Room, room.Rows, room.Cols = r.ID, r.Rows, r.Cols
		if err := room.ValidateAndSetDefaults(); err != nil {
			return generateJob{}, err
		}
	}
	return job, nil
}

// runGenerate loads the roster and seats every room of job in order from
// one session, so later rooms continue where earlier rooms stopped.
func (c *CLI) runGenerate(ctx context.Context, rosterPath string, job generateJob) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, job.cache, nil)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	ros, rosterHit, err := runner.LoadRosterFileWithCacheInfo(ctx, rosterPath, job.base.Refresh)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Loaded %d sections, %d students", ros.Len(), ros.StudentCount()))

	if err := chooseSections(&job, ros); err != nil {
		return err
	}

	sess, err := seating.NewSession(ros, logger)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(job.outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, room := range job.rooms {
		opts := job.base
		opts.Room, opts.Rows, opts.Cols = room.ID, room.Rows, room.Cols
		opts.Logger = logger

		res, err := c.executeRoom(ctx, runner, sess, opts)
		if err != nil {
			return fmt.Errorf("room %s: %w", room.ID, err)
		}
		res.CacheInfo.RosterHit = rosterHit

		if err := writeArtifacts(job.outDir, res); err != nil {
			return err
		}
		printRoom(res, ros.Names(), job.quiet)
	}

	printNewline()
	printInfo("Students not yet seated")
	fmt.Println(leftoverTable(sess.Remaining(), ros.Names()))
	return nil
}

// executeRoom runs one room, showing a spinner for the slow converters.
func (c *CLI) executeRoom(ctx context.Context, runner *pipeline.Runner, sess *seating.Session, opts pipeline.Options) (*pipeline.Result, error) {
	slow := false
	for _, f := range opts.Formats {
		if f == report.FormatPDF || f == report.FormatPNG {
			slow = true
		}
	}
	if !slow {
		return runner.Execute(ctx, sess, opts)
	}

	spinner := newSpinnerWithContext(ctx, "Rendering "+opts.Room)
	spinner.Start()
	res, err := runner.Execute(ctx, sess, opts)
	if err != nil {
		spinner.StopWithError("Rendering " + opts.Room + " failed")
		return nil, err
	}
	spinner.StopWithSuccess("Rendered " + opts.Room)
	return res, nil
}

// chooseSections fills in missing sections from the picker when asked to,
// or when stdin is a terminal and nothing was given.
func chooseSections(job *generateJob, ros *roster.Roster) error {
	opts := &job.base
	opts.SetAllocateDefaults()

	var need int
	switch {
	case opts.Mode == seating.ModeSingle && (opts.Section == "" || job.interactive):
		need = 1
	case opts.Mode == seating.ModeMulti && (len(opts.Start) == 0 || job.interactive):
		need = 2
	default:
		return nil
	}
	if !job.interactive && !isTerminal(os.Stdin) {
		return nil
	}

	chosen, err := pickSections(ros, need)
	if err != nil {
		return err
	}
	if need == 1 {
		opts.Section = chosen[0]
	} else {
		opts.Start = chosen
	}
	return nil
}

// writeArtifacts writes every rendered format of res into dir.
func writeArtifacts(dir string, res *pipeline.Result) error {
	for format, data := range res.Artifacts {
		path := filepath.Join(dir, res.Report.Filename(format))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

// printRoom prints the outcome of one room.
func printRoom(res *pipeline.Result, sections []string, quiet bool) {
	alloc := res.Allocation
	printNewline()
	printSuccess("Room %s", StyleTitle.Render(res.Report.Room))
	printRoomStats(alloc.Stats.Placed, alloc.Plan.Capacity(), len(alloc.Stats.Replacements), res.CacheInfo.RenderHit)
	if !quiet {
		fmt.Println(gridTable(res.Report.Grid, sections))
		fmt.Println(summaryTable(res.Report.Summary))
	}
	for _, r := range alloc.Stats.Replacements {
		printDetail("slot %s: %s → %s at row %d, col %d", r.Slot, r.From, r.To, r.Row+1, r.Col+1)
	}
	for _, r := range alloc.Stats.Retirements {
		printDetail("slot %s: %s ran out at row %d, col %d, nothing left to rotate in", r.Slot, r.Section, r.Row+1, r.Col+1)
	}
	if alloc.Underfilled() {
		printWarning("%d seats left empty", alloc.Plan.Capacity()-alloc.Stats.Placed)
	}
	for _, format := range slices.Sorted(maps.Keys(res.Artifacts)) {
		printFile(res.Report.Filename(format))
	}
}
