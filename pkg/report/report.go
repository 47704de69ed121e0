package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/errors"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/seating"
)

// Input and display layouts for exam dates and times.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	displayDate = "02-01-2006"
	displayTime = "03:04 PM"
)

// Exam describes the sitting printed in the report header.
// Date and times are kept in their input layouts so the value round-trips
// through JSON and TOML unchanged.
type Exam struct {
	Name  string `json:"name" toml:"name"`
	Date  string `json:"date" toml:"date"`
	Start string `json:"start" toml:"start"`
	End   string `json:"end" toml:"end"`
}

// Validate checks the date and time fields. An empty date is allowed and
// prints as a blank for filling in by hand.
func (e Exam) Validate() error {
	if e.Date != "" {
		if _, err := time.Parse(DateLayout, e.Date); err != nil {
			return errors.New(errors.ErrCodeInvalidConfig, "exam date %q: want YYYY-MM-DD", e.Date)
		}
	}
	start, err := time.Parse(TimeLayout, e.Start)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidConfig, "exam start %q: want HH:MM", e.Start)
	}
	end, err := time.Parse(TimeLayout, e.End)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidConfig, "exam end %q: want HH:MM", e.End)
	}
	if !end.After(start) {
		return errors.New(errors.ErrCodeInvalidConfig, "exam ends at %s, before it starts at %s", e.End, e.Start)
	}
	return nil
}

// DisplayDate returns the date as DD-MM-YYYY, or "" if unset.
func (e Exam) DisplayDate() string {
	d, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return ""
	}
	return d.Format(displayDate)
}

// DisplayTimeRange returns "10:00 AM - 11:30 AM".
func (e Exam) DisplayTimeRange() string {
	return clock(e.Start) + " - " + clock(e.End)
}

// DateTime is the "Date & Time" cell of the details table.
func (e Exam) DateTime() string {
	return strings.TrimSpace(e.DisplayDate() + "  " + e.DisplayTimeRange())
}

func clock(s string) string {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return s
	}
	return t.Format(displayTime)
}

// Report is everything needed to print one room.
type Report struct {
	Room    string
	Exam    Exam
	Grid    *seating.Grid
	Summary seating.Summary
}

// New builds a report for a finished allocation.
func New(room string, exam Exam, res *seating.Result) Report {
	return Report{Room: room, Exam: exam, Grid: res.Grid, Summary: res.Summary}
}

// Validate checks that the report can be rendered.
func (r Report) Validate() error {
	if err := errors.ValidateRoomID(r.Room); err != nil {
		return err
	}
	if r.Grid == nil {
		return errors.New(errors.ErrCodeInvalidInput, "report for room %s has no seating grid", r.Room)
	}
	return r.Exam.Validate()
}

// Filename returns the output file name for one format, e.g. "LAB-1_seating.pdf".
func (r Report) Filename(format string) string {
	ext := format
	if format == FormatPlan {
		ext = "plan.svg"
	}
	return fmt.Sprintf("%s_seating.%s", strings.ReplaceAll(r.Room, " ", "_"), ext)
}

// sectionPalette fills seats by section, in summary order.
var sectionPalette = []string{
	"#dbeafe", "#dcfce7", "#fef9c3", "#fce7f3", "#ede9fe",
	"#ffedd5", "#ccfbf1", "#e0e7ff", "#f3f4f6", "#fee2e2",
}

// sectionColors assigns a fill color to every section in the summary.
func sectionColors(s seating.Summary) map[string]string {
	out := make(map[string]string, len(s))
	for i, c := range s {
		out[c.Section] = sectionPalette[i%len(sectionPalette)]
	}
	return out
}
