package seating

import (
	"slices"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/errors"
)

// Mode selects the allocation strategy.
type Mode string

const (
	// ModeSingle seats one section in even columns.
	ModeSingle Mode = "single"
	// ModeMulti alternates two rotating sections across columns.
	ModeMulti Mode = "multi"
)

// ValidModes is the set of supported modes.
var ValidModes = map[Mode]bool{
	ModeSingle: true,
	ModeMulti:  true,
}

// ParseMode accepts the canonical mode names plus the labels used on the
// seating form ("one", "different").
func ParseMode(s string) (Mode, error) {
	switch s {
	case "single", "one", "only-one", "single-section":
		return ModeSingle, nil
	case "multi", "different", "multi-section", "rotating":
		return ModeMulti, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "invalid mode: %q (must be one of: single, multi)", s)
}

// Plan is the configuration of one allocation run.
type Plan struct {
	Rows    int      `json:"rows" toml:"rows"`
	Cols    int      `json:"cols" toml:"cols"`
	Mode    Mode     `json:"mode" toml:"mode"`
	Section string   `json:"section,omitempty" toml:"section"`
	Start   []string `json:"start,omitempty" toml:"start"`
}

// Validate checks the plan against the ordered section list of a roster.
// Every failure is a configuration error; nothing is allocated.
func (p Plan) Validate(sections []string) error {
	if err := errors.ValidateDimensions(p.Rows, p.Cols); err != nil {
		return err
	}
	switch p.Mode {
	case ModeSingle:
		if p.Section == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "single-section seating needs a section")
		}
		if !slices.Contains(sections, p.Section) {
			return errors.New(errors.ErrCodeSectionNotFound, "section %q not in roster", p.Section)
		}
		return nil
	case ModeMulti:
		_, err := NewRotation(p.Start, sections)
		return err
	}
	return errors.New(errors.ErrCodeInvalidConfig, "invalid mode: %q (must be one of: single, multi)", p.Mode)
}

// Capacity returns how many students the plan can seat: the even-column
// seats in single mode, every seat in multi mode.
func (p Plan) Capacity() int {
	if p.Mode == ModeSingle {
		return p.Rows * ((p.Cols + 1) / 2)
	}
	return p.Rows * p.Cols
}
