package seating

import (
	"slices"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/errors"
)

// Slot identifies one of the two active rotation positions.
type Slot int

const (
	// SlotA supplies even columns.
	SlotA Slot = iota
	// SlotB supplies odd columns.
	SlotB
)

func (s Slot) String() string {
	if s == SlotA {
		return "A"
	}
	return "B"
}

// slotFor returns the slot that fills column col.
func slotFor(col int) Slot {
	if col%2 == 0 {
		return SlotA
	}
	return SlotB
}

// Rotation tracks which sections are active in multi-section mode and which
// are still waiting in the pool.
//
// Pool holds every section except the two starting ones, in roster order.
// Pointer indexes the next unused pool entry and only moves forward; once it
// reaches len(Pool) the rotation is exhausted and an empty slot stays retired.
type Rotation struct {
	Active  [2]string `json:"active"`
	Pool    []string  `json:"pool"`
	Pointer int       `json:"pointer"`
}

// NewRotation builds the initial rotation state from the two starting
// sections and the full ordered section list.
func NewRotation(start []string, all []string) (*Rotation, error) {
	if len(all) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "multi-section seating needs at least 2 sections, roster has %d", len(all))
	}
	if len(start) != 2 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "multi-section seating needs exactly 2 starting sections, got %d", len(start))
	}
	if start[0] == start[1] {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "starting sections must differ, got %q twice", start[0])
	}
	for _, s := range start {
		if !slices.Contains(all, s) {
			return nil, errors.New(errors.ErrCodeSectionNotFound, "starting section %q not in roster", s)
		}
	}

	pool := make([]string, 0, len(all)-2)
	for _, s := range all {
		if s != start[0] && s != start[1] {
			pool = append(pool, s)
		}
	}
	return &Rotation{Active: [2]string{start[0], start[1]}, Pool: pool}, nil
}

// Exhausted reports whether every pool section has been used.
func (r *Rotation) Exhausted() bool { return r.Pointer >= len(r.Pool) }

// Section returns the section currently held by slot.
func (r *Rotation) Section(slot Slot) string { return r.Active[slot] }

// promote moves the next pool section into slot and returns the section it
// replaced. It returns false when the pool is exhausted.
func (r *Rotation) promote(slot Slot) (string, bool) {
	if r.Exhausted() {
		return "", false
	}
	prev := r.Active[slot]
	r.Active[slot] = r.Pool[r.Pointer]
	r.Pointer++
	return prev, true
}

// Waiting returns the pool sections not yet made active.
func (r *Rotation) Waiting() []string {
	if r.Exhausted() {
		return nil
	}
	return slices.Clone(r.Pool[r.Pointer:])
}
