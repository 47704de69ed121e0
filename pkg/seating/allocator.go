package seating

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/errors"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/observability"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/roster"
)

// Result is the outcome of one allocation run.
type Result struct {
	ID       string         `json:"id"`
	Plan     Plan           `json:"plan"`
	Grid     *Grid          `json:"-"`
	Summary  Summary        `json:"summary"`
	Stats    FillStats      `json:"stats"`
	Rotation *Rotation      `json:"rotation,omitempty"`
	Leftover map[string]int `json:"leftover"`
}

// Underfilled reports whether seats the plan could have used were left
// empty because the queues ran out. This is a normal outcome, not an error.
func (r *Result) Underfilled() bool {
	return r.Stats.Placed < r.Plan.Capacity()
}

// Allocator runs allocation plans against a queue set.
// The zero value is ready to use and logs nothing.
type Allocator struct {
	Logger *log.Logger
}

// NewAllocator creates an allocator that logs to logger.
func NewAllocator(logger *log.Logger) *Allocator {
	return &Allocator{Logger: logger}
}

func (a *Allocator) logger() *log.Logger {
	if a == nil || a.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return a.Logger
}

// Allocate validates plan, then fills a fresh grid from queues.
//
// Configuration errors are returned before any queue is touched. On success
// the queues have been drained by exactly the number of seated students.
// Allocation runs to completion; ctx only carries values to observability
// hooks and is not checked for cancellation.
func (a *Allocator) Allocate(ctx context.Context, plan Plan, queues *roster.QueueSet) (*Result, error) {
	if queues == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no roster loaded")
	}
	if err := plan.Validate(queues.Sections()); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	logger := a.logger()
	start := time.Now()
	hooks.OnAllocateStart(ctx, string(plan.Mode), plan.Rows, plan.Cols)

	g, err := NewGrid(plan.Rows, plan.Cols)
	if err != nil {
		hooks.OnAllocateComplete(ctx, string(plan.Mode), 0, time.Since(start), err)
		return nil, err
	}

	res := &Result{ID: uuid.NewString(), Plan: plan, Grid: g}

	switch plan.Mode {
	case ModeSingle:
		res.Stats = FillSingle(g, plan.Section, queues.Get(plan.Section))
	case ModeMulti:
		// Validate already built a rotation once; build the one we mutate.
		rot, err := NewRotation(plan.Start, queues.Sections())
		if err != nil {
			return nil, err
		}
		res.Stats = FillRotating(g, rot, queues)
		res.Rotation = rot
		for _, rep := range res.Stats.Replacements {
			hooks.OnSlotReplaced(ctx, rep.Slot.String(), rep.From, rep.To)
			logger.Debug("slot replaced", "slot", rep.Slot, "from", rep.From, "to", rep.To, "row", rep.Row, "col", rep.Col)
		}
		for _, ret := range res.Stats.Retirements {
			logger.Debug("slot retired", "slot", ret.Slot, "section", ret.Section, "row", ret.Row, "col", ret.Col)
		}
	}

	res.Summary = Summarize(g)
	res.Leftover = queues.Lengths()

	elapsed := time.Since(start)
	hooks.OnAllocateComplete(ctx, string(plan.Mode), res.Stats.Placed, elapsed, nil)
	logger.Info("allocated seats",
		"id", res.ID,
		"mode", plan.Mode,
		"grid", g.Rows()*g.Cols(),
		"placed", res.Stats.Placed,
		"duration", elapsed)
	if res.Underfilled() {
		logger.Debug("grid underfilled", "capacity", plan.Capacity(), "placed", res.Stats.Placed)
	}

	return res, nil
}
