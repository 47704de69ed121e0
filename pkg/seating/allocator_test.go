package seating

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/errors"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/observability"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/roster"
)

type recordingHooks struct {
	observability.NoopPipelineHooks
	starts       int
	completes    int
	replacements []string
}

func (h *recordingHooks) OnAllocateStart(context.Context, string, int, int) { h.starts++ }

func (h *recordingHooks) OnAllocateComplete(context.Context, string, int, time.Duration, error) {
	h.completes++
}

func (h *recordingHooks) OnSlotReplaced(_ context.Context, slot, from, to string) {
	h.replacements = append(h.replacements, slot+":"+from+">"+to)
}

func TestAllocateSingle(t *testing.T) {
	r := mustRoster(t,
		roster.Section{Name: "X", Students: students("x", 3)},
		roster.Section{Name: "Y", Students: students("y", 2)},
	)
	queues := r.Queues()

	res, err := (&Allocator{}).Allocate(context.Background(), Plan{Rows: 2, Cols: 2, Mode: ModeSingle, Section: "X"}, queues)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	assertGrid(t, res.Grid, [][]string{{"X:x1", ""}, {"X:x2", ""}})
	if res.ID == "" {
		t.Error("result has no ID")
	}
	if res.Summary.Count("X") != 2 || res.Summary.Total() != 2 {
		t.Errorf("Summary = %+v", res.Summary)
	}
	if res.Leftover["X"] != 1 || res.Leftover["Y"] != 2 {
		t.Errorf("Leftover = %v", res.Leftover)
	}
	if res.Rotation != nil {
		t.Errorf("single mode should not report a rotation: %+v", res.Rotation)
	}
	if res.Underfilled() {
		t.Error("full single grid reported underfilled")
	}
}

func TestAllocateMulti(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	r := mustRoster(t,
		roster.Section{Name: "A", Students: students("a", 1)},
		roster.Section{Name: "B", Students: students("b", 1)},
		roster.Section{Name: "C", Students: students("c", 1)},
	)

	res, err := NewAllocator(logger).Allocate(context.Background(),
		Plan{Rows: 1, Cols: 3, Mode: ModeMulti, Start: []string{"A", "B"}}, r.Queues())
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	assertGrid(t, res.Grid, [][]string{{"A:a1", "B:b1", "C:c1"}})
	if res.Rotation == nil || res.Rotation.Active != [2]string{"C", "B"} {
		t.Errorf("Rotation = %+v", res.Rotation)
	}
	if hooks.starts != 1 || hooks.completes != 1 {
		t.Errorf("hooks start=%d complete=%d, want 1 each", hooks.starts, hooks.completes)
	}
	if len(hooks.replacements) != 1 || hooks.replacements[0] != "A:A>C" {
		t.Errorf("replacement hooks = %v", hooks.replacements)
	}
	if !strings.Contains(buf.String(), "allocated seats") || !strings.Contains(buf.String(), "slot replaced") {
		t.Errorf("log output missing allocation lines:\n%s", buf.String())
	}
}

func TestAllocateRejectsBeforeConsuming(t *testing.T) {
	r := mustRoster(t,
		roster.Section{Name: "A", Students: students("a", 4)},
		roster.Section{Name: "B", Students: students("b", 4)},
	)
	queues := r.Queues()

	plans := []Plan{
		{Rows: 0, Cols: 2, Mode: ModeSingle, Section: "A"},
		{Rows: 2, Cols: 2, Mode: ModeSingle, Section: "Z"},
		{Rows: 2, Cols: 2, Mode: ModeMulti, Start: []string{"A"}},
		{Rows: 2, Cols: 2, Mode: ModeMulti, Start: []string{"A", "Q"}},
	}
	for _, p := range plans {
		if _, err := (&Allocator{}).Allocate(context.Background(), p, queues); err == nil {
			t.Errorf("Allocate(%+v) succeeded, want error", p)
		}
	}
	if queues.Total() != 8 {
		t.Errorf("rejected plans consumed students: %d left", queues.Total())
	}
}

func TestAllocateNilQueues(t *testing.T) {
	_, err := (&Allocator{}).Allocate(context.Background(), Plan{Rows: 1, Cols: 1, Mode: ModeSingle, Section: "A"}, nil)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Allocate(nil queues) = %v, want INVALID_INPUT", err)
	}
}

func TestAllocateUnderfilled(t *testing.T) {
	r := mustRoster(t,
		roster.Section{Name: "A", Students: students("a", 2)},
		roster.Section{Name: "B", Students: students("b", 1)},
	)
	res, err := (&Allocator{}).Allocate(context.Background(),
		Plan{Rows: 3, Cols: 3, Mode: ModeMulti, Start: []string{"A", "B"}}, r.Queues())
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if !res.Underfilled() {
		t.Error("grid with 3 students in 9 seats should be underfilled")
	}
	if res.Stats.Placed != 3 || res.Grid.Occupied() != 3 {
		t.Errorf("Placed = %d, Occupied = %d, want 3", res.Stats.Placed, res.Grid.Occupied())
	}
}

func TestAllocateIDsAreUnique(t *testing.T) {
	r := mustRoster(t, roster.Section{Name: "A", Students: students("a", 10)})
	a := &Allocator{}
	plan := Plan{Rows: 1, Cols: 1, Mode: ModeSingle, Section: "A"}
	queues := r.Queues()

	first, _ := a.Allocate(context.Background(), plan, queues)
	second, _ := a.Allocate(context.Background(), plan, queues)
	if first.ID == second.ID {
		t.Errorf("two runs share ID %s", first.ID)
	}
}
