package roster

import (
	"testing"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/errors"
)

func students(rolls ...string) []Student {
	out := make([]Student, len(rolls))
	for i, r := range rolls {
		out[i] = Student{Roll: r, Subject: "Maths"}
	}
	return out
}

func TestQueuePopFrontOrder(t *testing.T) {
	q := NewQueue("X", students("r1", "r2", "r3"))

	for _, want := range []string{"r1", "r2", "r3"} {
		s, ok := q.PopFront()
		if !ok {
			t.Fatalf("PopFront() returned empty before %s", want)
		}
		if s.Roll != want {
			t.Errorf("PopFront() = %s, want %s", s.Roll, want)
		}
	}

	if _, ok := q.PopFront(); ok {
		t.Error("PopFront() on drained queue should return false")
	}
	if !q.Empty() {
		t.Error("drained queue should be empty")
	}
}

func TestQueueDoesNotAliasInput(t *testing.T) {
	in := students("r1", "r2")
	q := NewQueue("X", in)
	in[0].Roll = "changed"

	s, _ := q.Peek()
	if s.Roll != "r1" {
		t.Errorf("queue should copy its input, got %s", s.Roll)
	}
}

func TestQueueRemaining(t *testing.T) {
	q := NewQueue("X", students("r1", "r2", "r3"))
	q.PopFront()

	rest := q.Remaining()
	if len(rest) != 2 || rest[0].Roll != "r2" || rest[1].Roll != "r3" {
		t.Errorf("Remaining() = %v, want [r2 r3]", rest)
	}

	rest[0].Roll = "mutated"
	if s, _ := q.Peek(); s.Roll != "r2" {
		t.Error("Remaining() must return a copy")
	}
}

func TestNilQueue(t *testing.T) {
	var q *Queue
	if q.Len() != 0 || !q.Empty() {
		t.Error("nil queue should be empty")
	}
	if _, ok := q.PopFront(); ok {
		t.Error("nil queue PopFront should return false")
	}
}

func TestRosterAddValidation(t *testing.T) {
	tests := []struct {
		name    string
		section Section
		wantErr bool
	}{
		{"valid", Section{Name: "A", Students: students("1")}, false},
		{"empty section ok", Section{Name: "B"}, false},
		{"missing roll", Section{Name: "C", Students: []Student{{Subject: "Maths"}}}, true},
		{"missing subject", Section{Name: "D", Students: []Student{{Roll: "1"}}}, true},
		{"missing both", Section{Name: "E", Students: []Student{{}}}, true},
		{"bad name", Section{Name: ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Roster{}
			err := r.Add(tt.section)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Add() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.IsData(err) {
				t.Errorf("Add() should return a data error, got %v", err)
			}
		})
	}
}

func TestRosterDuplicateSection(t *testing.T) {
	_, err := New(Section{Name: "A"}, Section{Name: "A"})
	if !errors.IsData(err) {
		t.Fatalf("duplicate section should be a data error, got %v", err)
	}
}

func TestRosterQueuesAreIndependent(t *testing.T) {
	r, err := New(
		Section{Name: "X", Students: students("r1", "r2")},
		Section{Name: "Y", Students: students("r3")},
	)
	if err != nil {
		t.Fatal(err)
	}

	first := r.Queues()
	first.Get("X").PopFront()
	first.Get("X").PopFront()

	second := r.Queues()
	if got := second.Get("X").Len(); got != 2 {
		t.Errorf("fresh queue length = %d, want 2", got)
	}
	if got := first.Total(); got != 1 {
		t.Errorf("drained set total = %d, want 1", got)
	}
	if got := r.StudentCount(); got != 3 {
		t.Errorf("StudentCount() = %d, want 3", got)
	}
}

func TestRosterOrder(t *testing.T) {
	r, err := New(Section{Name: "C"}, Section{Name: "A"}, Section{Name: "B"})
	if err != nil {
		t.Fatal(err)
	}
	names := r.Names()
	want := []string{"C", "A", "B"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", names, want)
		}
	}
	if got := r.Queues().Sections(); got[0] != "C" {
		t.Errorf("QueueSet.Sections() = %v, want roster order", got)
	}
	if r.Queues().Get("missing") != nil {
		t.Error("Get() for an unknown section should return nil")
	}
}
