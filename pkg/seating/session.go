package seating

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/errors"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/roster"
)

// Session seats several rooms from one roster. Queues carry over between
// rooms, so students seated in one room are not seated again in the next.
//
// A Session is safe for concurrent use; allocations are serialized.
type Session struct {
	mu     sync.Mutex
	roster *roster.Roster
	queues *roster.QueueSet
	alloc  *Allocator
	rooms  int
}

// NewSession starts a session with fresh queues built from r.
func NewSession(r *roster.Roster, logger *log.Logger) (*Session, error) {
	if r == nil || r.Len() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRoster, "roster has no sections")
	}
	return &Session{
		roster: r,
		queues: r.Queues(),
		alloc:  NewAllocator(logger),
	}, nil
}

// Roster returns the roster the session was built from.
func (s *Session) Roster() *roster.Roster { return s.roster }

// Allocate seats the next room using the students still waiting.
// A rejected plan leaves the queues untouched.
func (s *Session) Allocate(ctx context.Context, plan Plan) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.alloc.Allocate(ctx, plan, s.queues)
	if err != nil {
		return nil, err
	}
	s.rooms++
	return res, nil
}

// Remaining returns how many students each section still has waiting.
func (s *Session) Remaining() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queues.Lengths()
}

// Rooms returns the number of rooms allocated since the session started or
// was last reset.
func (s *Session) Rooms() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms
}

// Reset rebuilds every queue from the roster.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queues = s.roster.Queues()
	s.rooms = 0
}
