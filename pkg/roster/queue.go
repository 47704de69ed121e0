package roster

// Student is one roster entry. It is a value type and never changes after
// it has been read.
type Student struct {
	Roll    string `json:"roll" yaml:"roll"`
	Subject string `json:"subject" yaml:"subject"`
}

// Queue is a FIFO of students belonging to one section.
//
// The only mutating operation is [Queue.PopFront]. A student popped from a
// queue is gone for good, which is what guarantees that no student is seated
// twice within a run or a session.
//
// A Queue is not safe for concurrent use.
type Queue struct {
	section  string
	students []Student
	head     int
}

// NewQueue creates a queue over a copy of students.
func NewQueue(section string, students []Student) *Queue {
	return &Queue{
		section:  section,
		students: append([]Student(nil), students...),
	}
}

// Section returns the section this queue belongs to.
func (q *Queue) Section() string {
	if q == nil {
		return ""
	}
	return q.section
}

// Len returns the number of students still waiting in the queue.
// A nil queue has length zero.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.students) - q.head
}

// Empty reports whether the queue has no students left.
func (q *Queue) Empty() bool { return q.Len() == 0 }

// Peek returns the front student without removing it.
func (q *Queue) Peek() (Student, bool) {
	if q.Empty() {
		return Student{}, false
	}
	return q.students[q.head], true
}

// PopFront removes and returns the front student.
// It returns false when the queue is empty.
func (q *Queue) PopFront() (Student, bool) {
	if q.Empty() {
		return Student{}, false
	}
	s := q.students[q.head]
	q.students[q.head] = Student{}
	q.head++
	return s, true
}

// Remaining returns a copy of the students still in the queue, front first.
func (q *Queue) Remaining() []Student {
	if q.Empty() {
		return nil
	}
	return append([]Student(nil), q.students[q.head:]...)
}

// QueueSet is the set of queues materialized from one roster.
// Lookups for unknown sections return nil, which behaves as an empty queue.
type QueueSet struct {
	order  []string
	queues map[string]*Queue
}

// Get returns the queue for section, or nil if the roster has no such section.
func (s *QueueSet) Get(section string) *Queue {
	if s == nil {
		return nil
	}
	return s.queues[section]
}

// Sections returns section names in roster order.
func (s *QueueSet) Sections() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Lengths returns the number of students left per section.
func (s *QueueSet) Lengths() map[string]int {
	if s == nil {
		return nil
	}
	out := make(map[string]int, len(s.order))
	for _, name := range s.order {
		out[name] = s.queues[name].Len()
	}
	return out
}

// Total returns the number of students left across all sections.
func (s *QueueSet) Total() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, q := range s.queues {
		n += q.Len()
	}
	return n
}
