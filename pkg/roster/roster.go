package roster

import (
	"slices"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/errors"
)

// Section is one named cohort with its students in input order.
type Section struct {
	Name     string    `json:"name" yaml:"name"`
	Students []Student `json:"students" yaml:"students"`
}

// Roster is an ordered collection of sections.
// The zero value is an empty roster ready for [Roster.Add].
type Roster struct {
	sections []Section
	index    map[string]int
}

// New builds a roster from sections, validating each one.
func New(sections ...Section) (*Roster, error) {
	r := &Roster{}
	for _, s := range sections {
		if err := r.Add(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add appends a section. It fails if the name is invalid or already taken,
// or if any student is missing a roll or subject.
func (r *Roster) Add(s Section) error {
	if err := errors.ValidateSectionName(s.Name); err != nil {
		return err
	}
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if _, dup := r.index[s.Name]; dup {
		return errors.New(errors.ErrCodeInvalidRoster, "duplicate section %q", s.Name)
	}
	for i, st := range s.Students {
		if err := validateStudent(s.Name, i+1, st); err != nil {
			return err
		}
	}
	r.index[s.Name] = len(r.sections)
	r.sections = append(r.sections, Section{
		Name:     s.Name,
		Students: slices.Clone(s.Students),
	})
	return nil
}

func validateStudent(section string, pos int, s Student) error {
	switch {
	case s.Roll == "" && s.Subject == "":
		return errors.New(errors.ErrCodeInvalidRoster, "section %q entry %d: missing roll and subject", section, pos)
	case s.Roll == "":
		return errors.New(errors.ErrCodeInvalidRoster, "section %q entry %d: missing roll", section, pos)
	case s.Subject == "":
		return errors.New(errors.ErrCodeInvalidRoster, "section %q entry %d (%s): missing subject", section, pos, s.Roll)
	}
	return nil
}

// Names returns section names in roster order.
func (r *Roster) Names() []string {
	names := make([]string, len(r.sections))
	for i, s := range r.sections {
		names[i] = s.Name
	}
	return names
}

// Has reports whether the roster contains a section called name.
func (r *Roster) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Section returns a copy of the named section.
func (r *Roster) Section(name string) (Section, bool) {
	i, ok := r.index[name]
	if !ok {
		return Section{}, false
	}
	s := r.sections[i]
	return Section{Name: s.Name, Students: slices.Clone(s.Students)}, true
}

// Sections returns copies of all sections in order.
func (r *Roster) Sections() []Section {
	out := make([]Section, len(r.sections))
	for i, s := range r.sections {
		out[i] = Section{Name: s.Name, Students: slices.Clone(s.Students)}
	}
	return out
}

// Len returns the number of sections.
func (r *Roster) Len() int { return len(r.sections) }

// StudentCount returns the number of students across all sections.
func (r *Roster) StudentCount() int {
	n := 0
	for _, s := range r.sections {
		n += len(s.Students)
	}
	return n
}

// Queues materializes a fresh queue per section. The returned queues share
// nothing with the roster or with queues returned by earlier calls.
func (r *Roster) Queues() *QueueSet {
	set := &QueueSet{
		order:  r.Names(),
		queues: make(map[string]*Queue, len(r.sections)),
	}
	for _, s := range r.sections {
		set.queues[s.Name] = NewQueue(s.Name, s.Students)
	}
	return set
}
