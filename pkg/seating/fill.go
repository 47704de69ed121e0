package seating

import "github.com/vardhan31/Exam-Seating-Plan/pkg/roster"

// Replacement records one slot handing over to the next pool section.
type Replacement struct {
	Slot Slot   `json:"slot"`
	From string `json:"from"`
	To   string `json:"to"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

// Retirement records a slot that ran dry with nothing left in the pool.
type Retirement struct {
	Slot    Slot   `json:"slot"`
	Section string `json:"section"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
}

// FillStats describes what a fill did to the grid.
type FillStats struct {
	Placed       int           `json:"placed"`
	Replacements []Replacement `json:"replacements,omitempty"`
	Retirements  []Retirement  `json:"retirements,omitempty"`
}

// FillSingle seats one section in the even columns of g.
//
// Columns are visited left to right and, within a column, rows front to
// back. Odd columns are aisles and stay empty. Once q runs out the remaining
// seats stay empty; students that do not fit stay in q. Seats that are
// already occupied are skipped without consuming a student.
func FillSingle(g *Grid, section string, q *roster.Queue) FillStats {
	var st FillStats
	for c := 0; c < g.cols; c += 2 {
		for r := 0; r < g.rows; r++ {
			if q.Empty() {
				return st
			}
			if g.place(r, c, section, q) {
				st.Placed++
			}
		}
	}
	return st
}

// FillRotating seats two alternating sections, replacing each as it runs out.
//
// Seats are visited in row-major order. Before every seat, each slot whose
// queue is empty takes the next pool section if one is left; otherwise it
// retires. Even columns then take the front student of slot A, odd columns
// of slot B, and a seat whose slot has nobody left stays empty.
//
// rot is advanced in place, so after the call it reflects the final active
// sections and pool position.
func FillRotating(g *Grid, rot *Rotation, queues *roster.QueueSet) FillStats {
	var st FillStats
	retired := [2]bool{}

	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			for _, slot := range [...]Slot{SlotA, SlotB} {
				if retired[slot] || !queues.Get(rot.Active[slot]).Empty() {
					continue
				}
				if prev, ok := rot.promote(slot); ok {
					st.Replacements = append(st.Replacements, Replacement{
						Slot: slot, From: prev, To: rot.Active[slot], Row: r, Col: c,
					})
					continue
				}
				retired[slot] = true
				st.Retirements = append(st.Retirements, Retirement{
					Slot: slot, Section: rot.Active[slot], Row: r, Col: c,
				})
			}

			section := rot.Active[slotFor(c)]
			if g.place(r, c, section, queues.Get(section)) {
				st.Placed++
			}
		}
	}
	return st
}

// place pops the front of q into seat (r, c). A seat that is already
// occupied is left alone and nothing is popped.
func (g *Grid) place(r, c int, section string, q *roster.Queue) bool {
	if g.seats[r][c].Occupied {
		return false
	}
	s, ok := q.PopFront()
	if !ok {
		return false
	}
	g.seats[r][c] = Seat{
		Assignment: Assignment{Section: section, Roll: s.Roll, Subject: s.Subject},
		Occupied:   true,
	}
	return true
}
