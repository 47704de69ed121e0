package seating

import (
	stderrors "errors"
	"fmt"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/errors"
)

// ErrSeatTaken is returned when an occupied seat is assigned again.
var ErrSeatTaken = stderrors.New("seat already assigned")

// Assignment places one student of one section in a seat.
type Assignment struct {
	Section string `json:"section"`
	Roll    string `json:"roll"`
	Subject string `json:"subject"`
}

// Seat is one grid cell. Occupied distinguishes an empty seat from an
// assignment whose fields happen to be blank.
type Seat struct {
	Assignment
	Occupied bool `json:"occupied"`
}

// Empty reports whether nobody sits here.
func (s Seat) Empty() bool { return !s.Occupied }

// Grid is a rows×cols matrix of seats. Row 0 is the front of the room and
// column 0 the leftmost column.
type Grid struct {
	rows, cols int
	seats      [][]Seat
}

// NewGrid creates an empty grid. Both dimensions must be positive.
func NewGrid(rows, cols int) (*Grid, error) {
	if err := errors.ValidateDimensions(rows, cols); err != nil {
		return nil, err
	}
	seats := make([][]Seat, rows)
	for r := range seats {
		seats[r] = make([]Seat, cols)
	}
	return &Grid{rows: rows, cols: cols, seats: seats}, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Size returns the number of seats.
func (g *Grid) Size() int { return g.rows * g.cols }

// At returns the seat at (row, col). It panics if the position is outside the grid.
func (g *Grid) At(row, col int) Seat {
	return g.seats[row][col]
}

// Assign seats a student. Seats are never overwritten: assigning an occupied
// seat returns ErrSeatTaken and leaves the grid unchanged.
func (g *Grid) Assign(row, col int, a Assignment) error {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return fmt.Errorf("seat (%d,%d) outside %dx%d grid", row, col, g.rows, g.cols)
	}
	if g.seats[row][col].Occupied {
		return fmt.Errorf("seat (%d,%d): %w", row, col, ErrSeatTaken)
	}
	g.seats[row][col] = Seat{Assignment: a, Occupied: true}
	return nil
}

// Occupied returns the number of assigned seats.
func (g *Grid) Occupied() int {
	n := 0
	g.Each(func(_, _ int, s Seat) {
		if s.Occupied {
			n++
		}
	})
	return n
}

// Each calls fn for every seat in row-major order.
func (g *Grid) Each(fn func(row, col int, s Seat)) {
	for r, row := range g.seats {
		for c, s := range row {
			fn(r, c, s)
		}
	}
}

// Seats returns a copy of the grid contents, indexed [row][col].
func (g *Grid) Seats() [][]Seat {
	out := make([][]Seat, g.rows)
	for r, row := range g.seats {
		out[r] = append([]Seat(nil), row...)
	}
	return out
}

// FromSeats rebuilds a grid from a [row][col] matrix, for example one
// decoded from a cached report. All rows must have the same length.
func FromSeats(seats [][]Seat) (*Grid, error) {
	if len(seats) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "grid has no rows")
	}
	g, err := NewGrid(len(seats), len(seats[0]))
	if err != nil {
		return nil, err
	}
	for r, row := range seats {
		if len(row) != g.cols {
			return nil, errors.New(errors.ErrCodeInvalidInput, "row %d has %d seats, want %d", r, len(row), g.cols)
		}
		copy(g.seats[r], row)
	}
	return g, nil
}
