// Package seating assigns students from section queues to the seats of an
// exam room.
//
// # Overview
//
// A room is a [Grid] of rows×cols seats. Row 0 is the front row and column 0
// the leftmost column. A seat is either empty or holds one [Assignment]; once
// assigned it is never overwritten.
//
// A [Plan] picks one of two strategies:
//
//   - [ModeSingle] seats one section in the even columns (0, 2, 4, ...),
//     filling each column front to back before moving right. Odd columns are
//     left empty so neighbours never sit side by side.
//   - [ModeMulti] alternates two sections across columns. Even columns take
//     slot A and odd columns slot B. Seats are visited row by row, and before
//     each seat any slot whose section has run out takes the next section
//     from the pool. When the pool is exhausted the slot retires and its
//     seats stay empty.
//
// # Sessions
//
// [Allocator.Allocate] drains the queues it is given. A [Session] owns one
// set of queues built from a roster so that several rooms can be seated in
// turn without seating anyone twice:
//
//	s, err := seating.NewSession(r, logger)
//	lab1, err := s.Allocate(ctx, seating.Plan{Rows: 4, Cols: 4, Mode: seating.ModeSingle, Section: "CSE-A"})
//	lab2, err := s.Allocate(ctx, seating.Plan{Rows: 4, Cols: 4, Mode: seating.ModeSingle, Section: "CSE-A"})
//	s.Reset() // start over from the full roster
//
// Running out of students is not an error: the remaining seats stay empty and
// [Result.Underfilled] reports it. Invalid plans fail with a configuration
// error before any student is consumed.
package seating
