package report

import (
	"encoding/json"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/errors"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/seating"
)

// Document is the JSON form of a report. Seats are indexed [row][col];
// an empty seat is null.
type Document struct {
	Room     string                  `json:"room"`
	Exam     Exam                    `json:"exam"`
	DateTime string                  `json:"date_time"`
	Rows     int                     `json:"rows"`
	Cols     int                     `json:"cols"`
	Seats    [][]*seating.Assignment `json:"seats"`
	Summary  []SummaryRow            `json:"summary"`
	Total    int                     `json:"total"`
	Extra    map[string]any          `json:"extra,omitempty"`
}

// SummaryRow is one line of the class summary table.
type SummaryRow struct {
	Class string `json:"class"`
	Count int    `json:"count"`
}

// JSONOption configures JSON rendering.
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	indent bool
	extra  map[string]any
}

// WithIndent pretty-prints the output.
func WithIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

// WithExtra attaches additional top-level data such as leftover counts.
func WithExtra(key string, v any) JSONOption {
	return func(r *jsonRenderer) {
		if r.extra == nil {
			r.extra = make(map[string]any)
		}
		r.extra[key] = v
	}
}

// NewDocument converts a report to its JSON document form.
func NewDocument(rep Report) Document {
	g := rep.Grid
	doc := Document{
		Room:     rep.Room,
		Exam:     rep.Exam,
		DateTime: rep.Exam.DateTime(),
		Rows:     g.Rows(),
		Cols:     g.Cols(),
		Seats:    make([][]*seating.Assignment, g.Rows()),
		Summary:  make([]SummaryRow, 0, len(rep.Summary)),
		Total:    rep.Summary.Total(),
	}
	for r := range doc.Seats {
		doc.Seats[r] = make([]*seating.Assignment, g.Cols())
	}
	g.Each(func(row, col int, s seating.Seat) {
		if !s.Empty() {
			a := s.Assignment
			doc.Seats[row][col] = &a
		}
	})
	for _, c := range rep.Summary {
		doc.Summary = append(doc.Summary, SummaryRow{Class: c.Section, Count: c.Count})
	}
	return doc
}

// RenderJSON renders the report as a JSON document.
func RenderJSON(rep Report, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	doc := NewDocument(rep)
	doc.Extra = r.extra
	if r.indent {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

// ReadJSON rebuilds a report from a document produced by [RenderJSON].
// The summary is recomputed from the seats.
func ReadJSON(data []byte) (Report, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Report{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode report")
	}
	if len(doc.Seats) != doc.Rows {
		return Report{}, errors.New(errors.ErrCodeInvalidInput, "report has %d seat rows, header says %d", len(doc.Seats), doc.Rows)
	}

	seats := make([][]seating.Seat, len(doc.Seats))
	for r, row := range doc.Seats {
		seats[r] = make([]seating.Seat, len(row))
		for c, a := range row {
			if a != nil {
				seats[r][c] = seating.Seat{Assignment: *a, Occupied: true}
			}
		}
	}
	g, err := seating.FromSeats(seats)
	if err != nil {
		return Report{}, err
	}
	return Report{Room: doc.Room, Exam: doc.Exam, Grid: g, Summary: seating.Summarize(g)}, nil
}
