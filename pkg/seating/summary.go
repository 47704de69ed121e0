package seating

// SectionCount is the number of seats one section occupies.
type SectionCount struct {
	Section string `json:"section"`
	Count   int    `json:"count"`
}

// Summary lists per-section seat counts in order of first appearance.
type Summary []SectionCount

// Summarize counts occupied seats per section. Sections appear in the order
// their first student is met in row-major order. The grid is only read.
func Summarize(g *Grid) Summary {
	var out Summary
	index := make(map[string]int)
	g.Each(func(_, _ int, s Seat) {
		if !s.Occupied {
			return
		}
		i, ok := index[s.Section]
		if !ok {
			i = len(out)
			index[s.Section] = i
			out = append(out, SectionCount{Section: s.Section})
		}
		out[i].Count++
	})
	return out
}

// Total returns the number of seated students.
func (s Summary) Total() int {
	n := 0
	for _, c := range s {
		n += c.Count
	}
	return n
}

// Count returns the seat count for section, or zero if it has none.
func (s Summary) Count(section string) int {
	for _, c := range s {
		if c.Section == section {
			return c.Count
		}
	}
	return 0
}
