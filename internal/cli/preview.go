package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/seating"
)

const emptySeat = "·"

// gridTable renders the room as a terminal table, front row first. Each
// cell shows the roll number tinted by section; empty seats show a dot.
func gridTable(g *seating.Grid, sections []string) string {
	colors := make(map[string]lipgloss.Color, len(sections))
	for i, s := range sections {
		colors[s] = sectionPalette[i%len(sectionPalette)]
	}

	headers := make([]string, g.Cols()+1)
	for c := range g.Cols() {
		headers[c+1] = "C" + strconv.Itoa(c+1)
	}
	rows := make([][]string, g.Rows())
	for r := range rows {
		rows[r] = make([]string, g.Cols()+1)
		rows[r][0] = "R" + strconv.Itoa(r+1)
	}
	g.Each(func(r, c int, s seating.Seat) {
		if s.Empty() {
			rows[r][c+1] = emptySeat
			return
		}
		rows[r][c+1] = s.Roll
	})

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Center)
			if row == table.HeaderRow || col == 0 {
				return base.Inherit(styleHeader)
			}
			s := g.At(row, col-1)
			if s.Empty() {
				return base.Foreground(colorDim)
			}
			return base.Foreground(colors[s.Section])
		})
	return t.Render()
}

// summaryTable renders per-section seat counts for one room.
func summaryTable(sum seating.Summary) string {
	rows := make([][]string, 0, len(sum)+1)
	for _, c := range sum {
		rows = append(rows, []string{c.Section, strconv.Itoa(c.Count)})
	}
	rows = append(rows, []string{"Total", strconv.Itoa(sum.Total())})
	return countTable([]string{"Class", "Count"}, rows)
}

// leftoverTable renders the students still waiting per section, in roster
// order when order is given, else alphabetically.
func leftoverTable(left map[string]int, order []string) string {
	if len(order) == 0 {
		for s := range left {
			order = append(order, s)
		}
		sort.Strings(order)
	}
	rows := make([][]string, 0, len(order))
	total := 0
	for _, s := range order {
		rows = append(rows, []string{s, strconv.Itoa(left[s])})
		total += left[s]
	}
	rows = append(rows, []string{"Total", fmt.Sprint(total)})
	return countTable([]string{"Section", "Not seated"}, rows)
}

func countTable(headers []string, rows [][]string) string {
	last := len(rows) - 1
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if col > 0 {
				base = base.Align(lipgloss.Right)
			}
			switch {
			case row == table.HeaderRow:
				return base.Inherit(styleHeader)
			case row == last:
				return base.Bold(true)
			case col > 0:
				return base.Inherit(StyleNumber)
			}
			return base
		}).
		Render()
}
