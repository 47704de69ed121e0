package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/roster"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	listCurrentStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// pickerKeys are the picker's key bindings.
var pickerKeys = struct {
	Up, Down, Toggle, Quit key.Binding
}{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("⏎/space", "select")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

// =============================================================================
// SectionPickerModel - Interactive section selection
// =============================================================================

// sectionItem is one row of the picker.
type sectionItem struct {
	Name     string
	Students int
}

// SectionPickerModel is the bubbletea model for choosing the section(s) to
// seat: one for single-section rooms, two starting sections for rotation.
// Sections are chosen in the order they are marked.
type SectionPickerModel struct {
	Items     []sectionItem
	Need      int
	Cursor    int
	Chosen    []string
	Cancelled bool
	Height    int
	Offset    int
}

// NewSectionPickerModel creates a picker over the roster's sections.
func NewSectionPickerModel(r *roster.Roster, need int) SectionPickerModel {
	items := make([]sectionItem, 0, r.Len())
	for _, s := range r.Sections() {
		items = append(items, sectionItem{Name: s.Name, Students: len(s.Students)})
	}
	return SectionPickerModel{Items: items, Need: need, Height: 15}
}

func (m SectionPickerModel) Init() tea.Cmd {
	return nil
}

func (m SectionPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, pickerKeys.Quit):
			m.Cancelled = true
			return m, tea.Quit
		case key.Matches(msg, pickerKeys.Up):
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case key.Matches(msg, pickerKeys.Down):
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case key.Matches(msg, pickerKeys.Toggle):
			if len(m.Items) == 0 {
				break
			}
			name := m.Items[m.Cursor].Name
			if i := slices.Index(m.Chosen, name); i >= 0 {
				m.Chosen = slices.Delete(m.Chosen, i, i+1)
				return m, nil
			}
			m.Chosen = append(m.Chosen, name)
			if len(m.Chosen) == m.Need {
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

// Done reports whether enough sections have been chosen.
func (m SectionPickerModel) Done() bool {
	return !m.Cancelled && len(m.Chosen) == m.Need
}

func (m SectionPickerModel) View() string {
	var b strings.Builder

	title := "Select Section"
	if m.Need > 1 {
		title = fmt.Sprintf("Select %d Starting Sections", m.Need)
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	help := make([]string, 0, 4)
	for _, k := range []key.Binding{pickerKeys.Up, pickerKeys.Down, pickerKeys.Toggle, pickerKeys.Quit} {
		help = append(help, k.Help().Key+" "+k.Help().Desc)
	}
	b.WriteString(listDimStyle.Render(strings.Join(help, "  ")))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Items))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		it := m.Items[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := ""
		if pos := slices.Index(m.Chosen, it.Name); pos >= 0 {
			mark = strconv.Itoa(pos + 1)
		}
		rows = append(rows, []string{cursor, mark, it.Name, strconv.Itoa(it.Students)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Section", "Students").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.Items) {
				return lipgloss.NewStyle()
			}
			switch {
			case slices.Contains(m.Chosen, m.Items[idx].Name):
				return listSelectedStyle
			case idx == m.Cursor:
				return listCurrentStyle
			case m.Items[idx].Students == 0:
				return listDimStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  chosen %d of %d", m.Cursor+1, len(m.Items), len(m.Chosen), m.Need)))

	return b.String()
}

// pickSections runs the picker and returns the chosen section names.
func pickSections(r *roster.Roster, need int) ([]string, error) {
	final, err := tea.NewProgram(NewSectionPickerModel(r, need)).Run()
	if err != nil {
		return nil, fmt.Errorf("section picker: %w", err)
	}
	m := final.(SectionPickerModel)
	if !m.Done() {
		return nil, errPickerCancelled
	}
	return m.Chosen, nil
}
