package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/roster"
)

func testRoster(t *testing.T) *roster.Roster {
	t.Helper()
	r, err := roster.New(
		roster.Section{Name: "CSE-A", Students: []roster.Student{{Roll: "A1", Subject: "Maths"}, {Roll: "A2", Subject: "Maths"}, {Roll: "A3", Subject: "Maths"}}},
		roster.Section{Name: "CSE-B", Students: []roster.Student{{Roll: "B1", Subject: "Physics"}, {Roll: "B2", Subject: "Physics"}}},
		roster.Section{Name: "ECE", Students: []roster.Student{{Roll: "E1", Subject: "Circuits"}}},
	)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m SectionPickerModel, keys ...string) (SectionPickerModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(SectionPickerModel)
	}
	return m, cmd
}

func TestSectionPickerSingle(t *testing.T) {
	m := NewSectionPickerModel(testRoster(t), 1)
	if len(m.Items) != 3 || m.Items[0].Students != 3 {
		t.Fatalf("items = %+v", m.Items)
	}

	m, cmd := press(m, "down", "enter")
	if !m.Done() || m.Chosen[0] != "CSE-B" {
		t.Errorf("chosen = %v, done = %v", m.Chosen, m.Done())
	}
	if cmd == nil {
		t.Error("picker should quit once enough sections are chosen")
	}
}

func TestSectionPickerPairKeepsOrder(t *testing.T) {
	m := NewSectionPickerModel(testRoster(t), 2)

	m, _ = press(m, "j", "j", "enter")
	if m.Done() {
		t.Fatal("one of two sections chosen should not be done")
	}
	m, _ = press(m, "k", "k", "enter")
	if !m.Done() {
		t.Fatal("two sections chosen should be done")
	}
	if m.Chosen[0] != "ECE" || m.Chosen[1] != "CSE-A" {
		t.Errorf("chosen = %v, want [ECE CSE-A]", m.Chosen)
	}
}

func TestSectionPickerToggle(t *testing.T) {
	m := NewSectionPickerModel(testRoster(t), 2)
	m, _ = press(m, "enter", "enter")
	if len(m.Chosen) != 0 {
		t.Errorf("second enter should unmark, chosen = %v", m.Chosen)
	}
}

func TestSectionPickerCursorBounds(t *testing.T) {
	m := NewSectionPickerModel(testRoster(t), 1)
	m, _ = press(m, "up")
	if m.Cursor != 0 {
		t.Errorf("cursor = %d after up at top", m.Cursor)
	}
	m, _ = press(m, "down", "down", "down", "down")
	if m.Cursor != 2 {
		t.Errorf("cursor = %d after moving past the end", m.Cursor)
	}
}

func TestSectionPickerCancel(t *testing.T) {
	m := NewSectionPickerModel(testRoster(t), 1)
	m, cmd := press(m, "esc")
	if !m.Cancelled || m.Done() || cmd == nil {
		t.Errorf("esc: cancelled=%v done=%v", m.Cancelled, m.Done())
	}
}

func TestSectionPickerView(t *testing.T) {
	m := NewSectionPickerModel(testRoster(t), 2)
	m, _ = press(m, "enter")
	view := m.View()
	for _, want := range []string{"CSE-A", "CSE-B", "ECE", "chosen 1 of 2"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
