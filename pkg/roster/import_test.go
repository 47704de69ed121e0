package roster

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/errors"
)

// workbook builds an in-memory xlsx file with one sheet per entry.
func workbook(t *testing.T, sheets []string, rows map[string][][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatal(err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatal(err)
		}
		for r, row := range rows[name] {
			addr, _ := excelize.CoordinatesToCellName(1, r+1)
			if err := f.SetSheetRow(name, addr, &row); err != nil {
				t.Fatal(err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestReadXLSX(t *testing.T) {
	data := workbook(t, []string{"CSE-A", "CSE-B"}, map[string][][]any{
		"CSE-A": {
			{"Roll_No", "Subject"},
			{"21A001", "Maths"},
			{"21A002", "Physics"},
		},
		"CSE-B": {
			{"Name", "subject", "roll no"},
			{"Asha", "Chemistry", 21002},
			{nil, nil, nil},
			{"Ravi", "Chemistry", 21003},
		},
	})

	r, err := ReadXLSX(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadXLSX() error: %v", err)
	}

	if got := r.Names(); len(got) != 2 || got[0] != "CSE-A" || got[1] != "CSE-B" {
		t.Fatalf("Names() = %v, want [CSE-A CSE-B]", got)
	}

	a, _ := r.Section("CSE-A")
	if len(a.Students) != 2 || a.Students[0].Roll != "21A001" || a.Students[1].Subject != "Physics" {
		t.Errorf("CSE-A students = %+v", a.Students)
	}

	b, _ := r.Section("CSE-B")
	if len(b.Students) != 2 {
		t.Fatalf("CSE-B should skip blank rows, got %+v", b.Students)
	}
	if b.Students[0].Roll != "21002" || b.Students[1].Roll != "21003" {
		t.Errorf("CSE-B rolls = %+v, want 21002, 21003", b.Students)
	}
}

func TestReadXLSXMissingColumn(t *testing.T) {
	data := workbook(t, []string{"A"}, map[string][][]any{
		"A": {{"Roll_No"}, {"1"}},
	})

	_, err := ReadXLSX(bytes.NewReader(data))
	if !errors.IsData(err) {
		t.Fatalf("missing Subject column should be a data error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Subject") {
		t.Errorf("error should name the column: %v", err)
	}
}

func TestReadXLSXPartialRow(t *testing.T) {
	data := workbook(t, []string{"A"}, map[string][][]any{
		"A": {{"Roll_No", "Subject"}, {"1", "Maths"}, {"2", nil}},
	})

	_, err := ReadXLSX(bytes.NewReader(data))
	if !errors.IsData(err) {
		t.Fatalf("row without subject should be a data error, got %v", err)
	}
	if !strings.Contains(err.Error(), "row 3") {
		t.Errorf("error should report spreadsheet row 3: %v", err)
	}
}

func TestReadXLSXGarbage(t *testing.T) {
	_, err := ReadXLSX(strings.NewReader("not a workbook"))
	if !errors.IsData(err) {
		t.Fatalf("garbage input should be a data error, got %v", err)
	}
}

func TestReadYAML(t *testing.T) {
	src := `
sections:
  - name: X
    students:
      - {roll: r1, subject: Maths}
      - {roll: r2, subject: Maths}
  - name: Y
    students:
      - {roll: r4, subject: Physics}
`
	r, err := Read(strings.NewReader(src), FormatYAML)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if r.Len() != 2 || r.StudentCount() != 3 {
		t.Errorf("got %d sections / %d students, want 2 / 3", r.Len(), r.StudentCount())
	}
}

func TestReadJSON(t *testing.T) {
	src := `{"sections":[{"name":"X","students":[{"roll":"r1","subject":"Maths"},{"roll":"","subject":"Maths"}]}]}`
	_, err := Read(strings.NewReader(src), FormatJSON)
	if !errors.IsData(err) {
		t.Fatalf("missing roll should be a data error, got %v", err)
	}
}

func TestReadEmptyDocument(t *testing.T) {
	_, err := Read(strings.NewReader(`{"sections":[]}`), FormatJSON)
	if !errors.IsData(err) {
		t.Fatalf("empty roster should be a data error, got %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"exam.xlsx", FormatXLSX, false},
		{"EXAM.XLSX", FormatXLSX, false},
		{"roster.yaml", FormatYAML, false},
		{"roster.yml", FormatYAML, false},
		{"roster.json", FormatJSON, false},
		{"roster.csv", "", true},
		{"roster", "", true},
	}

	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestImport(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "roster.json")
	if err := os.WriteFile(path, []byte(`{"sections":[{"name":"X","students":[{"roll":"r1","subject":"Maths"}]}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := Import(path)
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if !r.Has("X") {
		t.Error("imported roster should contain X")
	}

	_, err = Import(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file should be FILE_NOT_FOUND, got %v", err)
	}
}
