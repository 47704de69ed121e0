package roster

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/errors"
)

// Format names accepted by [Read].
const (
	FormatXLSX = "xlsx"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Column headers expected on the first row of every worksheet.
const (
	HeaderRoll    = "Roll_No"
	HeaderSubject = "Subject"
)

// document is the YAML/JSON roster shape.
type document struct {
	Sections []Section `json:"sections" yaml:"sections"`
}

// FormatFromPath returns the roster format implied by the file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported roster file %q (want .xlsx, .yaml or .json)", filepath.Base(path))
}

// Import reads the roster file at path, choosing the reader from its extension.
func Import(path string) (*Roster, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "roster %s", path)
		}
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	r, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return r, nil
}

// Read decodes a roster in the given format from r. It does not close r.
func Read(r io.Reader, format string) (*Roster, error) {
	switch format {
	case FormatXLSX:
		return ReadXLSX(r)
	case FormatYAML:
		var doc document
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRoster, err, "decode yaml")
		}
		return fromDocument(doc)
	case FormatJSON:
		var doc document
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRoster, err, "decode json")
		}
		return fromDocument(doc)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported roster format %q", format)
}

func fromDocument(doc document) (*Roster, error) {
	if len(doc.Sections) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRoster, "roster has no sections")
	}
	return New(doc.Sections...)
}

// ReadXLSX reads a workbook where every sheet is one section, in workbook order.
func ReadXLSX(r io.Reader) (*Roster, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRoster, err, "open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRoster, "workbook has no sheets")
	}

	out := &Roster{}
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRoster, err, "read sheet %q", sheet)
		}
		students, err := parseSheet(sheet, rows)
		if err != nil {
			return nil, err
		}
		if err := out.Add(Section{Name: sheet, Students: students}); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// parseSheet converts raw sheet rows into students. Row numbers in errors
// are 1-based spreadsheet rows so they match what the user sees.
func parseSheet(sheet string, rows [][]string) ([]Student, error) {
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRoster, "sheet %q is empty (expected %s and %s headers)", sheet, HeaderRoll, HeaderSubject)
	}

	rollCol, subjectCol := -1, -1
	for i, h := range rows[0] {
		switch normalizeHeader(h) {
		case normalizeHeader(HeaderRoll):
			rollCol = i
		case normalizeHeader(HeaderSubject):
			subjectCol = i
		}
	}
	if rollCol < 0 {
		return nil, errors.New(errors.ErrCodeInvalidRoster, "sheet %q: missing %s column", sheet, HeaderRoll)
	}
	if subjectCol < 0 {
		return nil, errors.New(errors.ErrCodeInvalidRoster, "sheet %q: missing %s column", sheet, HeaderSubject)
	}

	students := make([]Student, 0, len(rows)-1)
	for i, row := range rows[1:] {
		roll := strings.TrimSpace(cell(row, rollCol))
		subject := strings.TrimSpace(cell(row, subjectCol))
		if roll == "" && subject == "" {
			continue
		}
		if roll == "" || subject == "" {
			return nil, errors.New(errors.ErrCodeInvalidRoster, "sheet %q row %d: both %s and %s are required", sheet, i+2, HeaderRoll, HeaderSubject)
		}
		students = append(students, Student{Roll: roll, Subject: subject})
	}
	return students, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// normalizeHeader folds case and treats spaces, dots and underscores alike,
// so "Roll No", "roll_no" and "ROLL.NO" all match Roll_No.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", ".", "", "-", "").Replace(h)
}
