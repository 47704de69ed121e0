package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/errors"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/render"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/seating"
)

func testReport(t *testing.T) Report {
	t.Helper()
	g, err := seating.NewGrid(2, 3)
	if err != nil {
		t.Fatal(err)
	}
	_ = g.Assign(0, 0, seating.Assignment{Section: "CSE-A", Roll: "21A01", Subject: "Maths"})
	_ = g.Assign(0, 1, seating.Assignment{Section: "ECE & B", Roll: "21B01", Subject: "Circuits <II>"})
	_ = g.Assign(1, 0, seating.Assignment{Section: "CSE-A", Roll: "21A02", Subject: "Maths"})
	return Report{
		Room:    "LAB-1",
		Exam:    Exam{Name: "Mid Term", Date: "2025-03-14", Start: "10:00", End: "11:30"},
		Grid:    g,
		Summary: seating.Summarize(g),
	}
}

func TestExamValidate(t *testing.T) {
	tests := []struct {
		name    string
		exam    Exam
		wantErr bool
	}{
		{"valid", Exam{Date: "2025-03-14", Start: "10:00", End: "11:30"}, false},
		{"no date", Exam{Start: "10:00", End: "11:30"}, false},
		{"bad date", Exam{Date: "14-03-2025", Start: "10:00", End: "11:30"}, true},
		{"bad start", Exam{Start: "10am", End: "11:30"}, true},
		{"end before start", Exam{Start: "11:30", End: "10:00"}, true},
		{"equal times", Exam{Start: "10:00", End: "10:00"}, true},
	}
	for _, tt := range tests {
		err := tt.exam.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("%s: code = %s, want INVALID_CONFIG", tt.name, errors.GetCode(err))
		}
	}
}

func TestExamDisplay(t *testing.T) {
	e := Exam{Date: "2025-03-14", Start: "10:00", End: "13:30"}
	if got := e.DisplayDate(); got != "14-03-2025" {
		t.Errorf("DisplayDate() = %q", got)
	}
	if got := e.DisplayTimeRange(); got != "10:00 AM - 01:30 PM" {
		t.Errorf("DisplayTimeRange() = %q", got)
	}
	if got := e.DateTime(); got != "14-03-2025  10:00 AM - 01:30 PM" {
		t.Errorf("DateTime() = %q", got)
	}
	if got := (Exam{Start: "10:00", End: "11:30"}).DateTime(); got != "10:00 AM - 11:30 AM" {
		t.Errorf("DateTime() without date = %q", got)
	}
}

func TestReportValidate(t *testing.T) {
	rep := testReport(t)
	if err := rep.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	bad := rep
	bad.Room = "../etc"
	if err := bad.Validate(); !errors.IsConfiguration(err) {
		t.Errorf("path-like room: %v", err)
	}

	bad = rep
	bad.Grid = nil
	if err := bad.Validate(); err == nil {
		t.Error("nil grid should fail")
	}
}

func TestFilename(t *testing.T) {
	rep := Report{Room: "Block A 101"}
	if got := rep.Filename(FormatPDF); got != "Block_A_101_seating.pdf" {
		t.Errorf("Filename(pdf) = %q", got)
	}
	if got := rep.Filename(FormatPlan); got != "Block_A_101_seating.plan.svg" {
		t.Errorf("Filename(plan) = %q", got)
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"pdf", false},
		{"png", false},
		{"json", false},
		{"dot", false},
		{"plan", false},
		{"PDF", true}, // case-sensitive
		{"docx", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
	if err := ValidateFormats([]string{"svg", "nope"}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormats = %v, want INVALID_FORMAT", err)
	}
	if ContentType(FormatPDF) != "application/pdf" || ContentType("x") != "application/octet-stream" {
		t.Error("ContentType mapping wrong")
	}
}

func TestRenderSVG(t *testing.T) {
	rep := testReport(t)
	svg := string(RenderSVG(rep))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		"ROOM NO : LAB-1",
		"Mid Term",
		"14-03-2025  10:00 AM - 11:30 AM",
		">Class<", ">Count<", ">Absent<", ">Present<",
		"21A01", "21B01",
		"ECE &amp; B",
		"Circuits &lt;II&gt;",
		`font-weight="bold" text-anchor="middle" dominant-baseline="central">21A02<`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(svg, "<image") {
		t.Error("SVG without logo should not embed an image")
	}
	if got := strings.Count(svg, `class="seat"`); got != 6 {
		t.Errorf("SVG has %d seat cells, want 6", got)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("SVG not closed")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	rep := testReport(t)
	logo := []byte("\x89PNG\r\n\x1a\n0000")

	svg := string(RenderSVG(rep, WithLogo(logo), WithSectionColors()))
	if !strings.Contains(svg, `href="data:image/png;base64,`) {
		t.Error("logo not embedded as PNG data URI")
	}
	if !strings.Contains(svg, sectionPalette[0]) || !strings.Contains(svg, sectionPalette[1]) {
		t.Error("section colors not applied")
	}
}

func TestRenderSVGTallRoomExtendsPage(t *testing.T) {
	g, _ := seating.NewGrid(40, 2)
	rep := Report{Room: "HALL", Exam: Exam{Start: "10:00", End: "11:00"}, Grid: g}
	svg := string(RenderSVG(rep))
	if strings.Contains(svg, `viewBox="0 0 842.0 595.0"`) {
		t.Error("40-row room should extend beyond one A4 page")
	}
}

func TestRenderJSONRoundTrip(t *testing.T) {
	rep := testReport(t)
	data, err := RenderJSON(rep, WithIndent(), WithExtra("leftover", map[string]int{"CSE-A": 3}))
	if err != nil {
		t.Fatal(err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Rows != 2 || doc.Cols != 3 || doc.Total != 3 {
		t.Errorf("doc = %dx%d total %d", doc.Rows, doc.Cols, doc.Total)
	}
	if doc.Seats[0][2] != nil {
		t.Error("empty seat should be null")
	}
	if doc.Seats[0][1].Roll != "21B01" {
		t.Errorf("seat (0,1) = %+v", doc.Seats[0][1])
	}
	if len(doc.Summary) != 2 || doc.Summary[0].Class != "CSE-A" || doc.Summary[0].Count != 2 {
		t.Errorf("summary = %+v", doc.Summary)
	}
	if doc.Extra["leftover"] == nil {
		t.Error("extra data missing")
	}

	back, err := ReadJSON(data)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if back.Room != rep.Room || back.Exam != rep.Exam {
		t.Errorf("header changed: %+v", back)
	}
	rep.Grid.Each(func(r, c int, s seating.Seat) {
		if back.Grid.At(r, c) != s {
			t.Errorf("seat (%d,%d) = %+v, want %+v", r, c, back.Grid.At(r, c), s)
		}
	})
	if back.Summary.Total() != 3 {
		t.Errorf("summary total = %d", back.Summary.Total())
	}
}

func TestReadJSONInvalid(t *testing.T) {
	for _, in := range []string{`{`, `{"rows":2,"cols":1,"seats":[[null]]}`, `{"rows":0,"seats":[]}`} {
		if _, err := ReadJSON([]byte(in)); err == nil {
			t.Errorf("ReadJSON(%s) should fail", in)
		}
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testReport(t))
	for _, want := range []string{
		"digraph floorplan {",
		"ROOM LAB-1",
		"<B>21A01</B>",
		"ECE &amp; B",
		"legend [label=<",
		"<TD>2</TD>",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if got := strings.Count(dot, "<TR>"); got != 2+1+3 {
		t.Errorf("DOT has %d table rows, want 6", got)
	}
}

func TestRenderPlan(t *testing.T) {
	svg, err := RenderPlan(context.Background(), testReport(t))
	if err != nil {
		t.Fatalf("RenderPlan: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte("21A01")) {
		t.Errorf("plan SVG missing content:\n%s", svg)
	}
}

func TestRenderPDFAndPNG(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	ctx := context.Background()
	rep := testReport(t)

	pdf, err := RenderPDF(ctx, rep)
	if err != nil || !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("RenderPDF: err=%v", err)
	}
	png, err := RenderPNG(ctx, rep, WithScale(1))
	if err != nil || !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("RenderPNG: err=%v", err)
	}
}
