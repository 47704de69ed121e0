package report

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"net/http"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/seating"
)

// Page geometry in points. A4 landscape is 842×595.
const (
	pageWidth  = 842.0
	pageHeight = 595.0
	marginX    = 20.0
	marginTop  = 15.0
	marginBot  = 15.0
	cm         = 28.35

	headerHeight  = 1.5 * cm
	logoWidth     = 7.5 * cm
	roomBoxWidth  = 6.5 * cm
	roomBoxHeight = 1.3 * cm
	spacer        = 6.0

	detailsLabelWidth = 6 * cm
	detailsValueWidth = 22 * cm
	tableRowHeight    = 16.0

	seatingWidth     = 27 * cm
	seatRowMax       = 2.4 * cm
	seatRowMin       = 22.0
	fontFamily       = "Helvetica, Arial, sans-serif"
	strokeColor      = "#000"
	headerFill       = "#f5f5f5"
	summaryClassCol  = 8 * cm
	summaryNumberCol = 4 * cm
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	logo       []byte
	colorSeats bool
}

// WithLogo embeds an image (PNG, JPEG or SVG) at the top left of the page.
func WithLogo(data []byte) SVGOption { return func(r *svgRenderer) { r.logo = data } }

// WithSectionColors tints each seat by its section.
func WithSectionColors() SVGOption { return func(r *svgRenderer) { r.colorSeats = true } }

// RenderSVG renders the printable seating page.
//
// The page is laid out top to bottom as a header (logo and boxed room
// number), the exam details table, the per-class summary table with blank
// Absent/Present columns for invigilators, and the seating table. Seat rows
// shrink to fit the page; very tall rooms extend the page instead.
func RenderSVG(rep Report, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	g := rep.Grid
	summaryHeight := tableRowHeight * float64(len(rep.Summary)+1)
	seatTop := marginTop + headerHeight + spacer + 2*tableRowHeight + spacer + summaryHeight + 8
	rowH := min(seatRowMax, max(seatRowMin, (pageHeight-marginBot-seatTop)/float64(g.Rows())))
	height := max(pageHeight, seatTop+rowH*float64(g.Rows())+marginBot)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0fpt" height="%.0fpt" font-family="%s">`+"\n",
		pageWidth, height, pageWidth, height, fontFamily)
	fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="#fff"/>`+"\n", pageWidth, height)

	y := marginTop
	r.renderHeader(&buf, rep.Room, y)
	y += headerHeight + spacer

	renderDetails(&buf, rep.Exam, y)
	y += 2*tableRowHeight + spacer

	renderSummary(&buf, rep.Summary, y)
	y += summaryHeight + 8

	var colors map[string]string
	if r.colorSeats {
		colors = sectionColors(rep.Summary)
	}
	renderSeating(&buf, g, y, rowH, colors)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderHeader(buf *bytes.Buffer, room string, y float64) {
	left := marginX
	headerLeftWidth := pageWidth - 2*marginX - 7*cm

	if len(r.logo) > 0 {
		x := left + (headerLeftWidth-logoWidth)/2
		fmt.Fprintf(buf, `  <image x="%.1f" y="%.1f" width="%.1f" height="%.1f" preserveAspectRatio="xMidYMid meet" href="%s"/>`+"\n",
			x, y, logoWidth, headerHeight, dataURI(r.logo))
	}

	boxX := left + headerLeftWidth + (7*cm-roomBoxWidth)/2
	boxY := y + (headerHeight-roomBoxHeight)/2
	fmt.Fprintf(buf, `  <rect class="room-box" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="1.2"/>`+"\n",
		boxX, boxY, roomBoxWidth, roomBoxHeight, strokeColor)
	text(buf, boxX+roomBoxWidth/2, boxY+roomBoxHeight/2, 14, "bold", "middle", "ROOM NO : "+room)
}

func renderDetails(buf *bytes.Buffer, exam Exam, y float64) {
	x := marginX
	rows := [][2]string{
		{"Exam Name", exam.Name},
		{"Date & Time", exam.DateTime()},
	}
	for i, row := range rows {
		ry := y + float64(i)*tableRowHeight
		cell(buf, x, ry, detailsLabelWidth, tableRowHeight, headerFill, 0.5)
		cell(buf, x+detailsLabelWidth, ry, detailsValueWidth, tableRowHeight, "none", 0.5)
		text(buf, x+4, ry+tableRowHeight/2, 9, "normal", "start", row[0])
		text(buf, x+detailsLabelWidth+4, ry+tableRowHeight/2, 9, "normal", "start", row[1])
	}
	outline(buf, x, y, detailsLabelWidth+detailsValueWidth, 2*tableRowHeight)
}

func renderSummary(buf *bytes.Buffer, sum seating.Summary, y float64) {
	x := marginX
	widths := []float64{summaryClassCol, summaryNumberCol, summaryNumberCol, summaryNumberCol}
	rows := [][]string{{"Class", "Count", "Absent", "Present"}}
	for _, c := range sum {
		rows = append(rows, []string{c.Section, fmt.Sprint(c.Count), "", ""})
	}

	total := 0.0
	for _, w := range widths {
		total += w
	}
	for i, row := range rows {
		ry := y + float64(i)*tableRowHeight
		cx := x
		for j, v := range row {
			fill := "none"
			if i == 0 {
				fill = headerFill
			}
			cell(buf, cx, ry, widths[j], tableRowHeight, fill, 0.5)
			if j == 0 {
				text(buf, cx+4, ry+tableRowHeight/2, 9, "normal", "start", v)
			} else {
				text(buf, cx+widths[j]/2, ry+tableRowHeight/2, 9, "normal", "middle", v)
			}
			cx += widths[j]
		}
	}
	outline(buf, x, y, total, tableRowHeight*float64(len(rows)))
}

func renderSeating(buf *bytes.Buffer, g *seating.Grid, y, rowH float64, colors map[string]string) {
	x := marginX + (pageWidth-2*marginX-seatingWidth)/2
	colW := seatingWidth / float64(g.Cols())
	scale := min(1.0, rowH/seatRowMax, colW/(2*cm))

	fmt.Fprintf(buf, `  <g class="seating" transform="translate(%.1f,%.1f)">`+"\n", x, y)
	g.Each(func(row, col int, s seating.Seat) {
		cx, cy := float64(col)*colW, float64(row)*rowH
		fill := "none"
		if !s.Empty() {
			if c, ok := colors[s.Section]; ok {
				fill = c
			}
		}
		fmt.Fprintf(buf, `    <rect class="seat" data-row="%d" data-col="%d" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="0.5"/>`+"\n",
			row, col, cx, cy, colW, rowH, fill, strokeColor)
		if s.Empty() {
			return
		}
		mid := cx + colW/2
		text(buf, mid, cy+rowH*0.28, 8*scale, "normal", "middle", s.Section)
		text(buf, mid, cy+rowH*0.52, 10*scale, "bold", "middle", s.Roll)
		text(buf, mid, cy+rowH*0.76, 7*scale, "normal", "middle", s.Subject)
	})
	buf.WriteString("  </g>\n")
}

func cell(buf *bytes.Buffer, x, y, w, h float64, fill string, stroke float64) {
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
		x, y, w, h, fill, strokeColor, stroke)
}

func outline(buf *bytes.Buffer, x, y, w, h float64) {
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="1"/>`+"\n",
		x, y, w, h, strokeColor)
}

func text(buf *bytes.Buffer, x, y, size float64, weight, anchor, s string) {
	if s == "" {
		return
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" font-weight="%s" text-anchor="%s" dominant-baseline="central">%s</text>`+"\n",
		x, y, size, weight, anchor, escape(s))
}

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// dataURI inlines an image so the SVG stays self-contained for rsvg-convert.
func dataURI(data []byte) string {
	mime := http.DetectContentType(data)
	if bytes.Contains(data[:min(len(data), 512)], []byte("<svg")) {
		mime = "image/svg+xml"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
