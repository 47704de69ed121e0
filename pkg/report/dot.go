package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/errors"
)

// ToDOT describes the room as a Graphviz floor plan: a single HTML-like
// table with the front of the room on top, one cell per seat tinted by
// section, and a legend with the per-section counts.
func ToDOT(rep Report) string {
	g := rep.Grid
	colors := sectionColors(rep.Summary)

	var buf bytes.Buffer
	buf.WriteString("digraph floorplan {\n")
	buf.WriteString("  graph [bgcolor=\"white\", pad=\"0.3\"];\n")
	buf.WriteString("  node [shape=plaintext, fontname=\"Helvetica\"];\n\n")

	buf.WriteString("  room [label=<\n")
	buf.WriteString("    <TABLE BORDER=\"1\" CELLBORDER=\"1\" CELLSPACING=\"4\" CELLPADDING=\"6\">\n")
	fmt.Fprintf(&buf, "      <TR><TD COLSPAN=\"%d\" BGCOLOR=\"#e5e7eb\"><B>ROOM %s</B> (FRONT)</TD></TR>\n",
		g.Cols(), escape(rep.Room))

	for r := 0; r < g.Rows(); r++ {
		buf.WriteString("      <TR>")
		for c := 0; c < g.Cols(); c++ {
			s := g.At(r, c)
			if s.Empty() {
				buf.WriteString(`<TD BGCOLOR="white"> </TD>`)
				continue
			}
			fmt.Fprintf(&buf, `<TD BGCOLOR="%s"><FONT POINT-SIZE="9">%s</FONT><BR/><B>%s</B></TD>`,
				colors[s.Section], escape(s.Section), escape(s.Roll))
		}
		buf.WriteString("</TR>\n")
	}
	buf.WriteString("    </TABLE>\n  >];\n")

	if len(rep.Summary) > 0 {
		buf.WriteString("\n  legend [label=<\n")
		buf.WriteString("    <TABLE BORDER=\"0\" CELLBORDER=\"1\" CELLSPACING=\"0\" CELLPADDING=\"4\">\n")
		buf.WriteString("      <TR><TD><B>Class</B></TD><TD><B>Count</B></TD></TR>\n")
		for _, sc := range rep.Summary {
			fmt.Fprintf(&buf, "      <TR><TD BGCOLOR=\"%s\">%s</TD><TD>%d</TD></TR>\n",
				colors[sc.Section], escape(sc.Section), sc.Count)
		}
		buf.WriteString("    </TABLE>\n  >];\n")
		buf.WriteString("  room -> legend [style=invis];\n")
		buf.WriteString("  { rank=same; room; legend; }\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderPlan renders the floor plan to SVG using Graphviz.
func RenderPlan(ctx context.Context, rep Report) ([]byte, error) {
	return renderDOT(ctx, ToDOT(rep))
}

func renderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse floor plan")
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render floor plan")
	}
	return buf.Bytes(), nil
}
