// Package report renders seating allocations as printable documents.
//
// A [Report] bundles one room's [seating.Grid] with its summary and the exam
// details. It can be rendered as:
//
//   - svg: an A4 landscape page with the room header, exam details, a class
//     summary with Absent/Present columns to fill in by hand, and the
//     seating table
//   - pdf, png: the same page converted with rsvg-convert
//   - json: a [Document] with seats indexed [row][col]
//   - dot, plan: a Graphviz floor plan as DOT source or rendered SVG
//
// Renderers take functional options in the same way for every format:
//
//	svg := report.RenderSVG(rep, report.WithLogo(logo))
//	pdf, err := report.RenderPDF(ctx, rep, report.WithPDFSVGOptions(report.WithLogo(logo)))
package report
