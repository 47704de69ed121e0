// Package render converts SVG documents to PDF and PNG.
//
// Conversion shells out to rsvg-convert from librsvg, which handles embedded
// data-URI images and produces vector PDF output:
//
//	svg := report.RenderSVG(r)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// When rsvg-convert is not installed both functions fail with an
// UNSUPPORTED error; use [Available] to check up front.
package render
