package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/observability"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/report"
)

// Render generates output artifacts for rep in the requested formats.
func Render(ctx context.Context, rep report.Report, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if err := rep.Validate(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderFormats(ctx, rep, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormats(ctx context.Context, rep report.Report, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}

		var data []byte
		var err error

		switch format {
		case report.FormatSVG:
			data = report.RenderSVG(rep, svgOpts...)
		case report.FormatPDF:
			data, err = report.RenderPDF(ctx, rep, report.WithPDFSVGOptions(svgOpts...))
		case report.FormatPNG:
			data, err = report.RenderPNG(ctx, rep, report.WithPNGSVGOptions(svgOpts...))
		case report.FormatJSON:
			data, err = report.RenderJSON(rep, report.WithIndent())
		case report.FormatDOT:
			data = []byte(report.ToDOT(rep))
		case report.FormatPlan:
			data, err = report.RenderPlan(ctx, rep)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		opts.Logger.Debug("rendered", "format", format, "bytes", len(data))
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions maps pipeline options to SVG renderer options.
func buildSVGOptions(opts Options) []report.SVGOption {
	var svgOpts []report.SVGOption
	if len(opts.Logo) > 0 {
		svgOpts = append(svgOpts, report.WithLogo(opts.Logo))
	}
	if opts.SectionColors {
		svgOpts = append(svgOpts, report.WithSectionColors())
	}
	return svgOpts
}
