package main

import (
	"data-visualizer/internal/domain"
	"data-visualizer/internal/infrastructure"
	"data-visualizer/pkg/render"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// baseName derives an output file stem from the title.
func baseName(title string) string {
	name := strings.Trim(unsafeName.ReplaceAllString(strings.ToLower(title), "_"), "_")
	if name == "" {
		return "visualization"
	}
	return name
}

// buildTargets maps each configured format to a renderer and output path.
// The "term" format is not a file target and is returned separately.
func buildTargets(logger *zap.Logger, cfg *domain.Config) (targets []domain.Target, term domain.Renderer, err error) {
	mode, err := render.ParseYAxisMode(cfg.YAxisMode)
	if err != nil {
		return nil, nil, err
	}
	stem := filepath.Join(cfg.OutputDir, baseName(cfg.Title))

	for _, format := range cfg.Formats {
		format = strings.ToLower(strings.TrimSpace(format))

		var r domain.Renderer
		switch format {
		case "svg":
			if cfg.SVGBackend == "chart" {
				r = render.NewChartRenderer(logger, render.ChartSVG, mode)
			} else {
				style := render.DefaultSVGStyle()
				style.YAxisMode = mode
				r = render.NewSVGRenderer(logger, style)
			}
		case "png":
			r = render.NewChartRenderer(logger, render.ChartPNG, mode)
		case "json":
			r = render.NewJSONRenderer()
		case "txt":
			r = infrastructure.NewTXTWriter(logger, infrastructure.DecimalFmt(cfg.GetDecimals()))
		case "term":
			term = render.NewTextRenderer(render.DefaultTextStyles())
			continue
		default:
			return nil, nil, errors.Wrapf(domain.ErrUnknownFormat, "%q", format)
		}

		targets = append(targets, domain.Target{
			Name:     format,
			Path:     stem + "." + format,
			Renderer: r,
		})
	}
	return targets, term, nil
}
