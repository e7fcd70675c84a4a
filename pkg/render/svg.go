package render

import (
	"data-visualizer/internal/domain"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// SVGStyle holds margins and colors. Dimensions come from the visualization.
type SVGStyle struct {
	MarginTop    int
	MarginRight  int
	MarginBottom int
	MarginLeft   int
	SeriesColor  string
	GridColor    string
	TextColor    string
	DotRadius    int
	YAxisMode    YAxisMode
}

// DefaultSVGStyle returns sensible defaults.
func DefaultSVGStyle() SVGStyle {
	return SVGStyle{
		MarginTop:    40,
		MarginRight:  30,
		MarginBottom: 50,
		MarginLeft:   60,
		SeriesColor:  "#3b82f6",
		GridColor:    "#e5e7eb",
		TextColor:    "#000000",
		DotRadius:    3,
		YAxisMode:    YAxisAuto,
	}
}

type svgTemplateData struct {
	Width       int
	Height      int
	Style       SVGStyle
	Title       string
	XLabel      string
	YLabel      string
	InnerWidth  int
	InnerHeight int
	XTicks      []svgTick
	YTicks      []svgTick
	GridLines   []svgLine
	LinePath    string
	Dots        []svgDot
	Bars        []svgBar
}

type svgTick struct {
	Pos   int
	Label string
}

type svgLine struct{ X1, Y1, X2, Y2 int }

type svgDot struct{ X, Y int }

type svgBar struct{ X, Y, W, H int }

const svgTemplate = `<svg width="{{.Width}}" height="{{.Height}}" xmlns="http://www.w3.org/2000/svg">
  <defs>
    <style>
      .axis { font: 12px sans-serif; fill: {{.Style.TextColor}}; }
      .axis path, .axis line { fill: none; stroke: {{.Style.TextColor}}; shape-rendering: crispEdges; }
      .grid-line { stroke: {{.Style.GridColor}}; stroke-width: 0.5px; }
      .line { fill: none; stroke: {{.Style.SeriesColor}}; stroke-width: 2px; }
      .dot { fill: {{.Style.SeriesColor}}; }
      .bar { fill: {{.Style.SeriesColor}}; }
      .title { font: bold 16px sans-serif; text-anchor: middle; fill: {{.Style.TextColor}}; }
      .axis-label { font: 12px sans-serif; text-anchor: middle; fill: {{.Style.TextColor}}; }
    </style>
  </defs>
  {{if .Title}}<text class="title" x="{{div .Width 2}}" y="20">{{.Title}}</text>{{end}}
  <g transform="translate({{.Style.MarginLeft}},{{.Style.MarginTop}})">
    {{range .GridLines}}<line class="grid-line" x1="{{.X1}}" x2="{{.X2}}" y1="{{.Y1}}" y2="{{.Y2}}"></line>
    {{end}}
    <g class="axis" transform="translate(0,{{.InnerHeight}})">
      {{range .XTicks}}<line x1="{{.Pos}}" x2="{{.Pos}}" y1="0" y2="6"></line><text x="{{.Pos}}" y="20" text-anchor="middle">{{.Label}}</text>
      {{end}}<path d="M0,0H{{.InnerWidth}}"></path>
      {{if .XLabel}}<text class="axis-label" x="{{div .InnerWidth 2}}" y="38">{{.XLabel}}</text>{{end}}
    </g>
    <g class="axis">
      {{range .YTicks}}<line x1="0" x2="-6" y1="{{.Pos}}" y2="{{.Pos}}"></line><text x="-10" y="{{add .Pos 4}}" text-anchor="end">{{.Label}}</text>
      {{end}}<path d="M0,0V{{.InnerHeight}}"></path>
      {{if .YLabel}}<text class="axis-label" transform="rotate(-90)" x="{{neg (div .InnerHeight 2)}}" y="-45">{{.YLabel}}</text>{{end}}
    </g>
    {{range .Bars}}<rect class="bar" x="{{.X}}" y="{{.Y}}" width="{{.W}}" height="{{.H}}"></rect>
    {{end}}{{if .LinePath}}<path class="line" d="{{.LinePath}}"></path>
    {{end}}{{range .Dots}}<circle class="dot" cx="{{.X}}" cy="{{.Y}}" r="{{$.Style.DotRadius}}"></circle>
    {{end}}
  </g>
</svg>
`

const xmlPreamble = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// SVGRenderer draws visualizations with an html/template SVG plotter.
type SVGRenderer struct {
	logger   *zap.Logger
	style    SVGStyle
	template *template.Template
}

func NewSVGRenderer(logger *zap.Logger, style SVGStyle) *SVGRenderer {
	tmpl := template.Must(template.New("svg").Funcs(template.FuncMap{
		"div": func(a, b int) int { return a / b },
		"add": func(a, b int) int { return a + b },
		"neg": func(a int) int { return -a },
	}).Parse(svgTemplate))
	return &SVGRenderer{logger: logger, style: style, template: tmpl}
}

func (r *SVGRenderer) Render(w io.Writer, vis *domain.Visualization) error {
	opts := vis.Options()
	if opts.Width() <= 0 || opts.Height() <= 0 {
		return errors.Wrapf(domain.ErrInvalidDimensions, "%dx%d", opts.Width(), opts.Height())
	}

	innerWidth := opts.Width() - r.style.MarginLeft - r.style.MarginRight
	innerHeight := opts.Height() - r.style.MarginTop - r.style.MarginBottom
	if innerWidth <= 0 || innerHeight <= 0 {
		return errors.Wrapf(domain.ErrInvalidDimensions, "%dx%d leaves no room for the plot area", opts.Width(), opts.Height())
	}

	data := svgTemplateData{
		Width:       opts.Width(),
		Height:      opts.Height(),
		Style:       r.style,
		Title:       opts.Title(),
		XLabel:      vis.XLabel(),
		YLabel:      vis.YLabel(),
		InnerWidth:  innerWidth,
		InnerHeight: innerHeight,
	}

	if vis.Len() > 0 {
		r.fill(&data, vis)
	}

	if _, err := io.WriteString(w, xmlPreamble); err != nil {
		return err
	}
	if err := r.template.Execute(w, data); err != nil {
		return errors.Wrap(err, "template execution failed")
	}
	return nil
}

func (r *SVGRenderer) fill(data *svgTemplateData, vis *domain.Visualization) {
	bounds := vis.Bounds()
	points := vis.Points()

	xs := linearScale{domain: xExtent(bounds), rng: [2]int{0, data.InnerWidth}}
	ys := linearScale{domain: valueExtent(bounds, r.style.YAxisMode, vis.Type()), rng: [2]int{data.InnerHeight, 0}}

	// leave half a bar of room on both sides
	if vis.Type() == domain.BarChart {
		slot := data.InnerWidth / (len(points) + 1)
		xs.rng = [2]int{slot / 2, data.InnerWidth - slot/2}
		if len(points) == 1 {
			xs.rng = [2]int{data.InnerWidth / 2, data.InnerWidth / 2}
		}
	}

	xTicks := valueTicks(xs.domain[0], xs.domain[1], 8)
	xPrec := tickPrecision(xTicks)
	for _, t := range xTicks {
		x := xs.scale(t)
		data.XTicks = append(data.XTicks, svgTick{Pos: x, Label: formatValue(t, xPrec)})
	}

	yTicks := valueTicks(ys.domain[0], ys.domain[1], 6)
	yPrec := tickPrecision(yTicks)
	for _, t := range yTicks {
		y := ys.scale(t)
		data.YTicks = append(data.YTicks, svgTick{Pos: y, Label: formatValue(t, yPrec)})
		data.GridLines = append(data.GridLines, svgLine{X1: 0, Y1: y, X2: data.InnerWidth, Y2: y})
	}

	switch vis.Type() {
	case domain.LineGraph:
		data.LinePath = linePath(points, xs, ys)
		data.Dots = dots(points, xs, ys)
	case domain.ScatterPlot:
		data.Dots = dots(points, xs, ys)
	case domain.BarChart:
		data.Bars = bars(points, xs, ys, data.InnerWidth)
	}

	r.logger.Debug("SVG layout",
		zap.Stringer("type", vis.Type()),
		zap.Int("x_ticks", len(data.XTicks)),
		zap.Int("y_ticks", len(data.YTicks)))
}

func linePath(points []domain.DataPoint, xs, ys linearScale) string {
	if len(points) < 2 {
		return ""
	}
	var path strings.Builder
	for i, p := range points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&path, "%s%d,%d", cmd, xs.scale(p.X), ys.scale(p.Y))
	}
	return path.String()
}

func dots(points []domain.DataPoint, xs, ys linearScale) []svgDot {
	out := make([]svgDot, 0, len(points))
	for _, p := range points {
		out = append(out, svgDot{X: xs.scale(p.X), Y: ys.scale(p.Y)})
	}
	return out
}

func bars(points []domain.DataPoint, xs, ys linearScale, innerWidth int) []svgBar {
	width := max(1, innerWidth/(len(points)+1)*3/4)
	base := ys.scale(ys.clamp(0))

	out := make([]svgBar, 0, len(points))
	for _, p := range points {
		top := ys.scale(ys.clamp(p.Y))
		y, h := top, base-top
		if h < 0 {
			y, h = base, -h
		}
		out = append(out, svgBar{X: xs.scale(p.X) - width/2, Y: y, W: width, H: h})
	}
	return out
}
