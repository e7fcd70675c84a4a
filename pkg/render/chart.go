package render

import (
	"data-visualizer/internal/domain"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/wcharczuk/go-chart/v2"
	"go.uber.org/zap"
)

// ChartFormat selects the go-chart output encoding.
type ChartFormat int

const (
	ChartPNG ChartFormat = iota
	ChartSVG
)

// ChartRenderer draws visualizations with go-chart.
type ChartRenderer struct {
	logger    *zap.Logger
	format    ChartFormat
	yAxisMode YAxisMode
}

func NewChartRenderer(logger *zap.Logger, format ChartFormat, yAxisMode YAxisMode) *ChartRenderer {
	return &ChartRenderer{logger: logger, format: format, yAxisMode: yAxisMode}
}

func (r *ChartRenderer) provider() chart.RendererProvider {
	if r.format == ChartSVG {
		return chart.SVG
	}
	return chart.PNG
}

func (r *ChartRenderer) Render(w io.Writer, vis *domain.Visualization) error {
	opts := vis.Options()
	if opts.Width() <= 0 || opts.Height() <= 0 {
		return errors.Wrapf(domain.ErrInvalidDimensions, "%dx%d", opts.Width(), opts.Height())
	}

	var err error
	switch vis.Type() {
	case domain.BarChart:
		err = r.renderBars(w, vis)
	case domain.LineGraph, domain.ScatterPlot:
		err = r.renderSeries(w, vis)
	default:
		err = errors.Wrapf(domain.ErrUnknownVisualizationType, "%v", vis.Type())
	}
	if err != nil {
		return err
	}

	r.logger.Debug("Rendered chart",
		zap.Stringer("type", vis.Type()),
		zap.Int("points", vis.Len()))
	return nil
}

func (r *ChartRenderer) renderSeries(w io.Writer, vis *domain.Visualization) error {
	if vis.Len() < 2 {
		return errors.Wrapf(domain.ErrInsufficientData, "%s needs at least 2 points, got %d", vis.Type(), vis.Len())
	}

	points := vis.Points()
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}

	style := chart.Style{StrokeWidth: 2, DotWidth: 3}
	if vis.Type() == domain.ScatterPlot {
		style = chart.Style{StrokeWidth: chart.Disabled, DotWidth: 4}
	}

	xr := xExtent(vis.Bounds())
	yr := valueExtent(vis.Bounds(), r.yAxisMode, vis.Type())

	opts := vis.Options()
	graph := chart.Chart{
		Title:  opts.Title(),
		Width:  opts.Width(),
		Height: opts.Height(),
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name:  vis.XLabel(),
			Range: &chart.ContinuousRange{Min: xr[0], Max: xr[1]},
		},
		YAxis: chart.YAxis{
			Name:  vis.YLabel(),
			Range: &chart.ContinuousRange{Min: yr[0], Max: yr[1]},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    opts.Title(),
				Style:   style,
				XValues: xs,
				YValues: ys,
			},
		},
	}

	if err := graph.Render(r.provider(), w); err != nil {
		return errors.Wrap(err, "go-chart render")
	}
	return nil
}

func (r *ChartRenderer) renderBars(w io.Writer, vis *domain.Visualization) error {
	if vis.Len() == 0 {
		return errors.Wrap(domain.ErrInsufficientData, "bar chart needs at least 1 point")
	}

	points := vis.Points()
	bars := make([]chart.Value, len(points))
	for i, p := range points {
		bars[i] = chart.Value{
			Label: strconv.FormatFloat(p.X, 'g', 6, 64),
			Value: p.Y,
		}
	}

	yr := valueExtent(vis.Bounds(), YAxisZeroBased, domain.BarChart)
	opts := vis.Options()

	// bars share the canvas evenly
	slot := max(1, (opts.Width()-80)/len(points))
	graph := chart.BarChart{
		Title:  opts.Title(),
		Width:  opts.Width(),
		Height: opts.Height(),
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		BarWidth:   max(1, slot*3/4),
		BarSpacing: max(1, slot/4),
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: yr[0], Max: yr[1]},
		},
		UseBaseValue: true,
		BaseValue:    0,
		Bars:         bars,
	}

	if err := graph.Render(r.provider(), w); err != nil {
		return errors.Wrap(err, "go-chart render")
	}
	return nil
}
