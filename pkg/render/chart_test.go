package render

import (
	"bytes"
	"data-visualizer/internal/domain"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func TestChartRendererPNG(t *testing.T) {
	r := NewChartRenderer(zaptest.NewLogger(t), ChartPNG, YAxisAuto)

	for _, vt := range domain.AllVisualizationTypes() {
		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, trend(vt, "Trend")), vt.String())
		assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature), vt.String())
	}
}

func TestChartRendererSVG(t *testing.T) {
	r := NewChartRenderer(zaptest.NewLogger(t), ChartSVG, YAxisZeroBased)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, trend(domain.ScatterPlot, "Scatter")))
	assert.Contains(t, buf.String(), "<svg")
}

func TestChartRendererInsufficientData(t *testing.T) {
	r := NewChartRenderer(zaptest.NewLogger(t), ChartPNG, YAxisAuto)
	opts := domain.NewConfigOptions(800, 600, "")

	one := domain.NewVisualization([]domain.DataPoint{{X: 1, Y: 1}}, domain.LineGraph, opts)
	err := r.Render(&bytes.Buffer{}, one)
	assert.True(t, errors.Is(err, domain.ErrInsufficientData))

	empty := domain.NewVisualization(nil, domain.BarChart, opts)
	err = r.Render(&bytes.Buffer{}, empty)
	assert.True(t, errors.Is(err, domain.ErrInsufficientData))
}

func TestChartRendererInvalidDimensions(t *testing.T) {
	r := NewChartRenderer(zaptest.NewLogger(t), ChartPNG, YAxisAuto)
	vis := domain.NewVisualization([]domain.DataPoint{{X: 1, Y: 1}, {X: 2, Y: 2}}, domain.LineGraph, domain.NewConfigOptions(0, 0, ""))

	err := r.Render(&bytes.Buffer{}, vis)
	assert.True(t, errors.Is(err, domain.ErrInvalidDimensions))
}
