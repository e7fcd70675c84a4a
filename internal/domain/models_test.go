package domain

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigOptionsReturnsConstructedValues(t *testing.T) {
	cases := []struct {
		width, height int
		title         string
	}{
		{800, 600, "Trend"},
		{0, 0, ""},
		{-5, 12, "negative width is stored as given"},
	}
	for _, tc := range cases {
		opts := NewConfigOptions(tc.width, tc.height, tc.title)
		assert.Equal(t, tc.width, opts.Width())
		assert.Equal(t, tc.height, opts.Height())
		assert.Equal(t, tc.title, opts.Title())
		assert.False(t, opts.IsZero())
	}
	assert.True(t, ConfigOptions{}.IsZero())
}

func TestStaticSourceKeepsOrder(t *testing.T) {
	points := []DataPoint{{3, 1}, {1, 2}, {2, 0}}
	src := NewStaticSource(points)

	assert.Equal(t, points, src.Data())
	assert.Equal(t, 3, src.Len())
}

func TestStaticSourceIsolatedFromCallers(t *testing.T) {
	points := []DataPoint{{0, 0}, {1, 1}}
	src := NewStaticSource(points)

	points[0].Y = 42
	got := src.Data()
	assert.Equal(t, 0.0, got[0].Y)

	got[1].Y = 99
	assert.Equal(t, 1.0, src.Data()[1].Y)
}

func TestStaticSourceEmpty(t *testing.T) {
	src := NewStaticSource(nil)
	assert.NotNil(t, src.Data())
	assert.Empty(t, src.Data())
}

func TestParseVisualizationType(t *testing.T) {
	cases := map[string]VisualizationType{
		"bar_chart":    BarChart,
		"BAR_CHART":    BarChart,
		"bar":          BarChart,
		"line_graph":   LineGraph,
		"LINE_GRAPH":   LineGraph,
		" line ":       LineGraph,
		"scatter_plot": ScatterPlot,
		"Scatter":      ScatterPlot,
	}
	for in, want := range cases {
		got, err := ParseVisualizationType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseVisualizationType("pie")
	assert.True(t, errors.Is(err, ErrUnknownVisualizationType))
}

func TestVisualizationTypeStringRoundTrip(t *testing.T) {
	for _, vt := range AllVisualizationTypes() {
		assert.True(t, vt.Valid())
		parsed, err := ParseVisualizationType(vt.String())
		require.NoError(t, err)
		assert.Equal(t, vt, parsed)
	}
	assert.False(t, TypeUnset.Valid())
	assert.Equal(t, "unset", TypeUnset.String())
}

func TestVisualizationOwnsPoints(t *testing.T) {
	points := []DataPoint{{0, 0}, {1, 2}, {2, 4}}
	vis := NewVisualization(points, LineGraph, NewConfigOptions(800, 600, "Trend"))

	points[0].X = 100
	assert.Equal(t, 0.0, vis.Points()[0].X)

	out := vis.Points()
	out[2].Y = -1
	assert.Equal(t, 4.0, vis.Points()[2].Y)

	assert.Equal(t, LineGraph, vis.Type())
	assert.Equal(t, "Trend", vis.Options().Title())
	assert.Equal(t, 3, vis.Len())
	assert.Equal(t, Bounds{MinX: 0, MaxX: 2, MinY: 0, MaxY: 4}, vis.Bounds())
}

func TestVisualizationWithLabels(t *testing.T) {
	vis := NewVisualization([]DataPoint{{1, 1}}, ScatterPlot, NewConfigOptions(1, 1, ""))
	labeled := vis.WithLabels("time", "value")

	assert.Equal(t, "time", labeled.XLabel())
	assert.Equal(t, "value", labeled.YLabel())
	assert.Empty(t, vis.XLabel())
	assert.Equal(t, vis.Points(), labeled.Points())
}

func TestConfigHelpers(t *testing.T) {
	cfg := &Config{Title: "Trend", Width: 640, Height: 480, Type: "scatter"}

	vt, err := cfg.GetVisualizationType()
	require.NoError(t, err)
	assert.Equal(t, ScatterPlot, vt)

	opts := cfg.GetConfigOptions()
	assert.Equal(t, NewConfigOptions(640, 480, "Trend"), opts)
}

func TestUnconfiguredErrorsShareParent(t *testing.T) {
	for _, err := range []error{ErrNoDataSource, ErrNoVisualizationType, ErrNoConfigOptions} {
		assert.True(t, errors.Is(err, ErrUnconfigured), err.Error())
	}
}
