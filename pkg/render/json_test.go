package render

import (
	"bytes"
	"data-visualizer/internal/domain"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONRenderer().Render(&buf, trend(domain.LineGraph, "Trend").WithLabels("day", "")))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "line_graph", doc["type"])
	assert.Equal(t, "Trend", doc["title"])
	assert.Equal(t, 800.0, doc["width"])
	assert.Equal(t, 600.0, doc["height"])
	assert.Equal(t, "day", doc["x_label"])
	assert.NotContains(t, doc, "y_label")
	assert.Equal(t, map[string]any{"min_x": 0.0, "max_x": 2.0, "min_y": 0.0, "max_y": 4.0}, doc["bounds"])

	points := doc["points"].([]any)
	require.Len(t, points, 3)
	assert.Equal(t, map[string]any{"x": 1.0, "y": 2.0}, points[1])
}

func TestJSONRendererEmpty(t *testing.T) {
	var buf bytes.Buffer
	vis := domain.NewVisualization(nil, domain.BarChart, domain.NewConfigOptions(1, 1, ""))
	require.NoError(t, NewJSONRenderer().Render(&buf, vis))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, []any{}, doc["points"])
	assert.NotContains(t, doc, "bounds")
}
