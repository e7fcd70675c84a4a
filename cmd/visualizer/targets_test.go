package main

import (
	"data-visualizer/internal/domain"
	"data-visualizer/internal/infrastructure"
	"data-visualizer/pkg/render"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestBaseName(t *testing.T) {
	assert.Equal(t, "sales_trend_2024", baseName("Sales Trend (2024)"))
	assert.Equal(t, "visualization", baseName(""))
	assert.Equal(t, "visualization", baseName("!!!"))
}

func TestBuildTargets(t *testing.T) {
	decimals := 2
	cfg := &domain.Config{
		Title:      "Trend",
		OutputDir:  "out",
		Formats:    []string{"svg", "PNG", "json", "txt", "term"},
		SVGBackend: "template",
		Decimals:   &decimals,
	}

	targets, term, err := buildTargets(zaptest.NewLogger(t), cfg)
	require.NoError(t, err)
	require.Len(t, targets, 4)
	assert.NotNil(t, term)

	assert.Equal(t, filepath.Join("out", "trend.svg"), targets[0].Path)
	assert.IsType(t, &render.SVGRenderer{}, targets[0].Renderer)
	assert.IsType(t, &render.ChartRenderer{}, targets[1].Renderer)
	assert.Equal(t, filepath.Join("out", "trend.png"), targets[1].Path)
	assert.IsType(t, &render.JSONRenderer{}, targets[2].Renderer)
	assert.IsType(t, &infrastructure.TXTWriter{}, targets[3].Renderer)
}

func TestBuildTargetsChartBackend(t *testing.T) {
	cfg := &domain.Config{Formats: []string{"svg"}, SVGBackend: "chart"}

	targets, term, err := buildTargets(zaptest.NewLogger(t), cfg)
	require.NoError(t, err)
	assert.Nil(t, term)
	assert.IsType(t, &render.ChartRenderer{}, targets[0].Renderer)
	assert.Equal(t, "visualization.svg", targets[0].Path)
}

func TestBuildTargetsUnknownFormat(t *testing.T) {
	_, _, err := buildTargets(zaptest.NewLogger(t), &domain.Config{Formats: []string{"gif"}})
	assert.True(t, errors.Is(err, domain.ErrUnknownFormat))

	_, _, err = buildTargets(zaptest.NewLogger(t), &domain.Config{YAxisMode: "log"})
	assert.Error(t, err)
}
