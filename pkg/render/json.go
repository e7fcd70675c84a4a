package render

import (
	"data-visualizer/internal/domain"
	"encoding/json"
	"io"
)

type jsonBounds struct {
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinY float64 `json:"min_y"`
	MaxY float64 `json:"max_y"`
}

type jsonVisualization struct {
	Type   string             `json:"type"`
	Title  string             `json:"title"`
	Width  int                `json:"width"`
	Height int                `json:"height"`
	XLabel string             `json:"x_label,omitempty"`
	YLabel string             `json:"y_label,omitempty"`
	Bounds *jsonBounds        `json:"bounds,omitempty"`
	Points []domain.DataPoint `json:"points"`
}

// JSONRenderer writes the visualization as an indented JSON document.
type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

func (r *JSONRenderer) Render(w io.Writer, vis *domain.Visualization) error {
	opts := vis.Options()
	doc := jsonVisualization{
		Type:   vis.Type().String(),
		Title:  opts.Title(),
		Width:  opts.Width(),
		Height: opts.Height(),
		XLabel: vis.XLabel(),
		YLabel: vis.YLabel(),
		Points: vis.Points(),
	}
	if b := vis.Bounds(); !b.Empty {
		doc.Bounds = &jsonBounds{MinX: b.MinX, MaxX: b.MaxX, MinY: b.MinY, MaxY: b.MaxY}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
