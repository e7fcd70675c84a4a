package domain

import "io"

// DataVisualizer turns a data source into a visualization
type DataVisualizer interface {
	SetDataSource(source DataSource)
	DataSource() DataSource
	SetVisualizationType(t VisualizationType)
	VisualizationType() VisualizationType
	SetConfigOptions(options ConfigOptions)
	ConfigOptions() ConfigOptions
	GenerateVisualization() (*Visualization, error)
}

// Renderer writes a visualization in some output format
type Renderer interface {
	Render(w io.Writer, vis *Visualization) error
}

// ExportTask is one render job handed to an export worker
type ExportTask struct {
	Index  int
	Target Target
	Vis    *Visualization
	Result chan<- *ExportResult
}

// Target names a renderer and the path its output goes to
type Target struct {
	Name     string
	Path     string
	Renderer Renderer
}

type ExportResult struct {
	Index  int
	Target Target
	Bytes  int
	Err    error
}
