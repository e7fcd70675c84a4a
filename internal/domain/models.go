package domain

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Config is the application configuration read from YAML
type Config struct {
	Title      string       `yaml:"title"`
	Width      int          `yaml:"width"`
	Height     int          `yaml:"height"`
	Type       string       `yaml:"type"`
	Input      string       `yaml:"input"`
	Source     SourceConfig `yaml:"source"`
	OutputDir  string       `yaml:"output_dir"`
	Formats    []string     `yaml:"formats"`
	SVGBackend string       `yaml:"svg_backend"`
	YAxisMode  string       `yaml:"y_axis_mode"`
	XLabel     string       `yaml:"x_label"`
	YLabel     string       `yaml:"y_label"`
	Decimals   *int         `yaml:"decimals"`
	HistBins   int          `yaml:"hist_bins"`
	Workers    int          `yaml:"workers"`
	LogLevel   string       `yaml:"log_level"`
	LogFile    string       `yaml:"log_file"`
}

// SourceConfig describes a SQL data source. Driver empty means file input.
type SourceConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Query  string `yaml:"query"`
}

func (c *Config) GetVisualizationType() (VisualizationType, error) {
	return ParseVisualizationType(c.Type)
}

func (c *Config) GetConfigOptions() ConfigOptions {
	return NewConfigOptions(c.Width, c.Height, c.Title)
}

// GetDecimals returns the TXT output precision. Nil means 4; 0 is kept.
func (c *Config) GetDecimals() int {
	if c.Decimals == nil || *c.Decimals < 0 {
		return 4
	}
	return *c.Decimals
}

// DataPoint is a single (x, y) coordinate pair
type DataPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DataSource provides an ordered sequence of points
type DataSource interface {
	Data() []DataPoint
}

// StaticSource is an in-memory DataSource. It owns a private copy of its points.
type StaticSource struct {
	points []DataPoint
	XLabel string
	YLabel string
}

// Labeled is implemented by sources that know their axis names.
type Labeled interface {
	Labels() (x, y string)
}

func NewStaticSource(points []DataPoint) *StaticSource {
	return &StaticSource{points: clonePoints(points)}
}

// Data returns a copy, callers may modify it freely.
func (s *StaticSource) Data() []DataPoint {
	return clonePoints(s.points)
}

func (s *StaticSource) Len() int {
	return len(s.points)
}

func (s *StaticSource) Labels() (x, y string) {
	return s.XLabel, s.YLabel
}

// VisualizationType is the requested rendering mode
type VisualizationType int

const (
	TypeUnset VisualizationType = iota
	BarChart
	LineGraph
	ScatterPlot
)

var visualizationTypeNames = map[VisualizationType]string{
	BarChart:    "bar_chart",
	LineGraph:   "line_graph",
	ScatterPlot: "scatter_plot",
}

// AllVisualizationTypes lists every valid type in declaration order.
func AllVisualizationTypes() []VisualizationType {
	return []VisualizationType{BarChart, LineGraph, ScatterPlot}
}

func (t VisualizationType) String() string {
	if name, ok := visualizationTypeNames[t]; ok {
		return name
	}
	return "unset"
}

func (t VisualizationType) Valid() bool {
	_, ok := visualizationTypeNames[t]
	return ok
}

func ParseVisualizationType(s string) (VisualizationType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bar_chart", "bar", "barchart":
		return BarChart, nil
	case "line_graph", "line", "linegraph":
		return LineGraph, nil
	case "scatter_plot", "scatter", "scatterplot":
		return ScatterPlot, nil
	default:
		return TypeUnset, errors.Wrapf(ErrUnknownVisualizationType, "%q", s)
	}
}

// ConfigOptions holds display configuration. Immutable once constructed.
type ConfigOptions struct {
	width  int
	height int
	title  string
	set    bool
}

func NewConfigOptions(width, height int, title string) ConfigOptions {
	return ConfigOptions{width: width, height: height, title: title, set: true}
}

func (o ConfigOptions) Width() int    { return o.width }
func (o ConfigOptions) Height() int   { return o.height }
func (o ConfigOptions) Title() string { return o.title }

// IsZero reports whether the options were never constructed with NewConfigOptions.
func (o ConfigOptions) IsZero() bool { return !o.set }

// Visualization is the generated output. Immutable after construction.
type Visualization struct {
	points  []DataPoint
	vtype   VisualizationType
	options ConfigOptions
	bounds  Bounds
	xLabel  string
	yLabel  string
}

func NewVisualization(points []DataPoint, vtype VisualizationType, options ConfigOptions) *Visualization {
	owned := clonePoints(points)
	return &Visualization{
		points:  owned,
		vtype:   vtype,
		options: options,
		bounds:  ComputeBounds(owned),
	}
}

// Points returns a copy of the point sequence.
func (v *Visualization) Points() []DataPoint {
	return clonePoints(v.points)
}

func (v *Visualization) Type() VisualizationType { return v.vtype }
func (v *Visualization) Options() ConfigOptions  { return v.options }
func (v *Visualization) Bounds() Bounds          { return v.bounds }
func (v *Visualization) Len() int                { return len(v.points) }
func (v *Visualization) XLabel() string          { return v.xLabel }
func (v *Visualization) YLabel() string          { return v.yLabel }

// WithLabels returns a copy of v carrying the given axis labels.
func (v *Visualization) WithLabels(x, y string) *Visualization {
	out := *v
	out.xLabel, out.yLabel = x, y
	return &out
}

func clonePoints(points []DataPoint) []DataPoint {
	out := make([]DataPoint, len(points))
	copy(out, points)
	return out
}

type Histogram struct {
	Bins []float64
	Vals []int
	Len  int
}

var (
	ErrInvalidFileFormat        = errors.New("invalid file format")
	ErrUnknownVisualizationType = errors.New("unknown visualization type")
	ErrUnconfigured             = errors.New("visualizer not configured")
	ErrNoDataSource             = errors.Wrap(ErrUnconfigured, "data source not set")
	ErrNoVisualizationType      = errors.Wrap(ErrUnconfigured, "visualization type not set")
	ErrNoConfigOptions          = errors.Wrap(ErrUnconfigured, "config options not set")
	ErrInvalidDimensions        = errors.New("width and height must be positive")
	ErrInsufficientData         = errors.New("not enough points to render")
	ErrUnknownFormat            = errors.New("unknown output format")
)
