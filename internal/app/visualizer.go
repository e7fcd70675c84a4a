package app

import (
	"data-visualizer/internal/domain"
	"sync"

	"go.uber.org/zap"
)

// Visualizer is the default domain.DataVisualizer. Safe for concurrent use.
type Visualizer struct {
	logger *zap.Logger

	mu      sync.RWMutex
	source  domain.DataSource
	vtype   domain.VisualizationType
	options domain.ConfigOptions
}

var _ domain.DataVisualizer = (*Visualizer)(nil)

func NewVisualizer(logger *zap.Logger) *Visualizer {
	return &Visualizer{logger: logger}
}

// NewVisualizerFromConfig wires source, type and options from cfg.
func NewVisualizerFromConfig(logger *zap.Logger, cfg *domain.Config, source domain.DataSource) (*Visualizer, error) {
	vtype, err := cfg.GetVisualizationType()
	if err != nil {
		return nil, err
	}
	v := NewVisualizer(logger)
	v.SetDataSource(source)
	v.SetVisualizationType(vtype)
	v.SetConfigOptions(cfg.GetConfigOptions())
	return v, nil
}

func (v *Visualizer) SetDataSource(source domain.DataSource) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.source = source
}

func (v *Visualizer) DataSource() domain.DataSource {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.source
}

func (v *Visualizer) SetVisualizationType(t domain.VisualizationType) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vtype = t
}

func (v *Visualizer) VisualizationType() domain.VisualizationType {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.vtype
}

func (v *Visualizer) SetConfigOptions(options domain.ConfigOptions) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.options = options
}

func (v *Visualizer) ConfigOptions() domain.ConfigOptions {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.options
}

// GenerateVisualization snapshots the current settings and builds a Visualization.
// An empty source is valid; a missing source, type or options is not.
func (v *Visualizer) GenerateVisualization() (*domain.Visualization, error) {
	v.mu.RLock()
	source, vtype, options := v.source, v.vtype, v.options
	v.mu.RUnlock()

	if source == nil {
		return nil, domain.ErrNoDataSource
	}
	if !vtype.Valid() {
		return nil, domain.ErrNoVisualizationType
	}
	if options.IsZero() {
		return nil, domain.ErrNoConfigOptions
	}

	vis := domain.NewVisualization(source.Data(), vtype, options)
	if labeled, ok := source.(domain.Labeled); ok {
		vis = vis.WithLabels(labeled.Labels())
	}

	v.logger.Debug("Generated visualization",
		zap.Stringer("type", vtype),
		zap.Int("points", vis.Len()),
		zap.Int("width", options.Width()),
		zap.Int("height", options.Height()))

	return vis, nil
}
