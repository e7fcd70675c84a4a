package app

import (
	"bytes"
	"context"
	"data-visualizer/internal/domain"
	"runtime"
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Exporter renders one visualization to many targets with a pool of workers.
type Exporter struct {
	logger  *zap.Logger
	sink    domain.Sink
	workers int
}

func NewExporter(logger *zap.Logger, sink domain.Sink, workers int) *Exporter {
	if workers <= 0 {
		workers = max(1, runtime.NumCPU()-1)
	}
	return &Exporter{
		logger:  logger,
		sink:    sink,
		workers: workers,
	}
}

// Export renders vis to every target. Results are in target order; one failing
// target does not stop the rest.
func (e *Exporter) Export(ctx context.Context, vis *domain.Visualization, targets []domain.Target) []domain.ExportResult {
	results := make([]domain.ExportResult, len(targets))
	if len(targets) == 0 {
		return results
	}

	var wg sync.WaitGroup
	taskChan := make(chan domain.ExportTask, e.workers*2)
	resultChan := make(chan *domain.ExportResult, len(targets))

	workers := min(e.workers, len(targets))
	for i := 0; i < workers; i++ {
		wg.Add(1)
		e.logger.Debug("Starting export worker", zap.Int("id", i))
		go e.worker(ctx, i, taskChan, &wg)
	}

	go func() {
		defer close(taskChan)
		for i, target := range targets {
			task := domain.ExportTask{
				Index:  i,
				Target: target,
				Vis:    vis,
				Result: resultChan,
			}
			select {
			case taskChan <- task:
			case <-ctx.Done():
				for j := i; j < len(targets); j++ {
					resultChan <- &domain.ExportResult{Index: j, Target: targets[j], Err: ctx.Err()}
				}
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	for result := range resultChan {
		results[result.Index] = *result
	}

	return results
}

func (e *Exporter) worker(ctx context.Context, id int, tasks <-chan domain.ExportTask, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range tasks {
		e.logger.Debug("Rendering target",
			zap.Int("worker", id),
			zap.String("target", task.Target.Name),
			zap.String("path", task.Target.Path))

		result := &domain.ExportResult{Index: task.Index, Target: task.Target}
		if err := ctx.Err(); err != nil {
			result.Err = err
		} else {
			result.Bytes, result.Err = e.render(task)
		}
		task.Result <- result
	}
}

func (e *Exporter) render(task domain.ExportTask) (int, error) {
	if task.Target.Renderer == nil {
		return 0, errors.Wrapf(domain.ErrUnknownFormat, "target %s has no renderer", task.Target.Name)
	}

	var buf bytes.Buffer
	if err := task.Target.Renderer.Render(&buf, task.Vis); err != nil {
		return 0, errors.Wrapf(err, "render %s", task.Target.Name)
	}
	if err := e.sink.Write(task.Target.Path, buf.Bytes()); err != nil {
		return 0, errors.Wrapf(err, "write %s", task.Target.Path)
	}
	return buf.Len(), nil
}
