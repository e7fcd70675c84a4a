package infrastructure

import (
	"bufio"
	"data-visualizer/internal/domain"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

type FmtFunc func(float64) string

// DecimalFmt formats values with a fixed number of decimals.
func DecimalFmt(decimals int) FmtFunc {
	return func(val float64) string {
		return strconv.FormatFloat(val, 'f', decimals, 64)
	}
}

// TXTWriter writes visualizations as tab separated tables.
type TXTWriter struct {
	logger    *zap.Logger
	formatter FmtFunc
}

func NewTXTWriter(logger *zap.Logger, formatter FmtFunc) *TXTWriter {
	if formatter == nil {
		formatter = DecimalFmt(4)
	}
	return &TXTWriter{logger: logger, formatter: formatter}
}

func (w *TXTWriter) Render(out io.Writer, vis *domain.Visualization) error {
	writer := bufio.NewWriter(out)

	xLabel, yLabel := vis.XLabel(), vis.YLabel()
	if xLabel == "" {
		xLabel = "X"
	}
	if yLabel == "" {
		yLabel = "Y"
	}

	fmt.Fprintf(writer, "# %s\t%s\n", vis.Type(), vis.Options().Title())
	fmt.Fprintf(writer, "%s\t%s\n", xLabel, yLabel)
	for _, p := range vis.Points() {
		fmt.Fprintf(writer, "%s\t%s\n", w.formatter(p.X), w.formatter(p.Y))
	}

	return writer.Flush()
}

func (w *TXTWriter) WriteHistogram(out io.Writer, hist domain.Histogram) error {
	writer := bufio.NewWriter(out)

	fmt.Fprintf(writer, "%s\t%s\n", "X", "Y")
	for i := 0; i < hist.Len; i++ {
		fmt.Fprintf(writer, "%.2e\t%10d\n", hist.Bins[i], hist.Vals[i])
	}

	return writer.Flush()
}

// FileSink writes rendered output to the filesystem.
type FileSink struct {
	logger *zap.Logger
}

func NewFileSink(logger *zap.Logger) *FileSink {
	return &FileSink{logger: logger}
}

func (s *FileSink) Write(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create directory %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	s.logger.Debug("Wrote file", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}
