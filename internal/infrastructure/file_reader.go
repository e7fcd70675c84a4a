package infrastructure

import (
	"bufio"
	"data-visualizer/internal/domain"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

type TXTFileReader struct {
	logger *zap.Logger
}

func NewTXTFileReader(logger *zap.Logger) *TXTFileReader {
	return &TXTFileReader{logger: logger}
}

// ReadSource reads whitespace separated "x y" lines. A first line that does not
// parse as numbers is taken as the axis labels.
func (r *TXTFileReader) ReadSource(filename string) (*domain.StaticSource, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filename)
	}
	defer file.Close()

	var (
		points         []domain.DataPoint
		xLabel, yLabel string
		seenData       bool
		lineNo         int
	)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, errors.Wrapf(domain.ErrInvalidFileFormat, "%s:%d: expected 2 columns, got %d", filename, lineNo, len(fields))
		}

		x, errX := strconv.ParseFloat(fields[0], 64)
		y, errY := strconv.ParseFloat(fields[1], 64)
		if errX != nil || errY != nil {
			if !seenData && xLabel == "" && yLabel == "" {
				xLabel, yLabel = fields[0], fields[1]
				continue
			}
			return nil, errors.Wrapf(domain.ErrInvalidFileFormat, "%s:%d: non-numeric value", filename, lineNo)
		}
		seenData = true

		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			r.logger.Warn("Non-finite value found, line skipped",
				zap.String("file", filename),
				zap.Int("line", lineNo))
			continue
		}
		points = append(points, domain.DataPoint{X: x, Y: y})
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", filename)
	}

	r.logger.Debug("Read data source",
		zap.String("file", filename),
		zap.Int("points", len(points)))

	source := domain.NewStaticSource(points)
	source.XLabel, source.YLabel = xLabel, yLabel
	return source, nil
}
