package domain

import (
	"math"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrInvalidHistogram = errors.New("invalid histogram parameters")

// Bounds is the bounding box of a point sequence
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
	Empty      bool
}

// Summary describes a point sequence
type Summary struct {
	Count   int
	Bounds  Bounds
	MeanY   float64
	StdDevY float64
}

func splitXY(points []DataPoint) (xs, ys []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}

// ComputeBounds returns the min/max of both axes. Empty input yields Bounds{Empty: true}.
func ComputeBounds(points []DataPoint) Bounds {
	if len(points) == 0 {
		return Bounds{Empty: true}
	}
	xs, ys := splitXY(points)
	return Bounds{
		MinX: floats.Min(xs),
		MaxX: floats.Max(xs),
		MinY: floats.Min(ys),
		MaxY: floats.Max(ys),
	}
}

func Summarize(points []DataPoint) Summary {
	s := Summary{Count: len(points), Bounds: ComputeBounds(points)}
	if len(points) == 0 {
		return s
	}
	_, ys := splitXY(points)
	if len(ys) == 1 {
		s.MeanY = ys[0]
		return s
	}
	s.MeanY, s.StdDevY = stat.MeanStdDev(ys, nil)
	return s
}

// Hist calculates the histogram of Y values within [min, max].
// When min == max the range is taken from the data.
func Hist(points []DataPoint, min, max float64, n int) (Histogram, error) {
	if len(points) == 0 {
		return Histogram{}, errors.Wrap(ErrInvalidHistogram, "no points")
	}
	if n < 2 {
		return Histogram{}, errors.Wrapf(ErrInvalidHistogram, "need at least 2 bins, got %d", n)
	}

	_, ys := splitXY(points)
	if min == max {
		min = floats.Min(ys)
		max = floats.Max(ys)
	}
	if min > max {
		return Histogram{}, errors.Wrapf(ErrInvalidHistogram, "min %v > max %v", min, max)
	}

	bins := make([]float64, n)
	histogram := make([]int, n)
	if min == max {
		for i := range bins {
			bins[i] = min
		}
		histogram[0] = len(ys)
		return Histogram{Bins: bins, Vals: histogram, Len: n}, nil
	}

	binWidth := (max - min) / float64(n-1)
	floats.Span(bins, min, max)

	for _, value := range ys {
		if math.IsNaN(value) {
			continue
		}
		if value < min {
			value = min
		} else if value > max {
			value = max
		}
		binIndex := int((value - min) / binWidth)
		if binIndex >= n {
			binIndex = n - 1
		}
		histogram[binIndex]++
	}

	return Histogram{
		Bins: bins,
		Vals: histogram,
		Len:  n,
	}, nil
}
