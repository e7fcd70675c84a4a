package render

import (
	"data-visualizer/internal/domain"
	"fmt"
	"math"
	"strings"

	"github.com/cockroachdb/errors"
)

// YAxisMode selects how the value axis extent is derived from the data.
type YAxisMode int

const (
	YAxisAuto      YAxisMode = iota // pick one of the modes below from the data
	YAxisZeroBased                  // always include 0
	YAxisTight                      // minimal padding
	YAxisNice                       // round numbers
)

func ParseYAxisMode(s string) (YAxisMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return YAxisAuto, nil
	case "zero", "zero_based":
		return YAxisZeroBased, nil
	case "tight":
		return YAxisTight, nil
	case "nice":
		return YAxisNice, nil
	}
	return YAxisAuto, errors.Newf("unknown y axis mode %q", s)
}

// linearScale maps a data domain onto a pixel range.
type linearScale struct {
	domain [2]float64
	rng    [2]int
}

func (ls linearScale) scale(v float64) int {
	if ls.domain[1] == ls.domain[0] {
		return (ls.rng[0] + ls.rng[1]) / 2
	}
	// halved operands keep the span finite for any finite domain
	ratio := (v/2 - ls.domain[0]/2) / (ls.domain[1]/2 - ls.domain[0]/2)
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return (ls.rng[0] + ls.rng[1]) / 2
	}
	return ls.rng[0] + int(math.Round(ratio*float64(ls.rng[1]-ls.rng[0])))
}

// clamp keeps v inside the domain.
func (ls linearScale) clamp(v float64) float64 {
	lo, hi := ls.domain[0], ls.domain[1]
	return math.Max(lo, math.Min(hi, v))
}

// padExtent widens a degenerate [v, v] extent so it can be scaled.
func padExtent(lo, hi float64) [2]float64 {
	if lo != hi {
		return [2]float64{lo, hi}
	}
	if lo == 0 {
		return [2]float64{-1, 1}
	}
	padding := math.Abs(lo) * 0.1
	return [2]float64{lo - padding, hi + padding}
}

// finiteExtent falls back to [lo, hi] when padding overflowed float64.
func finiteExtent(e [2]float64, lo, hi float64) [2]float64 {
	for _, v := range e {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return [2]float64{lo, hi}
		}
	}
	return e
}

func xExtent(b domain.Bounds) [2]float64 {
	if b.Empty {
		return [2]float64{0, 1}
	}
	return finiteExtent(padExtent(b.MinX, b.MaxX), b.MinX, b.MaxX)
}

func valueExtent(b domain.Bounds, mode YAxisMode, vtype domain.VisualizationType) [2]float64 {
	if b.Empty {
		return [2]float64{0, 100}
	}
	return finiteExtent(modeExtent(b.MinY, b.MaxY, mode, vtype), b.MinY, b.MaxY)
}

func modeExtent(lo, hi float64, mode YAxisMode, vtype domain.VisualizationType) [2]float64 {
	// bars grow from zero
	if vtype == domain.BarChart {
		mode = YAxisZeroBased
	}
	if lo == hi {
		if mode == YAxisZeroBased {
			return zeroBasedExtent(lo, hi)
		}
		return padExtent(lo, hi)
	}

	switch mode {
	case YAxisZeroBased:
		return zeroBasedExtent(lo, hi)
	case YAxisTight:
		return tightExtent(lo, hi)
	case YAxisNice:
		return niceExtent(lo, hi)
	default:
		return autoExtent(lo, hi)
	}
}

func autoExtent(lo, hi float64) [2]float64 {
	rng := hi - lo
	if lo >= 0 && lo <= rng*0.2 {
		return zeroBasedExtent(lo, hi)
	}
	if rng < math.Abs(lo)*0.3 {
		return tightExtent(lo, hi)
	}
	return niceExtent(lo, hi)
}

func zeroBasedExtent(lo, hi float64) [2]float64 {
	if lo > 0 {
		lo = 0
	}
	if hi < 0 {
		hi = 0
	}
	if lo == hi {
		return [2]float64{-1, 1}
	}
	padding := (hi - lo) * 0.05
	return [2]float64{lo - padding, hi + padding}
}

func tightExtent(lo, hi float64) [2]float64 {
	padding := (hi - lo) * 0.02
	return [2]float64{lo - padding, hi + padding}
}

func niceExtent(lo, hi float64) [2]float64 {
	rng := hi - lo
	magnitude := math.Pow(10, math.Floor(math.Log10(rng)))
	normalized := rng / magnitude

	var niceRange float64
	switch {
	case normalized <= 1:
		niceRange = magnitude
	case normalized <= 2:
		niceRange = 2 * magnitude
	case normalized <= 5:
		niceRange = 5 * magnitude
	default:
		niceRange = 10 * magnitude
	}

	center := (lo + hi) / 2
	step := niceRange / 10
	niceLo := math.Floor((center-niceRange/2)/step) * step
	niceHi := math.Ceil((center+niceRange/2)/step) * step
	// the nice range is centered, it may not cover skewed data
	niceLo = math.Min(niceLo, math.Floor(lo/step)*step)
	niceHi = math.Max(niceHi, math.Ceil(hi/step)*step)
	return [2]float64{niceLo, niceHi}
}

// valueTicks returns round tick values covering [lo, hi].
func valueTicks(lo, hi float64, maxTicks int) []float64 {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil
	}
	if lo >= hi || maxTicks < 2 {
		return []float64{lo}
	}

	rawStep := (hi/2 - lo/2) / float64(maxTicks-1) * 2
	magnitude := math.Pow(10, math.Floor(math.Log10(rawStep)))

	var step float64
	switch normalized := rawStep / magnitude; {
	case normalized <= 1:
		step = magnitude
	case normalized <= 2:
		step = 2 * magnitude
	case normalized <= 5:
		step = 5 * magnitude
	default:
		step = 10 * magnitude
	}

	var ticks []float64
	start := math.Ceil(lo/step) * step
	for i := 0; ; i++ {
		tick := start + float64(i)*step
		if tick > hi+step*1e-9 {
			break
		}
		ticks = append(ticks, tick)
	}
	return ticks
}

// tickPrecision returns the decimals needed to tell neighbouring ticks apart.
func tickPrecision(values []float64) int {
	if len(values) <= 1 {
		return 1
	}
	minDiff := math.Inf(1)
	for i := 1; i < len(values); i++ {
		diff := math.Abs(values[i] - values[i-1])
		if diff > 0 && diff < minDiff {
			minDiff = diff
		}
	}
	if math.IsInf(minDiff, 1) {
		return 1
	}
	precision := int(math.Max(0, -math.Floor(math.Log10(minDiff))))
	return min(precision, 8)
}

// formatValue formats value with precision decimals and drops trailing zeros.
func formatValue(value float64, precision int) string {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return fmt.Sprintf("%.1f", value)
	}
	formatted := fmt.Sprintf("%.*f", precision, value)
	if strings.Contains(formatted, ".") {
		formatted = strings.TrimRight(formatted, "0")
		formatted = strings.TrimRight(formatted, ".")
	}
	if formatted == "" || formatted == "-" || formatted == "-0" {
		formatted = "0"
	}
	return formatted
}
