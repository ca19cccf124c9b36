package render

import (
	"math"
	"strconv"

	"github.com/crossXproduct/random-walk-1/src/figure"
	"github.com/crossXproduct/random-walk-1/src/series"
)

// DefaultWidth is the chart width used when Options.Width is zero.
const DefaultWidth = 1100

// ComputeChartDimensions applies width/height clamp rules used for charts.
// Input: desired raw width. Returns clamped width & height (~3:1).
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 800 {
		w = 800
	}
	h := int(float32(w) * 0.33)
	if h < 280 {
		h = 280
	}
	if h > 520 {
		h = 520
	}
	return w, h
}

// niceAxisBounds expands [min,max] by a small margin and rounds to "nice" numbers for readability.
func niceAxisBounds(min, max float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return min, max
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	// 5% margin on both sides
	pad := span * 0.05
	a := min - pad
	b := max + pad
	mag := math.Pow(10, math.Floor(math.Log10(span)))
	if !math.IsInf(mag, 0) && mag > 0 {
		a = math.Floor(a/mag) * mag
		b = math.Ceil(b/mag) * mag
	}
	return roundAt(a, span), roundAt(b, span)
}

// niceTicks returns tick positions in [min,max] using the 1,2,2.5,5 pattern,
// aiming for about n ticks.
func niceTicks(min, max float64, n int) []float64 {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil(span/step) + 1
		diff := math.Abs(count - float64(n))
		if diff < bestScore {
			bestScore = diff
			bestStep = step
		}
	}
	start := math.Ceil(roundAt(min/bestStep, 1)) * bestStep
	var out []float64
	// index-based stepping keeps float drift out of the labels
	for i := 0; ; i++ {
		v := roundAt(start+float64(i)*bestStep, bestStep)
		if v > max+bestStep*1e-9 {
			break
		}
		out = append(out, v)
	}
	if len(out) < 2 {
		out = []float64{min, max}
	}
	return out
}

// roundAt rounds v to six significant digits below unit, and never coarser
// than 6 decimal places, so bounds and labels of tiny spans stay distinct.
func roundAt(v, unit float64) float64 {
	scale := 1e6
	if unit > 0 && !math.IsInf(unit, 0) {
		if s := math.Pow(10, 6-math.Floor(math.Log10(unit))); s > scale {
			scale = s
		}
	}
	return math.Round(v*scale) / scale
}

// FormatTick provides a compact tick label.
func FormatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 100:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case av >= 0.01:
		return strconv.FormatFloat(v, 'f', 3, 64)
	default:
		return strconv.FormatFloat(v, 'g', 3, 64)
	}
}

// axes holds the shared bounds and ticks for one figure so both backends
// draw the same frame.
type axes struct {
	xMin, xMax, yMin, yMax float64
	xTicks, yTicks         []float64
}

func computeAxes(sp figure.Spec) axes {
	minX, maxX, minY, maxY, ok := series.Bounds(sp.Series()...)
	if !ok {
		minX, maxX, minY, maxY = 0, 1, 0, 1
	}
	var a axes
	a.xMin, a.xMax = niceAxisBounds(minX, maxX)
	a.yMin, a.yMax = niceAxisBounds(minY, maxY)
	a.xTicks = niceTicks(a.xMin, a.xMax, 8)
	a.yTicks = niceTicks(a.yMin, a.yMax, 6)
	return a
}

// finitePoints drops NaN/Inf pairs, which neither backend can place.
func finitePoints(s series.Series) (xs, ys []float64) {
	n := len(s.X)
	if len(s.Y) < n {
		n = len(s.Y)
	}
	xs = make([]float64, 0, n)
	ys = make([]float64, 0, n)
	for i := 0; i < n; i++ {
		x, y := s.X[i], s.Y[i]
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys
}
