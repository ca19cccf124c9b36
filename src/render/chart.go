package render

import (
	"bytes"
	"image"
	"image/png"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/crossXproduct/random-walk-1/src/figure"
	"github.com/crossXproduct/random-walk-1/src/logging"
)

// dotWidths stands in for marker shapes, which go-chart cannot draw.
var dotWidths = map[figure.Marker]float64{
	figure.MarkerTriangle: 5,
	figure.MarkerCircle:   4,
	figure.MarkerCross:    3.5,
	figure.MarkerPoint:    2,
	figure.MarkerSquare:   4.5,
	figure.MarkerPlus:     3,
}

// pointStyle returns a style that renders points only (no connecting line)
func pointStyle(st figure.Style) (chart.Style, error) {
	c, err := st.RGBA()
	if err != nil {
		return chart.Style{}, err
	}
	col := drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    dotWidths[st.Marker],
		DotColor:    col,
	}, nil
}

func toChartTicks(vs []float64) []chart.Tick {
	out := make([]chart.Tick, len(vs))
	for i, v := range vs {
		out[i] = chart.Tick{Value: v, Label: FormatTick(v)}
	}
	return out
}

func chartImage(sp figure.Spec, o Options) (image.Image, error) {
	ax := computeAxes(sp)
	var ss []chart.Series
	for _, l := range sp.Layers {
		st, err := pointStyle(l.Style)
		if err != nil {
			return nil, err
		}
		xs, ys := finitePoints(l.Series)
		if dropped := l.Series.Len() - len(xs); dropped > 0 {
			logging.Debugf("%s: %s: %d non-finite points skipped", sp.Output, l.Series.Name, dropped)
		}
		// Pad to at least two X values for go-chart. An empty layer keeps its
		// legend entry through an undrawn point at the axis origin.
		switch len(xs) {
		case 0:
			xs = []float64{ax.xMin, ax.xMin}
			ys = []float64{ax.yMin, ax.yMin}
			st.DotWidth = 0
		case 1:
			xs = append(xs, xs[0])
			ys = append(ys, ys[0])
		}
		ss = append(ss, chart.ContinuousSeries{Name: l.Label, XValues: xs, YValues: ys, Style: st})
	}

	padBottom := 28
	if o.Footer && sp.Footer != "" {
		padBottom += 18
	}
	w, h := ComputeChartDimensions(o.Width)
	ch := chart.Chart{
		Title:      sp.Title,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 12, Bottom: padBottom}},
		XAxis: chart.XAxis{
			Name:  sp.XLabel,
			Range: &chart.ContinuousRange{Min: ax.xMin, Max: ax.xMax},
			Ticks: toChartTicks(ax.xTicks),
		},
		YAxis: chart.YAxis{
			Name:  sp.YLabel,
			Range: &chart.ContinuousRange{Min: ax.yMin, Max: ax.yMax},
			Ticks: toChartTicks(ax.yTicks),
		},
		Series: ss,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}
