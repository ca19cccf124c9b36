package render

import (
	"image"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/crossXproduct/random-walk-1/src/figure"
	"github.com/crossXproduct/random-walk-1/src/logging"
)

func glyph(m figure.Marker) (draw.GlyphDrawer, vg.Length) {
	switch m {
	case figure.MarkerTriangle:
		return draw.TriangleGlyph{}, vg.Points(3.5)
	case figure.MarkerCircle:
		return draw.RingGlyph{}, vg.Points(3)
	case figure.MarkerCross:
		return draw.CrossGlyph{}, vg.Points(3)
	case figure.MarkerSquare:
		return draw.BoxGlyph{}, vg.Points(3)
	case figure.MarkerPlus:
		return draw.PlusGlyph{}, vg.Points(3)
	}
	return draw.CircleGlyph{}, vg.Points(1.5)
}

func gonumTicks(vs []float64) plot.ConstantTicks {
	out := make(plot.ConstantTicks, len(vs))
	for i, v := range vs {
		out[i] = plot.Tick{Value: v, Label: FormatTick(v)}
	}
	return out
}

func buildPlot(sp figure.Spec) (*plot.Plot, error) {
	ax := computeAxes(sp)
	p := plot.New()
	p.Title.Text = sp.Title
	p.X.Label.Text = sp.XLabel
	p.Y.Label.Text = sp.YLabel
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.Padding = vg.Millimeter

	for _, l := range sp.Layers {
		c, err := l.Style.RGBA()
		if err != nil {
			return nil, err
		}
		xs, ys := finitePoints(l.Series)
		if dropped := l.Series.Len() - len(xs); dropped > 0 {
			logging.Debugf("%s: %s: %d non-finite points skipped", sp.Output, l.Series.Name, dropped)
		}
		pts := make(plotter.XYs, len(xs))
		for i := range xs {
			pts[i].X = xs[i]
			pts[i].Y = ys[i]
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		shape, radius := glyph(l.Style.Marker)
		s.GlyphStyle.Color = c
		s.GlyphStyle.Radius = radius
		s.GlyphStyle.Shape = shape
		p.Add(s)
		p.Legend.Add(l.Label, s)
	}

	// Add widens the ranges to the data; pin them to the shared bounds afterwards.
	p.X.Min, p.X.Max = ax.xMin, ax.xMax
	p.Y.Min, p.Y.Max = ax.yMin, ax.yMax
	p.X.Tick.Marker = gonumTicks(ax.xTicks)
	p.Y.Tick.Marker = gonumTicks(ax.yTicks)
	return p, nil
}

// pixels converts a pixel count to a length at the vgimg default DPI.
func pixels(n int) vg.Length { return vg.Length(n) * vg.Inch / vgimg.DefaultDPI }

func gonumImage(sp figure.Spec, o Options) (image.Image, error) {
	p, err := buildPlot(sp)
	if err != nil {
		return nil, err
	}
	w, h := ComputeChartDimensions(o.Width)
	c := vgimg.New(pixels(w), pixels(h))
	p.Draw(draw.New(c))
	return c.Image(), nil
}

// gonumVector writes SVG or PDF. The footer goes on a second X label line,
// as there is no raster to stamp.
func gonumVector(sp figure.Spec, o Options, w io.Writer) error {
	p, err := buildPlot(sp)
	if err != nil {
		return err
	}
	if o.Footer && sp.Footer != "" {
		p.X.Label.Text += "\n" + sp.Footer
	}
	cw, ch := ComputeChartDimensions(o.Width)
	wt, err := p.WriterTo(pixels(cw), pixels(ch), string(o.Format))
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
