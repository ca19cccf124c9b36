// Package render draws a figure.Spec as a scatter chart. Two backends are
// available: go-chart (PNG) and gonum/plot (PNG, SVG, PDF). Both derive
// their axis bounds and ticks from the data the same way, so re-rendering
// unchanged input gives identical bytes.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/crossXproduct/random-walk-1/src/figure"
	"github.com/crossXproduct/random-walk-1/src/logging"
)

// Backend selects the drawing library.
type Backend string

const (
	BackendChart Backend = "chart"
	BackendGonum Backend = "gonum"
)

// Format is an output encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
)

// Options controls how a spec is drawn.
type Options struct {
	Backend Backend // default chart
	Format  Format  // default png
	Footer  bool    // stamp spec.Footer under the chart
	Width   int     // pixels; height follows ComputeChartDimensions
}

func (o Options) withDefaults() Options {
	if o.Backend == "" {
		o.Backend = BackendChart
	}
	if o.Format == "" {
		o.Format = FormatPNG
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	return o
}

// Validate rejects unknown backends, unknown formats and combinations the
// backend cannot produce.
func (o Options) Validate() error {
	o = o.withDefaults()
	switch o.Backend {
	case BackendChart:
		if o.Format != FormatPNG {
			return fmt.Errorf("backend %s only writes png, not %q", o.Backend, o.Format)
		}
	case BackendGonum:
		switch o.Format {
		case FormatPNG, FormatSVG, FormatPDF:
		default:
			return fmt.Errorf("unknown format %q", o.Format)
		}
	default:
		return fmt.Errorf("unknown backend %q", o.Backend)
	}
	return nil
}

// OutputName returns the spec's output file name with the extension of the
// selected format, e.g. msd_avg.png becomes msd_avg.svg.
func OutputName(sp figure.Spec, o Options) string {
	o = o.withDefaults()
	ext := filepath.Ext(sp.Output)
	return strings.TrimSuffix(sp.Output, ext) + "." + string(o.Format)
}

// Image renders sp as a raster image, for display.
func Image(sp figure.Spec, o Options) (image.Image, error) {
	o = o.withDefaults()
	if err := sp.Validate(); err != nil {
		return nil, err
	}
	defer logging.TimeTrack(time.Now(), "render "+sp.Output)

	var img image.Image
	var err error
	switch o.Backend {
	case BackendChart:
		img, err = chartImage(sp, o)
	case BackendGonum:
		img, err = gonumImage(sp, o)
	default:
		return nil, fmt.Errorf("unknown backend %q", o.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", sp.Output, err)
	}
	if o.Footer {
		img = drawFooter(img, sp.Footer)
	}
	return img, nil
}

// Write encodes sp in the selected format to w.
func Write(sp figure.Spec, o Options, w io.Writer) error {
	o = o.withDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	if o.Format == FormatPNG {
		img, err := Image(sp, o)
		if err != nil {
			return err
		}
		return png.Encode(w, img)
	}
	if err := sp.Validate(); err != nil {
		return err
	}
	defer logging.TimeTrack(time.Now(), "render "+sp.Output)
	if err := gonumVector(sp, o, w); err != nil {
		return fmt.Errorf("render %s: %w", sp.Output, err)
	}
	return nil
}

// WriteFile renders sp to path, replacing any existing file. The file is
// only touched once encoding has succeeded.
func WriteFile(sp figure.Spec, o Options, path string) error {
	var buf bytes.Buffer
	if err := Write(sp, o, &buf); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create out dir: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
