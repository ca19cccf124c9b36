// Package plotter runs the comparison pipeline: resolve a figure set, load
// and filter every series, then either save all figures or show them.
package plotter

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/crossXproduct/random-walk-1/src/figure"
	"github.com/crossXproduct/random-walk-1/src/logging"
	"github.com/crossXproduct/random-walk-1/src/params"
	"github.com/crossXproduct/random-walk-1/src/render"
)

// Options selects the figure set and where its data and images live.
type Options struct {
	Dir        string // data directory; default "."
	Set        string // built-in set name; ignored when Manifest is set
	Manifest   string // path to a YAML manifest
	ParamsFile string // default <Dir>/params.txt
	OutDir     string // default Dir
	Render     render.Options
	DryRun     bool // plan and log, write nothing
}

func (o Options) withDefaults() Options {
	if o.Dir == "" {
		o.Dir = "."
	}
	if o.Set == "" && o.Manifest == "" {
		o.Set = figure.SetAverages
	}
	if o.ParamsFile == "" {
		o.ParamsFile = filepath.Join(o.Dir, params.DefaultFile)
	}
	if o.OutDir == "" {
		o.OutDir = o.Dir
	}
	return o
}

// LoadManifest resolves the figure set named by o.
func (o Options) LoadManifest() (*figure.Manifest, error) {
	o = o.withDefaults()
	if o.Manifest != "" {
		return figure.LoadManifest(o.Manifest)
	}
	return figure.Builtin(o.Set)
}

// Plan loads every figure of the selected set. It returns an error, and no
// specs, if any figure fails to load.
func Plan(o Options) (*figure.Manifest, []figure.Spec, error) {
	o = o.withDefaults()
	m, err := o.LoadManifest()
	if err != nil {
		return nil, nil, err
	}
	for _, w := range m.Lint() {
		logging.Warnf("%s: %s", m.Name, w)
	}
	p, err := loadParams(o, m)
	if err != nil {
		return nil, nil, err
	}
	specs, err := figure.BuildAll(m, o.Dir, p)
	if err != nil {
		return nil, nil, err
	}
	logging.Infof("planned %d figures from set %q in %s", len(specs), m.Name, o.Dir)
	return m, specs, nil
}

// loadParams reads the parameter file when the set needs it or a footer
// was asked for. A missing file is only fatal in the first case.
func loadParams(o Options, m *figure.Manifest) (*params.Params, error) {
	need := m.NeedsParams()
	if !need && !o.Render.Footer {
		return nil, nil
	}
	p, err := params.Read(o.ParamsFile)
	if err != nil {
		if !need && errors.Is(err, fs.ErrNotExist) {
			logging.Warnf("no %s; figures will have no footer", o.ParamsFile)
			return nil, nil
		}
		return nil, err
	}
	logging.Debugf("params: %s", p.Summary())
	return &p, nil
}

// RunSave renders every figure of the selected set into OutDir and returns
// the written paths. All figures are rendered before the first file is
// written, so a failure leaves the output directory untouched.
func RunSave(o Options) ([]string, error) {
	o = o.withDefaults()
	if err := o.Render.Validate(); err != nil {
		return nil, err
	}
	defer logging.TimeTrack(time.Now(), "save")
	_, specs, err := Plan(o)
	if err != nil {
		return nil, err
	}
	return Save(o, specs)
}

// Save renders specs into OutDir. Paths are returned in spec order.
func Save(o Options, specs []figure.Spec) ([]string, error) {
	o = o.withDefaults()
	if err := o.Render.Validate(); err != nil {
		return nil, err
	}
	type rendered struct {
		path string
		data []byte
	}
	out := make([]rendered, 0, len(specs))
	for _, sp := range specs {
		path := filepath.Join(o.OutDir, render.OutputName(sp, o.Render))
		if o.DryRun {
			logging.Infof("dry run: would write %s (%s)", path, strings.Join(sp.Labels(), ", "))
			out = append(out, rendered{path: path})
			continue
		}
		var buf bytes.Buffer
		if err := render.Write(sp, o.Render, &buf); err != nil {
			return nil, err
		}
		out = append(out, rendered{path: path, data: buf.Bytes()})
	}

	paths := make([]string, 0, len(out))
	if !o.DryRun {
		if err := os.MkdirAll(o.OutDir, 0o755); err != nil {
			return nil, fmt.Errorf("create out dir: %w", err)
		}
	}
	for _, r := range out {
		if !o.DryRun {
			if err := os.WriteFile(r.path, r.data, 0o644); err != nil {
				return paths, fmt.Errorf("write %s: %w", r.path, err)
			}
			logging.Infof("wrote %s", r.path)
		}
		paths = append(paths, r.path)
	}
	return paths, nil
}

// ShowFunc displays specs interactively and returns when the display closes.
type ShowFunc func(title string, specs []figure.Spec, o render.Options) error

// RunShow loads the selected set and hands it to show.
func RunShow(o Options, show ShowFunc) error {
	o = o.withDefaults()
	if o.Render.Format != "" && o.Render.Format != render.FormatPNG {
		return fmt.Errorf("show mode draws raster images; format %q is for saving", o.Render.Format)
	}
	if err := o.Render.Validate(); err != nil {
		return err
	}
	m, specs, err := Plan(o)
	if err != nil {
		return err
	}
	return show(m.Name, specs, o.Render)
}
