// Package theory computes the closed-form diffusion curves that the
// simulated walks are compared against and writes them as .dat files.
package theory

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/crossXproduct/random-walk-1/src/logging"
	"github.com/crossXproduct/random-walk-1/src/params"
	"github.com/crossXproduct/random-walk-1/src/series"
)

// ErrDomain is returned for non-positive diffusivity or evaluation time.
var ErrDomain = errors.New("theory needs D > 0 and t > 0")

// MSD is the mean-square displacement 2Dt of a 1-D walk.
func MSD(t, d float64) float64 { return 2 * d * t }

// Fs is the self-intermediate scattering function exp(-q²Dt).
func Fs(t, d, q float64) float64 { return math.Exp(-q * q * d * t) }

// PDist is the Gaussian displacement density at time t.
func PDist(r, d, t float64) float64 {
	return math.Exp(-r*r/(4*d*t)) / math.Sqrt(4*math.Pi*d*t)
}

// Curves returns every theory series for p, keyed by file name.
func Curves(p params.Params) (map[string]series.Series, error) {
	if err := p.Require("diffusivity", "t1", "t2", "t3", "q1", "q2", "q3"); err != nil {
		return nil, err
	}
	if p.Diffusivity <= 0 {
		return nil, fmt.Errorf("%w: D=%v", ErrDomain, p.Diffusivity)
	}
	times := p.TimeAxis()
	if len(times) == 0 {
		return nil, params.ErrInterval
	}
	disp := p.DisplacementAxis()
	out := map[string]series.Series{}

	msd := series.Series{Name: "msd_thy.dat", Role: series.RoleTheory, X: times}
	for _, t := range times {
		msd.Y = append(msd.Y, MSD(t, p.Diffusivity))
	}
	out[msd.Name] = msd

	for i := 0; i < 3; i++ {
		t := p.Times[i]
		if t <= 0 {
			return nil, fmt.Errorf("%w: t%d=%v", ErrDomain, i+1, t)
		}
		s := series.Series{Name: fmt.Sprintf("pDist%d_thy.dat", i+1), Role: series.RoleTheory, X: disp}
		for _, r := range disp {
			s.Y = append(s.Y, PDist(r, p.Diffusivity, t))
		}
		out[s.Name] = s

		f := series.Series{Name: fmt.Sprintf("fs%d_thy.dat", i+1), Role: series.RoleTheory, X: times}
		for _, t := range times {
			f.Y = append(f.Y, Fs(t, p.Diffusivity, p.Qs[i]))
		}
		out[f.Name] = f
	}
	return out, nil
}

// Generate writes the theory files for p into dir and returns their paths
// in a fixed order.
func Generate(p params.Params, dir string) ([]string, error) {
	curves, err := Curves(p)
	if err != nil {
		return nil, err
	}
	names := []string{"msd_thy.dat"}
	for i := 1; i <= 3; i++ {
		names = append(names, fmt.Sprintf("pDist%d_thy.dat", i))
	}
	for i := 1; i <= 3; i++ {
		names = append(names, fmt.Sprintf("fs%d_thy.dat", i))
	}
	var paths []string
	for _, name := range names {
		var buf bytes.Buffer
		if err := WriteDat(&buf, curves[name]); err != nil {
			return nil, err
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		logging.Debugf("theory: wrote %s (%d points)", path, curves[name].Len())
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteDat writes s as "x,y" lines using the shortest float formatting.
func WriteDat(w io.Writer, s series.Series) error {
	if err := s.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for i := range s.X {
		bw.WriteString(strconv.FormatFloat(s.X[i], 'g', -1, 64))
		bw.WriteByte(',')
		bw.WriteString(strconv.FormatFloat(s.Y[i], 'g', -1, 64))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
