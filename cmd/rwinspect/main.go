// Command rwinspect prints per-file statistics for the .dat files of a run directory.
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/crossXproduct/random-walk-1/src/params"
	"github.com/crossXproduct/random-walk-1/src/series"
)

func main() {
	var dir, glob string
	flag.StringVar(&dir, "dir", ".", "Run directory")
	flag.StringVar(&glob, "glob", "*.dat", "File pattern inside -dir")
	flag.Parse()
	if err := inspect(os.Stdout, dir, glob); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type stats struct {
	rows, cols, zeros      int
	minX, maxX, minY, maxY float64
}

// describe summarises parsed columns. A single column is treated as Y only.
func describe(cols [][]float64) stats {
	st := stats{cols: len(cols), rows: len(cols[0])}
	ys := cols[len(cols)-1]
	xs := cols[0]
	if len(cols) == 1 {
		xs = nil
	}
	for _, y := range ys {
		if y == 0 {
			st.zeros++
		}
	}
	s := series.Series{X: xs, Y: ys}
	if xs == nil {
		s.X = make([]float64, len(ys))
	}
	var ok bool
	st.minX, st.maxX, st.minY, st.maxY, ok = series.Bounds(s)
	if !ok {
		st.minX, st.maxX, st.minY, st.maxY = math.NaN(), math.NaN(), math.NaN(), math.NaN()
	}
	if xs == nil {
		st.minX, st.maxX = math.NaN(), math.NaN()
	}
	return st
}

func inspect(w io.Writer, dir, glob string) error {
	matches, err := filepath.Glob(filepath.Join(dir, glob))
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return fmt.Errorf("no files match %s in %s", glob, dir)
	}
	sort.Strings(matches)

	if p, err := params.Read(filepath.Join(dir, params.DefaultFile)); err == nil {
		size, _ := p.PlotSize()
		fmt.Fprintf(w, "%s plot_size=%g\n", p.Summary(), size)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "file\trows\tcols\tzeros\tx range\ty range")
	failed := 0
	for _, path := range matches {
		name := filepath.Base(path)
		cols, err := series.ReadFile(path)
		if err != nil {
			fmt.Fprintf(tw, "%s\terror: %v\t\t\t\t\n", name, err)
			failed++
			continue
		}
		st := describe(cols)
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t%s\n", name, st.rows, st.cols, st.zeros, span(st.minX, st.maxX), span(st.minY, st.maxY))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Total files: %d (unreadable: %d)\n", len(matches), failed)
	return nil
}

func span(lo, hi float64) string {
	if math.IsNaN(lo) {
		return "-"
	}
	return fmt.Sprintf("[%g, %g]", lo, hi)
}
