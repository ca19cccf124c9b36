// Package params reads the positional params.txt written next to the
// averaged data files.
//
// The file has no keys; each value lives on a fixed line:
//
//	 1 CURRENT RUN PARAMETERS
//	 2 <working directory>
//	 3 <build date , time>
//	 4 Runs:
//	 5 <runs>
//	 6 Number of steps:
//	 7 <steps>
//	 8 Step interval:
//	 9 <interval>
//	10 Diffusivity:
//	11 <diffusivity>
//	12 Times for P(R(t))
//	13-15 <t1> <t2> <t3>
//	16 Qs for f_s(q,t)
//	17-19 <q1> <q2> <q3>
//
// Value lines may carry a "label:" prefix ("t1: 5"), which is stripped.
//
// Only steps and interval are required to parse. The other values may be
// absent or malformed; the failure is kept and returned by Require when a
// caller actually needs the value.
package params

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DefaultFile is the parameter file name looked up in a dataset directory.
const DefaultFile = "params.txt"

// Line numbers (1-based) of the values consumed from the file.
const (
	LineRuns        = 5
	LineSteps       = 7
	LineInterval    = 9
	LineDiffusivity = 11
	LineTimes       = 13
	LineQs          = 17
)

// ErrInterval is returned when the step interval is zero or negative.
var ErrInterval = errors.New("step interval must be positive")

// LineError reports a line that did not hold the expected value.
type LineError struct {
	Path  string
	Line  int
	Field string
	Err   error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d (%s): %v", e.Path, e.Line, e.Field, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Params are the run parameters needed to title and size the figures.
type Params struct {
	Dir         string // working directory recorded by the analysis run
	Runs        int
	Steps       int
	Interval    int
	Diffusivity float64
	Times       [3]float64 // evaluation times for the probability distributions
	Qs          [3]float64 // wavevectors for the scattering functions

	// raw keeps the trimmed text of time/q lines so titles show them as written.
	rawTimes [3]string
	rawQs    [3]string

	// missing maps a field name ("runs", "diffusivity", "t1".."q3") to the
	// error that kept it from being read.
	missing map[string]*LineError
}

// Read parses the parameter file at path.
func Read(path string) (Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return Params{}, err
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse reads parameters from r. name is used in errors only.
func Parse(r io.Reader, name string) (Params, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return Params{}, fmt.Errorf("read %s: %w", name, err)
	}

	get := func(line int, field string) (string, error) {
		if line > len(lines) {
			return "", &LineError{Path: name, Line: line, Field: field, Err: io.ErrUnexpectedEOF}
		}
		v := stripLabel(lines[line-1])
		if v == "" {
			return "", &LineError{Path: name, Line: line, Field: field, Err: errors.New("empty value")}
		}
		return v, nil
	}
	getInt := func(line int, field string) (int, error) {
		v, err := get(line, field)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, &LineError{Path: name, Line: line, Field: field, Err: err}
		}
		return n, nil
	}
	getFloat := func(line int, field string) (float64, string, error) {
		v, err := get(line, field)
		if err != nil {
			return 0, "", err
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, "", &LineError{Path: name, Line: line, Field: field, Err: err}
		}
		return f, v, nil
	}

	var p Params
	var err error
	if len(lines) >= 2 {
		p.Dir = lines[1]
	}
	if p.Steps, err = getInt(LineSteps, "steps"); err != nil {
		return Params{}, err
	}
	if p.Interval, err = getInt(LineInterval, "interval"); err != nil {
		return Params{}, err
	}
	if p.Interval <= 0 {
		return Params{}, &LineError{Path: name, Line: LineInterval, Field: "interval", Err: ErrInterval}
	}

	note := func(field string, err error) {
		if err == nil {
			return
		}
		if p.missing == nil {
			p.missing = map[string]*LineError{}
		}
		p.missing[field] = err.(*LineError)
	}
	p.Runs, err = getInt(LineRuns, "runs")
	note("runs", err)
	p.Diffusivity, _, err = getFloat(LineDiffusivity, "diffusivity")
	note("diffusivity", err)
	for i := 0; i < 3; i++ {
		tf, qf := fmt.Sprintf("t%d", i+1), fmt.Sprintf("q%d", i+1)
		p.Times[i], p.rawTimes[i], err = getFloat(LineTimes+i, tf)
		note(tf, err)
		p.Qs[i], p.rawQs[i], err = getFloat(LineQs+i, qf)
		note(qf, err)
	}
	return p, nil
}

// Require returns the error recorded for the first of fields that could not
// be read. Names that are always present, or unknown, are ignored.
func (p Params) Require(fields ...string) error {
	for _, f := range fields {
		if le, ok := p.missing[f]; ok {
			return le
		}
	}
	return nil
}

// Has reports whether field was read from the file.
func (p Params) Has(field string) bool {
	_, ok := p.missing[field]
	return !ok
}

// stripLabel turns "t1: 5" into "5"; lines without a colon are returned as-is.
func stripLabel(s string) string {
	if i := strings.LastIndex(s, ":"); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}

// PlotSize is the number of sampled time points, steps/interval.
func (p Params) PlotSize() (float64, error) {
	if p.Interval <= 0 {
		return 0, ErrInterval
	}
	return float64(p.Steps) / float64(p.Interval), nil
}

// DisplacementAxis returns the integer displacements -steps/2 .. steps/2.
func (p Params) DisplacementAxis() []float64 {
	half := p.Steps / 2
	out := make([]float64, 0, 2*half+1)
	for r := -half; r <= half; r++ {
		out = append(out, float64(r))
	}
	return out
}

// TimeAxis returns PlotSize sample times 0, interval, 2*interval, ...
func (p Params) TimeAxis() []float64 {
	if p.Interval <= 0 {
		return nil
	}
	n := p.Steps / p.Interval
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i * p.Interval)
	}
	return out
}

// TimeLabel returns the i-th evaluation time (0-based) as written in the file.
func (p Params) TimeLabel(i int) string {
	if p.rawTimes[i] != "" {
		return p.rawTimes[i]
	}
	return strconv.FormatFloat(p.Times[i], 'g', -1, 64)
}

// QLabel returns the i-th wavevector (0-based) as written in the file.
func (p Params) QLabel(i int) string {
	if p.rawQs[i] != "" {
		return p.rawQs[i]
	}
	return strconv.FormatFloat(p.Qs[i], 'g', -1, 64)
}

// Vars returns the title placeholders provided by p. Fields that could not
// be read are left out.
func (p Params) Vars() map[string]string {
	m := map[string]string{
		"steps":    strconv.Itoa(p.Steps),
		"interval": strconv.Itoa(p.Interval),
	}
	if p.Has("runs") {
		m["runs"] = strconv.Itoa(p.Runs)
	}
	if p.Has("diffusivity") {
		m["diffusivity"] = strconv.FormatFloat(p.Diffusivity, 'g', -1, 64)
	}
	for i := 0; i < 3; i++ {
		if k := fmt.Sprintf("t%d", i+1); p.Has(k) {
			m[k] = p.TimeLabel(i)
		}
		if k := fmt.Sprintf("q%d", i+1); p.Has(k) {
			m[k] = p.QLabel(i)
		}
	}
	return m
}

// Summary is a one-line description used for figure footers and logs.
func (p Params) Summary() string {
	var b strings.Builder
	if p.Has("runs") {
		fmt.Fprintf(&b, "runs=%d ", p.Runs)
	}
	fmt.Fprintf(&b, "steps=%d interval=%d", p.Steps, p.Interval)
	if p.Has("diffusivity") {
		b.WriteString(" D=" + strconv.FormatFloat(p.Diffusivity, 'g', -1, 64))
	}
	return b.String()
}

// Format renders p in the positional layout understood by Parse.
func (p Params) Format() string {
	var b strings.Builder
	b.WriteString("CURRENT RUN PARAMETERS\n")
	b.WriteString(p.Dir + "\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "Runs:\n%d\n", p.Runs)
	fmt.Fprintf(&b, "Number of steps: \n%d\n", p.Steps)
	fmt.Fprintf(&b, "Step interval: \n%d\n", p.Interval)
	fmt.Fprintf(&b, "Diffusivity: \n%s\n", strconv.FormatFloat(p.Diffusivity, 'g', -1, 64))
	b.WriteString("Times for P(R(t))\n")
	for i := 0; i < 3; i++ {
		b.WriteString(p.TimeLabel(i) + "\n")
	}
	b.WriteString("Qs for f_s(q,t)\n")
	for i := 0; i < 3; i++ {
		b.WriteString(p.QLabel(i) + "\n")
	}
	return b.String()
}
