package figure

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/crossXproduct/random-walk-1/src/series"
)

// Named axes derived from the parameter file.
const (
	AxisDisplacement = "displacement"
	AxisTime         = "time"
)

// Axis replaces the X column of a series. It is written in YAML either as a
// name ("displacement", "time"), an inclusive integer range ("-4..4") or a
// literal list of values.
type Axis struct {
	Named  string
	Values []float64
}

// IsZero reports whether no axis was configured.
func (a Axis) IsZero() bool { return a.Named == "" && a.Values == nil }

var rangeRe = regexp.MustCompile(`^\s*(-?\d+)\s*\.\.\s*(-?\d+)\s*$`)

// UnmarshalYAML accepts a scalar (name or range) or a sequence of numbers.
func (a *Axis) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		s := strings.TrimSpace(value.Value)
		if m := rangeRe.FindStringSubmatch(s); m != nil {
			lo, _ := strconv.Atoi(m[1])
			hi, _ := strconv.Atoi(m[2])
			if hi < lo {
				return fmt.Errorf("line %d: empty axis range %q", value.Line, s)
			}
			a.Values = series.Range(lo, hi)
			return nil
		}
		switch s {
		case AxisDisplacement, AxisTime:
			a.Named = s
			return nil
		}
		return fmt.Errorf("line %d: unknown axis %q (want %s, %s, lo..hi or a list)", value.Line, s, AxisDisplacement, AxisTime)
	case yaml.SequenceNode:
		var vals []float64
		if err := value.Decode(&vals); err != nil {
			return err
		}
		a.Values = vals
		return nil
	}
	return fmt.Errorf("line %d: axis must be a scalar or a list", value.Line)
}

// MarshalYAML writes the axis back in its shortest form.
func (a Axis) MarshalYAML() (interface{}, error) {
	if a.Named != "" {
		return a.Named, nil
	}
	if lo, hi, ok := integerRun(a.Values); ok && len(a.Values) > 2 {
		return fmt.Sprintf("%d..%d", lo, hi), nil
	}
	return a.Values, nil
}

func integerRun(vs []float64) (int, int, bool) {
	if len(vs) == 0 {
		return 0, 0, false
	}
	for i, v := range vs {
		if v != float64(int(v)) || (i > 0 && v != vs[i-1]+1) {
			return 0, 0, false
		}
	}
	return int(vs[0]), int(vs[len(vs)-1]), true
}

// SeriesEntry names one data file and how to draw it.
type SeriesEntry struct {
	File        string      `yaml:"file"`
	Role        series.Role `yaml:"role"`
	Label       string      `yaml:"label,omitempty"`
	Marker      Marker      `yaml:"marker,omitempty"`
	Color       string      `yaml:"color,omitempty"`
	FilterZeros bool        `yaml:"filter_zeros,omitempty"`
	Axis        Axis        `yaml:"axis,omitempty"`
}

// Figure is one comparison figure in a manifest.
type Figure struct {
	Output string        `yaml:"output"`
	Title  string        `yaml:"title"`
	XLabel string        `yaml:"x_label"`
	YLabel string        `yaml:"y_label"`
	Labels []string      `yaml:"labels,omitempty"` // optional legend list, one per series
	Series []SeriesEntry `yaml:"series"`
}

// Manifest is a named set of figures rendered together from one directory.
type Manifest struct {
	Name    string   `yaml:"name"`
	Figures []Figure `yaml:"figures"`
}

// LoadManifest opens and decodes a YAML manifest, then calls Check.
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var m Manifest
	dec := yaml.NewDecoder(bufio.NewReader(f))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := m.Check(); err != nil {
		return nil, fmt.Errorf("check %s: %w", path, err)
	}
	return &m, nil
}

// Marshal encodes m as YAML.
func (m *Manifest) Marshal() ([]byte, error) {
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

// Check returns an error if a field doesn't meet the requirements.
func (m *Manifest) Check() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("manifest name is empty")
	}
	if len(m.Figures) == 0 {
		return fmt.Errorf("manifest %q has no figures", m.Name)
	}
	seen := map[string]bool{}
	for i, fig := range m.Figures {
		if strings.TrimSpace(fig.Output) == "" {
			return fmt.Errorf("figure %d: output is empty", i+1)
		}
		if seen[fig.Output] {
			return fmt.Errorf("figure %d: duplicate output %q", i+1, fig.Output)
		}
		seen[fig.Output] = true
		if len(fig.Series) == 0 {
			return fmt.Errorf("figure %s: %w", fig.Output, ErrNoSeries)
		}
		if fig.Labels != nil && len(fig.Labels) != len(fig.Series) {
			return fmt.Errorf("figure %s: %w (%d labels, %d series)", fig.Output, ErrLabelCount, len(fig.Labels), len(fig.Series))
		}
		for j, se := range fig.Series {
			if strings.TrimSpace(se.File) == "" {
				return fmt.Errorf("figure %s: series %d: file is empty", fig.Output, j+1)
			}
			if !se.Role.Valid() {
				return fmt.Errorf("figure %s: series %d: unknown role %q", fig.Output, j+1, se.Role)
			}
			if se.Marker != "" && !se.Marker.Valid() {
				return fmt.Errorf("figure %s: series %d: unknown marker %q", fig.Output, j+1, se.Marker)
			}
			if se.Color != "" {
				if _, err := LookupColor(se.Color); err != nil {
					return fmt.Errorf("figure %s: series %d: %w", fig.Output, j+1, err)
				}
			}
		}
	}
	return nil
}

// NeedsParams reports whether any figure references the parameter file,
// through a title placeholder or a named axis.
func (m *Manifest) NeedsParams() bool {
	for _, fig := range m.Figures {
		if len(placeholders(fig.Title)) > 0 {
			return true
		}
		for _, se := range fig.Series {
			if se.Axis.Named != "" {
				return true
			}
		}
	}
	return false
}

var indexRe = regexp.MustCompile(`\d+`)

// Lint returns warnings for figures whose series come from differently
// numbered files, e.g. fs3 data drawn next to fs1 data. Such mixes are
// almost always a copy-paste slip in a hand-written manifest.
func (m *Manifest) Lint() []string {
	var warns []string
	for _, fig := range m.Figures {
		idx := map[string]bool{}
		for _, se := range fig.Series {
			if n := indexRe.FindString(se.File); n != "" {
				idx[n] = true
			}
		}
		if len(idx) > 1 {
			keys := make([]string, 0, len(idx))
			for k := range idx {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			warns = append(warns, fmt.Sprintf("figure %s mixes files numbered %s", fig.Output, strings.Join(keys, ", ")))
		}
	}
	return warns
}
