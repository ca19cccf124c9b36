package figure

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/crossXproduct/random-walk-1/src/params"
	"github.com/crossXproduct/random-walk-1/src/series"
)

// ErrNeedParams is returned when a figure references the parameter file but none was loaded.
var ErrNeedParams = errors.New("figure needs the parameter file")

// BuildError ties a load failure to the figure being built.
type BuildError struct {
	Figure string
	Err    error
}

func (e *BuildError) Error() string { return fmt.Sprintf("figure %s: %v", e.Figure, e.Err) }

func (e *BuildError) Unwrap() error { return e.Err }

var placeholderRe = regexp.MustCompile(`\{([a-z0-9_]+)\}`)

func placeholders(s string) []string {
	var out []string
	for _, m := range placeholderRe.FindAllStringSubmatch(s, -1) {
		out = append(out, m[1])
	}
	return out
}

// Interpolate replaces {name} placeholders in s with vars. Unknown names are an error.
func Interpolate(s string, vars map[string]string) (string, error) {
	var missing []string
	out := placeholderRe.ReplaceAllStringFunc(s, func(tok string) string {
		key := tok[1 : len(tok)-1]
		v, ok := vars[key]
		if !ok {
			missing = append(missing, key)
			return tok
		}
		return v
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("unknown placeholder(s) %s in %q", strings.Join(missing, ", "), s)
	}
	return out, nil
}

// Build loads every series of fig from dir and returns a validated Spec.
// p may be nil when the figure uses neither title placeholders nor named axes.
func Build(setName string, fig Figure, dir string, p *params.Params) (Spec, error) {
	wrap := func(err error) error { return &BuildError{Figure: fig.Output, Err: err} }

	title := fig.Title
	if ph := placeholders(title); len(ph) > 0 {
		if p == nil {
			return Spec{}, wrap(fmt.Errorf("%w: title uses %s", ErrNeedParams, strings.Join(ph, ", ")))
		}
		if err := p.Require(ph...); err != nil {
			return Spec{}, wrap(err)
		}
		var err error
		if title, err = Interpolate(title, p.Vars()); err != nil {
			return Spec{}, wrap(err)
		}
	}

	if fig.Labels != nil && len(fig.Labels) != len(fig.Series) {
		return Spec{}, wrap(fmt.Errorf("%w (%d labels, %d series)", ErrLabelCount, len(fig.Labels), len(fig.Series)))
	}

	ss := make([]series.Series, 0, len(fig.Series))
	labels := make([]string, 0, len(fig.Series))
	styles := make([]Style, 0, len(fig.Series))
	for i, se := range fig.Series {
		s, err := loadEntry(se, dir, p)
		if err != nil {
			return Spec{}, wrap(err)
		}
		if se.FilterZeros {
			s = series.FilterZeros(s)
		}
		ss = append(ss, s)

		label := se.Label
		if fig.Labels != nil {
			label = fig.Labels[i]
		}
		if label == "" {
			label = DefaultLabel(se.Role)
		}
		labels = append(labels, label)

		st := DefaultStyle(i)
		if se.Marker != "" {
			st.Marker = se.Marker
		}
		if se.Color != "" {
			st.Color = se.Color
		}
		styles = append(styles, st)
	}

	sp, err := NewSpec(fig.Output, title, fig.XLabel, fig.YLabel, ss, labels, styles)
	if err != nil {
		return Spec{}, wrap(err)
	}
	sp.Set = setName
	if p != nil {
		sp.Footer = p.Summary()
	}
	return sp, nil
}

func loadEntry(se SeriesEntry, dir string, p *params.Params) (series.Series, error) {
	path := se.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	if se.Axis.IsZero() {
		return series.Load(path, se.Role)
	}
	axis := se.Axis.Values
	if se.Axis.Named != "" {
		if p == nil {
			return series.Series{}, fmt.Errorf("%w: %s uses the %s axis", ErrNeedParams, se.File, se.Axis.Named)
		}
		switch se.Axis.Named {
		case AxisDisplacement:
			axis = p.DisplacementAxis()
		case AxisTime:
			axis = p.TimeAxis()
		}
	}
	return series.LoadWithAxis(path, se.Role, axis)
}

// BuildAll builds every figure of m. It stops at the first failure so that
// nothing is rendered from a half-loaded set.
func BuildAll(m *Manifest, dir string, p *params.Params) ([]Spec, error) {
	specs := make([]Spec, 0, len(m.Figures))
	for _, fig := range m.Figures {
		sp, err := Build(m.Name, fig, dir, p)
		if err != nil {
			return nil, err
		}
		specs = append(specs, sp)
	}
	return specs, nil
}
