// Package figure describes comparison figures: the Plot Spec handed to a
// renderer, and the YAML manifests (plus built-in sets) that say which
// data files make up each figure.
package figure

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/crossXproduct/random-walk-1/src/series"
)

var (
	// ErrNoSeries indicates a figure without any series.
	ErrNoSeries = errors.New("figure has no series")
	// ErrLabelCount indicates a legend label list whose length differs from the series list.
	ErrLabelCount = errors.New("legend label count does not match series count")
)

// Layer is one overlaid series with its legend label and style.
type Layer struct {
	Series series.Series
	Label  string
	Style  Style
}

// Spec is a fully loaded figure, ready to render.
type Spec struct {
	Set    string // name of the figure set it came from
	Output string // output file name, fixed per figure
	Title  string
	XLabel string
	YLabel string
	Footer string // optional text stamped under the chart
	Layers []Layer
}

// NewSpec pairs series with legend labels and styles. labels must have one
// entry per series; styles may be nil, in which case defaults are used.
func NewSpec(output, title, xLabel, yLabel string, ss []series.Series, labels []string, styles []Style) (Spec, error) {
	if len(labels) != len(ss) {
		return Spec{}, fmt.Errorf("%s: %w (%d labels, %d series)", output, ErrLabelCount, len(labels), len(ss))
	}
	if styles != nil && len(styles) != len(ss) {
		return Spec{}, fmt.Errorf("%s: %d styles for %d series", output, len(styles), len(ss))
	}
	sp := Spec{Output: output, Title: title, XLabel: xLabel, YLabel: yLabel}
	for i, s := range ss {
		st := DefaultStyle(i)
		if styles != nil {
			st = styles[i]
		}
		sp.Layers = append(sp.Layers, Layer{Series: s, Label: labels[i], Style: st})
	}
	return sp, sp.Validate()
}

// Validate enforces the invariants a renderer relies on.
func (s Spec) Validate() error {
	if strings.TrimSpace(s.Output) == "" {
		return errors.New("figure output name is empty")
	}
	if len(s.Layers) == 0 {
		return fmt.Errorf("%s: %w", s.Output, ErrNoSeries)
	}
	for i, l := range s.Layers {
		if strings.TrimSpace(l.Label) == "" {
			return fmt.Errorf("%s: series %d (%s): %w: empty label", s.Output, i+1, l.Series.Name, ErrLabelCount)
		}
		if err := l.Series.Validate(); err != nil {
			return fmt.Errorf("%s: %w", s.Output, err)
		}
		if err := l.Style.Validate(); err != nil {
			return fmt.Errorf("%s: series %d (%s): %w", s.Output, i+1, l.Series.Name, err)
		}
	}
	return nil
}

// Labels returns the legend labels in layer order.
func (s Spec) Labels() []string {
	out := make([]string, len(s.Layers))
	for i, l := range s.Layers {
		out[i] = l.Label
	}
	return out
}

// Series returns the plotted series in layer order.
func (s Spec) Series() []series.Series {
	out := make([]series.Series, len(s.Layers))
	for i, l := range s.Layers {
		out[i] = l.Series
	}
	return out
}

// DefaultLabel turns a role into a legend label, e.g. "old-average" -> "Old Average".
func DefaultLabel(r series.Role) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(r), "-", " "))
}
