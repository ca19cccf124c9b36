package figure

import (
	"fmt"
	"sort"

	"github.com/crossXproduct/random-walk-1/src/series"
)

// Built-in set names.
const (
	SetAverages = "averages"
	SetChecks   = "checks"
)

// Builtin returns a built-in manifest by name.
func Builtin(name string) (*Manifest, error) {
	switch name {
	case SetAverages:
		return Averages(), nil
	case SetChecks:
		return Checks(), nil
	}
	return nil, fmt.Errorf("unknown figure set %q (known: %v)", name, BuiltinNames())
}

// BuiltinNames lists the built-in set names.
func BuiltinNames() []string {
	out := []string{SetAverages, SetChecks}
	sort.Strings(out)
	return out
}

// Averages compares theory, unaveraged data and the old and new time
// averages for the MSD, the three probability distributions and the three
// scattering functions. Titles take t1..t3 and q1..q3 from params.txt.
func Averages() *Manifest {
	overlay := func(stem string, prob bool) []SeriesEntry {
		return []SeriesEntry{
			{File: stem + "_thy.dat", Role: series.RoleTheory, Label: "Theory", Marker: MarkerTriangle, Color: "blue"},
			{File: stem + ".dat", Role: series.RoleData, Label: "Unaveraged", Marker: MarkerCircle, Color: "green", FilterZeros: prob},
			{File: stem + "_avg_orig.dat", Role: series.RoleOldAverage, Label: "Old Time-Averaged", Marker: MarkerCross, Color: "cyan", FilterZeros: prob},
			{File: stem + "_avg.dat", Role: series.RoleNewAverage, Label: "New Time-Averaged", Marker: MarkerPoint, Color: "red", FilterZeros: prob},
		}
	}
	m := &Manifest{Name: SetAverages}
	m.Figures = append(m.Figures, Figure{
		Output: "msd_avg.png",
		Title:  "mean square displacement",
		XLabel: "time",
		YLabel: "<R(t)^2>",
		Series: overlay("msd", false),
	})
	for i := 1; i <= 3; i++ {
		m.Figures = append(m.Figures, Figure{
			Output: fmt.Sprintf("pDist%d_avg.png", i),
			Title:  fmt.Sprintf("Probability Distribution at t={t%d}", i),
			XLabel: "R(t)",
			YLabel: "probability",
			Series: overlay(fmt.Sprintf("pDist%d", i), true),
		})
	}
	for i := 1; i <= 3; i++ {
		m.Figures = append(m.Figures, Figure{
			Output: fmt.Sprintf("fs%d_avg.png", i),
			Title:  fmt.Sprintf("fs for q={q%d}", i),
			XLabel: "time",
			YLabel: "fs",
			Series: overlay(fmt.Sprintf("fs%d", i), false),
		})
	}
	return m
}

// Checks compares data and theory against hand-computed values for the
// first few steps of a short walk. Hand-check files hold Y values only and
// are paired with fixed axes: 0..4 for time, -4..4 for displacement.
// Probability files are also drawn on the fixed displacement axis.
func Checks() *Manifest {
	type quantity struct {
		stem, thy, title, x, y string
		axis                   Axis
		prob                   bool
	}
	timeAxis := Axis{Values: series.Range(0, 4)}
	dispAxis := Axis{Values: series.Range(-4, 4)}
	qs := []quantity{
		{stem: "mean_squares", thy: "mean_squares_thy", title: "mean square displacement", x: "time", y: "<r^2>", axis: timeAxis},
	}
	for i := 1; i <= 3; i++ {
		qs = append(qs, quantity{
			stem: fmt.Sprintf("p_dist_t%d", i), thy: fmt.Sprintf("p_dist_thy_t%d", i),
			title: fmt.Sprintf("Probability Distribution at t=%d", i), x: "displacement", y: "probability",
			axis: dispAxis, prob: true,
		})
	}
	for i := 1; i <= 3; i++ {
		qs = append(qs, quantity{
			stem: fmt.Sprintf("f_s_q%d", i), thy: fmt.Sprintf("f_s_thy_q%d", i),
			title: fmt.Sprintf("f_s for q%d", i), x: "time", y: "f_s",
			axis: timeAxis,
		})
	}

	primary := func(file string, role series.Role, label string, ax Axis) SeriesEntry {
		return SeriesEntry{File: file, Role: role, Label: label, Marker: MarkerCircle, Color: "cyan", Axis: ax}
	}
	secondary := func(file string, role series.Role, label string, ax Axis) SeriesEntry {
		return SeriesEntry{File: file, Role: role, Label: label, Marker: MarkerCross, Color: "orange", Axis: ax}
	}

	m := &Manifest{Name: SetChecks}
	for _, kind := range []string{"data_checks", "theory_checks", "data_theory"} {
		for _, q := range qs {
			var own Axis
			if q.prob {
				own = q.axis
			}
			var ss []SeriesEntry
			switch kind {
			case "data_checks":
				ss = []SeriesEntry{
					primary(q.stem+".dat", series.RoleData, "Data", own),
					secondary("handcheck_"+q.stem+".dat", series.RoleHandCheck, "Checks", q.axis),
				}
			case "theory_checks":
				ss = []SeriesEntry{
					primary(q.thy+".dat", series.RoleTheory, "Theory", own),
					secondary("handcheck_"+q.thy+".dat", series.RoleHandCheck, "Checks", q.axis),
				}
			default:
				ss = []SeriesEntry{
					primary(q.stem+".dat", series.RoleData, "Data", own),
					secondary(q.thy+".dat", series.RoleTheory, "Theory", own),
				}
			}
			m.Figures = append(m.Figures, Figure{
				Output: q.stem + "_" + kind + ".png",
				Title:  q.title,
				XLabel: q.x,
				YLabel: q.y,
				Series: ss,
			})
		}
	}
	return m
}
