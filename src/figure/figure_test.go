package figure

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/crossXproduct/random-walk-1/src/params"
	"github.com/crossXproduct/random-walk-1/src/series"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

// writeAveragesSet writes every file the averages set reads.
func writeAveragesSet(t *testing.T, dir string) {
	t.Helper()
	for _, stem := range []string{"msd", "pDist1", "pDist2", "pDist3", "fs1", "fs2", "fs3"} {
		for _, suffix := range []string{"", "_thy", "_avg", "_avg_orig"} {
			body := "0,0\n1,0.25\n2,0\n3,0.5\n"
			if strings.HasPrefix(stem, "fs") {
				body = fmt.Sprintf("0,1\n1,0.9\n2,0.8\n3,0.%d\n", len(suffix)+1)
			}
			writeFile(t, dir, stem+suffix+".dat", body)
		}
	}
}

func testParams() *params.Params {
	return &params.Params{Runs: 10, Steps: 8, Interval: 1, Diffusivity: 0.5, Times: [3]float64{2, 4, 6}, Qs: [3]float64{0.1, 0.2, 0.3}}
}

func oneSeries(name string, n int) series.Series {
	s := series.Series{Name: name, Role: series.RoleData}
	for i := 0; i < n; i++ {
		s.X = append(s.X, float64(i))
		s.Y = append(s.Y, float64(i*i))
	}
	return s
}

func TestNewSpec_LabelCountEnforced(t *testing.T) {
	ss := []series.Series{oneSeries("a.dat", 3), oneSeries("b.dat", 3)}
	if _, err := NewSpec("out.png", "t", "x", "y", ss, []string{"only one"}, nil); !errors.Is(err, ErrLabelCount) {
		t.Fatalf("want ErrLabelCount, got %v", err)
	}
	if _, err := NewSpec("out.png", "t", "x", "y", ss, []string{"a", "b", "c"}, nil); !errors.Is(err, ErrLabelCount) {
		t.Fatalf("want ErrLabelCount for extra label, got %v", err)
	}
	sp, err := NewSpec("out.png", "t", "x", "y", ss, []string{"A", "B"}, nil)
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}
	if len(sp.Labels()) != len(sp.Series()) {
		t.Fatalf("labels %d != series %d", len(sp.Labels()), len(sp.Series()))
	}
	if sp.Layers[0].Style != DefaultStyle(0) || sp.Layers[1].Style != DefaultStyle(1) {
		t.Fatalf("default styles not applied: %+v", sp.Layers)
	}
}

func TestSpecValidate(t *testing.T) {
	bad := series.Series{Name: "bad.dat", X: []float64{1, 2}, Y: []float64{1}}
	cases := []struct {
		name string
		spec Spec
		want error
	}{
		{"no layers", Spec{Output: "a.png"}, ErrNoSeries},
		{"empty label", Spec{Output: "a.png", Layers: []Layer{{Series: oneSeries("a", 1), Style: DefaultStyle(0)}}}, ErrLabelCount},
		{"length mismatch", Spec{Output: "a.png", Layers: []Layer{{Series: bad, Label: "Bad", Style: DefaultStyle(0)}}}, series.ErrLengthMismatch},
	}
	for _, c := range cases {
		if err := c.spec.Validate(); !errors.Is(err, c.want) {
			t.Fatalf("%s: want %v got %v", c.name, c.want, err)
		}
	}
	unknownColor := Spec{Output: "a.png", Layers: []Layer{{Series: oneSeries("a", 1), Label: "A", Style: Style{Marker: MarkerCircle, Color: "chartreuse-ish"}}}}
	if err := unknownColor.Validate(); err == nil || !strings.Contains(err.Error(), "unknown color") {
		t.Fatalf("unknown colour should fail: %v", err)
	}
}

func TestBuiltinSets(t *testing.T) {
	avg := Averages()
	if err := avg.Check(); err != nil {
		t.Fatalf("averages Check: %v", err)
	}
	if len(avg.Figures) != 7 {
		t.Fatalf("averages figures = %d, want 7", len(avg.Figures))
	}
	for _, fig := range avg.Figures {
		if len(fig.Series) != 4 {
			t.Fatalf("%s: %d series, want 4", fig.Output, len(fig.Series))
		}
	}
	if w := avg.Lint(); len(w) != 0 {
		t.Fatalf("averages set should lint clean: %v", w)
	}

	chk := Checks()
	if err := chk.Check(); err != nil {
		t.Fatalf("checks Check: %v", err)
	}
	if len(chk.Figures) != 21 {
		t.Fatalf("checks figures = %d, want 21", len(chk.Figures))
	}
	if w := chk.Lint(); len(w) != 0 {
		t.Fatalf("checks set should lint clean: %v", w)
	}

	if _, err := Builtin("nope"); err == nil {
		t.Fatalf("unknown set should fail")
	}
}

func TestAverages_Fs3UsesOwnFiles(t *testing.T) {
	for _, fig := range Averages().Figures {
		if fig.Output != "fs3_avg.png" {
			continue
		}
		for _, se := range fig.Series {
			if !strings.HasPrefix(se.File, "fs3") {
				t.Fatalf("fs3 figure reads %s", se.File)
			}
		}
		return
	}
	t.Fatalf("fs3_avg.png missing from averages set")
}

func TestLint_FlagsMixedIndices(t *testing.T) {
	m := &Manifest{Name: "x", Figures: []Figure{{
		Output: "fs3.png",
		Series: []SeriesEntry{{File: "fs3.dat", Role: series.RoleData}, {File: "fs1_avg.dat", Role: series.RoleNewAverage}},
	}}}
	w := m.Lint()
	if len(w) != 1 || !strings.Contains(w[0], "1, 3") {
		t.Fatalf("expected one mixed-index warning, got %v", w)
	}
}

func TestBuild_Averages(t *testing.T) {
	dir := t.TempDir()
	writeAveragesSet(t, dir)
	specs, err := BuildAll(Averages(), dir, testParams())
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(specs) != 7 {
		t.Fatalf("specs = %d", len(specs))
	}
	p1 := specs[1]
	if p1.Title != "Probability Distribution at t=2" {
		t.Fatalf("title not interpolated: %q", p1.Title)
	}
	if !reflect.DeepEqual(p1.Labels(), []string{"Theory", "Unaveraged", "Old Time-Averaged", "New Time-Averaged"}) {
		t.Fatalf("labels = %v", p1.Labels())
	}
	// theory is not filtered; measured probability series are.
	if p1.Layers[0].Series.Len() != 4 {
		t.Fatalf("theory series filtered: %v", p1.Layers[0].Series.Y)
	}
	for _, l := range p1.Layers[1:] {
		if !reflect.DeepEqual(l.Series.X, []float64{1, 3}) {
			t.Fatalf("%s not zero-filtered: %v", l.Series.Name, l.Series.X)
		}
	}
	if specs[0].Layers[1].Series.Len() != 4 {
		t.Fatalf("msd data must not be filtered")
	}
	if specs[6].Title != "fs for q=0.3" || specs[6].Set != SetAverages {
		t.Fatalf("fs3 spec = %q / %q", specs[6].Title, specs[6].Set)
	}
	if !strings.Contains(specs[0].Footer, "runs=10") {
		t.Fatalf("footer = %q", specs[0].Footer)
	}
}

func TestBuild_MissingFileFailsWholeSet(t *testing.T) {
	dir := t.TempDir()
	writeAveragesSet(t, dir)
	if err := os.Remove(filepath.Join(dir, "fs2_avg_orig.dat")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	specs, err := BuildAll(Averages(), dir, testParams())
	if err == nil || specs != nil {
		t.Fatalf("expected failure and no specs, got %d specs err=%v", len(specs), err)
	}
	var be *BuildError
	if !errors.As(err, &be) || be.Figure != "fs2_avg.png" {
		t.Fatalf("want BuildError for fs2_avg.png, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("cause should be not-exist: %v", err)
	}
}

func TestBuild_NeedsParams(t *testing.T) {
	dir := t.TempDir()
	writeAveragesSet(t, dir)
	_, err := BuildAll(Averages(), dir, nil)
	if !errors.Is(err, ErrNeedParams) {
		t.Fatalf("want ErrNeedParams, got %v", err)
	}
	if !Averages().NeedsParams() || Checks().NeedsParams() {
		t.Fatalf("NeedsParams mismatch")
	}
}

func TestBuild_PartialParams(t *testing.T) {
	dir := t.TempDir()
	writeAveragesSet(t, dir)
	p, err := params.Parse(strings.NewReader("\n\n\n\n\n\n8\n\n1\n"), "params.txt")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	set := Averages()
	sp, err := Build(set.Name, set.Figures[0], dir, &p)
	if err != nil {
		t.Fatalf("msd figure needs no title vars: %v", err)
	}
	if sp.Footer != "steps=8 interval=1" {
		t.Fatalf("footer = %q", sp.Footer)
	}
	_, err = Build(set.Name, set.Figures[1], dir, &p)
	var le *params.LineError
	if !errors.As(err, &le) || le.Line != params.LineTimes {
		t.Fatalf("want LineError for t1, got %v", err)
	}
}

func TestBuild_ChecksWithFixedAxes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "p_dist_t1.dat", "0,0\n0,0\n0,0\n0,0.5\n0,0\n0,0.5\n0,0\n0,0\n0,0\n")
	writeFile(t, dir, "handcheck_p_dist_t1.dat", "0 0 0 0.5 0 0.5 0 0 0\n")
	fig := Checks().Figures[1] // p_dist_t1 data vs checks
	if fig.Output != "p_dist_t1_data_checks.png" {
		t.Fatalf("unexpected figure order: %s", fig.Output)
	}
	sp, err := Build(SetChecks, fig, dir, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reflect.DeepEqual(sp.Layers[0].Series.X, series.Range(-4, 4)) {
		t.Fatalf("data axis = %v", sp.Layers[0].Series.X)
	}
	if sp.Layers[1].Series.Role != series.RoleHandCheck || sp.Layers[1].Series.Len() != 9 {
		t.Fatalf("hand-check layer = %+v", sp.Layers[1].Series)
	}
	if sp.Footer != "" {
		t.Fatalf("footer without params should be empty: %q", sp.Footer)
	}
}

func TestBuild_ManifestLabelsOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.dat", "0,1\n1,2\n")
	writeFile(t, dir, "b.dat", "0,2\n1,3\n")
	fig := Figure{
		Output: "ab.png",
		Labels: []string{"First", "Second"},
		Series: []SeriesEntry{{File: "a.dat", Role: series.RoleData, Label: "ignored"}, {File: "b.dat", Role: series.RoleOldAverage}},
	}
	sp, err := Build("custom", fig, dir, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reflect.DeepEqual(sp.Labels(), []string{"First", "Second"}) {
		t.Fatalf("labels = %v", sp.Labels())
	}
	fig.Labels = []string{"just one"}
	if _, err := Build("custom", fig, dir, nil); !errors.Is(err, ErrLabelCount) {
		t.Fatalf("want ErrLabelCount, got %v", err)
	}
	fig.Labels = nil
	fig.Series[0].Label = ""
	sp, err = Build("custom", fig, dir, nil)
	if err != nil || sp.Labels()[0] != "Data" || sp.Labels()[1] != "Old Average" {
		t.Fatalf("default labels = %v (%v)", sp.Labels(), err)
	}
}

func TestManifestYAML(t *testing.T) {
	dir := t.TempDir()
	body := `name: custom
figures:
  - output: pdist.png
    title: "P at t={t1}"
    x_label: R(t)
    y_label: probability
    series:
      - file: pDist1_avg.dat
        role: new-average
        marker: "."
        color: red
        filter_zeros: true
        axis: displacement
      - file: handcheck.dat
        role: hand-check
        axis: -2..2
      - file: literal.dat
        role: theory
        axis: [0, 0.5, 1]
`
	writeFile(t, dir, "set.yaml", body)
	m, err := LoadManifest(filepath.Join(dir, "set.yaml"))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	ss := m.Figures[0].Series
	if ss[0].Axis.Named != AxisDisplacement || !ss[0].FilterZeros || ss[0].Marker != MarkerPoint {
		t.Fatalf("series 0 = %+v", ss[0])
	}
	if !reflect.DeepEqual(ss[1].Axis.Values, []float64{-2, -1, 0, 1, 2}) {
		t.Fatalf("range axis = %v", ss[1].Axis.Values)
	}
	if !reflect.DeepEqual(ss[2].Axis.Values, []float64{0, 0.5, 1}) {
		t.Fatalf("list axis = %v", ss[2].Axis.Values)
	}
	if !m.NeedsParams() {
		t.Fatalf("placeholder title should need params")
	}

	out, err := m.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(out), "axis: -2..2") || !strings.Contains(string(out), "axis: displacement") {
		t.Fatalf("marshalled axes lost their short form:\n%s", out)
	}
}

func TestLoadManifest_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown role":   "name: x\nfigures:\n  - output: a.png\n    series:\n      - file: a.dat\n        role: average\n",
		"unknown field":  "name: x\nfigures:\n  - output: a.png\n    colour: red\n    series:\n      - file: a.dat\n        role: data\n",
		"bad axis":       "name: x\nfigures:\n  - output: a.png\n    series:\n      - file: a.dat\n        role: data\n        axis: sideways\n",
		"label count":    "name: x\nfigures:\n  - output: a.png\n    labels: [A, B]\n    series:\n      - file: a.dat\n        role: data\n",
		"no figures":     "name: x\n",
		"duplicate out":  "name: x\nfigures:\n  - output: a.png\n    series: [{file: a.dat, role: data}]\n  - output: a.png\n    series: [{file: b.dat, role: data}]\n",
		"unknown marker": "name: x\nfigures:\n  - output: a.png\n    series: [{file: a.dat, role: data, marker: '*'}]\n",
	}
	dir := t.TempDir()
	for name, body := range cases {
		p := filepath.Join(dir, strings.ReplaceAll(name, " ", "_")+".yaml")
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := LoadManifest(p); err == nil {
			t.Fatalf("%s: expected an error", name)
		}
	}
}

func TestInterpolate(t *testing.T) {
	got, err := Interpolate("fs for q={q1} ({runs} runs)", map[string]string{"q1": "0.5", "runs": "100"})
	if err != nil || got != "fs for q=0.5 (100 runs)" {
		t.Fatalf("Interpolate = %q, %v", got, err)
	}
	if _, err := Interpolate("t={t9}", map[string]string{}); err == nil {
		t.Fatalf("unknown placeholder should fail")
	}
}

func TestDefaultLabel(t *testing.T) {
	if got := DefaultLabel(series.RoleHandCheck); got != "Hand Check" {
		t.Fatalf("DefaultLabel = %q", got)
	}
}
