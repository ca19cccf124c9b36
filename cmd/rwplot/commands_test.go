package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crossXproduct/random-walk-1/src/figure"
	"github.com/crossXproduct/random-walk-1/src/params"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeParams(t *testing.T, dir string) {
	t.Helper()
	p := params.Params{Dir: dir, Runs: 2, Steps: 6, Interval: 1, Diffusivity: 0.5, Times: [3]float64{1, 2, 3}, Qs: [3]float64{0.5, 1, 2}}
	if err := os.WriteFile(filepath.Join(dir, params.DefaultFile), []byte(p.Format()), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestManifestCmd_PrintsLoadableYAML(t *testing.T) {
	out, err := runCmd(t, "manifest", "--set", figure.SetChecks)
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	path := filepath.Join(t.TempDir(), "checks.yaml")
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := figure.LoadManifest(path)
	if err != nil {
		t.Fatalf("printed manifest does not load: %v", err)
	}
	if len(m.Figures) != len(figure.Checks().Figures) {
		t.Fatalf("figures = %d", len(m.Figures))
	}
}

func TestTheoryThenRender(t *testing.T) {
	dir := t.TempDir()
	writeParams(t, dir)
	out, err := runCmd(t, "theory", "--dir", dir)
	if err != nil {
		t.Fatalf("theory: %v", err)
	}
	if got := strings.Count(out, "_thy.dat"); got != 7 {
		t.Fatalf("theory printed %d files:\n%s", got, out)
	}

	// stand the theory files in for the measured ones so the averages set loads
	for _, stem := range []string{"msd", "pDist1", "pDist2", "pDist3", "fs1", "fs2", "fs3"} {
		b, err := os.ReadFile(filepath.Join(dir, stem+"_thy.dat"))
		if err != nil {
			t.Fatal(err)
		}
		for _, suffix := range []string{"", "_avg", "_avg_orig"} {
			if err := os.WriteFile(filepath.Join(dir, stem+suffix+".dat"), b, 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}

	figs := filepath.Join(dir, "figs")
	out, err = runCmd(t, "render", "--dir", dir, "--out-dir", figs, "--footer")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "fs3_avg.png") {
		t.Fatalf("render output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(figs, "msd_avg.png")); err != nil {
		t.Fatalf("msd_avg.png not written: %v", err)
	}

	xlsx := filepath.Join(dir, "series.xlsx")
	if _, err := runCmd(t, "export", "--dir", dir, "--out", xlsx); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := os.Stat(xlsx); err != nil {
		t.Fatalf("workbook missing: %v", err)
	}

	out, err = runCmd(t, "report", "--dir", dir, "--out-dir", figs)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	md, err := os.ReadFile(filepath.Join(figs, "report.md"))
	if err != nil {
		t.Fatalf("report.md: %v (%s)", err, out)
	}
	if !strings.Contains(string(md), "](msd_avg.png)") {
		t.Fatalf("report links:\n%s", md)
	}
}

func TestRenderCmd_Errors(t *testing.T) {
	if _, err := runCmd(t, "render", "--dir", t.TempDir()); err == nil {
		t.Fatalf("render without data should fail")
	}
	if _, err := runCmd(t, "render", "--backend", "chart", "--format", "pdf"); err == nil {
		t.Fatalf("chart backend with pdf should fail")
	}
	if _, err := runCmd(t, "manifest", "--log-level", "loud"); err == nil {
		t.Fatalf("bad log level should fail")
	}
	if _, err := runCmd(t, "manifest", "--set", "nope"); err == nil {
		t.Fatalf("unknown set should fail")
	}
}
