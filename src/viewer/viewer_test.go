package viewer

import (
	"bytes"
	"image/png"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/crossXproduct/random-walk-1/src/figure"
	"github.com/crossXproduct/random-walk-1/src/render"
	"github.com/crossXproduct/random-walk-1/src/series"
)

func specs(t *testing.T) []figure.Spec {
	t.Helper()
	var out []figure.Spec
	for _, name := range []string{"msd_avg.png", "fs1_avg.png"} {
		s := series.Series{Name: "x.dat", Role: series.RoleData, X: []float64{0, 1, 2}, Y: []float64{0, 1, 4}}
		sp, err := figure.NewSpec(name, name, "time", "y", []series.Series{s}, []string{"Data"}, nil)
		if err != nil {
			t.Fatalf("NewSpec: %v", err)
		}
		out = append(out, sp)
	}
	return out
}

func TestNew_OneTabPerFigure(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	ss := specs(t)
	v := New(a, figure.SetAverages, ss, render.Options{})
	if len(v.tabs.Items) != len(ss) {
		t.Fatalf("tabs = %d want %d", len(v.tabs.Items), len(ss))
	}
	if v.tabs.Items[1].Text != "fs1_avg.png" {
		t.Fatalf("tab text = %q", v.tabs.Items[1].Text)
	}
	if v.Current() != 0 {
		t.Fatalf("current = %d", v.Current())
	}
	v.tabs.SelectIndex(1)
	if v.Current() != 1 {
		t.Fatalf("current after select = %d", v.Current())
	}
}

func TestWritePNG(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	v := New(a, "t", specs(t), render.Options{})
	var buf bytes.Buffer
	if err := v.WritePNG(&buf, 0); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	w, h := render.ComputeChartDimensions(render.DefaultWidth)
	if img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		t.Fatalf("size %v", img.Bounds())
	}
	if err := v.WritePNG(&buf, 5); err == nil {
		t.Fatalf("out of range tab should fail")
	}
}

func TestNew_BadSpecShowsBlank(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	ss := specs(t)
	ss[0].Layers[0].Style.Color = "no-such-colour"
	v := New(a, "t", ss, render.Options{})
	if v.images[0].Image == nil {
		t.Fatalf("fallback image missing")
	}
}

func TestShow_Empty(t *testing.T) {
	if err := Show("x", nil, render.Options{}); err == nil {
		t.Fatalf("empty show should fail")
	}
}
