// Package viewer shows rendered figures in a fyne window, one tab per figure.
package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	"github.com/crossXproduct/random-walk-1/src/figure"
	"github.com/crossXproduct/random-walk-1/src/logging"
	"github.com/crossXproduct/random-walk-1/src/render"
)

// dark theme wrapper
type darkTheme struct{}

func (d *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}
func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

// Viewer holds the window and one image canvas per figure.
type Viewer struct {
	app    fyne.App
	window fyne.Window
	tabs   *container.AppTabs
	specs  []figure.Spec
	images []*canvas.Image
	opts   render.Options
}

// New builds the window for specs without showing it.
func New(a fyne.App, title string, specs []figure.Spec, opts render.Options) *Viewer {
	a.Settings().SetTheme(&darkTheme{})
	v := &Viewer{app: a, specs: specs, opts: opts}
	v.window = a.NewWindow(fmt.Sprintf("rwplot – %s", title))

	v.tabs = container.NewAppTabs()
	for _, sp := range specs {
		img := canvas.NewImageFromImage(v.draw(sp))
		img.FillMode = canvas.ImageFillContain
		w, h := v.chartSize()
		img.SetMinSize(fyne.NewSize(float32(w), float32(h)))
		v.images = append(v.images, img)
		v.tabs.Append(container.NewTabItem(sp.Output, container.NewScroll(img)))
	}
	v.tabs.SetTabLocation(container.TabLocationTop)

	v.buildMenus()
	v.window.SetContent(v.tabs)
	v.window.Resize(fyne.NewSize(1200, 520))
	return v
}

// draw renders sp, falling back to a blank image so the tab still appears.
func (v *Viewer) draw(sp figure.Spec) image.Image {
	img, err := render.Image(sp, v.opts)
	if err != nil {
		logging.Errorf("viewer: %v; showing blank fallback", err)
		return render.Blank(v.chartSize())
	}
	return img
}

func (v *Viewer) chartSize() (int, int) {
	if v.opts.Width == 0 {
		return render.ComputeChartDimensions(render.DefaultWidth)
	}
	return render.ComputeChartDimensions(v.opts.Width)
}

func (v *Viewer) buildMenus() {
	exportItem := fyne.NewMenuItem("Export PNG…", func() { v.exportCurrent() })
	fileMenu := fyne.NewMenu("File",
		exportItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { v.window.Close() }),
	)
	v.window.SetMainMenu(fyne.NewMainMenu(fileMenu))

	canv := v.window.Canvas()
	if canv != nil {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { v.exportCurrent() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { v.exportCurrent() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { v.window.Close() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { v.window.Close() })
	}
}

// Current returns the index of the selected tab, or -1.
func (v *Viewer) Current() int {
	if v.tabs == nil {
		return -1
	}
	return v.tabs.SelectedIndex()
}

// WritePNG encodes the image shown in tab i.
func (v *Viewer) WritePNG(w io.Writer, i int) error {
	if i < 0 || i >= len(v.images) || v.images[i].Image == nil {
		return fmt.Errorf("no chart at tab %d", i)
	}
	return png.Encode(w, v.images[i].Image)
}

// export PNG
func (v *Viewer) exportCurrent() {
	i := v.Current()
	if i < 0 {
		dialog.ShowInformation("Export", "No chart to export.", v.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := v.WritePNG(wc, i); err != nil {
			dialog.ShowError(err, v.window)
		}
	}, v.window)
	fs.SetFileName(v.specs[i].Output)
	fs.Show()
}

// ShowAndRun displays the window and blocks until it is closed.
func (v *Viewer) ShowAndRun() { v.window.ShowAndRun() }

// Show opens a viewer for specs and blocks until the window is closed.
// Its signature matches plotter.ShowFunc.
func Show(title string, specs []figure.Spec, opts render.Options) error {
	if len(specs) == 0 {
		return fmt.Errorf("nothing to show")
	}
	a := app.NewWithID("io.github.crossxproduct.rwplot")
	New(a, title, specs, opts).ShowAndRun()
	return nil
}
