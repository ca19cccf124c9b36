package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crossXproduct/random-walk-1/src/export"
	"github.com/crossXproduct/random-walk-1/src/figure"
	"github.com/crossXproduct/random-walk-1/src/logging"
	"github.com/crossXproduct/random-walk-1/src/params"
	"github.com/crossXproduct/random-walk-1/src/plotter"
	"github.com/crossXproduct/random-walk-1/src/render"
	"github.com/crossXproduct/random-walk-1/src/report"
	"github.com/crossXproduct/random-walk-1/src/theory"
	"github.com/crossXproduct/random-walk-1/src/viewer"
)

// selection holds the flags shared by every command that works on a figure set.
type selection struct {
	dir      string
	set      string
	manifest string
	params   string
	outDir   string
	backend  string
	format   string
	footer   bool
	width    int
}

func (s *selection) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&s.dir, "dir", "d", ".", "Data directory holding the .dat files and params.txt")
	f.StringVar(&s.set, "set", figure.SetAverages, "Built-in figure set: "+strings.Join(figure.BuiltinNames(), ", "))
	f.StringVarP(&s.manifest, "manifest", "m", "", "YAML figure-set manifest (overrides --set)")
	f.StringVar(&s.params, "params", "", "Parameter file (default: <dir>/params.txt)")
	f.StringVarP(&s.outDir, "out-dir", "o", "", "Output directory (default: --dir)")
	f.StringVar(&s.backend, "backend", string(render.BackendChart), "Renderer: chart or gonum")
	f.StringVar(&s.format, "format", string(render.FormatPNG), "Image format: png, or svg/pdf with --backend gonum")
	f.BoolVar(&s.footer, "footer", false, "Stamp the run parameters under each figure")
	f.IntVar(&s.width, "width", render.DefaultWidth, "Image width in pixels")
}

func (s *selection) options() plotter.Options {
	return plotter.Options{
		Dir:        s.dir,
		Set:        s.set,
		Manifest:   s.manifest,
		ParamsFile: s.params,
		OutDir:     s.outDir,
		Render: render.Options{
			Backend: render.Backend(s.backend),
			Format:  render.Format(s.format),
			Footer:  s.footer,
			Width:   s.width,
		},
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:   "rwplot",
		Short: "Plot random-walk simulation output against theory and hand checks",
		Long: `rwplot loads the MSD, probability distribution and scattering function
files written by the analysis program and saves or shows comparison scatter plots.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("log-level") {
				if _, err := logging.ParseLevel(logLevel); err != nil {
					return err
				}
				logging.SetLogLevel(logLevel)
				return nil
			}
			logging.SetLogLevelFromEnv("")
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error (env "+logging.EnvLogLevel+")")

	root.AddCommand(
		newRenderCmd(),
		newShowCmd(),
		newTheoryCmd(),
		newExportCmd(),
		newReportCmd(),
		newManifestCmd(),
	)
	return root
}

func newRenderCmd() *cobra.Command {
	var sel selection
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Save every figure of a set as an image file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := sel.options()
			o.DryRun = dryRun
			paths, err := plotter.RunSave(o)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	sel.bind(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Load and check every figure, write nothing")
	return cmd
}

func newShowCmd() *cobra.Command {
	var sel selection
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Open the figures of a set in a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return plotter.RunShow(sel.options(), viewer.Show)
		},
	}
	sel.bind(cmd)
	return cmd
}

func newTheoryCmd() *cobra.Command {
	var dir, paramsFile string
	cmd := &cobra.Command{
		Use:   "theory",
		Short: "Write the closed-form theory curves (*_thy.dat) from params.txt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if paramsFile == "" {
				paramsFile = filepath.Join(dir, params.DefaultFile)
			}
			p, err := params.Read(paramsFile)
			if err != nil {
				return err
			}
			paths, err := theory.Generate(p, dir)
			if err != nil {
				return err
			}
			for _, path := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Output directory")
	cmd.Flags().StringVar(&paramsFile, "params", "", "Parameter file (default: <dir>/params.txt)")
	return cmd
}

func newExportCmd() *cobra.Command {
	var sel selection
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the series of every figure to an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := sel.options()
			_, specs, err := plotter.Plan(o)
			if err != nil {
				return err
			}
			if out == "" {
				out = filepath.Join(sel.dir, "series.xlsx")
			}
			var pp *params.Params
			if p, err := params.Read(paramsPath(sel)); err == nil {
				pp = &p
			} else {
				logging.Debugf("export: no params sheet: %v", err)
			}
			if err := export.Workbook(specs, pp, out); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	sel.bind(cmd)
	cmd.Flags().StringVar(&out, "out", "", "Workbook path (default: <dir>/series.xlsx)")
	return cmd
}

func newReportCmd() *cobra.Command {
	var sel selection
	var title string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a set and write report.md and report.html next to the images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := sel.options()
			m, specs, err := plotter.Plan(o)
			if err != nil {
				return err
			}
			paths, err := plotter.Save(o, specs)
			if err != nil {
				return err
			}
			outDir := sel.outDir
			if outDir == "" {
				outDir = sel.dir
			}
			entries := make([]report.Entry, len(specs))
			for i, sp := range specs {
				rel, err := filepath.Rel(outDir, paths[i])
				if err != nil {
					rel = paths[i]
				}
				entries[i] = report.Entry{Spec: sp, Image: rel}
			}
			if title == "" {
				title = m.Name
			}
			summary := ""
			if p, err := params.Read(paramsPath(sel)); err == nil {
				summary = p.Summary()
			}
			written, err := report.Write(outDir, title, summary, entries)
			if err != nil {
				return err
			}
			for _, p := range written {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	sel.bind(cmd)
	cmd.Flags().StringVar(&title, "title", "", "Report title (default: set name)")
	return cmd
}

func newManifestCmd() *cobra.Command {
	var set string
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Print a built-in figure set as a YAML manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := figure.Builtin(set)
			if err != nil {
				return err
			}
			b, err := m.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	cmd.Flags().StringVar(&set, "set", figure.SetAverages, "Built-in figure set: "+strings.Join(figure.BuiltinNames(), ", "))
	return cmd
}

func paramsPath(sel selection) string {
	if sel.params != "" {
		return sel.params
	}
	return filepath.Join(sel.dir, params.DefaultFile)
}
