// Package export writes the plotted series of a figure set to an XLSX workbook.
package export

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/crossXproduct/random-walk-1/src/figure"
	"github.com/crossXproduct/random-walk-1/src/params"
)

const (
	indexSheet  = "index"
	paramsSheet = "params"
	maxSheetLen = 31
)

// SheetName derives a valid, unique sheet name from a figure output name.
func SheetName(output string, used map[string]bool) string {
	base := strings.TrimSuffix(output, filepath.Ext(output))
	base = strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return '_'
		}
		return r
	}, base)
	if len(base) > maxSheetLen {
		base = base[:maxSheetLen]
	}
	name := base
	for i := 2; used[strings.ToLower(name)] || name == indexSheet || name == paramsSheet; i++ {
		suffix := fmt.Sprintf("~%d", i)
		cut := base
		if len(cut)+len(suffix) > maxSheetLen {
			cut = cut[:maxSheetLen-len(suffix)]
		}
		name = cut + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

// Workbook writes one sheet per figure with an X and a Y column per series,
// an index sheet, and a params sheet when p is non-nil.
func Workbook(specs []figure.Spec, p *params.Params, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", indexSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(indexSheet, "A1", &[]interface{}{"output", "title", "series", "files"}); err != nil {
		return err
	}

	used := map[string]bool{}
	for i, sp := range specs {
		sheet := SheetName(sp.Output, used)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
		if err := writeFigure(f, sheet, sp); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
		var files []string
		for _, l := range sp.Layers {
			files = append(files, l.Series.Name)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{sp.Output, sp.Title, len(sp.Layers), strings.Join(files, ", ")}
		if err := f.SetSheetRow(indexSheet, cell, &row); err != nil {
			return err
		}
	}

	if p != nil {
		if err := writeParams(f, *p); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeFigure(f *excelize.File, sheet string, sp figure.Spec) error {
	for j, l := range sp.Layers {
		xCol, yCol := 2*j+1, 2*j+2
		hx, _ := excelize.CoordinatesToCellName(xCol, 1)
		hy, _ := excelize.CoordinatesToCellName(yCol, 1)
		if err := f.SetCellValue(sheet, hx, l.Label+" X"); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, hy, l.Label+" Y"); err != nil {
			return err
		}
		for k := range l.Series.X {
			cx, _ := excelize.CoordinatesToCellName(xCol, k+2)
			cy, _ := excelize.CoordinatesToCellName(yCol, k+2)
			if err := f.SetCellValue(sheet, cx, l.Series.X[k]); err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cy, l.Series.Y[k]); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeParams(f *excelize.File, p params.Params) error {
	if _, err := f.NewSheet(paramsSheet); err != nil {
		return err
	}
	vars := p.Vars()
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(paramsSheet, cell, &[]interface{}{k, vars[k]}); err != nil {
			return err
		}
	}
	return nil
}
