package series

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Parse reads delimited numeric rows from r and returns them column-wise.
// Each line is split on commas when it contains one and on whitespace
// otherwise, so both "1,0.5" and "1 0.5" are accepted. Blank lines and lines
// starting with '#' are skipped. name is only used in errors.
func Parse(r io.Reader, name string) ([][]float64, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	var cols [][]float64
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := splitFields(line)
		if cols == nil {
			cols = make([][]float64, len(fields))
		} else if len(fields) != len(cols) {
			return nil, &ParseError{Path: name, Line: lineNo, Err: fmt.Errorf("%w: got %d fields, want %d", ErrMismatchedColumns, len(fields), len(cols))}
		}
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &ParseError{Path: name, Line: lineNo, Err: fmt.Errorf("field %d: %w", i+1, err)}
			}
			cols[i] = append(cols[i], v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Path: name, Err: err}
	}
	if len(cols) == 0 {
		return nil, &ParseError{Path: name, Err: ErrEmpty}
	}
	return cols, nil
}

func splitFields(line string) []string {
	if !strings.Contains(line, ",") {
		return strings.Fields(line)
	}
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// ReadFile opens path and parses it with Parse.
func ReadFile(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, path)
}

// Load reads a two-column file: column 1 is X, column 2 is Y.
func Load(path string, role Role) (Series, error) {
	cols, err := ReadFile(path)
	if err != nil {
		return Series{}, err
	}
	if len(cols) != 2 {
		return Series{}, &ParseError{Path: path, Err: fmt.Errorf("%w: %d columns, want 2", ErrShape, len(cols))}
	}
	return Series{Name: filepath.Base(path), Role: role, X: cols[0], Y: cols[1]}, nil
}

// LoadVector reads a file holding a single column or a single row of values,
// the layout used by hand-check files.
func LoadVector(path string) ([]float64, error) {
	cols, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return vector(path, cols)
}

func vector(path string, cols [][]float64) ([]float64, error) {
	switch {
	case len(cols) == 1:
		return cols[0], nil
	case len(cols[0]) == 1:
		out := make([]float64, len(cols))
		for i, c := range cols {
			out[i] = c[0]
		}
		return out, nil
	}
	return nil, &ParseError{Path: path, Err: fmt.Errorf("%w: %d columns x %d rows is not a vector", ErrShape, len(cols), len(cols[0]))}
}

// LoadWithAxis reads Y values from path and pairs them with a fixed axis.
// A two-column file contributes its second column, whatever its row count;
// a single column or single row contributes all of its values. The file's
// own X column, if any, is discarded.
func LoadWithAxis(path string, role Role, axis []float64) (Series, error) {
	cols, err := ReadFile(path)
	if err != nil {
		return Series{}, err
	}
	var ys []float64
	if len(cols) == 2 {
		ys = cols[1]
	} else {
		ys, err = vector(path, cols)
		if err != nil {
			return Series{}, err
		}
	}
	s := Series{Name: filepath.Base(path), Role: role, Y: ys}
	return s.WithAxis(axis)
}
