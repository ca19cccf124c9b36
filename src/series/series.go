// Package series holds the paired numeric sequences that every figure is
// built from, together with the loaders for the delimited .dat files
// written by the analysis program.
package series

import (
	"fmt"
	"math"
)

// Role is the semantic part a series plays in a comparison figure.
type Role string

const (
	RoleData       Role = "data"
	RoleTheory     Role = "theory"
	RoleHandCheck  Role = "hand-check"
	RoleOldAverage Role = "old-average"
	RoleNewAverage Role = "new-average"
)

// Roles lists every accepted role in display order.
var Roles = []Role{RoleTheory, RoleData, RoleOldAverage, RoleNewAverage, RoleHandCheck}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, v := range Roles {
		if r == v {
			return true
		}
	}
	return false
}

// Series is a named pair of equal-length sequences.
type Series struct {
	Name string // source file name
	Role Role
	X    []float64
	Y    []float64
}

// Len returns the number of points. Only meaningful after Validate.
func (s Series) Len() int { return len(s.Y) }

// Validate checks the X/Y pairing invariant.
func (s Series) Validate() error {
	if len(s.X) != len(s.Y) {
		return fmt.Errorf("%s: %w (x=%d y=%d)", s.Name, ErrLengthMismatch, len(s.X), len(s.Y))
	}
	return nil
}

// WithAxis returns a copy of s whose X is replaced by axis.
func (s Series) WithAxis(axis []float64) (Series, error) {
	if len(axis) != len(s.Y) {
		return Series{}, fmt.Errorf("%s: %w (axis=%d y=%d)", s.Name, ErrLengthMismatch, len(axis), len(s.Y))
	}
	out := s
	out.X = append([]float64(nil), axis...)
	out.Y = append([]float64(nil), s.Y...)
	return out, nil
}

// FilterZeros drops every pair whose Y is exactly zero. Order and pairing
// are preserved and the result never shares backing arrays with s.
func FilterZeros(s Series) Series {
	out := Series{Name: s.Name, Role: s.Role}
	n := len(s.X)
	if len(s.Y) < n {
		n = len(s.Y)
	}
	out.X = make([]float64, 0, n)
	out.Y = make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if s.Y[i] == 0 {
			continue
		}
		out.X = append(out.X, s.X[i])
		out.Y = append(out.Y, s.Y[i])
	}
	return out
}

// Range returns the integers lo..hi inclusive as float64.
func Range(lo, hi int) []float64 {
	if hi < lo {
		return nil
	}
	out := make([]float64, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		out = append(out, float64(v))
	}
	return out
}

// Bounds returns min/max of X and Y across all series, ignoring NaN and Inf.
// ok is false when no finite point exists.
func Bounds(all ...Series) (minX, maxX, minY, maxY float64, ok bool) {
	minX, minY = math.MaxFloat64, math.MaxFloat64
	maxX, maxY = -math.MaxFloat64, -math.MaxFloat64
	for _, s := range all {
		n := len(s.X)
		if len(s.Y) < n {
			n = len(s.Y)
		}
		for i := 0; i < n; i++ {
			x, y := s.X[i], s.Y[i]
			if !finite(x) || !finite(y) {
				continue
			}
			ok = true
			minX = math.Min(minX, x)
			maxX = math.Max(maxX, x)
			minY = math.Min(minY, y)
			maxY = math.Max(maxY, y)
		}
	}
	return
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
