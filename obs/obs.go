// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obs describes isotope-ratio observations: a measured (x, y)
// point, the 1σ absolute uncertainty of each coordinate, and the
// correlation coefficient between the two uncertainties.
//
// Observations are plain values. A slice of them is the input to one
// render pass and is never modified by the plotting packages.
package obs

import (
	"errors"
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
)

// An Observation is a single measured point with uncertainties.
type Observation struct {
	X, Y float64

	// SigmaX and SigmaY are 1σ absolute uncertainties. Use
	// Normalize to convert from other input formats.
	SigmaX, SigmaY float64

	// Rho is the correlation coefficient between the X and Y
	// uncertainties, in [-1, 1].
	Rho float64

	// Unselected observations are still drawn, but in a neutral
	// color.
	Unselected bool
}

// ErrInvalid is wrapped by every InvalidError.
var ErrInvalid = errors.New("invalid observation")

// InvalidError reports an observation field that cannot be plotted.
type InvalidError struct {
	Index int // Index in the input slice, or -1 if unknown.
	Field string
	Value float64
}

func (e *InvalidError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid observation: %s = %v", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid observation %d: %s = %v", e.Index, e.Field, e.Value)
}

func (e *InvalidError) Unwrap() error {
	return ErrInvalid
}

func isFinite(x float64) bool {
	return !(math.IsNaN(x) || math.IsInf(x, 0))
}

// Check returns an *InvalidError if any field of o is NaN or
// infinite, or if |Rho| > 1. Otherwise it returns nil.
func (o Observation) Check() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"x", o.X}, {"y", o.Y},
		{"sigma_x", o.SigmaX}, {"sigma_y", o.SigmaY},
		{"rho", o.Rho},
	} {
		if !isFinite(f.v) {
			return &InvalidError{-1, f.name, f.v}
		}
	}
	if math.Abs(o.Rho) > 1 {
		return &InvalidError{-1, "rho", o.Rho}
	}
	return nil
}

// Valid reports whether o passes Check.
func (o Observation) Valid() bool {
	return o.Check() == nil
}

// CheckAll checks every observation and returns one error per invalid
// observation, with Index filled in.
func CheckAll(os []Observation) []error {
	var errs []error
	for i, o := range os {
		if err := o.Check(); err != nil {
			err.(*InvalidError).Index = i
			errs = append(errs, err)
		}
	}
	return errs
}

// Bounds returns the extrema of the X and Y coordinates of the valid
// observations in os. ok is false if there are no valid observations.
func Bounds(os []Observation) (minX, maxX, minY, maxY float64, ok bool) {
	xs := make([]float64, 0, len(os))
	ys := make([]float64, 0, len(os))
	for _, o := range os {
		if !o.Valid() {
			continue
		}
		xs = append(xs, o.X)
		ys = append(ys, o.Y)
	}
	if len(xs) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, maxX = stats.Bounds(xs)
	minY, maxY = stats.Bounds(ys)
	return minX, maxX, minY, maxY, true
}
