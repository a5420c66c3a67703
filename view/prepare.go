// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"errors"
	"math"

	"github.com/aclements/go-isoplot/ellipse"
	"github.com/aclements/go-isoplot/obs"
	"github.com/aclements/go-moremath/stats"
)

// ErrNoData is returned by Prepare when there are no valid
// observations to take bounds from.
var ErrNoData = errors.New("no valid observations")

// Margin stretch fractions used by the standard plots.
const (
	StretchPoints = 0.2
	StretchBars   = 0.05
)

// PrepareOptions controls how Prepare derives a Range from data.
type PrepareOptions struct {
	// Stretch is the fraction of each axis' data extent added as a
	// margin on both sides.
	Stretch float64

	// IncludeEllipses widens the data extent to cover the error
	// ellipse of every observation at Multiplier.
	IncludeEllipses bool
	Multiplier      float64
}

// Prepare returns the initial Range for os: the extrema of the valid
// observations, each axis widened by o.Stretch of its extent. Invalid
// observations are ignored. An axis with zero extent is padded by a
// tenth of its magnitude (or by 1 at zero) so the result is always a
// valid Range.
func Prepare(os []obs.Observation, o PrepareOptions) (Range, error) {
	var xs, ys []float64
	for _, ob := range os {
		if !ob.Valid() {
			continue
		}
		xs = append(xs, ob.X)
		ys = append(ys, ob.Y)
		if o.IncludeEllipses {
			pts := ellipse.Build(ob.X, ob.Y, ob.Rho, ob.SigmaX, ob.SigmaY, o.Multiplier)
			x0, x1, y0, y1 := ellipse.Bounds(pts)
			xs = append(xs, x0, x1)
			ys = append(ys, y0, y1)
		}
	}
	if len(xs) == 0 {
		return Range{}, ErrNoData
	}

	var r Range
	r.MinX, r.MaxX = stretch(xs, o.Stretch)
	r.MinY, r.MaxY = stretch(ys, o.Stretch)
	if !r.Valid() {
		// Extrema overflowed after stretching.
		return Range{}, ErrNoData
	}
	return r, nil
}

func stretch(xs []float64, frac float64) (lo, hi float64) {
	lo, hi = stats.Bounds(xs)
	if hi > lo {
		pad := frac * (hi - lo)
		return lo - pad, hi + pad
	}
	pad := math.Abs(lo) * 0.1
	if pad == 0 {
		pad = 1
	}
	return lo - pad, hi + pad
}
