// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-isoplot/obs"
	"github.com/aclements/go-isoplot/view"
)

// observationsToTable returns a table of os with 1σ absolute
// uncertainties, whether each observation is plottable, and the pixel
// position it is drawn at in r on v.
func observationsToTable(os []obs.Observation, r view.Range, v view.Viewport) *table.Table {
	n := len(os)
	xs, ys := make([]float64, n), make([]float64, n)
	sxs, sys, rhos := make([]float64, n), make([]float64, n), make([]float64, n)
	pxs, pys := make([]float64, n), make([]float64, n)
	status := make([]string, n)
	for i, o := range os {
		xs[i], ys[i] = o.X, o.Y
		sxs[i], sys[i], rhos[i] = o.SigmaX, o.SigmaY, o.Rho
		p := view.MapToPixel(r, v, view.Point{X: o.X, Y: o.Y})
		pxs[i], pys[i] = p.X, p.Y

		switch err := o.Check(); {
		case err != nil:
			status[i] = err.Error()
		case !r.Visible(o.X, o.Y):
			status[i] = "hidden"
		case o.Unselected:
			status[i] = "unselected"
		default:
			status[i] = "ok"
		}
	}

	return new(table.Builder).
		Add(obs.ColX, xs).
		Add(obs.ColY, ys).
		Add(obs.ColSigmaX, sxs).
		Add(obs.ColSigmaY, sys).
		Add(obs.ColRho, rhos).
		Add("pixel x", pxs).
		Add("pixel y", pys).
		Add("status", status).
		Done()
}
