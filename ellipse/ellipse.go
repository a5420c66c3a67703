// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ellipse computes error ellipses for correlated (x, y)
// uncertainties.
//
// An ellipse is returned as the 13 control points of a closed path of
// four cubic Bezier segments: point 0 is the start, and each following
// triple (1-3, 4-6, 7-9, 10-12) is one segment's two handles and its
// end point. Point 12 equals point 0.
package ellipse

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/gonum/matrix/mat64"
)

// N is the number of control points in an ellipse path.
const N = 13

// A Point is a location in data space.
type Point struct {
	X, Y float64
}

// kappa is the handle length that best approximates a quarter circle
// with one cubic Bezier segment.
var kappa = 4.0 / 3.0 * (math.Sqrt2 - 1)

// unitCircle holds the control points of a unit circle, one per row,
// starting at (1, 0) and running counter-clockwise.
var unitCircle = mat64.NewDense(N, 2, []float64{
	1, 0,
	1, kappa,
	kappa, 1,
	0, 1,
	-kappa, 1,
	-1, kappa,
	-1, 0,
	-1, -kappa,
	-kappa, -1,
	0, -1,
	kappa, -1,
	1, -kappa,
	1, 0,
})

// rhoLimit keeps sqrt(1-ρ²) strictly positive.
const rhoLimit = 1 - 1e-9

// Build returns the control points of the error ellipse centered at
// (x, y) for 1σ uncertainties sigmaX and sigmaY with correlation rho,
// scaled by multiplier.
//
// The unit circle is mapped through the upper Cholesky factor of the
// covariance matrix,
//
//	R = [σx  ρσy          ]
//	    [0   σy·sqrt(1-ρ²)]
//
// so that the result is the multiplier-σ contour of the bivariate
// normal distribution. rho is clamped just inside [-1, 1] and a NaN rho
// is treated as 0, so |rho| near 1 collapses the ellipse toward a line
// segment rather than producing NaNs.
func Build(x, y, rho, sigmaX, sigmaY, multiplier float64) [N]Point {
	switch {
	case math.IsNaN(rho):
		rho = 0
	case rho > rhoLimit:
		rho = rhoLimit
	case rho < -rhoLimit:
		rho = -rhoLimit
	}
	r := mat64.NewDense(2, 2, []float64{
		sigmaX, rho * sigmaY,
		0, sigmaY * math.Sqrt(1-rho*rho),
	})

	var p mat64.Dense
	p.Mul(unitCircle, r)

	var pts [N]Point
	for i := range pts {
		pts[i] = Point{
			X: multiplier*p.At(i, 0) + x,
			Y: multiplier*p.At(i, 1) + y,
		}
	}
	return pts
}

// Bounds returns the extremes of the control points. Because the
// Bezier handles lie outside the curve, this is a slightly loose
// bounding box of the drawn ellipse.
func Bounds(pts [N]Point) (minX, maxX, minY, maxY float64) {
	xs, ys := make([]float64, N), make([]float64, N)
	for i, p := range pts {
		xs[i], ys[i] = p.X, p.Y
	}
	minX, maxX = stats.Bounds(xs)
	minY, maxY = stats.Bounds(ys)
	return
}

// Flatten approximates the ellipse path by a closed polyline, sampling
// each Bezier segment at steps evenly spaced parameter values. The
// result starts and ends at pts[0]. steps < 1 is treated as 1.
func Flatten(pts [N]Point, steps int) []Point {
	out := make([]Point, 1, 1+4*max(steps, 1))
	out[0] = pts[0]
	for seg := 0; seg < 4; seg++ {
		out = FlattenCubic(out, pts[3*seg], pts[3*seg+1], pts[3*seg+2], pts[3*seg+3], steps)
	}
	return out
}

// FlattenCubic appends to dst the points of the cubic Bezier segment
// p0 p1 p2 p3 at steps evenly spaced parameter values in (0, 1]. p0
// itself is not appended. steps < 1 is treated as 1.
func FlattenCubic(dst []Point, p0, p1, p2, p3 Point, steps int) []Point {
	if steps < 1 {
		steps = 1
	}
	for _, t := range vec.Linspace(0, 1, steps+1)[1:] {
		dst = append(dst, cubic(p0, p1, p2, p3, t))
	}
	return dst
}

func cubic(p0, p1, p2, p3 Point, t float64) Point {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}
