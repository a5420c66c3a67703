// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package view maps between the data space of a plot and the pixels of
// its drawing surface.
//
// A Range is the data-space window being shown and a Viewport is the
// pixel rectangle it is projected into. Both are plain values; the
// mapping functions are pure.
package view

import (
	"math"

	"github.com/aclements/go-moremath/scale"
)

// Default margins, in pixels, to the left of and above the graph area.
// Axis labels and tick labels are drawn in the margins.
const (
	DefaultLeft = 75
	DefaultTop  = 75
)

// A Viewport is a drawing surface of Width by Height pixels whose graph
// area starts Left pixels from the left edge and Top pixels from the
// top edge and extends to the right and bottom edges.
type Viewport struct {
	Width, Height int
	Left, Top     int
}

// NewViewport returns a width by height viewport with the default
// margins.
func NewViewport(width, height int) Viewport {
	return Viewport{width, height, DefaultLeft, DefaultTop}
}

// GraphWidth returns the width of the graph area in pixels.
func (v Viewport) GraphWidth() int { return v.Width - v.Left }

// GraphHeight returns the height of the graph area in pixels.
func (v Viewport) GraphHeight() int { return v.Height - v.Top }

// Valid reports whether the graph area has positive size.
func (v Viewport) Valid() bool {
	return v.GraphWidth() > 0 && v.GraphHeight() > 0 && v.Left >= 0 && v.Top >= 0
}

// Contains reports whether pixel (px, py) is inside the graph area,
// edges included.
func (v Viewport) Contains(px, py float64) bool {
	return px >= float64(v.Left) && px <= float64(v.Left+v.GraphWidth()) &&
		py >= float64(v.Top) && py <= float64(v.Top+v.GraphHeight())
}

// A Range is the data-space window of a plot. The displayed bounds are
// MinX+PanX .. MaxX+PanX horizontally and MinY+PanY .. MaxY+PanY
// vertically. A valid Range has MaxX > MinX and MaxY > MinY.
type Range struct {
	MinX, MaxX float64
	MinY, MaxY float64
	PanX, PanY float64
}

// DisplayX returns the displayed X bounds.
func (r Range) DisplayX() (lo, hi float64) {
	return r.MinX + r.PanX, r.MaxX + r.PanX
}

// DisplayY returns the displayed Y bounds.
func (r Range) DisplayY() (lo, hi float64) {
	return r.MinY + r.PanY, r.MaxY + r.PanY
}

// Valid reports whether r's displayed bounds are finite and non-empty.
func (r Range) Valid() bool {
	x0, x1 := r.DisplayX()
	y0, y1 := r.DisplayY()
	for _, v := range []float64{x0, x1, y0, y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return x1 > x0 && y1 > y0
}

// Visible reports whether data point (x, y) lies strictly inside the
// displayed bounds.
func (r Range) Visible(x, y float64) bool {
	x0, x1 := r.DisplayX()
	y0, y1 := r.DisplayY()
	return x > x0 && x < x1 && y > y0 && y < y1
}

// Clamp returns (x, y) moved to the nearest point of the displayed
// bounds.
func (r Range) Clamp(x, y float64) (float64, float64) {
	x0, x1 := r.DisplayX()
	y0, y1 := r.DisplayY()
	return math.Min(math.Max(x, x0), x1), math.Min(math.Max(y, y0), y1)
}

// Intersects reports whether the rectangle [minX, maxX] x [minY, maxY]
// overlaps the displayed bounds.
func (r Range) Intersects(minX, maxX, minY, maxY float64) bool {
	x0, x1 := r.DisplayX()
	y0, y1 := r.DisplayY()
	return maxX >= x0 && minX <= x1 && maxY >= y0 && minY <= y1
}

// Scale returns r with all four bounds multiplied by f. The pan offset
// is unchanged.
func (r Range) Scale(f float64) Range {
	r.MinX *= f
	r.MaxX *= f
	r.MinY *= f
	r.MaxY *= f
	return r
}

// A Point is a location in data space or pixel space.
type Point struct {
	X, Y float64
}

// scales returns the unit scales of r's displayed bounds. The Y scale
// is reversed because pixel rows grow downward.
func (r Range) scales() (sx, sy scale.Linear) {
	x0, x1 := r.DisplayX()
	y0, y1 := r.DisplayY()
	return scale.Linear{Min: x0, Max: x1}, scale.Linear{Min: y1, Max: y0}
}

// MapToPixel maps data point p to pixel coordinates on v.
func MapToPixel(r Range, v Viewport, p Point) Point {
	sx, sy := r.scales()
	return Point{
		X: sx.Map(p.X)*float64(v.GraphWidth()) + float64(v.Left),
		Y: sy.Map(p.Y)*float64(v.GraphHeight()) + float64(v.Top),
	}
}

// MapToData maps pixel point p on v to data coordinates. It is the
// inverse of MapToPixel.
func MapToData(r Range, v Viewport, p Point) Point {
	sx, sy := r.scales()
	return Point{
		X: sx.Unmap((p.X - float64(v.Left)) / float64(v.GraphWidth())),
		Y: sy.Unmap((p.Y - float64(v.Top)) / float64(v.GraphHeight())),
	}
}
