// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import "image/color"

// A Surface is a 2D drawing target with an immediate-mode API in the
// style of an HTML canvas. All coordinates are in pixels with the
// origin at the top left and y growing downward.
//
// Fill operations use the color set by SetFillColor. Stroke operations
// use the color set by SetStrokeColor and the width set by
// SetLineWidth.
type Surface interface {
	ClearRect(x, y, w, h float64)
	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)
	StrokeLine(x1, y1, x2, y2 float64)

	// FillOval fills the ellipse inscribed in the w by h rectangle
	// whose top left corner is (x, y).
	FillOval(x, y, w, h float64)

	// BeginPath starts a new path. MoveTo, BezierCurveTo, and
	// ClosePath add to it, and Fill and Stroke draw it.
	BeginPath()
	MoveTo(x, y float64)
	BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64)
	ClosePath()
	Fill()
	Stroke()

	// FillText draws text with its baseline at y, positioned
	// horizontally at x according to the text alignment.
	FillText(text string, x, y float64)

	SetFillColor(c color.Color)
	SetStrokeColor(c color.Color)
	SetLineWidth(w float64)
	SetFontSize(size float64)
	SetTextAlign(a Align)

	// Rotate rotates the coordinate system by degrees around the
	// origin. Rotations accumulate. A negative angle turns the x
	// axis toward the top of the surface. Surfaces may support only
	// multiples of 90 degrees.
	Rotate(degrees float64)

	// SetClip restricts drawing to the given rectangle until
	// ResetClip.
	SetClip(x, y, w, h float64)
	ResetClip()
}

// Align is the horizontal alignment of text relative to the x passed
// to FillText.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)
