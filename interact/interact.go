// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interact implements drag-to-pan and wheel-to-zoom for a plot.
//
// The controller is a pure transition function: Reduce takes the
// current State and one input Event and returns the next State. Callers
// own the State and must apply events one at a time, in arrival order.
package interact

import (
	"fmt"
	"math"

	"github.com/aclements/go-isoplot/ticks"
	"github.com/aclements/go-isoplot/view"
)

// Damping scales the data-space distance a drag covers before it is
// added to the pan offset.
const Damping = 0.05

// DefaultZoom is the zoom factor of a new State.
const DefaultZoom = 1.05

// ClampZoom returns z limited to the open interval (1, 2). z <= 1
// becomes 1.05 and z >= 2 becomes 1.95. NaN becomes DefaultZoom.
func ClampZoom(z float64) float64 {
	switch {
	case math.IsNaN(z):
		return DefaultZoom
	case z <= 1:
		return 1.05
	case z >= 2:
		return 1.95
	}
	return z
}

// Mode is the drag state of the controller.
type Mode int

const (
	Idle Mode = iota
	Dragging
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// AnchorMode selects how a drag measures pointer movement.
type AnchorMode int

const (
	// AnchorIncremental moves the anchor to the pointer after
	// every move, so each move pans by the distance since the
	// previous one.
	AnchorIncremental AnchorMode = iota

	// AnchorFixed keeps the anchor where the drag started, so each
	// move pans by the whole distance dragged so far.
	AnchorFixed
)

var anchorNames = []string{
	AnchorIncremental: "incremental",
	AnchorFixed:       "fixed",
}

func (m AnchorMode) String() string {
	if m < 0 || int(m) >= len(anchorNames) {
		return fmt.Sprintf("AnchorMode(%d)", int(m))
	}
	return anchorNames[m]
}

// ParseAnchorMode parses an anchor mode name as produced by
// AnchorMode.String.
func ParseAnchorMode(s string) (AnchorMode, error) {
	for i, name := range anchorNames {
		if s == name {
			return AnchorMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown anchor mode %q (want incremental or fixed)", s)
}

// ZoomMode selects what a scroll scales around.
type ZoomMode int

const (
	// ZoomOrigin multiplies all four range bounds by the zoom
	// factor, scaling around data-space (0, 0).
	ZoomOrigin ZoomMode = iota

	// ZoomCursor scales the displayed window around the data point
	// under the pointer, which stays fixed on screen.
	ZoomCursor
)

var zoomNames = []string{
	ZoomOrigin: "origin",
	ZoomCursor: "cursor",
}

func (m ZoomMode) String() string {
	if m < 0 || int(m) >= len(zoomNames) {
		return fmt.Sprintf("ZoomMode(%d)", int(m))
	}
	return zoomNames[m]
}

// ParseZoomMode parses a zoom mode name as produced by ZoomMode.String.
func ParseZoomMode(s string) (ZoomMode, error) {
	for i, name := range zoomNames {
		if s == name {
			return ZoomMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown zoom mode %q (want origin or cursor)", s)
}

// State is the complete state of a zoom/pan controller.
type State struct {
	Range view.Range
	Mode  Mode

	// Anchor is the pixel position the current drag is measured
	// from. It is meaningful only while Dragging.
	Anchor view.Point

	// Zoom is the zoom factor, in (1, 2). A scroll with positive
	// DeltaY multiplies the range by Zoom; a negative DeltaY
	// multiplies it by ceil(Zoom)-Zoom.
	Zoom float64

	AnchorMode AnchorMode
	ZoomMode   ZoomMode
}

// NewState returns an Idle state showing r with the default zoom
// factor.
func NewState(r view.Range) State {
	return State{Range: r, Zoom: DefaultZoom}
}

// An Event is a pointer or scroll input. Coordinates are in pixels.
type Event interface {
	isEvent()
}

type PointerDown struct{ X, Y float64 }
type PointerMove struct{ X, Y float64 }
type PointerUp struct{ X, Y float64 }

// Scroll is a wheel event at (X, Y). DeltaY < 0 shrinks the range
// (zooms in); DeltaY > 0 grows it.
type Scroll struct{ X, Y, DeltaY float64 }

func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent()   {}
func (Scroll) isEvent()      {}

// Reduce applies e to s and returns the new state and whether its
// Range changed. Events outside v's graph area are ignored, except
// PointerUp, which always ends a drag. A transition that would make the
// Range invalid is dropped, as is a zoom in that would leave the
// displayed window too narrow to label at its magnitude.
func Reduce(s State, v view.Viewport, e Event) (State, bool) {
	switch e := e.(type) {
	case PointerDown:
		if !v.Contains(e.X, e.Y) {
			return s, false
		}
		s.Mode = Dragging
		s.Anchor = view.Point{X: e.X, Y: e.Y}
		return s, false

	case PointerMove:
		if s.Mode != Dragging || !v.Contains(e.X, e.Y) {
			return s, false
		}
		cur := view.Point{X: e.X, Y: e.Y}
		from := view.MapToData(s.Range, v, s.Anchor)
		to := view.MapToData(s.Range, v, cur)
		r := s.Range
		r.PanX += Damping * (from.X - to.X)
		r.PanY += Damping * (from.Y - to.Y)
		if s.AnchorMode == AnchorIncremental {
			s.Anchor = cur
		}
		return s.withRange(r)

	case PointerUp:
		s.Mode = Idle
		return s, false

	case Scroll:
		if !v.Contains(e.X, e.Y) || e.DeltaY == 0 || math.IsNaN(e.DeltaY) {
			return s, false
		}
		z := ClampZoom(s.Zoom)
		f := z
		if e.DeltaY < 0 {
			f = math.Ceil(z) - z
		}
		var r view.Range
		if s.ZoomMode == ZoomCursor {
			c := view.MapToData(s.Range, v, view.Point{X: e.X, Y: e.Y})
			r = scaleAround(s.Range, c, f)
		} else {
			r = s.Range.Scale(f)
		}
		if f < 1 && !resolvable(r) {
			return s, false
		}
		return s.withRange(r)
	}
	return s, false
}

// minResolvedSteps is the number of the finest tick steps a displayed
// window must span.
const minResolvedSteps = 4

// resolvable reports whether both displayed axes of r are wide enough
// to place distinct ticks.
func resolvable(r view.Range) bool {
	x0, x1 := r.DisplayX()
	y0, y1 := r.DisplayY()
	return x1-x0 >= minResolvedSteps*ticks.Resolution(x0, x1) &&
		y1-y0 >= minResolvedSteps*ticks.Resolution(y0, y1)
}

func (s State) withRange(r view.Range) (State, bool) {
	if !r.Valid() || r == s.Range {
		return s, false
	}
	s.Range = r
	return s, true
}

// scaleAround scales the displayed window of r by f around data point
// c, leaving the pan offset unchanged.
func scaleAround(r view.Range, c view.Point, f float64) view.Range {
	x0, x1 := r.DisplayX()
	y0, y1 := r.DisplayY()
	r.MinX = c.X + (x0-c.X)*f - r.PanX
	r.MaxX = c.X + (x1-c.X)*f - r.PanX
	r.MinY = c.Y + (y0-c.Y)*f - r.PanY
	r.MaxY = c.Y + (y1-c.Y)*f - r.PanY
	return r
}
