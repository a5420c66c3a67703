// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws one frame of an isotope-ratio plot onto a
// Surface.
//
// A frame is drawn in a fixed order: background, graph border, title
// and axis labels, ticks, observation glyphs, and finally points on
// top. Each tick, label, and glyph is drawn independently: if one
// fails, it is skipped, the failure is logged to Warning and returned,
// and the frame goes on.
package render

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/aclements/go-isoplot/ellipse"
	"github.com/aclements/go-isoplot/obs"
	"github.com/aclements/go-isoplot/ticks"
	"github.com/aclements/go-isoplot/view"
)

// Warning is the logger per-element rendering failures are reported
// to.
var Warning = log.New(os.Stderr, "[render] ", log.Lshortfile)

// Kind identifies the kind of element that failed to draw.
type Kind int

const (
	KindFrame Kind = iota
	KindLabel
	KindTick
	KindPoint
	KindEllipse
	KindCross
)

var kindNames = []string{
	KindFrame:   "frame",
	KindLabel:   "label",
	KindTick:    "tick",
	KindPoint:   "point",
	KindEllipse: "ellipse",
	KindCross:   "cross",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// An Error records one element that was skipped.
type Error struct {
	Kind Kind
	// Index is the observation or tick index, or -1.
	Index int
	Err   error
}

func (e *Error) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %d: %v", e.Kind, e.Index, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrInvalidView is reported when the range or viewport of a frame
// cannot be drawn. Only the background is drawn.
var ErrInvalidView = errors.New("invalid range or viewport")

var errNonFinite = errors.New("non-finite pixel coordinates")

// Input is everything one frame depends on.
type Input struct {
	Range        view.Range
	Viewport     view.Viewport
	XTicks       ticks.Set
	YTicks       ticks.Set
	Observations []obs.Observation
	Style        Style
}

// Tick mark lengths in pixels.
const (
	majorTickLen = 12
	tickLen      = 8
	minorTickLen = 4
)

type frame struct {
	s    Surface
	in   Input
	errs []error

	left, top float64
	gw, gh    float64
}

// Frame draws in onto s and returns the elements it had to skip, each
// as an *Error. It never panics because of in or s: a panic raised by s
// while drawing an element is recovered and reported as that element's
// error.
func Frame(s Surface, in Input) []error {
	v := in.Viewport
	f := &frame{
		s: s, in: in,
		left: float64(v.Left), top: float64(v.Top),
		gw: float64(v.GraphWidth()), gh: float64(v.GraphHeight()),
	}
	st := &f.in.Style

	f.try(KindFrame, -1, func() error {
		s.ClearRect(0, 0, float64(v.Width), float64(v.Height))
		s.SetFillColor(st.Background)
		s.FillRect(0, 0, float64(v.Width), float64(v.Height))
		return nil
	})
	if !v.Valid() || !in.Range.Valid() {
		f.fail(KindFrame, -1, ErrInvalidView)
		return f.errs
	}

	f.try(KindFrame, -1, func() error {
		s.SetStrokeColor(st.Foreground)
		s.SetLineWidth(1)
		s.StrokeRect(f.left, f.top, f.gw-1, f.gh-1)
		return nil
	})
	f.labels()
	f.xTicks()
	f.yTicks()

	f.try(KindFrame, -1, func() error {
		s.SetClip(f.left, f.top, f.gw, f.gh)
		return nil
	})
	switch st.Mode {
	case Points:
		f.points(true)
	case Ellipses:
		f.ellipses()
		if st.PointsVisible {
			f.points(false)
		}
	case UncertaintyBars:
		f.crosses()
		if st.PointsVisible {
			f.points(false)
		}
	default:
		f.fail(KindFrame, -1, fmt.Errorf("unknown glyph mode %v", st.Mode))
	}
	f.try(KindFrame, -1, func() error {
		s.ResetClip()
		return nil
	})
	return f.errs
}

func (f *frame) fail(kind Kind, i int, err error) {
	e := &Error{kind, i, err}
	Warning.Output(3, e.Error())
	f.errs = append(f.errs, e)
}

// try runs draw, turning a returned error or a panic into an *Error
// for element i.
func (f *frame) try(kind Kind, i int, draw func() error) {
	defer func() {
		if r := recover(); r != nil {
			f.fail(kind, i, fmt.Errorf("panic: %v", r))
		}
	}()
	if err := draw(); err != nil {
		f.fail(kind, i, err)
	}
}

func (f *frame) pixel(x, y float64) (view.Point, error) {
	p := view.MapToPixel(f.in.Range, f.in.Viewport, view.Point{X: x, Y: y})
	if !finite(p.X) || !finite(p.Y) {
		return p, errNonFinite
	}
	return p, nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func (f *frame) labels() {
	s, st := f.s, &f.in.Style
	cx := f.left + f.gw/2
	text := func(size, x, y float64, label string) {
		f.try(KindLabel, -1, func() error {
			s.SetFillColor(st.Foreground)
			s.SetFontSize(size)
			s.SetTextAlign(AlignCenter)
			s.FillText(label, x, y)
			return nil
		})
	}
	if st.Title != "" {
		text(st.TitleFontSize, cx, f.top/4, st.Title)
	}
	if st.XLabel != "" {
		text(st.LabelFontSize, cx, f.top/2, st.XLabel)
	}
	if st.YLabel != "" {
		f.try(KindLabel, -1, func() error {
			s.SetFillColor(st.Foreground)
			s.SetFontSize(st.LabelFontSize)
			s.SetTextAlign(AlignCenter)
			s.Rotate(-90)
			defer s.Rotate(90)
			// After rotating by -90 degrees, (-y, x) addresses
			// device pixel (x, y).
			s.FillText(st.YLabel, -(f.top + f.gh/2), f.left/4)
			return nil
		})
	}
}

// xTicks draws tick marks above the graph area with their labels.
func (f *frame) xTicks() {
	s, st, set := f.s, &f.in.Style, f.in.XTicks
	lo, hi := f.in.Range.DisplayX()
	y := f.top
	for _, i := range set.Within(lo, hi) {
		i, v := i, set.Values[i]
		f.try(KindTick, i, func() error {
			p, err := f.pixel(v, f.in.Range.MaxY+f.in.Range.PanY)
			if err != nil {
				return err
			}
			n := float64(tickLen)
			if set.IsMajor(i) {
				n = majorTickLen
			}
			s.SetStrokeColor(st.Foreground)
			s.SetLineWidth(1)
			s.StrokeLine(p.X, y, p.X, y-n)
			s.SetFillColor(st.Foreground)
			s.SetFontSize(st.TickFontSize)
			s.SetTextAlign(AlignCenter)
			s.FillText(set.Label(v), p.X, y-majorTickLen-4)
			return nil
		})
	}
	for _, v := range set.Minor(st.MinorTicks) {
		if v < lo || v > hi {
			continue
		}
		v := v
		f.try(KindTick, -1, func() error {
			p, err := f.pixel(v, f.in.Range.MaxY+f.in.Range.PanY)
			if err != nil {
				return err
			}
			s.SetStrokeColor(st.Foreground)
			s.StrokeLine(p.X, y, p.X, y-minorTickLen)
			return nil
		})
	}
}

// yTicks draws tick marks left of the graph area with their labels.
func (f *frame) yTicks() {
	s, st, set := f.s, &f.in.Style, f.in.YTicks
	lo, hi := f.in.Range.DisplayY()
	x := f.left
	for _, i := range set.Within(lo, hi) {
		i, v := i, set.Values[i]
		f.try(KindTick, i, func() error {
			p, err := f.pixel(f.in.Range.MinX+f.in.Range.PanX, v)
			if err != nil {
				return err
			}
			n := float64(tickLen)
			if set.IsMajor(i) {
				n = majorTickLen
			}
			s.SetStrokeColor(st.Foreground)
			s.SetLineWidth(1)
			s.StrokeLine(x, p.Y, x-n, p.Y)
			s.SetFillColor(st.Foreground)
			s.SetFontSize(st.TickFontSize)
			s.SetTextAlign(AlignRight)
			s.FillText(set.Label(v), x-majorTickLen-4, p.Y+st.TickFontSize/3)
			return nil
		})
	}
	for _, v := range set.Minor(st.MinorTicks) {
		if v < lo || v > hi {
			continue
		}
		v := v
		f.try(KindTick, -1, func() error {
			p, err := f.pixel(f.in.Range.MinX+f.in.Range.PanX, v)
			if err != nil {
				return err
			}
			s.SetStrokeColor(st.Foreground)
			s.StrokeLine(x, p.Y, x-minorTickLen, p.Y)
			return nil
		})
	}
}

// points draws a dot at each visible observation. If report is false,
// invalid observations are skipped silently because the glyph pass has
// already reported them.
func (f *frame) points(report bool) {
	s, st := f.s, &f.in.Style
	r := st.PointRadius
	for i, o := range f.in.Observations {
		i, o := i, o
		if err := o.Check(); err != nil {
			if report {
				f.fail(KindPoint, i, err)
			}
			continue
		}
		if !f.in.Range.Visible(o.X, o.Y) {
			continue
		}
		f.try(KindPoint, i, func() error {
			p, err := f.pixel(o.X, o.Y)
			if err != nil {
				return err
			}
			c := st.PointFill
			if o.Unselected {
				c = st.UnselectedFill
			}
			s.SetFillColor(withAlpha(c, st.PointOpacity))
			s.FillOval(p.X-r, p.Y-r, 2*r, 2*r)
			return nil
		})
	}
}

func (f *frame) ellipses() {
	s, st := f.s, &f.in.Style
	for i, o := range f.in.Observations {
		i, o := i, o
		if err := o.Check(); err != nil {
			f.fail(KindEllipse, i, err)
			continue
		}
		pts := ellipse.Build(o.X, o.Y, o.Rho, o.SigmaX, o.SigmaY, st.Multiplier)
		if !f.in.Range.Intersects(ellipse.Bounds(pts)) {
			continue
		}
		f.try(KindEllipse, i, func() error {
			var px [ellipse.N]view.Point
			for j, p := range pts {
				var err error
				if px[j], err = f.pixel(p.X, p.Y); err != nil {
					return err
				}
			}
			fill := st.EllipseFill
			if o.Unselected {
				fill = st.UnselectedFill
			}
			s.BeginPath()
			s.MoveTo(px[0].X, px[0].Y)
			for j := 1; j < ellipse.N; j += 3 {
				s.BezierCurveTo(px[j].X, px[j].Y, px[j+1].X, px[j+1].Y, px[j+2].X, px[j+2].Y)
			}
			s.ClosePath()
			s.SetFillColor(withAlpha(fill, 0.3*st.EllipseOpacity))
			s.Fill()
			s.SetStrokeColor(st.EllipseStroke)
			s.SetLineWidth(1)
			s.Stroke()
			return nil
		})
	}
}

func (f *frame) crosses() {
	s, st := f.s, &f.in.Style
	width := 1.0
	if st.CrossOpacity < 1 {
		width = 2
	}
	for i, o := range f.in.Observations {
		i, o := i, o
		if err := o.Check(); err != nil {
			f.fail(KindCross, i, err)
			continue
		}
		segs := Cross(o, st.Multiplier, f.in.Range)
		if len(segs) == 0 {
			continue
		}
		f.try(KindCross, i, func() error {
			var px []view.Point
			for _, seg := range segs {
				a, err := f.pixel(seg.X1, seg.Y1)
				if err != nil {
					return err
				}
				b, err := f.pixel(seg.X2, seg.Y2)
				if err != nil {
					return err
				}
				px = append(px, a, b)
			}
			c := st.CrossStroke
			if o.Unselected {
				c = st.UnselectedFill
			}
			s.SetStrokeColor(withAlpha(c, st.CrossOpacity))
			s.SetLineWidth(width)
			for j := 0; j < len(px); j += 2 {
				s.StrokeLine(px[j].X, px[j].Y, px[j+1].X, px[j+1].Y)
			}
			return nil
		})
	}
}

// A Segment is a line segment in data space.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// capFrac is the width of a cross end cap relative to its bar.
const capFrac = 0.2

// Cross returns the segments of o's uncertainty cross at multiplier m,
// clipped to the displayed bounds of r: the horizontal and vertical
// bars followed by the top, left, bottom, and right end caps.
//
// Segment endpoints beyond the displayed bounds are clamped to them,
// so a partially visible bar ends exactly at the edge. Segments lying
// entirely outside the bounds are omitted, not clamped; a segment
// that touches an edge is kept.
func Cross(o obs.Observation, m float64, r view.Range) []Segment {
	dx, dy := m*o.SigmaX, m*o.SigmaY
	cx, cy := capFrac*dx, capFrac*dy
	all := [...]Segment{
		{o.X - dx, o.Y, o.X + dx, o.Y},
		{o.X, o.Y - dy, o.X, o.Y + dy},
		{o.X - cx, o.Y + dy, o.X + cx, o.Y + dy},
		{o.X - dx, o.Y - cy, o.X - dx, o.Y + cy},
		{o.X - cx, o.Y - dy, o.X + cx, o.Y - dy},
		{o.X + dx, o.Y - cy, o.X + dx, o.Y + cy},
	}
	x0, x1 := r.DisplayX()
	y0, y1 := r.DisplayY()
	var segs []Segment
	for _, s := range all {
		// Each segment is axis-aligned, so it misses the bounds
		// exactly when its bounding box does.
		if math.Max(s.X1, s.X2) < x0 || math.Min(s.X1, s.X2) > x1 ||
			math.Max(s.Y1, s.Y2) < y0 || math.Min(s.Y1, s.Y2) > y1 {
			continue
		}
		s.X1, s.Y1 = r.Clamp(s.X1, s.Y1)
		s.X2, s.Y2 = r.Clamp(s.X2, s.Y2)
		segs = append(segs, s)
	}
	return segs
}
