// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rastersurf implements render.Surface on an in-memory RGBA
// image.
//
// Paths are drawn with a gonum/plot vgimg canvas. Geometry is
// flattened and clipped to a little beyond the clip rectangle before
// it reaches the rasterizer, so arbitrarily distant coordinates are
// safe; the exact clip is applied by the canvas's mask.
package rastersurf

import (
	"image"
	"image/color"
	"io"
	"math"

	"git.sr.ht/~sbinet/gg"
	"github.com/aclements/go-isoplot/ellipse"
	"github.com/aclements/go-isoplot/render"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"gonum.org/v1/plot/vg"
	vgdraw "gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// At 72 DPI one vg.Length is one pixel.
const dpi = 72

// A cubic curve is flattened into about one segment per curveStepLen
// pixels of its control polygon.
const (
	minCurveSteps = 8
	maxCurveSteps = 256
	curveStepLen  = 4
)

// Surface draws into an *image.RGBA.
type Surface struct {
	img *image.RGBA
	ctx *gg.Context
	c   *vgimg.Canvas

	// m maps user coordinates to device pixels. It is a rotation by
	// deg degrees.
	m   gg.Matrix
	deg float64

	fill, stroke color.Color
	lineWidth    float64
	fontSize     float64
	align        render.Align
	clip         image.Rectangle

	// path holds the subpaths of the current path, in device
	// coordinates.
	path [][]ellipse.Point
}

var _ render.Surface = (*Surface)(nil)

// New returns a Surface backed by a transparent width by height image.
func New(width, height int) *Surface {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	ctx := gg.NewContextForRGBA(img)
	ctx.InvertY()
	ctx.SetLineCapButt()
	c := vgimg.NewWith(vgimg.UseImageWithContext(img, ctx), vgimg.UseDPI(dpi))
	// NewWith paints a white background.
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	return &Surface{
		img:       img,
		ctx:       ctx,
		c:         c,
		m:         gg.Identity(),
		fill:      color.Black,
		stroke:    color.Black,
		lineWidth: 1,
		fontSize:  10,
		clip:      img.Bounds(),
	}
}

// Image returns the image s draws into.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// WritePNG encodes the current image to w as a PNG.
func (s *Surface) WritePNG(w io.Writer) error {
	_, err := vgimg.PngCanvas{Canvas: s.c}.WriteTo(w)
	return err
}

func (s *Surface) apply(x, y float64) ellipse.Point {
	dx, dy := s.m.TransformPoint(x, y)
	return ellipse.Point{X: dx, Y: dy}
}

// vgPoints converts device points to the canvas's y-up coordinates.
func (s *Surface) vgPoints(ps []ellipse.Point) []vg.Point {
	h := float64(s.img.Bounds().Dy())
	out := make([]vg.Point, len(ps))
	for i, p := range ps {
		out[i] = vg.Point{X: vg.Length(p.X), Y: vg.Length(h - p.Y)}
	}
	return out
}

func (s *Surface) Rotate(degrees float64) {
	s.deg = math.Mod(s.deg+degrees, 360)
	if s.deg == 0 {
		s.m = gg.Identity()
		return
	}
	s.m = gg.Rotate(gg.Radians(s.deg))
}

func (s *Surface) rect(x, y, w, h float64) []ellipse.Point {
	return []ellipse.Point{
		s.apply(x, y), s.apply(x+w, y), s.apply(x+w, y+h), s.apply(x, y+h),
	}
}

// bounds returns the smallest pixel rectangle covering ps.
func bounds(ps []ellipse.Point) image.Rectangle {
	if len(ps) == 0 || !finite(ps) {
		return image.Rectangle{}
	}
	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)
	for _, p := range ps {
		x0, x1 = math.Min(x0, p.X), math.Max(x1, p.X)
		y0, y1 = math.Min(y0, p.Y), math.Max(y1, p.Y)
	}
	// Clamp before converting so distant rectangles stay representable.
	lim := float64(1 << 30)
	c := func(v float64) float64 { return math.Max(-lim, math.Min(lim, v)) }
	return image.Rect(int(math.Floor(c(x0))), int(math.Floor(c(y0))), int(math.Ceil(c(x1))), int(math.Ceil(c(y1))))
}

func (s *Surface) ClearRect(x, y, w, h float64) {
	r := bounds(s.rect(x, y, w, h)).Intersect(s.clip)
	draw.Draw(s.img, r, image.Transparent, image.Point{}, draw.Src)
}

func (s *Surface) FillRect(x, y, w, h float64) {
	s.fillPolys([][]ellipse.Point{s.rect(x, y, w, h)}, s.fill)
}

func (s *Surface) StrokeRect(x, y, w, h float64) {
	p := s.rect(x, y, w, h)
	s.strokePolys([][]ellipse.Point{append(p, p[0])}, s.stroke)
}

func (s *Surface) StrokeLine(x1, y1, x2, y2 float64) {
	s.strokePolys([][]ellipse.Point{{s.apply(x1, y1), s.apply(x2, y2)}}, s.stroke)
}

func (s *Surface) FillOval(x, y, w, h float64) {
	pts := ellipse.Build(x+w/2, y+h/2, 0, w/2, h/2, 1)
	poly := ellipse.Flatten(pts, curveSteps(pts[0], pts[1], pts[2], pts[3]))
	for i, q := range poly {
		poly[i] = s.apply(q.X, q.Y)
	}
	s.fillPolys([][]ellipse.Point{poly}, s.fill)
}

func (s *Surface) BeginPath() {
	s.path = nil
}

func (s *Surface) MoveTo(x, y float64) {
	s.path = append(s.path, []ellipse.Point{s.apply(x, y)})
}

func (s *Surface) current() *[]ellipse.Point {
	if len(s.path) == 0 {
		return nil
	}
	return &s.path[len(s.path)-1]
}

func (s *Surface) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	sp := s.current()
	if sp == nil {
		// Like a canvas, a curve with no current point starts at
		// its first control point.
		s.MoveTo(c1x, c1y)
		sp = s.current()
	}
	p0 := (*sp)[len(*sp)-1]
	p1, p2, p3 := s.apply(c1x, c1y), s.apply(c2x, c2y), s.apply(x, y)
	*sp = ellipse.FlattenCubic(*sp, p0, p1, p2, p3, curveSteps(p0, p1, p2, p3))
}

func (s *Surface) ClosePath() {
	sp := s.current()
	if sp == nil || len(*sp) == 0 {
		return
	}
	first := (*sp)[0]
	*sp = append(*sp, first)
	s.path = append(s.path, []ellipse.Point{first})
}

func (s *Surface) Fill() {
	s.fillPolys(s.path, s.fill)
}

func (s *Surface) Stroke() {
	s.strokePolys(s.path, s.stroke)
}

func (s *Surface) SetFillColor(c color.Color)   { s.fill = c }
func (s *Surface) SetStrokeColor(c color.Color) { s.stroke = c }
func (s *Surface) SetLineWidth(w float64)       { s.lineWidth = w }
func (s *Surface) SetFontSize(size float64)     { s.fontSize = size }
func (s *Surface) SetTextAlign(a render.Align)  { s.align = a }

// SetClip restricts drawing to the pixels covered by the bounding box
// of the transformed rectangle.
func (s *Surface) SetClip(x, y, w, h float64) {
	s.clip = bounds(s.rect(x, y, w, h)).Intersect(s.img.Bounds())
	s.ctx.ResetClip()
	if s.clip == s.img.Bounds() {
		return
	}
	r := s.clip
	s.ctx.Push()
	s.ctx.Identity()
	s.ctx.ClearPath()
	s.ctx.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	s.ctx.Clip()
	s.ctx.Pop()
}

func (s *Surface) ResetClip() {
	s.clip = s.img.Bounds()
	s.ctx.ResetClip()
}

func (s *Surface) FillText(text string, x, y float64) {
	if s.clip.Empty() || text == "" {
		return
	}
	face := faceFor(s.fontSize)
	adv := float64(font.MeasureString(face, text)) / 64
	switch s.align {
	case render.AlignCenter:
		x -= adv / 2
	case render.AlignRight:
		x -= adv
	}
	p := s.apply(x, y)
	if !finite([]ellipse.Point{p}) {
		return
	}
	if s.deg == 0 {
		p.X, p.Y = math.Round(p.X), math.Round(p.Y)
	}
	s.ctx.Push()
	s.ctx.Identity()
	s.ctx.Translate(p.X, p.Y)
	s.ctx.Rotate(gg.Radians(s.deg))
	s.ctx.SetFontFace(face)
	s.ctx.SetColor(s.fill)
	s.ctx.DrawString(text, 0, 0)
	s.ctx.Pop()
}

// curveSteps returns how many segments to flatten the cubic p0 p1 p2
// p3 into.
func curveSteps(p0, p1, p2, p3 ellipse.Point) int {
	l := math.Hypot(p1.X-p0.X, p1.Y-p0.Y) +
		math.Hypot(p2.X-p1.X, p2.Y-p1.Y) +
		math.Hypot(p3.X-p2.X, p3.Y-p2.Y)
	n := l / curveStepLen
	switch {
	case !(n < maxCurveSteps):
		return maxCurveSteps
	case n < minCurveSteps:
		return minCurveSteps
	}
	return int(n)
}

func finite(ps []ellipse.Point) bool {
	for _, p := range ps {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}

// canvas returns a drawing area covering the clip rectangle plus pad
// pixels on every side.
func (s *Surface) canvas(pad float64) vgdraw.Canvas {
	h := float64(s.img.Bounds().Dy())
	r := s.clip
	return vgdraw.Canvas{
		Canvas: s.c,
		Rectangle: vg.Rectangle{
			Min: vg.Point{X: vg.Length(float64(r.Min.X) - pad), Y: vg.Length(h - float64(r.Max.Y) - pad)},
			Max: vg.Point{X: vg.Length(float64(r.Max.X) + pad), Y: vg.Length(h - float64(r.Min.Y) + pad)},
		},
	}
}

// fillPolys fills the union of the closed polygons ps with c.
func (s *Surface) fillPolys(ps [][]ellipse.Point, c color.Color) {
	if s.clip.Empty() {
		return
	}
	dc := s.canvas(1)
	var p vg.Path
	for _, poly := range ps {
		if len(poly) < 3 || !finite(poly) {
			continue
		}
		q := dc.ClipPolygonXY(s.vgPoints(poly))
		if len(q) < 3 {
			continue
		}
		p.Move(q[0])
		for _, v := range q[1:] {
			p.Line(v)
		}
		p.Close()
	}
	if len(p) == 0 {
		return
	}
	s.c.SetColor(c)
	s.c.Fill(p)
}

// strokePolys strokes the open polylines ps with c and butt caps.
func (s *Surface) strokePolys(ps [][]ellipse.Point, c color.Color) {
	if s.clip.Empty() || !(s.lineWidth > 0) || math.IsInf(s.lineWidth, 0) {
		return
	}
	dc := s.canvas(s.lineWidth + 2)
	var lines [][]vg.Point
	for _, poly := range ps {
		if len(poly) >= 2 && finite(poly) {
			lines = append(lines, s.vgPoints(poly))
		}
	}
	dc.StrokeLines(vgdraw.LineStyle{Color: c, Width: vg.Length(s.lineWidth)}, dc.ClipLinesXY(lines...)...)
}
