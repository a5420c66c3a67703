// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package svgsurf implements render.Surface by writing SVG.
package svgsurf

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/aclements/go-isoplot/render"
	"github.com/ajstarks/svgo"
)

// Surface writes drawing operations as SVG elements. Call Close to end
// the document.
type Surface struct {
	svg *svg.SVG

	fill, stroke color.Color
	lineWidth    float64
	fontSize     float64
	align        render.Align
	rotate       float64

	path    strings.Builder
	clipped bool
	nextID  int
}

var _ render.Surface = (*Surface)(nil)

// New starts a width by height SVG document on w.
func New(w io.Writer, width, height int) *Surface {
	s := &Surface{
		svg:       svg.New(w),
		fill:      color.Black,
		stroke:    color.Black,
		lineWidth: 1,
		fontSize:  10,
	}
	s.svg.Start(width, height, `font-family="Go,Helvetica,Arial,sans-serif"`)
	return s
}

// Close ends any clip group and the SVG document.
func (s *Surface) Close() {
	s.ResetClip()
	s.svg.End()
}

// num formats a pixel coordinate to two decimal places, without
// trailing zeros.
func num(x float64) string {
	return strconv.FormatFloat(math.Round(x*100)/100, 'f', -1, 64)
}

// cssPaint returns the CSS style declaring color c for property prop.
func cssPaint(prop string, c color.Color) string {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return prop + ":none"
	}
	if a != 0xffff {
		// Undo alpha pre-multiplication.
		r = r * 0xffff / a
		g = g * 0xffff / a
		b = b * 0xffff / a
	}
	css := fmt.Sprintf("%s:#%02x%02x%02x", prop, r>>8, g>>8, b>>8)
	if a != 0xffff {
		// SVG 1.1 has no rgba colors.
		css += ";" + prop + "-opacity:" + strconv.FormatFloat(float64(a)/0xffff, 'g', 3, 64)
	}
	return css
}

func (s *Surface) fillStyle() string {
	return cssPaint("fill", s.fill) + ";stroke:none"
}

func (s *Surface) strokeStyle() string {
	return "fill:none;" + cssPaint("stroke", s.stroke) + ";stroke-width:" + num(s.lineWidth)
}

// attrs returns the extra attributes of every element, which carry the
// current rotation.
func (s *Surface) attrs(style string) []string {
	a := []string{style}
	if s.rotate != 0 {
		a = append(a, `transform="rotate(`+num(s.rotate)+`)"`)
	}
	return a
}

func rectPath(x, y, w, h float64) string {
	return "M" + num(x) + " " + num(y) + "h" + num(w) + "v" + num(h) + "h" + num(-w) + "z"
}

// ClearRect does nothing. An SVG document starts out transparent and
// later elements cannot erase earlier ones.
func (s *Surface) ClearRect(x, y, w, h float64) {}

func (s *Surface) FillRect(x, y, w, h float64) {
	s.svg.Path(rectPath(x, y, w, h), s.attrs(s.fillStyle())...)
}

func (s *Surface) StrokeRect(x, y, w, h float64) {
	s.svg.Path(rectPath(x, y, w, h), s.attrs(s.strokeStyle())...)
}

func (s *Surface) StrokeLine(x1, y1, x2, y2 float64) {
	d := "M" + num(x1) + " " + num(y1) + "L" + num(x2) + " " + num(y2)
	s.svg.Path(d, s.attrs(s.strokeStyle())...)
}

func (s *Surface) FillOval(x, y, w, h float64) {
	rx, ry := w/2, h/2
	arc := "a" + num(rx) + " " + num(ry) + " 0 1 0 "
	d := "M" + num(x) + " " + num(y+ry) +
		arc + num(w) + " 0" +
		arc + num(-w) + " 0z"
	s.svg.Path(d, s.attrs(s.fillStyle())...)
}

func (s *Surface) BeginPath() {
	s.path.Reset()
}

func (s *Surface) MoveTo(x, y float64) {
	fmt.Fprintf(&s.path, "M%s %s", num(x), num(y))
}

func (s *Surface) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	fmt.Fprintf(&s.path, "C%s %s %s %s %s %s", num(c1x), num(c1y), num(c2x), num(c2y), num(x), num(y))
}

func (s *Surface) ClosePath() {
	s.path.WriteString("z")
}

func (s *Surface) Fill() {
	if s.path.Len() > 0 {
		s.svg.Path(s.path.String(), s.attrs(s.fillStyle())...)
	}
}

func (s *Surface) Stroke() {
	if s.path.Len() > 0 {
		s.svg.Path(s.path.String(), s.attrs(s.strokeStyle())...)
	}
}

var anchors = map[render.Align]string{
	render.AlignLeft:   "start",
	render.AlignCenter: "middle",
	render.AlignRight:  "end",
}

func (s *Surface) FillText(text string, x, y float64) {
	a := s.attrs(cssPaint("fill", s.fill))
	a = append(a,
		`font-size="`+num(s.fontSize)+`px"`,
		`text-anchor="`+anchors[s.align]+`"`)
	s.svg.Text(int(math.Round(x)), int(math.Round(y)), text, a...)
}

func (s *Surface) SetFillColor(c color.Color)   { s.fill = c }
func (s *Surface) SetStrokeColor(c color.Color) { s.stroke = c }
func (s *Surface) SetLineWidth(w float64)       { s.lineWidth = w }
func (s *Surface) SetFontSize(size float64)     { s.fontSize = size }
func (s *Surface) SetTextAlign(a render.Align)  { s.align = a }

func (s *Surface) Rotate(degrees float64) {
	s.rotate = math.Mod(s.rotate+degrees, 360)
}

// SetClip starts a group clipped to the given rectangle. The clip
// rectangle is rounded inward to whole pixels.
func (s *Surface) SetClip(x, y, w, h float64) {
	s.ResetClip()
	id := fmt.Sprintf("clip%d", s.nextID)
	s.nextID++
	x0, y0 := int(math.Ceil(x)), int(math.Ceil(y))
	x1, y1 := int(math.Floor(x+w)), int(math.Floor(y+h))
	s.svg.ClipPath(`id="` + id + `"`)
	s.svg.Rect(x0, y0, x1-x0, y1-y0)
	s.svg.ClipEnd()
	s.svg.Group(`clip-path="url(#` + id + `)"`)
	s.clipped = true
}

func (s *Surface) ResetClip() {
	if s.clipped {
		s.svg.Gend()
		s.clipped = false
	}
}
