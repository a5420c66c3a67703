// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/aclements/go-isoplot/obs"
	"github.com/aclements/go-isoplot/view"
)

// GlyphMode is the way each observation is drawn.
type GlyphMode int

const (
	// Points draws a filled circle at each observation.
	Points GlyphMode = iota

	// Ellipses draws the error ellipse of each observation.
	Ellipses

	// UncertaintyBars draws a cross of error bars with end caps.
	UncertaintyBars
)

var modeNames = []string{
	Points:          "points",
	Ellipses:        "ellipses",
	UncertaintyBars: "bars",
}

func (m GlyphMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("GlyphMode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseGlyphMode parses a glyph mode name as returned by String.
func ParseGlyphMode(s string) (GlyphMode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return GlyphMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown glyph mode %q (want points, ellipses, or bars)", s)
}

// Style configures how a frame is drawn.
type Style struct {
	Mode GlyphMode

	// Multiplier scales the 1σ uncertainties of ellipses and bars.
	Multiplier float64

	// PointsVisible draws points on top of ellipses or bars. Points
	// mode always draws points.
	PointsVisible bool
	PointRadius   float64
	PointFill     color.Color
	PointOpacity  float64

	// UnselectedFill replaces the point, ellipse, and cross colors of
	// unselected observations.
	UnselectedFill color.Color

	// The ellipse fill is drawn at 0.3·EllipseOpacity alpha.
	EllipseFill    color.Color
	EllipseStroke  color.Color
	EllipseOpacity float64

	// Crosses are stroked 2 pixels wide when CrossOpacity < 1.
	CrossStroke  color.Color
	CrossOpacity float64

	Background color.Color
	Foreground color.Color

	// Stretch is the fraction of the data extent added as a margin
	// when a range is prepared from data.
	Stretch float64

	// TickSpacing is the approximate pixel distance between ticks.
	TickSpacing float64

	// MinorTicks is the number of parts each tick interval is
	// divided into by unlabeled minor ticks. Values < 2 draw none.
	MinorTicks int

	Title, XLabel, YLabel string

	TitleFontSize, LabelFontSize, TickFontSize float64
}

// DefaultStyle returns the standard style for glyph mode m.
func DefaultStyle(m GlyphMode) Style {
	s := Style{
		Mode:           m,
		Multiplier:     obs.TwoSigma,
		PointsVisible:  true,
		PointRadius:    2.5,
		PointFill:      color.Black,
		PointOpacity:   1,
		UnselectedFill: color.Gray{0x80},
		EllipseFill:    color.RGBA{0xff, 0, 0, 0xff},
		EllipseStroke:  color.Black,
		EllipseOpacity: 1,
		CrossStroke:    color.Black,
		CrossOpacity:   1,
		Background:     color.White,
		Foreground:     color.Black,
		Stretch:        view.StretchPoints,
		TickSpacing:    25,
		TitleFontSize:  15,
		LabelFontSize:  12,
		TickFontSize:   10,
	}
	switch m {
	case Points:
		s.TickSpacing = 50
		s.MinorTicks = 4
	case UncertaintyBars:
		s.Stretch = view.StretchBars
	}
	return s
}

// withAlpha returns c with its alpha replaced by a, in [0, 1].
func withAlpha(c color.Color, a float64) color.Color {
	if a >= 1 {
		return c
	}
	if !(a > 0) {
		a = 0
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A)*a + 0.5)
	return n
}
