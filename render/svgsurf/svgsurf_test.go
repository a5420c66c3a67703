// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svgsurf

import (
	"bytes"
	"encoding/xml"
	"image/color"
	"io"
	"strings"
	"testing"

	"github.com/aclements/go-isoplot/obs"
	"github.com/aclements/go-isoplot/render"
	"github.com/aclements/go-isoplot/ticks"
	"github.com/aclements/go-isoplot/view"
)

// checkXML fails t if data is not well-formed XML.
func checkXML(t *testing.T, data []byte) {
	t.Helper()
	d := xml.NewDecoder(bytes.NewReader(data))
	for {
		_, err := d.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("bad XML: %v\n%s", err, data)
		}
	}
}

func TestCSSPaint(t *testing.T) {
	for _, test := range []struct {
		c    color.Color
		want string
	}{
		{color.Black, "fill:#000000"},
		{color.RGBA{0xff, 0x80, 0, 0xff}, "fill:#ff8000"},
		{color.NRGBA{0xff, 0, 0, 0x80}, "fill:#ff0000;fill-opacity:0.502"},
		{color.Transparent, "fill:none"},
	} {
		if got := cssPaint("fill", test.c); got != test.want {
			t.Errorf("cssPaint(%v) = %q, want %q", test.c, got, test.want)
		}
	}
}

func TestElements(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, 100, 50)
	s.SetFillColor(color.White)
	s.FillRect(0, 0, 100, 50)
	s.SetStrokeColor(color.Black)
	s.SetLineWidth(2)
	s.StrokeLine(1.5, 2, 3.25, 4)
	s.BeginPath()
	s.MoveTo(0, 0)
	s.BezierCurveTo(1, 1, 2, 2, 3, 3)
	s.ClosePath()
	s.Stroke()
	s.SetClip(10.5, 10, 20, 20)
	s.SetTextAlign(render.AlignRight)
	s.Rotate(-90)
	s.FillText("a<b", -20, 5)
	s.Rotate(90)
	s.Close()

	out := buf.String()
	checkXML(t, buf.Bytes())
	for _, want := range []string{
		`d="M0 0h100v50h-100z"`,
		`fill:#ffffff;stroke:none`,
		`d="M1.5 2L3.25 4"`,
		`stroke-width:2`,
		`d="M0 0C1 1 2 2 3 3z"`,
		`<clipPath id="clip0"`,
		`clip-path="url(#clip0)"`,
		`transform="rotate(-90)"`,
		`text-anchor="end"`,
		`a&lt;b`,
		`</svg>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %s:\n%s", want, out)
		}
	}
	if strings.Count(out, "<g ") != strings.Count(out, "</g>") {
		t.Errorf("unbalanced groups:\n%s", out)
	}
}

func TestFrame(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, 400, 300)
	style := render.DefaultStyle(render.Ellipses)
	style.Title = "Concordia & friends"
	style.YLabel = "²⁰⁶Pb/²³⁸U"
	in := render.Input{
		Range:    view.Range{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10},
		Viewport: view.NewViewport(400, 300),
		XTicks:   ticks.Generate(0, 10, 6),
		YTicks:   ticks.Generate(0, 10, 4),
		Observations: []obs.Observation{
			{X: 2, Y: 3, SigmaX: 0.5, SigmaY: 0.3, Rho: 0.7},
			{X: 8, Y: 6, SigmaX: 0.2, SigmaY: 0.6, Rho: -0.4, Unselected: true},
		},
		Style: style,
	}
	if errs := render.Frame(s, in); errs != nil {
		t.Fatalf("Frame: %v", errs)
	}
	s.Close()
	checkXML(t, buf.Bytes())
	out := buf.String()
	if n := strings.Count(out, "C"); n < 8 {
		t.Errorf("found %d curve commands, want at least 8 for two ellipses", n)
	}
	if !strings.Contains(out, "Concordia &amp; friends") {
		t.Errorf("title missing or unescaped")
	}
}
