// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/aclements/go-isoplot/interact"
	"github.com/aclements/go-isoplot/obs"
	"github.com/aclements/go-isoplot/render"
	"github.com/aclements/go-isoplot/render/svgsurf"
	"github.com/aclements/go-isoplot/view"
)

var data = []obs.Observation{
	{X: 1, Y: 1, SigmaX: 0.1, SigmaY: 0.1},
	{X: 3, Y: 5, SigmaX: 0.2, SigmaY: 0.3, Rho: 0.5},
}

func newPlot(t *testing.T, m render.GlyphMode) *Plot {
	t.Helper()
	p := New(view.NewViewport(400, 300), render.DefaultStyle(m))
	if err := p.Refresh(data); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	return p
}

func TestSetZoomFactor(t *testing.T) {
	p := New(view.NewViewport(400, 300), render.DefaultStyle(render.Points))
	if got := p.ZoomFactor(); got != interact.DefaultZoom {
		t.Errorf("initial ZoomFactor() = %v, want %v", got, interact.DefaultZoom)
	}
	for _, test := range []struct {
		z, want float64
	}{
		{0.5, 1.05},
		{1, 1.05},
		{5, 1.95},
		{2, 1.95},
		{1.5, 1.5},
	} {
		p.SetZoomFactor(test.z)
		if got := p.ZoomFactor(); got != test.want {
			t.Errorf("SetZoomFactor(%v): ZoomFactor() = %v, want %v", test.z, got, test.want)
		}
	}
}

func TestRefresh(t *testing.T) {
	p := newPlot(t, render.Points)
	want := view.Range{MinX: 0.6, MaxX: 3.4, MinY: 0.2, MaxY: 5.8}
	r := p.Range()
	for _, c := range []struct {
		name      string
		got, want float64
	}{
		{"MinX", r.MinX, want.MinX}, {"MaxX", r.MaxX, want.MaxX},
		{"MinY", r.MinY, want.MinY}, {"MaxY", r.MaxY, want.MaxY},
	} {
		if math.Abs(c.got-c.want) > 1e-12 {
			t.Errorf("Range().%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	xt, yt := p.Ticks()
	if len(xt.Values) == 0 || len(yt.Values) == 0 {
		t.Fatalf("Ticks() = %v, %v, want non-empty", xt, yt)
	}
	if xt.Values[0] > r.MinX || xt.Values[len(xt.Values)-1] < r.MaxX {
		t.Errorf("x ticks %v do not cover [%v, %v]", xt.Values, r.MinX, r.MaxX)
	}
}

func TestRefreshEllipses(t *testing.T) {
	// In ellipses mode the range also covers every ellipse.
	pts := newPlot(t, render.Points).Range()
	ell := newPlot(t, render.Ellipses).Range()
	if !(ell.MinX < pts.MinX && ell.MaxY > pts.MaxY) {
		t.Errorf("ellipse range %+v does not contain point range %+v", ell, pts)
	}
}

func TestRefreshNoData(t *testing.T) {
	p := New(view.NewViewport(400, 300), render.DefaultStyle(render.Points))
	err := p.Refresh([]obs.Observation{{X: math.NaN(), Y: 1}})
	if !errors.Is(err, view.ErrNoData) {
		t.Fatalf("Refresh = %v, want ErrNoData", err)
	}
	var buf bytes.Buffer
	s := svgsurf.New(&buf, 400, 300)
	errs := p.Render(s)
	s.Close()
	if len(errs) != 1 || !errors.Is(errs[0], render.ErrInvalidView) {
		t.Errorf("Render = %v, want only ErrInvalidView", errs)
	}
}

func TestSetGlyphModeError(t *testing.T) {
	p := New(view.NewViewport(400, 300), render.DefaultStyle(render.Points))
	if err := p.SetGlyphMode(render.Ellipses); err != nil {
		t.Errorf("SetGlyphMode with no data = %v, want nil", err)
	}
	p.Refresh([]obs.Observation{{X: math.NaN(), Y: 1}})
	err := p.SetGlyphMode(render.UncertaintyBars)
	if !errors.Is(err, view.ErrNoData) {
		t.Errorf("SetGlyphMode = %v, want ErrNoData", err)
	}
	if got := p.Style().Mode; got != render.UncertaintyBars {
		t.Errorf("Mode after failed refresh = %v, want %v", got, render.UncertaintyBars)
	}
}

func TestHandle(t *testing.T) {
	p := newPlot(t, render.Points)
	before := p.Range()
	xt0, _ := p.Ticks()

	if p.Handle(interact.Scroll{X: 10, Y: 10, DeltaY: 1}) {
		t.Errorf("scroll outside the graph changed the range")
	}
	if p.Range() != before {
		t.Errorf("Range() = %+v after ignored scroll, want %+v", p.Range(), before)
	}

	p.SetZoomFactor(2.5)
	for i := 0; i < 4; i++ {
		if !p.Handle(interact.Scroll{X: 200, Y: 150, DeltaY: 1}) {
			t.Fatalf("scroll %d inside the graph did not change the range", i)
		}
	}
	r := p.Range()
	f := math.Pow(1.95, 4)
	if math.Abs(r.MaxX-before.MaxX*f) > 1e-9 {
		t.Errorf("MaxX = %v after zooming out, want %v", r.MaxX, before.MaxX*f)
	}
	xt, _ := p.Ticks()
	if xt.Step <= xt0.Step {
		t.Errorf("tick step %v after zooming out, want more than %v", xt.Step, xt0.Step)
	}
}

func TestDrag(t *testing.T) {
	p := newPlot(t, render.Points)
	before := p.Range()
	p.Handle(interact.PointerDown{X: 200, Y: 150})
	if !p.Handle(interact.PointerMove{X: 100, Y: 150}) {
		t.Fatalf("drag did not change the range")
	}
	p.Handle(interact.PointerUp{X: 100, Y: 150})
	if r := p.Range(); !(r.PanX > 0) || r.PanY != 0 {
		t.Errorf("pan after dragging left = (%v, %v), want (>0, 0)", r.PanX, r.PanY)
	}

	p.Reset()
	if p.Range() != before {
		t.Errorf("Range() after Reset = %+v, want %+v", p.Range(), before)
	}
}

func TestSetters(t *testing.T) {
	p := newPlot(t, render.Ellipses)
	p.SetTitle("Concordia")
	p.SetXAxisLabel("x")
	p.SetYAxisLabel("y")
	if err := p.SetUncertaintyMultiplier(obs.Conf95); err != nil {
		t.Fatal(err)
	}
	for _, m := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := p.SetUncertaintyMultiplier(m); err == nil {
			t.Errorf("SetUncertaintyMultiplier(%v) succeeded", m)
		}
	}
	st := p.Style()
	if st.Title != "Concordia" || st.XLabel != "x" || st.YLabel != "y" || st.Multiplier != obs.Conf95 {
		t.Errorf("Style() = %+v", st)
	}

	if err := p.SetGlyphMode(render.UncertaintyBars); err != nil {
		t.Errorf("SetGlyphMode: %v", err)
	}
	if st := p.Style(); st.Mode != render.UncertaintyBars || st.Stretch != view.StretchBars || st.Title != "Concordia" {
		t.Errorf("after SetGlyphMode: Mode %v, Stretch %v, Title %q", st.Mode, st.Stretch, st.Title)
	}
	if err := p.SetRange(view.Range{MinX: 1, MaxX: 1, MinY: 0, MaxY: 1}); err == nil {
		t.Errorf("SetRange accepted an empty range")
	}
}

func TestRender(t *testing.T) {
	for _, m := range []render.GlyphMode{render.Points, render.Ellipses, render.UncertaintyBars} {
		p := newPlot(t, m)
		p.SetTitle("T")
		var buf bytes.Buffer
		s := svgsurf.New(&buf, 400, 300)
		if errs := p.Render(s); errs != nil {
			t.Errorf("%v: Render = %v", m, errs)
		}
		s.Close()
		if !strings.Contains(buf.String(), ">T</text>") {
			t.Errorf("%v: title missing from output", m)
		}
	}
}
