// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interact

import (
	"math"
	"testing"

	"github.com/aclements/go-isoplot/ticks"
	"github.com/aclements/go-isoplot/view"
)

// vp has a 100x100 graph area at (10, 10), so one pixel is 0.1 data
// units over rng.
var (
	vp  = view.Viewport{Width: 110, Height: 110, Left: 10, Top: 10}
	rng = view.Range{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}
)

func TestClampZoom(t *testing.T) {
	for _, test := range []struct {
		in, want float64
	}{
		{0.5, 1.05},
		{1, 1.05},
		{5, 1.95},
		{2, 1.95},
		{1.5, 1.5},
		{1.01, 1.01},
		{math.NaN(), DefaultZoom},
	} {
		if got := ClampZoom(test.in); got != test.want {
			t.Errorf("ClampZoom(%v) = %v, want %v", test.in, got, test.want)
		}
	}
}

func TestDrag(t *testing.T) {
	s := NewState(rng)
	s, changed := Reduce(s, vp, PointerDown{60, 60})
	if s.Mode != Dragging || changed {
		t.Fatalf("after PointerDown: mode %v, changed %v", s.Mode, changed)
	}

	// Dragging 20 pixels right and 10 down moves the window 2 data
	// units left and 1 up, damped.
	s, changed = Reduce(s, vp, PointerMove{80, 70})
	if !changed {
		t.Fatalf("PointerMove did not change the range")
	}
	if !approx(s.Range.PanX, -0.1) || !approx(s.Range.PanY, 0.05) {
		t.Errorf("pan = %v, %v, want -0.1, 0.05", s.Range.PanX, s.Range.PanY)
	}
	if s.Range.MinX != 0 || s.Range.MaxX != 10 {
		t.Errorf("drag changed the bounds: %+v", s.Range)
	}
	if s.Anchor != (view.Point{X: 80, Y: 70}) {
		t.Errorf("anchor = %v, want the last pointer position", s.Anchor)
	}

	s, changed = Reduce(s, vp, PointerUp{80, 70})
	if s.Mode != Idle || changed {
		t.Errorf("after PointerUp: mode %v, changed %v", s.Mode, changed)
	}

	// Moves while idle do nothing.
	if _, changed := Reduce(s, vp, PointerMove{90, 90}); changed {
		t.Errorf("PointerMove while idle changed the range")
	}
}

func TestDragFixedAnchor(t *testing.T) {
	s := NewState(rng)
	s.AnchorMode = AnchorFixed
	s, _ = Reduce(s, vp, PointerDown{60, 60})
	s, _ = Reduce(s, vp, PointerMove{70, 60})
	s, _ = Reduce(s, vp, PointerMove{70, 60})
	if s.Anchor != (view.Point{X: 60, Y: 60}) {
		t.Errorf("anchor moved to %v", s.Anchor)
	}
	// Two moves each pan by the full 10 pixel distance. The second
	// is measured after the first has shifted the window, but the
	// shift cancels because both ends move together.
	if !approx(s.Range.PanX, -0.1) {
		t.Errorf("PanX = %v, want -0.1", s.Range.PanX)
	}
}

func TestDragOutside(t *testing.T) {
	s := NewState(rng)
	if s, _ := Reduce(s, vp, PointerDown{5, 5}); s.Mode != Idle {
		t.Errorf("PointerDown outside the graph started a drag")
	}
	s, _ = Reduce(s, vp, PointerDown{50, 50})
	if s2, changed := Reduce(s, vp, PointerMove{200, 50}); changed || s2.Range != rng {
		t.Errorf("PointerMove outside the graph changed the range")
	}
	if s, _ = Reduce(s, vp, PointerUp{200, 200}); s.Mode != Idle {
		t.Errorf("PointerUp outside the graph did not end the drag")
	}
}

func TestScroll(t *testing.T) {
	s := NewState(rng)

	in, changed := Reduce(s, vp, Scroll{50, 50, 1})
	if !changed || !approx(in.Range.MaxX, 10.5) || !approx(in.Range.MaxY, 10.5) || in.Range.MinX != 0 {
		t.Errorf("Scroll up: %+v, changed %v, want MaxX 10.5", in.Range, changed)
	}

	out, changed := Reduce(s, vp, Scroll{50, 50, -1})
	if !changed || !approx(out.Range.MaxX, 9.5) || !approx(out.Range.MaxY, 9.5) {
		t.Errorf("Scroll down: %+v, changed %v, want MaxX 9.5", out.Range, changed)
	}

	if s2, changed := Reduce(s, vp, Scroll{50, 50, 0}); changed || s2.Range != rng {
		t.Errorf("zero Scroll changed the range")
	}
}

func TestScrollOutside(t *testing.T) {
	s := NewState(rng)
	for _, e := range []Scroll{{0, 50, 1}, {50, 0, -1}, {111, 50, 1}, {50, 200, -1}} {
		s2, changed := Reduce(s, vp, e)
		if changed || s2 != s {
			t.Errorf("%+v outside the graph changed state to %+v", e, s2)
		}
	}
}

func TestScrollCursor(t *testing.T) {
	s := NewState(rng)
	s.ZoomMode = ZoomCursor
	s.Zoom = 1.5

	// The data point under the pointer stays under the pointer.
	at := view.Point{X: 30, Y: 90}
	before := view.MapToData(s.Range, vp, at)
	s2, changed := Reduce(s, vp, Scroll{at.X, at.Y, -1})
	if !changed {
		t.Fatal("Scroll did not change the range")
	}
	after := view.MapToData(s2.Range, vp, at)
	if !approx(before.X, after.X) || !approx(before.Y, after.Y) {
		t.Errorf("point under cursor moved from %v to %v", before, after)
	}
	if w := s2.Range.MaxX - s2.Range.MinX; !approx(w, 5) {
		t.Errorf("width after zooming in = %v, want 5", w)
	}
}

func TestScrollResolution(t *testing.T) {
	// Zooming in around the cursor on a window near 1000 stops before
	// its width drops below what ticks can resolve.
	s := NewState(view.Range{MinX: 995, MaxX: 1005, MinY: 995, MaxY: 1005})
	s.ZoomMode = ZoomCursor
	steps := 0
	for ; steps < 2000; steps++ {
		var changed bool
		s, changed = Reduce(s, vp, Scroll{30, 40, -1})
		if !changed {
			break
		}
	}
	if steps == 2000 {
		t.Fatal("zoomed in 2000 times without stopping")
	}
	x0, x1 := s.Range.DisplayX()
	if w, res := x1-x0, ticks.Resolution(x0, x1); w < minResolvedSteps*res {
		t.Errorf("width %v after %d zooms, want >= %v", w, steps, minResolvedSteps*res)
	}
	vs := ticks.Generate(x0, x1, 5).Values
	if len(vs) < 2 || vs[0] > x0 || vs[len(vs)-1] < x1 {
		t.Errorf("ticks %v do not cover [%v, %v]", vs, x0, x1)
	}
	for j := 1; j < len(vs); j++ {
		if !(vs[j] > vs[j-1]) {
			t.Errorf("ticks %v are not increasing", vs)
			break
		}
	}
	if _, changed := Reduce(s, vp, Scroll{30, 40, 1}); !changed {
		t.Error("cannot zoom out at the resolution limit")
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestParseModes(t *testing.T) {
	for _, m := range []AnchorMode{AnchorIncremental, AnchorFixed} {
		if got, err := ParseAnchorMode(m.String()); err != nil || got != m {
			t.Errorf("ParseAnchorMode(%q) = %v, %v, want %v", m.String(), got, err, m)
		}
	}
	for _, m := range []ZoomMode{ZoomOrigin, ZoomCursor} {
		if got, err := ParseZoomMode(m.String()); err != nil || got != m {
			t.Errorf("ParseZoomMode(%q) = %v, %v, want %v", m.String(), got, err, m)
		}
	}
	if _, err := ParseAnchorMode("sticky"); err == nil {
		t.Errorf("ParseAnchorMode(sticky) succeeded")
	}
	if _, err := ParseZoomMode(""); err == nil {
		t.Errorf("ParseZoomMode(\"\") succeeded")
	}
	if got := ZoomMode(7).String(); got != "ZoomMode(7)" {
		t.Errorf("ZoomMode(7).String() = %q", got)
	}
}
