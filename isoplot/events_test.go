// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aclements/go-isoplot/interact"
	"github.com/aclements/go-isoplot/obs"
	"github.com/aclements/go-isoplot/plot"
	"github.com/aclements/go-isoplot/render"
	"github.com/aclements/go-isoplot/view"
)

func TestParseScript(t *testing.T) {
	const script = `
# drag left, then zoom in
down 200 150
move 100.5 150
up 100.5 150
scroll 200 150 -1
title "Wetherill concordia"
zoom 1.5
`
	steps, err := parseScript(strings.NewReader(script))
	if err != nil {
		t.Fatal(err)
	}
	want := []interact.Event{
		interact.PointerDown{X: 200, Y: 150},
		interact.PointerMove{X: 100.5, Y: 150},
		interact.PointerUp{X: 100.5, Y: 150},
		interact.Scroll{X: 200, Y: 150, DeltaY: -1},
		nil,
		nil,
	}
	if len(steps) != len(want) {
		t.Fatalf("got %d steps, want %d", len(steps), len(want))
	}
	for i, st := range steps {
		if st.event != want[i] {
			t.Errorf("step %d: event %v, want %v", i, st.event, want[i])
		}
		if (st.event == nil) == (st.set == nil) {
			t.Errorf("step %d: want exactly one of event and set", i)
		}
	}
	if steps[0].line != 3 || steps[5].line != 8 {
		t.Errorf("lines = %d, %d, want 3, 8", steps[0].line, steps[5].line)
	}
}

func TestParseScriptErrors(t *testing.T) {
	for _, test := range []struct {
		script, want string
	}{
		{"down 1", "line 1: down takes 2 arguments, got 1"},
		{"\nmove x 1", `line 2: move: bad number "x"`},
		{"jump 1 2", `line 1: unknown command "jump"`},
		{"title \"unterminated", "line 1: "},
		{"uncertainty -3", `line 1: bad uncertainty multiplier "-3"`},
		{"mode lines", "line 1: "},
		{"points maybe", `line 1: points: want on or off, got "maybe"`},
		{"reset now", "line 1: reset takes 0 arguments, got 1"},
	} {
		_, err := parseScript(strings.NewReader(test.script))
		if err == nil || !strings.HasPrefix(err.Error(), test.want) {
			t.Errorf("parseScript(%q) = %v, want error starting %q", test.script, err, test.want)
		}
	}
}

func TestRunScript(t *testing.T) {
	p := plot.New(view.NewViewport(400, 300), render.DefaultStyle(render.Points))
	err := p.Refresh([]obs.Observation{{X: 1, Y: 1}, {X: 3, Y: 5}})
	if err != nil {
		t.Fatal(err)
	}
	home := p.Range()

	const script = `
down 200 150
move 100 150
up 100 150
scroll 10 10 1
title 'a title'
xlabel x ratio
uncertainty 95%
mode bars
points off
zoom 5
`
	steps, err := parseScript(strings.NewReader(script))
	if err != nil {
		t.Fatal(err)
	}
	changes, err := runScript(p, steps)
	if err != nil {
		t.Fatal(err)
	}
	// The scroll is outside the graph, so only the drag moves the
	// view.
	if changes != 1 {
		t.Errorf("runScript made %d changes, want 1", changes)
	}
	st := p.Style()
	if st.Title != "a title" || st.XLabel != "x ratio" {
		t.Errorf("title %q, xlabel %q", st.Title, st.XLabel)
	}
	if st.Multiplier != obs.Conf95 || st.Mode != render.UncertaintyBars || st.PointsVisible {
		t.Errorf("multiplier %v, mode %v, points %v", st.Multiplier, st.Mode, st.PointsVisible)
	}
	if p.ZoomFactor() != 1.95 {
		t.Errorf("zoom factor %v, want 1.95", p.ZoomFactor())
	}

	// Switching mode resets the view with the new margin.
	if p.Range().PanX != 0 || p.Range() == home {
		t.Errorf("range after mode switch = %+v", p.Range())
	}
}

func TestRunScriptModeError(t *testing.T) {
	p := plot.New(view.NewViewport(400, 300), render.DefaultStyle(render.Points))
	p.Refresh([]obs.Observation{{X: 1, Y: 1, Rho: 2}})
	steps, err := parseScript(strings.NewReader("title t\nmode ellipses\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := runScript(p, steps); err == nil || !strings.HasPrefix(err.Error(), "line 2: ") {
		t.Errorf("runScript = %v, want a line 2 error", err)
	}
}

func TestDraw(t *testing.T) {
	p := plot.New(view.NewViewport(200, 150), render.DefaultStyle(render.Ellipses))
	p.Refresh([]obs.Observation{{X: 1, Y: 2, SigmaX: 0.1, SigmaY: 0.2, Rho: 0.3}})
	for _, format := range []string{"svg", "png"} {
		var buf bytes.Buffer
		errs, err := draw(&buf, format, p)
		if err != nil || errs != nil {
			t.Errorf("draw(%s) = %v, %v", format, errs, err)
		}
		if buf.Len() == 0 {
			t.Errorf("draw(%s) wrote nothing", format)
		}
	}
	if _, err := draw(new(bytes.Buffer), "gif", p); err == nil {
		t.Errorf("draw(gif) succeeded")
	}
}

func TestOutputFormat(t *testing.T) {
	for _, test := range []struct {
		name, path, want string
	}{
		{"", "", "svg"},
		{"", "plot.PNG", "png"},
		{"", "plot.svg", "svg"},
		{"svg", "plot.png", "svg"},
		{"png", "", "png"},
	} {
		got, err := outputFormat(test.name, test.path)
		if err != nil || got != test.want {
			t.Errorf("outputFormat(%q, %q) = %q, %v, want %q", test.name, test.path, got, err, test.want)
		}
	}
	if _, err := outputFormat("pdf", ""); err == nil {
		t.Errorf("outputFormat(pdf) succeeded")
	}
}

func TestParseDelim(t *testing.T) {
	for _, test := range []struct {
		in   string
		want rune
	}{
		{"tab", '\t'}, {`\t`, '\t'}, {"comma", ','}, {",", ','}, {";", ';'}, {"|", '|'},
	} {
		if got, err := parseDelim(test.in); err != nil || got != test.want {
			t.Errorf("parseDelim(%q) = %q, %v, want %q", test.in, got, err, test.want)
		}
	}
	for _, bad := range []string{"", "ab"} {
		if _, err := parseDelim(bad); err == nil {
			t.Errorf("parseDelim(%q) succeeded", bad)
		}
	}
}

func TestObservationsToTable(t *testing.T) {
	os := []obs.Observation{
		{X: 1, Y: 1},
		{X: 2, Y: 2, Unselected: true},
		{X: 20, Y: 2},
		{X: 2, Y: 2, Rho: 2},
	}
	r := view.Range{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}
	tab := observationsToTable(os, r, view.NewViewport(175, 175))
	status, ok := tab.Column("status").([]string)
	if !ok {
		t.Fatalf("status column is %T", tab.Column("status"))
	}
	want := []string{"ok", "unselected", "hidden"}
	for i, w := range want {
		if status[i] != w {
			t.Errorf("status[%d] = %q, want %q", i, status[i], w)
		}
	}
	if !strings.Contains(status[3], "rho") {
		t.Errorf("status[3] = %q, want a rho error", status[3])
	}
	px := tab.Column("pixel x").([]float64)
	if px[0] != 85 {
		t.Errorf("pixel x of (1, 1) = %v, want 85", px[0])
	}
}
