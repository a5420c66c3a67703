// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aclements/go-isoplot/interact"
	"github.com/aclements/go-isoplot/obs"
	"github.com/aclements/go-isoplot/plot"
	"github.com/aclements/go-isoplot/render"
	"github.com/kballard/go-shellquote"
)

// A step is one line of an event script. It is either an input event
// or a change to the plot's settings.
type step struct {
	line  int
	event interact.Event
	set   func(p *plot.Plot) error
}

// parseScript reads an event script. Each line is one command whose
// arguments are split with shell quoting rules:
//
//	down X Y        pointer pressed at pixel (X, Y)
//	move X Y        pointer moved
//	up X Y          pointer released
//	scroll X Y DY   wheel scrolled by DY; DY < 0 zooms in
//	zoom F          set the zoom factor
//	uncertainty M   set the uncertainty multiplier (1s, 2s, 95%, or a number)
//	mode NAME       switch to points, ellipses, or bars
//	points on|off   show or hide points over ellipses and bars
//	title TEXT      set the title
//	xlabel TEXT     set the x axis label
//	ylabel TEXT     set the y axis label
//	reset           return to the initial view
//
// Blank lines and lines starting with # are ignored.
func parseScript(r io.Reader) ([]step, error) {
	var steps []step
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		words, err := shellquote.Split(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", line, err)
		}
		if len(words) == 0 {
			continue
		}
		st, err := parseStep(words)
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", line, err)
		}
		st.line = line
		steps = append(steps, st)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return steps, nil
}

func parseStep(words []string) (step, error) {
	cmd, args := words[0], words[1:]
	nargs := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s takes %d arguments, got %d", cmd, n, len(args))
		}
		return nil
	}
	floats := func(n int) ([]float64, error) {
		if err := nargs(n); err != nil {
			return nil, err
		}
		fs := make([]float64, n)
		for i, a := range args {
			f, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: bad number %q", cmd, a)
			}
			fs[i] = f
		}
		return fs, nil
	}
	setText := func(f func(p *plot.Plot, s string)) (step, error) {
		s := strings.Join(args, " ")
		return step{set: func(p *plot.Plot) error {
			f(p, s)
			return nil
		}}, nil
	}

	switch cmd {
	case "down", "move", "up":
		fs, err := floats(2)
		if err != nil {
			return step{}, err
		}
		var e interact.Event
		switch cmd {
		case "down":
			e = interact.PointerDown{X: fs[0], Y: fs[1]}
		case "move":
			e = interact.PointerMove{X: fs[0], Y: fs[1]}
		default:
			e = interact.PointerUp{X: fs[0], Y: fs[1]}
		}
		return step{event: e}, nil

	case "scroll":
		fs, err := floats(3)
		if err != nil {
			return step{}, err
		}
		return step{event: interact.Scroll{X: fs[0], Y: fs[1], DeltaY: fs[2]}}, nil

	case "zoom":
		fs, err := floats(1)
		if err != nil {
			return step{}, err
		}
		return step{set: func(p *plot.Plot) error {
			p.SetZoomFactor(fs[0])
			return nil
		}}, nil

	case "uncertainty":
		if err := nargs(1); err != nil {
			return step{}, err
		}
		m, err := obs.ParseMultiplier(args[0])
		if err != nil {
			return step{}, err
		}
		return step{set: func(p *plot.Plot) error {
			return p.SetUncertaintyMultiplier(m)
		}}, nil

	case "mode":
		if err := nargs(1); err != nil {
			return step{}, err
		}
		m, err := render.ParseGlyphMode(args[0])
		if err != nil {
			return step{}, err
		}
		return step{set: func(p *plot.Plot) error {
			return p.SetGlyphMode(m)
		}}, nil

	case "points":
		if err := nargs(1); err != nil {
			return step{}, err
		}
		var on bool
		switch args[0] {
		case "on":
			on = true
		case "off":
		default:
			return step{}, fmt.Errorf("points: want on or off, got %q", args[0])
		}
		return step{set: func(p *plot.Plot) error {
			p.SetPointsVisible(on)
			return nil
		}}, nil

	case "title":
		return setText((*plot.Plot).SetTitle)
	case "xlabel":
		return setText((*plot.Plot).SetXAxisLabel)
	case "ylabel":
		return setText((*plot.Plot).SetYAxisLabel)

	case "reset":
		if err := nargs(0); err != nil {
			return step{}, err
		}
		return step{set: func(p *plot.Plot) error {
			p.Reset()
			return nil
		}}, nil
	}
	return step{}, fmt.Errorf("unknown command %q", cmd)
}

// runScript applies steps to p in order and returns the number of
// events that changed the view.
func runScript(p *plot.Plot, steps []step) (int, error) {
	changes := 0
	for _, st := range steps {
		if st.event != nil {
			if p.Handle(st.event) {
				changes++
			}
			continue
		}
		if err := st.set(p); err != nil {
			return changes, fmt.Errorf("line %d: %v", st.line, err)
		}
	}
	return changes, nil
}
