// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plot ties together the data, view state, ticks, and style of
// one interactive isotope-ratio plot.
//
// A Plot is owned by a single goroutine. Every mutation (Refresh,
// Handle, or a setter) leaves the Plot ready to Render.
package plot

import (
	"fmt"
	"math"

	"github.com/aclements/go-isoplot/interact"
	"github.com/aclements/go-isoplot/obs"
	"github.com/aclements/go-isoplot/render"
	"github.com/aclements/go-isoplot/ticks"
	"github.com/aclements/go-isoplot/view"
)

// Plot is a zoomable, pannable plot of a set of observations.
type Plot struct {
	viewport view.Viewport
	style    render.Style
	state    interact.State

	data []obs.Observation

	// home is the range prepared by the last Refresh.
	home view.Range

	xTicks, yTicks ticks.Set
}

// New returns an empty plot drawn into v with style st. Call Refresh
// to give it data.
func New(v view.Viewport, st render.Style) *Plot {
	return &Plot{
		viewport: v,
		style:    st,
		state:    interact.NewState(view.Range{}),
	}
}

func (p *Plot) prepareOptions() view.PrepareOptions {
	return view.PrepareOptions{
		Stretch:         p.style.Stretch,
		IncludeEllipses: p.style.Mode == render.Ellipses,
		Multiplier:      p.style.Multiplier,
	}
}

// Refresh replaces the plotted observations and resets the view to fit
// them. Invalid observations are kept, so Render reports them, but do
// not affect the range. If there is no valid observation, Refresh
// returns view.ErrNoData and the plot renders only its background until
// the next successful Refresh.
func (p *Plot) Refresh(os []obs.Observation) error {
	p.data = os
	p.state.Mode = interact.Idle
	r, err := view.Prepare(os, p.prepareOptions())
	if err != nil {
		r = view.Range{}
	}
	p.home = r
	p.state.Range = r
	p.updateTicks()
	return err
}

// Reset returns to the range prepared by the last Refresh.
func (p *Plot) Reset() {
	p.state.Range = p.home
	p.state.Mode = interact.Idle
	p.updateTicks()
}

// Handle applies a pointer or scroll event and reports whether the
// visible range changed, in which case the caller should Render again.
func (p *Plot) Handle(e interact.Event) bool {
	s, changed := interact.Reduce(p.state, p.viewport, e)
	p.state = s
	if changed {
		p.updateTicks()
	}
	return changed
}

// updateTicks recomputes both tick sets for the displayed range.
func (p *Plot) updateTicks() {
	r := p.state.Range
	if !r.Valid() {
		p.xTicks, p.yTicks = ticks.Set{}, ticks.Set{}
		return
	}
	x0, x1 := r.DisplayX()
	y0, y1 := r.DisplayY()
	p.xTicks = ticks.ForPixels(x0, x1, float64(p.viewport.GraphWidth()), p.style.TickSpacing)
	p.yTicks = ticks.ForPixels(y0, y1, float64(p.viewport.GraphHeight()), p.style.TickSpacing)
}

// Render draws the plot onto s. See render.Frame.
func (p *Plot) Render(s render.Surface) []error {
	return render.Frame(s, render.Input{
		Range:        p.state.Range,
		Viewport:     p.viewport,
		XTicks:       p.xTicks,
		YTicks:       p.yTicks,
		Observations: p.data,
		Style:        p.style,
	})
}

// SetZoomFactor sets the factor each scroll step scales the range by.
// It is clamped to (1, 2) with interact.ClampZoom.
func (p *Plot) SetZoomFactor(z float64) {
	p.state.Zoom = interact.ClampZoom(z)
}

func (p *Plot) ZoomFactor() float64 {
	return p.state.Zoom
}

// SetUncertaintyMultiplier sets the multiple of 1σ that ellipses and
// uncertainty bars are drawn at. m must be positive and finite.
func (p *Plot) SetUncertaintyMultiplier(m float64) error {
	if !(m > 0) || math.IsInf(m, 0) {
		return fmt.Errorf("bad uncertainty multiplier %v", m)
	}
	p.style.Multiplier = m
	return nil
}

func (p *Plot) SetTitle(s string)      { p.style.Title = s }
func (p *Plot) SetXAxisLabel(s string) { p.style.XLabel = s }
func (p *Plot) SetYAxisLabel(s string) { p.style.YLabel = s }

// SetGlyphMode switches how observations are drawn. The margin, tick
// spacing, and minor ticks follow the defaults of the new mode, and
// the view is reset to fit the data. The error is that of the implied
// Refresh; the mode is switched even if it fails.
func (p *Plot) SetGlyphMode(m render.GlyphMode) error {
	def := render.DefaultStyle(m)
	p.style.Mode = m
	p.style.Stretch = def.Stretch
	p.style.TickSpacing = def.TickSpacing
	p.style.MinorTicks = def.MinorTicks
	if p.data == nil {
		return nil
	}
	return p.Refresh(p.data)
}

// SetPointsVisible sets whether points are drawn on top of ellipses
// and uncertainty bars.
func (p *Plot) SetPointsVisible(v bool) {
	p.style.PointsVisible = v
}

func (p *Plot) SetAnchorMode(m interact.AnchorMode) { p.state.AnchorMode = m }
func (p *Plot) SetZoomMode(m interact.ZoomMode)     { p.state.ZoomMode = m }

// SetViewport changes the pixel size and margins the plot is drawn
// into.
func (p *Plot) SetViewport(v view.Viewport) {
	p.viewport = v
	p.updateTicks()
}

func (p *Plot) Viewport() view.Viewport {
	return p.viewport
}

// Range returns the current view range.
func (p *Plot) Range() view.Range {
	return p.state.Range
}

// SetRange replaces the current view range, for example to restore a
// saved view. The range must be valid.
func (p *Plot) SetRange(r view.Range) error {
	if !r.Valid() {
		return fmt.Errorf("invalid range %+v", r)
	}
	p.state.Range = r
	p.updateTicks()
	return nil
}

// Ticks returns the tick sets of the displayed x and y axes.
func (p *Plot) Ticks() (x, y ticks.Set) {
	return p.xTicks, p.yTicks
}

// Style returns the current style.
func (p *Plot) Style() render.Style {
	return p.style
}

// Observations returns the plotted observations.
func (p *Plot) Observations() []obs.Observation {
	return p.data
}
