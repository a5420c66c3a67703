// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command isoview shows isotope-ratio observations in a window that
// can be panned by dragging and zoomed with the mouse wheel.
//
// isoview reads the same input as isoplot. Keys:
//
//	1, 2, 3  draw points, ellipses, or uncertainty bars
//	P        show or hide points over ellipses and bars
//	R        return to the initial view
//	Esc      quit
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aclements/go-isoplot/interact"
	"github.com/aclements/go-isoplot/obs"
	"github.com/aclements/go-isoplot/plot"
	"github.com/aclements/go-isoplot/render"
	"github.com/aclements/go-isoplot/render/rastersurf"
	"github.com/aclements/go-isoplot/view"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// viewer adapts a Plot to ebiten's game loop. Update and Draw run on
// one goroutine.
type viewer struct {
	p    *plot.Plot
	surf *rastersurf.Surface

	// dirty is set when the plot must be drawn again.
	dirty bool

	lastX, lastY int
}

func newViewer(p *plot.Plot) *viewer {
	v := p.Viewport()
	return &viewer{p: p, surf: rastersurf.New(v.Width, v.Height), dirty: true}
}

func (g *viewer) handle(e interact.Event) {
	if g.p.Handle(e) {
		g.dirty = true
	}
}

func (g *viewer) Update() error {
	x, y := ebiten.CursorPosition()
	fx, fy := float64(x), float64(y)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.handle(interact.PointerDown{X: fx, Y: fy})
	} else if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && (x != g.lastX || y != g.lastY) {
		g.handle(interact.PointerMove{X: fx, Y: fy})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.handle(interact.PointerUp{X: fx, Y: fy})
	}
	g.lastX, g.lastY = x, y

	// Wheel offsets are positive away from the user, which zooms in.
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.handle(interact.Scroll{X: fx, Y: fy, DeltaY: -dy})
	}

	for key, mode := range map[ebiten.Key]render.GlyphMode{
		ebiten.Key1: render.Points,
		ebiten.Key2: render.Ellipses,
		ebiten.Key3: render.UncertaintyBars,
	} {
		if inpututil.IsKeyJustPressed(key) && g.p.Style().Mode != mode {
			if err := g.p.SetGlyphMode(mode); err != nil {
				log.Print(err)
			}
			g.dirty = true
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.p.SetPointsVisible(!g.p.Style().PointsVisible)
		g.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.p.Reset()
		g.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func (g *viewer) Draw(screen *ebiten.Image) {
	if g.dirty {
		g.p.Render(g.surf)
		g.dirty = false
	}
	screen.WritePixels(g.surf.Image().Pix)
}

func (g *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v := g.p.Viewport()
	return v.Width, v.Height
}

func main() {
	log.SetPrefix("isoview: ")
	log.SetFlags(0)

	var (
		flagMode        = flag.String("mode", "ellipses", "draw observations as `glyph`: points, ellipses, or bars")
		flagWidth       = flag.Int("width", 800, "window width in pixels")
		flagHeight      = flag.Int("height", 600, "window height in pixels")
		flagUncertainty = flag.String("uncertainty", "2s", "draw uncertainties at `multiplier`: 1s, 2s, 95%, or a number")
		flagSigma       = flag.String("sigma-format", "1s-abs", "input uncertainty `format`: 1s-abs, 2s-abs, 1s-pct, or 2s-pct")
		flagTitle       = flag.String("title", "", "plot `title` (default: input file name)")
		flagXLabel      = flag.String("xlabel", "", "x axis `label`")
		flagYLabel      = flag.String("ylabel", "", "y axis `label`")
		flagAnchor      = flag.String("anchor", "incremental", "drag anchor `mode`: incremental or fixed")
		flagZoomMode    = flag.String("zoom-mode", "cursor", "scroll zooms around `center`: origin or cursor")
		flagZoom        = flag.Float64("zoom", interact.DefaultZoom, "zoom `factor` per wheel step, in (1, 2)")
		flagComma       = flag.Bool("csv", false, "input is comma-separated instead of tab-separated")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [input]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	mode, err := render.ParseGlyphMode(*flagMode)
	if err != nil {
		log.Fatal(err)
	}
	mult, err := obs.ParseMultiplier(*flagUncertainty)
	if err != nil {
		log.Fatal(err)
	}
	sigma, err := obs.ParseFormat(*flagSigma)
	if err != nil {
		log.Fatal(err)
	}
	anchor, err := interact.ParseAnchorMode(*flagAnchor)
	if err != nil {
		log.Fatal(err)
	}
	zoomMode, err := interact.ParseZoomMode(*flagZoomMode)
	if err != nil {
		log.Fatal(err)
	}
	v := view.NewViewport(*flagWidth, *flagHeight)
	if !v.Valid() {
		log.Fatalf("window %dx%d is too small", v.Width, v.Height)
	}

	// Read input.
	path := "-"
	f := os.Stdin
	if flag.NArg() == 1 {
		path = flag.Arg(0)
		f, err = os.Open(path)
		if err != nil {
			log.Fatal(err)
		}
	}
	delim := '\t'
	if *flagComma {
		delim = ','
	}
	data, err := obs.Read(bufio.NewReader(f), delim)
	f.Close()
	if err != nil {
		log.Fatalf("%s: %v", path, err)
	}

	style := render.DefaultStyle(mode)
	style.Multiplier = mult
	style.Title = *flagTitle
	if style.Title == "" && path != "-" {
		style.Title = filepath.Base(path)
	}
	style.XLabel, style.YLabel = *flagXLabel, *flagYLabel

	p := plot.New(v, style)
	p.SetZoomFactor(*flagZoom)
	p.SetAnchorMode(anchor)
	p.SetZoomMode(zoomMode)
	if err := p.Refresh(obs.Normalize(data, sigma)); err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(v.Width, v.Height)
	ebiten.SetWindowTitle("isoview: " + path)
	if err := ebiten.RunGame(newViewer(p)); err != nil {
		log.Fatal(err)
	}
}
