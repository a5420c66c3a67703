// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command isoplot plots isotope-ratio observations as points, error
// ellipses, or uncertainty bars.
//
// isoplot reads delimited text with a header row. The "x" and "y"
// columns are required; "sigma_x", "sigma_y", and "rho" are optional.
// Common spellings such as "sx" or "corr" are recognized. With no
// input files, isoplot reads standard input.
//
// The plot is written as SVG or PNG. An event script given with
// -events replays pointer and wheel input against the plot before it
// is drawn, which makes it possible to render a zoomed or panned view
// without a window. Use isoview to explore a plot interactively.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"
	"unicode/utf8"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-isoplot/interact"
	"github.com/aclements/go-isoplot/obs"
	"github.com/aclements/go-isoplot/plot"
	"github.com/aclements/go-isoplot/render"
	"github.com/aclements/go-isoplot/render/rastersurf"
	"github.com/aclements/go-isoplot/render/svgsurf"
	"github.com/aclements/go-isoplot/view"
	"golang.org/x/crypto/ssh/terminal"
)

func main() {
	log.SetPrefix("isoplot: ")
	log.SetFlags(0)

	var (
		flagCPUProfile  = flag.String("cpuprofile", "", "write CPU profile to `file`")
		flagMemProfile  = flag.String("memprofile", "", "write heap profile to `file`")
		flagOut         = flag.String("o", "", "write output to `file` (default: stdout)")
		flagFormat      = flag.String("format", "", "output `format`: svg or png (default: from -o, else svg)")
		flagTable       = flag.Bool("table", false, "output a table instead of a plot")
		flagMode        = flag.String("mode", "ellipses", "draw observations as `glyph`: points, ellipses, or bars")
		flagWidth       = flag.Int("width", 600, "plot width in pixels")
		flagHeight      = flag.Int("height", 450, "plot height in pixels")
		flagLeft        = flag.Int("left", view.DefaultLeft, "left margin in pixels")
		flagTop         = flag.Int("top", view.DefaultTop, "top margin in pixels")
		flagUncertainty = flag.String("uncertainty", "2s", "draw uncertainties at `multiplier`: 1s, 2s, 95%, or a number")
		flagSigma       = flag.String("sigma-format", "1s-abs", "input uncertainty `format`: 1s-abs, 2s-abs, 1s-pct, or 2s-pct")
		flagTitle       = flag.String("title", "", "plot `title` (default: input file names)")
		flagXLabel      = flag.String("xlabel", "", "x axis `label`")
		flagYLabel      = flag.String("ylabel", "", "y axis `label`")
		flagEvents      = flag.String("events", "", "replay the event script in `file` before drawing")
		flagAnchor      = flag.String("anchor", "incremental", "drag anchor `mode`: incremental or fixed")
		flagZoomMode    = flag.String("zoom-mode", "origin", "scroll zooms around `center`: origin or cursor")
		flagZoom        = flag.Float64("zoom", interact.DefaultZoom, "zoom `factor` per scroll step, in (1, 2)")
		flagHidePoints  = flag.Bool("hide-points", false, "do not draw points over ellipses or bars")
		flagMinor       = flag.Int("minor", -1, "divide tick intervals into `n` minor ticks (default: by mode)")
		flagDelim       = flag.String("delim", "tab", "input field `delimiter`: tab or a single character")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [inputs...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *flagCPUProfile != "" {
		f, err := os.Create(*flagCPUProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if *flagMemProfile != "" {
		defer func() {
			runtime.GC()
			f, err := os.Create(*flagMemProfile)
			if err != nil {
				log.Fatal(err)
			}
			pprof.WriteHeapProfile(f)
			f.Close()
		}()
	}

	// Validate flags before reading anything.
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
	delim, err := parseDelim(*flagDelim)
	if err != nil {
		log.Fatal(err)
	}
	format, err := outputFormat(*flagFormat, *flagOut)
	if err != nil {
		log.Fatal(err)
	}
	v := view.Viewport{Width: *flagWidth, Height: *flagHeight, Left: *flagLeft, Top: *flagTop}
	if !v.Valid() {
		log.Fatalf("margins %dx%d leave no room in a %dx%d plot", v.Left, v.Top, v.Width, v.Height)
	}

	// Parse observation inputs.
	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	var data []obs.Observation
	for _, path := range paths {
		func() {
			f := os.Stdin
			if path != "-" {
				var err error
				f, err = os.Open(path)
				if err != nil {
					log.Fatal(err)
				}
				defer f.Close()
			}

			batch, err := obs.Read(bufio.NewReader(f), delim)
			if err != nil {
				log.Fatalf("%s: %v", path, err)
			}
			data = append(data, batch...)
		}()
	}
	data = obs.Normalize(data, sigma)

	// Build the plot.
	style := render.DefaultStyle(mode)
	style.Multiplier = mult
	style.PointsVisible = !*flagHidePoints
	if *flagMinor >= 0 {
		style.MinorTicks = *flagMinor
	}
	style.Title = *flagTitle
	if style.Title == "" && !(len(paths) == 1 && paths[0] == "-") {
		names := make([]string, len(paths))
		for i, path := range paths {
			names[i] = filepath.Base(path)
		}
		style.Title = strings.Join(names, " ")
	}
	style.XLabel, style.YLabel = *flagXLabel, *flagYLabel

	p := plot.New(v, style)
	p.SetZoomFactor(*flagZoom)
	p.SetAnchorMode(anchor)
	p.SetZoomMode(zoomMode)
	if err := p.Refresh(data); err != nil {
		log.Fatal(err)
	}

	if *flagEvents != "" {
		f, err := os.Open(*flagEvents)
		if err != nil {
			log.Fatal(err)
		}
		steps, err := parseScript(f)
		f.Close()
		if err != nil {
			log.Fatalf("%s: %v", *flagEvents, err)
		}
		if _, err := runScript(p, steps); err != nil {
			log.Fatalf("%s: %v", *flagEvents, err)
		}
	}

	// Prepare for output.
	out := os.Stdout
	if *flagOut != "" {
		var err error
		out, err = os.Create(*flagOut)
		if err != nil {
			log.Fatal(err)
		}
		defer out.Close()
	} else if format == "png" && !*flagTable && terminal.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatal("refusing to write PNG to a terminal; use -o")
	}

	// Output table.
	if *flagTable {
		table.Fprint(out, observationsToTable(p.Observations(), p.Range(), p.Viewport()))
		return
	}

	// Render plot.
	errs, err := draw(out, format, p)
	if err != nil {
		log.Fatal(err)
	}
	if len(errs) > 0 {
		log.Printf("%d plot elements skipped", len(errs))
	}
}

// draw renders p to w in the given format. It returns the elements
// that could not be drawn and any error writing the output.
func draw(w io.Writer, format string, p *plot.Plot) ([]error, error) {
	v := p.Viewport()
	switch format {
	case "svg":
		bw := bufio.NewWriter(w)
		s := svgsurf.New(bw, v.Width, v.Height)
		errs := p.Render(s)
		s.Close()
		return errs, bw.Flush()
	case "png":
		s := rastersurf.New(v.Width, v.Height)
		errs := p.Render(s)
		return errs, s.WritePNG(w)
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// outputFormat returns the output format name, or the one implied by
// the extension of the output path if name is empty.
func outputFormat(name, path string) (string, error) {
	switch name {
	case "svg", "png":
		return name, nil
	case "":
		if strings.EqualFold(filepath.Ext(path), ".png") {
			return "png", nil
		}
		return "svg", nil
	}
	return "", fmt.Errorf("unknown output format %q (want svg or png)", name)
}

func parseDelim(s string) (rune, error) {
	switch s {
	case "tab", `\t`:
		return '\t', nil
	case "comma":
		return ',', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return r, nil
}
