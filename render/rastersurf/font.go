// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rastersurf

import (
	"log"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var fonts struct {
	sync.Mutex
	parsed bool
	font   *opentype.Font
	faces  map[float64]font.Face
}

// faceFor returns a Go Regular face of the given pixel size. If the
// font cannot be loaded, it falls back to a fixed 7x13 bitmap face.
func faceFor(size float64) font.Face {
	fonts.Lock()
	defer fonts.Unlock()
	if !fonts.parsed {
		fonts.parsed = true
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			log.Printf("rastersurf: loading Go font: %v", err)
		}
		fonts.font = f
		fonts.faces = make(map[float64]font.Face)
	}
	if fonts.font == nil || !(size > 0) {
		return basicfont.Face7x13
	}
	if face, ok := fonts.faces[size]; ok {
		return face
	}
	face, err := opentype.NewFace(fonts.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.Printf("rastersurf: %v", err)
		return basicfont.Face7x13
	}
	fonts.faces[size] = face
	return face
}
