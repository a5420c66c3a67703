// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ticks places axis tick marks at "nice" decimal values.
//
// Tick spacing is chosen with Heckbert's nice-number algorithm [1]:
// the spacing is always 1, 2, or 5 times a power of ten, and the ticks
// extend from a multiple of the spacing at or below the axis minimum to
// a multiple at or above the axis maximum.
//
// [1] Paul Heckbert, "Nice Numbers for Graph Labels", Graphics Gems,
// Academic Press, 1990.
package ticks

import (
	"math"
	"strconv"
	"strings"
)

// maxTarget bounds the requested tick count so a huge request cannot
// produce millions of ticks.
const maxTarget = 1000

// maxCount bounds the number of generated ticks.
const maxCount = 10 * maxTarget

// resolutionUlps is the smallest tick step, in units in the last place
// of the larger axis bound.
const resolutionUlps = 16

// A Set is an ordered sequence of uniformly spaced tick values.
type Set struct {
	// Values are the tick values in increasing order, rounded to
	// Prec fractional decimal digits.
	Values []float64

	// Step is the spacing between consecutive values. It is 0 if
	// there are fewer than two values.
	Step float64

	// Prec is the number of fractional digits in tick labels.
	Prec int

	// Major is the index of the first tick whose label ends in the
	// most zeros. It is used to pick out the "round" ticks.
	Major int
}

// Generate returns about n nice ticks covering [min, max].
//
// Generate never fails. If max <= min, or either bound is not finite,
// it returns a single tick at min (or no ticks if min is not finite).
func Generate(min, max float64, n int) Set {
	if !isFinite(min) {
		return Set{}
	}
	if !isFinite(max) || max <= min || !isFinite(max-min) {
		return Set{Values: []float64{min}}
	}
	if n > maxTarget {
		n = maxTarget
	}
	div := float64(n - 1)
	if n <= 1 {
		div = 1
	}

	span := niceNum(max-min, true)
	d := niceNum(span/div, false)
	if res := Resolution(min, max); d < res {
		// Finer steps would repeat values at this magnitude.
		d = niceNum(res, false)
	}
	if !(d > 0) || !isFinite(d) {
		return Set{Values: []float64{min}}
	}
	lo := math.Floor(min/d) * d
	hi := math.Ceil(max/d) * d
	count := int((hi+0.5*d-lo)/d) + 1
	if count < 1 || count > maxCount {
		return Set{Values: []float64{min}}
	}

	prec := 0
	if e := exp10(d); e < 0 {
		prec = -e
	}
	vals := make([]float64, 0, count+1)
	for k := 0; k < count; k++ {
		v := lo + float64(k)*d
		if v >= hi+0.5*d {
			break
		}
		vals = append(vals, round(v, prec))
	}
	// Floating-point error in the floor/ceil can leave the ends a
	// hair inside the range.
	if vals[len(vals)-1] < max {
		vals = append(vals, round(vals[len(vals)-1]+d, prec))
	}
	if vals[0] > min {
		vals = append([]float64{round(vals[0]-d, prec)}, vals...)
	}

	s := Set{Values: vals, Step: d, Prec: prec}
	if len(vals) < 2 {
		s.Step = 0
	}
	s.Major = majorIndex(s.Labels())
	return s
}

// Resolution returns the smallest step Generate uses for an axis
// spanning [min, max]. Ticks any closer would not be distinct
// float64 values at that magnitude.
func Resolution(min, max float64) float64 {
	m := math.Max(math.Abs(min), math.Abs(max))
	return resolutionUlps * (math.Nextafter(m, math.Inf(1)) - m)
}

// ForPixels returns ticks for [min, max] drawn along an axis that is
// pixels long, aiming for one tick every spacing pixels.
func ForPixels(min, max, pixels, spacing float64) Set {
	n := 2
	if spacing > 0 && pixels/spacing > 2 {
		n = int(pixels / spacing)
	}
	return Generate(min, max, n)
}

// niceNum returns a nice number near x. If round is true, it rounds
// the significand of x to the nearest of 1, 2, 5, or 10; otherwise it
// takes the smallest of those that is >= the significand.
func niceNum(x float64, round bool) float64 {
	exp := exp10(x)
	f := x / math.Pow10(exp)
	var nf float64
	if round {
		switch {
		case f < 1.5:
			nf = 1
		case f < 3:
			nf = 2
		case f < 7:
			nf = 5
		default:
			nf = 10
		}
	} else {
		switch {
		case f <= 1:
			nf = 1
		case f <= 2:
			nf = 2
		case f <= 5:
			nf = 5
		default:
			nf = 10
		}
	}
	if nf == 10 {
		return math.Pow10(exp + 1)
	}
	return nf * math.Pow10(exp)
}

// exp10 returns floor(log10(x)) for x > 0. math.Log10 can land a hair
// below an exact power of ten (Log10(1000) is 2.9999999999999996), so
// the estimate is corrected against math.Pow10.
func exp10(x float64) int {
	e := int(math.Floor(math.Log10(x)))
	if math.Pow10(e+1) <= x {
		e++
	} else if math.Pow10(e) > x {
		e--
	}
	return e
}

// round rounds x half away from zero to prec fractional digits.
func round(x float64, prec int) float64 {
	p := math.Pow(10, float64(prec))
	r := math.Round(x*p) / p
	if !isFinite(r) {
		return x
	}
	if r == 0 {
		// Drop negative zero so it doesn't print as "-0".
		return 0
	}
	return r
}

func isFinite(x float64) bool {
	return !(math.IsNaN(x) || math.IsInf(x, 0))
}

// Label returns the plain decimal text of v with s.Prec fractional
// digits.
func (s Set) Label(v float64) string {
	return strconv.FormatFloat(v, 'f', s.Prec, 64)
}

// Labels returns the plain decimal text of each tick.
func (s Set) Labels() []string {
	labels := make([]string, len(s.Values))
	for i, v := range s.Values {
		labels[i] = s.Label(v)
	}
	return labels
}

func majorIndex(labels []string) int {
	for _, zeros := range []string{"000", "00", "0"} {
		for i, l := range labels {
			if strings.HasSuffix(l, zeros) {
				return i
			}
		}
	}
	return 0
}

func trailingZeros(label string) int {
	return len(label) - len(strings.TrimRight(label, "0"))
}

// IsMajor reports whether tick i is as round as the tick at s.Major,
// that is, whether its label ends in at least as many zeros.
func (s Set) IsMajor(i int) bool {
	if i < 0 || i >= len(s.Values) {
		return false
	}
	if s.Major >= len(s.Values) {
		return true
	}
	return trailingZeros(s.Label(s.Values[i])) >= trailingZeros(s.Label(s.Values[s.Major]))
}

// Minor returns the ticks that divide each interval between
// consecutive values of s into n equal parts, excluding the values
// themselves. It returns nil if n < 2 or s has fewer than two values.
func (s Set) Minor(n int) []float64 {
	if n < 2 || len(s.Values) < 2 {
		return nil
	}
	minor := make([]float64, 0, (len(s.Values)-1)*(n-1))
	sub := s.Step / float64(n)
	for _, v := range s.Values[:len(s.Values)-1] {
		for k := 1; k < n; k++ {
			minor = append(minor, v+float64(k)*sub)
		}
	}
	return minor
}

// Within returns the indexes of the ticks in [lo, hi].
func (s Set) Within(lo, hi float64) []int {
	var idx []int
	for i, v := range s.Values {
		if v >= lo && v <= hi {
			idx = append(idx, i)
		}
	}
	return idx
}
