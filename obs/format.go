// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obs

import (
	"fmt"
	"strconv"
	"strings"
)

// Format is the way uncertainty columns are expressed in input data.
type Format int

const (
	OneSigmaAbs Format = iota // 1σ, absolute
	TwoSigmaAbs               // 2σ, absolute
	OneSigmaPct               // 1σ, percent of the value
	TwoSigmaPct               // 2σ, percent of the value
)

var formatNames = []string{
	OneSigmaAbs: "1s-abs",
	TwoSigmaAbs: "2s-abs",
	OneSigmaPct: "1s-pct",
	TwoSigmaPct: "2s-pct",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat parses a format name as produced by Format.String.
func ParseFormat(s string) (Format, error) {
	for i, name := range formatNames {
		if strings.EqualFold(s, name) {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("unknown uncertainty format %q", s)
}

// Sigma converts an uncertainty sigma on value from format f to a 1σ
// absolute uncertainty.
func (f Format) Sigma(value, sigma float64) float64 {
	switch f {
	case TwoSigmaAbs:
		return sigma / 2
	case OneSigmaPct:
		return sigma * value / 100
	case TwoSigmaPct:
		return sigma * value / 200
	}
	return sigma
}

// Normalize returns a copy of os with SigmaX and SigmaY converted from
// format f to 1σ absolute.
func Normalize(os []Observation, f Format) []Observation {
	out := make([]Observation, len(os))
	for i, o := range os {
		o.SigmaX = f.Sigma(o.X, o.SigmaX)
		o.SigmaY = f.Sigma(o.Y, o.SigmaY)
		out[i] = o
	}
	return out
}

// Uncertainty multipliers applied to 1σ values when drawing.
const (
	OneSigma = 1.0
	TwoSigma = 2.0
	// Conf95 is the multiplier of a 95% confidence region for a
	// bivariate normal distribution.
	Conf95 = 2.4477
)

// ParseMultiplier parses an uncertainty multiplier. It accepts "1s",
// "2s", "95%", or a positive number.
func ParseMultiplier(s string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1s", "1sigma", "1σ":
		return OneSigma, nil
	case "2s", "2sigma", "2σ":
		return TwoSigma, nil
	case "95%", "conf95":
		return Conf95, nil
	}
	m, err := strconv.ParseFloat(s, 64)
	if err != nil || !(m > 0) || !isFinite(m) {
		return 0, fmt.Errorf("bad uncertainty multiplier %q", s)
	}
	return m, nil
}
