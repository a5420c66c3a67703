// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obs

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// Column names used by FromTable and ReadTable.
const (
	ColX      = "x"
	ColY      = "y"
	ColSigmaX = "sigma_x"
	ColSigmaY = "sigma_y"
	ColRho    = "rho"

	// ColSelected is an optional column of booleans (true/false or
	// 1/0). Rows where it is false are marked Unselected; blank
	// cells are selected.
	ColSelected = "selected"
)

// FromColumns builds observations from parallel columns. x and y are
// required. sigmaX, sigmaY, and rho may be nil, in which case they
// read as zero; otherwise they must have the same length as x.
func FromColumns(x, y, sigmaX, sigmaY, rho []float64) ([]Observation, error) {
	n := len(x)
	for _, c := range []struct {
		name string
		col  []float64
		opt  bool
	}{
		{ColY, y, false},
		{ColSigmaX, sigmaX, true},
		{ColSigmaY, sigmaY, true},
		{ColRho, rho, true},
	} {
		if c.col == nil && c.opt {
			continue
		}
		if len(c.col) != n {
			return nil, fmt.Errorf("column %s has %d values, want %d", c.name, len(c.col), n)
		}
	}

	at := func(col []float64, i int) float64 {
		if col == nil {
			return 0
		}
		return col[i]
	}
	os := make([]Observation, n)
	for i := range os {
		os[i] = Observation{
			X:      x[i],
			Y:      y[i],
			SigmaX: at(sigmaX, i),
			SigmaY: at(sigmaY, i),
			Rho:    at(rho, i),
		}
	}
	return os, nil
}

// FromTable builds observations from the numeric columns of t. The
// "x" and "y" columns are required; "sigma_x", "sigma_y", "rho", and
// "selected" are optional. A cell that is not a number reads as NaN,
// so Check rejects that observation alone.
func FromTable(t *table.Table) ([]Observation, error) {
	var cols [5][]float64
	for i, name := range []string{ColX, ColY, ColSigmaX, ColSigmaY, ColRho} {
		col := t.Column(name)
		if col == nil {
			if i < 2 {
				return nil, fmt.Errorf("table has no %q column", name)
			}
			continue
		}
		fs, err := toFloats(col)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		cols[i] = fs
	}
	os, err := FromColumns(cols[0], cols[1], cols[2], cols[3], cols[4])
	if err != nil {
		return nil, err
	}
	if col := t.Column(ColSelected); col != nil {
		sel, err := toSelected(col)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", ColSelected, err)
		}
		for i, ok := range sel {
			os[i].Unselected = !ok
		}
	}
	return os, nil
}

func toFloats(col table.Slice) (fs []float64, err error) {
	switch col := col.(type) {
	case []float64:
		return col, nil
	case []string:
		fs = make([]float64, len(col))
		for i, s := range col {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				v = math.NaN()
			}
			fs[i] = v
		}
		return fs, nil
	}
	// slice.Convert panics if the element types are not
	// convertible, for example a column of strings.
	defer func() {
		if r := recover(); r != nil {
			fs, err = nil, fmt.Errorf("not numeric: %v", r)
		}
	}()
	slice.Convert(&fs, col)
	return fs, nil
}

// toSelected reads a selection flag column. Numeric columns are
// selected where nonzero.
func toSelected(col table.Slice) ([]bool, error) {
	strs, ok := col.([]string)
	if !ok {
		fs, err := toFloats(col)
		if err != nil {
			return nil, err
		}
		sel := make([]bool, len(fs))
		for i, v := range fs {
			sel[i] = v != 0
		}
		return sel, nil
	}
	sel := make([]bool, len(strs))
	for i, s := range strs {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			sel[i] = true
			continue
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("row %d: %q is not true or false", i+1, s)
		}
		sel[i] = b
	}
	return sel, nil
}

// ReadTable reads delimited text with a header row into a table.
// Header names are normalized with ColumnName. Columns whose values
// all parse as numbers become numeric columns.
func ReadTable(r io.Reader, delim rune) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no header row")
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = ColumnName(h)
	}
	return table.TableFromStrings(header, rows[1:], true), nil
}

// ColumnName maps common spellings of observation column headers to
// the names FromTable expects. Unknown names are lower-cased.
func ColumnName(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer(" ", "_", "-", "_", "σ", "sigma").Replace(h)
	switch h {
	case "sx", "sigmax", "sigma_x", "err_x", "x_err":
		return ColSigmaX
	case "sy", "sigmay", "sigma_y", "err_y", "y_err":
		return ColSigmaY
	case "r", "corr", "rho":
		return ColRho
	case "sel", "select", "selected":
		return ColSelected
	}
	return h
}

// Read reads delimited text with a header row and returns its
// observations. See ReadTable and FromTable.
func Read(r io.Reader, delim rune) ([]Observation, error) {
	t, err := ReadTable(r, delim)
	if err != nil {
		return nil, err
	}
	return FromTable(t)
}
