// Package table builds fixed-point sine lookup tables for table-lookup
// synthesis on small microcontrollers.
package table

import (
	"fmt"
	"math"
)

const (
	// N is the number of samples in one full-wave table.
	N = 256

	// Scale is the largest positive 16-bit signed value.
	Scale = 32767

	// Fs is the playback rate the firmware runs the table at. It does not
	// enter the table computation; only the WAV preview uses it.
	Fs = 22000.0

	// DefaultFileName is the header the firmware build includes.
	DefaultFileName = "sinewave_256.h"
)

// Table is an ordered sequence of quantized samples covering one period.
type Table []int

// Generate computes n evenly spaced samples of one sine period scaled by
// scale. Conversion truncates toward zero; values near the zero crossings
// are not rounded.
func Generate(n int, scale float64) (Table, error) {
	if n <= 0 {
		return nil, fmt.Errorf("table length must be positive, got %d", n)
	}
	if scale <= 0 || scale > Scale {
		return nil, fmt.Errorf("scale must be in (0, %d], got %g", Scale, scale)
	}

	t := make(Table, n)
	for i := range t {
		// Phase is i/n*2*pi in that order so the float result matches
		// previously shipped tables.
		phase := float64(i) / float64(n) * 2 * math.Pi
		t[i] = int(scale * math.Sin(phase))
	}

	return t, nil
}

// Default returns the 256-point full-scale table.
func Default() Table {
	t, err := Generate(N, Scale)
	if err != nil {
		panic(err)
	}
	return t
}

// Float64 returns the samples normalized to [-1.0, 1.0].
func (t Table) Float64() []float64 {
	out := make([]float64, len(t))
	for i, v := range t {
		out[i] = float64(v) / Scale
	}
	return out
}

// Mismatch describes one index where two tables disagree.
type Mismatch struct {
	Index int
	Want  int
	Got   int
}

func (m Mismatch) String() string {
	return fmt.Sprintf("index %d: want %d, got %d", m.Index, m.Want, m.Got)
}

// Compare returns every index where got differs from want. Indices past the
// end of the shorter table are reported with a zero value on the missing side.
func Compare(want, got Table) []Mismatch {
	var out []Mismatch
	n := max(len(want), len(got))
	for i := 0; i < n; i++ {
		var w, g int
		if i < len(want) {
			w = want[i]
		}
		if i < len(got) {
			g = got[i]
		}
		if i >= len(want) || i >= len(got) || w != g {
			out = append(out, Mismatch{Index: i, Want: w, Got: g})
		}
	}
	return out
}
