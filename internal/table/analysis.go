package table

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the level and spectral content of a table.
type Stats struct {
	Length    int
	Min       int
	Max       int
	PeakIndex int     // Index of the first maximum sample
	Mean      float64 // DC offset, normalized
	RMS       float64 // Normalized to full scale

	// FundamentalRatio is the share of total energy in the first FFT bin
	// above DC, i.e. one cycle per table.
	FundamentalRatio float64
	// THD is the RMS of all harmonics above the fundamental relative to it.
	THD float64
}

// Analyze computes Stats for t.
func Analyze(t Table) (*Stats, error) {
	if len(t) == 0 {
		return nil, errors.New("table is empty")
	}

	data := t.Float64()
	peak := floats.MaxIdx(data)

	s := &Stats{
		Length:    len(t),
		Min:       t[floats.MinIdx(data)],
		Max:       t[peak],
		PeakIndex: peak,
		Mean:      stat.Mean(data, nil),
		RMS:       math.Sqrt(floats.Dot(data, data) / float64(len(data))),
	}

	s.FundamentalRatio, s.THD = spectrum(data)

	return s, nil
}

// spectrum returns the fundamental's share of energy and the harmonic
// distortion relative to it, using a real FFT over exactly one period.
func spectrum(data []float64) (ratio, thd float64) {
	n := len(data)
	coeffs := fourier.NewFFT(n).Coefficients(nil, data)
	if len(coeffs) < 2 {
		return 0, 0
	}

	power := make([]float64, len(coeffs))
	for k, c := range coeffs {
		p := cmplx.Abs(c)
		p *= p
		// Bins other than DC and Nyquist stand for a conjugate pair.
		if k != 0 && !(n%2 == 0 && k == n/2) {
			p *= 2
		}
		power[k] = p
	}

	total := floats.Sum(power)
	fundamental := power[1]
	if total == 0 || fundamental == 0 {
		return 0, 0
	}

	harmonics := floats.Sum(power[2:])
	return fundamental / total, math.Sqrt(harmonics / fundamental)
}
