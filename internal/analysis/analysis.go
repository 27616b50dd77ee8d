// Package analysis inspects the harvested key stream of a saved run:
// which keys dominated, and whether the board settled into a periodic
// texture (oscillator-heavy boards show up as spectral peaks in the
// notes-per-tick series).
package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude spectrum of the series, zero-padded to
// the next power of two. Only the first half is returned; the rest mirrors
// it for a real-valued input.
func PowerSpectrum(series []float64) []float64 {
	if len(series) == 0 {
		return nil
	}

	n := 1
	for n < len(series) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, series)

	spectrum := fft.FFTReal(padded)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod returns the period, in ticks, of the strongest non-DC
// component of the series, or 0 when the series is too short or flat.
func DominantPeriod(series []float64) float64 {
	ps := PowerSpectrum(series)
	if len(ps) < 2 {
		return 0
	}

	maxIdx := 0
	maxPower := 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 || maxPower < 1e-9 {
		return 0
	}

	// Padded length maps bin i to frequency i/(2*len(ps)) cycles per tick.
	n := float64(2 * len(ps))
	return n / float64(maxIdx)
}

// KeyHistogram counts how often each of the 88 keys was struck over a run.
func KeyHistogram(ticks [][]int) []float64 {
	hist := make([]float64, 88)
	for _, keys := range ticks {
		for _, k := range keys {
			if k >= 0 && k < len(hist) {
				hist[k]++
			}
		}
	}
	return hist
}

// Density returns the mean number of keys struck per tick.
func Density(ticks [][]int) float64 {
	if len(ticks) == 0 {
		return 0
	}
	total := 0
	for _, keys := range ticks {
		total += len(keys)
	}
	return float64(total) / float64(len(ticks))
}

// ActiveRange returns the lowest and highest key that sounded, or (0, 0)
// when nothing was played.
func ActiveRange(ticks [][]int) (low, high int) {
	low, high = -1, -1
	for _, keys := range ticks {
		for _, k := range keys {
			if low == -1 || k < low {
				low = k
			}
			if k > high {
				high = k
			}
		}
	}
	if low == -1 {
		return 0, 0
	}
	return low, high
}

// Flatness measures how evenly the histogram spreads over the keys that
// sounded: 1 for perfectly even use, approaching 0 for a single hot key.
func Flatness(hist []float64) float64 {
	sum := 0.0
	active := 0
	for _, v := range hist {
		if v > 0 {
			sum += v
			active++
		}
	}
	if active <= 1 || sum == 0 {
		return 0
	}

	// Normalized entropy over the active keys.
	entropy := 0.0
	for _, v := range hist {
		if v > 0 {
			p := v / sum
			entropy -= p * math.Log(p)
		}
	}
	return entropy / math.Log(float64(active))
}
