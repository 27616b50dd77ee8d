package analysis

import (
	"math"
	"testing"
)

func TestPowerSpectrum_Empty(t *testing.T) {
	if ps := PowerSpectrum(nil); ps != nil {
		t.Errorf("expected nil for empty series, got %v", ps)
	}
}

func TestPowerSpectrum_DC(t *testing.T) {
	series := []float64{3, 3, 3, 3, 3, 3, 3, 3}
	ps := PowerSpectrum(series)

	if len(ps) != 4 {
		t.Fatalf("expected 4 bins, got %d", len(ps))
	}
	if ps[0] < ps[1] || ps[0] < ps[2] || ps[0] < ps[3] {
		t.Errorf("constant series should concentrate power at DC: %v", ps)
	}
	for i := 1; i < len(ps); i++ {
		if ps[i] > 1e-9 {
			t.Errorf("bin %d should be ~0 for a constant series, got %f", i, ps[i])
		}
	}
}

func TestPowerSpectrum_PeakAtSignalFrequency(t *testing.T) {
	// 64 samples of a sine with period 8 ticks: the peak lands in bin 8
	// (64/8 cycles over the window).
	n := 64
	series := make([]float64, n)
	for i := range series {
		series[i] = math.Sin(2 * math.Pi * float64(i) / 8)
	}

	ps := PowerSpectrum(series)
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > ps[maxIdx] {
			maxIdx = i
		}
	}
	if maxIdx != 8 {
		t.Errorf("expected peak at bin 8, got %d", maxIdx)
	}
}

func TestDominantPeriod(t *testing.T) {
	n := 64
	series := make([]float64, n)
	for i := range series {
		series[i] = 2 + math.Sin(2*math.Pi*float64(i)/8)
	}

	period := DominantPeriod(series)
	if math.Abs(period-8) > 0.01 {
		t.Errorf("expected period 8, got %f", period)
	}
}

func TestDominantPeriod_Flat(t *testing.T) {
	if p := DominantPeriod([]float64{1, 1, 1, 1}); p != 0 {
		t.Errorf("flat series should have no dominant period, got %f", p)
	}
	if p := DominantPeriod([]float64{1}); p != 0 {
		t.Errorf("single sample should have no dominant period, got %f", p)
	}
}

func TestKeyHistogram(t *testing.T) {
	ticks := [][]int{
		{40, 41},
		{40},
		{},
		{40, 87, -1, 200}, // out-of-range keys dropped
	}
	hist := KeyHistogram(ticks)

	if len(hist) != 88 {
		t.Fatalf("expected 88 bins, got %d", len(hist))
	}
	if hist[40] != 3 {
		t.Errorf("expected key 40 struck 3 times, got %f", hist[40])
	}
	if hist[41] != 1 || hist[87] != 1 {
		t.Errorf("unexpected counts: 41=%f 87=%f", hist[41], hist[87])
	}
	total := 0.0
	for _, v := range hist {
		total += v
	}
	if total != 5 {
		t.Errorf("expected 5 in-range strikes, got %f", total)
	}
}

func TestDensity(t *testing.T) {
	if d := Density(nil); d != 0 {
		t.Errorf("expected 0 for no ticks, got %f", d)
	}
	d := Density([][]int{{1, 2, 3}, {}, {5}})
	if math.Abs(d-4.0/3.0) > 1e-9 {
		t.Errorf("expected density 4/3, got %f", d)
	}
}

func TestActiveRange(t *testing.T) {
	low, high := ActiveRange([][]int{{40, 41}, {12}, {87}})
	if low != 12 || high != 87 {
		t.Errorf("expected range [12,87], got [%d,%d]", low, high)
	}

	low, high = ActiveRange([][]int{{}, {}})
	if low != 0 || high != 0 {
		t.Errorf("expected (0,0) for silent run, got (%d,%d)", low, high)
	}
}

func TestFlatness(t *testing.T) {
	even := make([]float64, 88)
	for i := range even {
		even[i] = 2
	}
	if f := Flatness(even); math.Abs(f-1) > 1e-9 {
		t.Errorf("even histogram should have flatness 1, got %f", f)
	}

	single := make([]float64, 88)
	single[40] = 10
	if f := Flatness(single); f != 0 {
		t.Errorf("single-key histogram should have flatness 0, got %f", f)
	}

	skewed := make([]float64, 88)
	skewed[40] = 100
	skewed[41] = 1
	f := Flatness(skewed)
	if f <= 0 || f >= 1 {
		t.Errorf("skewed histogram flatness should be in (0,1), got %f", f)
	}
}
