package filter

import (
	"math"
	"testing"
)

// renders a sine at freq through the filter with a constant cutoff and
// returns the RMS of the second half (after the filter settles).
func filteredRMS(mode int, freq, cutoff float64) float64 {
	const rate = 44100.0
	const n = 2048

	wave := make([]float32, n)
	for i := range wave {
		wave[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / rate))
	}

	cut := make([]float32, n)
	for i := range cut {
		cut[i] = float32(cutoff)
	}

	b := make([]float32, n)
	k := make([]float32, n)
	Coeffs(b, k, cut, 0, n)

	var s State
	Run(&s, wave, n, mode, b, k)

	var sum float64
	for _, x := range wave[n/2:] {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum / (n / 2))
}

func TestLPFAttenuatesHighMore(t *testing.T) {
	low := filteredRMS(LPF, 220, 0.2)
	high := filteredRMS(LPF, 8000, 0.2)
	if high >= low {
		t.Fatalf("LPF passed high band: low rms %f, high rms %f", low, high)
	}
}

func TestHPFAttenuatesLowMore(t *testing.T) {
	low := filteredRMS(HPF, 220, 0.5)
	high := filteredRMS(HPF, 8000, 0.5)
	if low >= high {
		t.Fatalf("HPF passed low band: low rms %f, high rms %f", low, high)
	}
}

func TestOpenLPFPasses(t *testing.T) {
	rms := filteredRMS(LPF, 440, 1.0)
	if rms < 0.4 {
		t.Fatalf("wide-open LPF attenuated a mid tone: rms %f", rms)
	}
}

func TestCoeffs(t *testing.T) {
	cut := []float32{0, 0.25, 0.5, 1}
	b := make([]float32, 4)
	k := make([]float32, 4)
	Coeffs(b, k, cut, 0.5, 4)

	for i, c := range cut {
		q := 1 - float64(c)
		wantB := float64(c) + 0.8*float64(c)*q
		wantK := 0.5 * (1 + 0.5*q*(1-q+5.6*q*q))
		if math.Abs(float64(b[i])-wantB) > 1e-6 {
			t.Fatalf("b[%d] = %f, want %f", i, b[i], wantB)
		}
		if math.Abs(float64(k[i])-wantK) > 1e-6 {
			t.Fatalf("k[%d] = %f, want %f", i, k[i], wantK)
		}
	}
}

func TestResonanceScalesFeedback(t *testing.T) {
	cut := []float32{0.5, 0.5, 0.5, 0.5}
	b := make([]float32, 4)
	k0 := make([]float32, 4)
	k1 := make([]float32, 4)
	Coeffs(b, k0, cut, 0, 4)
	Coeffs(b, k1, cut, 1, 4)
	if k0[0] != 0 {
		t.Fatalf("zero resonance should zero feedback, got %f", k0[0])
	}
	if k1[0] <= 0 {
		t.Fatalf("full resonance should produce positive feedback, got %f", k1[0])
	}
}

func TestReset(t *testing.T) {
	s := State{B0: 1, B1: 2, B2: 3, B3: 4, B4: 5}
	s.Reset()
	if s != (State{}) {
		t.Fatalf("state not cleared: %+v", s)
	}
}

func TestStateCarriesAcrossBlocks(t *testing.T) {
	const n = 64
	in := make([]float32, 2*n)
	for i := range in {
		in[i] = float32(math.Sin(2 * math.Pi * 440 * float64(i) / 44100))
	}

	cut := make([]float32, 2*n)
	for i := range cut {
		cut[i] = 0.3
	}
	b := make([]float32, 2*n)
	k := make([]float32, 2*n)
	Coeffs(b, k, cut, 0.2, 2*n)

	// One pass over 2n samples.
	one := make([]float32, 2*n)
	copy(one, in)
	var s1 State
	Run(&s1, one, 2*n, LPF, b, k)

	// Two passes of n samples with carried state.
	two := make([]float32, 2*n)
	copy(two, in)
	var s2 State
	Run(&s2, two[:n], n, LPF, b, k)
	Run(&s2, two[n:], n, LPF, b[n:], k[n:])

	for i := range one {
		if math.Abs(float64(one[i]-two[i])) > 1e-6 {
			t.Fatalf("block split diverges at %d: %f vs %f", i, one[i], two[i])
		}
	}
}
