package lfo

import (
	"math"
	"testing"

	"github.com/soniclab/snth-go/internal/wave"
)

const rate = 44100

func TestRampInScalesOutput(t *testing.T) {
	const n = 512
	// dm chosen so the fade spans exactly the block.
	dm := float32(1.0 / n)

	ramped := make([]float32, n)
	full := make([]float32, n)
	var p1, p2 float32
	Render(ramped, n, wave.Square, 100, dm, 0, &p1, 1.0/rate)
	Render(full, n, wave.Square, 100, 0, 0, &p2, 1.0/rate)

	// Early samples are scaled well below the raw waveform.
	if math.Abs(float64(ramped[0])) >= math.Abs(float64(full[0])) {
		t.Fatalf("ramp did not attenuate first sample: %f vs %f", ramped[0], full[0])
	}
	for i := range ramped {
		want := float64(full[i]) * math.Min(float64(i)*float64(dm), 1)
		if math.Abs(float64(ramped[i])-want) > 1e-5 {
			t.Fatalf("ramp[%d] = %f, want %f", i, ramped[i], want)
		}
	}
}

func TestRampClampsAfterDelay(t *testing.T) {
	const n = 64
	out := make([]float32, n)
	plain := make([]float32, n)
	var p1, p2 float32
	// time is far past 1/dm, so the ramp multiplies by 1 throughout.
	Render(out, n, wave.Triangle, 5, 0.001, 100000, &p1, 1.0/rate)
	Render(plain, n, wave.Triangle, 5, 0, 0, &p2, 1.0/rate)
	for i := range out {
		if out[i] != plain[i] {
			t.Fatalf("ramp still active at %d: %f vs %f", i, out[i], plain[i])
		}
	}
}

func TestPhaseContinuity(t *testing.T) {
	const n = 128
	one := make([]float32, n)
	var p float32
	Render(one, n, wave.Triangle, 6, 0, 0, &p, 1.0/rate)

	two := make([]float32, n)
	p = 0
	Render(two[:n/2], n/2, wave.Triangle, 6, 0, 0, &p, 1.0/rate)
	Render(two[n/2:], n/2, wave.Triangle, 6, 0, float32(n/2), &p, 1.0/rate)

	for i := range one {
		if math.Abs(float64(one[i]-two[i])) > 1e-5 {
			t.Fatalf("split render diverges at %d: %f vs %f", i, one[i], two[i])
		}
	}
}

func TestZeroDelaySkipsRamp(t *testing.T) {
	const n = 16
	out := make([]float32, n)
	var p float32
	Render(out, n, wave.Square, 50, 0, 0, &p, 1.0/rate)
	for i, x := range out {
		if x != 1 && x != -1 {
			t.Fatalf("out[%d] = %f, expected raw square", i, x)
		}
	}
}
