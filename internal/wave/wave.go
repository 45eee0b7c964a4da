// Package wave evaluates oscillator waveforms over blocks of phase
// values and provides the phase accumulators that produce them.
//
// Phases are nominally in [0,1) but accumulators emit them unwrapped;
// callers apply Wrap before Eval. Block lengths are multiples of 4.
package wave

import "math/rand"

// Waveform selectors.
const (
	Sine = iota
	Square
	Triangle
	Saw
	Noise
)

const (
	pi    = 3.1415926535897932
	twoPi = 6.2831853071795864

	// Reciprocal factorials for the sine Taylor series.
	r3f = 0.1666666666666666
	r5f = 0.0083333333333333
	r7f = 0.0001984126984126
)

// Eval computes the amplitude of the selected waveform for each phase
// value. Unknown selectors leave dst untouched.
func Eval(dst, phase []float32, n int, mode int) {
	switch mode {
	case Sine:
		evalSine(dst, phase, n)
	case Square:
		evalSquare(dst, phase, n)
	case Triangle:
		evalTriangle(dst, phase, n)
	case Saw:
		evalSaw(dst, phase, n)
	case Noise:
		evalNoise(dst, n)
	}
}

// evalSine maps each phase to [-pi,+pi], folds it into [-pi/2,+pi/2],
// and evaluates the Taylor polynomial through the x^7/7! term. The
// folded range keeps the truncation error below 2^-12.
func evalSine(dst, phase []float32, n int) {
	dst = dst[:n]
	phase = phase[:n]
	for i := range dst {
		x := twoPi*phase[i] - pi
		if g := pi - x; x > g {
			x = g
		}
		if l := -pi - x; x < l {
			x = l
		}
		sqr := x * x
		s := x
		x *= sqr
		s -= x * r3f
		x *= sqr
		s += x * r5f
		x *= sqr
		s -= x * r7f
		dst[i] = s
	}
}

func evalSquare(dst, phase []float32, n int) {
	dst = dst[:n]
	phase = phase[:n]
	for i := range dst {
		if phase[i] < 0.5 {
			dst[i] = 1
		} else {
			dst[i] = -1
		}
	}
}

func evalTriangle(dst, phase []float32, n int) {
	dst = dst[:n]
	phase = phase[:n]
	for i := range dst {
		t1 := 4 * phase[i]
		t2 := 2 - t1
		t3 := t1 - 4
		if t1 > t2 {
			t1 = t2
		}
		if t1 < t3 {
			t1 = t3
		}
		dst[i] = t1
	}
}

func evalSaw(dst, phase []float32, n int) {
	dst = dst[:n]
	phase = phase[:n]
	for i := range dst {
		dst[i] = 2*phase[i] - 1
	}
}

func evalNoise(dst []float32, n int) {
	dst = dst[:n]
	for i := range dst {
		dst[i] = 2*rand.Float32() - 1
	}
}

// Wrap reduces each phase to its fractional part.
func Wrap(phase []float32, n int) {
	phase = phase[:n]
	for i := 0; i+3 < len(phase); i += 4 {
		phase[i+0] = Frac(phase[i+0])
		phase[i+1] = Frac(phase[i+1])
		phase[i+2] = Frac(phase[i+2])
		phase[i+3] = Frac(phase[i+3])
	}
}

// Frac returns the fractional part of a non-negative phase value.
func Frac(x float32) float32 {
	return x - float32(int32(x))
}

// PhaseConstant produces n successive phases of a fixed-frequency
// oscillator. w is the reciprocal sample rate. The accumulator is
// advanced past the final phase; phases are emitted unwrapped, and the
// first produced phase already includes one frequency step.
func PhaseConstant(phase []float32, freq float32, n int, w float32, acc *float32) {
	phase = phase[:n]
	p := *acc
	step := freq * w
	for i := range phase {
		p += step
		phase[i] = p
	}
	*acc = p
}

// PhaseVariable produces n phases from a per-sample frequency buffer:
// the i-th phase is the accumulator plus the inclusive prefix sum of
// freq[0..i] scaled by w.
func PhaseVariable(phase, freq []float32, n int, w float32, acc *float32) {
	phase = phase[:n]
	freq = freq[:n]
	p := *acc
	for i := range phase {
		p += freq[i] * w
		phase[i] = p
	}
	*acc = p
}
