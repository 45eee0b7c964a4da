// Package filter implements a serial 4-pole lowpass/highpass ladder,
// following Paul Kellett's formulation of the Stilson/Smith Moog VCF
// approximation.
package filter

// Filter modes.
const (
	LPF = iota
	HPF
)

// State carries the five ladder taps across blocks. It is zeroed when
// a note starts.
type State struct {
	B0, B1, B2, B3, B4 float32
}

// Reset zeroes the ladder taps.
func (s *State) Reset() {
	*s = State{}
}

// Coeffs precomputes the per-sample pole coefficient b and feedback
// gain k from the normalized cutoff buffer and scalar resonance:
//
//	b = c + 0.8*c*(1-c)
//	k = r * (1 + 0.5*(1-c)*(1 - (1-c) + 5.6*(1-c)^2))
//
// Both outputs feed the serial recurrence in Run.
func Coeffs(b, k []float32, cut []float32, res float32, n int) {
	b = b[:n]
	k = k[:n]
	cut = cut[:n]
	for i := range b {
		c := cut[i]
		t := 1 - c
		b[i] = c + 0.8*c*t
		k[i] = res * (1 + 0.5*t*(1-t+5.6*t*t))
	}
}

// Run applies the ladder to wave in place. Filtering is a fundamentally
// serial operation; samples cannot be processed independently.
func Run(s *State, wave []float32, n int, mode int, b, k []float32) {
	switch mode {
	case LPF:
		runLPF(s, wave, n, b, k)
	case HPF:
		runHPF(s, wave, n, b, k)
	}
}

func runLPF(s *State, wave []float32, n int, b, k []float32) {
	wave = wave[:n]
	b = b[:n]
	k = k[:n]
	for i := range wave {
		B := b[i]
		A := b[i] + b[i] - 1

		t1 := s.B0*B - s.B1*A
		t2 := s.B1*B - s.B2*A
		t3 := s.B2*B - s.B3*A
		t4 := s.B3*B - s.B4*A

		// Feedback.
		b0 := wave[i] - k[i]*s.B4

		// Four cascaded one-pole filters.
		b1 := b0*B + t1
		b2 := b1*B + t2
		b3 := b2*B + t3
		b4 := b3*B + t4

		// Retain clipped filter state.
		s.B0 = b0
		s.B1 = b1
		s.B2 = b2
		s.B3 = b3
		s.B4 = b4 - b4*b4*b4*0.166667

		wave[i] = s.B4
	}
}

func runHPF(s *State, wave []float32, n int, b, k []float32) {
	wave = wave[:n]
	b = b[:n]
	k = k[:n]
	for i := range wave {
		B := b[i]
		A := b[i] + b[i] - 1

		// Feedback.
		b0 := wave[i] - k[i]*s.B4

		// Four cascaded one-pole filters.
		b1 := (b0+s.B0)*B - s.B1*A
		b2 := (b1+s.B1)*B - s.B2*A
		b3 := (b2+s.B2)*B - s.B3*A
		b4 := (b3+s.B3)*B - s.B4*A

		// Retain clipped filter state.
		s.B0 = b0
		s.B1 = b1
		s.B2 = b2
		s.B3 = b3
		s.B4 = b4 - b4*b4*b4*0.166667

		wave[i] -= s.B4
	}
}
