// Package env renders ADSR envelopes by intersecting four lines in
// sample time: a rising attack, a falling decay, a constant sustain,
// and a falling release. The per-sample value is
//
//	max(0, min(A, max(D, S), R))
//
// so the envelope follows whichever segment is currently the binding
// constraint without tracking an explicit stage.
package env

// Lines holds the slope/intercept coefficients of the four segments.
// Am/Ab and Dm/Db come from the parameter cache; Sb is the sustain
// level; Rm/Rb are frozen per oscillator at note-off so the release
// descends from the instantaneous sustain-line value. Before note-off
// the release line is held at the constant 1.
type Lines struct {
	Am, Ab float32
	Dm, Db float32
	Sb     float32
	Rm, Rb float32
}

// Render writes n envelope values for the sample ages time..time+n-1.
// The lines advance incrementally, one multiply-free step per sample.
func Render(level []float32, n int, l Lines, time float32) {
	level = level[:n]

	a := l.Ab + l.Am*time
	d := l.Db + l.Dm*time
	r := l.Rb + l.Rm*time

	for i := range level {
		x := d
		if x < l.Sb {
			x = l.Sb
		}
		if x > a {
			x = a
		}
		if x > r {
			x = r
		}
		if x < 0 {
			x = 0
		}
		level[i] = x

		a += l.Am
		d += l.Dm
		r += l.Rm
	}
}
