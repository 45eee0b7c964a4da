// Package lfo renders low-frequency oscillator blocks used to
// modulate level, pan, pitch, phase, and filter cutoff.
package lfo

import "github.com/soniclab/snth-go/internal/wave"

// Render fills param with one block of LFO output. The buffer doubles
// as phase scratch: the constant-frequency accumulator writes phases
// into it, the waveform is evaluated in place, and then, when dm is
// positive, a linear ramp scales the output until (time+i)*dm reaches
// 1, fading the LFO in over 1/dm samples.
//
// freq is the oscillation rate in Hz, invRate the reciprocal sample
// rate, time the oscillator's sample age at the start of the block.
// The phase accumulator persists across blocks.
func Render(param []float32, n int, mode int, freq, dm, time float32, phase *float32, invRate float32) {
	wave.PhaseConstant(param, freq, n, invRate, phase)
	wave.Eval(param, param, n, mode)

	if dm > 0 {
		param = param[:n]
		k := time * dm
		for i := range param {
			if k < 1 {
				param[i] *= k
			}
			k += dm
		}
	}
}
