package snth

import (
	"github.com/soniclab/snth-go/internal/env"
	"github.com/soniclab/snth-go/internal/filter"
	"github.com/soniclab/snth-go/internal/lfo"
	"github.com/soniclab/snth-go/internal/vec"
	"github.com/soniclab/snth-go/internal/wave"
)

// renderOsc evaluates one tone of one note for a block of n samples.
// p and l are the note's pitch and velocity; mode0 is the previous
// tone's routing (OFF for the first tone), mode1 this tone's own.
// Returns 1, counting the block as rendered, including the block in
// which the level envelope reaches zero and the oscillator goes
// inactive.
//
// The tone's flag bits gate each stage so a plain tone costs little
// more than a phase accumulator and a waveform evaluation.
func (e *Engine) renderOsc(o *oscState, t *tone, n int, p, l uint8, mode0, mode1 uint8) int {
	invRate := 1 / float32(e.rate)
	note := float32(p) + float32(t.pitchCoarse) - 64 + bipolar(t.pitchFine)
	time := float32(o.time)

	// Envelopes.
	for i := 0; i < MaxEnv; i++ {
		if t.flags&(flEnv0<<i) != 0 {
			e.renderEnv(i, &t.env[i], o, n, time)
		}
	}

	// LFOs.
	if t.flags&flLFO0 != 0 {
		lfo.Render(e.lfoParam[0][:n], n, int(t.lfo[0].wave),
			t.lfo[0].freq, t.lfo[0].dm, time, &o.lfoPhase[0], invRate)
	}
	if t.flags&flLFO1 != 0 {
		lfo.Render(e.lfoParam[1][:n], n, int(t.lfo[1].wave),
			t.lfo[1].freq, t.lfo[1].dm, time, &o.lfoPhase[1], invRate)
	}

	// Frequency and phase.
	if t.flags&flPitch != 0 {
		vec.Set(e.pitch[:], n, note)

		if t.flags&flLFO0 != 0 && t.lfo[0].pitch != DefLFOPitch {
			vec.Acc(e.pitch[:], e.lfoParam[0][:], n, float32(t.lfo[0].pitch)-64)
		}
		if t.flags&flLFO1 != 0 && t.lfo[1].pitch != DefLFOPitch {
			vec.Acc(e.pitch[:], e.lfoParam[1][:], n, float32(t.lfo[1].pitch)-64)
		}
		if t.flags&flEnv1 != 0 && t.pitchEnv != DefTonePitchEnv {
			vec.Acc(e.pitch[:], e.envLevel[1][:], n, float32(t.pitchEnv)-64)
		}

		vec.Clamp(e.pitch[:], e.pitch[:], n, 0, 127)

		e.lookupFreq(e.freq[:], e.pitch[:], n)

		if mode0 == ModeMod {
			vec.FM(e.freq[:], e.freq[:], e.modula[:], n)
		}

		wave.PhaseVariable(e.phase[:], e.freq[:], n, invRate, &o.oscPhase)
	} else {
		var f float32
		switch {
		case note > 127:
			f = 12543.8539514160
		case note < 0:
			f = 8.1757989156
		default:
			f = pitchFreq(note)
		}
		wave.PhaseConstant(e.phase[:], f, n, invRate, &o.oscPhase)
	}

	// Waveform.
	wave.Wrap(e.phase[:], n)
	wave.Eval(e.wav[:], e.phase[:], n, int(t.wave))

	if mode0 == ModeRing {
		vec.Mul(e.wav[:], e.wav[:], e.modula[:], n)
	}

	// Filter.
	if t.flags&flFilter != 0 {
		res := unit(t.filterRes)

		vec.Set(e.cut[:], n, unit(t.filterCut)+bipolar(t.filterKey)*unit(l))

		if t.flags&flLFO0 != 0 && t.lfo[0].filter != DefLFOFilter {
			vec.Acc(e.cut[:], e.lfoParam[0][:], n, bipolar(t.lfo[0].filter))
		}
		if t.flags&flLFO1 != 0 && t.lfo[1].filter != DefLFOFilter {
			vec.Acc(e.cut[:], e.lfoParam[1][:], n, bipolar(t.lfo[1].filter))
		}
		if t.flags&flEnv2 != 0 && t.filterEnv != DefToneFilterEnv {
			vec.Acc(e.cut[:], e.envLevel[2][:], n, bipolar(t.filterEnv))
		}

		vec.Clamp(e.cut[:], e.cut[:], n, 0, 1)

		filter.Coeffs(e.fcb[:], e.fck[:], e.cut[:], res, n)
		filter.Run(&o.filter, e.wav[:], n, int(t.filterMode), e.fcb[:], e.fck[:])
	}

	// Level.
	vec.Set(e.level[:], n, unit(t.level)*unit(l))

	if t.flags&flLFO0 != 0 && t.lfo[0].level != DefLFOLevel {
		vec.Acc(e.level[:], e.lfoParam[0][:], n, bipolar(t.lfo[0].level))
	}
	if t.flags&flLFO1 != 0 && t.lfo[1].level != DefLFOLevel {
		vec.Acc(e.level[:], e.lfoParam[1][:], n, bipolar(t.lfo[1].level))
	}
	if t.flags&flEnv0 != 0 {
		vec.Mod(e.level[:], e.envLevel[0][:], n, 1)
	}

	// Output routing. MIX adds equally into both accumulators; MOD and
	// RNG write the modulation bus consumed by the next tone.
	if mode1 == ModeMix {
		vec.Mul(e.wav[:], e.wav[:], e.level[:], n)
		vec.Acc(e.outputL[:], e.wav[:], n, 1)
		vec.Acc(e.outputR[:], e.wav[:], n, 1)
	} else {
		vec.Mul(e.modula[:], e.wav[:], e.level[:], n)
	}

	o.time += n

	o.oscPhase = wave.Frac(o.oscPhase)
	o.lfoPhase[0] = wave.Frac(o.lfoPhase[0])
	o.lfoPhase[1] = wave.Frac(o.lfoPhase[1])

	// The oscillator sounds until its level envelope reaches zero.
	o.active = e.envLevel[0][n-1] > 0
	return 1
}

func (e *Engine) renderEnv(i int, en *envelope, o *oscState, n int, time float32) {
	env.Render(e.envLevel[i][:n], n, env.Lines{
		Am: en.am, Ab: en.ab,
		Dm: en.dm, Db: en.db,
		Sb: en.sb,
		Rm: o.rm[i], Rb: o.rb[i],
	}, time)
}

// renderNote runs the four-tone chain of one sounding note. A tone
// renders only while its oscillator is active and its onset delay has
// elapsed; the first tone always chains from OFF, so a MOD or RNG
// routing on it feeds nothing. Returns the number of oscillators that
// rendered.
func (e *Engine) renderNote(nt *noteState, n int) int {
	t := &e.patch[e.channel[nt.channel].patch].tone

	e0 := nt.osc[0].active
	e1 := nt.osc[1].active
	e2 := nt.osc[2].active
	e3 := nt.osc[3].active

	m0, m1, m2, m3 := uint8(ModeOff), uint8(ModeOff), uint8(ModeOff), uint8(ModeOff)
	if e0 {
		m0 = t[0].mode
	}
	if e1 {
		m1 = t[1].mode
	}
	if e2 {
		m2 = t[2].mode
	}
	if e3 {
		m3 = t[3].mode
	}

	age := e.currTime - nt.start
	c := 0

	if m0 != ModeOff && e0 && age >= int(durSamples(e.rate, t[0].delay)) {
		c += e.renderOsc(&nt.osc[0], &t[0], n, nt.pitch, nt.level, ModeOff, m0)
	}
	if m1 != ModeOff && e1 && age >= int(durSamples(e.rate, t[1].delay)) {
		c += e.renderOsc(&nt.osc[1], &t[1], n, nt.pitch, nt.level, m0, m1)
	}
	if m2 != ModeOff && e2 && age >= int(durSamples(e.rate, t[2].delay)) {
		c += e.renderOsc(&nt.osc[2], &t[2], n, nt.pitch, nt.level, m1, m2)
	}
	if m3 != ModeOff && e3 && age >= int(durSamples(e.rate, t[3].delay)) {
		c += e.renderOsc(&nt.osc[3], &t[3], n, nt.pitch, nt.level, m2, m3)
	}

	// With every oscillator silent the note retires and its ring slot
	// is skipped by subsequent pulls.
	if !e0 && !e1 && !e2 && !e3 {
		nt.level = 0
	}

	return c
}

// renderBlock clears the stereo accumulators, renders every sounding
// note into them, and advances the sample clock. Returns the number of
// oscillators that rendered this block.
func (e *Engine) renderBlock(n int) int {
	vec.Set(e.outputL[:], n, 0)
	vec.Set(e.outputR[:], n, 0)

	c := 0
	for i := range e.note {
		if e.note[i].level > 0 {
			c += e.renderNote(&e.note[i], n)
		}
	}

	e.currTime += n
	return c
}
