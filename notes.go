package snth

import "github.com/soniclab/snth-go/internal/wave"

// Note lifecycle. Notes live in a 256-slot ring: note-on claims the
// slot at the ring cursor, overwriting whatever is there, and advances
// the cursor. There is no steal policy beyond this FIFO replacement.
// Note-off does not free the slot; it freezes the release lines and
// lets the level envelope decay the voice to silence.

// NoteOn starts a note at the given pitch and velocity on a channel.
func (e *Engine) NoteOn(channel, pitch, level uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.noteOn(channel, pitch, level)
}

func (e *Engine) noteOn(channel, pitch, level uint8) {
	if channel >= MaxChannel || pitch >= MaxPitch {
		return
	}

	t := &e.patch[e.channel[channel].patch].tone
	n := &e.note[e.currNote]

	e.channel[channel].note[pitch] = e.currNote

	n.start = e.currTime
	n.pitch = pitch
	n.level = level
	n.channel = channel

	// Wake an oscillator for each tone of the patch that renders.
	for j := 0; j < MaxTone; j++ {
		if t[j].mode != ModeOff {
			e.oscOn(&n.osc[j], &t[j].lfo)
		}
	}

	e.currNote = (e.currNote + 1) % MaxNote
}

// NoteOff releases the note sounding at the given pitch on a channel.
// The velocity byte is accepted for symmetry with the wire format and
// ignored.
func (e *Engine) NoteOff(channel, pitch, level uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.noteOff(channel, pitch, level)
}

func (e *Engine) noteOff(channel, pitch, level uint8) {
	if channel >= MaxChannel || pitch >= MaxPitch {
		return
	}

	t := &e.patch[e.channel[channel].patch].tone

	if slot := e.channel[channel].note[pitch]; slot != noNote {
		for j := 0; j < MaxTone; j++ {
			e.oscOff(&e.note[slot].osc[j], &t[j].env)
		}
	}

	e.channel[channel].note[pitch] = noNote
}

// oscOn initializes one oscillator state for a fresh note. The release
// lines start pinned at 1 so they do not constrain the envelope until
// note-off replaces them.
func (e *Engine) oscOn(o *oscState, l *[MaxLFO]lfoConf) {
	o.time = 0
	o.active = true
	for i := 0; i < MaxEnv; i++ {
		o.rm[i] = 0
		o.rb[i] = 1
	}

	o.oscPhase = 0
	for i := 0; i < MaxLFO; i++ {
		if l[i].sync {
			o.lfoPhase[i] = 0
		} else {
			// Free-running: place the phase where a continuously
			// oscillating LFO would be now.
			o.lfoPhase[i] = wave.Frac(float32(e.currTime) * l[i].freq / float32(e.rate))
		}
	}

	o.filter.Reset()
}

// oscOff freezes the release coefficients so the release line descends
// from the sustain-line value at the oscillator's current age. An
// envelope with no release time drops straight to silence.
func (e *Engine) oscOff(o *oscState, env *[MaxEnv]envelope) {
	for i := 0; i < MaxEnv; i++ {
		if env[i].rm < 0 {
			o.rm[i] = env[i].rm
			o.rb[i] = env[i].sb - env[i].rm*float32(o.time)
		} else {
			o.rm[i] = 0
			o.rb[i] = 0
		}
	}
}
