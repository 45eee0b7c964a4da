package snth

// Parameter access mirrors the control surface of a hardware synth:
// setters address the patch selected on the current channel, and every
// write refreshes the derived caches before it returns, so the next
// audio block sees a consistent view. Out-of-range indices are
// contract violations; such calls return without mutating anything.
// The same unexported paths back the SysEx decoder, which already
// holds the engine lock.

// SetChannel selects the channel addressed by subsequent parameter
// calls.
func (e *Engine) SetChannel(i uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setChannel(i)
}

func (e *Engine) setChannel(i uint8) {
	if i >= MaxChannel {
		return
	}
	e.currChan = i
}

// SetPatch selects the patch played and edited on the current channel.
func (e *Engine) SetPatch(i uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setPatch(i)
}

func (e *Engine) setPatch(i uint8) {
	if i >= MaxPatch {
		return
	}
	e.channel[e.currChan].patch = i
}

// SetBank is reserved; the engine currently holds a single bank.
func (e *Engine) SetBank(i uint8) {}

func (e *Engine) setBank(i uint8) {}

// Channel returns the currently selected channel.
func (e *Engine) Channel() uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currChan
}

// Patch returns the patch selected on the current channel.
func (e *Engine) Patch() uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.channel[e.currChan].patch
}

// Bank returns the reserved bank index.
func (e *Engine) Bank() uint8 { return 0 }

// Channel-level parameters. Level and pan plus the reverb and chorus
// sends are stored for the control surface and the codec but are not
// applied in rendering.

func (e *Engine) SetChannelLevel(v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.channel[e.currChan].level = v
}

func (e *Engine) SetChannelPan(v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.channel[e.currChan].pan = v
}

func (e *Engine) SetChannelReverb(v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.channel[e.currChan].reverb = v
}

func (e *Engine) SetChannelChorus(v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.channel[e.currChan].chorus = v
}

func (e *Engine) ChannelLevel() uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.channel[e.currChan].level
}

func (e *Engine) ChannelPan() uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.channel[e.currChan].pan
}

func (e *Engine) ChannelReverb() uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.channel[e.currChan].reverb
}

func (e *Engine) ChannelChorus() uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.channel[e.currChan].chorus
}

// SetPatchName names the patch selected on the current channel. Names
// longer than MaxName bytes are truncated.
func (e *Engine) SetPatchName(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setPatchName(name)
}

func (e *Engine) setPatchName(name string) {
	if len(name) > MaxName {
		name = name[:MaxName]
	}
	e.patch[e.channel[e.currChan].patch].name = name
}

// PatchName returns the current patch's name.
func (e *Engine) PatchName() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.patch[e.channel[e.currChan].patch].name
}

// currTone resolves a tone index on the current channel's patch.
func (e *Engine) currTone(tn uint8) *tone {
	return &e.patch[e.channel[e.currChan].patch].tone[tn]
}

/* Tone parameters */

func (e *Engine) SetToneWave(tn, v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setToneWave(tn, v)
}

func (e *Engine) setToneWave(tn, v uint8) {
	if tn >= MaxTone {
		return
	}
	e.currTone(tn).wave = v
	e.refreshToneCache(e.channel[e.currChan].patch, tn)
}

func (e *Engine) SetToneMode(tn, v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setToneMode(tn, v)
}

func (e *Engine) setToneMode(tn, v uint8) {
	if tn >= MaxTone {
		return
	}
	e.currTone(tn).mode = v
	e.refreshToneCache(e.channel[e.currChan].patch, tn)
	// The next tone's PITCH flag depends on this tone's routing.
	if tn+1 < MaxTone {
		e.refreshToneCache(e.channel[e.currChan].patch, tn+1)
	}
}

func (e *Engine) SetToneLevel(tn, v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setToneLevel(tn, v)
}

func (e *Engine) setToneLevel(tn, v uint8) {
	if tn >= MaxTone {
		return
	}
	e.currTone(tn).level = v
	e.refreshToneCache(e.channel[e.currChan].patch, tn)
}

func (e *Engine) SetTonePan(tn, v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setTonePan(tn, v)
}

func (e *Engine) setTonePan(tn, v uint8) {
	if tn >= MaxTone {
		return
	}
	e.currTone(tn).pan = v
	e.refreshToneCache(e.channel[e.currChan].patch, tn)
}

func (e *Engine) SetToneDelay(tn, v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setToneDelay(tn, v)
}

func (e *Engine) setToneDelay(tn, v uint8) {
	if tn >= MaxTone {
		return
	}
	e.currTone(tn).delay = v
	e.refreshToneCache(e.channel[e.currChan].patch, tn)
}

func (e *Engine) SetTonePitchCoarse(tn, v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setTonePitchCoarse(tn, v)
}

func (e *Engine) setTonePitchCoarse(tn, v uint8) {
	if tn >= MaxTone {
		return
	}
	e.currTone(tn).pitchCoarse = v
}

func (e *Engine) SetTonePitchFine(tn, v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setTonePitchFine(tn, v)
}

func (e *Engine) setTonePitchFine(tn, v uint8) {
	if tn >= MaxTone {
		return
	}
	e.currTone(tn).pitchFine = v
}

func (e *Engine) SetTonePitchEnv(tn, v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setTonePitchEnv(tn, v)
}

func (e *Engine) setTonePitchEnv(tn, v uint8) {
	if tn >= MaxTone {
		return
	}
	e.currTone(tn).pitchEnv = v
	e.refreshToneCache(e.channel[e.currChan].patch, tn)
}

func (e *Engine) SetToneFilterMode(tn, v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setToneFilterMode(tn, v)
}

func (e *Engine) setToneFilterMode(tn, v uint8) {
	if tn >= MaxTone {
		return
	}
	e.currTone(tn).filterMode = v
	e.refreshToneCache(e.channel[e.currChan].patch, tn)
}

func (e *Engine) SetToneFilterCut(tn, v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setToneFilterCut(tn, v)
}

func (e *Engine) setToneFilterCut(tn, v uint8) {
	if tn >= MaxTone {
		return
	}
	e.currTone(tn).filterCut = v
	e.refreshToneCache(e.channel[e.currChan].patch, tn)
}

func (e *Engine) SetToneFilterRes(tn, v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setToneFilterRes(tn, v)
}

func (e *Engine) setToneFilterRes(tn, v uint8) {
	if tn >= MaxTone {
		return
	}
	e.currTone(tn).filterRes = v
	e.refreshToneCache(e.channel[e.currChan].patch, tn)
}

func (e *Engine) SetToneFilterEnv(tn, v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setToneFilterEnv(tn, v)
}

func (e *Engine) setToneFilterEnv(tn, v uint8) {
	if tn >= MaxTone {
		return
	}
	e.currTone(tn).filterEnv = v
	e.refreshToneCache(e.channel[e.currChan].patch, tn)
}

func (e *Engine) SetToneFilterKey(tn, v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setToneFilterKey(tn, v)
}

func (e *Engine) setToneFilterKey(tn, v uint8) {
	if tn >= MaxTone {
		return
	}
	e.currTone(tn).filterKey = v
	e.refreshToneCache(e.channel[e.currChan].patch, tn)
}

/* Envelope parameters */

func (e *Engine) SetToneEnvA(tn, en, v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setToneEnvA(tn, en, v)
}

func (e *Engine) setToneEnvA(tn, en, v uint8) {
	if tn >= MaxTone || en >= MaxEnv {
		return
	}
	e.currTone(tn).env[en].a = v
	e.refreshEnvCache(e.channel[e.currChan].patch, tn, en)
}

func (e *Engine) SetToneEnvD(tn, en, v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setToneEnvD(tn, en, v)
}

func (e *Engine) setToneEnvD(tn, en, v uint8) {
	if tn >= MaxTone || en >= MaxEnv {
		return
	}
	e.currTone(tn).env[en].d = v
	e.refreshEnvCache(e.channel[e.currChan].patch, tn, en)
}

func (e *Engine) SetToneEnvS(tn, en, v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setToneEnvS(tn, en, v)
}

func (e *Engine) setToneEnvS(tn, en, v uint8) {
	if tn >= MaxTone || en >= MaxEnv {
		return
	}
	e.currTone(tn).env[en].s = v
	e.refreshEnvCache(e.channel[e.currChan].patch, tn, en)
}

func (e *Engine) SetToneEnvR(tn, en, v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setToneEnvR(tn, en, v)
}

func (e *Engine) setToneEnvR(tn, en, v uint8) {
	if tn >= MaxTone || en >= MaxEnv {
		return
	}
	e.currTone(tn).env[en].r = v
	e.refreshEnvCache(e.channel[e.currChan].patch, tn, en)
}

/* LFO parameters */

func (e *Engine) SetToneLFOWave(tn, lf, v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setToneLFOWave(tn, lf, v)
}

func (e *Engine) setToneLFOWave(tn, lf, v uint8) {
	if tn >= MaxTone || lf >= MaxLFO {
		return
	}
	e.currTone(tn).lfo[lf].wave = v
	e.refreshLFOCache(e.channel[e.currChan].patch, tn, lf)
}

func (e *Engine) SetToneLFOSync(tn, lf uint8, v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setToneLFOSync(tn, lf, v)
}

func (e *Engine) setToneLFOSync(tn, lf uint8, v bool) {
	if tn >= MaxTone || lf >= MaxLFO {
		return
	}
	e.currTone(tn).lfo[lf].sync = v
	e.refreshLFOCache(e.channel[e.currChan].patch, tn, lf)
}

func (e *Engine) SetToneLFORate(tn, lf, v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setToneLFORate(tn, lf, v)
}

func (e *Engine) setToneLFORate(tn, lf, v uint8) {
	if tn >= MaxTone || lf >= MaxLFO {
		return
	}
	e.currTone(tn).lfo[lf].rate = v
	e.refreshLFOCache(e.channel[e.currChan].patch, tn, lf)
}

func (e *Engine) SetToneLFODelay(tn, lf, v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setToneLFODelay(tn, lf, v)
}

func (e *Engine) setToneLFODelay(tn, lf, v uint8) {
	if tn >= MaxTone || lf >= MaxLFO {
		return
	}
	e.currTone(tn).lfo[lf].delay = v
	e.refreshLFOCache(e.channel[e.currChan].patch, tn, lf)
}

func (e *Engine) SetToneLFOLevel(tn, lf, v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setToneLFOLevel(tn, lf, v)
}

func (e *Engine) setToneLFOLevel(tn, lf, v uint8) {
	if tn >= MaxTone || lf >= MaxLFO {
		return
	}
	e.currTone(tn).lfo[lf].level = v
	e.refreshLFOCache(e.channel[e.currChan].patch, tn, lf)
}

func (e *Engine) SetToneLFOPan(tn, lf, v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setToneLFOPan(tn, lf, v)
}

func (e *Engine) setToneLFOPan(tn, lf, v uint8) {
	if tn >= MaxTone || lf >= MaxLFO {
		return
	}
	e.currTone(tn).lfo[lf].pan = v
	e.refreshLFOCache(e.channel[e.currChan].patch, tn, lf)
}

func (e *Engine) SetToneLFOPitch(tn, lf, v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setToneLFOPitch(tn, lf, v)
}

func (e *Engine) setToneLFOPitch(tn, lf, v uint8) {
	if tn >= MaxTone || lf >= MaxLFO {
		return
	}
	e.currTone(tn).lfo[lf].pitch = v
	e.refreshLFOCache(e.channel[e.currChan].patch, tn, lf)
}

func (e *Engine) SetToneLFOPhase(tn, lf, v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setToneLFOPhase(tn, lf, v)
}

func (e *Engine) setToneLFOPhase(tn, lf, v uint8) {
	if tn >= MaxTone || lf >= MaxLFO {
		return
	}
	e.currTone(tn).lfo[lf].phase = v
	e.refreshLFOCache(e.channel[e.currChan].patch, tn, lf)
}

func (e *Engine) SetToneLFOFilter(tn, lf, v uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setToneLFOFilter(tn, lf, v)
}

func (e *Engine) setToneLFOFilter(tn, lf, v uint8) {
	if tn >= MaxTone || lf >= MaxLFO {
		return
	}
	e.currTone(tn).lfo[lf].filter = v
	e.refreshLFOCache(e.channel[e.currChan].patch, tn, lf)
}

/* Getters */

func (e *Engine) ToneWave(tn uint8) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone {
		return 0
	}
	return e.currTone(tn).wave
}

func (e *Engine) ToneMode(tn uint8) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone {
		return 0
	}
	return e.currTone(tn).mode
}

func (e *Engine) ToneLevel(tn uint8) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone {
		return 0
	}
	return e.currTone(tn).level
}

func (e *Engine) TonePan(tn uint8) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone {
		return 0
	}
	return e.currTone(tn).pan
}

func (e *Engine) ToneDelay(tn uint8) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone {
		return 0
	}
	return e.currTone(tn).delay
}

func (e *Engine) TonePitchCoarse(tn uint8) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone {
		return 0
	}
	return e.currTone(tn).pitchCoarse
}

func (e *Engine) TonePitchFine(tn uint8) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone {
		return 0
	}
	return e.currTone(tn).pitchFine
}

func (e *Engine) TonePitchEnv(tn uint8) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone {
		return 0
	}
	return e.currTone(tn).pitchEnv
}

func (e *Engine) ToneFilterMode(tn uint8) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone {
		return 0
	}
	return e.currTone(tn).filterMode
}

func (e *Engine) ToneFilterCut(tn uint8) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone {
		return 0
	}
	return e.currTone(tn).filterCut
}

func (e *Engine) ToneFilterRes(tn uint8) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone {
		return 0
	}
	return e.currTone(tn).filterRes
}

func (e *Engine) ToneFilterEnv(tn uint8) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone {
		return 0
	}
	return e.currTone(tn).filterEnv
}

func (e *Engine) ToneFilterKey(tn uint8) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone {
		return 0
	}
	return e.currTone(tn).filterKey
}

func (e *Engine) ToneEnvA(tn, en uint8) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone || en >= MaxEnv {
		return 0
	}
	return e.currTone(tn).env[en].a
}

func (e *Engine) ToneEnvD(tn, en uint8) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone || en >= MaxEnv {
		return 0
	}
	return e.currTone(tn).env[en].d
}

func (e *Engine) ToneEnvS(tn, en uint8) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone || en >= MaxEnv {
		return 0
	}
	return e.currTone(tn).env[en].s
}

func (e *Engine) ToneEnvR(tn, en uint8) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone || en >= MaxEnv {
		return 0
	}
	return e.currTone(tn).env[en].r
}

func (e *Engine) ToneLFOWave(tn, lf uint8) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone || lf >= MaxLFO {
		return 0
	}
	return e.currTone(tn).lfo[lf].wave
}

func (e *Engine) ToneLFOSync(tn, lf uint8) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone || lf >= MaxLFO {
		return false
	}
	return e.currTone(tn).lfo[lf].sync
}

func (e *Engine) ToneLFORate(tn, lf uint8) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone || lf >= MaxLFO {
		return 0
	}
	return e.currTone(tn).lfo[lf].rate
}

func (e *Engine) ToneLFODelay(tn, lf uint8) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone || lf >= MaxLFO {
		return 0
	}
	return e.currTone(tn).lfo[lf].delay
}

func (e *Engine) ToneLFOLevel(tn, lf uint8) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone || lf >= MaxLFO {
		return 0
	}
	return e.currTone(tn).lfo[lf].level
}

func (e *Engine) ToneLFOPan(tn, lf uint8) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone || lf >= MaxLFO {
		return 0
	}
	return e.currTone(tn).lfo[lf].pan
}

func (e *Engine) ToneLFOPitch(tn, lf uint8) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone || lf >= MaxLFO {
		return 0
	}
	return e.currTone(tn).lfo[lf].pitch
}

func (e *Engine) ToneLFOPhase(tn, lf uint8) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone || lf >= MaxLFO {
		return 0
	}
	return e.currTone(tn).lfo[lf].phase
}

func (e *Engine) ToneLFOFilter(tn, lf uint8) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tn >= MaxTone || lf >= MaxLFO {
		return 0
	}
	return e.currTone(tn).lfo[lf].filter
}

/* Derived caches */

// refreshEnvCache recomputes the envelope line coefficients from the
// 7-bit parameters. With a zero attack time the attack line pins at 1;
// a zero decay time pins the decay line at the sustain level; a zero
// release time makes the frozen release drop straight to silence.
func (e *Engine) refreshEnvCache(i, j, k uint8) {
	en := &e.patch[i].tone[j].env[k]

	at := durSamples(e.rate, en.a)
	dt := durSamples(e.rate, en.d)
	sb := unit(en.s)
	rt := durSamples(e.rate, en.r)

	if at > 0 {
		en.am = 1 / at
		en.ab = 0
	} else {
		en.am = 0
		en.ab = 1
	}

	if dt > 0 {
		en.dm = -(1 - sb) / dt
		en.db = 1 + at*(1-sb)/dt
	} else {
		en.dm = 0
		en.db = sb
	}

	if rt > 0 {
		en.rm = -sb / rt
		en.rb = 0
	} else {
		en.rm = 0
		en.rb = 0
	}

	en.sb = sb
	en.active = en.a != 0 || en.d != 0 || en.s != 0 || en.r != 0

	e.refreshToneCache(i, j)
}

// refreshLFOCache recomputes the oscillation frequency, the fade-in
// reciprocal, and the participation flag. An LFO participates only
// when its rate is nonzero and at least one send is off-center.
func (e *Engine) refreshLFOCache(i, j, k uint8) {
	l := &e.patch[i].tone[j].lfo[k]

	rt := durSamples(e.rate, l.rate)
	dt := durSamples(e.rate, l.delay)

	if rt > 0 {
		l.freq = float32(e.rate) / rt
	} else {
		l.freq = 0
	}
	if dt > 0 {
		l.dm = 1 / dt
	} else {
		l.dm = 0
	}

	l.active = l.rate > 0 && (l.level != DefLFOLevel ||
		l.pan != DefLFOPan ||
		l.pitch != DefLFOPitch ||
		l.phase != DefLFOPhase ||
		l.filter != DefLFOFilter)

	e.refreshToneCache(i, j)
}

// refreshToneCache rebuilds the tone's per-sample computation flags
// from its parameters, its children's caches, and the previous tone's
// routing mode.
func (e *Engine) refreshToneCache(i, j uint8) {
	t := &e.patch[i].tone[j]

	prevMode := uint8(ModeOff)
	if j > 0 {
		prevMode = e.patch[i].tone[j-1].mode
	}

	var f uint16

	if t.env[0].active {
		f |= flEnv0
	}
	if t.env[1].active && t.pitchEnv != DefTonePitchEnv {
		f |= flEnv1
	}
	if t.env[2].active && t.filterEnv != DefToneFilterEnv {
		f |= flEnv2
	}

	if t.lfo[0].active {
		f |= flLFO0
	}
	if t.lfo[1].active {
		f |= flLFO1
	}

	if prevMode == ModeMod ||
		t.lfo[0].pitch != DefLFOPitch ||
		t.lfo[1].pitch != DefLFOPitch || f&flEnv1 != 0 {
		f |= flPitch
	}

	if t.lfo[0].pan != DefLFOPan || t.lfo[1].pan != DefLFOPan {
		f |= flPan
	}

	if t.filterMode != DefToneFilterMode ||
		t.filterCut != DefToneFilterCut ||
		t.filterRes != DefToneFilterRes ||
		t.filterKey != DefToneFilterKey || f&flEnv2 != 0 {
		f |= flFilter
	}

	t.flags = f
}
