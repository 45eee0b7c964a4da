package snth

// SysEx codec. A dump is a single 0xF0 / SysExID / payload / 0xF7
// frame whose payload is a sequence of (tag, value) pairs covering
// exactly the parameters that differ from their defaults. The tag byte
// encodes the target:
//
//	0x00..0x0F  global     selector in the low 4 bits
//	0x10..0x1F  channel    reserved
//	0x20..0x2F  effects    reserved
//	0x30..0x3F  patch      0 = name, null-terminated string payload
//	0x40..0x7F  envelope   tone in bits 5:4, env in 3:2, field in 1:0
//	0x80..0xBF  LFO        tone in bits 5:4, lfo in bit 3, field in 2:0
//	0xC0..0xFF  tone       tone in bits 5:4, field in bits 3:0
//
// LFO field 0 packs the waveform in the low 4 bits and sync in bit 4.
// Encoding is best-effort: a pair that does not fit the buffer is
// dropped. Decoding applies values through the live setters so the
// derived caches refresh as a side effect.

// dumpVal appends a (tag, value) pair when the value is non-default
// and the pair fits.
func dumpVal(p []byte, c int, tag, v, def uint8) int {
	if c+1 < len(p) && v != def {
		p[c+0] = tag
		p[c+1] = v
		return c + 2
	}
	return c
}

// dumpStr appends a tag followed by a null-terminated string when it
// is non-default and fits.
func dumpStr(p []byte, c int, tag uint8, v, def string) int {
	if c+len(v)+2 < len(p) && v != def {
		p[c] = tag
		copy(p[c+1:], v)
		p[c+1+len(v)] = 0
		return c + len(v) + 2
	}
	return c
}

func (e *Engine) dumpEnv(p []byte, c int, i, j, k uint8) int {
	en := &e.patch[i].tone[j].env[k]

	tt := j << 4
	ee := k << 2

	c = dumpVal(p, c, 0x40|tt|ee, en.a, DefEnvA)
	c = dumpVal(p, c, 0x41|tt|ee, en.d, DefEnvD)
	c = dumpVal(p, c, 0x42|tt|ee, en.s, DefEnvS)
	c = dumpVal(p, c, 0x43|tt|ee, en.r, DefEnvR)

	return c
}

func (e *Engine) dumpLFO(p []byte, c int, i, j, k uint8) int {
	l := &e.patch[i].tone[j].lfo[k]

	tt := j << 4
	ll := k << 3

	waveSync := l.wave
	if l.sync {
		waveSync |= 0x10
	}
	defWaveSync := uint8(DefLFOWave)
	if DefLFOSync != 0 {
		defWaveSync |= 0x10
	}

	c = dumpVal(p, c, 0x80|tt|ll, waveSync, defWaveSync)
	c = dumpVal(p, c, 0x81|tt|ll, l.rate, DefLFORate)
	c = dumpVal(p, c, 0x82|tt|ll, l.delay, DefLFODelay)
	c = dumpVal(p, c, 0x83|tt|ll, l.level, DefLFOLevel)
	c = dumpVal(p, c, 0x84|tt|ll, l.pan, DefLFOPan)
	c = dumpVal(p, c, 0x85|tt|ll, l.pitch, DefLFOPitch)
	c = dumpVal(p, c, 0x86|tt|ll, l.phase, DefLFOPhase)
	c = dumpVal(p, c, 0x87|tt|ll, l.filter, DefLFOFilter)

	return c
}

func (e *Engine) dumpTone(p []byte, c int, i, j uint8) int {
	t := &e.patch[i].tone[j]
	tt := j << 4

	c = dumpVal(p, c, 0xC0|tt, t.wave, DefToneWave)
	c = dumpVal(p, c, 0xC1|tt, t.mode, defToneMode(j))
	c = dumpVal(p, c, 0xC2|tt, t.level, DefToneLevel)
	c = dumpVal(p, c, 0xC3|tt, t.pan, DefTonePan)
	c = dumpVal(p, c, 0xC4|tt, t.delay, DefToneDelay)

	c = dumpVal(p, c, 0xC8|tt, t.pitchCoarse, DefTonePitchCoarse)
	c = dumpVal(p, c, 0xC9|tt, t.pitchFine, DefTonePitchFine)
	c = dumpVal(p, c, 0xCA|tt, t.pitchEnv, DefTonePitchEnv)

	c = dumpVal(p, c, 0xCB|tt, t.filterMode, DefToneFilterMode)
	c = dumpVal(p, c, 0xCC|tt, t.filterCut, DefToneFilterCut)
	c = dumpVal(p, c, 0xCD|tt, t.filterRes, DefToneFilterRes)
	c = dumpVal(p, c, 0xCE|tt, t.filterEnv, DefToneFilterEnv)
	c = dumpVal(p, c, 0xCF|tt, t.filterKey, DefToneFilterKey)

	return c
}

func (e *Engine) dumpPatchBody(p []byte, c int, i uint8) int {
	c = dumpStr(p, c, 0x30, e.patch[i].name, DefPatchName)

	for j := uint8(0); j < MaxTone; j++ {
		c = e.dumpTone(p, c, i, j)
		for k := uint8(0); k < MaxEnv; k++ {
			c = e.dumpEnv(p, c, i, j, k)
		}
		for k := uint8(0); k < MaxLFO; k++ {
			c = e.dumpLFO(p, c, i, j, k)
		}
	}

	return c
}

// defToneMode is the codec's reference mode for tone j: the first tone
// of a patch defaults to MIX, the rest to OFF.
func defToneMode(j uint8) uint8 {
	if j == 0 {
		return ModeMix
	}
	return DefToneMode
}

/* Default-state checks, used to skip all-default patches in a state
dump. */

func (e *Engine) statEnv(i, j, k uint8) bool {
	en := &e.patch[i].tone[j].env[k]
	return en.a != DefEnvA || en.d != DefEnvD || en.s != DefEnvS || en.r != DefEnvR
}

func (e *Engine) statLFO(i, j, k uint8) bool {
	l := &e.patch[i].tone[j].lfo[k]
	return l.wave != DefLFOWave ||
		l.sync != (DefLFOSync != 0) ||
		l.rate != DefLFORate ||
		l.delay != DefLFODelay ||
		l.level != DefLFOLevel ||
		l.pan != DefLFOPan ||
		l.pitch != DefLFOPitch ||
		l.phase != DefLFOPhase ||
		l.filter != DefLFOFilter
}

func (e *Engine) statTone(i, j uint8) bool {
	t := &e.patch[i].tone[j]
	return t.wave != DefToneWave ||
		t.mode != defToneMode(j) ||
		t.level != DefToneLevel ||
		t.pan != DefTonePan ||
		t.delay != DefToneDelay ||
		t.pitchCoarse != DefTonePitchCoarse ||
		t.pitchFine != DefTonePitchFine ||
		t.pitchEnv != DefTonePitchEnv ||
		t.filterMode != DefToneFilterMode ||
		t.filterCut != DefToneFilterCut ||
		t.filterRes != DefToneFilterRes ||
		t.filterEnv != DefToneFilterEnv ||
		t.filterKey != DefToneFilterKey
}

func (e *Engine) statPatch(i uint8) bool {
	if e.patch[i].name != DefPatchName {
		return true
	}
	for j := uint8(0); j < MaxTone; j++ {
		if e.statTone(i, j) {
			return true
		}
		for k := uint8(0); k < MaxEnv; k++ {
			if e.statEnv(i, j, k) {
				return true
			}
		}
		for k := uint8(0); k < MaxLFO; k++ {
			if e.statLFO(i, j, k) {
				return true
			}
		}
	}
	return false
}

// DumpPatch writes a SysEx frame holding the current patch's
// non-default parameters into p and returns the number of bytes
// produced. Size p for the worst case; pairs that do not fit are
// dropped.
func (e *Engine) DumpPatch(p []byte) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	c := 0
	if c < len(p) {
		p[c] = 0xF0
		c++
	}
	if c < len(p) {
		p[c] = SysExID
		c++
	}

	c = e.dumpPatchBody(p, c, e.channel[e.currChan].patch)

	if c < len(p) {
		p[c] = 0xF7
		c++
	}
	return c
}

// DumpState writes a SysEx frame holding every non-default patch,
// each preceded by a patch-select tag, and returns the number of
// bytes produced.
func (e *Engine) DumpState(p []byte) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	c := 0
	if c < len(p) {
		p[c] = 0xF0
		c++
	}
	if c < len(p) {
		p[c] = SysExID
		c++
	}

	for i := 0; i < MaxPatch; i++ {
		if e.statPatch(uint8(i)) {
			c = dumpVal(p, c, 0x02, uint8(i), 0xFF)
			c = e.dumpPatchBody(p, c, uint8(i))
		}
	}

	if c < len(p) {
		p[c] = 0xF7
		c++
	}
	return c
}

/* Decode */

// sysex consumes one 0xF0-initiated frame starting at p[i] and returns
// the index just past its 0xF7. Frames carrying a foreign manufacturer
// byte are skipped wholesale; unknown tags inside a recognized frame
// skip their two bytes. A frame truncated before 0xF7 consumes the
// rest of the input.
func (e *Engine) sysex(p []byte, i int) int {
	i++

	if i < len(p) && p[i] == SysExID {
		i++
		for i < len(p) && p[i] != 0xF7 {
			switch {
			case p[i]&0xF0 == 0x00:
				i = e.sysexGlobal(p, i)
			case p[i]&0xF0 == 0x10:
				i += 2 // channel, reserved
			case p[i]&0xF0 == 0x20:
				i += 2 // effects, reserved
			case p[i]&0xF0 == 0x30:
				i = e.sysexPatch(p, i)
			case p[i]&0xC0 == 0x40:
				i = e.sysexEnv(p, i)
			case p[i]&0xC0 == 0x80:
				i = e.sysexLFO(p, i)
			default:
				i = e.sysexTone(p, i)
			}
		}
	} else {
		for i < len(p) && p[i] != 0xF7 {
			i++
		}
	}

	return i + 1
}

func (e *Engine) sysexGlobal(p []byte, i int) int {
	if i+1 >= len(p) {
		return len(p)
	}
	switch p[i] & 0x0F {
	case 0x00:
		e.setChannel(p[i+1])
	case 0x01:
		e.setBank(p[i+1])
	case 0x02:
		e.setPatch(p[i+1])
	}
	return i + 2
}

func (e *Engine) sysexPatch(p []byte, i int) int {
	switch p[i] & 0x0F {
	case 0x00:
		// Null-terminated name payload.
		j := i + 1
		for j < len(p) && p[j] != 0 {
			j++
		}
		e.setPatchName(string(p[i+1 : j]))
		return j + 1
	}
	return i + 2
}

func (e *Engine) sysexTone(p []byte, i int) int {
	if i+1 >= len(p) {
		return len(p)
	}
	t := (p[i] & 0x30) >> 4
	v := p[i+1]

	switch p[i] & 0x0F {
	case 0x00:
		e.setToneWave(t, v)
	case 0x01:
		e.setToneMode(t, v)
	case 0x02:
		e.setToneLevel(t, v)
	case 0x03:
		e.setTonePan(t, v)
	case 0x04:
		e.setToneDelay(t, v)

	case 0x08:
		e.setTonePitchCoarse(t, v)
	case 0x09:
		e.setTonePitchFine(t, v)
	case 0x0A:
		e.setTonePitchEnv(t, v)

	case 0x0B:
		e.setToneFilterMode(t, v)
	case 0x0C:
		e.setToneFilterCut(t, v)
	case 0x0D:
		e.setToneFilterRes(t, v)
	case 0x0E:
		e.setToneFilterEnv(t, v)
	case 0x0F:
		e.setToneFilterKey(t, v)
	}

	return i + 2
}

func (e *Engine) sysexEnv(p []byte, i int) int {
	if i+1 >= len(p) {
		return len(p)
	}
	t := (p[i] & 0x30) >> 4
	en := (p[i] & 0x0C) >> 2
	v := p[i+1]

	switch p[i] & 0x03 {
	case 0x00:
		e.setToneEnvA(t, en, v)
	case 0x01:
		e.setToneEnvD(t, en, v)
	case 0x02:
		e.setToneEnvS(t, en, v)
	case 0x03:
		e.setToneEnvR(t, en, v)
	}

	return i + 2
}

func (e *Engine) sysexLFO(p []byte, i int) int {
	if i+1 >= len(p) {
		return len(p)
	}
	t := (p[i] & 0x30) >> 4
	l := (p[i] & 0x08) >> 3
	v := p[i+1]

	switch p[i] & 0x07 {
	case 0x00:
		e.setToneLFOWave(t, l, v&0x0F)
		e.setToneLFOSync(t, l, v&0xF0 != 0)
	case 0x01:
		e.setToneLFORate(t, l, v)
	case 0x02:
		e.setToneLFODelay(t, l, v)
	case 0x03:
		e.setToneLFOLevel(t, l, v)
	case 0x04:
		e.setToneLFOPan(t, l, v)
	case 0x05:
		e.setToneLFOPitch(t, l, v)
	case 0x06:
		e.setToneLFOPhase(t, l, v)
	case 0x07:
		e.setToneLFOFilter(t, l, v)
	}

	return i + 2
}
