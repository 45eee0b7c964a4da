package snth

import (
	"math"
	"sync"

	"github.com/soniclab/snth-go/internal/filter"
)

// envelope stores one ADSR parameter set together with the line
// coefficients derived from it. The cache is refreshed on every
// parameter write so the audio path never recomputes it.
type envelope struct {
	a, d, s, r uint8

	am, ab float32
	dm, db float32
	sb     float32
	rm, rb float32

	active bool
}

// lfoConf stores one LFO parameter set and its derived cache: the
// oscillation frequency in Hz, the reciprocal of the fade-in delay,
// and whether the LFO participates in rendering at all.
type lfoConf struct {
	wave  uint8
	sync  bool
	rate  uint8
	delay uint8

	level  uint8
	pan    uint8
	pitch  uint8
	phase  uint8
	filter uint8

	freq   float32
	dm     float32
	active bool
}

// Per-tone flag bits marking which per-sample computations the
// renderer must run.
const (
	flEnv0 = 1 << iota
	flEnv1
	flEnv2
	flLFO0
	flLFO1
	flPitch
	flPan
	flFilter
)

type tone struct {
	wave  uint8
	mode  uint8
	level uint8
	pan   uint8
	delay uint8

	pitchCoarse uint8
	pitchFine   uint8
	pitchEnv    uint8

	filterMode uint8
	filterCut  uint8
	filterRes  uint8
	filterEnv  uint8
	filterKey  uint8

	env [MaxEnv]envelope
	lfo [MaxLFO]lfoConf

	flags uint16
}

type patch struct {
	name string
	tone [MaxTone]tone
}

type channelState struct {
	patch  uint8
	level  uint8
	pan    uint8
	reverb uint8
	chorus uint8

	// note maps a MIDI pitch to its sounding slot in the note ring,
	// or noNote.
	note [MaxPitch]uint16
}

// oscState is the per-block working state of one tone of one sounding
// note.
type oscState struct {
	time   int
	active bool

	// Release coefficients, frozen at note-off from the envelope
	// cache and the oscillator's age at that moment.
	rm [MaxEnv]float32
	rb [MaxEnv]float32

	oscPhase float32
	lfoPhase [MaxLFO]float32

	filter filter.State
}

type noteState struct {
	start   int
	pitch   uint8
	level   uint8
	channel uint8

	osc [MaxTone]oscState
}

// Engine is a complete synthesizer instance. All state formerly global
// in module-level designs lives here, guarded by a single mutex held
// for the duration of every public call: parameter reads and writes,
// note events, Feed, the dumps, and Pull. Multiple engines are
// independent.
type Engine struct {
	mu sync.Mutex

	rate int

	// Lookup tables computed once at construction: a 256-entry sine
	// table and the 128-entry equal-temperament frequency table, each
	// stored as (value, delta-to-next) pairs for linear interpolation.
	sineK [maxSine]float32
	sineD [maxSine]float32
	freqK [MaxPitch]float32
	freqD [MaxPitch]float32

	currNote uint16
	currChan uint8
	currTime int

	channel [MaxChannel]channelState
	patch   [MaxPatch]patch
	note    [MaxNote]noteState

	// Block scratch, owned by the engine and touched only during a
	// pull. The modula bus carries a MOD/RNG tone's output to the next
	// tone and is deliberately never cleared.
	modula  [MaxFrame]float32
	outputL [MaxFrame]float32
	outputR [MaxFrame]float32

	envLevel [MaxEnv][MaxFrame]float32
	lfoParam [MaxLFO][MaxFrame]float32

	pitch [MaxFrame]float32
	phase [MaxFrame]float32
	level [MaxFrame]float32
	freq  [MaxFrame]float32
	wav   [MaxFrame]float32
	cut   [MaxFrame]float32

	// Filter coefficient scratch.
	fcb [MaxFrame]float32
	fck [MaxFrame]float32
}

// New constructs an engine at the given sample rate. Non-positive
// rates fall back to 44100. The rate is immutable for the engine's
// lifetime.
func New(rate int) *Engine {
	if rate <= 0 {
		rate = 44100
	}
	e := &Engine{rate: rate}

	for i := 0; i < maxSine; i++ {
		k0 := float32(math.Sin(2 * math.Pi * float64(i) / maxSine))
		k1 := float32(math.Sin(2 * math.Pi * float64(i+1) / maxSine))
		e.sineK[i] = k0
		e.sineD[i] = k1 - k0
	}

	for i := 0; i < MaxPitch; i++ {
		k0 := pitchFreq(float32(i))
		k1 := pitchFreq(float32(i + 1))
		e.freqK[i] = k0
		e.freqD[i] = k1 - k0
	}

	e.reset()
	return e
}

// Rate returns the sample rate the engine was constructed with.
func (e *Engine) Rate() int {
	return e.rate
}

// Reset restores every channel, patch, and note to its default state
// while keeping the sample rate and lookup tables. Equivalent to
// constructing a fresh engine.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

func (e *Engine) reset() {
	for i := 0; i < MaxChannel; i++ {
		e.initChannel(uint8(i))
	}
	for i := 0; i < MaxPatch; i++ {
		e.initPatch(uint8(i))
	}
	for i := range e.note {
		e.note[i] = noteState{}
	}
	e.currNote = 0
	e.currChan = 0
	e.currTime = 0
}

func (e *Engine) initChannel(i uint8) {
	c := &e.channel[i]
	c.patch = i
	c.level = DefChannelLevel
	c.pan = DefChannelPan
	c.reverb = DefChannelReverb
	c.chorus = DefChannelChorus
	for p := range c.note {
		c.note[p] = noNote
	}
}

func (e *Engine) initPatch(i uint8) {
	e.patch[i].name = DefPatchName
	for j := uint8(0); j < MaxTone; j++ {
		e.initTone(i, j)
		for k := uint8(0); k < MaxEnv; k++ {
			e.initEnv(i, j, k)
		}
		for k := uint8(0); k < MaxLFO; k++ {
			e.initLFO(i, j, k)
		}
	}
}

func (e *Engine) initTone(i, j uint8) {
	t := &e.patch[i].tone[j]

	// The first tone of every patch mixes by default so a fresh
	// engine makes sound; the rest start silent.
	mode := uint8(DefToneMode)
	if j == 0 {
		mode = ModeMix
	}

	t.wave = DefToneWave
	t.mode = mode
	t.level = DefToneLevel
	t.pan = DefTonePan
	t.delay = DefToneDelay

	t.pitchCoarse = DefTonePitchCoarse
	t.pitchFine = DefTonePitchFine
	t.pitchEnv = DefTonePitchEnv

	t.filterMode = DefToneFilterMode
	t.filterCut = DefToneFilterCut
	t.filterRes = DefToneFilterRes
	t.filterEnv = DefToneFilterEnv
	t.filterKey = DefToneFilterKey

	e.refreshToneCache(i, j)
}

func (e *Engine) initEnv(i, j, k uint8) {
	en := &e.patch[i].tone[j].env[k]
	en.a = DefEnvA
	en.d = DefEnvD
	en.s = DefEnvS
	en.r = DefEnvR
	e.refreshEnvCache(i, j, k)
}

func (e *Engine) initLFO(i, j, k uint8) {
	l := &e.patch[i].tone[j].lfo[k]
	l.wave = DefLFOWave
	l.sync = DefLFOSync != 0
	l.rate = DefLFORate
	l.delay = DefLFODelay
	l.level = DefLFOLevel
	l.pan = DefLFOPan
	l.pitch = DefLFOPitch
	l.phase = DefLFOPhase
	l.filter = DefLFOFilter
	e.refreshLFOCache(i, j, k)
}

// pitchFreq is the equal-temperament mapping with A4 = 440 Hz at
// pitch 69.
func pitchFreq(n float32) float32 {
	return float32(440 * math.Pow(2, (float64(n)-69)/12))
}

// lookupFreq converts a clamped pitch buffer to Hz by indexing the
// frequency table and interpolating linearly between entries.
func (e *Engine) lookupFreq(freq, pitch []float32, n int) {
	freq = freq[:n]
	pitch = pitch[:n]
	for i := range freq {
		p := pitch[i]
		k := int(p)
		freq[i] = e.freqK[k] + e.freqD[k]*(p-float32(k))
	}
}
