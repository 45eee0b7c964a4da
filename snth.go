// Package snth is a real-time polyphonic subtractive synthesizer
// engine. It consumes note events and parameter updates, MIDI-style,
// and produces interleaved 16-bit stereo PCM on demand.
//
// A patch is built from four tones, each an oscillator with three ADSR
// envelopes (level, pitch, filter), two LFOs, and a 4-pole ladder
// filter. Tones chain through mix, frequency-modulate, and ring-
// modulate routings. Parameters are 7-bit values addressed by
// (tone, envelope|LFO, field) and serialize to a compact SysEx stream.
package snth

// Waveform selectors for tones and LFOs.
const (
	WaveSine = iota
	WaveSquare
	WaveTriangle
	WaveSaw
	WaveNoise
)

// Tone output routings. A MOD or RNG tone feeds the modulation bus
// consumed by the next tone in the chain; MIX adds into the stereo
// output; OFF tones are not rendered.
const (
	ModeOff = iota
	ModeMix
	ModeMod
	ModeRing
)

// Filter modes.
const (
	FilterLPF = iota
	FilterHPF
)

// Envelope roles within a tone.
const (
	EnvLevel = iota
	EnvPitch
	EnvFilter
)

// Fixed capacities.
const (
	MaxFrame   = 512
	MaxChannel = 16
	MaxPatch   = 128
	MaxPitch   = 128
	MaxNote    = 256
	MaxName    = 255
	MaxTone    = 4
	MaxEnv     = 3
	MaxLFO     = 2

	maxSine = 256
)

// SysExID is the manufacturer byte carried by every frame the codec
// emits and the only one it accepts.
const SysExID = 0x7D

// noNote marks a (channel, pitch) slot with no sounding note.
const noNote = 0xFFFF

// Parameter defaults, used at initialization and by the codec to
// decide which values need encoding.
const (
	DefPatchName = "INIT PATCH"

	DefToneWave  = WaveSine
	DefToneMode  = ModeOff
	DefToneLevel = 100
	DefTonePan   = 64
	DefToneDelay = 0

	DefTonePitchCoarse = 64
	DefTonePitchFine   = 64
	DefTonePitchEnv    = 64

	DefToneFilterMode = FilterLPF
	DefToneFilterCut  = 127
	DefToneFilterRes  = 0
	DefToneFilterEnv  = 64
	DefToneFilterKey  = 64

	DefEnvA = 10
	DefEnvD = 10
	DefEnvS = 100
	DefEnvR = 10

	DefLFOWave   = WaveTriangle
	DefLFOSync   = 1
	DefLFORate   = 64
	DefLFODelay  = 0
	DefLFOLevel  = 64
	DefLFOPan    = 64
	DefLFOPitch  = 64
	DefLFOPhase  = 64
	DefLFOFilter = 64

	DefChannelLevel  = 100
	DefChannelPan    = 0
	DefChannelReverb = 0
	DefChannelChorus = 0
)

// unit maps a 7-bit parameter onto [0,1]; zero stays zero and the
// 1..127 range spans the interval.
func unit(b uint8) float32 {
	if b == 0 {
		return 0
	}
	return float32(b-1) / 126
}

// bipolar maps a 7-bit parameter onto [-1,+1] with 64 as the neutral
// midpoint.
func bipolar(b uint8) float32 {
	if b == 0 {
		return -1
	}
	return (float32(b) - 64) / 63
}

// durSamples converts a 7-bit time parameter to a duration in samples
// via a quadratic mapping topping out near four seconds.
func durSamples(rate int, b uint8) float32 {
	u := unit(b)
	return float32(rate) * 4 * u * u
}
