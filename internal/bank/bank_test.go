package bank

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	snth "github.com/soniclab/snth-go"
)

const doc = `
patches:
  - slot: 3
    name: WARM PAD
    tones:
      - wave: saw
        mode: mix
        level: 110
        filter: { mode: lpf, cut: 90, res: 30 }
        env:
          - { a: 25, d: 40, s: 90, r: 50 }
        lfo:
          - { wave: triangle, sync: false, rate: 70, pitch: 68 }
      - wave: sine
        mode: mod
        level: 80
`

func TestLoadAndApply(t *testing.T) {
	f, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, f.Patches, 1)

	e := snth.New(44100)
	require.NoError(t, f.Apply(e))

	// Apply leaves the last written slot selected.
	assert.Equal(t, uint8(3), e.Patch())
	assert.Equal(t, "WARM PAD", e.PatchName())

	assert.Equal(t, uint8(snth.WaveSaw), e.ToneWave(0))
	assert.Equal(t, uint8(snth.ModeMix), e.ToneMode(0))
	assert.Equal(t, uint8(110), e.ToneLevel(0))
	assert.Equal(t, uint8(90), e.ToneFilterCut(0))
	assert.Equal(t, uint8(30), e.ToneFilterRes(0))
	assert.Equal(t, uint8(25), e.ToneEnvA(0, snth.EnvLevel))
	assert.Equal(t, uint8(50), e.ToneEnvR(0, snth.EnvLevel))
	assert.Equal(t, uint8(70), e.ToneLFORate(0, 0))
	assert.Equal(t, uint8(68), e.ToneLFOPitch(0, 0))
	assert.False(t, e.ToneLFOSync(0, 0))

	assert.Equal(t, uint8(snth.ModeMod), e.ToneMode(1))
	assert.Equal(t, uint8(80), e.ToneLevel(1))

	// Untouched fields keep their defaults.
	assert.Equal(t, uint8(snth.DefTonePan), e.TonePan(0))
	assert.Equal(t, uint8(snth.DefEnvD), e.ToneEnvD(1, snth.EnvLevel))
}

func TestUnknownWaveRejected(t *testing.T) {
	f, err := Load(strings.NewReader("patches:\n  - slot: 0\n    tones:\n      - wave: warble\n"))
	require.NoError(t, err)
	err = f.Apply(snth.New(44100))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "warble")
}

func TestUnknownFieldRejected(t *testing.T) {
	_, err := Load(strings.NewReader("patches:\n  - slot: 0\n    wibble: 1\n"))
	require.Error(t, err)
}

func TestSlotOutOfRange(t *testing.T) {
	f, err := Load(strings.NewReader("patches:\n  - slot: 128\n"))
	require.NoError(t, err)
	require.Error(t, f.Apply(snth.New(44100)))
}

func TestTooManyTones(t *testing.T) {
	var b strings.Builder
	b.WriteString("patches:\n  - slot: 0\n    tones:\n")
	for i := 0; i < 5; i++ {
		b.WriteString("      - wave: sine\n")
	}
	f, err := Load(strings.NewReader(b.String()))
	require.NoError(t, err)
	require.Error(t, f.Apply(snth.New(44100)))
}
