package snth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const dumpCap = MaxPatch * 4096

func TestDumpStateRoundTrip(t *testing.T) {
	e := New(testRate)
	e.SetPatchName("TEST")
	e.SetToneMode(0, ModeMix)
	e.SetToneLFORate(0, 0, 80)

	buf := make([]byte, dumpCap)
	n := e.DumpState(buf)
	require.Greater(t, n, 3)
	assert.Equal(t, byte(0xF0), buf[0])
	assert.Equal(t, byte(SysExID), buf[1])
	assert.Equal(t, byte(0xF7), buf[n-1])

	e.Reset()
	require.Equal(t, DefPatchName, e.PatchName())

	e.Feed(buf[:n])
	assert.Equal(t, "TEST", e.PatchName())
	assert.Equal(t, uint8(ModeMix), e.ToneMode(0))
	assert.Equal(t, uint8(80), e.ToneLFORate(0, 0))
}

func TestDumpPatchOmitsSelector(t *testing.T) {
	e := New(testRate)
	e.SetToneLevel(1, 55)

	buf := make([]byte, dumpCap)
	n := e.DumpPatch(buf)
	require.Greater(t, n, 3)

	// No 0x02 patch-select tag in a single-patch dump.
	for i := 2; i < n-1; i += 2 {
		assert.NotEqual(t, byte(0x02), buf[i], "selector tag at %d", i)
	}
}

func TestDumpSkipsDefaults(t *testing.T) {
	e := New(testRate)
	buf := make([]byte, dumpCap)

	// A freshly initialized engine has nothing non-default: the state
	// dump is just the frame brackets.
	n := e.DumpState(buf)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte{0xF0, SysExID, 0xF7}, buf[:n])
}

func TestForeignManufacturerSkipped(t *testing.T) {
	e := New(testRate)

	// A Roland-flavored frame carrying bytes that would otherwise
	// parse as tone tags, then a recognized frame.
	stream := []byte{
		0xF0, 0x41, 0xC2, 0x01, 0xC3, 0x02, 0xF7,
		0xF0, SysExID, 0xC2, 33, 0xF7,
	}
	e.Feed(stream)

	assert.Equal(t, uint8(DefTonePan), e.TonePan(0), "foreign frame must not mutate")
	assert.Equal(t, uint8(33), e.ToneLevel(0), "recognized frame must apply")
}

func TestTruncatedFrameStopsCleanly(t *testing.T) {
	e := New(testRate)
	e.Feed([]byte{0xF0, SysExID, 0xC2, 44}) // no 0xF7
	assert.Equal(t, uint8(44), e.ToneLevel(0), "well-formed prefix applies")

	e.Feed([]byte{0xF0})
	e.Feed([]byte{})
}

func TestDumpTruncatesWhenFull(t *testing.T) {
	e := New(testRate)
	e.SetPatchName("A VERY NON DEFAULT PATCH")
	for tn := uint8(0); tn < MaxTone; tn++ {
		e.SetToneLevel(tn, 1)
		e.SetToneWave(tn, WaveSaw)
	}

	small := make([]byte, 8)
	n := e.DumpPatch(small)
	assert.LessOrEqual(t, n, len(small))
	assert.Equal(t, byte(0xF0), small[0])

	// A truncated dump still feeds back without corrupting anything.
	e2 := New(testRate)
	e2.Feed(small[:n])
}

func TestNoteEventsThroughFeed(t *testing.T) {
	e := New(testRate)
	sustainPatch(e, 0)

	e.Feed([]byte{0x90, 69, 127})
	out := make([]int16, 512*2)
	require.Equal(t, 1, e.Pull(out))

	e.Feed([]byte{0x80, 69, 0})
	// With a zero release the voice dies within the next block.
	e.Pull(out)
	assert.Equal(t, 0, e.Pull(out))
}

func TestUnknownStatusBytesSkipped(t *testing.T) {
	e := New(testRate)
	sustainPatch(e, 0)

	// Garbage interleaved with a valid note-on.
	e.Feed([]byte{0x55, 0xA3, 0x90, 60, 100, 0x7F})
	out := make([]int16, 512*2)
	assert.Equal(t, 1, e.Pull(out))
}

// randomizePatch applies a draw of non-default parameter writes to the
// current patch.
func randomizePatch(t *rapid.T, e *Engine) {
	for tn := uint8(0); tn < MaxTone; tn++ {
		if rapid.Bool().Draw(t, "touchTone") {
			e.SetToneWave(tn, uint8(rapid.IntRange(0, 4).Draw(t, "wave")))
			e.SetToneMode(tn, uint8(rapid.IntRange(0, 3).Draw(t, "mode")))
			e.SetToneLevel(tn, uint8(rapid.IntRange(0, 127).Draw(t, "level")))
			e.SetTonePan(tn, uint8(rapid.IntRange(0, 127).Draw(t, "pan")))
			e.SetToneDelay(tn, uint8(rapid.IntRange(0, 127).Draw(t, "delay")))
			e.SetTonePitchCoarse(tn, uint8(rapid.IntRange(0, 127).Draw(t, "coarse")))
			e.SetToneFilterMode(tn, uint8(rapid.IntRange(0, 1).Draw(t, "fmode")))
			e.SetToneFilterCut(tn, uint8(rapid.IntRange(0, 127).Draw(t, "cut")))
			e.SetToneFilterRes(tn, uint8(rapid.IntRange(0, 127).Draw(t, "res")))
		}
		if rapid.Bool().Draw(t, "touchEnv") {
			en := uint8(rapid.IntRange(0, MaxEnv-1).Draw(t, "envIdx"))
			e.SetToneEnvA(tn, en, uint8(rapid.IntRange(0, 127).Draw(t, "a")))
			e.SetToneEnvD(tn, en, uint8(rapid.IntRange(0, 127).Draw(t, "d")))
			e.SetToneEnvS(tn, en, uint8(rapid.IntRange(0, 127).Draw(t, "s")))
			e.SetToneEnvR(tn, en, uint8(rapid.IntRange(0, 127).Draw(t, "r")))
		}
		if rapid.Bool().Draw(t, "touchLFO") {
			lf := uint8(rapid.IntRange(0, MaxLFO-1).Draw(t, "lfoIdx"))
			e.SetToneLFOWave(tn, lf, uint8(rapid.IntRange(0, 4).Draw(t, "lwave")))
			e.SetToneLFOSync(tn, lf, rapid.Bool().Draw(t, "lsync"))
			e.SetToneLFORate(tn, lf, uint8(rapid.IntRange(0, 127).Draw(t, "lrate")))
			e.SetToneLFODelay(tn, lf, uint8(rapid.IntRange(0, 127).Draw(t, "ldelay")))
			e.SetToneLFOLevel(tn, lf, uint8(rapid.IntRange(0, 127).Draw(t, "llevel")))
			e.SetToneLFOPitch(tn, lf, uint8(rapid.IntRange(0, 127).Draw(t, "lpitch")))
			e.SetToneLFOFilter(tn, lf, uint8(rapid.IntRange(0, 127).Draw(t, "lfilter")))
		}
	}
}

func Test_StateDumpRoundTripsElementwise(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := New(testRate)

		// Scatter edits over a few patches.
		for _, slot := range rapid.SliceOfN(rapid.IntRange(0, MaxPatch-1), 1, 4).Draw(t, "slots") {
			e.SetPatch(uint8(slot))
			randomizePatch(t, e)
		}
		e.SetPatch(0)

		buf := make([]byte, dumpCap)
		n := e.DumpState(buf)

		restored := New(testRate)
		restored.Feed(buf[:n])

		// Element-wise equality of the whole patch store, derived
		// caches included, since decode runs the same setters.
		assert.Equal(t, e.patch, restored.patch)
	})
}
