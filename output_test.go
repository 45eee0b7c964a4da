package snth

import (
	"testing"
)

func TestOutputClampUnderOverdrive(t *testing.T) {
	e := New(testRate)

	// Four full-level mixed tones and a pile of notes: the float mix
	// far exceeds [-1,1] before clamping.
	for tn := uint8(0); tn < MaxTone; tn++ {
		e.SetToneMode(tn, ModeMix)
		e.SetToneWave(tn, WaveSquare)
		e.SetToneLevel(tn, 127)
		e.SetToneEnvA(tn, EnvLevel, 0)
		e.SetToneEnvD(tn, EnvLevel, 0)
		e.SetToneEnvS(tn, EnvLevel, 127)
		e.SetToneEnvR(tn, EnvLevel, 0)
	}
	for p := uint8(60); p < 76; p++ {
		e.NoteOn(0, p, 127)
	}

	out := make([]int16, 2048*2)
	c := e.Pull(out)
	if c != 16*4 {
		t.Fatalf("telemetry = %d, want %d", c, 16*4)
	}

	peaked := false
	for i, s := range out {
		if s < -32767 || s > 32767 {
			t.Fatalf("sample %d = %d outside [-32767, 32767]", i, s)
		}
		if s == 32767 || s == -32767 {
			peaked = true
		}
	}
	if !peaked {
		t.Fatal("expected hard-clamped samples in an overdriven mix")
	}
}

func TestPhaseContinuityAcrossPulls(t *testing.T) {
	configure := func() *Engine {
		e := New(testRate)
		sustainPatch(e, 0)
		e.NoteOn(0, 60, 127)
		return e
	}

	one := configure()
	whole := make([]int16, 1024*2)
	one.Pull(whole)

	two := configure()
	first := make([]int16, 512*2)
	second := make([]int16, 512*2)
	two.Pull(first)
	two.Pull(second)

	for i := 0; i < 512*2; i++ {
		if whole[i] != first[i] {
			t.Fatalf("first half diverges at %d: %d vs %d", i, whole[i], first[i])
		}
		if whole[512*2+i] != second[i] {
			t.Fatalf("second half diverges at %d: %d vs %d", i, whole[512*2+i], second[i])
		}
	}
}

func TestLargePullChunks(t *testing.T) {
	// A pull larger than MaxFrame must chunk internally and keep the
	// sample counter consistent.
	e := New(testRate)
	sustainPatch(e, 0)
	e.NoteOn(0, 60, 127)

	out := make([]int16, (MaxFrame*3+256)*2)
	if c := e.Pull(out); c != 1 {
		t.Fatalf("telemetry = %d", c)
	}
	if e.currTime != MaxFrame*3+256 {
		t.Fatalf("sample counter = %d, want %d", e.currTime, MaxFrame*3+256)
	}
}

func TestRenderFramesRoundsUp(t *testing.T) {
	e := New(testRate)
	out := RenderFrames(e, 5)
	if len(out) != 8*2 {
		t.Fatalf("len = %d, want %d", len(out), 8*2)
	}
	if RenderFrames(e, 0) != nil {
		t.Fatal("zero frames should render nothing")
	}
}

func TestEncodeWAVHeader(t *testing.T) {
	samples := make([]int16, 64)
	b := EncodeWAV(samples, testRate, 2)
	if len(b) != 44+128 {
		t.Fatalf("len = %d", len(b))
	}
	if string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" || string(b[36:40]) != "data" {
		t.Fatal("malformed RIFF header")
	}
	// PCM format, 2 channels, 16 bits.
	if b[20] != 1 || b[22] != 2 || b[34] != 16 {
		t.Fatalf("format fields: fmt=%d ch=%d bits=%d", b[20], b[22], b[34])
	}
}
