package env

import (
	"math"
	"testing"
)

// lines for a 100-sample attack, 100-sample decay to 0.5, release held
// off (pinned at 1).
func adsLines() Lines {
	return Lines{
		Am: 1.0 / 100, Ab: 0,
		Dm: -0.5 / 100, Db: 1 + 100*0.5/100,
		Sb: 0.5,
		Rm: 0, Rb: 1,
	}
}

func TestAttackRises(t *testing.T) {
	out := make([]float32, 100)
	Render(out, 100, adsLines(), 0)

	if out[0] != 0 {
		t.Fatalf("attack starts at %f, want 0 at age 0", out[0])
	}
	for i := 1; i < 100; i++ {
		if out[i] < out[i-1] {
			t.Fatalf("attack not monotonic at %d: %f < %f", i, out[i], out[i-1])
		}
	}
	if math.Abs(float64(out[99])-1) > 0.02 {
		t.Fatalf("attack peak = %f, want ~1", out[99])
	}
}

func TestDecayReachesSustain(t *testing.T) {
	out := make([]float32, 400)
	Render(out, 400, adsLines(), 0)

	// Past attack+decay the sustain line binds.
	for i := 250; i < 400; i++ {
		if math.Abs(float64(out[i])-0.5) > 1e-5 {
			t.Fatalf("sustain at %d = %f, want 0.5", i, out[i])
		}
	}
}

func TestReleaseFallsToZero(t *testing.T) {
	l := adsLines()
	// Release frozen at age 300: descend from the sustain value over
	// 200 samples.
	l.Rm = -0.5 / 200
	l.Rb = 0.5 - l.Rm*300

	out := make([]float32, 256)
	Render(out, 256, l, 300)
	if out[0] > 0.5 || out[0] <= 0 {
		t.Fatalf("release start = %f", out[0])
	}
	for i := 1; i < 256; i++ {
		if out[i] > out[i-1] {
			t.Fatalf("release rising at %d", i)
		}
	}

	out2 := make([]float32, 256)
	Render(out2, 256, l, 300+256)
	if out2[255] != 0 {
		t.Fatalf("release tail = %f, want 0", out2[255])
	}
}

func TestZeroAttackHoldsPeak(t *testing.T) {
	l := Lines{Am: 0, Ab: 1, Dm: 0, Db: 1, Sb: 1, Rm: 0, Rb: 1}
	out := make([]float32, 16)
	Render(out, 16, l, 0)
	for i, x := range out {
		if x != 1 {
			t.Fatalf("out[%d] = %f, want 1", i, x)
		}
	}
}

func TestReleasePinnedAtZero(t *testing.T) {
	// A zero release time freezes as rm=0, rb=0: instant silence.
	l := adsLines()
	l.Rm = 0
	l.Rb = 0
	out := make([]float32, 16)
	Render(out, 16, l, 500)
	for i, x := range out {
		if x != 0 {
			t.Fatalf("out[%d] = %f, want 0", i, x)
		}
	}
}

func TestNeverNegative(t *testing.T) {
	l := adsLines()
	l.Rm = -1.0 / 10
	l.Rb = 0.5 + 1.0/10*100
	out := make([]float32, 512)
	Render(out, 512, l, 0)
	for i, x := range out {
		if x < 0 {
			t.Fatalf("out[%d] = %f negative", i, x)
		}
	}
}
