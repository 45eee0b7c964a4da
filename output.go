package snth

import (
	"math"

	"github.com/soniclab/snth-go/internal/vec"
)

// Pull renders interleaved stereo 16-bit samples into dst. The frame
// count len(dst)/2 must be a multiple of 4; otherwise nothing is
// written. Rendering proceeds in chunks of at most MaxFrame frames,
// each hard-clamped to [-1,1] before quantization, so no produced
// sample leaves [-32767, +32767].
//
// The return value is the peak number of oscillators active in any
// chunk of the pull, a polyphony telemetry figure. The call holds the
// engine lock for its full duration and performs no allocation.
func (e *Engine) Pull(dst []int16) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	frames := len(dst) / 2
	if frames%4 != 0 {
		return 0
	}

	m := 0
	for count := 0; count < frames; count += MaxFrame {
		n := frames - count
		if n > MaxFrame {
			n = MaxFrame
		}

		c := e.renderBlock(n)
		if m < c {
			m = c
		}

		if c != 0 {
			vec.Clamp(e.outputL[:], e.outputL[:], n, -1, 1)
			vec.Clamp(e.outputR[:], e.outputR[:], n, -1, 1)
		}

		out := dst[count*2 : (count+n)*2]
		for i := 0; i < n; i++ {
			out[i*2+0] = quantize(e.outputL[i])
			out[i*2+1] = quantize(e.outputR[i])
		}
	}

	return m
}

func quantize(x float32) int16 {
	return int16(math.Round(float64(x) * 32767))
}
