package snth

import "encoding/binary"

// RenderFrames pulls the given number of stereo frames from the engine
// without a live audio sink, rounding the count up to a multiple of 4.
// Useful for offline rendering and tests.
func RenderFrames(e *Engine, frames int) []int16 {
	if frames <= 0 {
		return nil
	}
	frames = (frames + 3) &^ 3
	out := make([]int16, frames*2)
	e.Pull(out)
	return out
}

// RenderSeconds renders the engine's output for a wall-clock duration
// at its own sample rate.
func RenderSeconds(e *Engine, seconds float64) []int16 {
	return RenderFrames(e, int(float64(e.Rate())*seconds))
}

// EncodeWAV wraps interleaved 16-bit PCM samples in a RIFF/WAVE
// container.
func EncodeWAV(samples []int16, sampleRate int, channels int) []byte {
	dataSize := len(samples) * 2
	byteRate := sampleRate * channels * 2
	blockAlign := channels * 2
	chunkSize := 36 + dataSize
	out := make([]byte, 44+dataSize)
	copy(out[0:], []byte("RIFF"))
	binary.LittleEndian.PutUint32(out[4:], uint32(chunkSize))
	copy(out[8:], []byte("WAVE"))
	copy(out[12:], []byte("fmt "))
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 1)
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], 16)
	copy(out[36:], []byte("data"))
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[44+i*2:], uint16(s))
	}
	return out
}
