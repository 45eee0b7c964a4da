// Package vec provides blockwise operations over float32 buffers.
//
// Every operation processes exactly n elements, and n must be a
// multiple of 4. The loops are unrolled four wide so the compiler can
// keep them in SIMD-friendly shape, and the leading bounds assertions
// let it drop per-element checks. None of the operations allocate.
package vec

// Set fills v[0:n] with k.
func Set(v []float32, n int, k float32) {
	v = v[:n]
	for i := 0; i+3 < len(v); i += 4 {
		v[i+0] = k
		v[i+1] = k
		v[i+2] = k
		v[i+3] = k
	}
}

// Acc accumulates w scaled by k into v: v[i] += w[i]*k.
func Acc(v, w []float32, n int, k float32) {
	v = v[:n]
	w = w[:n]
	for i := 0; i+3 < len(v); i += 4 {
		v[i+0] += w[i+0] * k
		v[i+1] += w[i+1] * k
		v[i+2] += w[i+2] * k
		v[i+3] += w[i+3] * k
	}
}

// Add computes the elementwise sum v[i] = u[i] + w[i].
func Add(v, u, w []float32, n int) {
	v = v[:n]
	u = u[:n]
	w = w[:n]
	for i := 0; i+3 < len(v); i += 4 {
		v[i+0] = u[i+0] + w[i+0]
		v[i+1] = u[i+1] + w[i+1]
		v[i+2] = u[i+2] + w[i+2]
		v[i+3] = u[i+3] + w[i+3]
	}
}

// Mul computes the elementwise product v[i] = u[i] * w[i].
func Mul(v, u, w []float32, n int) {
	v = v[:n]
	u = u[:n]
	w = w[:n]
	for i := 0; i+3 < len(v); i += 4 {
		v[i+0] = u[i+0] * w[i+0]
		v[i+1] = u[i+1] * w[i+1]
		v[i+2] = u[i+2] * w[i+2]
		v[i+3] = u[i+3] * w[i+3]
	}
}

// FM computes v[i] = u[i] * (w[i] + 1), scaling a frequency buffer by
// a bipolar modulator centered on unity.
func FM(v, u, w []float32, n int) {
	v = v[:n]
	u = u[:n]
	w = w[:n]
	for i := 0; i+3 < len(v); i += 4 {
		v[i+0] = u[i+0] * (w[i+0] + 1)
		v[i+1] = u[i+1] * (w[i+1] + 1)
		v[i+2] = u[i+2] * (w[i+2] + 1)
		v[i+3] = u[i+3] * (w[i+3] + 1)
	}
}

// Mod scales v in place by w scaled by k: v[i] *= w[i]*k.
func Mod(v, w []float32, n int, k float32) {
	v = v[:n]
	w = w[:n]
	for i := 0; i+3 < len(v); i += 4 {
		v[i+0] *= w[i+0] * k
		v[i+1] *= w[i+1] * k
		v[i+2] *= w[i+2] * k
		v[i+3] *= w[i+3] * k
	}
}

// Clamp writes w limited to [lo, hi] into v. v and w may be the same
// buffer.
func Clamp(v, w []float32, n int, lo, hi float32) {
	v = v[:n]
	w = w[:n]
	for i := 0; i+3 < len(v); i += 4 {
		v[i+0] = clamp1(w[i+0], lo, hi)
		v[i+1] = clamp1(w[i+1], lo, hi)
		v[i+2] = clamp1(w[i+2], lo, hi)
		v[i+3] = clamp1(w[i+3], lo, hi)
	}
}

func clamp1(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
