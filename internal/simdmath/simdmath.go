// Package simdmath implements the elementwise buffer kernels behind
// buffer.SampleBuffer: gain scaling and scaled addition, each unrolled
// 8 samples at a time with a scalar tail for lengths not a multiple of 8.
//
// Because every output sample depends only on the input at the same
// index, the 8-wide and scalar code paths compute bit-identical results
// for identical inputs (elementwise multiply/add has no summation-order
// dependence) — see simdmath_test.go's reference-equivalence check.
package simdmath

import "github.com/cwbudde/automix/internal/cpu"

const wideStep = 8

// ScaleInPlace multiplies every element of dst by gain.
func ScaleInPlace(dst []float32, gain float32) {
	if cpu.Supports(cpu.DetectFeatures(), cpu.SIMDWide) {
		scaleWide(dst, gain)
		return
	}
	scaleScalar(dst, gain)
}

// AddScaledInPlace computes dst[i] += src[i] * gain for i in
// [0, min(len(dst), len(src))).
func AddScaledInPlace(dst, src []float32, gain float32) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	if cpu.Supports(cpu.DetectFeatures(), cpu.SIMDWide) {
		addScaledWide(dst[:n], src[:n], gain)
		return
	}
	addScaledScalar(dst[:n], src[:n], gain)
}

// Zero sets every element of dst to 0.
func Zero(dst []float32) {
	for i := range dst {
		dst[i] = 0
	}
}

func scaleScalar(dst []float32, gain float32) {
	for i := range dst {
		dst[i] *= gain
	}
}

func scaleWide(dst []float32, gain float32) {
	n := len(dst)
	i := 0
	for ; i+wideStep <= n; i += wideStep {
		dst[i+0] *= gain
		dst[i+1] *= gain
		dst[i+2] *= gain
		dst[i+3] *= gain
		dst[i+4] *= gain
		dst[i+5] *= gain
		dst[i+6] *= gain
		dst[i+7] *= gain
	}
	for ; i < n; i++ {
		dst[i] *= gain
	}
}

func addScaledScalar(dst, src []float32, gain float32) {
	for i := range dst {
		dst[i] += src[i] * gain
	}
}

func addScaledWide(dst, src []float32, gain float32) {
	n := len(dst)
	i := 0
	for ; i+wideStep <= n; i += wideStep {
		dst[i+0] += src[i+0] * gain
		dst[i+1] += src[i+1] * gain
		dst[i+2] += src[i+2] * gain
		dst[i+3] += src[i+3] * gain
		dst[i+4] += src[i+4] * gain
		dst[i+5] += src[i+5] * gain
		dst[i+6] += src[i+6] * gain
		dst[i+7] += src[i+7] * gain
	}
	for ; i < n; i++ {
		dst[i] += src[i] * gain
	}
}
