// Package biquad implements Section, a single Direct Form I second-order
// IIR filter with persistent state between ProcessBlock calls.
package biquad
