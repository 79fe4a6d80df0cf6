// Package buffer implements SampleBuffer: planar multi-channel 32-bit
// float sample storage with vectorized per-channel arithmetic (spec §3,
// §4.1). Each channel plane is contiguous and independently addressable;
// a SampleBuffer has exclusive ownership of its planes.
package buffer

