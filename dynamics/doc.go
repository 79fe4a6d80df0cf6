// Package dynamics implements Compressor, a feedforward soft-knee
// dynamics processor with a branching one-pole envelope follower
// (spec §4.3).
package dynamics
