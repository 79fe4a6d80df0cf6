// Package eq implements Equalizer, an ordered cascade of biquad sections
// configured from EQBand descriptions (spec §4.2).
package eq
