// Package spectrum implements Analyzer, a Hann-windowed magnitude
// spectrum estimator (spec §4.4), plus the spectral-centroid helper that
// automix's EQ planning ranks tracks by and the band-energy helper whose
// readings automix reports per track.
package spectrum
