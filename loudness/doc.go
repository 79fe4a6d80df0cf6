// Package loudness implements Meter, an approximate integrated-loudness
// estimator (spec §4.5). Unlike a certified BS.1770 meter it applies no
// K-weighting and no gating — only a floored mean-square approximation
// anchored to the same -0.691 dB constant.
package loudness
