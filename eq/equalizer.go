package eq

import (
	"github.com/cwbudde/automix/filter/biquad"
	"github.com/cwbudde/automix/filter/design"
)

// BandType identifies which RBJ cookbook formula a Band uses.
type BandType = design.BandType

const (
	Peak      = design.Peak
	HighShelf = design.HighShelf
	LowShelf  = design.LowShelf
	HighPass  = design.HighPass
	LowPass   = design.LowPass
)

// Band describes one parametric EQ stage (spec §3 EQBand).
type Band struct {
	FrequencyHz float64
	GainDB      float64
	Q           float64
	Type        BandType
}

// Equalizer is an ordered cascade of biquad sections, applied in series
// per sample. A fresh Equalizer has no sections; SetBand grows the
// cascade as needed.
type Equalizer struct {
	sampleRate float64
	bands      []Band
	sections   []*biquad.Section
}

// New returns an empty Equalizer bound to sampleRate. All coefficient
// derivations use this rate (spec §6).
func New(sampleRate float64) *Equalizer {
	return &Equalizer{sampleRate: sampleRate}
}

// Len reports the number of sections currently in the cascade.
func (e *Equalizer) Len() int { return len(e.sections) }

// Bands returns a copy of the cascade's current band descriptions, in
// cascade order.
func (e *Equalizer) Bands() []Band {
	out := make([]Band, len(e.bands))
	copy(out, e.bands)
	return out
}

// SetBand resizes the cascade to at least i+1 sections, writes band at
// index i, recomputes that section's coefficients, and resets only that
// section's state to zero. Reindexing does not disturb other sections
// (spec §4.2 set_band contract). A malformed band (invalid frequency or
// Q) yields an identity section rather than failing, consistent with the
// biquad package's own NaN/Inf pass-through behavior; design.Coefficients
// errors are therefore swallowed into an identity section here.
func (e *Equalizer) SetBand(i int, band Band) {
	if i >= len(e.sections) {
		grown := make([]*biquad.Section, i+1)
		copy(grown, e.sections)
		for j := len(e.sections); j <= i; j++ {
			grown[j] = biquad.NewSection(biquad.Coefficients{B0: 1})
		}
		e.sections = grown

		grownBands := make([]Band, i+1)
		copy(grownBands, e.bands)
		e.bands = grownBands
	}

	coeffs, err := design.Coefficients(band.Type, band.FrequencyHz, band.GainDB, band.Q, e.sampleRate)
	if err != nil {
		coeffs = biquad.Coefficients{B0: 1}
	}

	e.bands[i] = band
	e.sections[i].SetCoefficients(coeffs)
}

// Process filters samples in place through every section in cascade
// order. A cascade with malformed coefficients degrades to identity
// pass-through at the affected section (handled inside biquad.Section),
// never to an error.
func (e *Equalizer) Process(samples []float64) {
	for _, s := range e.sections {
		s.ProcessBlock(samples)
	}
}

// Reset clears every section's delay line without touching coefficients.
func (e *Equalizer) Reset() {
	for _, s := range e.sections {
		s.Reset()
	}
}
