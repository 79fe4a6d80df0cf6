package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/automix/core"
	"github.com/cwbudde/automix/filter/biquad"
)

// BandType selects which RBJ cookbook formula a band uses.
type BandType int

const (
	Peak BandType = iota
	HighShelf
	LowShelf
	HighPass
	LowPass
)

// minQ is the stability floor demanded by §4.2: below it alpha collapses
// toward zero and the section approaches a degenerate (non-invertible)
// transfer function.
const minQ = 1e-3

// Coefficients derives normalized biquad coefficients for bandType at the
// given center frequency, gain (peak/shelf only), Q, and sample rate.
// freq must lie in (0, sampleRate/2) and q must be >= 1e-3; violating
// either returns core.ErrInvalidParameter. Unsupported band types return
// an identity section (b0=1, all else 0) rather than an error.
func Coefficients(bandType BandType, freq, gainDB, q, sampleRate float64) (biquad.Coefficients, error) {
	if q < minQ {
		return biquad.Coefficients{}, fmt.Errorf("%w: q=%v below minimum %v", core.ErrInvalidParameter, q, minQ)
	}
	if sampleRate <= 0 {
		return biquad.Coefficients{}, fmt.Errorf("%w: sampleRate=%v must be positive", core.ErrInvalidParameter, sampleRate)
	}
	nyquist := sampleRate / 2
	if !(freq > 0 && freq < nyquist) {
		return biquad.Coefficients{}, fmt.Errorf("%w: freq=%v outside (0, %v)", core.ErrInvalidParameter, freq, nyquist)
	}

	omega := 2 * math.Pi * freq / sampleRate
	cosOmega := math.Cos(omega)
	sinOmega := math.Sin(omega)
	alpha := sinOmega / (2 * q)

	switch bandType {
	case Peak:
		return peak(cosOmega, alpha, gainDB), nil
	case HighShelf:
		return highShelf(cosOmega, sinOmega, alpha, gainDB), nil
	case LowShelf:
		return lowShelf(cosOmega, sinOmega, alpha, gainDB), nil
	case HighPass:
		return highPass(cosOmega, alpha), nil
	case LowPass:
		return lowPass(cosOmega, alpha), nil
	default:
		return biquad.Coefficients{B0: 1}, nil
	}
}

func peak(cosOmega, alpha, gainDB float64) biquad.Coefficients {
	a := math.Pow(10, gainDB/40)

	b0 := 1 + alpha*a
	b1 := -2 * cosOmega
	b2 := 1 - alpha*a
	a0 := 1 + alpha/a
	a1 := -2 * cosOmega
	a2 := 1 - alpha/a

	return normalize(b0, b1, b2, a0, a1, a2)
}

func lowShelf(cosOmega, sinOmega, alpha, gainDB float64) biquad.Coefficients {
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * alpha

	b0 := a * ((a + 1) - (a-1)*cosOmega + beta)
	b1 := 2 * a * ((a - 1) - (a+1)*cosOmega)
	b2 := a * ((a + 1) - (a-1)*cosOmega - beta)
	a0 := (a + 1) + (a-1)*cosOmega + beta
	a1 := -2 * ((a - 1) + (a+1)*cosOmega)
	a2 := (a + 1) + (a-1)*cosOmega - beta

	return normalize(b0, b1, b2, a0, a1, a2)
}

func highShelf(cosOmega, sinOmega, alpha, gainDB float64) biquad.Coefficients {
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * alpha

	b0 := a * ((a + 1) + (a-1)*cosOmega + beta)
	b1 := -2 * a * ((a - 1) + (a+1)*cosOmega)
	b2 := a * ((a + 1) + (a-1)*cosOmega - beta)
	a0 := (a + 1) - (a-1)*cosOmega + beta
	a1 := 2 * ((a - 1) - (a+1)*cosOmega)
	a2 := (a + 1) - (a-1)*cosOmega - beta

	return normalize(b0, b1, b2, a0, a1, a2)
}

// lowPass and highPass are not routed through the teacher's pass
// sub-package (its LowpassRBJ/HighpassRBJ wrappers have no definition
// in this tree); the cookbook forms are reproduced directly here.
func lowPass(cosOmega, alpha float64) biquad.Coefficients {
	b1 := 1 - cosOmega
	b0 := b1 / 2
	b2 := b0
	a0 := 1 + alpha
	a1 := -2 * cosOmega
	a2 := 1 - alpha

	return normalize(b0, b1, b2, a0, a1, a2)
}

func highPass(cosOmega, alpha float64) biquad.Coefficients {
	b1 := -(1 + cosOmega)
	b0 := -b1 / 2
	b2 := b0
	a0 := 1 + alpha
	a1 := -2 * cosOmega
	a2 := 1 - alpha

	return normalize(b0, b1, b2, a0, a1, a2)
}

func normalize(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}
	}
	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
