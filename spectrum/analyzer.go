package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"

	"github.com/cwbudde/automix/core"
)

// Analyzer computes windowed magnitude spectra for analysis purposes
// only; it is never used on the render path (spec §4.4).
type Analyzer struct {
	size   int
	window []float64
	plan   *algofft.Plan[complex128]
}

// New returns an Analyzer with FFT size m, which must be a power of two.
func New(m int) (*Analyzer, error) {
	if m <= 0 || m&(m-1) != 0 {
		return nil, fmt.Errorf("%w: fft size %d is not a power of two", core.ErrInvalidParameter, m)
	}

	plan, err := algofft.NewPlan64(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidParameter, err)
	}

	return &Analyzer{size: m, window: hann(m), plan: plan}, nil
}

// Size returns the analyzer's FFT length M.
func (a *Analyzer) Size() int { return a.size }

// hann generates an M-point Hann window: w[i] = 0.5*(1 - cos(2*pi*i/(M-1)))
// (spec §4.4). For M==1 the single coefficient is 1.
func hann(m int) []float64 {
	w := make([]float64, m)
	if m == 1 {
		w[0] = 1
		return w
	}
	for i := 0; i < m; i++ {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(m-1)))
	}
	return w
}

// Analyze returns M/2+1 non-negative magnitudes for samples. Fewer than
// M samples are zero-padded; more than M samples are truncated to the
// first M (spec §4.4).
func (a *Analyzer) Analyze(samples []float64) []float64 {
	in := make([]complex128, a.size)
	n := len(samples)
	if n > a.size {
		n = a.size
	}
	for i := 0; i < n; i++ {
		in[i] = complex(samples[i]*a.window[i], 0)
	}

	out := make([]complex128, a.size)
	if err := a.plan.Forward(out, in); err != nil {
		return make([]float64, a.size/2+1)
	}

	mags := make([]float64, a.size/2+1)
	for k := range mags {
		mags[k] = cmplxAbs(out[k])
	}
	return mags
}

func cmplxAbs(c complex128) float64 {
	re, im := real(c), imag(c)
	return math.Sqrt(re*re + im*im)
}

// BinFor returns the FFT bin index nearest hz at the given sample rate
// (spec §4.4).
func (a *Analyzer) BinFor(hz, sampleRate float64) int {
	return int(math.Round(hz * float64(a.size) / sampleRate))
}

// HzFor returns the center frequency of bin at the given sample rate
// (spec §4.4).
func (a *Analyzer) HzFor(bin int, sampleRate float64) float64 {
	return float64(bin) * sampleRate / float64(a.size)
}

// fftSizeFromBinCount recovers M from an M/2+1-length magnitude slice.
func fftSizeFromBinCount(n int) int {
	if n <= 1 {
		return 0
	}
	return 2 * (n - 1)
}

// BandEnergies sums magnitude-squared energy into three perceptual
// bands — bass, mid, and high — using the conventional crossover points
// of 250 Hz and 4000 Hz. It supplements the spec's spectrum analysis
// with the band breakdown automix reports per track in TrackAnalysis.
// magnitudes is expected to have the M/2+1 shape Analyze returns.
func BandEnergies(magnitudes []float64, sampleRate float64) (bass, mid, high float64) {
	fftSize := fftSizeFromBinCount(len(magnitudes))
	if fftSize == 0 {
		return 0, 0, 0
	}
	for k, mag := range magnitudes {
		hz := float64(k) * sampleRate / float64(fftSize)
		energy := mag * mag
		switch {
		case hz < 250:
			bass += energy
		case hz < 4000:
			mid += energy
		default:
			high += energy
		}
	}
	return bass, mid, high
}

// Centroid returns the spectral centroid in Hz: the magnitude-weighted
// mean frequency of the spectrum. It supplements the spec's placeholder
// EQ planning algorithm (§9 open questions) with a content-aware ranking
// signal. Returns 0 for an all-silent spectrum. magnitudes is expected
// to have the M/2+1 shape Analyze returns.
func Centroid(magnitudes []float64, sampleRate float64) float64 {
	fftSize := fftSizeFromBinCount(len(magnitudes))
	if fftSize == 0 {
		return 0
	}
	var weighted, total float64
	for k, mag := range magnitudes {
		hz := float64(k) * sampleRate / float64(fftSize)
		weighted += hz * mag
		total += mag
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}
