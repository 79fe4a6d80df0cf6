package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/automix/core"
)

// floor is the numerical safeguard applied wherever a log or division
// might otherwise misbehave near silence (spec §7); it is defined
// behavior, not an error condition.
const floor = 1e-10

// Settings holds a compressor's user-facing parameters (spec §3
// CompressorSettings).
type Settings struct {
	ThresholdDB float64
	Ratio       float64 // >= 1
	AttackMs    float64 // >= 0
	ReleaseMs   float64 // >= 0
	KneeDB      float64 // >= 0
	MakeupDB    float64
}

// State is the compressor's persistent per-sample state (spec §3
// CompressorState).
type State struct {
	EnvelopeLinear      float64
	LastGainReductionDB float64
}

// Compressor is a feedforward, log-domain soft-knee dynamics processor
// whose envelope is a branching one-pole IIR with independent attack and
// release time constants (spec §4.3).
type Compressor struct {
	sampleRate float64
	settings   Settings
	state      State

	alphaAttack  float64
	alphaRelease float64
}

// New validates settings and returns a Compressor bound to sampleRate.
// ratio < 1 is rejected as core.ErrInvalidParameter.
func New(sampleRate float64, settings Settings) (*Compressor, error) {
	if settings.Ratio < 1 {
		return nil, fmt.Errorf("%w: ratio=%v must be >= 1", core.ErrInvalidParameter, settings.Ratio)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sampleRate=%v must be positive", core.ErrInvalidParameter, sampleRate)
	}

	c := &Compressor{sampleRate: sampleRate, settings: settings}
	c.updateCoefficients()
	return c, nil
}

// Settings returns the compressor's current settings.
func (c *Compressor) Settings() Settings { return c.settings }

// SetSettings replaces the compressor's settings and recomputes its
// attack/release coefficients, but deliberately does not reset the
// envelope: parameter automation must not click (spec §4.3).
func (c *Compressor) SetSettings(settings Settings) error {
	if settings.Ratio < 1 {
		return fmt.Errorf("%w: ratio=%v must be >= 1", core.ErrInvalidParameter, settings.Ratio)
	}
	c.settings = settings
	c.updateCoefficients()
	return nil
}

// State returns a copy of the compressor's current envelope/metering state.
func (c *Compressor) State() State { return c.state }

// Reset clears the envelope follower and metering to zero.
func (c *Compressor) Reset() { c.state = State{} }

func (c *Compressor) updateCoefficients() {
	attackSamples := c.settings.AttackMs * c.sampleRate / 1000
	releaseSamples := c.settings.ReleaseMs * c.sampleRate / 1000

	if attackSamples > 0 {
		c.alphaAttack = math.Exp(-1 / attackSamples)
	} else {
		c.alphaAttack = 0
	}
	if releaseSamples > 0 {
		c.alphaRelease = math.Exp(-1 / releaseSamples)
	} else {
		c.alphaRelease = 0
	}
}

// ProcessSample compresses one input sample and returns the output,
// updating the envelope and metering state (spec §4.3 steps 1-6).
func (c *Compressor) ProcessSample(x float64) float64 {
	xabs := math.Abs(x)

	env := c.state.EnvelopeLinear
	if xabs > env {
		env = xabs + (env-xabs)*c.alphaAttack
	} else {
		env = xabs + (env-xabs)*c.alphaRelease
	}
	c.state.EnvelopeLinear = env

	levelDB := 20 * math.Log10(math.Max(env, floor))
	grDB := c.gainReductionDB(levelDB)

	gainLinear := math.Pow(10, (-grDB+c.settings.MakeupDB)/20)
	output := x * gainLinear

	c.state.LastGainReductionDB = 20 * math.Log10(gainLinear)

	return output
}

// ProcessBlock compresses buf in place, sample by sample in increasing
// index order.
func (c *Compressor) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = c.ProcessSample(x)
	}
}

// gainReductionDB evaluates the static soft-knee curve (spec §4.3 step
// 4): zero below knee_lo, linear full-ratio reduction above knee_hi, and
// a quadratic in between that matches both value and slope at each
// boundary (Giannoulis, Massberg & Reiss, "Digital Dynamic Range
// Compressor Design", knee term of x_G - y_G).
func (c *Compressor) gainReductionDB(levelDB float64) float64 {
	t := c.settings.ThresholdDB
	w := c.settings.KneeDB
	r := c.settings.Ratio

	kneeLo := t - w/2
	kneeHi := t + w/2

	switch {
	case levelDB <= kneeLo:
		return 0
	case levelDB >= kneeHi:
		return (levelDB - t) * (1 - 1/r)
	default:
		d := levelDB - t + w/2
		return (1 - 1/r) * d * d / (2 * w)
	}
}
