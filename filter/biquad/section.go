package biquad

import "math"

// Coefficients holds a normalized biquad transfer function. a0 is
// normalized to 1 and not stored.
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// State is the Direct Form I delay line {x1=x[n-1], x2=x[n-2],
// y1=y[n-1], y2=y[n-2]}. It is zero-initialized at construction and
// reset whenever the owning Section's coefficients change.
type State struct {
	X1, X2, Y1, Y2 float64
}

// Section is a single biquad filter: coefficients plus the state they
// operate on. Processing one Section is an inherently serial operation —
// State.Y1 depends on the previous call's output, so a Section must never
// be shared or evaluated out of time order (spec §9).
type Section struct {
	coeffs Coefficients
	state  State
}

// NewSection returns a Section with the given coefficients and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{coeffs: c}
}

// SetCoefficients replaces the section's coefficients and resets its
// state to zero (spec §4.2 set_band contract).
func (s *Section) SetCoefficients(c Coefficients) {
	s.coeffs = c
	s.state = State{}
}

// Coefficients returns the section's current coefficients.
func (s *Section) Coefficients() Coefficients { return s.coeffs }

// State returns a copy of the section's current delay-line state.
func (s *Section) State() State { return s.state }

// SetState restores a previously captured delay-line state.
func (s *Section) SetState(state State) { s.state = state }

// Reset clears the delay line to zero without touching the coefficients.
func (s *Section) Reset() { s.state = State{} }

// ProcessSample filters one input sample and returns the output, using
// the Direct Form I difference equation:
//
//	y[n] = b0*x[n] + b1*x[n-1] + b2*x[n-2] - a1*y[n-1] - a2*y[n-2]
//
// Malformed coefficients (NaN/Inf) degrade to identity pass-through
// rather than propagating non-finite state (spec §4.2).
func (s *Section) ProcessSample(x float64) float64 {
	c := s.coeffs
	if !finiteCoeffs(c) {
		return x
	}

	y := c.B0*x + c.B1*s.state.X1 + c.B2*s.state.X2 - c.A1*s.state.Y1 - c.A2*s.state.Y2

	s.state.X2 = s.state.X1
	s.state.X1 = x
	s.state.Y2 = s.state.Y1
	s.state.Y1 = y

	return y
}

// ProcessBlock filters buf in place, sample by sample in increasing
// index order. Splitting a buffer into arbitrary contiguous chunks and
// calling ProcessBlock on each in turn yields the same output as one
// call over the whole buffer, because state carries across calls
// (spec §8 invariant 6).
func (s *Section) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = s.ProcessSample(x)
	}
}

func finiteCoeffs(c Coefficients) bool {
	return isFinite(c.B0) && isFinite(c.B1) && isFinite(c.B2) && isFinite(c.A1) && isFinite(c.A2)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
