package design

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/automix/core"
)

func TestCoefficientsRejectsLowQ(t *testing.T) {
	_, err := Coefficients(Peak, 1000, 2, 1e-4, 48000)
	if !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestCoefficientsRejectsOutOfRangeFrequency(t *testing.T) {
	cases := []float64{0, -10, 24000, 30000}
	for _, f := range cases {
		if _, err := Coefficients(Peak, f, 0, 0.7, 48000); !errors.Is(err, core.ErrInvalidParameter) {
			t.Fatalf("freq=%v: expected ErrInvalidParameter, got %v", f, err)
		}
	}
}

// TestPeakZeroGainIsIdentity covers spec §8 invariant 5: a PEAK band with
// gain_db=0 must leave the signal (almost) untouched.
func TestPeakZeroGainIsIdentity(t *testing.T) {
	c, err := Coefficients(Peak, 1000, 0, 0.7, 48000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// At zero gain, A == 1 so the numerator and denominator of the RBJ
	// peak formula are identical once normalized.
	if math.Abs(c.B0-1) > 1e-9 || math.Abs(c.A1-c.B1) > 1e-9 || math.Abs(c.A2-c.B2) > 1e-9 {
		t.Fatalf("expected near-identity transfer function, got %+v", c)
	}
}

func TestUnsupportedBandTypeIsIdentity(t *testing.T) {
	c, err := Coefficients(BandType(99), 1000, 3, 0.7, 48000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := struct{ B0, B1, B2, A1, A2 float64 }{1, 0, 0, 0, 0}
	if c.B0 != want.B0 || c.B1 != want.B1 || c.B2 != want.B2 || c.A1 != want.A1 || c.A2 != want.A2 {
		t.Fatalf("expected identity coefficients, got %+v", c)
	}
}

func TestLowPassAndHighPassHaveFiniteB0(t *testing.T) {
	for _, bt := range []BandType{LowPass, HighPass} {
		c, err := Coefficients(bt, 2000, 0, math.Sqrt2/2, 48000)
		if err != nil {
			t.Fatalf("bandType %v: unexpected error: %v", bt, err)
		}
		if math.IsNaN(c.B0) || math.IsInf(c.B0, 0) {
			t.Fatalf("bandType %v: non-finite coefficient: %+v", bt, c)
		}
	}
}

func TestShelvesBoostAndCutDiffer(t *testing.T) {
	boost, err := Coefficients(LowShelf, 200, 6, 0.7, 48000)
	if err != nil {
		t.Fatal(err)
	}
	cut, err := Coefficients(LowShelf, 200, -6, 0.7, 48000)
	if err != nil {
		t.Fatal(err)
	}
	if boost.B0 == cut.B0 {
		t.Fatal("expected boost and cut to produce different coefficients")
	}
}
