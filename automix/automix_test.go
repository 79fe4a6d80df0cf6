package automix

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/automix/buffer"
	"github.com/cwbudde/automix/core"
	"github.com/cwbudde/automix/internal/testutil"
)

const testSampleRate = 48000.0

func monoTrack(samples []float32) *buffer.SampleBuffer {
	b, _ := buffer.New(1, len(samples))
	plane, _ := b.ChannelMut(0)
	copy(plane, samples)
	return b
}

func sine32(amp float32, freqHz, sampleRate float64, n int) []float32 {
	return testutil.Sine(freqHz, sampleRate, float64(amp), n)
}

// TestNewWithBlockSizeOption covers the core.ProcessorOption wiring:
// WithBlockSize sets the internal analysis FFT size, so a non-power-of-two
// value surfaces spectrum.New's rejection through AutoMixer.New.
func TestNewWithBlockSizeOption(t *testing.T) {
	if _, err := New(testSampleRate, DefaultSettings(), core.WithBlockSize(1000)); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("New with non-power-of-two block size err = %v, want ErrInvalidParameter", err)
	}

	m, err := New(testSampleRate, DefaultSettings(), core.WithBlockSize(512))
	if err != nil {
		t.Fatal(err)
	}
	if m.analyzer.Size() != 512 {
		t.Fatalf("analyzer size = %d, want 512", m.analyzer.Size())
	}
}

// TestNewWithSampleRateOptionOverridesPositional covers opts taking
// precedence over the positional sampleRate argument.
func TestNewWithSampleRateOptionOverridesPositional(t *testing.T) {
	m, err := New(testSampleRate, DefaultSettings(), core.WithSampleRate(44100))
	if err != nil {
		t.Fatal(err)
	}
	if m.sampleRate != 44100 {
		t.Fatalf("sampleRate = %v, want 44100", m.sampleRate)
	}
}

// TestRenderEmptyInput covers spec §8 invariant 12.
func TestRenderEmptyInput(t *testing.T) {
	m, err := New(testSampleRate, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	out, err := m.Render(nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Channels() != 2 || out.Len() != 0 {
		t.Fatalf("got (%d,%d), want (2,0)", out.Channels(), out.Len())
	}
}

// TestRenderSingleSilentTrack covers end-to-end scenario 1.
func TestRenderSingleSilentTrack(t *testing.T) {
	m, err := New(testSampleRate, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	track := monoTrack(testutil.Silence(1024))
	out, err := m.Render([]*buffer.SampleBuffer{track})
	if err != nil {
		t.Fatal(err)
	}
	if out.Channels() != 2 || out.Len() != 1024 {
		t.Fatalf("got (%d,%d), want (2,1024)", out.Channels(), out.Len())
	}
	for ch := 0; ch < 2; ch++ {
		plane, _ := out.Channel(ch)
		for i, v := range plane {
			if v != 0 {
				t.Fatalf("channel %d sample %d = %v, want 0", ch, i, v)
			}
		}
	}
}

// TestRenderSingleDCTrack covers end-to-end scenario 2: spatial and
// dynamic EQ both disabled so only level balancing and centered equal-
// power pan apply.
func TestRenderSingleDCTrack(t *testing.T) {
	settings := DefaultSettings()
	settings.EnableDynamicEQ = false
	settings.EnableSpatialProcessing = false

	m, err := New(testSampleRate, settings)
	if err != nil {
		t.Fatal(err)
	}

	samples := make([]float32, 256)
	for i := range samples {
		samples[i] = 0.1
	}
	track := monoTrack(samples)

	plan, err := m.Analyze([]*buffer.SampleBuffer{track})
	if err != nil {
		t.Fatal(err)
	}
	g := plan.GainsLinear[0]

	out, err := m.Render([]*buffer.SampleBuffer{track})
	if err != nil {
		t.Fatal(err)
	}

	want := float32(0.1 * g * math.Cos(math.Pi/4))
	for ch := 0; ch < 2; ch++ {
		plane, _ := out.Channel(ch)
		for i, v := range plane {
			if math.Abs(float64(v-want)) > 1e-4 {
				t.Fatalf("channel %d sample %d = %v, want %v", ch, i, v, want)
			}
		}
	}
}

// TestRenderRaggedLengths covers end-to-end scenario 3.
func TestRenderRaggedLengths(t *testing.T) {
	m, err := New(testSampleRate, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}

	track1 := monoTrack(sine32(0.5, 1000, testSampleRate, 512))
	track2 := monoTrack(sine32(0.5, 1000, testSampleRate, 1024))

	plan, err := m.Analyze([]*buffer.SampleBuffer{track1, track2})
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.PanPosition) != 2 {
		t.Fatalf("expected 2 pan positions, got %d", len(plan.PanPosition))
	}
	if math.Abs(math.Abs(plan.PanPosition[0])-0.8) > 1e-9 || math.Abs(math.Abs(plan.PanPosition[1])-0.8) > 1e-9 {
		t.Fatalf("expected pan positions at +/-0.8, got %v", plan.PanPosition)
	}
	if plan.PanPosition[0] == plan.PanPosition[1] {
		t.Fatalf("expected opposite pan positions, got %v", plan.PanPosition)
	}

	out, err := m.Render([]*buffer.SampleBuffer{track1, track2})
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 1024 {
		t.Fatalf("out.Len() = %d, want 1024", out.Len())
	}
}

func TestPanGainsEqualPowerLaw(t *testing.T) {
	for _, p := range []float64{-1, -0.5, 0, 0.5, 1} {
		l, r := panGains(p)
		sumSq := l*l + r*r
		if math.Abs(sumSq-1) > 1e-6 {
			t.Fatalf("pan=%v: L^2+R^2 = %v, want 1", p, sumSq)
		}
	}

	l, r := panGains(0)
	if math.Abs(l-math.Sqrt(0.5)) > 1e-9 || math.Abs(r-math.Sqrt(0.5)) > 1e-9 {
		t.Fatalf("pan=0: L=%v R=%v, want both sqrt(0.5)", l, r)
	}
}

// TestPanSweep covers end-to-end scenario 6.
func TestPanSweep(t *testing.T) {
	l, r := panGains(-1)
	if math.Abs(l-1) > 1e-9 || math.Abs(r) > 1e-9 {
		t.Fatalf("pan=-1: L=%v R=%v, want L=1 R=0", l, r)
	}
	l, r = panGains(1)
	if math.Abs(l) > 1e-9 || math.Abs(r-1) > 1e-9 {
		t.Fatalf("pan=1: L=%v R=%v, want L=0 R=1", l, r)
	}
}

// TestRenderTrackImpulsePanSweep renders an impulse through renderTrack
// directly at each pan extreme, covering end-to-end scenario 6 at the
// component level (gain=1, no EQ).
func TestRenderTrackImpulsePanSweep(t *testing.T) {
	m, err := New(testSampleRate, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	track := monoTrack(testutil.Impulse(1, 0))

	for _, tc := range []struct {
		pan   float64
		wantL float32
		wantR float32
	}{
		{-1, 1, 0},
		{0, float32(math.Sqrt(0.5)), float32(math.Sqrt(0.5))},
		{1, 0, 1},
	} {
		out, err := m.renderTrack(track, 1, nil, tc.pan)
		if err != nil {
			t.Fatal(err)
		}
		l, _ := out.Channel(0)
		r, _ := out.Channel(1)
		if math.Abs(float64(l[0]-tc.wantL)) > 1e-6 || math.Abs(float64(r[0]-tc.wantR)) > 1e-6 {
			t.Fatalf("pan=%v: L=%v R=%v, want L=%v R=%v", tc.pan, l[0], r[0], tc.wantL, tc.wantR)
		}
	}
}

func TestPanPositionsSingleTrackIsCentered(t *testing.T) {
	positions := panPositions(1)
	if len(positions) != 1 || positions[0] != 0 {
		t.Fatalf("panPositions(1) = %v, want [0]", positions)
	}
}

func TestMultiChannelTrackSummedEvenly(t *testing.T) {
	m, err := New(testSampleRate, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}

	track, err := buffer.New(4, 8)
	if err != nil {
		t.Fatal(err)
	}
	for c := 0; c < 4; c++ {
		plane, _ := track.ChannelMut(c)
		for i := range plane {
			plane[i] = 0.1
		}
	}

	stereo, err := m.renderTrack(track, 1.0, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	l, _ := stereo.Channel(0)
	r, _ := stereo.Channel(1)
	for i := range l {
		if l[i] != r[i] {
			t.Fatalf("sample %d: L=%v R=%v, want equal for >2 channel sum", i, l[i], r[i])
		}
	}
}

// TestDeterminism covers spec §8 invariant 13.
func TestDeterminism(t *testing.T) {
	makeTracks := func() []*buffer.SampleBuffer {
		return []*buffer.SampleBuffer{
			monoTrack(sine32(0.3, 440, testSampleRate, 2000)),
			monoTrack(sine32(0.2, 880, testSampleRate, 1500)),
		}
	}

	m1, err := New(testSampleRate, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	out1, err := m1.Render(makeTracks())
	if err != nil {
		t.Fatal(err)
	}

	m2, err := New(testSampleRate, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	out2, err := m2.Render(makeTracks())
	if err != nil {
		t.Fatal(err)
	}

	for ch := 0; ch < 2; ch++ {
		p1, _ := out1.Channel(ch)
		p2, _ := out2.Channel(ch)
		testutil.RequireFinite(t, p1)
		for i := range p1 {
			if p1[i] != p2[i] {
				t.Fatalf("channel %d sample %d diverged: %v vs %v", ch, i, p1[i], p2[i])
			}
		}
	}
}
