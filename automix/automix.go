package automix

import (
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/automix/buffer"
	"github.com/cwbudde/automix/core"
	"github.com/cwbudde/automix/dynamics"
	"github.com/cwbudde/automix/eq"
	"github.com/cwbudde/automix/loudness"
	"github.com/cwbudde/automix/spectrum"
)

// eqSlotHz, eqSlotGainDB, eqSlotQ are the spec's fixed uniform-slot EQ
// planning constants (§4.6 step 2): only the rank assigned to each
// track varies.
const (
	eqSlotHz     = 1000.0
	eqSlotGainDB = 2.0
	eqSlotQ      = 0.7
)

const (
	busCompAttackMs  = 10.0
	busCompReleaseMs = 100.0
	busCompKneeDB    = 2.0
)

// AutoMixer orchestrates analysis and rendering for a fixed sample rate
// and Settings. It owns its loudness meter, spectral analyzer, and the
// mix-bus compressors (one per output channel); per-track equalizers are
// allocated fresh on every Render call and discarded at its end (spec
// §3 ownership, §4.6 "Lazy EQ instantiation").
type AutoMixer struct {
	sampleRate float64
	settings   Settings

	meter    *loudness.Meter
	analyzer *spectrum.Analyzer

	busCompressors [2]*dynamics.Compressor
}

// New returns an AutoMixer bound to sampleRate with the given settings.
// opts tunes the shared core.ProcessorConfig (spec §6): WithBlockSize
// sets the FFT window used for the internal spectral analysis that
// drives EQ-slot ranking (§4.6 step 2, supplemented per SPEC_FULL.md),
// and WithSampleRate overrides sampleRate itself when both are given.
func New(sampleRate float64, settings Settings, opts ...core.ProcessorOption) (*AutoMixer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sampleRate=%v must be positive", core.ErrInvalidParameter, sampleRate)
	}

	cfg := core.ApplyProcessorOptions(append([]core.ProcessorOption{core.WithSampleRate(sampleRate)}, opts...)...)
	if settings.MixBusCompRatio < 1 {
		return nil, fmt.Errorf("%w: mix-bus ratio=%v must be >= 1", core.ErrInvalidParameter, settings.MixBusCompRatio)
	}

	analyzer, err := spectrum.New(cfg.BlockSize)
	if err != nil {
		return nil, err
	}

	m := &AutoMixer{
		sampleRate: cfg.SampleRate,
		settings:   settings,
		meter:      loudness.NewMeter(),
		analyzer:   analyzer,
	}

	busSettings := m.busCompSettings()
	for ch := range m.busCompressors {
		comp, err := dynamics.New(cfg.SampleRate, busSettings)
		if err != nil {
			return nil, err
		}
		m.busCompressors[ch] = comp
	}

	return m, nil
}

func (m *AutoMixer) busCompSettings() dynamics.Settings {
	return dynamics.Settings{
		ThresholdDB: m.settings.MixBusCompThresholdDB,
		Ratio:       m.settings.MixBusCompRatio,
		AttackMs:    busCompAttackMs,
		ReleaseMs:   busCompReleaseMs,
		KneeDB:      busCompKneeDB,
		MakeupDB:    0, // level balancing already happened upstream (spec §9)
	}
}

// Analyze measures every track and derives a MixPlan without mutating
// any input (spec §4.6 "Analyze").
func (m *AutoMixer) Analyze(tracks []*buffer.SampleBuffer) (*MixPlan, error) {
	n := len(tracks)
	plan := &MixPlan{
		GainsLinear:   make([]float64, n),
		EQBands:       make([][]eq.Band, n),
		PanPosition:   make([]float64, n),
		MixBusComp:    m.busCompSettings(),
		TrackAnalyses: make([]TrackAnalysis, n),
	}
	if n == 0 {
		return plan, nil
	}

	centroids := make([]float64, n)
	for i, track := range tracks {
		analysis := m.analyzeTrack(track)
		plan.TrackAnalyses[i] = analysis
		centroids[i] = analysis.SpectralCentroidHz

		gainDB := m.settings.TargetLUFS - analysis.LoudnessDB
		if gainDB < -m.settings.MaxGainReductionDB {
			gainDB = -m.settings.MaxGainReductionDB
		}
		plan.GainsLinear[i] = math.Pow(10, gainDB/20)
	}

	if m.settings.EnableDynamicEQ {
		rank := rankAscending(centroids)
		for i := range tracks {
			plan.EQBands[i] = []eq.Band{{
				FrequencyHz: eqSlotHz * float64(rank[i]+1),
				GainDB:      eqSlotGainDB,
				Q:           eqSlotQ,
				Type:        eq.Peak,
			}}
		}
	}

	if m.settings.EnableSpatialProcessing {
		plan.PanPosition = panPositions(n)
	}

	return plan, nil
}

// analyzeTrack measures one track's loudness and spectral content. A
// track with zero channels or zero samples measures as silence with a
// zero centroid, matching Render's treatment of the same track as
// contributing nothing (spec §4.6 edge cases).
func (m *AutoMixer) analyzeTrack(track *buffer.SampleBuffer) TrackAnalysis {
	if track == nil || track.Channels() == 0 || track.Len() == 0 {
		return TrackAnalysis{LoudnessDB: m.meter.Measure(nil)}
	}

	planes := make([][]float32, track.Channels())
	for c := range planes {
		planes[c], _ = track.Channel(c)
	}
	loudnessDB := m.meter.Measure(planes)

	mono := toFloat64Mono(planes)
	mags := m.analyzer.Analyze(mono)
	centroid := spectrum.Centroid(mags, m.sampleRate)
	bass, mid, high := spectrum.BandEnergies(mags, m.sampleRate)

	return TrackAnalysis{
		LoudnessDB:         loudnessDB,
		SpectralCentroidHz: centroid,
		BassEnergy:         bass,
		MidEnergy:          mid,
		HighEnergy:         high,
		DurationSamples:    float64(track.Len()),
	}
}

// toFloat64Mono downmixes planes (equal-weighted average across
// channels) into a float64 slice for spectral analysis, which only
// consumes analysis-stage data and never feeds the render path.
func toFloat64Mono(planes [][]float32) []float64 {
	if len(planes) == 0 {
		return nil
	}
	n := len(planes[0])
	out := make([]float64, n)
	inv := 1.0 / float64(len(planes))
	for _, plane := range planes {
		for i, v := range plane {
			out[i] += float64(v) * inv
		}
	}
	return out
}

// rankAscending returns, for each index i, the 0-based rank of
// centroids[i] among all centroids sorted ascending. Ties break by
// original index for determinism (spec §8 invariant 13).
func rankAscending(centroids []float64) []int {
	idx := make([]int, len(centroids))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return centroids[idx[a]] < centroids[idx[b]]
	})
	rank := make([]int, len(centroids))
	for r, i := range idx {
		rank[i] = r
	}
	return rank
}

// panPositions assigns n tracks positions equally spaced across
// [-0.8, +0.8]; a single track centers at 0 (spec §4.6 step 3).
func panPositions(n int) []float64 {
	out := make([]float64, n)
	if n <= 1 {
		return out
	}
	const spread = 0.8
	step := 2 * spread / float64(n-1)
	for i := range out {
		out[i] = -spread + step*float64(i)
	}
	return out
}

// panGains returns the equal-power left/right gains for pan position p
// (spec §4.6 step 3d, §8 invariant 11).
func panGains(p float64) (left, right float64) {
	theta := (p + 1) * math.Pi / 4
	return math.Cos(theta), math.Sin(theta)
}

// Render computes a fresh MixPlan via Analyze, then renders tracks into
// a stereo mix-down (spec §4.6 "Render").
func (m *AutoMixer) Render(tracks []*buffer.SampleBuffer) (*buffer.SampleBuffer, error) {
	plan, err := m.Analyze(tracks)
	if err != nil {
		return nil, err
	}
	return m.renderWithPlan(tracks, plan)
}

func (m *AutoMixer) renderWithPlan(tracks []*buffer.SampleBuffer, plan *MixPlan) (*buffer.SampleBuffer, error) {
	if len(tracks) == 0 {
		return buffer.New(2, 0)
	}

	nOut := 0
	for _, track := range tracks {
		if track != nil && track.Len() > nOut {
			nOut = track.Len()
		}
	}

	bus, err := buffer.New(2, nOut)
	if err != nil {
		return nil, err
	}

	for i, track := range tracks {
		if track == nil || track.Channels() == 0 || track.Len() == 0 {
			continue
		}

		stereo, err := m.renderTrack(track, plan.GainsLinear[i], plan.EQBands[i], plan.PanPosition[i])
		if err != nil {
			return nil, err
		}
		bus.AddFrom(stereo, 1.0)
	}

	for ch := 0; ch < 2; ch++ {
		plane, _ := bus.ChannelMut(ch)
		samples := make([]float64, len(plane))
		for i, v := range plane {
			samples[i] = float64(v)
		}
		m.busCompressors[ch].ProcessBlock(samples)
		for i, v := range samples {
			plane[i] = float32(v)
		}
	}

	return bus, nil
}

// renderTrack applies gain, EQ, and pan to one track and returns a fresh
// 2-channel buffer sized to the track's own length (spec §4.6 step 3).
func (m *AutoMixer) renderTrack(track *buffer.SampleBuffer, gain float64, bands []eq.Band, pan float64) (*buffer.SampleBuffer, error) {
	channels := track.Channels()
	n := track.Len()

	working := make([][]float64, channels)
	for c := 0; c < channels; c++ {
		plane, _ := track.Channel(c)
		ch := make([]float64, n)
		for i, v := range plane {
			ch[i] = float64(v) * gain
		}
		if len(bands) > 0 {
			equalizer := eq.New(m.sampleRate)
			for bi, band := range bands {
				equalizer.SetBand(bi, band)
			}
			equalizer.Process(ch)
		}
		working[c] = ch
	}

	out, err := buffer.New(2, n)
	if err != nil {
		return nil, err
	}
	outL, _ := out.ChannelMut(0)
	outR, _ := out.ChannelMut(1)

	switch channels {
	case 1:
		l, r := panGains(pan)
		for i, v := range working[0] {
			outL[i] = float32(v * l)
			outR[i] = float32(v * r)
		}
	case 2:
		l, r := panGains(pan)
		for i := 0; i < n; i++ {
			outL[i] = float32(working[0][i] * l)
			outR[i] = float32(working[1][i] * r)
		}
	default:
		inv := 1.0 / float64(channels)
		for i := 0; i < n; i++ {
			var sum float64
			for c := 0; c < channels; c++ {
				sum += working[c][i]
			}
			outL[i] = float32(sum * inv)
			outR[i] = float32(sum * inv)
		}
	}

	return out, nil
}

// RenderStems mixes each named group of tracks independently through
// the full Analyze+Render pipeline, returning one stereo buffer per stem
// name (see SPEC_FULL.md "Stem mixing").
func (m *AutoMixer) RenderStems(stems map[string][]*buffer.SampleBuffer) (map[string]*buffer.SampleBuffer, error) {
	out := make(map[string]*buffer.SampleBuffer, len(stems))
	for name, tracks := range stems {
		mixed, err := m.Render(tracks)
		if err != nil {
			return nil, fmt.Errorf("stem %q: %w", name, err)
		}
		out[name] = mixed
	}
	return out, nil
}

// RenderFromStems feeds a stem-name-to-buffer map back through Render as
// a second-pass track list, producing a final master from pre-mixed
// stems (see SPEC_FULL.md "Stem mixing"). Stems are added to the mix in
// the order given by names, never in map iteration order; a name missing
// from stems is rejected with core.ErrInvalidParameter.
func (m *AutoMixer) RenderFromStems(stems map[string]*buffer.SampleBuffer, names []string) (*buffer.SampleBuffer, error) {
	tracks := make([]*buffer.SampleBuffer, 0, len(names))
	for _, name := range names {
		stem, ok := stems[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown stem %q", core.ErrInvalidParameter, name)
		}
		tracks = append(tracks, stem)
	}
	return m.Render(tracks)
}
