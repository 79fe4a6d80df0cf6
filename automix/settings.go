package automix

// Settings holds AutoMixer's configurable behavior (spec §3
// AutoMixerSettings).
type Settings struct {
	TargetLUFS              float64
	MaxGainReductionDB      float64
	FrequencySeparationDB   float64
	EnableDynamicEQ         bool
	EnableSpatialProcessing bool
	MixBusCompThresholdDB   float64
	MixBusCompRatio         float64
}

// DefaultSettings returns the spec's documented defaults: target -16
// LUFS, 12 dB max downward gain, dynamic EQ and spatial processing both
// enabled, and a permissive mix-bus compressor (spec §3).
func DefaultSettings() Settings {
	return Settings{
		TargetLUFS:              -16,
		MaxGainReductionDB:      12,
		FrequencySeparationDB:   3,
		EnableDynamicEQ:         true,
		EnableSpatialProcessing: true,
		MixBusCompThresholdDB:   -6,
		MixBusCompRatio:         2,
	}
}

// TrackAnalysis exposes why AutoMixer made a given gain/EQ decision for
// one track, supplementing the spec's bare MixPlan with the per-track
// loudness and spectral readings it was derived from (see SPEC_FULL.md
// "Supplemented features").
type TrackAnalysis struct {
	LoudnessDB         float64
	SpectralCentroidHz float64
	BassEnergy         float64
	MidEnergy          float64
	HighEnergy         float64
	DurationSamples    float64
}
