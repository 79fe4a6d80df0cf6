package automix

import (
	"github.com/cwbudde/automix/dynamics"
	"github.com/cwbudde/automix/eq"
)

// MixPlan is the result of Analyze: parallel arrays indexed by track,
// plus a single mix-bus compressor setting (spec §3 MixPlan).
type MixPlan struct {
	GainsLinear   []float64
	EQBands       [][]eq.Band
	PanPosition   []float64
	MixBusComp    dynamics.Settings
	TrackAnalyses []TrackAnalysis
}
