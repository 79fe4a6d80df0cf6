// Package automix implements AutoMixer, the orchestrator that analyzes a
// set of tracks and renders a stereo mix-down (spec §4.6). Analyze never
// mutates its inputs; Render copies before mutating.
package automix
