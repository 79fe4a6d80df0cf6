// Package design derives biquad.Coefficients from the RBJ audio cookbook
// formulas for the band types the equalizer supports (§4.2). Unsupported
// types degrade to an identity section rather than failing.
package design
