// Package scoring computes everything a scorecard displays from a tee box
// definition and the state of a round: per-hole classification and handicap
// strokes, round totals, the current hole and the greens-in-regulation flag.
//
// Every function is pure. Callers own persistence and validation of inputs.
package scoring
