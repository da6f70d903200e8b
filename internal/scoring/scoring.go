// Package scoring derives the confidence score for a gene's aggregated
// evidence. The score is a pure function of the evidence counts: no state,
// no ordering dependency, reproducible given the same inputs.
package scoring

import (
	"math"

	"github.com/mtthdn/lacuene-exp/internal/gene"
)

// Weighting rationale, per evidence dimension:
//
//	phenotypes:    log2(count + 1) — continuous, diminishing returns, no cap
//	               (360 terms ~ 8.5, 25 ~ 4.7, 5 ~ 2.6)
//	rare diseases: log2(count + 1) * 3 — rare-disease association is the
//	               highest-specificity signal per unit
//	disease entry: 2 base + log2(syndromes + 1)
//
// This is the single most likely-to-change constant in the system; earlier
// linear and capped-linear weightings are superseded, not alternates.
const rareDiseaseWeight = 3

// Score maps evidence to a non-negative confidence score, rounded to one
// decimal. Zero evidence in every dimension scores exactly 0.
func Score(ev gene.Evidence) float64 {
	s := 0.0
	if n := ev.Phenotypes.Count; n > 0 {
		s += math.Log2(float64(n) + 1)
	}
	if n := ev.RareDiseases.Count; n > 0 {
		s += math.Log2(float64(n)+1) * rareDiseaseWeight
	}
	if ev.DiseaseEntry.Present {
		s += 2 + math.Log2(float64(ev.DiseaseEntry.SyndromeCount)+1)
	}
	return math.Round(s*10) / 10
}

// Band thresholds for the score distribution histogram.
const (
	HighThreshold   = 7.0
	MediumThreshold = 4.0
)

// Distribution keys; the labels encode the thresholds so the artifact is
// self-describing.
const (
	BandHigh   = "high (7+)"
	BandMedium = "medium (4-6.9)"
	BandLow    = "low (<4)"
)

// Band classifies a score into its histogram bucket.
func Band(score float64) string {
	switch {
	case score >= HighThreshold:
		return BandHigh
	case score >= MediumThreshold:
		return BandMedium
	default:
		return BandLow
	}
}

// Distribution counts scores per band. Every band key is always present so
// consumers never need existence checks.
func Distribution(scores []float64) map[string]int {
	dist := map[string]int{BandHigh: 0, BandMedium: 0, BandLow: 0}
	for _, s := range scores {
		dist[Band(s)]++
	}
	return dist
}
