package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mtthdn/lacuene-exp/internal/gene"
)

func evidence(hpo, orph int, omim bool, syndromes int) gene.Evidence {
	return gene.Evidence{
		Phenotypes:   gene.PhenotypeEvidence{Count: hpo},
		RareDiseases: gene.RareDiseaseEvidence{Count: orph},
		DiseaseEntry: gene.DiseaseEntryEvidence{Present: omim, SyndromeCount: syndromes},
	}
}

func TestScore(t *testing.T) {
	t.Run("no evidence scores exactly zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Score(evidence(0, 0, false, 0)))
	})

	t.Run("phenotypes only", func(t *testing.T) {
		// log2(6) ~ 2.6
		assert.InDelta(t, 2.6, Score(evidence(5, 0, false, 0)), 0.05)
	})

	t.Run("single rare disease", func(t *testing.T) {
		// log2(2) * 3 = 3.0
		assert.Equal(t, 3.0, Score(evidence(0, 1, false, 0)))
	})

	t.Run("disease entry with no syndromes scores the base", func(t *testing.T) {
		// 2 + log2(1) = 2.0
		assert.Equal(t, 2.0, Score(evidence(0, 0, true, 0)))
	})

	t.Run("all evidence combines", func(t *testing.T) {
		// log2(101) + log2(6)*3 + 2 + log2(4) ~ 18.4
		s := Score(evidence(100, 5, true, 3))
		assert.Greater(t, s, 15.0)
		assert.Less(t, s, 25.0)
	})

	t.Run("worked example crosses the expected window", func(t *testing.T) {
		s := Score(evidence(360, 18, true, 5))
		assert.Greater(t, s, 20.0)
		assert.Less(t, s, 28.0)
	})

	t.Run("rare diseases alone can reach the high filter threshold", func(t *testing.T) {
		// log2(16) * 3 = 12.0
		assert.GreaterOrEqual(t, Score(evidence(0, 15, false, 0)), 12.0)
	})
}

func TestScoreMonotonicity(t *testing.T) {
	t.Run("phenotype count", func(t *testing.T) {
		prev := 0.0
		for _, n := range []int{1, 10, 100, 1000} {
			s := Score(evidence(n, 0, false, 0))
			assert.Greater(t, s, prev)
			prev = s
		}
	})

	t.Run("rare disease count", func(t *testing.T) {
		prev := 0.0
		for _, n := range []int{1, 5, 20} {
			s := Score(evidence(0, n, false, 0))
			assert.Greater(t, s, prev)
			prev = s
		}
	})

	t.Run("syndrome count never decreases the score", func(t *testing.T) {
		base := Score(evidence(10, 2, true, 0))
		for _, n := range []int{1, 3, 8} {
			assert.GreaterOrEqual(t, Score(evidence(10, 2, true, n)), base)
		}
	})

	t.Run("each dimension is independent", func(t *testing.T) {
		base := Score(evidence(25, 3, true, 2))
		assert.GreaterOrEqual(t, Score(evidence(26, 3, true, 2)), base)
		assert.GreaterOrEqual(t, Score(evidence(25, 4, true, 2)), base)
		assert.GreaterOrEqual(t, Score(evidence(25, 3, true, 3)), base)
	})
}

func TestBand(t *testing.T) {
	assert.Equal(t, BandHigh, Band(7.0))
	assert.Equal(t, BandHigh, Band(21.3))
	assert.Equal(t, BandMedium, Band(4.0))
	assert.Equal(t, BandMedium, Band(6.9))
	assert.Equal(t, BandLow, Band(3.9))
	assert.Equal(t, BandLow, Band(0.1))
}

func TestDistribution(t *testing.T) {
	dist := Distribution([]float64{21.3, 8.0, 6.9, 4.0, 2.6, 0.5})
	assert.Equal(t, 2, dist[BandHigh])
	assert.Equal(t, 2, dist[BandMedium])
	assert.Equal(t, 2, dist[BandLow])

	empty := Distribution(nil)
	assert.Equal(t, 0, empty[BandHigh])
	assert.Equal(t, 0, empty[BandMedium])
	assert.Equal(t, 0, empty[BandLow])
}
