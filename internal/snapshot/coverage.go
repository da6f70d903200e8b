package snapshot

import (
	"fmt"
	"math"

	"github.com/mtthdn/lacuene-exp/internal/candidate"
	"github.com/mtthdn/lacuene-exp/pkg/platform/sentinel"
)

// sourceKeys fixes the order of the curated pipeline's per-source flags in
// coverage output.
var sourceKeys = []string{
	"go", "omim", "hpo", "uniprot", "facebase", "clinvar",
	"pubmed", "gnomad", "nih_reporter", "gtex", "clinicaltrials",
	"string", "orphanet", "opentargets", "models", "structures",
}

// SourceKeys returns a copy of the coverage source order.
func SourceKeys() []string {
	keys := make([]string, len(sourceKeys))
	copy(keys, sourceKeys)
	return keys
}

// SourceCoverage is one source's coverage over the curated population.
type SourceCoverage struct {
	Count   int     `json:"count"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// Coverage summarizes per-source coverage over the curated population.
type Coverage struct {
	TotalGenes int                       `json:"total_genes"`
	Sources    map[string]SourceCoverage `json:"sources"`
}

// CoverageSummary computes per-source counts and percentages. Requires
// curated data (sentinel.ErrUnavailable otherwise).
func (s *Snapshot) CoverageSummary() (*Coverage, error) {
	if !s.Available(TierCurated) {
		return nil, fmt.Errorf("curated tier: %w", sentinel.ErrUnavailable)
	}
	total := len(s.Curated)
	cov := &Coverage{
		TotalGenes: total,
		Sources:    make(map[string]SourceCoverage, len(sourceKeys)),
	}
	for _, src := range sourceKeys {
		count := 0
		for sym := range s.Curated {
			if s.Curated.FlagSet(sym, src) {
				count++
			}
		}
		cov.Sources[src] = SourceCoverage{
			Count:   count,
			Total:   total,
			Percent: math.Round(1000*float64(count)/float64(total)) / 10,
		}
	}
	return cov, nil
}

// CoverageMatrix is the gene-by-source boolean grid over the curated set.
type CoverageMatrix struct {
	Sources []string                   `json:"sources"`
	Matrix  map[string]map[string]bool `json:"matrix"`
}

// BuildCoverageMatrix expands coverage to per-gene detail. Requires curated
// data (sentinel.ErrUnavailable otherwise).
func (s *Snapshot) BuildCoverageMatrix() (*CoverageMatrix, error) {
	if !s.Available(TierCurated) {
		return nil, fmt.Errorf("curated tier: %w", sentinel.ErrUnavailable)
	}
	matrix := make(map[string]map[string]bool, len(s.Curated))
	for sym := range s.Curated {
		row := make(map[string]bool, len(sourceKeys))
		for _, src := range sourceKeys {
			row[src] = s.Curated.FlagSet(sym, src)
		}
		matrix[string(sym)] = row
	}
	return &CoverageMatrix{Sources: SourceKeys(), Matrix: matrix}, nil
}

// GapCandidates applies the derived tier's post-load filters and returns
// the narrowed list alongside the immutable underlying snapshot, whose
// counts and provenance the response carries untouched. Zero means no
// filter; validation of negative inputs belongs to the handler.
func (s *Snapshot) GapCandidates(minScore, limit int) ([]candidate.Record, *candidate.Snapshot, error) {
	if !s.Available(TierDerived) {
		return nil, nil, fmt.Errorf("derived tier: %w", sentinel.ErrUnavailable)
	}
	return s.Candidates.Filter(minScore, limit), s.Candidates, nil
}
