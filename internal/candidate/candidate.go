// Package candidate selects gap candidates from the aggregated population
// and owns the derived snapshot artifact they are published in.
package candidate

import (
	"sort"
	"time"

	"github.com/mtthdn/lacuene-exp/internal/gene"
	"github.com/mtthdn/lacuene-exp/internal/provenance"
	"github.com/mtthdn/lacuene-exp/internal/scoring"
)

// WorkerName identifies the batch step that produces the candidate snapshot.
const WorkerName = "lacuene-exp derive"

// EvidenceBreakdown is the per-source evidence summary published with each
// candidate.
type EvidenceBreakdown struct {
	HPOPhenotypeCount     int      `json:"hpo_phenotype_count"`
	HPOTopTerms           []string `json:"hpo_top_terms"`
	OrphanetDisorderCount int      `json:"orphanet_disorder_count"`
	OrphanetDisorders     []string `json:"orphanet_disorders"`
	HasOMIM               bool     `json:"has_omim"`
	OMIMTitle             string   `json:"omim_title"`
	OMIMSyndromeCount     int      `json:"omim_syndrome_count"`
}

// Record is one gap candidate: a non-curated gene with disease signal.
// Immutable once written; the next batch run replaces the whole snapshot.
type Record struct {
	Symbol          gene.Symbol          `json:"symbol"`
	Name            string               `json:"name"`
	HGNCSource      string               `json:"hgnc_source"`
	GeneGroup       []string             `json:"gene_group"`
	Location        string               `json:"location"`
	ConfidenceScore float64              `json:"confidence_score"`
	Evidence        EvidenceBreakdown    `json:"evidence"`
	Xrefs           gene.CrossReferences `json:"cross_references"`
}

// Snapshot is the derived-tier artifact: every candidate of one batch run
// plus its distribution and provenance.
type Snapshot struct {
	Provenance        provenance.Block `json:"_provenance"`
	CuratedCount      int              `json:"curated_count"`
	ExpandedCount     int              `json:"expanded_count"`
	CandidateCount    int              `json:"candidate_count"`
	ScoreDistribution map[string]int   `json:"score_distribution"`
	Candidates        []Record         `json:"candidates"`
}

// Select filters the aggregated population to gap candidates: not curated,
// score above zero. Output is ordered by descending score with ties broken
// by ascending symbol so identical inputs always produce identical
// artifacts.
func Select(records []gene.Record, runID string, now time.Time) *Snapshot {
	curated := 0
	var candidates []Record
	var scores []float64

	for _, rec := range records {
		if rec.IsCurated {
			curated++
			continue
		}
		score := scoring.Score(rec.Evidence)
		if score == 0 {
			continue
		}
		candidates = append(candidates, fromRecord(rec, score))
		scores = append(scores, score)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].ConfidenceScore != candidates[j].ConfidenceScore {
			return candidates[i].ConfidenceScore > candidates[j].ConfidenceScore
		}
		return candidates[i].Symbol < candidates[j].Symbol
	})

	return &Snapshot{
		Provenance: provenance.New(
			WorkerName,
			runID,
			now,
			[]string{"HGNC", "HPO", "Orphanet", "OMIM"},
			[]string{
				"Confidence scoring formula",
				"ZNF exclusion rule",
				"Gene group matching heuristic",
			},
			"Genes with disease signal not in curated set — candidates for literature review",
		),
		CuratedCount:      curated,
		ExpandedCount:     len(records),
		CandidateCount:    len(candidates),
		ScoreDistribution: scoring.Distribution(scores),
		Candidates:        candidates,
	}
}

func fromRecord(rec gene.Record, score float64) Record {
	ev := rec.Evidence
	return Record{
		Symbol:          rec.Symbol,
		Name:            rec.Name,
		HGNCSource:      rec.Source,
		GeneGroup:       rec.GeneGroup,
		Location:        rec.Location,
		ConfidenceScore: score,
		Evidence: EvidenceBreakdown{
			HPOPhenotypeCount:     ev.Phenotypes.Count,
			HPOTopTerms:           ev.Phenotypes.TopTerms,
			OrphanetDisorderCount: ev.RareDiseases.Count,
			OrphanetDisorders:     ev.RareDiseases.Disorders,
			HasOMIM:               ev.DiseaseEntry.Present,
			OMIMTitle:             ev.DiseaseEntry.Title,
			OMIMSyndromeCount:     ev.DiseaseEntry.SyndromeCount,
		},
		Xrefs: rec.Xrefs,
	}
}

// Filter applies the read-time minimum-score and result-count filters.
// Filtering never re-scores; it only narrows the already-published sequence.
func (s *Snapshot) Filter(minScore, limit int) []Record {
	out := s.Candidates
	if minScore > 0 {
		cut := len(out)
		for i, c := range out {
			if c.ConfidenceScore < float64(minScore) {
				cut = i
				break
			}
		}
		out = out[:cut]
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}
