// Package bulk builds the genome-wide summary: one merged row per
// protein-coding gene cross-referencing every bulk source, plus aggregate
// coverage counts. Unlike the candidate pipeline it keeps curated genes in
// the output, since the point is coverage over the whole universe.
package bulk

import (
	"sort"
	"time"

	"github.com/mtthdn/lacuene-exp/internal/gene"
	"github.com/mtthdn/lacuene-exp/internal/provenance"
)

// WorkerName tags bulk artifacts in their provenance blocks.
const WorkerName = "lacuene-exp bulk"

// phenotypeGapThreshold is the minimum phenotype count for a non-curated
// gene to count toward with_phenotypes_and_no_curated in the summary.
const phenotypeGapThreshold = 5

// Row is one merged per-gene record in the genome-wide output.
type Row struct {
	Symbol                gene.Symbol
	Name                  string
	NCBIID                string
	UniProtID             string
	EnsemblID             string
	OMIMID                string
	Location              string
	InHPO                 bool
	HPOPhenotypeCount     int
	InOrphanet            bool
	OrphanetDisorderCount int
	InOMIM                bool
	OMIMTitle             string
	OMIMSyndromeCount     int
	InCurated             bool
	CuratedSourceCount    int
	CFSource              string
}

// Summary carries aggregate coverage counts over the merged rows.
type Summary struct {
	TotalGenes                 int              `json:"total_genes"`
	InHPO                      int              `json:"in_hpo"`
	InOrphanet                 int              `json:"in_orphanet"`
	InOMIM                     int              `json:"in_omim"`
	InCurated                  int              `json:"in_curated"`
	WithPhenotypesAndNoCurated int              `json:"with_phenotypes_and_no_curated"`
	DiseaseGenesNotCurated     int              `json:"disease_genes_not_curated"`
	Provenance                 provenance.Block `json:"_provenance"`
}

// Build merges the joined records into genome-wide rows and computes the
// coverage summary. Rows come out sorted by symbol.
func Build(records []gene.Record, runID string, now time.Time) ([]Row, *Summary) {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, buildRow(rec))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Symbol < rows[j].Symbol })

	summary := &Summary{TotalGenes: len(rows)}
	for _, r := range rows {
		if r.InHPO {
			summary.InHPO++
		}
		if r.InOrphanet {
			summary.InOrphanet++
		}
		if r.InOMIM {
			summary.InOMIM++
		}
		if r.InCurated {
			summary.InCurated++
		}
		if r.HPOPhenotypeCount > phenotypeGapThreshold && !r.InCurated {
			summary.WithPhenotypesAndNoCurated++
		}
		if r.InOMIM && !r.InCurated {
			summary.DiseaseGenesNotCurated++
		}
	}
	summary.Provenance = provenance.New(WorkerName, runID, now,
		[]string{"HGNC", "HPO", "Orphanet", "OMIM"},
		[]string{"Cross-reference join logic", "Phenotype count thresholds"},
		"Genome-wide coverage summary over the merged bulk sources",
	)
	return rows, summary
}

func buildRow(rec gene.Record) Row {
	ev := rec.Evidence
	return Row{
		Symbol:                rec.Symbol,
		Name:                  rec.Name,
		NCBIID:                rec.Xrefs.NCBIID,
		UniProtID:             rec.Xrefs.UniProtID,
		EnsemblID:             rec.Xrefs.EnsemblID,
		OMIMID:                rec.Xrefs.OMIMID,
		Location:              rec.Location,
		InHPO:                 ev.Phenotypes.Count > 0,
		HPOPhenotypeCount:     ev.Phenotypes.Count,
		InOrphanet:            ev.RareDiseases.Count > 0,
		OrphanetDisorderCount: ev.RareDiseases.Count,
		InOMIM:                ev.DiseaseEntry.Present,
		OMIMTitle:             ev.DiseaseEntry.Title,
		OMIMSyndromeCount:     ev.DiseaseEntry.SyndromeCount,
		InCurated:             rec.IsCurated,
		CuratedSourceCount:    ev.Curated.SourceCount,
		CFSource:              rec.Source,
	}
}
