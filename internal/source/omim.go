package source

import (
	"log/slog"

	"github.com/mtthdn/lacuene-exp/internal/gene"
)

// DiseaseEntry is one gene's record in the bundled OMIM subset.
type DiseaseEntry struct {
	Title       string   `json:"title"`
	Syndromes   []string `json:"syndromes"`
	Inheritance string   `json:"inheritance"`
}

// DiseaseEntryMap is the normalized OMIM signal: symbol to disease entry.
type DiseaseEntryMap map[gene.Symbol]DiseaseEntry

// LoadDiseaseEntries reads the bundled OMIM subset file, which wraps its
// per-gene entries under a top-level "genes" object. A missing or malformed
// file yields an empty map.
func LoadDiseaseEntries(path string, logger *slog.Logger) DiseaseEntryMap {
	var raw struct {
		Genes map[string]DiseaseEntry `json:"genes"`
	}
	if err := LoadJSON(path, &raw); err != nil {
		LogSoftFailure(logger, "omim", err)
		return DiseaseEntryMap{}
	}

	out := make(DiseaseEntryMap, len(raw.Genes))
	for sym, entry := range raw.Genes {
		out[gene.Normalize(sym)] = entry
	}
	return out
}

// Evidence reduces a gene's OMIM entry to the tagged shape the aggregator
// consumes.
func (m DiseaseEntryMap) Evidence(sym gene.Symbol) gene.DiseaseEntryEvidence {
	entry, ok := m[sym]
	if !ok {
		return gene.DiseaseEntryEvidence{}
	}
	return gene.DiseaseEntryEvidence{
		Present:       true,
		Title:         entry.Title,
		SyndromeCount: len(entry.Syndromes),
	}
}
