// Package gene defines the domain model shared by the batch pipeline and the
// serving layer: gene symbols, per-source evidence, and aggregated records.
package gene

import "strings"

// Symbol is a canonical HGNC gene symbol. The canonical form is trimmed and
// uppercase; every lookup key must pass through Normalize first or evidence
// silently fails to attach.
type Symbol string

// Normalize canonicalizes a raw symbol for joining and lookup.
func Normalize(raw string) Symbol {
	return Symbol(strings.ToUpper(strings.TrimSpace(raw)))
}

// CrossReferences holds external database identifiers for a gene.
type CrossReferences struct {
	NCBIID    string `json:"ncbi_id"`
	UniProtID string `json:"uniprot_id"`
	OMIMID    string `json:"omim_id"`
	EnsemblID string `json:"ensembl_id"`
}

// Info is one entry of the expanded gene universe as produced by the HGNC
// adapter. Source records why the gene entered the universe: "curated",
// "group:<name>", or "name:<term>".
type Info struct {
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	HGNCID    string   `json:"hgnc_id"`
	NCBIID    string   `json:"ncbi_id"`
	EnsemblID string   `json:"ensembl_id"`
	UniProtID string   `json:"uniprot_id"`
	OMIMID    string   `json:"omim_id"`
	LocusType string   `json:"locus_type"`
	GeneGroup []string `json:"gene_group"`
	Location  string   `json:"location"`
	Source    string   `json:"source"`
}

// Xrefs extracts the cross-reference block from an Info record.
func (i Info) Xrefs() CrossReferences {
	return CrossReferences{
		NCBIID:    i.NCBIID,
		UniProtID: i.UniProtID,
		OMIMID:    i.OMIMID,
		EnsemblID: i.EnsemblID,
	}
}

// PhenotypeEvidence is the normalized HPO signal for one gene.
type PhenotypeEvidence struct {
	Count    int      `json:"count"`
	TopTerms []string `json:"top_terms"`
}

// RareDiseaseEvidence is the normalized Orphanet signal for one gene.
// Upstream shapes vary (bare list vs. dict with a nested "disorders" list);
// the adapter flattens both into this one tagged shape.
type RareDiseaseEvidence struct {
	Count     int      `json:"count"`
	Disorders []string `json:"disorders"`
}

// DiseaseEntryEvidence is the normalized OMIM signal for one gene.
type DiseaseEntryEvidence struct {
	Present       bool   `json:"present"`
	Title         string `json:"title"`
	SyndromeCount int    `json:"syndrome_count"`
}

// CuratedEvidence records coverage by the hand-curated pipeline: which of
// its per-source flags are set for this gene.
type CuratedEvidence struct {
	Present     bool `json:"present"`
	SourceCount int  `json:"source_count"`
}

// Evidence bundles every per-source signal attached to a gene. A source that
// contributed nothing leaves its zero value in place; zero is a valid state,
// not an error.
type Evidence struct {
	Phenotypes   PhenotypeEvidence    `json:"phenotypes"`
	RareDiseases RareDiseaseEvidence  `json:"rare_diseases"`
	DiseaseEntry DiseaseEntryEvidence `json:"disease_entry"`
	Curated      CuratedEvidence      `json:"curated"`
}

// Record is one aggregated gene: exactly one per universe symbol.
// IsCurated is authoritative; a curated gene is never a gap candidate
// regardless of evidence.
type Record struct {
	Symbol    Symbol          `json:"symbol"`
	Name      string          `json:"name"`
	Source    string          `json:"source"`
	GeneGroup []string        `json:"gene_group"`
	Location  string          `json:"location"`
	Xrefs     CrossReferences `json:"cross_references"`
	Evidence  Evidence        `json:"evidence"`
	IsCurated bool            `json:"is_curated"`
}
