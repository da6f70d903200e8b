// Package models holds the query API's response shapes. Field names are
// part of the wire contract; downstream notebooks key on them.
package models

import (
	"github.com/mtthdn/lacuene-exp/internal/bulk"
	"github.com/mtthdn/lacuene-exp/internal/candidate"
	"github.com/mtthdn/lacuene-exp/internal/gene"
	"github.com/mtthdn/lacuene-exp/internal/provenance"
	"github.com/mtthdn/lacuene-exp/internal/snapshot"
)

// ServiceName identifies this API in status and index responses.
const ServiceName = "lacuene-exp"

// IndexResponse documents the API surface at the root route.
type IndexResponse struct {
	Service     string         `json:"service"`
	Description string         `json:"description"`
	Endpoints   map[string]any `json:"endpoints"`
}

// TierCounts reports one tier's availability in the status response.
type TierCounts struct {
	Available bool `json:"available"`
	Genes     int  `json:"genes"`
}

// BulkTierStatus reports the genome tier, which carries a summary instead
// of a gene list.
type BulkTierStatus struct {
	Available bool          `json:"available"`
	Summary   *bulk.Summary `json:"summary"`
}

// DerivedTierStatus reports the derived tier's candidate count.
type DerivedTierStatus struct {
	Available  bool `json:"available"`
	Candidates int  `json:"candidates"`
}

// StatusResponse is the health check payload.
type StatusResponse struct {
	Service string     `json:"service"`
	Tiers   TierStatus `json:"tiers"`
}

// TierStatus groups per-tier availability.
type TierStatus struct {
	Curated  TierCounts        `json:"curated"`
	Expanded TierCounts        `json:"expanded"`
	Bulk     BulkTierStatus    `json:"bulk"`
	Derived  DerivedTierStatus `json:"derived"`
}

// GeneListResponse lists symbols for the curated and expanded tiers. The
// underscore fields mark a degraded response served by a fallback tier.
type GeneListResponse struct {
	Tier     snapshot.Tier `json:"tier"`
	Count    int           `json:"count"`
	Genes    []string      `json:"genes"`
	Fallback bool          `json:"_fallback,omitempty"`
	Reason   string        `json:"_reason,omitempty"`
}

// GenomeResponse serves the genome tier, which is summary-only.
type GenomeResponse struct {
	Tier    snapshot.Tier `json:"tier"`
	Summary *bulk.Summary `json:"summary"`
}

// GeneDetailResponse is the single-gene lookup payload. Sources is set for
// curated genes; HGNC and Note for expanded-only genes.
type GeneDetailResponse struct {
	Symbol  gene.Symbol    `json:"symbol"`
	Tier    snapshot.Tier  `json:"tier"`
	Sources map[string]any `json:"sources,omitempty"`
	HGNC    *gene.Info     `json:"hgnc,omitempty"`
	Note    string         `json:"_note,omitempty"`
}

// CoverageMatrixResponse is the per-gene source grid.
type CoverageMatrixResponse struct {
	TotalGenes int                        `json:"total_genes"`
	Sources    []string                   `json:"sources"`
	Matrix     map[string]map[string]bool `json:"matrix"`
}

// GapCandidatesResponse serves the derived tier with post-load filters
// applied. TotalCandidates is the unfiltered count from the snapshot.
type GapCandidatesResponse struct {
	Tier              snapshot.Tier      `json:"tier"`
	Count             int                `json:"count"`
	TotalCandidates   int                `json:"total_candidates"`
	ScoreDistribution map[string]int     `json:"score_distribution"`
	Candidates        []candidate.Record `json:"candidates"`
	Provenance        provenance.Block   `json:"_provenance"`
}

// ProvenanceResponse lists every provenance block discovered across the
// derived artifacts.
type ProvenanceResponse struct {
	DerivationCount int                     `json:"derivation_count"`
	Derivations     []provenance.Discovered `json:"derivations"`
}

// DigestResponse wraps the markdown digest for JSON consumers.
type DigestResponse struct {
	Date   string `json:"date"`
	Digest string `json:"digest"`
}
