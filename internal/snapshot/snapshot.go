// Package snapshot holds the data the query API serves: every tier artifact
// loaded once at startup into an immutable in-memory store. Missing or
// malformed artifacts degrade the affected tier instead of failing startup;
// reload means restart.
package snapshot

import (
	"log/slog"
	"sort"
	"time"

	"github.com/mtthdn/lacuene-exp/internal/bulk"
	"github.com/mtthdn/lacuene-exp/internal/candidate"
	"github.com/mtthdn/lacuene-exp/internal/gene"
	"github.com/mtthdn/lacuene-exp/internal/provenance"
	"github.com/mtthdn/lacuene-exp/internal/source"
)

// Tier names the depth of a gene listing.
type Tier string

const (
	TierCurated  Tier = "curated"
	TierExpanded Tier = "expanded"
	TierGenome   Tier = "genome"
	TierDerived  Tier = "derived"
)

// ValidTiers lists the tiers a listing request may name, in documentation
// order.
func ValidTiers() []Tier {
	return []Tier{TierCurated, TierExpanded, TierGenome}
}

// Paths locates the tier artifacts on disk.
type Paths struct {
	CuratedSources string // curated pipeline sources.json
	GapReport      string // curated pipeline gap_report.json
	ExpandedGenes  string // hgnc_craniofacial.json
	BulkSummary    string // genome_wide_summary.json
	Candidates     string // gap_candidates.json
	DerivedDir     string // provenance discovery root
}

// Snapshot is the loaded tier store. Immutable after Load; handlers read it
// without locks.
type Snapshot struct {
	Curated    source.CuratedSet
	GapReport  map[string]any
	Expanded   []gene.Info
	Bulk       *bulk.Summary
	Candidates *candidate.Snapshot
	Provenance []provenance.Discovered
	LoadedAt   time.Time
}

// Load reads every tier artifact, logging and skipping whatever is absent
// or unreadable. A process with zero artifacts still starts; every tier
// just reports unavailable.
func Load(paths Paths, logger *slog.Logger) *Snapshot {
	snap := &Snapshot{
		Curated:  source.LoadCurated(paths.CuratedSources, logger),
		LoadedAt: time.Now().UTC(),
	}

	var gaps map[string]any
	if err := source.LoadJSON(paths.GapReport, &gaps); err != nil {
		source.LogSoftFailure(logger, "gap report", err)
	} else {
		snap.GapReport = gaps
	}

	snap.Expanded = source.LoadUniverse(paths.ExpandedGenes, logger)

	if summary, err := bulk.LoadSummary(paths.BulkSummary); err != nil {
		source.LogSoftFailure(logger, "bulk summary", err)
	} else {
		snap.Bulk = summary
	}

	if candidates, err := candidate.Load(paths.Candidates); err != nil {
		source.LogSoftFailure(logger, "gap candidates", err)
	} else {
		snap.Candidates = candidates
	}

	snap.Provenance = provenance.Discover(paths.DerivedDir)

	logger.Info("snapshot loaded",
		"curated_genes", len(snap.Curated),
		"expanded_genes", len(snap.Expanded),
		"bulk_available", snap.Bulk != nil,
		"candidates_available", snap.Candidates != nil,
		"derived_artifacts", len(snap.Provenance),
	)
	return snap
}

// Available reports whether a tier has data to serve.
func (s *Snapshot) Available(t Tier) bool {
	switch t {
	case TierCurated:
		return len(s.Curated) > 0
	case TierExpanded:
		return len(s.Expanded) > 0
	case TierGenome:
		return s.Bulk != nil
	case TierDerived:
		return s.Candidates != nil
	}
	return false
}

// CuratedSymbols returns the curated population sorted ascending.
func (s *Snapshot) CuratedSymbols() []string {
	symbols := make([]string, 0, len(s.Curated))
	for sym := range s.Curated {
		symbols = append(symbols, string(sym))
	}
	sort.Strings(symbols)
	return symbols
}

// ExpandedSymbols returns the expanded universe's symbols in stored order.
func (s *Snapshot) ExpandedSymbols() []string {
	symbols := make([]string, 0, len(s.Expanded))
	for _, g := range s.Expanded {
		symbols = append(symbols, g.Symbol)
	}
	return symbols
}
