package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/mtthdn/lacuene-exp/internal/snapshot"
)

// digestCandidateLimit caps the candidate table in the digest.
const digestCandidateLimit = 10

// buildDigest renders a markdown summary of the loaded snapshot: tier
// availability, curated source coverage, and the top gap candidates.
// Sections for unavailable tiers are omitted rather than rendered empty.
func buildDigest(snap *snapshot.Snapshot, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## lacuene Digest — %s\n\n", now.UTC().Format("2006-01-02"))

	b.WriteString("### Tiers\n\n")
	for _, tier := range []snapshot.Tier{
		snapshot.TierCurated, snapshot.TierExpanded, snapshot.TierGenome, snapshot.TierDerived,
	} {
		state := "unavailable"
		if snap.Available(tier) {
			state = "available"
		}
		fmt.Fprintf(&b, "- %s: %s\n", tier, state)
	}
	b.WriteString("\n")

	if cov, err := snap.CoverageSummary(); err == nil {
		b.WriteString("### Source Coverage\n\n")
		fmt.Fprintf(&b, "%d curated genes.\n\n", cov.TotalGenes)
		b.WriteString("| Source | Genes | Coverage |\n")
		b.WriteString("|--------|-------|----------|\n")
		for _, src := range snapshot.SourceKeys() {
			sc := cov.Sources[src]
			fmt.Fprintf(&b, "| %s | %d | %.1f%% |\n", src, sc.Count, sc.Percent)
		}
		b.WriteString("\n")
	}

	if snap.Candidates != nil && len(snap.Candidates.Candidates) > 0 {
		b.WriteString("### Top Gap Candidates\n\n")
		b.WriteString("| Symbol | Score | Phenotypes | Disorders |\n")
		b.WriteString("|--------|-------|------------|----------|\n")
		for i, c := range snap.Candidates.Candidates {
			if i == digestCandidateLimit {
				break
			}
			fmt.Fprintf(&b, "| %s | %.1f | %d | %d |\n",
				c.Symbol, c.ConfidenceScore,
				c.Evidence.HPOPhenotypeCount, c.Evidence.OrphanetDisorderCount)
		}
		b.WriteString("\n")
	}

	if snap.Bulk != nil {
		b.WriteString("### Genome-wide\n\n")
		fmt.Fprintf(&b, "%d genes analyzed; %d with phenotypes but no curation; %d disease genes not curated.\n",
			snap.Bulk.TotalGenes,
			snap.Bulk.WithPhenotypesAndNoCurated,
			snap.Bulk.DiseaseGenesNotCurated)
	}

	return b.String()
}
