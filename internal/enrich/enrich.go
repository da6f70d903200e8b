// Package enrich runs quick public-API lookups over the top gap candidates.
// It is deliberately not the full curated pipeline: the output exists to
// help a reviewer decide whether a candidate merits curation at all.
package enrich

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mtthdn/lacuene-exp/internal/candidate"
	"github.com/mtthdn/lacuene-exp/internal/provenance"
)

// WorkerName tags the enrichment artifact in its provenance block.
const WorkerName = "lacuene-exp enrich"

// DefaultTop is how many candidates get enriched when no count is given.
const DefaultTop = 20

// textLimit caps free-text annotations carried into the artifact.
const textLimit = 500

// defaultPause spaces consecutive candidates to stay under the NCBI
// unauthenticated rate limit (3 req/s across the three per-gene lookups).
const defaultPause = 400 * time.Millisecond

// Candidate is one enriched gap candidate.
type Candidate struct {
	Symbol                  string  `json:"symbol"`
	ConfidenceScore         float64 `json:"confidence_score"`
	NCBIID                  string  `json:"ncbi_id"`
	UniProtID               string  `json:"uniprot_id"`
	GeneSummary             string  `json:"gene_summary"`
	PubMedCraniofacialCount int     `json:"pubmed_craniofacial_count"`
	UniProtFunction         string  `json:"uniprot_function"`
	HPOPhenotypeCount       int     `json:"hpo_phenotype_count"`
	OrphanetDisorderCount   int     `json:"orphanet_disorder_count"`
	CFSource                string  `json:"cf_source"`
}

// Result is the persisted candidate_enrichment.json artifact.
type Result struct {
	EnrichedCount int              `json:"enriched_count"`
	Candidates    []Candidate      `json:"candidates"`
	Provenance    provenance.Block `json:"_provenance"`
}

// Service drives enrichment over a candidate snapshot.
type Service struct {
	clients *Clients
	logger  *slog.Logger
	pause   time.Duration
}

// Option configures the Service.
type Option func(*Service)

// WithPause overrides the delay between consecutive candidates.
func WithPause(d time.Duration) Option {
	return func(s *Service) { s.pause = d }
}

// NewService builds an enrichment service.
func NewService(clients *Clients, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		clients: clients,
		logger:  logger,
		pause:   defaultPause,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enrich looks up the top candidates by score (phenotype count breaks ties)
// and returns the assembled artifact. Individual lookup failures degrade to
// empty values; only context cancellation aborts the run.
func (s *Service) Enrich(ctx context.Context, snap *candidate.Snapshot, top int, runID string, now time.Time) (*Result, error) {
	if top <= 0 {
		top = DefaultTop
	}
	selected := topCandidates(snap.Candidates, top)

	enriched := make([]Candidate, 0, len(selected))
	for i, c := range selected {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		enriched = append(enriched, s.enrichOne(ctx, c))
		s.logger.Info("candidate enriched",
			"symbol", c.Symbol,
			"position", i+1,
			"total", len(selected),
			"pubmed_count", enriched[i].PubMedCraniofacialCount,
		)
		if i < len(selected)-1 {
			select {
			case <-time.After(s.pause):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return &Result{
		EnrichedCount: len(enriched),
		Candidates:    enriched,
		Provenance: provenance.New(WorkerName, runID, now,
			[]string{"NCBI Gene", "PubMed", "UniProt"},
			[]string{"Gene summary truncation", "Craniofacial search term filter"},
			"Quick public-API lookups over the top gap candidates",
		),
	}, nil
}

// enrichOne runs the three per-gene lookups in parallel. Failures are soft:
// each one logs and leaves its zero value in place.
func (s *Service) enrichOne(ctx context.Context, c candidate.Record) Candidate {
	out := Candidate{
		Symbol:                string(c.Symbol),
		ConfidenceScore:       c.ConfidenceScore,
		NCBIID:                c.Xrefs.NCBIID,
		UniProtID:             c.Xrefs.UniProtID,
		HPOPhenotypeCount:     c.Evidence.HPOPhenotypeCount,
		OrphanetDisorderCount: c.Evidence.OrphanetDisorderCount,
		CFSource:              c.HGNCSource,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		summary, err := s.clients.GeneSummary(ctx, out.NCBIID)
		if err != nil {
			s.logger.WarnContext(ctx, "gene summary lookup failed",
				"symbol", out.Symbol, "ncbi_id", out.NCBIID, "error", err)
			return nil
		}
		out.GeneSummary = truncate(summary, textLimit)
		return nil
	})

	g.Go(func() error {
		count, err := s.clients.PubMedCraniofacialCount(ctx, out.Symbol)
		if err != nil {
			s.logger.WarnContext(ctx, "pubmed count lookup failed",
				"symbol", out.Symbol, "error", err)
			return nil
		}
		out.PubMedCraniofacialCount = count
		return nil
	})

	g.Go(func() error {
		function, err := s.clients.UniProtFunction(ctx, out.UniProtID)
		if err != nil {
			s.logger.WarnContext(ctx, "uniprot function lookup failed",
				"symbol", out.Symbol, "uniprot_id", out.UniProtID, "error", err)
			return nil
		}
		out.UniProtFunction = truncate(function, textLimit)
		return nil
	})

	// Every goroutine swallows its own error, so Wait only observes
	// context cancellation, which the caller re-checks anyway.
	_ = g.Wait()
	return out
}

func topCandidates(candidates []candidate.Record, top int) []candidate.Record {
	sorted := make([]candidate.Record, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ConfidenceScore != sorted[j].ConfidenceScore {
			return sorted[i].ConfidenceScore > sorted[j].ConfidenceScore
		}
		return sorted[i].Evidence.HPOPhenotypeCount > sorted[j].Evidence.HPOPhenotypeCount
	})
	if len(sorted) > top {
		sorted = sorted[:top]
	}
	return sorted
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
