// Package handler wires the query API's routes to the loaded snapshot.
// Every route is read-only and synchronous; degraded tiers answer with
// explicit markers or coded errors, never a crash.
package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mtthdn/lacuene-exp/internal/serving/metrics"
	"github.com/mtthdn/lacuene-exp/internal/serving/models"
	"github.com/mtthdn/lacuene-exp/internal/snapshot"
	dErrors "github.com/mtthdn/lacuene-exp/pkg/domain-errors"
	"github.com/mtthdn/lacuene-exp/pkg/platform/httputil"
	"github.com/mtthdn/lacuene-exp/pkg/platform/sentinel"
	"github.com/mtthdn/lacuene-exp/pkg/requestcontext"
)

// Remediation hints attached to unavailable-tier errors.
const (
	hintCurated = "run the curated pipeline to produce sources.json"
	hintExpand  = "run: lacuene-exp expand"
	hintBulk    = "run: lacuene-exp bulk"
	hintDerive  = "run: lacuene-exp derive"
)

// Handler serves the query API over one immutable snapshot.
type Handler struct {
	snap    *snapshot.Snapshot
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New constructs a serving handler with its dependencies.
func New(snap *snapshot.Snapshot, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		snap:    snap,
		logger:  logger,
		metrics: m,
	}
}

// Register mounts the query API on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.HandleIndex)
	r.Get("/api/status", h.HandleStatus)
	r.Get("/api/genes", h.HandleGenes)
	r.Get("/api/genes/{symbol}", h.HandleGeneDetail)
	r.Get("/api/coverage", h.HandleCoverage)
	r.Get("/api/gaps", h.HandleGaps)
	r.Get("/api/digest", h.HandleDigest)
	r.Get("/api/enrichment/coverage-matrix", h.HandleCoverageMatrix)
	r.Get("/api/enrichment/gap-candidates", h.HandleGapCandidates)
	r.Get("/api/enrichment/provenance", h.HandleProvenance)
}

// HandleIndex handles GET / requests.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	h.respond(w, r, "/", http.StatusOK, models.IndexResponse{
		Service:     models.ServiceName,
		Description: "Craniofacial gene evidence API (curated + expanded + derived tiers)",
		Endpoints: map[string]any{
			"status": "/api/status — tier availability",
			"source": map[string]string{
				"/api/genes":          "List genes (tier=curated|expanded|genome)",
				"/api/genes/{symbol}": "Single gene detail",
				"/api/coverage":       "Source coverage summary",
				"/api/gaps":           "Curated gap report",
			},
			"enrichment": map[string]string{
				"/api/enrichment/coverage-matrix": "Gene-by-source coverage matrix",
				"/api/enrichment/gap-candidates":  "Scored gap candidates (min_score, limit)",
				"/api/enrichment/provenance":      "Provenance audit across derived artifacts",
			},
			"digest": "/api/digest — coverage digest (format=md for markdown)",
		},
	}, start)
}

// HandleStatus handles GET /api/status requests. Always 200: the status of a
// degraded deployment is still a healthy answer.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	resp := models.StatusResponse{
		Service: models.ServiceName,
		Tiers: models.TierStatus{
			Curated: models.TierCounts{
				Available: h.snap.Available(snapshot.TierCurated),
				Genes:     len(h.snap.Curated),
			},
			Expanded: models.TierCounts{
				Available: h.snap.Available(snapshot.TierExpanded),
				Genes:     len(h.snap.Expanded),
			},
			Bulk: models.BulkTierStatus{
				Available: h.snap.Available(snapshot.TierGenome),
				Summary:   h.snap.Bulk,
			},
		},
	}
	if h.snap.Candidates != nil {
		resp.Tiers.Derived = models.DerivedTierStatus{
			Available:  true,
			Candidates: h.snap.Candidates.CandidateCount,
		}
	}
	h.respond(w, r, "/api/status", http.StatusOK, resp, start)
}

// HandleGenes handles GET /api/genes requests. The tier parameter selects
// data depth; expanded degrades to curated with explicit markers.
func (h *Handler) HandleGenes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const route = "/api/genes"

	requested := snapshot.Tier(r.URL.Query().Get("tier"))
	if requested == "" {
		requested = snapshot.TierCurated
	}
	if !listable(requested) {
		// The derived tier has its own route; here it is as unknown as a typo.
		h.fail(w, r, route, h.tierError(requested, snapshot.ErrUnknownTier), start)
		return
	}

	res, err := h.snap.Resolve(requested)
	if err != nil {
		h.fail(w, r, route, h.tierError(requested, err), start)
		return
	}

	if res.Fallback {
		h.metrics.IncrementFallback(string(res.Requested), string(res.Served))
		h.logger.InfoContext(r.Context(), "tier fallback",
			"request_id", requestcontext.RequestID(r.Context()),
			"requested", res.Requested,
			"served", res.Served,
		)
	}

	switch res.Served {
	case snapshot.TierGenome:
		h.respond(w, r, route, http.StatusOK, models.GenomeResponse{
			Tier:    snapshot.TierGenome,
			Summary: h.snap.Bulk,
		}, start)
	case snapshot.TierExpanded:
		genes := h.snap.ExpandedSymbols()
		h.respond(w, r, route, http.StatusOK, models.GeneListResponse{
			Tier:  snapshot.TierExpanded,
			Count: len(genes),
			Genes: genes,
		}, start)
	default:
		genes := h.snap.CuratedSymbols()
		h.respond(w, r, route, http.StatusOK, models.GeneListResponse{
			Tier:     snapshot.TierCurated,
			Count:    len(genes),
			Genes:    genes,
			Fallback: res.Fallback,
			Reason:   res.Reason,
		}, start)
	}
}

// HandleGeneDetail handles GET /api/genes/{symbol} requests.
func (h *Handler) HandleGeneDetail(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const route = "/api/genes/{symbol}"

	raw := chi.URLParam(r, "symbol")
	detail, err := h.snap.Lookup(raw)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrUnavailable):
			h.metrics.IncrementLookup("unavailable")
			h.fail(w, r, route,
				dErrors.New(dErrors.CodeUnavailable, "curated data not loaded").WithHint(hintCurated),
				start)
		case errors.Is(err, sentinel.ErrNotFound):
			h.metrics.IncrementLookup("not_found")
			h.fail(w, r, route,
				dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("gene %s not found in any tier", strings.ToUpper(strings.TrimSpace(raw)))),
				start)
		default:
			h.fail(w, r, route, err, start)
		}
		return
	}

	h.metrics.IncrementLookup(string(detail.Tier))
	h.respond(w, r, route, http.StatusOK, models.GeneDetailResponse{
		Symbol:  detail.Symbol,
		Tier:    detail.Tier,
		Sources: detail.Sources,
		HGNC:    detail.HGNC,
		Note:    detail.Note,
	}, start)
}

// HandleCoverage handles GET /api/coverage requests.
func (h *Handler) HandleCoverage(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const route = "/api/coverage"

	cov, err := h.snap.CoverageSummary()
	if err != nil {
		h.fail(w, r, route,
			dErrors.New(dErrors.CodeUnavailable, "curated data not loaded").WithHint(hintCurated),
			start)
		return
	}
	h.respond(w, r, route, http.StatusOK, cov, start)
}

// HandleGaps handles GET /api/gaps requests, a passthrough of the curated
// pipeline's gap report.
func (h *Handler) HandleGaps(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const route = "/api/gaps"

	if h.snap.GapReport == nil {
		h.fail(w, r, route,
			dErrors.New(dErrors.CodeUnavailable, "gap report not available").WithHint(hintCurated),
			start)
		return
	}
	h.respond(w, r, route, http.StatusOK, h.snap.GapReport, start)
}

// HandleCoverageMatrix handles GET /api/enrichment/coverage-matrix requests.
func (h *Handler) HandleCoverageMatrix(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const route = "/api/enrichment/coverage-matrix"

	matrix, err := h.snap.BuildCoverageMatrix()
	if err != nil {
		h.fail(w, r, route,
			dErrors.New(dErrors.CodeUnavailable, "curated data not loaded").WithHint(hintCurated),
			start)
		return
	}
	h.respond(w, r, route, http.StatusOK, models.CoverageMatrixResponse{
		TotalGenes: len(matrix.Matrix),
		Sources:    matrix.Sources,
		Matrix:     matrix.Matrix,
	}, start)
}

// HandleGapCandidates handles GET /api/enrichment/gap-candidates requests.
// Filters narrow the served list; they never trigger re-scoring.
func (h *Handler) HandleGapCandidates(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const route = "/api/enrichment/gap-candidates"

	minScore, err := queryInt(r, "min_score", 0)
	if err != nil || minScore < 0 {
		h.fail(w, r, route,
			dErrors.New(dErrors.CodeValidation, "min_score must be a non-negative integer"),
			start)
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil || limit < 0 {
		h.fail(w, r, route,
			dErrors.New(dErrors.CodeValidation, "limit must be a positive integer"),
			start)
		return
	}

	filtered, underlying, err := h.snap.GapCandidates(minScore, limit)
	if err != nil {
		h.fail(w, r, route,
			dErrors.New(dErrors.CodeUnavailable, "gap candidates not derived yet").WithHint(hintDerive),
			start)
		return
	}
	h.respond(w, r, route, http.StatusOK, models.GapCandidatesResponse{
		Tier:              snapshot.TierDerived,
		Count:             len(filtered),
		TotalCandidates:   underlying.CandidateCount,
		ScoreDistribution: underlying.ScoreDistribution,
		Candidates:        filtered,
		Provenance:        underlying.Provenance,
	}, start)
}

// HandleProvenance handles GET /api/enrichment/provenance requests. Always
// 200; an empty audit is a valid audit.
func (h *Handler) HandleProvenance(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	h.respond(w, r, "/api/enrichment/provenance", http.StatusOK, models.ProvenanceResponse{
		DerivationCount: len(h.snap.Provenance),
		Derivations:     h.snap.Provenance,
	}, start)
}

// HandleDigest handles GET /api/digest requests. format=md serves the raw
// markdown; the default wraps it in JSON.
func (h *Handler) HandleDigest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const route = "/api/digest"

	now := requestcontext.Now(r.Context())
	digest := buildDigest(h.snap, now)

	if r.URL.Query().Get("format") == "md" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(digest))
		h.observe(r, route, http.StatusOK, start)
		return
	}
	h.respond(w, r, route, http.StatusOK, models.DigestResponse{
		Date:   now.UTC().Format("2006-01-02"),
		Digest: digest,
	}, start)
}

// tierError maps resolver failures to coded errors with remediation hints.
func (h *Handler) tierError(requested snapshot.Tier, err error) error {
	if errors.Is(err, snapshot.ErrUnknownTier) {
		valid := make([]string, 0, len(snapshot.ValidTiers()))
		for _, t := range snapshot.ValidTiers() {
			valid = append(valid, string(t))
		}
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("unknown tier: %s (valid: %s)", requested, strings.Join(valid, ", ")))
	}

	msg := fmt.Sprintf("%s data not available", requested)
	coded := dErrors.New(dErrors.CodeUnavailable, msg)
	switch requested {
	case snapshot.TierCurated:
		return coded.WithHint(hintCurated)
	case snapshot.TierExpanded:
		return coded.WithHint(hintExpand)
	case snapshot.TierGenome:
		return coded.WithHint(hintBulk)
	case snapshot.TierDerived:
		return coded.WithHint(hintDerive)
	}
	return coded
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, route string, status int, payload any, start time.Time) {
	httputil.WriteJSON(w, status, payload)
	h.observe(r, route, status, start)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, route string, err error, start time.Time) {
	status := dErrors.ToHTTPStatus(dErrors.GetCode(err))
	h.logger.InfoContext(r.Context(), "request rejected",
		"request_id", requestcontext.RequestID(r.Context()),
		"route", route,
		"status", status,
		"error", err,
	)
	httputil.WriteError(w, err)
	h.observe(r, route, status, start)
}

func (h *Handler) observe(r *http.Request, route string, status int, start time.Time) {
	h.metrics.ObserveRequest(route, status, time.Since(start))
	h.logger.DebugContext(r.Context(), "request served",
		"request_id", requestcontext.RequestID(r.Context()),
		"route", route,
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

// listable reports whether the tier may be requested on the gene listing
// route.
func listable(t snapshot.Tier) bool {
	for _, v := range snapshot.ValidTiers() {
		if t == v {
			return true
		}
	}
	return false
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
