package snapshot

import (
	"errors"
	"fmt"

	"github.com/mtthdn/lacuene-exp/internal/gene"
	"github.com/mtthdn/lacuene-exp/pkg/platform/sentinel"
)

// ErrUnknownTier rejects a listing request naming a tier that does not
// exist.
var ErrUnknownTier = errors.New("unknown tier")

// fallbackOrder declares, per requested tier, which tiers may serve it.
// The first available entry wins; serving any entry past the first is a
// degradation the response must mark.
var fallbackOrder = map[Tier][]Tier{
	TierCurated:  {TierCurated},
	TierExpanded: {TierExpanded, TierCurated},
	TierGenome:   {TierGenome},
	TierDerived:  {TierDerived},
}

// Resolution records which tier actually serves a listing request.
type Resolution struct {
	Requested Tier
	Served    Tier
	Fallback  bool
	Reason    string
}

// Resolve walks the requested tier's fallback order and picks the first
// available tier. Pure over (requested, snapshot): no recomputation, no I/O.
// Returns ErrUnknownTier for a tier that is not in the table and
// sentinel.ErrUnavailable when every entry in the order is empty.
func (s *Snapshot) Resolve(requested Tier) (Resolution, error) {
	order, ok := fallbackOrder[requested]
	if !ok {
		return Resolution{}, fmt.Errorf("%w: %s", ErrUnknownTier, requested)
	}
	for _, t := range order {
		if !s.Available(t) {
			continue
		}
		res := Resolution{Requested: requested, Served: t}
		if t != requested {
			res.Fallback = true
			res.Reason = fmt.Sprintf("%s data not available, serving %s", requested, t)
		}
		return res, nil
	}
	return Resolution{}, fmt.Errorf("tier %s: %w", requested, sentinel.ErrUnavailable)
}

// GeneDetail is the single-gene lookup result. Exactly one of Sources or
// HGNC is set, matching the tier the gene resolved to.
type GeneDetail struct {
	Symbol  gene.Symbol
	Tier    Tier
	Sources map[string]any // curated tier: per-source flags
	HGNC    *gene.Info     // expanded tier: reduced record
	Note    string
}

// Lookup resolves one symbol: curated first, then expanded as a reduced
// known-but-uncurated record. Requires the curated tier to be loaded at all
// (sentinel.ErrUnavailable otherwise); a symbol in neither tier is
// sentinel.ErrNotFound.
func (s *Snapshot) Lookup(raw string) (*GeneDetail, error) {
	if !s.Available(TierCurated) {
		return nil, fmt.Errorf("curated tier: %w", sentinel.ErrUnavailable)
	}
	sym := gene.Normalize(raw)

	if flags, ok := s.Curated[sym]; ok {
		return &GeneDetail{Symbol: sym, Tier: TierCurated, Sources: flags}, nil
	}
	for i := range s.Expanded {
		if gene.Normalize(s.Expanded[i].Symbol) == sym {
			return &GeneDetail{
				Symbol: sym,
				Tier:   TierExpanded,
				HGNC:   &s.Expanded[i],
				Note:   "Gene is in expanded set but not yet curated. No source data available.",
			}, nil
		}
	}
	return nil, fmt.Errorf("gene %s: %w", sym, sentinel.ErrNotFound)
}
