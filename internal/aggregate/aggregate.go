// Package aggregate joins the per-source evidence maps into one record per
// gene. This is the only place where sources meet; everything downstream
// (scoring, selection, serving) sees a single normalized shape.
package aggregate

import (
	"log/slog"
	"sort"

	"github.com/mtthdn/lacuene-exp/internal/gene"
	"github.com/mtthdn/lacuene-exp/internal/source"
)

// Sources bundles the adapter outputs feeding one aggregation pass. Any map
// may be empty; an empty source contributes zero evidence, never an error.
type Sources struct {
	Curated      source.CuratedSet
	Phenotypes   source.PhenotypeMap
	RareDiseases source.RareDiseaseMap
	DiseaseEntry source.DiseaseEntryMap
}

// Join produces exactly one record per universe member, ordered by symbol.
// All lookups go through gene.Normalize so evidence attaches regardless of
// upstream casing. Curated genes missing from the universe are appended with
// a minimal record: curated membership is authoritative and a curated gene
// must always be present in the output.
func Join(universe []gene.Info, src Sources, logger *slog.Logger) []gene.Record {
	records := make([]gene.Record, 0, len(universe))
	seen := make(map[gene.Symbol]struct{}, len(universe))

	for _, info := range universe {
		sym := gene.Normalize(info.Symbol)
		if sym == "" {
			continue
		}
		if _, dup := seen[sym]; dup {
			continue
		}
		seen[sym] = struct{}{}
		records = append(records, build(sym, info, src))
	}

	missing := 0
	for sym := range src.Curated {
		if _, ok := seen[sym]; ok {
			continue
		}
		seen[sym] = struct{}{}
		records = append(records, build(sym, gene.Info{Symbol: string(sym), Source: "curated"}, src))
		missing++
	}
	if missing > 0 && logger != nil {
		logger.Warn("curated genes absent from expanded universe, included anyway", "count", missing)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Symbol < records[j].Symbol })
	return records
}

func build(sym gene.Symbol, info gene.Info, src Sources) gene.Record {
	return gene.Record{
		Symbol:    sym,
		Name:      info.Name,
		Source:    info.Source,
		GeneGroup: info.GeneGroup,
		Location:  info.Location,
		Xrefs:     info.Xrefs(),
		Evidence: gene.Evidence{
			Phenotypes:   src.Phenotypes.Evidence(sym),
			RareDiseases: src.RareDiseases.Evidence(sym),
			DiseaseEntry: src.DiseaseEntry.Evidence(sym),
			Curated:      src.Curated.Evidence(sym),
		},
		IsCurated: src.Curated.Contains(sym),
	}
}
