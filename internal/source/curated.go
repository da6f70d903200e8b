package source

import (
	"log/slog"
	"strings"

	"github.com/mtthdn/lacuene-exp/internal/gene"
)

// CuratedSet is the hand-verified reference population: symbol to the
// per-source flags recorded by the curated pipeline. Flags named "in_<src>"
// are booleans; other keys carry source-specific metadata and are passed
// through untouched.
type CuratedSet map[gene.Symbol]map[string]any

// LoadCurated reads the curated pipeline's sources.json. Absence yields an
// empty set, never an error: the curated tier is optional input to the batch
// stage even though it is the base tier when serving.
func LoadCurated(path string, logger *slog.Logger) CuratedSet {
	raw := map[string]map[string]any{}
	if err := LoadJSON(path, &raw); err != nil {
		LogSoftFailure(logger, "curated", err)
		return CuratedSet{}
	}

	set := make(CuratedSet, len(raw))
	for sym, flags := range raw {
		set[gene.Normalize(sym)] = flags
	}
	return set
}

// Contains reports curated membership for a normalized symbol.
func (c CuratedSet) Contains(sym gene.Symbol) bool {
	_, ok := c[sym]
	return ok
}

// FlagSet reports whether the boolean flag named "in_<src>" is set for sym.
func (c CuratedSet) FlagSet(sym gene.Symbol, src string) bool {
	flags, ok := c[sym]
	if !ok {
		return false
	}
	v, ok := flags["in_"+src].(bool)
	return ok && v
}

// SourceCount counts the set "in_*" flags for sym.
func (c CuratedSet) SourceCount(sym gene.Symbol) int {
	flags, ok := c[sym]
	if !ok {
		return 0
	}
	n := 0
	for key, v := range flags {
		if !strings.HasPrefix(key, "in_") {
			continue
		}
		if b, ok := v.(bool); ok && b {
			n++
		}
	}
	return n
}

// Evidence reduces curated coverage to the tagged shape the aggregator
// consumes.
func (c CuratedSet) Evidence(sym gene.Symbol) gene.CuratedEvidence {
	if !c.Contains(sym) {
		return gene.CuratedEvidence{}
	}
	return gene.CuratedEvidence{Present: true, SourceCount: c.SourceCount(sym)}
}
