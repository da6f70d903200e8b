package source

import (
	"encoding/json"
	"log/slog"

	"github.com/mtthdn/lacuene-exp/internal/gene"
	platformstrings "github.com/mtthdn/lacuene-exp/pkg/platform/strings"
)

// disorderDisplayLimit bounds the disorder names carried for display; the
// count always reflects the full association set.
const disorderDisplayLimit = 5

// RareDiseaseMap is the normalized Orphanet signal: symbol to the full
// disorder-name list.
type RareDiseaseMap map[gene.Symbol][]string

// LoadRareDiseases reads the Orphanet cache. The cache grew organically and
// holds two value shapes per gene: a bare list of disorders, or an object
// with a nested "disorders" list; list elements are either strings or
// objects with a "name" field. Both collapse to one flat name list here so
// downstream code never branches on shape.
func LoadRareDiseases(path string, logger *slog.Logger) RareDiseaseMap {
	raw := map[string]json.RawMessage{}
	if err := LoadJSON(path, &raw); err != nil {
		LogSoftFailure(logger, "orphanet", err)
		return RareDiseaseMap{}
	}

	out := make(RareDiseaseMap, len(raw))
	for sym, entry := range raw {
		names := disorderNames(entry)
		if names != nil {
			out[gene.Normalize(sym)] = names
		}
	}
	return out
}

func disorderNames(entry json.RawMessage) []string {
	var list []json.RawMessage
	if err := json.Unmarshal(entry, &list); err != nil {
		var wrapped struct {
			Disorders []json.RawMessage `json:"disorders"`
		}
		if err := json.Unmarshal(entry, &wrapped); err != nil {
			return nil
		}
		list = wrapped.Disorders
	}

	names := make([]string, 0, len(list))
	for _, item := range list {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			names = append(names, s)
			continue
		}
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(item, &obj); err == nil && obj.Name != "" {
			names = append(names, obj.Name)
		}
	}
	// The cache repeats disorders across classification branches; the
	// association count must not.
	return platformstrings.DedupeAndTrim(names)
}

// Evidence reduces a gene's disorder list to the tagged shape the aggregator
// consumes.
func (m RareDiseaseMap) Evidence(sym gene.Symbol) gene.RareDiseaseEvidence {
	names := m[sym]
	display := names
	if len(display) > disorderDisplayLimit {
		display = display[:disorderDisplayLimit]
	}
	return gene.RareDiseaseEvidence{Count: len(names), Disorders: display}
}
