// Package provenance defines the metadata block stamped into every derived
// artifact and the discovery walk the audit endpoint uses to find them.
package provenance

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// Purity tags how trustworthy an artifact's content is relative to its
// upstream sources.
const (
	// PurityDerived marks artifacts produced by heuristic computation over
	// canonical sources. Everything this repository writes is derived; the
	// curated set is the only canonical ground truth and is never produced
	// here.
	PurityDerived = "derived"
)

// Block tags a derived artifact with its generator, timestamp, and which of
// its inputs are authoritative versus heuristic.
type Block struct {
	Worker           string   `json:"worker"`
	RunID            string   `json:"run_id,omitempty"`
	Generated        string   `json:"generated"`
	CanonPurity      string   `json:"canon_purity"`
	CanonSources     []string `json:"canon_sources"`
	NonCanonElements []string `json:"non_canon_elements"`
	Description      string   `json:"description,omitempty"`
}

// New builds a derived-purity block for the named worker.
func New(worker, runID string, generated time.Time, canonSources, nonCanon []string, description string) Block {
	return Block{
		Worker:           worker,
		RunID:            runID,
		Generated:        generated.UTC().Format(time.RFC3339),
		CanonPurity:      PurityDerived,
		CanonSources:     canonSources,
		NonCanonElements: nonCanon,
		Description:      description,
	}
}

// Discovered is one provenance block found on disk, tagged with the artifact
// that carried it.
type Discovered struct {
	Artifact string `json:"artifact"`
	Block    Block  `json:"provenance"`
}

// Discover walks the derived directory for JSON artifacts carrying a
// "_provenance" block. Unreadable or untagged files are skipped: the audit
// reports what exists, it never fails because something is missing.
func Discover(derivedDir string) []Discovered {
	matches, err := doublestar.FilepathGlob(filepath.Join(derivedDir, "**", "*.json"))
	if err != nil {
		return nil
	}
	sort.Strings(matches)

	var found []Discovered
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var envelope struct {
			Provenance *Block `json:"_provenance"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil || envelope.Provenance == nil {
			continue
		}
		rel, err := filepath.Rel(derivedDir, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		found = append(found, Discovered{Artifact: rel, Block: *envelope.Provenance})
	}
	return found
}
