package enrich

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mtthdn/lacuene-exp/pkg/platform/atomicfile"
	"github.com/mtthdn/lacuene-exp/pkg/platform/sentinel"
)

// ArtifactName is the enrichment artifact's filename inside the derived
// directory.
const ArtifactName = "candidate_enrichment.json"

// Write persists the enrichment result atomically.
func Write(path string, result *Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode enrichment result: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create derived dir: %w", err)
	}
	return atomicfile.WriteFile(path, data, 0o644)
}

// Load reads a previously written enrichment result. Returns
// sentinel.ErrNotFound for an absent file and sentinel.ErrMalformed for one
// that fails to parse.
func Load(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, sentinel.ErrMalformed, err)
	}
	return &result, nil
}
