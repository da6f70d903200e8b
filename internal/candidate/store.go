package candidate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mtthdn/lacuene-exp/pkg/platform/atomicfile"
	"github.com/mtthdn/lacuene-exp/pkg/platform/sentinel"
)

// ArtifactName is the candidate snapshot's filename inside the derived
// directory.
const ArtifactName = "gap_candidates.json"

// Write persists the snapshot atomically, so a concurrently running query
// layer either sees the previous artifact or the complete new one, never a
// partial write.
func Write(path string, snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode candidate snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create derived dir: %w", err)
	}
	return atomicfile.WriteFile(path, data, 0o644)
}

// Load reads a previously written snapshot. Returns sentinel.ErrNotFound for
// an absent file and sentinel.ErrMalformed for one that fails to parse;
// both are fail-soft states for the serving layer.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, sentinel.ErrMalformed, err)
	}
	return &snap, nil
}
