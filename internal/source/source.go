// Package source holds the adapters that normalize raw upstream files into
// per-source evidence maps keyed by gene symbol. Every adapter follows the
// same contract: a missing backing file yields an empty result, and a file
// that exists but fails to parse is treated the same way (logged, fail soft).
// Ambiguity in upstream shapes stops here; nothing duck-typed reaches the
// aggregator.
package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/mtthdn/lacuene-exp/pkg/platform/sentinel"
)

// LoadJSON decodes path into v. Returns sentinel.ErrNotFound when the file is
// absent and sentinel.ErrMalformed when it cannot be parsed; callers decide
// whether either is fatal (for adapters, neither is).
func LoadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, sentinel.ErrNotFound)
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w: %v", path, sentinel.ErrMalformed, err)
	}
	return nil
}

// LogSoftFailure records a fail-soft load outcome at the level it deserves:
// missing files are expected (debug), malformed files are not (warn).
func LogSoftFailure(logger *slog.Logger, label string, err error) {
	if logger == nil {
		return
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		logger.Debug("source file absent, serving without", "source", label, "error", err)
	default:
		logger.Warn("source file unreadable, serving without", "source", label, "error", err)
	}
}
