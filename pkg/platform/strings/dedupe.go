// Package strings provides string slice utilities shared by the source
// adapters.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved, so a bounded
// display prefix of the result still shows the upstream's leading entries.
//
// Example:
//
//	DedupeAndTrim([]string{"  Stickler syndrome ", "Achondrogenesis", "Stickler syndrome", ""})
//	// Returns: []string{"Stickler syndrome", "Achondrogenesis"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}
