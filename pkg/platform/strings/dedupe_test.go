package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "single element",
			input:    []string{"Stickler syndrome"},
			expected: []string{"Stickler syndrome"},
		},
		{
			name:     "trims whitespace",
			input:    []string{"  Stickler syndrome  ", "Achondrogenesis  ", "  Kniest dysplasia"},
			expected: []string{"Stickler syndrome", "Achondrogenesis", "Kniest dysplasia"},
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"Stickler syndrome", "Achondrogenesis", "Stickler syndrome", "Kniest dysplasia", "Achondrogenesis"},
			expected: []string{"Stickler syndrome", "Achondrogenesis", "Kniest dysplasia"},
		},
		{
			name:     "removes empty strings",
			input:    []string{"Stickler syndrome", "", "  ", "Achondrogenesis"},
			expected: []string{"Stickler syndrome", "Achondrogenesis"},
		},
		{
			name:     "preserves case",
			input:    []string{"Syndrome", "syndrome", "SYNDROME"},
			expected: []string{"Syndrome", "syndrome", "SYNDROME"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DedupeAndTrim(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}
