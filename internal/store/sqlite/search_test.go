package sqlite

import "testing"

func TestToFTSQuery(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple term",
			input:    "dragon",
			expected: `"dragon"`,
		},
		{
			name:     "multiple terms joined with AND",
			input:    "red dragon",
			expected: `"red" AND "dragon"`,
		},
		{
			name:     "phrase preserved",
			input:    `"red dragon"`,
			expected: `"red dragon"`,
		},
		{
			name:     "phrase with trailing term",
			input:    `"red dragon" castle`,
			expected: `"red dragon" AND "castle"`,
		},
		{
			name:     "unterminated phrase closed",
			input:    `"red dragon`,
			expected: `"red dragon"`,
		},
		{
			name:     "embedded quote stripped from bare term",
			input:    `dra"gon`,
			expected: `"dragon"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toFTSQuery(tt.input)
			if got != tt.expected {
				t.Errorf("toFTSQuery(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
