package sqlite

import "testing"

func TestParseDSN(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "memory database",
			input:    "sqlite://:memory:",
			expected: ":memory:",
		},
		{
			name:     "relative path",
			input:    "sqlite://lore.db",
			expected: "./lore.db",
		},
		{
			name:     "already relative",
			input:    "sqlite://./data/lore.db",
			expected: "./data/lore.db",
		},
		{
			name:     "absolute path",
			input:    "sqlite:///var/lib/grimoire/lore.db",
			expected: "/var/lib/grimoire/lore.db",
		},
		{
			name:     "query string preserved",
			input:    "sqlite://lore.db?mode=ro",
			expected: "./lore.db?mode=ro",
		},
		{
			name:     "escaped path",
			input:    "sqlite://my%20books.db",
			expected: "./my books.db",
		},
		{
			name:    "wrong scheme",
			input:   "postgres://localhost/lore",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDSN(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDSN(%q): %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("parseDSN(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
