package styles

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestFormatUpstream(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		upstream string
		ahead    int
		behind   int
		want     string
	}{
		{"no upstream", "", 0, 0, "-"},
		{"in sync", "origin/main", 0, 0, SyncedSymbol},
		{"ahead", "origin/main", 2, 0, "↑2"},
		{"behind", "origin/main", 0, 3, "↓3"},
		{"diverged", "origin/main", 1, 4, "↑1 ↓4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ansi.Strip(FormatUpstream(tt.upstream, tt.ahead, tt.behind))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	got := FormatPath("/src/project/feature__x")
	assert.Contains(t, got, "file:///src/project/feature__x")
	assert.Equal(t, "/src/project/feature__x", ansi.Strip(got))
}
