package protocol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload_Lines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload Payload
		want    []string
	}{
		{
			name:    "switch only",
			payload: Payload{SwitchTo: "/r/feature__x"},
			want:    []string{"/r/feature__x"},
		},
		{
			name:    "delete current",
			payload: Payload{SwitchTo: "/r/main", DeleteAfterCD: "/r/feature__x"},
			want:    []string{"/r/main", "DELETE_AFTER_CD:/r/feature__x"},
		},
		{
			name:    "clean without switch",
			payload: Payload{Clean: []string{"/r/a", "/r/b"}},
			want:    []string{"CLEAN_WORKTREES:/r/a|/r/b"},
		},
		{
			name:    "clean with switch",
			payload: Payload{SwitchTo: "/r/main", Clean: []string{"/r/a"}},
			want:    []string{"/r/main", "CLEAN_WORKTREES:/r/a"},
		},
		{
			name:    "separator escaped",
			payload: Payload{Clean: []string{`/r/odd|name`, `/r/back\slash`}},
			want:    []string{`CLEAN_WORKTREES:/r/odd\|name|/r/back\\slash`},
		},
		{
			name:    "empty",
			payload: Payload{},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.payload.Lines()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			back, err := Parse(got)
			require.NoError(t, err)
			assert.Equal(t, tt.payload, back)
		})
	}
}

func TestPayload_LinesRejectsBadPaths(t *testing.T) {
	t.Parallel()

	for _, p := range []Payload{
		{SwitchTo: "relative/path"},
		{Clean: []string{"/r/a\n/r/b"}},
		{DeleteAfterCD: "/r/a", Clean: []string{"/r/b"}},
	} {
		_, err := p.Lines()
		assert.Error(t, err)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	p, err := Parse([]string{"", "/r/main", "CLEAN_WORKTREES:/r/a||/r/b\r"})
	require.NoError(t, err)
	assert.Equal(t, "/r/main", p.SwitchTo)
	assert.Equal(t, []string{"/r/a", "/r/b"}, p.Clean)
	assert.Equal(t, []string{"/r/a", "/r/b"}, p.Removals())

	_, err = Parse([]string{"Created worktree"})
	assert.Error(t, err)

	_, err = Parse([]string{`CLEAN_WORKTREES:/r/a\`})
	assert.Error(t, err)

	empty, err := Parse([]string{"CLEAN_WORKTREES:"})
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
}

func TestShellInit(t *testing.T) {
	t.Parallel()

	for _, shell := range Shells {
		script, err := ShellInit(shell)
		require.NoError(t, err, shell)
		assert.Contains(t, script, "GW_WRAPPED=1 command gw", shell)
		assert.Contains(t, script, "remove-worktrees --payload", shell)
		assert.Contains(t, script, DeleteAfterCDPrefix, shell)
		assert.Contains(t, script, CleanWorktreesPrefix, shell)
		assert.True(t, strings.HasPrefix(script, "# gw shell wrapper"), shell)
	}

	_, err := ShellInit("powershell")
	assert.ErrorContains(t, err, "unsupported shell")
}
