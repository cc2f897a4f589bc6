package audit

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/gw/internal/config"
)

func readEntries(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		entries = append(entries, e)
	}
	require.NoError(t, sc.Err())
	return entries
}

func TestNew_DisabledIsNop(t *testing.T) {
	t.Parallel()

	r, err := New(config.AuditSettings{})
	require.NoError(t, err)
	r.Created("feature/x", "/r/feature__x", true)
	assert.NoError(t, r.Close())
}

func TestRecorder_WritesJSONLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "audit.log")
	r, err := New(config.AuditSettings{File: path, MaxSizeMB: 1, MaxBackups: 1})
	require.NoError(t, err)

	r.Created("feature/x", "/r/feature__x", true)
	r.Hook("create", "/r/feature__x", "echo ok", 0)
	r.Hook("delete", "/r/feature__x", "false", 1)
	r.Deferred("/r/feature__x")
	r.Removed("/r/other", errors.New("contains untracked files"))
	require.NoError(t, r.Close())

	entries := readEntries(t, path)
	require.Len(t, entries, 5)

	assert.Equal(t, "worktree created", entries[0]["msg"])
	assert.Equal(t, "feature/x", entries[0]["branch"])
	assert.Equal(t, true, entries[0]["new_branch"])

	assert.Equal(t, "hook ran", entries[1]["msg"])
	assert.Equal(t, "hook failed", entries[2]["msg"])
	assert.Equal(t, "warn", entries[2]["level"])
	assert.InDelta(t, 1, entries[2]["exit_status"], 0)

	assert.Equal(t, "worktree removal deferred", entries[3]["msg"])
	assert.Equal(t, "contains untracked files", entries[4]["error"])
	assert.Contains(t, entries[4], "ts")
}
