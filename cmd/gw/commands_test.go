package main

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/gw/internal/output"
)

func TestFilterPrefix(t *testing.T) {
	t.Parallel()

	got := filterPrefix([]string{"feature/a", "", "main", "feature/a", "feature/b", "fix"}, "fea")
	assert.Equal(t, []string{"feature/a", "feature/b"}, got)
	assert.Empty(t, filterPrefix([]string{"main"}, "x"))
}

func TestInitCmd(t *testing.T) {
	t.Parallel()

	for _, shell := range []string{"bash", "zsh", "fish"} {
		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetArgs([]string{"init", shell})
		require.NoError(t, cmd.ExecuteContext(output.WithPrinter(context.Background(), &out)), shell)
		assert.Contains(t, out.String(), "remove-worktrees --payload", shell)
	}

	cmd := newRootCmd()
	cmd.SetArgs([]string{"init", "tcsh"})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.ExecuteContext(context.Background()))
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.ExecuteContext(output.WithPrinter(context.Background(), &out)))
	assert.Contains(t, out.String(), "gw dev")
}

func TestRootCmd_BaseRequiresNewBranch(t *testing.T) {
	t.Parallel()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--base", "v1", "feature"})
	err := cmd.ExecuteContext(context.Background())
	assert.ErrorContains(t, err, "--base requires -b")
}
