//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/gw/internal/config"
	"github.com/raphi011/gw/internal/output"
)

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// runGitCmd runs git in dir and fails the test on error.
func runGitCmd(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}

// setupTestRoot creates <tmp>/project/main cloned from a bare origin with
// one pushed commit. Returns the project root.
func setupTestRoot(t *testing.T) string {
	t.Helper()

	tmp := resolvePath(t, t.TempDir())
	origin := filepath.Join(tmp, "origin.git")
	root := filepath.Join(tmp, "project")
	mainPath := filepath.Join(root, "main")

	runGitCmd(t, tmp, "init", "--bare", "-q", origin)
	runGitCmd(t, tmp, "clone", "-q", origin, mainPath)
	runGitCmd(t, mainPath, "config", "user.email", "test@test.com")
	runGitCmd(t, mainPath, "config", "user.name", "Test User")
	runGitCmd(t, mainPath, "config", "commit.gpgsign", "false")
	runGitCmd(t, mainPath, "symbolic-ref", "HEAD", "refs/heads/main")

	if err := os.WriteFile(filepath.Join(mainPath, "README.md"), []byte("# project\n"), 0o644); err != nil {
		t.Fatalf("failed to write README: %v", err)
	}
	runGitCmd(t, mainPath, "add", "README.md")
	runGitCmd(t, mainPath, "commit", "-q", "-m", "Initial commit")
	runGitCmd(t, mainPath, "push", "-q", "-u", "origin", "main")
	return root
}

// writeRepoConfig writes .gwconfig into the main worktree.
func writeRepoConfig(t *testing.T, root, content string) {
	t.Helper()
	path := filepath.Join(root, "main", config.RepoConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// runGW executes gw with args from workDir and returns its stdout.
func runGW(t *testing.T, workDir string, args ...string) (string, error) {
	t.Helper()

	settings := config.Default()
	settings.Audit.File = filepath.Join(t.TempDir(), "audit.log")

	var out bytes.Buffer
	ctx := config.WithSettings(context.Background(), &settings)
	ctx = config.WithWorkDir(ctx, workDir)
	ctx = output.WithPrinter(ctx, &out)

	cmd := newRootCmd()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

// lines splits stdout into non-empty lines.
func lines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
