package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/gw/internal/errs"
)

// resolveTempDir creates a temp directory and resolves macOS symlinks.
func resolveTempDir(t *testing.T) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return resolved
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

// setupTestRoot creates <root>/main as a repository with one commit, cloned
// from a bare origin so branches can track upstreams.
func setupTestRoot(t *testing.T) (root string, origin string) {
	t.Helper()
	requireGit(t)
	ctx := context.Background()

	tmp := resolveTempDir(t)
	origin = filepath.Join(tmp, "origin.git")
	root = filepath.Join(tmp, "project")
	main := filepath.Join(root, "main")

	require.NoError(t, runGit(ctx, "", "init", "--bare", "-b", "main", origin))
	require.NoError(t, runGit(ctx, "", "clone", "--quiet", origin, main))
	for _, args := range [][]string{
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test User"},
		{"config", "commit.gpgsign", "false"},
		{"symbolic-ref", "HEAD", "refs/heads/main"},
	} {
		require.NoError(t, runGit(ctx, main, args...))
	}
	require.NoError(t, os.WriteFile(filepath.Join(main, "README.md"), []byte("# test\n"), 0o644))
	require.NoError(t, runGit(ctx, main, "add", "README.md"))
	require.NoError(t, runGit(ctx, main, "commit", "-q", "-m", "Initial commit"))
	require.NoError(t, runGit(ctx, main, "push", "-q", "-u", "origin", "main"))
	return root, origin
}

func TestOpen(t *testing.T) {
	t.Parallel()
	root, _ := setupTestRoot(t)
	ctx := context.Background()

	repo, err := Open(ctx, filepath.Join(root, "main"), "")
	require.NoError(t, err)
	assert.Equal(t, root, repo.Root)
	assert.Equal(t, filepath.Join(root, "main"), repo.MainPath())
}

func TestOpen_NotInRepository(t *testing.T) {
	t.Parallel()
	requireGit(t)

	_, err := Open(context.Background(), resolveTempDir(t), "main")
	assert.ErrorIs(t, err, errs.ErrNotInRepository)
}

func TestOpen_NoMainWorktree(t *testing.T) {
	t.Parallel()
	root, _ := setupTestRoot(t)

	_, err := Open(context.Background(), filepath.Join(root, "main"), "trunk")
	assert.ErrorIs(t, err, errs.ErrNotInRepository)
}

func TestAddListRemoveWorktree(t *testing.T) {
	t.Parallel()
	root, _ := setupTestRoot(t)
	ctx := context.Background()

	repo, err := Open(ctx, filepath.Join(root, "main"), "main")
	require.NoError(t, err)

	featPath := repo.PathFor("feature__x")
	require.NoError(t, repo.AddWorktree(ctx, AddOptions{Path: featPath, Branch: "feature/x", NewBranch: true}))

	worktrees, err := repo.ListWorktrees(ctx)
	require.NoError(t, err)
	require.Len(t, worktrees, 2)
	assert.Equal(t, "main", worktrees[0].Branch)
	assert.True(t, worktrees[0].IsCurrent)
	assert.Equal(t, "feature/x", worktrees[1].Branch)
	assert.Equal(t, "feature__x", worktrees[1].Dir)

	branches, err := repo.ListBranches(ctx)
	require.NoError(t, err)
	assert.Contains(t, branches, Branch{Name: "feature/x", Origin: Local})
	assert.Contains(t, branches, Branch{Name: "main", Origin: Local})

	require.NoError(t, repo.RemoveWorktree(ctx, featPath))
	assert.NoDirExists(t, featPath)
}

func TestRemoveWorktree_RefusesUntracked(t *testing.T) {
	t.Parallel()
	root, _ := setupTestRoot(t)
	ctx := context.Background()

	repo, err := Open(ctx, filepath.Join(root, "main"), "main")
	require.NoError(t, err)

	path := repo.PathFor("dirty")
	require.NoError(t, repo.AddWorktree(ctx, AddOptions{Path: path, Branch: "dirty", NewBranch: true}))
	require.NoError(t, os.WriteFile(filepath.Join(path, "scratch.txt"), []byte("x"), 0o644))

	err = repo.RemoveWorktree(ctx, path)
	var vcsErr *errs.VCSError
	require.ErrorAs(t, err, &vcsErr)
	assert.Equal(t, "worktree remove", vcsErr.Op)
	assert.NotEmpty(t, vcsErr.Reason)
	assert.DirExists(t, path)
}

func TestUpstreamStatus(t *testing.T) {
	t.Parallel()
	root, _ := setupTestRoot(t)
	ctx := context.Background()

	repo, err := Open(ctx, filepath.Join(root, "main"), "main")
	require.NoError(t, err)

	ab, err := repo.UpstreamStatus(ctx, repo.MainPath())
	require.NoError(t, err)
	require.NotNil(t, ab)
	assert.Equal(t, "origin/main", ab.Upstream)
	assert.True(t, ab.InSync())

	require.NoError(t, runGit(ctx, repo.MainPath(), "commit", "-q", "--allow-empty", "-m", "local"))
	ab, err = repo.UpstreamStatus(ctx, repo.MainPath())
	require.NoError(t, err)
	assert.Equal(t, 1, ab.Ahead)
	assert.Equal(t, 0, ab.Behind)

	noUpstream := repo.PathFor("solo")
	require.NoError(t, repo.AddWorktree(ctx, AddOptions{Path: noUpstream, Branch: "solo", NewBranch: true}))
	ab, err = repo.UpstreamStatus(ctx, noUpstream)
	require.NoError(t, err)
	assert.Nil(t, ab)
}

func TestAddWorktree_TracksRemote(t *testing.T) {
	t.Parallel()
	root, origin := setupTestRoot(t)
	ctx := context.Background()
	main := filepath.Join(root, "main")

	// Publish a branch from a throwaway clone so it only exists remotely.
	other := filepath.Join(filepath.Dir(root), "other")
	require.NoError(t, runGit(ctx, "", "clone", "--quiet", origin, other))
	require.NoError(t, runGit(ctx, other, "push", "-q", "origin", "main:refs/heads/feature/remote"))
	require.NoError(t, runGit(ctx, main, "fetch", "-q", "origin"))

	repo, err := Open(ctx, main, "main")
	require.NoError(t, err)

	branches, err := repo.ListBranches(ctx)
	require.NoError(t, err)
	assert.Contains(t, branches, Branch{Name: "feature/remote", Origin: Remote, Remote: "origin"})

	path := repo.PathFor("feature__remote")
	require.NoError(t, repo.AddWorktree(ctx, AddOptions{Path: path, Branch: "feature/remote", Remote: "origin"}))

	ab, err := repo.UpstreamStatus(ctx, path)
	require.NoError(t, err)
	require.NotNil(t, ab)
	assert.Equal(t, "origin/feature/remote", ab.Upstream)
}

func TestFetch(t *testing.T) {
	t.Parallel()
	root, _ := setupTestRoot(t)
	ctx := context.Background()

	repo, err := Open(ctx, filepath.Join(root, "main"), "main")
	require.NoError(t, err)
	require.NoError(t, repo.Fetch(ctx, ""))
	require.NoError(t, repo.Fetch(ctx, "origin"))

	err = repo.Fetch(ctx, "nonexistent")
	var vcsErr *errs.VCSError
	assert.ErrorAs(t, err, &vcsErr)
}
