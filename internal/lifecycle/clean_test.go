package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/gw/internal/config"
	"github.com/raphi011/gw/internal/errs"
	"github.com/raphi011/gw/internal/git"
	"github.com/raphi011/gw/internal/protocol"
)

func TestClean_Selection(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo(t)
	a := repo.addWorktree(t, "a", false)
	b := repo.addWorktree(t, "b", false)
	c := repo.addWorktree(t, "c", false)
	repo.upstream[a.Path] = &git.AheadBehind{Upstream: "origin/a"}
	repo.upstream[b.Path] = &git.AheadBehind{Upstream: "origin/b", Ahead: 1}
	repo.upstream[repo.MainPath()] = &git.AheadBehind{Upstream: "origin/main"}

	m := newTestManager(repo, config.Config{}, &recordingExec{})
	res, err := m.Clean(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.fetched)
	assert.Equal(t, []string{a.Path}, res.Paths())
	require.Len(t, res.Kept, 1)
	assert.Equal(t, b.Path, res.Kept[0].Worktree.Path)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, c.Path, res.Skipped[0].Worktree.Path)
	assert.Empty(t, res.Failed)
	assert.Empty(t, repo.removed, "removal is left to the wrapper")
}

func TestClean_SkipsDetachedAndStatusErrors(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo(t)
	repo.worktrees = append(repo.worktrees, git.Worktree{Path: repo.PathFor("detached"), Dir: "detached"})
	broken := repo.addWorktree(t, "broken", false)
	repo.statusErr[broken.Path] = errors.New("bad object")

	m := newTestManager(repo, config.Config{}, &recordingExec{})
	res, err := m.Clean(context.Background())
	require.NoError(t, err)
	assert.True(t, res.NothingToClean())
	assert.Len(t, res.Skipped, 2)
	assert.True(t, res.Payload().IsEmpty())
}

func TestClean_FetchFailureIsFatal(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo(t)
	a := repo.addWorktree(t, "a", false)
	repo.upstream[a.Path] = &git.AheadBehind{}
	repo.fetchErr = errs.NewVCS("fetch", errors.New("could not resolve host"))
	ex := &recordingExec{}

	m := newTestManager(repo, config.Config{DeleteScripts: []string{"x"}}, ex)
	_, err := m.Clean(context.Background())
	require.Error(t, err)
	assert.Equal(t, errs.KindVcsMutationFailure, errs.KindOf(err))
	assert.Empty(t, ex.calls)
}

func TestClean_HookFailureIsPerWorktree(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo(t)
	a := repo.addWorktree(t, "a", true)
	b := repo.addWorktree(t, "b", false)
	repo.upstream[a.Path] = &git.AheadBehind{}
	repo.upstream[b.Path] = &git.AheadBehind{}

	ex := &failInDir{dir: a.Path}
	m := newTestManager(repo, config.Config{DeleteScripts: []string{"check"}}, ex)

	res, err := m.Clean(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{b.Path}, res.Paths())
	require.Len(t, res.Failed, 1)
	assert.Equal(t, a.Path, res.Failed[0].Worktree.Path)

	var hookErr *errs.HookError
	require.ErrorAs(t, res.Failed[0].Err, &hookErr)
	assert.Equal(t, errs.PhaseDelete, hookErr.Phase)

	// The current worktree failed, so the wrapper must not switch away.
	assert.Equal(t, protocol.Payload{Clean: []string{b.Path}}, res.Payload())
}

func TestClean_CurrentSelectedSwitchesToMain(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo(t)
	a := repo.addWorktree(t, "a", true)
	repo.upstream[a.Path] = &git.AheadBehind{}

	m := newTestManager(repo, config.Config{}, &recordingExec{})
	res, err := m.Clean(context.Background())
	require.NoError(t, err)
	assert.Equal(t, protocol.Payload{SwitchTo: repo.MainPath(), Clean: []string{a.Path}}, res.Payload())
}

// With every worktree in sync and no delete scripts, every non-main worktree
// is listed for removal.
func TestClean_AllInSync(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo(t)
	var want []string
	for _, b := range []string{"feature/a", "feature/b", "fix/c"} {
		wt := repo.addWorktree(t, b, false)
		repo.upstream[wt.Path] = &git.AheadBehind{Upstream: "origin/" + b}
		want = append(want, wt.Path)
	}

	m := newTestManager(repo, config.Config{}, &recordingExec{})
	res, err := m.Clean(context.Background())
	require.NoError(t, err)

	assert.Empty(t, res.Failed)
	lines, err := res.Payload().Lines()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, protocol.CleanWorktreesPrefix+want[0]+"|"+want[1]+"|"+want[2], lines[0])
}

func TestClean_UsesProgress(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo(t)
	m := newTestManager(repo, config.Config{}, &recordingExec{})

	var titles []string
	m.Progress = func(_ context.Context, title string, fn func() error) error {
		titles = append(titles, title)
		return fn()
	}

	_, err := m.Clean(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Fetching remotes"}, titles)
	assert.Equal(t, 1, repo.fetched)
}

// failInDir fails every command run in dir.
type failInDir struct {
	dir string
}

func (f *failInDir) Run(_ context.Context, dir, _ string, _ []string) error {
	if dir == f.dir {
		return errors.New("exit status 1")
	}
	return nil
}

func TestList(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo(t)
	a := repo.addWorktree(t, "feature/a", true)
	repo.upstream[a.Path] = &git.AheadBehind{Upstream: "origin/feature/a", Behind: 2}
	repo.worktrees = append(repo.worktrees, git.Worktree{Path: repo.PathFor("detached"), Dir: "detached"})

	m := newTestManager(repo, config.Config{}, &recordingExec{})
	entries, err := m.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.True(t, entries[0].Main)
	assert.Nil(t, entries[0].Upstream)
	assert.True(t, entries[1].IsCurrent)
	require.NotNil(t, entries[1].Upstream)
	assert.Equal(t, 2, entries[1].Upstream.Behind)
	assert.True(t, entries[2].Detached())
}
