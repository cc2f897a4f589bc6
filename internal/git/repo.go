package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphi011/gw/internal/errs"
)

// DefaultMainName is the directory name of the main worktree.
const DefaultMainName = "main"

// Repo is a repository whose worktrees are siblings under Root.
type Repo struct {
	// Root is the parent directory of all worktrees.
	Root string
	// MainName is the directory name of the main worktree under Root.
	MainName string
	// cwd is the symlink-resolved working directory of the process.
	cwd string
}

// Open locates the repository containing dir. It fails with
// errs.ErrNotInRepository when dir is not inside a git repository or
// when no worktree named mainName exists.
func Open(ctx context.Context, dir, mainName string) (*Repo, error) {
	if mainName == "" {
		mainName = DefaultMainName
	}

	out, err := outputGit(ctx, dir, "worktree", "list", "--porcelain")
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errs.Wrap(errs.KindNotInRepository, err, "%s is not inside a git repository", dir)
	}

	for _, wt := range parseWorktreeList(out) {
		if filepath.Base(wt.Path) == mainName {
			return &Repo{
				Root:     filepath.Dir(wt.Path),
				MainName: mainName,
				cwd:      resolvePath(dir),
			}, nil
		}
	}
	return nil, errs.New(errs.KindNotInRepository,
		"no %q worktree found; gw expects the main worktree at <root>/%s", mainName, mainName)
}

// MainPath returns the absolute path of the main worktree.
func (r *Repo) MainPath() string {
	return filepath.Join(r.Root, r.MainName)
}

// PathFor returns the absolute path of the worktree directory dir.
func (r *Repo) PathFor(dir string) string {
	return filepath.Join(r.Root, dir)
}

// Fetch refreshes remote-tracking refs. remote empty fetches all remotes.
func (r *Repo) Fetch(ctx context.Context, remote string) error {
	args := []string{"fetch", "--prune", "--quiet"}
	if remote == "" {
		args = append(args, "--all")
	} else {
		args = append(args, remote)
	}
	if err := runGit(ctx, r.MainPath(), args...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errs.NewVCS("fetch", err)
	}
	return nil
}

// resolvePath returns the absolute, symlink-resolved form of p.
// Unresolvable paths are returned cleaned.
func resolvePath(p string) string {
	if p == "" {
		if wd, err := os.Getwd(); err == nil {
			p = wd
		}
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		return resolved
	}
	return filepath.Clean(p)
}

// contains reports whether child is parent or lies below it.
func contains(parent, child string) bool {
	if parent == child {
		return true
	}
	return strings.HasPrefix(child, parent+string(filepath.Separator))
}
