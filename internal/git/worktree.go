package git

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/raphi011/gw/internal/errs"
)

// Worktree is one checked-out working directory of the repository.
type Worktree struct {
	Path      string `json:"path"`
	Dir       string `json:"dir"`
	Branch    string `json:"branch,omitempty"` // empty when detached
	Head      string `json:"head,omitempty"`
	IsCurrent bool   `json:"current"`
	Locked    bool   `json:"locked,omitempty"`
	bare      bool
}

// Detached reports whether the worktree has no branch checked out.
func (w Worktree) Detached() bool {
	return w.Branch == ""
}

// ListWorktrees returns all non-bare worktrees in the order git lists them.
// IsCurrent is set on the worktree containing the process working directory.
func (r *Repo) ListWorktrees(ctx context.Context) ([]Worktree, error) {
	out, err := outputGit(ctx, r.MainPath(), "worktree", "list", "--porcelain")
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errs.Wrap(errs.KindNotInRepository, err, "failed to list worktrees")
	}

	all := parseWorktreeList(out)
	worktrees := make([]Worktree, 0, len(all))
	for _, wt := range all {
		if wt.bare {
			continue
		}
		worktrees = append(worktrees, wt)
	}
	markCurrent(worktrees, r.cwd)
	return worktrees, nil
}

// parseWorktreeList parses `git worktree list --porcelain` output.
func parseWorktreeList(out []byte) []Worktree {
	var worktrees []Worktree
	var cur *Worktree

	flush := func() {
		if cur != nil && cur.Path != "" {
			worktrees = append(worktrees, *cur)
		}
		cur = nil
	}

	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(line, "worktree "):
			flush()
			path := strings.TrimPrefix(line, "worktree ")
			cur = &Worktree{Path: path, Dir: filepath.Base(path)}
		case cur == nil:
			continue
		case strings.HasPrefix(line, "HEAD "):
			cur.Head = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch refs/heads/"):
			cur.Branch = strings.TrimPrefix(line, "branch refs/heads/")
		case line == "detached":
			cur.Branch = ""
		case line == "bare":
			cur.bare = true
		case line == "locked" || strings.HasPrefix(line, "locked "):
			cur.Locked = true
		case line == "":
			flush()
		}
	}
	flush()
	return worktrees
}

// markCurrent flags the worktree containing cwd. The deepest match wins.
func markCurrent(worktrees []Worktree, cwd string) {
	if cwd == "" {
		return
	}
	best, bestLen := -1, -1
	for i := range worktrees {
		p := resolvePath(worktrees[i].Path)
		if contains(p, cwd) && len(p) > bestLen {
			best, bestLen = i, len(p)
		}
	}
	if best >= 0 {
		worktrees[best].IsCurrent = true
	}
}

// AddOptions describes a worktree to create.
type AddOptions struct {
	Path   string
	Branch string
	// NewBranch creates Branch starting at Base (HEAD of main when empty).
	NewBranch bool
	Base      string
	// Remote, when set, creates a local Branch tracking Remote/Branch.
	Remote string
}

// AddWorktree creates a worktree at opts.Path.
func (r *Repo) AddWorktree(ctx context.Context, opts AddOptions) error {
	args := []string{"worktree", "add"}
	switch {
	case opts.NewBranch:
		args = append(args, "-b", opts.Branch, opts.Path)
		if opts.Base != "" {
			args = append(args, opts.Base)
		}
	case opts.Remote != "":
		args = append(args, "--track", "-b", opts.Branch, opts.Path, opts.Remote+"/"+opts.Branch)
	default:
		args = append(args, opts.Path, opts.Branch)
	}

	if err := runGit(ctx, r.MainPath(), args...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errs.NewVCS("worktree add", err)
	}
	return nil
}

// RemoveWorktree removes the worktree at path. It is never forced: git
// refuses when the worktree has modifications or untracked files.
func (r *Repo) RemoveWorktree(ctx context.Context, path string) error {
	if err := runGit(ctx, r.MainPath(), "worktree", "remove", path); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errs.NewVCS("worktree remove", err)
	}
	return nil
}
