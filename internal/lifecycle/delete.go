package lifecycle

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/raphi011/gw/internal/errs"
	"github.com/raphi011/gw/internal/git"
	"github.com/raphi011/gw/internal/hooks"
	"github.com/raphi011/gw/internal/log"
	"github.com/raphi011/gw/internal/naming"
	"github.com/raphi011/gw/internal/protocol"
)

// DeleteResult is the outcome of Delete.
type DeleteResult struct {
	Path   string
	Branch string
	// Deferred is set when the target is the current worktree: the wrapper
	// changes into MainPath and removes Path afterwards.
	Deferred bool
	MainPath string
}

// Payload returns the wrapper instructions for r.
func (r *DeleteResult) Payload() protocol.Payload {
	if !r.Deferred {
		return protocol.Payload{}
	}
	return protocol.Payload{SwitchTo: r.MainPath, DeleteAfterCD: r.Path}
}

// Delete removes the worktree of branch, or the current worktree when branch
// is empty. Delete scripts run first and any failure leaves the worktree
// untouched. Only an exact directory match is accepted.
func (m *Manager) Delete(ctx context.Context, branch string) (*DeleteResult, error) {
	branch = strings.TrimSpace(branch)
	if m.isProtectedName(branch) || m.isProtectedName(naming.Encode(branch)) {
		return nil, errs.ErrMainWorktreeProtected
	}

	worktrees, err := m.Repo.ListWorktrees(ctx)
	if err != nil {
		return nil, err
	}

	var target git.Worktree
	if branch == "" {
		cur, ok := findCurrent(worktrees)
		if !ok {
			return nil, errs.New(errs.KindNotInWorktree, "not inside a worktree; name the branch to delete")
		}
		target = cur
		branch = naming.Decode(cur.Dir)
	} else {
		wt, ok := findByDir(worktrees, m.root(), naming.Encode(branch))
		if !ok {
			return nil, errs.New(errs.KindWorktreeNotFound, "no worktree at %s", m.Repo.PathFor(naming.Encode(branch)))
		}
		target = wt
	}

	if m.isProtected(target) {
		return nil, errs.ErrMainWorktreeProtected
	}

	cfg, err := m.loadConfig()
	if err != nil {
		return nil, err
	}

	hc := m.hookContext(branch, target.Path, errs.PhaseDelete)
	outcome := m.runHooks(ctx, cfg.DeleteScripts, hooks.AbortOnError, hc)
	if err := outcome.HookError(errs.PhaseDelete); err != nil {
		return nil, err
	}

	res := &DeleteResult{Path: target.Path, Branch: branch, MainPath: m.Repo.MainPath()}
	if target.IsCurrent {
		res.Deferred = true
		m.Audit.Deferred(target.Path)
		return res, nil
	}

	log.FromContext(ctx).Printf("Removing worktree %s\n", target.Path)
	err = m.Repo.RemoveWorktree(ctx, target.Path)
	m.Audit.Removed(target.Path, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Removal is the outcome of removing one path in RemovePaths.
type Removal struct {
	Path string
	Err  error
}

// RemovePaths removes each worktree path independently, never forcing.
// A failure is recorded and the remaining paths are still attempted.
// The main worktree is always refused.
func (m *Manager) RemovePaths(ctx context.Context, paths []string) []Removal {
	l := log.FromContext(ctx)
	mainPath := filepath.Clean(m.Repo.MainPath())
	literalMain := filepath.Join(m.root(), git.DefaultMainName)

	removals := make([]Removal, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		r := Removal{Path: p}
		switch {
		case filepath.Clean(p) == mainPath, filepath.Clean(p) == literalMain:
			r.Err = errs.ErrMainWorktreeProtected
		case ctx.Err() != nil:
			r.Err = ctx.Err()
		default:
			l.Printf("Removing worktree %s\n", p)
			r.Err = m.Repo.RemoveWorktree(ctx, p)
			m.Audit.Removed(p, r.Err)
		}
		if r.Err != nil {
			warnf(ctx, "could not remove %s: %v", p, r.Err)
		}
		removals = append(removals, r)
	}
	return removals
}
