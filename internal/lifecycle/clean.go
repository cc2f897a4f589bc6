package lifecycle

import (
	"context"

	"github.com/raphi011/gw/internal/errs"
	"github.com/raphi011/gw/internal/git"
	"github.com/raphi011/gw/internal/hooks"
	"github.com/raphi011/gw/internal/log"
	"github.com/raphi011/gw/internal/protocol"
)

// Skipped is a worktree Clean did not consider.
type Skipped struct {
	Worktree git.Worktree
	Reason   string
}

// Kept is a worktree that differs from its upstream.
type Kept struct {
	Worktree git.Worktree
	Status   git.AheadBehind
}

// CleanFailure is a selected worktree whose delete scripts failed.
type CleanFailure struct {
	Worktree git.Worktree
	Err      error
}

// CleanResult is the outcome of Clean.
type CleanResult struct {
	MainPath string
	// Safe lists worktrees in sync with their upstream whose delete scripts
	// passed. They are removed by the wrapper.
	Safe    []git.Worktree
	Failed  []CleanFailure
	Kept    []Kept
	Skipped []Skipped
}

// NothingToClean reports whether no worktree is queued for removal.
func (r *CleanResult) NothingToClean() bool {
	return len(r.Safe) == 0
}

// Paths returns the paths of the worktrees queued for removal.
func (r *CleanResult) Paths() []string {
	paths := make([]string, len(r.Safe))
	for i, wt := range r.Safe {
		paths[i] = wt.Path
	}
	return paths
}

// Payload returns the wrapper instructions for r. The wrapper changes into
// the main worktree first only when the current worktree is being removed.
func (r *CleanResult) Payload() protocol.Payload {
	if r.NothingToClean() {
		return protocol.Payload{}
	}
	p := protocol.Payload{Clean: r.Paths()}
	for _, wt := range r.Safe {
		if wt.IsCurrent {
			p.SwitchTo = r.MainPath
			break
		}
	}
	return p
}

// Clean fetches, then selects every non-main worktree whose branch has
// neither unpushed nor unpulled commits relative to its upstream. Delete
// scripts run per selected worktree; a failure only keeps that worktree.
// A failed fetch fails the whole operation.
func (m *Manager) Clean(ctx context.Context) (*CleanResult, error) {
	l := log.FromContext(ctx)

	fetch := func() error { return m.Repo.Fetch(ctx, m.FetchRemote) }
	progress := m.Progress
	if progress == nil {
		progress = runDirect
	}
	if err := progress(ctx, "Fetching remotes", fetch); err != nil {
		return nil, err
	}

	worktrees, err := m.Repo.ListWorktrees(ctx)
	if err != nil {
		return nil, err
	}

	res := &CleanResult{MainPath: m.Repo.MainPath()}
	var selected []git.Worktree

	for _, wt := range worktrees {
		if m.isProtected(wt) {
			continue
		}
		if wt.Detached() {
			l.Printf("Skipping %s: detached HEAD\n", wt.Dir)
			res.Skipped = append(res.Skipped, Skipped{Worktree: wt, Reason: "detached HEAD"})
			continue
		}

		status, err := m.Repo.UpstreamStatus(ctx, wt.Path)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			warnf(ctx, "skipping %s: %v", wt.Dir, err)
			res.Skipped = append(res.Skipped, Skipped{Worktree: wt, Reason: err.Error()})
			continue
		}
		if status == nil {
			l.Printf("Skipping %s: no upstream\n", wt.Dir)
			res.Skipped = append(res.Skipped, Skipped{Worktree: wt, Reason: "no upstream"})
			continue
		}
		if !status.InSync() {
			l.Debug("keeping worktree", "dir", wt.Dir, "ahead", status.Ahead, "behind", status.Behind)
			res.Kept = append(res.Kept, Kept{Worktree: wt, Status: *status})
			continue
		}
		selected = append(selected, wt)
	}

	if len(selected) == 0 {
		return res, nil
	}

	cfg, err := m.loadConfig()
	if err != nil {
		return nil, err
	}

	for _, wt := range selected {
		hc := m.hookContext(wt.Branch, wt.Path, errs.PhaseDelete)
		outcome := m.runHooks(ctx, cfg.DeleteScripts, hooks.AbortOnError, hc)
		if err := outcome.HookError(errs.PhaseDelete); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			warnf(ctx, "keeping %s: %v", wt.Dir, err)
			res.Failed = append(res.Failed, CleanFailure{Worktree: wt, Err: err})
			continue
		}
		res.Safe = append(res.Safe, wt)
		m.Audit.Deferred(wt.Path)
	}

	return res, nil
}
