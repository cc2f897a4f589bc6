package lifecycle

import (
	"context"

	"github.com/raphi011/gw/internal/git"
	"github.com/raphi011/gw/internal/log"
)

// Entry is one row of List.
type Entry struct {
	git.Worktree
	Main bool `json:"main"`
	// Upstream is nil when the worktree is detached or has no upstream.
	Upstream *git.AheadBehind `json:"upstream,omitempty"`
}

// List returns all worktrees in registry order with their upstream status.
func (m *Manager) List(ctx context.Context) ([]Entry, error) {
	worktrees, err := m.Repo.ListWorktrees(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(worktrees))
	for _, wt := range worktrees {
		e := Entry{Worktree: wt, Main: m.isMain(wt)}
		if !wt.Detached() {
			status, err := m.Repo.UpstreamStatus(ctx, wt.Path)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				log.FromContext(ctx).Debug("upstream status", "dir", wt.Dir, "err", err)
			}
			e.Upstream = status
		}
		entries = append(entries, e)
	}
	return entries, nil
}
