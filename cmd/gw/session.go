package main

import (
	"context"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/raphi011/gw/internal/audit"
	"github.com/raphi011/gw/internal/config"
	"github.com/raphi011/gw/internal/errs"
	"github.com/raphi011/gw/internal/git"
	"github.com/raphi011/gw/internal/hooks"
	"github.com/raphi011/gw/internal/lifecycle"
	"github.com/raphi011/gw/internal/log"
	"github.com/raphi011/gw/internal/output"
	"github.com/raphi011/gw/internal/protocol"
	"github.com/raphi011/gw/internal/ui/progress"
)

// session is the repository and manager a single command works with.
type session struct {
	repo *git.Repo
	mgr  *lifecycle.Manager
	rec  *audit.Recorder
}

// settingsFrom returns the settings in ctx or the defaults.
func settingsFrom(ctx context.Context) config.Settings {
	if s := config.FromContext(ctx); s != nil {
		return *s
	}
	return config.Default()
}

// openSession opens the repository containing the working directory.
func openSession(ctx context.Context) (*session, error) {
	l := log.FromContext(ctx)
	settings := settingsFrom(ctx)

	repo, err := git.Open(ctx, config.WorkDirFromContext(ctx), settings.MainWorktree)
	if err != nil {
		return nil, err
	}

	rec, err := audit.New(settings.Audit)
	if err != nil {
		l.Printf("Warning: audit log disabled: %v\n", err)
		rec = audit.Nop()
	}

	mgr := lifecycle.New(repo, settings, hooks.NewRunner(l.Writer()), rec)
	mgr.Progress = progress.Runner(os.Stderr, !l.IsQuiet())
	return &session{repo: repo, mgr: mgr, rec: rec}, nil
}

func (s *session) Close() {
	_ = s.rec.Close()
}

// wrapped reports whether gw runs under the shell wrapper.
func wrapped() bool {
	return os.Getenv(protocol.EnvWrapped) != ""
}

// emit prints p for the shell wrapper. Without the wrapper, removals that
// need no directory change are done right away.
func emit(ctx context.Context, s *session, p protocol.Payload) error {
	lines, err := p.Lines()
	if err != nil {
		return errs.Wrap(errs.KindInternal, err, "encode result")
	}

	removals := p.Removals()
	if wrapped() || len(removals) == 0 {
		output.FromContext(ctx).Lines(lines)
		return nil
	}

	if p.SwitchTo == "" {
		return removeAll(ctx, s, removals)
	}

	output.FromContext(ctx).Lines(lines)
	log.FromContext(ctx).Printf(`Shell integration is not active, so the worktree you are in was not removed.
Run: cd %s && gw remove-worktrees %s
Set up the wrapper with: eval "$(gw init bash)"
`, p.SwitchTo, strings.Join(removals, " "))
	return nil
}

// removeAll removes paths independently and fails if any removal failed.
func removeAll(ctx context.Context, s *session, paths []string) error {
	failed := 0
	for _, r := range s.mgr.RemovePaths(ctx, paths) {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return errs.New(errs.KindVcsMutationFailure, "%d of %d worktrees could not be removed", failed, len(paths))
	}
	return nil
}

// copyPath copies path to the clipboard. Failure is only a warning.
func copyPath(ctx context.Context, path string) {
	l := log.FromContext(ctx)
	if err := clipboard.WriteAll(path); err != nil {
		l.Printf("Warning: failed to copy to clipboard: %v\n", err)
		return
	}
	l.Printf("Copied %s to clipboard\n", path)
}
