package lifecycle

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/raphi011/gw/internal/errs"
	"github.com/raphi011/gw/internal/git"
	"github.com/raphi011/gw/internal/hooks"
	"github.com/raphi011/gw/internal/link"
	"github.com/raphi011/gw/internal/log"
	"github.com/raphi011/gw/internal/naming"
	"github.com/raphi011/gw/internal/protocol"
	"github.com/raphi011/gw/internal/resolve"
)

// suggestionLimit caps the "did you mean" list of a NoMatch error.
const suggestionLimit = 3

// SwitchResult is the outcome of Switch and Create.
type SwitchResult struct {
	// Path is the worktree to change into.
	Path   string
	Branch string
	// Match is how the input was resolved. Create always reports ExactBranch.
	Match resolve.Kind
	// Created is set when a worktree was added by this call.
	Created bool
	// NewBranch is set when the branch was created by this call.
	NewBranch bool
	// Links and Hooks describe post-creation setup. Failures in either are
	// warnings only.
	Links []link.Result
	Hooks hooks.Outcome
}

// Payload returns the wrapper instructions for r.
func (r *SwitchResult) Payload() protocol.Payload {
	return protocol.Payload{SwitchTo: r.Path}
}

// Switch resolves input against existing worktrees and branches and returns
// the worktree to change into, adding one when input names a branch without
// a worktree.
func (m *Manager) Switch(ctx context.Context, input string) (*SwitchResult, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, errs.New(errs.KindNoMatch, "branch name required")
	}

	worktrees, err := m.Repo.ListWorktrees(ctx)
	if err != nil {
		return nil, err
	}
	branches, err := m.Repo.ListBranches(ctx)
	if err != nil {
		return nil, err
	}

	match := resolve.Resolve(input, worktrees, branches)
	log.FromContext(ctx).Debug("resolved", "input", input, "match", match.Kind, "name", match.Name)

	switch match.Kind {
	case resolve.ExactWorktree, resolve.SubstringWorktree:
		return &SwitchResult{Path: match.Worktree.Path, Branch: match.Name, Match: match.Kind}, nil

	case resolve.ExactBranch:
		dir := naming.Encode(match.Name)
		if path, ok := m.existing(worktrees, dir); ok {
			return &SwitchResult{Path: path, Branch: match.Name, Match: match.Kind}, nil
		}
		opts := git.AddOptions{Path: m.Repo.PathFor(dir), Branch: match.Name}
		if match.Branch.Origin == git.Remote {
			opts.Remote = match.Branch.Remote
		}
		res, err := m.materialize(ctx, opts)
		if err != nil {
			return nil, err
		}
		res.Match = match.Kind
		return res, nil
	}

	msg := fmt.Sprintf("no worktree or branch matches %q; use 'gw -b %s' to create it", input, input)
	if s := resolve.Suggest(input, worktrees, branches, suggestionLimit); len(s) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(s, ", "))
	}
	return nil, errs.New(errs.KindNoMatch, "%s", msg)
}

// Create adds a worktree on a new branch named branch, starting at base
// (the main worktree's HEAD when empty). When the worktree directory already
// exists it is returned unchanged.
func (m *Manager) Create(ctx context.Context, branch, base string) (*SwitchResult, error) {
	branch = strings.TrimSpace(branch)
	if branch == "" {
		return nil, errs.New(errs.KindBranchNotFound, "branch name required")
	}

	worktrees, err := m.Repo.ListWorktrees(ctx)
	if err != nil {
		return nil, err
	}

	dir := naming.Encode(branch)
	if path, ok := m.existing(worktrees, dir); ok {
		log.FromContext(ctx).Printf("Worktree already exists at %s\n", path)
		return &SwitchResult{Path: path, Branch: branch, Match: resolve.ExactWorktree}, nil
	}

	res, err := m.materialize(ctx, git.AddOptions{
		Path:      m.Repo.PathFor(dir),
		Branch:    branch,
		NewBranch: true,
		Base:      base,
	})
	if err != nil {
		return nil, err
	}
	res.Match = resolve.ExactBranch
	return res, nil
}

// existing returns the path of worktree directory dir if it is registered
// or present on disk.
func (m *Manager) existing(worktrees []git.Worktree, dir string) (string, bool) {
	if wt, ok := findByDir(worktrees, m.root(), dir); ok {
		return wt.Path, true
	}
	path := m.Repo.PathFor(dir)
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path, true
	}
	return "", false
}

// materialize adds the worktree, then links files and runs the create
// scripts. Only the git mutation can fail the operation.
func (m *Manager) materialize(ctx context.Context, opts git.AddOptions) (*SwitchResult, error) {
	l := log.FromContext(ctx)

	if !(m.AllowAmbiguousNames && naming.IsAmbiguous(opts.Branch)) {
		if err := naming.ValidateBranch(opts.Branch); err != nil {
			return nil, err
		}
	}

	cfg, err := m.loadConfig()
	if err != nil {
		return nil, err
	}

	switch {
	case opts.NewBranch:
		l.Printf("Creating worktree for new branch %s in %s\n", opts.Branch, opts.Path)
	case opts.Remote != "":
		l.Printf("Creating worktree for %s/%s in %s\n", opts.Remote, opts.Branch, opts.Path)
	default:
		l.Printf("Creating worktree for branch %s in %s\n", opts.Branch, opts.Path)
	}

	if err := m.Repo.AddWorktree(ctx, opts); err != nil {
		return nil, err
	}
	m.Audit.Created(opts.Branch, opts.Path, opts.NewBranch)

	res := &SwitchResult{
		Path:      opts.Path,
		Branch:    opts.Branch,
		Created:   true,
		NewBranch: opts.NewBranch,
	}

	res.Links = link.Apply(m.Repo.MainPath(), opts.Path, cfg.LinkFiles)
	for _, r := range res.Links {
		switch {
		case r.Status == link.Linked:
			l.Printf("Linked %s -> %s\n", r.Path, r.Target)
		case r.Err != nil:
			warnf(ctx, "link %s: %v", r.Path, r.Err)
		case !r.OK():
			warnf(ctx, "link %s: %s", r.Path, r.Status)
		}
	}

	hc := m.hookContext(opts.Branch, opts.Path, errs.PhaseCreate)
	res.Hooks = m.runHooks(ctx, cfg.Scripts, hooks.ContinueOnError, hc)
	for _, f := range res.Hooks.Failures() {
		warnf(ctx, "%v", &errs.HookError{Phase: errs.PhaseCreate, Command: f.Command, ExitStatus: f.ExitStatus, Err: f.Err})
	}
	if !res.Hooks.OK() {
		warnf(ctx, "create scripts interrupted, %d not run: %v", len(res.Hooks.Skipped), res.Hooks.Err)
	}

	return res, nil
}
