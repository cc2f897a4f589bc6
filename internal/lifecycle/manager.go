// Package lifecycle implements the worktree operations behind gw's commands:
// switch or create, delete, clean and list.
//
// A Manager holds no state between operations. Every call re-reads the
// worktree registry and the repository config, performs its git mutations
// through the Registry, and returns a result whose Payload tells the shell
// wrapper what is left to do.
package lifecycle

import (
	"context"
	"os"
	"path/filepath"

	"github.com/raphi011/gw/internal/audit"
	"github.com/raphi011/gw/internal/config"
	"github.com/raphi011/gw/internal/errs"
	"github.com/raphi011/gw/internal/git"
	"github.com/raphi011/gw/internal/hooks"
	"github.com/raphi011/gw/internal/log"
)

// Registry is the git capability the Manager works against.
// *git.Repo implements it.
type Registry interface {
	ListWorktrees(ctx context.Context) ([]git.Worktree, error)
	ListBranches(ctx context.Context) ([]git.Branch, error)
	UpstreamStatus(ctx context.Context, path string) (*git.AheadBehind, error)
	Fetch(ctx context.Context, remote string) error
	AddWorktree(ctx context.Context, opts git.AddOptions) error
	RemoveWorktree(ctx context.Context, path string) error
	MainPath() string
	PathFor(dir string) string
}

var _ Registry = (*git.Repo)(nil)

// Manager runs lifecycle operations for one repository.
type Manager struct {
	Repo  Registry
	Hooks *hooks.Runner
	Audit *audit.Recorder

	// LoadConfig reads the repository config from the main worktree.
	LoadConfig func(mainPath string) (config.Config, error)
	// Progress wraps slow steps such as the fetch in Clean.
	Progress func(ctx context.Context, title string, fn func() error) error

	// AllowAmbiguousNames permits new branches containing the "__" marker.
	AllowAmbiguousNames bool
	// FetchRemote limits the Clean fetch to one remote; empty means all.
	FetchRemote string
}

// New returns a Manager using settings. A nil runner streams hook output to
// stderr; a nil recorder disables auditing.
func New(repo Registry, settings config.Settings, runner *hooks.Runner, rec *audit.Recorder) *Manager {
	if runner == nil {
		runner = hooks.NewRunner(os.Stderr)
	}
	if rec == nil {
		rec = audit.Nop()
	}
	return &Manager{
		Repo:                repo,
		Hooks:               runner,
		Audit:               rec,
		LoadConfig:          config.LoadRepo,
		Progress:            runDirect,
		AllowAmbiguousNames: settings.AllowAmbiguousNames,
		FetchRemote:         settings.FetchRemote,
	}
}

func runDirect(_ context.Context, _ string, fn func() error) error {
	return fn()
}

// mainName is the directory name of the main worktree.
func (m *Manager) mainName() string {
	return filepath.Base(m.Repo.MainPath())
}

// root is the parent directory of all worktrees.
func (m *Manager) root() string {
	return filepath.Dir(m.Repo.MainPath())
}

func (m *Manager) isMain(wt git.Worktree) bool {
	return wt.Dir == m.mainName() || filepath.Clean(wt.Path) == filepath.Clean(m.Repo.MainPath())
}

// isProtected reports whether wt must never be removed: the configured main
// worktree, or a sibling literally named main.
func (m *Manager) isProtected(wt git.Worktree) bool {
	return m.isMain(wt) || m.isProtectedName(wt.Dir)
}

func (m *Manager) isProtectedName(name string) bool {
	return name == m.mainName() || name == git.DefaultMainName
}

func (m *Manager) loadConfig() (config.Config, error) {
	load := m.LoadConfig
	if load == nil {
		load = config.LoadRepo
	}
	return load(m.Repo.MainPath())
}

func (m *Manager) hookContext(branch, path string, phase errs.Phase) hooks.Context {
	return hooks.Context{
		Branch:  branch,
		Path:    path,
		Root:    m.root(),
		Main:    m.Repo.MainPath(),
		Trigger: phase,
	}
}

// runHooks runs commands for hc and records every attempted command.
func (m *Manager) runHooks(ctx context.Context, commands []string, policy hooks.Policy, hc hooks.Context) hooks.Outcome {
	out := m.Hooks.RunSequence(ctx, commands, hc.Path, policy, hc)
	for _, r := range out.Results {
		m.Audit.Hook(string(hc.Trigger), hc.Path, r.Command, r.ExitStatus)
	}
	return out
}

// findByDir returns the registered worktree stored in directory dir directly
// under root.
func findByDir(worktrees []git.Worktree, root, dir string) (git.Worktree, bool) {
	for _, wt := range worktrees {
		if wt.Dir == dir && filepath.Dir(filepath.Clean(wt.Path)) == filepath.Clean(root) {
			return wt, true
		}
	}
	return git.Worktree{}, false
}

func findCurrent(worktrees []git.Worktree) (git.Worktree, bool) {
	for _, wt := range worktrees {
		if wt.IsCurrent {
			return wt, true
		}
	}
	return git.Worktree{}, false
}

func warnf(ctx context.Context, format string, args ...any) {
	log.FromContext(ctx).Printf("Warning: "+format+"\n", args...)
}
