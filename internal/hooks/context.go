package hooks

import "github.com/raphi011/gw/internal/errs"

// Environment variables exported to every hook command.
const (
	EnvBranch  = "GW_BRANCH"
	EnvPath    = "GW_PATH"
	EnvRoot    = "GW_ROOT"
	EnvMain    = "GW_MAIN"
	EnvTrigger = "GW_TRIGGER"
)

// Context describes the worktree a hook runs for. Its values reach the hook
// only as environment variables; the command string is never rewritten.
type Context struct {
	Branch  string     // branch name
	Path    string     // absolute worktree path
	Root    string     // parent directory of all worktrees
	Main    string     // absolute main worktree path
	Trigger errs.Phase // create or delete
}

// Vars returns the context as KEY=value pairs.
func (c Context) Vars() []string {
	return []string{
		EnvBranch + "=" + c.Branch,
		EnvPath + "=" + c.Path,
		EnvRoot + "=" + c.Root,
		EnvMain + "=" + c.Main,
		EnvTrigger + "=" + string(c.Trigger),
	}
}
