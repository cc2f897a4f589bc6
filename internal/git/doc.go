// Package git is the registry of worktrees and branches for one repository.
//
// All operations call the git CLI rather than a Go git library, so user
// configuration (SSH keys, credential helpers, hooks) applies unchanged.
//
// # Layout
//
// Worktrees are flat siblings under a common root. The main worktree lives
// at <root>/<main> and every other worktree at <root>/<encoded branch>:
//
//	~/src/project/
//	├── main/
//	├── feature__login/
//	└── fix__crash/
//
// # Queries
//
//   - [Repo.ListWorktrees]: worktrees in the order git reports them
//   - [Repo.ListBranches]: local and remote branches, deduplicated by name
//   - [Repo.UpstreamStatus]: ahead/behind counts against the upstream
//
// # Mutations
//
//   - [Repo.AddWorktree]: new branch, existing local branch or remote branch
//   - [Repo.RemoveWorktree]: never forced; git's refusal is returned verbatim
//   - [Repo.Fetch]
package git
