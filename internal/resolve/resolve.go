package resolve

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/raphi011/gw/internal/git"
)

// Kind is the category of a resolution result.
type Kind int

const (
	NoMatch Kind = iota
	ExactWorktree
	ExactBranch
	SubstringWorktree
)

func (k Kind) String() string {
	switch k {
	case ExactWorktree:
		return "exact-worktree"
	case ExactBranch:
		return "exact-branch"
	case SubstringWorktree:
		return "substring-worktree"
	default:
		return "no-match"
	}
}

// Match is the outcome of resolving user input.
type Match struct {
	Kind Kind
	// Name is the matched branch name; empty for NoMatch.
	Name string
	// Worktree is set for ExactWorktree and SubstringWorktree.
	Worktree *git.Worktree
	// Branch is set for ExactBranch.
	Branch *git.Branch
}

// Resolve maps input to a worktree or branch. Priority, first hit wins:
//
//  1. a worktree whose branch equals input
//  2. a known branch equal to input, local before remote
//  3. the first worktree, in registry order, whose branch contains input
//
// Detached worktrees never match.
func Resolve(input string, worktrees []git.Worktree, branches []git.Branch) Match {
	if input == "" {
		return Match{Kind: NoMatch}
	}

	for i := range worktrees {
		if !worktrees[i].Detached() && worktrees[i].Branch == input {
			return Match{Kind: ExactWorktree, Name: input, Worktree: &worktrees[i]}
		}
	}

	if b := findBranch(input, branches); b != nil {
		return Match{Kind: ExactBranch, Name: input, Branch: b}
	}

	for i := range worktrees {
		if !worktrees[i].Detached() && strings.Contains(worktrees[i].Branch, input) {
			return Match{Kind: SubstringWorktree, Name: worktrees[i].Branch, Worktree: &worktrees[i]}
		}
	}

	return Match{Kind: NoMatch}
}

// findBranch returns the branch named name, preferring a local one.
func findBranch(name string, branches []git.Branch) *git.Branch {
	var remote *git.Branch
	for i := range branches {
		if branches[i].Name != name {
			continue
		}
		if branches[i].Origin == git.Local {
			return &branches[i]
		}
		if remote == nil {
			remote = &branches[i]
		}
	}
	return remote
}

// names implements fuzzy.Source over branch names.
type names []string

func (n names) String(i int) string { return n[i] }
func (n names) Len() int            { return len(n) }

// Suggest returns up to limit branch names that fuzzily match input,
// best first. It is only used to enrich NoMatch diagnostics.
func Suggest(input string, worktrees []git.Worktree, branches []git.Branch, limit int) []string {
	var candidates names
	seen := make(map[string]bool)
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			candidates = append(candidates, name)
		}
	}
	for _, wt := range worktrees {
		add(wt.Branch)
	}
	for _, b := range branches {
		add(b.Name)
	}

	matches := fuzzy.FindFrom(input, candidates)
	out := make([]string, 0, min(limit, len(matches)))
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, m.Str)
	}
	return out
}
