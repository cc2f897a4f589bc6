// Package resolve turns free-text input into a worktree or branch target.
//
// # Priority
//
// Resolution short-circuits in a fixed order so that an exact name is never
// shadowed by a broader substring match, and an existing worktree wins over a
// branch that has no worktree yet:
//
//   - ExactWorktree: a worktree's branch equals the input
//   - ExactBranch: a local or remote branch equals the input (local first)
//   - SubstringWorktree: the first worktree, in the order git lists them,
//     whose branch contains the input
//   - NoMatch
//
// Ties between substring matches are broken by registry order only.
//
// Input resolved to a worktree only switches directories; an ExactBranch
// result may create a worktree. Deletion never goes through this package:
// it requires an exact directory name.
package resolve
