// Package hooks runs the user-declared scripts of a .gwconfig file.
//
// Each entry is an opaque shell command executed with sh -c in the target
// worktree. Output is streamed to stderr so stdout stays reserved for the
// result protocol; only the exit status is inspected.
//
// # Failure Policies
//
//   - ContinueOnError: used for scripts after creation. Every command runs
//     and failures are reported as warnings.
//   - AbortOnError: used for delete_scripts. The first failing command stops
//     the sequence and blocks the deletion.
//
// # Environment
//
// Hooks see the inherited environment plus:
//
//   - GW_BRANCH: branch name
//   - GW_PATH: absolute worktree path
//   - GW_ROOT: directory holding all worktrees
//   - GW_MAIN: absolute main worktree path
//   - GW_TRIGGER: "create" or "delete"
//
// There is no timeout: a hook that never exits blocks the operation.
package hooks
