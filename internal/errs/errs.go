// Package errs defines the error kinds surfaced by gw.
//
// Every fatal error reaching the CLI is printed as "<Kind>: <message>".
// Use [errors.Is] against the sentinel values and [errors.As] for
// [*HookError] and [*VCSError].
package errs

import (
	"errors"
	"fmt"
)

// Kind names an error category.
type Kind string

const (
	KindNotInRepository       Kind = "NotInRepository"
	KindNotInWorktree         Kind = "NotInWorktree"
	KindNoMatch               Kind = "NoMatch"
	KindMainWorktreeProtected Kind = "MainWorktreeProtected"
	KindWorktreeNotFound      Kind = "WorktreeNotFound"
	KindBranchNotFound        Kind = "BranchNotFound"
	KindAmbiguousBranchName   Kind = "AmbiguousBranchName"
	KindConfigInvalid         Kind = "ConfigInvalid"
	KindHookFailure           Kind = "HookFailure"
	KindVcsMutationFailure    Kind = "VcsMutationFailure"
	KindInternal              Kind = "Error"
)

// Error is a kinded error with a user-facing message.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind so sentinels compare equal to any error of that kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrNotInRepository       = &Error{Kind: KindNotInRepository, Msg: "not inside a git repository"}
	ErrNotInWorktree         = &Error{Kind: KindNotInWorktree, Msg: "not inside a worktree"}
	ErrNoMatch               = &Error{Kind: KindNoMatch, Msg: "no match"}
	ErrMainWorktreeProtected = &Error{Kind: KindMainWorktreeProtected, Msg: "the main worktree cannot be deleted"}
	ErrWorktreeNotFound      = &Error{Kind: KindWorktreeNotFound, Msg: "worktree not found"}
	ErrBranchNotFound        = &Error{Kind: KindBranchNotFound, Msg: "branch not found"}
	ErrAmbiguousBranchName   = &Error{Kind: KindAmbiguousBranchName, Msg: "ambiguous branch name"}
	ErrConfigInvalid         = &Error{Kind: KindConfigInvalid, Msg: "invalid configuration"}
)

// New returns an error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap returns an error of the given kind wrapping err.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Phase identifies when a hook ran.
type Phase string

const (
	PhaseCreate Phase = "create"
	PhaseDelete Phase = "delete"
)

// HookError reports a hook command that exited non-zero.
type HookError struct {
	Phase      Phase
	Command    string
	ExitStatus int
	Err        error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("%s hook %q failed with exit status %d", e.Phase, e.Command, e.ExitStatus)
}

func (e *HookError) Unwrap() error { return e.Err }

// VCSError reports a git mutation that git refused or that failed.
// Reason is git's own message, unmodified.
type VCSError struct {
	Op     string
	Reason string
	Err    error
}

func (e *VCSError) Error() string {
	return fmt.Sprintf("git %s failed: %s", e.Op, e.Reason)
}

func (e *VCSError) Unwrap() error { return e.Err }

// NewVCS wraps a failed git mutation.
func NewVCS(op string, err error) *VCSError {
	return &VCSError{Op: op, Reason: err.Error(), Err: err}
}

// KindOf classifies err for diagnostics.
func KindOf(err error) Kind {
	var hookErr *HookError
	if errors.As(err, &hookErr) {
		return KindHookFailure
	}
	var vcsErr *VCSError
	if errors.As(err, &vcsErr) {
		return KindVcsMutationFailure
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Format renders err as a kind-prefixed diagnostic line.
func Format(err error) string {
	return fmt.Sprintf("%s: %v", KindOf(err), err)
}
