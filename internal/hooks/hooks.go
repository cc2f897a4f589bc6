package hooks

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/mattn/go-isatty"

	"github.com/raphi011/gw/internal/errs"
	"github.com/raphi011/gw/internal/log"
)

// Policy decides what a failing command does to the rest of a sequence.
type Policy int

const (
	// ContinueOnError runs every command and records failures.
	ContinueOnError Policy = iota
	// AbortOnError stops at the first failing command.
	AbortOnError
)

func (p Policy) String() string {
	if p == AbortOnError {
		return "abort-on-error"
	}
	return "continue-on-error"
}

// Executor runs one hook command in dir with extra environment variables.
// The returned error carries the exit status when the command ran.
type Executor interface {
	Run(ctx context.Context, dir, command string, env []string) error
}

// ShellExecutor runs commands through sh -c. Command output is streamed to
// Stdout and Stderr; gw points both at its own stderr.
type ShellExecutor struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes command. A command that has started is not interrupted when
// ctx is cancelled.
func (e ShellExecutor) Run(_ context.Context, dir, command string, env []string) error {
	c := exec.Command("sh", "-c", command)
	c.Dir = dir
	c.Env = append(os.Environ(), env...)
	c.Stdout = e.Stdout
	c.Stderr = e.Stderr
	if stdinIsTerminal() {
		c.Stdin = os.Stdin
	}
	return c.Run()
}

// stdinIsTerminal reports whether hooks may read from an interactive stdin.
func stdinIsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// Result is the outcome of one command.
type Result struct {
	Command    string
	ExitStatus int
	Err        error
}

// Failed reports whether the command exited non-zero or could not run.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Outcome summarizes a sequence.
type Outcome struct {
	Policy Policy
	// Results has one entry per attempted command, in order.
	Results []Result
	// Skipped lists commands not attempted after an abort or cancellation.
	Skipped []string
	// Err is set when the context was cancelled between commands.
	Err error
}

// Failures returns the failed results.
func (o Outcome) Failures() []Result {
	var failed []Result
	for _, r := range o.Results {
		if r.Failed() {
			failed = append(failed, r)
		}
	}
	return failed
}

// OK reports overall success. A ContinueOnError sequence succeeds when it
// ran to completion, whatever the individual results; an AbortOnError
// sequence only when every command succeeded.
func (o Outcome) OK() bool {
	if o.Err != nil || len(o.Skipped) > 0 {
		return false
	}
	return o.Policy == ContinueOnError || len(o.Failures()) == 0
}

// HookError converts the first failure into an error for phase,
// or returns nil when nothing failed.
func (o Outcome) HookError(phase errs.Phase) error {
	if o.Err != nil {
		return o.Err
	}
	failed := o.Failures()
	if len(failed) == 0 {
		return nil
	}
	f := failed[0]
	return &errs.HookError{Phase: phase, Command: f.Command, ExitStatus: f.ExitStatus, Err: f.Err}
}

// Runner executes hook sequences.
type Runner struct {
	Exec Executor
}

// NewRunner returns a Runner streaming hook output to w.
func NewRunner(w io.Writer) *Runner {
	return &Runner{Exec: ShellExecutor{Stdout: w, Stderr: w}}
}

// RunSequence runs commands in dir, one after another. With AbortOnError the
// first failure ends the sequence; with ContinueOnError every command runs.
// The context is checked between commands only.
func (r *Runner) RunSequence(ctx context.Context, commands []string, dir string, policy Policy, hc Context) Outcome {
	l := log.FromContext(ctx)
	env := hc.Vars()
	out := Outcome{Policy: policy}

	for i, command := range commands {
		if err := ctx.Err(); err != nil {
			out.Err = err
			out.Skipped = append(out.Skipped, commands[i:]...)
			return out
		}

		l.Printf("Running %s hook: %s\n", hc.Trigger, command)
		err := r.Exec.Run(ctx, dir, command, env)
		res := Result{Command: command, Err: err, ExitStatus: exitStatus(err)}
		out.Results = append(out.Results, res)

		if err == nil {
			continue
		}
		l.Debug("hook failed", "command", command, "exit", res.ExitStatus, "policy", policy)
		if policy == AbortOnError {
			out.Skipped = append(out.Skipped, commands[i+1:]...)
			return out
		}
	}
	return out
}

// exitStatus extracts the exit status of a finished command, or -1 when it
// did not run to completion.
func exitStatus(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
