// Package cmd runs external commands with stderr captured into errors.
package cmd

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/raphi011/gw/internal/log"
)

// RunContext executes name with args in dir. On failure the returned error
// carries the trimmed stderr of the command. A cancelled context yields
// ctx.Err() unwrapped.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := OutputContext(ctx, dir, name, args...)
	return err
}

// OutputContext is RunContext returning stdout.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	done(time.Since(start))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, &ExitError{Msg: msg, Err: err}
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// ExitError is a failed command with its stderr message.
type ExitError struct {
	Msg string
	Err error
}

func (e *ExitError) Error() string { return e.Msg }

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the process exit code carried by err, or -1.
func ExitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
