package exec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	osexec "os/exec"
	"time"
)

// SpawnError indicates the command could not be started at all, typically
// because the executable is missing from PATH.
type SpawnError struct {
	Name string
	Err  error
}

func (e *SpawnError) Error() string {
	if errors.Is(e.Err, osexec.ErrNotFound) {
		return fmt.Sprintf("cannot start %s: %v\n💡 Command '%s' not found. Please install it and try again", e.Name, e.Err, e.Name)
	}
	return fmt.Sprintf("cannot start %s: %v", e.Name, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// TimeoutError indicates the command was killed because it exceeded the
// configured wall-clock timeout. The process is reaped before this error is
// returned; it never keeps running in the background.
type TimeoutError struct {
	Name    string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Name, e.Timeout)
}

// ExitError indicates the command ran to completion with a non-zero exit
// status. Output carries the tail of the combined output for diagnostics.
type ExitError struct {
	Name   string
	Code   int
	Output string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Name, e.Code)
}

// Options configures command execution.
type Options struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Env     []string      // Additional environment variables
	Dir     string        // Working directory
	Timeout time.Duration // Wall-clock limit per Run; zero means none

	// CommandFunc overrides how commands are constructed. Tests use this
	// to substitute a helper process for the real executable.
	CommandFunc func(name string, args ...string) *osexec.Cmd
}

// Executor runs external commands with streaming output, cancellation, and
// timeout enforcement. It never retries: retry policy belongs to callers.
type Executor struct {
	stdout  io.Writer
	stderr  io.Writer
	env     []string
	dir     string
	timeout time.Duration

	commandFunc func(name string, args ...string) *osexec.Cmd
}

// NewExecutor creates an executor with sensible defaults.
func NewExecutor(opts *Options) *Executor {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.CommandFunc == nil {
		opts.CommandFunc = osexec.Command
	}

	return &Executor{
		stdout:      opts.Stdout,
		stderr:      opts.Stderr,
		env:         opts.Env,
		dir:         opts.Dir,
		timeout:     opts.Timeout,
		commandFunc: opts.CommandFunc,
	}
}

// WithDir returns a copy of the executor with a different working directory.
func (e *Executor) WithDir(dir string) *Executor {
	clone := *e
	clone.dir = dir
	return &clone
}

// Run executes a command to completion, streaming its output incrementally
// to the configured writers while keeping a tail for diagnostics.
//
// The result is classified: nil on exit status 0, *TimeoutError when the
// configured timeout elapses first (the process is killed and reaped),
// *ExitError on a non-zero exit, and *SpawnError when the process cannot be
// started.
func (e *Executor) Run(ctx context.Context, name string, args ...string) error {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := e.commandFunc(name, args...)
	if e.dir != "" {
		cmd.Dir = e.dir
	}
	if len(e.env) > 0 {
		cmd.Env = append(os.Environ(), e.env...)
	}

	tail := newTailBuffer(8 * 1024)
	cmd.Stdout = NewTeeWriter(e.stdout, tail)
	cmd.Stderr = NewTeeWriter(e.stderr, tail)

	if err := cmd.Start(); err != nil {
		return &SpawnError{Name: name, Err: err}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- cmd.Wait()
	}()

	select {
	case <-ctx.Done():
		// Kill and reap. Abandoning the process would let it keep
		// mutating the target directory after the caller has moved on
		// to rollback.
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		<-errCh
		e.flushOutputs()

		if e.timeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return &TimeoutError{Name: name, Timeout: e.timeout}
		}
		return fmt.Errorf("%s cancelled: %w", name, ctx.Err())

	case err := <-errCh:
		e.flushOutputs()
		if err == nil {
			return nil
		}
		var exitErr *osexec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{
				Name:   name,
				Code:   exitErr.ExitCode(),
				Output: tail.String(),
			}
		}
		return &SpawnError{Name: name, Err: err}
	}
}

type flusher interface {
	Flush() error
}

// flushOutputs drains any buffered partial line once the process has been
// reaped. A subprocess's final output often lacks a trailing newline;
// without this it would never leave a line-buffering writer.
func (e *Executor) flushOutputs() {
	for _, w := range []io.Writer{e.stdout, e.stderr} {
		if f, ok := w.(flusher); ok {
			_ = f.Flush()
		}
	}
}
