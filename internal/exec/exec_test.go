package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	osexec "os/exec"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCommand reroutes a command invocation into TestHelperProcess.
func mockCommand(name string, args ...string) *osexec.Cmd {
	cs := []string{"-test.run=TestHelperProcess", "--", name}
	cs = append(cs, args...)
	cmd := osexec.Command(os.Args[0], cs...)
	cmd.Env = []string{"GO_WANT_HELPER_PROCESS=1"}
	return cmd
}

// TestHelperProcess acts as the fake external command.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "no command specified")
		os.Exit(1)
	}

	switch args[0] {
	case "echo":
		fmt.Println(strings.Join(args[1:], " "))
		os.Exit(0)
	case "hang":
		time.Sleep(30 * time.Second)
		os.Exit(0)
	case "fail":
		fmt.Fprintln(os.Stderr, "npm ERR! install failed")
		os.Exit(1)
	case "chatter":
		// Floods stdout and stderr concurrently, like a real npm install.
		var wg sync.WaitGroup
		for _, stream := range []*os.File{os.Stdout, os.Stderr} {
			wg.Add(1)
			go func(w *os.File) {
				defer wg.Done()
				for i := 0; i < 2000; i++ {
					fmt.Fprintf(w, "line %d\n", i)
				}
			}(stream)
		}
		wg.Wait()
		os.Exit(1)
	case "partial":
		fmt.Print("done without newline")
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		os.Exit(1)
	}
}

func TestNewExecutor_Defaults(t *testing.T) {
	e := NewExecutor(nil)
	assert.NotNil(t, e)
	assert.Equal(t, os.Stdout, e.stdout)
	assert.Equal(t, os.Stderr, e.stderr)
	assert.NotNil(t, e.commandFunc)
}

func TestRun_Success(t *testing.T) {
	var stdout bytes.Buffer
	e := NewExecutor(&Options{Stdout: &stdout, CommandFunc: mockCommand})

	err := e.Run(context.Background(), "echo", "hello", "world")
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "hello world")
}

func TestRun_NonZeroExit(t *testing.T) {
	var stdout bytes.Buffer
	e := NewExecutor(&Options{Stdout: &stdout, Stderr: &stdout, CommandFunc: mockCommand})

	err := e.Run(context.Background(), "fail")
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, exitErr.Output, "npm ERR!")
}

func TestRun_SpawnError(t *testing.T) {
	e := NewExecutor(&Options{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})

	err := e.Run(context.Background(), "definitely-not-a-real-binary-xyz")
	require.Error(t, err)

	var spawnErr *SpawnError
	assert.True(t, errors.As(err, &spawnErr))
}

func TestRun_TimeoutKillsProcess(t *testing.T) {
	e := NewExecutor(&Options{
		Stdout:      &bytes.Buffer{},
		Stderr:      &bytes.Buffer{},
		Timeout:     200 * time.Millisecond,
		CommandFunc: mockCommand,
	})

	start := time.Now()
	err := e.Run(context.Background(), "hang")
	elapsed := time.Since(start)

	var timeoutErr *TimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	assert.Equal(t, 200*time.Millisecond, timeoutErr.Timeout)

	// Run must return promptly after killing and reaping, not after the
	// 30s the helper would have slept.
	assert.Less(t, elapsed, 5*time.Second)
}

func TestRun_CancellationIsNotTimeout(t *testing.T) {
	e := NewExecutor(&Options{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, CommandFunc: mockCommand})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	err := e.Run(ctx, "hang")
	require.Error(t, err)

	var timeoutErr *TimeoutError
	assert.False(t, errors.As(err, &timeoutErr))
	assert.True(t, errors.Is(err, context.Canceled))
}

// Run shares one diagnostic tail between stdout and stderr, and os/exec
// copies those streams from separate goroutines. This fails under the
// race detector if the tail is unsynchronized.
func TestRun_ConcurrentStreamsShareDiagnosticTail(t *testing.T) {
	e := NewExecutor(&Options{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, CommandFunc: mockCommand})

	err := e.Run(context.Background(), "chatter")
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Contains(t, exitErr.Output, "line 1999")
}

func TestRun_FlushesTrailingPartialLine(t *testing.T) {
	var out bytes.Buffer
	e := NewExecutor(&Options{
		Stdout:      NewStreamingWriter(&out, "│ ", "240"),
		Stderr:      &bytes.Buffer{},
		CommandFunc: mockCommand,
	})

	require.NoError(t, e.Run(context.Background(), "partial"))
	assert.Contains(t, out.String(), "done without newline")
}

func TestRunWithSpinner_ClassifiesResult(t *testing.T) {
	e := NewExecutor(&Options{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, CommandFunc: mockCommand})

	require.NoError(t, e.RunWithSpinner(context.Background(), "Installing packages", "echo", "ok"))

	err := e.RunWithSpinner(context.Background(), "Installing packages", "fail")
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.Code)
}

func TestWithDir(t *testing.T) {
	e := NewExecutor(&Options{Stdout: &bytes.Buffer{}})
	scoped := e.WithDir("/tmp")
	assert.Equal(t, "/tmp", scoped.dir)
	assert.Empty(t, e.dir)
}

type fakeWrapper struct {
	name string
	ran  bool
}

func (f *fakeWrapper) Name() string        { return f.name }
func (f *fakeWrapper) Description() string { return "fake command" }
func (f *fakeWrapper) Execute(ctx context.Context, e *Executor) error {
	f.ran = true
	return nil
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	w := &fakeWrapper{name: "git-init"}

	require.NoError(t, r.Register(w))
	assert.Equal(t, 1, r.Size())
	assert.Equal(t, []string{"git-init"}, r.List())

	// Duplicate names are rejected.
	assert.Error(t, r.Register(&fakeWrapper{name: "git-init"}))

	require.NoError(t, r.Execute(context.Background(), "git-init", NewExecutor(nil)))
	assert.True(t, w.ran)

	assert.Error(t, r.Execute(context.Background(), "missing", NewExecutor(nil)))
}

func TestRegistry_ListWithDescriptions(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&fakeWrapper{name: "git-init"}))

	assert.Equal(t, map[string]string{"git-init": "fake command"}, r.ListWithDescriptions())
}

func TestStreamingWriter_CompleteLines(t *testing.T) {
	var out bytes.Buffer
	w := NewStreamingWriter(&out, "npm │ ", "240")

	_, err := w.Write([]byte("first line\npartial"))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "first line")
	assert.NotContains(t, out.String(), "partial")

	require.NoError(t, w.Flush())
	assert.Contains(t, out.String(), "partial")
}

func TestTailBuffer_KeepsTail(t *testing.T) {
	tb := newTailBuffer(8)
	_, _ = tb.Write([]byte("0123456789abcdef"))
	assert.Equal(t, "89abcdef", tb.String())
}
