package tools

import (
	"bytes"
	"context"
	"fmt"
	"os"
	osexec "os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackforge/stackforge/internal/exec"
)

// TestHelperProcess stands in for npm and git.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	fmt.Println("ok")
	os.Exit(0)
}

// recordingExecutor returns an executor whose invocations are captured.
func recordingExecutor(calls *[][]string) *exec.Executor {
	return exec.NewExecutor(&exec.Options{
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
		CommandFunc: func(name string, args ...string) *osexec.Cmd {
			*calls = append(*calls, append([]string{name}, args...))
			cs := []string{"-test.run=TestHelperProcess", "--", name}
			cmd := osexec.Command(os.Args[0], cs...)
			cmd.Env = []string{"GO_WANT_HELPER_PROCESS=1"}
			return cmd
		},
	})
}

func TestInstall_CommandLine(t *testing.T) {
	var calls [][]string
	ex := recordingExecutor(&calls)

	inst := Install{
		Manager:  "npm",
		Dir:      t.TempDir(),
		Packages: []string{"express", "dotenv"},
	}
	require.NoError(t, inst.Execute(context.Background(), ex))

	require.Len(t, calls, 1)
	assert.Equal(t, []string{"npm", "install", "express", "dotenv"}, calls[0])
}

func TestInstall_DevFlag(t *testing.T) {
	var calls [][]string
	ex := recordingExecutor(&calls)

	inst := Install{
		Manager:  "npm",
		Dir:      t.TempDir(),
		Packages: []string{"jest"},
		Dev:      true,
	}
	require.NoError(t, inst.Execute(context.Background(), ex))

	require.Len(t, calls, 1)
	assert.Equal(t, []string{"npm", "install", "--save-dev", "jest"}, calls[0])
	assert.Equal(t, "install-dev-dependencies", inst.Name())
}

func TestInstall_SpinnerRunsSameCommandLine(t *testing.T) {
	var calls [][]string
	ex := recordingExecutor(&calls)

	inst := Install{
		Manager:  "npm",
		Dir:      t.TempDir(),
		Packages: []string{"express"},
	}
	require.NoError(t, inst.ExecuteWithSpinner(context.Background(), ex))

	require.Len(t, calls, 1)
	assert.Equal(t, []string{"npm", "install", "express"}, calls[0])
}

func TestInstall_EmptyPackageSetSkipsInvocation(t *testing.T) {
	var calls [][]string
	ex := recordingExecutor(&calls)

	inst := Install{Manager: "npm", Dir: t.TempDir()}
	require.NoError(t, inst.Execute(context.Background(), ex))
	assert.Empty(t, calls)
}

func TestGitInit_CommandLine(t *testing.T) {
	var calls [][]string
	ex := recordingExecutor(&calls)

	hook := GitInit{Binary: "git", Dir: t.TempDir()}
	require.NoError(t, hook.Execute(context.Background(), ex))

	require.Len(t, calls, 1)
	assert.Equal(t, []string{"git", "init"}, calls[0])
	assert.Equal(t, "git-init", hook.Name())
}
