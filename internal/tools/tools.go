// Package tools wraps the external programs the pipeline shells out to
// (the package manager and git) as registrable exec.CommandWrapper
// implementations.
package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/stackforge/stackforge/internal/exec"
)

// Install is one package-manager invocation: a package set, a dev flag,
// and the project directory to run in. It is ephemeral; the pipeline
// builds one per dependency list and discards it afterwards.
type Install struct {
	Manager  string // package manager binary, e.g. "npm"
	Dir      string // generated project root
	Packages []string
	Dev      bool
}

// Name returns the registry name for this invocation.
func (i Install) Name() string {
	if i.Dev {
		return "install-dev-dependencies"
	}
	return "install-dependencies"
}

// Description summarizes the invocation for listings and progress output.
func (i Install) Description() string {
	kind := "runtime"
	if i.Dev {
		kind = "development"
	}
	return fmt.Sprintf("Install %d %s packages with %s", len(i.Packages), kind, i.Manager)
}

func (i Install) args() []string {
	args := []string{"install"}
	if i.Dev {
		args = append(args, "--save-dev")
	}
	return append(args, i.Packages...)
}

// Execute runs `<manager> install [--save-dev] <packages...>` in the
// project directory, streaming output. Exit status 0 is the only success.
func (i Install) Execute(ctx context.Context, ex *exec.Executor) error {
	if len(i.Packages) == 0 {
		return nil
	}
	return ex.WithDir(i.Dir).Run(ctx, i.Manager, i.args()...)
}

// ExecuteWithSpinner runs the same invocation behind a progress spinner,
// for interactive runs where raw package-manager output would be noise.
func (i Install) ExecuteWithSpinner(ctx context.Context, ex *exec.Executor) error {
	if len(i.Packages) == 0 {
		return nil
	}
	return ex.WithDir(i.Dir).RunWithSpinner(ctx, i.Description(), i.Manager, i.args()...)
}

// String returns the full command line for verbose output.
func (i Install) String() string {
	return strings.Join(append([]string{i.Manager}, i.args()...), " ")
}

// GitInit initializes a git repository in the project root. It is the one
// current post-generation hook; its failure is advisory by default.
type GitInit struct {
	Binary string // git binary, e.g. "git"
	Dir    string // generated project root
}

func (g GitInit) Name() string { return "git-init" }

func (g GitInit) Description() string {
	return "Initialize a git repository in the project root"
}

// Execute runs `git init` in the project directory.
func (g GitInit) Execute(ctx context.Context, ex *exec.Executor) error {
	return ex.WithDir(g.Dir).Run(ctx, g.Binary, "init")
}
