// Package pipeline orchestrates one generation run: directory skeleton,
// file artifacts, dependency installation, and post-generation hooks, with
// all-or-nothing semantics across the first three stages.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stackforge/stackforge/internal/config"
	"github.com/stackforge/stackforge/internal/exec"
	"github.com/stackforge/stackforge/internal/output"
	"github.com/stackforge/stackforge/internal/pathguard"
	"github.com/stackforge/stackforge/internal/project"
	"github.com/stackforge/stackforge/internal/store"
	"github.com/stackforge/stackforge/internal/templates"
	"github.com/stackforge/stackforge/internal/tools"
)

// Stage identifies where a pipeline is in its lifecycle.
type Stage int

const (
	StageIdle Stage = iota
	StageCreatingStructure
	StageWritingFiles
	StageInstallingDependencies
	StageRunningPostHooks
	StageCommitted
	StageRollingBack
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageCreatingStructure:
		return "creating-structure"
	case StageWritingFiles:
		return "writing-files"
	case StageInstallingDependencies:
		return "installing-dependencies"
	case StageRunningPostHooks:
		return "running-post-hooks"
	case StageCommitted:
		return "committed"
	case StageRollingBack:
		return "rolling-back"
	case StageFailed:
		return "failed"
	}
	return "unknown"
}

// HookPolicy decides whether a post-hook failure aborts the run.
type HookPolicy int

const (
	// HookAdvisory reports hook failures as warnings; the project stays
	// committed. This is the default: a project without a git repo is
	// still fully usable.
	HookAdvisory HookPolicy = iota
	// HookFatal rolls the run back on hook failure.
	HookFatal
)

// Options configures a pipeline run beyond the frozen project Config.
type Options struct {
	TargetDir  string          // parent directory for the project root; default "."
	Settings   config.Settings // tool settings (package manager, timeout, git binary)
	HookPolicy HookPolicy
	Templates  templates.Options

	// Executor overrides the default executor. Tests substitute one with
	// a mocked command constructor.
	Executor *exec.Executor
}

// Pipeline drives one generation run. It is single-use: after Generate
// returns, the pipeline is either Committed or Failed.
type Pipeline struct {
	cfg   *config.Config
	opts  Options
	root  string // absolute project root
	fs    *store.Store
	ex    *exec.Executor
	hooks *exec.Registry

	stage    Stage
	warnings []string
}

// New validates the target location and prepares a pipeline. It refuses a
// pre-existing project root: a failed run is retried only against a clean
// target, never merged into leftovers.
func New(cfg *config.Config, opts Options) (*Pipeline, error) {
	if opts.TargetDir == "" {
		opts.TargetDir = "."
	}
	target, err := filepath.Abs(opts.TargetDir)
	if err != nil {
		return nil, fmt.Errorf("resolving target directory: %w", err)
	}

	root, err := pathguard.Within(target, cfg.ProjectName)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(root); err == nil {
		return nil, fmt.Errorf("target %s already exists; remove it or choose another name", root)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking target %s: %w", root, err)
	}

	if project.IsProject(target) {
		return nil, fmt.Errorf("target directory is already a stackforge project; nested projects are not supported")
	}

	ex := opts.Executor
	if ex == nil {
		ex = exec.NewExecutor(&exec.Options{
			Stdout:  exec.NewStreamingWriter(os.Stdout, "  │ ", "240"),
			Stderr:  exec.NewStreamingWriter(os.Stderr, "  │ ", "240"),
			Timeout: opts.Settings.InstallTimeout,
		})
	}

	p := &Pipeline{
		cfg:   cfg,
		opts:  opts,
		root:  root,
		fs:    store.New(target),
		ex:    ex,
		hooks: exec.NewRegistry(),
	}

	if cfg.InitGit {
		hook := tools.GitInit{Binary: opts.Settings.GitBinary, Dir: root}
		if err := p.hooks.Register(hook); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Root returns the absolute project root the pipeline generates into.
func (p *Pipeline) Root() string { return p.root }

// Stage returns the pipeline's current lifecycle stage.
func (p *Pipeline) Stage() Stage { return p.stage }

// Warnings returns advisory failures recorded during the run.
func (p *Pipeline) Warnings() []string {
	out := make([]string, len(p.warnings))
	copy(out, p.warnings)
	return out
}

// AddHook registers an additional post-generation hook.
func (p *Pipeline) AddHook(hook exec.CommandWrapper) error {
	return p.hooks.Register(hook)
}

// Generate runs the four stages in order. A failure in structure creation,
// file writes, or dependency installation rolls back everything created so
// far and returns the causal error; rollback's own failures are reported
// as warnings, never substituted for the cause. Post-hook failures follow
// the configured HookPolicy.
func (p *Pipeline) Generate(ctx context.Context) error {
	if p.stage != StageIdle {
		return fmt.Errorf("pipeline already ran (stage %s)", p.stage)
	}

	// Resolve artifacts up front: a template error costs nothing to
	// abort on because the filesystem is still untouched.
	artifacts, err := templates.Resolve(p.cfg, p.opts.Templates)
	if err != nil {
		p.stage = StageFailed
		return err
	}

	p.stage = StageCreatingStructure
	if err := p.createStructure(); err != nil {
		return p.fail(err)
	}

	p.stage = StageWritingFiles
	if err := p.writeArtifacts(artifacts); err != nil {
		return p.fail(err)
	}

	p.stage = StageInstallingDependencies
	if err := p.installDependencies(ctx); err != nil {
		return p.fail(err)
	}

	p.stage = StageRunningPostHooks
	if err := p.runPostHooks(ctx); err != nil {
		return p.fail(err)
	}

	p.fs.Commit()
	p.stage = StageCommitted
	return nil
}

// fail rolls back every ledger entry and surfaces the causal error.
func (p *Pipeline) fail(cause error) error {
	p.stage = StageRollingBack
	output.Verbose(fmt.Sprintf("rolling back after: %v", cause))

	if rbErr := p.fs.Rollback(); rbErr != nil {
		// Partial rollback is strictly better than none: report the
		// survivors and keep the causal error as the result.
		p.warnings = append(p.warnings, rbErr.Error())
		output.Warn(rbErr.Error())
	}

	p.stage = StageFailed
	return cause
}

func (p *Pipeline) createStructure() error {
	if err := p.fs.CreateDir(p.cfg.ProjectName); err != nil {
		return err
	}
	for _, dir := range SkeletonDirs(p.cfg) {
		if err := p.fs.CreateDir(filepath.Join(p.cfg.ProjectName, dir)); err != nil {
			return err
		}
	}
	output.Verbose(fmt.Sprintf("created skeleton under %s", p.root))
	return nil
}

func (p *Pipeline) writeArtifacts(artifacts []templates.Artifact) error {
	for _, a := range artifacts {
		if err := p.fs.WriteFile(filepath.Join(p.cfg.ProjectName, a.Path), a.Content, a.Mode); err != nil {
			return err
		}
		output.Verbose(fmt.Sprintf("wrote %s (%d bytes)", a.Path, len(a.Content)))
	}
	return nil
}

// installDependencies issues one package-manager invocation per derived
// list, runtime first. The first failure short-circuits the second: the
// run is already doomed and a second install would only prolong it.
//
// Verbose runs stream the package manager's output; otherwise each
// invocation renders as a progress spinner.
func (p *Pipeline) installDependencies(ctx context.Context) error {
	runtime, dev := Packages(p.cfg)

	installs := []tools.Install{
		{Manager: p.opts.Settings.PackageManager, Dir: p.root, Packages: runtime},
		{Manager: p.opts.Settings.PackageManager, Dir: p.root, Packages: dev, Dev: true},
	}

	for _, inst := range installs {
		if len(inst.Packages) == 0 {
			continue
		}
		if output.IsVerbose() {
			output.Info(inst.Description())
			output.Verbose(inst.String())
			if err := inst.Execute(ctx, p.ex); err != nil {
				return err
			}
			continue
		}
		if err := inst.ExecuteWithSpinner(ctx, p.ex); err != nil {
			return err
		}
	}
	return nil
}

// runPostHooks runs every registered hook. Under HookAdvisory a failure is
// recorded and reported but the run still commits.
func (p *Pipeline) runPostHooks(ctx context.Context) error {
	descriptions := p.hooks.ListWithDescriptions()
	for _, name := range p.hooks.List() {
		output.Verbose(fmt.Sprintf("post-hook %s: %s", name, descriptions[name]))
		if err := p.hooks.Execute(ctx, name, p.ex); err != nil {
			if p.opts.HookPolicy == HookFatal {
				return fmt.Errorf("post-hook %s: %w", name, err)
			}
			msg := fmt.Sprintf("post-hook %s failed: %v", name, err)
			p.warnings = append(p.warnings, msg)
			output.Warn(msg)
		}
	}
	return nil
}
