package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	stackforge "github.com/stackforge/stackforge"
	"github.com/stackforge/stackforge/internal/config"
	"github.com/stackforge/stackforge/internal/input"
	"github.com/stackforge/stackforge/internal/output"
	"github.com/stackforge/stackforge/internal/pipeline"
	"github.com/stackforge/stackforge/internal/templates"
)

// NewCmd creates and returns the 'new' command for scaffolding projects.
func NewCmd() *cobra.Command {
	var (
		template    string
		datastore   string
		port        int
		auth        bool
		lint        bool
		testing     bool
		docker      bool
		apiDocs     bool
		gitInit     bool
		yes         bool
		targetDir   string
		strictHooks bool
	)

	cmd := &cobra.Command{
		Use:   "new [project-name]",
		Short: "Create a new backend project",
		Long: `Creates a new Node.js backend project with:
• Standard directory structure
• Express wiring and configuration
• Dependency installation (npm by default)
• Optional git initialization

On any failure before dependency installation completes, everything
created by the run is rolled back.

Example:
  stackforge new myapp --template api --database postgres --auth --yes`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			projectName := args[0]

			settings, err := config.LoadSettings()
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			if port == 0 {
				port = settings.DefaultPort
			}

			features := config.Features{
				Auth:    auth,
				Lint:    lint,
				Testing: testing,
				Docker:  docker,
				APIDocs: apiDocs,
			}

			dbPassword := ""
			if !yes {
				template = input.Prompt("Template mode (dynamic, static, api)", template)
				datastore = input.Prompt("Datastore (none, mysql, postgres, mongo)", datastore)
				if p, convErr := strconv.Atoi(input.Prompt("Port", strconv.Itoa(port))); convErr == nil {
					port = p
				}
				features.Auth = input.Confirm("Add JWT authentication?", features.Auth)
				features.Lint = input.Confirm("Add eslint + prettier?", features.Lint)
				features.Testing = input.Confirm("Add jest + supertest?", features.Testing)
				features.Docker = input.Confirm("Add Docker setup?", features.Docker)
				features.APIDocs = input.Confirm("Add swagger API docs?", features.APIDocs)
				gitInit = input.Confirm("Initialize a git repository?", gitInit)

				if datastore == string(config.DatastoreMySQL) || datastore == string(config.DatastorePostgres) {
					dbPassword = input.Password("Database password (written to .env only)")
				}
			}

			cfg, err := config.New(projectName, template, datastore, features, port, gitInit)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			hookPolicy := pipeline.HookAdvisory
			if strictHooks {
				hookPolicy = pipeline.HookFatal
			}

			p, err := pipeline.New(cfg, pipeline.Options{
				TargetDir:  targetDir,
				Settings:   settings,
				HookPolicy: hookPolicy,
				Templates: templates.Options{
					ToolVersion: stackforge.Version,
					DBPassword:  dbPassword,
				},
			})
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			output.Info(fmt.Sprintf("Creating project %s", projectName))
			if err := p.Generate(cmd.Context()); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			output.Success(fmt.Sprintf("Created project: %s", projectName))
			output.Info("Next steps:")
			output.Step(fmt.Sprintf("cd %s", projectName))
			output.Step("npm run dev")
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "api", "Template mode: dynamic, static, or api")
	cmd.Flags().StringVarP(&datastore, "database", "d", "none", "Datastore: none, mysql, postgres, or mongo")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port the generated server listens on (default from settings)")
	cmd.Flags().BoolVar(&auth, "auth", false, "Include JWT authentication")
	cmd.Flags().BoolVar(&lint, "lint", false, "Include eslint + prettier")
	cmd.Flags().BoolVar(&testing, "tests", false, "Include jest + supertest")
	cmd.Flags().BoolVar(&docker, "docker", false, "Include Docker setup")
	cmd.Flags().BoolVar(&apiDocs, "docs", false, "Include swagger API docs")
	cmd.Flags().BoolVar(&gitInit, "git", false, "Initialize a git repository")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip prompts and use flag values")
	cmd.Flags().StringVar(&targetDir, "dir", ".", "Parent directory to create the project in")
	cmd.Flags().BoolVar(&strictHooks, "strict-hooks", false, "Treat post-hook failures as fatal (roll back)")

	return cmd
}
