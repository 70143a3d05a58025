// Package templates turns a frozen config.Config into the list of file
// artifacts the pipeline materializes. The literal payloads live in
// embedded .tmpl files; this package only decides which of them apply and
// renders them.
package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/stackforge/stackforge/internal/config"
	"github.com/stackforge/stackforge/internal/project"
)

//go:embed all:payload
var templateFS embed.FS

// Artifact is one generated file: destination path relative to the
// project root, rendered content, and permission mode.
type Artifact struct {
	Path    string
	Content []byte
	Mode    fs.FileMode
}

// Options carries per-run inputs that are not part of the frozen Config.
type Options struct {
	ToolVersion string
	DBPassword  string // written into .env only, never into .env.example
}

// templateData is what the .tmpl payloads see.
type templateData struct {
	Name       string
	Port       int
	Datastore  string
	DBName     string
	DBPassword string
	IsDynamic  bool
	IsStatic   bool
	IsAPI      bool
	Features   config.Features
}

// fileSpec declares one candidate artifact: its template source, its
// destination, and the condition under which it is generated.
type fileSpec struct {
	src  string
	dest string
	mode fs.FileMode
	when func(*config.Config) bool // nil means always
}

func whenDatastore(cfg *config.Config) bool { return cfg.Datastore != config.DatastoreNone }
func whenDynamic(cfg *config.Config) bool   { return cfg.Template == config.TemplateDynamic }
func whenStatic(cfg *config.Config) bool    { return cfg.Template == config.TemplateStatic }
func whenViews(cfg *config.Config) bool     { return cfg.Template != config.TemplateAPI }

var fileSpecs = []fileSpec{
	{src: "package.json.tmpl", dest: "package.json"},
	{src: "server.js.tmpl", dest: "server.js"},
	{src: "app.js.tmpl", dest: "source/app.js"},
	{src: "routes_index.js.tmpl", dest: "source/routes/index.js"},
	{src: "error_handler.js.tmpl", dest: "source/middleware/error-handler.js"},
	{src: "logger.js.tmpl", dest: "source/utilities/logger.js"},
	{src: "env_config.js.tmpl", dest: "source/config/env.js"},
	{src: "env.tmpl", dest: ".env", mode: 0o600},
	{src: "env.example.tmpl", dest: ".env.example"},
	{src: "gitignore.tmpl", dest: ".gitignore"},
	{src: "readme.md.tmpl", dest: "README.md"},
	{src: "database.js.tmpl", dest: "source/config/database.js", when: whenDatastore},
	{src: "auth.js.tmpl", dest: "source/middleware/auth.js", when: func(c *config.Config) bool { return c.Features.Auth }},
	{src: "swagger.js.tmpl", dest: "source/config/swagger.js", when: func(c *config.Config) bool { return c.Features.APIDocs }},
	{src: "eslintrc.json.tmpl", dest: ".eslintrc.json", when: func(c *config.Config) bool { return c.Features.Lint }},
	{src: "prettierrc.json.tmpl", dest: ".prettierrc", when: func(c *config.Config) bool { return c.Features.Lint }},
	{src: "health.test.js.tmpl", dest: "tests/health.test.js", when: func(c *config.Config) bool { return c.Features.Testing }},
	{src: "dockerfile.tmpl", dest: "Dockerfile", when: func(c *config.Config) bool { return c.Features.Docker }},
	{src: "dockerignore.tmpl", dest: ".dockerignore", when: func(c *config.Config) bool { return c.Features.Docker }},
	{src: "docker-compose.yml.tmpl", dest: "docker-compose.yml", when: func(c *config.Config) bool { return c.Features.Docker }},
	{src: "index.ejs.tmpl", dest: "views/index.ejs", when: whenDynamic},
	{src: "index.html.tmpl", dest: "public/index.html", when: whenStatic},
	{src: "main.css.tmpl", dest: "assets/styles/main.css", when: whenViews},
}

// Resolve renders every artifact that applies to cfg, in a stable order.
// The stackforge.yml manifest is always the final artifact.
func Resolve(cfg *config.Config, opts Options) ([]Artifact, error) {
	r := NewRenderer()
	data := templateData{
		Name:       cfg.ProjectName,
		Port:       cfg.Port,
		Datastore:  string(cfg.Datastore),
		DBName:     strings.ReplaceAll(cfg.ProjectName, "-", "_"),
		DBPassword: opts.DBPassword,
		IsDynamic:  cfg.Template == config.TemplateDynamic,
		IsStatic:   cfg.Template == config.TemplateStatic,
		IsAPI:      cfg.Template == config.TemplateAPI,
		Features:   cfg.Features,
	}

	var artifacts []Artifact
	for _, spec := range fileSpecs {
		if spec.when != nil && !spec.when(cfg) {
			continue
		}

		content, err := r.RenderFS(templateFS, "payload/"+spec.src, data)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", spec.dest, err)
		}

		mode := spec.mode
		if mode == 0 {
			mode = 0o644
		}
		artifacts = append(artifacts, Artifact{Path: spec.dest, Content: content, Mode: mode})
	}

	manifest, err := project.NewManifest(cfg, opts.ToolVersion).Marshal()
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, Artifact{Path: project.ManifestName, Content: manifest, Mode: 0o644})

	return artifacts, nil
}
