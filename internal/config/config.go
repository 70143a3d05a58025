// Package config defines the frozen set of choices driving one generation
// run, plus tool-level settings for the stackforge CLI itself.
package config

import (
	"fmt"
	"regexp"
)

// TemplateMode selects the view layer of the generated project.
type TemplateMode string

const (
	// TemplateDynamic scaffolds a server-rendered app with a views/ tree.
	TemplateDynamic TemplateMode = "dynamic"
	// TemplateStatic scaffolds a static-HTML app with a public/ tree.
	TemplateStatic TemplateMode = "static"
	// TemplateAPI scaffolds a JSON API with no view layer at all.
	TemplateAPI TemplateMode = "api"
)

// ParseTemplateMode converts a user-supplied string into a TemplateMode,
// rejecting anything outside the closed set.
func ParseTemplateMode(s string) (TemplateMode, error) {
	switch TemplateMode(s) {
	case TemplateDynamic, TemplateStatic, TemplateAPI:
		return TemplateMode(s), nil
	}
	return "", fmt.Errorf("unknown template mode %q (want dynamic, static, or api)", s)
}

// Datastore selects the database wiring of the generated project.
type Datastore string

const (
	DatastoreNone     Datastore = "none"
	DatastoreMySQL    Datastore = "mysql"
	DatastorePostgres Datastore = "postgres"
	DatastoreMongo    Datastore = "mongo"
)

// ParseDatastore converts a user-supplied string into a Datastore,
// rejecting anything outside the closed set.
func ParseDatastore(s string) (Datastore, error) {
	switch Datastore(s) {
	case DatastoreNone, DatastoreMySQL, DatastorePostgres, DatastoreMongo:
		return Datastore(s), nil
	}
	return "", fmt.Errorf("unknown datastore %q (want none, mysql, postgres, or mongo)", s)
}

// Features is the set of optional capabilities baked into the generated
// project.
type Features struct {
	Auth    bool // JWT authentication middleware + packages
	Lint    bool // eslint + prettier
	Testing bool // jest + supertest
	Docker  bool // Dockerfile, docker-compose, .dockerignore
	APIDocs bool // swagger setup
}

// Config is the immutable input to one generation run. It is constructed
// once by New (or the interactive flow) and never mutated by the pipeline.
type Config struct {
	ProjectName string
	Template    TemplateMode
	Datastore   Datastore
	Features    Features
	Port        int
	InitGit     bool
}

// Project names keep to the safe subset npm and filesystems agree on.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9._-]*$`)

// New validates every field and returns a frozen Config. Illegal
// combinations are rejected here, at construction, rather than surfacing
// later as half-rendered templates.
func New(name, template, datastore string, features Features, port int, initGit bool) (*Config, error) {
	if !namePattern.MatchString(name) {
		return nil, fmt.Errorf("invalid project name %q: must start with a lowercase letter and contain only [a-z0-9._-]", name)
	}
	if len(name) > 214 {
		return nil, fmt.Errorf("invalid project name %q: exceeds 214 characters", name)
	}

	mode, err := ParseTemplateMode(template)
	if err != nil {
		return nil, err
	}

	ds, err := ParseDatastore(datastore)
	if err != nil {
		return nil, err
	}

	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid port %d: must be between 1 and 65535", port)
	}

	return &Config{
		ProjectName: name,
		Template:    mode,
		Datastore:   ds,
		Features:    features,
		Port:        port,
		InitGit:     initGit,
	}, nil
}
