// Package project reads and writes the stackforge.yml manifest that marks
// a directory as a stackforge-generated project.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/stackforge/stackforge/internal/config"
)

// ManifestName is the file written into every generated project root.
const ManifestName = "stackforge.yml"

// Manifest records the choices a project was generated with, so later
// tooling can detect the project and read its shape back.
type Manifest struct {
	Version string `yaml:"version"`
	Project struct {
		Name      string `yaml:"name"`
		Template  string `yaml:"template"`
		Datastore string `yaml:"datastore"`
		Port      int    `yaml:"port"`
		Features  struct {
			Auth    bool `yaml:"auth"`
			Lint    bool `yaml:"lint"`
			Testing bool `yaml:"testing"`
			Docker  bool `yaml:"docker"`
			APIDocs bool `yaml:"api_docs"`
		} `yaml:"features"`
	} `yaml:"project"`
}

// NewManifest builds a manifest from a generation config.
func NewManifest(cfg *config.Config, toolVersion string) *Manifest {
	m := &Manifest{Version: toolVersion}
	m.Project.Name = cfg.ProjectName
	m.Project.Template = string(cfg.Template)
	m.Project.Datastore = string(cfg.Datastore)
	m.Project.Port = cfg.Port
	m.Project.Features.Auth = cfg.Features.Auth
	m.Project.Features.Lint = cfg.Features.Lint
	m.Project.Features.Testing = cfg.Features.Testing
	m.Project.Features.Docker = cfg.Features.Docker
	m.Project.Features.APIDocs = cfg.Features.APIDocs
	return m
}

// Marshal renders the manifest as YAML.
func (m *Manifest) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", ManifestName, err)
	}
	return data, nil
}

// IsProject reports whether dir contains a stackforge.yml.
func IsProject(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ManifestName))
	return err == nil
}

// Detect checks for stackforge.yml in dir and parses it when present.
// Returns (found, manifest, error); a missing manifest is not an error.
func Detect(dir string) (bool, *Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil, nil
		}
		return false, nil, fmt.Errorf("reading %s: %w", ManifestName, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return false, nil, fmt.Errorf("parsing %s: %w", ManifestName, err)
	}
	return true, &m, nil
}
