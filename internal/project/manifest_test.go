package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stackforge/stackforge/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.New("demo", "api", "postgres", config.Features{Auth: true}, 8080, true)
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()

	m := NewManifest(testConfig(t), "0.3.0")
	data, err := m.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestName), data, 0o644); err != nil {
		t.Fatal(err)
	}

	found, got, err := Detect(dir)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if !found {
		t.Fatal("Detect should find the manifest")
	}
	if got.Project.Name != "demo" || got.Project.Datastore != "postgres" {
		t.Errorf("unexpected manifest: %+v", got.Project)
	}
	if !got.Project.Features.Auth {
		t.Error("auth feature flag lost in round trip")
	}
}

func TestDetect_Absent(t *testing.T) {
	found, m, err := Detect(t.TempDir())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if found || m != nil {
		t.Error("Detect should report absence without error")
	}
}

func TestIsProject(t *testing.T) {
	dir := t.TempDir()
	if IsProject(dir) {
		t.Error("empty dir should not be a project")
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte("version: 0.3.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !IsProject(dir) {
		t.Error("dir with manifest should be a project")
	}
}
