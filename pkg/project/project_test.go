package project

import (
	"os"
	"path/filepath"
	"testing"

	"pakt/pkg/packages"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeFile(t, "pakt.toml", `
[project]
name = "My_Project"
version = "0.3.0"

[project.extras]
docs = ["Sphinx", "myst_parser"]
`)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}

	root, err := m.RootPackage()
	if err != nil {
		t.Fatal(err)
	}
	if root.Name != "my-project" {
		t.Errorf("root name = %q, want my-project", root.Name)
	}
	if root.Version.String() != "0.3.0" {
		t.Errorf("root version = %s", root.Version)
	}

	deps, ok := root.Extras["docs"]
	if !ok {
		t.Fatal("extras missing docs")
	}
	if len(deps) != 2 || deps[0] != "sphinx" || deps[1] != "myst-parser" {
		t.Errorf("docs extra = %v", deps)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadManifest(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing manifest")
		}
	})

	t.Run("missing project name", func(t *testing.T) {
		path := writeFile(t, "pakt.toml", `[project]
version = "1.0.0"`)
		if _, err := LoadManifest(path); err == nil {
			t.Error("expected error for nameless project")
		}
	})
}

func TestLoadLock(t *testing.T) {
	path := writeFile(t, "pakt.lock", `
[[package]]
name = "requests"
version = "2.31.0"
priority = 2
requires = ["urllib3", "certifi"]

[[package]]
name = "urllib3"
version = "2.0.4"
priority = 1

[[package]]
name = "local-lib"
version = "0.1.0"
optional = true

[package.source]
type = "git"
url = "https://example.org/local-lib.git"
reference = "main"
`)

	l, err := LoadLock(path)
	if err != nil {
		t.Fatal(err)
	}

	result, err := l.ResultPackages()
	if err != nil {
		t.Fatal(err)
	}
	if len(result) != 3 {
		t.Fatalf("expected 3 packages, got %d", len(result))
	}

	req := result[0]
	if req.Package.Name != "requests" || req.Priority != 2 {
		t.Errorf("first entry = %s priority %d", req.Package.Name, req.Priority)
	}
	if len(req.Package.Requires) != 2 || req.Package.Requires[0] != "urllib3" {
		t.Errorf("requires = %v", req.Package.Requires)
	}

	local := result[2].Package
	if !local.Optional {
		t.Error("local-lib should be optional")
	}
	if local.SourceType != packages.SourceGit || local.SourceReference != "main" {
		t.Errorf("source = %s %s %s", local.SourceType, local.SourceURL, local.SourceReference)
	}
}

func TestLockInvalidVersion(t *testing.T) {
	path := writeFile(t, "pakt.lock", `
[[package]]
name = "broken"
version = "oops"
`)

	l, err := LoadLock(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.ResultPackages(); err == nil {
		t.Error("expected error for invalid locked version")
	}
}
