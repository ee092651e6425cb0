package environment

import (
	"path/filepath"
	"testing"

	"pakt/pkg/packages"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "env.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func pkg(t *testing.T, name, version string) *packages.Package {
	t.Helper()
	p, err := packages.New(name, version)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestAddAndList(t *testing.T) {
	s := openStore(t)

	if err := s.Add(pkg(t, "zeta", "1.0.0")); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(pkg(t, "alpha", "2.0.0")); err != nil {
		t.Fatal(err)
	}

	installed, err := s.Installed()
	if err != nil {
		t.Fatal(err)
	}
	if len(installed) != 2 {
		t.Fatalf("expected 2 packages, got %d", len(installed))
	}
	if installed[0].Name != "alpha" || installed[1].Name != "zeta" {
		t.Errorf("list not sorted by name: %v, %v", installed[0].Name, installed[1].Name)
	}
	if installed[0].Version.String() != "2.0.0" {
		t.Errorf("version round-trip failed: %s", installed[0].Version)
	}
}

func TestAddReplacesSameName(t *testing.T) {
	s := openStore(t)

	if err := s.Add(pkg(t, "a", "1.0.0")); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(pkg(t, "a", "2.0.0")); err != nil {
		t.Fatal(err)
	}

	installed, err := s.Installed()
	if err != nil {
		t.Fatal(err)
	}
	if len(installed) != 1 || installed[0].Version.String() != "2.0.0" {
		t.Errorf("expected single a@2.0.0, got %v", installed)
	}
}

func TestLegacyIndexSourceDropsOnInstall(t *testing.T) {
	s := openStore(t)

	p := pkg(t, "legacy-pkg", "1.0.0")
	p.SourceType = packages.SourceLegacyIndex
	p.SourceURL = "https://legacy.example.org/simple"

	if err := s.Add(p); err != nil {
		t.Fatal(err)
	}

	installed, err := s.Installed()
	if err != nil {
		t.Fatal(err)
	}
	if installed[0].SourceType != packages.SourceNone {
		t.Errorf("installed legacy package kept source type %q", installed[0].SourceType)
	}
	if installed[0].SourceURL != "" {
		t.Errorf("installed legacy package kept source url %q", installed[0].SourceURL)
	}

	// The caller's package value must stay untouched.
	if p.SourceType != packages.SourceLegacyIndex {
		t.Error("Add mutated its argument")
	}
}

func TestRemove(t *testing.T) {
	s := openStore(t)

	if err := s.Add(pkg(t, "a", "1.0.0")); err != nil {
		t.Fatal(err)
	}
	if err := s.Remove("a"); err != nil {
		t.Fatal(err)
	}
	if err := s.Remove("never-installed"); err != nil {
		t.Errorf("removing an absent package should not fail: %v", err)
	}

	installed, err := s.Installed()
	if err != nil {
		t.Fatal(err)
	}
	if len(installed) != 0 {
		t.Errorf("expected empty environment, got %v", installed)
	}
}

func TestApplied(t *testing.T) {
	s := openStore(t)

	applied, err := s.Applied()
	if err != nil {
		t.Fatal(err)
	}
	if len(applied) != 0 {
		t.Errorf("fresh store should have no applied set")
	}

	if err := s.SetApplied([]*packages.Package{pkg(t, "b", "1.0.0"), pkg(t, "a", "1.0.0")}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetApplied([]*packages.Package{pkg(t, "c", "2.0.0")}); err != nil {
		t.Fatal(err)
	}

	applied, err = s.Applied()
	if err != nil {
		t.Fatal(err)
	}
	if len(applied) != 1 || applied[0].Name != "c" {
		t.Errorf("SetApplied should replace the previous set, got %v", applied)
	}
}
