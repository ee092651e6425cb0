package extras

import (
	"testing"

	"pakt/pkg/packages"
)

func pkg(t *testing.T, name, version string, requires ...packages.NormalizedName) *packages.Package {
	t.Helper()
	p, err := packages.New(name, version)
	if err != nil {
		t.Fatal(err)
	}
	p.Requires = requires
	return p
}

func TestGetExtraPackageNames(t *testing.T) {
	// docs extra pulls in sphinx, which itself requires jinja2 and babel;
	// jinja2 requires markupsafe.
	resolved := []*packages.Package{
		pkg(t, "sphinx", "5.0.0", "jinja2", "babel"),
		pkg(t, "jinja2", "3.1.0", "markupsafe"),
		pkg(t, "markupsafe", "2.1.0"),
		pkg(t, "babel", "2.12.0"),
		pkg(t, "requests", "2.31.0"),
	}
	extrasMap := map[packages.NormalizedName][]packages.NormalizedName{
		"docs": {"sphinx"},
		"http": {"requests"},
	}

	t.Run("empty selection yields empty set", func(t *testing.T) {
		got := GetExtraPackageNames(resolved, extrasMap, nil)
		if len(got) != 0 {
			t.Errorf("expected empty set, got %v", got)
		}
		got = GetExtraPackageNames(resolved, extrasMap, map[packages.NormalizedName]struct{}{})
		if len(got) != 0 {
			t.Errorf("expected empty set, got %v", got)
		}
	})

	t.Run("transitive closure of one extra", func(t *testing.T) {
		got := GetExtraPackageNames(resolved, extrasMap, map[packages.NormalizedName]struct{}{"docs": {}})
		want := []packages.NormalizedName{"sphinx", "jinja2", "markupsafe", "babel"}
		if len(got) != len(want) {
			t.Fatalf("closure = %v, want %v", got, want)
		}
		for _, name := range want {
			if _, ok := got[name]; !ok {
				t.Errorf("closure missing %q", name)
			}
		}
		if _, ok := got["requests"]; ok {
			t.Error("closure must not include packages of unselected extras")
		}
	})

	t.Run("multiple extras union", func(t *testing.T) {
		got := GetExtraPackageNames(resolved, extrasMap, map[packages.NormalizedName]struct{}{
			"docs": {},
			"http": {},
		})
		if _, ok := got["requests"]; !ok {
			t.Error("closure missing requests")
		}
		if len(got) != 5 {
			t.Errorf("closure size = %d, want 5", len(got))
		}
	})

	t.Run("unknown extra is ignored", func(t *testing.T) {
		got := GetExtraPackageNames(resolved, extrasMap, map[packages.NormalizedName]struct{}{"nope": {}})
		if len(got) != 0 {
			t.Errorf("expected empty set, got %v", got)
		}
	})

	t.Run("dependency cycles terminate", func(t *testing.T) {
		cyclic := []*packages.Package{
			pkg(t, "x", "1.0.0", "y"),
			pkg(t, "y", "1.0.0", "x"),
		}
		got := GetExtraPackageNames(cyclic, map[packages.NormalizedName][]packages.NormalizedName{
			"loop": {"x"},
		}, map[packages.NormalizedName]struct{}{"loop": {}})
		if len(got) != 2 {
			t.Errorf("closure = %v, want {x y}", got)
		}
	})
}
