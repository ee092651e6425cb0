// Package extras computes which package names are solicited by a set of
// requested extra names: the packages an extras map seeds, plus everything
// they transitively require within the resolved set.
package extras

import "pakt/pkg/packages"

// GetExtraPackageNames returns the transitive set of package names pulled in
// by selected. Names are seeded from the extras map and expanded through each
// seeded package's requirements, restricted to the given resolved packages.
// An empty selection yields an empty set.
func GetExtraPackageNames(
	pkgs []*packages.Package,
	extrasMap map[packages.NormalizedName][]packages.NormalizedName,
	selected map[packages.NormalizedName]struct{},
) map[packages.NormalizedName]struct{} {
	names := make(map[packages.NormalizedName]struct{})
	if len(selected) == 0 {
		return names
	}

	byName := make(map[packages.NormalizedName]*packages.Package, len(pkgs))
	for _, p := range pkgs {
		byName[p.Name] = p
	}

	var walk func(name packages.NormalizedName)
	walk = func(name packages.NormalizedName) {
		if _, done := names[name]; done {
			return
		}
		names[name] = struct{}{}
		if p, ok := byName[name]; ok {
			for _, dep := range p.Requires {
				walk(dep)
			}
		}
	}

	for extra := range selected {
		for _, dep := range extrasMap[extra] {
			walk(dep)
		}
	}
	return names
}
