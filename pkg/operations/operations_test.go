package operations

import (
	"testing"

	"pakt/pkg/packages"
)

func pkg(t *testing.T, name, version string) *packages.Package {
	t.Helper()
	p, err := packages.New(name, version)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestJobTypes(t *testing.T) {
	a := pkg(t, "a", "1.0.0")
	b := pkg(t, "a", "2.0.0")

	tests := []struct {
		op   Operation
		want string
	}{
		{NewInstall(a, 0), "install"},
		{NewUpdate(a, b, 0), "update"},
		{NewUninstall(a), "uninstall"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.op.JobType(); got != tt.want {
				t.Errorf("JobType() = %q, want %q", got, tt.want)
			}
			if tt.op.Skipped() {
				t.Error("new operation should not be skipped")
			}
		})
	}
}

func TestSkip(t *testing.T) {
	a := pkg(t, "a", "1.0.0")

	op := NewInstall(a, 5).Skip("Already installed")
	if !op.Skipped() {
		t.Error("Skip() should mark the operation skipped")
	}
	if op.SkipReason() != "Already installed" {
		t.Errorf("SkipReason() = %q", op.SkipReason())
	}
	if op.Priority() != 5 {
		t.Errorf("Priority() = %d, want 5", op.Priority())
	}
}

func TestUpdateSubject(t *testing.T) {
	from := pkg(t, "a", "1.0.0")
	to := pkg(t, "a", "2.0.0")

	op := NewUpdate(from, to, 1)
	if op.Package() != to {
		t.Error("Package() must return the destination package")
	}
	if op.InitialPackage() != from || op.TargetPackage() != to {
		t.Error("update endpoints wrong")
	}
}

func TestStrings(t *testing.T) {
	a := pkg(t, "a", "1.0.0")
	b := pkg(t, "a", "2.0.0")

	if got := NewInstall(a, 0).String(); got != "Installing a (1.0.0)" {
		t.Errorf("install String() = %q", got)
	}
	if got := NewUpdate(a, b, 0).String(); got != "Updating a (1.0.0) to a (2.0.0)" {
		t.Errorf("update String() = %q", got)
	}
	if got := NewUninstall(a).String(); got != "Uninstalling a (1.0.0)" {
		t.Errorf("uninstall String() = %q", got)
	}
}
