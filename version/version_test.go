package version

import "testing"

func TestGetFullVersion(t *testing.T) {
	defer func(v, c, d string) { Version, GitCommit, BuildDate = v, c, d }(Version, GitCommit, BuildDate)

	if got := GetFullVersion(); got != "dev" {
		t.Errorf("expected dev, got %q", got)
	}

	Version, GitCommit, BuildDate = "1.2.0", "abc1234", "2026-10-17"
	if got, want := GetFullVersion(), "1.2.0 (commit abc1234, built 2026-10-17)"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
