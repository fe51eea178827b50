package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func stub(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	old := readBuildInfo
	oldV, oldC, oldD := Version, Commit, Date
	t.Cleanup(func() {
		readBuildInfo = old
		Version, Commit, Date = oldV, oldC, oldD
	})
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
	Version, Commit, Date = "dev", "none", "unknown"
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		bi          *debug.BuildInfo
		wantVersion string
		wantCommit  string
	}{
		{"no build info", nil, "dev", "none"},
		{"devel build", &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, "dev", "none"},
		{"go install", &debug.BuildInfo{
			Main: debug.Module{Version: "v0.3.0"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc123"},
				{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			},
		}, "v0.3.0", "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub(t, tt.bi)
			resolve()
			if Version != tt.wantVersion || Commit != tt.wantCommit {
				t.Errorf("resolve() = %s/%s, want %s/%s", Version, Commit, tt.wantVersion, tt.wantCommit)
			}
		})
	}
}

func TestResolveKeepsLdflags(t *testing.T) {
	stub(t, &debug.BuildInfo{Main: debug.Module{Version: "v0.3.0"}})
	Version = "v9.9.9"
	resolve()
	if Version != "v9.9.9" {
		t.Errorf("Version = %s, want the ldflags value", Version)
	}
}

func TestTemplate(t *testing.T) {
	stub(t, nil)
	if got := Template(); !strings.HasPrefix(got, "{{.Name}} version dev") {
		t.Errorf("Template() = %q", got)
	}
	if got := String(); !strings.Contains(got, "commit: none") {
		t.Errorf("String() = %q", got)
	}
}
