package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func TestGetInfo(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	Version = "1.0.0"
	Commit = "abc123def456"
	Date = "2024-01-01T12:00:00Z"
	defer func() {
		Version, Commit, Date = origVersion, origCommit, origDate
	}()

	info := GetInfo()

	if info.Version != "1.0.0" || info.Commit != "abc123def456" || info.Date != "2024-01-01T12:00:00Z" {
		t.Errorf("GetInfo() = %+v, ldflags values should win", info)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GetInfo().GoVersion = %v, want %v", info.GoVersion, runtime.Version())
	}
	if want := runtime.GOOS + "/" + runtime.GOARCH; info.Platform != want {
		t.Errorf("GetInfo().Platform = %v, want %v", info.Platform, want)
	}
}

func TestApplyBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2024-05-01T00:00:00Z"},
		},
	}

	info := Info{Version: "dev", Commit: "unknown", Date: "unknown"}
	applyBuildInfo(&info, bi)
	if info.Version != "v0.3.0" || info.Commit != "0123456789abcdef" || info.Date != "2024-05-01T00:00:00Z" {
		t.Errorf("build info not applied: %+v", info)
	}

	stamped := Info{Version: "1.2.3", Commit: "feedface", Date: "2024-01-01"}
	applyBuildInfo(&stamped, bi)
	if stamped.Version != "1.2.3" || stamped.Commit != "feedface" || stamped.Date != "2024-01-01" {
		t.Errorf("ldflags values were overwritten: %+v", stamped)
	}

	devel := Info{Version: "dev"}
	applyBuildInfo(&devel, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if devel.Version != "dev" {
		t.Errorf("(devel) should not replace dev, got %q", devel.Version)
	}
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want []string
	}{
		{
			name: "full version info",
			info: Info{
				Version:   "1.0.0",
				Commit:    "abc123def456",
				Date:      "2024-01-01T12:00:00Z",
				GoVersion: "go1.24.6",
				Platform:  "linux/amd64",
			},
			want: []string{"rehearse 1.0.0", "(abc123de)", "built 2024-01-01T12:00:00Z", "with go1.24.6", "for linux/amd64"},
		},
		{
			name: "short commit hash",
			info: Info{Version: "1.0.0", Commit: "abc123", Date: "2024-01-01", GoVersion: "go1.24.6", Platform: "darwin/arm64"},
			want: []string{"(abc123)", "darwin/arm64"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.info.String()
			for _, substr := range tt.want {
				if !strings.Contains(got, substr) {
					t.Errorf("Info.String() = %v, missing substring %v", got, substr)
				}
			}
		})
	}
}

func TestInfoShort(t *testing.T) {
	for _, v := range []string{"1.0.0", "dev", "1.0.0-rc1"} {
		if got := (Info{Version: v}).Short(); got != v {
			t.Errorf("Info.Short() = %v, want %v", got, v)
		}
	}
}
