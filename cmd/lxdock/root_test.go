// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/jchampion/lxdock/internal/issue"
	"github.com/jchampion/lxdock/pkg/lxdockfile"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2025-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2025-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev when no build info", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "dev"
		Commit = "unknown"
		BuildDate = "unknown"

		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Run("plain error", func(t *testing.T) {
		got := formatErrorForDisplay(errors.New("boom"), false)
		if got != "boom" {
			t.Errorf("formatErrorForDisplay() = %q", got)
		}
	})

	t.Run("actionable error uses suggestions", func(t *testing.T) {
		err := issue.NewErrorContext().
			WithOperation("starting container").
			WithResource("web").
			WithSuggestion("run lxdock up").
			BuildError()
		got := formatErrorForDisplay(err, false)
		if !strings.Contains(got, "run lxdock up") {
			t.Errorf("formatErrorForDisplay() = %q, want it to contain the suggestion", got)
		}
	})
}

func TestGenerateProjectFileParses(t *testing.T) {
	content := generateProjectFile("myproject", "ubuntu/jammy")

	project, err := lxdockfile.Parse([]byte(content), ".lxdock.yml")
	if err != nil {
		t.Fatalf("generated project file does not parse: %v", err)
	}
	if project.Name != "myproject" {
		t.Errorf("project name = %q, want %q", project.Name, "myproject")
	}
	if len(project.Containers) != 1 {
		t.Fatalf("expected a single container, got %d", len(project.Containers))
	}
	if project.Containers[0].Image != "ubuntu/jammy" {
		t.Errorf("image = %q, want %q", project.Containers[0].Image, "ubuntu/jammy")
	}
}
