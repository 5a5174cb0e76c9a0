// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	// Verify all IDs are unique and sequential
	ids := []Id{
		ProjectFileNotFoundId,
		ProjectFileInvalidId,
		LXDConnectionFailedId,
		ContainerNotCreatedId,
		ContainerNotRunningId,
		ContainerOperationFailedId,
		ProvisionerToolMissingId,
		ConfigLoadFailedId,
		EtcHostsNotWritableId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	// Verify IDs start at 1 (iota + 1)
	if ProjectFileNotFoundId != 1 {
		t.Errorf("ProjectFileNotFoundId = %d, want 1", ProjectFileNotFoundId)
	}
}

func TestGet_AllRegistered(t *testing.T) {
	for id := ProjectFileNotFoundId; id <= EtcHostsNotWritableId; id++ {
		if Get(id) == nil {
			t.Errorf("Get(%d) returned nil; issue not registered", id)
		}
	}
}

func TestIssue_Id(t *testing.T) {
	issue := Get(ProjectFileNotFoundId)
	if issue == nil {
		t.Fatal("Get(ProjectFileNotFoundId) returned nil")
	}

	if issue.Id() != ProjectFileNotFoundId {
		t.Errorf("issue.Id() = %d, want %d", issue.Id(), ProjectFileNotFoundId)
	}
}

func TestIssue_MarkdownMsg(t *testing.T) {
	tests := []struct {
		id       Id
		contains string
	}{
		{ProjectFileNotFoundId, "No lxdock file found"},
		{ProjectFileInvalidId, "syntax errors"},
		{LXDConnectionFailedId, "LXD daemon"},
		{ContainerNotRunningId, "not running"},
		{ProvisionerToolMissingId, "ansible-playbook"},
	}

	for _, tt := range tests {
		issue := Get(tt.id)
		if issue == nil {
			t.Fatalf("Get(%d) returned nil", tt.id)
		}
		if !strings.Contains(string(issue.MarkdownMsg()), tt.contains) {
			t.Errorf("issue %d markdown should contain %q", tt.id, tt.contains)
		}
	}
}

func TestIssue_Render(t *testing.T) {
	origRender := render
	defer func() { render = origRender }()

	var rendered string
	render = func(in string, stylePath string) (string, error) {
		rendered = in
		return "rendered", nil
	}

	issue := &Issue{
		id:       ContainerOperationFailedId,
		mdMsg:    "# Boom",
		docLinks: []HttpLink{"https://example.org/docs"},
	}

	out, err := issue.Render("dark")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if out != "rendered" {
		t.Errorf("Render() = %q, want %q", out, "rendered")
	}
	if !strings.Contains(rendered, "# Boom") {
		t.Error("rendered markdown should contain the message body")
	}
	if !strings.Contains(rendered, "See also") {
		t.Error("rendered markdown should contain the links footer")
	}
}

func TestValues(t *testing.T) {
	values := Values()
	if len(values) != len(issues) {
		t.Errorf("Values() returned %d issues, want %d", len(values), len(issues))
	}
}
