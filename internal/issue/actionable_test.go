// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name: "operation only",
			err: &ActionableError{
				Operation: "load lxdock file",
			},
			expected: "failed to load lxdock file",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "load lxdock file",
				Resource:  "./.lxdock.yml",
			},
			expected: "failed to load lxdock file: ./.lxdock.yml",
		},
		{
			name: "operation with cause",
			err: &ActionableError{
				Operation: "start container",
				Cause:     errors.New("LXD API error"),
			},
			expected: "failed to start container: LXD API error",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "create container",
				Resource:  "myproject-web",
				Cause:     errors.New("image not found"),
			},
			expected: "failed to create container: myproject-web: image not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	cause := errors.New("socket not found")
	err := &ActionableError{
		Operation: "connect to LXD",
		Cause:     cause,
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap() should return the cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	inner := errors.New("permission denied")
	err := &ActionableError{
		Operation:   "update /etc/hosts",
		Resource:    "/etc/hosts",
		Suggestions: []string{"Re-run with sudo", "Drop the hostnames key"},
		Cause:       inner,
	}

	plain := err.Format(false)
	if !strings.Contains(plain, "failed to update /etc/hosts") {
		t.Errorf("Format(false) missing message: %q", plain)
	}
	if !strings.Contains(plain, "• Re-run with sudo") {
		t.Errorf("Format(false) missing suggestion: %q", plain)
	}
	if strings.Contains(plain, "Error chain") {
		t.Error("Format(false) should not include the error chain")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") {
		t.Errorf("Format(true) missing error chain: %q", verbose)
	}
	if !strings.Contains(verbose, "1. permission denied") {
		t.Errorf("Format(true) missing chain entry: %q", verbose)
	}
}

func TestActionableError_HasSuggestions(t *testing.T) {
	withSuggestions := &ActionableError{
		Operation:   "provision container",
		Suggestions: []string{"Install ansible"},
	}
	if !withSuggestions.HasSuggestions() {
		t.Error("HasSuggestions() = false, want true")
	}

	without := &ActionableError{Operation: "provision container"}
	if without.HasSuggestions() {
		t.Error("HasSuggestions() = true, want false")
	}
}

func TestErrorContext_Build(t *testing.T) {
	cause := errors.New("boom")
	err := NewErrorContext().
		WithOperation("destroy container").
		WithResource("myproject-web").
		WithSuggestion("Check 'lxdock status'").
		WithSuggestions("Try 'lxc delete' directly", "Re-run with --verbose").
		Wrap(cause).
		Build()

	if err == nil {
		t.Fatal("Build() returned nil with an operation set")
	}
	if err.Operation != "destroy container" {
		t.Errorf("Operation = %q", err.Operation)
	}
	if err.Resource != "myproject-web" {
		t.Errorf("Resource = %q", err.Resource)
	}
	if len(err.Suggestions) != 3 {
		t.Errorf("len(Suggestions) = %d, want 3", len(err.Suggestions))
	}
	if err.Cause != cause {
		t.Error("Cause not carried through")
	}
}

func TestErrorContext_BuildWithoutOperation(t *testing.T) {
	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without an operation should return nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without an operation should return nil")
	}
}

func TestWrapHelpers(t *testing.T) {
	if WrapWithOperation(nil, "halt container") != nil {
		t.Error("WrapWithOperation(nil, ...) should return nil")
	}
	if WrapWithContext(nil, "halt container", "web") != nil {
		t.Error("WrapWithContext(nil, ...) should return nil")
	}

	cause := errors.New("timeout")
	err := WrapWithContext(cause, "halt container", "myproject-web")
	if err == nil {
		t.Fatal("WrapWithContext returned nil for non-nil cause")
	}
	if got := err.Error(); got != "failed to halt container: myproject-web: timeout" {
		t.Errorf("Error() = %q", got)
	}
}
