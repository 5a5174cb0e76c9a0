// SPDX-License-Identifier: MPL-2.0

package lxd

import (
	"testing"

	"github.com/canonical/lxd/shared/api"
)

func TestIsRunning(t *testing.T) {
	if IsRunning(nil) {
		t.Error("IsRunning(nil) = true")
	}
	if !IsRunning(&api.Instance{StatusCode: api.Running}) {
		t.Error("IsRunning(running) = false")
	}
	if IsRunning(&api.Instance{StatusCode: api.Stopped}) {
		t.Error("IsRunning(stopped) = true")
	}
}

func TestIsStopped(t *testing.T) {
	if IsStopped(nil) {
		t.Error("IsStopped(nil) = true")
	}
	if !IsStopped(&api.Instance{StatusCode: api.Stopped}) {
		t.Error("IsStopped(stopped) = false")
	}
}

func TestIPv4(t *testing.T) {
	tests := []struct {
		name  string
		state *api.InstanceState
		want  string
	}{
		{
			name:  "nil state",
			state: nil,
			want:  "",
		},
		{
			name: "global address on eth0",
			state: &api.InstanceState{
				Network: map[string]api.InstanceStateNetwork{
					"eth0": {Addresses: []api.InstanceStateNetworkAddress{
						{Family: "inet6", Address: "fd42::1", Scope: "global"},
						{Family: "inet", Address: "10.0.3.2", Scope: "global"},
					}},
				},
			},
			want: "10.0.3.2",
		},
		{
			name: "loopback and link-local skipped",
			state: &api.InstanceState{
				Network: map[string]api.InstanceStateNetwork{
					"lo": {Addresses: []api.InstanceStateNetworkAddress{
						{Family: "inet", Address: "127.0.0.1", Scope: "local"},
					}},
					"eth0": {Addresses: []api.InstanceStateNetworkAddress{
						{Family: "inet", Address: "169.254.1.1", Scope: "link"},
					}},
				},
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IPv4(tt.state); got != tt.want {
				t.Errorf("IPv4() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSocketPath(t *testing.T) {
	t.Run("explicit path wins", func(t *testing.T) {
		t.Setenv("LXD_SOCKET", "/elsewhere/unix.socket")
		got, err := SocketPath("/explicit/unix.socket")
		if err != nil {
			t.Fatal(err)
		}
		if got != "/explicit/unix.socket" {
			t.Errorf("SocketPath() = %q", got)
		}
	})

	t.Run("LXD_SOCKET env", func(t *testing.T) {
		t.Setenv("LXD_SOCKET", "/env/unix.socket")
		got, err := SocketPath("")
		if err != nil {
			t.Fatal(err)
		}
		if got != "/env/unix.socket" {
			t.Errorf("SocketPath() = %q", got)
		}
	})

	t.Run("LXD_DIR env", func(t *testing.T) {
		t.Setenv("LXD_SOCKET", "")
		t.Setenv("LXD_DIR", "/var/custom/lxd")
		got, err := SocketPath("")
		if err != nil {
			t.Fatal(err)
		}
		if got != "/var/custom/lxd/unix.socket" {
			t.Errorf("SocketPath() = %q", got)
		}
	})
}
