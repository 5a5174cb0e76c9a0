// SPDX-License-Identifier: MPL-2.0

package lxd

import (
	"errors"
	"io"

	"github.com/canonical/lxd/shared/api"
)

// ErrNotFound is returned by GetInstance when the instance does not exist.
var ErrNotFound = errors.New("instance not found")

type (
	// ImageSpec describes where a container image comes from.
	ImageSpec struct {
		// Alias is the image alias (e.g. "ubuntu/jammy").
		Alias string
		// Server is the remote image server URL. Empty means the image
		// is resolved through a local alias.
		Server string
		// Protocol is "simplestreams" or "lxd". Ignored for local images.
		Protocol string
	}

	// InstanceSpec describes an instance to create.
	InstanceSpec struct {
		// Name is the LXD instance name.
		Name string
		// Image selects the source image.
		Image ImageSpec
		// Config holds instance config keys (security.privileged,
		// user.* markers, environment.* overrides, ...).
		Config map[string]string
		// Profiles are the LXD profiles applied to the instance.
		Profiles []string
		// Devices are the instance-local devices (shares).
		Devices map[string]map[string]string
	}

	// ExecOptions modifies a non-interactive exec.
	ExecOptions struct {
		// Env is the extra environment for the command.
		Env map[string]string
		// Stdin, Stdout and Stderr wire the command's streams. Any of
		// them may be nil.
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// Client is the surface of the LXD API used by lxdock. The
	// production implementation talks to the local daemon; tests
	// substitute a fake.
	Client interface {
		// GetInstance fetches an instance. Returns ErrNotFound when it
		// does not exist.
		GetInstance(name string) (*api.Instance, error)

		// CreateInstance creates a stopped instance from its image.
		CreateInstance(spec InstanceSpec) error

		// StartInstance starts the instance and waits for completion.
		StartInstance(name string) error

		// StopInstance stops the instance, waiting up to timeout
		// seconds; force kills instead of signaling.
		StopInstance(name string, timeout int, force bool) error

		// DeleteInstance removes the instance and waits for completion.
		DeleteInstance(name string) error

		// GetInstanceState fetches the instance runtime state.
		GetInstanceState(name string) (*api.InstanceState, error)

		// UpdateInstance saves config/device/profile changes.
		UpdateInstance(name string, put api.InstancePut) error

		// Exec runs a command in the instance and returns its exit
		// code. The error is non-nil only for transport failures, not
		// for non-zero exits.
		Exec(name string, command []string, opts ExecOptions) (int, error)

		// PushFile writes a file into the instance filesystem.
		PushFile(name, path string, mode int, content io.Reader) error
	}
)
