// SPDX-License-Identifier: MPL-2.0

package lxdockfile

import (
	"errors"
	"fmt"
)

const (
	// ModePull fetches the image from a remote image server.
	ModePull Mode = "pull"
	// ModeLocal resolves the image through a local alias.
	ModeLocal Mode = "local"

	// ProtocolSimpleStreams is the simplestreams image server protocol.
	ProtocolSimpleStreams Protocol = "simplestreams"
	// ProtocolLXD is the native LXD image server protocol.
	ProtocolLXD Protocol = "lxd"

	// ProvisionerAnsible runs an ansible playbook from the host.
	ProvisionerAnsible = "ansible"
	// ProvisionerShell runs a script or inline command.
	ProvisionerShell = "shell"
	// ProvisionerPuppet applies a puppet manifest inside the guest.
	ProvisionerPuppet = "puppet"

	// SideHost runs a shell provisioning step on the host.
	SideHost = "host"
	// SideGuest runs a shell provisioning step inside the container.
	SideGuest = "guest"

	// DefaultImageServer is the image server used in pull mode when the
	// project file does not name one.
	DefaultImageServer = "https://images.linuxcontainers.org"

	// DefaultContainerName is used when a project file declares no
	// containers list and therefore describes a single container.
	DefaultContainerName = "default"
)

var (
	// ErrNotFound is returned when no project file exists in the working
	// directory or any of its parents.
	ErrNotFound = errors.New("no lxdock file found")

	// ErrInvalid is the sentinel wrapped by all schema validation errors.
	ErrInvalid = errors.New("invalid lxdock file")
)

type (
	// Mode describes how a container image is retrieved.
	Mode string

	// Protocol describes the protocol spoken with an image server.
	Protocol string

	// Share declares a host directory mounted into a container.
	Share struct {
		// Source is the host path, relative to the project directory.
		Source string `yaml:"source"`
		// Dest is the absolute mount point inside the container.
		Dest string `yaml:"dest"`
		// SetHostACL controls host-side ACL setup for the source
		// directory. Enabled unless explicitly disabled.
		SetHostACL *bool `yaml:"set_host_acl"`
	}

	// User declares a user account to create inside a container.
	User struct {
		Name     string `yaml:"name"`
		Home     string `yaml:"home"`
		Password string `yaml:"password"`
	}

	// Shell configures the user and home directory used by `lxdock shell`.
	Shell struct {
		User string `yaml:"user"`
		Home string `yaml:"home"`
	}

	// ProvisioningStep is one entry of the provisioning list. Type selects
	// the provisioner; the remaining fields are interpreted per type.
	ProvisioningStep struct {
		Type string `yaml:"type"`

		// ansible
		Playbook          string            `yaml:"playbook"`
		VaultPasswordFile string            `yaml:"vault_password_file"`
		AskVaultPass      bool              `yaml:"ask_vault_pass"`
		LXDTransport      bool              `yaml:"lxd_transport"`
		Vars              map[string]string `yaml:"vars"`

		// shell
		Script string `yaml:"script"`
		Inline string `yaml:"inline"`
		Side   string `yaml:"side"`

		// puppet
		ManifestsPath string `yaml:"manifests_path"`
		ManifestFile  string `yaml:"manifest_file"`
	}

	// Container is the fully merged configuration of one container, with
	// project-level defaults already applied.
	Container struct {
		Name string `yaml:"name"`

		Image      string   `yaml:"image"`
		Mode       Mode     `yaml:"mode"`
		Server     string   `yaml:"server"`
		Protocol   Protocol `yaml:"protocol"`
		Privileged bool     `yaml:"privileged"`
		Profiles   []string `yaml:"profiles"`

		LXCConfig   map[string]string `yaml:"lxc_config"`
		Environment map[string]string `yaml:"environment"`
		Hostnames   []string          `yaml:"hostnames"`

		Shares       []Share            `yaml:"shares"`
		Users        []User             `yaml:"users"`
		Shell        Shell              `yaml:"shell"`
		Provisioning []ProvisioningStep `yaml:"provisioning"`
	}

	// Project is a parsed and validated lxdock file.
	Project struct {
		// Name is the project name.
		Name string
		// Homedir is the directory containing the project file.
		Homedir string
		// Path is the absolute path of the project file.
		Path string
		// Containers are the merged container configurations, in file
		// order.
		Containers []Container
	}
)

// EffectiveMode returns the image retrieval mode, defaulting to pull.
func (c *Container) EffectiveMode() Mode {
	if c.Mode == "" {
		return ModePull
	}
	return c.Mode
}

// EffectiveProtocol returns the image server protocol, defaulting to
// simplestreams.
func (c *Container) EffectiveProtocol() Protocol {
	if c.Protocol == "" {
		return ProtocolSimpleStreams
	}
	return c.Protocol
}

// EffectiveServer returns the image server to pull from. It is empty in
// local mode.
func (c *Container) EffectiveServer() string {
	if c.EffectiveMode() != ModePull {
		return ""
	}
	if c.Server == "" {
		return DefaultImageServer
	}
	return c.Server
}

// HostACL reports whether host-side ACLs should be set for the share.
func (s *Share) HostACL() bool {
	return s.SetHostACL == nil || *s.SetHostACL
}

// Get returns the container with the given name.
func (p *Project) Get(name string) (*Container, error) {
	for i := range p.Containers {
		if p.Containers[i].Name == name {
			return &p.Containers[i], nil
		}
	}
	return nil, fmt.Errorf("container %q is not defined in %s", name, p.Path)
}

// Select resolves the given names to container configurations. With no
// names, every container of the project is returned.
func (p *Project) Select(names []string) ([]*Container, error) {
	if len(names) == 0 {
		out := make([]*Container, len(p.Containers))
		for i := range p.Containers {
			out[i] = &p.Containers[i]
		}
		return out, nil
	}
	out := make([]*Container, 0, len(names))
	for _, name := range names {
		c, err := p.Get(name)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
