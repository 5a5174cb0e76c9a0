// SPDX-License-Identifier: MPL-2.0

package guest

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/jchampion/lxdock/internal/lxd"
)

// Backend is the slice of the LXD client a guest adapter needs: running
// commands inside an instance and pushing files into it.
type Backend interface {
	Exec(name string, command []string, opts lxd.ExecOptions) (int, error)
	PushFile(name, path string, mode int, content io.Reader) error
}

// userTool selects the command used to create accounts inside the guest.
type userTool int

const (
	useradd userTool = iota // shadow-utils, the common case
	adduser                 // busybox flavor, e.g. Alpine
)

// profile captures how one distribution family handles the operations
// LXDock needs during barebones setup.
type profile struct {
	id         string
	installCmd []string
	refreshCmd []string
	barebones  []string
	users      userTool
}

// Guest runs distribution-specific setup commands inside a container.
type Guest struct {
	backend  Backend
	instance string
	profile  profile
}

// New returns the adapter registered for the given os-release ID, or the
// generic adapter when the distribution is unknown.
func New(backend Backend, instance, id string) *Guest {
	p, ok := profiles[strings.ToLower(id)]
	if !ok {
		p = genericProfile
	}
	return &Guest{backend: backend, instance: instance, profile: p}
}

// Name returns the distribution identifier this adapter was built for, or
// "generic" for the fallback.
func (g *Guest) Name() string { return g.profile.id }

// InstallPackages installs the given packages with the distribution's
// package manager.
func (g *Guest) InstallPackages(packages []string) error {
	if len(packages) == 0 {
		return nil
	}
	if g.profile.installCmd == nil {
		return fmt.Errorf("the %s guest does not know how to install packages", g.Name())
	}
	if g.profile.refreshCmd != nil {
		if err := g.run(g.profile.refreshCmd); err != nil {
			return err
		}
	}
	cmd := append(append([]string{}, g.profile.installCmd...), packages...)
	return g.run(cmd)
}

// InstallBarebonesPackages installs the minimal package set the
// provisioners depend on (an SSH server and a Python interpreter).
func (g *Guest) InstallBarebonesPackages() error {
	return g.InstallPackages(g.profile.barebones)
}

// CreateUser creates an account inside the guest. home and password are
// optional; an empty home lets the guest pick its default.
func (g *Guest) CreateUser(username, home, password string) error {
	switch g.profile.users {
	case adduser:
		cmd := []string{"adduser", "-D"}
		if home != "" {
			cmd = append(cmd, "-h", home)
		}
		cmd = append(cmd, username)
		if err := g.run(cmd); err != nil {
			return err
		}
		if password != "" {
			return g.run([]string{"sh", "-c",
				fmt.Sprintf("echo '%s:%s' | chpasswd -e", username, password)})
		}
		return nil
	default:
		cmd := []string{"useradd", "--create-home"}
		if home != "" {
			cmd = append(cmd, "--home-dir", home)
		}
		if password != "" {
			cmd = append(cmd, "--password", password)
		}
		cmd = append(cmd, username)
		return g.run(cmd)
	}
}

// AddSSHPubkeyToRoot appends a public key to root's authorized_keys so the
// Ansible provisioner can reach the container over SSH.
func (g *Guest) AddSSHPubkeyToRoot(pubkey []byte) error {
	if err := g.run([]string{"mkdir", "-p", "/root/.ssh"}); err != nil {
		return err
	}
	var buf bytes.Buffer
	existing, code, err := g.capture([]string{"cat", "/root/.ssh/authorized_keys"})
	if err == nil && code == 0 {
		if bytes.Contains(existing, bytes.TrimSpace(pubkey)) {
			return nil
		}
		buf.Write(existing)
		if len(existing) > 0 && existing[len(existing)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
	buf.Write(bytes.TrimSpace(pubkey))
	buf.WriteByte('\n')
	return g.backend.PushFile(g.instance, "/root/.ssh/authorized_keys", 0o600, &buf)
}

// Run executes an arbitrary command inside the guest, failing on a non-zero
// exit code.
func (g *Guest) Run(command []string) error { return g.run(command) }

// Push writes a file into the guest filesystem, creating the parent
// directory first. The LXD files API refuses to create missing parents.
func (g *Guest) Push(target string, mode int, content io.Reader) error {
	if dir := path.Dir(target); dir != "/" && dir != "." {
		if err := g.run([]string{"mkdir", "-p", dir}); err != nil {
			return err
		}
	}
	return g.backend.PushFile(g.instance, target, mode, content)
}

func (g *Guest) run(command []string) error {
	code, err := g.backend.Exec(g.instance, command, lxd.ExecOptions{})
	if err != nil {
		return err
	}
	if code != 0 {
		return fmt.Errorf("command %q exited with status %d in container %q",
			strings.Join(command, " "), code, g.instance)
	}
	return nil
}

func (g *Guest) capture(command []string) ([]byte, int, error) {
	var out bytes.Buffer
	code, err := g.backend.Exec(g.instance, command, lxd.ExecOptions{Stdout: &out})
	return out.Bytes(), code, err
}
