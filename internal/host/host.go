// SPDX-License-Identifier: MPL-2.0

package host

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultSubUIDBase is the start of the UID range LXD maps unprivileged
// containers into when /etc/subuid does not say otherwise.
const DefaultSubUIDBase = 100000

// pubkeyNames lists the key files probed by SSHPubkey, most preferred first.
var pubkeyNames = []string{"id_ed25519.pub", "id_rsa.pub", "id_ecdsa.pub"}

// runCommand is swapped out in tests.
var runCommand = func(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Host exposes the operations performed on the machine running lxdock.
type Host struct {
	// HomeDir overrides the current user's home directory, for tests.
	HomeDir string
	// SubUIDPath overrides the subordinate UID map file, for tests.
	SubUIDPath string
}

func (h *Host) home() (string, error) {
	if h.HomeDir != "" {
		return h.HomeDir, nil
	}
	return os.UserHomeDir()
}

// SSHPubkey returns the current user's SSH public key, preferring modern key
// types. It returns nil without error when the user has no key pair.
func (h *Host) SSHPubkey() ([]byte, error) {
	home, err := h.home()
	if err != nil {
		return nil, err
	}
	for _, name := range pubkeyNames {
		data, err := os.ReadFile(filepath.Join(home, ".ssh", name))
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return nil, nil
}

// GiveCurrentUserAccess grants the current user read/write access to path,
// recursively and for files created later, using POSIX ACLs.
func (h *Host) GiveCurrentUserAccess(path string) error {
	spec := fmt.Sprintf("u:%d:rwX", os.Getuid())
	if err := runCommand("setfacl", "-Rm", spec, path); err != nil {
		return fmt.Errorf("granting current user access to %s: %w", path, err)
	}
	if err := runCommand("setfacl", "-Rdm", spec, path); err != nil {
		return fmt.Errorf("granting current user default access to %s: %w", path, err)
	}
	return nil
}

// GiveMappedUserAccess grants the container-side UID, translated through the
// host's subordinate UID range, access to path. guestUID 0 grants the
// container's root.
func (h *Host) GiveMappedUserAccess(path string, guestUID int) error {
	mapped := h.subUIDBase() + guestUID
	spec := fmt.Sprintf("u:%d:rwX", mapped)
	if err := runCommand("sudo", "setfacl", "-Rm", spec, path); err != nil {
		return fmt.Errorf("granting mapped uid %d access to %s: %w", mapped, path, err)
	}
	if err := runCommand("sudo", "setfacl", "-Rdm", spec, path); err != nil {
		return fmt.Errorf("granting mapped uid %d default access to %s: %w", mapped, path, err)
	}
	return nil
}

// subUIDBase reads the start of root's subordinate UID range from
// /etc/subuid, falling back to the LXD default when the file is absent or
// has no usable entry.
func (h *Host) subUIDBase() int {
	path := h.SubUIDPath
	if path == "" {
		path = "/etc/subuid"
	}
	f, err := os.Open(path)
	if err != nil {
		return DefaultSubUIDBase
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Split(strings.TrimSpace(scanner.Text()), ":")
		if len(fields) != 3 {
			continue
		}
		if fields[0] != "root" && fields[0] != "lxd" {
			continue
		}
		base, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		return base
	}
	return DefaultSubUIDBase
}
