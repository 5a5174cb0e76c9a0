// SPDX-License-Identifier: MPL-2.0

package network

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	// DefaultHostsPath is the hosts file edited when no explicit path is given.
	DefaultHostsPath = "/etc/hosts"

	beginMarker = "# BEGIN LXDock section"
	endMarker   = "# END LXDock section"
)

type binding struct {
	Hostname string
	IP       string
}

// EtcHosts edits the managed section of a hosts file. All bindings live
// between two marker comments so that repeated edits never touch the lines
// the user (or other tools) put there. Mutations are staged in memory;
// nothing is written until Save.
type EtcHosts struct {
	path     string
	head     []string
	tail     []string
	bindings []binding
	changed  bool
}

// OpenEtcHosts parses the hosts file at path, or DefaultHostsPath when path
// is empty. A missing file is not an error; Save will create it.
func OpenEtcHosts(path string) (*EtcHosts, error) {
	if path == "" {
		path = DefaultHostsPath
	}
	h := &EtcHosts{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return h, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	section := false
	seen := false
	for _, line := range lines {
		switch {
		case strings.TrimSpace(line) == beginMarker:
			section = true
			seen = true
		case strings.TrimSpace(line) == endMarker:
			section = false
		case section:
			fields := strings.Fields(line)
			if len(fields) >= 2 {
				h.bindings = append(h.bindings, binding{Hostname: fields[1], IP: fields[0]})
			}
		case seen:
			h.tail = append(h.tail, line)
		default:
			h.head = append(h.head, line)
		}
	}
	return h, nil
}

// EnsureBindingPresent records hostname as resolving to ip. Re-binding a
// hostname to the address it already has is a no-op.
func (h *EtcHosts) EnsureBindingPresent(hostname, ip string) {
	for i, b := range h.bindings {
		if b.Hostname == hostname {
			if b.IP != ip {
				h.bindings[i].IP = ip
				h.changed = true
			}
			return
		}
	}
	h.bindings = append(h.bindings, binding{Hostname: hostname, IP: ip})
	h.changed = true
}

// EnsureBindingAbsent removes any binding for hostname.
func (h *EtcHosts) EnsureBindingAbsent(hostname string) {
	for i, b := range h.bindings {
		if b.Hostname == hostname {
			h.bindings = append(h.bindings[:i], h.bindings[i+1:]...)
			h.changed = true
			return
		}
	}
}

// Changed reports whether any staged mutation differs from what was read.
func (h *EtcHosts) Changed() bool { return h.changed }

// Render returns the hosts file content that Save would write.
func (h *EtcHosts) Render() string {
	var sb strings.Builder
	for _, line := range h.head {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if len(h.bindings) > 0 {
		sb.WriteString(beginMarker)
		sb.WriteByte('\n')
		for _, b := range h.bindings {
			sb.WriteString(b.IP)
			sb.WriteByte('\t')
			sb.WriteString(b.Hostname)
			sb.WriteByte('\n')
		}
		sb.WriteString(endMarker)
		sb.WriteByte('\n')
	}
	for _, line := range h.tail {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Save writes the edited file back. When the file is not writable by the
// current user it falls back to staging the content in a temporary file and
// copying it into place with sudo, so that a plain `lxdock up` can still
// publish hostnames.
func (h *EtcHosts) Save() error {
	content := h.Render()

	err := os.WriteFile(h.path, []byte(content), 0o644)
	if err == nil {
		h.changed = false
		return nil
	}
	if !errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("writing %s: %w", h.path, err)
	}

	tmp, terr := os.CreateTemp("", "lxdock-hosts-*")
	if terr != nil {
		return fmt.Errorf("staging hosts file: %w", terr)
	}
	defer os.Remove(tmp.Name())
	if _, terr = tmp.WriteString(content); terr != nil {
		tmp.Close()
		return fmt.Errorf("staging hosts file: %w", terr)
	}
	if terr = tmp.Close(); terr != nil {
		return fmt.Errorf("staging hosts file: %w", terr)
	}

	cmd := exec.Command("sudo", "cp", tmp.Name(), h.path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if terr = cmd.Run(); terr != nil {
		return fmt.Errorf("copying staged hosts file to %s: %w", filepath.Clean(h.path), terr)
	}
	h.changed = false
	return nil
}
