// SPDX-License-Identifier: MPL-2.0

package guest

import (
	"bytes"
	"strings"

	"github.com/jchampion/lxdock/internal/lxd"
)

// Detect reads /etc/os-release inside the instance and returns the matching
// adapter. Detection failures are not fatal: the generic adapter is returned
// so that provisioning can still run commands, it just cannot install
// packages.
func Detect(backend Backend, instance string) *Guest {
	var out bytes.Buffer
	code, err := backend.Exec(instance, []string{"cat", "/etc/os-release"}, lxd.ExecOptions{Stdout: &out})
	if err != nil || code != 0 {
		return New(backend, instance, "")
	}
	return New(backend, instance, osReleaseID(out.String()))
}

// osReleaseID extracts the ID field from os-release content. The value may
// be quoted per os-release(5).
func osReleaseID(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "ID=") {
			continue
		}
		value := strings.TrimPrefix(line, "ID=")
		return strings.Trim(value, `"'`)
	}
	return ""
}
