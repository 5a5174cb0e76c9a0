// SPDX-License-Identifier: MPL-2.0

package lxd

import (
	"fmt"
	"os"
	"path/filepath"

	lxdclient "github.com/canonical/lxd/client"

	"github.com/jchampion/lxdock/internal/issue"
)

// wellKnownSockets are the LXD unix socket locations probed when neither an
// explicit path nor the LXD_SOCKET/LXD_DIR environment variables name one.
var wellKnownSockets = []string{
	"/var/snap/lxd/common/lxd/unix.socket",
	"/var/lib/lxd/unix.socket",
}

// SocketPath resolves the unix socket of the local LXD daemon. An explicit
// non-empty path wins; otherwise LXD_SOCKET, then LXD_DIR, then the
// well-known install locations are consulted.
func SocketPath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if path := os.Getenv("LXD_SOCKET"); path != "" {
		return path, nil
	}
	if dir := os.Getenv("LXD_DIR"); dir != "" {
		return filepath.Join(dir, "unix.socket"), nil
	}
	for _, path := range wellKnownSockets {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no LXD unix socket found (tried LXD_SOCKET, LXD_DIR and %v)", wellKnownSockets)
}

// Connect opens a connection to the local LXD daemon. socketPath may be
// empty, in which case the socket is autodetected.
func Connect(socketPath string) (Client, error) {
	path, err := SocketPath(socketPath)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("connect to LXD").
			WithSuggestion("Check that LXD is installed and running ('lxc info')").
			WithSuggestion("Set lxd_socket in your lxdock config if the socket lives elsewhere").
			Wrap(err).
			BuildError()
	}

	server, err := lxdclient.ConnectLXDUnix(path, nil)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("connect to LXD").
			WithResource(path).
			WithSuggestion("Make sure your user is in the lxd group").
			WithSuggestion("Check that the LXD daemon is running ('lxc info')").
			Wrap(err).
			BuildError()
	}

	return &apiClient{server: server}, nil
}
