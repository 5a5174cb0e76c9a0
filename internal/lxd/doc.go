// SPDX-License-Identifier: MPL-2.0

// Package lxd wraps the LXD client API behind the narrow surface lxdock
// needs: instance lifecycle, command execution, file push and state
// inspection, all against the local daemon's unix socket.
package lxd
