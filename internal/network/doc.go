// SPDX-License-Identifier: MPL-2.0

// Package network manages the host-side network state that containers rely
// on: the LXDock-managed section of /etc/hosts and waiting for a container
// to acquire an IPv4 address after boot.
package network
