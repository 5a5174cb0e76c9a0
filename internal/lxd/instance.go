// SPDX-License-Identifier: MPL-2.0

package lxd

import "github.com/canonical/lxd/shared/api"

// IsRunning reports whether the instance status is Running.
func IsRunning(instance *api.Instance) bool {
	return instance != nil && instance.StatusCode == api.Running
}

// IsStopped reports whether the instance status is Stopped.
func IsStopped(instance *api.Instance) bool {
	return instance != nil && instance.StatusCode == api.Stopped
}

// IPv4 extracts the instance's global IPv4 address from its state. Loopback
// and link-local addresses are skipped. Empty when the instance has no
// routable address yet.
func IPv4(state *api.InstanceState) string {
	if state == nil {
		return ""
	}
	for ifname, network := range state.Network {
		if ifname == "lo" {
			continue
		}
		for _, addr := range network.Addresses {
			if addr.Family != "inet" {
				continue
			}
			if addr.Scope == "local" || addr.Scope == "link" {
				continue
			}
			return addr.Address
		}
	}
	return ""
}
