// SPDX-License-Identifier: MPL-2.0

package network

import (
	"context"
	"time"

	"github.com/jchampion/lxdock/internal/lxd"
)

// DefaultIPTimeout bounds how long WaitForIPv4 polls a freshly started
// container for an address before giving up.
const DefaultIPTimeout = 10 * time.Second

// pollInterval is how often WaitForIPv4 re-checks the instance state.
// Shortened in tests.
var pollInterval = time.Second

// WaitForIPv4 polls the state of the named instance once per second until it
// reports a global IPv4 address or timeout elapses. It returns an empty
// string, not an error, when the container never gets an address: the
// container is up either way and callers decide how loudly to complain.
func WaitForIPv4(ctx context.Context, client lxd.Client, name string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = DefaultIPTimeout
	}

	state, err := client.GetInstanceState(name)
	if err != nil {
		return "", err
	}
	if ip := lxd.IPv4(state); ip != "" {
		return ip, nil
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	tick := time.NewTicker(pollInterval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-deadline.C:
			return "", nil
		case <-tick.C:
			state, err = client.GetInstanceState(name)
			if err != nil {
				return "", err
			}
			if ip := lxd.IPv4(state); ip != "" {
				return ip, nil
			}
		}
	}
}
