// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jchampion/lxdock/pkg/lxdockfile"
)

// guestScriptPath is where host-side scripts land inside the container
// before they are executed.
const guestScriptPath = "/.lxdock.d/provision.sh"

// shellProvisioner runs a script file or an inline command, inside the
// container by default or on the host when side is "host".
type shellProvisioner struct {
	step lxdockfile.ProvisioningStep
}

func (p *shellProvisioner) Name() string { return lxdockfile.ProvisionerShell }

func (p *shellProvisioner) Setup(Target) error { return nil }

func (p *shellProvisioner) Provision(t Target) error {
	if p.step.Side == lxdockfile.SideHost {
		return p.provisionHost(t)
	}
	return p.provisionGuest(t)
}

func (p *shellProvisioner) provisionHost(t Target) error {
	switch {
	case p.step.Inline != "":
		return runHostCommand(t.Homedir, nil, "sh", "-c", p.step.Inline)
	case p.step.Script != "":
		return runHostCommand(t.Homedir, nil, "sh", filepath.Join(t.Homedir, p.step.Script))
	default:
		return fmt.Errorf("shell provisioner needs either a script or an inline command")
	}
}

func (p *shellProvisioner) provisionGuest(t Target) error {
	switch {
	case p.step.Inline != "":
		return t.Guest.Run([]string{"sh", "-c", p.step.Inline})
	case p.step.Script != "":
		script, err := os.Open(filepath.Join(t.Homedir, p.step.Script))
		if err != nil {
			return fmt.Errorf("opening provisioning script: %w", err)
		}
		defer script.Close()
		if err := t.Guest.Push(guestScriptPath, 0o755, script); err != nil {
			return fmt.Errorf("pushing provisioning script: %w", err)
		}
		return t.Guest.Run([]string{"sh", guestScriptPath})
	default:
		return fmt.Errorf("shell provisioner needs either a script or an inline command")
	}
}
