// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/jchampion/lxdock/pkg/lxdockfile"
)

// ansibleProvisioner runs ansible-playbook on the host against the
// container. By default it connects over SSH to the container's IP as root,
// which is why barebones setup pushes the user's public key; with
// lxd_transport enabled it uses Ansible's lxd connection plugin and needs no
// SSH at all.
type ansibleProvisioner struct {
	step lxdockfile.ProvisioningStep
}

func (p *ansibleProvisioner) Name() string { return lxdockfile.ProvisionerAnsible }

func (p *ansibleProvisioner) Setup(t Target) error {
	return requireHostTool("ansible-playbook")
}

func (p *ansibleProvisioner) Provision(t Target) error {
	if err := requireHostTool("ansible-playbook"); err != nil {
		return err
	}

	inventory, err := os.CreateTemp("", "lxdock-inventory-*")
	if err != nil {
		return fmt.Errorf("writing ansible inventory: %w", err)
	}
	defer os.Remove(inventory.Name())
	if _, err = inventory.WriteString(p.inventoryLine(t) + "\n"); err != nil {
		inventory.Close()
		return fmt.Errorf("writing ansible inventory: %w", err)
	}
	if err = inventory.Close(); err != nil {
		return fmt.Errorf("writing ansible inventory: %w", err)
	}

	args := []string{"--inventory-file", inventory.Name()}
	if p.step.AskVaultPass {
		args = append(args, "--ask-vault-pass")
	}
	if p.step.VaultPasswordFile != "" {
		args = append(args, "--vault-password-file",
			filepath.Join(t.Homedir, p.step.VaultPasswordFile))
	}
	args = append(args, filepath.Join(t.Homedir, p.step.Playbook))

	env := []string{"ANSIBLE_HOST_KEY_CHECKING=False"}
	return runHostCommand(t.Homedir, env, "ansible-playbook", args...)
}

// inventoryLine renders the single-host inventory entry for the container.
// The step's vars extend the connection defaults and win on conflicts, so a
// project can point ansible_python_interpreter somewhere else.
func (p *ansibleProvisioner) inventoryLine(t Target) string {
	hostVars := map[string]string{
		"ansible_python_interpreter": "/usr/bin/python3",
	}
	if p.step.LXDTransport {
		hostVars["ansible_connection"] = "lxd"
	} else {
		hostVars["ansible_host"] = t.IP
		hostVars["ansible_user"] = "root"
	}
	for k, v := range p.step.Vars {
		hostVars[k] = v
	}

	keys := maps.Keys(hostVars)
	slices.Sort(keys)
	parts := make([]string, 0, len(keys)+1)
	parts = append(parts, t.Instance)
	for _, k := range keys {
		parts = append(parts, k+"="+hostVars[k])
	}
	return strings.Join(parts, " ")
}
