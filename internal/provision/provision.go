// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/jchampion/lxdock/internal/guest"
	"github.com/jchampion/lxdock/internal/issue"
	"github.com/jchampion/lxdock/pkg/lxdockfile"
)

// Target bundles everything a provisioner may act on: the project directory
// on the host and the running container it targets.
type Target struct {
	// Homedir is the project root on the host; relative paths in the
	// project file resolve against it.
	Homedir string

	// Instance is the LXD name of the container.
	Instance string

	// IP is the container's IPv4 address, used by host-side provisioners
	// that reach the container over the network.
	IP string

	// Guest runs commands inside the container.
	Guest *guest.Guest
}

// Provisioner is one provisioning step, instantiated from the project file.
type Provisioner interface {
	// Name identifies the step type in log output.
	Name() string

	// Setup runs once after barebones setup on a freshly created
	// container, before any Provision call.
	Setup(t Target) error

	// Provision applies the step.
	Provision(t Target) error
}

// New builds the provisioner for a project-file step. The step type has
// already been validated during parsing.
func New(step lxdockfile.ProvisioningStep) (Provisioner, error) {
	switch step.Type {
	case lxdockfile.ProvisionerAnsible:
		return &ansibleProvisioner{step: step}, nil
	case lxdockfile.ProvisionerShell:
		return &shellProvisioner{step: step}, nil
	case lxdockfile.ProvisionerPuppet:
		return &puppetProvisioner{step: step}, nil
	default:
		return nil, fmt.Errorf("unknown provisioner type %q", step.Type)
	}
}

// All instantiates the provisioners for every step, in declaration order.
func All(steps []lxdockfile.ProvisioningStep) ([]Provisioner, error) {
	provisioners := make([]Provisioner, 0, len(steps))
	for _, step := range steps {
		p, err := New(step)
		if err != nil {
			return nil, err
		}
		provisioners = append(provisioners, p)
	}
	return provisioners, nil
}

// lookPath and runHostCommand are swapped out in tests.
var (
	lookPath = exec.LookPath

	runHostCommand = func(dir string, env []string, name string, args ...string) error {
		cmd := exec.Command(name, args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(), env...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return cmd.Run()
	}
)

// requireHostTool verifies a host binary exists before a provisioner
// shells out to it.
func requireHostTool(name string) error {
	if _, err := lookPath(name); err != nil {
		return issue.NewErrorContext().
			WithOperation("locating provisioner tool").
			WithResource(name).
			WithSuggestion(fmt.Sprintf("install %s and make sure it is on your PATH", name)).
			Wrap(err).
			BuildError()
	}
	return nil
}
