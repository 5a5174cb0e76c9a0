// SPDX-License-Identifier: MPL-2.0

package lxdockfile

import (
	"fmt"
	"path"
	"regexp"
)

// namePattern constrains project and container names; both end up inside LXD
// instance names, which must be valid hostnames.
var namePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*$`)

func validate(p *Project) error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalid, p.Path, fmt.Sprintf(format, args...))
	}

	if !namePattern.MatchString(p.Name) {
		return fail("project name %q must match %s", p.Name, namePattern)
	}
	if len(p.Containers) == 0 {
		return fail("no containers defined")
	}

	seen := make(map[string]bool, len(p.Containers))
	for i := range p.Containers {
		c := &p.Containers[i]
		where := fmt.Sprintf("container %q", c.Name)
		if c.Name == "" {
			return fail("containers[%d]: missing required key \"name\"", i)
		}
		if !namePattern.MatchString(c.Name) {
			return fail("%s: name must match %s", where, namePattern)
		}
		if seen[c.Name] {
			return fail("%s is defined more than once", where)
		}
		seen[c.Name] = true

		if c.Image == "" {
			return fail("%s: missing required key \"image\"", where)
		}
		switch c.EffectiveMode() {
		case ModePull, ModeLocal:
		default:
			return fail("%s: mode must be %q or %q, got %q", where, ModePull, ModeLocal, c.Mode)
		}
		switch c.EffectiveProtocol() {
		case ProtocolSimpleStreams, ProtocolLXD:
		default:
			return fail("%s: protocol must be %q or %q, got %q",
				where, ProtocolSimpleStreams, ProtocolLXD, c.Protocol)
		}

		for j, share := range c.Shares {
			if share.Source == "" || share.Dest == "" {
				return fail("%s: shares[%d]: both \"source\" and \"dest\" are required", where, j)
			}
			if !path.IsAbs(share.Dest) {
				return fail("%s: shares[%d]: dest %q must be an absolute guest path", where, j, share.Dest)
			}
		}
		for j, user := range c.Users {
			if user.Name == "" {
				return fail("%s: users[%d]: missing required key \"name\"", where, j)
			}
		}
		for j, step := range c.Provisioning {
			if err := validateStep(&step); err != nil {
				return fail("%s: provisioning[%d]: %v", where, j, err)
			}
		}
	}
	return nil
}

func validateStep(step *ProvisioningStep) error {
	switch step.Type {
	case ProvisionerAnsible:
		if step.Playbook == "" {
			return fmt.Errorf("ansible provisioning requires \"playbook\"")
		}
	case ProvisionerShell:
		if (step.Script == "") == (step.Inline == "") {
			return fmt.Errorf("shell provisioning requires exactly one of \"script\" or \"inline\"")
		}
		switch step.Side {
		case "", SideHost, SideGuest:
		default:
			return fmt.Errorf("side must be \"host\" or \"guest\", got %q", step.Side)
		}
	case ProvisionerPuppet:
		if step.ManifestsPath == "" || step.ManifestFile == "" {
			return fmt.Errorf("puppet provisioning requires \"manifests_path\" and \"manifest_file\"")
		}
	case "":
		return fmt.Errorf("missing required key \"type\"")
	default:
		return fmt.Errorf("unknown provisioner type %q", step.Type)
	}
	return nil
}
