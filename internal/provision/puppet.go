// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jchampion/lxdock/pkg/lxdockfile"
)

// guestManifestsPath is where the manifests directory is mirrored inside
// the container before puppet apply runs.
const guestManifestsPath = "/.lxdock.d/puppet"

// puppetProvisioner mirrors the project's manifests directory into the
// container and runs puppet apply on the configured manifest. Puppet itself
// must already be present in the image or installed by an earlier step.
type puppetProvisioner struct {
	step lxdockfile.ProvisioningStep
}

func (p *puppetProvisioner) Name() string { return lxdockfile.ProvisionerPuppet }

func (p *puppetProvisioner) Setup(Target) error { return nil }

func (p *puppetProvisioner) Provision(t Target) error {
	manifests := filepath.Join(t.Homedir, p.step.ManifestsPath)
	if err := p.pushTree(t, manifests); err != nil {
		return err
	}
	return t.Guest.Run([]string{
		"puppet", "apply",
		filepath.Join(guestManifestsPath, p.step.ManifestFile),
	})
}

// pushTree mirrors the manifests directory file by file, preserving
// relative paths.
func (p *puppetProvisioner) pushTree(t Target, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("reading manifests directory: %w", err)
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening manifest %s: %w", rel, err)
		}
		defer f.Close()
		dest := filepath.Join(guestManifestsPath, rel)
		if err := t.Guest.Push(dest, 0o644, f); err != nil {
			return fmt.Errorf("pushing manifest %s: %w", rel, err)
		}
		return nil
	})
}
