// SPDX-License-Identifier: MPL-2.0

// Package provision runs the provisioning steps declared in the project
// file against a running container. Three step types are supported: ansible
// (an ansible-playbook run from the host against the container), shell
// (a script or inline command, on either side), and puppet (manifests pushed
// into the container and applied there).
package provision
