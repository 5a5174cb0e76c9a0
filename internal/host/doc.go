// SPDX-License-Identifier: MPL-2.0

// Package host performs the host-side legwork containers need: discovering
// the current user's SSH public key and granting filesystem ACLs on shared
// folders so that both the host user and the container's mapped users can
// read and write them.
package host
