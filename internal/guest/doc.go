// SPDX-License-Identifier: MPL-2.0

// Package guest adapts per-distribution differences inside containers:
// which package manager installs the barebones tooling, how users are
// created, and where the root authorized_keys file lives. The distribution
// is detected from /etc/os-release, with a generic fallback for images the
// registry does not know about.
package guest
