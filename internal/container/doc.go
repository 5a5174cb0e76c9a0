// SPDX-License-Identifier: MPL-2.0

// Package container implements the lifecycle of a single project container:
// creating it from its image, starting and stopping it, wiring up shares,
// users, hostnames and environment overrides, provisioning it, and opening
// interactive shells into it.
package container
