// SPDX-License-Identifier: MPL-2.0

package container

// ProvisioningMode controls whether `up` provisions the container.
type ProvisioningMode int

const (
	// ProvisioningAuto provisions only containers that have never been
	// provisioned. This is the default for `up`.
	ProvisioningAuto ProvisioningMode = iota
	// ProvisioningEnabled always provisions.
	ProvisioningEnabled
	// ProvisioningDisabled never provisions.
	ProvisioningDisabled
)

func (m ProvisioningMode) String() string {
	switch m {
	case ProvisioningEnabled:
		return "enabled"
	case ProvisioningDisabled:
		return "disabled"
	default:
		return "auto"
	}
}
