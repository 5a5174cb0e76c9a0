// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jchampion/lxdock/internal/container"
)

var (
	upProvision   bool
	upNoProvision bool

	// upCmd creates, starts and provisions containers.
	upCmd = &cobra.Command{
		Use:   "up [container...]",
		Short: "Create, start and provision containers",
		Long: `Create, start and provision the containers of the project.

Containers that do not exist yet are created from their image. Freshly
created containers are provisioned automatically; containers that were
provisioned on an earlier up are not provisioned again unless
--provision is given.`,
		RunE: runUp,
	}
)

func init() {
	upCmd.Flags().BoolVar(&upProvision, "provision", false, "force provisioning even if already provisioned")
	upCmd.Flags().BoolVar(&upNoProvision, "no-provision", false, "skip provisioning entirely")
	upCmd.MarkFlagsMutuallyExclusive("provision", "no-provision")
}

func runUp(cmd *cobra.Command, args []string) error {
	_, containers, err := selectContainers(args)
	if err != nil {
		return err
	}

	mode := container.ProvisioningAuto
	switch {
	case upProvision:
		mode = container.ProvisioningEnabled
	case upNoProvision:
		mode = container.ProvisioningDisabled
	}

	for _, c := range containers {
		if err := c.Up(cmd.Context(), mode); err != nil {
			return err
		}
	}
	return nil
}
