// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"
)

// provisionCmd provisions running containers.
var provisionCmd = &cobra.Command{
	Use:   "provision [container...]",
	Short: "Provision running containers",
	Long: `Run the project file's provisioning steps against running containers.

Provisioning can be repeated at any time; the steps themselves are
responsible for being idempotent. Containers must be created and
running.`,
	RunE: runProvision,
}

func runProvision(cmd *cobra.Command, args []string) error {
	_, containers, err := selectContainers(args)
	if err != nil {
		return err
	}
	for _, c := range containers {
		if err := c.Provision(cmd.Context()); err != nil {
			return err
		}
	}
	return nil
}
