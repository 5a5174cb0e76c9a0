// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"
)

// haltCmd stops containers.
var haltCmd = &cobra.Command{
	Use:   "halt [container...]",
	Short: "Stop containers",
	Long: `Stop the containers of the project.

Hostname bindings published in /etc/hosts are withdrawn before the
container stops. A container that cannot be stopped cleanly within 30
seconds is stopped forcefully.`,
	RunE: runHalt,
}

func runHalt(cmd *cobra.Command, args []string) error {
	_, containers, err := selectContainers(args)
	if err != nil {
		return err
	}
	for _, c := range containers {
		if err := c.Halt(cmd.Context()); err != nil {
			return err
		}
	}
	return nil
}
