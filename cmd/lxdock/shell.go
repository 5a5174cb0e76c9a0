// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	shellUser string

	// shellCmd opens an interactive shell in a container.
	shellCmd = &cobra.Command{
		Use:   "shell [container] [-- command...]",
		Short: "Open a shell in a container",
		Long: `Open an interactive shell inside a running container.

Without arguments the project's only container is used. The shell runs
as root unless the project file configures a shell user or --user is
given. Everything after -- is run as a one-off command instead of an
interactive shell:

  lxdock shell web -- ls -la /app`,
		Args: cobra.ArbitraryArgs,
		RunE: runShell,
	}
)

func init() {
	shellCmd.Flags().StringVarP(&shellUser, "user", "u", "", "user to run the shell as")
}

func runShell(cmd *cobra.Command, args []string) error {
	names := args
	var command []string
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		names = args[:dash]
		command = args[dash:]
	}
	if len(names) > 1 {
		return fmt.Errorf("shell takes at most one container name, got %d", len(names))
	}

	_, containers, err := selectContainers(names)
	if err != nil {
		return err
	}
	if len(containers) != 1 {
		return fmt.Errorf("the project has %d containers, name the one to open a shell in",
			len(containers))
	}
	return containers[0].Shell(cmd.Context(), shellUser, command)
}
