// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	destroyForce bool

	// destroyCmd stops and deletes containers.
	destroyCmd = &cobra.Command{
		Use:   "destroy [container...]",
		Short: "Stop and delete containers",
		Long: `Stop and delete the containers of the project.

The container's filesystem is lost. Shared folders live on the host
and are not touched. Unless --force is given, a confirmation is asked
for every container.`,
		RunE: runDestroy,
	}
)

func init() {
	destroyCmd.Flags().BoolVarP(&destroyForce, "force", "f", false, "destroy without confirmation")
}

func runDestroy(cmd *cobra.Command, args []string) error {
	_, containers, err := selectContainers(args)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	for _, c := range containers {
		if !destroyForce {
			fmt.Printf("Destroy container %s? [y/N] ", CmdStyle.Render(c.Name()))
			answer, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			if answer = strings.ToLower(strings.TrimSpace(answer)); answer != "y" && answer != "yes" {
				fmt.Println(SubtitleStyle.Render("Skipping " + c.Name()))
				continue
			}
		}
		if err := c.Destroy(cmd.Context()); err != nil {
			return err
		}
	}
	return nil
}
