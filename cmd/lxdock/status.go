// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd shows the state of the project's containers.
var statusCmd = &cobra.Command{
	Use:   "status [container...]",
	Short: "Show the status of containers",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	project, containers, err := selectContainers(args)
	if err != nil {
		return err
	}

	fmt.Println(TitleStyle.Render(project.Name))
	fmt.Printf("%s  %s  %s  %s\n",
		HeaderStyle.Render(fmt.Sprintf("%-20s", "NAME")),
		HeaderStyle.Render(fmt.Sprintf("%-12s", "STATUS")),
		HeaderStyle.Render(fmt.Sprintf("%-16s", "IP")),
		HeaderStyle.Render("LXD NAME"))

	for _, c := range containers {
		status, err := c.Status()
		if err != nil {
			return err
		}

		styled := status
		switch status {
		case "running":
			styled = SuccessStyle.Render(fmt.Sprintf("%-12s", status))
		case "stopped":
			styled = WarningStyle.Render(fmt.Sprintf("%-12s", status))
		default:
			styled = SubtitleStyle.Render(fmt.Sprintf("%-12s", status))
		}

		ip := c.IPv4()
		if ip == "" {
			ip = "-"
		}
		fmt.Printf("%-20s  %s  %-16s  %s\n", c.Name(), styled, ip, SubtitleStyle.Render(c.LXDName()))
	}
	return nil
}
